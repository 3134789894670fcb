package game

import (
	"strings"
	"testing"
)

func TestHUDScoreAccumulates(t *testing.T) {
	h := NewHUD()
	h.AddScore(100)
	h.AddScore(25)
	if h.Score != 125 {
		t.Errorf("Score = %d, want 125", h.Score)
	}
}

func TestHUDDamageClampsAtZero(t *testing.T) {
	h := NewHUD()
	h.Damage(30)
	if h.Health != 70 {
		t.Errorf("Health = %d, want 70", h.Health)
	}
	h.Damage(500)
	if h.Health != 0 {
		t.Errorf("Health = %d, want 0 after overkill", h.Health)
	}
}

func TestHUDAlive(t *testing.T) {
	h := NewHUD()
	if !h.Alive() {
		t.Fatal("fresh HUD should be alive")
	}
	h.Damage(100)
	if h.Alive() {
		t.Error("player at zero health should not be alive")
	}
}

func TestHUDTitle(t *testing.T) {
	h := NewHUD()
	h.AddScore(150)
	h.Damage(20)

	title := h.Title("Enchanted Forest", true)

	if !strings.HasPrefix(title, "Crystal Caves - ") {
		t.Errorf("Title() = %q, want the plain ASCII prefix", title)
	}

	for _, want := range []string{"Enchanted Forest", "150", "80", "First Person"} {
		if !strings.Contains(title, want) {
			t.Errorf("Title() = %q, missing %q", title, want)
		}
	}

	if !strings.Contains(h.Title("x", false), "Third Person") {
		t.Error("third-person title missing view label")
	}
}
