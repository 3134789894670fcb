package game

import "fmt"

// HUD tracks the on-screen game state: score, health and the current
// scene. The window title carries the readout, so it stays visible
// without a font renderer in the pipeline.
type HUD struct {
	Score  int
	Health int
}

// NewHUD starts with full health and no score.
func NewHUD() *HUD {
	return &HUD{Health: 100}
}

// AddScore credits collected points.
func (h *HUD) AddScore(points int) {
	h.Score += points
}

// Damage subtracts health, clamping at zero.
func (h *HUD) Damage(amount int) {
	h.Health -= amount
	if h.Health < 0 {
		h.Health = 0
	}
}

// Alive reports whether the player still has health left.
func (h *HUD) Alive() bool {
	return h.Health > 0
}

// Title formats the window-title readout.
func (h *HUD) Title(scene string, firstPerson bool) string {
	view := "Third Person"
	if firstPerson {
		view = "First Person"
	}
	return fmt.Sprintf("Crystal Caves - %s | Score: %d | Health: %d | %s",
		scene, h.Score, h.Health, view)
}
