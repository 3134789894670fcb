package game

import (
	gomath "math"

	"github.com/Faultbox/crystalcaves/internal/engine/asset"
	"github.com/Faultbox/crystalcaves/pkg/math"
)

const collectRadius = 1.0

// Collectible is a pickup that spins and bobs in place until the
// player walks into it.
type Collectible struct {
	Model    *asset.Instance // nil = rendered as a glowing sphere
	Position math.Vec3
	Kind     string // "crystal", "gem", "coin", "rare_gem"
	Points   int
	Glow     [3]float32

	RotationY float32
	BobOffset float32
	Collected bool
}

// NewCollectible creates a pickup at the given spot with a gold glow.
func NewCollectible(kind string, pos math.Vec3, points int) *Collectible {
	return &Collectible{
		Position: pos,
		Kind:     kind,
		Points:   points,
		Glow:     [3]float32{1, 1, 0},
	}
}

// Update advances the idle animation: a quarter turn per second of
// spin and a slow sine bob driven by total elapsed time.
func (c *Collectible) Update(dt, elapsed float32) {
	if c.Collected {
		return
	}
	c.RotationY += dt * 90
	c.BobOffset = float32(gomath.Sin(float64(elapsed*3))) * 0.2
}

// TryCollect marks the pickup collected if the player is within reach
// and returns its point value, or 0 if nothing happened. A collected
// pickup never triggers twice.
func (c *Collectible) TryCollect(playerPos math.Vec3) int {
	if c.Collected {
		return 0
	}
	if c.Position.Distance(playerPos) >= collectRadius {
		return 0
	}
	c.Collected = true
	return c.Points
}
