// Package camera provides camera implementations for 3D rendering.
package camera

import (
	gomath "math"

	"github.com/Faultbox/crystalcaves/pkg/math"
)

const maxPitch = 89.0 * gomath.Pi / 180.0

// FirstPersonCamera sits at the player's eye height and looks along
// yaw/pitch angles driven by the mouse.
type FirstPersonCamera struct {
	Position math.Vec3
	Yaw      float32 // horizontal angle, radians, 0 = -Z
	Pitch    float32 // vertical angle, radians, clamped

	Sensitivity float32
	InvertY     bool
}

// NewFirstPersonCamera creates a first-person camera with default settings.
func NewFirstPersonCamera() *FirstPersonCamera {
	return &FirstPersonCamera{
		Sensitivity: 0.002,
	}
}

// Forward returns the full 3D look direction.
func (c *FirstPersonCamera) Forward() math.Vec3 {
	cosPitch := float32(gomath.Cos(float64(c.Pitch)))
	return math.Vec3{
		X: float32(gomath.Sin(float64(c.Yaw))) * cosPitch,
		Y: float32(gomath.Sin(float64(c.Pitch))),
		Z: -float32(gomath.Cos(float64(c.Yaw))) * cosPitch,
	}
}

// ForwardXZ returns the walk direction on the ground plane.
func (c *FirstPersonCamera) ForwardXZ() (x, z float32) {
	return float32(gomath.Sin(float64(c.Yaw))), -float32(gomath.Cos(float64(c.Yaw)))
}

// RightXZ returns the strafe direction on the ground plane.
func (c *FirstPersonCamera) RightXZ() (x, z float32) {
	return float32(gomath.Cos(float64(c.Yaw))), float32(gomath.Sin(float64(c.Yaw)))
}

// HandleLook applies a mouse delta to yaw and pitch, clamping pitch so
// the view never flips over.
func (c *FirstPersonCamera) HandleLook(deltaX, deltaY float32) {
	c.Yaw += deltaX * c.Sensitivity

	dy := -deltaY
	if c.InvertY {
		dy = deltaY
	}
	c.Pitch += dy * c.Sensitivity
	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	}
	if c.Pitch < -maxPitch {
		c.Pitch = -maxPitch
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *FirstPersonCamera) ViewMatrix() math.Mat4 {
	target := c.Position.Add(c.Forward())
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(c.Position, target, up)
}

// FollowCamera trails a target from behind and slightly above, for the
// third-person view.
type FollowCamera struct {
	Yaw   float32 // horizontal rotation around the target, radians
	Pitch float32 // downward viewing angle, radians

	Distance    float32
	MinDistance float32
	MaxDistance float32

	LookHeight      float32 // aim point above the target's feet
	ZoomSensitivity float32
}

// NewFollowCamera creates a follow camera with default settings.
func NewFollowCamera() *FollowCamera {
	return &FollowCamera{
		Pitch:           0.35,
		Distance:        6.0,
		MinDistance:     2.0,
		MaxDistance:     20.0,
		LookHeight:      1.5,
		ZoomSensitivity: 0.1,
	}
}

// Position calculates the camera position for the given target.
func (c *FollowCamera) Position(target math.Vec3) math.Vec3 {
	offsetY := c.Distance * float32(gomath.Sin(float64(c.Pitch)))
	horiz := c.Distance * float32(gomath.Cos(float64(c.Pitch)))
	return math.Vec3{
		X: target.X - horiz*float32(gomath.Sin(float64(c.Yaw))),
		Y: target.Y + offsetY,
		Z: target.Z + horiz*float32(gomath.Cos(float64(c.Yaw))),
	}
}

// ViewMatrix returns the view matrix looking at the target.
func (c *FollowCamera) ViewMatrix(target math.Vec3) math.Mat4 {
	pos := c.Position(target)
	aim := math.Vec3{X: target.X, Y: target.Y + c.LookHeight, Z: target.Z}
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(pos, aim, up)
}

// HandleZoom updates distance from the target.
func (c *FollowCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}
