package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/crystalcaves/pkg/math"
)

func TestFirstPerson_PitchClamped(t *testing.T) {
	c := NewFirstPersonCamera()

	// Yank the mouse far past the vertical limit.
	c.HandleLook(0, -100000)
	if c.Pitch > float32(maxPitch)+1e-6 {
		t.Errorf("pitch %v exceeds limit %v", c.Pitch, maxPitch)
	}

	c.HandleLook(0, 100000)
	if c.Pitch < -float32(maxPitch)-1e-6 {
		t.Errorf("pitch %v below limit %v", c.Pitch, -maxPitch)
	}
}

func TestFirstPerson_InvertY(t *testing.T) {
	normal := NewFirstPersonCamera()
	inverted := NewFirstPersonCamera()
	inverted.InvertY = true

	normal.HandleLook(0, 100)
	inverted.HandleLook(0, 100)

	if normal.Pitch >= 0 {
		t.Errorf("mouse down should pitch down, got %v", normal.Pitch)
	}
	if inverted.Pitch != -normal.Pitch {
		t.Errorf("inverted pitch = %v, want %v", inverted.Pitch, -normal.Pitch)
	}
}

func TestFirstPerson_ForwardAtRest(t *testing.T) {
	c := NewFirstPersonCamera()
	fwd := c.Forward()

	// Zero yaw and pitch looks straight down -Z.
	if gomath.Abs(float64(fwd.X)) > 1e-6 || gomath.Abs(float64(fwd.Y)) > 1e-6 ||
		gomath.Abs(float64(fwd.Z+1)) > 1e-6 {
		t.Errorf("forward = %+v, want (0, 0, -1)", fwd)
	}
}

func TestFirstPerson_StrafePerpendicular(t *testing.T) {
	c := NewFirstPersonCamera()
	c.Yaw = 1.2

	fx, fz := c.ForwardXZ()
	rx, rz := c.RightXZ()
	dot := fx*rx + fz*rz
	if gomath.Abs(float64(dot)) > 1e-6 {
		t.Errorf("forward and right not perpendicular: dot = %v", dot)
	}
}

func TestFollow_StaysBehindTarget(t *testing.T) {
	c := NewFollowCamera()
	target := math.Vec3{X: 10, Y: 0, Z: -5}

	pos := c.Position(target)
	if pos.Y <= target.Y {
		t.Errorf("camera height %v not above target %v", pos.Y, target.Y)
	}
	if got := pos.Distance(target); gomath.Abs(float64(got-c.Distance)) > 1e-5 {
		t.Errorf("camera distance = %v, want %v", got, c.Distance)
	}
}

func TestFollow_ZoomClamped(t *testing.T) {
	c := NewFollowCamera()

	for i := 0; i < 100; i++ {
		c.HandleZoom(10)
	}
	if c.Distance < c.MinDistance {
		t.Errorf("distance %v below minimum %v", c.Distance, c.MinDistance)
	}

	for i := 0; i < 100; i++ {
		c.HandleZoom(-10)
	}
	if c.Distance > c.MaxDistance {
		t.Errorf("distance %v above maximum %v", c.Distance, c.MaxDistance)
	}
}
