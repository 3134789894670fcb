package renderer

import (
	gomath "math"
	"testing"
)

func TestProjectionConvertsFOVDegrees(t *testing.T) {
	r := &Renderer{config: Config{Width: 800, Height: 600, FOV: 60, DrawFar: 500}}

	proj := r.projection()

	// Focal term for a 60 degree vertical FOV: 1/tan(30deg).
	want := float32(1.0 / gomath.Tan(60*gomath.Pi/180/2))
	if gomath.Abs(float64(proj[5]-want)) > 1e-4 {
		t.Errorf("focal term = %v, want %v", proj[5], want)
	}

	// A degree value fed straight through lands on a negative tangent
	// and flips the frame.
	if proj[5] <= 0 {
		t.Errorf("focal term = %v, must be positive", proj[5])
	}

	aspect := float32(800) / 600
	if gomath.Abs(float64(proj[0]-want/aspect)) > 1e-4 {
		t.Errorf("horizontal focal term = %v, want %v", proj[0], want/aspect)
	}
}
