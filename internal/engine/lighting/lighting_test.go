package lighting

import (
	gomath "math"
	"testing"
)

func TestFromAnglesZenith(t *testing.T) {
	pos := FromAngles(0, 90, 10)

	if gomath.Abs(float64(pos.Y-10)) > 1e-4 {
		t.Errorf("zenith Y = %v, want 10", pos.Y)
	}
	if gomath.Abs(float64(pos.X)) > 1e-4 || gomath.Abs(float64(pos.Z)) > 1e-4 {
		t.Errorf("zenith X/Z = %v/%v, want 0/0", pos.X, pos.Z)
	}
}

func TestFromAnglesHorizon(t *testing.T) {
	pos := FromAngles(90, 0, 5)

	if gomath.Abs(float64(pos.X-5)) > 1e-4 {
		t.Errorf("X = %v, want 5", pos.X)
	}
	if gomath.Abs(float64(pos.Y)) > 1e-4 {
		t.Errorf("Y = %v, want 0 at the horizon", pos.Y)
	}
}

func TestPointLightClampColors(t *testing.T) {
	l := PointLight{
		Ambient: [4]float32{-0.5, 0.5, 2, 1},
		Diffuse: [4]float32{1.5, -1, 0.3, 1},
	}

	l.ClampColors()

	wantAmbient := [4]float32{0, 0.5, 1, 1}
	wantDiffuse := [4]float32{1, 0, 0.3, 1}
	if l.Ambient != wantAmbient {
		t.Errorf("Ambient = %v, want %v", l.Ambient, wantAmbient)
	}
	if l.Diffuse != wantDiffuse {
		t.Errorf("Diffuse = %v, want %v", l.Diffuse, wantDiffuse)
	}
}
