// Package lighting provides light source descriptions for scene
// rendering.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/crystalcaves/pkg/math"
)

// Sun is an outdoor scene's main light, positioned far away so the
// whole scene sees roughly parallel rays.
type Sun struct {
	Position math.Vec3
	Ambient  [4]float32
	Diffuse  [4]float32
}

// FromAngles places a sun at the given sky angles and distance.
// Longitude rotates around Y (degrees), latitude is elevation from the
// horizon.
func FromAngles(longitude, latitude, distance float32) math.Vec3 {
	lon := float64(longitude) * gomath.Pi / 180
	lat := float64(latitude) * gomath.Pi / 180

	cosLat := gomath.Cos(lat)
	return math.Vec3{
		X: float32(cosLat*gomath.Sin(lon)) * distance,
		Y: float32(gomath.Sin(lat)) * distance,
		Z: float32(cosLat*gomath.Cos(lon)) * distance,
	}
}

// PointLight is a colored local light, like a crystal formation's
// glow.
type PointLight struct {
	Position math.Vec3
	Ambient  [4]float32
	Diffuse  [4]float32
}

// ClampColors limits the light's color terms to [0, 1]. Hand-tuned
// scene data sometimes overshoots.
func (l *PointLight) ClampColors() {
	for i := range l.Ambient {
		l.Ambient[i] = clamp01(l.Ambient[i])
		l.Diffuse[i] = clamp01(l.Diffuse[i])
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
