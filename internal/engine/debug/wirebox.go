package debug

import "github.com/Faultbox/crystalcaves/pkg/math"

// WireBox returns line segment endpoints for a wireframe box between
// two corners: 12 edges, packed [x y z] per vertex, ready for an unlit
// line draw.
func WireBox(min, max math.Vec3) []float32 {
	return []float32{
		// bottom
		min.X, min.Y, min.Z, max.X, min.Y, min.Z,
		max.X, min.Y, min.Z, max.X, min.Y, max.Z,
		max.X, min.Y, max.Z, min.X, min.Y, max.Z,
		min.X, min.Y, max.Z, min.X, min.Y, min.Z,
		// top
		min.X, max.Y, min.Z, max.X, max.Y, min.Z,
		max.X, max.Y, min.Z, max.X, max.Y, max.Z,
		max.X, max.Y, max.Z, min.X, max.Y, max.Z,
		min.X, max.Y, max.Z, min.X, max.Y, min.Z,
		// verticals
		min.X, min.Y, min.Z, min.X, max.Y, min.Z,
		max.X, min.Y, min.Z, max.X, max.Y, min.Z,
		max.X, min.Y, max.Z, max.X, max.Y, max.Z,
		min.X, min.Y, max.Z, min.X, max.Y, max.Z,
	}
}

// WireCylinderBounds boxes a ground-plane collision circle: centered
// at (x, z), radius wide, rising to the given height. Obstacle
// overlays use it.
func WireCylinderBounds(x, z, radius, height float32) []float32 {
	return WireBox(
		math.Vec3{X: x - radius, Y: 0, Z: z - radius},
		math.Vec3{X: x + radius, Y: height, Z: z + radius},
	)
}
