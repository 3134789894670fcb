package renderer

import (
	gomath "math"

	"github.com/go-gl/gl/v2.1/gl"

	"github.com/Faultbox/crystalcaves/pkg/math"
)

// Procedural primitives for scene props that have no model file:
// ground planes, rocks, mushroom stems, crystal shards. All draw in
// immediate mode around the current matrix; callers push, translate
// and set color first.

// SetColor sets the current color, which COLOR_MATERIAL routes into
// the ambient and diffuse material terms.
func SetColor(red, green, blue float32) {
	gl.Color3f(red, green, blue)
}

// SetColorAlpha is SetColor with transparency.
func SetColorAlpha(red, green, blue, alpha float32) {
	gl.Color4f(red, green, blue, alpha)
}

// SetEmission makes the following geometry self-glow. Pair with
// ClearEmission or everything after it glows too.
func SetEmission(red, green, blue float32) {
	emission := [4]float32{red, green, blue, 1}
	gl.Materialfv(gl.FRONT_AND_BACK, gl.EMISSION, &emission[0])
}

// ClearEmission resets the emission term to black.
func ClearEmission() {
	SetEmission(0, 0, 0)
}

// PushTransform saves the matrix, then translates, rotates around Y
// and uniformly scales. Balance with PopTransform.
func PushTransform(pos math.Vec3, rotY, scale float32) {
	gl.PushMatrix()
	gl.Translatef(pos.X, pos.Y, pos.Z)
	gl.Rotatef(rotY, 0, 1, 0)
	gl.Scalef(scale, scale, scale)
}

// PushTransformZ is PushTransform with an extra tilt around Z before
// the Y spin, for leaning crystal shards.
func PushTransformZ(pos math.Vec3, rotZ, rotY, scale float32) {
	gl.PushMatrix()
	gl.Translatef(pos.X, pos.Y, pos.Z)
	gl.Rotatef(rotZ, 0, 0, 1)
	gl.Rotatef(rotY, 0, 1, 0)
	gl.Scalef(scale, scale, scale)
}

// PopTransform restores the matrix saved by PushTransform.
func PopTransform() {
	gl.PopMatrix()
}

// DrawQuadXZ draws a flat rectangle on the ground plane at the given
// height, facing up.
func DrawQuadXZ(minX, minZ, maxX, maxZ, y float32) {
	gl.Begin(gl.QUADS)
	gl.Normal3f(0, 1, 0)
	gl.Vertex3f(minX, y, maxZ)
	gl.Vertex3f(maxX, y, maxZ)
	gl.Vertex3f(maxX, y, minZ)
	gl.Vertex3f(minX, y, minZ)
	gl.End()
}

// DrawBox draws an axis-aligned box centered at the origin.
func DrawBox(width, height, depth float32) {
	x, y, z := width/2, height/2, depth/2

	quads := [][4]math.Vec3{
		{{X: -x, Y: -y, Z: z}, {X: x, Y: -y, Z: z}, {X: x, Y: y, Z: z}, {X: -x, Y: y, Z: z}},     // front
		{{X: x, Y: -y, Z: -z}, {X: -x, Y: -y, Z: -z}, {X: -x, Y: y, Z: -z}, {X: x, Y: y, Z: -z}}, // back
		{{X: -x, Y: -y, Z: -z}, {X: -x, Y: -y, Z: z}, {X: -x, Y: y, Z: z}, {X: -x, Y: y, Z: -z}}, // left
		{{X: x, Y: -y, Z: z}, {X: x, Y: -y, Z: -z}, {X: x, Y: y, Z: -z}, {X: x, Y: y, Z: z}},     // right
		{{X: -x, Y: y, Z: z}, {X: x, Y: y, Z: z}, {X: x, Y: y, Z: -z}, {X: -x, Y: y, Z: -z}},     // top
		{{X: -x, Y: -y, Z: -z}, {X: x, Y: -y, Z: -z}, {X: x, Y: -y, Z: z}, {X: -x, Y: -y, Z: z}}, // bottom
	}
	normals := []math.Vec3{
		{Z: 1}, {Z: -1}, {X: -1}, {X: 1}, {Y: 1}, {Y: -1},
	}

	gl.Begin(gl.QUADS)
	for i, q := range quads {
		n := normals[i]
		gl.Normal3f(n.X, n.Y, n.Z)
		for _, v := range q {
			gl.Vertex3f(v.X, v.Y, v.Z)
		}
	}
	gl.End()
}

// DrawSphere draws a lat/long sphere centered at the origin.
func DrawSphere(radius float32, slices, stacks int) {
	for i := 0; i < stacks; i++ {
		lat0 := gomath.Pi * (float64(i)/float64(stacks) - 0.5)
		lat1 := gomath.Pi * (float64(i+1)/float64(stacks) - 0.5)
		y0, r0 := gomath.Sin(lat0), gomath.Cos(lat0)
		y1, r1 := gomath.Sin(lat1), gomath.Cos(lat1)

		gl.Begin(gl.QUAD_STRIP)
		for j := 0; j <= slices; j++ {
			lng := 2 * gomath.Pi * float64(j) / float64(slices)
			x, z := gomath.Cos(lng), gomath.Sin(lng)

			gl.Normal3f(float32(x*r0), float32(y0), float32(z*r0))
			gl.Vertex3f(radius*float32(x*r0), radius*float32(y0), radius*float32(z*r0))
			gl.Normal3f(float32(x*r1), float32(y1), float32(z*r1))
			gl.Vertex3f(radius*float32(x*r1), radius*float32(y1), radius*float32(z*r1))
		}
		gl.End()
	}
}

// DrawCone draws a cone from the origin rising along +Y, open at the
// bottom. Good for pine canopies and crystal shards.
func DrawCone(baseRadius, height float32, slices int) {
	gl.Begin(gl.TRIANGLES)
	for i := 0; i < slices; i++ {
		a0 := 2 * gomath.Pi * float64(i) / float64(slices)
		a1 := 2 * gomath.Pi * float64(i+1) / float64(slices)
		x0, z0 := float32(gomath.Cos(a0)), float32(gomath.Sin(a0))
		x1, z1 := float32(gomath.Cos(a1)), float32(gomath.Sin(a1))

		// Face normal from the midpoint of the edge, tilted by slope.
		mx, mz := (x0+x1)/2, (z0+z1)/2
		n := math.Vec3{X: mx * height, Y: baseRadius, Z: mz * height}.Normalize()

		gl.Normal3f(n.X, n.Y, n.Z)
		gl.Vertex3f(0, height, 0)
		gl.Vertex3f(baseRadius*x1, 0, baseRadius*z1)
		gl.Vertex3f(baseRadius*x0, 0, baseRadius*z0)
	}
	gl.End()
}

// DrawCylinder draws an open tube along +Y with separate base and top
// radii, matching what GLU quadrics provided for stems and trunks.
func DrawCylinder(baseRadius, topRadius, height float32, slices int) {
	gl.Begin(gl.QUAD_STRIP)
	for i := 0; i <= slices; i++ {
		a := 2 * gomath.Pi * float64(i) / float64(slices)
		x, z := float32(gomath.Cos(a)), float32(gomath.Sin(a))

		gl.Normal3f(x, 0, z)
		gl.Vertex3f(baseRadius*x, 0, baseRadius*z)
		gl.Vertex3f(topRadius*x, height, topRadius*z)
	}
	gl.End()
}

// WithLightingDisabled runs draw with lighting off, for self-lit
// geometry like the sky and sun.
func WithLightingDisabled(draw func()) {
	gl.Disable(gl.LIGHTING)
	draw()
	gl.Enable(gl.LIGHTING)
}
