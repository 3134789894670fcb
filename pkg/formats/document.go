// Package formats provides parsers for legacy 3D model file formats.
// Both the Wavefront OBJ text format and the 3DS chunked binary format
// are parsed into the same Document representation.
package formats

import (
	"github.com/Faultbox/crystalcaves/pkg/math"
)

// Corner is one vertex reference within a face. Indices are 0-based;
// -1 means the reference is absent.
type Corner struct {
	Vertex   int
	TexCoord int
	Normal   int
}

// Face is one polygon with at least 3 corners. Faces with fewer
// corners are dropped during parsing and never stored.
type Face struct {
	Corners  []Corner
	Material string // active material name, empty = none
}

// Bounds is the axis-aligned bounding volume of a document.
type Bounds struct {
	Min    math.Vec3
	Max    math.Vec3
	Center math.Vec3
	Radius float32
}

// Extents tracks the running vertex Y/Z range seen by the binary
// parser. Scenes use it for ground placement; it carries no geometric
// invariant beyond "range of what was read".
type Extents struct {
	MinY, MaxY float32
	MinZ, MaxZ float32
	Valid      bool
}

func (e *Extents) expand(v math.Vec3) {
	if !e.Valid {
		e.MinY, e.MaxY = v.Y, v.Y
		e.MinZ, e.MaxZ = v.Z, v.Z
		e.Valid = true
		return
	}
	if v.Y < e.MinY {
		e.MinY = v.Y
	}
	if v.Y > e.MaxY {
		e.MaxY = v.Y
	}
	if v.Z < e.MinZ {
		e.MinZ = v.Z
	}
	if v.Z > e.MaxZ {
		e.MaxZ = v.Z
	}
}

// Document is the parsed representation of one 3D asset file.
// A parser populates it append-only, then the load entry point runs
// the post-processing pipeline (normals if absent, bounds, batch).
// After that the document is immutable and safe to share between
// scenes and entities without locking.
type Document struct {
	Name      string
	Vertices  []math.Vec3
	Normals   []math.Vec3
	TexCoords []math.Vec2
	Faces     []Face
	Materials MaterialTable
	Bounds    Bounds
	Extents   Extents

	// Loaded is false for documents that failed to parse or parsed
	// to zero vertices. Accessors stay safe either way.
	Loaded bool

	batch *Batch
}

func newDocument(name string) *Document {
	return &Document{
		Name:      name,
		Materials: MaterialTable{},
	}
}

// Batch returns the cached render batch, or nil for documents that
// never finished loading.
func (d *Document) Batch() *Batch {
	return d.batch
}

// finish runs the post-parse pipeline. A document with no vertices
// stays not-loaded and is skipped entirely.
func (d *Document) finish() {
	if len(d.Vertices) == 0 {
		return
	}
	if len(d.Normals) == 0 {
		d.GenerateNormals()
	}
	d.ComputeBounds()
	d.batch = buildBatch(d)
	d.Loaded = true
}

// GenerateNormals computes smoothed per-vertex normals from face
// geometry: every face's unit normal (from its first three corners) is
// accumulated into each vertex the face references, then the
// accumulators are normalized. Vertices referenced by no face keep the
// zero vector. Each face's corner normal indices are rewritten to its
// vertex indices so lookups hit the generated list.
//
// Called once during load, only when the parsed document carried no
// normals of its own.
func (d *Document) GenerateNormals() {
	d.Normals = make([]math.Vec3, len(d.Vertices))

	for _, face := range d.Faces {
		if len(face.Corners) < 3 {
			continue
		}
		i0, i1, i2 := face.Corners[0].Vertex, face.Corners[1].Vertex, face.Corners[2].Vertex
		if !d.vertexInRange(i0) || !d.vertexInRange(i1) || !d.vertexInRange(i2) {
			continue
		}

		v0 := d.Vertices[i0]
		edge1 := d.Vertices[i1].Sub(v0)
		edge2 := d.Vertices[i2].Sub(v0)
		faceNormal := edge1.Cross(edge2).Normalize()

		// Unweighted accumulation over every corner, not just the
		// first three.
		for _, c := range face.Corners {
			if d.vertexInRange(c.Vertex) {
				d.Normals[c.Vertex] = d.Normals[c.Vertex].Add(faceNormal)
			}
		}
	}

	for i := range d.Normals {
		d.Normals[i] = d.Normals[i].Normalize()
	}

	for fi := range d.Faces {
		for ci := range d.Faces[fi].Corners {
			d.Faces[fi].Corners[ci].Normal = d.Faces[fi].Corners[ci].Vertex
		}
	}
}

// ComputeBounds fills in the bounding box, center and bounding radius
// from the vertex list. An empty vertex list leaves the zero bounds.
// Called once during load, after parsing completes.
func (d *Document) ComputeBounds() {
	if len(d.Vertices) == 0 {
		return
	}

	min, max := d.Vertices[0], d.Vertices[0]
	for _, v := range d.Vertices[1:] {
		if v.X < min.X {
			min.X = v.X
		}
		if v.Y < min.Y {
			min.Y = v.Y
		}
		if v.Z < min.Z {
			min.Z = v.Z
		}
		if v.X > max.X {
			max.X = v.X
		}
		if v.Y > max.Y {
			max.Y = v.Y
		}
		if v.Z > max.Z {
			max.Z = v.Z
		}
	}

	d.Bounds = Bounds{
		Min:    min,
		Max:    max,
		Center: min.Add(max).Scale(0.5),
		Radius: max.Sub(min).Length() / 2,
	}
}

func (d *Document) vertexInRange(i int) bool {
	return i >= 0 && i < len(d.Vertices)
}
