// Render batch construction: material grouping and fan triangulation.
package formats

import (
	"sort"

	"github.com/Faultbox/crystalcaves/pkg/math"
)

// DrawVertex is one resolved triangle corner, ready for submission to
// an immediate-mode renderer. HasNormal/HasTexCoord distinguish
// corners whose reference was absent or out of range; the renderer
// then skips that attribute call, leaving whatever was set last, which
// matches how the legacy assets were authored to render.
type DrawVertex struct {
	Position    math.Vec3
	Normal      math.Vec3
	TexCoord    math.Vec2
	HasNormal   bool
	HasTexCoord bool
}

// BatchGroup is the ordered triangle list for one material.
type BatchGroup struct {
	Material string // empty = no material, renderer default applies
	Vertices []DrawVertex
}

// Batch is the material-grouped, triangulated derivative of a
// Document. It is built once when the document finishes loading and
// never mutated; reloading an asset means building a new document.
type Batch struct {
	Groups []BatchGroup
}

// Triangles returns the total triangle count across all groups.
func (b *Batch) Triangles() int {
	n := 0
	for _, g := range b.Groups {
		n += len(g.Vertices) / 3
	}
	return n
}

// buildBatch partitions the document's faces by material name (groups
// ordered by sorted name for deterministic output) and fan-triangulates
// each face: corner 0 paired with each consecutive pair of the rest.
// Corners with an out-of-range vertex index are omitted rather than
// failing the build; legacy assets contain such data.
func buildBatch(d *Document) *Batch {
	byMaterial := make(map[string][]int)
	for i, face := range d.Faces {
		byMaterial[face.Material] = append(byMaterial[face.Material], i)
	}

	names := make([]string, 0, len(byMaterial))
	for name := range byMaterial {
		names = append(names, name)
	}
	sort.Strings(names)

	batch := &Batch{Groups: make([]BatchGroup, 0, len(names))}
	for _, name := range names {
		group := BatchGroup{Material: name}
		for _, fi := range byMaterial[name] {
			face := &d.Faces[fi]
			if len(face.Corners) < 3 {
				continue
			}
			for i := 1; i < len(face.Corners)-1; i++ {
				group.appendCorner(d, face.Corners[0])
				group.appendCorner(d, face.Corners[i])
				group.appendCorner(d, face.Corners[i+1])
			}
		}
		batch.Groups = append(batch.Groups, group)
	}
	return batch
}

func (g *BatchGroup) appendCorner(d *Document, c Corner) {
	if !d.vertexInRange(c.Vertex) {
		return
	}
	dv := DrawVertex{Position: d.Vertices[c.Vertex]}
	if c.Normal >= 0 && c.Normal < len(d.Normals) {
		dv.Normal = d.Normals[c.Normal]
		dv.HasNormal = true
	}
	if c.TexCoord >= 0 && c.TexCoord < len(d.TexCoords) {
		dv.TexCoord = d.TexCoords[c.TexCoord]
		dv.HasTexCoord = true
	}
	g.Vertices = append(g.Vertices, dv)
}
