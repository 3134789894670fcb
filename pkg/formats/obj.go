// Wavefront OBJ text format parser.
package formats

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Faultbox/crystalcaves/pkg/math"
)

// LoadOBJ parses an OBJ document and any material libraries it
// references, then runs the post-processing pipeline (normal
// generation if the file carried none, bounds, render batch).
//
// A missing or unreadable primary file is an error. A missing material
// library is not: the document simply loads with zero materials. A
// document that parses to zero vertices is returned with Loaded=false.
func LoadOBJ(path string, textures TextureLoader) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening OBJ file: %w", err)
	}
	defer f.Close()

	doc := newDocument(path)
	p := &objParser{
		doc:      doc,
		dir:      filepath.Dir(path),
		textures: textures,
	}
	if err := p.parse(f); err != nil {
		return nil, fmt.Errorf("reading OBJ file: %w", err)
	}

	doc.finish()
	return doc, nil
}

// objParser carries the line-by-line parse state: the growing document
// and the material name most recently selected by usemtl.
type objParser struct {
	doc      *Document
	dir      string
	textures TextureLoader
	material string
}

func (p *objParser) parse(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		// Tolerate Windows line endings.
		p.line(strings.TrimSuffix(scanner.Text(), "\r"))
	}
	return scanner.Err()
}

func (p *objParser) line(line string) {
	directive, rest := splitDirective(line)

	switch directive {
	case "v":
		if v, ok := parseVec3(rest); ok {
			p.doc.Vertices = append(p.doc.Vertices, v)
		}
	case "vn":
		if v, ok := parseVec3(rest); ok {
			p.doc.Normals = append(p.doc.Normals, v)
		}
	case "vt":
		fields := strings.Fields(rest)
		if len(fields) >= 2 {
			u, okU := parseFloat(fields[0])
			v, okV := parseFloat(fields[1])
			if okU && okV {
				p.doc.TexCoords = append(p.doc.TexCoords, math.Vec2{X: u, Y: v})
			}
		}
	case "f":
		p.face(rest)
	case "mtllib":
		// Path is relative to the OBJ's own directory. A missing
		// library is non-fatal: the document loads with no materials.
		if rest != "" {
			_ = ParseMTL(filepath.Join(p.dir, rest), p.doc.Materials, p.textures)
		}
	case "usemtl":
		// Material names may contain spaces; take the rest of the
		// line verbatim.
		p.material = rest
	}
	// Unrecognized directives are ignored.
}

func (p *objParser) face(rest string) {
	face := Face{Material: p.material}
	for _, token := range strings.Fields(rest) {
		corner, ok := p.corner(token)
		if !ok {
			continue
		}
		face.Corners = append(face.Corners, corner)
	}
	if len(face.Corners) >= 3 {
		p.doc.Faces = append(p.doc.Faces, face)
	}
}

// corner parses one face corner token. The supported grammars are
// v, v/vt, v/vt/vn and v//vn. Indices are 1-based in the file;
// negative indices count back from the most recently appended element
// of the respective array.
func (p *objParser) corner(token string) (Corner, bool) {
	parts := strings.Split(token, "/")

	v, err := strconv.Atoi(parts[0])
	if err != nil {
		return Corner{}, false
	}

	vt, vn := 0, 0 // 0 = absent before the 1-based conversion
	if len(parts) >= 2 && parts[1] != "" {
		if i, err := strconv.Atoi(parts[1]); err == nil {
			vt = i
		}
	}
	if len(parts) >= 3 && parts[2] != "" {
		if i, err := strconv.Atoi(parts[2]); err == nil {
			vn = i
		}
	}

	// Resolve relative indices against the current array sizes, then
	// convert to 0-based. Absent references fall out as -1.
	if v < 0 {
		v = len(p.doc.Vertices) + v + 1
	}
	if vt < 0 {
		vt = len(p.doc.TexCoords) + vt + 1
	}
	if vn < 0 {
		vn = len(p.doc.Normals) + vn + 1
	}

	return Corner{Vertex: v - 1, TexCoord: vt - 1, Normal: vn - 1}, true
}

func parseVec3(rest string) (math.Vec3, bool) {
	fields := strings.Fields(rest)
	if len(fields) < 3 {
		return math.Vec3{}, false
	}
	x, okX := parseFloat(fields[0])
	y, okY := parseFloat(fields[1])
	z, okZ := parseFloat(fields[2])
	if !okX || !okY || !okZ {
		return math.Vec3{}, false
	}
	return math.Vec3{X: x, Y: y, Z: z}, true
}
