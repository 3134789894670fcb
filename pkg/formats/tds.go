// 3DS chunked binary format parser.
//
// A 3DS file is a tree of tagged chunks. Each chunk header is a 2-byte
// tag plus a 4-byte total length that includes the 6-byte header
// itself, so a chunk starting at offset s ends at s+length. Container
// chunks hold sub-chunks until that end offset; leaf chunks hold
// payload. Unknown tags are skipped by seeking to the declared end.
package formats

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"

	gmath "github.com/Faultbox/crystalcaves/pkg/math"
)

// 3DS chunk tags.
const (
	chunkMain       uint16 = 0x4D4D // top-level container, must come first
	chunkEdit       uint16 = 0x3D3D // editor data container
	chunkObject     uint16 = 0x4000 // named object: cstring name + sub-chunks
	chunkTriMesh    uint16 = 0x4100 // triangle mesh container
	chunkVertexList uint16 = 0x4110 // uint16 count + count*3 floats
	chunkFaceList   uint16 = 0x4120 // uint16 count + count*(4 uint16)
	chunkUVList     uint16 = 0x4140 // uint16 count + count*2 floats
)

const chunkHeaderSize = 6

// 3DS format errors.
var (
	ErrInvalid3DSHeader = errors.New("invalid 3DS header: expected MAIN chunk")
	ErrTruncated3DSData = errors.New("truncated 3DS data")
)

// Load3DS parses a 3DS file from disk and runs the post-processing
// pipeline. The format carries neither materials nor normals, so the
// document ends up with a single unnamed material group and generated
// smooth normals.
func Load3DS(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading 3DS file: %w", err)
	}
	doc, err := Parse3DS(data)
	if doc != nil {
		doc.Name = path
	}
	return doc, err
}

// Parse3DS parses 3DS data from a byte slice. A file whose first chunk
// is not the MAIN container fails immediately; the returned document is
// then empty and not loaded. Truncated payloads inside an otherwise
// valid file terminate the walk, keeping whatever parsed cleanly, which
// is how legacy assets with sloppy trailing data load in practice.
func Parse3DS(data []byte) (*Document, error) {
	doc := newDocument("")
	r := &chunkReader{data: data}

	tag, length, err := r.header()
	if err != nil {
		return doc, ErrTruncated3DSData
	}
	if tag != chunkMain {
		return doc, ErrInvalid3DSHeader
	}

	p := &tdsParser{doc: doc, r: r}
	p.children(r.clampEnd(int(length)))

	// UV entries pair with vertices by position. Anything but an exact
	// size match means the mapping is unusable, so drop it entirely
	// rather than guessing an alignment.
	if len(doc.TexCoords) == len(doc.Vertices) && len(doc.TexCoords) > 0 {
		for fi := range doc.Faces {
			for ci := range doc.Faces[fi].Corners {
				doc.Faces[fi].Corners[ci].TexCoord = doc.Faces[fi].Corners[ci].Vertex
			}
		}
	} else {
		doc.TexCoords = nil
	}

	doc.finish()
	return doc, nil
}

type tdsParser struct {
	doc *Document
	r   *chunkReader
}

// children walks sub-chunks until the reader reaches end. Each child is
// dispatched and then the reader is forced to the child's declared end,
// which both skips unknown tags and contains malformed lengths.
func (p *tdsParser) children(end int) {
	for p.r.pos+chunkHeaderSize <= end {
		start := p.r.pos
		tag, length, err := p.r.header()
		if err != nil || length < chunkHeaderSize {
			return
		}
		childEnd := start + int(length)
		if childEnd > end {
			childEnd = end
		}
		p.chunk(tag, childEnd)
		p.r.seek(childEnd)
	}
}

func (p *tdsParser) chunk(tag uint16, end int) {
	switch tag {
	case chunkEdit, chunkTriMesh:
		p.children(end)

	case chunkObject:
		// Object name, then the object's own sub-chunks.
		if _, err := p.r.cstring(); err != nil {
			return
		}
		p.children(end)

	case chunkVertexList:
		p.vertexList(end)

	case chunkUVList:
		p.uvList(end)

	case chunkFaceList:
		p.faceList(end)
	}
	// Unknown tags fall through; the caller seeks past them.
}

func (p *tdsParser) vertexList(end int) {
	count, err := p.r.u16()
	if err != nil {
		return
	}
	for i := 0; i < int(count) && p.r.pos+12 <= end; i++ {
		x, errX := p.r.f32()
		y, errY := p.r.f32()
		z, errZ := p.r.f32()
		if errX != nil || errY != nil || errZ != nil {
			return
		}
		v := gmath.Vec3{X: x, Y: y, Z: z}
		p.doc.Vertices = append(p.doc.Vertices, v)
		p.doc.Extents.expand(v)
	}
}

func (p *tdsParser) uvList(end int) {
	count, err := p.r.u16()
	if err != nil {
		return
	}
	for i := 0; i < int(count) && p.r.pos+8 <= end; i++ {
		u, errU := p.r.f32()
		v, errV := p.r.f32()
		if errU != nil || errV != nil {
			return
		}
		p.doc.TexCoords = append(p.doc.TexCoords, gmath.Vec2{X: u, Y: v})
	}
}

func (p *tdsParser) faceList(end int) {
	count, err := p.r.u16()
	if err != nil {
		return
	}
	for i := 0; i < int(count) && p.r.pos+8 <= end; i++ {
		v1, err1 := p.r.u16()
		v2, err2 := p.r.u16()
		v3, err3 := p.r.u16()
		_, errF := p.r.u16() // face flags, read but not interpreted
		if err1 != nil || err2 != nil || err3 != nil || errF != nil {
			return
		}
		p.doc.Faces = append(p.doc.Faces, Face{
			Corners: []Corner{
				{Vertex: int(v1), TexCoord: -1, Normal: -1},
				{Vertex: int(v2), TexCoord: -1, Normal: -1},
				{Vertex: int(v3), TexCoord: -1, Normal: -1},
			},
		})
	}
}

// chunkReader is a bounds-checked little-endian reader over the raw
// file bytes, tracking an absolute position so chunk end offsets can
// be enforced exactly.
type chunkReader struct {
	data []byte
	pos  int
}

func (r *chunkReader) header() (tag uint16, length uint32, err error) {
	if tag, err = r.u16(); err != nil {
		return 0, 0, err
	}
	if length, err = r.u32(); err != nil {
		return 0, 0, err
	}
	return tag, length, nil
}

func (r *chunkReader) u16() (uint16, error) {
	if r.pos+2 > len(r.data) {
		return 0, ErrTruncated3DSData
	}
	v := binary.LittleEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, nil
}

func (r *chunkReader) u32() (uint32, error) {
	if r.pos+4 > len(r.data) {
		return 0, ErrTruncated3DSData
	}
	v := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *chunkReader) f32() (float32, error) {
	v, err := r.u32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func (r *chunkReader) cstring() (string, error) {
	start := r.pos
	for r.pos < len(r.data) {
		if r.data[r.pos] == 0 {
			s := string(r.data[start:r.pos])
			r.pos++
			return s, nil
		}
		r.pos++
	}
	return "", ErrTruncated3DSData
}

// seek moves to an absolute offset, clamped to the data size.
func (r *chunkReader) seek(pos int) {
	if pos > len(r.data) {
		pos = len(r.data)
	}
	if pos < 0 {
		pos = 0
	}
	r.pos = pos
}

func (r *chunkReader) clampEnd(end int) int {
	if end > len(r.data) {
		return len(r.data)
	}
	return end
}
