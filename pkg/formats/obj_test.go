package formats

import (
	"os"
	"path/filepath"
	"testing"
)

// writeFile drops a test asset into dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func loadOBJString(t *testing.T, content string) *Document {
	t.Helper()
	path := writeFile(t, t.TempDir(), "model.obj", content)
	doc, err := LoadOBJ(path, nil)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	return doc
}

func TestLoadOBJ_MissingFile(t *testing.T) {
	if _, err := LoadOBJ(filepath.Join(t.TempDir(), "nope.obj"), nil); err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestLoadOBJ_Basic(t *testing.T) {
	doc := loadOBJString(t, `
v 0 0 0
v 1 0 0
v 1 1 0
vt 0 0
vt 1 0
vt 1 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1
`)

	if !doc.Loaded {
		t.Fatal("document not loaded")
	}
	if len(doc.Vertices) != 3 {
		t.Errorf("got %d vertices, want 3", len(doc.Vertices))
	}
	if len(doc.TexCoords) != 3 {
		t.Errorf("got %d texcoords, want 3", len(doc.TexCoords))
	}
	if len(doc.Normals) != 1 {
		t.Errorf("got %d normals, want 1", len(doc.Normals))
	}
	if len(doc.Faces) != 1 {
		t.Fatalf("got %d faces, want 1", len(doc.Faces))
	}

	want := []Corner{
		{Vertex: 0, TexCoord: 0, Normal: 0},
		{Vertex: 1, TexCoord: 1, Normal: 0},
		{Vertex: 2, TexCoord: 2, Normal: 0},
	}
	for i, c := range doc.Faces[0].Corners {
		if c != want[i] {
			t.Errorf("corner %d = %+v, want %+v", i, c, want[i])
		}
	}
}

func TestLoadOBJ_CornerGrammars(t *testing.T) {
	tests := []struct {
		name string
		face string
		want []Corner
	}{
		{
			name: "vertex only",
			face: "f 1 2 3",
			want: []Corner{
				{0, -1, -1}, {1, -1, -1}, {2, -1, -1},
			},
		},
		{
			name: "vertex and texcoord",
			face: "f 1/1 2/2 3/3",
			want: []Corner{
				{0, 0, -1}, {1, 1, -1}, {2, 2, -1},
			},
		},
		{
			name: "vertex texcoord normal",
			face: "f 1/1/1 2/2/1 3/3/1",
			want: []Corner{
				{0, 0, 0}, {1, 1, 0}, {2, 2, 0},
			},
		},
		{
			name: "vertex and normal only",
			face: "f 1//1 2//1 3//1",
			want: []Corner{
				{0, -1, 0}, {1, -1, 0}, {2, -1, 0},
			},
		},
	}

	prefix := `
v 0 0 0
v 1 0 0
v 1 1 0
vt 0 0
vt 1 0
vt 1 1
vn 0 0 1
`
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := loadOBJString(t, prefix+tt.face+"\n")
			if len(doc.Faces) != 1 {
				t.Fatalf("got %d faces, want 1", len(doc.Faces))
			}
			for i, c := range doc.Faces[0].Corners {
				if c != tt.want[i] {
					t.Errorf("corner %d = %+v, want %+v", i, c, tt.want[i])
				}
			}
		})
	}
}

func TestLoadOBJ_NegativeIndices(t *testing.T) {
	// Relative indices count back from the most recent vertex.
	doc := loadOBJString(t, `
v 0 0 0
v 1 0 0
v 1 1 0
f -1 -2 -3
`)
	if len(doc.Faces) != 1 {
		t.Fatalf("got %d faces, want 1", len(doc.Faces))
	}
	want := [3]int{2, 1, 0}
	for i, c := range doc.Faces[0].Corners {
		if c.Vertex != want[i] {
			t.Errorf("corner %d vertex = %d, want %d", i, c.Vertex, want[i])
		}
	}
}

func TestLoadOBJ_DegenerateFaceDropped(t *testing.T) {
	doc := loadOBJString(t, `
v 0 0 0
v 1 0 0
v 1 1 0
f 1 2
f 1 2 3
`)
	if len(doc.Faces) != 1 {
		t.Errorf("got %d faces, want 1 (two-corner face must be dropped)", len(doc.Faces))
	}
	for _, f := range doc.Faces {
		if len(f.Corners) < 3 {
			t.Errorf("stored face has %d corners", len(f.Corners))
		}
	}
}

func TestLoadOBJ_WindowsLineEndings(t *testing.T) {
	doc := loadOBJString(t, "v 0 0 0\r\nv 1 0 0\r\nv 1 1 0\r\nf 1 2 3\r\n")
	if !doc.Loaded {
		t.Fatal("document not loaded")
	}
	if len(doc.Vertices) != 3 || len(doc.Faces) != 1 {
		t.Errorf("got %d vertices and %d faces, want 3 and 1", len(doc.Vertices), len(doc.Faces))
	}
}

func TestLoadOBJ_UsemtlWithSpaces(t *testing.T) {
	doc := loadOBJString(t, `
v 0 0 0
v 1 0 0
v 1 1 0
usemtl Shiny Red Metal
f 1 2 3
`)
	if got := doc.Faces[0].Material; got != "Shiny Red Metal" {
		t.Errorf("face material = %q, want %q", got, "Shiny Red Metal")
	}
}

func TestLoadOBJ_EmptyDocumentNotLoaded(t *testing.T) {
	doc := loadOBJString(t, "# just a comment\n")
	if doc.Loaded {
		t.Error("zero-vertex document must not be loaded")
	}
	if doc.Batch() != nil {
		t.Error("unloaded document must have no batch")
	}
}

func TestLoadOBJ_UnknownDirectivesIgnored(t *testing.T) {
	doc := loadOBJString(t, `
o cube
g side
s off
v 0 0 0
v 1 0 0
v 1 1 0
f 1 2 3
`)
	if !doc.Loaded || len(doc.Faces) != 1 {
		t.Errorf("loaded=%v faces=%d, want true and 1", doc.Loaded, len(doc.Faces))
	}
}

func TestLoadOBJ_MtllibMerged(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "scene.mtl", `
newmtl stone
Kd 0.5 0.5 0.5
`)
	path := writeFile(t, dir, "scene.obj", `
mtllib scene.mtl
v 0 0 0
v 1 0 0
v 1 1 0
usemtl stone
f 1 2 3
`)

	doc, err := LoadOBJ(path, nil)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	mat, ok := doc.Materials.Get("stone")
	if !ok {
		t.Fatal("material 'stone' not merged from mtllib")
	}
	if mat.Diffuse[0] != 0.5 {
		t.Errorf("diffuse R = %v, want 0.5", mat.Diffuse[0])
	}
	if doc.Faces[0].Material != "stone" {
		t.Errorf("face material = %q, want stone", doc.Faces[0].Material)
	}
}

func TestLoadOBJ_MissingMtllibNonFatal(t *testing.T) {
	doc := loadOBJString(t, `
mtllib does_not_exist.mtl
v 0 0 0
v 1 0 0
v 1 1 0
f 1 2 3
`)
	if !doc.Loaded {
		t.Error("document must load despite missing material library")
	}
	if len(doc.Materials) != 0 {
		t.Errorf("got %d materials, want 0", len(doc.Materials))
	}
}
