package asset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/crystalcaves/internal/logger"
	"github.com/Faultbox/crystalcaves/pkg/math"
)

func TestMain(m *testing.M) {
	logger.InitWithFileConfig("error", logger.FileConfig{}, false)
	os.Exit(m.Run())
}

const triangleOBJ = `
v 0 0 0
v 1 0 0
v 1 1 0
f 1 2 3
`

func writeModel(t *testing.T, root, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(root, name), []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

func TestManagerLoadAndCache(t *testing.T) {
	root := t.TempDir()
	writeModel(t, root, "tree.obj", triangleOBJ)

	m := NewManager(root, nil)

	doc, err := m.Load("tree.obj")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !doc.Loaded {
		t.Fatal("document not loaded")
	}
	if !m.Cached("tree.obj") {
		t.Error("document not cached after load")
	}

	again, err := m.Load("tree.obj")
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if again != doc {
		t.Error("second load returned a different document")
	}
}

func TestManagerMissingFile(t *testing.T) {
	m := NewManager(t.TempDir(), nil)
	if _, err := m.Load("gone.obj"); err == nil {
		t.Error("expected error for missing model, got nil")
	}
}

func TestManagerUnsupportedExtension(t *testing.T) {
	root := t.TempDir()
	writeModel(t, root, "tree.fbx", "whatever")

	m := NewManager(root, nil)
	if _, err := m.Load("tree.fbx"); err == nil {
		t.Error("expected error for unsupported format, got nil")
	}
}

func TestManagerClear(t *testing.T) {
	root := t.TempDir()
	writeModel(t, root, "tree.obj", triangleOBJ)

	m := NewManager(root, nil)
	if _, err := m.Load("tree.obj"); err != nil {
		t.Fatalf("Load: %v", err)
	}

	m.Clear()
	if m.Cached("tree.obj") {
		t.Error("cache not cleared")
	}
}

func TestInstanceSharing(t *testing.T) {
	root := t.TempDir()
	writeModel(t, root, "crystal.obj", triangleOBJ)

	m := NewManager(root, nil)
	doc, err := m.Load("crystal.obj")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	a := NewInstance(doc)
	b := NewInstance(doc)
	a.Position = math.Vec3{X: 5}
	b.Position = math.Vec3{X: -5}

	if a.Asset != b.Asset {
		t.Error("instances do not share the document")
	}
	if a.Position == b.Position {
		t.Error("instance positions are not independent")
	}
}

func TestInstanceBoundingRadius(t *testing.T) {
	root := t.TempDir()
	writeModel(t, root, "crystal.obj", triangleOBJ)

	m := NewManager(root, nil)
	doc, err := m.Load("crystal.obj")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	inst := NewInstance(doc)
	base := inst.BoundingRadius()
	if base != doc.Bounds.Radius {
		t.Errorf("unit-scale radius = %v, want %v", base, doc.Bounds.Radius)
	}

	inst.Scale = math.Vec3{X: 1, Y: 3, Z: 2}
	if got := inst.BoundingRadius(); got != base*3 {
		t.Errorf("scaled radius = %v, want %v", got, base*3)
	}
}
