// Package asset handles model loading and caching.
package asset

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/crystalcaves/internal/logger"
	"github.com/Faultbox/crystalcaves/pkg/formats"
	"github.com/Faultbox/crystalcaves/pkg/math"
)

// Manager loads model files and caches the resulting documents by
// path. Documents are immutable once loaded, so a single cached copy
// is shared by every scene object that uses the model.
type Manager struct {
	root     string
	textures formats.TextureLoader

	mu    sync.RWMutex
	cache map[string]*formats.Document
}

// NewManager creates an asset manager rooted at the given directory.
// The texture loader is handed to the OBJ material parser; it may be
// nil, in which case materials keep handle 0 and render untextured.
func NewManager(root string, textures formats.TextureLoader) *Manager {
	return &Manager{
		root:     root,
		textures: textures,
		cache:    make(map[string]*formats.Document),
	}
}

// Load returns the document for a model path relative to the asset
// root, parsing it on first use. The format is picked by extension.
func (m *Manager) Load(path string) (*formats.Document, error) {
	m.mu.RLock()
	doc, ok := m.cache[path]
	m.mu.RUnlock()
	if ok {
		return doc, nil
	}

	full := filepath.Join(m.root, path)
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		doc, err = formats.LoadOBJ(full, m.textures)
	case ".3ds":
		doc, err = formats.Load3DS(full)
	default:
		return nil, fmt.Errorf("unsupported model format: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("loading model %s: %w", path, err)
	}

	logger.Info("model loaded",
		zap.String("path", path),
		zap.Int("vertices", len(doc.Vertices)),
		zap.Int("faces", len(doc.Faces)),
		zap.Int("materials", len(doc.Materials)))

	m.mu.Lock()
	// Another goroutine may have raced the parse; keep the first copy
	// so all holders share one document.
	if cached, ok := m.cache[path]; ok {
		doc = cached
	} else {
		m.cache[path] = doc
	}
	m.mu.Unlock()

	return doc, nil
}

// Cached reports whether a model is already in the cache.
func (m *Manager) Cached(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.cache[path]
	return ok
}

// Clear drops every cached document.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache = make(map[string]*formats.Document)
}

// Instance places a shared document in the world. Many instances can
// point at the same document; per-placement state lives here, never on
// the document itself.
type Instance struct {
	Asset    *formats.Document
	Position math.Vec3
	Rotation math.Vec3 // Euler angles, degrees, applied Y then X then Z
	Scale    math.Vec3
}

// NewInstance creates an instance at the origin with unit scale.
func NewInstance(doc *formats.Document) *Instance {
	return &Instance{
		Asset: doc,
		Scale: math.Vec3{X: 1, Y: 1, Z: 1},
	}
}

// BoundingRadius returns the instance's world-space bounding radius,
// scaled by the largest scale axis.
func (i *Instance) BoundingRadius() float32 {
	if i.Asset == nil {
		return 0
	}
	s := i.Scale.X
	if i.Scale.Y > s {
		s = i.Scale.Y
	}
	if i.Scale.Z > s {
		s = i.Scale.Z
	}
	return i.Asset.Bounds.Radius * s
}
