package texture

import (
	"image"
	"os"

	"github.com/go-gl/gl/v2.1/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/crystalcaves/internal/logger"
)

// Manager loads image files and uploads them as OpenGL textures,
// caching by path so shared textures upload once. Handle 0 means the
// texture failed to load; GL treats binding 0 as "no texture", so
// failed lookups degrade to untextured rendering.
//
// All methods must run on the thread that owns the GL context.
type Manager struct {
	cache map[string]uint32
}

func NewManager() *Manager {
	return &Manager{cache: make(map[string]uint32)}
}

// Load returns the GL texture handle for path, uploading it on first
// use. Failures log a warning and return 0 rather than erroring out:
// a model with a missing texture still renders.
func (m *Manager) Load(path string) uint32 {
	if id, ok := m.cache[path]; ok {
		return id
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("texture file unreadable", zap.String("path", path), zap.Error(err))
		m.cache[path] = 0
		return 0
	}

	img, err := Decode(path, data)
	if err != nil {
		logger.Warn("texture decode failed", zap.String("path", path), zap.Error(err))
		m.cache[path] = 0
		return 0
	}

	id := Upload(img)
	m.cache[path] = id
	logger.Debug("texture uploaded",
		zap.String("path", path),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()))
	return id
}

// Upload creates a GL texture from an RGBA image with mipmapped
// trilinear filtering.
func Upload(img *image.RGBA) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	// GENERATE_MIPMAP is the GL 1.4 path; glGenerateMipmap does not
	// exist on the 2.1 context the window requests. Must be set before
	// the upload.
	gl.TexParameteri(gl.TEXTURE_2D, gl.GENERATE_MIPMAP, gl.TRUE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(img.Bounds().Dx()), int32(img.Bounds().Dy()),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	return id
}

// Release deletes every cached texture. Call before tearing down the
// GL context.
func (m *Manager) Release() {
	for path, id := range m.cache {
		if id != 0 {
			gl.DeleteTextures(1, &id)
		}
		delete(m.cache, path)
	}
}
