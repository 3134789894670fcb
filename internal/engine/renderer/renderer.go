// Package renderer provides OpenGL rendering functionality.
//
// The renderer drives the fixed-function pipeline: lit, material-based
// drawing through display lists compiled once per model document.
// Documents stay immutable; all GL state, including the compiled
// lists, lives here.
package renderer

import (
	"fmt"
	gomath "math"

	"github.com/go-gl/gl/v2.1/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/crystalcaves/internal/engine/asset"
	"github.com/Faultbox/crystalcaves/internal/engine/lighting"
	"github.com/Faultbox/crystalcaves/internal/logger"
	"github.com/Faultbox/crystalcaves/pkg/formats"
	"github.com/Faultbox/crystalcaves/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width   int
	Height  int
	FOV     float32 // vertical field of view, degrees
	DrawFar float32
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config

	// Compiled display list per document. A list renders the whole
	// batch: material switches included.
	lists map[*formats.Document]uint32
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		lists:  make(map[*formats.Document]uint32),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	// Sky blue clear color; outdoor scenes draw over it anyway.
	gl.ClearColor(0.53, 0.81, 0.92, 1.0)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)

	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	gl.Enable(gl.LIGHTING)
	gl.Enable(gl.LIGHT0)
	gl.Enable(gl.COLOR_MATERIAL)
	gl.ColorMaterial(gl.FRONT_AND_BACK, gl.AMBIENT_AND_DIFFUSE)
	gl.ShadeModel(gl.SMOOTH)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	// Required when instances scale their models.
	gl.Enable(gl.NORMALIZE)

	gl.Hint(gl.PERSPECTIVE_CORRECTION_HINT, gl.FASTEST)

	return r, nil
}

// Close frees every compiled display list.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for doc, list := range r.lists {
		gl.DeleteLists(list, 1)
		delete(r.lists, doc)
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// BeginFrame clears the buffers and loads the projection and view
// matrices for the frame.
func (r *Renderer) BeginFrame(view math.Mat4) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	proj := r.projection()

	gl.MatrixMode(gl.PROJECTION)
	gl.LoadMatrixf(proj.Ptr())

	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadMatrixf(view.Ptr())
}

// projection builds the frame's perspective matrix. The configured FOV
// is in degrees; Perspective wants radians.
func (r *Renderer) projection() math.Mat4 {
	aspect := float32(r.config.Width) / float32(r.config.Height)
	fovRad := r.config.FOV * gomath.Pi / 180
	return math.Perspective(fovRad, aspect, 0.1, r.config.DrawFar)
}

// SetLight positions the scene's single light and sets its colors.
// Must be called after BeginFrame so the position goes through the
// current view matrix.
func (r *Renderer) SetLight(pos math.Vec3, ambient, diffuse [4]float32) {
	position := [4]float32{pos.X, pos.Y, pos.Z, 1}
	gl.Lightfv(gl.LIGHT0, gl.POSITION, &position[0])
	gl.Lightfv(gl.LIGHT0, gl.AMBIENT, &ambient[0])
	gl.Lightfv(gl.LIGHT0, gl.DIFFUSE, &diffuse[0])
}

// SetAmbientModel sets the global ambient term; scenes use it for
// their overall mood (bright forest daylight, dim cavern).
func (r *Renderer) SetAmbientModel(ambient [4]float32) {
	gl.LightModelfv(gl.LIGHT_MODEL_AMBIENT, &ambient[0])
}

// SetSecondaryLight drives LIGHT1, the cavern's second crystal glow.
// Pass enabled false to turn it off when leaving the scene.
func (r *Renderer) SetSecondaryLight(pos math.Vec3, diffuse [4]float32, enabled bool) {
	if !enabled {
		gl.Disable(gl.LIGHT1)
		return
	}
	gl.Enable(gl.LIGHT1)
	position := [4]float32{pos.X, pos.Y, pos.Z, 1}
	gl.Lightfv(gl.LIGHT1, gl.POSITION, &position[0])
	gl.Lightfv(gl.LIGHT1, gl.DIFFUSE, &diffuse[0])
}

// ApplySun drives LIGHT0 from a scene's sun description.
func (r *Renderer) ApplySun(sun lighting.Sun) {
	r.SetLight(sun.Position, sun.Ambient, sun.Diffuse)
}

// ApplyPointLight drives LIGHT0 from a local light, for indoor scenes
// with no sun.
func (r *Renderer) ApplyPointLight(l lighting.PointLight) {
	r.SetLight(l.Position, l.Ambient, l.Diffuse)
}

// SetClearColor changes the background color, e.g. near-black inside
// the cavern.
func (r *Renderer) SetClearColor(red, green, blue float32) {
	gl.ClearColor(red, green, blue, 1.0)
}

// ReadPixels grabs the current back buffer as tightly packed RGBA rows,
// bottom-up as GL delivers them. Used for screenshots.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// DrawLines renders unlit line segments from packed [x y z] endpoint
// pairs, for debug overlays.
func DrawLines(vertices []float32, red, green, blue float32) {
	gl.Disable(gl.LIGHTING)
	gl.Color3f(red, green, blue)
	gl.Begin(gl.LINES)
	for i := 0; i+2 < len(vertices); i += 3 {
		gl.Vertex3f(vertices[i], vertices[i+1], vertices[i+2])
	}
	gl.End()
	gl.Enable(gl.LIGHTING)
}

// DrawInstance renders one placed model. The document's display list
// is compiled on first use and reused for every instance after that.
func (r *Renderer) DrawInstance(inst *asset.Instance) {
	doc := inst.Asset
	if doc == nil || !doc.Loaded {
		return
	}

	list, ok := r.lists[doc]
	if !ok {
		list = r.compile(doc)
		r.lists[doc] = list
	}

	gl.PushMatrix()
	gl.Translatef(inst.Position.X, inst.Position.Y, inst.Position.Z)
	gl.Rotatef(inst.Rotation.Y, 0, 1, 0)
	gl.Rotatef(inst.Rotation.X, 1, 0, 0)
	gl.Rotatef(inst.Rotation.Z, 0, 0, 1)
	gl.Scalef(inst.Scale.X, inst.Scale.Y, inst.Scale.Z)

	gl.CallList(list)

	// A list may leave texturing enabled; untextured draws that follow
	// must not inherit it.
	gl.Disable(gl.TEXTURE_2D)
	gl.PopMatrix()
}

// compile builds the display list for a document from its batch:
// one material application followed by one triangle run per group.
func (r *Renderer) compile(doc *formats.Document) uint32 {
	list := gl.GenLists(1)
	gl.NewList(list, gl.COMPILE)

	for _, group := range doc.Batch().Groups {
		if mat, ok := doc.Materials.Get(group.Material); ok {
			applyMaterial(mat)
		}

		gl.Begin(gl.TRIANGLES)
		for _, v := range group.Vertices {
			if v.HasTexCoord {
				gl.TexCoord2f(v.TexCoord.X, v.TexCoord.Y)
			}
			if v.HasNormal {
				gl.Normal3f(v.Normal.X, v.Normal.Y, v.Normal.Z)
			}
			gl.Vertex3f(v.Position.X, v.Position.Y, v.Position.Z)
		}
		gl.End()
	}

	gl.EndList()
	logger.Debug("display list compiled",
		zap.String("model", doc.Name),
		zap.Int("triangles", doc.Batch().Triangles()))
	return list
}

func applyMaterial(m *formats.Material) {
	gl.Materialfv(gl.FRONT_AND_BACK, gl.AMBIENT, &m.Ambient[0])
	gl.Materialfv(gl.FRONT_AND_BACK, gl.DIFFUSE, &m.Diffuse[0])
	gl.Materialfv(gl.FRONT_AND_BACK, gl.SPECULAR, &m.Specular[0])
	gl.Materialfv(gl.FRONT_AND_BACK, gl.EMISSION, &m.Emission[0])
	gl.Materialf(gl.FRONT_AND_BACK, gl.SHININESS, m.Shininess)
	gl.Color4f(m.Diffuse[0], m.Diffuse[1], m.Diffuse[2], m.Diffuse[3])

	if m.TextureID != 0 {
		gl.Enable(gl.TEXTURE_2D)
		gl.BindTexture(gl.TEXTURE_2D, m.TextureID)
	} else {
		gl.Disable(gl.TEXTURE_2D)
	}
}
