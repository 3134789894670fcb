package game

import (
	"github.com/Faultbox/crystalcaves/internal/engine/asset"
	"github.com/Faultbox/crystalcaves/internal/engine/renderer"
	"github.com/Faultbox/crystalcaves/pkg/math"
)

// Scene is one explorable area. Scenes load their models up front,
// then tick and draw every frame while active.
type Scene interface {
	Name() string

	// Init loads the scene's models and places its contents.
	Init(assets *asset.Manager) error

	// Update advances animation and AI. elapsed is total game time,
	// used to keep bobbing animations in phase across scene switches.
	Update(dt, elapsed float32, player *Player)

	// Render draws the scene. The renderer has already loaded the
	// frame's view matrix.
	Render(r *renderer.Renderer, elapsed float32)

	// Obstacles returns the scene's static collision circles.
	Obstacles() []Obstacle

	// Collectibles exposes the scene's pickups for collision checks.
	Collectibles() []*Collectible
}

// baseScene carries what every scene shares: its placed models and
// pickups.
type baseScene struct {
	name         string
	ambient      [4]float32
	instances    []*asset.Instance
	collectibles []*Collectible
	obstacles    []Obstacle
}

func (s *baseScene) Name() string                 { return s.name }
func (s *baseScene) Obstacles() []Obstacle        { return s.obstacles }
func (s *baseScene) Collectibles() []*Collectible { return s.collectibles }

func (s *baseScene) updateCollectibles(dt, elapsed float32) {
	for _, c := range s.collectibles {
		c.Update(dt, elapsed)
	}
}

// renderCollectibles draws every uncollected pickup: its model when
// one is assigned, a glowing sphere otherwise.
func (s *baseScene) renderCollectibles(r *renderer.Renderer) {
	for _, c := range s.collectibles {
		if c.Collected {
			continue
		}
		pos := math.Vec3{X: c.Position.X, Y: c.Position.Y + c.BobOffset + 0.5, Z: c.Position.Z}
		renderer.PushTransform(pos, c.RotationY, 1)
		renderer.SetEmission(c.Glow[0]*0.3, c.Glow[1]*0.3, c.Glow[2]*0.3)

		if c.Model != nil {
			r.DrawInstance(c.Model)
		} else {
			renderer.SetColor(c.Glow[0], c.Glow[1], c.Glow[2])
			renderer.DrawSphere(0.3, 16, 16)
		}

		renderer.ClearEmission()
		renderer.PopTransform()
	}
}

// remaining counts uncollected pickups.
func (s *baseScene) remaining() int {
	n := 0
	for _, c := range s.collectibles {
		if !c.Collected {
			n++
		}
	}
	return n
}
