package game

import (
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/crystalcaves/internal/engine/asset"
	"github.com/Faultbox/crystalcaves/internal/engine/lighting"
	"github.com/Faultbox/crystalcaves/internal/engine/renderer"
	"github.com/Faultbox/crystalcaves/internal/logger"
	"github.com/Faultbox/crystalcaves/pkg/math"
)

const cavernSize = 20.0

// crystalCluster is one glowing formation of shards.
type crystalCluster struct {
	pos   math.Vec3
	color [3]float32
}

// hazard is a damaging spot on the cavern floor; standing in it drains
// health.
type hazard struct {
	pos    math.Vec3
	radius float32
	dps    float32 // health per second
}

// CavernScene is the deep cave: dark, lit only by crystal glow, richer
// pickups and hazardous ground.
type CavernScene struct {
	baseScene

	cave      *asset.Instance
	crystal   *asset.Instance
	clusters  []crystalCluster
	hazards   []hazard
	glow      lighting.PointLight // LIGHT0, blue crystal glow
	glow2     lighting.PointLight // LIGHT1, purple counterpart
	damageAcc float32             // fractional damage carried between frames

	// pendingDamage is drained by the game loop each frame.
	pendingDamage int
}

// NewCavernScene creates the cavern with its fixed layout.
func NewCavernScene() *CavernScene {
	return &CavernScene{
		baseScene: baseScene{
			name:    "Deep Crystal Cavern",
			ambient: [4]float32{0.1, 0.1, 0.2, 1},
		},
	}
}

// Init loads cavern models and places crystals, pickups and hazards.
func (s *CavernScene) Init(assets *asset.Manager) error {
	if doc, err := assets.Load("models/deep_cave.obj"); err == nil {
		s.cave = asset.NewInstance(doc)
	} else {
		logger.Warn("optional model missing", zap.String("path", "models/deep_cave.obj"), zap.Error(err))
	}
	if doc, err := assets.Load("models/crystal.3ds"); err == nil {
		s.crystal = asset.NewInstance(doc)
		s.crystal.Scale = math.Vec3{X: 0.0005, Y: 0.0005, Z: 0.0005}
	} else {
		logger.Warn("optional model missing", zap.String("path", "models/crystal.3ds"), zap.Error(err))
	}

	s.clusters = []crystalCluster{
		{pos: math.Vec3{X: -5, Z: -5}, color: [3]float32{0.2, 0.4, 0.9}},
		{pos: math.Vec3{X: 5, Z: 5}, color: [3]float32{0.9, 0.2, 0.9}},
		{pos: math.Vec3{Z: -8}, color: [3]float32{0.2, 0.9, 0.9}},
	}
	for _, c := range s.clusters {
		s.obstacles = append(s.obstacles, Obstacle{X: c.pos.X, Z: c.pos.Z, Radius: 1.0})
	}

	s.glow = lighting.PointLight{
		Position: math.Vec3{X: -5, Y: 3, Z: -5},
		Ambient:  [4]float32{0.05, 0.05, 0.1, 1},
		Diffuse:  [4]float32{0.3, 0.5, 0.8, 1},
	}
	s.glow2 = lighting.PointLight{
		Position: math.Vec3{X: 5, Y: 3, Z: 5},
		Diffuse:  [4]float32{0.8, 0.3, 0.8, 1},
	}
	s.glow.ClampColors()
	s.glow2.ClampColors()

	s.hazards = []hazard{
		{pos: math.Vec3{X: -2, Z: 4}, radius: 1.5, dps: 10},
		{pos: math.Vec3{X: 6, Z: -3}, radius: 1.2, dps: 15},
	}

	s.collectibles = []*Collectible{
		newGlowing("rare_gem", math.Vec3{Y: 0.5, Z: -5}, 500, 0.8, 0.2, 0.9),
		newGlowing("crystal", math.Vec3{X: -4, Y: 0.5, Z: -3}, 150, 0.2, 0.4, 1),
		newGlowing("crystal", math.Vec3{X: 4, Y: 0.5, Z: 2}, 150, 0.2, 0.4, 1),
	}

	logger.Info("scene initialized",
		zap.String("scene", s.name),
		zap.Int("collectibles", len(s.collectibles)),
		zap.Int("hazards", len(s.hazards)))
	return nil
}

// Update ticks pickups and accumulates hazard damage when the player
// stands in a damaging patch.
func (s *CavernScene) Update(dt, elapsed float32, player *Player) {
	s.updateCollectibles(dt, elapsed)

	for _, h := range s.hazards {
		dx := player.Position.X - h.pos.X
		dz := player.Position.Z - h.pos.Z
		if dx*dx+dz*dz < h.radius*h.radius {
			s.damageAcc += h.dps * dt
		}
	}
	if whole := int(s.damageAcc); whole > 0 {
		s.pendingDamage += whole
		s.damageAcc -= float32(whole)
	}
}

// DrainDamage returns accumulated hazard damage and resets it.
func (s *CavernScene) DrainDamage() int {
	d := s.pendingDamage
	s.pendingDamage = 0
	return d
}

// Render draws the cavern under crystal glow lighting.
func (s *CavernScene) Render(r *renderer.Renderer, elapsed float32) {
	r.SetAmbientModel(s.ambient)
	r.ApplyPointLight(s.glow)
	r.SetSecondaryLight(s.glow2.Position, s.glow2.Diffuse, true)

	// Dark cave floor.
	renderer.SetColor(0.15, 0.12, 0.1)
	renderer.DrawQuadXZ(-cavernSize, -cavernSize, cavernSize, cavernSize, 0)

	if s.cave != nil {
		r.DrawInstance(s.cave)
	}

	for i, c := range s.clusters {
		s.drawCluster(r, c, elapsed, float32(i))
	}

	s.drawHazards(elapsed)
	s.renderCollectibles(r)
}

// drawCluster renders five shards per formation, each leaning and
// slowly spinning, with a pulsing glow.
func (s *CavernScene) drawCluster(r *renderer.Renderer, c crystalCluster, elapsed, seed float32) {
	for i := 0; i < 5; i++ {
		offsetX := float32(i%3-1) * 0.8
		offsetZ := (float32(i/3) - 0.5) * 0.8
		height := 2.0 + float32(i%2)*1.5
		lean := float32(i) * 15
		spin := elapsed*10 + float32(i)*30

		pulse := 0.5 + 0.5*float32(gomath.Sin(float64(elapsed*2+seed+float32(i))))

		pos := math.Vec3{X: c.pos.X + offsetX, Y: c.pos.Y, Z: c.pos.Z + offsetZ}
		renderer.PushTransformZ(pos, lean, spin, 1)

		renderer.SetEmission(c.color[0]*0.4*pulse, c.color[1]*0.4*pulse, c.color[2]*0.4*pulse)
		renderer.SetColorAlpha(c.color[0], c.color[1], c.color[2], 0.9)

		if s.crystal != nil {
			r.DrawInstance(s.crystal)
		} else {
			renderer.DrawCone(0.4, height, 6)
		}

		renderer.ClearEmission()
		renderer.PopTransform()
	}
}

func (s *CavernScene) drawHazards(elapsed float32) {
	renderer.WithLightingDisabled(func() {
		pulse := 0.6 + 0.4*float32(gomath.Sin(float64(elapsed*4)))
		for _, h := range s.hazards {
			renderer.SetColorAlpha(0.9*pulse, 0.2, 0.1, 0.6)
			renderer.DrawQuadXZ(
				h.pos.X-h.radius, h.pos.Z-h.radius,
				h.pos.X+h.radius, h.pos.Z+h.radius,
				0.02)
		}
	})
}
