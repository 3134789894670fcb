package game

import (
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/crystalcaves/internal/engine/asset"
	"github.com/Faultbox/crystalcaves/internal/engine/lighting"
	"github.com/Faultbox/crystalcaves/internal/engine/renderer"
	"github.com/Faultbox/crystalcaves/internal/game/world"
	"github.com/Faultbox/crystalcaves/internal/logger"
	"github.com/Faultbox/crystalcaves/pkg/math"
)

const (
	forestSize   = 50.0 // half-extent of the grass plane
	hedgeBound   = 18.0 // hedge border square half-extent
	hedgeSpacing = 3.0
)

// forestSun lights the clearing; its position doubles as the spot the
// sky quad's sun is drawn at.
var forestSun = lighting.Sun{
	Position: math.Vec3{X: 30, Y: 35, Z: -80},
	Ambient:  [4]float32{0.3, 0.3, 0.35, 1},
	Diffuse:  [4]float32{1, 1, 0.95, 1},
}

// treeSpot places one tree: position, scale variation and a collision
// radius for the trunk.
type treeSpot struct {
	x, z  float32
	scale float32
}

// ForestScene is the outdoor starting area: a sunlit clearing ringed
// by trees and a hedge border, with a friendly pig trailing the
// player. The cave entrance to the cavern sits at the far edge.
type ForestScene struct {
	baseScene

	tree     *asset.Instance // shared tree model, drawn once per spot
	hedge    *asset.Instance
	entrance *asset.Instance

	treeSpots  []treeSpot
	hedgeSpots []math.Vec3 // Y holds the rotation in degrees
	follower   *Follower
}

// NewForestScene creates the forest with its fixed layout.
func NewForestScene() *ForestScene {
	return &ForestScene{
		baseScene: baseScene{
			name:    "Enchanted Forest",
			ambient: [4]float32{0.5, 0.6, 0.65, 1},
		},
		follower: NewFollower(math.Vec3{Z: -5}),
	}
}

// Init loads the forest models and lays out trees, hedges and
// pickups. Missing models are logged and skipped; the scene renders
// procedural stand-ins instead.
func (s *ForestScene) Init(assets *asset.Manager) error {
	s.tree = s.loadOptional(assets, "models/tree.obj")
	s.hedge = s.loadOptional(assets, "models/hedge.obj")
	s.entrance = s.loadOptional(assets, "models/cave_entrance.obj")
	if s.entrance != nil {
		s.entrance.Position = math.Vec3{Z: -16}
	}

	// A ring of trees around the clearing plus corner clusters.
	ring := [][2]float32{
		{-8, -8}, {0, -12}, {8, -8},
		{12, 0}, {8, 8},
		{0, 12}, {-8, 8}, {-12, 0},
		{-15, -15}, {15, -15}, {15, 15}, {-15, 15},
	}
	for i, p := range ring {
		s.treeSpots = append(s.treeSpots, treeSpot{
			x:     p[0],
			z:     p[1],
			scale: 0.8 + float32(i%3)*0.2,
		})
		s.obstacles = append(s.obstacles, Obstacle{X: p[0], Z: p[1], Radius: 0.5})
	}

	s.layoutHedge()

	// Nav grid for the pig: the play area inside the hedge, with every
	// obstacle blocked out plus clearance for its body.
	grid := world.NewGrid(-hedgeBound+1, -hedgeBound+1, hedgeBound-1, hedgeBound-1, 1)
	for _, o := range s.obstacles {
		grid.Block(o.X, o.Z, o.Radius+0.4)
	}
	s.follower.Nav = world.NewPathFinder(grid)

	s.collectibles = []*Collectible{
		newGlowing("gem", math.Vec3{X: 2, Y: 0.5, Z: -3}, 100, 0, 1, 0.5),
		newGlowing("crystal", math.Vec3{X: -3, Y: 0.5, Z: -1}, 50, 0.3, 0.5, 1),
		newGlowing("coin", math.Vec3{Y: 0.5, Z: -6}, 25, 1, 0.85, 0),
	}

	logger.Info("scene initialized",
		zap.String("scene", s.name),
		zap.Int("trees", len(s.treeSpots)),
		zap.Int("collectibles", len(s.collectibles)))
	return nil
}

func (s *ForestScene) loadOptional(assets *asset.Manager, path string) *asset.Instance {
	doc, err := assets.Load(path)
	if err != nil {
		logger.Warn("optional model missing", zap.String("path", path), zap.Error(err))
		return nil
	}
	return asset.NewInstance(doc)
}

// layoutHedge rings the play area with hedge segments, rotated to run
// along each side.
func (s *ForestScene) layoutHedge() {
	for x := -hedgeBound; x <= hedgeBound; x += hedgeSpacing {
		s.hedgeSpots = append(s.hedgeSpots,
			math.Vec3{X: float32(x), Z: -hedgeBound},
			math.Vec3{X: float32(x), Z: hedgeBound})
		s.obstacles = append(s.obstacles,
			Obstacle{X: float32(x), Z: -hedgeBound, Radius: 1.2},
			Obstacle{X: float32(x), Z: hedgeBound, Radius: 1.2})
	}
	for z := -hedgeBound + hedgeSpacing; z < hedgeBound; z += hedgeSpacing {
		s.hedgeSpots = append(s.hedgeSpots,
			math.Vec3{X: -hedgeBound, Y: 90, Z: float32(z)},
			math.Vec3{X: hedgeBound, Y: 90, Z: float32(z)})
		s.obstacles = append(s.obstacles,
			Obstacle{X: -hedgeBound, Z: float32(z), Radius: 1.2},
			Obstacle{X: hedgeBound, Z: float32(z), Radius: 1.2})
	}
}

func newGlowing(kind string, pos math.Vec3, points int, r, g, b float32) *Collectible {
	c := NewCollectible(kind, pos, points)
	c.Glow = [3]float32{r, g, b}
	return c
}

// Update ticks pickups and the follower.
func (s *ForestScene) Update(dt, elapsed float32, player *Player) {
	s.updateCollectibles(dt, elapsed)
	s.follower.Update(dt, player.Position)
}

// Render draws the forest: sky, ground, border, trees, props and
// pickups, lit by the sun.
func (s *ForestScene) Render(r *renderer.Renderer, elapsed float32) {
	r.SetAmbientModel(s.ambient)
	r.ApplySun(forestSun)
	r.SetSecondaryLight(math.Vec3{}, [4]float32{}, false)

	s.drawSky()
	s.drawGround()

	for _, spot := range s.hedgeSpots {
		s.drawHedge(r, spot)
	}
	for _, spot := range s.treeSpots {
		s.drawTree(r, spot)
	}
	if s.entrance != nil {
		r.DrawInstance(s.entrance)
	}

	s.drawFollower(r)
	s.drawMushrooms()
	s.renderCollectibles(r)
}

func (s *ForestScene) drawSky() {
	renderer.WithLightingDisabled(func() {
		// Sun quad at the light position, halo first.
		renderer.PushTransform(forestSun.Position, 0, 1)
		renderer.SetColorAlpha(1, 0.95, 0.7, 0.3)
		renderer.DrawBox(16, 16, 0.1)
		renderer.SetColor(1, 1, 0.9)
		renderer.DrawBox(10, 10, 0.1)
		renderer.PopTransform()
	})
}

func (s *ForestScene) drawGround() {
	renderer.SetColor(0.2, 0.5, 0.15)
	renderer.DrawQuadXZ(-forestSize, -forestSize, forestSize, forestSize, 0)
}

func (s *ForestScene) drawTree(r *renderer.Renderer, spot treeSpot) {
	if s.tree != nil {
		s.tree.Position = math.Vec3{X: spot.x, Z: spot.z}
		s.tree.Scale = math.Vec3{X: spot.scale, Y: spot.scale, Z: spot.scale}
		r.DrawInstance(s.tree)
		return
	}

	// Stand-in pine: trunk plus stacked canopy cones.
	renderer.PushTransform(math.Vec3{X: spot.x, Z: spot.z}, 0, spot.scale)
	renderer.SetColor(0.45, 0.3, 0.15)
	renderer.DrawCylinder(0.25, 0.2, 1.5, 8)
	renderer.SetColor(0.1, 0.45, 0.12)
	renderer.PushTransform(math.Vec3{Y: 1.2}, 0, 1)
	renderer.DrawCone(1.4, 2.2, 10)
	renderer.PopTransform()
	renderer.PushTransform(math.Vec3{Y: 2.4}, 0, 1)
	renderer.DrawCone(1.0, 1.8, 10)
	renderer.PopTransform()
	renderer.PopTransform()
}

func (s *ForestScene) drawHedge(r *renderer.Renderer, spot math.Vec3) {
	if s.hedge != nil {
		s.hedge.Position = math.Vec3{X: spot.X, Z: spot.Z}
		s.hedge.Rotation = math.Vec3{Y: spot.Y}
		r.DrawInstance(s.hedge)
		return
	}

	renderer.PushTransform(math.Vec3{X: spot.X, Y: 0.6, Z: spot.Z}, spot.Y, 1)
	renderer.SetColor(0.15, 0.4, 0.1)
	renderer.DrawBox(hedgeSpacing, 1.2, 1.0)
	renderer.PopTransform()
}

func (s *ForestScene) drawFollower(r *renderer.Renderer) {
	renderer.PushTransform(s.follower.Position, s.follower.Rotation, 1)
	renderer.SetColor(1, 0.6, 0.7)
	renderer.PushTransform(math.Vec3{Y: 0.4}, 0, 1)
	renderer.DrawBox(0.6, 0.5, 1.0) // body
	renderer.PopTransform()
	renderer.PushTransform(math.Vec3{Y: 0.55, Z: -0.6}, 0, 1)
	renderer.DrawSphere(0.25, 10, 10) // head
	renderer.PopTransform()
	renderer.PopTransform()
}

func (s *ForestScene) drawMushrooms() {
	spots := [][2]float32{{-3, -2}, {4, 3}, {-2, 5}}
	for i, p := range spots {
		renderer.PushTransform(math.Vec3{X: p[0], Z: p[1]}, 0, 1)

		renderer.SetColor(0.9, 0.85, 0.75)
		renderer.DrawCylinder(0.08, 0.06, 0.25, 8)

		if i%2 == 0 {
			renderer.SetColor(0.85, 0.1, 0.1)
		} else {
			renderer.SetColor(0.7, 0.5, 0.3)
		}
		renderer.PushTransform(math.Vec3{Y: 0.25}, 0, 1)
		renderer.DrawCone(0.18, 0.12, 10)
		renderer.PopTransform()

		renderer.PopTransform()
	}
}

// FollowerPosition exposes the pig's spot, mostly for tests.
func (s *ForestScene) FollowerPosition() math.Vec3 {
	return s.follower.Position
}

// entranceReached reports whether the player is standing at the cave
// mouth, which switches to the cavern scene.
func (s *ForestScene) entranceReached(p *Player) bool {
	entrance := math.Vec3{Z: -16}
	if s.entrance != nil {
		entrance = s.entrance.Position
	}
	dx := float64(p.Position.X - entrance.X)
	dz := float64(p.Position.Z - entrance.Z)
	return gomath.Sqrt(dx*dx+dz*dz) < 2.0
}
