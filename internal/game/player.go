package game

import (
	gomath "math"

	"github.com/Faultbox/crystalcaves/internal/engine/camera"
	"github.com/Faultbox/crystalcaves/pkg/math"
)

const (
	playerRadius    = 0.3
	playerEyeHeight = 1.6
	playerPitchMax  = 89.0
)

// Obstacle is a static collision circle on the ground plane. Trees,
// hedges and crystal formations block movement through it.
type Obstacle struct {
	X, Z   float32
	Radius float32
}

// Player is the controllable character. Angles are in degrees; yaw 0
// faces -Z.
type Player struct {
	Position    math.Vec3
	Yaw         float32
	Pitch       float32
	FirstPerson bool
	Radius      float32
	Speed       float32 // world units per second

	// Follow trails the player in third person; mouse wheel zooms it.
	Follow *camera.FollowCamera
}

// NewPlayer creates a player at the given spawn point, facing -Z in
// third-person view.
func NewPlayer(spawn math.Vec3) *Player {
	follow := camera.NewFollowCamera()
	follow.Distance = 5.0
	return &Player{
		Position: spawn,
		Radius:   playerRadius,
		Speed:    9.0,
		Follow:   follow,
	}
}

// Move advances the player on the ground plane. forward/right are in
// world units; diagonal input is normalized so it is no faster than
// straight movement. The move is dropped entirely if the target spot
// intersects an obstacle.
func (p *Player) Move(forward, right float32, obstacles []Obstacle) {
	if forward == 0 && right == 0 {
		return
	}
	if forward != 0 && right != 0 {
		length := float32(gomath.Sqrt(float64(forward*forward + right*right)))
		scale := maxAbs(forward, right) / length
		forward *= scale
		right *= scale
	}

	yaw := float64(p.Yaw) * gomath.Pi / 180
	sin, cos := float32(gomath.Sin(yaw)), float32(gomath.Cos(yaw))

	targetX := p.Position.X + sin*forward + cos*right
	targetZ := p.Position.Z - (cos*forward - sin*right)

	for _, o := range obstacles {
		dx := targetX - o.X
		dz := targetZ - o.Z
		limit := p.Radius + o.Radius
		if dx*dx+dz*dz < limit*limit {
			return
		}
	}

	p.Position.X = targetX
	p.Position.Z = targetZ
}

func maxAbs(a, b float32) float32 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	if a > b {
		return a
	}
	return b
}

// Rotate turns the view by the given deltas in degrees, clamping pitch
// so the camera never flips.
func (p *Player) Rotate(dYaw, dPitch float32) {
	p.Yaw += dYaw
	p.Pitch += dPitch
	if p.Pitch > playerPitchMax {
		p.Pitch = playerPitchMax
	}
	if p.Pitch < -playerPitchMax {
		p.Pitch = -playerPitchMax
	}
}

// ToggleView switches between first and third person.
func (p *Player) ToggleView() {
	p.FirstPerson = !p.FirstPerson
}

// Eye returns the first-person camera position.
func (p *Player) Eye() math.Vec3 {
	return math.Vec3{X: p.Position.X, Y: p.Position.Y + playerEyeHeight, Z: p.Position.Z}
}

// Forward returns the full 3D look direction.
func (p *Player) Forward() math.Vec3 {
	yaw := float64(p.Yaw) * gomath.Pi / 180
	pitch := float64(p.Pitch) * gomath.Pi / 180
	cosPitch := gomath.Cos(pitch)
	return math.Vec3{
		X: float32(gomath.Sin(yaw) * cosPitch),
		Y: float32(gomath.Sin(pitch)),
		Z: float32(-gomath.Cos(yaw) * cosPitch),
	}
}

// Zoom adjusts the third-person camera distance.
func (p *Player) Zoom(delta float32) {
	p.Follow.HandleZoom(delta)
}

// ViewMatrix builds the camera matrix for the current view mode: eye
// level looking along the view direction in first person, the follow
// camera trailing behind in third person.
func (p *Player) ViewMatrix() math.Mat4 {
	const degToRad = gomath.Pi / 180
	yawRad := p.Yaw * degToRad
	pitchRad := p.Pitch * degToRad

	if p.FirstPerson {
		cam := camera.FirstPersonCamera{
			Position: p.Eye(),
			Yaw:      yawRad,
			Pitch:    pitchRad,
		}
		return cam.ViewMatrix()
	}

	// Looking up lowers the trailing camera, and vice versa. The base
	// angle puts it about 2.5 units above at the default distance.
	const basePitch = 0.52
	p.Follow.Yaw = yawRad
	p.Follow.Pitch = clampF(basePitch-pitchRad, -0.3, 1.3)
	return p.Follow.ViewMatrix(p.Position)
}

func clampF(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
