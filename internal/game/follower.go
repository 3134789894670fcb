package game

import (
	gomath "math"

	"github.com/Faultbox/crystalcaves/internal/game/world"
	"github.com/Faultbox/crystalcaves/pkg/math"
)

const (
	followerWaypointReach = 0.3
	followerReplanAfter   = 0.5 // seconds between path recomputes
)

// Follower is a friendly creature that trails the player, keeping a
// polite distance. With a pathfinder it routes around trees and
// hedges; without one it walks straight at the player.
type Follower struct {
	Position math.Vec3
	Rotation float32 // facing, degrees around Y

	FollowDistance float32 // stops approaching inside this range
	Speed          float32 // world units per second

	Nav *world.PathFinder // optional

	path     []math.Vec3
	replanIn float32
}

// NewFollower creates a follower at the given spot.
func NewFollower(pos math.Vec3) *Follower {
	return &Follower{
		Position:       pos,
		FollowDistance: 2.0,
		Speed:          3.0,
	}
}

// Update moves the follower toward the target if it has fallen behind.
func (f *Follower) Update(dt float32, target math.Vec3) {
	dx := target.X - f.Position.X
	dz := target.Z - f.Position.Z
	distance := float32(gomath.Sqrt(float64(dx*dx + dz*dz)))

	if distance <= f.FollowDistance {
		f.path = nil
		return
	}

	if f.Nav != nil {
		f.replan(dt, target)
	}

	if len(f.path) > 0 {
		f.walkPath(dt)
		return
	}

	// Straight-line approach, never overshooting onto the target.
	step := f.Speed * dt
	if step > distance-f.FollowDistance {
		step = distance - f.FollowDistance
	}
	f.Position.X += dx / distance * step
	f.Position.Z += dz / distance * step

	f.Rotation = float32(gomath.Atan2(float64(dx), float64(-dz))) * 180 / gomath.Pi
}

// replan refreshes the waypoint path periodically; the player moves
// constantly, so a stale path walks to the wrong place.
func (f *Follower) replan(dt float32, target math.Vec3) {
	f.replanIn -= dt
	if f.replanIn > 0 && len(f.path) > 0 {
		return
	}
	f.path = f.Nav.FindWorldPath(f.Position, target)
	f.replanIn = followerReplanAfter
}

func (f *Follower) walkPath(dt float32) {
	wp := f.path[0]
	dx := wp.X - f.Position.X
	dz := wp.Z - f.Position.Z
	distance := float32(gomath.Sqrt(float64(dx*dx + dz*dz)))

	if distance < followerWaypointReach {
		f.path = f.path[1:]
		return
	}

	step := f.Speed * dt
	if step > distance {
		step = distance
	}
	f.Position.X += dx / distance * step
	f.Position.Z += dz / distance * step

	f.Rotation = float32(gomath.Atan2(float64(dx), float64(-dz))) * 180 / gomath.Pi
}
