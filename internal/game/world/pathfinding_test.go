package world

import (
	"testing"

	"github.com/Faultbox/crystalcaves/pkg/math"
)

// mockGrid builds a cell-sized grid with the given cells blocked.
func mockGrid(width, height int, blocked [][2]int) *Grid {
	g := NewGrid(0, 0, float32(width-1), float32(height-1), 1)
	for _, b := range blocked {
		x, z := g.ToWorld(b[0], b[1])
		g.Block(x, z, 0.1)
	}
	return g
}

func TestPathFinder_FindPath_Simple(t *testing.T) {
	pf := NewPathFinder(mockGrid(5, 5, nil))

	path := pf.FindPath(0, 0, 4, 4)
	if path == nil {
		t.Fatal("expected path, got nil")
	}

	if path[0][0] != 0 || path[0][1] != 0 {
		t.Errorf("path should start at (0,0), got (%d,%d)", path[0][0], path[0][1])
	}

	lastIdx := len(path) - 1
	if path[lastIdx][0] != 4 || path[lastIdx][1] != 4 {
		t.Errorf("path should end at (4,4), got (%d,%d)", path[lastIdx][0], path[lastIdx][1])
	}

	// Open ground: the diagonal is optimal, five cells total.
	if len(path) != 5 {
		t.Errorf("path length = %d, want 5 for a clean diagonal", len(path))
	}
}

func TestPathFinder_FindPath_WithObstacle(t *testing.T) {
	// Wall down the middle with a gap at the bottom.
	blocked := [][2]int{
		{2, 0}, {2, 1}, {2, 2}, {2, 3},
	}
	pf := NewPathFinder(mockGrid(5, 5, blocked))

	path := pf.FindPath(0, 2, 4, 2)
	if path == nil {
		t.Fatal("expected path around obstacle, got nil")
	}

	for _, p := range path {
		if p[0] == 2 && p[1] < 4 {
			t.Errorf("path went through blocked cell at (%d,%d)", p[0], p[1])
		}
	}
}

func TestPathFinder_FindPath_NoPath(t *testing.T) {
	// Complete wall.
	blocked := [][2]int{
		{2, 0}, {2, 1}, {2, 2}, {2, 3}, {2, 4},
	}
	pf := NewPathFinder(mockGrid(5, 5, blocked))

	if path := pf.FindPath(0, 2, 4, 2); path != nil {
		t.Errorf("expected nil path through a full wall, got %v", path)
	}
}

func TestPathFinder_FindPath_BlockedGoal(t *testing.T) {
	pf := NewPathFinder(mockGrid(5, 5, [][2]int{{4, 4}}))

	if path := pf.FindPath(0, 0, 4, 4); path != nil {
		t.Error("expected nil path to a blocked goal")
	}
}

func TestPathFinder_FindPath_OutOfBounds(t *testing.T) {
	pf := NewPathFinder(mockGrid(5, 5, nil))

	if path := pf.FindPath(0, 0, 10, 10); path != nil {
		t.Error("expected nil path to an out-of-bounds goal")
	}
}

func TestPathFinder_NoCornerCutting(t *testing.T) {
	// A diagonal step past a blocked corner must be rejected.
	blocked := [][2]int{{1, 0}, {0, 1}}
	pf := NewPathFinder(mockGrid(3, 3, blocked))

	path := pf.FindPath(0, 0, 2, 2)
	if path != nil {
		// If any path exists it cannot squeeze between the two blocks.
		if len(path) >= 2 && path[1][0] == 1 && path[1][1] == 1 {
			t.Error("path cut the corner between two blocked cells")
		}
	}
}

func TestPathFinderNilGrid(t *testing.T) {
	if pf := NewPathFinder(nil); pf != nil {
		t.Error("NewPathFinder(nil) should return nil")
	}
	var pf *PathFinder
	if path := pf.FindPath(0, 0, 1, 1); path != nil {
		t.Error("nil pathfinder should return nil path")
	}
	if pf.IsWalkable(0, 0) {
		t.Error("nil pathfinder should report nothing walkable")
	}
}

func TestFindWorldPath(t *testing.T) {
	grid := NewGrid(-5, -5, 5, 5, 1)
	grid.Block(0, 0, 1.5)
	pf := NewPathFinder(grid)

	path := pf.FindWorldPath(math.Vec3{X: -4, Z: -4}, math.Vec3{X: 4, Z: 4})
	if path == nil {
		t.Fatal("expected a world path around the blocked center")
	}

	// Every waypoint stays clear of the blocked circle.
	for _, wp := range path {
		if wp.X*wp.X+wp.Z*wp.Z <= 1.5*1.5 {
			t.Errorf("waypoint %+v inside blocked area", wp)
		}
	}

	// The last waypoint lands in the goal cell.
	last := path[len(path)-1]
	gx, gy := grid.ToCell(4, 4)
	lx, ly := grid.ToCell(last.X, last.Z)
	if gx != lx || gy != ly {
		t.Errorf("path ends in cell (%d,%d), want (%d,%d)", lx, ly, gx, gy)
	}
}

func TestGridBlockAndCells(t *testing.T) {
	grid := NewGrid(-2, -2, 2, 2, 1)

	cx, cy := grid.ToCell(-2, -2)
	if !grid.IsWalkable(cx, cy) {
		t.Fatal("fresh grid cell should be walkable")
	}

	// Cell centers sit at half offsets; 0.8 reaches the four cells
	// around the origin.
	grid.Block(0, 0, 0.8)
	cx, cy = grid.ToCell(0, 0)
	if grid.IsWalkable(cx, cy) {
		t.Error("blocked cell reported walkable")
	}

	// Round trip through world coordinates stays in the same cell.
	x, z := grid.ToWorld(1, 3)
	rx, ry := grid.ToCell(x, z)
	if rx != 1 || ry != 3 {
		t.Errorf("round trip gave (%d,%d), want (1,3)", rx, ry)
	}
}
