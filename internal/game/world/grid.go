// Package world provides navigation over a scene's walkable ground.
package world

// Grid is a walkability grid laid over the ground plane. Cells start
// walkable; scenes block the ones covered by obstacles.
type Grid struct {
	minX, minZ float32
	cellSize   float32
	width      int
	height     int
	blocked    []bool
}

// NewGrid covers the rectangle from (minX, minZ) to (maxX, maxZ) with
// cells of the given size.
func NewGrid(minX, minZ, maxX, maxZ, cellSize float32) *Grid {
	width := int((maxX-minX)/cellSize) + 1
	height := int((maxZ-minZ)/cellSize) + 1
	return &Grid{
		minX:     minX,
		minZ:     minZ,
		cellSize: cellSize,
		width:    width,
		height:   height,
		blocked:  make([]bool, width*height),
	}
}

// Block marks every cell whose center lies within radius of (x, z) as
// unwalkable.
func (g *Grid) Block(x, z, radius float32) {
	r2 := radius * radius
	for cy := 0; cy < g.height; cy++ {
		for cx := 0; cx < g.width; cx++ {
			wx, wz := g.ToWorld(cx, cy)
			dx, dz := wx-x, wz-z
			if dx*dx+dz*dz <= r2 {
				g.blocked[cy*g.width+cx] = true
			}
		}
	}
}

// IsWalkable reports whether the cell is inside the grid and clear.
func (g *Grid) IsWalkable(cx, cy int) bool {
	if cx < 0 || cx >= g.width || cy < 0 || cy >= g.height {
		return false
	}
	return !g.blocked[cy*g.width+cx]
}

// ToCell maps a world position to its cell, which may be out of
// bounds.
func (g *Grid) ToCell(x, z float32) (cx, cy int) {
	return int((x - g.minX) / g.cellSize), int((z - g.minZ) / g.cellSize)
}

// ToWorld returns the center of a cell in world coordinates.
func (g *Grid) ToWorld(cx, cy int) (x, z float32) {
	return g.minX + (float32(cx)+0.5)*g.cellSize, g.minZ + (float32(cy)+0.5)*g.cellSize
}

// Size returns the grid dimensions in cells.
func (g *Grid) Size() (width, height int) {
	return g.width, g.height
}
