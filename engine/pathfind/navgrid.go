package pathfind

import (
	"github.com/1siamBot/rts-sim/engine/core"
	"github.com/1siamBot/rts-sim/engine/maplib"
)

// Point represents a tile coordinate
type Point struct{ X, Y int }

// NavGrid is the walkability grid derived from the tile map
type NavGrid struct {
	Width, Height int
	blocked       []bool
}

// NewNavGrid builds a navigation grid from a map
func NewNavGrid(m *maplib.Map) *NavGrid {
	ng := &NavGrid{
		Width:   m.Cols,
		Height:  m.Rows,
		blocked: make([]bool, m.Cols*m.Rows),
	}
	for i, t := range m.Tiles {
		ng.blocked[i] = t != maplib.TileOpen
	}
	return ng
}

// InBounds checks tile coordinates
func (ng *NavGrid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < ng.Width && y < ng.Height
}

// Passable checks if a cell can be walked on. Out of bounds is not passable.
func (ng *NavGrid) Passable(x, y int) bool {
	return ng.InBounds(x, y) && !ng.blocked[y*ng.Width+x]
}

// ToTile converts a world position to a tile clamped into the grid
func (ng *NavGrid) ToTile(wx, wy float64) Point {
	x := int(wx / maplib.TileSize)
	y := int(wy / maplib.TileSize)
	if wx < 0 {
		x = 0
	}
	if wy < 0 {
		y = 0
	}
	return Point{clamp(x, 0, ng.Width-1), clamp(y, 0, ng.Height-1)}
}

// center returns the world-space center of a tile
func center(p Point) core.Waypoint {
	return maplib.TileCenter(p.X, p.Y)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
