package maplib

import (
	"math"

	"github.com/1siamBot/rts-sim/engine/core"
)

// TileSize is the edge of a path tile in pixels
const TileSize = 32

// TileKind is the terrain of a single path tile
type TileKind uint8

const (
	TileOpen TileKind = iota
	TileRock
)

// Map is the immutable terrain of a match plus its resource fields.
type Map struct {
	Width, Height int // pixels
	Cols, Rows    int
	Tiles         []TileKind // row-major

	Bases    [2]core.Point
	Minerals []*core.Resource
	Geysers  []*core.Resource
	Seed     int64
}

// NewMap creates an open map of the given pixel size with the default base
// positions and no resources.
func NewMap(width, height int) *Map {
	cols := int(math.Ceil(float64(width) / TileSize))
	rows := int(math.Ceil(float64(height) / TileSize))
	return &Map{
		Width:  width,
		Height: height,
		Cols:   cols,
		Rows:   rows,
		Tiles:  make([]TileKind, cols*rows),
		Bases: [2]core.Point{
			{X: 150, Y: float64(height) - 150},
			{X: float64(width) - 150, Y: 150},
		},
	}
}

// InBounds checks if tile coordinates are within the map
func (m *Map) InBounds(col, row int) bool {
	return col >= 0 && row >= 0 && col < m.Cols && row < m.Rows
}

// At returns the tile kind at (col, row). Out of bounds reads as rock.
func (m *Map) At(col, row int) TileKind {
	if !m.InBounds(col, row) {
		return TileRock
	}
	return m.Tiles[row*m.Cols+col]
}

// IsPassable reports whether ground units may path through the tile
func (m *Map) IsPassable(col, row int) bool {
	return m.At(col, row) == TileOpen
}

// SetTile sets the kind of an in-bounds tile
func (m *Map) SetTile(col, row int, k TileKind) {
	if m.InBounds(col, row) {
		m.Tiles[row*m.Cols+col] = k
	}
}

// TileAt returns the tile containing a world position
func (m *Map) TileAt(x, y float64) (col, row int) {
	return int(math.Floor(x / TileSize)), int(math.Floor(y / TileSize))
}

// TileCenter returns the world position of a tile's center
func TileCenter(col, row int) core.Point {
	return core.Point{X: float64(col)*TileSize + TileSize/2, Y: float64(row)*TileSize + TileSize/2}
}

// Base returns the starting position of a side
func (m *Map) Base(s core.Side) core.Point {
	return m.Bases[s.MustValid()]
}

// AddMineral places a mineral patch
func (m *Map) AddMineral(x, y, amount float64) *core.Resource {
	r := &core.Resource{X: x, Y: y, Amount: amount}
	m.Minerals = append(m.Minerals, r)
	return r
}

// AddGeyser places a gas geyser
func (m *Map) AddGeyser(x, y, amount float64) *core.Resource {
	r := &core.Resource{X: x, Y: y, Amount: amount, IsGeyser: true}
	m.Geysers = append(m.Geysers, r)
	return r
}

// GeyserAt returns the geyser within radius of (x, y), or nil
func (m *Map) GeyserAt(x, y, radius float64) *core.Resource {
	for _, g := range m.Geysers {
		if math.Hypot(g.X-x, g.Y-y) < radius {
			return g
		}
	}
	return nil
}

// BlockedCount returns the number of rock tiles
func (m *Map) BlockedCount() int {
	n := 0
	for _, t := range m.Tiles {
		if t != TileOpen {
			n++
		}
	}
	return n
}
