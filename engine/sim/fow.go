package sim

import "math"

// FogTileSize is the edge of a fog cell in pixels
const FogTileSize = 24

// Fog tracks the player's vision. Explored cells stay explored; visible cells
// are recomputed every tick.
type Fog struct {
	Cols, Rows int
	Explored   []uint8
	Visible    []uint8
}

// NewFog sizes the fog grid for a map of the given pixel dimensions
func NewFog(width, height int) *Fog {
	cols := int(math.Ceil(float64(width) / FogTileSize))
	rows := int(math.Ceil(float64(height) / FogTileSize))
	return &Fog{
		Cols:     cols,
		Rows:     rows,
		Explored: make([]uint8, cols*rows),
		Visible:  make([]uint8, cols*rows),
	}
}

func (f *Fog) clearVisible() {
	for i := range f.Visible {
		f.Visible[i] = 0
	}
}

// Reveal marks a circle of cells around a world position as visible and explored
func (f *Fog) Reveal(x, y, vision float64) {
	cx := int(math.Floor(x / FogTileSize))
	cy := int(math.Floor(y / FogTileSize))
	r := int(math.Ceil(vision / FogTileSize))
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy > r*r {
				continue
			}
			fx, fy := cx+dx, cy+dy
			if fx < 0 || fy < 0 || fx >= f.Cols || fy >= f.Rows {
				continue
			}
			idx := fy*f.Cols + fx
			f.Visible[idx] = 1
			f.Explored[idx] = 1
		}
	}
}

func (f *Fog) index(x, y float64) (int, bool) {
	fx := int(math.Floor(x / FogTileSize))
	fy := int(math.Floor(y / FogTileSize))
	if fx < 0 || fy < 0 || fx >= f.Cols || fy >= f.Rows {
		return 0, false
	}
	return fy*f.Cols + fx, true
}

// IsVisible reports whether a world position is currently seen
func (f *Fog) IsVisible(x, y float64) bool {
	i, ok := f.index(x, y)
	return ok && f.Visible[i] != 0
}

// IsExplored reports whether a world position was ever seen
func (f *Fog) IsExplored(x, y float64) bool {
	i, ok := f.index(x, y)
	return ok && f.Explored[i] != 0
}

// ExploredCount returns the number of explored cells
func (f *Fog) ExploredCount() int {
	n := 0
	for _, v := range f.Explored {
		n += int(v)
	}
	return n
}
