package maplib

import (
	"math"

	"github.com/1siamBot/rts-sim/engine/core"
)

// Default dimensions and resource amounts
const (
	DefaultWidth  = 3200
	DefaultHeight = 2400

	MineralAmount = 1500
	GeyserAmount  = 2500

	obstacleChance = 0.02
	obstacleFill   = 0.7
	baseClearance  = 9
	baseCornerSkip = 12
)

// GenOptions tunes the generator
type GenOptions struct {
	MainCorridor   int // brush radius in tiles of the base-to-base corridor
	CenterCorridor int // brush radius in tiles of the two center-to-base corridors
}

// DefaultGenOptions returns the standard corridor widths
func DefaultGenOptions() GenOptions {
	return GenOptions{MainCorridor: 5, CenterCorridor: 4}
}

// Generate builds a map with the default corridor widths
func Generate(width, height int, seed int64) *Map {
	return GenerateWith(width, height, seed, DefaultGenOptions())
}

// GenerateWith builds a seeded map: scattered rock clusters, three cleared
// corridors, two cleared base areas in opposite corners, and a mirrored mineral
// and geyser field at each base.
func GenerateWith(width, height int, seed int64, opts GenOptions) *Map {
	m := NewMap(width, height)
	m.Seed = seed
	rng := NewMulberry32(seed)
	cols, rows := m.Cols, m.Rows

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if (x < baseCornerSkip && y > rows-baseCornerSkip) || (x > cols-baseCornerSkip && y < baseCornerSkip) {
				continue
			}
			if rng.Float64() >= obstacleChance {
				continue
			}
			sz := int(math.Floor(rng.Float64()*4)) + 2
			for dy := 0; dy < sz; dy++ {
				for dx := 0; dx < sz; dx++ {
					nx, ny := x+dx, y+dy
					if nx < cols && ny < rows && rng.Float64() < obstacleFill {
						m.Tiles[ny*cols+nx] = TileRock
					}
				}
			}
		}
	}

	fc, fr := float64(cols), float64(rows)
	m.clearPath(8, fr-8, fc-8, 8, opts.MainCorridor)
	m.clearPath(fc/2, fr/2, 8, fr-8, opts.CenterCorridor)
	m.clearPath(fc/2, fr/2, fc-8, 8, opts.CenterCorridor)

	for i, b := range m.Bases {
		bc, br := m.TileAt(b.X, b.Y)
		for dy := -baseClearance; dy <= baseClearance; dy++ {
			for dx := -baseClearance; dx <= baseClearance; dx++ {
				m.SetTile(bc+dx, br+dy, TileOpen)
			}
		}

		ba := math.Pi * 0.7
		if i == 0 {
			ba = -math.Pi * 0.3
		}
		for j := 0; j < 8; j++ {
			a := ba + float64(j-4)*0.17
			r := 85 + float64(j%2)*15
			m.AddMineral(b.X+math.Cos(a)*r, b.Y+math.Sin(a)*r, MineralAmount)
		}
		for j := 0; j < 2; j++ {
			a := ba - 0.8
			if j == 1 {
				a = ba + 0.8
			}
			m.AddGeyser(b.X+math.Cos(a)*120, b.Y+math.Sin(a)*120, GeyserAmount)
		}
	}
	return m
}

// clearPath carves a corridor between two tile coordinates with a square
// brush of radius r, stepping once per tile along the longer axis.
func (m *Map) clearPath(x1, y1, x2, y2 float64, r int) {
	steps := math.Max(math.Abs(x2-x1), math.Abs(y2-y1))
	for i := 0.0; i <= steps; i++ {
		t := 0.0
		if steps > 0 {
			t = i / steps
		}
		x := int(math.Floor(x1 + (x2-x1)*t))
		y := int(math.Floor(y1 + (y2-y1)*t))
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				m.SetTile(x+dx, y+dy, TileOpen)
			}
		}
	}
}

// ResourcesNear returns the mineral patches within radius of p
func (m *Map) ResourcesNear(p core.Point, radius float64) []*core.Resource {
	var out []*core.Resource
	for _, r := range m.Minerals {
		if math.Hypot(r.X-p.X, r.Y-p.Y) < radius {
			out = append(out, r)
		}
	}
	return out
}
