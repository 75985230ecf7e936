package maplib

import (
	"math"
	"testing"
)

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(DefaultWidth, DefaultHeight, 12345)
	b := Generate(DefaultWidth, DefaultHeight, 12345)

	if a.Cols != 100 || a.Rows != 75 {
		t.Fatalf("expected 100x75 tiles, got %dx%d", a.Cols, a.Rows)
	}
	for i := range a.Tiles {
		if a.Tiles[i] != b.Tiles[i] {
			t.Fatalf("tile %d differs between runs with the same seed", i)
		}
	}
	if len(a.Minerals) != 16 || len(a.Geysers) != 4 {
		t.Fatalf("expected 16 minerals and 4 geysers, got %d and %d", len(a.Minerals), len(a.Geysers))
	}
	for i := range a.Minerals {
		if a.Minerals[i].X != b.Minerals[i].X || a.Minerals[i].Y != b.Minerals[i].Y {
			t.Fatalf("mineral %d moved between runs", i)
		}
	}
}

func TestGenerateSeedsDiffer(t *testing.T) {
	a := Generate(DefaultWidth, DefaultHeight, 1)
	b := Generate(DefaultWidth, DefaultHeight, 2)
	same := true
	for i := range a.Tiles {
		if a.Tiles[i] != b.Tiles[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical terrain")
	}
}

func TestGenerateBaseAreasClear(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		m := Generate(DefaultWidth, DefaultHeight, seed)
		for _, b := range m.Bases {
			bc, br := m.TileAt(b.X, b.Y)
			for dy := -baseClearance; dy <= baseClearance; dy++ {
				for dx := -baseClearance; dx <= baseClearance; dx++ {
					if !m.InBounds(bc+dx, br+dy) {
						continue
					}
					if !m.IsPassable(bc+dx, br+dy) {
						t.Fatalf("seed %d: tile (%d,%d) near base blocked", seed, bc+dx, br+dy)
					}
				}
			}
		}
	}
}

func TestGenerateCorridorsClear(t *testing.T) {
	m := Generate(DefaultWidth, DefaultHeight, 99)
	// sample points along the main corridor
	x1, y1 := 8.0, float64(m.Rows-8)
	x2, y2 := float64(m.Cols-8), 8.0
	for i := 0; i <= 10; i++ {
		f := float64(i) / 10
		c := int(math.Floor(x1 + (x2-x1)*f))
		r := int(math.Floor(y1 + (y2-y1)*f))
		if !m.IsPassable(c, r) {
			t.Fatalf("corridor tile (%d,%d) blocked", c, r)
		}
	}
}

func TestGenerateResourceLayout(t *testing.T) {
	m := Generate(DefaultWidth, DefaultHeight, 7)
	if m.Bases[0].X != 150 || m.Bases[0].Y != DefaultHeight-150 {
		t.Fatalf("unexpected player base %+v", m.Bases[0])
	}
	if m.Bases[1].X != DefaultWidth-150 || m.Bases[1].Y != 150 {
		t.Fatalf("unexpected opponent base %+v", m.Bases[1])
	}
	for i, r := range m.Minerals {
		base := m.Bases[i/8]
		d := math.Hypot(r.X-base.X, r.Y-base.Y)
		want := 85.0
		if (i%8)%2 == 1 {
			want = 100
		}
		if math.Abs(d-want) > 1e-6 {
			t.Fatalf("mineral %d at distance %f, expected %f", i, d, want)
		}
		if r.Amount != MineralAmount {
			t.Fatalf("mineral %d amount %f", i, r.Amount)
		}
	}
	for i, g := range m.Geysers {
		base := m.Bases[i/2]
		d := math.Hypot(g.X-base.X, g.Y-base.Y)
		if math.Abs(d-120) > 1e-6 || !g.IsGeyser || g.Amount != GeyserAmount {
			t.Fatalf("geyser %d unexpected: %+v (dist %f)", i, g, d)
		}
	}
}

func TestMulberry32Range(t *testing.T) {
	r := NewMulberry32(42)
	for i := 0; i < 10000; i++ {
		v := r.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("value %f out of [0,1)", v)
		}
	}
}

func TestOutOfBoundsIsRock(t *testing.T) {
	m := NewMap(320, 320)
	if m.IsPassable(-1, 0) || m.IsPassable(0, m.Rows) {
		t.Fatal("out of bounds tiles must not be passable")
	}
	if !m.IsPassable(0, 0) {
		t.Fatal("fresh map should be open")
	}
}
