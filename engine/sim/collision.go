package sim

import (
	"github.com/1siamBot/rts-sim/engine/core"
	"github.com/1siamBot/rts-sim/engine/pathfind"
)

// resolveCollisions applies this tick's velocities. Ground units that moved
// are pushed apart from other ground units, then everything is kept inside
// the map.
func (e *Engine) resolveCollisions() {
	var bodies []pathfind.Body
	var owners []*core.Entity
	for _, o := range e.entities {
		if o.Alive() && !o.IsBuilding && !o.Flying {
			bodies = append(bodies, pathfind.Body{X: o.X, Y: o.Y, Size: o.Size})
			owners = append(owners, o)
		}
	}

	w, h := float64(e.m.Width), float64(e.m.Height)
	for _, ent := range e.entities {
		if ent.IsBuilding || !ent.Alive() || (ent.VX == 0 && ent.VY == 0) {
			continue
		}
		var sx, sy float64
		if !ent.Flying {
			others := make([]pathfind.Body, 0, len(bodies))
			for i, b := range bodies {
				if owners[i] != ent {
					others = append(others, b)
				}
			}
			sx, sy = pathfind.Separation(ent.X, ent.Y, ent.Size, others)
		}
		ent.X = clamp(ent.X+ent.VX+sx, ent.Size, w-ent.Size)
		ent.Y = clamp(ent.Y+ent.VY+sy, ent.Size, h-ent.Size)
		ent.VX, ent.VY = 0, 0
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
