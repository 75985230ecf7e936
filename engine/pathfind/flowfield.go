package pathfind

import (
	"math"

	"github.com/1siamBot/rts-sim/engine/core"
)

// FlowField stores, for each cell, the step toward the goal. One field serves
// every unit heading to the same tile.
type FlowField struct {
	Width, Height int
	Goal          Point
	DirX, DirY    []int
	Cost          []float64 // integration field cost
}

// NewFlowField integrates costs outward from the goal tile
func NewFlowField(ng *NavGrid, goal Point) *FlowField {
	w, h := ng.Width, ng.Height
	ff := &FlowField{
		Width:  w,
		Height: h,
		Goal:   goal,
		DirX:   make([]int, w*h),
		DirY:   make([]int, w*h),
		Cost:   make([]float64, w*h),
	}

	inf := math.MaxFloat64
	for i := range ff.Cost {
		ff.Cost[i] = inf
	}
	if !ng.InBounds(goal.X, goal.Y) {
		return ff
	}
	ff.Cost[goal.Y*w+goal.X] = 0

	queue := []Point{goal}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		curCost := ff.Cost[cur.Y*w+cur.X]
		for _, d := range dirs {
			nx, ny := cur.X+d[0], cur.Y+d[1]
			if !ng.Passable(nx, ny) {
				continue
			}
			moveCost := 1.0
			if d[0] != 0 && d[1] != 0 {
				if !ng.Passable(nx, cur.Y) || !ng.Passable(cur.X, ny) {
					continue
				}
				moveCost = math.Sqrt2
			}
			newCost := curCost + moveCost
			idx := ny*w + nx
			if newCost < ff.Cost[idx] {
				ff.Cost[idx] = newCost
				queue = append(queue, Point{nx, ny})
			}
		}
	}

	// Direction pass: each cell points toward its lowest-cost neighbor
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if ff.Cost[idx] >= inf {
				continue
			}
			best := ff.Cost[idx]
			for _, d := range dirs {
				nx, ny := x+d[0], y+d[1]
				if !ng.InBounds(nx, ny) {
					continue
				}
				if d[0] != 0 && d[1] != 0 && (!ng.Passable(nx, y) || !ng.Passable(x, ny)) {
					continue
				}
				if c := ff.Cost[ny*w+nx]; c < best {
					best = c
					ff.DirX[idx], ff.DirY[idx] = d[0], d[1]
				}
			}
		}
	}
	return ff
}

// Reachable reports whether the goal can be reached from tile p
func (ff *FlowField) Reachable(p Point) bool {
	if p.X < 0 || p.Y < 0 || p.X >= ff.Width || p.Y >= ff.Height {
		return false
	}
	return ff.Cost[p.Y*ff.Width+p.X] < math.MaxFloat64
}

// Walk follows the field from a world position and returns tile-center
// waypoints up to and including the goal. It returns nil if the goal is not
// reachable from there.
func (ff *FlowField) Walk(ng *NavGrid, wx, wy float64) []core.Waypoint {
	p := ng.ToTile(wx, wy)
	if !ff.Reachable(p) {
		return nil
	}
	var path []core.Waypoint
	for steps := 0; p != ff.Goal && steps < ff.Width*ff.Height; steps++ {
		idx := p.Y*ff.Width + p.X
		dx, dy := ff.DirX[idx], ff.DirY[idx]
		if dx == 0 && dy == 0 {
			return nil
		}
		p = Point{p.X + dx, p.Y + dy}
		path = append(path, center(p))
	}
	return path
}
