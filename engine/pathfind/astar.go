package pathfind

import (
	"math"

	"github.com/1siamBot/rts-sim/engine/core"
)

// DefaultMaxExpansions is the closed-set budget of FindPath
const DefaultMaxExpansions = 400

// retargetRadius bounds the ring search for an open tile near a blocked goal
const retargetRadius = 5

var dirs = [8][2]int{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {1, -1}, {-1, 1}, {1, 1},
}

// FindPath finds a path between two world positions using A* over the tile
// grid. The result holds tile-center waypoints and excludes the start tile.
//
// Start and goal in the same tile yields an empty path. A blocked goal is
// moved to the first open tile found in rings of radius 1..5. When the search
// closes maxExpansions nodes, or runs out of open nodes, without reaching the
// goal it returns the single waypoint (ex, ey); callers accept that this may
// cross rock.
func FindPath(ng *NavGrid, sx, sy, ex, ey float64, maxExpansions int) []core.Waypoint {
	if maxExpansions <= 0 {
		maxExpansions = DefaultMaxExpansions
	}
	start := ng.ToTile(sx, sy)
	goal := ng.ToTile(ex, ey)
	if start == goal {
		return []core.Waypoint{}
	}
	if !ng.Passable(goal.X, goal.Y) {
		goal = retarget(ng, goal)
	}

	// Open list is scanned linearly; the first node with the lowest f wins.
	nodes := []node{{p: start, parent: -1}}
	open := []int{0}
	openAt := make(map[Point]int)
	openAt[start] = 0
	closed := make(map[Point]bool)

	for len(open) > 0 && len(closed) < maxExpansions {
		best := 0
		for i := 1; i < len(open); i++ {
			if nodes[open[i]].f < nodes[open[best]].f {
				best = i
			}
		}
		ci := open[best]
		open = append(open[:best], open[best+1:]...)
		cur := nodes[ci]
		delete(openAt, cur.p)

		if cur.p == goal {
			return reconstructPath(nodes, ci)
		}
		closed[cur.p] = true

		for _, d := range dirs {
			np := Point{cur.p.X + d[0], cur.p.Y + d[1]}
			if !ng.InBounds(np.X, np.Y) || closed[np] || !ng.Passable(np.X, np.Y) {
				continue
			}
			diagonal := d[0] != 0 && d[1] != 0
			// Prevent diagonal cutting through walls
			if diagonal && (!ng.Passable(np.X, cur.p.Y) || !ng.Passable(cur.p.X, np.Y)) {
				continue
			}
			g := cur.g + 1
			if diagonal {
				g = cur.g + math.Sqrt2
			}
			f := g + heuristic(np, goal)
			if idx, ok := openAt[np]; ok {
				if g < nodes[idx].g {
					nodes[idx].g = g
					nodes[idx].f = f
					nodes[idx].parent = ci
				}
				continue
			}
			nodes = append(nodes, node{p: np, g: g, f: f, parent: ci})
			openAt[np] = len(nodes) - 1
			open = append(open, len(nodes)-1)
		}
	}
	return []core.Waypoint{{X: ex, Y: ey}}
}

func retarget(ng *NavGrid, goal Point) Point {
	for r := 1; r <= retargetRadius; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if ng.Passable(goal.X+dx, goal.Y+dy) {
					return Point{goal.X + dx, goal.Y + dy}
				}
			}
		}
	}
	return goal
}

// heuristic is the Manhattan distance between tiles
func heuristic(a, b Point) float64 {
	return math.Abs(float64(a.X-b.X)) + math.Abs(float64(a.Y-b.Y))
}

func reconstructPath(nodes []node, last int) []core.Waypoint {
	var tiles []Point
	for i := last; i >= 0; i = nodes[i].parent {
		tiles = append(tiles, nodes[i].p)
	}
	// Reverse, dropping the start tile
	path := make([]core.Waypoint, 0, len(tiles)-1)
	for i := len(tiles) - 2; i >= 0; i-- {
		path = append(path, center(tiles[i]))
	}
	return path
}

// SmoothPath removes waypoints that are in straight-line sight of an earlier one
func SmoothPath(ng *NavGrid, path []core.Waypoint) []core.Waypoint {
	if len(path) <= 2 {
		return path
	}
	smooth := []core.Waypoint{path[0]}
	cur := 0
	for cur < len(path)-1 {
		farthest := cur + 1
		for i := len(path) - 1; i > cur+1; i-- {
			if lineOfSight(ng, ng.ToTile(path[cur].X, path[cur].Y), ng.ToTile(path[i].X, path[i].Y)) {
				farthest = i
				break
			}
		}
		smooth = append(smooth, path[farthest])
		cur = farthest
	}
	return smooth
}

func lineOfSight(ng *NavGrid, a, b Point) bool {
	dx := abs(b.X - a.X)
	dy := abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx - dy
	x, y := a.X, a.Y
	for {
		if !ng.Passable(x, y) {
			return false
		}
		if x == b.X && y == b.Y {
			return true
		}
		e2 := err * 2
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

type node struct {
	p      Point
	g, f   float64
	parent int
}
