package pathfind

import "math"

// Body is a circle that takes part in separation
type Body struct {
	X, Y, Size float64
}

// Separation pushes a moving body of radius size at (x, y) away from
// overlapping neighbors. The push from each neighbor grows linearly as the gap
// closes: force = (minDist - d) / minDist with minDist = size + other.Size + 2.
func Separation(x, y, size float64, others []Body) (float64, float64) {
	sepX, sepY := 0.0, 0.0
	for _, o := range others {
		sx, sy := x-o.X, y-o.Y
		d := math.Sqrt(sx*sx + sy*sy)
		minDist := size + o.Size + 2
		if d < minDist && d > 0 {
			force := (minDist - d) / minDist
			sepX += sx / d * force * 2
			sepY += sy / d * force * 2
		}
	}
	return sepX, sepY
}
