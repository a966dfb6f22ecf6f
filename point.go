package hanzi

import "math"

// Point is a sample position of the pen in integer plane coordinates,
// as delivered by an input surface (y grows downward).
type Point struct {
	X, Y int
}

// Pt is a convenience function to create a Point.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	dx := float64(p.X - q.X)
	dy := float64(p.Y - q.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Direction returns the bearing from p to q in radians.
// 0 points to the right, π/2 points up (towards smaller y), and the angle
// grows counter-clockwise up to 2π.
func (p Point) Direction(q Point) float64 {
	dx := float64(p.X - q.X)
	dy := float64(p.Y - q.Y)
	return math.Pi - math.Atan2(dy, dx)
}
