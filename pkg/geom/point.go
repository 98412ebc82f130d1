package geom

import "math"

// Point is a planar coordinate in canvas space. The origin is the top-left
// corner and y grows downward.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// SideRatio returns shortest side / longest side of the triangle abc.
// Degenerate triangles with a zero-length longest side return 0.
func SideRatio(a, b, c Point) float64 {
	d1 := Distance(a, b)
	d2 := Distance(b, c)
	d3 := Distance(c, a)

	longest := max(d1, d2, d3)
	if longest == 0 {
		return 0
	}
	return min(d1, d2, d3) / longest
}

// Inside reports whether p lies in the rectangle [minX, maxX] x [minY, maxY].
func (p Point) Inside(minX, minY, maxX, maxY float64) bool {
	return p.X >= minX && p.X <= maxX && p.Y >= minY && p.Y <= maxY
}
