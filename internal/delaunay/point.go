package delaunay

import (
	"math"

	"github.com/golang/geo/r2"
)

func squaredDistance(a, b r2.Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// Squared radius of the circle through a, b, c; +Inf when they are collinear in float arithmetic
func circumradiusSquared(a, b, c r2.Point) float64 {
	bx, by := b.X-a.X, b.Y-a.Y
	cx, cy := c.X-a.X, c.Y-a.Y
	bl := bx*bx + by*by
	cl := cx*cx + cy*cy
	d := 0.5 / (bx*cy - by*cx)
	x := (cy*bl - by*cl) * d
	y := (bx*cl - cx*bl) * d
	r := x*x + y*y
	if math.IsNaN(r) {
		return math.Inf(1)
	}
	return r
}

func circumcenter(a, b, c r2.Point) r2.Point {
	bx, by := b.X-a.X, b.Y-a.Y
	cx, cy := c.X-a.X, c.Y-a.Y
	bl := bx*bx + by*by
	cl := cx*cx + cy*cy
	d := 0.5 / (bx*cy - by*cx)
	return r2.Point{
		X: a.X + (cy*bl-by*cl)*d,
		Y: a.Y + (bx*cl-cx*bl)*d,
	}
}

// Monotonically increasing with the real angle of (dx, dy), in [0, 1)
func pseudoAngle(dx, dy float64) float64 {
	p := dx / (math.Abs(dx) + math.Abs(dy))
	if dy > 0 {
		return (3 - p) / 4
	}
	return (1 + p) / 4
}

func isFinite(p r2.Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}
