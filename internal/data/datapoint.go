package data

import "github.com/golang/geo/r2"

// Contains one sample of a height field: X,Y horizontal coords and Z elevation
type Point3D struct {
	X float64
	Y float64
	Z float64
}

// Builds a new Point3D from the given coordinates
func NewPoint3D(X, Y, Z float64) Point3D {
	return Point3D{
		X: X,
		Y: Y,
		Z: Z,
	}
}

// Returns the horizontal projection of the point
func (p Point3D) XY() r2.Point {
	return r2.Point{X: p.X, Y: p.Y}
}
