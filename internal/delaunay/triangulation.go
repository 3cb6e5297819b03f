package delaunay

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"github.com/ecopia-map/dem_animator/internal/pipeline"
)

// Relative tolerance used to merge coincident points and to reject slivers, scaled
// by the diagonal of the horizontal extent of the input
const DefaultRelativeTolerance = 1e-9

// Index triple into the triangulated point slice, in counter-clockwise order
type Triangle struct {
	A, B, C int
}

// Triangles covering the convex hull of a point set. Indices refer to the positions
// of the points passed to Triangulate, coincident points included.
type Triangulation struct {
	Triangles []Triangle
	// Indices of the convex hull vertices in counter-clockwise order
	Hull []int
	// Number of input points merged into an earlier coincident point
	NumMerged int
}

// Reconstructs a planar triangulation from 2D points. Implementations must return
// indices into points and an error wrapping pipeline.ErrInsufficientGeometry when no
// triangle exists.
type Triangulator interface {
	Triangulate(points []r2.Point) (*Triangulation, error)
}

func (t *Triangulation) Len() int {
	return len(t.Triangles)
}

// Flattens the triangles into consecutive index triples
func (t *Triangulation) Flat() []int {
	out := make([]int, 0, 3*len(t.Triangles))
	for _, tri := range t.Triangles {
		out = append(out, tri.A, tri.B, tri.C)
	}
	return out
}

// Sum of the areas of all triangles
func (t *Triangulation) Area(points []r2.Point) float64 {
	area := 0.0
	for _, tri := range t.Triangles {
		area += TriangleArea(points[tri.A], points[tri.B], points[tri.C])
	}
	return area
}

// Signed area, positive for counter-clockwise triangles
func TriangleArea(a, b, c r2.Point) float64 {
	return 0.5 * b.Sub(a).Cross(c.Sub(a))
}

// Triangulates the points with the default sweep triangulator
func Triangulate(points []r2.Point) (*Triangulation, error) {
	return NewSweepTriangulator().Triangulate(points)
}

// Triangulates a flat sequence of x, y pairs and returns flat index triples
func TriangulateFlat(coords []float64) ([]int, error) {
	if len(coords)%2 != 0 {
		return nil, errors.Wrapf(pipeline.ErrMalformedInput, "odd number of coordinate values: %d", len(coords))
	}
	points := make([]r2.Point, len(coords)/2)
	for i := range points {
		points[i] = r2.Point{X: coords[2*i], Y: coords[2*i+1]}
	}
	triangulation, err := Triangulate(points)
	if err != nil {
		return nil, err
	}
	return triangulation.Flat(), nil
}

// Horizontal extent of the points, used to scale tolerances
func extentDiagonal(points []r2.Point) float64 {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return math.Hypot(maxX-minX, maxY-minY)
}
