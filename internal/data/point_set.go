package data

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

// Axis aligned box enclosing a PointSet
type BoundingBox struct {
	MinX, MaxX float64
	MinY, MaxY float64
	MinZ, MaxZ float64
}

func (b BoundingBox) SpanX() float64 { return b.MaxX - b.MinX }
func (b BoundingBox) SpanY() float64 { return b.MaxY - b.MinY }
func (b BoundingBox) SpanZ() float64 { return b.MaxZ - b.MinZ }

func (b BoundingBox) Contains(p Point3D) bool {
	return p.X >= b.MinX && p.X <= b.MaxX &&
		p.Y >= b.MinY && p.Y <= b.MaxY &&
		p.Z >= b.MinZ && p.Z <= b.MaxZ
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("%v %v/%v %v/%v %v", b.MinX, b.MaxX, b.MinY, b.MaxY, b.MinZ, b.MaxZ)
}

// Ordered collection of height field samples. Order is the input order. The
// bounding box is computed once at construction and the set is never mutated
// afterwards, so it can be shared read-only between goroutines.
type PointSet struct {
	points      []Point3D
	boundingBox BoundingBox
	rows        int
	cols        int
}

// Builds a PointSet taking ownership of the points slice. rows and cols are the
// declared grid dimensions, informative only.
func NewPointSet(points []Point3D, rows, cols int) *PointSet {
	return &PointSet{
		points:      points,
		boundingBox: ComputeBoundingBox(points),
		rows:        rows,
		cols:        cols,
	}
}

// Running min/max over the three axes in a single pass
func ComputeBoundingBox(points []Point3D) BoundingBox {
	if len(points) == 0 {
		return BoundingBox{}
	}
	first := points[0]
	box := BoundingBox{
		MinX: first.X, MaxX: first.X,
		MinY: first.Y, MaxY: first.Y,
		MinZ: first.Z, MaxZ: first.Z,
	}
	for _, p := range points[1:] {
		box.MinX = math.Min(box.MinX, p.X)
		box.MaxX = math.Max(box.MaxX, p.X)
		box.MinY = math.Min(box.MinY, p.Y)
		box.MaxY = math.Max(box.MaxY, p.Y)
		box.MinZ = math.Min(box.MinZ, p.Z)
		box.MaxZ = math.Max(box.MaxZ, p.Z)
	}
	return box
}

func (s *PointSet) Len() int {
	return len(s.points)
}

func (s *PointSet) At(i int) Point3D {
	return s.points[i]
}

// Returns a copy of the points
func (s *PointSet) Points() []Point3D {
	out := make([]Point3D, len(s.points))
	copy(out, s.points)
	return out
}

func (s *PointSet) BoundingBox() BoundingBox {
	return s.boundingBox
}

// Declared grid dimensions (n, m)
func (s *PointSet) Dimensions() (int, int) {
	return s.rows, s.cols
}

// Horizontal projections, one per point, in point order
func (s *PointSet) Projected() []r2.Point {
	out := make([]r2.Point, len(s.points))
	for i, p := range s.points {
		out[i] = p.XY()
	}
	return out
}

// Elevations, one per point, in point order
func (s *PointSet) Elevations() []float64 {
	out := make([]float64, len(s.points))
	for i, p := range s.points {
		out[i] = p.Z
	}
	return out
}

// Returns a new PointSet with every point passed through fn. The bounding box is recomputed.
func (s *PointSet) Map(fn func(Point3D) (Point3D, error)) (*PointSet, error) {
	out := make([]Point3D, len(s.points))
	for i, p := range s.points {
		q, err := fn(p)
		if err != nil {
			return nil, err
		}
		out[i] = q
	}
	return NewPointSet(out, s.rows, s.cols), nil
}
