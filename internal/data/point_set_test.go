package data

import (
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"
)

func TestBoundingBoxIsTight(t *testing.T) {
	points := []Point3D{
		NewPoint3D(3, -1, 10),
		NewPoint3D(-2, 4, 7),
		NewPoint3D(0, 0, 12.5),
		NewPoint3D(1, 2, -3),
	}
	set := NewPointSet(points, 2, 2)

	box := set.BoundingBox()
	test.That(t, box, test.ShouldResemble, BoundingBox{MinX: -2, MaxX: 3, MinY: -1, MaxY: 4, MinZ: -3, MaxZ: 12.5})
	for _, p := range points {
		test.That(t, box.Contains(p), test.ShouldBeTrue)
	}
	test.That(t, box.SpanX(), test.ShouldEqual, 5.0)
	test.That(t, box.SpanY(), test.ShouldEqual, 5.0)
	test.That(t, box.SpanZ(), test.ShouldEqual, 15.5)
	test.That(t, box.String(), test.ShouldEqual, "-2 3/-1 4/-3 12.5")
}

func TestPointSetKeepsInputOrder(t *testing.T) {
	points := []Point3D{NewPoint3D(1, 1, 1), NewPoint3D(0, 0, 0), NewPoint3D(2, 0, 5)}
	set := NewPointSet(points, 3, 1)

	test.That(t, set.Len(), test.ShouldEqual, 3)
	test.That(t, set.At(1), test.ShouldResemble, NewPoint3D(0, 0, 0))
	test.That(t, set.Projected(), test.ShouldResemble, []r2.Point{{X: 1, Y: 1}, {X: 0, Y: 0}, {X: 2, Y: 0}})
	test.That(t, set.Elevations(), test.ShouldResemble, []float64{1, 0, 5})

	rows, cols := set.Dimensions()
	test.That(t, rows, test.ShouldEqual, 3)
	test.That(t, cols, test.ShouldEqual, 1)

	copied := set.Points()
	copied[0].X = 100
	test.That(t, set.At(0).X, test.ShouldEqual, 1.0)
}

func TestPointSetMapRecomputesBoundingBox(t *testing.T) {
	set := NewPointSet([]Point3D{NewPoint3D(0, 0, 0), NewPoint3D(1, 1, 1)}, 1, 2)

	shifted, err := set.Map(func(p Point3D) (Point3D, error) {
		p.Z += 10
		return p, nil
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, shifted.BoundingBox().MinZ, test.ShouldEqual, 10.0)
	test.That(t, shifted.BoundingBox().MaxZ, test.ShouldEqual, 11.0)
	test.That(t, set.BoundingBox().MaxZ, test.ShouldEqual, 1.0)
}

func TestEmptyBoundingBox(t *testing.T) {
	test.That(t, ComputeBoundingBox(nil), test.ShouldResemble, BoundingBox{})
}
