package grid_index

import (
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"
)

func TestDeduplicateExact(t *testing.T) {
	points := []r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 0}}
	canonical, numMerged := Deduplicate(points, 0)
	test.That(t, canonical, test.ShouldResemble, []int{0, 1, 0, 3, 1})
	test.That(t, numMerged, test.ShouldEqual, 2)
}

func TestDeduplicateWithinTolerance(t *testing.T) {
	points := []r2.Point{{X: 0, Y: 0}, {X: 1e-7, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 2e-6}}
	canonical, numMerged := Deduplicate(points, 1e-6)
	test.That(t, canonical, test.ShouldResemble, []int{0, 0, 2, 3})
	test.That(t, numMerged, test.ShouldEqual, 1)
}

func TestAddAcrossCellBoundary(t *testing.T) {
	index := NewGridIndex(r2.Point{}, 1e-6)
	test.That(t, index.Add(0, r2.Point{X: 0.99e-6}), test.ShouldEqual, 0)
	test.That(t, index.Add(1, r2.Point{X: 1.01e-6}), test.ShouldEqual, 0)
	test.That(t, index.Add(2, r2.Point{X: 5e-6}), test.ShouldEqual, 2)
	test.That(t, index.NumMerged(), test.ShouldEqual, 1)
}

func TestDeduplicateEmpty(t *testing.T) {
	canonical, numMerged := Deduplicate(nil, 1)
	test.That(t, canonical, test.ShouldHaveLength, 0)
	test.That(t, numMerged, test.ShouldEqual, 0)
}
