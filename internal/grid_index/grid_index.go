package grid_index

import (
	"math"

	"github.com/golang/geo/r2"
)

// Integer coordinates of a cell of the grid
type gridIndex struct {
	x int64
	y int64
}

// Buckets 2D points in square cells whose edge equals the merge tolerance, so that
// two points closer than the tolerance are always in the same or in adjacent cells.
// Used to find coincident samples before triangulating.
type GridIndex struct {
	origin    r2.Point
	cellSize  float64
	cells     map[gridIndex][]int
	points    []r2.Point
	exact     map[r2.Point]int
	numMerged int
}

// Instantiates an empty index. origin should be the lower corner of the data extent,
// a tolerance <= 0 only merges exactly equal points.
func NewGridIndex(origin r2.Point, tolerance float64) *GridIndex {
	return &GridIndex{
		origin:   origin,
		cellSize: tolerance,
		cells:    make(map[gridIndex][]int),
		exact:    make(map[r2.Point]int),
	}
}

func getDimensionIndex(value float64, cellSize float64) int64 {
	return int64(math.Floor(value / cellSize))
}

func (g *GridIndex) getPointGridIndex(p r2.Point) gridIndex {
	return gridIndex{
		getDimensionIndex(p.X-g.origin.X, g.cellSize),
		getDimensionIndex(p.Y-g.origin.Y, g.cellSize),
	}
}

// Adds the point with the given id and returns the id of the first point added that
// lies within the tolerance, or id itself if there is none
func (g *GridIndex) Add(id int, p r2.Point) int {
	if first, ok := g.exact[p]; ok {
		g.numMerged++
		return first
	}
	if g.cellSize <= 0 {
		g.exact[p] = id
		return id
	}

	index := g.getPointGridIndex(p)
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for _, other := range g.cells[gridIndex{index.x + dx, index.y + dy}] {
				if g.pointOf(other).Sub(p).Norm() <= g.cellSize {
					g.numMerged++
					return other
				}
			}
		}
	}

	g.exact[p] = id
	g.cells[index] = append(g.cells[index], id)
	g.setPoint(id, p)
	return id
}

func (g *GridIndex) setPoint(id int, p r2.Point) {
	for len(g.points) <= id {
		g.points = append(g.points, r2.Point{})
	}
	g.points[id] = p
}

func (g *GridIndex) pointOf(id int) r2.Point {
	return g.points[id]
}

// Number of Add calls that returned an earlier id
func (g *GridIndex) NumMerged() int {
	return g.numMerged
}

// Maps every point to the index of the first point within tolerance of it and
// returns the number of merged points. canonical[i] == i for points that are kept.
func Deduplicate(points []r2.Point, tolerance float64) ([]int, int) {
	canonical := make([]int, len(points))
	if len(points) == 0 {
		return canonical, 0
	}
	origin := points[0]
	for _, p := range points[1:] {
		origin.X = math.Min(origin.X, p.X)
		origin.Y = math.Min(origin.Y, p.Y)
	}
	index := NewGridIndex(origin, tolerance)
	for i, p := range points {
		canonical[i] = index.Add(i, p)
	}
	return canonical, index.NumMerged()
}
