package delaunay

import (
	"math"
	"sort"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/ecopia-map/dem_animator/internal/grid_index"
	"github.com/ecopia-map/dem_animator/internal/pipeline"
)

// Radial sweep-hull triangulator. Points are inserted in order of distance from the
// circumcenter of a seed triangle, each one connected to the visible part of the
// current convex hull, and the new edges are legalized by flipping until every
// triangle satisfies the empty circumcircle property.
type SweepTriangulator struct {
	// Fraction of the extent diagonal below which two points are merged
	RelativeTolerance float64
}

func NewSweepTriangulator() *SweepTriangulator {
	return &SweepTriangulator{
		RelativeTolerance: DefaultRelativeTolerance,
	}
}

// State of a single triangulation run
type sweep struct {
	points []r2.Point

	// half-edge structure: triangles[e] is the start vertex of half-edge e,
	// halfedges[e] the opposite half-edge or -1 on the hull
	triangles []int
	halfedges []int

	hullPrev  []int
	hullNext  []int
	hullTri   []int
	hullHash  []int
	hullStart int
	center    r2.Point

	edgeStack []int
}

func (s *SweepTriangulator) Triangulate(points []r2.Point) (*Triangulation, error) {
	for i, p := range points {
		if !isFinite(p) {
			return nil, errors.Wrapf(pipeline.ErrMalformedInput, "point %d has non finite coordinates", i)
		}
	}

	tolerance := s.RelativeTolerance * extentDiagonal(points)
	canonical, numMerged := grid_index.Deduplicate(points, tolerance)
	ids := make([]int, 0, len(points))
	for i, c := range canonical {
		if c == i {
			ids = append(ids, i)
		}
	}
	if len(ids) < 3 {
		return nil, errors.Wrapf(pipeline.ErrInsufficientGeometry, "%d distinct points, at least 3 are needed", len(ids))
	}

	sw := newSweep(points)
	if err := sw.run(ids); err != nil {
		return nil, err
	}

	triangulation := &Triangulation{
		Triangles: sw.collectTriangles(tolerance),
		Hull:      sw.collectHull(),
		NumMerged: numMerged,
	}
	if len(triangulation.Triangles) == 0 {
		return nil, errors.Wrap(pipeline.ErrInsufficientGeometry, "no non degenerate triangle")
	}
	return triangulation, nil
}

func newSweep(points []r2.Point) *sweep {
	n := len(points)
	maxTriangles := 2*n - 5
	if maxTriangles < 1 {
		maxTriangles = 1
	}
	hashSize := int(math.Ceil(math.Sqrt(float64(n))))
	return &sweep{
		points:    points,
		triangles: make([]int, 0, maxTriangles*3),
		halfedges: make([]int, 0, maxTriangles*3),
		hullPrev:  make([]int, n),
		hullNext:  make([]int, n),
		hullTri:   make([]int, n),
		hullHash:  make([]int, hashSize),
	}
}

// Picks the seed triangle: the point closest to the center of the extent, its nearest
// neighbour, and the third point giving the smallest circumcircle
func (s *sweep) seed(ids []int) (int, int, int, error) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, i := range ids {
		p := s.points[i]
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	c := r2.Point{X: (minX + maxX) / 2, Y: (minY + maxY) / 2}

	i0, i1, i2 := -1, -1, -1
	minDist := math.Inf(1)
	for _, i := range ids {
		if d := squaredDistance(c, s.points[i]); d < minDist {
			i0, minDist = i, d
		}
	}
	p0 := s.points[i0]

	minDist = math.Inf(1)
	for _, i := range ids {
		if i == i0 {
			continue
		}
		if d := squaredDistance(p0, s.points[i]); d < minDist {
			i1, minDist = i, d
		}
	}
	p1 := s.points[i1]

	minRadius := math.Inf(1)
	for _, i := range ids {
		if i == i0 || i == i1 || orient(p0, p1, s.points[i]) == 0 {
			continue
		}
		r := circumradiusSquared(p0, p1, s.points[i])
		if i2 == -1 || r < minRadius {
			i2, minRadius = i, r
		}
	}
	if i2 == -1 {
		return 0, 0, 0, errors.Wrapf(pipeline.ErrInsufficientGeometry, "all %d distinct points are collinear", len(ids))
	}

	if orient(p0, p1, s.points[i2]) < 0 {
		i1, i2 = i2, i1
	}
	return i0, i1, i2, nil
}

func (s *sweep) run(ids []int) error {
	i0, i1, i2, err := s.seed(ids)
	if err != nil {
		return err
	}
	p0, p1, p2 := s.points[i0], s.points[i1], s.points[i2]

	s.center = circumcenter(p0, p1, p2)
	if !isFinite(s.center) {
		s.center = r2.Point{X: (p0.X + p1.X + p2.X) / 3, Y: (p0.Y + p1.Y + p2.Y) / 3}
	}

	dists := make([]float64, len(s.points))
	for _, i := range ids {
		dists[i] = squaredDistance(s.center, s.points[i])
	}
	order := make([]int, len(ids))
	copy(order, ids)
	sort.SliceStable(order, func(a, b int) bool {
		return s.closerToCenter(order[a], order[b], dists)
	})

	s.hullStart = i0
	s.hullNext[i0], s.hullPrev[i2] = i1, i1
	s.hullNext[i1], s.hullPrev[i0] = i2, i2
	s.hullNext[i2], s.hullPrev[i1] = i0, i0
	s.hullTri[i0], s.hullTri[i1], s.hullTri[i2] = 0, 1, 2
	for i := range s.hullHash {
		s.hullHash[i] = -1
	}
	s.hullHash[s.hashKey(p0)] = i0
	s.hullHash[s.hashKey(p1)] = i1
	s.hullHash[s.hashKey(p2)] = i2

	s.addTriangle(i0, i1, i2, -1, -1, -1)

	for _, i := range order {
		if i == i0 || i == i1 || i == i2 {
			continue
		}
		s.insert(i)
	}
	return nil
}

// Orders points by distance from the sweep center. Near ties are resolved exactly so
// that every inserted point lies outside the hull of the points inserted before it.
func (s *sweep) closerToCenter(a, b int, dists []float64) bool {
	da, db := dists[a], dists[b]
	if math.Abs(da-db) > 1e-12*math.Max(da, db) {
		return da < db
	}
	return s.exactDistanceCmp(a, b) < 0
}

func (s *sweep) exactDistanceCmp(a, b int) int {
	cx, cy := exactDecimal(s.center.X), exactDecimal(s.center.Y)
	squared := func(p r2.Point) decimal.Decimal {
		dx := exactDecimal(p.X).Sub(cx)
		dy := exactDecimal(p.Y).Sub(cy)
		return dx.Mul(dx).Add(dy.Mul(dy))
	}
	return squared(s.points[a]).Cmp(squared(s.points[b]))
}

// Connects point i to every hull edge it can see and restores the Delaunay property
func (s *sweep) insert(i int) {
	p := s.points[i]

	// find a hull vertex close to the point's angular position
	start := 0
	key := s.hashKey(p)
	for j := 0; j < len(s.hullHash); j++ {
		start = s.hullHash[(key+j)%len(s.hullHash)]
		if start != -1 && start != s.hullNext[start] {
			break
		}
	}
	if start == -1 || s.hullNext[start] == start {
		start = s.hullStart
	}
	start = s.hullPrev[start]

	// walk forward until an edge the point can see
	e := start
	for {
		q := s.hullNext[e]
		if orient(s.points[e], s.points[q], p) < 0 {
			break
		}
		e = q
		if e == start {
			// not outside the hull: only the seed triangle can enclose a later point
			s.insertInterior(i)
			return
		}
	}

	t := s.addTriangle(e, i, s.hullNext[e], -1, -1, s.hullTri[e])
	s.hullTri[i] = s.legalize(t + 2)
	s.hullTri[e] = t

	// walk forward through the visible edges
	n := s.hullNext[e]
	for {
		q := s.hullNext[n]
		if orient(s.points[n], s.points[q], p) >= 0 {
			break
		}
		t = s.addTriangle(n, i, q, s.hullTri[i], -1, s.hullTri[n])
		s.hullTri[i] = s.legalize(t + 2)
		s.hullNext[n] = n
		n = q
	}

	// walk backward from the other side
	if e == start {
		for {
			q := s.hullPrev[e]
			if orient(s.points[q], s.points[e], p) >= 0 {
				break
			}
			t = s.addTriangle(q, i, e, -1, s.hullTri[e], s.hullTri[q])
			s.legalize(t + 2)
			s.hullTri[q] = t
			s.hullNext[e] = e
			e = q
		}
	}

	s.hullStart = e
	s.hullPrev[i] = e
	s.hullNext[e] = i
	s.hullPrev[n] = i
	s.hullNext[i] = n

	s.hullHash[s.hashKey(p)] = i
	s.hullHash[s.hashKey(s.points[e])] = e
}

// Splits the triangle containing point i into three and legalizes the outer edges
func (s *sweep) insertInterior(i int) {
	p := s.points[i]
	for t := 0; t+2 < len(s.triangles); t += 3 {
		a, b, c := s.triangles[t], s.triangles[t+1], s.triangles[t+2]
		if orient(s.points[a], s.points[b], p) < 0 ||
			orient(s.points[b], s.points[c], p) < 0 ||
			orient(s.points[c], s.points[a], p) < 0 {
			continue
		}

		hb, hc := s.halfedges[t+1], s.halfedges[t+2]
		s.triangles[t+2] = i
		t1 := s.addTriangle(b, c, i, hb, -1, t+1)
		t2 := s.addTriangle(c, a, i, hc, t+2, t1+1)
		if hb == -1 {
			s.fixHullTriangle(t+1, t1)
		}
		if hc == -1 {
			s.fixHullTriangle(t+2, t2)
		}

		s.legalize(t)
		s.legalize(t1)
		s.legalize(t2)
		return
	}
}

func (s *sweep) hashKey(p r2.Point) int {
	dx, dy := p.X-s.center.X, p.Y-s.center.Y
	if dx == 0 && dy == 0 {
		return 0
	}
	size := len(s.hullHash)
	return int(math.Floor(pseudoAngle(dx, dy)*float64(size))) % size
}

func (s *sweep) addTriangle(i0, i1, i2, a, b, c int) int {
	t := len(s.triangles)
	s.triangles = append(s.triangles, i0, i1, i2)
	s.halfedges = append(s.halfedges, -1, -1, -1)
	s.link(t, a)
	s.link(t+1, b)
	s.link(t+2, c)
	return t
}

func (s *sweep) link(a, b int) {
	s.halfedges[a] = b
	if b != -1 {
		s.halfedges[b] = a
	}
}

// Flips the edge a and, recursively, the edges around it while the opposite vertex
// lies strictly inside a circumcircle. Returns the half-edge that ends up on the hull
// side of the new point.
//
//	      pl                    pl
//	     /||\                  /  \
//	  al/ || \bl            al/    \a
//	   /  ||  \              /      \
//	  /  a||b  \    flip    /___ar___\
//	p0\   ||   /p1   =>   p0\---bl---/p1
//	   \  ||  /              \      /
//	  ar\ || /br             b\    /br
//	     \||/                  \  /
//	      pr                    pr
func (s *sweep) legalize(a int) int {
	ar := 0
	s.edgeStack = s.edgeStack[:0]
	for {
		b := s.halfedges[a]
		a0 := a - a%3
		ar = a0 + (a+2)%3

		if b == -1 {
			if len(s.edgeStack) == 0 {
				break
			}
			a = s.pop()
			continue
		}

		b0 := b - b%3
		al := a0 + (a+1)%3
		bl := b0 + (b+2)%3

		p0 := s.triangles[ar]
		pr := s.triangles[a]
		pl := s.triangles[al]
		p1 := s.triangles[bl]

		if inCircle(s.points[p0], s.points[pr], s.points[pl], s.points[p1]) > 0 {
			s.triangles[a] = p1
			s.triangles[b] = p0

			hbl := s.halfedges[bl]
			if hbl == -1 {
				s.fixHullTriangle(bl, a)
			}
			s.link(a, hbl)
			s.link(b, s.halfedges[ar])
			s.link(ar, bl)

			br := b0 + (b+1)%3
			s.edgeStack = append(s.edgeStack, br)
		} else {
			if len(s.edgeStack) == 0 {
				break
			}
			a = s.pop()
		}
	}
	return ar
}

func (s *sweep) pop() int {
	last := len(s.edgeStack) - 1
	e := s.edgeStack[last]
	s.edgeStack = s.edgeStack[:last]
	return e
}

// A flip moved the hull half-edge from; point the hull vertex that referenced it to to
func (s *sweep) fixHullTriangle(from, to int) {
	e := s.hullStart
	for count := 0; count < len(s.hullTri); count++ {
		if s.hullTri[e] == from {
			s.hullTri[e] = to
			return
		}
		e = s.hullPrev[e]
		if e == s.hullStart {
			return
		}
	}
}

// Emits the triangles, dropping slivers whose height is below tolerance
func (s *sweep) collectTriangles(tolerance float64) []Triangle {
	out := make([]Triangle, 0, len(s.triangles)/3)
	for t := 0; t+2 < len(s.triangles); t += 3 {
		a, b, c := s.triangles[t], s.triangles[t+1], s.triangles[t+2]
		if isSliver(s.points[a], s.points[b], s.points[c], tolerance) {
			continue
		}
		out = append(out, Triangle{A: a, B: b, C: c})
	}
	return out
}

func (s *sweep) collectHull() []int {
	hull := make([]int, 0)
	e := s.hullStart
	for {
		hull = append(hull, e)
		e = s.hullNext[e]
		if e == s.hullStart || len(hull) > len(s.points) {
			break
		}
	}
	return hull
}

func isSliver(a, b, c r2.Point, tolerance float64) bool {
	if orient(a, b, c) <= 0 {
		return true
	}
	longest := math.Max(b.Sub(a).Norm(), math.Max(c.Sub(b).Norm(), a.Sub(c).Norm()))
	height := 2 * TriangleArea(a, b, c) / longest
	return height < tolerance
}
