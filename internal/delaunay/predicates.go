package delaunay

import (
	"math"
	"math/big"

	"github.com/golang/geo/r2"
	"github.com/shopspring/decimal"
)

// Forward error bounds of the float evaluations below (Shewchuk, "Adaptive Precision
// Floating-Point Arithmetic and Fast Robust Geometric Predicates"). When the float
// determinant is smaller than bound*permanent its sign cannot be trusted and the
// determinant is recomputed exactly.
var (
	machineEpsilon = math.Ldexp(1, -53)
	orientErrBound = (3 + 16*machineEpsilon) * machineEpsilon
	circleErrBound = (10 + 96*machineEpsilon) * machineEpsilon
)

// Returns a positive value if a, b, c are in counter-clockwise order, negative if
// clockwise and zero if they are collinear. The sign is exact.
func orient(a, b, c r2.Point) float64 {
	detLeft := (b.X - a.X) * (c.Y - a.Y)
	detRight := (b.Y - a.Y) * (c.X - a.X)
	det := detLeft - detRight

	detSum := math.Abs(detLeft) + math.Abs(detRight)
	if math.Abs(det) > orientErrBound*detSum {
		return det
	}
	return float64(orientExact(a, b, c))
}

func orientExact(a, b, c r2.Point) int {
	ax, ay := exactDecimal(a.X), exactDecimal(a.Y)
	bx, by := exactDecimal(b.X), exactDecimal(b.Y)
	cx, cy := exactDecimal(c.X), exactDecimal(c.Y)

	left := bx.Sub(ax).Mul(cy.Sub(ay))
	right := by.Sub(ay).Mul(cx.Sub(ax))
	return left.Sub(right).Sign()
}

// Returns a positive value if d lies strictly inside the circle through the
// counter-clockwise triangle a, b, c, negative if outside, zero if on it.
// The sign is exact.
func inCircle(a, b, c, d r2.Point) float64 {
	adx, ady := a.X-d.X, a.Y-d.Y
	bdx, bdy := b.X-d.X, b.Y-d.Y
	cdx, cdy := c.X-d.X, c.Y-d.Y

	bdxcdy, cdxbdy := bdx*cdy, cdx*bdy
	cdxady, adxcdy := cdx*ady, adx*cdy
	adxbdy, bdxady := adx*bdy, bdx*ady

	alift := adx*adx + ady*ady
	blift := bdx*bdx + bdy*bdy
	clift := cdx*cdx + cdy*cdy

	det := alift*(bdxcdy-cdxbdy) + blift*(cdxady-adxcdy) + clift*(adxbdy-bdxady)

	permanent := (math.Abs(bdxcdy)+math.Abs(cdxbdy))*alift +
		(math.Abs(cdxady)+math.Abs(adxcdy))*blift +
		(math.Abs(adxbdy)+math.Abs(bdxady))*clift
	if math.Abs(det) > circleErrBound*permanent {
		return det
	}
	return float64(inCircleExact(a, b, c, d))
}

func inCircleExact(a, b, c, d r2.Point) int {
	dx, dy := exactDecimal(d.X), exactDecimal(d.Y)
	adx, ady := exactDecimal(a.X).Sub(dx), exactDecimal(a.Y).Sub(dy)
	bdx, bdy := exactDecimal(b.X).Sub(dx), exactDecimal(b.Y).Sub(dy)
	cdx, cdy := exactDecimal(c.X).Sub(dx), exactDecimal(c.Y).Sub(dy)

	alift := adx.Mul(adx).Add(ady.Mul(ady))
	blift := bdx.Mul(bdx).Add(bdy.Mul(bdy))
	clift := cdx.Mul(cdx).Add(cdy.Mul(cdy))

	det := alift.Mul(bdx.Mul(cdy).Sub(cdx.Mul(bdy))).
		Add(blift.Mul(cdx.Mul(ady).Sub(adx.Mul(cdy)))).
		Add(clift.Mul(adx.Mul(bdy).Sub(bdx.Mul(ady))))
	return det.Sign()
}

// Converts a float64 to the decimal holding exactly the same binary value.
// decimal.NewFromFloat keeps only the shortest round-tripping digits, which is
// not enough for exact predicates.
func exactDecimal(f float64) decimal.Decimal {
	if f == 0 {
		return decimal.Zero
	}
	frac, exp := math.Frexp(f)
	mantissa := big.NewInt(int64(frac * (1 << 53)))
	exp -= 53
	if exp >= 0 {
		return decimal.NewFromBigInt(mantissa.Lsh(mantissa, uint(exp)), 0)
	}
	// m * 2^-k == m * 5^k * 10^-k
	k := int64(-exp)
	five := new(big.Int).Exp(big.NewInt(5), big.NewInt(k), nil)
	return decimal.NewFromBigInt(mantissa.Mul(mantissa, five), int32(-k))
}
