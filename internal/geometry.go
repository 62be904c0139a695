package internal

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

func (p *Point) Vec() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

func PointFromVec(v r2.Vec) *Point {
	return &Point{X: v.X, Y: v.Y}
}

// Twice the signed area of the triangle abc. Positive when counterclockwise.
func Orient(a, b, c *Point) float64 {
	return r2.Cross(r2.Sub(b.Vec(), a.Vec()), r2.Sub(c.Vec(), a.Vec()))
}

// Anything with an ordered list of points that form a closed loop.
type Loop interface {
	LoopPoints() []*Point
}

func (poly *Polygon) LoopPoints() []*Point {
	return poly.Points
}

func (t *Triangle) LoopPoints() []*Point {
	return []*Point{t.A, t.B, t.C}
}

// Shoelace formula. Counterclockwise loops have positive area.
func SignedArea(loop Loop) float64 {
	points := loop.LoopPoints()
	var sum float64
	for i, p := range points {
		q := points[CircularIndex(i+1, len(points))]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

func (t *Triangle) SignedArea() float64 {
	return SignedArea(t)
}

func Area(loop Loop) float64 {
	return math.Abs(SignedArea(loop))
}

func IsCCW(loop Loop) bool {
	return SignedArea(loop) > Epsilon
}

func IsCW(loop Loop) bool {
	return SignedArea(loop) < -Epsilon
}

func Distance(a, b *Point) float64 {
	return r2.Norm(r2.Sub(b.Vec(), a.Vec()))
}

func Midpoint(a, b *Point) *Point {
	return PointFromVec(r2.Scale(0.5, r2.Add(a.Vec(), b.Vec())))
}

// Distance from p to the closed segment ab.
func DistanceToSegment(p, a, b *Point) float64 {
	ab := r2.Sub(b.Vec(), a.Vec())
	ap := r2.Sub(p.Vec(), a.Vec())
	lengthSquared := r2.Dot(ab, ab)
	if lengthSquared == 0 {
		return r2.Norm(ap)
	}
	t := math.Max(0, math.Min(1, r2.Dot(ap, ab)/lengthSquared))
	closest := r2.Add(a.Vec(), r2.Scale(t, ab))
	return r2.Norm(r2.Sub(p.Vec(), closest))
}

// The incenter is the average of the vertices weighted by the length of the
// opposite side. The inradius is area over semiperimeter.
func (t *Triangle) Incenter() (center *Point, radius float64) {
	a := Distance(t.B, t.C)
	b := Distance(t.C, t.A)
	c := Distance(t.A, t.B)
	perimeter := a + b + c
	if perimeter == 0 {
		return &Point{t.A.X, t.A.Y}, 0
	}
	sum := r2.Add(r2.Add(r2.Scale(a, t.A.Vec()), r2.Scale(b, t.B.Vec())), r2.Scale(c, t.C.Vec()))
	center = PointFromVec(r2.Scale(1/perimeter, sum))
	radius = 2 * Area(t) / perimeter
	return center, radius
}

func (t *Triangle) Centroid() *Point {
	sum := r2.Add(r2.Add(t.A.Vec(), t.B.Vec()), t.C.Vec())
	return PointFromVec(r2.Scale(1.0/3, sum))
}

// Relative error allowed in the in-circle determinant. It sits far above the
// rounding error of the determinant and far below any real violation.
const inCircleEpsilon = 1e-10

// Is d strictly inside the circumcircle of the counterclockwise triangle abc?
// The determinant must clear a bound relative to its permanent, the same sum
// taken over absolute values. The bound scales with the fourth power of the
// triangle's size just like the determinant does, so tiny triangles from
// densely sampled curves are judged the same as large ones, while cocircular
// points (the corners of a square, a regular polygon) never cause endless
// flipping.
func InCircle(a, b, c, d *Point) bool {
	adx, ady := a.X-d.X, a.Y-d.Y
	bdx, bdy := b.X-d.X, b.Y-d.Y
	cdx, cdy := c.X-d.X, c.Y-d.Y
	alift := adx*adx + ady*ady
	blift := bdx*bdx + bdy*bdy
	clift := cdx*cdx + cdy*cdy
	det := alift*(bdx*cdy-cdx*bdy) -
		blift*(adx*cdy-cdx*ady) +
		clift*(adx*bdy-bdx*ady)
	permanent := alift*(math.Abs(bdx*cdy)+math.Abs(cdx*bdy)) +
		blift*(math.Abs(adx*cdy)+math.Abs(cdx*ady)) +
		clift*(math.Abs(adx*bdy)+math.Abs(bdx*ady))
	return det > inCircleEpsilon*permanent
}

// Proper intersection: the segments cross at a single point interior to both.
func intersectProp(a, b, c, d *Point) bool {
	abc := Orient(a, b, c)
	abd := Orient(a, b, d)
	cda := Orient(c, d, a)
	cdb := Orient(c, d, b)
	if math.Abs(abc) <= Epsilon || math.Abs(abd) <= Epsilon ||
		math.Abs(cda) <= Epsilon || math.Abs(cdb) <= Epsilon {
		return false
	}
	return (abc > 0) != (abd > 0) && (cda > 0) != (cdb > 0)
}

// Is c on the closed segment ab, given that the three are collinear?
func between(a, b, c *Point) bool {
	if math.Abs(Orient(a, b, c)) > Epsilon {
		return false
	}
	if !Equal(a.X, b.X) {
		return (a.X-Tolerance <= c.X && c.X <= b.X+Tolerance) ||
			(b.X-Tolerance <= c.X && c.X <= a.X+Tolerance)
	}
	return (a.Y-Tolerance <= c.Y && c.Y <= b.Y+Tolerance) ||
		(b.Y-Tolerance <= c.Y && c.Y <= a.Y+Tolerance)
}

// Do the closed segments ab and cd share any point?
func SegmentsIntersect(a, b, c, d *Point) bool {
	if intersectProp(a, b, c, d) {
		return true
	}
	return between(a, b, c) || between(a, b, d) || between(c, d, a) || between(c, d, b)
}
