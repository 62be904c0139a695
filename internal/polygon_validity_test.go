package internal

// This contains no actual tests. It is just helpers for testing triangulation
// and skeleton validity.

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper to check that a triangulation is valid. The rules are:
// 1. The set of points in the triangles must equal the set of points in the polygon.
// 2. The set of line segments in the polygon is a subset of the set of line segments in the triangles.
// 3. Every triangle is counterclockwise
// 4. No triangle has zero area
// 5. The sum of the areas of all triangles is equal to the area of the polygon.
func AssertValidTriangulation(t *testing.T, polygon *Polygon, triangles []*Triangle) {
	if !IsCCW(polygon) {
		t.Fatal("Polygon is not counterclockwise")
	}

	polyPoints := make(PointSet)
	for _, p := range polygon.Points {
		polyPoints.Add(p)
	}
	trianglePoints := make(PointSet)
	for _, t := range triangles {
		trianglePoints.Add(t.A)
		trianglePoints.Add(t.B)
		trianglePoints.Add(t.C)
	}

	require.True(t, polyPoints.Equals(trianglePoints), "set of points in the triangles must equal the set of points in the polygon")

	var triangleArea float64
	triangleSegmentSet := make(normalizedSegmentSet)
	for _, tri := range triangles {
		require.True(t, IsCCW(tri), "clockwise or degenerate triangle: %s", tri)
		triangleArea += Area(tri)
		triangleSegmentSet.add(tri.A, tri.B)
		triangleSegmentSet.add(tri.B, tri.C)
		triangleSegmentSet.add(tri.C, tri.A)
	}

	for i, p1 := range polygon.Points {
		p2 := polygon.Points[(i+1)%len(polygon.Points)]
		require.True(t, triangleSegmentSet.contains(p1, p2), "segment %v-%v of the polygon is not in the set of segments in the triangles", p1, p2)
	}

	polygonArea := Area(polygon)
	require.InDelta(t, polygonArea, triangleArea, Tolerance*math.Max(1, polygonArea), "sum of the areas of all triangles must equal the area of the polygon")
}

// Check that no vertex lies inside the circumcircle of the triangle across each
// interior edge. The circle is computed directly, independently of InCircle, and
// a vertex must be inside by a relative margin to count.
func AssertDelaunay(t *testing.T, mesh *Mesh) {
	violations := 0
	for ti, tri := range mesh.Triangles {
		for _, e := range tri.Edges() {
			other, ok := mesh.Neighbor(e[0], e[1])
			if !ok || other < ti {
				continue
			}
			d := mesh.Triangles[other].opposite(e[1], e[0])
			require.NotNil(t, d)
			center, radius := circumcircle(e[0], e[1], e[2])
			if Distance(center, d) < radius*(1-1e-6) {
				violations++
				if violations <= 5 {
					t.Errorf("%v is inside the circumcircle of %v %v %v", d, e[0], e[1], e[2])
				}
			}
		}
	}
	assert.Zero(t, violations, "interior edges failing the empty circle test")
}

func circumcircle(a, b, c *Point) (*Point, float64) {
	bx, by := b.X-a.X, b.Y-a.Y
	cx, cy := c.X-a.X, c.Y-a.Y
	d := 2 * (bx*cy - by*cx)
	b2, c2 := bx*bx+by*by, cx*cx+cy*cy
	ux := (cy*b2 - by*c2) / d
	uy := (bx*c2 - cx*b2) / d
	return &Point{a.X + ux, a.Y + uy}, math.Hypot(ux, uy)
}

// Used in the helper above, this is a "normalized" line segment, where the
// "lower" point (accounting for lexicographic adjustment) is always first
type normalizedSegment struct {
	lower, upper *Point
}

func newNormalizedSegment(a, b *Point) normalizedSegment {
	if a.Below(b) {
		return normalizedSegment{a, b}
	}
	return normalizedSegment{b, a}
}

type normalizedSegmentSet map[normalizedSegment]struct{}

func (set normalizedSegmentSet) add(a, b *Point) {
	set[newNormalizedSegment(a, b)] = struct{}{}
}

func (set normalizedSegmentSet) contains(a, b *Point) bool {
	_, ok := set[newNormalizedSegment(a, b)]
	return ok
}

// Compare two polygon sets by sampling a grid over their bounding box. Sample
// points too close to any boundary are skipped, since either answer is fine
// there.
func validatePolygonsBySampling(t *testing.T, actualPolygons PolygonList, expectedPolygons PolygonList) {
	minX, minY, maxX, maxY := math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)
	for _, list := range []PolygonList{actualPolygons, expectedPolygons} {
		for _, poly := range list {
			for _, p := range poly.Points {
				minX = math.Min(minX, p.X)
				minY = math.Min(minY, p.Y)
				maxX = math.Max(maxX, p.X)
				maxY = math.Max(maxY, p.Y)
			}
		}
	}

	// Pad the bounding box by 10%
	xPadding := (maxX - minX) * 0.1
	yPadding := (maxY - minY) * 0.1
	minX -= xPadding
	minY -= yPadding
	maxX += xPadding
	maxY += yPadding

	step := math.Max(maxX-minX, maxY-minY) / 50
	margin := step / 100

	nearBoundary := func(p *Point) bool {
		for _, list := range []PolygonList{actualPolygons, expectedPolygons} {
			for _, poly := range list {
				if poly.BoundaryDistance(p) < margin {
					return true
				}
			}
		}
		return false
	}

	// Offset the grid a little so it doesn't line up with axis aligned edges
	for y := minY + step/7; y <= maxY; y += step {
		for x := minX + step/11; x <= maxX; x += step {
			p := &Point{X: x, Y: y}
			if nearBoundary(p) {
				continue
			}

			actual := actualPolygons.ContainsPointByEvenOdd(p)
			if expectedPolygons.ContainsPointByEvenOdd(p) {
				assert.True(t, actual, "point %v should be in the polygon set", p)
			} else {
				assert.False(t, actual, "point %v should not be in the polygon set", p)
			}
		}
	}
}

func toRing(poly Polygon) orb.Ring {
	ring := make(orb.Ring, 0, len(poly.Points)+1)
	for _, p := range poly.Points {
		ring = append(ring, orb.Point{p.X, p.Y})
	}
	return append(ring, ring[0])
}

// Every skeleton edge must stay within the closed polygon. The edge is sampled
// and each sample checked against an independent point in ring test, allowing
// for points that land on the boundary itself.
func AssertSkeletonInside(t *testing.T, poly Polygon, skeleton *Skeleton) {
	ring := toRing(poly)
	slack := Tolerance * polygonExtent(poly)
	inside := func(p *Point) bool {
		return planar.RingContains(ring, orb.Point{p.X, p.Y}) || poly.BoundaryDistance(p) <= slack
	}
	for _, n := range skeleton.Nodes {
		assert.True(t, inside(&n.Point), "node %v is outside the polygon", n)
	}
	for _, e := range skeleton.Edges {
		for k := 1; k < 10; k++ {
			s := float64(k) / 10
			p := &Point{
				X: e.Start.X + s*(e.End.X-e.Start.X),
				Y: e.Start.Y + s*(e.End.Y-e.Start.Y),
			}
			assert.True(t, inside(p), "edge %v-%v leaves the polygon at %v", e.Start, e.End, p)
		}
	}
}

func polygonExtent(poly Polygon) float64 {
	minX, minY, maxX, maxY := math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)
	for _, p := range poly.Points {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return math.Max(maxX-minX, maxY-minY)
}

// Radii must match the distance to the boundary, as measured independently
func AssertRadii(t *testing.T, poly Polygon, skeleton *Skeleton) {
	extent := polygonExtent(poly)
	ring := toRing(poly)
	for _, n := range skeleton.Nodes {
		expected := math.Inf(1)
		for i := 0; i+1 < len(ring); i++ {
			expected = math.Min(expected, planar.DistanceFromSegment(ring[i], ring[i+1], orb.Point{n.X, n.Y}))
		}
		assert.InDelta(t, expected, n.Radius, 1e-9*extent, "radius of %v", n)
	}
}
