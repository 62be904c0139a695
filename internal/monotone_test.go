package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTriangulateMonotone(t *testing.T) {
	// Triangles. These are currently special-cased, so these should be an no-op.
	// Included in case that implementation changes.
	t.Run("simple triangle", func(t *testing.T) {
		poly := &Polygon{[]*Point{{0, 0}, {1, 1}, {0, 2}}}

		triangles := TriangulateMonotone(poly)
		AssertValidTriangulation(t, poly, triangles)
	})

	t.Run("wacky triangle", func(t *testing.T) {
		poly := &Polygon{[]*Point{{-10, 0}, {43, 2}, {0, 2}}}

		triangles := TriangulateMonotone(poly)
		AssertValidTriangulation(t, poly, triangles)
	})

	t.Run("triangle with horizontal", func(t *testing.T) {
		// A horizontal segment is always acceptable in a triangle. It will only
		// affect which chain the segment is considered to be part of
		poly := &Polygon{[]*Point{{0, 0}, {1, 0}, {0, 1}}}
		triangles := TriangulateMonotone(poly)
		AssertValidTriangulation(t, poly, triangles)
	})

	// Quadrilaterals.
	t.Run("square", func(t *testing.T) {
		// A square has horizontal segments, but it is still strictly y-monotone
		// because of the lexiographic ordering.
		poly := &Polygon{[]*Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}}
		triangles := TriangulateMonotone(poly)
		AssertValidTriangulation(t, poly, triangles)
	})

	t.Run("diamond", func(t *testing.T) {
		poly := &Polygon{[]*Point{{0, 0}, {1, 1}, {0, 2}, {-1, 1}}}
		triangles := TriangulateMonotone(poly)
		AssertValidTriangulation(t, poly, triangles)
	})

	t.Run("quad chevron", func(t *testing.T) {
		// Our first non-convex quadrilateral, shaped like this:
		/*
			 C
			 \ \
			  \  \
			  D   B
			 /  /
			/ /
			A
		*/
		poly := &Polygon{[]*Point{
			{0, 0},
			{10, 10},
			{0, 20},
			{5, 10},
		}}
		triangles := TriangulateMonotone(poly)
		AssertValidTriangulation(t, poly, triangles)
	})

	t.Run("zigzag chains", func(t *testing.T) {
		// Both chains bend in and out, so the stack fills and drains repeatedly
		poly := &Polygon{[]*Point{
			{0, 0},
			{3, 1},
			{2, 2},
			{4, 3},
			{3, 4},
			{1, 5},
			{-1, 3.5},
			{0.5, 2.5},
			{-1, 1.5},
		}}
		triangles := TriangulateMonotone(poly)
		AssertValidTriangulation(t, poly, triangles)
	})

	t.Run("regular polygons", func(t *testing.T) {
		for n := 3; n <= 16; n++ {
			poly := RegularPolygon(n, 10)
			triangles := TriangulateMonotone(&poly)
			AssertValidTriangulation(t, &poly, triangles)
		}
	})

	// Monotone pieces of the fixtures, reflected every which way
	reflections := []struct {
		name   string
		sx, sy float64
	}{
		{"original", 1, 1},
		{"x reflected", -1, 1},
		{"y reflected", 1, -1},
		{"xy reflected", -1, -1},
	}
	for _, fixtureName := range fixtureNames {
		for _, reflection := range reflections {
			fixtureName, reflection := fixtureName, reflection
			t.Run(fixtureName+" pieces ("+reflection.name+")", func(t *testing.T) {
				poly := clonePolygon(*LoadFixture(fixtureName))
				for _, p := range poly.Points {
					p.X *= reflection.sx
					p.Y *= reflection.sy
				}
				if reflection.sx*reflection.sy < 0 {
					poly = poly.Reverse()
				}
				for _, piece := range ConvertToMonotones(poly) {
					piece := piece
					triangles := TriangulateMonotone(&piece)
					AssertValidTriangulation(t, &piece, triangles)
				}
			})
		}
	}
}

func TestSweepOrder(t *testing.T) {
	/*
		    0
		   / \
		  1   4
		  |    \
		  2     |
		   \   /
		     3
	*/
	poly := &Polygon{[]*Point{{2, 10}, {0, 8}, {0, 4}, {3, 0}, {4, 7}}}
	order := sweepOrder(poly)
	var points []*Point
	var sides []chainSide
	for _, v := range order {
		points = append(points, v.Point)
		sides = append(sides, v.side)
	}
	assert.Equal(t, []*Point{poly.Points[0], poly.Points[1], poly.Points[4], poly.Points[2], poly.Points[3]}, points)
	assert.Equal(t, []chainSide{rightChain, leftChain, rightChain, leftChain, rightChain}, sides)
}
