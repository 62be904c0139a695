package internal

// Winding rule point-in-polygon. This is used to check that skeleton points
// stay inside the shape, and by the Voronoi method to discard exterior
// Voronoi vertices.
func (poly Polygon) ContainsPointByEvenOdd(p *Point) bool {
	return poly.CrossingCount(p)%2 == 1
}

// Crossing count helper for even odd rule. Counts the edges that cross the
// horizontal ray going right from p.
func (poly Polygon) CrossingCount(p *Point) int {
	crossingCount := 0
	for i, vertex := range poly.Points {
		nextVertex := poly.Points[CircularIndex(i+1, len(poly.Points))]

		segment := Segment{vertex, nextVertex}
		if vertex.Below(p) != nextVertex.Below(p) && segment.IsRightOf(p) {
			crossingCount++
		}
	}
	return crossingCount
}

func (list PolygonList) ContainsPointByEvenOdd(p *Point) bool {
	count := 0
	for _, poly := range list {
		count += poly.CrossingCount(p)
	}
	return count%2 == 1
}

func (poly Polygon) Reverse() Polygon {
	newPoly := Polygon{}
	for i := len(poly.Points) - 1; i >= 0; i-- {
		newPoly.Points = append(newPoly.Points, poly.Points[i])
	}
	return newPoly
}

// Distance from p to the nearest point of the boundary. For a point inside the
// polygon, this is the radius of the largest inscribed circle centered there.
func (poly Polygon) BoundaryDistance(p *Point) float64 {
	best := -1.0
	for i, vertex := range poly.Points {
		nextVertex := poly.Points[CircularIndex(i+1, len(poly.Points))]
		d := DistanceToSegment(p, vertex, nextVertex)
		if best < 0 || d < best {
			best = d
		}
	}
	return best
}

// Is the vertex at index i strictly convex? Assumes a counterclockwise polygon.
func (poly Polygon) IsConvexAt(i int) bool {
	n := len(poly.Points)
	prev := poly.Points[CircularIndex(i-1, n)]
	next := poly.Points[CircularIndex(i+1, n)]
	return Orient(prev, poly.Points[i], next) > Epsilon
}

// Does the closed segment ab cross or touch the boundary anywhere other than at
// the given endpoints? Used to check that shortcuts through the interior are
// legal.
func (poly Polygon) SegmentCrossesBoundary(a, b *Point) bool {
	for i, vertex := range poly.Points {
		nextVertex := poly.Points[CircularIndex(i+1, len(poly.Points))]
		if intersectProp(a, b, vertex, nextVertex) {
			return true
		}
		// A boundary vertex lying on the open segment also counts
		if vertex != a && vertex != b && between(a, b, vertex) && !vertex.Equals(a) && !vertex.Equals(b) {
			return true
		}
	}
	return false
}
