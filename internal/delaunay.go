package internal

// Lawson's flip algorithm. Starting from any triangulation of the polygon, flip
// interior edges that fail the empty circumcircle test until none do. Boundary
// edges are never touched, which makes the result the constrained Delaunay
// triangulation of the polygon.
//
// Flips are driven by a stack seeded in triangle order, so the outcome is
// deterministic for a given input.

// Generous bound on the number of flips. Lawson needs O(n^2) in the worst case.
func maxFlips(n int) int {
	return 4*n*n + 64
}

func (m *Mesh) MakeDelaunay() int {
	var stack []halfEdge
	for _, tri := range m.Triangles {
		for _, e := range tri.Edges() {
			// Push each interior edge once
			if !m.IsBoundary(e[0], e[1]) && pointOrder(e[0], e[1]) {
				stack = append(stack, halfEdge{e[0], e[1]})
			}
		}
	}

	flips := 0
	limit := maxFlips(len(m.Polygon.Points))
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		outer, ok := m.flipIfIllegal(e[0], e[1])
		if !ok {
			continue
		}
		flips++
		if flips > limit {
			unstablef("edge flipping did not converge after %d flips", flips)
		}
		for _, o := range outer {
			if !m.IsBoundary(o[0], o[1]) {
				stack = append(stack, o)
			}
		}
	}
	return flips
}

// Arbitrary but stable order between two points, so that an undirected edge
// has one canonical direction.
func pointOrder(a, b *Point) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}

/*
Flip the edge a-b if the opposite vertex of one triangle is inside the
circumcircle of the other:

	    c                c
	   / \              /|\
	  /   \            / | \
	 a-----b   ->     a  |  b
	  \   /            \ | /
	   \ /              \|/
	    d                d

Returns the four outer edges of the quad, which may have become illegal.
*/
func (m *Mesh) flipIfIllegal(a, b *Point) ([4]halfEdge, bool) {
	var outer [4]halfEdge
	t1, ok := m.owner[halfEdge{a, b}]
	if !ok {
		return outer, false
	}
	t2, ok := m.owner[halfEdge{b, a}]
	if !ok {
		return outer, false
	}
	c := m.Triangles[t1].opposite(a, b)
	d := m.Triangles[t2].opposite(b, a)
	if c == nil || d == nil {
		fatalf("mesh adjacency is corrupt at edge %v-%v", a, b)
	}

	if !InCircle(a, b, c, d) {
		return outer, false
	}
	// The quad a, d, b, c must be strictly convex for the new diagonal to lie
	// inside it
	if Orient(a, d, c) <= Epsilon || Orient(d, b, c) <= Epsilon {
		return outer, false
	}

	m.release(t1)
	m.release(t2)
	m.Triangles[t1] = &Triangle{d, b, c}
	m.Triangles[t2] = &Triangle{a, d, c}
	m.claim(t1)
	m.claim(t2)

	outer = [4]halfEdge{{b, c}, {c, a}, {a, d}, {d, b}}
	return outer, true
}

// The vertex of the triangle that isn't on the directed edge a->b, provided the
// triangle owns that edge.
func (t *Triangle) opposite(a, b *Point) *Point {
	for _, e := range t.Edges() {
		if e[0] == a && e[1] == b {
			return e[2]
		}
	}
	return nil
}

// Whether every interior edge passes the empty circumcircle test.
func (m *Mesh) IsDelaunay() bool {
	for t, tri := range m.Triangles {
		for _, e := range tri.Edges() {
			other, ok := m.Neighbor(e[0], e[1])
			if !ok || other < t {
				continue
			}
			d := m.Triangles[other].opposite(e[1], e[0])
			if InCircle(e[0], e[1], e[2], d) &&
				Orient(e[0], d, e[2]) > Epsilon && Orient(d, e[1], e[2]) > Epsilon {
				return false
			}
		}
	}
	return true
}
