package internal

// A triangulated polygon with enough adjacency to walk between neighboring
// triangles. Triangles are counterclockwise, so every triangle owns the three
// directed half edges A->B, B->C, C->A. An interior edge is owned once in each
// direction; a boundary edge only once.
type Mesh struct {
	Polygon   Polygon
	Triangles TriangleList
	owner     map[halfEdge]int
}

type halfEdge [2]*Point

func NewMesh(poly Polygon, triangles TriangleList) *Mesh {
	mesh := &Mesh{
		Polygon:   poly,
		Triangles: triangles,
		owner:     make(map[halfEdge]int, 3*len(triangles)),
	}
	for i := range triangles {
		mesh.claim(i)
	}
	return mesh
}

func (m *Mesh) claim(t int) {
	tri := m.Triangles[t]
	m.owner[halfEdge{tri.A, tri.B}] = t
	m.owner[halfEdge{tri.B, tri.C}] = t
	m.owner[halfEdge{tri.C, tri.A}] = t
}

func (m *Mesh) release(t int) {
	tri := m.Triangles[t]
	for _, e := range []halfEdge{{tri.A, tri.B}, {tri.B, tri.C}, {tri.C, tri.A}} {
		if owner, ok := m.owner[e]; ok && owner == t {
			delete(m.owner, e)
		}
	}
}

// The triangle on the other side of the directed edge a->b, if any.
func (m *Mesh) Neighbor(a, b *Point) (int, bool) {
	t, ok := m.owner[halfEdge{b, a}]
	return t, ok
}

func (m *Mesh) IsBoundary(a, b *Point) bool {
	_, ok := m.Neighbor(a, b)
	return !ok
}

// The edges of a triangle as directed pairs, in A->B, B->C, C->A order, each
// paired with the vertex opposite to it.
func (t *Triangle) Edges() [3][3]*Point {
	return [3][3]*Point{
		{t.A, t.B, t.C},
		{t.B, t.C, t.A},
		{t.C, t.A, t.B},
	}
}

// Count of the triangle's edges that lie on the polygon boundary.
func (m *Mesh) BoundaryEdgeCount(t int) int {
	count := 0
	for _, e := range m.Triangles[t].Edges() {
		if m.IsBoundary(e[0], e[1]) {
			count++
		}
	}
	return count
}

// Check the triangulation against the polygon: the right number of triangles,
// all counterclockwise and non-degenerate, every boundary edge present and
// owned, no interior edge owned twice in the same direction, and areas that
// add up.
func (m *Mesh) Verify() {
	n := len(m.Polygon.Points)
	if len(m.Triangles) != n-2 {
		unstablef("triangulation has %d triangles, expected %d", len(m.Triangles), n-2)
	}
	if len(m.owner) != 3*len(m.Triangles) {
		unstablef("triangles overlap: %d distinct half edges for %d triangles", len(m.owner), len(m.Triangles))
	}
	var area float64
	for _, tri := range m.Triangles {
		if !IsCCW(tri) {
			unstablef("degenerate or clockwise triangle %v", tri)
		}
		area += tri.SignedArea()
	}
	for i, p := range m.Polygon.Points {
		q := m.Polygon.Points[CircularIndex(i+1, n)]
		if _, ok := m.owner[halfEdge{p, q}]; !ok {
			unstablef("boundary edge %d is missing from the triangulation", i)
		}
		if !m.IsBoundary(p, q) {
			unstablef("boundary edge %d has a triangle outside the polygon", i)
		}
	}
	polygonArea := SignedArea(&m.Polygon)
	if !Equal(area, polygonArea) && !Equal(area/polygonArea, 1) {
		unstablef("triangles cover area %g, polygon has %g", area, polygonArea)
	}
}
