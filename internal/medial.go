package internal

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Medial axis approximation from a constrained Delaunay triangulation. Each
// triangle contributes skeleton edges depending on how many of its sides lie on
// the polygon boundary:
//
//	3 boundary edges: the polygon is this triangle; the skeleton is its incenter
//	2 (terminal):     incenter -> midpoint of the one interior edge
//	1 (sleeve):       midpoint -> midpoint across the two interior edges
//	0 (junction):     centroid -> each of the three interior edge midpoints
//
// Interior edge midpoints are shared between the two triangles that meet
// there, which is what makes the skeleton connected.

type TriangleClass int

const (
	SingleTriangle TriangleClass = iota
	TerminalTriangle
	SleeveTriangle
	JunctionTriangle
)

func (c TriangleClass) String() string {
	return [...]string{"single", "terminal", "sleeve", "junction"}[c]
}

func (m *Mesh) Classify(t int) TriangleClass {
	switch m.BoundaryEdgeCount(t) {
	case 3:
		return SingleTriangle
	case 2:
		return TerminalTriangle
	case 1:
		return SleeveTriangle
	}
	return JunctionTriangle
}

type skeletonBuilder struct {
	mesh      *Mesh
	skeleton  *Skeleton
	midpoints map[halfEdge]*Node
	// The skeleton nodes lying in each triangle, center first, for corner
	// branches to pick from
	triangleNodes [][]*Node
}

func BuildSkeleton(mesh *Mesh) (*Skeleton, [][]*Node) {
	b := &skeletonBuilder{
		mesh:          mesh,
		skeleton:      &Skeleton{},
		midpoints:     make(map[halfEdge]*Node),
		triangleNodes: make([][]*Node, len(mesh.Triangles)),
	}
	for t := range mesh.Triangles {
		b.addTriangle(t)
	}
	return b.skeleton, b.triangleNodes
}

func (b *skeletonBuilder) midpoint(a, c *Point) *Node {
	key := halfEdge{a, c}
	if !pointOrder(a, c) {
		key = halfEdge{c, a}
	}
	if node, ok := b.midpoints[key]; ok {
		return node
	}
	node := b.skeleton.addNode(Midpoint(a, c), MidpointNode)
	b.midpoints[key] = node
	return node
}

func (b *skeletonBuilder) addTriangle(t int) {
	tri := b.mesh.Triangles[t]
	var interior []*Node
	for _, e := range tri.Edges() {
		if !b.mesh.IsBoundary(e[0], e[1]) {
			interior = append(interior, b.midpoint(e[0], e[1]))
		}
	}

	var nodes []*Node
	switch len(interior) {
	case 0:
		center, _ := tri.Incenter()
		nodes = append(nodes, b.skeleton.addNode(center, IncenterNode))
	case 1:
		center, _ := tri.Incenter()
		node := b.skeleton.addNode(center, IncenterNode)
		b.skeleton.addEdge(node, interior[0])
		nodes = append(nodes, node)
	case 2:
		b.skeleton.addEdge(interior[0], interior[1])
	case 3:
		node := b.skeleton.addNode(tri.Centroid(), JunctionNode)
		for _, m := range interior {
			b.skeleton.addEdge(node, m)
		}
		nodes = append(nodes, node)
	}
	b.triangleNodes[t] = append(nodes, interior...)
}

// Give every strictly convex vertex of the polygon a branch of its own.
//
// A terminal triangle fills the whole corner at its apex, where its two
// boundary edges meet, so the apex joins that triangle's incenter and the
// incenter stops being a leaf. Any other convex vertex joins whichever skeleton
// node, of those in the triangles around it, lies closest to the direction of
// its angle bisector. Both ends are always in the same triangle, so the branch
// stays inside the polygon.
func AddCornerBranches(mesh *Mesh, skeleton *Skeleton, triangleNodes [][]*Node) int {
	poly := mesh.Polygon
	apexes := terminalApexes(mesh, triangleNodes)
	incident := make(map[*Point][]int, len(poly.Points))
	for t, tri := range mesh.Triangles {
		for _, p := range tri.Points() {
			incident[p] = append(incident[p], t)
		}
	}

	added := 0
	n := len(poly.Points)
	for i, v := range poly.Points {
		if incenter, ok := apexes[v]; ok {
			skeleton.addEdge(incenter, skeleton.addNode(v, CornerNode))
			added++
			continue
		}
		if !poly.IsConvexAt(i) {
			continue
		}
		prev := poly.Points[CircularIndex(i-1, n)]
		next := poly.Points[CircularIndex(i+1, n)]
		bisector := r2.Add(r2.Unit(r2.Sub(prev.Vec(), v.Vec())), r2.Unit(r2.Sub(next.Vec(), v.Vec())))
		if r2.Norm(bisector) <= Epsilon {
			continue
		}

		var best *Node
		bestCos := -2.0
		for _, t := range incident[v] {
			for _, candidate := range triangleNodes[t] {
				direction := r2.Sub(candidate.Vec(), v.Vec())
				if r2.Norm(direction) <= Epsilon {
					continue
				}
				if cos := r2.Cos(direction, bisector); cos > bestCos {
					best = candidate
					bestCos = cos
				}
			}
		}
		if best == nil {
			continue
		}
		corner := skeleton.addNode(v, CornerNode)
		skeleton.addEdge(best, corner)
		added++
	}
	return added
}

// The incenter node of each terminal triangle, keyed by the triangle's apex.
// The apex is the vertex opposite the one interior edge.
func terminalApexes(mesh *Mesh, triangleNodes [][]*Node) map[*Point]*Node {
	apexes := make(map[*Point]*Node)
	for t, tri := range mesh.Triangles {
		if mesh.Classify(t) != TerminalTriangle {
			continue
		}
		for _, e := range tri.Edges() {
			if !mesh.IsBoundary(e[0], e[1]) {
				apexes[e[2]] = triangleNodes[t][0]
			}
		}
	}
	return apexes
}

// Fill in the inscribed circle radius of every node.
func AssignRadii(poly Polygon, skeleton *Skeleton) {
	for _, n := range skeleton.Nodes {
		if n.Kind == CornerNode {
			n.Radius = 0
			continue
		}
		n.Radius = poly.BoundaryDistance(&n.Point)
	}
}
