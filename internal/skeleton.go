package internal

import (
	"fmt"
	"math"

	"github.com/osuushi/centerline/internal/dbg"
)

type NodeKind int

const (
	// Incenter of a terminal triangle, or of the whole polygon when it is a
	// triangle
	IncenterNode NodeKind = iota
	// Centroid of a junction triangle, where three branches meet
	JunctionNode
	// Midpoint of an interior edge, shared by the two triangles on either side
	MidpointNode
	// A convex polygon vertex reached by a corner branch
	CornerNode
	// A Voronoi vertex of the sampled boundary
	VoronoiNode
)

func (k NodeKind) String() string {
	switch k {
	case IncenterNode:
		return "incenter"
	case JunctionNode:
		return "junction"
	case MidpointNode:
		return "midpoint"
	case CornerNode:
		return "corner"
	case VoronoiNode:
		return "voronoi"
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// A point of the skeleton. Radius is the radius of the largest circle centered
// on the node that fits inside the polygon.
type Node struct {
	Point
	Radius float64
	Kind   NodeKind
}

func (n *Node) String() string {
	return fmt.Sprintf("%s %s (%g, %g) r=%g", n.Kind, dbg.Name(n), n.X, n.Y, n.Radius)
}

type Edge struct {
	Start, End *Node
}

func (e *Edge) Length() float64 {
	return Distance(&e.Start.Point, &e.End.Point)
}

// The node at the other end of the edge.
func (e *Edge) Other(n *Node) *Node {
	if e.Start == n {
		return e.End
	}
	return e.Start
}

// The skeleton graph. Nodes and Edges are in construction order, which is
// deterministic for a given polygon.
type Skeleton struct {
	Nodes []*Node
	Edges []*Edge
}

func (s *Skeleton) addNode(p *Point, kind NodeKind) *Node {
	node := &Node{Point: *p, Kind: kind}
	s.Nodes = append(s.Nodes, node)
	return node
}

func (s *Skeleton) addEdge(start, end *Node) *Edge {
	edge := &Edge{Start: start, End: end}
	s.Edges = append(s.Edges, edge)
	return edge
}

// Incident edges per node, in edge order.
func (s *Skeleton) Adjacency() map[*Node][]*Edge {
	adjacency := make(map[*Node][]*Edge, len(s.Nodes))
	for _, e := range s.Edges {
		adjacency[e.Start] = append(adjacency[e.Start], e)
		adjacency[e.End] = append(adjacency[e.End], e)
	}
	return adjacency
}

func (s *Skeleton) Degree(n *Node) int {
	degree := 0
	for _, e := range s.Edges {
		if e.Start == n {
			degree++
		}
		if e.End == n {
			degree++
		}
	}
	return degree
}

// Nodes with exactly one edge, in node order.
func (s *Skeleton) Leaves() []*Node {
	adjacency := s.Adjacency()
	var leaves []*Node
	for _, n := range s.Nodes {
		if len(adjacency[n]) == 1 {
			leaves = append(leaves, n)
		}
	}
	return leaves
}

// Every node can be reached from every other one. An empty skeleton and a
// single node both count as connected.
func (s *Skeleton) IsConnected() bool {
	if len(s.Nodes) <= 1 {
		return true
	}
	adjacency := s.Adjacency()
	seen := map[*Node]struct{}{s.Nodes[0]: {}}
	queue := []*Node{s.Nodes[0]}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, e := range adjacency[n] {
			other := e.Other(n)
			if _, ok := seen[other]; !ok {
				seen[other] = struct{}{}
				queue = append(queue, other)
			}
		}
	}
	return len(seen) == len(s.Nodes)
}

func (s *Skeleton) Bounds() (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, n := range s.Nodes {
		minX = math.Min(minX, n.X)
		minY = math.Min(minY, n.Y)
		maxX = math.Max(maxX, n.X)
		maxY = math.Max(maxY, n.Y)
	}
	return minX, minY, maxX, maxY
}

// Plain start/end pairs, for callers that don't care about the graph.
func (s *Skeleton) Segments() [][2]Point {
	segments := make([][2]Point, len(s.Edges))
	for i, e := range s.Edges {
		segments[i] = [2]Point{e.Start.Point, e.End.Point}
	}
	return segments
}

// Drop nodes that no edge refers to, except for a lone node, which is the
// whole skeleton of a triangle.
func (s *Skeleton) pruneNodes() {
	if len(s.Edges) == 0 {
		return
	}
	used := make(map[*Node]struct{}, len(s.Nodes))
	for _, e := range s.Edges {
		used[e.Start] = struct{}{}
		used[e.End] = struct{}{}
	}
	kept := s.Nodes[:0]
	for _, n := range s.Nodes {
		if _, ok := used[n]; ok {
			kept = append(kept, n)
		}
	}
	s.Nodes = kept
}
