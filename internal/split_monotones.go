package internal

import "sort"

// Plane sweep that splits a simple counterclockwise polygon into y-monotone
// pieces by adding diagonals at split and merge vertices. The sweep runs from
// the top down and uses the same lexicographic Below() convention as
// TriangulateMonotone, so every piece it produces is strictly monotone in the
// rotated frame, horizontal edges included.

type vertexKind int

const (
	startVertex vertexKind = iota
	endVertex
	splitVertex
	mergeVertex
	regularVertex
)

func (k vertexKind) String() string {
	return [...]string{"start", "end", "split", "merge", "regular"}[k]
}

type monotoneSweep struct {
	points    []*Point
	kinds     []vertexKind
	helper    []int
	status    []int // Indices of edges crossing the sweep line, interior to their right
	diagonals [][2]int
}

func classifyVertex(points []*Point, i int) vertexKind {
	n := len(points)
	prev := points[CircularIndex(i-1, n)]
	next := points[CircularIndex(i+1, n)]
	v := points[i]
	convex := Orient(prev, v, next) > 0

	prevBelow := prev.Below(v)
	nextBelow := next.Below(v)
	switch {
	case prevBelow && nextBelow:
		if convex {
			return startVertex
		}
		return splitVertex
	case !prevBelow && !nextBelow:
		if convex {
			return endVertex
		}
		return mergeVertex
	}
	return regularVertex
}

// Compute the diagonals that split the polygon into monotone pieces. Each
// diagonal is a pair of vertex indices.
func MonotoneDiagonals(poly Polygon) [][2]int {
	points := poly.Points
	n := len(points)
	sweep := &monotoneSweep{
		points: points,
		kinds:  make([]vertexKind, n),
		helper: make([]int, n),
	}
	order := make([]int, n)
	for i := range points {
		order[i] = i
		sweep.kinds[i] = classifyVertex(points, i)
		sweep.helper[i] = -1
	}
	// Top to bottom
	sort.SliceStable(order, func(a, b int) bool {
		return points[order[b]].Below(points[order[a]])
	})

	for _, i := range order {
		switch sweep.kinds[i] {
		case startVertex:
			sweep.insert(i, i)
		case endVertex:
			prevEdge := CircularIndex(i-1, n)
			sweep.connectIfMerge(i, prevEdge)
			sweep.remove(prevEdge)
		case splitVertex:
			left := sweep.edgeLeftOf(i)
			sweep.addDiagonal(i, sweep.helper[left])
			sweep.helper[left] = i
			sweep.insert(i, i)
		case mergeVertex:
			prevEdge := CircularIndex(i-1, n)
			sweep.connectIfMerge(i, prevEdge)
			sweep.remove(prevEdge)
			left := sweep.edgeLeftOf(i)
			sweep.connectIfMerge(i, left)
			sweep.helper[left] = i
		case regularVertex:
			prev := points[CircularIndex(i-1, n)]
			if points[i].Below(prev) {
				// Walking down the left side, so the interior is to the right
				prevEdge := CircularIndex(i-1, n)
				sweep.connectIfMerge(i, prevEdge)
				sweep.remove(prevEdge)
				sweep.insert(i, i)
			} else {
				left := sweep.edgeLeftOf(i)
				sweep.connectIfMerge(i, left)
				sweep.helper[left] = i
			}
		}
	}
	return sweep.diagonals
}

func (s *monotoneSweep) insert(edge, helper int) {
	s.status = append(s.status, edge)
	s.helper[edge] = helper
}

func (s *monotoneSweep) remove(edge int) {
	for i, e := range s.status {
		if e == edge {
			s.status = append(s.status[:i], s.status[i+1:]...)
			return
		}
	}
	fatalf("edge %d is not on the sweep line", edge)
}

func (s *monotoneSweep) connectIfMerge(vertex, edge int) {
	h := s.helper[edge]
	if h >= 0 && s.kinds[h] == mergeVertex {
		s.addDiagonal(vertex, h)
	}
}

func (s *monotoneSweep) addDiagonal(a, b int) {
	if a < 0 || b < 0 || a == b {
		fatalf("invalid diagonal %d-%d", a, b)
	}
	s.diagonals = append(s.diagonals, [2]int{a, b})
}

func (s *monotoneSweep) edge(i int) *Segment {
	return &Segment{s.points[i], s.points[CircularIndex(i+1, len(s.points))]}
}

// Find the status edge directly to the left of the vertex: of all edges on
// the sweep line that are left of it, the one with the greatest x at the
// vertex's height.
func (s *monotoneSweep) edgeLeftOf(vertex int) int {
	v := s.points[vertex]
	best := -1
	var bestX float64
	for _, e := range s.status {
		segment := s.edge(e)
		if !segment.IsLeftOf(v) {
			continue
		}
		x := segment.SolveForX(v.Y)
		if best < 0 || x > bestX {
			best = e
			bestX = x
		}
	}
	if best < 0 {
		unstablef("no edge left of vertex %d %v", vertex, v)
	}
	return best
}

// Split the polygon along the diagonals. The diagonals must not cross, so each
// one lies inside exactly one of the pieces produced so far, where its
// endpoints are not neighbors.
func SplitByDiagonals(poly Polygon, diagonals [][2]int) PolygonList {
	n := len(poly.Points)
	first := make([]int, n)
	for i := range first {
		first[i] = i
	}
	pieces := [][]int{first}

	for _, diagonal := range diagonals {
		a, b := diagonal[0], diagonal[1]
		for pieceIndex, piece := range pieces {
			pa, pb := -1, -1
			for position, vertex := range piece {
				if vertex == a {
					pa = position
				} else if vertex == b {
					pb = position
				}
			}
			if pa < 0 || pb < 0 {
				continue
			}
			if pa > pb {
				pa, pb = pb, pa
			}
			if pb-pa == 1 || (pa == 0 && pb == len(piece)-1) {
				// Already an edge of this piece
				continue
			}
			lower := append([]int{}, piece[pa:pb+1]...)
			upper := append(append([]int{}, piece[pb:]...), piece[:pa+1]...)
			pieces[pieceIndex] = lower
			pieces = append(pieces, upper)
			break
		}
	}

	result := make(PolygonList, len(pieces))
	for i, piece := range pieces {
		points := make([]*Point, len(piece))
		for j, vertex := range piece {
			points[j] = poly.Points[vertex]
		}
		result[i] = Polygon{points}
	}
	return result
}

// Split a counterclockwise polygon into y-monotone pieces that share its
// points.
func ConvertToMonotones(poly Polygon) PolygonList {
	return SplitByDiagonals(poly, MonotoneDiagonals(poly))
}
