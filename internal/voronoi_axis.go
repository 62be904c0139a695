package internal

import (
	"math"

	"github.com/zzwx/voronoi"
	"gonum.org/v1/gonum/spatial/r2"
)

// Medial axis approximation from the Voronoi diagram of points sampled along
// the boundary. As the sampling gets denser, the Voronoi edges between samples
// from different parts of the boundary converge on the medial axis. Edges
// between samples of the same boundary edge, or of two nearly collinear
// neighboring edges, are the "hair" perpendicular to the boundary and are
// dropped, as is anything reaching outside the polygon.

// Voronoi edges between sites on boundary edges whose directions differ by
// less than this are treated as hair.
const minSiteAngle = 30 * math.Pi / 180

func VoronoiSkeleton(poly Polygon, spacing float64) *Skeleton {
	if spacing <= 0 {
		fatalf("sample spacing must be positive, got %g", spacing)
	}
	points := poly.Points
	n := len(points)

	var sites []voronoi.Vertex
	siteEdge := make(map[voronoi.Vertex]int)
	for i, a := range points {
		b := points[CircularIndex(i+1, n)]
		count := int(math.Max(1, math.Ceil(Distance(a, b)/spacing)))
		for k := 0; k < count; k++ {
			t := float64(k) / float64(count)
			site := voronoi.Vertex{X: a.X + t*(b.X-a.X), Y: a.Y + t*(b.Y-a.Y)}
			if _, ok := siteEdge[site]; ok {
				continue
			}
			siteEdge[site] = i
			sites = append(sites, site)
		}
	}

	directions := make([]r2.Vec, n)
	for i, a := range points {
		directions[i] = r2.Sub(points[CircularIndex(i+1, n)].Vec(), a.Vec())
	}
	minCos := math.Cos(minSiteAngle)

	diagram := voronoi.ComputeDiagram(sites, voronoi.NewBBox(-1, -1, 2, 2), false)

	skeleton := &Skeleton{}
	nodes := make(map[voronoi.Vertex]*Node)
	node := func(v voronoi.Vertex) *Node {
		if existing, ok := nodes[v]; ok {
			return existing
		}
		created := skeleton.addNode(&Point{X: v.X, Y: v.Y}, VoronoiNode)
		nodes[v] = created
		return created
	}

	for _, edge := range diagram.Edges {
		if edge.LeftCell == nil || edge.RightCell == nil {
			continue
		}
		va, vb := edge.Va.Vertex, edge.Vb.Vertex
		if va == voronoi.NoVertex || vb == voronoi.NoVertex || va == vb {
			continue
		}
		i, okI := siteEdge[edge.LeftCell.Site]
		j, okJ := siteEdge[edge.RightCell.Site]
		if !okI || !okJ || i == j {
			continue
		}
		if r2.Cos(directions[i], directions[j]) > minCos {
			continue
		}
		if acrossReflexVertex(poly, i, j) {
			continue
		}
		pa := &Point{X: va.X, Y: va.Y}
		pb := &Point{X: vb.X, Y: vb.Y}
		if !poly.strictlyContains(pa) || !poly.strictlyContains(pb) {
			continue
		}
		skeleton.addEdge(node(va), node(vb))
	}
	return skeleton
}

// Are boundary edges i and j neighbors meeting at a reflex vertex? The medial
// axis never runs into a reflex vertex, so their bisector is hair.
func acrossReflexVertex(poly Polygon, i, j int) bool {
	n := len(poly.Points)
	switch {
	case CircularIndex(i+1, n) == j:
		return !poly.IsConvexAt(j)
	case CircularIndex(j+1, n) == i:
		return !poly.IsConvexAt(i)
	}
	return false
}

func (poly Polygon) strictlyContains(p *Point) bool {
	return poly.ContainsPointByEvenOdd(p) && poly.BoundaryDistance(p) > Tolerance
}
