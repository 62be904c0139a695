// Package render turns skeletons into output: SVG path data, polyline chains
// and PNG images.
package render

import (
	"strconv"
	"strings"

	"github.com/osuushi/centerline/advanced"
)

// SVG path data with one "M x y L x y" pair per skeleton edge, in edge order.
// Coordinates are formatted with the given number of decimals; -1 means the
// shortest representation that round trips.
func PathData(s *advanced.Skeleton, decimals int) string {
	if s == nil {
		return ""
	}
	parts := make([]string, 0, len(s.Edges))
	for _, e := range s.Edges {
		parts = append(parts, "M "+formatPoint(e.Start.Point, decimals)+" L "+formatPoint(e.End.Point, decimals))
	}
	return strings.Join(parts, " ")
}

// Decompose the skeleton into maximal chains. A chain runs between nodes whose
// degree is not two, so every branch point and leaf ends a chain and every
// degree two node is interior to exactly one. Loops made only of degree two
// nodes come out as closed chains that start and end on the same point.
func Polylines(s *advanced.Skeleton) [][]advanced.Point {
	if s == nil {
		return nil
	}
	adjacency := s.Adjacency()
	visited := make(map[*advanced.Edge]bool, len(s.Edges))

	walk := func(start *advanced.Node, first *advanced.Edge) []advanced.Point {
		chain := []advanced.Point{start.Point}
		current, edge := start, first
		for {
			visited[edge] = true
			current = edge.Other(current)
			chain = append(chain, current.Point)
			edges := adjacency[current]
			if len(edges) != 2 || current == start {
				return chain
			}
			next := edges[0]
			if next == edge {
				next = edges[1]
			}
			if visited[next] {
				return chain
			}
			edge = next
		}
	}

	var chains [][]advanced.Point
	for _, n := range s.Nodes {
		edges := adjacency[n]
		if len(edges) == 2 {
			continue
		}
		for _, e := range edges {
			if !visited[e] {
				chains = append(chains, walk(n, e))
			}
		}
	}
	// Whatever is left is a cycle
	for _, e := range s.Edges {
		if !visited[e] {
			chains = append(chains, walk(e.Start, e))
		}
	}
	return chains
}

// Chains as SVG path data, one "M x y L x y L x y ..." run per chain.
func PolylineData(s *advanced.Skeleton, decimals int) string {
	chains := Polylines(s)
	parts := make([]string, 0, len(chains))
	for _, chain := range chains {
		var b strings.Builder
		for i, p := range chain {
			if i == 0 {
				b.WriteString("M ")
			} else {
				b.WriteString(" L ")
			}
			b.WriteString(formatPoint(p, decimals))
		}
		parts = append(parts, b.String())
	}
	return strings.Join(parts, " ")
}

func formatPoint(p advanced.Point, decimals int) string {
	return formatNumber(p.X, decimals) + " " + formatNumber(p.Y, decimals)
}

func formatNumber(v float64, decimals int) string {
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	if strings.HasPrefix(s, "-") && strings.Trim(s, "-0.") == "" {
		// Rounded to zero
		return s[1:]
	}
	return s
}
