package internal

// Triangulation granularity leaves a sawtooth along long sleeves. Simplify
// collapses each chain of degree two nodes with Ramer-Douglas-Peucker, keeping
// the chain ends (leaves and branch points) fixed. A shortcut is only taken if
// it doesn't leave the polygon, so the result still lies inside it.

func Simplify(poly Polygon, skeleton *Skeleton, tolerance float64) *Skeleton {
	if tolerance <= 0 || len(skeleton.Edges) == 0 {
		return skeleton
	}

	adjacency := skeleton.Adjacency()
	visited := make(map[*Edge]struct{}, len(skeleton.Edges))
	result := &Skeleton{}

	walk := func(start *Node, first *Edge) []*Node {
		chain := []*Node{start}
		node, edge := start, first
		for {
			visited[edge] = struct{}{}
			node = edge.Other(node)
			chain = append(chain, node)
			if node == start || len(adjacency[node]) != 2 {
				return chain
			}
			next := adjacency[node][0]
			if next == edge {
				next = adjacency[node][1]
			}
			if _, ok := visited[next]; ok {
				return chain
			}
			edge = next
		}
	}

	emit := func(chain []*Node) {
		kept := simplifyChain(poly, chain, tolerance)
		for i := 1; i < len(kept); i++ {
			result.addEdge(kept[i-1], kept[i])
		}
	}

	// Chains that end at leaves or branch points
	for _, n := range skeleton.Nodes {
		if len(adjacency[n]) == 2 {
			continue
		}
		for _, e := range adjacency[n] {
			if _, ok := visited[e]; ok {
				continue
			}
			emit(walk(n, e))
		}
	}
	// Anything left is a cycle. A simple polygon never produces one, but keep
	// the edges rather than lose them.
	for _, e := range skeleton.Edges {
		if _, ok := visited[e]; ok {
			continue
		}
		emit(walk(e.Start, e))
	}

	keptNodes := make(map[*Node]struct{}, len(result.Edges)*2)
	for _, e := range result.Edges {
		keptNodes[e.Start] = struct{}{}
		keptNodes[e.End] = struct{}{}
	}
	for _, n := range skeleton.Nodes {
		if _, ok := keptNodes[n]; ok || len(adjacency[n]) == 0 {
			result.Nodes = append(result.Nodes, n)
		}
	}
	return result
}

func simplifyChain(poly Polygon, chain []*Node, tolerance float64) []*Node {
	if len(chain) <= 2 {
		return append([]*Node{}, chain...)
	}
	first, last := chain[0], chain[len(chain)-1]
	worst := 0
	worstD := 0.0
	for i := 1; i < len(chain)-1; i++ {
		d := DistanceToSegment(&chain[i].Point, &first.Point, &last.Point)
		if d > worstD {
			worst = i
			worstD = d
		}
	}
	if worstD <= tolerance && first != last && !poly.SegmentCrossesBoundary(&first.Point, &last.Point) {
		return []*Node{first, last}
	}
	if worst == 0 {
		// Within tolerance but the shortcut leaves the polygon (or the chain is
		// a loop): split in the middle instead
		worst = len(chain) / 2
	}
	lefts := simplifyChain(poly, chain[:worst+1], tolerance)
	rights := simplifyChain(poly, chain[worst:], tolerance)
	return append(lefts, rights[1:]...)
}
