package internal

// Triangulation of y-monotone pieces with the stack sweep. A piece is
// y-monotone when every horizontal line crosses it at most twice, so the
// boundary splits at its top and bottom vertices into a left and a right chain
// that both descend steadily.
//
// Point.Below breaks ties in y by x, as if the plane were turned very slightly.
// Under that rule a horizontal edge on the left chain has to lie above the
// interior, and one on the right chain below it. The monotone split follows
// the same rule, so its pieces always qualify.
//
// Pieces must wind counterclockwise.

type chainSide uint8

const (
	rightChain chainSide = iota
	leftChain
)

type sweepVertex struct {
	*Point
	side chainSide
}

func TriangulateMonotone(polygon *Polygon) TriangleList {
	n := len(polygon.Points)
	if n < 3 {
		fatalf("cannot triangulate a piece with %d points", n)
	}
	if n == 3 {
		return TriangleList{{polygon.Points[0], polygon.Points[1], polygon.Points[2]}}
	}

	vertices := sweepOrder(polygon)
	triangles := make(TriangleList, 0, n-2)
	stack := []sweepVertex{vertices[0], vertices[1]}

	// Pop the whole stack, joining v to every vertex on it. All of them are
	// visible from v, because they lie on the other chain.
	fan := func(v *Point, vSide chainSide) {
		for len(stack) > 1 {
			lower := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			upper := stack[len(stack)-1]
			if vSide == leftChain {
				/*
					         upper
					          /|
					         / |
					        v--lower
				*/
				triangles = appendTriangle(triangles, &Triangle{v, lower.Point, upper.Point})
			} else {
				/*
					   upper
					    |\
					    | \
					lower--v
				*/
				triangles = appendTriangle(triangles, &Triangle{lower.Point, v, upper.Point})
			}
		}
		stack = stack[:0]
	}

	for i := 2; i < n-1; i++ {
		v := vertices[i]
		if v.side != stack[len(stack)-1].side {
			fan(v.Point, v.side)
			stack = append(stack, vertices[i-1], v)
			continue
		}

		// Same chain: cut off triangles for as long as the next vertex down the
		// stack can be seen from v past the last one, which shows as a
		// counterclockwise triangle.
		last := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for len(stack) > 0 {
			next := stack[len(stack)-1]
			var candidate *Triangle
			if v.side == leftChain {
				candidate = &Triangle{v.Point, next.Point, last.Point}
			} else {
				candidate = &Triangle{v.Point, last.Point, next.Point}
			}
			if !IsCCW(candidate) {
				break
			}
			triangles = appendTriangle(triangles, candidate)
			last = next
			stack = stack[:len(stack)-1]
		}
		stack = append(stack, last, v)
	}

	// The bottom vertex sees everything left on the stack. It closes both
	// chains, so it acts as a vertex on the side opposite the stack.
	bottom := vertices[n-1]
	bottomSide := leftChain
	if stack[len(stack)-1].side == leftChain {
		bottomSide = rightChain
	}
	fan(bottom.Point, bottomSide)
	return triangles
}

// Merge the two chains into a single top to bottom order. Walking forward from
// the top vertex of a counterclockwise piece goes down the left chain, and
// walking backward goes down the right chain. The top vertex is tagged as
// right; the bottom vertex comes last and its tag is never read.
func sweepOrder(polygon *Polygon) []sweepVertex {
	n := len(polygon.Points)
	top := 0
	for i, p := range polygon.Points {
		if p.Above(polygon.Points[top]) {
			top = i
		}
	}

	order := make([]sweepVertex, 0, n)
	order = append(order, sweepVertex{polygon.Points[top], rightChain})
	forward, backward := 1, 1
	for {
		left := polygon.Points[CircularIndex(top+forward, n)]
		right := polygon.Points[CircularIndex(top-backward, n)]
		if left == right {
			// The chains met at the bottom
			return append(order, sweepVertex{left, rightChain})
		}
		if forward+backward > n {
			unstablef("monotone chains never met: %d points", n)
		}
		if left.Above(right) {
			order = append(order, sweepVertex{left, leftChain})
			forward++
		} else {
			order = append(order, sweepVertex{right, rightChain})
			backward++
		}
	}
}

// Every triangle goes through here. A clockwise one means the piece was not
// really monotone under our tolerance.
func appendTriangle(triangles TriangleList, tri *Triangle) TriangleList {
	if IsCW(tri) {
		unstablef("triangle is clockwise: %v", tri)
	}
	return append(triangles, tri)
}
