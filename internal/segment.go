package internal

func (s *Segment) Top() *Point {
	if s.Start.Above(s.End) {
		return s.Start
	}
	return s.End
}

func (s *Segment) Bottom() *Point {
	if s.Start.Below(s.End) {
		return s.Start
	}
	return s.End
}

func (s *Segment) IsHorizontal() bool {
	return Equal(s.Start.Y, s.End.Y)
}

// Solve for the x value of the segment's line at the given y. Horizontal
// segments have no single answer; we give the rightmost x, since in the rotated
// frame that is the end that sits highest.
func (s *Segment) SolveForX(y float64) float64 {
	if s.IsHorizontal() {
		if s.Start.X > s.End.X {
			return s.Start.X
		}
		return s.End.X
	}
	t := (y - s.Start.Y) / (s.End.Y - s.Start.Y)
	return s.Start.X + t*(s.End.X-s.Start.X)
}

// Is the segment to the right of the point? The point must be within the y
// range of the segment.
func (s *Segment) IsRightOf(p *Point) bool {
	top, bottom := s.Top(), s.Bottom()
	// With the segment pointing up, a point to its left is counterclockwise
	return Orient(bottom, top, p) > 0
}

// Is the segment to the left of the point? The point must be within the y range
// of the segment.
func (s *Segment) IsLeftOf(p *Point) bool {
	top, bottom := s.Top(), s.Bottom()
	return Orient(bottom, top, p) < 0
}
