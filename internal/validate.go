package internal

import "math"

// Maps between caller coordinates and the unit box the engine works in. Every
// tolerance in this package is applied in the unit box, which makes them all
// proportional to the extent of the polygon.
type Frame struct {
	MinX, MinY float64
	Scale      float64
}

func (f Frame) ToLocal(p *Point) *Point {
	return &Point{X: (p.X - f.MinX) / f.Scale, Y: (p.Y - f.MinY) / f.Scale}
}

func (f Frame) ToWorld(p *Point) *Point {
	return &Point{X: p.X*f.Scale + f.MinX, Y: p.Y*f.Scale + f.MinY}
}

func (f Frame) LengthToWorld(d float64) float64 {
	return d * f.Scale
}

func (f Frame) LengthToLocal(d float64) float64 {
	return d / f.Scale
}

// A validated polygon in the unit box, wound counterclockwise. Original holds
// the caller's point for each local point, so results can be reported against
// the caller's own vertices.
type Prepared struct {
	Polygon  Polygon
	Frame    Frame
	Original map[*Point]*Point
	Reversed bool
}

// Check the polygon and build the normalized copy the rest of the engine works
// on. Malformed input panics with a DegenerateInputError; nothing is repaired.
func Prepare(poly Polygon) *Prepared {
	n := len(poly.Points)
	if n < 3 {
		degeneratef("polygon has %d vertices, need at least 3", n)
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i, p := range poly.Points {
		if p == nil {
			degeneratef("vertex %d is nil", i)
		}
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			degeneratef("vertex %d is not finite: %v", i, p)
		}
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	scale := math.Max(maxX-minX, maxY-minY)
	if scale == 0 {
		degeneratef("all %d vertices coincide", n)
	}

	frame := Frame{MinX: minX, MinY: minY, Scale: scale}
	prepared := &Prepared{
		Frame:    frame,
		Original: make(map[*Point]*Point, n),
	}
	local := make([]*Point, n)
	for i, p := range poly.Points {
		local[i] = frame.ToLocal(p)
		prepared.Original[local[i]] = p
	}
	result := Polygon{Points: local}

	validateEdges(result)

	area := SignedArea(&result)
	if math.Abs(area) <= Tolerance {
		degeneratef("polygon has zero area")
	}
	if area < 0 {
		result = result.Reverse()
		prepared.Reversed = true
	}
	prepared.Polygon = result
	return prepared
}

// Reject zero length edges, repeated vertices, edges folding back over their
// neighbor, and crossings between any two edges.
func validateEdges(poly Polygon) {
	points := poly.Points
	n := len(points)
	for i, p := range points {
		next := points[CircularIndex(i+1, n)]
		if p.Equals(next) {
			degeneratef("edge %d has zero length", i)
		}
	}

	for i := 0; i < n; i++ {
		a := points[i]
		b := points[CircularIndex(i+1, n)]
		for j := i + 1; j < n; j++ {
			c := points[j]
			d := points[CircularIndex(j+1, n)]
			switch {
			case b == c:
				// Adjacent edges ab, bd. They may only share b.
				if between(a, b, d) || between(b, d, a) {
					degeneratef("edges %d and %d overlap", i, j)
				}
			case d == a:
				// Adjacent edges ca, ab (wraparound).
				if between(a, b, c) || between(c, a, b) {
					degeneratef("edges %d and %d overlap", j, i)
				}
			default:
				if SegmentsIntersect(a, b, c, d) {
					degeneratef("polygon self-intersects: edges %d and %d", i, j)
				}
			}
		}
	}
}
