package internal

import "fmt"

type Point struct {
	X float64
	Y float64
}

// Note that all points involved with the triangulation are pointers. This means
// they can be used as keys. We never modify a point value from the caller's
// polygon; the engine works on its own normalized copies and maps back at the
// end.
type Segment struct {
	Start *Point
	End   *Point
}

type Triangle struct {
	A, B, C *Point
}

type Polygon struct {
	Points []*Point
}

type PolygonList []Polygon

type TriangleList []*Triangle

type PointSet map[*Point]struct{}

func (p *Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

func (t *Triangle) String() string {
	return fmt.Sprintf("Triangle{%s %s %s}", t.A, t.B, t.C)
}

func (t *Triangle) Points() [3]*Point {
	return [3]*Point{t.A, t.B, t.C}
}

// Convert the triangles to three-point polygons, mostly so that the polygon
// helpers (containment, drawing) can be reused on them.
func (list TriangleList) ToPolygonList() PolygonList {
	result := make(PolygonList, len(list))
	for i, t := range list {
		result[i] = Polygon{[]*Point{t.A, t.B, t.C}}
	}
	return result
}

func (set PointSet) Add(p *Point) {
	set[p] = struct{}{}
}

func (set PointSet) Has(p *Point) bool {
	_, ok := set[p]
	return ok
}

func (set PointSet) Equals(other PointSet) bool {
	if len(set) != len(other) {
		return false
	}
	for p := range set {
		if !other.Has(p) {
			return false
		}
	}
	return true
}
