package tessellate

import (
	"context"
	"log/slog"
	"math"

	"github.com/pkg/errors"

	"github.com/osuushi/centerline/advanced"
)

// Deepest curve subdivision. 2^16 segments per curve is far finer than any
// sensible tolerance asks for.
const maxDepth = 16

type Options struct {
	// Largest distance allowed between a curve and its flattened segments
	Tolerance float64
	// Coordinates are rounded to this many decimal places. Negative disables
	// rounding.
	Decimals int
}

// The settings the original centerline tool used.
func DefaultOptions() Options {
	return Options{Tolerance: 1, Decimals: 1}
}

// Flatten the path into one polygon per subpath. Open subpaths are closed
// implicitly, as for filling. After rounding, repeated points and the closing
// duplicate are dropped, and subpaths with fewer than three points left are
// skipped. The polygons are not validated; that is up to the engine.
func (p *Path) Polygons(opts Options) []advanced.Polygon {
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultOptions().Tolerance
	}

	var polygons []advanced.Polygon
	var points []Point
	var current, start Point
	skipped := 0

	flush := func() {
		if poly, ok := finishPolygon(points, opts.Decimals); ok {
			polygons = append(polygons, poly)
		} else if len(points) > 0 {
			skipped++
		}
		points = nil
	}

	for _, e := range p.Elements {
		switch e.Verb {
		case MoveTo:
			flush()
			current = e.Points[0]
			start = current
			points = append(points, current)
		case Close:
			flush()
			current = start
			continue
		default:
			if len(points) == 0 {
				// Drawing straight after a closepath starts a new subpath there
				start = current
				points = append(points, current)
			}
		}

		switch e.Verb {
		case LineTo:
			current = e.Points[0]
			points = append(points, current)
		case QuadTo:
			// Elevate to a cubic
			c := e.Points[0]
			end := e.Points[1]
			c1 := Point{X: current.X + 2.0/3*(c.X-current.X), Y: current.Y + 2.0/3*(c.Y-current.Y)}
			c2 := Point{X: end.X + 2.0/3*(c.X-end.X), Y: end.Y + 2.0/3*(c.Y-end.Y)}
			flattenCubic(current, c1, c2, end, opts.Tolerance, 0, &points)
			current = end
		case CubicTo:
			flattenCubic(current, e.Points[0], e.Points[1], e.Points[2], opts.Tolerance, 0, &points)
			current = e.Points[2]
		case ArcTo:
			end := e.Points[0]
			flattenArc(current, end, e.Arc, opts.Tolerance, &points)
			current = end
		}
	}
	flush()

	if logger := advanced.Logger(); logger.Enabled(context.Background(), slog.LevelDebug) {
		logger.Debug("flattened path",
			"elements", len(p.Elements),
			"polygons", len(polygons),
			"skipped", skipped,
			"tolerance", opts.Tolerance,
			"decimals", opts.Decimals,
		)
	}
	return polygons
}

// Parse and flatten in one go.
func PathToPolygons(d string, opts Options) ([]advanced.Polygon, error) {
	path, err := ParsePath(d)
	if err != nil {
		return nil, errors.Wrap(err, "parse path")
	}
	return path.Polygons(opts), nil
}

func finishPolygon(points []Point, decimals int) (advanced.Polygon, bool) {
	var result []*Point
	for _, p := range points {
		rounded := Point{X: round(p.X, decimals), Y: round(p.Y, decimals)}
		if len(result) > 0 && *result[len(result)-1] == rounded {
			continue
		}
		result = append(result, &rounded)
	}
	for len(result) > 1 && *result[0] == *result[len(result)-1] {
		result = result[:len(result)-1]
	}
	if len(result) < 3 {
		return advanced.Polygon{}, false
	}
	return advanced.Polygon{Points: result}, true
}

func round(v float64, decimals int) float64 {
	if decimals < 0 {
		return v
	}
	scale := math.Pow(10, float64(decimals))
	rounded := math.Round(v*scale) / scale
	if rounded == 0 {
		// No negative zero
		return 0
	}
	return rounded
}

func lerp(a, b Point, t float64) Point {
	return Point{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}

// Distance from p to the infinite line through a and b
func distPointToLine(p, a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	if dx == 0 && dy == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / (dx*dx + dy*dy)
	return math.Hypot(p.X-(a.X+t*dx), p.Y-(a.Y+t*dy))
}

// Recursively subdivide a cubic Bézier with de Casteljau until both control
// points are within the tolerance of the chord. Appends everything after p0.
func flattenCubic(p0, p1, p2, p3 Point, tolerance float64, depth int, out *[]Point) {
	if depth >= maxDepth ||
		(distPointToLine(p1, p0, p3) <= tolerance && distPointToLine(p2, p0, p3) <= tolerance) {
		*out = append(*out, p3)
		return
	}

	m01 := lerp(p0, p1, 0.5)
	m12 := lerp(p1, p2, 0.5)
	m23 := lerp(p2, p3, 0.5)
	m012 := lerp(m01, m12, 0.5)
	m123 := lerp(m12, m23, 0.5)
	m0123 := lerp(m012, m123, 0.5)

	flattenCubic(p0, m01, m012, m0123, tolerance, depth+1, out)
	flattenCubic(m0123, m123, m23, p3, tolerance, depth+1, out)
}

// Flatten an endpoint-form elliptical arc by converting it to center form and
// stepping the angle so that the sagitta of each step stays within the
// tolerance. Out of range radii are handled the way SVG renderers do.
func flattenArc(from, to Point, arc Arc, tolerance float64, out *[]Point) {
	if from == to {
		return
	}
	rx, ry := math.Abs(arc.RX), math.Abs(arc.RY)
	if rx == 0 || ry == 0 {
		*out = append(*out, to)
		return
	}

	phi := arc.Rotation * math.Pi / 180
	sinPhi, cosPhi := math.Sincos(phi)

	// Midpoint, in the ellipse's own axes
	dx := (from.X - to.X) / 2
	dy := (from.Y - to.Y) / 2
	x1 := cosPhi*dx + sinPhi*dy
	y1 := -sinPhi*dx + cosPhi*dy

	// Scale the radii up if the endpoints can't be reached
	lambda := x1*x1/(rx*rx) + y1*y1/(ry*ry)
	if lambda > 1 {
		scale := math.Sqrt(lambda)
		rx *= scale
		ry *= scale
	}

	numerator := rx*rx*ry*ry - rx*rx*y1*y1 - ry*ry*x1*x1
	denominator := rx*rx*y1*y1 + ry*ry*x1*x1
	coefficient := 0.0
	if numerator > 0 && denominator > 0 {
		coefficient = math.Sqrt(numerator / denominator)
	}
	if arc.LargeArc == arc.Sweep {
		coefficient = -coefficient
	}
	cx1 := coefficient * rx * y1 / ry
	cy1 := -coefficient * ry * x1 / rx

	cx := cosPhi*cx1 - sinPhi*cy1 + (from.X+to.X)/2
	cy := sinPhi*cx1 + cosPhi*cy1 + (from.Y+to.Y)/2

	startAngle := math.Atan2((y1-cy1)/ry, (x1-cx1)/rx)
	endAngle := math.Atan2((-y1-cy1)/ry, (-x1-cx1)/rx)
	delta := endAngle - startAngle
	if arc.Sweep && delta < 0 {
		delta += 2 * math.Pi
	} else if !arc.Sweep && delta > 0 {
		delta -= 2 * math.Pi
	}

	// Largest step whose sagitta on the bigger radius is within tolerance
	r := math.Max(rx, ry)
	step := math.Pi / 2
	if tolerance < r {
		step = math.Min(step, 2*math.Acos(1-tolerance/r))
	}
	segments := int(math.Ceil(math.Abs(delta) / step))
	if segments < 1 {
		segments = 1
	}

	for i := 1; i < segments; i++ {
		theta := startAngle + delta*float64(i)/float64(segments)
		sinTheta, cosTheta := math.Sincos(theta)
		*out = append(*out, Point{
			X: cx + rx*cosTheta*cosPhi - ry*sinTheta*sinPhi,
			Y: cy + rx*cosTheta*sinPhi + ry*sinTheta*cosPhi,
		})
	}
	// End exactly on the endpoint
	*out = append(*out, to)
}
