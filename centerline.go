// Centerlines for closed outlines.
//
// This package computes the medial axis (the topological skeleton) of a simple
// polygon: the set of points with more than one closest point on the boundary,
// made of straight segments. It also has the glue for going straight from SVG
// path data to centerline path data.
//
// The polygon may be non-convex and wind either way, but must not intersect
// itself and has no holes. See the advanced package for the triangulation and
// classification the skeleton is built from.
package centerline

import (
	"context"
	"log/slog"
	"math"

	"github.com/pkg/errors"

	"github.com/osuushi/centerline/advanced"
	"github.com/osuushi/centerline/render"
	"github.com/osuushi/centerline/tessellate"
)

type Point = advanced.Point
type Polygon = advanced.Polygon
type Skeleton = advanced.Skeleton
type Node = advanced.Node
type Edge = advanced.Edge

type Method = advanced.Method

const (
	MethodTriangulation = advanced.MethodTriangulation
	MethodVoronoi       = advanced.MethodVoronoi
)

type DegenerateInputError = advanced.DegenerateInputError
type NumericInstabilityError = advanced.NumericInstabilityError

// Everything a call can be configured with. The zero value is not useful; use
// DefaultOptions.
type Options struct {
	Engine  advanced.Options
	Flatten tessellate.Options
}

func DefaultOptions() Options {
	return Options{
		Engine:  advanced.Options{Method: MethodTriangulation},
		Flatten: tessellate.DefaultOptions(),
	}
}

type Option func(*Options)

func WithMethod(m Method) Option {
	return func(o *Options) { o.Engine.Method = m }
}

// Connect every convex corner of the polygon to the skeleton.
func WithCornerBranches(enabled bool) Option {
	return func(o *Options) { o.Engine.CornerBranches = enabled }
}

// Smooth chains of the skeleton, keeping within tolerance (in the polygon's
// units) of the original chain.
func WithSimplify(tolerance float64) Option {
	return func(o *Options) { o.Engine.SimplifyTolerance = tolerance }
}

// Boundary sample spacing for MethodVoronoi, as a fraction of the polygon's
// extent.
func WithSampleSpacing(spacing float64) Option {
	return func(o *Options) { o.Engine.SampleSpacing = spacing }
}

// Curve flattening tolerance for path input.
func WithTolerance(tolerance float64) Option {
	return func(o *Options) { o.Flatten.Tolerance = tolerance }
}

// Decimal places for path input coordinates and path output.
func WithDecimals(decimals int) Option {
	return func(o *Options) { o.Flatten.Decimals = decimals }
}

// Replace everything at once, for settings that come from a config file.
func WithOptions(opts Options) Option {
	return func(o *Options) { *o = opts }
}

func resolve(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Compute the skeleton of the polygon given by points. The points are not
// modified; the skeleton's coordinates are in the same space.
func ComputeMedialAxis(points []*Point, opts ...Option) (*Skeleton, error) {
	o := resolve(opts)
	return advanced.ComputeMedialAxis(Polygon{Points: points}, o.Engine)
}

// Turn SVG path data into centerline path data: flatten it into polygons, take
// the main contour, compute its skeleton and write one "M x y L x y" segment
// per skeleton edge.
//
// A triangle's skeleton is a single point, which has no segments, so it gives
// an empty string and no error.
func FromPath(d string, opts ...Option) (string, error) {
	o := resolve(opts)
	polygons, err := tessellate.PathToPolygons(d, o.Flatten)
	if err != nil {
		return "", err
	}
	poly, err := MainContour(polygons)
	if err != nil {
		return "", err
	}
	skeleton, err := advanced.ComputeMedialAxis(poly, o.Engine)
	if err != nil {
		return "", err
	}
	return render.PathData(skeleton, o.Flatten.Decimals), nil
}

// The contour with the largest absolute area. Only one contour is ever
// processed, so the rest are logged and dropped.
func MainContour(polygons []Polygon) (Polygon, error) {
	if len(polygons) == 0 {
		return Polygon{}, errors.New("no contours with at least three points")
	}
	best := 0
	bestArea := math.Abs(advanced.SignedArea(polygons[0]))
	for i := 1; i < len(polygons); i++ {
		if area := math.Abs(advanced.SignedArea(polygons[i])); area > bestArea {
			best, bestArea = i, area
		}
	}

	if logger := Logger(); len(polygons) > 1 && logger.Enabled(context.Background(), slog.LevelDebug) {
		for i, poly := range polygons {
			if i == best {
				continue
			}
			logger.Debug("discarding contour",
				"index", i,
				"points", len(poly.Points),
				"area", math.Abs(advanced.SignedArea(poly)),
				"main", best,
			)
		}
	}
	return polygons[best], nil
}

// Route debug logging from every package of the module to l. Nothing is logged
// by default; nil silences it again.
func SetLogger(l *slog.Logger) {
	advanced.SetLogger(l)
}

func Logger() *slog.Logger {
	return advanced.Logger()
}

func IsDegenerate(err error) bool {
	return advanced.IsDegenerate(err)
}

func IsNumericInstability(err error) bool {
	return advanced.IsNumericInstability(err)
}
