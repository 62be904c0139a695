// Package advanced exposes the building blocks of the medial axis engine: the
// triangulation it works from, the triangle classification, the monotone
// split, and the skeleton graph with all of its node metadata.
//
// Most callers want the root centerline package instead.
package advanced

import (
	"log/slog"

	"github.com/osuushi/centerline/internal"
)

type Point = internal.Point
type Polygon = internal.Polygon
type PolygonList = internal.PolygonList
type Triangle = internal.Triangle
type TriangleList = internal.TriangleList

type Skeleton = internal.Skeleton
type Node = internal.Node
type Edge = internal.Edge
type NodeKind = internal.NodeKind

const (
	IncenterNode = internal.IncenterNode
	JunctionNode = internal.JunctionNode
	MidpointNode = internal.MidpointNode
	CornerNode   = internal.CornerNode
	VoronoiNode  = internal.VoronoiNode
)

type TriangleClass = internal.TriangleClass
type ClassifiedTriangle = internal.ClassifiedTriangle

const (
	SingleTriangle   = internal.SingleTriangle
	TerminalTriangle = internal.TerminalTriangle
	SleeveTriangle   = internal.SleeveTriangle
	JunctionTriangle = internal.JunctionTriangle
)

type Method = internal.Method
type Options = internal.Options

const (
	MethodTriangulation = internal.MethodTriangulation
	MethodVoronoi       = internal.MethodVoronoi
)

const DefaultSampleSpacing = internal.DefaultSampleSpacing

type DegenerateInputError = internal.DegenerateInputError
type NumericInstabilityError = internal.NumericInstabilityError

// Compute the skeleton of a simple polygon. The polygon may wind either way.
// It is never modified.
func ComputeMedialAxis(poly Polygon, opts Options) (skeleton *Skeleton, err error) {
	defer func() {
		recoveredErr := HandlePanicRecover(recover())
		if recoveredErr != nil {
			skeleton = nil
			err = recoveredErr
		}
	}()
	return internal.ComputeMedialAxis(poly, opts), nil
}

// Constrained Delaunay triangulation of a simple polygon. The triangles are
// made of the polygon's own points and wind the same way as the polygon.
func Triangulate(poly Polygon) (triangles TriangleList, err error) {
	defer func() {
		recoveredErr := HandlePanicRecover(recover())
		if recoveredErr != nil {
			triangles = nil
			err = recoveredErr
		}
	}()
	return internal.TriangulatePolygon(poly), nil
}

// Triangulate the polygon and report what each triangle contributes to the
// skeleton.
func Classify(poly Polygon) (triangles []ClassifiedTriangle, err error) {
	defer func() {
		recoveredErr := HandlePanicRecover(recover())
		if recoveredErr != nil {
			triangles = nil
			err = recoveredErr
		}
	}()
	return internal.ClassifyPolygon(poly), nil
}

// Split a simple polygon into y-monotone pieces, wound counterclockwise, made
// of the polygon's own points.
func ConvertToMonotones(poly Polygon) (pieces PolygonList, err error) {
	defer func() {
		recoveredErr := HandlePanicRecover(recover())
		if recoveredErr != nil {
			pieces = nil
			err = recoveredErr
		}
	}()
	return internal.MonotonePieces(poly), nil
}

// Convert a value recovered from an engine panic into an error. Panics that
// didn't come from the engine are re-raised.
func HandlePanicRecover(r interface{}) error {
	return internal.HandlePanicRecover(r)
}

func IsDegenerate(err error) bool {
	return internal.IsDegenerate(err)
}

func IsNumericInstability(err error) bool {
	return internal.IsNumericInstability(err)
}

// Route the engine's debug logging to l. Nil silences it again.
func SetLogger(l *slog.Logger) {
	internal.SetLogger(l)
}

func Logger() *slog.Logger {
	return internal.Logger()
}

// Signed area of the polygon, positive when counterclockwise.
func SignedArea(poly Polygon) float64 {
	return internal.SignedArea(&poly)
}
