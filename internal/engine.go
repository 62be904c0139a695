package internal

type Method int

const (
	// Triangle classification over a constrained Delaunay triangulation
	MethodTriangulation Method = iota
	// Voronoi diagram of the sampled boundary
	MethodVoronoi
)

func (m Method) String() string {
	switch m {
	case MethodTriangulation:
		return "triangulation"
	case MethodVoronoi:
		return "voronoi"
	}
	return "unknown"
}

const DefaultSampleSpacing = 0.01

type Options struct {
	Method Method
	// Connect every convex vertex to the skeleton (triangulation method only)
	CornerBranches bool
	// Chain simplification tolerance in the caller's units. Zero disables it.
	SimplifyTolerance float64
	// Boundary sample spacing for the Voronoi method, as a fraction of the
	// polygon's extent. Zero means DefaultSampleSpacing.
	SampleSpacing float64
}

// Compute the skeleton of a polygon, in the polygon's own coordinates. Panics
// with a DegenerateInputError or NumericInstabilityError; see
// HandlePanicRecover.
func ComputeMedialAxis(poly Polygon, opts Options) *Skeleton {
	prepared := Prepare(poly)
	local := prepared.Polygon

	var skeleton *Skeleton
	switch opts.Method {
	case MethodTriangulation:
		mesh := Triangulate(local)
		var triangleNodes [][]*Node
		skeleton, triangleNodes = BuildSkeleton(mesh)
		if opts.CornerBranches {
			AddCornerBranches(mesh, skeleton, triangleNodes)
		}
	case MethodVoronoi:
		spacing := opts.SampleSpacing
		if spacing <= 0 {
			spacing = DefaultSampleSpacing
		}
		skeleton = VoronoiSkeleton(local, spacing)
	default:
		fatalf("unknown method %d", opts.Method)
	}

	if opts.SimplifyTolerance > 0 {
		skeleton = Simplify(local, skeleton, prepared.Frame.LengthToLocal(opts.SimplifyTolerance))
	}
	skeleton.pruneNodes()
	AssignRadii(local, skeleton)

	for _, n := range skeleton.Nodes {
		n.Point = *prepared.Frame.ToWorld(&n.Point)
		n.Radius = prepared.Frame.LengthToWorld(n.Radius)
	}

	if logger := Logger(); logger.Enabled(bgContext, levelDebug) {
		logger.Debug("computed medial axis",
			"method", opts.Method.String(),
			"vertices", len(poly.Points),
			"nodes", len(skeleton.Nodes),
			"edges", len(skeleton.Edges),
			"leaves", len(skeleton.Leaves()),
		)
	}
	return skeleton
}

// Triangulate a polygon and report the triangles over the caller's own points.
func TriangulatePolygon(poly Polygon) TriangleList {
	prepared := Prepare(poly)
	mesh := Triangulate(prepared.Polygon)
	result := make(TriangleList, len(mesh.Triangles))
	for i, tri := range mesh.Triangles {
		a, b, c := prepared.Original[tri.A], prepared.Original[tri.B], prepared.Original[tri.C]
		if prepared.Reversed {
			// Keep the caller's winding
			b, c = c, b
		}
		result[i] = &Triangle{a, b, c}
	}
	return result
}

// A triangle over the caller's points, with its role in the skeleton.
type ClassifiedTriangle struct {
	Triangle *Triangle
	Class    TriangleClass
}

func ClassifyPolygon(poly Polygon) []ClassifiedTriangle {
	prepared := Prepare(poly)
	mesh := Triangulate(prepared.Polygon)
	result := make([]ClassifiedTriangle, len(mesh.Triangles))
	for i, tri := range mesh.Triangles {
		result[i] = ClassifiedTriangle{
			Triangle: &Triangle{prepared.Original[tri.A], prepared.Original[tri.B], prepared.Original[tri.C]},
			Class:    mesh.Classify(i),
		}
	}
	return result
}

// Split a polygon into y-monotone pieces over the caller's own points. The
// pieces are counterclockwise.
func MonotonePieces(poly Polygon) PolygonList {
	prepared := Prepare(poly)
	pieces := ConvertToMonotones(prepared.Polygon)
	result := make(PolygonList, len(pieces))
	for i, piece := range pieces {
		points := make([]*Point, len(piece.Points))
		for j, p := range piece.Points {
			points[j] = prepared.Original[p]
		}
		result[i] = Polygon{points}
	}
	return result
}
