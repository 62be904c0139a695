package internal

// Constrained Delaunay triangulation of a prepared (validated, normalized,
// counterclockwise) polygon: split into monotone pieces, triangulate each
// piece, then flip until every interior edge is locally Delaunay.
func Triangulate(poly Polygon) *Mesh {
	monotones := ConvertToMonotones(poly)
	var triangles TriangleList
	for i := range monotones {
		triangles = append(triangles, TriangulateMonotone(&monotones[i])...)
	}
	mesh := NewMesh(poly, triangles)
	flips := mesh.MakeDelaunay()
	mesh.Verify()

	if logger := Logger(); logger.Enabled(bgContext, levelDebug) {
		logger.Debug("triangulated polygon",
			"vertices", len(poly.Points),
			"monotones", len(monotones),
			"triangles", len(mesh.Triangles),
			"flips", flips,
		)
	}
	return mesh
}
