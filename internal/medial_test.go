package internal

import (
	"bytes"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func computeSafely(poly Polygon, opts Options) (skeleton *Skeleton, err error) {
	err = catch(func() { skeleton = ComputeMedialAxis(poly, opts) })
	return skeleton, err
}

func TestComputeMedialAxis_Square(t *testing.T) {
	skeleton := ComputeMedialAxis(UnitSquare(), Options{})
	require.Len(t, skeleton.Edges, 2)
	require.Len(t, skeleton.Nodes, 3)

	var center *Node
	for _, n := range skeleton.Nodes {
		if n.Kind == MidpointNode {
			center = n
		}
	}
	require.NotNil(t, center, "no center node")
	assert.InDelta(t, 0.5, center.X, 1e-12)
	assert.InDelta(t, 0.5, center.Y, 1e-12)
	assert.InDelta(t, 0.5, center.Radius, 1e-12)
	assert.Equal(t, 2, skeleton.Degree(center))

	// Each edge is a half diagonal from the incenter of a corner triangle to the
	// center
	inradius := (2 - math.Sqrt2) / 2
	for _, e := range skeleton.Edges {
		require.True(t, e.Start == center || e.End == center, "edge %v-%v misses the center", e.Start, e.End)
		other := e.Other(center)
		assert.Equal(t, IncenterNode, other.Kind)
		onDiagonal := math.Abs(other.X-other.Y) < 1e-12 || math.Abs(other.X+other.Y-1) < 1e-12
		assert.True(t, onDiagonal, "%v is not on a diagonal", other)
		assert.InDelta(t, inradius, other.Radius, 1e-12)
		assert.InDelta(t, math.Sqrt2/2-math.Sqrt2*inradius, e.Length(), 1e-12)
	}
	assert.Len(t, skeleton.Leaves(), 2)
	assert.True(t, skeleton.IsConnected())
}

func TestComputeMedialAxis_Triangle(t *testing.T) {
	poly := Polygon{[]*Point{{0, 0}, {2, 0}, {1, math.Sqrt(3)}}}
	skeleton := ComputeMedialAxis(poly, Options{})
	assert.Empty(t, skeleton.Edges)
	require.Len(t, skeleton.Nodes, 1)

	incenter := skeleton.Nodes[0]
	assert.Equal(t, IncenterNode, incenter.Kind)
	assert.InDelta(t, 1, incenter.X, 1e-9)
	assert.InDelta(t, math.Sqrt(3)/3, incenter.Y, 1e-9)
	assert.InDelta(t, math.Sqrt(3)/3, incenter.Radius, 1e-9)
}

func TestComputeMedialAxis_RegularPolygon(t *testing.T) {
	for n := 3; n <= 24; n++ {
		for _, radius := range []float64{1, 10, 250} {
			for _, rotation := range []float64{0, 0.1, 0.37, 1} {
				poly := RotatedRegularPolygon(n, radius, rotation)
				t.Run(fmt.Sprintf("%d-gon r=%g rot=%g", n, radius, rotation), func(t *testing.T) {
					plain := ComputeMedialAxis(poly, Options{})
					assert.True(t, plain.IsConnected())
					AssertSkeletonInside(t, poly, plain)

					skeleton := ComputeMedialAxis(poly, Options{CornerBranches: true})
					assert.True(t, skeleton.IsConnected())
					AssertSkeletonInside(t, poly, skeleton)

					// One leaf per vertex, sitting on the vertex
					leaves := skeleton.Leaves()
					require.Len(t, leaves, n)
					reached := make(map[int]struct{})
					for _, leaf := range leaves {
						assert.Equal(t, CornerNode, leaf.Kind)
						for i, p := range poly.Points {
							if math.Abs(p.X-leaf.X) < 1e-9*radius && math.Abs(p.Y-leaf.Y) < 1e-9*radius {
								reached[i] = struct{}{}
							}
						}
					}
					assert.Len(t, reached, n)
				})
			}
		}
	}
}

// Terminal triangles at the corners of a fan leave no incenter behind as a
// leaf of its own.
func TestAddCornerBranches_TerminalApex(t *testing.T) {
	poly := Prepare(RotatedRegularPolygon(6, 10, 0)).Polygon
	mesh := Triangulate(poly)
	skeleton, triangleNodes := BuildSkeleton(mesh)
	apexes := terminalApexes(mesh, triangleNodes)
	require.NotEmpty(t, apexes)

	added := AddCornerBranches(mesh, skeleton, triangleNodes)
	assert.Equal(t, 6, added)
	adjacency := skeleton.Adjacency()
	for apex, incenter := range apexes {
		assert.Equal(t, IncenterNode, incenter.Kind)
		edges := adjacency[incenter]
		require.Len(t, edges, 2, "incenter of the terminal triangle at %v", apex)
		var corner *Node
		for _, e := range edges {
			if other := e.Other(incenter); other.Kind == CornerNode {
				corner = other
			}
		}
		require.NotNil(t, corner)
		assert.Equal(t, *apex, corner.Point)
	}
	for _, leaf := range skeleton.Leaves() {
		assert.Equal(t, CornerNode, leaf.Kind)
	}
}

func TestComputeMedialAxis_ThinRectangle(t *testing.T) {
	const length, width = 100.0, 1.0
	poly := Rectangle(length, width)
	skeleton := ComputeMedialAxis(poly, Options{})
	require.NotEmpty(t, skeleton.Edges)
	assert.True(t, skeleton.IsConnected())
	assert.Len(t, skeleton.Leaves(), 2)

	// Hugs the long axis and runs nearly end to end
	for _, n := range skeleton.Nodes {
		assert.LessOrEqual(t, math.Abs(n.Y-width/2), width, "%v strays from the axis", n)
	}
	minX, _, maxX, _ := skeleton.Bounds()
	assert.Greater(t, maxX-minX, length-2*width)
}

func TestComputeMedialAxis_Properties(t *testing.T) {
	optionSets := map[string]Options{
		"default":  {},
		"corners":  {CornerBranches: true},
		"simplify": {SimplifyTolerance: 0.5},
		"both":     {CornerBranches: true, SimplifyTolerance: 0.5},
	}
	for shapeName, shape := range testShapes() {
		for optionName, opts := range optionSets {
			shape, opts := shape, opts
			t.Run(shapeName+"/"+optionName, func(t *testing.T) {
				skeleton, err := computeSafely(shape, opts)
				require.NoError(t, err)
				require.NotEmpty(t, skeleton.Nodes)
				assert.True(t, skeleton.IsConnected(), "skeleton is not connected")
				AssertSkeletonInside(t, shape, skeleton)
				AssertRadii(t, shape, skeleton)

				again, err := computeSafely(shape, opts)
				require.NoError(t, err)
				assert.Equal(t, skeleton.Segments(), again.Segments(), "not deterministic")
			})
		}
	}
}

func TestComputeMedialAxis_Winding(t *testing.T) {
	// Either winding gives the same skeleton
	for _, name := range fixtureNames {
		poly := *LoadFixture(name)
		forward := ComputeMedialAxis(poly, Options{})
		backward := ComputeMedialAxis(poly.Reverse(), Options{})
		assert.Equal(t, forward.Segments(), backward.Segments(), name)
	}
}

func TestComputeMedialAxis_Degenerate(t *testing.T) {
	cases := map[string][]*Point{
		"two vertices": {{0, 0}, {1, 1}},
		"zero area":    {{0, 0}, {1, 0}, {2, 0}},
		"bowtie":       {{0, 0}, {1, 1}, {1, 0}, {0, 1}},
	}
	for name, points := range cases {
		points := points
		t.Run(name, func(t *testing.T) {
			for _, method := range []Method{MethodTriangulation, MethodVoronoi} {
				skeleton, err := computeSafely(Polygon{points}, Options{Method: method})
				assert.Nil(t, skeleton)
				require.Error(t, err)
				assert.True(t, IsDegenerate(err), "expected a degenerate input error, got %v", err)
			}
		})
	}

	t.Run("unknown method", func(t *testing.T) {
		_, err := computeSafely(UnitSquare(), Options{Method: Method(42)})
		assert.EqualError(t, err, "unknown method 42")
	})
}

func TestClassifyCounts(t *testing.T) {
	for name, shape := range testShapes() {
		shape := shape
		t.Run(name, func(t *testing.T) {
			poly := Prepare(shape).Polygon
			mesh := Triangulate(poly)
			counts := make(map[TriangleClass]int)
			for ti := range mesh.Triangles {
				counts[mesh.Classify(ti)]++
			}
			n := len(poly.Points)
			if n == 3 {
				assert.Equal(t, 1, counts[SingleTriangle])
				return
			}
			// The triangles form a tree in which terminal triangles are the leaves
			// and junction triangles the branch points
			assert.Equal(t, counts[JunctionTriangle]+2, counts[TerminalTriangle])

			skeleton, _ := BuildSkeleton(mesh)
			assert.Len(t, skeleton.Edges, counts[TerminalTriangle]+counts[SleeveTriangle]+3*counts[JunctionTriangle])
			// One node per interior edge, plus the incenters and centroids
			assert.Len(t, skeleton.Nodes, n-3+counts[TerminalTriangle]+counts[JunctionTriangle])
			assert.Len(t, skeleton.Leaves(), counts[TerminalTriangle])
		})
	}
}

// Run with -race. Each goroutine has its own polygon; the logger, debug names
// and everything else they share must hold up, and the results must match a
// sequential run.
func TestComputeMedialAxis_Concurrent(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	SetLogger(logger)
	defer SetLogger(nil)

	shapes := []Polygon{SimpleStar(), LShape(), RegularPolygon(9, 5), Rectangle(20, 4)}
	optionSets := []Options{{}, {CornerBranches: true}, {SimplifyTolerance: 0.5}, {Method: MethodVoronoi}}
	expected := make([][][2]Point, len(shapes)*len(optionSets))
	for i := range expected {
		poly := clonePolygon(shapes[i%len(shapes)])
		expected[i] = ComputeMedialAxis(poly, optionSets[i/len(shapes)]).Segments()
	}

	var wg sync.WaitGroup
	for round := 0; round < 4; round++ {
		for i := range expected {
			i, round := i, round
			wg.Add(1)
			go func() {
				defer wg.Done()
				if i == 0 {
					// Swapping the logger mid run is allowed too
					if round%2 == 0 {
						SetLogger(nil)
					} else {
						SetLogger(logger)
					}
				}
				poly := clonePolygon(shapes[i%len(shapes)])
				skeleton := ComputeMedialAxis(poly, optionSets[i/len(shapes)])
				for _, n := range skeleton.Nodes {
					Logger().Debug("node", "node", n.String())
				}
				assert.Equal(t, expected[i], skeleton.Segments(), "shape %d, options %d", i%len(shapes), i/len(shapes))
			}()
		}
	}
	wg.Wait()
	assert.Contains(t, buf.String(), "computed medial axis")
}
