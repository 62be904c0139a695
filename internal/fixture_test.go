package internal

import (
	"embed"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
)

// This file parses the svg fixtures and outputs polygons. This is not a full
// (or even correct) svg parser. It finds the one polygon element in the file
// and converts it into a CCW Polygon. If anything goes wrong, it panics.
//
// Fixtures are available by name in the testdata/ directory, sans extension.

//go:embed testdata
var fixtures embed.FS

var fixtureNames = []string{"spiral", "comb"}

func LoadFixture(name string) *Polygon {
	fixture, err := fixtures.Open("testdata/" + name + ".svg")
	if err != nil {
		log.Fatalf("Could not load fixture %q: %v", name, err)
	}

	defer fixture.Close()
	rootEl, err := svgparser.Parse(fixture, true)
	if err != nil {
		log.Fatalf("Failed to parse fixture %q: %v", name, err)
	}

	polygons := rootEl.FindAll("polygon")
	if len(polygons) != 1 {
		log.Fatalf("Expected one polygon in fixture %q, found %d", name, len(polygons))
	}

	pointStrings := strings.Fields(polygons[0].Attributes["points"])
	points := make([]*Point, 0, len(pointStrings))
	for _, pointString := range pointStrings {
		coordinates := strings.Split(pointString, ",")
		if len(coordinates) != 2 {
			log.Fatalf("Invalid point string %q", pointString)
		}
		x, err := strconv.ParseFloat(coordinates[0], 64)
		if err != nil {
			log.Fatalf("Invalid x value %q: %v", coordinates[0], err)
		}
		y, err := strconv.ParseFloat(coordinates[1], 64)
		if err != nil {
			log.Fatalf("Invalid y value %q: %v", coordinates[1], err)
		}
		points = append(points, &Point{x, y})
	}
	result := Polygon{Points: points}

	if IsCW(&result) {
		result = result.Reverse()
	}
	return &result
}

// Some ad hoc code specified fixtures

func SimpleStar() Polygon {
	var points []*Point
	const outerRadius = 5
	const innerRadius = 2
	for i := 0; i < 10; i++ {
		var radius float64
		if i%2 == 0 {
			radius = outerRadius
		} else {
			radius = innerRadius
		}
		angle := 2 * math.Pi * float64(i) / 10
		points = append(points, &Point{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)})
	}
	return Polygon{points}
}

// Regular polygon with n vertices, rotated so no two vertices share a y value
// by accident of symmetry alone.
func RegularPolygon(n int, radius float64) Polygon {
	return RotatedRegularPolygon(n, radius, 0.1)
}

// Regular polygon with its first vertex at the given angle from the x axis.
func RotatedRegularPolygon(n int, radius, rotation float64) Polygon {
	var points []*Point
	for i := 0; i < n; i++ {
		angle := 2*math.Pi*float64(i)/float64(n) + rotation
		points = append(points, &Point{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)})
	}
	return Polygon{points}
}

func Rectangle(width, height float64) Polygon {
	return Polygon{[]*Point{
		{X: 0, Y: 0},
		{X: width, Y: 0},
		{X: width, Y: height},
		{X: 0, Y: height},
	}}
}

func UnitSquare() Polygon {
	return Rectangle(1, 1)
}

// An L shaped corridor, one unit wide
func LShape() Polygon {
	return Polygon{[]*Point{
		{X: 0, Y: 0},
		{X: 10, Y: 0},
		{X: 10, Y: 1},
		{X: 1, Y: 1},
		{X: 1, Y: 10},
		{X: 0, Y: 10},
	}}
}

// Deep copy, so a test can modify points without affecting a shared fixture
func clonePolygon(poly Polygon) Polygon {
	points := make([]*Point, len(poly.Points))
	for i, p := range poly.Points {
		points[i] = &Point{p.X, p.Y}
	}
	return Polygon{points}
}
