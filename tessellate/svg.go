package tessellate

import (
	"io"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
	"github.com/pkg/errors"
)

// An outline found in an SVG document.
type Shape struct {
	// Element name: path, polygon or polyline
	Element string
	// The id attribute, if any
	ID   string
	Path *Path
}

// Read every path, polygon and polyline element of an SVG document, in
// document order. Transforms and styling are ignored.
func LoadSVG(r io.Reader) ([]Shape, error) {
	root, err := svgparser.Parse(r, false)
	if err != nil {
		return nil, errors.Wrap(err, "parse svg")
	}

	var shapes []Shape
	var walkErr error
	walk(root, func(el *svgparser.Element) bool {
		var path *Path
		var err error
		switch el.Name {
		case "path":
			path, err = ParsePath(el.Attributes["d"])
		case "polygon", "polyline":
			path, err = pointsPath(el.Attributes["points"])
		default:
			return true
		}
		if err != nil {
			walkErr = errors.Wrapf(err, "<%s> element %d", el.Name, len(shapes))
			return false
		}
		shapes = append(shapes, Shape{Element: el.Name, ID: el.Attributes["id"], Path: path})
		return true
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return shapes, nil
}

// Depth first, in document order, until fn returns false
func walk(el *svgparser.Element, fn func(*svgparser.Element) bool) bool {
	if !fn(el) {
		return false
	}
	for _, child := range el.Children {
		if !walk(child, fn) {
			return false
		}
	}
	return true
}

// Parse an SVG points attribute ("0,0 10,0 10,10"). Commas and whitespace are
// interchangeable.
func ParsePoints(s string) ([]Point, error) {
	fields := strings.Fields(strings.ReplaceAll(s, ",", " "))
	if len(fields)%2 != 0 {
		return nil, errors.Errorf("odd number of coordinates in points list: %d", len(fields))
	}

	points := make([]Point, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		x, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid x coordinate %q", fields[i])
		}
		y, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid y coordinate %q", fields[i+1])
		}
		points = append(points, Point{X: x, Y: y})
	}
	return points, nil
}

// A points list as a closed path. Polylines are closed too, since only the
// enclosed area matters here.
func pointsPath(s string) (*Path, error) {
	points, err := ParsePoints(s)
	if err != nil {
		return nil, err
	}
	path := &Path{}
	for i, p := range points {
		if i == 0 {
			path.add(MoveTo, p)
		} else {
			path.add(LineTo, p)
		}
	}
	if len(points) > 0 {
		path.add(Close)
	}
	return path, nil
}
