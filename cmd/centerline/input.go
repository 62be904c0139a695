package main

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/osuushi/centerline"
)

// Read polygons from newline separated points in the form "x y", with each
// polygon separated by a blank line. Commas work as separators too, and lines
// starting with # are ignored.
func readPolygons(in io.Reader) ([]centerline.Polygon, error) {
	polygons := []centerline.Polygon{}
	scanner := bufio.NewScanner(in)
	points := []*centerline.Point{}
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}

		// If it's empty, and we collected any points, this is the end of the polygon
		if line == "" {
			if len(points) > 0 {
				polygons = append(polygons, centerline.Polygon{Points: points})
				points = []*centerline.Point{}
			}
			continue
		}

		point, err := parsePoint(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNumber)
		}
		points = append(points, point)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read points")
	}

	// Handle trailing polygon if any
	if len(points) > 0 {
		polygons = append(polygons, centerline.Polygon{Points: points})
	}
	return polygons, nil
}

func parsePoint(line string) (*centerline.Point, error) {
	parts := strings.Fields(strings.ReplaceAll(line, ",", " "))
	if len(parts) != 2 {
		return nil, errors.Errorf("expected two coordinates, got %q", line)
	}
	x, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return nil, errors.Wrap(err, "x")
	}
	y, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return nil, errors.Wrap(err, "y")
	}
	return &centerline.Point{X: x, Y: y}, nil
}
