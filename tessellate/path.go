// Package tessellate turns SVG outlines into polygons: path data, documents
// and points lists in, flattened and rounded vertex lists out.
package tessellate

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/osuushi/centerline/advanced"
)

type Point = advanced.Point

type Verb int

const (
	MoveTo Verb = iota
	LineTo
	QuadTo
	CubicTo
	ArcTo
	Close
)

func (v Verb) String() string {
	return [...]string{"MoveTo", "LineTo", "QuadTo", "CubicTo", "ArcTo", "Close"}[v]
}

// Elliptical arc parameters, endpoint form, as in the SVG A command.
type Arc struct {
	RX, RY   float64
	Rotation float64 // degrees
	LargeArc bool
	Sweep    bool
}

// One drawing command in absolute coordinates. Points holds the control
// points followed by the end point: one for MoveTo, LineTo and ArcTo, two for
// QuadTo, three for CubicTo, none for Close.
type Element struct {
	Verb   Verb
	Points []Point
	Arc    Arc
}

// The end point of the element. Close has none.
func (e Element) End() (Point, bool) {
	if len(e.Points) == 0 {
		return Point{}, false
	}
	return e.Points[len(e.Points)-1], true
}

// Parsed path data. Relative commands, shorthands (H, V, S, T) and implicit
// repeats have all been resolved, so every element is absolute.
type Path struct {
	Elements []Element
}

func (p *Path) add(verb Verb, points ...Point) {
	p.Elements = append(p.Elements, Element{Verb: verb, Points: points})
}

// Parse SVG path data ("M 0 0 L 10 0 ..."). Everything the SVG grammar allows
// is accepted: implicit repeated commands, numbers run together ("1-2.5.5"),
// exponents and compact arc flags. Anything else is an error that names the
// offending offset.
func ParsePath(d string) (*Path, error) {
	s := &scanner{data: d}
	path := &Path{}

	var (
		command        byte
		lastCommand    byte
		current, start Point
		lastControl    Point
		haveSubpath    bool
	)

	for {
		s.skipSeparators()
		if s.done() {
			break
		}
		if c, ok := s.command(); ok {
			command = c
		} else {
			// Implicit repeat of the previous command
			switch command {
			case 0:
				return nil, errors.Errorf("path data must start with a moveto, found %q at offset %d", s.data[s.pos], s.pos)
			case 'Z', 'z':
				return nil, errors.Errorf("unexpected number after closepath at offset %d", s.pos)
			case 'M':
				command = 'L'
			case 'm':
				command = 'l'
			}
		}
		if !haveSubpath && command != 'M' && command != 'm' {
			return nil, errors.Errorf("path data must start with a moveto, found %q", command)
		}

		relative := command >= 'a'
		offset := func(p Point) Point {
			if relative {
				return Point{X: current.X + p.X, Y: current.Y + p.Y}
			}
			return p
		}

		switch command {
		case 'M', 'm':
			p, err := s.pair()
			if err != nil {
				return nil, err
			}
			current = offset(p)
			start = current
			haveSubpath = true
			path.add(MoveTo, current)

		case 'Z', 'z':
			if haveSubpath {
				path.add(Close)
			}
			current = start

		case 'L', 'l':
			p, err := s.pair()
			if err != nil {
				return nil, err
			}
			current = offset(p)
			path.add(LineTo, current)

		case 'H', 'h':
			x, err := s.number()
			if err != nil {
				return nil, err
			}
			if relative {
				x += current.X
			}
			current = Point{X: x, Y: current.Y}
			path.add(LineTo, current)

		case 'V', 'v':
			y, err := s.number()
			if err != nil {
				return nil, err
			}
			if relative {
				y += current.Y
			}
			current = Point{X: current.X, Y: y}
			path.add(LineTo, current)

		case 'C', 'c', 'S', 's':
			var c1 Point
			if command == 'C' || command == 'c' {
				p, err := s.pair()
				if err != nil {
					return nil, err
				}
				c1 = offset(p)
			} else {
				c1 = current
				if isCubic(lastCommand) {
					c1 = reflect(lastControl, current)
				}
			}
			p2, err := s.pair()
			if err != nil {
				return nil, err
			}
			end, err := s.pair()
			if err != nil {
				return nil, err
			}
			c2 := offset(p2)
			current = offset(end)
			lastControl = c2
			path.add(CubicTo, c1, c2, current)

		case 'Q', 'q', 'T', 't':
			var c Point
			if command == 'Q' || command == 'q' {
				p, err := s.pair()
				if err != nil {
					return nil, err
				}
				c = offset(p)
			} else {
				c = current
				if isQuad(lastCommand) {
					c = reflect(lastControl, current)
				}
			}
			end, err := s.pair()
			if err != nil {
				return nil, err
			}
			current = offset(end)
			lastControl = c
			path.add(QuadTo, c, current)

		case 'A', 'a':
			var arc Arc
			var err error
			if arc.RX, err = s.number(); err != nil {
				return nil, err
			}
			if arc.RY, err = s.number(); err != nil {
				return nil, err
			}
			if arc.Rotation, err = s.number(); err != nil {
				return nil, err
			}
			if arc.LargeArc, err = s.flag(); err != nil {
				return nil, err
			}
			if arc.Sweep, err = s.flag(); err != nil {
				return nil, err
			}
			end, err := s.pair()
			if err != nil {
				return nil, err
			}
			current = offset(end)
			path.Elements = append(path.Elements, Element{Verb: ArcTo, Points: []Point{current}, Arc: arc})

		default:
			return nil, errors.Errorf("unsupported path command %q at offset %d", command, s.pos-1)
		}
		lastCommand = command
	}
	return path, nil
}

func isCubic(c byte) bool {
	return c == 'C' || c == 'c' || c == 'S' || c == 's'
}

func isQuad(c byte) bool {
	return c == 'Q' || c == 'q' || c == 'T' || c == 't'
}

// Reflection of control point c about p
func reflect(c, p Point) Point {
	return Point{X: 2*p.X - c.X, Y: 2*p.Y - c.Y}
}

type scanner struct {
	data string
	pos  int
}

func (s *scanner) done() bool {
	return s.pos >= len(s.data)
}

func (s *scanner) skipSeparators() {
	for !s.done() {
		switch s.data[s.pos] {
		case ' ', '\t', '\n', '\r', '\f', ',':
			s.pos++
		default:
			return
		}
	}
}

func (s *scanner) command() (byte, bool) {
	c := s.data[s.pos]
	switch c {
	case 'M', 'm', 'Z', 'z', 'L', 'l', 'H', 'h', 'V', 'v',
		'C', 'c', 'S', 's', 'Q', 'q', 'T', 't', 'A', 'a':
		s.pos++
		return c, true
	}
	if c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' {
		// Let the caller report it as unsupported
		if c != 'e' && c != 'E' {
			s.pos++
			return c, true
		}
	}
	return 0, false
}

// Scan one number: optional sign, digits with at most one decimal point, and
// an optional exponent. A second decimal point starts the next number.
func (s *scanner) number() (float64, error) {
	s.skipSeparators()
	begin := s.pos
	if !s.done() && (s.data[s.pos] == '+' || s.data[s.pos] == '-') {
		s.pos++
	}
	digits := 0
	for !s.done() && isDigit(s.data[s.pos]) {
		s.pos++
		digits++
	}
	if !s.done() && s.data[s.pos] == '.' {
		s.pos++
		for !s.done() && isDigit(s.data[s.pos]) {
			s.pos++
			digits++
		}
	}
	if digits == 0 {
		s.pos = begin
		if s.done() {
			return 0, errors.Errorf("expected number at end of path data")
		}
		return 0, errors.Errorf("expected number at offset %d, found %q", begin, s.data[begin])
	}
	if !s.done() && (s.data[s.pos] == 'e' || s.data[s.pos] == 'E') {
		mark := s.pos
		s.pos++
		if !s.done() && (s.data[s.pos] == '+' || s.data[s.pos] == '-') {
			s.pos++
		}
		exponentDigits := 0
		for !s.done() && isDigit(s.data[s.pos]) {
			s.pos++
			exponentDigits++
		}
		if exponentDigits == 0 {
			s.pos = mark
		}
	}
	value, err := strconv.ParseFloat(s.data[begin:s.pos], 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid number at offset %d", begin)
	}
	return value, nil
}

func (s *scanner) pair() (Point, error) {
	x, err := s.number()
	if err != nil {
		return Point{}, err
	}
	y, err := s.number()
	if err != nil {
		return Point{}, err
	}
	return Point{X: x, Y: y}, nil
}

// Arc flags are a single 0 or 1, which may run straight into the next number.
func (s *scanner) flag() (bool, error) {
	s.skipSeparators()
	if s.done() {
		return false, errors.Errorf("expected arc flag at end of path data")
	}
	switch s.data[s.pos] {
	case '0':
		s.pos++
		return false, nil
	case '1':
		s.pos++
		return true, nil
	}
	return false, errors.Errorf("expected arc flag at offset %d, found %q", s.pos, s.data[s.pos])
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
