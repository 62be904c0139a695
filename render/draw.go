package render

import (
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/pkg/errors"
	"golang.org/x/image/font/basicfont"

	"github.com/osuushi/centerline/advanced"
	"github.com/osuushi/centerline/internal/dbg"
)

type DrawOptions struct {
	// Length of the longer side of the drawing in pixels, before padding.
	// Zero means 800.
	Size int
	// Blank border around the drawing, in pixels. Negative means none, zero
	// means 20.
	Padding int
	// Put the origin at the bottom left, for y up coordinates. SVG coordinates
	// are y down, which is the image's own orientation.
	FlipY bool
	// Draw each node's inscribed circle
	Radii bool
	// Write a readable name next to each node
	Labels bool
}

var (
	backgroundColor = color.RGBA{0x10, 0x10, 0x10, 0xff}
	fillColor       = color.RGBA{0x4d, 0x33, 0xff, 0x80}
	outlineColor    = color.RGBA{0x00, 0xff, 0x00, 0xff}
	skeletonColor   = color.RGBA{0xff, 0xff, 0x00, 0xff}
	radiusColor     = color.RGBA{0xff, 0x80, 0x00, 0x60}
	labelColor      = color.White
)

// Draw the polygon with its skeleton on top and encode it as a PNG. Either of
// poly and skel may be empty.
func DrawPNG(w io.Writer, poly advanced.Polygon, skel *advanced.Skeleton, opts DrawOptions) error {
	c, err := draw(poly, skel, opts)
	if err != nil {
		return err
	}
	return errors.Wrap(c.EncodePNG(w), "encode png")
}

// Same as DrawPNG, but straight to a file.
func SavePNG(path string, poly advanced.Polygon, skel *advanced.Skeleton, opts DrawOptions) error {
	c, err := draw(poly, skel, opts)
	if err != nil {
		return err
	}
	return errors.Wrapf(c.SavePNG(path), "save %s", path)
}

// Print an image file inline in the terminal. Only iTerm understands this.
func Imgcat(path string, w io.Writer) error {
	return errors.Wrapf(imgcat.CatFile(path, w), "imgcat %s", path)
}

func draw(poly advanced.Polygon, skel *advanced.Skeleton, opts DrawOptions) (*gg.Context, error) {
	if opts.Size <= 0 {
		opts.Size = 800
	}
	if opts.Padding == 0 {
		opts.Padding = 20
	} else if opts.Padding < 0 {
		opts.Padding = 0
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	extend := func(x, y, r float64) {
		minX = math.Min(minX, x-r)
		minY = math.Min(minY, y-r)
		maxX = math.Max(maxX, x+r)
		maxY = math.Max(maxY, y+r)
	}
	for _, p := range poly.Points {
		extend(p.X, p.Y, 0)
	}
	if skel != nil {
		for _, n := range skel.Nodes {
			r := 0.0
			if opts.Radii {
				r = n.Radius
			}
			extend(n.X, n.Y, r)
		}
	}
	if math.IsInf(minX, 1) {
		return nil, errors.New("nothing to draw")
	}

	extent := math.Max(maxX-minX, maxY-minY)
	scale := 1.0
	if extent > 0 {
		scale = float64(opts.Size) / extent
	}
	width := int(math.Ceil(scale*(maxX-minX))) + opts.Padding*2
	height := int(math.Ceil(scale*(maxY-minY))) + opts.Padding*2

	c := gg.NewContext(width, height)
	c.SetColor(backgroundColor)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	if opts.FlipY {
		// Origin at the bottom left
		c.Translate(0, float64(height))
		c.Scale(1, -1)
	}
	c.Translate(float64(opts.Padding), float64(opts.Padding))
	c.Scale(scale, scale)
	c.Translate(-minX, -minY)

	if len(poly.Points) > 0 {
		for i, p := range poly.Points {
			if i == 0 {
				c.MoveTo(p.X, p.Y)
			} else {
				c.LineTo(p.X, p.Y)
			}
		}
		c.ClosePath()
		c.SetColor(fillColor)
		c.FillPreserve()
		c.SetColor(outlineColor)
		c.SetLineWidth(2)
		c.Stroke()
	}

	if skel == nil {
		return c, nil
	}

	if opts.Radii {
		c.SetColor(radiusColor)
		c.SetLineWidth(1)
		for _, n := range skel.Nodes {
			c.DrawCircle(n.X, n.Y, n.Radius)
			c.Stroke()
		}
	}

	c.SetColor(skeletonColor)
	c.SetLineWidth(3)
	for _, e := range skel.Edges {
		c.DrawLine(e.Start.X, e.Start.Y, e.End.X, e.End.Y)
		c.Stroke()
	}
	for _, n := range skel.Nodes {
		// Fixed size dots, so size them in device space
		x, y := c.TransformPoint(n.X, n.Y)
		c.Push()
		c.Identity()
		c.DrawCircle(x, y, 3)
		c.Fill()
		c.Pop()
	}

	if opts.Labels {
		c.SetFontFace(basicfont.Face7x13)
		c.SetColor(labelColor)
		for _, n := range skel.Nodes {
			// Text has to be drawn in device space, or a flipped context would
			// draw it upside down
			x, y := c.TransformPoint(n.X, n.Y)
			c.Push()
			c.Identity()
			c.DrawStringAnchored(dbg.Name(n), x+5, y-5, 0, 0)
			c.Pop()
		}
	}
	return c, nil
}
