package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/osuushi/centerline"
	"github.com/osuushi/centerline/advanced"
	"github.com/osuushi/centerline/config"
	"github.com/osuushi/centerline/render"
	"github.com/osuushi/centerline/tessellate"
)

// Prints the centerline of closed outlines as SVG path data, one line per
// outline. Outlines come from path data on the command line, the shapes of an
// SVG file, or points on stdin.
func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type settings struct {
	configPath string
	method     string
	corners    bool
	simplify   float64
	spacing    float64
	tolerance  float64
	decimals   int
	format     string
	pngPath    string
	imgcat     bool
	labels     bool
	verbose    bool
	noColor    bool

	methodSet, cornersSet, simplifySet, spacingSet, toleranceSet, decimalsSet bool
}

type cli struct {
	settings
	stdout, stderr io.Writer
	au             aurora.Aurora
	options        centerline.Options
	failed         int
	images         int
}

// Records that the user gave a flag, so it can win over the config file.
func markSet(set *bool) kingpin.Action {
	return func(*kingpin.ParseContext) error {
		*set = true
		return nil
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var s settings
	app := kingpin.New("centerline", "Compute the centerline (medial axis) of closed outlines.")
	app.UsageWriter(stderr)
	app.ErrorWriter(stderr)
	terminated, exitCode := false, 0
	app.Terminate(func(code int) {
		terminated, exitCode = true, code
	})

	app.Flag("config", "YAML file with default settings.").Short('c').StringVar(&s.configPath)
	app.Flag("method", "Skeleton construction method.").Short('m').Action(markSet(&s.methodSet)).
		EnumVar(&s.method, "triangulation", "voronoi")
	app.Flag("corners", "Connect every convex corner to the skeleton.").Action(markSet(&s.cornersSet)).BoolVar(&s.corners)
	app.Flag("simplify", "Simplify skeleton chains within this distance. 0 disables.").Action(markSet(&s.simplifySet)).Float64Var(&s.simplify)
	app.Flag("spacing", "Boundary sample spacing for the voronoi method, relative to the outline's size.").Action(markSet(&s.spacingSet)).Float64Var(&s.spacing)
	app.Flag("tolerance", "Curve flattening tolerance.").Short('t').Action(markSet(&s.toleranceSet)).Float64Var(&s.tolerance)
	app.Flag("decimals", "Decimal places for coordinates. -1 keeps full precision.").Short('d').Action(markSet(&s.decimalsSet)).IntVar(&s.decimals)
	app.Flag("format", "Output as one segment per skeleton edge, or as connected polylines.").Default("segments").
		EnumVar(&s.format, "segments", "polylines")
	app.Flag("png", "Also draw each outline and its skeleton to this PNG file.").StringVar(&s.pngPath)
	app.Flag("imgcat", "Show the drawing in the terminal (iTerm only).").BoolVar(&s.imgcat)
	app.Flag("labels", "Label skeleton nodes in the drawing.").BoolVar(&s.labels)
	app.Flag("verbose", "Log debug output to stderr.").Short('v').BoolVar(&s.verbose)
	app.Flag("no-color", "Don't color error messages.").BoolVar(&s.noColor)

	pathCommand := app.Command("path", "Centerline of SVG path data.")
	pathData := pathCommand.Arg("d", "Path data, as in the d attribute of a path element.").Required().String()

	svgCommand := app.Command("svg", "Centerline of every path, polygon and polyline in an SVG file.")
	svgFile := svgCommand.Arg("file", "SVG file. - reads stdin.").Required().String()

	pointsCommand := app.Command("points", "Centerline of polygons read from stdin as \"x y\" lines, separated by blank lines.")

	configCommand := app.Command("config", "Print the effective settings as YAML.")

	command, err := app.Parse(args)
	if terminated {
		return exitCode
	}

	c := &cli{
		settings: s,
		stdout:   stdout,
		stderr:   stderr,
		au:       aurora.NewAurora(!s.noColor),
	}
	if err != nil {
		return c.fail(err)
	}

	level := slog.LevelWarn
	if s.verbose {
		level = slog.LevelDebug
	}
	centerline.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	defer centerline.SetLogger(nil)

	cfg, err := c.resolveConfig()
	if err != nil {
		return c.fail(err)
	}
	c.options = centerline.Options{Engine: cfg.EngineOptions(), Flatten: cfg.FlattenOptions()}

	switch command {
	case pathCommand.FullCommand():
		polygons, err := tessellate.PathToPolygons(*pathData, c.options.Flatten)
		if err != nil {
			return c.fail(err)
		}
		c.process("path", polygons)

	case svgCommand.FullCommand():
		if err := c.svg(*svgFile, stdin); err != nil {
			return c.fail(err)
		}

	case pointsCommand.FullCommand():
		polygons, err := readPolygons(stdin)
		if err != nil {
			return c.fail(err)
		}
		if len(polygons) == 0 {
			return c.fail(errors.New("no polygons on stdin"))
		}
		for i, poly := range polygons {
			c.process(fmt.Sprintf("polygon %d", i), []centerline.Polygon{poly})
		}

	case configCommand.FullCommand():
		data, err := cfg.Marshal()
		if err != nil {
			return c.fail(err)
		}
		fmt.Fprint(stdout, string(data))
	}

	if c.failed > 0 {
		return 1
	}
	return 0
}

// Config file first, then any flags the user actually gave.
func (c *cli) resolveConfig() (config.Config, error) {
	cfg := config.Default()
	if c.configPath != "" {
		var err error
		if cfg, err = config.LoadFile(c.configPath); err != nil {
			return cfg, err
		}
	}
	if c.methodSet {
		cfg.Method = c.method
	}
	if c.cornersSet {
		cfg.Corners = c.corners
	}
	if c.simplifySet {
		cfg.Simplify = c.simplify
	}
	if c.spacingSet {
		cfg.Spacing = c.spacing
	}
	if c.toleranceSet {
		cfg.Tolerance = c.tolerance
	}
	if c.decimalsSet {
		cfg.Decimals = c.decimals
	}
	return cfg, cfg.Validate()
}

func (c *cli) svg(file string, stdin io.Reader) error {
	in := stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return errors.Wrap(err, "open svg")
		}
		defer f.Close()
		in = f
	}
	shapes, err := tessellate.LoadSVG(in)
	if err != nil {
		return err
	}
	if len(shapes) == 0 {
		return errors.Errorf("no path, polygon or polyline elements in %s", file)
	}
	for i, shape := range shapes {
		name := fmt.Sprintf("<%s> %d", shape.Element, i)
		if shape.ID != "" {
			name = fmt.Sprintf("<%s id=%q>", shape.Element, shape.ID)
		}
		c.process(name, shape.Path.Polygons(c.options.Flatten))
	}
	return nil
}

// Compute and print the centerline of one outline. Failures are reported and
// leave an empty line, so output lines keep matching input outlines.
func (c *cli) process(name string, polygons []centerline.Polygon) {
	printed := false
	err := func() error {
		poly, err := centerline.MainContour(polygons)
		if err != nil {
			return err
		}
		skeleton, err := advanced.ComputeMedialAxis(poly, c.options.Engine)
		if err != nil {
			return err
		}

		decimals := c.options.Flatten.Decimals
		if c.format == "polylines" {
			fmt.Fprintln(c.stdout, render.PolylineData(skeleton, decimals))
		} else {
			fmt.Fprintln(c.stdout, render.PathData(skeleton, decimals))
		}
		printed = true
		return c.draw(poly, skeleton)
	}()
	if err != nil {
		c.failed++
		if !printed {
			fmt.Fprintln(c.stdout)
		}
		fmt.Fprintf(c.stderr, "%s %s: %v\n", c.au.Red("error:"), c.au.Bold(name), err)
	}
}

func (c *cli) draw(poly centerline.Polygon, skeleton *centerline.Skeleton) error {
	if c.pngPath == "" && !c.imgcat {
		return nil
	}
	path := c.pngPath
	if path == "" {
		f, err := os.CreateTemp("", "centerline-*.png")
		if err != nil {
			return errors.Wrap(err, "create temp file")
		}
		path = f.Name()
		f.Close()
		defer os.Remove(path)
	} else if c.images > 0 {
		// One file per outline after the first: out.png, out-1.png, ...
		ext := filepath.Ext(path)
		path = fmt.Sprintf("%s-%d%s", strings.TrimSuffix(path, ext), c.images, ext)
	}
	c.images++

	opts := render.DrawOptions{Radii: true, Labels: c.labels}
	if err := render.SavePNG(path, poly, skeleton, opts); err != nil {
		return err
	}
	if c.imgcat {
		return render.Imgcat(path, c.stdout)
	}
	return nil
}

func (c *cli) fail(err error) int {
	fmt.Fprintln(c.stderr, c.au.Red("error:"), err)
	return 1
}
