// Command orbitplot renders a Keplerian orbit into a PNG image.
//
// The whole orbit is drawn dimmed, the part the body travelled during the
// last tail periods is drawn bright.
//
// Usage:
//
//	orbitplot -o orbit.png
//	orbitplot -e 0.9 -i 30 -tail 0.25 -o comet.png
//	orbitplot -distance 1.2 -threshold 0.001 -stats depth.png -o close.png
//	orbitplot -viewport 0,-2,2,2 -o right.png
//
// A viewport, given as x0,y0,x1,y1 in [−1,1] image coordinates (y up),
// restricts culling to that part of the image.
//
// Rendering options are read from a NestedText configuration file located
// by application tag "orbitplot" (keys curveplot.threshold,
// curveplot.maxdepth, curveplot.exactbounds); flags override the file.
// Without a configured threshold, the threshold follows from the pixel size.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/curveplot"
	"github.com/npillmayer/curveplot/frustum"
	"github.com/npillmayer/curveplot/plotcache"
	"github.com/npillmayer/curveplot/sink"
	"github.com/npillmayer/curveplot/sink/raster"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/schukonf/koanfadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	appTag           = "orbitplot"
	defaultWidth     = 800
	defaultHeight    = 600
	defaultFov       = 45.0 // degrees
	defaultSamples   = 64   // per period
	defaultTail      = 0.3  // periods
	defaultDistance  = 3.0  // semi-major axes
	nearPlaneFactor  = 1e-4
	farPlaneFactor   = 1e3
	tailLineWidth    = 2.0
	minRequiredWidth = 16
)

// tracer writes to trace with key 'orbitplot'
func tracer() tracing.Trace {
	return tracing.Select("orbitplot")
}

type settings struct {
	out        string
	statsOut   string
	width      int
	height     int
	fovY       float64 // radians
	elements   Elements
	samples    int
	t          float64
	tail       float64 // periods
	distance   float64 // semi-major axes
	traceLevel string
	viewport   []float64 // x0,y0,x1,y1 or nil
	conf       schuko.Configuration
}

func main() {
	s, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}
	setupTracing(s.conf, s.traceLevel)
	if err := run(s); err != nil {
		log.Fatal(err)
	}
}

// parseFlags reads the command line. Rendering flags which are given
// explicitly are written into the configuration.
func parseFlags(args []string, errOut io.Writer) (*settings, error) {
	fs := flag.NewFlagSet(appTag, flag.ContinueOnError)
	fs.SetOutput(errOut)
	s := &settings{}
	var inclination, node, periapsis, fov float64
	fs.StringVar(&s.out, "o", "orbit.png", "Output PNG file")
	fs.StringVar(&s.statsOut, "stats", "", "Write a chart of subdivision depths to this PNG file")
	fs.IntVar(&s.width, "width", defaultWidth, "Image width in pixels")
	fs.IntVar(&s.height, "height", defaultHeight, "Image height in pixels")
	fs.Float64Var(&fov, "fov", defaultFov, "Vertical field of view in degrees")
	fs.Float64Var(&s.elements.SemiMajorAxis, "a", 1.495978707e11, "Semi-major axis")
	fs.Float64Var(&s.elements.Eccentricity, "e", 0.5, "Eccentricity")
	fs.Float64Var(&inclination, "i", 10, "Inclination in degrees")
	fs.Float64Var(&node, "node", 0, "Longitude of ascending node in degrees")
	fs.Float64Var(&periapsis, "periapsis", 0, "Argument of periapsis in degrees")
	fs.Float64Var(&s.elements.Period, "period", 365.25, "Orbital period")
	fs.IntVar(&s.samples, "samples", defaultSamples, "Samples per period")
	fs.Float64Var(&s.t, "t", 0, "Current time")
	fs.Float64Var(&s.tail, "tail", defaultTail, "Length of the bright tail in periods")
	fs.Float64Var(&s.distance, "distance", defaultDistance, "Eye distance from the focus in semi-major axes")
	fs.StringVar(&s.traceLevel, "trace", "Error", "Trace level: Debug, Info or Error")
	threshold := fs.Float64("threshold", curveplot.DefaultThreshold, "Subdivision threshold")
	maxDepth := fs.Int("maxdepth", curveplot.DefaultMaxDepth, "Maximum subdivision depth")
	exact := fs.Bool("exact", false, "Use exact sub-segment bounds")
	viewport := fs.String("viewport", "", "Restrict culling to x0,y0,x1,y1 in [-1,1] image coordinates")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *viewport != "" {
		vp, err := parseViewport(*viewport)
		if err != nil {
			return nil, err
		}
		s.viewport = vp
	}
	if s.width < minRequiredWidth || s.height < minRequiredWidth {
		return nil, fmt.Errorf("image size %d×%d too small", s.width, s.height)
	}
	s.fovY = fov * curveplot.Deg2Rad
	s.elements.Inclination = inclination * curveplot.Deg2Rad
	s.elements.AscendingNode = node * curveplot.Deg2Rad
	s.elements.ArgPeriapsis = periapsis * curveplot.Deg2Rad
	//
	conf := koanfadapter.New(nil, appTag, []string{".nt"})
	conf.InitDefaults()
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "threshold":
			conf.Set(curveplot.ConfThreshold, fmt.Sprintf("%g", *threshold))
		case "maxdepth":
			conf.Set(curveplot.ConfMaxDepth, *maxDepth)
		case "exact":
			conf.Set(curveplot.ConfExactBounds, *exact)
		}
	})
	s.conf = conf
	return s, nil
}

// parseViewport reads "x0,y0,x1,y1".
func parseViewport(arg string) ([]float64, error) {
	fields := strings.Split(arg, ",")
	if len(fields) != 4 {
		return nil, fmt.Errorf("viewport %q: need x0,y0,x1,y1", arg)
	}
	vp := make([]float64, 4)
	for i, f := range fields {
		x, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("viewport %q: %w", arg, err)
		}
		vp[i] = x
	}
	if vp[0] >= vp[2] || vp[1] >= vp[3] {
		return nil, fmt.Errorf("viewport %q is empty", arg)
	}
	return vp, nil
}

// setupTracing installs the tracing adapter named in the configuration.
func setupTracing(conf schuko.Configuration, level string) {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	adapter := tracing.GetAdapterFromConfiguration(conf, "tracing.adapter")
	tracing.SetTraceSelector(tracing.SelectorForAdapter(adapter))
	tracing.Select(appTag).SetTraceLevel(tracing.TraceLevelFromString(level))
}

// run samples the orbit and renders it.
func run(s *settings) error {
	orbit, err := NewKeplerOrbit(s.elements, s.samples)
	if err != nil {
		return err
	}
	canvas := raster.New(s.width, s.height, s.fovY)
	defer canvas.Close()
	view, err := makeView(s, canvas)
	if err != nil {
		return err
	}
	view.Stats = &curveplot.Stats{}
	buffer := sink.NewStripBuffer(sink.DefaultCapacity, replay(canvas))
	//
	conf := plotcache.DefaultConfig()
	conf.Window = plotcache.TimeWindow{End: 0, PeriodsShown: s.tail}
	cache := plotcache.New[string](conf)
	plot := cache.Plot(appTag, orbit, s.t, 1)
	canvas.SetRGB(0.25, 0.3, 0.45)
	plot.Render(view, buffer)
	buffer.Flush()
	canvas.SetRGB(0.4, 0.8, 1)
	canvas.SetLineWidth(tailLineWidth)
	cache.Render(appTag, orbit, s.t, 1, view, buffer)
	buffer.Flush()
	tracer().Infof("%d samples, %v, %d batches", plot.Len(), view.Stats, buffer.Batches())
	if err := canvas.Err(); err != nil {
		return err
	}
	if err := canvas.SavePNG(s.out); err != nil {
		return fmt.Errorf("writing %s: %w", s.out, err)
	}
	if s.statsOut != "" {
		if err := saveDepthChart(*view.Stats, s.statsOut); err != nil {
			return fmt.Errorf("writing %s: %w", s.statsOut, err)
		}
	}
	return nil
}

// makeView places the eye above the orbital plane, looking at the focus.
func makeView(s *settings, canvas *raster.Canvas) (*curveplot.View, error) {
	a := s.elements.SemiMajorAxis
	d := a * s.distance
	eye := r3.Vec{X: 0, Y: -d * math.Cos(math.Pi/6), Z: d * math.Sin(math.Pi/6)}
	camera := curveplot.LookAt(eye, r3.Vec{}, r3.Vec{Z: 1})
	aspect := float64(s.width) / float64(s.height)
	window, err := frustum.PerspectiveWindow(s.fovY, aspect)
	if err != nil {
		return nil, err
	}
	if s.viewport != nil {
		window = window.Scissor(s.viewport[0], s.viewport[1], s.viewport[2], s.viewport[3])
		tracer().Debugf("viewport window %s", frustum.AsString(window))
	}
	fr, err := frustum.FromWindow(window, a*nearPlaneFactor, d*farPlaneFactor)
	if err != nil {
		return nil, err
	}
	thresholdSet := s.conf.IsSet(curveplot.ConfThreshold)
	opts, err := curveplot.OptionsFromConfig(s.conf)
	if err != nil {
		return nil, err
	}
	if !thresholdSet {
		opts.Threshold = curveplot.ThresholdForPixelSize(canvas.PixelSize())
	}
	tracer().Debugf("camera %v, options %+v", camera, opts)
	return curveplot.NewView(camera, fr, opts), nil
}

// replay draws batches of a strip buffer onto the canvas.
func replay(canvas *raster.Canvas) sink.DrawFunc {
	return func(vertices []curveplot.Vertex, lengths []int) {
		i := 0
		for _, n := range lengths {
			canvas.BeginStrip()
			for _, v := range vertices[i : i+n] {
				canvas.Vertex(v)
			}
			canvas.EndStrip()
			i += n
		}
	}
}
