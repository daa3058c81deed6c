package curveplot

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/npillmayer/curveplot/frustum"
	"github.com/npillmayer/schuko"
)

// SubdivisionFactor is the number of sub-segments a segment is split into
// at each level of tessellation. Bounding radii shrink by the same factor
// per level.
const SubdivisionFactor = 8

// Defaults for rendering options.
const (
	DefaultThreshold = 0.01
	DefaultMaxDepth  = 12
)

// pixelThresholdFactor converts a pixel size (the angle covered by one
// pixel) into a subdivision threshold.
const pixelThresholdFactor = 40.0

// Configuration keys for rendering options.
const (
	ConfThreshold   = "curveplot.threshold"
	ConfMaxDepth    = "curveplot.maxdepth"
	ConfExactBounds = "curveplot.exactbounds"
)

// ErrInvalidOption is returned for configuration values which are not
// usable as rendering options.
var ErrInvalidOption = errors.New("invalid rendering option")

// Options control the tessellation of curves.
type Options struct {
	// Threshold is the ratio of bounding radius to eye distance below which
	// a segment is drawn as a straight line. Smaller values give smoother
	// curves.
	Threshold float64
	// MaxDepth limits recursive subdivision.
	MaxDepth int
	// ExactBounds switches sub-segment bounds from radius/SubdivisionFactor
	// to the control hull of the sub-segment. Exact bounds are never larger
	// than needed, but cost more to compute.
	ExactBounds bool
}

// DefaultOptions returns the options used if nothing is configured.
func DefaultOptions() Options {
	return Options{
		Threshold: DefaultThreshold,
		MaxDepth:  DefaultMaxDepth,
	}
}

// ThresholdForPixelSize returns a subdivision threshold suitable for a
// viewport where one pixel covers an angle of pixelSize (radians).
func ThresholdForPixelSize(pixelSize float64) float64 {
	return pixelSize * pixelThresholdFactor
}

// OptionsFromConfig reads rendering options from a configuration. Keys not
// set keep their default values. A nil configuration yields the defaults.
func OptionsFromConfig(conf schuko.Configuration) (Options, error) {
	opts := DefaultOptions()
	if conf == nil {
		return opts, nil
	}
	if conf.IsSet(ConfThreshold) {
		s := strings.TrimSpace(conf.GetString(ConfThreshold))
		th, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return opts, fmt.Errorf("%w: %s = %q", ErrInvalidOption, ConfThreshold, s)
		}
		if th <= 0 {
			return opts, fmt.Errorf("%w: %s must be positive, is %g", ErrInvalidOption, ConfThreshold, th)
		}
		opts.Threshold = th
	}
	if conf.IsSet(ConfMaxDepth) {
		d := conf.GetInt(ConfMaxDepth)
		if d < 1 {
			return opts, fmt.Errorf("%w: %s must be at least 1, is %q", ErrInvalidOption, ConfMaxDepth,
				conf.GetString(ConfMaxDepth))
		}
		opts.MaxDepth = d
	}
	if conf.IsSet(ConfExactBounds) {
		opts.ExactBounds = conf.GetBool(ConfExactBounds)
	}
	tracer().Debugf("rendering options: %+v", opts)
	return opts, nil
}

// View bundles everything a render call needs to know about the observer.
type View struct {
	Camera  Camera
	Frustum frustum.Frustum
	Options
	// Stats, if not nil, is filled by render calls. Counters accumulate
	// over calls until reset.
	Stats *Stats
}

// NewView creates a view. A MaxDepth below 1 or a threshold which is not
// positive is replaced by the default.
func NewView(camera Camera, fr frustum.Frustum, opts Options) *View {
	return &View{Camera: camera, Frustum: fr, Options: opts.sanitized()}
}

// sanitized returns opts with unusable values replaced by defaults. A zero
// threshold would subdivide every segment down to MaxDepth.
func (opts Options) sanitized() Options {
	if opts.MaxDepth < 1 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if !(opts.Threshold > 0) || math.IsInf(opts.Threshold, 1) {
		opts.Threshold = DefaultThreshold
	}
	return opts
}

// Stats counts the work done by rendering.
type Stats struct {
	Segments []int // segments visited, per subdivision depth
	Culled   int   // segments or sub-segments rejected by the frustum test
	Vertices int   // vertices emitted
	Strips   int   // strips emitted
}

// Reset clears all counters.
func (st *Stats) Reset() {
	*st = Stats{Segments: st.Segments[:0]}
}

func (st *Stats) visit(depth int) {
	for len(st.Segments) <= depth {
		st.Segments = append(st.Segments, 0)
	}
	st.Segments[depth]++
}

func (st Stats) String() string {
	return fmt.Sprintf("segments=%v culled=%d vertices=%d strips=%d",
		st.Segments, st.Culled, st.Vertices, st.Strips)
}
