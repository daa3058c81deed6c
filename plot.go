package curveplot

import (
	"sort"

	"github.com/npillmayer/curveplot/hermite"
	"github.com/npillmayer/schuko/tracing"
	"gonum.org/v1/gonum/spatial/r3"
)

// tracer writes to trace with key 'curveplot'
func tracer() tracing.Trace {
	return tracing.Select("curveplot")
}

// Sample is an observed state of a trajectory.
type Sample struct {
	T        float64 // time
	Position r3.Vec  // position in world (reference frame) coordinates
	Velocity r3.Vec  // velocity, units of position per time

	boundingRadius float64 // bound for the segment ending at this sample
}

// BoundingRadius is an upper bound on the distance of the curve from the
// previous sample, within the segment ending at this sample. It is
// calculated when the sample is inserted into a Plot and is zero for the
// first sample.
func (s Sample) BoundingRadius() float64 {
	return s.boundingRadius
}

// Plot is a time-ordered sequence of curve samples, covering a single
// contiguous window of time.
//
// Plots are created empty and grow by AddSample. They shrink from either
// end by RemoveSamplesBefore and RemoveSamplesAfter.
// Duration and LastUsed are bookkeeping values for the owner of a plot;
// the plot itself never reads them.
type Plot struct {
	samples  []Sample
	duration float64
	lastUsed uint64
}

// NewPlot creates an empty plot.
func NewPlot() *Plot {
	return &Plot{}
}

// AddSample inserts a sample at the front or at the back of the plot.
//
// If the plot is empty or s.T is greater than the last sample time, s is
// appended. If s.T is less than the first sample time, s is prepended.
// Otherwise s falls within the range already covered and is discarded;
// AddSample then returns false.
func (plot *Plot) AddSample(s Sample) bool {
	n := len(plot.samples)
	switch {
	case n == 0 || s.T > plot.samples[n-1].T:
		plot.samples = append(plot.samples, s)
		if n > 0 {
			plot.samples[n].boundingRadius = fitSamples(plot.samples[n-1], plot.samples[n]).BoundingRadius()
		} else {
			plot.samples[0].boundingRadius = 0
		}
	case s.T < plot.samples[0].T:
		plot.samples = append(plot.samples, Sample{})
		copy(plot.samples[1:], plot.samples[:n])
		plot.samples[0] = s
		plot.samples[0].boundingRadius = 0
		plot.samples[1].boundingRadius = fitSamples(plot.samples[0], plot.samples[1]).BoundingRadius()
	default:
		tracer().Debugf("discarding sample at t=%g, inside [%g,%g]", s.T, plot.samples[0].T, plot.samples[n-1].T)
		return false
	}
	return true
}

// Sample adds a trajectory state. It makes a plot usable as the target of
// an orbit sampler.
func (plot *Plot) Sample(t float64, position, velocity r3.Vec) {
	plot.AddSample(Sample{T: t, Position: position, Velocity: velocity})
}

// RemoveSamplesBefore removes samples from the front while their time is
// less than t.
func (plot *Plot) RemoveSamplesBefore(t float64) {
	i := 0
	for i < len(plot.samples) && plot.samples[i].T < t {
		i++
	}
	if i == 0 {
		return
	}
	plot.samples = append(plot.samples[:0], plot.samples[i:]...)
	if len(plot.samples) > 0 {
		plot.samples[0].boundingRadius = 0
	}
}

// RemoveSamplesAfter removes samples from the back while their time is
// greater than t.
func (plot *Plot) RemoveSamplesAfter(t float64) {
	n := len(plot.samples)
	for n > 0 && plot.samples[n-1].T > t {
		n--
	}
	plot.samples = plot.samples[:n]
}

// FindStartIndex returns the index of the sample starting the segment which
// contains t: the sample preceding the first sample with time ≥ t.
// The result is clamped to a valid segment start. For plots with fewer than
// two samples it is 0.
func (plot *Plot) FindStartIndex(t float64) int {
	n := len(plot.samples)
	if n == 0 {
		return 0
	}
	i := sort.Search(n-1, func(k int) bool {
		return plot.samples[k].T >= t
	})
	if i > 0 {
		i--
	}
	return i
}

// Len returns the number of samples.
func (plot *Plot) Len() int {
	return len(plot.samples)
}

// Empty is a predicate: does the plot hold no samples?
func (plot *Plot) Empty() bool {
	return len(plot.samples) == 0
}

// At returns sample i.
func (plot *Plot) At(i int) Sample {
	return plot.samples[i]
}

// StartTime returns the time of the first sample, or 0 for empty plots.
func (plot *Plot) StartTime() float64 {
	if len(plot.samples) == 0 {
		return 0
	}
	return plot.samples[0].T
}

// EndTime returns the time of the last sample, or 0 for empty plots.
func (plot *Plot) EndTime() float64 {
	if len(plot.samples) == 0 {
		return 0
	}
	return plot.samples[len(plot.samples)-1].T
}

func (plot *Plot) Duration() float64 {
	return plot.duration
}

func (plot *Plot) SetDuration(duration float64) {
	plot.duration = duration
}

// LastUsed returns the recency marker set by the owner of the plot,
// usually a frame counter.
func (plot *Plot) LastUsed() uint64 {
	return plot.lastUsed
}

// SetLastUsed sets the recency marker.
func (plot *Plot) SetLastUsed(marker uint64) {
	plot.lastUsed = marker
}

func fitSamples(s0, s1 Sample) hermite.Coefficients {
	return hermite.Fit(s0.Position, s0.Velocity, s1.Position, s1.Velocity, s1.T-s0.T)
}
