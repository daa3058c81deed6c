package plotcache

import (
	"math"

	"github.com/npillmayer/curveplot"
)

// WindowSlack is the extra time, in periods, sampled beyond either end of
// the time window. It keeps small changes of the current time from
// resampling on every frame.
const WindowSlack = 0.2

// TimeWindow describes the part of a periodic trajectory shown around the
// current time t. With period T the window is
//
//	[ t + (End − PeriodsShown)·T, t + End·T ]
type TimeWindow struct {
	End          float64 // end of the window, in periods after t
	PeriodsShown float64 // length of the window, in periods
}

// DefaultWindow shows one revolution, centered at the current time.
func DefaultWindow() TimeWindow {
	return TimeWindow{End: 0.5, PeriodsShown: 1}
}

// Bounds returns the window limits for time t and the given period.
func (w TimeWindow) Bounds(t, period float64) (start, end float64) {
	end = t + period*w.End
	start = end - period*w.PeriodsShown
	return
}

// UpdateWindow makes the samples of plot cover the time window around t.
// Periodic orbits drift over time because of perturbations, so the plot is
// resampled instead of repeated.
//
// If the window starts before the plot, samples are removed at the end and
// the missing span is sampled and prepended. If the window ends after the
// plot, samples are removed at the front and the missing span is appended.
// The boundary sample of the old plot is replaced by the newly sampled one.
// Plots of aperiodic trajectories and empty plots are left alone.
func UpdateWindow(plot *curveplot.Plot, traj Trajectory, t float64, w TimeWindow) {
	if !traj.Periodic() || plot.Empty() {
		return
	}
	period := traj.Period()
	start, end := w.Bounds(t, period)
	currentStart, currentEnd := plot.StartTime(), plot.EndTime()
	newStart := start - period*WindowSlack
	newEnd := end + period*WindowSlack
	var buf curveplot.SampleBuffer
	if start < currentStart {
		plot.RemoveSamplesAfter(newEnd)
		if !plot.Empty() {
			plot.RemoveSamplesBefore(math.Nextafter(plot.StartTime(), math.Inf(1)))
		}
		traj.SampleRange(newStart, math.Min(currentStart, newEnd), &buf)
		n := buf.InsertBackward(plot)
		tracer().Debugf("window moved back: %d samples prepended, now [%g,%g]", n, plot.StartTime(), plot.EndTime())
	} else if end > currentEnd {
		plot.RemoveSamplesBefore(newStart)
		if !plot.Empty() {
			plot.RemoveSamplesAfter(math.Nextafter(plot.EndTime(), math.Inf(-1)))
		}
		traj.SampleRange(math.Max(currentEnd, newStart), newEnd, &buf)
		n := buf.InsertForward(plot)
		tracer().Debugf("window moved on: %d samples appended, now [%g,%g]", n, plot.StartTime(), plot.EndTime())
	}
}
