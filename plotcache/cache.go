/*
Package plotcache owns the plots of a scene. Plots are looked up by a key
identifying a trajectory, created by sampling the trajectory on a miss, and
retired when they have not been used for a while.

Time is measured in frames. Every lookup marks the plot as used in the
current frame. When the cache grows beyond a size threshold, plots unused for
more than a number of frames are evicted, at most once per frame.

For periodic trajectories the cache maintains a sliding window of samples
around the current time, see UpdateWindow.

	cache := plotcache.New[string](plotcache.DefaultConfig())
	for frame := uint64(1); ; frame++ {
	    t := clock.Now()
	    for name, orbit := range orbits {
	        cache.Render(name, orbit, t, frame, view, sink)
	    }
	}

Caches are not safe for concurrent use.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package plotcache

import (
	"github.com/npillmayer/curveplot"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'plotcache'
func tracer() tracing.Trace {
	return tracing.Select("plotcache")
}

// Defaults for cache configuration.
const (
	DefaultCullThreshold = 200 // cache size at which old plots are evicted
	DefaultRetireAge     = 16  // frames a plot may stay unused before eviction
)

// Trajectory is a curve which can be sampled.
type Trajectory interface {
	// SampleRange feeds states covering [start,end] to s, in ascending time
	// order. The first state is at start, the last one at end.
	SampleRange(start, end float64, s curveplot.Sampler)
	// Periodic is a predicate: does the trajectory repeat itself?
	Periodic() bool
	// Period is the orbital period, or the length of the valid range for
	// aperiodic trajectories.
	Period() float64
	// ValidRange returns the time span a trajectory is defined for.
	// begin == end means unlimited.
	ValidRange() (begin, end float64)
}

// Config holds the parameters of a cache.
type Config struct {
	CullThreshold int
	RetireAge     uint64
	Window        TimeWindow
	// PartialTrajectories restricts aperiodic trajectories to the part
	// before the current time.
	PartialTrajectories bool
}

// DefaultConfig returns the configuration used by the renderer.
func DefaultConfig() Config {
	return Config{
		CullThreshold: DefaultCullThreshold,
		RetireAge:     DefaultRetireAge,
		Window:        DefaultWindow(),
	}
}

// Cache maps trajectory keys to plots.
type Cache[K comparable] struct {
	conf      Config
	plots     map[K]*curveplot.Plot
	lastFlush uint64
}

// New creates an empty cache.
func New[K comparable](conf Config) *Cache[K] {
	if conf.CullThreshold < 1 {
		conf.CullThreshold = DefaultCullThreshold
	}
	return &Cache[K]{
		conf:  conf,
		plots: make(map[K]*curveplot.Plot),
	}
}

// Plot returns the plot for key, marking it used in frame. If key is not
// cached yet, the trajectory is sampled: one period back from t for
// periodic trajectories, the valid range otherwise.
func (c *Cache[K]) Plot(key K, traj Trajectory, t float64, frame uint64) *curveplot.Plot {
	if plot, ok := c.plots[key]; ok {
		plot.SetLastUsed(frame)
		return plot
	}
	start := t
	if traj.Periodic() {
		start = t - traj.Period()
	} else if begin, end := traj.ValidRange(); begin != end {
		start = begin
	}
	plot := curveplot.NewPlot()
	plot.SetLastUsed(frame)
	plot.SetDuration(traj.Period())
	var buf curveplot.SampleBuffer
	traj.SampleRange(start, start+traj.Period(), &buf)
	buf.InsertForward(plot)
	tracer().Debugf("cache miss for %v: %d samples in [%g,%g]", key, plot.Len(), plot.StartTime(), plot.EndTime())
	if len(c.plots) > c.conf.CullThreshold {
		c.retire(frame)
	}
	c.plots[key] = plot
	return plot
}

// retire evicts plots not used for more than the retire age. It does its
// work at most once per frame.
func (c *Cache[K]) retire(frame uint64) {
	if c.lastFlush == frame {
		return
	}
	c.lastFlush = frame
	n := len(c.plots)
	for key, plot := range c.plots {
		if frame > plot.LastUsed() && frame-plot.LastUsed() > c.conf.RetireAge {
			delete(c.plots, key)
		}
	}
	tracer().Debugf("retired %d of %d plots in frame %d", n-len(c.plots), n, frame)
}

// Render draws the trajectory for key as seen at time t. Periodic
// trajectories are drawn within the configured time window, which is kept
// sampled as t advances. Aperiodic trajectories are drawn completely, or up
// to t for partial trajectories.
func (c *Cache[K]) Render(key K, traj Trajectory, t float64, frame uint64,
	view *curveplot.View, sink curveplot.Sink) {
	//
	plot := c.Plot(key, traj, t, frame)
	if plot.Empty() {
		return
	}
	switch {
	case traj.Periodic():
		UpdateWindow(plot, traj, t, c.conf.Window)
		start, end := c.conf.Window.Bounds(t, traj.Period())
		plot.RenderRange(view, sink, start, end)
	case c.conf.PartialTrajectories:
		plot.RenderRange(view, sink, plot.StartTime(), t)
	default:
		plot.Render(view, sink)
	}
}

// Len returns the number of cached plots.
func (c *Cache[K]) Len() int {
	return len(c.plots)
}

// Remove drops the plot for key, if any.
func (c *Cache[K]) Remove(key K) {
	delete(c.plots, key)
}

// Invalidate drops all plots, e.g. after trajectories have changed.
func (c *Cache[K]) Invalidate() {
	c.plots = make(map[K]*curveplot.Plot)
}
