package curveplot

import (
	"math"

	"github.com/npillmayer/curveplot/frustum"
	"github.com/npillmayer/curveplot/hermite"
	"gonum.org/v1/gonum/spatial/r3"
)

// Render draws the complete curve. Plots with less than two samples draw
// nothing.
func (plot *Plot) Render(view *View, sink Sink) {
	if len(plot.samples) < 2 {
		return
	}
	r := newRenderer(view, sink)
	r.segments(plot.samples, 0, 0, 0, false)
	r.finish("render")
}

// RenderRange draws the part of the curve between startTime and endTime.
// If the interval does not overlap the time span of the plot, nothing is
// drawn.
//
// The first and the last segment are cut at the interval limits. They
// always go through subdivision, so that the cut ends are placed on the
// curve, not on a chord. Rendering [ta,tb] and [tb,tc] yields strips which
// meet at tb.
func (plot *Plot) RenderRange(view *View, sink Sink, startTime, endTime float64) {
	if len(plot.samples) < 2 || endTime <= startTime ||
		endTime <= plot.StartTime() || startTime >= plot.EndTime() {
		return
	}
	r := newRenderer(view, sink)
	r.segments(plot.samples, plot.FindStartIndex(startTime), startTime, endTime, true)
	r.finish("render range")
}

// renderer carries the per-call state of a render operation.
// Whether a strip is open is not part of it, but handed from call to call
// as a 'restart' flag: restart is true if the next emitted vertex has to
// begin a new strip.
type renderer struct {
	camera    Camera
	frustum   frustum.Frustum
	threshold float64
	maxDepth  int
	exact     bool
	sink      Sink
	stats     *Stats
}

func newRenderer(view *View, sink Sink) *renderer {
	st := view.Stats
	if st == nil {
		st = &Stats{}
	}
	opts := view.Options.sanitized()
	return &renderer{
		camera:    view.Camera,
		frustum:   view.Frustum,
		threshold: opts.Threshold,
		maxDepth:  opts.MaxDepth,
		exact:     opts.ExactBounds,
		sink:      sink,
		stats:     st,
	}
}

// segments walks the segments beginning at samples[start]. For windowed
// rendering, the first segment is cut at startTime and the walk stops after
// the segment containing endTime.
func (r *renderer) segments(samples []Sample, start int, startTime, endTime float64, windowed bool) {
	restart := true
	p0 := r.camera.Point(samples[start].Position)
	v0 := r.camera.Direction(samples[start].Velocity)
	first := windowed
	for i := start + 1; i < len(samples); i++ {
		p1 := r.camera.Point(samples[i].Position)
		v1 := r.camera.Direction(samples[i].Velocity)
		t0, t1 := 0.0, 1.0
		last := false
		dt := samples[i].T - samples[i-1].T
		if windowed {
			if first {
				t0 = clamp01((startTime - samples[i-1].T) / dt)
			}
			if endTime <= samples[i].T {
				last = true
				t1 = (endTime - samples[i-1].T) / dt
			}
		}
		if t0 >= t1 { // window starts exactly at samples[i]
			first = false
			p0, v0 = p1, v1
			continue
		}
		seg := hermite.Fit(p0, v0, p1, v1, dt)
		if first {
			tracer().Debugf("range starts at t=%g in segment %s", t0, hermite.AsString(seg))
		}
		restart = r.segment(restart, seg, p1, t0, t1, samples[i].boundingRadius, first || last)
		if last {
			break
		}
		first = false
		p0, v0 = p1, v1
	}
	if !restart {
		r.endStrip()
	}
}

// segment draws the part [t0,t1] of a single segment. end is the camera
// space position of the sample which ends the segment. A forced segment is
// subdivided regardless of its screen size.
func (r *renderer) segment(restart bool, seg hermite.Coefficients, end r3.Vec,
	t0, t1, radius float64, forced bool) bool {
	//
	r.stats.visit(0)
	if seg.IsLinear() {
		// Straight segments are exact as a chord. Their bounding sphere is
		// far too large, so the chord itself is tested against the frustum.
		a, b := seg.Start(), end
		if t0 > 0 {
			a = seg.At(t0)
		}
		if t1 < 1 {
			b = seg.At(t1)
		}
		if r.frustum.CullSegment(a, b) {
			return r.cull(restart)
		}
		return r.line(restart, a, b)
	}
	p0 := seg.Start()
	if r.frustum.CullSphere(p0, radius) {
		return r.cull(restart)
	}
	minDistance := math.Max(-r.frustum.NearZ(), math.Abs(p0.Z)-radius)
	if forced || radius >= r.threshold*minDistance {
		return r.tessellate(restart, seg, t0, t1, radius, 1)
	}
	return r.line(restart, p0, end)
}

// tessellate splits [t0,t1] into SubdivisionFactor pieces of equal parameter
// length. radius bounds the curve within [t0,t1] around seg(t0).
func (r *renderer) tessellate(restart bool, seg hermite.Coefficients, t0, t1, radius float64, depth int) bool {
	r.stats.visit(depth)
	dt := (t1 - t0) / SubdivisionFactor
	segmentRadius := radius / SubdivisionFactor
	tPrev, lastP := t0, seg.At(t0)
	for i := 1; i <= SubdivisionFactor; i++ {
		t := t0 + dt*float64(i)
		if i == SubdivisionFactor {
			t = t1
		}
		p := seg.At(t)
		if r.exact {
			segmentRadius = seg.Sub(tPrev, t).Controls().HullRadius()
		}
		if r.frustum.CullSphere(lastP, segmentRadius) {
			restart = r.cull(restart)
		} else {
			minDistance := math.Max(-r.frustum.NearZ(), math.Abs(p.Z)-segmentRadius)
			if depth < r.maxDepth && segmentRadius >= r.threshold*minDistance {
				restart = r.tessellate(restart, seg, tPrev, t, segmentRadius, depth+1)
			} else {
				restart = r.line(restart, lastP, p)
			}
		}
		tPrev, lastP = t, p
	}
	return restart
}

// line emits a line from a to b, starting a new strip at a if needed.
func (r *renderer) line(restart bool, a, b r3.Vec) bool {
	if restart {
		r.sink.BeginStrip()
		r.stats.Strips++
		r.vertex(a)
	}
	r.vertex(b)
	return false
}

// cull ends an open strip.
func (r *renderer) cull(restart bool) bool {
	r.stats.Culled++
	if !restart {
		r.endStrip()
	}
	return true
}

func (r *renderer) vertex(p r3.Vec) {
	r.sink.Vertex(narrow(p))
	r.stats.Vertices++
}

func (r *renderer) endStrip() {
	r.sink.EndStrip()
}

func (r *renderer) finish(op string) {
	tracer().Debugf("%s: %v", op, *r.stats)
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
