/*
Package curveplot renders continuous space curves, like orbital trajectories,
as line strips which are accurate on screen, across an enormous dynamic range
of scale.

A Plot is a time-ordered store of curve samples (time, position, velocity).
It grows at either end as new trajectory states become known and shrinks at
either end to implement a sliding time window. Rendering a plot converts the
samples to camera space in double precision, fits a cubic Hermite segment
between each pair of adjacent samples, and subdivides every segment
adaptively, until a segment's bounding sphere is small compared to its
distance from the eye. Segments outside the view frustum are culled on the
way. Vertices are narrowed to float32 only when they are handed to the Sink.

	plot := curveplot.NewPlot()
	for _, s := range samples {
	    plot.AddSample(s)
	}
	fr, _ := frustum.Perspective(fovY, aspect, near, far)
	view := curveplot.NewView(curveplot.LookAt(eye, target, up), fr, curveplot.DefaultOptions())
	plot.Render(view, sink)                    // whole curve
	plot.RenderRange(view, sink, t-tail, t)    // trailing window only

Tessellation is not cached; every render call starts from the current
samples and the current camera. Plots are not safe for concurrent use, but
distinct plots share no state.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package curveplot
