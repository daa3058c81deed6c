/*
Package raster draws rendered curves into an image, using a perspective
projection onto a gg drawing context.

	canvas := raster.New(800, 600, fovY)
	canvas.SetRGB(0.2, 0.6, 1)
	plot.Render(view, canvas)
	canvas.SavePNG("orbit.png")

Vertices at or behind the eye cannot be projected. They break the current
strip, the rest of the strip continues as a new sub-path.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package raster

import (
	"image"
	"math"

	"github.com/gogpu/gg"
	"github.com/npillmayer/curveplot"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'sink'
func tracer() tracing.Trace {
	return tracing.Select("sink")
}

// minDepth is the smallest distance in front of the eye a vertex may have
// to be projected.
const minDepth = 1e-6

// Canvas is a sink which strokes every strip onto a gg context.
type Canvas struct {
	dc      *gg.Context
	focal   float64 // focal length in pixels
	cx, cy  float64 // image center
	pending bool    // next vertex starts a sub-path
	drawn   int     // number of line pieces in current path
	err     error
}

var _ curveplot.Sink = (*Canvas)(nil)

// New creates a canvas of width × height pixels, for a camera with a
// vertical field of view of fovY radians.
func New(width, height int, fovY float64) *Canvas {
	dc := gg.NewContext(width, height)
	dc.ClearWithColor(gg.Black)
	dc.SetRGB(1, 1, 1)
	dc.SetLineWidth(1)
	return &Canvas{
		dc:    dc,
		focal: float64(height) / 2 / math.Tan(fovY/2),
		cx:    float64(width) / 2,
		cy:    float64(height) / 2,
	}
}

// PixelSize returns the angle covered by a single pixel at the center of
// the canvas. Use it with curveplot.ThresholdForPixelSize.
func (c *Canvas) PixelSize() float64 {
	return 1 / c.focal
}

// Project maps a camera space vertex to pixel coordinates. ok is false for
// vertices which are not in front of the eye.
func (c *Canvas) Project(v curveplot.Vertex) (x, y float64, ok bool) {
	z := -float64(v[2])
	if z < minDepth {
		return 0, 0, false
	}
	x = c.cx + c.focal*float64(v[0])/z
	y = c.cy - c.focal*float64(v[1])/z
	return x, y, true
}

// SetRGB sets the stroke color for subsequent strips.
func (c *Canvas) SetRGB(r, g, b float64) {
	c.dc.SetRGB(r, g, b)
}

// SetLineWidth sets the stroke width for subsequent strips.
func (c *Canvas) SetLineWidth(w float64) {
	c.dc.SetLineWidth(w)
}

// BeginStrip is part of interface curveplot.Sink.
func (c *Canvas) BeginStrip() {
	c.pending = true
	c.drawn = 0
	c.dc.ClearPath()
}

// Vertex is part of interface curveplot.Sink.
func (c *Canvas) Vertex(v curveplot.Vertex) {
	x, y, ok := c.Project(v)
	if !ok {
		c.pending = true
		return
	}
	if c.pending {
		c.dc.MoveTo(x, y)
		c.pending = false
		return
	}
	c.dc.LineTo(x, y)
	c.drawn++
}

// EndStrip is part of interface curveplot.Sink.
func (c *Canvas) EndStrip() {
	if c.drawn == 0 {
		c.dc.ClearPath()
		return
	}
	if err := c.dc.Stroke(); err != nil && c.err == nil {
		tracer().Errorf("canvas: stroke failed: %v", err)
		c.err = err
	}
	c.drawn = 0
}

// Err returns the first drawing error, or nil.
func (c *Canvas) Err() error {
	return c.err
}

// Image returns the canvas contents.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// SavePNG writes the canvas to a PNG file.
func (c *Canvas) SavePNG(path string) error {
	return c.dc.SavePNG(path)
}

// Close releases the drawing context.
func (c *Canvas) Close() error {
	return c.dc.Close()
}
