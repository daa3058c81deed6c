package raster

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/npillmayer/curveplot"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := New(100, 100, math.Pi/2)
	defer c.Close()
	x, y, ok := c.Project(curveplot.Vertex{0, 0, -5})
	require.True(t, ok)
	assert.InDelta(t, 50.0, x, 1e-9)
	assert.InDelta(t, 50.0, y, 1e-9)
	x, y, ok = c.Project(curveplot.Vertex{1, 1, -1})
	require.True(t, ok)
	assert.InDelta(t, 100.0, x, 1e-4)
	assert.InDelta(t, 0.0, y, 1e-4, "y axis points down in images")
	_, _, ok = c.Project(curveplot.Vertex{0, 0, 1})
	assert.False(t, ok, "behind the eye")
	assert.InDelta(t, 0.02, c.PixelSize(), 1e-9)
}

func TestStrokeStrip(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := New(100, 100, math.Pi/2)
	defer c.Close()
	c.SetRGB(1, 0, 0)
	c.SetLineWidth(3)
	c.BeginStrip()
	c.Vertex(curveplot.Vertex{-0.8, 0, -1})
	c.Vertex(curveplot.Vertex{0.8, 0, -1})
	c.EndStrip()
	require.NoError(t, c.Err())
	img := c.Image()
	r, _, _, _ := img.At(50, 50).RGBA()
	assert.Greater(t, r, uint32(0x8000), "pixel on the line is red")
	r, _, _, _ = img.At(50, 10).RGBA()
	assert.Equal(t, uint32(0), r, "pixel off the line stays black")
	assert.NoError(t, c.SavePNG(filepath.Join(t.TempDir(), "strip.png")))
}

func TestStripBehindEye(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := New(100, 100, math.Pi/2)
	defer c.Close()
	c.BeginStrip()
	c.Vertex(curveplot.Vertex{0, 0, 1})
	c.Vertex(curveplot.Vertex{1, 0, 1})
	c.EndStrip()
	assert.NoError(t, c.Err())
	assert.Equal(t, 0, c.drawn)
}
