package main

import (
	"flag"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/curveplot"
	"github.com/npillmayer/curveplot/frustum"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s, err := parseFlags([]string{"-i", "90", "-maxdepth", "5", "-exact", "-threshold", "0.05"}, io.Discard)
	require.NoError(t, err)
	assert.InDelta(t, 90*curveplot.Deg2Rad, s.elements.Inclination, 1e-12)
	assert.InDelta(t, defaultFov*curveplot.Deg2Rad, s.fovY, 1e-12)
	assert.True(t, s.conf.IsSet(curveplot.ConfThreshold))
	opts, err := curveplot.OptionsFromConfig(s.conf)
	require.NoError(t, err)
	assert.Equal(t, curveplot.Options{Threshold: 0.05, MaxDepth: 5, ExactBounds: true}, opts)
}

func TestParseFlagsErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := parseFlags([]string{"-h"}, io.Discard)
	assert.ErrorIs(t, err, flag.ErrHelp)
	_, err = parseFlags([]string{"-width", "8"}, io.Discard)
	assert.Error(t, err)
	_, err = parseFlags([]string{"-nosuchflag"}, io.Discard)
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	dir := t.TempDir()
	out := filepath.Join(dir, "orbit.png")
	chart := filepath.Join(dir, "depth.png")
	s, err := parseFlags([]string{"-o", out, "-stats", chart, "-width", "160", "-height", "120"}, io.Discard)
	require.NoError(t, err)
	require.NoError(t, run(s))
	//
	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 160, img.Bounds().Dx())
	assert.Equal(t, 120, img.Bounds().Dy())
	info, err := os.Stat(chart)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRunViewport(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	out := filepath.Join(t.TempDir(), "right.png")
	s, err := parseFlags([]string{"-o", out, "-width", "160", "-height", "120",
		"-viewport", "-0.2,-1.5,1.5,0.8"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, []float64{-0.2, -1.5, 1.5, 0.8}, s.viewport)
	require.NoError(t, run(s))
	_, err = os.Stat(out)
	require.NoError(t, err)
	//
	s, err = parseFlags([]string{"-o", out, "-viewport", "1.5,1.5,2,2"}, io.Discard)
	require.NoError(t, err)
	assert.ErrorIs(t, run(s), frustum.ErrEmptyWindow, "viewport outside the image")
	for _, arg := range []string{"1,2,3", "a,b,c,d", "0,0,0,1"} {
		_, err = parseFlags([]string{"-viewport", arg}, io.Discard)
		assert.Error(t, err, arg)
	}
}

func TestRunInvalidOrbit(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s, err := parseFlags([]string{"-e", "1.5", "-o", filepath.Join(t.TempDir(), "x.png")}, io.Discard)
	require.NoError(t, err)
	assert.ErrorIs(t, run(s), ErrInvalidOrbit)
}
