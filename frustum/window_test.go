package frustum

import (
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestBuilder(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	w := NullWindow().Knot(0, 0).Knot(1, 3).Knot(3, 0).Cycle()
	tracer().Infof("w = %s", AsString(w))
	if w.N() != 3 {
		t.Fail()
	}
	assert.Panics(t, func() { w.Knot(5, 5) })
}

func TestBox(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	box := Box(0, 5, 4, 1)
	tracer().Infof("box = %s", AsString(box))
	if box.N() != 4 {
		t.Fail()
	}
	lo, hi, ok := box.Bounds()
	require.True(t, ok)
	assert.Equal(t, 0.0, lo.X)
	assert.Equal(t, 1.0, lo.Y)
	assert.Equal(t, 4.0, hi.X)
	assert.Equal(t, 5.0, hi.Y)
}

func TestIntersectWindows(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	view := Box(-1, -1, 1, 1)
	right := view.Intersect(Box(0, -2, 2, 2))
	lo, hi, ok := right.Bounds()
	require.True(t, ok)
	assert.InDelta(t, 0.0, lo.X, 1e-12)
	assert.InDelta(t, -1.0, lo.Y, 1e-12)
	assert.InDelta(t, 1.0, hi.X, 1e-12)
	assert.InDelta(t, 1.0, hi.Y, 1e-12)
}

func TestDisjointWindowIsEmpty(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	empty := Box(-1, -1, 1, 1).Intersect(Box(3, 3, 4, 4))
	_, _, ok := empty.Bounds()
	assert.False(t, ok)
	_, err := FromWindow(empty, 0.1, 10)
	assert.ErrorIs(t, err, ErrEmptyWindow)
	_, err = FromWindow(NullWindow(), 0.1, 10)
	assert.ErrorIs(t, err, ErrEmptyWindow)
}

func TestRestrictedFrustum(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	h := math.Tan(math.Pi / 4)
	full := Box(-h, -h, h, h)
	f, err := FromWindow(full.Intersect(Box(0, -2, 2, 2)), 0.1, 100)
	require.NoError(t, err)
	assert.False(t, f.CullSphere(r3.Vec{X: 5, Z: -10}, 0.5), "right half stays visible")
	assert.True(t, f.CullSphere(r3.Vec{X: -5, Z: -10}, 0.5), "left half is cut away")
}

func TestScissor(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	full, err := PerspectiveWindow(math.Pi/2, 2)
	require.NoError(t, err)
	upperRight := full.Scissor(0, 0, 1.5, 2)
	tracer().Infof("upper right = %s", AsString(upperRight))
	lo, hi, ok := upperRight.Bounds()
	require.True(t, ok)
	assert.InDelta(t, 0.0, lo.X, 1e-12)
	assert.InDelta(t, 0.0, lo.Y, 1e-12)
	assert.InDelta(t, 2.0, hi.X, 1e-12)
	assert.InDelta(t, 1.0, hi.Y, 1e-12)
	// cut to the full window
	lo, hi, ok = full.Scissor(0.5, -3, 3, 3).Bounds()
	require.True(t, ok)
	assert.InDelta(t, 1.0, lo.X, 1e-12)
	assert.InDelta(t, -1.0, lo.Y, 1e-12)
	assert.InDelta(t, 2.0, hi.X, 1e-12)
	assert.InDelta(t, 1.0, hi.Y, 1e-12)
	//
	_, err = FromWindow(full.Scissor(2, 2, 3, 3), 0.1, 10)
	assert.ErrorIs(t, err, ErrEmptyWindow)
	_, _, ok = NullWindow().Scissor(-1, -1, 1, 1).Bounds()
	assert.False(t, ok)
}
