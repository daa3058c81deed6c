package frustum

import (
	"math"
	"math/rand"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func mustPerspective(t *testing.T, fovY, aspect, near, far float64) Frustum {
	t.Helper()
	f, err := Perspective(fovY, aspect, near, far)
	require.NoError(t, err)
	return f
}

func TestPerspectiveNormals(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f := mustPerspective(t, math.Pi/2, 1, 0.1, 1000)
	assert.Equal(t, -0.1, f.NearZ())
	assert.Equal(t, -1000.0, f.FarZ())
	axis := r3.Vec{Z: -1}
	for i, n := range f.Normals() {
		assert.InDelta(t, 1.0, r3.Norm(n), 1e-12, "normal %d", i)
		assert.Greater(t, r3.Dot(n, axis), 0.0, "normal %d must face inward", i)
		// 90° field of view: every side plane is tilted by 45°
		assert.InDelta(t, math.Sqrt2/2, r3.Dot(n, axis), 1e-12, "normal %d", i)
	}
}

func TestPerspectiveErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := Perspective(0, 1, 0.1, 10)
	assert.ErrorIs(t, err, ErrInvalidFieldOfView)
	_, err = Perspective(math.Pi, 1, 0.1, 10)
	assert.ErrorIs(t, err, ErrInvalidFieldOfView)
	_, err = Perspective(1, 0, 0.1, 10)
	assert.ErrorIs(t, err, ErrInvalidFieldOfView)
	_, err = Perspective(1, 1, 0, 10)
	assert.ErrorIs(t, err, ErrInvalidDepthRange)
	_, err = Perspective(1, 1, 10, 1)
	assert.ErrorIs(t, err, ErrInvalidDepthRange)
}

// Spheres containing a point inside the frustum must never be culled.
func TestCullSphereNeverRejectsVisible(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	fovY, aspect := math.Pi/3, 1.5
	f := mustPerspective(t, fovY, aspect, 0.1, 100)
	h := math.Tan(fovY / 2)
	w := h * aspect
	rnd := rand.New(rand.NewSource(4711))
	for k := 0; k < 2000; k++ {
		z := -0.1 - rnd.Float64()*99.9
		q := r3.Vec{
			X: (2*rnd.Float64() - 1) * w * -z,
			Y: (2*rnd.Float64() - 1) * h * -z,
			Z: z,
		}
		radius := rnd.Float64() * 5
		dir := r3.Unit(r3.Vec{X: rnd.NormFloat64(), Y: rnd.NormFloat64(), Z: rnd.NormFloat64()})
		center := r3.Add(q, r3.Scale(0.99*radius, dir))
		if !assert.False(t, f.CullSphere(center, radius), "sphere at %v r=%g contains %v", center, radius, q) {
			break
		}
	}
}

func TestCullSphereRejectsExterior(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f := mustPerspective(t, math.Pi/2, 1, 0.1, 1000)
	assert.False(t, f.CullSphere(r3.Vec{Z: -10}, 1), "on axis")
	assert.True(t, f.CullSphere(r3.Vec{Z: -2000}, 10), "beyond far plane")
	assert.True(t, f.CullSphere(r3.Vec{Z: 5}, 1), "behind the eye")
	assert.True(t, f.CullSphere(r3.Vec{X: -30, Z: -10}, 1), "left of the view")
	assert.True(t, f.CullSphere(r3.Vec{Y: 30, Z: -10}, 1), "above the view")
	assert.False(t, f.CullSphere(r3.Vec{X: -30, Z: -10}, 20), "large sphere reaching in")
}

func TestCullSegment(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f := mustPerspective(t, math.Pi/2, 1, 0.1, 1000)
	assert.False(t, f.CullSegment(r3.Vec{Z: -10}, r3.Vec{X: 1, Z: -10}))
	assert.True(t, f.CullSegment(r3.Vec{}, r3.Vec{X: 1}), "in front of near plane")
	assert.True(t, f.CullSegment(r3.Vec{Z: -2000}, r3.Vec{X: 1, Z: -1500}), "beyond far plane")
	assert.True(t, f.CullSegment(r3.Vec{X: -30, Z: -10}, r3.Vec{X: -20, Z: -10}))
	// crossing the whole view from left to right
	assert.False(t, f.CullSegment(r3.Vec{X: -30, Z: -10}, r3.Vec{X: 30, Z: -10}))
}

func TestShallowFrustum(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f := New(-0.1, -0.5, mustPerspective(t, math.Pi/2, 1, 0.1, 0.5).Normals())
	assert.True(t, f.CullSegment(r3.Vec{}, r3.Vec{X: 1}), "in front of near plane")
	assert.False(t, f.CullSphere(r3.Vec{Z: -0.3}, 0))
	assert.True(t, f.CullSegment(r3.Vec{Z: -10}, r3.Vec{X: 1, Z: -10}), "beyond far plane")
	assert.False(t, f.CullSegment(r3.Vec{Z: -10}, r3.Vec{Z: -0.3}), "reaching into the frustum")
	assert.True(t, f.CullSphere(r3.Vec{Z: -10}, 1))
}
