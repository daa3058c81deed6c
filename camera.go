package curveplot

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// === Numeric Helpers =======================================================

// Deg2Rad is a constant for converting from DEG to RAD or vice versa
const Deg2Rad float64 = math.Pi / 180

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// === Camera ================================================================

// Camera is a rigid transform from world space into camera space. Camera
// space has the eye at the origin, looking down the negative z-axis, with y
// pointing up.
//
// Positions are translated before they are rotated, and the translation is
// done in double precision. World coordinates may be huge (astronomical
// units in meters), but the curve parts close to the eye end up with small
// camera space coordinates without loss of precision.
//
// The zero value is the identity camera.
type Camera struct {
	position    r3.Vec
	orientation *r3.Mat // world-to-camera rotation
}

// IdentityCamera is a camera at the world origin, with camera axes equal to
// world axes.
func IdentityCamera() Camera {
	return Camera{orientation: r3.Eye()}
}

// NewCamera creates a camera at position. orientation rotates world
// directions into camera directions. A nil orientation means no rotation.
func NewCamera(position r3.Vec, orientation *r3.Mat) Camera {
	if orientation == nil {
		orientation = r3.Eye()
	}
	return Camera{position: position, orientation: orientation}
}

// LookAt creates a camera at eye, looking at target. up need not be
// perpendicular to the viewing direction, but must not be parallel to it.
func LookAt(eye, target, up r3.Vec) Camera {
	forward := r3.Unit(r3.Sub(target, eye))
	right := r3.Unit(r3.Cross(forward, up))
	if math.IsNaN(right.X) || Is0(r3.Norm(r3.Cross(forward, up))) {
		tracer().Errorf("look-at: up vector %v is parallel to view direction", up)
		return NewCamera(eye, nil)
	}
	upward := r3.Cross(right, forward)
	m := r3.NewMat([]float64{
		right.X, right.Y, right.Z,
		upward.X, upward.Y, upward.Z,
		-forward.X, -forward.Y, -forward.Z,
	})
	return Camera{position: eye, orientation: m}
}

// Position returns the eye position in world space.
func (c Camera) Position() r3.Vec {
	return c.position
}

// Orientation returns a copy of the world-to-camera rotation.
func (c Camera) Orientation() *r3.Mat {
	m := r3.NewMat(nil)
	m.CloneFrom(c.rotation())
	return m
}

// Translated returns a new camera with the eye moved by v (world space).
func (c Camera) Translated(v r3.Vec) Camera {
	return Camera{position: r3.Add(c.position, v), orientation: c.orientation}
}

// Rotated returns a new camera, additionally rotated by rot in camera space.
// The argument is unchanged.
func (c Camera) Rotated(rot r3.Rotation) Camera {
	m := r3.NewMat(nil)
	m.Mul(rot.Mat(), c.rotation())
	return Camera{position: c.position, orientation: m}
}

// Point transforms a world space position into camera space.
func (c Camera) Point(p r3.Vec) r3.Vec {
	return c.rotation().MulVec(r3.Sub(p, c.position))
}

// Direction transforms a world space direction (velocity) into camera
// space. Directions are not translated.
func (c Camera) Direction(v r3.Vec) r3.Vec {
	return c.rotation().MulVec(v)
}

// identity is the orientation of cameras without one. Never modified.
var identity = r3.Eye()

func (c Camera) rotation() *r3.Mat {
	if c.orientation == nil {
		return identity
	}
	return c.orientation
}

// Debug Stringer for a camera.
func (c Camera) String() string {
	m := c.rotation()
	return fmt.Sprintf("eye(%g,%g,%g)[%g,%g,%g|%g,%g,%g|%g,%g,%g]",
		c.position.X, c.position.Y, c.position.Z,
		m.At(0, 0), m.At(0, 1), m.At(0, 2),
		m.At(1, 0), m.At(1, 1), m.At(1, 2),
		m.At(2, 0), m.At(2, 1), m.At(2, 2))
}
