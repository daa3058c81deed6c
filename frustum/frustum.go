/*
Package frustum implements double-precision view frusta for culling
bounding spheres in camera space.

Camera space looks down the negative z-axis. A frustum is bounded by the
planes z = nearZ and z = farZ (both negative, farZ < nearZ) and by four side
planes through the eye, given by their inward-facing normals.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package frustum

import (
	"errors"
	"math"

	"github.com/npillmayer/schuko/tracing"
	"gonum.org/v1/gonum/spatial/r3"
)

// tracer writes to trace with key 'frustum'
func tracer() tracing.Trace {
	return tracing.Select("frustum")
}

var (
	// ErrInvalidDepthRange indicates near/far distances not satisfying 0 < near < far.
	ErrInvalidDepthRange = errors.New("frustum needs 0 < near < far")
	// ErrInvalidFieldOfView indicates a field of view outside (0,π) or a non-positive aspect.
	ErrInvalidFieldOfView = errors.New("invalid field of view")
	// ErrEmptyWindow indicates a window without area.
	ErrEmptyWindow = errors.New("view window is empty")
)

// Frustum is a view volume in camera space.
type Frustum struct {
	nearZ   float64
	farZ    float64
	normals [4]r3.Vec
}

// New creates a frustum from near and far plane z-coordinates and the
// inward-facing normals of the four side planes. Normals are used as given;
// they need not be of unit length, but culling distances are measured in
// multiples of their length.
func New(nearZ, farZ float64, normals [4]r3.Vec) Frustum {
	return Frustum{
		nearZ:   nearZ,
		farZ:    farZ,
		normals: normals,
	}
}

// NearZ is the z-coordinate of the near plane (negative).
func (f Frustum) NearZ() float64 {
	return f.nearZ
}

// FarZ is the z-coordinate of the far plane (negative).
func (f Frustum) FarZ() float64 {
	return f.farZ
}

func (f Frustum) Normals() [4]r3.Vec {
	return f.normals
}

// CullSphere is a predicate: does the sphere lie completely outside the
// frustum? The test is conservative. Spheres near a frustum corner may be
// reported visible although they are not, but a sphere intersecting the
// frustum is never culled.
func (f Frustum) CullSphere(center r3.Vec, radius float64) bool {
	return center.Z-radius > f.nearZ ||
		center.Z+radius < f.farZ ||
		r3.Dot(center, f.normals[0]) < -radius ||
		r3.Dot(center, f.normals[1]) < -radius ||
		r3.Dot(center, f.normals[2]) < -radius ||
		r3.Dot(center, f.normals[3]) < -radius
}

// CullSegment is a predicate: do both ends of the straight segment a–b lie
// outside the same bounding plane? The segment is then completely invisible.
func (f Frustum) CullSegment(a, b r3.Vec) bool {
	if a.Z > f.nearZ && b.Z > f.nearZ {
		return true
	}
	if a.Z < f.farZ && b.Z < f.farZ {
		return true
	}
	for _, n := range f.normals {
		if r3.Dot(a, n) < 0 && r3.Dot(b, n) < 0 {
			return true
		}
	}
	return false
}

// Perspective creates a symmetric perspective frustum. fovY is the vertical
// field of view in radians, aspect is width/height, and near and far are
// (positive) distances from the eye.
func Perspective(fovY, aspect, near, far float64) (Frustum, error) {
	window, err := PerspectiveWindow(fovY, aspect)
	if err != nil {
		return Frustum{}, err
	}
	return FromWindow(window, near, far)
}

// PerspectiveWindow returns the view window of a symmetric perspective
// projection, to be restricted with Scissor or Intersect before creating
// a frustum from it.
func PerspectiveWindow(fovY, aspect float64) (*Window, error) {
	if fovY <= 0 || fovY >= math.Pi || aspect <= 0 || math.IsNaN(fovY) || math.IsNaN(aspect) {
		return nil, ErrInvalidFieldOfView
	}
	h := math.Tan(fovY / 2)
	w := h * aspect
	return Box(-w, -h, w, h), nil
}

// FromWindow creates a frustum from a view window in the plane z = −1.
// The side planes are derived from the corners of the window's bounding
// box, so non-rectangular windows get a frustum enclosing them.
func FromWindow(window *Window, near, far float64) (Frustum, error) {
	if near <= 0 || far <= near {
		return Frustum{}, ErrInvalidDepthRange
	}
	lo, hi, ok := window.Bounds()
	if !ok || hi.X <= lo.X || hi.Y <= lo.Y {
		return Frustum{}, ErrEmptyWindow
	}
	corners := [4]r3.Vec{
		{X: lo.X, Y: lo.Y, Z: -1},
		{X: hi.X, Y: lo.Y, Z: -1},
		{X: hi.X, Y: hi.Y, Z: -1},
		{X: lo.X, Y: hi.Y, Z: -1},
	}
	inside := r3.Vec{X: (lo.X + hi.X) / 2, Y: (lo.Y + hi.Y) / 2, Z: -1}
	var normals [4]r3.Vec
	for i := range corners {
		n := r3.Unit(r3.Cross(corners[i], corners[(i+1)%4]))
		if r3.Dot(n, inside) < 0 {
			n = r3.Scale(-1, n)
		}
		normals[i] = n
	}
	tracer().Debugf("frustum window [%g,%g]x[%g,%g], z in [%g,%g]", lo.X, hi.X, lo.Y, hi.Y, -far, -near)
	return New(-near, -far, normals), nil
}
