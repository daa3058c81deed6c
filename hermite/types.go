package hermite

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// linearTolerance is the ratio of higher-order extent to total extent below
// which a segment is considered a straight line.
const linearTolerance = 1e-9

// Coefficients holds the power basis of a cubic segment, by column:
// constant, linear, quadratic and cubic term.
type Coefficients [4]r3.Vec

// Controls collects the Bézier control points of a segment.
// Point 0 and 3 are the end knots.
type Controls [4]r3.Vec

// Fit builds the Hermite coefficients for the segment between knots
// (p0,v0) and (p1,v1), which lie dt apart in time. Velocities are given in
// units of position per time and are scaled by dt.
//
// dt is expected to be positive; this is not checked.
func Fit(p0, v0, p1, v1 r3.Vec, dt float64) Coefficients {
	return FitScaled(p0, r3.Scale(dt, v0), p1, r3.Scale(dt, v1))
}

// FitScaled builds Hermite coefficients from tangents which have already
// been scaled to the unit parameter interval.
func FitScaled(p0, m0, p1, m1 r3.Vec) Coefficients {
	var c Coefficients
	c[0] = p0
	c[1] = m0
	c[2] = r3.Sub(r3.Scale(3, r3.Sub(p1, p0)), r3.Add(r3.Scale(2, m0), m1))
	c[3] = r3.Add(r3.Scale(2, r3.Sub(p0, p1)), r3.Add(m1, m0))
	return c
}

// At evaluates the segment at parameter s.
func (c Coefficients) At(s float64) r3.Vec {
	s2 := s * s
	s3 := s2 * s
	return r3.Vec{
		X: c[0].X + c[1].X*s + c[2].X*s2 + c[3].X*s3,
		Y: c[0].Y + c[1].Y*s + c[2].Y*s2 + c[3].Y*s3,
		Z: c[0].Z + c[1].Z*s + c[2].Z*s2 + c[3].Z*s3,
	}
}

// Tangent returns the derivative dP/ds at parameter s.
func (c Coefficients) Tangent(s float64) r3.Vec {
	d := r3.Add(c[1], r3.Scale(2*s, c[2]))
	return r3.Add(d, r3.Scale(3*s*s, c[3]))
}

// Start is the knot at s = 0.
func (c Coefficients) Start() r3.Vec {
	return c[0]
}

// End is the knot at s = 1.
func (c Coefficients) End() r3.Vec {
	return r3.Add(c[0], r3.Add(c[1], r3.Add(c[2], c[3])))
}
