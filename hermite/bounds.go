package hermite

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// BoundingRadius returns a conservative bound on the distance of any point
// of the segment from its start knot.
//
// The linear, quadratic and cubic columns are summed component-wise in
// absolute value, and the norm of that sum is returned. For s in [0,1] every
// power s^k is at most 1, so |P(s) − P(0)| can never exceed it. The bound
// is not tight; it errs on the large side.
func (c Coefficients) BoundingRadius() float64 {
	return r3.Norm(absSum(c[1], c[2], c[3]))
}

// BendRadius is the part of the bounding radius contributed by the quadratic
// and cubic terms. It is zero for straight segments traversed at constant
// speed.
func (c Coefficients) BendRadius() float64 {
	return r3.Norm(absSum(c[2], c[3]))
}

// IsLinear is a predicate: does this segment degenerate to a straight chord?
// Segments with vanishing extent count as linear.
func (c Coefficients) IsLinear() bool {
	return c.BendRadius() <= linearTolerance*c.BoundingRadius()
}

// Sub returns the coefficients of the part of c between parameters s0 and
// s1, re-parametrized to the unit interval.
func (c Coefficients) Sub(s0, s1 float64) Coefficients {
	h := s1 - s0
	var d Coefficients
	d[0] = c.At(s0)
	d[1] = r3.Scale(h, c.Tangent(s0))
	d[2] = r3.Scale(h*h, r3.Add(c[2], r3.Scale(3*s0, c[3])))
	d[3] = r3.Scale(h*h*h, c[3])
	return d
}

// Controls converts the power basis to Bézier control points.
func (c Coefficients) Controls() Controls {
	var b Controls
	b[0] = c[0]
	b[1] = r3.Add(c[0], r3.Scale(1.0/3, c[1]))
	b[2] = r3.Add(b[1], r3.Scale(1.0/3, r3.Add(c[1], c[2])))
	b[3] = c.End()
	return b
}

// HullRadius returns the largest distance of a control point from the
// start knot. By the convex hull property of Bézier curves this bounds the
// distance of every curve point from the start knot, and it is usually much
// tighter than BoundingRadius.
func (ctrls Controls) HullRadius() float64 {
	r := 0.0
	for i := 1; i < 4; i++ {
		r = math.Max(r, r3.Norm(r3.Sub(ctrls[i], ctrls[0])))
	}
	return r
}

// PreControl is the control point before the end knot.
func (ctrls Controls) PreControl() r3.Vec {
	return ctrls[2]
}

// PostControl is the control point after the start knot.
func (ctrls Controls) PostControl() r3.Vec {
	return ctrls[1]
}

func absSum(vecs ...r3.Vec) r3.Vec {
	var s r3.Vec
	for _, v := range vecs {
		s.X += math.Abs(v.X)
		s.Y += math.Abs(v.Y)
		s.Z += math.Abs(v.Z)
	}
	return s
}
