// Package hermite fits cubic Hermite segments between adjacent samples of a
// space curve.
/*

A Hermite segment is the unique cubic polynomial matching position and
velocity at both of its end knots. Consecutive segments therefore join with
C¹ continuity, which is what makes a sampled trajectory look smooth when it
is finally flattened to line strips.

Segments are kept in power basis, as four column vectors

	P(s) = c0 + c1⋅s + c2⋅s² + c3⋅s³ ,   0 ≤ s ≤ 1

with s the time between the knots, normalized to the unit interval. Tangents
are scaled by the knot distance in time before fitting, so that the
polynomial is parametrized by s and not by time.

Usage

	seg := hermite.Fit(p0, v0, p1, v1, t1-t0)
	mid := seg.At(0.5)
	r := seg.BoundingRadius()   // no point of seg is farther than r from p0

A segment may be converted to Bézier control points, whose convex hull
encloses the curve. This is used for tighter bounds on sub-intervals:

	hull := seg.Sub(0.25, 0.5).Controls().HullRadius()

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package hermite
