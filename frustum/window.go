package frustum

import (
	"fmt"
	"strings"

	polyclip "github.com/akavel/polyclip-go"
)

// Window is a polygonal cross-section of a view volume with the plane
// z = −1. Windows are built by chaining knots, or as boxes:
//
//	w := NullWindow().Knot(0, 0).Knot(1, 3).Knot(3, 0).Cycle()
//	b := Box(-1, -0.75, 1, 0.75)
//
// Windows of split views or scissored viewports are obtained by intersecting
// the full window with a sub-region.
type Window struct {
	poly   polyclip.Polygon
	closed bool
}

// NullWindow creates an empty window, to be extended by Knot calls.
func NullWindow() *Window {
	return &Window{}
}

// Box creates a closed rectangular window from two opposite corners.
func Box(x0, y0, x1, y1 float64) *Window {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return NullWindow().Knot(x0, y0).Knot(x1, y0).Knot(x1, y1).Knot(x0, y1).Cycle()
}

// Knot adds a corner to the outline. Part of builder functionality.
func (w *Window) Knot(x, y float64) *Window {
	if w.closed {
		panic("cannot add knot to closed window")
	}
	if len(w.poly) == 0 {
		w.poly = polyclip.Polygon{polyclip.Contour{}}
	}
	w.poly[0].Add(polyclip.Point{X: x, Y: y})
	return w
}

// Cycle closes the outline. Part of builder functionality.
func (w *Window) Cycle() *Window {
	w.closed = true
	return w
}

// N returns the number of corners of the window.
func (w *Window) N() int {
	return w.poly.NumVertices()
}

// Polygon returns the window outline as a polyclip polygon.
func (w *Window) Polygon() polyclip.Polygon {
	return w.poly
}

// Intersect returns the part of w which is covered by other as well.
// The result may be empty.
func (w *Window) Intersect(other *Window) *Window {
	result := w.poly.Construct(polyclip.INTERSECTION, other.poly)
	tracer().Debugf("window intersection has %d contour(s)", len(result))
	return &Window{poly: result, closed: true}
}

// Scissor restricts w to a viewport. The viewport corners are given in
// normalized coordinates, where the bounding box of w spans [−1,1] in both
// directions. Viewports reaching beyond w are cut to w.
func (w *Window) Scissor(x0, y0, x1, y1 float64) *Window {
	lo, hi, ok := w.Bounds()
	if !ok {
		return &Window{closed: true}
	}
	cx, cy := (lo.X+hi.X)/2, (lo.Y+hi.Y)/2
	sx, sy := (hi.X-lo.X)/2, (hi.Y-lo.Y)/2
	viewport := Box(cx+x0*sx, cy+y0*sy, cx+x1*sx, cy+y1*sy)
	return w.Intersect(viewport)
}

// Bounds returns the corners of the bounding box of w. ok is false for
// windows without any corner.
func (w *Window) Bounds() (lo, hi polyclip.Point, ok bool) {
	if w.N() == 0 {
		return
	}
	bb := w.poly.BoundingBox()
	return bb.Min, bb.Max, true
}

// AsString returns a window as a (debugging) string.
func AsString(w *Window) string {
	var b strings.Builder
	for i, c := range w.poly {
		if i > 0 {
			b.WriteString(" & ")
		}
		for j, pt := range c {
			if j > 0 {
				b.WriteString(" -- ")
			}
			fmt.Fprintf(&b, "(%g,%g)", pt.X, pt.Y)
		}
		if w.closed {
			b.WriteString(" -- cycle")
		}
	}
	return b.String()
}
