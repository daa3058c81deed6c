package main

import (
	"fmt"

	"github.com/npillmayer/curveplot"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// saveDepthChart writes a bar chart of the number of segments visited per
// subdivision depth.
func saveDepthChart(st curveplot.Stats, path string) error {
	if len(st.Segments) == 0 {
		return fmt.Errorf("no segments rendered")
	}
	values := make(plotter.Values, len(st.Segments))
	names := make([]string, len(st.Segments))
	for depth, n := range st.Segments {
		values[depth] = float64(n)
		names[depth] = fmt.Sprintf("%d", depth)
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%d vertices, %d culled", st.Vertices, st.Culled)
	p.X.Label.Text = "subdivision depth"
	p.Y.Label.Text = "segments"
	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return err
	}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(names...)
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
