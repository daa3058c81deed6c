package hermite

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// AsString returns a segment as a (debugging) string, in a notation close
// to MetaPost's:
//
//	(0,0,0) .. controls (0.3333,0.0000,0.0000) and (0.6667,0.0000,0.0000) .. (1,0,0)
func AsString(c Coefficients) string {
	ctrls := c.Controls()
	return fmt.Sprintf("%s .. controls %s and %s .. %s",
		ptstring(ctrls[0], false), ptstring(ctrls.PostControl(), true),
		ptstring(ctrls.PreControl(), true), ptstring(ctrls[3], false))
}

func ptstring(p r3.Vec, iscontrol bool) string {
	if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(p.Z) {
		return "(<unknown>)"
	}
	if iscontrol {
		return fmt.Sprintf("(%.4f,%.4f,%.4f)", round(p.X), round(p.Y), round(p.Z))
	}
	return fmt.Sprintf("(%.4g,%.4g,%.4g)", round(p.X), round(p.Y), round(p.Z))
}

func round(x float64) float64 {
	return math.Round(x*10000.0) / 10000.0
}
