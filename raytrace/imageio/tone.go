package imageio

import (
	"fmt"
	"sort"

	lin "github.com/sgreben/piecewiselinear"
)

// ToneCurve maps linear radiance to display values in [0,1]. Inputs outside
// the curve's knots take the value of the nearest end.
type ToneCurve struct {
	f lin.Function
}

// DefaultToneCurve passes [0,1] through and clips everything brighter.
var DefaultToneCurve = ToneCurve{f: lin.Function{X: []float64{0, 1}, Y: []float64{0, 1}}}

// NewToneCurve builds a curve from radiance -> display value knots. At least
// two knots are required and display values must lie in [0,1].
func NewToneCurve(knots map[float64]float64) (ToneCurve, error) {
	if len(knots) < 2 {
		return ToneCurve{}, fmt.Errorf("tone curve needs at least 2 knots, got %d", len(knots))
	}
	X := make([]float64, 0, len(knots))
	for x, y := range knots {
		if y < 0 || y > 1 {
			return ToneCurve{}, fmt.Errorf("tone curve value %v at %v is outside [0,1]", y, x)
		}
		X = append(X, x)
	}
	sort.Float64s(X)
	Y := make([]float64, len(X))
	for i, x := range X {
		Y[i] = knots[x]
	}
	return ToneCurve{f: lin.Function{X: X, Y: Y}}, nil
}

func (c ToneCurve) Map(x float64) float64 {
	if len(c.f.X) == 0 {
		return DefaultToneCurve.Map(x)
	}
	lo, hi := c.f.X[0], c.f.X[len(c.f.X)-1]
	if x <= lo {
		return c.f.Y[0]
	}
	if x >= hi {
		return c.f.Y[len(c.f.Y)-1]
	}
	return c.f.At(x)
}
