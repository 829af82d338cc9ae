package raytrace

import (
	"math"

	"github.com/fogleman/pt/pt"
)

// Epsilon offsets the start of every spawned ray to avoid self-intersection.
const Epsilon = 1e-4

// V is a shorthand constructor for pt.Vector
func V(X, Y, Z float64) pt.Vector {
	return pt.Vector{X: X, Y: Y, Z: Z}
}

// C is a shorthand constructor for pt.Color
func C(R, G, B float64) pt.Color {
	return pt.Color{R: R, G: G, B: B}
}

// Point2D is a position on the camera's image plane.
type Point2D struct {
	X, Y float64
}

func (p Point2D) Translate(x, y float64) Point2D {
	return Point2D{p.X + x, p.Y + y}
}

func (p Point2D) Scale(s float64) Point2D {
	return Point2D{p.X * s, p.Y * s}
}

// reflect mirrors i about the normal n.
func reflect(i, n pt.Vector) pt.Vector {
	return i.Sub(n.MulScalar(2 * n.Dot(i)))
}

// refract bends the unit direction i through a boundary with normal n, which
// must face against i. eta is the ratio n1/n2. It reports false on total
// internal reflection.
func refract(i, n pt.Vector, eta float64) (pt.Vector, bool) {
	cosI := -n.Dot(i)
	k := 1 - eta*eta*(1-cosI*cosI)
	if k < 0 {
		return pt.Vector{}, false
	}
	return i.MulScalar(eta).Add(n.MulScalar(eta*cosI - math.Sqrt(k))), true
}

// FresnelR returns the unpolarized Fresnel reflectance for a boundary between
// media of index n1 and n2, given the cosines of the incident and transmitted
// angles.
func FresnelR(cosI, cosT, n1, n2 float64) float64 {
	rsDen := n1*cosI + n2*cosT
	rpDen := n2*cosI + n1*cosT
	if rsDen == 0 || rpDen == 0 {
		return 1
	}
	rs := (n1*cosI - n2*cosT) / rsDen
	rp := (n2*cosI - n1*cosT) / rpDen
	return clamp01((rs*rs + rp*rp) * 0.5)
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

// Luminance weights an RGB triple with the Rec. 709 coefficients.
func Luminance(c pt.Color) float64 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}
