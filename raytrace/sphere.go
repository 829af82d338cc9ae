package raytrace

import (
	"math"

	"github.com/fogleman/pt/pt"
)

type Sphere struct {
	Center   pt.Vector
	Radius   float64
	Material MaterialID
}

func NewSphere(center pt.Vector, radius float64, material MaterialID) *Sphere {
	return &Sphere{Center: center, Radius: radius, Material: material}
}

// Intersect picks the nearest root of the ray/sphere quadratic that lies
// strictly inside (TMin, TMax), falling back to the far root.
func (s *Sphere) Intersect(r Ray, hit *HitRecord, prim int) bool {
	oc := r.Origin.Sub(s.Center)
	bHalf := oc.Dot(r.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius
	discrim := bHalf*bHalf - c
	if discrim < 0 {
		return false
	}
	root := math.Sqrt(discrim)
	t1 := -bHalf - root
	t2 := -bHalf + root
	var dist float64
	switch {
	case t1 > r.TMin && t1 < r.TMax:
		dist = t1
	case t2 > r.TMin && t2 < r.TMax:
		dist = t2
	default:
		return false
	}

	hit.Hit = true
	hit.Dist = dist
	hit.Position = r.Position(dist)
	hit.GeometricNormal = hit.Position.Sub(s.Center).Normalize()
	hit.ShadingNormal = hit.GeometricNormal
	hit.Material = s.Material
	hit.Primitive = prim
	return true
}

func (s *Sphere) BoundingBox() pt.Box {
	r := V(s.Radius, s.Radius, s.Radius)
	return pt.Box{Min: s.Center.Sub(r), Max: s.Center.Add(r)}
}

// Transform moves the center and rescales the radius by the transformed
// length of the x axis. Non-uniform scales are approximated, not supported.
func (s *Sphere) Transform(m pt.Matrix) {
	edge := m.MulPosition(s.Center.Add(V(s.Radius, 0, 0)))
	s.Center = m.MulPosition(s.Center)
	s.Radius = edge.Sub(s.Center).Length()
}
