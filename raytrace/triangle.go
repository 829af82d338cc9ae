package raytrace

import (
	"github.com/fogleman/pt/pt"
)

type Triangle struct {
	V0, V1, V2 pt.Vector
	Material   MaterialID
}

func NewTriangle(v0, v1, v2 pt.Vector, material MaterialID) *Triangle {
	return &Triangle{V0: v0, V1: v1, V2: v2, Material: material}
}

// intersectTriangle returns the plane distance t, the barycentric pair (v, w)
// and the outward facing, un-normalized normal for a counter-clockwise
// triangle. A ray exactly parallel to the plane never hits.
func intersectTriangle(r Ray, v0, v1, v2 pt.Vector) (n pt.Vector, t, v, w float64, ok bool) {
	e0 := v1.Sub(v0)
	e1 := v0.Sub(v2)
	n = e0.Cross(e1)
	denom := r.Direction.Dot(n)
	if denom == 0 {
		return n, 0, 0, 0, false
	}

	toV0 := v0.Sub(r.Origin)
	t = toV0.Dot(n) / denom
	if t < r.TMin || t > r.TMax {
		return n, t, 0, 0, false
	}

	q := toV0.Cross(r.Direction).DivScalar(denom)
	v = q.Dot(e1)
	w = q.Dot(e0)

	n = n.Negate()
	return n, t, v, w, v >= 0 && w >= 0 && v+w <= 1
}

func (tr *Triangle) Intersect(r Ray, hit *HitRecord, prim int) bool {
	n, t, v, w, ok := intersectTriangle(r, tr.V0, tr.V1, tr.V2)
	if !ok {
		return false
	}
	hit.Hit = true
	hit.Dist = t
	hit.Position = r.Position(t)
	hit.GeometricNormal = n.Normalize()
	hit.ShadingNormal = hit.GeometricNormal
	hit.U, hit.V = v, w
	hit.Material = tr.Material
	hit.Primitive = prim
	return true
}

func (tr *Triangle) BoundingBox() pt.Box {
	return pt.Box{
		Min: tr.V0.Min(tr.V1).Min(tr.V2),
		Max: tr.V0.Max(tr.V1).Max(tr.V2),
	}
}

func (tr *Triangle) Transform(m pt.Matrix) {
	tr.V0 = m.MulPosition(tr.V0)
	tr.V1 = m.MulPosition(tr.V1)
	tr.V2 = m.MulPosition(tr.V2)
}

// Normal is the unit outward normal of the triangle.
func (tr *Triangle) Normal() pt.Vector {
	return tr.V1.Sub(tr.V0).Cross(tr.V2.Sub(tr.V0)).Normalize()
}
