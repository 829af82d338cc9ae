package raytrace

import "github.com/fogleman/pt/pt"

// Primitive is a piece of geometry the world can intersect.
type Primitive interface {
	// Intersect fills hit and reports true when r meets the primitive
	// strictly inside its valid interval. prim is the primitive's index in
	// its owning collection and is recorded on the hit.
	Intersect(r Ray, hit *HitRecord, prim int) bool
	BoundingBox() pt.Box
	Transform(m pt.Matrix)
}

// boxHit is a slab test against b limited to the ray's interval.
func boxHit(b pt.Box, r Ray) bool {
	tmin, tmax := r.TMin, r.TMax
	o := [3]float64{r.Origin.X, r.Origin.Y, r.Origin.Z}
	d := [3]float64{r.Direction.X, r.Direction.Y, r.Direction.Z}
	lo := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}
	for axis := 0; axis < 3; axis++ {
		if d[axis] == 0 {
			if o[axis] < lo[axis] || o[axis] > hi[axis] {
				return false
			}
			continue
		}
		t0 := (lo[axis] - o[axis]) / d[axis]
		t1 := (hi[axis] - o[axis]) / d[axis]
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tmin {
			tmin = t0
		}
		if t1 < tmax {
			tmax = t1
		}
		if tmin > tmax {
			return false
		}
	}
	return true
}
