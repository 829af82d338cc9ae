package raytrace

import (
	"github.com/fogleman/pt/pt"
)

// RayTracer spawns reflected and refracted rays and hands them to the scene.
// It tracks the refractive index of the medium and the recursion depth on
// the hit records it produces.
type RayTracer struct {
	scene     Scene
	materials Materials
}

func NewRayTracer(scene Scene, materials Materials) *RayTracer {
	return &RayTracer{scene: scene, materials: materials}
}

func (t *RayTracer) Scene() Scene {
	return t.scene
}

func (t *RayTracer) TraceToClosest(r Ray, hit *HitRecord) bool {
	return t.scene.NearestHit(r, hit)
}

func (t *RayTracer) TraceToAny(r Ray) bool {
	return t.scene.AnyHit(r)
}

// TraceReflected mirrors in about the shading normal at inHit and traces the
// result. The medium is unchanged.
func (t *RayTracer) TraceReflected(in Ray, inHit *HitRecord) (Ray, HitRecord, bool) {
	out := secondaryRay(inHit.Position, reflect(in.Direction, inHit.ShadingNormal))
	outHit := childHit(inHit, inHit.RayIOR)
	verifyReflectionLaw(in.Direction, inHit.ShadingNormal, out.Direction)
	ok := t.TraceToClosest(out, &outHit)
	return out, outHit, ok
}

// TraceRefracted bends in through the surface at inHit. On total internal
// reflection the reflected ray is traced instead.
func (t *RayTracer) TraceRefracted(in Ray, inHit *HitRecord) (Ray, HitRecord, bool) {
	ior, normal, _ := t.iorOut(in, inHit)
	dir, ok := refract(in.Direction, normal, inHit.RayIOR/ior)
	if !ok {
		return t.TraceReflected(in, inHit)
	}
	out := secondaryRay(inHit.Position, dir)
	outHit := childHit(inHit, ior)
	hit := t.TraceToClosest(out, &outHit)
	return out, outHit, hit
}

// TraceRefractedFresnel is TraceRefracted that also returns the Fresnel
// reflectance R of the boundary. On total internal reflection it returns
// R = 1 and traces nothing.
func (t *RayTracer) TraceRefractedFresnel(in Ray, inHit *HitRecord) (Ray, HitRecord, float64, bool) {
	ior, normal, cosIn := t.iorOut(in, inHit)
	outHit := childHit(inHit, ior)
	dir, ok := refract(in.Direction, normal, inHit.RayIOR/ior)
	if !ok {
		return Ray{}, outHit, 1, false
	}
	out := secondaryRay(inHit.Position, dir)
	R := FresnelR(cosIn, -normal.Dot(out.Direction), inHit.RayIOR, ior)
	verifyFresnel(R)
	hit := t.TraceToClosest(out, &outHit)
	return out, outHit, R, hit
}

// iorOut returns the index of the medium a refracted ray enters, the normal
// facing against the incoming ray and the cosine of incidence. Only air to
// material and material to air boundaries exist: a ray leaving through the
// back of a surface always enters index 1.
func (t *RayTracer) iorOut(in Ray, inHit *HitRecord) (float64, pt.Vector, float64) {
	normal := inHit.ShadingNormal
	cosIn := normal.Dot(in.Direction.Negate())
	if cosIn < 0 {
		return 1, normal.Negate(), -cosIn
	}
	return t.materials.ior(inHit.Material), normal, cosIn
}
