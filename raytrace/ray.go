package raytrace

import (
	"math"

	"github.com/fogleman/pt/pt"
)

// RayKind distinguishes camera rays from the rays spawned while shading.
type RayKind int

const (
	PrimaryRay RayKind = iota
	SecondaryRay
	ShadowRay
)

// Ray is a pt.Ray restricted to the distance interval [TMin, TMax].
type Ray struct {
	pt.Ray
	TMin float64
	TMax float64
	Kind RayKind
}

// NewRay normalizes direction and returns a ray valid on [tmin, tmax].
func NewRay(origin, direction pt.Vector, tmin, tmax float64, kind RayKind) Ray {
	return Ray{
		Ray:  pt.Ray{Origin: origin, Direction: direction.Normalize()},
		TMin: tmin,
		TMax: tmax,
		Kind: kind,
	}
}

// secondaryRay starts just past origin and never ends.
func secondaryRay(origin, direction pt.Vector) Ray {
	return NewRay(origin, direction, Epsilon, math.Inf(1), SecondaryRay)
}

// HitRecord describes the nearest intersection along a ray along with the
// state the tracer carries between bounces.
type HitRecord struct {
	Hit  bool
	Dist float64
	// Position is the world space point of intersection
	Position pt.Vector
	// GeometricNormal is the true facet normal
	GeometricNormal pt.Vector
	// ShadingNormal is the normal used for lighting, which may be interpolated
	ShadingNormal pt.Vector
	// U and V are the barycentric coordinates of a triangle hit
	U, V     float64
	Material MaterialID
	// Primitive is the index of the primitive that was hit
	Primitive int
	// RayIOR is the refractive index of the medium the ray travels through
	RayIOR float64
	// TraceDepth counts the bounces that led to this hit
	TraceDepth int
}

// NewHitRecord returns an empty record for a ray travelling through air.
func NewHitRecord() HitRecord {
	return HitRecord{
		Material:  NoMaterial,
		Primitive: -1,
		RayIOR:    1,
	}
}

// childHit prepares the record for a ray spawned from parent.
func childHit(parent *HitRecord, ior float64) HitRecord {
	h := NewHitRecord()
	h.RayIOR = ior
	h.TraceDepth = parent.TraceDepth + 1
	return h
}
