package raytrace

import (
	"github.com/fogleman/pt/pt"
)

// Mirror shades by following the perfect reflection.
type Mirror struct {
	Tracer   *RayTracer
	Next     RayShader
	MaxDepth int
}

func (s *Mirror) Shade(r Ray, hit *HitRecord, emit bool) pt.Color {
	if hit.TraceDepth >= s.MaxDepth {
		return pt.Color{}
	}
	reflected, reflectedHit, _ := s.Tracer.TraceReflected(r, hit)
	return s.Next.ShadeNewRay(reflected, &reflectedHit)
}

// Transparent splits radiance between reflection and refraction by the
// Fresnel reflectance of the boundary. Nothing is absorbed.
type Transparent struct {
	Tracer   *RayTracer
	Next     RayShader
	MaxDepth int
}

func (s *Transparent) Shade(r Ray, hit *HitRecord, emit bool) pt.Color {
	if hit.TraceDepth >= s.MaxDepth {
		return pt.Color{}
	}
	return s.indirect(r, hit)
}

// indirect is R·reflected + (1-R)·refracted.
func (s *Transparent) indirect(r Ray, hit *HitRecord) pt.Color {
	reflected, reflectedHit, _ := s.Tracer.TraceReflected(r, hit)
	refracted, refractedHit, R, _ := s.Tracer.TraceRefractedFresnel(r, hit)
	result := s.Next.ShadeNewRay(reflected, &reflectedHit).MulScalar(R)
	if R < 1 {
		result = result.Add(s.Next.ShadeNewRay(refracted, &refractedHit).MulScalar(1 - R))
	}
	return result
}

// Refractive follows only the refracted ray, reflecting on total internal
// reflection.
type Refractive struct {
	Tracer   *RayTracer
	Next     RayShader
	MaxDepth int
}

func (s *Refractive) Shade(r Ray, hit *HitRecord, emit bool) pt.Color {
	if hit.TraceDepth >= s.MaxDepth {
		return pt.Color{}
	}
	out, outHit, _ := s.Tracer.TraceRefracted(r, hit)
	return s.Next.ShadeNewRay(out, &outHit)
}
