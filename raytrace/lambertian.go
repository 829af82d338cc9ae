package raytrace

import (
	"math"

	"github.com/fogleman/pt/pt"
)

// Lambertian reflects incoming light equally in all directions.
type Lambertian struct {
	Lights    []Light
	Materials Materials
}

func (s *Lambertian) diffuse(hit *HitRecord) pt.Color {
	if m, ok := s.Materials.Get(hit.Material); ok {
		return m.Diffuse
	}
	return pt.Color{}
}

func (s *Lambertian) Shade(r Ray, hit *HitRecord, emit bool) pt.Color {
	verifyUnit("shading normal", hit.ShadingNormal)
	var result pt.Color
	for _, light := range s.Lights {
		dir, L, visible := light.Sample(hit.Position)
		if !visible {
			continue
		}
		if cos := dir.Dot(hit.ShadingNormal); cos > 0 {
			result = result.Add(L.MulScalar(cos))
		}
	}
	return result.Mul(s.diffuse(hit)).Add(emission(s.Materials, hit, emit))
}

// Phong adds a normalized specular lobe on top of Lambertian shading.
type Phong struct {
	*Lambertian
}

func (s *Phong) Shade(r Ray, hit *HitRecord, emit bool) pt.Color {
	m, ok := s.Materials.Get(hit.Material)
	if !ok {
		return s.Lambertian.Shade(r, hit, emit)
	}
	wo := r.Direction.Negate().Normalize()
	diffuse := m.Diffuse.MulScalar(1 / math.Pi)

	var Lr pt.Color
	for _, light := range s.Lights {
		wi, Li, visible := light.Sample(hit.Position)
		if !visible {
			continue
		}
		cos := math.Max(wi.Dot(hit.ShadingNormal), 0)
		specular := m.Specular.MulScalar(specularLobe(wi, wo, hit.ShadingNormal, m.Shininess))
		// Both lobes are weighted by the sampled radiance Li. A cosine-only
		// weighting would ignore light color and distance falloff.
		Lr = Lr.Add(diffuse.Add(specular).Mul(Li).MulScalar(cos))
	}
	return Lr.Add(s.Lambertian.Shade(r, hit, emit))
}
