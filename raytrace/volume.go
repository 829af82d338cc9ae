package raytrace

import (
	"math"

	"github.com/fogleman/pt/pt"
)

// Volume is a Transparent surface enclosing an absorbing medium. Radiance
// leaving the medium is attenuated over the distance it travelled inside.
type Volume struct {
	Transparent *Transparent
	Materials   Materials
}

func (s *Volume) Shade(r Ray, hit *HitRecord, emit bool) pt.Color {
	result := s.Transparent.Shade(r, hit, emit)
	if exiting(r, hit) {
		return Transmittance(s.Materials, hit).Mul(result)
	}
	return result
}

// GlossyVolume combines a specular highlight from the lights with Fresnel
// weighted reflection and refraction through an absorbing medium.
type GlossyVolume struct {
	Lights    []Light
	Materials Materials
	Tracer    *RayTracer
	Next      RayShader
	MaxDepth  int
}

func (s *GlossyVolume) direct(r Ray, hit *HitRecord) pt.Color {
	m, ok := s.Materials.Get(hit.Material)
	if !ok {
		return pt.Color{}
	}
	wo := r.Direction.Negate().Normalize()
	var Lr pt.Color
	for _, light := range s.Lights {
		wi, Li, visible := light.Sample(hit.Position)
		if !visible {
			continue
		}
		cos := math.Max(wi.Dot(hit.ShadingNormal), 0)
		lobe := specularLobe(wi, wo, hit.ShadingNormal, m.Shininess)
		// Weighted by Li like Phong, not by the cosine alone.
		Lr = Lr.Add(m.Specular.Mul(Li).MulScalar(lobe * cos))
	}
	return Lr
}

func (s *GlossyVolume) Shade(r Ray, hit *HitRecord, emit bool) pt.Color {
	result := s.direct(r, hit)
	if hit.TraceDepth < s.MaxDepth {
		t := Transparent{Tracer: s.Tracer, Next: s.Next, MaxDepth: s.MaxDepth}
		result = result.Add(t.indirect(r, hit))
	}
	if exiting(r, hit) {
		return Transmittance(s.Materials, hit).Mul(result)
	}
	return result
}
