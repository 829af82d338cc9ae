package raytrace

import (
	"math"

	"github.com/fogleman/pt/pt"
)

// Shader computes the radiance leaving a surface back along r.
type Shader interface {
	Shade(r Ray, hit *HitRecord, emit bool) pt.Color
}

// RayShader shades rays spawned while shading, whether or not they hit.
type RayShader interface {
	ShadeNewRay(r Ray, hit *HitRecord) pt.Color
}

// ShaderTable picks a shader by the shading model of the material that was
// hit. Materials without a registered model use the fallback shader.
type ShaderTable struct {
	Background Background
	materials  Materials
	shaders    map[ShadingModel]Shader
	fallback   Shader
}

func NewShaderTable(materials Materials, background Background) *ShaderTable {
	return &ShaderTable{
		Background: background,
		materials:  materials,
		shaders:    make(map[ShadingModel]Shader),
	}
}

// Register installs s for model. The first registered shader becomes the
// fallback.
func (st *ShaderTable) Register(model ShadingModel, s Shader) {
	st.shaders[model] = s
	if st.fallback == nil {
		st.fallback = s
	}
}

func (st *ShaderTable) Lookup(hit *HitRecord) Shader {
	if m, ok := st.materials.Get(hit.Material); ok {
		if s, ok := st.shaders[m.Model]; ok {
			return s
		}
	}
	return st.fallback
}

func (st *ShaderTable) Shade(r Ray, hit *HitRecord, emit bool) pt.Color {
	s := st.Lookup(hit)
	if s == nil {
		return pt.Color{}
	}
	return s.Shade(r, hit, emit)
}

func (st *ShaderTable) ShadeNewRay(r Ray, hit *HitRecord) pt.Color {
	if hit.Hit {
		return st.Shade(r, hit, true)
	}
	return st.Background.Sample(r.Direction)
}

// NewStandardShaders wires one shader per shading model into a table.
func NewStandardShaders(tracer *RayTracer, materials Materials, lights []Light, background Background, maxDepth int) *ShaderTable {
	st := NewShaderTable(materials, background)
	lambertian := &Lambertian{Lights: lights, Materials: materials}
	transparent := &Transparent{Tracer: tracer, Next: st, MaxDepth: maxDepth}
	st.Register(ModelLambertian, lambertian)
	st.Register(ModelPhong, &Phong{Lambertian: lambertian})
	st.Register(ModelMirror, &Mirror{Tracer: tracer, Next: st, MaxDepth: maxDepth})
	st.Register(ModelTransparent, transparent)
	st.Register(ModelRefractive, &Refractive{Tracer: tracer, Next: st, MaxDepth: maxDepth})
	st.Register(ModelVolume, &Volume{Transparent: transparent, Materials: materials})
	st.Register(ModelGlossyVolume, &GlossyVolume{
		Lights:    lights,
		Materials: materials,
		Tracer:    tracer,
		Next:      st,
		MaxDepth:  maxDepth,
	})
	return st
}

func emission(materials Materials, hit *HitRecord, emit bool) pt.Color {
	if !emit {
		return pt.Color{}
	}
	if m, ok := materials.Get(hit.Material); ok {
		return m.Emission
	}
	return pt.Color{}
}

// minReflectance keeps the absorption coefficient finite.
const minReflectance = 1e-5

// Transmittance applies Beer-Lambert absorption over hit.Dist. The diffuse
// reflectance of the material is read as 1/(1+absorption) per channel. A hit
// without a material transmits everything.
func Transmittance(materials Materials, hit *HitRecord) pt.Color {
	m, ok := materials.Get(hit.Material)
	if !ok {
		return C(1, 1, 1)
	}
	channel := func(rho float64) float64 {
		absorption := 1/math.Max(rho, minReflectance) - 1
		return math.Exp(-absorption * hit.Dist)
	}
	return C(channel(m.Diffuse.R), channel(m.Diffuse.G), channel(m.Diffuse.B))
}

// exiting reports whether r leaves the medium through the surface at hit.
func exiting(r Ray, hit *HitRecord) bool {
	return r.Direction.Dot(hit.GeometricNormal) > 0
}

// specularLobe is the normalized Phong lobe (s+2)/(2π)·max(ωo·ωr,0)^s for
// light arriving from wi and leaving toward wo.
func specularLobe(wi, wo, n pt.Vector, shininess float64) float64 {
	wr := reflect(wi.Negate(), n).Normalize()
	return (shininess + 2) * math.Pow(math.Max(wo.Dot(wr), 0), shininess) / (2 * math.Pi)
}
