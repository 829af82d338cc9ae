package raytrace

import (
	"math"
	"testing"

	"github.com/fogleman/pt/pt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func surfaceHit(material MaterialID) HitRecord {
	hit := NewHitRecord()
	hit.Hit = true
	hit.Position = V(0, 0, 0)
	hit.ShadingNormal = V(0, 1, 0)
	hit.GeometricNormal = V(0, 1, 0)
	hit.Material = material
	return hit
}

func TestLambertianShade(t *testing.T) {
	var materials Materials
	grey := materials.Add(Material{Name: "grey", Diffuse: C(0.5, 0.5, 0.5), Emission: C(1, 0, 0)})
	above := &PointLight{Position: V(0, 5, 0), Intensity: C(1, 1, 1)}
	below := &PointLight{Position: V(0, -5, 0), Intensity: C(1, 1, 1)}
	view := unbounded(V(0, 1, 1), V(0, -1, -1))

	tests := []struct {
		name     string
		lights   []Light
		material MaterialID
		emit     bool
		want     pt.Color
	}{
		{"overhead_light", []Light{above}, grey, false, C(0.02, 0.02, 0.02)},
		{"with_emission", []Light{above}, grey, true, C(1.02, 0.02, 0.02)},
		{"light_below_surface", []Light{below}, grey, false, C(0, 0, 0)},
		{"two_lights", []Light{above, below}, grey, false, C(0.02, 0.02, 0.02)},
		{"no_material", []Light{above}, NoMaterial, true, C(0, 0, 0)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := &Lambertian{Lights: test.lights, Materials: materials}
			hit := surfaceHit(test.material)
			assertColor(t, test.want, s.Shade(view, &hit, test.emit))
		})
	}
}

func TestPhongShade(t *testing.T) {
	var materials Materials
	matte := materials.Add(Material{Diffuse: C(0.5, 0.5, 0.5), Model: ModelPhong})
	shiny := materials.Add(Material{Diffuse: C(0.5, 0.5, 0.5), Specular: C(1, 1, 1), Shininess: 10, Model: ModelPhong})

	lights := []Light{&PointLight{Position: V(0, 5, 0), Intensity: C(1, 1, 1)}}
	s := &Phong{Lambertian: &Lambertian{Lights: lights, Materials: materials}}
	// Looking straight down the mirror direction of the light
	view := unbounded(V(0, 1, 0), V(0, -1, 0))

	hit := surfaceHit(matte)
	want := 0.5/math.Pi*0.04 + 0.02
	assertColor(t, C(want, want, want), s.Shade(view, &hit, false))

	hit = surfaceHit(shiny)
	want = (0.5/math.Pi+12/(2*math.Pi))*0.04 + 0.02
	assertColor(t, C(want, want, want), s.Shade(view, &hit, false))

	// Off the highlight the lobe falls away
	offAxis := unbounded(V(5, 1, 0), V(-5, -1, 0))
	hit = surfaceHit(shiny)
	assert.Less(t, s.Shade(offAxis, &hit, false).R, want)
}

func TestTransmittance(t *testing.T) {
	var materials Materials
	transparent := materials.Add(Material{Diffuse: C(1, 1, 1)})
	half := materials.Add(Material{Diffuse: C(0.5, 1, 0.5)})
	black := materials.Add(Material{Diffuse: C(0, 0, 0)})

	tests := []struct {
		name     string
		material MaterialID
		dist     float64
		want     pt.Color
	}{
		{"clear", transparent, 10, C(1, 1, 1)},
		{"half", half, 2, C(math.Exp(-2), 1, math.Exp(-2))},
		{"zero_distance", half, 0, C(1, 1, 1)},
		{"no_material", NoMaterial, 5, C(1, 1, 1)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			hit := NewHitRecord()
			hit.Material = test.material
			hit.Dist = test.dist
			assertColor(t, test.want, Transmittance(materials, &hit))
		})
	}

	hit := NewHitRecord()
	hit.Material = black
	hit.Dist = 1e-6
	got := Transmittance(materials, &hit)
	assert.False(t, math.IsNaN(got.R))
	assert.Less(t, got.R, 1.0)
}

func TestShaderTableLookup(t *testing.T) {
	var materials Materials
	matte := materials.Add(Material{Model: ModelLambertian})
	mirror := materials.Add(Material{Model: ModelMirror})
	glossy := materials.Add(Material{Model: ModelGlossyVolume})

	st := NewShaderTable(materials, Background{Color: C(0.1, 0.2, 0.3)})
	lambertian := &Lambertian{Materials: materials}
	mirrorShader := &Mirror{}
	st.Register(ModelLambertian, lambertian)
	st.Register(ModelMirror, mirrorShader)

	for _, test := range []struct {
		material MaterialID
		want     Shader
	}{
		{matte, lambertian},
		{mirror, mirrorShader},
		{glossy, lambertian},
		{NoMaterial, lambertian},
	} {
		hit := surfaceHit(test.material)
		assert.Same(t, test.want, st.Lookup(&hit))
	}

	miss := NewHitRecord()
	assertColor(t, C(0.1, 0.2, 0.3), st.ShadeNewRay(unbounded(V(0, 0, 0), V(0, 0, 1)), &miss))
}

// depthRecorder remembers the deepest hit it was asked to shade.
type depthRecorder struct {
	inner Shader
	max   int
	calls int
}

func (d *depthRecorder) Shade(r Ray, hit *HitRecord, emit bool) pt.Color {
	d.calls++
	d.max = max(d.max, hit.TraceDepth)
	return d.inner.Shade(r, hit, emit)
}

// plane returns a 20x20 square at height z. The face points up the z axis
// unless flip is set.
func plane(z float64, flip bool, material MaterialID) *Mesh {
	m := &Mesh{Vertices: []pt.Vector{V(-10, -10, z), V(10, -10, z), V(10, 10, z), V(-10, 10, z)}}
	if flip {
		m.AddFace([3]int{0, 2, 1}, material)
		m.AddFace([3]int{0, 3, 2}, material)
	} else {
		m.AddFace([3]int{0, 1, 2}, material)
		m.AddFace([3]int{0, 2, 3}, material)
	}
	return m
}

func TestMirrorRecursionStopsAtMaxDepth(t *testing.T) {
	var materials Materials
	silver := materials.Add(Material{Name: "silver", Model: ModelMirror})
	world := NewWorld(materials, nil)
	world.AddMesh(plane(0, false, silver))
	world.AddMesh(plane(2, true, silver))

	tracer := NewRayTracer(world, materials)
	st := NewShaderTable(materials, Background{Color: C(1, 1, 1)})
	recorder := &depthRecorder{}
	recorder.inner = &Mirror{Tracer: tracer, Next: st, MaxDepth: 4}
	st.Register(ModelMirror, recorder)

	r := unbounded(V(1, -2, 1), V(0, 0, -1))
	hit := NewHitRecord()
	require.True(t, world.NearestHit(r, &hit))

	assertColor(t, C(0, 0, 0), st.Shade(r, &hit, true))
	assert.Equal(t, 4, recorder.max)
	assert.Equal(t, 5, recorder.calls)
}

func TestMirrorReflectsBackground(t *testing.T) {
	var materials Materials
	silver := materials.Add(Material{Model: ModelMirror})
	world := NewWorld(materials, nil)
	world.AddMesh(plane(0, false, silver))
	bg := Background{Color: C(0.2, 0.3, 0.4)}
	st := NewStandardShaders(NewRayTracer(world, materials), materials, nil, bg, 5)

	r := unbounded(V(0.3, 1, 1), V(0, -1, -1))
	hit := NewHitRecord()
	require.True(t, world.NearestHit(r, &hit))
	assertColor(t, bg.Color, st.Shade(r, &hit, true))

	hit.TraceDepth = 5
	assertColor(t, C(0, 0, 0), st.Shade(r, &hit, true))
}

func TestTransparentConservesEnergy(t *testing.T) {
	world, materials := glassWorld(1.5, ModelTransparent)
	bg := Background{Color: C(0.2, 0.4, 0.8)}
	st := NewStandardShaders(NewRayTracer(world, materials), materials, nil, bg, 10)

	r := unbounded(V(0, 0, 5), V(0, 0, -1))
	hit := NewHitRecord()
	require.True(t, world.NearestHit(r, &hit))
	assertColor(t, bg.Color, st.Shade(r, &hit, true))
}

func TestVolumeAbsorbs(t *testing.T) {
	var materials Materials
	smoke := materials.Add(Material{Diffuse: C(0.5, 0.5, 0.5), IOR: 1.5, Model: ModelVolume})
	world := NewWorld(materials, nil)
	world.Add(NewSphere(V(0, 0, 0), 1, smoke))
	bg := Background{Color: C(1, 1, 1)}
	st := NewStandardShaders(NewRayTracer(world, materials), materials, nil, bg, 10)

	r := unbounded(V(0, 0, 5), V(0, 0, -1))
	hit := NewHitRecord()
	require.True(t, world.NearestHit(r, &hit))

	// Entry reflection plus every path that leaves through either side after
	// crossing the medium an odd number of times.
	T := math.Exp(-2)
	want := 0.04 + 0.96*0.96*T/(1-0.04*T)
	got := st.Shade(r, &hit, true)
	assert.InDelta(t, want, got.R, 1e-4)
	assert.InDelta(t, got.R, got.G, 1e-12)
}

func TestGlossyVolumeAtMaxDepth(t *testing.T) {
	var materials Materials
	gloss := materials.Add(Material{Diffuse: C(1, 1, 1), Specular: C(1, 1, 1), Shininess: 10, IOR: 1.5, Model: ModelGlossyVolume})
	world := NewWorld(materials, nil)
	world.AddMesh(plane(0, false, gloss))
	bg := Background{Color: C(1, 1, 1)}
	tracer := NewRayTracer(world, materials)

	view := unbounded(V(0.3, -2, 1), V(0, 0, -1))
	hit := NewHitRecord()
	require.True(t, world.NearestHit(view, &hit))

	dark := NewStandardShaders(tracer, materials, nil, bg, 3)
	assert.Greater(t, dark.Shade(view, &hit, true).R, 0.0, "below the cap the sky is reflected")

	hit.TraceDepth = 3
	assertColor(t, C(0, 0, 0), dark.Shade(view, &hit, true), "indirect is exactly zero at the cap")

	lit := NewStandardShaders(tracer, materials, []Light{&PointLight{Position: V(0, 0, 5), Intensity: C(1, 1, 1)}}, bg, 3)
	assert.Greater(t, lit.Shade(view, &hit, true).R, 0.0, "direct highlight survives the cap")
}

func TestParseShadingModel(t *testing.T) {
	for model, name := range modelNames {
		parsed, err := ParseShadingModel(name)
		assert.NoError(t, err)
		assert.Equal(t, model, parsed)
		assert.Equal(t, name, model.String())
	}

	model, err := ParseShadingModel("")
	assert.NoError(t, err)
	assert.Equal(t, ModelLambertian, model)

	_, err = ParseShadingModel("velvet")
	assert.Error(t, err)
}
