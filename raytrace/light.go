package raytrace

import (
	"math"

	"github.com/fogleman/pt/pt"
)

// Sampler supplies independent uniform values in [0,1). *rand.Rand from
// math/rand/v2 satisfies it.
type Sampler interface {
	Float64() float64
}

// Visibility is the part of the scene a light needs for shadow and photon
// queries.
type Visibility interface {
	Occluder
	NearestHit(r Ray, hit *HitRecord) bool
}

// Light is sampled once per shading evaluation.
type Light interface {
	// Sample returns the unit direction from pos toward the light and the
	// radiance arriving along it. visible is false, and radiance zero, when
	// a shadow ray finds an occluder first.
	Sample(pos pt.Vector) (dir pt.Vector, radiance pt.Color, visible bool)
	// Emit traces a photon leaving the light. It reports whether the photon
	// hit anything.
	Emit(rng Sampler) (r Ray, hit HitRecord, flux pt.Color, ok bool)
}

type PointLight struct {
	Position  pt.Vector
	Intensity pt.Color
	Shadows   bool
	Scene     Visibility
}

func (l *PointLight) Sample(pos pt.Vector) (pt.Vector, pt.Color, bool) {
	toLight := l.Position.Sub(pos)
	dist := toLight.Length()
	dir := toLight.DivScalar(dist)
	if l.Shadows && l.Scene != nil {
		shadow := NewRay(l.Position, dir.Negate(), Epsilon, dist-Epsilon, ShadowRay)
		if l.Scene.AnyHit(shadow) {
			return dir, pt.Color{}, false
		}
	}
	return dir, l.Intensity.DivScalar(dist * dist), true
}

// Emit shoots a photon in a direction drawn uniformly from the sphere. The
// flux of every photon is the light's total power 4πI.
func (l *PointLight) Emit(rng Sampler) (Ray, HitRecord, pt.Color, bool) {
	r := NewRay(l.Position, uniformSphereDirection(rng), Epsilon, math.Inf(1), SecondaryRay)
	hit := NewHitRecord()
	if l.Scene == nil || !l.Scene.NearestHit(r, &hit) {
		return r, hit, pt.Color{}, false
	}
	return r, hit, l.Intensity.MulScalar(4 * math.Pi), true
}

// uniformSphereDirection rejection samples the unit ball and projects the
// accepted point onto the sphere.
func uniformSphereDirection(rng Sampler) pt.Vector {
	for {
		p := V(2*rng.Float64()-1, 2*rng.Float64()-1, 2*rng.Float64()-1)
		l2 := p.Dot(p)
		if l2 <= 1 && l2 > 0 {
			return p.Normalize()
		}
	}
}

// DefaultShadowDistance bounds directional shadow rays when no scene scale
// is configured.
const DefaultShadowDistance = 10.0

type DirectionalLight struct {
	// Direction is the direction the light travels in
	Direction pt.Vector
	Emission  pt.Color
	Shadows   bool
	// ShadowDistance is how far a shadow ray looks for occluders
	ShadowDistance float64
	Scene          Occluder
}

func (l *DirectionalLight) Sample(pos pt.Vector) (pt.Vector, pt.Color, bool) {
	dir := l.Direction.Normalize().Negate()
	if l.Shadows && l.Scene != nil {
		far := l.ShadowDistance
		if far <= 0 {
			far = DefaultShadowDistance
		}
		if l.Scene.AnyHit(NewRay(pos, dir, Epsilon, far, ShadowRay)) {
			return dir, pt.Color{}, false
		}
	}
	return dir, l.Emission, true
}

// Emit is undefined for a light with no position.
func (l *DirectionalLight) Emit(Sampler) (Ray, HitRecord, pt.Color, bool) {
	return Ray{}, NewHitRecord(), pt.Color{}, false
}

// AreaLight treats an emissive mesh as if all of its light left from the
// center of its bounding box. Each face contributes its ambient radiance
// weighted by area and by the cosine toward the shaded point.
//
// Build area lights with NewAreaLight once the mesh is final: the face
// geometry is captured there and Sample only reads it.
type AreaLight struct {
	Mesh      *Mesh
	Materials Materials
	Shadows   bool
	Scene     Occluder

	faces *areaFaces
}

// areaFaces is the part of the mesh an area light reads while shading.
type areaFaces struct {
	center   pt.Vector
	normals  []pt.Vector
	weighted []pt.Color // emission times face area
}

func NewAreaLight(mesh *Mesh, materials Materials, shadows bool, scene Occluder) *AreaLight {
	l := &AreaLight{Mesh: mesh, Materials: materials, Shadows: shadows, Scene: scene}
	l.faces = l.captureFaces()
	return l
}

func (l *AreaLight) emission(face int) pt.Color {
	if m, ok := l.Materials.Get(l.Mesh.FaceMaterial(face)); ok {
		return m.Ambient
	}
	return pt.Color{}
}

func (l *AreaLight) captureFaces() *areaFaces {
	n := l.Mesh.FaceCount()
	f := &areaFaces{
		center:   l.Mesh.Centroid(),
		normals:  make([]pt.Vector, n),
		weighted: make([]pt.Color, n),
	}
	for i, area := range l.Mesh.FaceAreas() {
		f.normals[i] = l.Mesh.FaceNormal(i)
		f.weighted[i] = l.emission(i).MulScalar(area)
	}
	return f
}

// geometry returns the captured faces, or fresh ones for a light that was
// built as a literal. It never writes to l.
func (l *AreaLight) geometry() *areaFaces {
	if l.faces != nil {
		return l.faces
	}
	return l.captureFaces()
}

func (l *AreaLight) Sample(pos pt.Vector) (pt.Vector, pt.Color, bool) {
	faces := l.geometry()
	toLight := faces.center.Sub(pos)
	dist := toLight.Length()
	dir := toLight.DivScalar(dist)

	if l.Shadows && l.Scene != nil {
		shadow := NewRay(faces.center, dir.Negate(), Epsilon, dist-Epsilon, ShadowRay)
		if l.Scene.AnyHit(shadow) {
			return dir, pt.Color{}, false
		}
	}

	var sum pt.Color
	for i, n := range faces.normals {
		sum = sum.Add(faces.weighted[i].MulScalar(-dir.Dot(n)))
	}
	return dir, sum.DivScalar(dist * dist), true
}

// Emit never produces a photon: area lights have no photon sampling strategy.
func (l *AreaLight) Emit(Sampler) (Ray, HitRecord, pt.Color, bool) {
	return Ray{}, NewHitRecord(), pt.Color{}, false
}
