package raytrace

import (
	"github.com/fogleman/pt/pt"
)

// Occluder answers existence-only visibility queries for shadow rays.
type Occluder interface {
	AnyHit(r Ray) bool
}

// Scene is everything the shading core needs to know about the world.
type Scene interface {
	Occluder
	// NearestHit fills hit with the closest intersection inside the ray's
	// interval and reports whether there was one.
	NearestHit(r Ray, hit *HitRecord) bool
	Camera() Camera
}

// World is a flat list of primitives tested one by one behind a bounding box
// check. It is read-only once rendering starts.
type World struct {
	Materials  Materials
	Lights     []Light
	Meshes     []*Mesh
	primitives []Primitive
	boxes      []pt.Box
	camera     Camera
}

func NewWorld(materials Materials, camera Camera) *World {
	return &World{Materials: materials, camera: camera}
}

func (w *World) Camera() Camera {
	return w.camera
}

func (w *World) SetCamera(c Camera) {
	w.camera = c
}

// Add registers a primitive and returns its index.
func (w *World) Add(p Primitive) int {
	w.primitives = append(w.primitives, p)
	w.boxes = append(w.boxes, p.BoundingBox())
	return len(w.primitives) - 1
}

// AddMesh registers every face of m as a triangle primitive.
func (w *World) AddMesh(m *Mesh) {
	w.Meshes = append(w.Meshes, m)
	for _, t := range m.Triangles() {
		w.Add(t)
	}
}

func (w *World) AddLight(l Light) {
	w.Lights = append(w.Lights, l)
}

func (w *World) Primitives() []Primitive {
	return w.primitives
}

// Transform applies m to every primitive and refreshes the cached boxes.
func (w *World) Transform(m pt.Matrix) {
	for i, p := range w.primitives {
		p.Transform(m)
		w.boxes[i] = p.BoundingBox()
	}
}

// BoundingBox encloses every primitive in the world.
func (w *World) BoundingBox() pt.Box {
	if len(w.boxes) == 0 {
		return pt.Box{}
	}
	box := w.boxes[0]
	for _, b := range w.boxes[1:] {
		box = pt.Box{Min: box.Min.Min(b.Min), Max: box.Max.Max(b.Max)}
	}
	return box
}

func (w *World) NearestHit(r Ray, hit *HitRecord) bool {
	found := false
	for i, p := range w.primitives {
		if !boxHit(w.boxes[i], r) {
			continue
		}
		if p.Intersect(r, hit, i) {
			found = true
			r.TMax = hit.Dist
		}
	}
	hit.Hit = found
	return found
}

func (w *World) AnyHit(r Ray) bool {
	var scratch HitRecord
	for i, p := range w.primitives {
		if !boxHit(w.boxes[i], r) {
			continue
		}
		if p.Intersect(r, &scratch, i) {
			return true
		}
	}
	return false
}
