package raytrace

import (
	"github.com/fogleman/pt/pt"
)

// Mesh is an indexed triangle set. Faces index Vertices; NormalFaces index
// Normals and may be empty, in which case face normals come from geometry.
type Mesh struct {
	Name          string
	Vertices      []pt.Vector
	Normals       []pt.Vector
	Faces         [][3]int
	NormalFaces   [][3]int
	FaceMaterials []MaterialID
}

// AddFace appends a face with its material and returns its index.
func (m *Mesh) AddFace(face [3]int, material MaterialID) int {
	m.Faces = append(m.Faces, face)
	m.FaceMaterials = append(m.FaceMaterials, material)
	return len(m.Faces) - 1
}

func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

func (m *Mesh) corners(i int) (pt.Vector, pt.Vector, pt.Vector) {
	f := m.Faces[i]
	return m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
}

// FaceAreas returns the area of every face. It never modifies the mesh, so
// it is safe to call from concurrent renders.
func (m *Mesh) FaceAreas() []float64 {
	areas := make([]float64, len(m.Faces))
	for i := range m.Faces {
		v0, v1, v2 := m.corners(i)
		areas[i] = 0.5 * v1.Sub(v0).Cross(v2.Sub(v0)).Length()
	}
	return areas
}

// SurfaceArea is the sum of all face areas.
func (m *Mesh) SurfaceArea() float64 {
	total := 0.0
	for _, a := range m.FaceAreas() {
		total += a
	}
	return total
}

// FaceNormal averages the vertex normals of face i. Without vertex normals it
// falls back to the geometric normal of the face.
func (m *Mesh) FaceNormal(i int) pt.Vector {
	if i < len(m.NormalFaces) && len(m.Normals) > 0 {
		f := m.NormalFaces[i]
		return m.Normals[f[0]].Add(m.Normals[f[1]]).Add(m.Normals[f[2]]).Normalize()
	}
	v0, v1, v2 := m.corners(i)
	return v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
}

func (m *Mesh) FaceMaterial(i int) MaterialID {
	if i < len(m.FaceMaterials) {
		return m.FaceMaterials[i]
	}
	return NoMaterial
}

func (m *Mesh) BoundingBox() pt.Box {
	if len(m.Vertices) == 0 {
		return pt.Box{}
	}
	min := m.Vertices[0]
	max := m.Vertices[0]
	for _, v := range m.Vertices {
		min = min.Min(v)
		max = max.Max(v)
	}
	return pt.Box{Min: min, Max: max}
}

// Centroid is the center of the mesh's bounding box.
func (m *Mesh) Centroid() pt.Vector {
	return m.BoundingBox().Anchor(V(0.5, 0.5, 0.5))
}

// Transform applies matrix to vertices and normals.
func (m *Mesh) Transform(matrix pt.Matrix) {
	for i, v := range m.Vertices {
		m.Vertices[i] = matrix.MulPosition(v)
	}
	for i, n := range m.Normals {
		m.Normals[i] = matrix.MulDirection(n)
	}
}

// Triangles expands the mesh into primitives sharing the mesh's materials.
func (m *Mesh) Triangles() []*Triangle {
	tris := make([]*Triangle, 0, len(m.Faces))
	for i := range m.Faces {
		v0, v1, v2 := m.corners(i)
		tris = append(tris, NewTriangle(v0, v1, v2, m.FaceMaterial(i)))
	}
	return tris
}
