package meshio

import (
	"fmt"

	"github.com/fogleman/pt/pt"
	"github.com/jdginn/go-whitted/raytrace"
)

// LoadOBJ reads a Wavefront OBJ file. Vertex normals in the file become the
// mesh's shading normals.
func LoadOBJ(path string, opts Options) (*raytrace.Mesh, error) {
	mesh, err := pt.LoadOBJ(path, pt.Material{})
	if err != nil {
		return nil, fmt.Errorf("loading obj: %w", err)
	}
	return fromPT(SurfaceName(path), mesh, opts), nil
}

// LoadSTL reads an ASCII or binary STL file.
func LoadSTL(path string, opts Options) (*raytrace.Mesh, error) {
	mesh, err := pt.LoadSTL(path, pt.Material{})
	if err != nil {
		return nil, fmt.Errorf("loading stl: %w", err)
	}
	return fromPT(SurfaceName(path), mesh, opts), nil
}

// fromPT welds the triangle soup of a pt mesh into an indexed mesh.
func fromPT(name string, mesh *pt.Mesh, opts Options) *raytrace.Mesh {
	scale := opts.scale()
	material := opts.material(name)
	m := &raytrace.Mesh{Name: name}

	vertices := map[pt.Vector]int{}
	vertex := func(v pt.Vector) int {
		v = v.MulScalar(scale)
		if i, ok := vertices[v]; ok {
			return i
		}
		vertices[v] = len(m.Vertices)
		m.Vertices = append(m.Vertices, v)
		return vertices[v]
	}
	normals := map[pt.Vector]int{}
	normal := func(n pt.Vector) int {
		if i, ok := normals[n]; ok {
			return i
		}
		normals[n] = len(m.Normals)
		m.Normals = append(m.Normals, n)
		return normals[n]
	}

	hasNormals := true
	for _, t := range mesh.Triangles {
		m.AddFace([3]int{vertex(t.V1), vertex(t.V2), vertex(t.V3)}, material)
		if (t.N1 == pt.Vector{}) || (t.N2 == pt.Vector{}) || (t.N3 == pt.Vector{}) {
			hasNormals = false
		}
		if hasNormals {
			m.NormalFaces = append(m.NormalFaces, [3]int{normal(t.N1), normal(t.N2), normal(t.N3)})
		}
	}
	if !hasNormals {
		m.Normals = nil
		m.NormalFaces = nil
	}
	return m
}

// SaveSTL writes every face of meshes into one binary STL file.
func SaveSTL(path string, meshes ...*raytrace.Mesh) error {
	var triangles []*pt.Triangle
	material := pt.Material{}
	for _, m := range meshes {
		for _, t := range m.Triangles() {
			triangles = append(triangles, pt.NewTriangle(t.V0, t.V1, t.V2, pt.Vector{}, pt.Vector{}, pt.Vector{}, material))
		}
	}
	if len(triangles) == 0 {
		return fmt.Errorf("nothing to write to %s", path)
	}
	if err := pt.NewMesh(triangles).SaveSTL(path); err != nil {
		return fmt.Errorf("saving stl: %w", err)
	}
	return nil
}
