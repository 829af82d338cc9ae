package meshio

import (
	"fmt"

	"github.com/fogleman/pt/pt"
	"github.com/hpinc/go3mf"
	"github.com/jdginn/go-whitted/raytrace"
)

// Load3MF reads every build item of a 3MF package. Each object becomes a mesh
// named after the object, and its faces take the material assigned to that
// name.
func Load3MF(path string, opts Options) ([]*raytrace.Mesh, error) {
	var model go3mf.Model
	r, err := go3mf.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening 3mf file: %w", err)
	}
	defer r.Close()
	if err := r.Decode(&model); err != nil {
		return nil, fmt.Errorf("decoding 3mf file: %w", err)
	}

	scale := opts.scale()
	var meshes []*raytrace.Mesh
	for _, item := range model.Build.Items {
		obj, ok := model.FindObject(item.ObjectPath(), item.ObjectID)
		if !ok || obj.Mesh == nil {
			continue
		}

		material := opts.material(obj.Name)
		m := &raytrace.Mesh{Name: obj.Name}
		m.Vertices = make([]pt.Vector, len(obj.Mesh.Vertices.Vertex))
		for i, v := range obj.Mesh.Vertices.Vertex {
			m.Vertices[i] = pt.Vector{
				X: float64(v.X()) * scale,
				Y: float64(v.Y()) * scale,
				Z: float64(v.Z()) * scale,
			}
		}
		for _, t := range obj.Mesh.Triangles.Triangle {
			m.AddFace([3]int{int(t.V1), int(t.V2), int(t.V3)}, material)
		}
		meshes = append(meshes, m)
	}
	if len(meshes) == 0 {
		return nil, fmt.Errorf("3mf file %s has no mesh objects", path)
	}
	return meshes, nil
}
