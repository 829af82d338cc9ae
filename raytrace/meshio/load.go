// Package meshio reads triangle meshes from disk into raytrace meshes and
// writes them back out for inspection in other tools.
package meshio

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jdginn/go-whitted/raytrace"
)

// Assigner maps a named surface of a mesh file to a material.
type Assigner func(surface string) raytrace.MaterialID

// Options control how a mesh file becomes raytrace geometry.
type Options struct {
	// Scale multiplies every coordinate. Zero leaves coordinates unchanged.
	Scale  float64
	Assign Assigner
}

func (o Options) scale() float64 {
	if o.Scale == 0 {
		return 1
	}
	return o.Scale
}

func (o Options) material(surface string) raytrace.MaterialID {
	if o.Assign == nil {
		return raytrace.NoMaterial
	}
	return o.Assign(surface)
}

// Load picks a reader by file extension. 3MF files produce one mesh per
// build item; OBJ and STL files produce a single mesh named after the file.
func Load(path string, opts Options) ([]*raytrace.Mesh, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".3mf":
		return Load3MF(path, opts)
	case ".obj":
		m, err := LoadOBJ(path, opts)
		if err != nil {
			return nil, err
		}
		return []*raytrace.Mesh{m}, nil
	case ".stl":
		m, err := LoadSTL(path, opts)
		if err != nil {
			return nil, err
		}
		return []*raytrace.Mesh{m}, nil
	default:
		return nil, fmt.Errorf("unsupported mesh format %q", ext)
	}
}

// SurfaceName is the surface name used for single-mesh formats.
func SurfaceName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
