package raytrace

import (
	"fmt"
	"strings"

	"github.com/fogleman/pt/pt"
)

// MaterialID indexes into Materials.
type MaterialID int

// NoMaterial marks a hit without a surface description.
const NoMaterial MaterialID = -1

// ShadingModel selects the shader used for a material.
type ShadingModel int

const (
	ModelLambertian ShadingModel = iota
	ModelPhong
	ModelMirror
	ModelTransparent
	ModelRefractive
	ModelVolume
	ModelGlossyVolume
)

var modelNames = map[ShadingModel]string{
	ModelLambertian:   "lambertian",
	ModelPhong:        "phong",
	ModelMirror:       "mirror",
	ModelTransparent:  "transparent",
	ModelRefractive:   "refractive",
	ModelVolume:       "volume",
	ModelGlossyVolume: "glossy_volume",
}

func (m ShadingModel) String() string {
	if name, ok := modelNames[m]; ok {
		return name
	}
	return fmt.Sprintf("ShadingModel(%d)", int(m))
}

// ParseShadingModel accepts the names returned by ShadingModel.String. The
// empty string selects the Lambertian model.
func ParseShadingModel(s string) (ShadingModel, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ModelLambertian, nil
	}
	for model, name := range modelNames {
		if name == s {
			return model, nil
		}
	}
	return 0, fmt.Errorf("unknown shading model %q", s)
}

// Material describes how a surface reflects, refracts and emits light.
type Material struct {
	Name     string
	Diffuse  pt.Color
	Specular pt.Color
	// Ambient is the per-face emitted radiance read by area lights
	Ambient pt.Color
	// Emission is added to the shaded result when emission is requested
	Emission  pt.Color
	Shininess float64
	IOR       float64
	Model     ShadingModel
}

// Materials owns every material in a scene. Hit records and lights refer to
// entries by MaterialID.
type Materials []Material

// Add appends m and returns its id.
func (ms *Materials) Add(m Material) MaterialID {
	*ms = append(*ms, m)
	return MaterialID(len(*ms) - 1)
}

// Get returns the material for id, or false when id does not name one.
func (ms Materials) Get(id MaterialID) (*Material, bool) {
	if id < 0 || int(id) >= len(ms) {
		return nil, false
	}
	return &ms[id], true
}

// Lookup finds a material by name.
func (ms Materials) Lookup(name string) (MaterialID, bool) {
	for i := range ms {
		if ms[i].Name == name {
			return MaterialID(i), true
		}
	}
	return NoMaterial, false
}

func (ms Materials) ior(id MaterialID) float64 {
	if m, ok := ms.Get(id); ok && m.IOR > 0 {
		return m.IOR
	}
	return 1
}
