package config

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jdginn/go-whitted/raytrace"
)

func validatePositive(field string, value float64) []ValidationError {
	if value <= 0 {
		return []ValidationError{{
			Field:   field,
			Message: "must be positive",
		}}
	}
	return nil
}

func validateNonNegative(field string, value float64) []ValidationError {
	if value < 0 {
		return []ValidationError{{
			Field:   field,
			Message: "must be non-negative",
		}}
	}
	return nil
}

func validateInRange(field string, value, min, max float64) []ValidationError {
	if value < min || value > max {
		return []ValidationError{{
			Field:   field,
			Message: fmt.Sprintf("must be between %v and %v", min, max),
		}}
	}
	return nil
}

func validateColor(field string, c [3]float64) []ValidationError {
	for _, v := range c {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return []ValidationError{{
				Field:   field,
				Message: "color channels must be finite and non-negative",
			}}
		}
	}
	return nil
}

func validateNonZero(field string, vec [3]float64) []ValidationError {
	if vec == [3]float64{} {
		return []ValidationError{{
			Field:   field,
			Message: "must be a non-zero vector",
		}}
	}
	return nil
}

// ValidationError represents a structured validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FormatValidationErrors groups errors by their top level section.
func FormatValidationErrors(errs []ValidationError) string {
	if len(errs) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Validation Errors:\n")

	categories := map[string][]ValidationError{}
	for _, err := range errs {
		category := strings.Split(err.Field, ".")[0]
		categories[category] = append(categories[category], err)
	}
	names := make([]string, 0, len(categories))
	for category := range categories {
		names = append(names, category)
	}
	sort.Strings(names)

	for _, category := range names {
		b.WriteString(fmt.Sprintf("\n%s:\n", strings.ToUpper(category)))
		for _, err := range categories[category] {
			field := strings.TrimPrefix(err.Field, category+".")
			if field == category {
				field = "general"
			}
			b.WriteString(fmt.Sprintf("  - %s: %s\n", field, err.Message))
		}
	}
	return b.String()
}

// Validate performs validation on the entire configuration
func (c *SceneConfig) Validate() []ValidationError {
	var errors []ValidationError
	errors = append(errors, c.Materials.Validate()...)
	errors = append(errors, c.SurfaceAssignments.Validate(&c.Materials, c.Input.Meshes)...)
	errors = append(errors, c.Input.Validate()...)
	errors = append(errors, c.Objects.Validate(&c.Materials)...)
	for i, light := range c.Lights {
		errors = append(errors, light.Validate(fmt.Sprintf("lights.%d", i), c.surfaces())...)
	}
	errors = append(errors, c.Camera.Validate()...)
	errors = append(errors, c.Background.Validate()...)
	errors = append(errors, c.Image.Validate()...)
	errors = append(errors, c.Render.Validate()...)
	errors = append(errors, c.Output.Validate()...)
	if len(c.Objects.Spheres)+len(c.Objects.Triangles)+len(c.Input.Meshes) == 0 {
		errors = append(errors, ValidationError{
			Field:   "objects",
			Message: "scene has no geometry",
		})
	}
	return errors
}

// surfaces lists the surface names that single-file meshes will carry. 3MF
// object names are only known once the file is read.
func (c *SceneConfig) surfaces() map[string]bool {
	names := map[string]bool{}
	for _, m := range c.Input.Meshes {
		names[strings.TrimSuffix(filepath.Base(m.Path), filepath.Ext(m.Path))] = true
	}
	for surface := range c.SurfaceAssignments.Inline {
		names[surface] = true
	}
	return names
}

func (m *Materials) Validate() []ValidationError {
	var errors []ValidationError

	if m.Inline == nil && m.FromFile == "" {
		return append(errors, ValidationError{
			Field:   "materials",
			Message: "either inline or from_file must be specified",
		})
	}

	for name, material := range m.Inline {
		field := fmt.Sprintf("materials.inline.%s", name)
		if _, err := raytrace.ParseShadingModel(material.Model); err != nil {
			errors = append(errors, ValidationError{Field: field + ".model", Message: err.Error()})
		}
		errors = append(errors, validateColor(field+".diffuse", material.Diffuse)...)
		errors = append(errors, validateColor(field+".specular", material.Specular)...)
		errors = append(errors, validateColor(field+".ambient", material.Ambient)...)
		errors = append(errors, validateColor(field+".emission", material.Emission)...)
		errors = append(errors, validateNonNegative(field+".shininess", material.Shininess)...)
		errors = append(errors, validateNonNegative(field+".ior", material.IOR)...)
		if material.Model == "volume" || material.Model == "glossy_volume" {
			for _, rho := range material.Diffuse {
				if rho > 1 {
					errors = append(errors, ValidationError{
						Field:   field + ".diffuse",
						Message: "absorbing media need reflectance between 0.0 and 1.0",
					})
					break
				}
			}
		}
	}
	return errors
}

func (sa *SurfaceAssignments) Validate(materials *Materials, meshes []MeshInput) []ValidationError {
	var errors []ValidationError

	if sa.Inline == nil && sa.FromFile == "" {
		if len(meshes) == 0 {
			return nil
		}
		return append(errors, ValidationError{
			Field:   "surface_assignments",
			Message: "either inline or from_file must be specified when meshes are loaded",
		})
	}

	if sa.Inline != nil {
		if _, hasDefault := sa.Inline["default"]; !hasDefault && len(meshes) > 0 {
			errors = append(errors, ValidationError{
				Field:   "surface_assignments.inline",
				Message: "must include a default material",
			})
		}
		for surface, material := range sa.Inline {
			if !materials.HasMaterial(material) {
				errors = append(errors, ValidationError{
					Field:   fmt.Sprintf("surface_assignments.inline.%s", surface),
					Message: fmt.Sprintf("references undefined material '%s'", material),
				})
			}
		}
	}
	return errors
}

func (i *Input) Validate() []ValidationError {
	var errors []ValidationError
	for n, m := range i.Meshes {
		field := fmt.Sprintf("input.meshes.%d", n)
		if m.Path == "" {
			errors = append(errors, ValidationError{Field: field + ".path", Message: "mesh path is required"})
		}
		errors = append(errors, validatePositive(field+".scale", m.Scale)...)
	}
	return errors
}

func (o *Objects) Validate(materials *Materials) []ValidationError {
	var errors []ValidationError
	checkMaterial := func(field, name string) {
		if !materials.HasMaterial(name) {
			errors = append(errors, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("references undefined material '%s'", name),
			})
		}
	}
	for i, s := range o.Spheres {
		field := fmt.Sprintf("objects.spheres.%d", i)
		errors = append(errors, validatePositive(field+".radius", s.Radius)...)
		checkMaterial(field+".material", s.Material)
	}
	for i, t := range o.Triangles {
		field := fmt.Sprintf("objects.triangles.%d", i)
		v0, v1, v2 := vec(t.Vertices[0]), vec(t.Vertices[1]), vec(t.Vertices[2])
		if v1.Sub(v0).Cross(v2.Sub(v0)).Length() == 0 {
			errors = append(errors, ValidationError{Field: field + ".vertices", Message: "triangle is degenerate"})
		}
		checkMaterial(field+".material", t.Material)
	}
	return errors
}

func (l *Light) Validate(field string, surfaces map[string]bool) []ValidationError {
	var errors []ValidationError
	switch l.Type {
	case "point":
		errors = append(errors, validateColor(field+".intensity", l.Intensity)...)
	case "directional":
		errors = append(errors, validateNonZero(field+".direction", l.Direction)...)
		errors = append(errors, validateColor(field+".intensity", l.Intensity)...)
	case "area":
		if !surfaces[l.Surface] {
			errors = append(errors, ValidationError{
				Field:   field + ".surface",
				Message: fmt.Sprintf("unknown emitting surface '%s'", l.Surface),
			})
		}
	default:
		errors = append(errors, ValidationError{
			Field:   field + ".type",
			Message: fmt.Sprintf("unknown light type '%s'", l.Type),
		})
	}
	return errors
}

func (c *Camera) Validate() []ValidationError {
	var errors []ValidationError
	errors = append(errors, validateInRange("camera.fov", c.FOV, 1, 179)...)
	errors = append(errors, validateNonZero("camera.up", c.Up)...)
	forward := vec(c.LookAt).Sub(vec(c.Eye))
	if forward.Length() == 0 {
		errors = append(errors, ValidationError{Field: "camera.look_at", Message: "must differ from eye"})
	} else if forward.Normalize().Cross(vec(c.Up).Normalize()).Length() < 1e-9 {
		errors = append(errors, ValidationError{Field: "camera.up", Message: "must not be parallel to the view direction"})
	}
	return errors
}

func (b *Background) Validate() []ValidationError {
	errors := validateColor("background.color", b.Color)
	errors = append(errors, validateNonNegative("background.environment_scale", b.EnvironmentScale)...)
	return errors
}

func (i *Image) Validate() []ValidationError {
	var errors []ValidationError
	errors = append(errors, validatePositive("image.width", float64(i.Width))...)
	errors = append(errors, validatePositive("image.height", float64(i.Height))...)
	return errors
}

func (r *Render) Validate() []ValidationError {
	var errors []ValidationError
	errors = append(errors, validatePositive("render.subdivs", float64(r.Subdivs))...)
	errors = append(errors, validatePositive("render.max_depth", float64(r.MaxDepth))...)
	errors = append(errors, validateNonNegative("render.workers", float64(r.Workers))...)
	errors = append(errors, validateNonNegative("render.directional_shadow_distance", r.DirectionalShadowDistance)...)
	return errors
}

func (o *Output) Validate() []ValidationError {
	var errors []ValidationError
	if o.Path != "" {
		switch strings.ToLower(filepath.Ext(o.Path)) {
		case ".png", ".webp":
		default:
			errors = append(errors, ValidationError{Field: "output.path", Message: "must end in .png or .webp"})
		}
	}
	errors = append(errors, validateNonNegative("output.exposure", o.Exposure)...)
	errors = append(errors, validateNonNegative("output.gamma", o.Gamma)...)
	errors = append(errors, validateNonNegative("output.width", float64(o.Width))...)
	errors = append(errors, validateNonNegative("output.height", float64(o.Height))...)
	if len(o.Tone) == 1 {
		errors = append(errors, ValidationError{Field: "output.tone", Message: "needs at least 2 knots"})
	}
	for x, y := range o.Tone {
		errors = append(errors, validateInRange(fmt.Sprintf("output.tone.%v", x), y, 0, 1)...)
	}
	return errors
}
