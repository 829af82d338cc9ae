package config

import (
	"fmt"
	"image"
	"sort"

	"github.com/fogleman/pt/pt"

	"github.com/jdginn/go-whitted/raytrace"
	"github.com/jdginn/go-whitted/raytrace/imageio"
	"github.com/jdginn/go-whitted/raytrace/meshio"
)

func vec(v [3]float64) pt.Vector {
	return raytrace.V(v[0], v[1], v[2])
}

func color(c [3]float64) pt.Color {
	return raytrace.C(c[0], c[1], c[2])
}

// Scene is a render assembled from a config, ready to go.
type Scene struct {
	World      *raytrace.World
	Materials  raytrace.Materials
	Tracer     *raytrace.RayTracer
	Shaders    *raytrace.ShaderTable
	Caster     *raytrace.RayCaster
	Background raytrace.Background
	Display    imageio.DisplayOptions
	// Width and Height of the final image, when it is resized
	Width, Height int
}

// BuildOptions customize how a config becomes a Scene.
type BuildOptions struct {
	Logger raytrace.Logger
	// Wrap, when set, sits between the world and everything that queries it
	Wrap func(raytrace.Scene) raytrace.Scene
}

// Build loads every referenced file and wires the world, lights, shaders and
// ray caster described by c. c should have passed Validate.
func Build(c *SceneConfig, opts BuildOptions) (*Scene, error) {
	materials, err := c.buildMaterials()
	if err != nil {
		return nil, err
	}

	camera := raytrace.NewPinholeCamera(vec(c.Camera.Eye), vec(c.Camera.LookAt), vec(c.Camera.Up), c.Camera.FOV)
	world := raytrace.NewWorld(materials, camera)

	lookup := func(name string) raytrace.MaterialID {
		id, _ := materials.Lookup(name)
		return id
	}
	for _, s := range c.Objects.Spheres {
		world.Add(raytrace.NewSphere(vec(s.Center), s.Radius, lookup(s.Material)))
	}
	for _, t := range c.Objects.Triangles {
		world.Add(raytrace.NewTriangle(vec(t.Vertices[0]), vec(t.Vertices[1]), vec(t.Vertices[2]), lookup(t.Material)))
	}

	surfaces := map[string]*raytrace.Mesh{}
	assign := func(surface string) raytrace.MaterialID {
		if name, ok := c.SurfaceAssignments.Inline[surface]; ok {
			return lookup(name)
		}
		return lookup(c.SurfaceAssignments.Inline["default"])
	}
	for _, input := range c.Input.Meshes {
		meshes, err := meshio.Load(input.Path, meshio.Options{Scale: input.Scale, Assign: assign})
		if err != nil {
			return nil, fmt.Errorf("loading mesh %s: %w", input.Path, err)
		}
		for _, m := range meshes {
			if input.Translate != [3]float64{} {
				m.Transform(pt.Translate(vec(input.Translate)))
			}
			world.AddMesh(m)
			surfaces[m.Name] = m
		}
	}

	var scene raytrace.Scene = world
	if opts.Wrap != nil {
		scene = opts.Wrap(world)
	}

	shadows := !c.Render.DisableShadows
	for i, l := range c.Lights {
		switch l.Type {
		case "point":
			world.AddLight(&raytrace.PointLight{
				Position:  vec(l.Position),
				Intensity: color(l.Intensity),
				Shadows:   shadows,
				Scene:     scene,
			})
		case "directional":
			world.AddLight(&raytrace.DirectionalLight{
				Direction:      vec(l.Direction),
				Emission:       color(l.Intensity),
				Shadows:        shadows,
				ShadowDistance: c.Render.DirectionalShadowDistance,
				Scene:          scene,
			})
		case "area":
			m, ok := surfaces[l.Surface]
			if !ok {
				return nil, fmt.Errorf("light %d: no mesh surface named %q", i, l.Surface)
			}
			world.AddLight(raytrace.NewAreaLight(m, materials, shadows, scene))
		default:
			return nil, fmt.Errorf("light %d: unknown type %q", i, l.Type)
		}
	}

	background := raytrace.Background{Color: color(c.Background.Color)}
	if c.Background.Environment != "" {
		env, err := imageio.LoadEnvironment(c.Background.Environment)
		if err != nil {
			return nil, err
		}
		if c.Background.EnvironmentScale > 0 {
			env.Scale = c.Background.EnvironmentScale
		}
		background.Environment = env
	}

	display := imageio.DisplayOptions{
		Exposure: c.Output.Exposure,
		Gamma:    c.Output.Gamma,
		Curve:    imageio.DefaultToneCurve,
	}
	if len(c.Output.Tone) > 0 {
		if display.Curve, err = imageio.NewToneCurve(c.Output.Tone); err != nil {
			return nil, fmt.Errorf("building tone curve: %w", err)
		}
	}

	tracer := raytrace.NewRayTracer(scene, materials)
	shaders := raytrace.NewStandardShaders(tracer, materials, world.Lights, background, c.Render.MaxDepth)
	caster := raytrace.NewRayCaster(scene, shaders, background, c.Image.Width, c.Image.Height, c.Render.Subdivs, c.Render.Seed)
	caster.SetLogger(opts.Logger)

	return &Scene{
		World:      world,
		Materials:  materials,
		Tracer:     tracer,
		Shaders:    shaders,
		Caster:     caster,
		Background: background,
		Display:    display,
		Width:      c.Output.Width,
		Height:     c.Output.Height,
	}, nil
}

// buildMaterials converts materials in name order so ids are stable between
// runs.
func (c *SceneConfig) buildMaterials() (raytrace.Materials, error) {
	names := make([]string, 0, len(c.Materials.Inline))
	for name := range c.Materials.Inline {
		names = append(names, name)
	}
	sort.Strings(names)

	var materials raytrace.Materials
	for _, name := range names {
		m := c.Materials.Inline[name]
		model, err := raytrace.ParseShadingModel(m.Model)
		if err != nil {
			return nil, fmt.Errorf("material %s: %w", name, err)
		}
		materials.Add(raytrace.Material{
			Name:      name,
			Diffuse:   color(m.Diffuse),
			Specular:  color(m.Specular),
			Ambient:   color(m.Ambient),
			Emission:  color(m.Emission),
			Shininess: m.Shininess,
			IOR:       m.IOR,
			Model:     model,
		})
	}
	return materials, nil
}

// Image tone maps a rendered frame and resizes it when the output asks for
// a different size.
func (s *Scene) Image(f *raytrace.Frame) image.Image {
	img := imageio.ToImage(f, s.Display)
	if s.Width > 0 && s.Height > 0 && (s.Width != f.Width || s.Height != f.Height) {
		return imageio.Resize(img, s.Width, s.Height)
	}
	return img
}
