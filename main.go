package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/jdginn/go-whitted/interact"
	"github.com/jdginn/go-whitted/raytrace"
	"github.com/jdginn/go-whitted/raytrace/config"
	"github.com/jdginn/go-whitted/raytrace/imageio"
	"github.com/jdginn/go-whitted/raytrace/inspect"
	"github.com/jdginn/go-whitted/raytrace/job"
	"github.com/jdginn/go-whitted/raytrace/meshio"
)

var CLI struct {
	Render      RenderCmd      `cmd:"" help:"Render a scene"`
	Validate    ValidateCmd    `cmd:"" help:"Check a scene file without rendering"`
	Inspect     InspectCmd     `cmd:"" help:"Plot every ray traced for one pixel"`
	Stats       StatsCmd       `cmd:"" help:"Render a scene and report luminance statistics"`
	Interactive InteractiveCmd `cmd:"" help:"Tune rays per pixel and re-render from the terminal"`
	ExportSTL   ExportSTLCmd   `cmd:"" name:"export-stl" help:"Write the scene's meshes to an STL file"`
}

// SceneFlags are shared by every command that loads a scene.
type SceneFlags struct {
	Config  string `arg:"" name:"config" help:"scene file (YAML)" type:"existingfile"`
	Subdivs int    `name:"subdivs" help:"override render.subdivs"`
	Workers int    `name:"workers" help:"override render.workers"`
}

func (f SceneFlags) load(opts config.BuildOptions) (*config.SceneConfig, *config.Scene, error) {
	c, err := config.LoadFromFile(f.Config, config.DefaultLoadOptions)
	if err != nil {
		return nil, nil, err
	}
	if f.Subdivs > 0 {
		c.Render.Subdivs = f.Subdivs
	}
	if f.Workers > 0 {
		c.Render.Workers = f.Workers
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	scene, err := config.Build(c, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("building scene: %w", err)
	}
	return c, scene, nil
}

// newRenderDir creates a render directory holding the scene file as written
// and the resolved scene stamped with metadata.
func newRenderDir(c *config.SceneConfig, configPath string) (*job.Dir, error) {
	dir, err := job.CreateRenderDirectory(".")
	if err != nil {
		return nil, err
	}
	if err := dir.CopyConfigFile(configPath); err != nil {
		return nil, err
	}
	if err := config.SaveToFile(c, dir.GetFilePath("resolved.yaml")); err != nil {
		return nil, err
	}
	return dir, nil
}

// outputPath is output.path when set, otherwise a file in a fresh render
// directory.
func outputPath(c *config.SceneConfig, configPath, name string) (string, error) {
	if c.Output.Path != "" {
		if err := os.MkdirAll(filepath.Dir(c.Output.Path), 0755); err != nil {
			return "", fmt.Errorf("creating output directory: %w", err)
		}
		return c.Output.Path, nil
	}
	dir, err := newRenderDir(c, configPath)
	if err != nil {
		return "", err
	}
	return dir.GetFilePath(name), nil
}

func render(ctx context.Context, c *config.SceneConfig, scene *config.Scene) (*raytrace.Frame, error) {
	log.Printf("Rendering %dx%d, %d rays per pixel, max depth %d",
		c.Image.Width, c.Image.Height, scene.Caster.Subdivs()*scene.Caster.Subdivs(), c.Render.MaxDepth)
	return scene.Caster.Render(ctx, c.Render.Workers)
}

type RenderCmd struct {
	SceneFlags
}

func (cmd RenderCmd) Run() error {
	c, scene, err := cmd.load(config.BuildOptions{})
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	frame, err := render(ctx, c, scene)
	if err != nil {
		return err
	}
	path, err := outputPath(c, cmd.Config, "frame.png")
	if err != nil {
		return err
	}
	if err := imageio.Save(path, scene.Image(frame)); err != nil {
		return err
	}
	log.Printf("Saved %s", path)
	return nil
}

type ValidateCmd struct {
	Config string `arg:"" name:"config" help:"scene file (YAML)" type:"existingfile"`
}

func (cmd ValidateCmd) Run() error {
	c, err := config.LoadFromFile(cmd.Config, config.LoadOptions{})
	if err != nil {
		return err
	}
	resolver := config.NewPathResolver(filepath.Dir(cmd.Config))
	errs := resolver.MissingInputs(c)
	if len(errs) == 0 {
		c.ResolvePaths(resolver)
		if err := c.LoadAndMerge(); err != nil {
			return err
		}
		errs = c.Validate()
	}
	if len(errs) > 0 {
		fmt.Print(config.FormatValidationErrors(errs))
		return fmt.Errorf("%d validation errors", len(errs))
	}
	fmt.Printf("%s is valid\n", cmd.Config)
	return nil
}

type InspectCmd struct {
	SceneFlags
	X           int       `name:"x" help:"pixel column" default:"0"`
	Y           int       `name:"y" help:"pixel row, counted from the bottom" default:"0"`
	PlanePoint  []float64 `name:"plane-point" help:"a point on the plot plane" default:"0,0,0"`
	PlaneNormal []float64 `name:"plane-normal" help:"normal of the plot plane" default:"0,1,0"`
	MissLength  float64   `name:"miss-length" help:"length drawn for rays that escape" default:"10"`
	Size        int       `name:"size" help:"plot size in pixels" default:"800"`
	Out         string    `name:"out" help:"plot file" default:"rays.png"`
}

func (cmd InspectCmd) Run() error {
	var recorder *inspect.RecordingScene
	_, scene, err := cmd.load(config.BuildOptions{Wrap: func(s raytrace.Scene) raytrace.Scene {
		recorder = inspect.NewRecordingScene(s, cmd.MissLength)
		return recorder
	}})
	if err != nil {
		return err
	}
	if cmd.X < 0 || cmd.X >= scene.Caster.Width() || cmd.Y < 0 || cmd.Y >= scene.Caster.Height() {
		return fmt.Errorf("pixel (%d, %d) is outside the %dx%d image", cmd.X, cmd.Y, scene.Caster.Width(), scene.Caster.Height())
	}

	if len(cmd.PlanePoint) != 3 || len(cmd.PlaneNormal) != 3 {
		return fmt.Errorf("plane point and normal need three components")
	}
	c := scene.Caster.ComputePixel(cmd.X, cmd.Y)
	segments := recorder.Segments()
	log.Printf("Pixel (%d, %d) = %.4f %.4f %.4f from %d rays", cmd.X, cmd.Y, c.R, c.G, c.B, len(segments))

	view := inspect.View{
		Meshes: scene.World.Meshes,
		XSize:  cmd.Size,
		YSize:  cmd.Size,
		Plane: inspect.MakePlane(
			raytrace.V(cmd.PlanePoint[0], cmd.PlanePoint[1], cmd.PlanePoint[2]),
			raytrace.V(cmd.PlaneNormal[0], cmd.PlaneNormal[1], cmd.PlaneNormal[2]),
		),
	}
	if err := view.SavePNG(cmd.Out, segments); err != nil {
		return err
	}
	log.Printf("Saved %s", cmd.Out)
	return nil
}

type StatsCmd struct {
	SceneFlags
	Histogram string `name:"histogram" help:"also plot a luminance histogram to this PNG"`
	Bins      int    `name:"bins" help:"histogram bins" default:"32"`
}

func (cmd StatsCmd) Run() error {
	if cmd.Histogram != "" && cmd.Bins <= 0 {
		return fmt.Errorf("--bins must be positive, got %d", cmd.Bins)
	}
	c, scene, err := cmd.load(config.BuildOptions{})
	if err != nil {
		return err
	}
	frame, err := render(context.Background(), c, scene)
	if err != nil {
		return err
	}
	stats, err := inspect.FrameStats(frame)
	if err != nil {
		return err
	}
	fmt.Println(stats)

	if cmd.Histogram != "" {
		img, err := inspect.PlotHistogram(frame, cmd.Bins, 800, 400)
		if err != nil {
			return err
		}
		if err := imageio.Save(cmd.Histogram, img); err != nil {
			return err
		}
		log.Printf("Saved %s", cmd.Histogram)
	}
	return nil
}

type InteractiveCmd struct {
	SceneFlags
}

func (cmd InteractiveCmd) Run() error {
	c, scene, err := cmd.load(config.BuildOptions{})
	if err != nil {
		return err
	}
	dir, err := newRenderDir(c, cmd.Config)
	if err != nil {
		return err
	}
	save := func(f *raytrace.Frame) (string, error) {
		n := scene.Caster.Subdivs()
		path := dir.GetFilePath(fmt.Sprintf("frame-%drpp.png", n*n))
		return path, imageio.Save(path, scene.Image(f))
	}
	return interact.Interact(scene.Caster, save, c.Render.Workers)
}

type ExportSTLCmd struct {
	Config string `arg:"" name:"config" help:"scene file (YAML)" type:"existingfile"`
	Out    string `arg:"" name:"out" help:"STL file to write"`
}

func (cmd ExportSTLCmd) Run() error {
	_, scene, err := SceneFlags{Config: cmd.Config}.load(config.BuildOptions{})
	if err != nil {
		return err
	}
	if err := meshio.SaveSTL(cmd.Out, scene.World.Meshes...); err != nil {
		return err
	}
	log.Printf("Saved %d meshes to %s", len(scene.World.Meshes), cmd.Out)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("whitted"),
		kong.Description("A recursive Whitted-style ray tracer."),
	)
	if err := ctx.Run(); err != nil {
		log.Fatal(err)
	}
}
