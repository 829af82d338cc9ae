// Package config reads YAML scene files and turns them into renderable
// scenes.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadOptions configures the behavior of config loading
type LoadOptions struct {
	ValidateImmediately bool
	ResolvePaths        bool
	MergeFiles          bool
}

// DefaultLoadOptions is what the command line uses.
var DefaultLoadOptions = LoadOptions{ValidateImmediately: true, ResolvePaths: true, MergeFiles: true}

// LoadFromFile loads a SceneConfig from a YAML file
func LoadFromFile(path string, opts LoadOptions) (*SceneConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := &SceneConfig{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	config.applyDefaults()

	if opts.ResolvePaths {
		resolver := NewPathResolver(filepath.Dir(path))
		if opts.ValidateImmediately {
			if errs := resolver.MissingInputs(config); len(errs) > 0 {
				return nil, fmt.Errorf("missing input files for %s:\n%s", path, FormatValidationErrors(errs))
			}
		}
		config.ResolvePaths(resolver)
	}

	if opts.MergeFiles {
		if err := config.LoadAndMerge(); err != nil {
			return nil, fmt.Errorf("merging external files: %w", err)
		}
	}

	if opts.ValidateImmediately {
		if errs := config.Validate(); len(errs) > 0 {
			return nil, fmt.Errorf("invalid config %s:\n%s", path, FormatValidationErrors(errs))
		}
	}

	return config, nil
}

// SaveToFile saves a SceneConfig to a YAML file
func SaveToFile(config *SceneConfig, path string) error {
	NewMetadataCollector().PopulateMetadata(config)

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// applyDefaults fills in settings a scene file may leave out.
func (c *SceneConfig) applyDefaults() {
	if c.Camera.Up == [3]float64{} {
		c.Camera.Up = [3]float64{0, 1, 0}
	}
	if c.Camera.FOV == 0 {
		c.Camera.FOV = 60
	}
	if c.Render.Subdivs == 0 {
		c.Render.Subdivs = 1
	}
	if c.Render.MaxDepth == 0 {
		c.Render.MaxDepth = 5
	}
	for i := range c.Input.Meshes {
		if c.Input.Meshes[i].Scale == 0 {
			c.Input.Meshes[i].Scale = 1
		}
	}
}

// ResolvePaths resolves all relative paths in the config against the
// directory of the scene file.
func (c *SceneConfig) ResolvePaths(resolver *PathResolver) {
	for i := range c.Input.Meshes {
		c.Input.Meshes[i].Path = resolver.ResolvePath(c.Input.Meshes[i].Path)
	}
	c.Materials.FromFile = resolver.ResolvePath(c.Materials.FromFile)
	c.SurfaceAssignments.FromFile = resolver.ResolvePath(c.SurfaceAssignments.FromFile)
	c.Background.Environment = resolver.ResolvePath(c.Background.Environment)
	c.Output.Path = resolver.ResolvePath(c.Output.Path)
}
