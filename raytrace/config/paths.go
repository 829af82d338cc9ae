package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathResolver resolves the files a scene refers to: meshes, side files,
// the environment map and the output image.
type PathResolver struct {
	baseDir string
}

// NewPathResolver resolves paths relative to the scene file's directory.
func NewPathResolver(baseDir string) *PathResolver {
	return &PathResolver{baseDir: baseDir}
}

// ResolvePath resolves a potentially relative path against the base
// directory. A leading ~/ means the user's home, so shared texture and
// mesh libraries can be referenced from any scene. Empty paths stay empty.
func (pr *PathResolver) ResolvePath(path string) string {
	if path == "" {
		return path
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(pr.baseDir, path)
}

// FileExists checks if a file exists and is readable
func (pr *PathResolver) FileExists(path string) bool {
	_, err := os.Stat(pr.ResolvePath(path))
	return err == nil
}

// MissingInputs reports every file the scene reads that is not there. The
// output path is not an input and is never checked. Call it before
// ResolvePaths rewrites the config.
func (pr *PathResolver) MissingInputs(c *SceneConfig) []ValidationError {
	var errors []ValidationError
	check := func(field, path string) {
		if path != "" && !pr.FileExists(path) {
			errors = append(errors, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("file not found: %s", pr.ResolvePath(path)),
			})
		}
	}
	for i, m := range c.Input.Meshes {
		check(fmt.Sprintf("input.meshes.%d.path", i), m.Path)
	}
	check("materials.from_file", c.Materials.FromFile)
	check("surface_assignments.from_file", c.SurfaceAssignments.FromFile)
	check("background.environment", c.Background.Environment)
	return errors
}
