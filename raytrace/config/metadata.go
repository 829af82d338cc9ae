package config

import (
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// MetadataCollector stamps configs with when and from which commit they
// were written, plus a one-line summary of what the scene renders.
type MetadataCollector struct {
	timestamp time.Time
	gitCommit string
}

// NewMetadataCollector captures the current time and commit. Scenes are
// often rendered outside a repository, so a missing git leaves the commit
// empty instead of failing.
func NewMetadataCollector() *MetadataCollector {
	gitCommit, _ := getCurrentGitCommit()
	return &MetadataCollector{
		timestamp: time.Now().UTC(),
		gitCommit: gitCommit,
	}
}

func getCurrentGitCommit() (string, error) {
	out, err := exec.Command("git", "rev-parse", "HEAD").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// PopulateMetadata fills in the metadata fields of the config
func (mc *MetadataCollector) PopulateMetadata(config *SceneConfig) {
	config.Metadata.Timestamp = mc.timestamp.Format("2006-01-02 15:04:05")
	config.Metadata.GitCommit = mc.gitCommit
	config.Metadata.Summary = config.Summary()
}

// Summary describes the scene's contents and sampling, e.g.
// "2 spheres, 0 triangles, 1 meshes, 1 lights; 640x480 at 4 rays per pixel, depth 5".
func (c *SceneConfig) Summary() string {
	return fmt.Sprintf("%d spheres, %d triangles, %d meshes, %d lights; %dx%d at %d rays per pixel, depth %d",
		len(c.Objects.Spheres), len(c.Objects.Triangles), len(c.Input.Meshes), len(c.Lights),
		c.Image.Width, c.Image.Height, c.Render.Subdivs*c.Render.Subdivs, c.Render.MaxDepth)
}
