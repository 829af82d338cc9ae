package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// readSideFile decodes a materials or surface-assignment file. Files ending
// in .yaml or .yml are YAML so they can share a material library with scene
// files; anything else is JSON.
func readSideFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, v)
	default:
		err = json.Unmarshal(data, v)
	}
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// MergeMaterials adds the materials from FromFile to the inline ones.
// Inline entries win.
func (m *Materials) MergeMaterials() error {
	if m.FromFile == "" {
		return nil
	}
	var fileMaterials map[string]Material
	if err := readSideFile(m.FromFile, &fileMaterials); err != nil {
		return fmt.Errorf("materials file: %w", err)
	}

	if m.Inline == nil {
		m.Inline = make(map[string]Material)
	}
	for name, material := range fileMaterials {
		if _, exists := m.Inline[name]; !exists {
			m.Inline[name] = material
		}
	}
	return nil
}

// MergeSurfaceAssignments adds the surface-to-material map in FromFile to
// the inline one. Inline entries win.
func (sa *SurfaceAssignments) MergeSurfaceAssignments() error {
	if sa.FromFile == "" {
		return nil
	}
	var fileAssignments map[string]string
	if err := readSideFile(sa.FromFile, &fileAssignments); err != nil {
		return fmt.Errorf("surface assignments file: %w", err)
	}

	if sa.Inline == nil {
		sa.Inline = make(map[string]string)
	}
	for surface, material := range fileAssignments {
		if _, exists := sa.Inline[surface]; !exists {
			sa.Inline[surface] = material
		}
	}
	return nil
}

func (m *Materials) HasMaterial(name string) bool {
	_, exists := m.Inline[name]
	return exists
}

// LoadAndMerge loads all external files and merges their contents
func (c *SceneConfig) LoadAndMerge() error {
	// Surface assignments refer to materials, so materials go first
	if err := c.Materials.MergeMaterials(); err != nil {
		return fmt.Errorf("merging materials: %w", err)
	}
	if err := c.SurfaceAssignments.MergeSurfaceAssignments(); err != nil {
		return fmt.Errorf("merging surface assignments: %w", err)
	}
	return nil
}
