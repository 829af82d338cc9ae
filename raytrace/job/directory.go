// Package job manages the output directories of render runs.
package job

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"
)

const (
	RendersDir    = "renders"
	LatestSymlink = "latest"
)

type Dir struct {
	Path      string    // Absolute path to the render directory
	ID        string    // Unique render identifier
	Timestamp time.Time // When the render was started
}

// CreateRenderDirectory creates a new render directory under root/renders
// and points root/renders/latest at it.
func CreateRenderDirectory(root string) (*Dir, error) {
	base := filepath.Join(root, RendersDir)
	if err := os.MkdirAll(base, 0755); err != nil {
		return nil, fmt.Errorf("creating renders directory: %w", err)
	}

	var id, absPath string
	for attempt := 0; ; attempt++ {
		id = GenerateRenderID()
		p, err := filepath.Abs(filepath.Join(base, id))
		if err != nil {
			return nil, fmt.Errorf("getting absolute path: %w", err)
		}
		err = os.Mkdir(p, 0755)
		if err == nil {
			absPath = p
			break
		}
		if !errors.Is(err, fs.ErrExist) || attempt >= 10 {
			return nil, fmt.Errorf("creating render directory: %w", err)
		}
	}

	latestPath := filepath.Join(base, LatestSymlink)
	_ = os.Remove(latestPath)
	if err := os.Symlink(id, latestPath); err != nil {
		log.Printf("Warning: failed to create latest symlink: %v", err)
	}

	return &Dir{
		Path:      absPath,
		ID:        id,
		Timestamp: time.Now().UTC(),
	}, nil
}

// GetFilePath returns the absolute path for a file in the render directory
func (d *Dir) GetFilePath(filename string) string {
	return filepath.Join(d.Path, filename)
}

// CopyConfigFile copies the scene file that produced the render next to it.
func (d *Dir) CopyConfigFile(srcPath string) error {
	content, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := os.WriteFile(d.GetFilePath(filepath.Base(srcPath)), content, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
