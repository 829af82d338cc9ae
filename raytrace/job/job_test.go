package job

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRenderID(t *testing.T) {
	id := GenerateRenderID()
	assert.Regexp(t, regexp.MustCompile(`^[a-z]+-[a-z]+-\d{8}-\d{6}$`), id)

	name := GenerateRenderName()
	parts := strings.Split(name, "-")
	require.Len(t, parts, 2)
	assert.Contains(t, adjectives, parts[0])
	assert.Contains(t, nouns, parts[1])
}

func TestCreateRenderDirectory(t *testing.T) {
	assert := assert.New(t)
	root := t.TempDir()

	first, err := CreateRenderDirectory(root)
	require.NoError(t, err)
	assert.True(filepath.IsAbs(first.Path))
	assert.DirExists(first.Path)
	assert.Equal(first.ID, filepath.Base(first.Path))

	second, err := CreateRenderDirectory(root)
	require.NoError(t, err)
	assert.NotEqual(first.Path, second.Path)

	target, err := os.Readlink(filepath.Join(root, RendersDir, LatestSymlink))
	require.NoError(t, err)
	assert.Equal(second.ID, target)

	assert.Equal(filepath.Join(second.Path, "frame.png"), second.GetFilePath("frame.png"))
}

func TestCopyConfigFile(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "scene.yaml")
	require.NoError(t, os.WriteFile(src, []byte("image:\n  width: 4\n"), 0644))

	dir, err := CreateRenderDirectory(root)
	require.NoError(t, err)
	require.NoError(t, dir.CopyConfigFile(src))

	copied, err := os.ReadFile(dir.GetFilePath("scene.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "image:\n  width: 4\n", string(copied))

	assert.Error(t, dir.CopyConfigFile(filepath.Join(root, "missing.yaml")))
}
