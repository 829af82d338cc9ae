package imageio

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/fogleman/pt/pt"
	"github.com/jdginn/go-whitted/raytrace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToneCurve(t *testing.T) {
	curve, err := NewToneCurve(map[float64]float64{4: 1, 0: 0, 1: 0.8})
	require.NoError(t, err)

	tests := []struct {
		in, want float64
	}{
		{-1, 0},
		{0, 0},
		{0.5, 0.4},
		{1, 0.8},
		{2.5, 0.9},
		{4, 1},
		{100, 1},
	}
	for _, test := range tests {
		assert.InDelta(t, test.want, curve.Map(test.in), 1e-12, "at %v", test.in)
	}

	assert.InDelta(t, 1, ToneCurve{}.Map(3), 1e-12, "zero value clips like the default")

	_, err = NewToneCurve(map[float64]float64{1: 1})
	assert.Error(t, err)
	_, err = NewToneCurve(map[float64]float64{0: 0, 1: 1.5})
	assert.Error(t, err)
}

func TestToImageFlipsRows(t *testing.T) {
	f := raytrace.NewFrame(2, 2)
	f.Set(0, 0, pt.Color{R: 1})
	f.Set(1, 1, pt.Color{B: 1})

	img := ToImage(f, DisplayOptions{Curve: DefaultToneCurve})
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, img.NRGBAAt(0, 1), "bottom row of the frame is the last image row")
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, img.NRGBAAt(1, 0))
	assert.Equal(t, color.NRGBA{A: 255}, img.NRGBAAt(1, 1))
}

func TestDisplayEncode(t *testing.T) {
	opts := DisplayOptions{Curve: DefaultToneCurve, Gamma: 1}
	assert.Equal(t, uint8(128), opts.encode(0.5))
	assert.Equal(t, uint8(255), opts.encode(7))

	opts.Exposure = 0.5
	assert.Equal(t, uint8(64), opts.encode(0.5))
}

func TestSaveAndResize(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	for i := range src.Pix {
		src.Pix[i] = 200
	}
	small := Resize(src, 4, 2)
	assert.Equal(t, image.Rect(0, 0, 4, 2), small.Bounds())
	assert.InDelta(t, 200, float64(small.NRGBAAt(2, 1).R), 2)

	dir := t.TempDir()
	require.NoError(t, Save(filepath.Join(dir, "out.png"), small))
	require.NoError(t, Save(filepath.Join(dir, "out.webp"), small))
	assert.Error(t, Save(filepath.Join(dir, "out.gif"), small))
	_, err := os.Stat(filepath.Join(dir, "out.gif"))
	assert.True(t, os.IsNotExist(err))

	info, err := os.Stat(filepath.Join(dir, "out.webp"))
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func writeEnvironment(t *testing.T) string {
	// Left half red, right half blue, bottom row black
	img := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			c := color.NRGBA{R: 255, A: 255}
			if x >= 4 {
				c = color.NRGBA{B: 255, A: 255}
			}
			if y == 3 {
				c = color.NRGBA{A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	path := filepath.Join(t.TempDir(), "sky.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestSphereTexture(t *testing.T) {
	env, err := LoadEnvironment(writeEnvironment(t))
	require.NoError(t, err)

	// Longitude -90 degrees sits in the red half, +90 in the blue half
	west := env.SampleDirection(pt.Vector{X: -1, Y: 0.3})
	assert.InDelta(t, 1, west.R, 1e-9)
	assert.InDelta(t, 0, west.B, 1e-9)

	east := env.SampleDirection(pt.Vector{X: 1, Y: 0.3})
	assert.InDelta(t, 0, east.R, 1e-9)
	assert.InDelta(t, 1, east.B, 1e-9)

	down := env.SampleDirection(pt.Vector{Y: -1})
	assert.InDelta(t, 0, down.R+down.G+down.B, 1e-9)

	// Straight ahead is the seam between the halves and filters to a blend
	ahead := env.SampleDirection(pt.Vector{Z: -1, Y: 0.3})
	assert.InDelta(t, 0.5, ahead.R, 1e-9)
	assert.InDelta(t, 0.5, ahead.B, 1e-9)

	env.Scale = 2
	assert.InDelta(t, 2, env.SampleDirection(pt.Vector{X: -1, Y: 0.3}).R, 1e-9)

	_, err = LoadEnvironment(filepath.Join(t.TempDir(), "missing.tga"))
	assert.Error(t, err)
	assert.False(t, math.IsNaN(ahead.G))
}
