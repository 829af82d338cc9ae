package imageio

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/jdginn/go-whitted/raytrace"
	"golang.org/x/image/draw"
)

// DisplayOptions turn linear radiance into 8-bit pixels.
type DisplayOptions struct {
	// Exposure multiplies radiance before the tone curve. Zero means 1.
	Exposure float64
	Curve    ToneCurve
	// Gamma encodes the tone mapped value. Zero means 2.2.
	Gamma float64
}

func (o DisplayOptions) encode(v float64) uint8 {
	exposure := o.Exposure
	if exposure == 0 {
		exposure = 1
	}
	gamma := o.Gamma
	if gamma == 0 {
		gamma = 2.2
	}
	mapped := o.Curve.Map(v * exposure)
	return uint8(math.Round(255 * math.Pow(mapped, 1/gamma)))
}

// ToImage converts a frame to an image. Frames store the bottom row first, so
// rows are flipped on the way out.
func ToImage(f *raytrace.Frame, opts DisplayOptions) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			c := f.At(x, y)
			img.SetNRGBA(x, f.Height-1-y, color.NRGBA{
				R: opts.encode(c.R),
				G: opts.encode(c.G),
				B: opts.encode(c.B),
				A: 0xff,
			})
		}
	}
	return img
}

// Resize scales img to width x height with a Catmull-Rom filter.
func Resize(img image.Image, width, height int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// Save writes img as PNG or WebP depending on the extension of path.
func Save(path string, img image.Image) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".png" && ext != ".webp" {
		return fmt.Errorf("unsupported image format %q", ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating image file: %w", err)
	}
	defer f.Close()

	if ext == ".png" {
		err = png.Encode(f, img)
	} else {
		err = nativewebp.Encode(f, img, nil)
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
