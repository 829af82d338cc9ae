// Package imageio moves pixels between the renderer and image files:
// environment maps in, tone mapped PNG and WebP frames out.
package imageio

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	"github.com/fogleman/pt/pt"
	_ "github.com/ftrvxmtrx/tga"
	_ "golang.org/x/image/bmp"
)

// SphereTexture is an equirectangular environment map. The top row looks
// straight up the y axis and the horizontal center looks down -z.
type SphereTexture struct {
	img    image.Image
	width  int
	height int
	// Gamma converts stored values back to linear radiance
	Gamma float64
	// Scale multiplies every sample
	Scale float64
}

func NewSphereTexture(img image.Image) *SphereTexture {
	b := img.Bounds()
	return &SphereTexture{img: img, width: b.Dx(), height: b.Dy(), Gamma: 2.2, Scale: 1}
}

// LoadEnvironment decodes a PNG, JPEG, TGA or BMP file into a SphereTexture.
func LoadEnvironment(path string) (*SphereTexture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening environment map: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding environment map %s: %w", path, err)
	}
	if b := img.Bounds(); b.Dx() < 1 || b.Dy() < 1 {
		return nil, fmt.Errorf("environment map %s is empty", path)
	}
	return NewSphereTexture(img), nil
}

func (s *SphereTexture) texel(x, y int) pt.Color {
	x = ((x % s.width) + s.width) % s.width
	y = max(0, min(s.height-1, y))
	b := s.img.Bounds()
	r, g, bl, _ := s.img.At(b.Min.X+x, b.Min.Y+y).RGBA()
	linear := func(v uint32) float64 {
		return math.Pow(float64(v)/0xffff, s.Gamma) * s.Scale
	}
	return pt.Color{R: linear(r), G: linear(g), B: linear(bl)}
}

// SampleDirection returns the bilinearly filtered radiance seen along dir.
// Longitude wraps around; latitude clamps at the poles.
func (s *SphereTexture) SampleDirection(dir pt.Vector) pt.Color {
	dir = dir.Normalize()
	u := 0.5 + math.Atan2(dir.X, -dir.Z)/(2*math.Pi)
	v := math.Acos(math.Max(-1, math.Min(1, dir.Y))) / math.Pi

	fx := u*float64(s.width) - 0.5
	fy := v*float64(s.height) - 0.5
	x0, y0 := int(math.Floor(fx)), int(math.Floor(fy))
	tx, ty := fx-float64(x0), fy-float64(y0)

	top := s.texel(x0, y0).MulScalar(1 - tx).Add(s.texel(x0+1, y0).MulScalar(tx))
	bottom := s.texel(x0, y0+1).MulScalar(1 - tx).Add(s.texel(x0+1, y0+1).MulScalar(tx))
	return top.MulScalar(1 - ty).Add(bottom.MulScalar(ty))
}
