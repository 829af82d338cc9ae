package raytrace

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"

	"github.com/fogleman/pt/pt"
	"golang.org/x/sync/errgroup"
)

// Logger interface for render progress
type Logger interface {
	Printf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...interface{}) {}

// RayCaster integrates radiance over each pixel with stratified jittered
// sub-samples. The jitter table is shared by every pixel and only changes
// when the subdivision count does.
type RayCaster struct {
	scene   Scene
	shader  Shader
	bg      Background
	width   int
	height  int
	subdivs int
	seed    uint64
	logger  Logger

	winToIP   Point2D
	lowerLeft Point2D
	step      Point2D
	jitter    []Point2D
}

// NewRayCaster prepares a caster for a width x height image with subdivs²
// samples per pixel. seed makes the jitter tables reproducible.
func NewRayCaster(scene Scene, shader Shader, bg Background, width, height, subdivs int, seed uint64) *RayCaster {
	rc := &RayCaster{
		scene:   scene,
		shader:  shader,
		bg:      bg,
		width:   width,
		height:  height,
		subdivs: max(subdivs, 1),
		seed:    seed,
		logger:  nopLogger{},
	}
	rc.computeJitters()
	return rc
}

func (rc *RayCaster) SetLogger(l Logger) {
	if l == nil {
		l = nopLogger{}
	}
	rc.logger = l
}

func (rc *RayCaster) Width() int  { return rc.width }
func (rc *RayCaster) Height() int { return rc.height }

func (rc *RayCaster) Subdivs() int {
	return rc.subdivs
}

// Jitter returns the current sub-pixel offsets, row by row.
func (rc *RayCaster) Jitter() []Point2D {
	return rc.jitter
}

// PixelSize is the extent of one pixel on the image plane.
func (rc *RayCaster) PixelSize() Point2D {
	return rc.winToIP
}

func (rc *RayCaster) IncrementSubdivs() {
	rc.subdivs++
	rc.computeJitters()
	rc.logger.Printf("Rays per pixel: %d", rc.subdivs*rc.subdivs)
}

func (rc *RayCaster) DecrementSubdivs() {
	if rc.subdivs > 1 {
		rc.subdivs--
		rc.computeJitters()
	}
	rc.logger.Printf("Rays per pixel: %d", rc.subdivs*rc.subdivs)
}

// computeJitters lays a subdivs x subdivs grid over a pixel and places one
// uniformly random sample inside every cell. The shorter image side spans one
// unit of the image plane.
func (rc *RayCaster) computeJitters() {
	unit := 1 / float64(min(rc.width, rc.height))
	rc.winToIP = Point2D{unit, unit}
	rc.lowerLeft = Point2D{
		X: (unit - float64(rc.width)*unit) * 0.5,
		Y: (unit - float64(rc.height)*unit) * 0.5,
	}
	rc.step = rc.winToIP.Scale(1 / float64(rc.subdivs))

	rng := rand.New(rand.NewPCG(rc.seed, uint64(rc.subdivs)))
	rc.jitter = make([]Point2D, rc.subdivs*rc.subdivs)
	for i := 0; i < rc.subdivs; i++ {
		for j := 0; j < rc.subdivs; j++ {
			rc.jitter[i*rc.subdivs+j] = Point2D{
				X: (rng.Float64()+float64(j))*rc.step.X - rc.winToIP.X*0.5,
				Y: (rng.Float64()+float64(i))*rc.step.Y - rc.winToIP.Y*0.5,
			}
		}
	}
}

// planePoint maps the center of pixel (x, y) to the image plane. y grows
// upward from the bottom row.
func (rc *RayCaster) planePoint(x, y int) Point2D {
	return Point2D{
		X: float64(x)*rc.winToIP.X + rc.lowerLeft.X,
		Y: float64(y)*rc.winToIP.Y + rc.lowerLeft.Y,
	}
}

// ComputePixel averages the radiance of every sub-sample of pixel (x, y).
func (rc *RayCaster) ComputePixel(x, y int) pt.Color {
	camera := rc.scene.Camera()
	base := rc.planePoint(x, y)
	var result pt.Color
	for _, d := range rc.jitter {
		r := camera.RayThroughPlanePoint(base.Translate(d.X, d.Y))
		hit := NewHitRecord()
		if rc.scene.NearestHit(r, &hit) {
			result = result.Add(rc.shader.Shade(r, &hit, true))
		} else {
			result = result.Add(rc.bg.Sample(r.Direction))
		}
	}
	return result.DivScalar(float64(len(rc.jitter)))
}

// Render computes every pixel, spreading rows over workers goroutines. The
// scene and jitter table are only read while rendering.
func (rc *RayCaster) Render(ctx context.Context, workers int) (*Frame, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	frame := NewFrame(rc.width, rc.height)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for y := 0; y < rc.height; y++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("rendering row %d: %w", y, err)
			}
			for x := 0; x < rc.width; x++ {
				frame.Set(x, y, rc.ComputePixel(x, y))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	rc.logger.Printf("Rendered %dx%d with %d rays per pixel", rc.width, rc.height, len(rc.jitter))
	return frame, nil
}

// Frame holds linear radiance per pixel. Row 0 is the bottom of the image.
type Frame struct {
	Width  int
	Height int
	Pix    []pt.Color
}

func NewFrame(width, height int) *Frame {
	return &Frame{Width: width, Height: height, Pix: make([]pt.Color, width*height)}
}

func (f *Frame) At(x, y int) pt.Color {
	return f.Pix[y*f.Width+x]
}

func (f *Frame) Set(x, y int, c pt.Color) {
	f.Pix[y*f.Width+x] = c
}

// Luminance returns the luminance of every pixel in storage order.
func (f *Frame) Luminance() []float64 {
	out := make([]float64, len(f.Pix))
	for i, c := range f.Pix {
		out[i] = Luminance(c)
	}
	return out
}
