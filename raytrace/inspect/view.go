package inspect

import (
	"fmt"
	"image"
	"math"

	"github.com/fogleman/gg"
	"github.com/jdginn/go-whitted/raytrace"
)

// View draws meshes and recorded rays projected onto Plane.
type View struct {
	Meshes []*raytrace.Mesh
	XSize  int
	YSize  int
	Plane  Plane
	// These cache the values needed to scale and translate from the scene to the requested image size
	scale      float64
	xTranslate float64
	yTranslate float64
}

func (view View) project(seg Segment) (Point2D, Point2D) {
	return To2D(view.Plane.Project(seg.From)), To2D(view.Plane.Project(seg.To))
}

func (view *View) bounds(segments []Segment) (XMin, XMax, YMin, YMax float64) {
	XMin, YMin = math.Inf(1), math.Inf(1)
	XMax, YMax = math.Inf(-1), math.Inf(-1)
	grow := func(p Path2D) {
		pXMin, pXMax, pYMin, pYMax := p.BoundingBox()
		XMin = min(XMin, pXMin)
		XMax = max(XMax, pXMax)
		YMin = min(YMin, pYMin)
		YMax = max(YMax, pYMax)
	}
	for _, m := range view.Meshes {
		for _, path := range view.Plane.MeshToPath(m) {
			grow(path)
		}
	}
	for _, seg := range segments {
		from, to := view.project(seg)
		grow(Path2D{from, to})
	}
	return
}

func (view *View) computeScaleAndTranslation(segments []Segment) error {
	XMin, XMax, YMin, YMax := view.bounds(segments)
	if math.IsInf(XMin, 0) || XMax == XMin || YMax == YMin {
		return fmt.Errorf("nothing to plot in the view plane")
	}
	view.xTranslate = -XMin
	view.yTranslate = -YMin
	XScale := float64(view.XSize) / (XMax - XMin)
	YScale := float64(view.YSize) / (YMax - YMin)
	view.scale = math.Min(XScale, YScale)
	return nil
}

// translateAndScale maps plane coordinates to pixels, with y growing upward.
func (view *View) translateAndScale(p Point2D) Point2D {
	p = p.Translate(view.xTranslate, view.yTranslate).Scale(view.scale)
	return Point2D{X: p.X, Y: float64(view.YSize) - p.Y}
}

// PlotRays draws mesh outlines in black and recorded rays colored by kind:
// camera rays blue, bounces green and shadow rays red.
func (view *View) PlotRays(segments []Segment) (image.Image, error) {
	if err := view.computeScaleAndTranslation(segments); err != nil {
		return nil, err
	}
	c := gg.NewContext(view.XSize, view.YSize)
	c.SetRGB(1, 1, 1)
	c.Clear()

	c.SetRGB(0, 0, 0)
	c.SetLineWidth(2)
	for _, m := range view.Meshes {
		for _, lines := range view.Plane.MeshToPath(m) {
			for i := 0; i < len(lines)-1; i++ {
				p1 := view.translateAndScale(lines[i])
				p2 := view.translateAndScale(lines[i+1])
				c.DrawLine(p1.X, p1.Y, p2.X, p2.Y)
				c.Stroke()
			}
		}
	}

	c.SetLineWidth(1)
	for _, seg := range segments {
		switch seg.Kind {
		case raytrace.PrimaryRay:
			c.SetRGB(0, 0, 1)
		case raytrace.ShadowRay:
			c.SetRGB(1, 0, 0)
		default:
			c.SetRGB(0, 0.6, 0)
		}
		from, to := view.project(seg)
		p1, p2 := view.translateAndScale(from), view.translateAndScale(to)
		c.DrawLine(p1.X, p1.Y, p2.X, p2.Y)
		c.Stroke()
		if seg.Hit {
			c.DrawCircle(p2.X, p2.Y, 2)
			c.Fill()
		}
	}
	return c.Image(), nil
}

// SavePNG plots segments and writes the result to path.
func (view *View) SavePNG(path string, segments []Segment) error {
	img, err := view.PlotRays(segments)
	if err != nil {
		return err
	}
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("saving ray plot: %w", err)
	}
	return nil
}
