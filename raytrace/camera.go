package raytrace

import (
	"math"

	"github.com/fogleman/pt/pt"
)

// Camera turns a point on the image plane into a primary ray.
type Camera interface {
	RayThroughPlanePoint(p Point2D) Ray
}

// PinholeCamera looks from Eye along Forward. The image plane sits at
// distance Focal and its shorter side spans one unit.
type PinholeCamera struct {
	Eye     pt.Vector
	Forward pt.Vector
	Right   pt.Vector
	Up      pt.Vector
	Focal   float64
}

// NewPinholeCamera builds a camera from a look-at frame. fov is the field of
// view in degrees across the shorter image side.
func NewPinholeCamera(eye, lookAt, up pt.Vector, fov float64) *PinholeCamera {
	forward := lookAt.Sub(eye).Normalize()
	right := forward.Cross(up).Normalize()
	trueUp := right.Cross(forward).Normalize()
	return &PinholeCamera{
		Eye:     eye,
		Forward: forward,
		Right:   right,
		Up:      trueUp,
		Focal:   0.5 / math.Tan(fov*math.Pi/360),
	}
}

func (c *PinholeCamera) RayThroughPlanePoint(p Point2D) Ray {
	dir := c.Right.MulScalar(p.X).Add(c.Up.MulScalar(p.Y)).Add(c.Forward.MulScalar(c.Focal))
	return NewRay(c.Eye, dir, 0, math.Inf(1), PrimaryRay)
}

// Environment returns radiance arriving from infinitely far away.
type Environment interface {
	SampleDirection(dir pt.Vector) pt.Color
}

// Background is what a ray sees when it leaves the scene.
type Background struct {
	Color       pt.Color
	Environment Environment
}

func (b Background) Sample(dir pt.Vector) pt.Color {
	if b.Environment == nil {
		return b.Color
	}
	return b.Environment.SampleDirection(dir)
}
