// Package inspect holds debugging aids for scenes and renders: ray path
// recording and plots, and luminance statistics.
package inspect

import (
	"github.com/fogleman/pt/pt"
	"github.com/jdginn/go-whitted/raytrace"
)

// Most of the slicing code follows https://github.com/fogleman/choppy

type Point2D = raytrace.Point2D

// To2D drops the z coordinate of a projected point.
func To2D(v pt.Vector) Point2D {
	return Point2D{X: v.X, Y: v.Y}
}

type Path2D []Point2D

func (p Path2D) BoundingBox() (XMin, XMax, YMin, YMax float64) {
	if len(p) == 0 {
		return
	}
	XMin, XMax, YMin, YMax = p[0].X, p[0].X, p[0].Y, p[0].Y
	for _, p := range p[1:] {
		XMin = min(XMin, p.X)
		XMax = max(XMax, p.X)
		YMin = min(YMin, p.Y)
		YMax = max(YMax, p.Y)
	}
	return
}

// Plane is a slicing and projection plane. U and V span the plane.
type Plane struct {
	Point  pt.Vector
	Normal pt.Vector
	U, V   pt.Vector
}

func MakePlane(point, normal pt.Vector) Plane {
	normal = normal.Normalize()
	u := perpendicular(normal).Normalize()
	v := u.Cross(normal).Normalize()
	return Plane{point, normal, u, v}
}

// Project returns the in-plane coordinates of point in x and y.
func (p Plane) Project(point pt.Vector) pt.Vector {
	d := point.Sub(p.Point)
	return raytrace.V(d.Dot(p.U), d.Dot(p.V), 0)
}

func perpendicular(a pt.Vector) pt.Vector {
	if a.X == 0 && a.Y == 0 {
		if a.Z == 0 {
			return pt.Vector{}
		}
		return raytrace.V(0, 1, 0)
	}
	return raytrace.V(-a.Y, a.X, 0).Normalize()
}

type Path []pt.Vector

func joinPaths(paths []Path) []Path {
	frontLookup := make(map[pt.Vector]Path, len(paths))
	for _, path := range paths {
		frontLookup[path[0]] = path
	}
	var result []Path
	for len(frontLookup) > 0 {
		var v pt.Vector
		for v = range frontLookup {
			break
		}
		var path Path
	outer:
		for {
			path = append(path, v)
			if p, ok := frontLookup[v]; ok {
				delete(frontLookup, v)
				v = p[len(p)-1]
			} else {
				for k, thisPath := range frontLookup {
					if thisPath[len(thisPath)-1] == v {
						delete(frontLookup, k)
						v = k
						continue outer
					}
				}
				break
			}
		}
		result = append(result, path)
	}
	return result
}

// SliceMesh cuts every face of m with the plane and joins the resulting
// segments into outlines.
func (p Plane) SliceMesh(m *raytrace.Mesh) []Path {
	var paths []Path
	for _, t := range m.Triangles() {
		if v1, v2, ok := p.IntersectTriangle(t); ok {
			paths = append(paths, Path{v1, v2})
		}
	}
	return joinPaths(paths)
}

// MeshToPath slices m and projects the outlines into plane coordinates.
func (p Plane) MeshToPath(m *raytrace.Mesh) []Path2D {
	result := []Path2D{}
	for _, path := range p.SliceMesh(m) {
		thisPath := make(Path2D, 0, len(path))
		for _, v := range path {
			thisPath = append(thisPath, To2D(p.Project(v)))
		}
		result = append(result, thisPath)
	}
	return result
}

func (p Plane) intersectSegment(v0, v1 pt.Vector) (pt.Vector, bool) {
	u := v1.Sub(v0)
	w := v0.Sub(p.Point)
	d := p.Normal.Dot(u)
	if d > -1e-9 && d < 1e-9 {
		return pt.Vector{}, false
	}
	t := -p.Normal.Dot(w) / d
	if t < 0 || t > 1 {
		return pt.Vector{}, false
	}
	return v0.Add(u.MulScalar(t)), true
}

// IntersectTriangle returns the segment where the plane cuts t, oriented so
// that outlines wind consistently around solids.
func (p Plane) IntersectTriangle(t *raytrace.Triangle) (pt.Vector, pt.Vector, bool) {
	v1, ok1 := p.intersectSegment(t.V0, t.V1)
	v2, ok2 := p.intersectSegment(t.V1, t.V2)
	v3, ok3 := p.intersectSegment(t.V2, t.V0)
	var p1, p2 pt.Vector
	switch {
	case ok1 && ok2:
		p1, p2 = v1, v2
	case ok1 && ok3:
		p1, p2 = v1, v3
	case ok2 && ok3:
		p1, p2 = v2, v3
	default:
		return pt.Vector{}, pt.Vector{}, false
	}
	if p1 == p2 {
		return pt.Vector{}, pt.Vector{}, false
	}
	n := p2.Sub(p1).Cross(p.Normal)
	if n.Dot(t.Normal()) < 0 {
		return p1, p2, true
	}
	return p2, p1, true
}
