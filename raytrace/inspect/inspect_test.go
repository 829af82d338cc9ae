package inspect

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/fogleman/pt/pt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdginn/go-whitted/raytrace"
)

var V = raytrace.V

// unitCube has corner i at (i&1, i>>1&1, i>>2&1) and outward facing faces.
func unitCube() *raytrace.Mesh {
	m := &raytrace.Mesh{Name: "cube"}
	for i := 0; i < 8; i++ {
		m.Vertices = append(m.Vertices, V(float64(i&1), float64(i>>1&1), float64(i>>2&1)))
	}
	for _, f := range [][3]int{
		{0, 2, 3}, {0, 3, 1},
		{4, 5, 7}, {4, 7, 6},
		{0, 1, 5}, {0, 5, 4},
		{2, 6, 7}, {2, 7, 3},
		{0, 4, 6}, {0, 6, 2},
		{1, 3, 7}, {1, 7, 5},
	} {
		m.AddFace(f, raytrace.NoMaterial)
	}
	return m
}

func TestMakePlane(t *testing.T) {
	p := MakePlane(V(0, 0, 0.5), V(0, 0, 2))
	assert.Equal(t, V(0, 0, 1), p.Normal)
	assert.InDelta(t, 0, p.U.Dot(p.Normal), 1e-12)
	assert.InDelta(t, 0, p.V.Dot(p.Normal), 1e-12)
	assert.InDelta(t, 0, p.U.Dot(p.V), 1e-12)
	assert.Equal(t, V(0.25, 0.75, 0), p.Project(V(0.75, 0.25, 3)))
}

func TestSliceMesh(t *testing.T) {
	assert := assert.New(t)
	p := MakePlane(V(0, 0, 0.5), V(0, 0, 1))

	paths := p.MeshToPath(unitCube())
	require.Len(t, paths, 1, "a cube slices into one closed outline")
	XMin, XMax, YMin, YMax := paths[0].BoundingBox()
	assert.InDelta(0, XMin, 1e-12)
	assert.InDelta(1, XMax, 1e-12)
	assert.InDelta(0, YMin, 1e-12)
	assert.InDelta(1, YMax, 1e-12)
	assert.Equal(paths[0][0], paths[0][len(paths[0])-1])

	above := MakePlane(V(0, 0, 2), V(0, 0, 1))
	assert.Empty(above.MeshToPath(unitCube()))
}

func TestRecordingScene(t *testing.T) {
	assert := assert.New(t)

	world := raytrace.NewWorld(nil, nil)
	world.Add(raytrace.NewSphere(V(0, 0, 0), 1, raytrace.NoMaterial))
	rec := NewRecordingScene(world, 10)

	hit := raytrace.NewHitRecord()
	hit.TraceDepth = 2
	assert.True(rec.NearestHit(raytrace.NewRay(V(0, 0, 5), V(0, 0, -1), 0, math.Inf(1), raytrace.SecondaryRay), &hit))

	miss := raytrace.NewHitRecord()
	assert.False(rec.NearestHit(raytrace.NewRay(V(0, 0, 5), V(0, 0, 1), 0, math.Inf(1), raytrace.PrimaryRay), &miss))

	assert.True(rec.AnyHit(raytrace.NewRay(V(0, 5, 0), V(0, -1, 0), 0, 4.5, raytrace.ShadowRay)))

	segments := rec.Segments()
	require.Len(t, segments, 3)
	assert.Equal(Segment{From: V(0, 0, 5), To: V(0, 0, 1), Kind: raytrace.SecondaryRay, Hit: true, Depth: 2}, segments[0])
	assert.Equal(Segment{From: V(0, 0, 5), To: V(0, 0, 15), Kind: raytrace.PrimaryRay, Depth: 0}, segments[1])
	assert.Equal(Segment{From: V(0, 5, 0), To: V(0, 0.5, 0), Kind: raytrace.ShadowRay, Hit: true, Depth: -1}, segments[2])

	rec.Reset()
	assert.Empty(rec.Segments())
}

func TestPlotRays(t *testing.T) {
	view := View{
		Meshes: []*raytrace.Mesh{unitCube()},
		XSize:  100,
		YSize:  100,
		Plane:  MakePlane(V(0, 0, 0.5), V(0, 0, 1)),
	}
	segments := []Segment{
		{From: V(-1, 0.5, 0.5), To: V(0, 0.5, 0.5), Kind: raytrace.PrimaryRay, Hit: true},
	}

	img, err := view.PlotRays(segments)
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())

	// Plane x is scene y and spans 1; plane y is scene x and spans 2
	assert.InDelta(t, 50, view.scale, 1e-9)
	assert.InDelta(t, 0, view.xTranslate, 1e-9)
	assert.InDelta(t, 1, view.yTranslate, 1e-9)

	require.NoError(t, view.SavePNG(filepath.Join(t.TempDir(), "rays.png"), segments))

	empty := View{XSize: 10, YSize: 10, Plane: MakePlane(V(0, 0, 0), V(0, 0, 1))}
	_, err = empty.PlotRays(nil)
	assert.Error(t, err)
}

func TestFrameStats(t *testing.T) {
	assert := assert.New(t)

	f := raytrace.NewFrame(4, 1)
	f.Set(1, 0, pt.Color{R: 1, G: 1, B: 1})
	f.Set(2, 0, pt.Color{R: 1, G: 1, B: 1})
	f.Set(3, 0, pt.Color{R: 2, G: 2, B: 2})

	s, err := FrameStats(f)
	require.NoError(t, err)
	assert.Equal(4, s.Pixels)
	assert.InDelta(1, s.Mean, 1e-9)
	assert.InDelta(math.Sqrt(2.0/3.0), s.StdDev, 1e-9)
	assert.InDelta(0, s.Min, 1e-9)
	assert.InDelta(2, s.Max, 1e-9)
	assert.Equal(1, s.Black)
	assert.Contains(s.String(), "4 pixels")

	_, err = FrameStats(raytrace.NewFrame(0, 0))
	assert.Error(err)
}

func TestHistogram(t *testing.T) {
	counts := Histogram([]float64{-1, 0, 0.1, 0.5, 0.99, 1, 3}, 4, 0, 1)
	assert.Equal(t, []float64{3, 0, 1, 3}, []float64(counts))
	assert.Len(t, Histogram(nil, 3, 1, 1), 3)

	for _, bins := range []int{0, -1} {
		assert.Empty(t, Histogram([]float64{0.5}, bins, 0, 1))
	}
}

func TestPlotHistogram(t *testing.T) {
	f := raytrace.NewFrame(3, 3)
	f.Set(1, 1, pt.Color{R: 1, G: 1, B: 1})
	img, err := PlotHistogram(f, 8, 200, 100)
	require.NoError(t, err)
	assert.NotNil(t, img)

	_, err = PlotHistogram(f, -1, 200, 100)
	assert.ErrorContains(t, err, "at least one bin")
}
