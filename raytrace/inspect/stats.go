package inspect

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/jdginn/go-whitted/raytrace"
)

// Stats summarizes the luminance of a frame.
type Stats struct {
	Pixels int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	// Black counts pixels with zero luminance
	Black int
}

func FrameStats(f *raytrace.Frame) (Stats, error) {
	lum := f.Luminance()
	if len(lum) == 0 {
		return Stats{}, fmt.Errorf("frame has no pixels")
	}
	mean, variance := stat.MeanVariance(lum, nil)
	s := Stats{
		Pixels: len(lum),
		Mean:   mean,
		StdDev: math.Sqrt(variance),
		Min:    floats.Min(lum),
		Max:    floats.Max(lum),
	}
	if len(lum) == 1 {
		s.StdDev = 0
	}
	for _, l := range lum {
		if l == 0 {
			s.Black++
		}
	}
	return s, nil
}

func (s Stats) String() string {
	return fmt.Sprintf("%d pixels, luminance mean %.4f stddev %.4f min %.4f max %.4f, %d black",
		s.Pixels, s.Mean, s.StdDev, s.Min, s.Max, s.Black)
}

// Histogram counts values into bins equal width bins spanning [lo, hi].
// Values outside the range land in the end bins. Without bins there is
// nothing to count.
func Histogram(values []float64, bins int, lo, hi float64) plotter.Values {
	if bins <= 0 {
		return nil
	}
	counts := make(plotter.Values, bins)
	if hi <= lo {
		return counts
	}
	width := (hi - lo) / float64(bins)
	for _, v := range values {
		i := int((v - lo) / width)
		i = max(0, min(bins-1, i))
		counts[i]++
	}
	return counts
}

// PlotHistogram renders a luminance histogram of f as an X by Y image.
func PlotHistogram(f *raytrace.Frame, bins, X, Y int) (image.Image, error) {
	if bins <= 0 {
		return nil, fmt.Errorf("histogram needs at least one bin, got %d", bins)
	}
	lum := f.Luminance()
	if len(lum) == 0 {
		return nil, fmt.Errorf("frame has no pixels")
	}

	p := plot.New()
	p.Title.Text = "Luminance"
	p.X.Label.Text = "Bin"
	p.Y.Label.Text = "Pixels"

	hist, err := plotter.NewBarChart(Histogram(lum, bins, 0, max(floats.Max(lum), 1)), vg.Points(3))
	if err != nil {
		return nil, fmt.Errorf("building histogram: %w", err)
	}
	p.Add(hist)

	tmpdir, err := os.MkdirTemp("", "whitted")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpdir)

	out := filepath.Join(tmpdir, "histogram.png")
	if err := p.Save(font.Length(X), font.Length(Y), out); err != nil {
		return nil, fmt.Errorf("saving histogram: %w", err)
	}
	file, err := os.Open(out)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return png.Decode(file)
}
