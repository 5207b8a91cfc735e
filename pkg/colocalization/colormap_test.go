package colocalization

import (
	"image/color"
	"math"
	"testing"
)

func TestIntensityColorAnchors(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
		want  color.RGBA
	}{
		{"zero is black", 0, color.RGBA{A: 255}},
		{"first anchor", 0.1, color.RGBA{R: 188, G: 110, B: 209, A: 255}},
		{"second anchor", 0.7, color.RGBA{R: 255, G: 174, B: 0, A: 255}},
		{"top of ramp", 1.0, color.RGBA{R: 255, G: 252, B: 246, A: 255}},
		{"clamped below", -0.5, color.RGBA{A: 255}},
		{"clamped above", 2.0, color.RGBA{R: 255, G: 252, B: 246, A: 255}},
		{"NaN treated as zero", math.NaN(), color.RGBA{A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IntensityColor(tt.ratio); got != tt.want {
				t.Errorf("IntensityColor(%v) = %v, want %v", tt.ratio, got, tt.want)
			}
		})
	}
}

func TestIntensityColorDeterministic(t *testing.T) {
	for _, ratio := range []float64{0, 0.05, 0.1, 0.33, 0.7, 0.85, 1.0} {
		a := IntensityColor(ratio)
		b := IntensityColor(ratio)
		if a != b {
			t.Errorf("IntensityColor(%v) not deterministic: %v then %v", ratio, a, b)
		}
	}
}

func TestGrayIntensityColor(t *testing.T) {
	if got := GrayIntensityColor(0); got != (color.RGBA{A: 255}) {
		t.Errorf("GrayIntensityColor(0) = %v, want black", got)
	}
	if got := GrayIntensityColor(1); got != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("GrayIntensityColor(1) = %v, want white", got)
	}
	if got := GrayIntensityColor(-1); got != (color.RGBA{A: 255}) {
		t.Errorf("GrayIntensityColor(-1) = %v, want black", got)
	}
}

// An empty histogram cell must render as black and the busiest cell at
// the top of the ramp, regardless of the absolute max count.
func TestIntensityPlotExtremes(t *testing.T) {
	hist := &JointHistogram{}
	for i := 0; i < 99; i++ {
		hist.Add(40, 60)
	}

	plot := intensityPlot(hist)

	// Busiest cell: column z1=40, row 255-60.
	want := IntensityColor(1)
	if got := plot.RGBAAt(40, HistogramBins-1-60); got != want {
		t.Errorf("busiest cell color = %v, want %v", got, want)
	}
	// An untouched cell renders log(0+1)/denom = 0, which is black.
	if got := plot.RGBAAt(0, 0); got != (color.RGBA{A: 255}) {
		t.Errorf("empty cell color = %v, want black", got)
	}
}

// A histogram whose max count is 1 must not divide by log(1) = 0.
func TestIntensityPlotSingleCountMax(t *testing.T) {
	hist := &JointHistogram{}
	hist.Add(10, 20)

	plot := intensityPlot(hist)

	got := plot.RGBAAt(10, HistogramBins-1-20)
	want := IntensityColor(1)
	if got != want {
		t.Errorf("single-count cell color = %v, want %v", got, want)
	}
}
