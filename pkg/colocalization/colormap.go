package colocalization

import (
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// The false-color ramp runs black -> purple -> orange -> near-white over
// three linear segments. The anchors are fixed so the same normalized
// log-count ratio always produces the same color, independent of slice or
// channel pair.
var (
	rampLow  = colorful.Color{R: 188.0 / 255, G: 110.0 / 255, B: 209.0 / 255}
	rampMid  = colorful.Color{R: 1, G: 174.0 / 255, B: 0}
	rampHigh = colorful.Color{R: 1, G: 252.0 / 255, B: 246.0 / 255}
)

// IntensityColor maps a normalized log-count ratio to the false-color
// ramp. Ratios outside [0, 1] are clamped.
func IntensityColor(ratio float64) color.RGBA {
	if ratio < 0 || math.IsNaN(ratio) {
		ratio = 0
	} else if ratio > 1 {
		ratio = 1
	}

	var c colorful.Color
	switch {
	case ratio <= 0.1:
		c = colorful.Color{}.BlendRgb(rampLow, ratio/0.1)
	case ratio <= 0.7:
		c = rampLow.BlendRgb(rampMid, (ratio-0.1)/0.6)
	default:
		c = rampMid.BlendRgb(rampHigh, (ratio-0.7)/0.3)
	}

	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// GrayIntensityColor is the plain linear grayscale alternative to the
// false-color ramp.
func GrayIntensityColor(ratio float64) color.RGBA {
	if ratio < 0 || math.IsNaN(ratio) {
		ratio = 0
	} else if ratio > 1 {
		ratio = 1
	}
	v := uint8(255 * ratio)
	return color.RGBA{R: v, G: v, B: v, A: 255}
}

// intensityPlot renders the finished joint histogram as a 256x256
// log-scale false-color plot. This pass runs over the histogram only,
// never the source image. Cells are placed at (z1, 255-z2), matching the
// quadrant plot's orientation.
func intensityPlot(hist *JointHistogram) *image.RGBA {
	plot := image.NewRGBA(image.Rect(0, 0, HistogramBins, HistogramBins))

	// With a max count of 1 the log normalization degenerates; using
	// log(2) keeps single-count cells at full ramp intensity.
	denom := math.Log(float64(hist.MaxCount))
	if hist.MaxCount < 2 {
		denom = math.Log(2)
	}

	for z1 := 0; z1 < HistogramBins; z1++ {
		for z2 := 0; z2 < HistogramBins; z2++ {
			ratio := math.Log(float64(hist.Counts[z1][z2])+1) / denom
			plot.SetRGBA(z1, HistogramBins-1-z2, IntensityColor(ratio))
		}
	}
	return plot
}
