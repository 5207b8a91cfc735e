package colocalization

import (
	"image"
	"image/color"
)

// Category is the classification of one pixel pair relative to the two
// noise thresholds. The four categories are mutually exclusive and
// exhaustive for any threshold pair.
type Category int

const (
	// BelowBoth: both values are below their thresholds.
	BelowBoth Category = iota
	// Channel1Only: only the first channel reaches its threshold.
	Channel1Only
	// Channel2Only: only the second channel reaches its threshold.
	Channel2Only
	// Colocalized: both values reach their thresholds.
	Colocalized
)

// Classify assigns a pixel pair to its category. Thresholds are taken as
// ints so that max+1 (256) expresses "nothing qualifies".
func Classify(z1, z2 uint8, thres1, thres2 int) Category {
	above1 := int(z1) >= thres1
	above2 := int(z2) >= thres2
	switch {
	case above1 && above2:
		return Colocalized
	case above1:
		return Channel1Only
	case above2:
		return Channel2Only
	}
	return BelowBoth
}

// Counts holds the per-slice classification tallies.
type Counts struct {
	BelowBoth    int
	Channel1Only int
	Channel2Only int
	Colocalized  int
}

// Add increments the tally for one classified pixel pair.
func (c *Counts) Add(cat Category) {
	switch cat {
	case BelowBoth:
		c.BelowBoth++
	case Channel1Only:
		c.Channel1Only++
	case Channel2Only:
		c.Channel2Only++
	case Colocalized:
		c.Colocalized++
	}
}

// AboveThreshold returns the number of pixel pairs where at least one
// channel reached its threshold.
func (c Counts) AboveThreshold() int {
	return c.Channel1Only + c.Channel2Only + c.Colocalized
}

// Total returns the number of classified pixel pairs. For a fully
// processed slice this equals width*height.
func (c Counts) Total() int {
	return c.BelowBoth + c.AboveThreshold()
}

var (
	// colorBelowBoth marks pixel pairs under both thresholds on the
	// quadrant plot.
	colorBelowBoth = color.RGBA{R: 128, G: 128, B: 128, A: 255}

	// colorThresholdLine draws the threshold lines. Black is not used by
	// any quadrant, so the lines stay unambiguous.
	colorThresholdLine = color.RGBA{A: 255}
)

// blendColocColor combines the two channel colors for the colocalized
// quadrant. Each component is scaled by 0.6 after summing and clamped to
// the 8-bit range, so bright channel colors cannot overflow.
func blendColocColor(c1, c2 color.RGBA) color.RGBA {
	clamp := func(a, b uint8) uint8 {
		v := int(float64(int(a)+int(b)) * 0.6)
		if v > 255 {
			v = 255
		}
		return uint8(v)
	}
	return color.RGBA{
		R: clamp(c1.R, c2.R),
		G: clamp(c1.G, c2.G),
		B: clamp(c1.B, c2.B),
		A: 255,
	}
}

// newQuadrantPlot allocates the 256x256 intensity-space plot written
// during classification. Cell (z1, 255-z2) holds the quadrant color: the
// vertical flip keeps intensity axes growing up and to the right while
// raster rows grow downward.
func newQuadrantPlot() *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, HistogramBins, HistogramBins))
}

// drawThresholdLines overlays the two threshold lines across the full
// intensity range of a 256x256 plot: a vertical line at column thres1 and
// a horizontal line at the row for thres2. Thresholds outside 0-255
// (used to express "nothing qualifies") have no line to draw.
func drawThresholdLines(plot *image.RGBA, thres1, thres2 int) {
	if thres2 >= 0 && thres2 < HistogramBins {
		y := HistogramBins - 1 - thres2
		for x := 0; x < HistogramBins; x++ {
			plot.SetRGBA(x, y, colorThresholdLine)
		}
	}
	if thres1 >= 0 && thres1 < HistogramBins {
		for y := 0; y < HistogramBins; y++ {
			plot.SetRGBA(thres1, y, colorThresholdLine)
		}
	}
}
