package colocalization

import (
	"image"

	"colocalizer/internal/models"
)

// SliceResult bundles the statistics and the derived planes for one slice
// of a channel pair.
type SliceResult struct {
	// Histogram is the 256x256 joint intensity histogram.
	Histogram *JointHistogram

	// Counts are the classification tallies.
	Counts Counts

	// Stats are the metrics derived from Counts and the Pearson sums.
	Stats SliceStatistics

	// QuadrantPlot is the 256x256 intensity-space plot with one quadrant
	// color per classification and the threshold lines drawn on top.
	QuadrantPlot *image.RGBA

	// IntensityPlot is the 256x256 log-scale false-color rendering of the
	// joint histogram.
	IntensityPlot *image.RGBA

	// Mask is the pixel-space colocalization mask: 255 where both
	// channels reached their thresholds, 0 elsewhere. It can be fed back
	// into a chained comparison as a pseudo-channel.
	Mask *models.Plane
}

// ProcessSlice runs the colocalization analysis for one slice. The joint
// histogram, the classification (with its quadrant plot and mask) and the
// Pearson sums are all accumulated in a single pass over the pixels: the
// below-threshold exclusion for Pearson needs the classification of each
// pixel while its sums are being gathered, and one pass keeps the three
// outputs numerically consistent. The intensity plot is then derived from
// the finished histogram in a second pass over the 256x256 grid only.
func ProcessSlice(p1, p2 *models.Plane, opts PairOptions) (*SliceResult, error) {
	if err := checkSameSize(p1, p2); err != nil {
		return nil, err
	}

	hist := &JointHistogram{}
	counts := Counts{}
	sums := PearsonSums{}
	mask := models.NewPlane(p1.Width, p1.Height)
	plot := newQuadrantPlot()
	colocColor := blendColocColor(opts.Color1, opts.Color2)

	for y := 0; y < p1.Height; y++ {
		for x := 0; x < p1.Width; x++ {
			z1 := p1.At(x, y)
			z2 := p2.At(x, y)

			hist.Add(z1, z2)

			cat := Classify(z1, z2, opts.Threshold1, opts.Threshold2)
			counts.Add(cat)

			// Plot coordinates are intensity-space: column z1, row
			// 255-z2 so that the channel 2 axis grows upward.
			px, py := int(z1), HistogramBins-1-int(z2)
			switch cat {
			case BelowBoth:
				plot.SetRGBA(px, py, colorBelowBoth)
			case Channel1Only:
				plot.SetRGBA(px, py, opts.Color1)
			case Channel2Only:
				plot.SetRGBA(px, py, opts.Color2)
			case Colocalized:
				plot.SetRGBA(px, py, colocColor)
				mask.Set(x, y, maskValue)
			}

			if cat == BelowBoth && opts.SkipBelowForPearson {
				continue
			}
			sums.Add(z1, z2)
		}
	}

	drawThresholdLines(plot, opts.Threshold1, opts.Threshold2)

	return &SliceResult{
		Histogram:     hist,
		Counts:        counts,
		Stats:         ComputeStatistics(counts, sums),
		QuadrantPlot:  plot,
		IntensityPlot: intensityPlot(hist),
		Mask:          mask,
	}, nil
}
