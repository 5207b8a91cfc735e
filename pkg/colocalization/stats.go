package colocalization

import (
	"math"
)

// PearsonSums accumulates the running intensity sums needed for the
// Pearson correlation coefficient. The sums are gathered in the same pass
// as classification so that below-threshold pixels can be excluded while
// they are being classified.
type PearsonSums struct {
	SumX  float64
	SumY  float64
	SumXX float64
	SumYY float64
	SumXY float64
	N     float64
}

// Add records one pixel pair's contribution.
func (s *PearsonSums) Add(z1, z2 uint8) {
	x := float64(z1)
	y := float64(z2)
	s.SumX += x
	s.SumY += y
	s.SumXX += x * x
	s.SumYY += y * y
	s.SumXY += x * y
	s.N++
}

// Correlation computes the sample Pearson correlation coefficient from
// the accumulated sums. When either channel has zero variance the
// coefficient is undefined and NaN is returned rather than an error.
func (s PearsonSums) Correlation() float64 {
	den := (s.N*s.SumXX - s.SumX*s.SumX) * (s.N*s.SumYY - s.SumY*s.SumY)
	if den <= 0 {
		return math.NaN()
	}
	return (s.N*s.SumXY - s.SumX*s.SumY) / math.Sqrt(den)
}

// SliceStatistics holds the derived colocalization metrics for one slice.
// Every field may be NaN when its denominator is zero; NaN propagates into
// reports instead of being zeroed or raised as an error.
type SliceStatistics struct {
	// Percentages of the above-threshold population.
	PercentChannel1Only float64
	PercentChannel2Only float64
	PercentColocalized  float64

	// Manders-style overlap coefficients.
	Channel1OverlapChannel2 float64
	Channel2OverlapChannel1 float64

	// Pearson correlation coefficient over the slice's pixel pairs.
	Pearson float64
}

// ComputeStatistics derives the per-slice metrics from the classification
// tallies and the running Pearson sums of the same pass.
func ComputeStatistics(c Counts, sums PearsonSums) SliceStatistics {
	above := c.AboveThreshold()
	return SliceStatistics{
		PercentChannel1Only:     percentage(c.Channel1Only, above),
		PercentChannel2Only:     percentage(c.Channel2Only, above),
		PercentColocalized:      percentage(c.Colocalized, above),
		Channel1OverlapChannel2: fraction(c.Colocalized, c.Channel1Only+c.Colocalized),
		Channel2OverlapChannel1: fraction(c.Colocalized, c.Channel2Only+c.Colocalized),
		Pearson:                 sums.Correlation(),
	}
}

func percentage(num, den int) float64 {
	if den == 0 {
		return math.NaN()
	}
	return float64(num) / float64(den) * 100
}

func fraction(num, den int) float64 {
	if den == 0 {
		return math.NaN()
	}
	return float64(num) / float64(den)
}
