package colocalization

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/stat"
)

// The single-pass running sums must reproduce the textbook two-pass
// coefficient. gonum computes it the two-pass way, so it serves as the
// reference.
func TestPearsonSumsMatchGonum(t *testing.T) {
	var sums PearsonSums
	var xs, ys []float64
	for i := 0; i < 500; i++ {
		z1 := uint8((i*i + 3*i) % 256)
		z2 := uint8((7*i + 11) % 256)
		sums.Add(z1, z2)
		xs = append(xs, float64(z1))
		ys = append(ys, float64(z2))
	}

	got := sums.Correlation()
	want := stat.Correlation(xs, ys, nil)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Correlation() = %v, want %v (gonum)", got, want)
	}
}

func TestPearsonPerfectCorrelation(t *testing.T) {
	var sums PearsonSums
	for i := 0; i < 256; i++ {
		sums.Add(uint8(i), uint8(i))
	}
	if got := sums.Correlation(); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("Correlation() of identical samples = %v, want 1.0", got)
	}
}

func TestPearsonUndefinedCases(t *testing.T) {
	tests := []struct {
		name string
		fill func(s *PearsonSums)
	}{
		{"no samples", func(s *PearsonSums) {}},
		{"single sample", func(s *PearsonSums) { s.Add(10, 20) }},
		{"constant channel", func(s *PearsonSums) {
			for i := 0; i < 10; i++ {
				s.Add(uint8(i*20), 50)
			}
		}},
		{"both constant", func(s *PearsonSums) {
			for i := 0; i < 10; i++ {
				s.Add(100, 100)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sums PearsonSums
			tt.fill(&sums)
			if got := sums.Correlation(); !math.IsNaN(got) {
				t.Errorf("Correlation() = %v, want NaN", got)
			}
		})
	}
}

func TestComputeStatistics(t *testing.T) {
	counts := Counts{BelowBoth: 50, Channel1Only: 10, Channel2Only: 30, Colocalized: 10}
	var sums PearsonSums
	for i := 0; i < 50; i++ {
		sums.Add(uint8(i), uint8(255-i))
	}

	stats := ComputeStatistics(counts, sums)

	if got := stats.PercentChannel1Only; got != 20 {
		t.Errorf("PercentChannel1Only = %v, want 20", got)
	}
	if got := stats.PercentChannel2Only; got != 60 {
		t.Errorf("PercentChannel2Only = %v, want 60", got)
	}
	if got := stats.PercentColocalized; got != 20 {
		t.Errorf("PercentColocalized = %v, want 20", got)
	}
	if got := stats.Channel1OverlapChannel2; got != 0.5 {
		t.Errorf("Channel1OverlapChannel2 = %v, want 0.5", got)
	}
	if got := stats.Channel2OverlapChannel1; got != 0.25 {
		t.Errorf("Channel2OverlapChannel1 = %v, want 0.25", got)
	}
	if got := stats.Pearson; math.Abs(got+1.0) > 1e-12 {
		t.Errorf("Pearson = %v, want -1.0", got)
	}
}

// Zero denominators yield NaN across the board, never zero and never an
// error.
func TestComputeStatisticsEmptyQuadrants(t *testing.T) {
	counts := Counts{BelowBoth: 100}
	stats := ComputeStatistics(counts, PearsonSums{})

	for name, v := range map[string]float64{
		"PercentChannel1Only":     stats.PercentChannel1Only,
		"PercentChannel2Only":     stats.PercentChannel2Only,
		"PercentColocalized":      stats.PercentColocalized,
		"Channel1OverlapChannel2": stats.Channel1OverlapChannel2,
		"Channel2OverlapChannel1": stats.Channel2OverlapChannel1,
		"Pearson":                 stats.Pearson,
	} {
		if !math.IsNaN(v) {
			t.Errorf("%s = %v, want NaN", name, v)
		}
	}
}

// Overlap coefficients are fractions of pixel populations and stay inside
// [0, 1] whenever they are defined.
func TestOverlapCoefficientsBounded(t *testing.T) {
	for _, counts := range []Counts{
		{Channel1Only: 5, Channel2Only: 3, Colocalized: 2},
		{Channel1Only: 1, Colocalized: 99},
		{Channel2Only: 40, Colocalized: 1},
		{Colocalized: 7},
	} {
		stats := ComputeStatistics(counts, PearsonSums{})
		for name, v := range map[string]float64{
			"Channel1OverlapChannel2": stats.Channel1OverlapChannel2,
			"Channel2OverlapChannel1": stats.Channel2OverlapChannel1,
		} {
			if math.IsNaN(v) {
				continue
			}
			if v < 0 || v > 1 {
				t.Errorf("%s = %v for %+v, want within [0, 1]", name, v, counts)
			}
		}
	}
}
