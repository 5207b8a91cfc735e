package colocalization

import (
	"colocalizer/internal/models"
)

// HistogramBins is the number of intensity levels on each histogram axis.
// The engine operates on 8-bit planes, so both axes cover 0-255.
const HistogramBins = 256

// JointHistogram counts, over all pixels of one slice, how often each
// (channel1 intensity, channel2 intensity) pair occurs. A histogram is
// built fresh for every slice and is mutable only during that slice's
// accumulation pass.
type JointHistogram struct {
	// Counts is indexed by [channel1 intensity][channel2 intensity].
	Counts [HistogramBins][HistogramBins]int

	// MaxCount is the largest cell value seen, used to normalize the
	// logarithmic intensity plot.
	MaxCount int
}

// Add records one pixel pair and keeps MaxCount current.
func (h *JointHistogram) Add(z1, z2 uint8) {
	h.Counts[z1][z2]++
	if h.Counts[z1][z2] > h.MaxCount {
		h.MaxCount = h.Counts[z1][z2]
	}
}

// Total returns the sum of all cell counts. For a fully accumulated slice
// this equals width*height of the source planes.
func (h *JointHistogram) Total() int {
	total := 0
	for z1 := range h.Counts {
		for z2 := range h.Counts[z1] {
			total += h.Counts[z1][z2]
		}
	}
	return total
}

// BuildJointHistogram accumulates the joint histogram of two same-sized
// planes. The fused per-slice pass in ProcessSlice builds its histogram
// inline; this standalone builder serves callers that only need the
// co-occurrence counts.
func BuildJointHistogram(p1, p2 *models.Plane) (*JointHistogram, error) {
	if err := checkSameSize(p1, p2); err != nil {
		return nil, err
	}

	hist := &JointHistogram{}
	for y := 0; y < p1.Height; y++ {
		for x := 0; x < p1.Width; x++ {
			hist.Add(p1.At(x, y), p2.At(x, y))
		}
	}
	return hist, nil
}
