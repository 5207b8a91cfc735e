package colocalization

import (
	"image/color"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/stat"

	"colocalizer/internal/models"
)

const (
	// maskValue marks a colocalized pixel in the binary mask plane.
	maskValue = 255

	// MaskThreshold is the fixed threshold applied to a mask
	// pseudo-channel in a chained comparison. Mask pixels are either 0
	// or 255, so any value strictly between them works; 100 matches the
	// plots produced for regular channels.
	MaskThreshold = 100
)

// PairOptions configures one channel-pair comparison. It is an immutable
// value passed into the analysis call; nothing in the engine mutates it.
type PairOptions struct {
	// Threshold1 and Threshold2 are the noise thresholds, normally 0-255.
	Threshold1, Threshold2 int

	// Color1 and Color2 are the quadrant plot colors of the channels.
	Color1, Color2 color.RGBA

	// Label1 and Label2 name the channels in reports, e.g. "Red".
	Label1, Label2 string

	// SkipBelowForPearson excludes pixels below both thresholds from the
	// Pearson correlation sums.
	SkipBelowForPearson bool

	// Workers bounds the number of slices processed concurrently.
	// Zero or negative means one worker per CPU.
	Workers int
}

// PairResult aggregates the per-slice results of one channel pair across
// a whole stack.
type PairResult struct {
	// Title1 and Title2 identify the source images.
	Title1, Title2 string

	// Path1 and Path2 are the source image locations, where known.
	Path1, Path2 string

	// Options are the settings the pair was compared with.
	Options PairOptions

	// Slices holds one result per slice, in original slice order.
	Slices []*SliceResult
}

// NumSlices returns the number of slices that were compared.
func (r *PairResult) NumSlices() int {
	return len(r.Slices)
}

// MaskStack assembles the colocalization masks into a pseudo-channel
// stack for a chained three-channel comparison.
func (r *PairResult) MaskStack() *models.Stack {
	planes := make([]*models.Plane, len(r.Slices))
	for i, s := range r.Slices {
		planes[i] = s.Mask
	}
	return &models.Stack{
		Title:  "Colocalized " + r.Options.Label1 + " and " + r.Options.Label2 + " channels",
		Planes: planes,
	}
}

// PearsonValues returns the per-slice Pearson coefficients in slice order.
func (r *PairResult) PearsonValues() []float64 {
	values := make([]float64, len(r.Slices))
	for i, s := range r.Slices {
		values[i] = s.Stats.Pearson
	}
	return values
}

// PearsonSummary returns the mean and standard deviation of the per-slice
// Pearson coefficients. With fewer than two slices the deviation is NaN.
func (r *PairResult) PearsonSummary() (mean, stddev float64) {
	values := r.PearsonValues()
	return stat.Mean(values, nil), stat.StdDev(values, nil)
}

// ColocalizePair compares two channel stacks slice by slice. The slices
// are independent, so they are distributed over a bounded worker pool;
// each worker owns its per-slice buffers and results are reassembled in
// original slice order. When the stacks differ in length only the first
// min(len1, len2) slices are compared.
func ColocalizePair(stack1, stack2 *models.Stack, opts PairOptions) (*PairResult, error) {
	numSlices := stack1.Len()
	if stack2.Len() < numSlices {
		numSlices = stack2.Len()
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > numSlices {
		workers = numSlices
	}

	results := make([]*SliceResult, numSlices)
	errs := make([]error, numSlices)
	indices := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				results[i], errs[i] = ProcessSlice(stack1.Planes[i], stack2.Planes[i], opts)
			}
		}()
	}
	for i := 0; i < numSlices; i++ {
		indices <- i
	}
	close(indices)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return &PairResult{
		Title1:  stack1.Title,
		Title2:  stack2.Title,
		Path1:   stack1.Path,
		Path2:   stack2.Path,
		Options: opts,
		Slices:  results,
	}, nil
}
