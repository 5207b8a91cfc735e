package colocalization

import (
	"image/color"

	"github.com/rs/zerolog"

	"colocalizer/internal/models"
)

// colorPseudo marks the mask pseudo-channel on quadrant plots of a
// chained comparison.
var colorPseudo = color.RGBA{R: 255, G: 128, A: 255}

// Options captures the settings of one analysis run. The value is
// immutable for the duration of the run; per-pair settings are derived
// from it, never shared as mutable state.
type Options struct {
	// RedThreshold, GreenThreshold and BlueThreshold are the per-channel
	// noise thresholds (0-255).
	RedThreshold   int
	GreenThreshold int
	BlueThreshold  int

	// SkipBelowForPearson excludes below-both-thresholds pixels from the
	// Pearson correlation.
	SkipBelowForPearson bool

	// Workers bounds per-pair slice concurrency; zero means one per CPU.
	Workers int
}

// threshold returns the configured threshold for a channel.
func (o Options) threshold(ch models.Channel) int {
	switch ch {
	case models.Red:
		return o.RedThreshold
	case models.Green:
		return o.GreenThreshold
	case models.Blue:
		return o.BlueThreshold
	}
	return 0
}

// RunResult collects everything one analysis run produced for a set of
// channel stacks.
type RunResult struct {
	// Pairs holds the two-channel results in run order:
	// red vs blue, green vs blue, red vs green (absent channels skipped).
	Pairs []*PairResult

	// ThreeChannel is the chained comparison of the blue channel against
	// the red/green colocalization mask; nil unless all three channels
	// were analyzed.
	ThreeChannel *PairResult
}

// Analyzer drives colocalization across the channel pairs of one image
// set, the way the interactive workflow orders them.
type Analyzer struct {
	opts Options
	log  zerolog.Logger
}

// NewAnalyzer creates an analyzer for one run's settings.
func NewAnalyzer(opts Options, log zerolog.Logger) *Analyzer {
	return &Analyzer{opts: opts, log: log}
}

// Analyze compares every available channel pair and, when all three
// channels are present, chains the blue channel against the red/green
// colocalization mask. A pair whose planes mismatch in size is reported
// and skipped; the remaining pairs still run.
func (a *Analyzer) Analyze(red, green, blue *models.Stack) *RunResult {
	result := &RunResult{}

	type pairing struct {
		stack1, stack2 *models.Stack
		ch1, ch2       models.Channel
	}
	pairings := []pairing{
		{red, blue, models.Red, models.Blue},
		{green, blue, models.Green, models.Blue},
		{red, green, models.Red, models.Green},
	}

	var redGreen *PairResult
	for _, p := range pairings {
		if p.stack1 == nil || p.stack2 == nil {
			continue
		}
		pair, err := a.colocalize(p.stack1, p.stack2, p.ch1, p.ch2)
		if err != nil {
			a.log.Error().Err(err).
				Str("channel1", p.ch1.String()).
				Str("channel2", p.ch2.String()).
				Msg("channel pair skipped")
			continue
		}
		result.Pairs = append(result.Pairs, pair)
		if p.ch1 == models.Red && p.ch2 == models.Green {
			redGreen = pair
		}
	}

	// Chain blue against the red/green colocalization mask. The mask is
	// binary, so its threshold is fixed rather than user-configured.
	if blue != nil && redGreen != nil {
		opts := PairOptions{
			Threshold1:          a.opts.BlueThreshold,
			Threshold2:          MaskThreshold,
			Color1:              models.Blue.Color(),
			Color2:              colorPseudo,
			Label1:              models.Blue.String(),
			Label2:              "Red+Green colocalized",
			SkipBelowForPearson: a.opts.SkipBelowForPearson,
			Workers:             a.opts.Workers,
		}
		pair, err := ColocalizePair(blue, redGreen.MaskStack(), opts)
		if err != nil {
			a.log.Error().Err(err).Msg("three-channel pass skipped")
		} else {
			result.ThreeChannel = pair
			a.logPair(pair)
		}
	}

	return result
}

func (a *Analyzer) colocalize(stack1, stack2 *models.Stack, ch1, ch2 models.Channel) (*PairResult, error) {
	opts := PairOptions{
		Threshold1:          a.opts.threshold(ch1),
		Threshold2:          a.opts.threshold(ch2),
		Color1:              ch1.Color(),
		Color2:              ch2.Color(),
		Label1:              ch1.String(),
		Label2:              ch2.String(),
		SkipBelowForPearson: a.opts.SkipBelowForPearson,
		Workers:             a.opts.Workers,
	}
	pair, err := ColocalizePair(stack1, stack2, opts)
	if err != nil {
		return nil, err
	}
	a.logPair(pair)
	return pair, nil
}

func (a *Analyzer) logPair(pair *PairResult) {
	mean, stddev := pair.PearsonSummary()
	a.log.Info().
		Str("channels", pair.Options.Label1+" vs "+pair.Options.Label2).
		Int("slices", pair.NumSlices()).
		Float64("pearson_mean", mean).
		Float64("pearson_stddev", stddev).
		Msg("channel pair colocalized")
}
