// Package report renders colocalization results as tab-delimited rows and
// persists the per-pair metadata and joint-histogram matrix files.
package report

import (
	"fmt"

	"colocalizer/pkg/colocalization"
)

// Header is the column group emitted once per channel pair. When pairs
// are merged in one row the header repeats once per pair.
const Header = "Image titles for colocalization\tSlice #\tCh1 vs Ch2\t" +
	"Ch1 pixels\tCh2 pixels\tColoc pixels\t" +
	"Percent Ch1\tPercent Ch2\tPercent Coloc\t" +
	"Ch1 Overlap Ch2\tCh2 Overlap Ch1\tPearson\t"

// rowFormat flattens one slice's statistics: pair title, slice number,
// channel labels, three pixel counts, three percentages, two overlap
// coefficients and the Pearson coefficient. Undefined values print as NaN.
const rowFormat = "%s\t%d\t%s\t%d\t%d\t%d\t%.3f\t%.3f\t%.3f\t%.5f\t%.5f\t%.3f\t"

// Rows renders one pair's per-slice statistics, one row per slice in
// slice order.
func Rows(r *colocalization.PairResult) []string {
	rows := make([]string, r.NumSlices())
	pairTitle := r.Title1 + " vs " + r.Title2
	channels := r.Options.Label1 + " vs " + r.Options.Label2
	for i, s := range r.Slices {
		rows[i] = fmt.Sprintf(rowFormat,
			pairTitle,
			i+1,
			channels,
			s.Counts.Channel1Only, s.Counts.Channel2Only, s.Counts.Colocalized,
			s.Stats.PercentChannel1Only, s.Stats.PercentChannel2Only, s.Stats.PercentColocalized,
			s.Stats.Channel1OverlapChannel2, s.Stats.Channel2OverlapChannel1,
			s.Stats.Pearson)
	}
	return rows
}

// Merge combines the rows of one more channel pair into the accumulated
// rows. When inOneRow is set, row i of the new pair is appended to the
// right of accumulated row i and the output is truncated to the shorter
// of the two; otherwise the new rows are stacked below the existing ones.
func Merge(existing, newRows []string, inOneRow bool) []string {
	if !inOneRow || len(existing) == 0 {
		return append(existing, newRows...)
	}

	n := len(existing)
	if len(newRows) < n {
		n = len(newRows)
	}
	merged := make([]string, n)
	for i := 0; i < n; i++ {
		merged[i] = existing[i] + newRows[i]
	}
	return merged
}
