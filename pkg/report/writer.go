package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"colocalizer/pkg/colocalization"
)

// WriteMatrix dumps the joint histogram stack of one pair as a
// tab-delimited matrix. Each slice is prefixed with a "Slice N" header and
// a 0-255 intensity header row; the first column of every data row is the
// channel 1 intensity. Cell values carry the +1 offset the accumulation
// uses, so an empty cell prints as 1.
func WriteMatrix(w io.Writer, r *colocalization.PairResult) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Colocalization matrix for X:%s vs Y:%s and %s vs %s\n",
		r.Title1, r.Title2, r.Options.Label1, r.Options.Label2)

	header := make([]string, colocalization.HistogramBins+1)
	header[0] = ""
	for x := 0; x < colocalization.HistogramBins; x++ {
		header[x+1] = strconv.Itoa(x)
	}

	row := make([]string, colocalization.HistogramBins+1)
	for i, s := range r.Slices {
		fmt.Fprintf(bw, "Slice %d\n", i+1)
		bw.WriteString(strings.Join(header, "\t"))
		bw.WriteByte('\n')

		for z1 := 0; z1 < colocalization.HistogramBins; z1++ {
			row[0] = strconv.Itoa(z1)
			for z2 := 0; z2 < colocalization.HistogramBins; z2++ {
				row[z2+1] = strconv.Itoa(s.Histogram.Counts[z1][z2] + 1)
			}
			bw.WriteString(strings.Join(row, "\t"))
			bw.WriteByte('\n')
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

// WriteMetadata records how one pair was analyzed: image names and paths,
// channel labels, thresholds and the per-slice Pearson coefficients.
func WriteMetadata(w io.Writer, r *colocalization.PairResult) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Image 1 information\n")
	fmt.Fprintf(bw, "Name:\t%s\n", r.Title1)
	fmt.Fprintf(bw, "Path:\t%s\n", r.Path1)
	fmt.Fprintf(bw, "Channel:\t%s\n", r.Options.Label1)
	fmt.Fprintf(bw, "Threshold:\t%d\n", r.Options.Threshold1)
	fmt.Fprintf(bw, "\n")
	fmt.Fprintf(bw, "Image 2 information\n")
	fmt.Fprintf(bw, "Name:\t%s\n", r.Title2)
	fmt.Fprintf(bw, "Path:\t%s\n", r.Path2)
	fmt.Fprintf(bw, "Channel:\t%s\n", r.Options.Label2)
	fmt.Fprintf(bw, "Threshold:\t%d\n", r.Options.Threshold2)

	fmt.Fprintf(bw, "Pearson correlation:\t")
	for _, p := range r.PearsonValues() {
		fmt.Fprintf(bw, "%v\t", p)
	}
	fmt.Fprintf(bw, "\n")

	return bw.Flush()
}

// SaveResult writes the metadata and matrix files of one pair under
// dir/subfolder/YYYY-MM-DD/HH-mm-ss, so repeated runs of the same image
// set never overwrite each other.
func SaveResult(dir, subfolder string, r *colocalization.PairResult, at time.Time) error {
	folder := filepath.Join(dir, subfolder,
		at.Format("2006-01-02"), at.Format("15-04-05"))
	if err := os.MkdirAll(folder, 0755); err != nil {
		return fmt.Errorf("failed to create results folder: %w", err)
	}

	base := fmt.Sprintf("%s_vs_%s__%s_vs_%s.txt",
		sanitize(r.Title1), sanitize(r.Title2),
		sanitize(r.Options.Label1), sanitize(r.Options.Label2))

	if err := writeFile(filepath.Join(folder, "Metadata_"+base), func(w io.Writer) error {
		return WriteMetadata(w, r)
	}); err != nil {
		return err
	}
	return writeFile(filepath.Join(folder, "Matrix_"+base), func(w io.Writer) error {
		return WriteMatrix(w, r)
	})
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create result file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// sanitize keeps result file names portable.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ':
			return '_'
		}
		return r
	}, s)
}
