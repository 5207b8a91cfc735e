package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"colocalizer/internal/models"
	"colocalizer/pkg/colocalization"
)

func testPair(t *testing.T, numSlices int) *colocalization.PairResult {
	t.Helper()
	pattern := [][]uint8{
		{0, 200},
		{200, 0},
	}
	planes := make([]*models.Plane, numSlices)
	for i := range planes {
		p := models.NewPlane(2, 2)
		for y := range pattern {
			for x := range pattern[y] {
				p.Set(x, y, pattern[y][x])
			}
		}
		planes[i] = p
	}
	stack1 := &models.Stack{Title: "img1.png", Path: "/data/img1.png", Planes: planes}
	stack2 := &models.Stack{Title: "img2.png", Path: "/data/img2.png", Planes: planes}

	pair, err := colocalization.ColocalizePair(stack1, stack2, colocalization.PairOptions{
		Threshold1: 100,
		Threshold2: 100,
		Label1:     "Red",
		Label2:     "Green",
	})
	if err != nil {
		t.Fatalf("ColocalizePair failed: %v", err)
	}
	return pair
}

func TestRows(t *testing.T) {
	pair := testPair(t, 2)
	rows := Rows(pair)

	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}

	// Identical planes: 2 colocalized, 2 below both, Pearson 1.
	want := "img1.png vs img2.png\t1\tRed vs Green\t0\t0\t2\t0.000\t0.000\t100.000\t1.00000\t1.00000\t1.000\t"
	if rows[0] != want {
		t.Errorf("row 0 = %q, want %q", rows[0], want)
	}
	if !strings.Contains(rows[1], "\t2\tRed vs Green\t") {
		t.Errorf("row 1 = %q, want slice number 2", rows[1])
	}
}

// Undefined statistics print as NaN, never as zero.
func TestRowsUndefinedValues(t *testing.T) {
	planes := []*models.Plane{models.NewPlane(2, 2)}
	stack := &models.Stack{Title: "dark.png", Planes: planes}

	pair, err := colocalization.ColocalizePair(stack, stack, colocalization.PairOptions{
		Threshold1: 100, Threshold2: 100, Label1: "Red", Label2: "Green",
	})
	if err != nil {
		t.Fatalf("ColocalizePair failed: %v", err)
	}

	rows := Rows(pair)
	if !strings.Contains(rows[0], "NaN") {
		t.Errorf("row = %q, want NaN for undefined statistics", rows[0])
	}
}

func TestMerge(t *testing.T) {
	t.Run("one row truncates to shorter pair", func(t *testing.T) {
		existing := []string{"a1\t", "a2\t", "a3\t", "a4\t", "a5\t"}
		incoming := []string{"b1\t", "b2\t", "b3\t"}

		merged := Merge(existing, incoming, true)
		if len(merged) != 3 {
			t.Fatalf("len(merged) = %d, want 3", len(merged))
		}
		if merged[0] != "a1\tb1\t" {
			t.Errorf("merged[0] = %q, want %q", merged[0], "a1\tb1\t")
		}
		if merged[2] != "a3\tb3\t" {
			t.Errorf("merged[2] = %q, want %q", merged[2], "a3\tb3\t")
		}
	})

	t.Run("stacked appends below", func(t *testing.T) {
		existing := []string{"a1\t", "a2\t"}
		incoming := []string{"b1\t"}

		merged := Merge(existing, incoming, false)
		if len(merged) != 3 {
			t.Fatalf("len(merged) = %d, want 3", len(merged))
		}
		if merged[2] != "b1\t" {
			t.Errorf("merged[2] = %q, want %q", merged[2], "b1\t")
		}
	})

	t.Run("first pair starts the accumulation", func(t *testing.T) {
		merged := Merge(nil, []string{"b1\t"}, true)
		if len(merged) != 1 || merged[0] != "b1\t" {
			t.Errorf("merged = %v, want [b1\\t]", merged)
		}
	})
}

func TestWriteMatrix(t *testing.T) {
	pair := testPair(t, 1)

	var sb strings.Builder
	if err := WriteMatrix(&sb, pair); err != nil {
		t.Fatalf("WriteMatrix failed: %v", err)
	}
	lines := strings.Split(sb.String(), "\n")

	if want := "Colocalization matrix for X:img1.png vs Y:img2.png and Red vs Green"; lines[0] != want {
		t.Errorf("title line = %q, want %q", lines[0], want)
	}
	if lines[1] != "Slice 1" {
		t.Errorf("slice header = %q, want %q", lines[1], "Slice 1")
	}

	header := strings.Split(lines[2], "\t")
	if len(header) != colocalization.HistogramBins+1 {
		t.Fatalf("header has %d fields, want %d", len(header), colocalization.HistogramBins+1)
	}
	if header[0] != "" || header[1] != "0" || header[256] != "255" {
		t.Errorf("header fields = %q, %q, %q, want \"\", \"0\", \"255\"", header[0], header[1], header[256])
	}

	// Data row for z1 = 200: first field is the intensity, the (0,0) and
	// (200,200) cells carry 2 pixel pairs each, printed with the +1
	// offset.
	row200 := strings.Split(lines[3+200], "\t")
	if row200[0] != "200" {
		t.Errorf("row label = %q, want %q", row200[0], "200")
	}
	if row200[1+200] != "3" {
		t.Errorf("cell (200,200) = %q, want %q (count 2 plus offset)", row200[1+200], "3")
	}
	if row200[1] != "1" {
		t.Errorf("cell (200,0) = %q, want %q (empty plus offset)", row200[1], "1")
	}
}

func TestWriteMetadata(t *testing.T) {
	pair := testPair(t, 2)

	var sb strings.Builder
	if err := WriteMetadata(&sb, pair); err != nil {
		t.Fatalf("WriteMetadata failed: %v", err)
	}
	out := sb.String()

	for _, want := range []string{
		"Image 1 information",
		"Name:\timg1.png",
		"Path:\t/data/img1.png",
		"Channel:\tRed",
		"Threshold:\t100",
		"Image 2 information",
		"Channel:\tGreen",
		"Pearson correlation:\t1\t1\t",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("metadata missing %q in:\n%s", want, out)
		}
	}
}

func TestSaveResult(t *testing.T) {
	pair := testPair(t, 1)
	dir := t.TempDir()
	at := time.Date(2024, 3, 15, 9, 30, 5, 0, time.UTC)

	if err := SaveResult(dir, "colocalization_results", pair, at); err != nil {
		t.Fatalf("SaveResult failed: %v", err)
	}

	folder := filepath.Join(dir, "colocalization_results", "2024-03-15", "09-30-05")
	for _, name := range []string{
		"Metadata_img1.png_vs_img2.png__Red_vs_Green.txt",
		"Matrix_img1.png_vs_img2.png__Red_vs_Green.txt",
	} {
		if _, err := os.Stat(filepath.Join(folder, name)); err != nil {
			t.Errorf("missing result file %s: %v", name, err)
		}
	}
}

func TestSanitize(t *testing.T) {
	if got := sanitize("a b/c:d\\e"); got != "a_b_c_d_e" {
		t.Errorf("sanitize = %q, want %q", got, "a_b_c_d_e")
	}
}
