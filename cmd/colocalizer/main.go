package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"colocalizer/internal/logger"
	"colocalizer/internal/models"
	"colocalizer/pkg/colocalization"
	"colocalizer/pkg/config"
	"colocalizer/pkg/imgstack"
	"colocalizer/pkg/report"
)

func main() {
	// Parse command line arguments
	configPath := flag.String("config", "colocalizer.yaml", "Path to the YAML configuration file")
	redPath := flag.String("red", "", "Red channel image file or stack directory")
	greenPath := flag.String("green", "", "Green channel image file or stack directory")
	bluePath := flag.String("blue", "", "Blue channel image file or stack directory")
	imagePath := flag.String("image", "", "Single 3-channel image file or stack directory")
	dirPath := flag.String("dir", "", "Directory of 3-channel images, analyzed one by one")
	outDir := flag.String("out", ".", "Directory for saved results and plots")
	saveResults := flag.Bool("save-results", false, "Save per-pair metadata and histogram matrix files")
	redThres := flag.Int("red-threshold", -1, "Red noise threshold (0-255), overrides the config")
	greenThres := flag.Int("green-threshold", -1, "Green noise threshold (0-255), overrides the config")
	blueThres := flag.Int("blue-threshold", -1, "Blue noise threshold (0-255), overrides the config")
	writeConfig := flag.Bool("write-config", false, "Write the effective configuration back to the config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *redThres >= 0 {
		cfg.Thresholds.Red = *redThres
	}
	if *greenThres >= 0 {
		cfg.Thresholds.Green = *greenThres
	}
	if *blueThres >= 0 {
		cfg.Thresholds.Blue = *blueThres
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.NewConsole(cfg.Output.Verbose)

	if *writeConfig {
		if err := config.SaveConfig(cfg, *configPath); err != nil {
			log.Fatal().Err(err).Msg("failed to write config")
		}
		log.Info().Str("path", *configPath).Msg("configuration saved")
	}

	analyzer := colocalization.NewAnalyzer(colocalization.Options{
		RedThreshold:        cfg.Thresholds.Red,
		GreenThreshold:      cfg.Thresholds.Green,
		BlueThreshold:       cfg.Thresholds.Blue,
		SkipBelowForPearson: cfg.Analysis.SkipPearsonBelowThreshold,
		Workers:             cfg.Analysis.NumWorkers,
	}, log)

	var runs []*colocalization.RunResult
	switch {
	case *dirPath != "":
		runs = analyzeDirectory(*dirPath, analyzer, log)
	case *imagePath != "":
		stack, err := imgstack.Load(*imagePath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load image")
		}
		runs = append(runs, analyzer.Analyze(
			stack.Channel(models.Red),
			stack.Channel(models.Green),
			stack.Channel(models.Blue)))
	default:
		red := loadChannel(*redPath, models.Red, log)
		green := loadChannel(*greenPath, models.Green, log)
		blue := loadChannel(*bluePath, models.Blue, log)
		if countStacks(red, green, blue) < 2 {
			flag.Usage()
			os.Exit(1)
		}
		runs = append(runs, analyzer.Analyze(red, green, blue))
	}

	startedAt := time.Now()
	for _, run := range runs {
		saveRun(run, cfg, *outDir, *saveResults, startedAt, log)
	}

	printReport(runs, cfg.Analysis.ChannelsInOneRow)
}

// loadChannel loads one separately supplied channel stack; an empty path
// means the channel is not part of this run.
func loadChannel(path string, ch models.Channel, log zerolog.Logger) *models.Stack {
	if path == "" {
		return nil
	}
	stack, err := imgstack.Load(path)
	if err != nil {
		log.Fatal().Err(err).Str("channel", ch.String()).Msg("failed to load channel")
	}
	return stack.Channel(ch)
}

func countStacks(stacks ...*models.Stack) int {
	n := 0
	for _, s := range stacks {
		if s != nil {
			n++
		}
	}
	return n
}

// analyzeDirectory runs the full analysis on every 3-channel image in
// dir, skipping grayscale files.
func analyzeDirectory(dir string, analyzer *colocalization.Analyzer, log zerolog.Logger) []*colocalization.RunResult {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read directory")
	}

	var runs []*colocalization.RunResult
	for i, e := range entries {
		if e.IsDir() {
			continue
		}
		stack, err := imgstack.Load(filepath.Join(dir, e.Name()))
		if err != nil {
			log.Warn().Err(err).Str("file", e.Name()).Msg("file skipped")
			continue
		}
		if !stack.IsRGB() {
			log.Debug().Str("file", e.Name()).Msg("not a 3-channel image, skipped")
			continue
		}
		log.Info().
			Str("file", e.Name()).
			Int("progress", i+1).
			Int("total", len(entries)).
			Msg("analyzing image")
		runs = append(runs, analyzer.Analyze(
			stack.Channel(models.Red),
			stack.Channel(models.Green),
			stack.Channel(models.Blue)))
	}
	return runs
}

// saveRun persists the requested outputs of one analysis run.
func saveRun(run *colocalization.RunResult, cfg *config.Config, outDir string, saveResults bool, at time.Time, log zerolog.Logger) {
	pairs := run.Pairs
	if run.ThreeChannel != nil {
		pairs = append(pairs[:len(pairs):len(pairs)], run.ThreeChannel)
	}
	for _, pair := range pairs {
		if saveResults {
			if err := report.SaveResult(outDir, cfg.Output.ResultsSubfolder, pair, at); err != nil {
				log.Error().Err(err).Msg("failed to save result files")
			}
		}
		savePlots(pair, cfg, outDir, log)
	}
}

func savePlots(pair *colocalization.PairResult, cfg *config.Config, outDir string, log zerolog.Logger) {
	if !cfg.Output.SaveColorPlot && !cfg.Output.SaveIntensityPlot && !cfg.Output.SaveColocImage {
		return
	}

	name := strings.ReplaceAll(pair.Options.Label1+"_vs_"+pair.Options.Label2, " ", "_")
	base := filepath.Join(outDir, "plots", name)

	if cfg.Output.SaveColorPlot {
		plots := make([]*image.RGBA, len(pair.Slices))
		for i, s := range pair.Slices {
			plots[i] = s.QuadrantPlot
		}
		if err := imgstack.SaveImageStack(filepath.Join(base, "color"), plots); err != nil {
			log.Error().Err(err).Msg("failed to save color plots")
		}
	}
	if cfg.Output.SaveIntensityPlot {
		plots := make([]*image.RGBA, len(pair.Slices))
		for i, s := range pair.Slices {
			plots[i] = s.IntensityPlot
		}
		if err := imgstack.SaveImageStack(filepath.Join(base, "intensity"), plots); err != nil {
			log.Error().Err(err).Msg("failed to save intensity plots")
		}
	}
	if cfg.Output.SaveColocImage {
		masks := make([]*models.Plane, len(pair.Slices))
		for i, s := range pair.Slices {
			masks[i] = s.Mask
		}
		if err := imgstack.SavePlaneStack(filepath.Join(base, "coloc"), masks); err != nil {
			log.Error().Err(err).Msg("failed to save colocalization masks")
		}
	}
}

// printReport writes the two statistics tables to stdout: one for the
// channel pairs and one for the chained three-channel comparison.
func printReport(runs []*colocalization.RunResult, inOneRow bool) {
	var pairRows, threeRows []string
	headerRepeat := 1
	for _, run := range runs {
		var rows []string
		for _, pair := range run.Pairs {
			rows = report.Merge(rows, report.Rows(pair), inOneRow)
		}
		pairRows = append(pairRows, rows...)
		if inOneRow && len(run.Pairs) > headerRepeat {
			headerRepeat = len(run.Pairs)
		}
		if run.ThreeChannel != nil {
			threeRows = append(threeRows, report.Rows(run.ThreeChannel)...)
		}
	}

	if len(pairRows) > 0 {
		fmt.Println("Colocalization statistics for pairs of channels")
		fmt.Println(strings.Repeat(report.Header, headerRepeat))
		for _, row := range pairRows {
			fmt.Println(row)
		}
	}
	if len(threeRows) > 0 {
		fmt.Println()
		fmt.Println("Colocalization statistics for three channels")
		fmt.Println(report.Header)
		for _, row := range threeRows {
			fmt.Println(row)
		}
	}
}
