// Package config provides configuration loading and management for the
// colocalizer. It handles loading configuration from YAML files and
// provides default values, so thresholds and flags persist between runs.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML.
type Config struct {
	// Thresholds are the per-channel noise thresholds (0-255).
	Thresholds struct {
		Red   int `yaml:"red"`
		Green int `yaml:"green"`
		Blue  int `yaml:"blue"`
	} `yaml:"thresholds"`

	// Analysis parameters
	Analysis struct {
		// SkipPearsonBelowThreshold excludes pixels below both
		// thresholds from the Pearson correlation sums.
		SkipPearsonBelowThreshold bool `yaml:"skipPearsonBelowThreshold"`

		// ChannelsInOneRow concatenates all channel pairs of a slice
		// into one report row instead of stacking them.
		ChannelsInOneRow bool `yaml:"channelsInOneRow"`

		// NumWorkers bounds per-pair slice concurrency; 0 uses all CPUs.
		NumWorkers int `yaml:"numWorkers"`
	} `yaml:"analysis"`

	// Output parameters
	Output struct {
		// SaveColorPlot writes the quadrant-colored plot stack per pair.
		SaveColorPlot bool `yaml:"saveColorPlot"`

		// SaveIntensityPlot writes the logarithmic intensity plot stack.
		SaveIntensityPlot bool `yaml:"saveIntensityPlot"`

		// SaveColocImage writes the binary colocalization mask stack.
		SaveColocImage bool `yaml:"saveColocImage"`

		// ResultsSubfolder names the folder the per-pair metadata and
		// matrix files are saved under.
		ResultsSubfolder string `yaml:"resultsSubfolder"`

		// Verbose controls the level of logging output.
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	// 75 is a practical starting point for fluorescence background noise.
	cfg.Thresholds.Red = 75
	cfg.Thresholds.Green = 75
	cfg.Thresholds.Blue = 75

	cfg.Analysis.SkipPearsonBelowThreshold = false
	cfg.Analysis.ChannelsInOneRow = true
	cfg.Analysis.NumWorkers = runtime.NumCPU()

	cfg.Output.SaveColorPlot = false
	cfg.Output.SaveIntensityPlot = false
	cfg.Output.SaveColocImage = false
	cfg.Output.ResultsSubfolder = "colocalization_results"
	cfg.Output.Verbose = true

	return cfg
}

// Validate checks the threshold ranges before a run starts. Thresholds
// come from user input, so they are validated here rather than inside the
// engine.
func (cfg *Config) Validate() error {
	for _, t := range []struct {
		name  string
		value int
	}{
		{"red", cfg.Thresholds.Red},
		{"green", cfg.Thresholds.Green},
		{"blue", cfg.Thresholds.Blue},
	} {
		if t.value < 0 || t.value > 255 {
			return fmt.Errorf("%s threshold %d out of range 0-255", t.name, t.value)
		}
	}
	if cfg.Analysis.NumWorkers < 0 {
		return fmt.Errorf("numWorkers must not be negative, got %d", cfg.Analysis.NumWorkers)
	}
	return nil
}

// LoadConfig loads configuration from a YAML file.
// If the file doesn't exist, it returns the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file.
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the
// specified path.
func CreateDefaultConfigFile(configPath string) error {
	return SaveConfig(DefaultConfig(), configPath)
}
