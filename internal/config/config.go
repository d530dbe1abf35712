package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/menta2k/pixelsort/pkg/mask"
	"github.com/menta2k/pixelsort/pkg/metric"
	"github.com/menta2k/pixelsort/pkg/pipeline"
	"github.com/menta2k/pixelsort/pkg/raster"
)

// Config mirrors the CLI flags so a preset can be kept on disk and reused
// across runs. Explicit flags override loaded values.
type Config struct {
	Low          float64 `json:"low"`
	High         float64 `json:"high"`
	Channel      string  `json:"channel"`
	Invert       bool    `json:"invert"`
	RandomOffset float64 `json:"random_offset"`
	Vertical     bool    `json:"vertical"`
	Metric       string  `json:"metric"`
	Reverse      bool    `json:"reverse"`
	Gamma        float64 `json:"gamma"`
	Seed         int64   `json:"seed"`
	Workers      int     `json:"workers"`
	Quality      int     `json:"quality"`
	Lossless     bool    `json:"lossless"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Low:     0.2,
		High:    0.8,
		Channel: "hsl_l",
		Metric:  "hsl_l",
		Gamma:   1.2,
		Seed:    -1,
		Quality: 90,
	}
}

// LoadFromFile loads configuration from a JSON file
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Low < 0 || c.Low > 1 {
		return fmt.Errorf("low must be between 0 and 1")
	}

	if c.High < 0 || c.High > 1 {
		return fmt.Errorf("high must be between 0 and 1")
	}

	if c.Low > c.High {
		return fmt.Errorf("low must not exceed high")
	}

	if c.RandomOffset < 0 {
		return fmt.Errorf("random_offset must be >= 0")
	}

	if c.Gamma <= 0 {
		return fmt.Errorf("gamma must be positive")
	}

	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("quality must be between 1 and 100")
	}

	if _, err := metric.ParseChannel(c.Channel); err != nil {
		return err
	}

	if _, err := metric.ParseMetric(c.Metric); err != nil {
		return err
	}

	return nil
}

// Pipeline translates the flat flag values into a pipeline configuration.
func (c *Config) Pipeline() (pipeline.Config, error) {
	channel, err := metric.ParseChannel(c.Channel)
	if err != nil {
		return pipeline.Config{}, err
	}

	sortMetric, err := metric.ParseMetric(c.Metric)
	if err != nil {
		return pipeline.Config{}, err
	}

	orientation := raster.Horizontal
	if c.Vertical {
		orientation = raster.Vertical
	}

	return pipeline.Config{
		Gamma: c.Gamma,
		Mask: mask.Config{
			Channel:      channel,
			Low:          c.Low,
			High:         c.High,
			Invert:       c.Invert,
			RandomOffset: c.RandomOffset,
		},
		Sort: pipeline.SortConfig{
			Metric:  sortMetric,
			Reverse: c.Reverse,
		},
		Orientation: orientation,
		Seed:        c.Seed,
		Workers:     c.Workers,
	}, nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "pixelsort", "config.json")
}
