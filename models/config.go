// Package models defines data structures for configuration.
package models

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// ErrConfig marks configuration problems that are fatal to the whole run.
var ErrConfig = errors.New("invalid configuration")

// Config holds runtime configuration for a batch run. Values come from an
// optional YAML file with CLI flags layered on top.
type Config struct {
	InputFolder      string   `yaml:"inputFolder"`
	OutputFolder     string   `yaml:"outputFolder"`
	QuarantineFolder string   `yaml:"quarantineFolder"`
	WorkerCount      int      `yaml:"workerCount"`

	// Page segmentation thresholds. A row counts as blank when every pixel
	// is lighter than LightThreshold or darker than DarkThreshold.
	LightThreshold int `yaml:"lightThreshold"`
	DarkThreshold  int `yaml:"darkThreshold"`
	MinRunLength   int `yaml:"minRunLength"`
	MinGap         int `yaml:"minGap"`
	MinPageHeight  int `yaml:"minPageHeight"`

	// Classifier thresholds.
	MaxAspect        float64 `yaml:"maxAspect"`
	ColorTolerance   int     `yaml:"colorTolerance"`
	MinColorFraction float64 `yaml:"minColorFraction"`

	// Target canvas for the screen-fit pass. Zero disables resizing.
	ScreenWidth  int `yaml:"screenWidth"`
	ScreenHeight int `yaml:"screenHeight"`

	ExplicitKeywords []string `yaml:"explicitKeywords"`
	LicenseKey       string   `yaml:"licenseKey"`

	// HistoryDB overrides the history database location. Empty means
	// next to the executable.
	HistoryDB string `yaml:"historyDB"`
}

// DefaultConfig returns a Config with the stock segmentation thresholds.
func DefaultConfig() *Config {
	return &Config{
		WorkerCount:      runtime.NumCPU(),
		LightThreshold:   240,
		DarkThreshold:    15,
		MinRunLength:     20,
		MinGap:           20,
		MinPageHeight:    75,
		MaxAspect:        1.5,
		ColorTolerance:   8,
		MinColorFraction: 0.05,
		ScreenWidth:      1404,
		ScreenHeight:     1872,
	}
}

// LoadConfig reads a YAML config file on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// Validate checks settings that must be present before any job is dispatched.
// All failures wrap ErrConfig so callers can treat them as fatal.
func (c *Config) Validate() error {
	if c.InputFolder == "" {
		return fmt.Errorf("%w: inputFolder is required", ErrConfig)
	}
	if info, err := os.Stat(c.InputFolder); err != nil || !info.IsDir() {
		return fmt.Errorf("%w: inputFolder %q is not a readable directory", ErrConfig, c.InputFolder)
	}
	if c.OutputFolder == "" {
		return fmt.Errorf("%w: outputFolder is required", ErrConfig)
	}
	if c.QuarantineFolder == "" {
		return fmt.Errorf("%w: quarantineFolder is required", ErrConfig)
	}
	if c.LicenseKey == "" {
		return fmt.Errorf("%w: licenseKey is required", ErrConfig)
	}
	if c.WorkerCount <= 0 {
		c.WorkerCount = runtime.NumCPU()
	}
	return nil
}
