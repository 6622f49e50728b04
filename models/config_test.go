package models

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.InputFolder = t.TempDir()
	cfg.OutputFolder = filepath.Join(t.TempDir(), "out")
	cfg.QuarantineFolder = filepath.Join(t.TempDir(), "quarantine")
	cfg.LicenseKey = "test-key"
	return cfg
}

func TestValidate_OK(t *testing.T) {
	if err := validConfig(t).Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing input folder", func(c *Config) { c.InputFolder = "" }},
		{"input folder does not exist", func(c *Config) { c.InputFolder = "/no/such/dir" }},
		{"missing output folder", func(c *Config) { c.OutputFolder = "" }},
		{"missing quarantine folder", func(c *Config) { c.QuarantineFolder = "" }},
		{"missing license key", func(c *Config) { c.LicenseKey = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !errors.Is(err, ErrConfig) {
				t.Errorf("Validate() = %v, want ErrConfig", err)
			}
		})
	}
}

func TestValidate_DefaultsWorkerCount(t *testing.T) {
	cfg := validConfig(t)
	cfg.WorkerCount = 0

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
	if cfg.WorkerCount <= 0 {
		t.Errorf("WorkerCount = %d, want positive default", cfg.WorkerCount)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
inputFolder: /scans/in
outputFolder: /scans/out
quarantineFolder: /scans/quarantine
workerCount: 3
lightThreshold: 250
explicitKeywords:
  - adult
  - explicit
licenseKey: abc123
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.InputFolder != "/scans/in" {
		t.Errorf("InputFolder = %q, want /scans/in", cfg.InputFolder)
	}
	if cfg.WorkerCount != 3 {
		t.Errorf("WorkerCount = %d, want 3", cfg.WorkerCount)
	}
	if cfg.LightThreshold != 250 {
		t.Errorf("LightThreshold = %d, want 250", cfg.LightThreshold)
	}
	// Fields absent from the file keep their defaults.
	if cfg.DarkThreshold != 15 {
		t.Errorf("DarkThreshold = %d, want default 15", cfg.DarkThreshold)
	}
	if cfg.ScreenWidth != 1404 || cfg.ScreenHeight != 1872 {
		t.Errorf("screen = %dx%d, want default 1404x1872", cfg.ScreenWidth, cfg.ScreenHeight)
	}
	if len(cfg.ExplicitKeywords) != 2 || cfg.ExplicitKeywords[0] != "adult" {
		t.Errorf("ExplicitKeywords = %v, want [adult explicit]", cfg.ExplicitKeywords)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadConfig() on missing file should fail")
	}
}
