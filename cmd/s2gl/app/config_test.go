package app

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/roman-kulish/doppler-if/internal/spectrum"
)

func TestLoadConfig_Defaults(t *testing.T) {
	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if config.Analysis != spectrum.DefaultConfig() {
		t.Errorf("Analysis = %+v, want defaults", config.Analysis)
	}
	if config.Settings.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want INFO", config.Settings.LogLevel)
	}
	if config.Render.Theme != EnhancedTheme || config.Render.Format != ImagePNG {
		t.Errorf("Render = %+v, want enhanced png", config.Render)
	}
	if err = config.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s2gl.yaml")
	yaml := `
settings:
  logLevel: debug
analysis:
  samplingFrequency: 2048
  frequencyMin: -500
  frequencyMax: 250
  window: blackman
  workers: 4
render:
  theme: thermal
  format: jpeg
  rowHeight: 2
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if config.Settings.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want DEBUG", config.Settings.LogLevel)
	}
	a := config.Analysis
	if a.SamplingFrequency != 2048 || a.FrequencyMin != -500 || a.FrequencyMax != 250 {
		t.Errorf("Analysis = %+v", a)
	}
	if a.Window != spectrum.WindowFunctionBlackman || a.Workers != 4 {
		t.Errorf("Window = %s, Workers = %d", a.Window, a.Workers)
	}
	// keys not present keep their defaults
	if a.FFTResolution != spectrum.DefaultFFTResolution || a.SegmentLength != spectrum.DefaultSegmentLength || !a.ZeroForcing {
		t.Errorf("defaults not preserved: %+v", a)
	}
	if config.Render.Theme != ThermalTheme || config.Render.Format != ImageJPEG || config.Render.RowHeight != 2 {
		t.Errorf("Render = %+v", config.Render)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "analysis:\n  fftSize: 1024\n"},
		{"unknown section", "devices: []\n"},
		{"bad log level", "settings:\n  logLevel: loud\n"},
		{"malformed", "analysis: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("writing config: %v", err)
			}
			if _, err := LoadConfig(path); err == nil {
				t.Error("LoadConfig() error = nil")
			}
		})
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadConfig(missing) error = %v, want os.ErrNotExist", err)
	}
}

func TestLoadConfig_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if config.Analysis != spectrum.DefaultConfig() {
		t.Errorf("Analysis = %+v, want defaults", config.Analysis)
	}
}

func TestConfig_Validate(t *testing.T) {
	config := NewConfig()
	config.Analysis.SamplingFrequency = 0
	config.Render.Theme = "neon"
	config.Render.Format = "gif"

	err := config.Validate()
	if !errors.Is(err, spectrum.ErrConfiguration) {
		t.Fatalf("Validate() error = %v, want ErrConfiguration", err)
	}
	for _, s := range []string{"samplingFrequency", "neon", "gif"} {
		if !strings.Contains(err.Error(), s) {
			t.Errorf("error %q does not mention %s", err, s)
		}
	}
}
