package spectrum

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string // empty when valid
	}{
		{"defaults", func(*Config) {}, ""},
		{"empty names", func(c *Config) {
			c.Window, c.Detrend, c.Scaling, c.Mode, c.FFTBackend = "", "", "", "", ""
		}, ""},
		{"zero workers", func(c *Config) { c.Workers = 0 }, ""},
		{"zero sampling frequency", func(c *Config) { c.SamplingFrequency = 0 }, "samplingFrequency"},
		{"negative resolution", func(c *Config) { c.FFTResolution = -1 }, "fftResolution"},
		{"negative smoothing", func(c *Config) { c.SmoothingWindow = -1 }, "smoothingWindow"},
		{"infinite smoothing", func(c *Config) { c.SmoothingWindow = math.Inf(1) }, "smoothingWindow"},
		{"NaN smoothing", func(c *Config) { c.SmoothingWindow = math.NaN() }, "smoothingWindow"},
		{"smoothing wider than the axis", func(c *Config) { c.SmoothingWindow = 1e19 }, "smoothingWindow"},
		{"smoothing over the whole axis", func(c *Config) { c.SmoothingWindow = 3000 }, ""},
		{"negative threshold", func(c *Config) { c.BandwidthThreshold = -3 }, "bandwidthThreshold"},
		{"infinite threshold", func(c *Config) { c.BandwidthThreshold = math.Inf(1) }, "bandwidthThreshold"},
		{"inverted band", func(c *Config) { c.FrequencyMin, c.FrequencyMax = 500, -500 }, "frequencyMax"},
		{"empty band", func(c *Config) { c.FrequencyMin, c.FrequencyMax = 100, 100 }, "frequencyMax"},
		{"band below nyquist", func(c *Config) { c.FrequencyMin = -2000 }, "frequencyMin"},
		{"band above nyquist", func(c *Config) { c.FrequencyMax = 1501 }, "frequencyMax"},
		{"zero segment", func(c *Config) { c.SegmentLength = 0 }, "segmentLength"},
		{"overlap equals segment", func(c *Config) { c.Overlap = 128 }, "overlap"},
		{"negative overlap", func(c *Config) { c.Overlap = -1 }, "overlap"},
		{"FFT length not a power of two", func(c *Config) { c.FFTLength = 1000 }, "fftLength"},
		{"negative workers", func(c *Config) { c.Workers = -1 }, "workers"},
		{"unknown window", func(c *Config) { c.Window = "kaiser" }, "window"},
		{"unknown detrend", func(c *Config) { c.Detrend = "linear" }, "detrend"},
		{"unknown scaling", func(c *Config) { c.Scaling = "power" }, "scaling"},
		{"unknown mode", func(c *Config) { c.Mode = "complex" }, "mode"},
		{"unknown backend", func(c *Config) { c.FFTBackend = "fftw" }, "fftBackend"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)

			err := cfg.Validate()
			if tt.field == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}

			if !errors.Is(err, ErrConfiguration) {
				t.Fatalf("Validate() error = %v, want ErrConfiguration", err)
			}
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("Validate() error = %T, want *ConfigError", err)
			}
			if ce.Field != tt.field {
				t.Errorf("Field = %q, want %q", ce.Field, tt.field)
			}
		})
	}
}

func TestConfig_ValidateReportsAll(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SamplingFrequency = -1
	cfg.Window = "kaiser"
	cfg.Workers = -2

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() error = nil")
	}
	for _, field := range []string{"samplingFrequency", "window", "workers"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q does not mention %s", err, field)
		}
	}
}

func TestConfig_WithDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()

	if cfg.Window != WindowFunctionHann {
		t.Errorf("Window = %s, want %s", cfg.Window, WindowFunctionHann)
	}
	if cfg.Detrend != DetrendConstant {
		t.Errorf("Detrend = %s, want %s", cfg.Detrend, DetrendConstant)
	}
	if cfg.Scaling != ScalingSpectrum {
		t.Errorf("Scaling = %s, want %s", cfg.Scaling, ScalingSpectrum)
	}
	if cfg.Mode != ModePSD {
		t.Errorf("Mode = %s, want %s", cfg.Mode, ModePSD)
	}
	if cfg.FFTBackend != BackendGonum {
		t.Errorf("FFTBackend = %s, want %s", cfg.FFTBackend, BackendGonum)
	}
	if cfg.Workers != 1 {
		t.Errorf("Workers = %d, want 1", cfg.Workers)
	}
}
