package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roman-kulish/doppler-if/internal/spectrum"
)

// Config represents the application configuration
type Config struct {
	Settings Settings        `yaml:"settings"`
	Analysis spectrum.Config `yaml:"analysis"`
	Render   RenderSettings  `yaml:"render"`
}

// Settings represents global application settings
type Settings struct {
	LogLevel slog.Level `yaml:"logLevel"`
}

// RenderSettings represents heatmap and trace output settings
type RenderSettings struct {
	Theme         ColorTheme  `yaml:"theme"`
	Format        ImageFormat `yaml:"format"`
	RowHeight     int         `yaml:"rowHeight"`
	NoAnnotations bool        `yaml:"noAnnotations"`
}

// NewConfig returns the default configuration
func NewConfig() *Config {
	return &Config{
		Settings: Settings{LogLevel: slog.LevelInfo},
		Analysis: spectrum.DefaultConfig(),
		Render: RenderSettings{
			Theme:     EnhancedTheme,
			Format:    ImagePNG,
			RowHeight: defaultRowHeight,
		},
	}
}

// LoadConfig reads a YAML configuration file over the defaults. An empty path
// returns the defaults.
func LoadConfig(path string) (*Config, error) {
	config := NewConfig()
	if path == "" {
		return config, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()

	if err = DecodeConfig(f, config); err != nil {
		return nil, fmt.Errorf("decoding config %s: %w", path, err)
	}
	return config, nil
}

// DecodeConfig decodes YAML into config. Unknown keys are rejected and keys
// not present keep their current values.
func DecodeConfig(r io.Reader, config *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate reports every invalid setting at once
func (c *Config) Validate() error {
	var errs []error
	if err := c.Analysis.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Render.Theme.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Render.Format.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Render.RowHeight < 0 {
		errs = append(errs, fmt.Errorf("row height must not be negative: %d", c.Render.RowHeight))
	}
	return errors.Join(errs...)
}
