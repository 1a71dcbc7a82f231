// Package config provides configuration loading and management for edgesvg.
//
// A configuration file supplies defaults for every pipeline option so that
// frequently used settings do not have to be repeated on the command line.
// Command-line flags always take precedence over file values.
//
// # Formats
//
// Files ending in .yaml or .yml are read as YAML; anything else is read as
// TOML, the format written by [Save] for the default path:
//
//	[detection]
//	sigmas = [1.0, 2.0]
//	low_threshold = 0.1
//	high_threshold = 0.2
//
//	[vector]
//	tolerance = 1.0
//
//	[render]
//	stroke_width = 1.0
//	stroke_color = "black"
//
// # Location
//
// [DefaultPath] follows the XDG base directory convention:
// $XDG_CONFIG_HOME/edgesvg/config.toml, falling back to
// ~/.config/edgesvg/config.toml.
package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/edgesvg/pkg/errors"
	"github.com/matzehuels/edgesvg/pkg/pipeline"
)

// FileName is the name of the default configuration file.
const FileName = "config.toml"

// Config represents the application configuration.
type Config struct {
	Detection Detection `toml:"detection" yaml:"detection"`
	Vector    Vector    `toml:"vector" yaml:"vector"`
	Render    Render    `toml:"render" yaml:"render"`
	Runtime   Runtime   `toml:"runtime" yaml:"runtime"`
}

// Detection holds edge detection parameters.
type Detection struct {
	// Sigmas are the Gaussian smoothing scales, one output per entry.
	Sigmas []float64 `toml:"sigmas" yaml:"sigmas"`

	// LowThreshold and HighThreshold are the hysteresis levels.
	LowThreshold  float64 `toml:"low_threshold" yaml:"low_threshold"`
	HighThreshold float64 `toml:"high_threshold" yaml:"high_threshold"`

	// RelativeThresholds interprets the levels as fractions of the strongest response.
	RelativeThresholds bool `toml:"relative_thresholds" yaml:"relative_thresholds"`

	// KernelTruncate is the Gaussian radius in units of sigma.
	KernelTruncate float64 `toml:"kernel_truncate" yaml:"kernel_truncate"`

	// MaxDimension downsamples larger inputs; 0 disables.
	MaxDimension int `toml:"max_dimension" yaml:"max_dimension"`
}

// Vector holds contour vectorization parameters.
type Vector struct {
	Tolerance float64 `toml:"tolerance" yaml:"tolerance"`
	Straight  bool    `toml:"straight" yaml:"straight"`
	MinPoints int     `toml:"min_points" yaml:"min_points"`
}

// Render holds SVG styling.
type Render struct {
	StrokeWidth float64 `toml:"stroke_width" yaml:"stroke_width"`
	StrokeColor string  `toml:"stroke_color" yaml:"stroke_color"`
	FrameSize   int     `toml:"frame_size" yaml:"frame_size"`
}

// Runtime holds execution settings.
type Runtime struct {
	Sequential bool `toml:"sequential" yaml:"sequential"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Detection.Sigmas = slices.Clone(pipeline.DefaultSigmas)
	cfg.Detection.LowThreshold = pipeline.DefaultLowThreshold
	cfg.Detection.HighThreshold = pipeline.DefaultHighThreshold
	cfg.Detection.KernelTruncate = pipeline.DefaultKernelTruncate

	cfg.Vector.Tolerance = pipeline.DefaultTolerance
	cfg.Vector.MinPoints = pipeline.DefaultMinPoints

	cfg.Render.StrokeWidth = pipeline.DefaultStrokeWidth
	cfg.Render.StrokeColor = pipeline.DefaultStrokeColor

	return cfg
}

// DefaultPath returns the configuration file path using the XDG standard
// (~/.config/edgesvg/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "edgesvg", FileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "edgesvg", FileName), nil
}

// Load reads the configuration file at path on top of the defaults.
// If the file doesn't exist, it returns the default configuration.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if stderrors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = toml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	return cfg, nil
}

// Save writes cfg to path, creating parent directories as needed.
// The format is chosen from the file extension as in [Load].
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := cfg.Marshal(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Marshal encodes cfg in the format implied by path.
func (c *Config) Marshal(path string) ([]byte, error) {
	if isYAML(path) {
		data, err := yaml.Marshal(c)
		if err != nil {
			return nil, fmt.Errorf("marshal config: %w", err)
		}
		return data, nil
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return buf.Bytes(), nil
}

// Validate checks that the configuration yields valid pipeline options.
func (c *Config) Validate() error {
	if c.Detection.MaxDimension < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max dimension must not be negative, got %d", c.Detection.MaxDimension)
	}
	opts := c.Options("")
	return opts.ValidateForScale()
}

// Options converts the configuration into pipeline options for input.
func (c *Config) Options(input string) pipeline.Options {
	return pipeline.Options{
		Input:              input,
		MaxDimension:       c.Detection.MaxDimension,
		Sigmas:             slices.Clone(c.Detection.Sigmas),
		LowThreshold:       c.Detection.LowThreshold,
		HighThreshold:      c.Detection.HighThreshold,
		RelativeThresholds: c.Detection.RelativeThresholds,
		KernelTruncate:     c.Detection.KernelTruncate,
		Tolerance:          c.Vector.Tolerance,
		Straight:           c.Vector.Straight,
		MinPoints:          c.Vector.MinPoints,
		StrokeWidth:        c.Render.StrokeWidth,
		StrokeColor:        c.Render.StrokeColor,
		FrameSize:          c.Render.FrameSize,
		Sequential:         c.Runtime.Sequential,
	}
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
