// Package config holds the runtime configuration and its YAML file form
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/orrery/parameter"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Renderer names
const (
	RendererANSI   = "ansi"
	RendererScreen = "screen"
)

// Markup names
const (
	MarkupANSI = "ansi"
	MarkupTags = "tags"
)

// Config is the full runtime configuration
type Config struct {
	FPS     int     `yaml:"fps"`
	Color   bool    `yaml:"color"`
	Stars   int     `yaml:"stars"`
	XScale  float64 `yaml:"x_scale"`
	Random  bool    `yaml:"random"`
	Seed    int64   `yaml:"seed"` // 0 seeds from the clock
	Planets int     `yaml:"planets"`
	Speed   float64 `yaml:"speed"`

	Renderer string `yaml:"renderer"`
	Markup   string `yaml:"markup"` // Stream and single-frame output
	Scene    string `yaml:"scene"`  // YAML body catalogue, overrides random

	Sound       bool   `yaml:"sound"`
	MetricsAddr string `yaml:"metrics_addr"`
	StreamAddr  string `yaml:"stream_addr"`

	LogFile string `yaml:"log_file"`
	Debug   bool   `yaml:"debug"`
}

// Default returns the configuration used when no file or flag overrides it
func Default() *Config {
	return &Config{
		FPS:      parameter.DefaultFPS,
		Stars:    parameter.DefaultStars,
		XScale:   parameter.TerminalXScale,
		Planets:  parameter.DefaultPlanets,
		Speed:    parameter.DefaultSpeed,
		Renderer: RendererANSI,
		Markup:   MarkupANSI,
	}
}

// Load reads path over the defaults
// A missing file yields the defaults; a malformed one is an error
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}
	return cfg, nil
}

// Validate reports every out of range field at once
func (c *Config) Validate() error {
	var errs []error
	if c.FPS < 1 || c.FPS > parameter.MaxFPS {
		errs = append(errs, fmt.Errorf("fps %d outside [1, %d]", c.FPS, parameter.MaxFPS))
	}
	if c.Stars < 0 {
		errs = append(errs, fmt.Errorf("stars %d is negative", c.Stars))
	}
	if math.IsNaN(c.XScale) || math.IsInf(c.XScale, 0) || c.XScale < 0 {
		errs = append(errs, fmt.Errorf("x_scale %v must be finite and >= 0", c.XScale))
	}
	if c.Planets < 0 || c.Planets > parameter.MaxPlanets {
		errs = append(errs, fmt.Errorf("planets %d outside [0, %d]", c.Planets, parameter.MaxPlanets))
	}
	if !(c.Speed > 0) || math.IsInf(c.Speed, 0) {
		errs = append(errs, fmt.Errorf("speed %v must be positive", c.Speed))
	}
	switch c.Renderer {
	case RendererANSI, RendererScreen:
	default:
		errs = append(errs, fmt.Errorf("renderer %q not one of %s, %s", c.Renderer, RendererANSI, RendererScreen))
	}
	switch c.Markup {
	case MarkupANSI, MarkupTags:
	default:
		errs = append(errs, fmt.Errorf("markup %q not one of %s, %s", c.Markup, MarkupANSI, MarkupTags))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// Save writes c as YAML
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
