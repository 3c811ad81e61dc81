package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config defines configuration for the sdsschart CLI.
type Config struct {
	Width           int     `yaml:"width"`
	Height          int     `yaml:"height"`
	Scale           float64 `yaml:"scale"`
	Zoom            float64 `yaml:"zoom"`
	RescaleVelocity float64 `yaml:"rescale_velocity"`
	Workers         int     `yaml:"workers"`
	Bucket          string  `yaml:"bucket"`
	ResolverURL     string  `yaml:"resolver_url"`
	CutoutURL       string  `yaml:"cutout_url"`
	Options         string  `yaml:"options"`
	Progress        bool    `yaml:"progress"`
	LogLevel        string  `yaml:"log_level"`
}

// Default returns a Config with sensible defaults. The default scale is the
// native SDSS pixel scale; the worker count is sized to the resolver
// service's rate tolerance, not the CPU count.
func Default() Config {
	return Config{
		Width:    1024,
		Height:   1024,
		Scale:    0.396127,
		Zoom:     1,
		Workers:  10,
		LogLevel: "info",
	}
}

// LoadFromFile loads configuration from a YAML file. Unset fields keep their
// defaults.
func LoadFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	var override Config
	if err := yaml.Unmarshal(data, &override); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}

	return Default().Merge(override), nil
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables use the SDSSCHART_ prefix.
func (c *Config) LoadFromEnv() error {
	if v := os.Getenv("SDSSCHART_WIDTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse SDSSCHART_WIDTH: %w", err)
		}
		c.Width = n
	}
	if v := os.Getenv("SDSSCHART_HEIGHT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse SDSSCHART_HEIGHT: %w", err)
		}
		c.Height = n
	}
	if v := os.Getenv("SDSSCHART_SCALE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parse SDSSCHART_SCALE: %w", err)
		}
		c.Scale = f
	}
	if v := os.Getenv("SDSSCHART_ZOOM"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parse SDSSCHART_ZOOM: %w", err)
		}
		c.Zoom = f
	}
	if v := os.Getenv("SDSSCHART_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse SDSSCHART_WORKERS: %w", err)
		}
		c.Workers = n
	}
	if v := os.Getenv("SDSSCHART_BUCKET"); v != "" {
		c.Bucket = v
	}
	if v := os.Getenv("SDSSCHART_RESOLVER_URL"); v != "" {
		c.ResolverURL = v
	}
	if v := os.Getenv("SDSSCHART_CUTOUT_URL"); v != "" {
		c.CutoutURL = v
	}
	if v := os.Getenv("SDSSCHART_OPTIONS"); v != "" {
		c.Options = v
	}
	if v := os.Getenv("SDSSCHART_PROGRESS"); v != "" {
		c.Progress = v == "true" || v == "1"
	}
	if v := os.Getenv("SDSSCHART_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Width <= 0 {
		return errors.New("config: width must be positive")
	}
	if c.Height <= 0 {
		return errors.New("config: height must be positive")
	}
	if c.Scale <= 0 {
		return errors.New("config: scale must be positive")
	}
	if c.Zoom <= 0 {
		return errors.New("config: zoom must be positive")
	}
	if c.Workers <= 0 {
		return errors.New("config: workers must be positive")
	}
	if c.RescaleVelocity < 0 {
		return errors.New("config: rescale_velocity must not be negative")
	}
	return nil
}

// BaseScale returns the effective base pixel scale with the zoom ratio
// applied.
func (c *Config) BaseScale() float64 {
	return c.Scale / c.Zoom
}

// Merge merges override values into c, returning a new Config.
// Zero values in override are ignored.
func (c Config) Merge(override Config) Config {
	if override.Width != 0 {
		c.Width = override.Width
	}
	if override.Height != 0 {
		c.Height = override.Height
	}
	if override.Scale != 0 {
		c.Scale = override.Scale
	}
	if override.Zoom != 0 {
		c.Zoom = override.Zoom
	}
	if override.RescaleVelocity != 0 {
		c.RescaleVelocity = override.RescaleVelocity
	}
	if override.Workers != 0 {
		c.Workers = override.Workers
	}
	if override.Bucket != "" {
		c.Bucket = override.Bucket
	}
	if override.ResolverURL != "" {
		c.ResolverURL = override.ResolverURL
	}
	if override.CutoutURL != "" {
		c.CutoutURL = override.CutoutURL
	}
	if override.Options != "" {
		c.Options = override.Options
	}
	if override.Progress {
		c.Progress = override.Progress
	}
	if override.LogLevel != "" {
		c.LogLevel = override.LogLevel
	}
	return c
}
