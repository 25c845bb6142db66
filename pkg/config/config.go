package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Board dimensions
const (
	Cols         = 30
	Rows         = 30
	CanvasWidth  = 600
	CanvasHeight = 600
)

// Timing
const (
	TickInterval = 100 * time.Millisecond // One MOVE per tick
)

// Starting snake: StartLength cells on row StartRow, heading right from column 0
const (
	StartRow    = 10
	StartLength = 6
)

// Colors shared by every renderer
const (
	ColorBackground = "#072f4f"
	ColorSnake      = "#ff9951"
	ColorFood       = "#51f6ff"
	ColorFoodGlow   = "#00faff"
	ColorText       = "#FFFFFF"
)

// Web server
const (
	DefaultAddr = ":8080"
)

// ErrInvalid is returned by Validate for unusable board or timing settings.
var ErrInvalid = errors.New("invalid config")

// Config holds the tunable inputs. Cell size is derived from it, never stored.
type Config struct {
	Cols         int           `yaml:"cols"`
	Rows         int           `yaml:"rows"`
	CanvasWidth  int           `yaml:"width"`
	CanvasHeight int           `yaml:"height"`
	TickInterval time.Duration `yaml:"tick"`
	Addr         string        `yaml:"addr"`
}

// Default returns the reference build configuration.
func Default() Config {
	return Config{
		Cols:         Cols,
		Rows:         Rows,
		CanvasWidth:  CanvasWidth,
		CanvasHeight: CanvasHeight,
		TickInterval: TickInterval,
		Addr:         DefaultAddr,
	}
}

// Load reads a YAML file over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks that a grid can be built from the config.
func (c Config) Validate() error {
	if c.Cols <= 0 || c.Rows <= 0 {
		return fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", ErrInvalid, c.Cols, c.Rows)
	}
	if c.CanvasWidth < c.Cols || c.CanvasHeight < c.Rows {
		return fmt.Errorf("%w: canvas %dx%d is smaller than one pixel per cell", ErrInvalid, c.CanvasWidth, c.CanvasHeight)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("%w: tick must be positive, got %s", ErrInvalid, c.TickInterval)
	}
	return nil
}
