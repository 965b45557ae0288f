package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// ErrInvalidConfig is returned when a loaded value is out of range.
var ErrInvalidConfig = errors.New("invalid config")

// CanvasConfig sizes the logical canvas the layout runs in.
type CanvasConfig struct {
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
}

// AnimationConfig controls the staggered path-compression animation.
type AnimationConfig struct {
	Stagger        bool `mapstructure:"stagger"`
	StepTicks      int  `mapstructure:"step_ticks"`
	HighlightTicks int  `mapstructure:"highlight_ticks"`
}

// Config holds all runtime configuration for a unionviz session.
// Values are populated from .unionviz.yaml, UNIONVIZ_* env vars, and CLI flags.
type Config struct {
	PathCompression bool            `mapstructure:"path_compression"`
	UnionByRank     bool            `mapstructure:"union_by_rank"`
	Canvas          CanvasConfig    `mapstructure:"canvas"`
	FPS             int             `mapstructure:"fps"`
	Seed            uint64          `mapstructure:"seed"`
	Animation       AnimationConfig `mapstructure:"animation"`
	TelemetryPath   string          `mapstructure:"telemetry_path"`
	Verbose         bool            `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("path_compression", false)
	viper.SetDefault("union_by_rank", false)
	viper.SetDefault("canvas.width", 900.0)
	viper.SetDefault("canvas.height", 600.0)
	viper.SetDefault("fps", 60)
	viper.SetDefault("seed", 0)
	viper.SetDefault("animation.stagger", true)
	viper.SetDefault("animation.step_ticks", 60)
	viper.SetDefault("animation.highlight_ticks", 30)
	viper.SetDefault("telemetry_path", "")
	viper.SetDefault("verbose", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch {
	case c.Canvas.Width <= 0 || c.Canvas.Height <= 0:
		return fmt.Errorf("%w: canvas must be positive, got %gx%g", ErrInvalidConfig, c.Canvas.Width, c.Canvas.Height)
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidConfig, c.FPS)
	case c.Animation.StepTicks <= 0:
		return fmt.Errorf("%w: animation.step_ticks must be positive, got %d", ErrInvalidConfig, c.Animation.StepTicks)
	case c.Animation.HighlightTicks < 0:
		return fmt.Errorf("%w: animation.highlight_ticks must not be negative, got %d", ErrInvalidConfig, c.Animation.HighlightTicks)
	}
	return nil
}
