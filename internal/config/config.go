package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/touchstone/internal/config/loader"
	"github.com/dshills/touchstone/internal/gesture"
	"github.com/dshills/touchstone/internal/input"
	"github.com/dshills/touchstone/internal/logging"
	"github.com/dshills/touchstone/internal/recycler"
	"github.com/dshills/touchstone/internal/scroll"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "TOUCHSTONE_"

// Config holds every tunable of the toolkit and the demo.
type Config struct {
	Input    InputConfig    `toml:"input" yaml:"input"`
	Gesture  GestureConfig  `toml:"gesture" yaml:"gesture"`
	Recycler RecyclerConfig `toml:"recycler" yaml:"recycler"`
	Log      LogConfig      `toml:"log" yaml:"log"`
	Demo     DemoConfig     `toml:"demo" yaml:"demo"`
}

// InputConfig configures controller handling.
type InputConfig struct {
	// SwapButtons exchanges A and B.
	SwapButtons bool `toml:"swap_buttons" yaml:"swap_buttons"`
	// RepeatTriggerMS is how long a button is held before it repeats.
	RepeatTriggerMS int `toml:"repeat_trigger_ms" yaml:"repeat_trigger_ms"`
	// RepeatDelayMS is the interval between repeats.
	RepeatDelayMS int `toml:"repeat_delay_ms" yaml:"repeat_delay_ms"`
}

// GestureConfig configures the pan recognizer and scrolling.
type GestureConfig struct {
	PanThreshold     float64 `toml:"pan_threshold" yaml:"pan_threshold"`
	HistoryLimit     int     `toml:"history_limit" yaml:"history_limit"`
	Deceleration     float64 `toml:"deceleration" yaml:"deceleration"`
	MinFPS           float64 `toml:"min_fps" yaml:"min_fps"`
	MinFlingMS       int     `toml:"min_fling_ms" yaml:"min_fling_ms"`
	FocusAnimationMS int     `toml:"focus_animation_ms" yaml:"focus_animation_ms"`
}

// RecyclerConfig configures recycler frames.
type RecyclerConfig struct {
	EstimatedRowHeight float64 `toml:"estimated_row_height" yaml:"estimated_row_height"`
	Strict             bool    `toml:"strict" yaml:"strict"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
}

// DemoConfig configures the demo program.
type DemoConfig struct {
	FPS    int    `toml:"fps" yaml:"fps"`
	Rows   int    `toml:"rows" yaml:"rows"`
	Script string `toml:"script" yaml:"script"`
}

// Default returns the default configuration.
func Default() Config {
	g := gesture.DefaultConfig()
	return Config{
		Input: InputConfig{
			RepeatTriggerMS: int(input.DefaultRepeatTrigger / time.Millisecond),
			RepeatDelayMS:   int(input.DefaultRepeatDelay / time.Millisecond),
		},
		Gesture: GestureConfig{
			PanThreshold:     g.Threshold,
			HistoryLimit:     g.HistoryLimit,
			Deceleration:     g.Deceleration,
			MinFPS:           g.MinFPS,
			MinFlingMS:       int(scroll.DefaultMinFlingDuration / time.Millisecond),
			FocusAnimationMS: int(scroll.DefaultFocusAnimation / time.Millisecond),
		},
		Recycler: RecyclerConfig{
			EstimatedRowHeight: recycler.DefaultEstimatedRowHeight,
		},
		Log:  LogConfig{Level: "info"},
		Demo: DemoConfig{FPS: 60, Rows: 1000},
	}
}

// Load reads the configuration: defaults, then the file at path (if any),
// then TOUCHSTONE_ environment variables.
func Load(path string) (Config, error) {
	return LoadWith(loader.DefaultFS(), path, EnvPrefix)
}

// LoadWith is Load with an explicit file system and environment prefix.
// An empty prefix skips the environment.
func LoadWith(fsys loader.FileSystem, path, envPrefix string) (Config, error) {
	merged := make(map[string]any)

	if path != "" {
		l, err := loader.ForPath(fsys, path)
		if err != nil {
			return Config{}, err
		}
		file, err := l.Load()
		if err != nil {
			return Config{}, err
		}
		merged = loader.DeepMerge(merged, file)
	}

	if envPrefix != "" {
		env, err := loader.NewEnvLoader(envPrefix).Load()
		if err != nil {
			return Config{}, fmt.Errorf("loading environment: %w", err)
		}
		merged = loader.DeepMerge(merged, env)
	}

	cfg := Default()
	if err := decode(merged, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// decode applies the merged settings map over cfg, leaving unset fields
// at their current values.
func decode(settings map[string]any, cfg *Config) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decoding settings: %w", err)
	}
	return nil
}

var logLevels = []string{"debug", "info", "warn", "warning", "error"}

// Validate checks every value and returns all failures joined.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, path, msg string, value any) {
		if !ok {
			errs = append(errs, &ValidationError{Path: path, Message: msg, Value: value})
		}
	}

	check(c.Input.RepeatTriggerMS > 0, "input.repeat_trigger_ms", "must be positive", c.Input.RepeatTriggerMS)
	check(c.Input.RepeatDelayMS > 0, "input.repeat_delay_ms", "must be positive", c.Input.RepeatDelayMS)
	check(c.Gesture.PanThreshold >= 0, "gesture.pan_threshold", "must not be negative", c.Gesture.PanThreshold)
	check(c.Gesture.HistoryLimit >= 1, "gesture.history_limit", "must be at least 1", c.Gesture.HistoryLimit)
	check(c.Gesture.Deceleration > 0, "gesture.deceleration", "must be positive", c.Gesture.Deceleration)
	check(c.Gesture.MinFPS > 0, "gesture.min_fps", "must be positive", c.Gesture.MinFPS)
	check(c.Gesture.MinFlingMS >= 0, "gesture.min_fling_ms", "must not be negative", c.Gesture.MinFlingMS)
	check(c.Gesture.FocusAnimationMS >= 0, "gesture.focus_animation_ms", "must not be negative", c.Gesture.FocusAnimationMS)
	check(c.Recycler.EstimatedRowHeight > 0, "recycler.estimated_row_height", "must be positive", c.Recycler.EstimatedRowHeight)
	check(slices.Contains(logLevels, c.Log.Level), "log.level", "must be one of debug, info, warn, error", c.Log.Level)
	check(c.Demo.FPS >= 1 && c.Demo.FPS <= 240, "demo.fps", "must be between 1 and 240", c.Demo.FPS)
	check(c.Demo.Rows >= 0, "demo.rows", "must not be negative", c.Demo.Rows)

	return errors.Join(errs...)
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// PanConfig returns the pan recognizer configuration.
func (c Config) PanConfig() gesture.Config {
	return gesture.Config{
		Threshold:    c.Gesture.PanThreshold,
		HistoryLimit: c.Gesture.HistoryLimit,
		Deceleration: c.Gesture.Deceleration,
		MinFPS:       c.Gesture.MinFPS,
	}
}

// ScrollConfig returns the scrolling frame configuration.
func (c Config) ScrollConfig() scroll.Config {
	return scroll.Config{
		MinFlingDuration: time.Duration(c.Gesture.MinFlingMS) * time.Millisecond,
		FocusAnimation:   time.Duration(c.Gesture.FocusAnimationMS) * time.Millisecond,
		Gesture:          c.PanConfig(),
	}
}

// RecyclerOptions returns the recycler frame options.
func (c Config) RecyclerOptions() recycler.Options {
	return recycler.Options{
		EstimatedRowHeight: c.Recycler.EstimatedRowHeight,
		Strict:             c.Recycler.Strict,
		Scroll:             c.ScrollConfig(),
	}
}

// RepeatTiming returns the held-button trigger and repeat delay.
func (c Config) RepeatTiming() (trigger, delay time.Duration) {
	return time.Duration(c.Input.RepeatTriggerMS) * time.Millisecond,
		time.Duration(c.Input.RepeatDelayMS) * time.Millisecond
}

// LogLevel returns the configured log level.
func (c Config) LogLevel() logging.Level {
	return logging.ParseLevel(c.Log.Level)
}

// FrameInterval returns the demo's target frame duration.
func (c Config) FrameInterval() time.Duration {
	if c.Demo.FPS <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.Demo.FPS)
}
