// Package config loads viewer settings from a TOML file with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"

	"fordview/hal"
	"fordview/internal/ford"
	"fordview/internal/view"
)

type Config struct {
	LogLevel string       `toml:"log_level"` // FORDVIEW_LOG_LEVEL (default "info")
	View     ViewConfig   `toml:"view"`
	Render   RenderConfig `toml:"render"`
	Window   WindowConfig `toml:"window"`
}

type ViewConfig struct {
	Center float64 `toml:"center"` // FORDVIEW_CENTER (default 0.5)
	Width  float64 `toml:"width"`  // FORDVIEW_WIDTH (default 2.2)

	// ZoomSpeed is the width factor applied per frame while zooming out;
	// zooming in divides by it.
	ZoomSpeed float64 `toml:"zoom_speed"`
	// PanSpeed is the fraction of the width moved per frame.
	PanSpeed float64 `toml:"pan_speed"`
}

type RenderConfig struct {
	LabelThreshold float64 `toml:"label_threshold"`
	Tiling         bool    `toml:"tiling"`
	Overflow       string  `toml:"overflow"` // "prune" or "strict"
	Workers        int     `toml:"workers"`
	HUD            bool    `toml:"hud"`
}

type WindowConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
	Hz     int `toml:"hz"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel: "info",
		View: ViewConfig{
			Center:    view.DefaultCenter,
			Width:     view.DefaultWidth,
			ZoomSpeed: 1.01,
			PanSpeed:  0.01,
		},
		Render: RenderConfig{
			LabelThreshold: ford.DefaultLabelThreshold,
			Tiling:         true,
			Overflow:       ford.OverflowPrune.String(),
			Workers:        1,
			HUD:            true,
		},
		Window: WindowConfig{
			Width:  hal.DefaultWidth,
			Height: hal.DefaultHeight,
			Hz:     60,
		},
	}
}

// DefaultPath is where Load looks when neither a path nor FORDVIEW_CONFIG
// is given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "fordview.toml"
	}
	return filepath.Join(dir, "fordview", "config.toml")
}

// Load reads the config file at path, or FORDVIEW_CONFIG, or DefaultPath,
// over the defaults, then applies environment overrides and validates the
// result. A missing file is only an error when the path was given
// explicitly.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = os.Getenv("FORDVIEW_CONFIG")
		explicit = path != ""
	}
	if path == "" {
		path = DefaultPath()
	}

	c := Default()
	if _, err := toml.DecodeFile(path, &c); err != nil {
		if !os.IsNotExist(err) || explicit {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
	}

	if err := c.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) applyEnv() error {
	c.LogLevel = envOrDefault("FORDVIEW_LOG_LEVEL", c.LogLevel)
	if v := os.Getenv("FORDVIEW_CENTER"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("FORDVIEW_CENTER: %w", err)
		}
		c.View.Center = f
	}
	if v := os.Getenv("FORDVIEW_WIDTH"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("FORDVIEW_WIDTH: %w", err)
		}
		c.View.Width = f
	}
	return nil
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if !(c.View.Width > 0) || math.IsInf(c.View.Width, 0) {
		errs = append(errs, fmt.Errorf("view.width must be a positive number, got %v", c.View.Width))
	}
	if math.IsNaN(c.View.Center) || math.IsInf(c.View.Center, 0) {
		errs = append(errs, fmt.Errorf("view.center must be finite, got %v", c.View.Center))
	}
	if !(c.View.ZoomSpeed > 1) || math.IsInf(c.View.ZoomSpeed, 0) {
		errs = append(errs, fmt.Errorf("view.zoom_speed must be greater than 1, got %v", c.View.ZoomSpeed))
	}
	if !(c.View.PanSpeed > 0) {
		errs = append(errs, fmt.Errorf("view.pan_speed must be positive, got %v", c.View.PanSpeed))
	}
	if c.Render.LabelThreshold < 0 {
		errs = append(errs, fmt.Errorf("render.label_threshold must not be negative, got %v", c.Render.LabelThreshold))
	}
	if _, err := ford.ParseOverflowPolicy(c.Render.Overflow); err != nil {
		errs = append(errs, fmt.Errorf("render.overflow: %w", err))
	}
	if c.Render.Workers < 1 {
		errs = append(errs, fmt.Errorf("render.workers must be at least 1, got %d", c.Render.Workers))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Window.Hz <= 0 {
		errs = append(errs, fmt.Errorf("window.hz must be positive, got %d", c.Window.Hz))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// SlogLevel parses LogLevel ("debug", "info", "warn", "error").
func (c Config) SlogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

// ViewState is the initial view.
func (c Config) ViewState() view.State {
	return view.New(c.View.Center, c.View.Width)
}

// EngineOptions converts the render settings. c must be valid.
func (c Config) EngineOptions(log *slog.Logger) []ford.Option {
	policy, _ := ford.ParseOverflowPolicy(c.Render.Overflow)
	return []ford.Option{
		ford.WithLabelThreshold(c.Render.LabelThreshold),
		ford.WithOverflowPolicy(policy),
		ford.WithWorkers(c.Render.Workers),
		ford.WithTiling(c.Render.Tiling),
		ford.WithLogger(log),
	}
}

// Save writes c as TOML, creating the directory if needed.
func (c Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(c)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
