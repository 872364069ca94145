// Package config loads the sketch settings.
//
// Values are merged from several sources, later ones overriding the earlier:
// built-in defaults, a YAML file, SKETCH_ prefixed environment variables
// and finally the command line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/esimov/sketch/utils"
)

// Config holds all settings.
type Config struct {
	Canvas  CanvasConfig  `koanf:"canvas"`
	History HistoryConfig `koanf:"history"`
	Store   StoreConfig   `koanf:"store"`
	Brush   BrushConfig   `koanf:"brush"`
	Log     LogConfig     `koanf:"log"`
	Export  ExportConfig  `koanf:"export"`
}

// CanvasConfig sets the initial drawing surface.
type CanvasConfig struct {
	Width  int `koanf:"width"`
	Height int `koanf:"height"`
}

// HistoryConfig bounds the undo timeline.
type HistoryConfig struct {
	Max int `koanf:"max"`
}

// StoreConfig locates the persisted canvas state.
type StoreConfig struct {
	// Path of the SQLite database. Empty keeps the state in memory.
	Path         string `koanf:"path"`
	Key          string `koanf:"key"`
	MaxValueSize int    `koanf:"max_value_size"`
}

// BrushConfig holds the initial brush.
type BrushConfig struct {
	Size  float64 `koanf:"size"`
	Color string  `koanf:"color"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// ExportConfig holds the export defaults.
type ExportConfig struct {
	Path string `koanf:"path"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Canvas:  CanvasConfig{Width: 800, Height: 600},
		History: HistoryConfig{Max: 50},
		Store: StoreConfig{
			Path:         "sketch.db",
			Key:          "canvasState",
			MaxValueSize: 5 << 20,
		},
		Brush:  BrushConfig{Size: 5, Color: "#000000"},
		Log:    LogConfig{Level: "info", Format: "text"},
		Export: ExportConfig{Path: "paint.png"},
	}
}

// Validate checks the settings for values the painter cannot work with.
func (c *Config) Validate() error {
	var errs []error

	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas size must be positive, got %dx%d",
			c.Canvas.Width, c.Canvas.Height))
	}
	if c.History.Max <= 0 {
		errs = append(errs, fmt.Errorf("history.max must be positive, got %d", c.History.Max))
	}
	if c.Store.Key == "" {
		errs = append(errs, errors.New("store.key must not be empty"))
	}
	if c.Store.MaxValueSize <= 0 {
		errs = append(errs, fmt.Errorf("store.max_value_size must be positive, got %d", c.Store.MaxValueSize))
	}
	if c.Brush.Size < 1 || c.Brush.Size > 100 {
		errs = append(errs, fmt.Errorf("brush.size must be between 1 and 100, got %v", c.Brush.Size))
	}
	if _, err := utils.HexToNRGBA(c.Brush.Color); err != nil {
		errs = append(errs, fmt.Errorf("brush.color: %w", err))
	}
	if _, err := utils.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format: %q", c.Log.Format))
	}

	return errors.Join(errs...)
}
