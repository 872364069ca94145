package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sketch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConfig_Default(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	assert.NoError(cfg.Validate())
	assert.Equal(800, cfg.Canvas.Width)
	assert.Equal(600, cfg.Canvas.Height)
	assert.Equal(50, cfg.History.Max)
	assert.Equal("canvasState", cfg.Store.Key)
	assert.Equal(5<<20, cfg.Store.MaxValueSize)
	assert.Equal(5.0, cfg.Brush.Size)
	assert.Equal("paint.png", cfg.Export.Path)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero width", func(c *Config) { c.Canvas.Width = 0 }},
		{"negative height", func(c *Config) { c.Canvas.Height = -1 }},
		{"history bound", func(c *Config) { c.History.Max = 0 }},
		{"empty key", func(c *Config) { c.Store.Key = "" }},
		{"quota", func(c *Config) { c.Store.MaxValueSize = 0 }},
		{"brush size", func(c *Config) { c.Brush.Size = 101 }},
		{"brush color", func(c *Config) { c.Brush.Color = "#12" }},
		{"log level", func(c *Config) { c.Log.Level = "loud" }},
		{"log format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoader_Precedence(t *testing.T) {
	assert := assert.New(t)

	path := writeConfig(t, `
canvas:
  width: 1024
  height: 768
history:
  max: 20
brush:
  color: "#ff0000"
store:
  max_value_size: 1024
`)
	t.Setenv("SKETCH_CANVAS_HEIGHT", "480")
	t.Setenv("SKETCH_STORE_MAX_VALUE_SIZE", "2048")

	cfg, err := Load(path, map[string]any{
		"history.max": 10,
		"log.level":   "debug",
	})
	require.NoError(t, err)

	assert.Equal(1024, cfg.Canvas.Width, "file value")
	assert.Equal(480, cfg.Canvas.Height, "env overrides file")
	assert.Equal(2048, cfg.Store.MaxValueSize, "env key with underscores")
	assert.Equal(10, cfg.History.Max, "override wins over file")
	assert.Equal("debug", cfg.Log.Level)
	assert.Equal("#ff0000", cfg.Brush.Color)
	assert.Equal("canvasState", cfg.Store.Key, "default kept")
}

func TestLoader_NoFile(t *testing.T) {
	cfg, err := NewLoader(WithEnvPrefix("SKETCH_TEST_NONE_")).Load(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoader_Errors(t *testing.T) {
	assert := assert.New(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(err)

	path := writeConfig(t, "canvas:\n  width: -5\n")
	_, err = Load(path, nil)
	assert.ErrorContains(err, "canvas size")
}
