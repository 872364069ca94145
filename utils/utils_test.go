package utils

import (
	"bytes"
	"image/color"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUtils_HexToNRGBA(t *testing.T) {
	assert := assert.New(t)

	c, err := HexToNRGBA("#ffa500")
	assert.NoError(err)
	assert.Equal(color.NRGBA{R: 0xff, G: 0xa5, B: 0x00, A: 0xff}, c)

	c, err = HexToNRGBA("0f0")
	assert.NoError(err)
	assert.Equal(color.NRGBA{G: 0xff, A: 0xff}, c)
	assert.Equal("#00ff00", NRGBAToHex(c))

	_, err = HexToNRGBA("#12345")
	assert.Error(err)
	_, err = HexToNRGBA("#gggggg")
	assert.Error(err)
}

func TestUtils_Math(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(2, Min(2, 3))
	assert.Equal(2, Min(3, 2))
	assert.Equal(3.5, Max(1.0, 3.5))
	assert.Equal(4, Abs(-4))
	assert.Equal(100.0, Clamp(250.0, 1, 100))
	assert.Equal(1, Clamp(-3, 1, 100))
	assert.True(Contains([]string{"a", "b"}, "b"))
	assert.False(Contains([]string{"a", "b"}, "c"))
}

func TestUtils_FormatTime(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("250ms", FormatTime(250*time.Millisecond))
	assert.Equal("1.50s", FormatTime(1500*time.Millisecond))
	assert.Equal("2m 5.00s", FormatTime(125*time.Second))
	assert.Equal("1h 1m 1.00s", FormatTime(time.Hour+time.Minute+time.Second))
	assert.Equal("1d 2h 3m 4.00s", FormatTime(26*time.Hour+3*time.Minute+4*time.Second))
}

func TestUtils_DecorateText(t *testing.T) {
	s := DecorateText("fill tool not implemented", NoticeMessage)
	assert.True(t, strings.HasPrefix(s, NoticeColor))
	assert.True(t, strings.HasSuffix(s, DefaultColor))
}

func TestUtils_NewLogger(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	logger, err := NewLogger(LogConfig{Level: "warn", Format: "json", Output: &buf})
	assert.NoError(err)

	logger.Info("hidden")
	logger.Warn("shown", "key", "canvasState")
	assert.NotContains(buf.String(), "hidden")
	assert.Contains(buf.String(), `"key":"canvasState"`)

	_, err = NewLogger(LogConfig{Format: "xml"})
	assert.Error(err)

	lvl, err := ParseLevel("DEBUG")
	assert.NoError(err)
	assert.Equal(slog.LevelDebug, lvl)
	_, err = ParseLevel("loud")
	assert.Error(err)
}

func TestUtils_Spinner(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf, "importing", time.Millisecond, false)
	s.StopMsg = "done"

	s.Start()
	time.Sleep(5 * time.Millisecond)
	s.Stop()
	// Stopping twice is harmless.
	s.Stop()

	assert.True(t, strings.HasSuffix(buf.String(), "done"))
}
