package sketch

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"github.com/disintegration/imaging"
	"github.com/esimov/sketch/imop"
	"github.com/esimov/sketch/utils"
)

// Painter is a drawing session. It turns pointer and toolbar events into
// canvas changes and records every finished change in the history.
// A Painter must only be used from a single goroutine.
type Painter struct {
	Canvas  *Canvas
	History *History
	Palette []color.NRGBA

	Tool    Tool
	Color   color.NRGBA
	Size    float64
	Blend   *imop.Blend
	Erasing bool

	persister Persister
	logger    *slog.Logger

	drawing bool
	dirty   bool
	anchor  Point
	last    Point
	pointer Point
	base    *image.RGBA
}

type painterConfig struct {
	maxHistory int
	persister  Persister
	logger     *slog.Logger
	palette    []color.NRGBA
}

// PainterOption customizes NewPainter.
type PainterOption func(*painterConfig)

// WithMaxHistory sets the history bound. Default: DefaultMaxHistory.
func WithMaxHistory(n int) PainterOption {
	return func(c *painterConfig) { c.maxHistory = n }
}

// WithStatePersister keeps the history in p across sessions.
func WithStatePersister(p Persister) PainterOption {
	return func(c *painterConfig) { c.persister = p }
}

// WithLogger sets the session logger. Default: slog.Default().
func WithLogger(l *slog.Logger) PainterOption {
	return func(c *painterConfig) { c.logger = l }
}

// WithPalette replaces DefaultPalette.
func WithPalette(p []color.NRGBA) PainterOption {
	return func(c *painterConfig) { c.palette = p }
}

// NewPainter creates a session drawing on canvas. Call Start before use.
func NewPainter(canvas *Canvas, opts ...PainterOption) *Painter {
	cfg := painterConfig{
		maxHistory: DefaultMaxHistory,
		persister:  NopPersister{},
		logger:     slog.Default(),
		palette:    DefaultPalette,
	}
	for _, o := range opts {
		o(&cfg)
	}

	return &Painter{
		Canvas:    canvas,
		History:   NewHistory(cfg.maxHistory, WithPersister(cfg.persister)),
		Palette:   cfg.palette,
		Tool:      Brush,
		Color:     cfg.palette[0],
		Size:      DefaultBrushSize,
		Blend:     imop.NewBlend(),
		persister: cfg.persister,
		logger:    cfg.logger,
	}
}

// Start restores the persisted drawing and its history. When nothing
// usable was stored the session starts from a blank canvas.
func (p *Painter) Start() {
	if st, ok := p.persister.Load(); ok {
		err := p.Canvas.Restore(st.Current)
		if err == nil && p.History.Load(st) {
			p.logger.Debug("canvas state restored",
				"cursor", p.History.Cursor(), "snapshots", p.History.Len())
			return
		}
		p.logger.Warn("stored canvas state is unusable, starting blank", "error", err)
	}
	p.Canvas.Clear()
	p.History.Reset(p.Canvas.Capture())
}

// PointerDown starts a stroke at pt.
func (p *Painter) PointerDown(pt Point) {
	p.pointer = pt
	p.drawing = true
	p.dirty = false
	p.anchor, p.last = pt, pt

	if p.Tool != Brush {
		// Shapes are redrawn from the stroke start on every move.
		p.base = p.Canvas.Copy()
	}
}

// PointerMove extends the stroke in progress, if any.
func (p *Painter) PointerMove(pt Point) {
	p.pointer = pt
	if !p.drawing {
		return
	}

	var err error
	if p.Tool == Brush {
		err = p.Canvas.DrawShape(Brush, p.last, pt, p.pen())
	} else {
		p.Canvas.Paste(p.base)
		err = p.Canvas.DrawShape(p.Tool, p.anchor, pt, p.pen())
	}
	if err != nil {
		p.logger.Error("draw", "tool", p.Tool, "error", err)
		return
	}
	p.last = pt
	p.dirty = true
}

// PointerUp finishes the stroke and records it.
func (p *Painter) PointerUp() {
	if !p.drawing {
		return
	}
	p.drawing = false
	p.base = nil

	if p.dirty {
		p.dirty = false
		p.commit("stroke")
	}
}

// PointerCancel aborts the stroke in progress and drops its pixels.
func (p *Painter) PointerCancel() {
	if !p.drawing {
		return
	}
	p.drawing = false
	p.dirty = false
	p.base = nil
	p.restoreCurrent()
}

// Drawing reports whether a stroke is in progress.
func (p *Painter) Drawing() bool {
	return p.drawing
}

// Stroke draws a whole stroke through the given points with the current
// settings, as if the pointer was dragged along them.
func (p *Painter) Stroke(points ...Point) {
	if len(points) == 0 {
		return
	}
	p.PointerDown(points[0])
	for _, pt := range points[1:] {
		p.PointerMove(pt)
	}
	p.PointerUp()
}

// Fill is offered by the toolbar but not implemented.
func (p *Painter) Fill(Point) error {
	return ErrNotImplemented
}

// Clear blanks the canvas and records it.
func (p *Painter) Clear() {
	p.PointerCancel()
	p.Canvas.Clear()
	p.commit("clear")
}

// Undo shows the previous drawing. It reports false at the start of history
// or when the previous snapshot cannot be restored, leaving the cursor in place.
func (p *Painter) Undo() bool {
	p.PointerCancel()
	s, ok := p.History.Undo()
	if !ok {
		return false
	}
	if err := p.restore(s); err != nil {
		p.History.Redo()
		return false
	}
	return true
}

// Redo shows the next drawing. It reports false at the end of history
// or when the next snapshot cannot be restored, leaving the cursor in place.
func (p *Painter) Redo() bool {
	p.PointerCancel()
	s, ok := p.History.Redo()
	if !ok {
		return false
	}
	if err := p.restore(s); err != nil {
		p.History.Undo()
		return false
	}
	return true
}

// CanUndo reports whether Undo would change the canvas.
func (p *Painter) CanUndo() bool { return p.History.CanUndo() }

// CanRedo reports whether Redo would change the canvas.
func (p *Painter) CanRedo() bool { return p.History.CanRedo() }

// Resize adapts the canvas to new bounds, keeping the drawing, and starts
// a new history from the result.
func (p *Painter) Resize(width, height int) {
	b := p.Canvas.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return
	}
	p.PointerCancel()
	p.Canvas.Resize(width, height)
	p.History.Reset(p.Canvas.Capture())
	p.logger.Debug("canvas resized", "width", width, "height", height)
}

// Import draws img on the canvas, scaled down to fit if needed, and records it.
func (p *Painter) Import(img image.Image) {
	p.PointerCancel()

	b := p.Canvas.Bounds()
	if img.Bounds().Dx() > b.Dx() || img.Bounds().Dy() > b.Dy() {
		img = imaging.Fit(img, b.Dx(), b.Dy(), imaging.Lanczos)
	}
	p.Canvas.DrawImage(img)
	p.commit("import")
}

// SetTool selects the shape drawn by the next stroke.
func (p *Painter) SetTool(t Tool) {
	p.Tool = t
}

// SetColor picks the brush color and leaves the eraser mode.
func (p *Painter) SetColor(c color.NRGBA) {
	p.Color = c
	p.Erasing = false
}

// SetSize sets the brush width, clamped to the allowed range.
func (p *Painter) SetSize(size float64) {
	p.Size = utils.Clamp(size, MinBrushSize, MaxBrushSize)
}

// SetBlend selects the blend mode used by the brush.
func (p *Painter) SetBlend(mode string) error {
	return p.Blend.Set(mode)
}

// ToggleEraser switches between painting and erasing.
func (p *Painter) ToggleEraser() {
	p.Erasing = !p.Erasing
}

// ToolName is the tool shown in the status line.
func (p *Painter) ToolName() string {
	if p.Erasing {
		return "eraser"
	}
	return string(p.Tool)
}

// Status describes the pointer position and the active tool.
func (p *Painter) Status() string {
	return fmt.Sprintf("X: %.0f, Y: %.0f | Current tool: %s", p.pointer.X, p.pointer.Y, p.ToolName())
}

func (p *Painter) pen() Pen {
	return Pen{
		Color: p.Color,
		Width: p.Size,
		Blend: p.Blend,
		Erase: p.Erasing,
	}
}

func (p *Painter) commit(reason string) {
	p.History.Commit(p.Canvas.Capture())
	p.logger.Debug("history commit", "reason", reason,
		"cursor", p.History.Cursor(), "snapshots", p.History.Len())
}

func (p *Painter) restore(s Snapshot) error {
	if err := p.Canvas.Restore(s); err != nil {
		p.logger.Error("restore snapshot", "cursor", p.History.Cursor(), "error", err)
		return err
	}
	return nil
}

// restoreCurrent puts back the snapshot under the history cursor.
func (p *Painter) restoreCurrent() {
	if s, ok := p.History.Current(); ok {
		_ = p.restore(s)
	}
}

// IsNotice reports whether err should be shown to the user as a notice
// rather than treated as a failure.
func IsNotice(err error) bool {
	return errors.Is(err, ErrNotImplemented)
}
