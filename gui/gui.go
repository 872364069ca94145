// Package gui implements the paint window on top of Gio.
//
// The window owns the painter: every event is handled on the window
// goroutine, so the painter and its history need no locking.
package gui

import (
	"fmt"
	"image/color"
	"log/slog"

	"gioui.org/app"
	"gioui.org/font/gofont"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/esimov/sketch"
	"github.com/esimov/sketch/imop"
	"github.com/esimov/sketch/utils"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

// Height of the toolbar, palette and status rows, in dp.
const chromeHeight = 3 * 44

var (
	bgColor       = color.NRGBA{R: 0xe8, G: 0xe8, B: 0xe8, A: 0xff}
	selectedColor = color.NRGBA{R: 15, G: 139, B: 141, A: 0xff}
	buttonColor   = color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff}
	noticeColor   = color.NRGBA{R: 0xb0, G: 0x40, B: 0x10, A: 0xff}
)

// Options configures the window.
type Options struct {
	Title      string
	ExportPath string
	Logger     *slog.Logger
}

// Gui is the paint window.
type Gui struct {
	painter *sketch.Painter
	opts    Options
	theme   *material.Theme
	logger  *slog.Logger

	// notice is shown in the status line until the next action.
	notice string

	// size is the window size of the last frame.
	size    struct{ X, Y int }
	resized bool

	btn struct {
		tools   []widget.Clickable
		eraser  widget.Clickable
		fill    widget.Clickable
		blend   widget.Clickable
		clear   widget.Clickable
		save    widget.Clickable
		undo    widget.Clickable
		redo    widget.Clickable
		smaller widget.Clickable
		bigger  widget.Clickable
		palette []widget.Clickable
	}
}

// NewGUI creates the window state around a started painter.
func NewGUI(p *sketch.Painter, opts Options) *Gui {
	if opts.Title == "" {
		opts.Title = "Sketch"
	}
	if opts.ExportPath == "" {
		opts.ExportPath = sketch.DefaultExportPath
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	g := &Gui{
		painter: p,
		opts:    opts,
		theme:   material.NewTheme(gofont.Collection()),
		logger:  opts.Logger,
	}
	g.btn.tools = make([]widget.Clickable, len(sketch.Tools))
	g.btn.palette = make([]widget.Clickable, len(p.Palette))

	return g
}

// Window opens a window fitting the canvas and the toolbar rows.
func (g *Gui) Window() *app.Window {
	b := g.painter.Canvas.Bounds()
	return app.NewWindow(
		app.Title(g.opts.Title),
		app.Size(unit.Dp(b.Dx()), unit.Dp(b.Dy()+chromeHeight)),
		app.MinSize(unit.Dp(320), unit.Dp(240)),
	)
}

// Run processes the window events until the window is closed.
func (g *Gui) Run(w *app.Window) error {
	var ops op.Ops

	for e := range w.Events() {
		switch e := e.(type) {
		case system.FrameEvent:
			if g.size.X != 0 && (g.size.X != e.Size.X || g.size.Y != e.Size.Y) {
				g.resized = true
			}
			g.size.X, g.size.Y = e.Size.X, e.Size.Y

			gtx := layout.NewContext(&ops, e)
			g.update()
			g.layout(gtx)
			e.Frame(gtx.Ops)
		case key.Event:
			if g.handleKey(w, e) {
				w.Invalidate()
			}
		case system.DestroyEvent:
			g.painter.PointerUp()
			return e.Err
		}
	}
	return nil
}

// update applies the button clicks of the previous frame.
func (g *Gui) update() {
	p := g.painter

	for i := range g.btn.tools {
		for g.btn.tools[i].Clicked() {
			p.SetTool(sketch.Tools[i])
			p.Erasing = false
			g.notice = ""
		}
	}
	for i := range g.btn.palette {
		for g.btn.palette[i].Clicked() {
			p.SetColor(p.Palette[i])
			g.notice = ""
		}
	}
	for g.btn.eraser.Clicked() {
		p.ToggleEraser()
		g.notice = ""
	}
	for g.btn.fill.Clicked() {
		g.report(p.Fill(sketch.Point{}))
	}
	for g.btn.blend.Clicked() {
		g.report(p.SetBlend(nextBlend(p.Blend.Get())))
	}
	for g.btn.clear.Clicked() {
		p.Clear()
		g.notice = ""
	}
	for g.btn.save.Clicked() {
		g.save()
	}
	for g.btn.undo.Clicked() {
		p.Undo()
		g.notice = ""
	}
	for g.btn.redo.Clicked() {
		p.Redo()
		g.notice = ""
	}
	for g.btn.smaller.Clicked() {
		p.SetSize(p.Size - 1)
	}
	for g.btn.bigger.Clicked() {
		p.SetSize(p.Size + 1)
	}
}

// handleKey runs the keyboard shortcuts. It reports whether the
// window needs to be redrawn.
func (g *Gui) handleKey(w *app.Window, e key.Event) bool {
	if e.State != key.Press {
		return false
	}
	p := g.painter
	shortcut := e.Modifiers.Contain(key.ModShortcut)

	switch {
	case e.Name == key.NameEscape:
		w.Close()
		return false
	case shortcut && e.Name == "Z" && e.Modifiers.Contain(key.ModShift):
		p.Redo()
	case shortcut && e.Name == "Z":
		p.Undo()
	case shortcut && e.Name == "Y":
		p.Redo()
	case shortcut && e.Name == "S":
		g.save()
	case e.Name == "E":
		p.ToggleEraser()
	case e.Name == "[":
		p.SetSize(p.Size - 1)
	case e.Name == "]":
		p.SetSize(p.Size + 1)
	default:
		return false
	}
	return true
}

func (g *Gui) save() {
	if err := g.painter.ExportFile(g.opts.ExportPath); err != nil {
		g.report(err)
		return
	}
	g.notice = fmt.Sprintf("Saved to %s", g.opts.ExportPath)
	g.logger.Info("canvas saved", "path", g.opts.ExportPath)
}

// report shows err in the status line. Errors other than notices are logged.
func (g *Gui) report(err error) {
	if err == nil {
		g.notice = ""
		return
	}
	g.notice = err.Error()
	if !sketch.IsNotice(err) {
		g.logger.Error("paint action failed", "error", err)
	}
}

// nextBlend cycles through the blend modes.
func nextBlend(mode string) string {
	for i, m := range imop.BlendModes {
		if m == mode {
			return imop.BlendModes[(i+1)%len(imop.BlendModes)]
		}
	}
	return imop.Normal
}

// sizeLabel formats the brush size for the toolbar.
func sizeLabel(size float64) string {
	return fmt.Sprintf("%d px", int(utils.Clamp(size, sketch.MinBrushSize, sketch.MaxBrushSize)))
}
