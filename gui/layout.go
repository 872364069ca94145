package gui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/esimov/sketch"
)

// layout draws the whole window: toolbar, palette, canvas and status line.
func (g *Gui) layout(gtx C) D {
	paint.Fill(gtx.Ops, bgColor)

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(g.layoutToolbar),
		layout.Rigid(g.layoutPalette),
		layout.Flexed(1, g.layoutCanvas),
		layout.Rigid(g.layoutStatus),
	)
}

func (g *Gui) layoutToolbar(gtx C) D {
	p := g.painter

	children := make([]layout.FlexChild, 0, len(sketch.Tools)+12)
	for i, t := range sketch.Tools {
		active := p.Tool == t && !p.Erasing
		children = append(children, g.button(&g.btn.tools[i], toolLabel(t), active, true))
	}
	children = append(children,
		g.button(&g.btn.eraser, "Eraser", p.Erasing, true),
		g.button(&g.btn.fill, "Fill", false, true),
		g.button(&g.btn.blend, "Blend: "+p.Blend.Get(), false, true),
		g.button(&g.btn.clear, "Clear", false, true),
		g.button(&g.btn.save, "Save", false, true),
		g.button(&g.btn.undo, "Undo", false, p.CanUndo()),
		g.button(&g.btn.redo, "Redo", false, p.CanRedo()),
		g.button(&g.btn.smaller, "-", false, p.Size > sketch.MinBrushSize),
		layout.Rigid(func(gtx C) D {
			return layout.UniformInset(unit.Dp(8)).Layout(gtx,
				material.Body2(g.theme, sizeLabel(p.Size)).Layout)
		}),
		g.button(&g.btn.bigger, "+", false, p.Size < sketch.MaxBrushSize),
	)

	return layout.Flex{Alignment: layout.Middle}.Layout(gtx, children...)
}

func toolLabel(t sketch.Tool) string {
	s := string(t)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// button is a toolbar button, highlighted when active and greyed out
// when it would have no effect.
func (g *Gui) button(btn *widget.Clickable, label string, active, enabled bool) layout.FlexChild {
	return layout.Rigid(func(gtx C) D {
		if !enabled {
			gtx = gtx.Disabled()
		}
		b := material.Button(g.theme, btn, label)
		b.TextSize = unit.Sp(12)
		b.Inset = layout.UniformInset(unit.Dp(8))
		b.Background = buttonColor
		if active {
			b.Background = selectedColor
		}
		return layout.UniformInset(unit.Dp(2)).Layout(gtx, b.Layout)
	})
}

func (g *Gui) layoutPalette(gtx C) D {
	p := g.painter

	children := make([]layout.FlexChild, len(p.Palette))
	for i, c := range p.Palette {
		i, c := i, c
		children[i] = layout.Rigid(func(gtx C) D {
			return layout.UniformInset(unit.Dp(3)).Layout(gtx, func(gtx C) D {
				return material.Clickable(gtx, &g.btn.palette[i], func(gtx C) D {
					return g.swatch(gtx, c, c == p.Color && !p.Erasing)
				})
			})
		})
	}
	return layout.Inset{Left: unit.Dp(2)}.Layout(gtx, func(gtx C) D {
		return layout.Flex{}.Layout(gtx, children...)
	})
}

// swatch draws a palette color, framed when it is the brush color.
func (g *Gui) swatch(gtx C, c color.NRGBA, selected bool) D {
	size := image.Pt(gtx.Dp(unit.Dp(30)), gtx.Dp(unit.Dp(30)))
	border := color.NRGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff}
	width := gtx.Dp(unit.Dp(1))
	if selected {
		border = selectedColor
		width = gtx.Dp(unit.Dp(3))
	}
	paint.FillShape(gtx.Ops, border, clip.Rect{Max: size}.Op())
	paint.FillShape(gtx.Ops, c, clip.Rect{
		Min: image.Pt(width, width),
		Max: size.Sub(image.Pt(width, width)),
	}.Op())

	return D{Size: size}
}

// layoutCanvas feeds the pointer events to the painter and draws the canvas
// unscaled in the top-left corner of the available area.
func (g *Gui) layoutCanvas(gtx C) D {
	size := gtx.Constraints.Max
	if g.resized {
		g.resized = false
		g.painter.Resize(size.X, size.Y)
	}
	g.handlePointer(gtx)

	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	pointer.InputOp{
		Tag:   g,
		Types: pointer.Press | pointer.Drag | pointer.Release | pointer.Move | pointer.Leave | pointer.Cancel,
	}.Add(gtx.Ops)

	widget.Image{
		Src:   paint.NewImageOp(g.painter.Canvas.Image()),
		Scale: 1 / gtx.Metric.PxPerDp,
	}.Layout(gtx)

	return D{Size: size}
}

func (g *Gui) handlePointer(gtx C) {
	p := g.painter

	for _, ev := range gtx.Events(g) {
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		pt := sketch.Pt(float64(e.Position.X), float64(e.Position.Y))

		switch e.Type {
		case pointer.Press:
			if e.Buttons.Contain(pointer.ButtonPrimary) {
				g.notice = ""
				p.PointerDown(pt)
			}
		case pointer.Drag, pointer.Move:
			p.PointerMove(pt)
		case pointer.Release, pointer.Leave:
			p.PointerUp()
		case pointer.Cancel:
			p.PointerCancel()
		}
	}
}

func (g *Gui) layoutStatus(gtx C) D {
	p := g.painter
	status := fmt.Sprintf("%s | Blend: %s", p.Status(), p.Blend.Get())

	return layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx C) D {
		return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(material.Body2(g.theme, status).Layout),
			layout.Rigid(func(gtx C) D {
				if g.notice == "" {
					return D{}
				}
				lbl := material.Body2(g.theme, "  "+g.notice)
				lbl.Color = noticeColor
				return lbl.Layout(gtx)
			}),
		)
	})
}
