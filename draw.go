package sketch

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/esimov/sketch/imop"
	"github.com/esimov/sketch/utils"
)

// Tool is the shape drawn while the pointer is dragged.
type Tool string

const (
	Brush     Tool = "brush"
	Line      Tool = "line"
	Rectangle Tool = "rectangle"
	Circle    Tool = "circle"
)

// Tools lists the drawing tools in toolbar order.
var Tools = []Tool{Brush, Line, Rectangle, Circle}

// ParseTool converts a tool name. "rect" is accepted for rectangle.
func ParseTool(s string) (Tool, error) {
	if s == "rect" {
		return Rectangle, nil
	}
	if !utils.Contains(Tools, Tool(s)) {
		return "", fmt.Errorf("unknown tool: %q", s)
	}
	return Tool(s), nil
}

// ErrNotImplemented is returned for tools the painter only advertises.
var ErrNotImplemented = errors.New("fill tool not implemented")

// Brush size limits.
const (
	MinBrushSize     = 1
	MaxBrushSize     = 100
	DefaultBrushSize = 5
)

// Point is a position in canvas pixel coordinates.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Pen describes how a shape is put on the canvas.
type Pen struct {
	Color color.NRGBA
	Width float64
	Blend *imop.Blend
	// Erase punches the shape out of the canvas instead of painting it.
	Erase bool
}

// DrawShape rasterizes the shape spanned by from and to.
// For the brush and the line it is the segment between the two points,
// for the rectangle the box with these opposite corners and for the
// circle the one centered in from, passing through to.
func (c *Canvas) DrawShape(tool Tool, from, to Point, pen Pen) error {
	w := utils.Clamp(pen.Width, MinBrushSize, MaxBrushSize)
	dc := c.dc

	var r image.Rectangle
	switch tool {
	case Brush, Line:
		dc.DrawLine(from.X, from.Y, to.X, to.Y)
		r = bounds(from.X, from.Y, to.X, to.Y, w)
	case Rectangle:
		dc.DrawRectangle(from.X, from.Y, to.X-from.X, to.Y-from.Y)
		r = bounds(from.X, from.Y, to.X, to.Y, w)
	case Circle:
		radius := math.Hypot(to.X-from.X, to.Y-from.Y)
		dc.DrawCircle(from.X, from.Y, radius)
		r = bounds(from.X-radius, from.Y-radius, from.X+radius, from.Y+radius, w)
	default:
		return fmt.Errorf("unknown tool: %q", tool)
	}

	col := pen.Color
	if pen.Erase {
		// Only the coverage matters for the eraser mask.
		col = color.NRGBA{A: 0xff}
	}
	dc.SetColor(col)
	dc.SetLineWidth(w)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()
	dc.Stroke()

	op, blend := imop.NewOp(imop.SrcOver), pen.Blend
	if pen.Erase {
		op, blend = imop.NewOp(imop.DstOut), nil
	}
	op.Draw(c.img, c.layer, r, blend)

	// Leave the scratch layer transparent for the next shape.
	draw.Draw(c.layer, r.Intersect(c.layer.Bounds()), image.Transparent, image.Point{}, draw.Src)

	return nil
}

// bounds returns the pixel rectangle touched by a stroke of width w
// around the box spanned by the two corners.
func bounds(x0, y0, x1, y1, w float64) image.Rectangle {
	pad := w/2 + 2
	return image.Rect(
		int(math.Floor(math.Min(x0, x1)-pad)),
		int(math.Floor(math.Min(y0, y1)-pad)),
		int(math.Ceil(math.Max(x0, x1)+pad)),
		int(math.Ceil(math.Max(y0, y1)+pad)),
	)
}
