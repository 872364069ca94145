package sketch

import (
	"image/color"
	"testing"

	"github.com/esimov/sketch/imop"
	"github.com/stretchr/testify/assert"
)

func pen(c color.NRGBA, width float64) Pen {
	return Pen{Color: c, Width: width, Blend: imop.NewBlend()}
}

func TestDraw_ParseTool(t *testing.T) {
	assert := assert.New(t)

	for _, name := range []string{"brush", "line", "rectangle", "circle"} {
		tool, err := ParseTool(name)
		assert.NoError(err)
		assert.Equal(Tool(name), tool)
	}
	tool, err := ParseTool("rect")
	assert.NoError(err)
	assert.Equal(Rectangle, tool)

	_, err = ParseTool("spray")
	assert.Error(err)
}

func TestDraw_Line(t *testing.T) {
	assert := assert.New(t)

	c := NewCanvas(60, 40)
	err := c.DrawShape(Line, Pt(10, 10), Pt(40, 10), pen(color.NRGBA{A: 0xff}, 6))
	assert.NoError(err)

	img := c.Image()
	assert.Equal(black, img.RGBAAt(25, 10))
	assert.Equal(black, img.RGBAAt(10, 10), "round cap covers the end point")
	assert.Equal(white, img.RGBAAt(25, 30))
	assert.Equal(white, img.RGBAAt(55, 10))

	for _, v := range c.layer.Pix {
		if v != 0 {
			assert.Fail("scratch layer must be cleared after a shape")
			break
		}
	}
}

func TestDraw_Rectangle(t *testing.T) {
	assert := assert.New(t)

	c := NewCanvas(60, 60)
	// Corners given in reverse order.
	err := c.DrawShape(Rectangle, Pt(50, 50), Pt(10, 10), pen(color.NRGBA{A: 0xff}, 4))
	assert.NoError(err)

	img := c.Image()
	assert.Equal(black, img.RGBAAt(10, 30), "left edge")
	assert.Equal(black, img.RGBAAt(30, 50), "bottom edge")
	assert.Equal(white, img.RGBAAt(30, 30), "outline only")
}

func TestDraw_Circle(t *testing.T) {
	assert := assert.New(t)

	c := NewCanvas(60, 60)
	err := c.DrawShape(Circle, Pt(30, 30), Pt(30, 15), pen(color.NRGBA{A: 0xff}, 4))
	assert.NoError(err)

	img := c.Image()
	assert.Equal(black, img.RGBAAt(30, 15))
	assert.Equal(black, img.RGBAAt(45, 30))
	assert.Equal(white, img.RGBAAt(30, 30))
	assert.Equal(white, img.RGBAAt(5, 5))
}

func TestDraw_Erase(t *testing.T) {
	assert := assert.New(t)

	c := NewCanvas(40, 20)
	p := pen(color.NRGBA{R: 0xff, A: 0xff}, 6)
	p.Erase = true
	assert.NoError(c.DrawShape(Brush, Pt(5, 10), Pt(35, 10), p))

	assert.Equal(color.RGBA{}, c.Image().RGBAAt(20, 10), "erased pixels are transparent")
	assert.Equal(white, c.Image().RGBAAt(20, 2))
}

func TestDraw_Blend(t *testing.T) {
	assert := assert.New(t)

	c := NewCanvas(40, 20)
	assert.NoError(c.DrawShape(Brush, Pt(5, 10), Pt(35, 10), pen(color.NRGBA{R: 0xff, A: 0xff}, 10)))
	assert.Equal(red, c.Image().RGBAAt(20, 10))

	p := pen(color.NRGBA{G: 0xff, A: 0xff}, 10)
	assert.NoError(p.Blend.Set(imop.Multiply))
	assert.NoError(c.DrawShape(Line, Pt(5, 10), Pt(35, 10), p))
	assert.Equal(black, c.Image().RGBAAt(20, 10), "red multiplied by green")

	p = pen(color.NRGBA{G: 0xff, A: 0xff}, 10)
	assert.NoError(p.Blend.Set(imop.Lighten))
	assert.NoError(c.DrawShape(Line, Pt(5, 10), Pt(35, 10), p))
	assert.Equal(color.RGBA{G: 0xff, A: 0xff}, c.Image().RGBAAt(20, 10))
}

func TestDraw_Errors(t *testing.T) {
	assert := assert.New(t)

	c := NewCanvas(10, 10)
	assert.Error(c.DrawShape(Tool("spray"), Pt(0, 0), Pt(5, 5), pen(color.NRGBA{A: 0xff}, 1)))
	assert.Equal(white, c.Image().RGBAAt(2, 2))

	// Shapes outside the canvas are clipped.
	assert.NoError(c.DrawShape(Line, Pt(-50, -50), Pt(-20, -20), pen(color.NRGBA{A: 0xff}, 3)))
	assert.NoError(c.DrawShape(Line, Pt(-5, 5), Pt(15, 5), pen(color.NRGBA{A: 0xff}, 500)))
}
