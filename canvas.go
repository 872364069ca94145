package sketch

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// Surface is the pixel store the history manager snapshots.
type Surface interface {
	Capture() Snapshot
	Restore(Snapshot) error
	Clear()
}

var _ Surface = (*Canvas)(nil)

// Background is the color of a blank canvas.
var Background = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// Canvas is an RGBA drawing surface. Strokes are rasterized on a scratch
// layer of the same size and then composited onto the pixels.
type Canvas struct {
	img   *image.RGBA
	layer *image.RGBA
	dc    *gg.Context
}

// NewCanvas creates a blank canvas. Dimensions are forced to at least 1px.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.alloc(width, height)
	c.Clear()

	return c
}

func (c *Canvas) alloc(width, height int) {
	rect := image.Rect(0, 0, max(width, 1), max(height, 1))
	c.img = image.NewRGBA(rect)
	c.layer = image.NewRGBA(rect)
	c.dc = gg.NewContextForRGBA(c.layer)
}

// Bounds returns the canvas rectangle.
func (c *Canvas) Bounds() image.Rectangle {
	return c.img.Bounds()
}

// Image returns the live pixel buffer. It is only valid until the next resize.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Capture encodes the current pixels.
func (c *Canvas) Capture() Snapshot {
	// Encoding into memory only fails for empty images, which a canvas never is.
	s, _ := encodeSnapshot(c.img)
	return s
}

// Restore replaces the pixels, and the bounds if they differ, with the snapshot.
func (c *Canvas) Restore(s Snapshot) error {
	src, err := decodeSnapshot(s)
	if err != nil {
		return err
	}
	if src.Bounds() != c.Bounds() {
		c.alloc(src.Bounds().Dx(), src.Bounds().Dy())
	}
	copy(c.img.Pix, src.Pix)

	return nil
}

// Clear fills the canvas with the blank background.
func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), &image.Uniform{Background}, image.Point{}, draw.Src)
}

// Resize changes the canvas bounds. The drawing is kept anchored at the
// top-left corner and the uncovered area is blank.
func (c *Canvas) Resize(width, height int) {
	width, height = max(width, 1), max(height, 1)
	if width == c.img.Bounds().Dx() && height == c.img.Bounds().Dy() {
		return
	}
	dst := imaging.Paste(imaging.New(width, height, Background), c.img, image.Point{})

	c.alloc(width, height)
	draw.Draw(c.img, c.img.Bounds(), dst, image.Point{}, draw.Src)
}

// Copy returns a copy of the current pixels.
func (c *Canvas) Copy() *image.RGBA {
	dst := image.NewRGBA(c.img.Bounds())
	copy(dst.Pix, c.img.Pix)
	return dst
}

// Paste overwrites the pixels with src, which must have the canvas bounds.
func (c *Canvas) Paste(src *image.RGBA) {
	if src.Bounds() != c.img.Bounds() {
		draw.Draw(c.img, c.img.Bounds(), src, image.Point{}, draw.Src)
		return
	}
	copy(c.img.Pix, src.Pix)
}

// DrawImage paints img over the canvas with its top-left corner at the origin.
func (c *Canvas) DrawImage(img image.Image) {
	b := img.Bounds()
	draw.Draw(c.img, b.Sub(b.Min), img, b.Min, draw.Over)
}
