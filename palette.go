package sketch

import "image/color"

// DefaultPalette holds the swatches offered by the paint widget.
var DefaultPalette = []color.NRGBA{
	{R: 0x00, G: 0x00, B: 0x00, A: 0xff}, // black
	{R: 0x80, G: 0x80, B: 0x80, A: 0xff}, // gray
	{R: 0x80, G: 0x00, B: 0x00, A: 0xff}, // maroon
	{R: 0x80, G: 0x80, B: 0x00, A: 0xff}, // olive
	{R: 0x00, G: 0x80, B: 0x00, A: 0xff}, // green
	{R: 0x00, G: 0x80, B: 0x80, A: 0xff}, // teal
	{R: 0x00, G: 0x00, B: 0x80, A: 0xff}, // navy
	{R: 0x80, G: 0x00, B: 0x80, A: 0xff}, // purple
	{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, // white
	{R: 0xc0, G: 0xc0, B: 0xc0, A: 0xff}, // silver
	{R: 0xff, G: 0x00, B: 0x00, A: 0xff}, // red
	{R: 0xff, G: 0xff, B: 0x00, A: 0xff}, // yellow
	{R: 0x00, G: 0xff, B: 0x00, A: 0xff}, // lime
	{R: 0x00, G: 0xff, B: 0xff, A: 0xff}, // aqua
	{R: 0x00, G: 0x00, B: 0xff, A: 0xff}, // blue
	{R: 0xff, G: 0xb6, B: 0xc1, A: 0xff}, // light pink
	{R: 0xff, G: 0xa5, B: 0x00, A: 0xff}, // orange
}
