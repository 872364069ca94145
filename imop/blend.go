// Package imop implements the Porter-Duff composition operators and the
// separable blend modes used to put brush strokes onto the canvas.
//
// The image/draw core package only implements source-over-destination and
// source. The paint tools need more: the eraser punches holes in the canvas
// with destination-out, the export places the drawing over an opaque white
// background with destination-over, and the brush can mix its color with
// the backdrop through a blend mode.
package imop

import (
	"fmt"
	"math"

	"github.com/esimov/sketch/utils"
)

// Separable blend modes.
const (
	Normal   = "normal"
	Darken   = "darken"
	Lighten  = "lighten"
	Multiply = "multiply"
	Screen   = "screen"
	Overlay  = "overlay"
)

// BlendModes lists the supported blend modes.
var BlendModes = []string{Normal, Darken, Lighten, Multiply, Screen, Overlay}

// Blend holds the currently active blend mode.
type Blend struct {
	OpType string
}

// NewBlend initializes a new Blend in normal mode.
func NewBlend() *Blend {
	return &Blend{OpType: Normal}
}

// Set activates one of the supported blend modes.
func (o *Blend) Set(opType string) error {
	if !utils.Contains(BlendModes, opType) {
		return fmt.Errorf("unsupported blend mode: %q", opType)
	}
	o.OpType = opType
	return nil
}

// Get returns the currently active blend mode.
func (o *Blend) Get() string {
	if len(o.OpType) > 0 {
		return o.OpType
	}
	return Normal
}

// apply mixes a backdrop channel cb with a source channel cs.
// Both are straight (non-premultiplied) values in [0, 1].
func (o *Blend) apply(cb, cs float64) float64 {
	switch o.OpType {
	case Darken:
		return math.Min(cb, cs)
	case Lighten:
		return math.Max(cb, cs)
	case Multiply:
		return cb * cs
	case Screen:
		return cb + cs - cb*cs
	case Overlay:
		if cb <= 0.5 {
			return cs * 2 * cb
		}
		b := 2*cb - 1
		return cs + b - cs*b
	default:
		return cs
	}
}
