package imop

import (
	"fmt"
	"image"

	"github.com/esimov/sketch/utils"
)

// Porter-Duff composition operators.
const (
	Clear   = "clear"
	Copy    = "copy"
	Dst     = "dst"
	SrcOver = "src_over"
	DstOver = "dst_over"
	SrcIn   = "src_in"
	DstIn   = "dst_in"
	SrcOut  = "src_out"
	DstOut  = "dst_out"
	SrcAtop = "src_atop"
	DstAtop = "dst_atop"
	Xor     = "xor"
)

// Composite holds the currently active composition operator.
type Composite struct {
	current string
	ops     []string
}

// InitOp returns a Composite using SrcOver, the canvas default.
func InitOp() *Composite {
	return &Composite{
		current: SrcOver,
		ops: []string{
			Clear,
			Copy,
			Dst,
			SrcOver,
			DstOver,
			SrcIn,
			DstIn,
			SrcOut,
			DstOut,
			SrcAtop,
			DstAtop,
			Xor,
		},
	}
}

// NewOp returns a Composite using the given operator. It panics if cop is
// not one of the operator constants.
func NewOp(cop string) *Composite {
	op := InitOp()
	if err := op.Set(cop); err != nil {
		panic(err)
	}
	return op
}

// Set activates one of the supported composition operators.
func (op *Composite) Set(cop string) error {
	if !utils.Contains(op.ops, cop) {
		return fmt.Errorf("unsupported composite operation: %q", cop)
	}
	op.current = cop
	return nil
}

// Get returns the active composition operator.
func (op *Composite) Get() string {
	return op.current
}

// factors returns the Porter-Duff source and destination fractions
// for the given source and backdrop alpha.
func (op *Composite) factors(as, ab float64) (fa, fb float64) {
	switch op.current {
	case Clear:
		return 0, 0
	case Copy:
		return 1, 0
	case Dst:
		return 0, 1
	case DstOver:
		return 1 - ab, 1
	case SrcIn:
		return ab, 0
	case DstIn:
		return 0, as
	case SrcOut:
		return 1 - ab, 0
	case DstOut:
		return 0, 1 - as
	case SrcAtop:
		return ab, 1 - as
	case DstAtop:
		return 1 - ab, as
	case Xor:
		return 1 - ab, 1 - as
	default:
		return 1, 1 - as
	}
}

// Draw composites src onto dst inside r and stores the result in dst.
// Both images hold alpha-premultiplied pixels and must share the same
// coordinate space. When blend is not nil the source color is mixed with
// the backdrop using the blend mode before composition.
func (op *Composite) Draw(dst, src *image.RGBA, r image.Rectangle, blend *Blend) {
	r = r.Intersect(dst.Bounds()).Intersect(src.Bounds())
	if r.Empty() {
		return
	}

	for y := r.Min.Y; y < r.Max.Y; y++ {
		si := src.PixOffset(r.Min.X, y)
		di := dst.PixOffset(r.Min.X, y)

		for x := r.Min.X; x < r.Max.X; x, si, di = x+1, si+4, di+4 {
			s := src.Pix[si : si+4 : si+4]
			d := dst.Pix[di : di+4 : di+4]

			as := float64(s[3]) / 255
			ab := float64(d[3]) / 255
			fa, fb := op.factors(as, ab)

			var cs [3]float64
			for i := 0; i < 3; i++ {
				cs[i] = float64(s[i]) / 255
			}
			if blend != nil && blend.OpType != Normal && as > 0 && ab > 0 {
				for i := 0; i < 3; i++ {
					// Blend functions work on straight colors.
					sc := cs[i] / as
					bc := float64(d[i]) / 255 / ab
					cs[i] = as * ((1-ab)*sc + ab*blend.apply(bc, sc))
				}
			}

			for i := 0; i < 3; i++ {
				d[i] = clamp(cs[i]*fa + float64(d[i])/255*fb)
			}
			d[3] = clamp(as*fa + ab*fb)
		}
	}
}

func clamp(v float64) uint8 {
	return uint8(utils.Clamp(v*255+0.5, 0, 255))
}
