package sketch

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
)

// Snapshot is an immutable PNG capture of the whole canvas.
// Callers must not modify the underlying bytes.
type Snapshot []byte

var snapshotEncoder = png.Encoder{CompressionLevel: png.BestSpeed}

// encodeSnapshot captures the image pixels as a snapshot.
func encodeSnapshot(img image.Image) (Snapshot, error) {
	var buf bytes.Buffer
	if err := snapshotEncoder.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("could not encode snapshot: %w", err)
	}
	return Snapshot(buf.Bytes()), nil
}

// decodeSnapshot turns a snapshot back into pixels with min-point at (0, 0).
func decodeSnapshot(s Snapshot) (*image.RGBA, error) {
	if len(s) == 0 {
		return nil, fmt.Errorf("empty snapshot")
	}
	src, err := png.Decode(bytes.NewReader(s))
	if err != nil {
		return nil, fmt.Errorf("could not decode snapshot: %w", err)
	}
	return imgToRGBA(src), nil
}

// imgToRGBA converts any image type to *image.RGBA with min-point at (0, 0).
func imgToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	if b.Min.X == 0 && b.Min.Y == 0 {
		if src, ok := img.(*image.RGBA); ok {
			return src
		}
	}
	dst := image.NewRGBA(b.Sub(b.Min))

	switch src := img.(type) {
	case *image.NRGBA:
		for y := 0; y < b.Dy(); y++ {
			si := src.PixOffset(b.Min.X, b.Min.Y+y)
			di := dst.PixOffset(0, y)
			for x := 0; x < b.Dx(); x++ {
				a := uint32(src.Pix[si+3])
				dst.Pix[di+0] = uint8(uint32(src.Pix[si+0]) * a / 0xff)
				dst.Pix[di+1] = uint8(uint32(src.Pix[si+1]) * a / 0xff)
				dst.Pix[di+2] = uint8(uint32(src.Pix[si+2]) * a / 0xff)
				dst.Pix[di+3] = uint8(a)
				si += 4
				di += 4
			}
		}
	case *image.YCbCr:
		for y := 0; y < b.Dy(); y++ {
			di := dst.PixOffset(0, y)
			for x := 0; x < b.Dx(); x++ {
				sx, sy := b.Min.X+x, b.Min.Y+y
				yi := src.YOffset(sx, sy)
				ci := src.COffset(sx, sy)
				r, g, bl := color.YCbCrToRGB(src.Y[yi], src.Cb[ci], src.Cr[ci])
				dst.Pix[di+0] = r
				dst.Pix[di+1] = g
				dst.Pix[di+2] = bl
				dst.Pix[di+3] = 0xff
				di += 4
			}
		}
	default:
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	}
	return dst
}
