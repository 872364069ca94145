package sketch

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/esimov/sketch/imop"
	"github.com/esimov/sketch/utils"
	"golang.org/x/image/bmp"
	"golang.org/x/term"
)

// DefaultExportPath is used when no output file is given.
const DefaultExportPath = "paint.png"

// ErrTerminalOutput is returned when the export would be written to a terminal.
var ErrTerminalOutput = errors.New("`-` should be used with a pipe for stdout")

// Flatten places img over an opaque white background, so the erased
// regions come out white instead of transparent.
func Flatten(img *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(img.Bounds())
	copy(dst.Pix, img.Pix)

	bg := image.NewRGBA(img.Bounds())
	draw.Draw(bg, bg.Bounds(), &image.Uniform{Background}, image.Point{}, draw.Src)

	imop.NewOp(imop.DstOver).Draw(dst, bg, dst.Bounds(), nil)

	return dst
}

// Formats lists the supported export formats.
var Formats = []string{"png", "jpg", "jpeg", "bmp"}

// format normalizes a format name or file extension.
func format(name string) (string, error) {
	f := strings.ToLower(strings.TrimPrefix(name, "."))
	if f == "" {
		f = "png"
	}
	if !utils.Contains(Formats, f) {
		return "", fmt.Errorf("unsupported image format: %q", name)
	}
	return f, nil
}

// Encode writes img in the given format: png, jpg, jpeg or bmp.
func Encode(w io.Writer, img image.Image, name string) error {
	f, err := format(name)
	if err != nil {
		return err
	}
	switch f {
	case "jpg", "jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 100})
	case "bmp":
		return bmp.Encode(w, img)
	default:
		return png.Encode(w, img)
	}
}

// Export encodes the flattened drawing to w.
func (p *Painter) Export(w io.Writer, name string) error {
	return Encode(w, Flatten(p.Canvas.Image()), name)
}

// ExportFile saves the flattened drawing. The format is chosen by the file
// extension, defaulting to png. A path of "-" writes to stdout when it is
// not a terminal.
func (p *Painter) ExportFile(path string) (err error) {
	if path == "" {
		path = DefaultExportPath
	}
	if path == "-" {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return ErrTerminalOutput
		}
		return p.Export(os.Stdout, "png")
	}

	ext := filepath.Ext(path)
	if ext == "" {
		ext = ".png"
		path += ext
	}
	if _, err := format(ext); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create the output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if err := p.Export(f, ext); err != nil {
		return fmt.Errorf("unable to encode %s: %w", path, err)
	}
	p.logger.Debug("canvas exported", "path", path)

	return nil
}
