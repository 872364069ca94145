package main

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gioui.org/app"
	"github.com/esimov/sketch"
	"github.com/esimov/sketch/gui"
	"github.com/esimov/sketch/utils"
	"github.com/urfave/cli/v2"
	_ "golang.org/x/image/bmp"
)

func drawCommand() *cli.Command {
	return &cli.Command{
		Name:  "draw",
		Usage: "open the paint window",
		Action: func(c *cli.Context) error {
			s, err := openSession(c)
			if err != nil {
				return err
			}
			g := gui.NewGUI(s.painter, gui.Options{
				ExportPath: s.cfg.Export.Path,
				Logger:     s.logger,
			})

			go func() {
				err := g.Run(g.Window())
				if cerr := s.Close(); err == nil {
					err = cerr
				}
				if err != nil {
					fmt.Fprintln(c.App.ErrWriter, utils.DecorateText(fmt.Sprintf("✘ %v", err), utils.ErrorMessage))
					os.Exit(1)
				}
				os.Exit(0)
			}()
			app.Main()

			return nil
		},
	}
}

func strokeCommand() *cli.Command {
	return &cli.Command{
		Name:      "stroke",
		Usage:     "draw one stroke through the given points",
		ArgsUsage: "[x,y ...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "tool",
				Usage: "brush, line, rect, circle, eraser or fill",
				Value: string(sketch.Brush),
			},
			&cli.StringFlag{
				Name:  "points",
				Usage: `space separated points, e.g. "10,10 50,40"`,
			},
			&cli.StringFlag{
				Name:  "color",
				Usage: "brush color as #rrggbb",
			},
			&cli.Float64Flag{
				Name:  "size",
				Usage: "brush size in pixels",
			},
			&cli.StringFlag{
				Name:  "blend",
				Usage: "blend mode: normal, darken, lighten, multiply, screen, overlay",
			},
		},
		Action: withSession(stroke),
	}
}

func stroke(c *cli.Context, s *session) error {
	p := s.painter

	points, err := parsePoints(append(strings.Fields(c.String("points")), c.Args().Slice()...))
	if err != nil {
		return err
	}
	if c.IsSet("color") {
		col, err := utils.HexToNRGBA(c.String("color"))
		if err != nil {
			return err
		}
		p.SetColor(col)
	}
	if c.IsSet("size") {
		p.SetSize(c.Float64("size"))
	}
	if c.IsSet("blend") {
		if err := p.SetBlend(c.String("blend")); err != nil {
			return err
		}
	}

	switch name := c.String("tool"); name {
	case "eraser":
		p.ToggleEraser()
	case "fill":
		if len(points) == 0 {
			points = []sketch.Point{{}}
		}
		return notice(c, p.Fill(points[0]))
	default:
		tool, err := sketch.ParseTool(name)
		if err != nil {
			return err
		}
		p.SetTool(tool)
	}
	if len(points) < 2 {
		return errors.New("a stroke needs at least two points")
	}

	p.Stroke(points...)
	success(c, "%s stroke through %d points", p.ToolName(), len(points))

	return nil
}

// parsePoints converts "x,y" pairs to canvas points.
func parsePoints(args []string) ([]sketch.Point, error) {
	points := make([]sketch.Point, 0, len(args))
	for _, arg := range args {
		xs, ys, ok := strings.Cut(arg, ",")
		if !ok {
			return nil, fmt.Errorf("invalid point %q, expected x,y", arg)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid point %q: %w", arg, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid point %q: %w", arg, err)
		}
		points = append(points, sketch.Pt(x, y))
	}
	return points, nil
}

func undoCommand() *cli.Command {
	return &cli.Command{
		Name:  "undo",
		Usage: "step back in the canvas history",
		Action: withSession(func(c *cli.Context, s *session) error {
			if !s.painter.Undo() {
				return notice(c, errors.New("nothing to undo"))
			}
			success(c, "undo, at step %d of %d", s.painter.History.Cursor()+1, s.painter.History.Len())
			return nil
		}),
	}
}

func redoCommand() *cli.Command {
	return &cli.Command{
		Name:  "redo",
		Usage: "step forward in the canvas history",
		Action: withSession(func(c *cli.Context, s *session) error {
			if !s.painter.Redo() {
				return notice(c, errors.New("nothing to redo"))
			}
			success(c, "redo, at step %d of %d", s.painter.History.Cursor()+1, s.painter.History.Len())
			return nil
		}),
	}
}

func clearCommand() *cli.Command {
	return &cli.Command{
		Name:  "clear",
		Usage: "clear the canvas",
		Action: withSession(func(c *cli.Context, s *session) error {
			s.painter.Clear()
			success(c, "canvas cleared")
			return nil
		}),
	}
}

func resizeCommand() *cli.Command {
	return &cli.Command{
		Name:  "resize",
		Usage: "change the canvas size, keeping the drawing",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "width", Required: true},
			&cli.IntFlag{Name: "height", Required: true},
		},
		Action: withSession(func(c *cli.Context, s *session) error {
			w, h := c.Int("width"), c.Int("height")
			if w <= 0 || h <= 0 {
				return fmt.Errorf("invalid canvas size %dx%d", w, h)
			}
			s.painter.Resize(w, h)
			success(c, "canvas resized to %dx%d", w, h)
			return nil
		}),
	}
}

func importCommand() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "draw an image file or URL on the canvas",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "in",
				Aliases:  []string{"i"},
				Usage:    "image path or URL",
				Required: true,
			},
		},
		Action: withSession(importImage),
	}
}

func importImage(c *cli.Context, s *session) error {
	src := c.String("in")
	start := time.Now()

	var (
		f   *os.File
		err error
	)
	if utils.IsValidUrl(src) {
		spinner := utils.NewSpinner(c.App.ErrWriter, fmt.Sprintf("%s %s",
			utils.DecorateText("⚡ SKETCH", utils.StatusMessage),
			utils.DecorateText("is downloading the image...", utils.DefaultMessage)),
			100*time.Millisecond, true)
		spinner.Start()
		f, err = utils.DownloadImage(c.Context, src)
		spinner.Stop()
		if err != nil {
			return err
		}
		defer os.Remove(f.Name())
	} else {
		ctype, err := utils.DetectContentType(src)
		if err != nil {
			return fmt.Errorf("unable to open the source file: %w", err)
		}
		if !strings.Contains(ctype, "image") {
			return fmt.Errorf("%s is not an image (%s)", src, ctype)
		}
		if f, err = os.Open(src); err != nil {
			return err
		}
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("unable to decode the image: %w", err)
	}
	s.painter.Import(img)
	success(c, "imported %s in %s", src, utils.FormatTime(time.Since(start)))

	return nil
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "save the canvas over a white background",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "output file (png, jpg or bmp), - for stdout",
			},
		},
		Action: withSession(func(c *cli.Context, s *session) error {
			out := s.cfg.Export.Path
			if c.IsSet("out") {
				out = c.String("out")
			}
			if err := s.painter.ExportFile(out); err != nil {
				return err
			}
			if out != pipeName {
				success(c, "canvas saved to %s", out)
			}
			return nil
		}),
	}
}

func historyCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "show the state of the undo history",
		Action: withSession(func(c *cli.Context, s *session) error {
			h := s.painter.History
			b := s.painter.Canvas.Bounds()

			w := c.App.Writer
			fmt.Fprintf(w, "canvas:    %dx%d\n", b.Dx(), b.Dy())
			fmt.Fprintf(w, "snapshots: %d/%d\n", h.Len(), h.Max())
			fmt.Fprintf(w, "cursor:    %d\n", h.Cursor())
			fmt.Fprintf(w, "can undo:  %t\n", h.CanUndo())
			fmt.Fprintf(w, "can redo:  %t\n", h.CanRedo())
			fmt.Fprintf(w, "brush:     %s %.0fpx\n", utils.NRGBAToHex(s.painter.Color), s.painter.Size)
			return nil
		}),
	}
}

func success(c *cli.Context, format string, args ...any) {
	printMessage(c.App.Writer, "✔ "+fmt.Sprintf(format, args...), utils.SuccessMessage)
}

// notice prints a non fatal message, like a history boundary or a tool
// that is not available, and lets the command succeed.
func notice(c *cli.Context, err error) error {
	if err == nil {
		return nil
	}
	printMessage(c.App.Writer, "⚠ "+err.Error(), utils.NoticeMessage)
	return nil
}

func printMessage(w io.Writer, msg string, t utils.MessageType) {
	fmt.Fprintln(w, utils.DecorateText(msg, t))
}
