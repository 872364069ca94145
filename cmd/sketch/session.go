package main

import (
	"fmt"
	"log/slog"

	"github.com/esimov/sketch"
	"github.com/esimov/sketch/config"
	"github.com/esimov/sketch/store"
	"github.com/esimov/sketch/utils"
	"github.com/urfave/cli/v2"
)

// session is a painter restored from the configured store.
type session struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   store.Store
	painter *sketch.Painter
}

// flagKeys maps the global flags to configuration keys.
var flagKeys = map[string]string{
	"db":         "store.path",
	"log-level":  "log.level",
	"log-format": "log.format",
}

// openSession loads the configuration, opens the store and restores the canvas.
func openSession(c *cli.Context) (*session, error) {
	overrides := make(map[string]any)
	for flag, key := range flagKeys {
		if c.IsSet(flag) {
			overrides[key] = c.String(flag)
		}
	}
	cfg, err := config.Load(c.String("config"), overrides)
	if err != nil {
		return nil, err
	}

	logger, err := utils.NewLogger(utils.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: c.App.ErrWriter,
	})
	if err != nil {
		return nil, err
	}

	var st store.Store
	if c.Bool("ephemeral") || cfg.Store.Path == "" {
		mem := store.NewMemory()
		mem.SetLimit(cfg.Store.MaxValueSize)
		st = mem
	} else {
		st, err = store.OpenSQLite(cfg.Store.Path,
			store.WithMkdirAll(),
			store.WithMaxValueSize(cfg.Store.MaxValueSize),
		)
		if err != nil {
			return nil, fmt.Errorf("open canvas store: %w", err)
		}
	}

	brush, err := utils.HexToNRGBA(cfg.Brush.Color)
	if err != nil {
		st.Close()
		return nil, err
	}

	p := sketch.NewPainter(
		sketch.NewCanvas(cfg.Canvas.Width, cfg.Canvas.Height),
		sketch.WithMaxHistory(cfg.History.Max),
		sketch.WithStatePersister(sketch.NewStorePersister(st, cfg.Store.Key, logger)),
		sketch.WithLogger(logger),
	)
	p.Start()
	p.SetColor(brush)
	p.SetSize(cfg.Brush.Size)

	logger.Debug("session opened", "store", cfg.Store.Path, "ephemeral", c.Bool("ephemeral"),
		"width", p.Canvas.Bounds().Dx(), "height", p.Canvas.Bounds().Dy())

	return &session{
		cfg:     cfg,
		logger:  logger,
		store:   st,
		painter: p,
	}, nil
}

func (s *session) Close() error {
	return s.store.Close()
}

// withSession runs fn on an open session and closes it afterwards.
func withSession(fn func(c *cli.Context, s *session) error) cli.ActionFunc {
	return func(c *cli.Context) (err error) {
		s, err := openSession(c)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := s.Close(); err == nil {
				err = cerr
			}
		}()
		return fn(c, s)
	}
}
