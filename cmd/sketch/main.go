package main

import (
	"fmt"
	"os"

	"github.com/esimov/sketch/utils"
	"github.com/urfave/cli/v2"
)

const HelpBanner = `
┌─┐┬┌─┌─┐┌┬┐┌─┐┬ ┬
└─┐├┴┐├┤  │ │  ├─┤
└─┘┴ ┴└─┘ ┴ └─┘┴ ┴

Paint canvas with a persistent undo/redo history.
    Version: %s

`

// pipeName is the file name that indicates stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, utils.DecorateText(fmt.Sprintf("✘ %v", err), utils.ErrorMessage))
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:                  "sketch",
		Usage:                 "paint on a canvas and keep every step undoable",
		Version:               Version,
		CustomAppHelpTemplate: fmt.Sprintf(HelpBanner, Version) + cli.AppHelpTemplate,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML configuration file",
				EnvVars: []string{"SKETCH_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "SQLite file holding the canvas state",
			},
			&cli.BoolFlag{
				Name:  "ephemeral",
				Usage: "keep the canvas state in memory only",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level: debug, info, warn, error",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "log format: text, json",
			},
		},
		Commands: []*cli.Command{
			drawCommand(),
			strokeCommand(),
			undoCommand(),
			redoCommand(),
			clearCommand(),
			resizeCommand(),
			importCommand(),
			exportCommand(),
			historyCommand(),
		},
		HideHelpCommand: true,
	}
}
