package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/nvalle/mangapress/internal/batch"
	"github.com/nvalle/mangapress/internal/history"
	"github.com/nvalle/mangapress/pkg/help"
)

func main() {
	app := &cli.App{
		Name:  "mangapress",
		Usage: "crop, split and compress scanned manga documents in bulk",
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "process every document in the input folder",
				Action: batch.RunAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "config", Usage: "path to a YAML config file (default: ./config.yaml when present)"},
					&cli.StringFlag{Name: "input", Usage: "folder of source documents"},
					&cli.StringFlag{Name: "output", Usage: "destination folder for accepted titles"},
					&cli.StringFlag{Name: "quarantine", Usage: "destination folder for flagged titles"},
					&cli.IntFlag{Name: "workers", Usage: "parallel title jobs (default: CPU count)"},
					&cli.StringFlag{Name: "license-key", Usage: "document container license key", EnvVars: []string{"MANGAPRESS_LICENSE_KEY"}},
					&cli.StringFlag{Name: "keywords", Usage: "comma-separated explicit-content keywords"},
					&cli.StringFlag{Name: "format", Value: "yaml", Usage: "summary format: yaml or json"},
					&cli.BoolFlag{Name: "resume", Usage: "skip titles finished by a recent run"},
					&cli.BoolFlag{Name: "quiet", Usage: "only log errors"},
				},
			},
			{
				Name:  "quickstart",
				Usage: "print a YAML cheat sheet of commands and config keys",
				Action: func(c *cli.Context) error {
					fmt.Print(help.ColdstartYAML)
					return nil
				},
			},
			{
				Name:   "history",
				Usage:  "list outcomes of past batch runs",
				Action: history.HistoryAction,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Value: 20, Usage: "max batches to list"},
					&cli.IntFlag{Name: "batch", Usage: "show per-title outcomes for one batch (0 = latest)"},
					&cli.StringFlag{Name: "db", Usage: "history database path (default: next to the binary)"},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
