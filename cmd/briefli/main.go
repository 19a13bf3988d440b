package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/urfave/cli/v2"

	"github.com/KartikLabhshetwar/briefli/internal/cli/generate"
	"github.com/KartikLabhshetwar/briefli/internal/cli/introspect"
	"github.com/KartikLabhshetwar/briefli/internal/cli/self"
	"github.com/KartikLabhshetwar/briefli/internal/log"
)

// version is overridden at release time with -ldflags "-X main.version=...".
var version = "v0.1.0"

func newApp() *cli.App {
	return &cli.App{
		Name:        "briefli",
		Usage:       "Generate a README.md for the current project with an LLM",
		Description: "Run briefli with no flags for the standard interactive session. Every flag is optional.",
		Version:     version,
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Log analysis and provider details to stderr",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Log session state transitions to stderr",
			},
		}, generate.Flags()...),
		Before: func(c *cli.Context) error {
			log.SetDefault(log.NewText(c.App.ErrWriter, logLevel(c.Bool("verbose"), c.Bool("debug"))))
			return nil
		},
		Action: generate.Action,
		Commands: []*cli.Command{
			self.NewSelfCommand(),
			introspect.NewCommand(),
		},
	}
}

func logLevel(verbose, debug bool) slog.Level {
	switch {
	case debug:
		return slog.LevelDebug
	case verbose:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := newApp()
	app.ErrWriter = os.Stderr
	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
