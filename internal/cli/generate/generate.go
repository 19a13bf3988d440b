// Package generate implements briefli's default action: the interactive
// session that analyses a project and writes its README.
package generate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/KartikLabhshetwar/briefli/internal/core/analyzer"
	"github.com/KartikLabhshetwar/briefli/internal/core/config"
	"github.com/KartikLabhshetwar/briefli/internal/core/fsys"
	"github.com/KartikLabhshetwar/briefli/internal/core/llm"
	"github.com/KartikLabhshetwar/briefli/internal/log"
	"github.com/KartikLabhshetwar/briefli/internal/ui"
)

const banner = `
········································································

:                                                                      :
:                                                                      :
:   ______     ______     __     ______     ______   __         __     :
:  /\  == \   /\  == \   /\ \   /\  ___\   /\  ___\ /\ \       /\ \    :
:  \ \  __<   \ \  __<   \ \ \  \ \  __\   \ \  __\ \ \ \____  \ \ \   :
:   \ \_____\  \ \_\ \_\  \ \_\  \ \_____\  \ \_\    \ \_____\  \ \_\  :
:    \/_____/   \/_/ /_/   \/_/   \/_____/   \/_/     \/_____/   \/_/  :
:                                                                      :
:                                                                      :
········································································

                        Briefli - README Generator

`

// Flags are the default action's flags. None is required.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "dir",
			Aliases: []string{"C"},
			Usage:   "Project directory to document (optional; defaults to the current directory)",
		},
	}
}

// Action runs the interactive session for the project directory.
func Action(c *cli.Context) error {
	logger := log.Default()

	root, err := projectRoot(c.String("dir"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	cwd, _ := os.Getwd()
	if loaded, err := config.LoadDotEnv(root, cwd); err != nil {
		logger.Warn("could not load .env", "error", err)
	} else if len(loaded) > 0 {
		logger.Info("loaded environment files", "files", loaded)
	}

	store, err := config.NewStore()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	stored, err := store.Load()
	if err != nil {
		logger.Warn("ignoring unreadable config file", "path", store.Path, "error", err)
		stored = nil
	}
	sel := config.Select(stored)
	switch sel.Provider {
	case "":
		sel.Provider = llm.ProviderGroq
	case "claude":
		sel.Provider = llm.ProviderAnthropic
	}
	logger.Info("generation provider", "provider", sel.Provider, "model", modelOrDefault(sel))

	procedures, err := analyzer.DefaultProcedures(os.Getenv(config.EnvScriptsDir))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	console := ui.NewConsole(c.App.Reader, c.App.Writer)
	fmt.Fprint(c.App.Writer, banner)

	session := &Session{
		UI:       console,
		FS:       fsys.OS{},
		Keys:     store,
		Analyzer: analyzer.New(analyzer.ExecRunner{}, procedures, analyzer.WithLogger(logger)),
		NewClient: func(ctx context.Context, apiKey string) (llm.Client, error) {
			return llm.NewClient(ctx, sel.Provider, apiKey)
		},
		Logger:      logger,
		ProjectRoot: root,
		APIKey:      config.PresuppliedKey(llm.KeyEnv(sel.Provider)),
		Provider:    sel.Provider,
		Model:       sel.Model,
	}

	_, err = session.Run(c.Context)
	return exitError(console, logger, err)
}

// exitError reports a failed session and converts it to the process exit status.
func exitError(p ui.Prompter, logger log.Logger, err error) error {
	if err == nil {
		return nil
	}
	if IsCancelled(err) {
		p.Cancel("Operation cancelled.")
		return cli.Exit("", 1)
	}
	logger.Error("session failed", "error", err)
	p.Error(err.Error())
	p.Cancel("Operation failed.")
	return cli.Exit("", 1)
}

func projectRoot(dir string) (string, error) {
	if dir == "" {
		return os.Getwd()
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("project directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("project directory: %s is not a directory", abs)
	}
	return abs, nil
}

func modelOrDefault(sel config.Selection) string {
	if sel.Model != "" {
		return sel.Model
	}
	return llm.DefaultModel(sel.Provider)
}
