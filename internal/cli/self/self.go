// Package self implements "briefli self update", which replaces the running
// binary with the latest GitHub release.
package self

import (
	"fmt"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/urfave/cli/v2"

	"github.com/KartikLabhshetwar/briefli/internal/log"
	"github.com/KartikLabhshetwar/briefli/internal/ui"
)

// DefaultRepository is the release source used without --source.
const DefaultRepository = "KartikLabhshetwar/briefli"

// NewSelfCommand creates the "self" command group.
func NewSelfCommand() *cli.Command {
	return &cli.Command{
		Name:  "self",
		Usage: "Manage the briefli binary itself",
		Subcommands: []*cli.Command{
			{
				Name:  "update",
				Usage: "Update briefli to the latest release",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "Install without asking for confirmation",
					},
					&cli.BoolFlag{
						Name:  "check",
						Usage: "Only report whether an update is available",
					},
					&cli.StringFlag{
						Name:  "source",
						Usage: "GitHub release source as 'owner/repo'",
						Value: DefaultRepository,
					},
				},
				Action: updateAction,
			},
		},
	}
}

func updateAction(c *cli.Context) error {
	logger := log.Default()
	console := ui.NewConsole(c.App.Reader, c.App.Writer)

	current, err := parseVersion(c.App.Version)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	slug, err := parseSlug(c.String("source"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	logger.Info("checking for updates", "current", current.String(), "source", slug)

	ghSource, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return cli.Exit(fmt.Sprintf("creating GitHub source: %v", err), 1)
	}
	updater, err := selfupdate.NewUpdater(selfupdate.Config{Source: ghSource})
	if err != nil {
		return cli.Exit(fmt.Sprintf("initializing updater: %v", err), 1)
	}

	spin := console.Spinner()
	spin.Start("Checking for the latest release...")
	latest, found, err := updater.DetectLatest(c.Context, selfupdate.ParseSlug(slug))
	if err != nil {
		spin.Stop("Update check failed")
		return cli.Exit(fmt.Sprintf("detecting latest version: %v", err), 1)
	}
	if !found || !latest.GreaterThan(current.String()) {
		spin.Stop(fmt.Sprintf("briefli %s is already the latest version", current))
		return nil
	}
	spin.Stop(fmt.Sprintf("New version available: %s (current: %s)", latest.Version(), current))
	logger.Debug("latest release", "url", latest.URL, "asset", latest.AssetURL)

	if c.Bool("check") {
		return nil
	}
	if !c.Bool("yes") {
		ok, err := console.Confirm(c.Context, "Do you want to update?", false)
		if err != nil || !ok {
			console.Outro("Update cancelled.")
			return nil
		}
	}

	exe, err := os.Executable()
	if err != nil {
		return cli.Exit(fmt.Sprintf("locating executable: %v", err), 1)
	}

	spin = console.Spinner()
	spin.Start(fmt.Sprintf("Updating to %s...", latest.Version()))
	if err := updater.UpdateTo(c.Context, latest, exe); err != nil {
		spin.Stop("Update failed")
		return cli.Exit(fmt.Sprintf("updating %s: %v", exe, err), 1)
	}
	spin.Stop(fmt.Sprintf("Updated to %s", latest.Version()))
	return nil
}

// parseVersion accepts "vX.Y.Z" or "X.Y.Z".
func parseVersion(v string) (*semver.Version, error) {
	parsed, err := semver.NewVersion(strings.TrimPrefix(v, "v"))
	if err != nil {
		return nil, fmt.Errorf("current version %q is not a semantic version: %w", v, err)
	}
	return parsed, nil
}

func parseSlug(source string) (string, error) {
	owner, repo, ok := strings.Cut(source, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", fmt.Errorf("invalid --source %q: expected 'owner/repo'", source)
	}
	return source, nil
}
