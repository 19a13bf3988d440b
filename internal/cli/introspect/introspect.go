// Package introspect exposes the project analyses as a hidden command. The
// analyzer runs it as a child process, one invocation per analysis kind.
package introspect

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/KartikLabhshetwar/briefli/internal/core/introspect"
)

// NewCommand returns the hidden "introspect" command.
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:      "introspect",
		Usage:     "Print one project analysis as JSON",
		ArgsUsage: fmt.Sprintf("<%s> <project-path>", strings.Join(introspect.Kinds(), "|")),
		Hidden:    true,
		Action:    action,
	}
}

func action(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.Exit(fmt.Sprintf("usage: %s introspect %s", c.App.Name, c.Command.ArgsUsage), 2)
	}
	kind, root := c.Args().Get(0), c.Args().Get(1)
	if err := introspect.Write(c.App.Writer, kind, root); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return nil
}
