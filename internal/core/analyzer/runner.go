package analyzer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Runner executes an external analysis procedure and returns its standard output.
type Runner interface {
	Run(ctx context.Context, command []string) (string, error)
}

// ExecRunner runs procedures as child processes.
type ExecRunner struct{}

// Run starts command[0] with the remaining elements as arguments. A non-zero
// exit is an error carrying the procedure's stderr.
func (ExecRunner) Run(ctx context.Context, command []string) (string, error) {
	if len(command) == 0 {
		return "", errors.New("empty command")
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("failed to execute %s: %s", filepath.Base(command[0]), msg)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Kind names one of the four sub-analyses.
type Kind string

const (
	KindPackage      Kind = "package"
	KindStructure    Kind = "structure"
	KindCodebase     Kind = "codebase"
	KindArchitecture Kind = "architecture"
)

// Kinds lists the sub-analyses in report order.
var Kinds = []Kind{KindPackage, KindStructure, KindCodebase, KindArchitecture}

// Procedures maps each sub-analysis to the command prefix that runs it. The
// project path is appended as the only extra argument.
type Procedures map[Kind][]string

// SelfProcedures runs the analyses through the hidden "introspect" command of
// the executable at exe.
func SelfProcedures(exe string) Procedures {
	p := Procedures{}
	for _, k := range Kinds {
		p[k] = []string{exe, "introspect", string(k)}
	}
	return p
}

// ScriptProcedures runs analyze-<kind>.sh scripts from dir with bash.
func ScriptProcedures(dir string) Procedures {
	p := Procedures{}
	for _, k := range Kinds {
		p[k] = []string{"bash", filepath.Join(dir, "analyze-"+string(k)+".sh")}
	}
	return p
}

// DefaultProcedures picks script procedures when scriptsDir is set and the
// running executable's introspect command otherwise.
func DefaultProcedures(scriptsDir string) (Procedures, error) {
	if scriptsDir != "" {
		return ScriptProcedures(scriptsDir), nil
	}
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("locating briefli executable: %w", err)
	}
	return SelfProcedures(exe), nil
}
