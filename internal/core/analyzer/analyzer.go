// Package analyzer gathers project metadata by running the four external
// analysis procedures concurrently and normalising their JSON output.
//
// A failing procedure never fails the analysis: its slice of the metadata
// falls back to empty defaults and a warning is logged.
package analyzer

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/KartikLabhshetwar/briefli/internal/core/metadata"
	"github.com/KartikLabhshetwar/briefli/internal/log"
)

// Analyzer runs the sub-analyses through a Runner.
type Analyzer struct {
	runner     Runner
	procedures Procedures
	logger     log.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger used for degradation warnings.
func WithLogger(l log.Logger) Option {
	return func(a *Analyzer) {
		a.logger = l
	}
}

// New creates an Analyzer.
func New(runner Runner, procedures Procedures, opts ...Option) *Analyzer {
	a := &Analyzer{
		runner:     runner,
		procedures: procedures,
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze runs all four sub-analyses against projectPath and assembles the
// result once every one has settled. Individual failures degrade to defaults;
// only a failure inside the adapter itself is returned.
func (a *Analyzer) Analyze(ctx context.Context, projectPath string) (*metadata.ProjectMetadata, error) {
	if projectPath == "" {
		projectPath = "."
	}

	result := metadata.New()
	g, gctx := errgroup.WithContext(ctx)

	// Each goroutine owns exactly one field of result.
	g.Go(func() error {
		return guard(KindPackage, func() { result.Package = a.analyzePackage(gctx, projectPath) })
	})
	g.Go(func() error {
		return guard(KindStructure, func() { result.Structure = a.analyzeStructure(gctx, projectPath) })
	})
	g.Go(func() error {
		return guard(KindCodebase, func() { result.Codebase = a.analyzeCodebase(gctx, projectPath) })
	})
	g.Go(func() error {
		return guard(KindArchitecture, func() { result.Architecture = a.analyzeArchitecture(gctx, projectPath) })
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to analyze project: %w", err)
	}
	return result, nil
}

func (a *Analyzer) analyzePackage(ctx context.Context, projectPath string) *metadata.Package {
	out, err := a.run(ctx, KindPackage, projectPath)
	if err == nil {
		var pkg *metadata.Package
		if pkg, err = metadata.ParsePackage(out); err == nil {
			return pkg
		}
	}
	a.warn(KindPackage, err)
	return nil
}

func (a *Analyzer) analyzeStructure(ctx context.Context, projectPath string) metadata.Structure {
	out, err := a.run(ctx, KindStructure, projectPath)
	if err == nil {
		var s metadata.Structure
		if s, err = metadata.ParseStructure(out); err == nil {
			return s
		}
	}
	a.warn(KindStructure, err)
	return metadata.New().Structure
}

func (a *Analyzer) analyzeCodebase(ctx context.Context, projectPath string) metadata.Codebase {
	out, err := a.run(ctx, KindCodebase, projectPath)
	if err == nil {
		var c metadata.Codebase
		if c, err = metadata.ParseCodebase(out); err == nil {
			return c
		}
	}
	a.warn(KindCodebase, err)
	return metadata.New().Codebase
}

func (a *Analyzer) analyzeArchitecture(ctx context.Context, projectPath string) metadata.Architecture {
	out, err := a.run(ctx, KindArchitecture, projectPath)
	if err == nil {
		var arch metadata.Architecture
		if arch, err = metadata.ParseArchitecture(out); err == nil {
			return arch
		}
	}
	a.warn(KindArchitecture, err)
	return metadata.New().Architecture
}

func (a *Analyzer) run(ctx context.Context, kind Kind, projectPath string) (string, error) {
	prefix, ok := a.procedures[kind]
	if !ok || len(prefix) == 0 {
		return "", fmt.Errorf("no procedure configured for %s analysis", kind)
	}
	command := make([]string, 0, len(prefix)+1)
	command = append(command, prefix...)
	command = append(command, projectPath)

	logger := a.logger.With("analysis", kind)
	logger.Debug("running analysis procedure", "command", command)
	out, err := a.runner.Run(ctx, command)
	if err != nil {
		return "", err
	}
	logger.Debug("analysis procedure finished", "bytes", len(out))
	return out, nil
}

func (a *Analyzer) warn(kind Kind, err error) {
	a.logger.With("analysis", kind).Warn("analysis failed, using defaults", "error", err)
}

// guard turns a panic in a sub-analysis into an error for the whole analysis.
func guard(kind Kind, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s analysis: %v", kind, r)
		}
	}()
	fn()
	return nil
}
