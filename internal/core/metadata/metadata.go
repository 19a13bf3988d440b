// Package metadata defines the project description assembled from the four
// sub-analyses and the JSON decoding rules for their output.
package metadata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ProjectMetadata aggregates the four sub-analyses. Structure, Codebase and
// Architecture are always present; Package is nil when no manifest was found.
type ProjectMetadata struct {
	Package      *Package     `json:"package,omitempty"`
	Structure    Structure    `json:"structure"`
	Codebase     Codebase     `json:"codebase"`
	Architecture Architecture `json:"architecture"`
}

// Package holds manifest-level information about the project.
type Package struct {
	Name            string   `json:"name,omitempty"`
	Version         string   `json:"version,omitempty"`
	Description     string   `json:"description,omitempty"`
	Main            string   `json:"main,omitempty"`
	Scripts         NameList `json:"scripts,omitempty"`
	Dependencies    NameList `json:"dependencies,omitempty"`
	DevDependencies NameList `json:"devDependencies,omitempty"`
}

// Structure lists directories and files relative to the project root.
type Structure struct {
	Directories []string `json:"directories"`
	Files       []string `json:"files"`
	MainFiles   []string `json:"mainFiles"`
}

// Codebase describes languages, frameworks and public API surface.
type Codebase struct {
	Languages     []string `json:"languages"`
	Frameworks    []string `json:"frameworks"`
	Patterns      []string `json:"patterns"`
	APISignatures []string `json:"apiSignatures"`
}

// Architecture describes modules and how they relate.
type Architecture struct {
	Modules        []string       `json:"modules"`
	DesignPatterns []string       `json:"designPatterns"`
	EntryPoints    []string       `json:"entryPoints"`
	Components     []Component    `json:"components"`
	Relationships  []Relationship `json:"relationships"`
}

// Component is a named unit of the architecture.
type Component struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Path string `json:"path"`
}

// Relationship is a directed edge between two components.
type Relationship struct {
	From string `json:"from"`
	To   string `json:"to"`
	Type string `json:"type"`
}

// New returns metadata with every list initialised and no package record.
func New() *ProjectMetadata {
	m := &ProjectMetadata{}
	m.Structure.Normalize()
	m.Codebase.Normalize()
	m.Architecture.Normalize()
	return m
}

// Normalize replaces nil lists with empty ones.
func (s *Structure) Normalize() {
	s.Directories = orEmpty(s.Directories)
	s.Files = orEmpty(s.Files)
	s.MainFiles = orEmpty(s.MainFiles)
}

// Normalize replaces nil lists with empty ones.
func (c *Codebase) Normalize() {
	c.Languages = orEmpty(c.Languages)
	c.Frameworks = orEmpty(c.Frameworks)
	c.Patterns = orEmpty(c.Patterns)
	c.APISignatures = orEmpty(c.APISignatures)
}

// Normalize replaces nil lists with empty ones.
func (a *Architecture) Normalize() {
	a.Modules = orEmpty(a.Modules)
	a.DesignPatterns = orEmpty(a.DesignPatterns)
	a.EntryPoints = orEmpty(a.EntryPoints)
	if a.Components == nil {
		a.Components = []Component{}
	}
	if a.Relationships == nil {
		a.Relationships = []Relationship{}
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// IsEmptySentinel reports whether a procedure's output means "no data".
func IsEmptySentinel(output string) bool {
	trimmed := strings.TrimSpace(output)
	if trimmed == "" {
		return true
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &probe); err != nil {
		return false
	}
	return len(probe) == 0
}

// ParsePackage decodes the package procedure output. The empty-object sentinel
// yields a nil package and no error.
func ParsePackage(output string) (*Package, error) {
	if IsEmptySentinel(output) {
		return nil, nil
	}
	var pkg Package
	if err := json.Unmarshal([]byte(output), &pkg); err != nil {
		return nil, fmt.Errorf("parsing package data: %w", err)
	}
	return &pkg, nil
}

// ParseStructure decodes the structure procedure output, back-filling missing lists.
func ParseStructure(output string) (Structure, error) {
	var s Structure
	if err := decodeObject(output, &s); err != nil {
		return Structure{}, fmt.Errorf("parsing structure data: %w", err)
	}
	s.Normalize()
	return s, nil
}

// ParseCodebase decodes the codebase procedure output, back-filling missing lists.
func ParseCodebase(output string) (Codebase, error) {
	var c Codebase
	if err := decodeObject(output, &c); err != nil {
		return Codebase{}, fmt.Errorf("parsing codebase data: %w", err)
	}
	c.Normalize()
	return c, nil
}

// ParseArchitecture decodes the architecture procedure output, back-filling missing lists.
func ParseArchitecture(output string) (Architecture, error) {
	var a Architecture
	if err := decodeObject(output, &a); err != nil {
		return Architecture{}, fmt.Errorf("parsing architecture data: %w", err)
	}
	a.Normalize()
	return a, nil
}

// decodeObject requires a JSON object; arrays, scalars and empty output are errors.
func decodeObject(output string, v any) error {
	trimmed := bytes.TrimSpace([]byte(output))
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return fmt.Errorf("expected a JSON object")
	}
	return json.Unmarshal(trimmed, v)
}
