package prompt_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KartikLabhshetwar/briefli/internal/core/metadata"
	"github.com/KartikLabhshetwar/briefli/internal/core/prompt"
)

func names(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%d", prefix, i+1)
	}
	return out
}

func acme() prompt.Input {
	return prompt.Input{Name: "Acme", Description: "A widget.", License: "MIT"}
}

func TestFormatMetadata_Empty(t *testing.T) {
	got := prompt.FormatMetadata(metadata.New())

	want := "### Project Structure\n\n" +
		"### Codebase Analysis\n\n" +
		"### Architecture Analysis\n\n"
	assert.Equal(t, want, got)
}

func TestFormatMetadata_NilMetadata(t *testing.T) {
	assert.Equal(t, prompt.FormatMetadata(metadata.New()), prompt.FormatMetadata(nil))
}

func TestFormatMetadata_PackageBlock(t *testing.T) {
	m := metadata.New()
	m.Package = &metadata.Package{
		Name:         "acme",
		Version:      "1.0.0",
		Scripts:      metadata.NameList{"build", "test"},
		Dependencies: metadata.NameList(names("dep", 20)),
	}

	got := prompt.FormatMetadata(m)

	want := "### Package Information\n" +
		"- Name: acme\n" +
		"- Version: 1.0.0\n" +
		"- Scripts: build, test\n" +
		"- Dependencies: dep1, dep2, dep3, dep4, dep5, dep6, dep7, dep8, dep9, dep10\n" +
		"\n"
	assert.True(t, strings.HasPrefix(got, want), "got:\n%s", got)
	assert.NotContains(t, got, "dep11")
	assert.NotContains(t, got, "- Description:")
	assert.NotContains(t, got, "- Main entry:")
}

func TestFormatMetadata_EmptyPackageRecordKeepsHeader(t *testing.T) {
	m := metadata.New()
	m.Package = &metadata.Package{}

	got := prompt.FormatMetadata(m)
	assert.True(t, strings.HasPrefix(got, "### Package Information\n\n### Project Structure\n"))
}

func TestFormatMetadata_Caps(t *testing.T) {
	m := metadata.New()
	m.Structure.Directories = names("dir", 30)
	m.Structure.MainFiles = names("main", 12)
	m.Codebase.Languages = []string{"Go", "Shell"}
	m.Codebase.APISignatures = names("sig", 8)
	m.Architecture.Modules = names("mod", 16)
	m.Architecture.EntryPoints = names("entry", 6)
	for i := 1; i <= 11; i++ {
		m.Architecture.Components = append(m.Architecture.Components, metadata.Component{
			Name: fmt.Sprintf("comp%d", i), Type: "module", Path: fmt.Sprintf("src/comp%d", i),
		})
	}

	got := prompt.FormatMetadata(m)

	assert.Contains(t, got, "- Main directories: "+strings.Join(names("dir", 15), ", ")+"\n")
	assert.Contains(t, got, "- Entry files: "+strings.Join(names("main", 10), ", ")+"\n")
	assert.Contains(t, got, "- Languages: Go, Shell\n")
	assert.Contains(t, got, "- API signatures (sample): sig1; sig2; sig3; sig4; sig5\n")
	assert.Contains(t, got, "- Modules: "+strings.Join(names("mod", 15), ", ")+"\n")
	assert.Contains(t, got, "- Entry points: entry1, entry2, entry3, entry4, entry5\n")
	assert.Contains(t, got, "- Key components: "+strings.Join(names("comp", 10), ", ")+"\n")
	assert.NotContains(t, got, "src/comp1", "components render by name only")
	assert.NotContains(t, got, "- Frameworks:")
	assert.NotContains(t, got, "- Patterns:")
	assert.NotContains(t, got, "- Design patterns:")
}

func TestFormatMetadata_PreservesOrder(t *testing.T) {
	m := metadata.New()
	m.Codebase.Frameworks = []string{"Zeta", "Alpha", "Zeta"}

	assert.Contains(t, prompt.FormatMetadata(m), "- Frameworks: Zeta, Alpha, Zeta\n")
}

func TestBuildInitial(t *testing.T) {
	m := metadata.New()
	m.Codebase.Languages = []string{"Go"}

	got := prompt.BuildInitial(acme(), m)

	assert.True(t, strings.HasPrefix(got, "You are an expert technical writer specializing in creating comprehensive"))
	assert.Contains(t, got, "## Project Information\n- **Project Name**: Acme\n- **Description**: A widget.\n- **License**: MIT\n\n## Project Analysis Data\n\n### Project Structure\n")
	assert.Contains(t, got, "- Languages: Go\n\n### Architecture Analysis\n\n\n\n## README Requirements")
	assert.Contains(t, got, "8. **License** - License information (MIT)\n")
	assert.Contains(t, got, "  - Single maintainer: \"## Maintainers\n\n[Maintainer Name]\"\n")
	assert.Contains(t, got, "Do NOT create tables")
	assert.True(t, strings.HasSuffix(got, "includes all required sections."))

	sections := []string{"**Title**", "**Table of Contents**", "**Background**", "**Architecture**",
		"**Install**", "**Usage**", "**Contributing**", "**License**", "**Maintainers**"}
	last := -1
	for _, s := range sections {
		idx := strings.Index(got, s)
		require.Greater(t, idx, last, "section %s out of order", s)
		last = idx
	}
}

func TestBuildInitial_Idempotent(t *testing.T) {
	m := metadata.New()
	m.Package = &metadata.Package{Name: "acme", Dependencies: metadata.NameList{"b", "a"}}

	assert.Equal(t, prompt.BuildInitial(acme(), m), prompt.BuildInitial(acme(), m))
}

func TestBuildImprovement(t *testing.T) {
	draft := "# Acme\n\nA widget."
	got := prompt.BuildImprovement(acme(), metadata.New(), draft, "add usage examples")

	assert.True(t, strings.HasPrefix(got, "You are an expert technical writer specializing in improving README files."))
	assert.Contains(t, got, "## Current README\n\n```markdown\n# Acme\n\nA widget.\n```\n\n")
	assert.Contains(t, got, "## User's Improvement Request\n\nadd usage examples\n\n## Task")
	assert.Contains(t, got, "NOT a table with GitHub/Email columns")
	assert.True(t, strings.HasSuffix(got, "Generate the improved, complete README.md content now."))
}
