package prompt

import (
	"strings"

	"github.com/KartikLabhshetwar/briefli/internal/core/metadata"
)

// FormatMetadata renders the bounded digest of m embedded in both prompts.
// Lists are cut to their first N entries in their given order; a bullet is
// emitted only when its list or field is non-empty. The package block is
// omitted entirely when no manifest was found.
func FormatMetadata(m *metadata.ProjectMetadata) string {
	if m == nil {
		m = metadata.New()
	}
	var b strings.Builder

	if p := m.Package; p != nil {
		b.WriteString("### Package Information\n")
		field(&b, "Name", p.Name)
		field(&b, "Version", p.Version)
		field(&b, "Description", p.Description)
		field(&b, "Main entry", p.Main)
		list(&b, "Scripts", p.Scripts, 0, ", ")
		list(&b, "Dependencies", p.Dependencies, MaxDependencies, ", ")
		b.WriteString("\n")
	}

	b.WriteString("### Project Structure\n")
	list(&b, "Main directories", m.Structure.Directories, MaxDirectories, ", ")
	list(&b, "Entry files", m.Structure.MainFiles, MaxMainFiles, ", ")
	b.WriteString("\n")

	b.WriteString("### Codebase Analysis\n")
	list(&b, "Languages", m.Codebase.Languages, 0, ", ")
	list(&b, "Frameworks", m.Codebase.Frameworks, 0, ", ")
	list(&b, "Patterns", m.Codebase.Patterns, 0, ", ")
	list(&b, "API signatures (sample)", m.Codebase.APISignatures, MaxAPISignatures, "; ")
	b.WriteString("\n")

	b.WriteString("### Architecture Analysis\n")
	list(&b, "Modules", m.Architecture.Modules, MaxModules, ", ")
	list(&b, "Design patterns", m.Architecture.DesignPatterns, 0, ", ")
	list(&b, "Entry points", m.Architecture.EntryPoints, MaxEntryPoints, ", ")
	list(&b, "Key components", componentNames(m.Architecture.Components), MaxComponents, ", ")
	b.WriteString("\n")

	return b.String()
}

func field(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	b.WriteString("- " + label + ": " + value + "\n")
}

// list writes a bullet joining the first limit items of items; limit 0 means
// no cap.
func list(b *strings.Builder, label string, items []string, limit int, sep string) {
	if len(items) == 0 {
		return
	}
	b.WriteString("- " + label + ": " + strings.Join(head(items, limit), sep) + "\n")
}

func head(items []string, n int) []string {
	if n <= 0 || len(items) <= n {
		return items
	}
	return items[:n]
}

func componentNames(components []metadata.Component) []string {
	names := make([]string, 0, len(components))
	for _, c := range components {
		names = append(names, c.Name)
	}
	return names
}
