// Package prompt renders project metadata and user input into the system
// prompts sent to the language model. Every function here is pure: the same
// arguments always produce byte-identical output.
package prompt

import (
	"strings"

	"github.com/KartikLabhshetwar/briefli/internal/core/metadata"
)

// Truncation caps applied when rendering the metadata digest.
const (
	MaxDependencies  = 10
	MaxDirectories   = 15
	MaxMainFiles     = 10
	MaxModules       = 15
	MaxEntryPoints   = 5
	MaxComponents    = 10
	MaxAPISignatures = 5
)

// Input is the user-supplied project description.
type Input struct {
	Name        string
	Description string
	License     string
}

const maintainerSingle = "\"## Maintainers\n\n[Maintainer Name]\""
const maintainerMultiple = "\"## Maintainers\n\n- [Maintainer Name 1]\n- [Maintainer Name 2]\""

// BuildInitial returns the system prompt for the first README draft.
func BuildInitial(in Input, m *metadata.ProjectMetadata) string {
	var b strings.Builder

	b.WriteString(`You are an expert technical writer specializing in creating comprehensive, standardized README files for open-source projects. Your task is to generate a high-quality README.md file following the Standard Readme specification (https://github.com/RichardLitt/standard-readme).

`)
	writeProjectInfo(&b, in, m)
	b.WriteString(`

## README Requirements

Generate a complete README.md file that includes the following sections in this exact order:

1. **Title** - Project name as main heading, optionally with a badge (e.g., standard-readme compliant badge)
2. **Table of Contents** - Links to all major sections
3. **Background** - Explain what the project is, why it exists, and what problem it solves
4. **Architecture** - Provide a comprehensive architecture section that includes:
   - Project structure overview
   - Module organization and purpose
   - Design patterns used
   - Key components and their relationships
   - Entry points and how they connect
   - Technology stack overview
5. **Install** - Detailed installation instructions based on the package.json and project structure
6. **Usage** - Examples of how to use the project, including code snippets if applicable
7. **Contributing** - Guidelines for contributors
8. **License** - License information (`)
	b.WriteString(in.License)
	b.WriteString(`)
9. **Maintainers** (optional) - If applicable, list only maintainer names in a simple format, not a table. Format: "- [Maintainer Name]" or just "Maintainer Name" if only one.

## Writing Guidelines

- Use clear, concise, and professional language
- Include practical code examples where relevant
- Make the README accessible to both beginners and experienced developers
- Follow markdown best practices
- Ensure all sections are well-structured and informative
- The Architecture section should be detailed enough for developers to understand the project structure without reading the code
- Use proper markdown formatting for code blocks, lists, and emphasis
- For the Maintainers section: ONLY show maintainer names in a simple list format. Do NOT create tables with columns for GitHub, Email, etc. Format examples:
  - Single maintainer: `)
	b.WriteString(maintainerSingle)
	b.WriteString("\n  - Multiple maintainers: ")
	b.WriteString(maintainerMultiple)
	b.WriteString(`

Generate the complete README.md content now, ensuring it follows the Standard Readme specification and includes all required sections.`)

	return b.String()
}

// BuildImprovement returns the system prompt for regenerating draft with the
// user's feedback applied.
func BuildImprovement(in Input, m *metadata.ProjectMetadata, draft, feedback string) string {
	var b strings.Builder

	b.WriteString(`You are an expert technical writer specializing in improving README files. You need to regenerate the README.md file with specific improvements requested by the user.

`)
	writeProjectInfo(&b, in, m)
	b.WriteString("\n\n## Current README\n\n```markdown\n")
	b.WriteString(draft)
	b.WriteString("\n```\n\n## User's Improvement Request\n\n")
	b.WriteString(feedback)
	b.WriteString(`

## Task

Please regenerate the complete README.md file that:
1. Incorporates the user's requested improvements
2. Maintains all existing good content from the current README
3. Follows the Standard Readme specification (https://github.com/RichardLitt/standard-readme)
4. Includes all required sections: Title, Table of Contents, Background, Architecture, Install, Usage, Contributing, License
5. Uses clear, professional markdown formatting
6. For Maintainers section: Only show maintainer names in a simple list format, NOT a table with GitHub/Email columns

Generate the improved, complete README.md content now.`)

	return b.String()
}

// writeProjectInfo renders the project information block followed by the
// metadata digest. Both prompt variants share it.
func writeProjectInfo(b *strings.Builder, in Input, m *metadata.ProjectMetadata) {
	b.WriteString("## Project Information\n")
	b.WriteString("- **Project Name**: " + in.Name + "\n")
	b.WriteString("- **Description**: " + in.Description + "\n")
	b.WriteString("- **License**: " + in.License + "\n")
	b.WriteString("\n## Project Analysis Data\n\n")
	b.WriteString(FormatMetadata(m))
}
