// Package readme drafts and revises README documents by combining the prompt
// builder with an llm.Client.
package readme

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/KartikLabhshetwar/briefli/internal/core/llm"
	"github.com/KartikLabhshetwar/briefli/internal/core/metadata"
	"github.com/KartikLabhshetwar/briefli/internal/core/prompt"
)

const (
	initialInstruction     = "Please generate the complete README.md file following the Standard Readme specification."
	improvementInstruction = "Please regenerate the README.md file incorporating the following improvements: "
)

// Generator produces README drafts.
type Generator struct {
	client llm.Client
	model  string
}

// NewGenerator returns a Generator using client. An empty model selects the
// client's default.
func NewGenerator(client llm.Client, model string) *Generator {
	return &Generator{client: client, model: model}
}

// GenerateInitial returns the first draft for the project.
func (g *Generator) GenerateInitial(ctx context.Context, in prompt.Input, m *metadata.ProjectMetadata) (string, error) {
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: prompt.BuildInitial(in, m)},
		{Role: llm.RoleUser, Content: initialInstruction},
	}
	text, err := g.client.GenerateText(ctx, messages, g.model)
	if err != nil {
		return "", fmt.Errorf("failed to generate README: %w", err)
	}
	return ExtractContent(text), nil
}

// Improve regenerates draft with feedback applied. The result replaces the
// draft; it is never merged with it.
func (g *Generator) Improve(ctx context.Context, in prompt.Input, m *metadata.ProjectMetadata, draft, feedback string) (string, error) {
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: prompt.BuildImprovement(in, m, draft, feedback)},
		{Role: llm.RoleUser, Content: improvementInstruction + feedback},
	}
	text, err := g.client.GenerateText(ctx, messages, g.model)
	if err != nil {
		return "", fmt.Errorf("failed to improve README: %w", err)
	}
	return ExtractContent(text), nil
}

var fenced = regexp.MustCompile("(?s)^```(?:markdown|md)?\\s*\\n(.*?)\\n```$")

// ExtractContent strips one enclosing ``` fence, optionally tagged markdown or
// md, from a model response. Text without an enclosing fence is returned
// trimmed.
func ExtractContent(text string) string {
	trimmed := strings.TrimSpace(text)
	if m := fenced.FindStringSubmatch(trimmed); m != nil && m[1] != "" {
		return strings.TrimSpace(m[1])
	}
	return trimmed
}
