package llm

import (
	"context"
	"errors"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// ClaudeModel is the default Anthropic model.
const ClaudeModel = "claude-sonnet-4-5-20250929"

// ClaudeClient talks to the Anthropic Messages API.
type ClaudeClient struct {
	client anthropic.Client
	model  string
}

// NewClaudeClient creates an Anthropic client.
func NewClaudeClient(apiKey string, opts ...option.RequestOption) *ClaudeClient {
	all := append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &ClaudeClient{
		client: anthropic.NewClient(all...),
		model:  ClaudeModel,
	}
}

// GenerateText implements Client. System messages are sent as the system
// parameter; the rest keep their order.
func (c *ClaudeClient) GenerateText(ctx context.Context, messages []Message, model string) (string, error) {
	if model == "" {
		model = c.model
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(model),
		MaxTokens:   MaxTokens,
		Temperature: anthropic.Float(Temperature),
		Messages:    toAnthropicMessages(messages),
	}
	if system := systemText(messages); system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", classify("Anthropic", apiErr.StatusCode, err)
		}
		return "", classify("Anthropic", 0, err)
	}

	var text string
	for _, block := range resp.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			text += tb.Text
		}
	}
	if text == "" {
		return "", noContent("Anthropic")
	}
	return text, nil
}

func toAnthropicMessages(messages []Message) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleUser:
			out = append(out, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		case RoleAssistant:
			out = append(out, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		}
	}
	return out
}
