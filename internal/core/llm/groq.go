package llm

import (
	"context"
	"errors"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	// GroqBaseURL is Groq's OpenAI-compatible endpoint.
	GroqBaseURL = "https://api.groq.com/openai/v1/"
	// GroqModel is the default Groq model.
	GroqModel = "openai/gpt-oss-120b"
)

// GroqClient talks to Groq through its OpenAI-compatible chat completions API.
type GroqClient struct {
	client openai.Client
	model  string
}

// NewGroqClient creates a Groq client. Extra options (base URL, retries,
// HTTP client) are applied after the defaults.
func NewGroqClient(apiKey string, opts ...option.RequestOption) *GroqClient {
	all := append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(GroqBaseURL),
	}, opts...)
	return &GroqClient{
		client: openai.NewClient(all...),
		model:  GroqModel,
	}
}

// GenerateText implements Client.
func (c *GroqClient) GenerateText(ctx context.Context, messages []Message, model string) (string, error) {
	if model == "" {
		model = c.model
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(model),
		Messages:    toOpenAIMessages(messages),
		Temperature: openai.Float(Temperature),
		MaxTokens:   openai.Int(MaxTokens),
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", classify("Groq", apiErr.StatusCode, err)
		}
		return "", classify("Groq", 0, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", noContent("Groq")
	}
	return resp.Choices[0].Message.Content, nil
}

func toOpenAIMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}
