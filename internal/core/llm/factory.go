package llm

import (
	"context"
	"fmt"
	"strings"
)

// Provider names accepted by NewClient.
const (
	ProviderGroq      = "groq"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// Providers lists the supported providers, default first.
var Providers = []string{ProviderGroq, ProviderAnthropic, ProviderGemini}

// KeyEnv returns the provider's conventional API key variable.
func KeyEnv(provider string) string {
	switch provider {
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case ProviderGemini:
		return "GEMINI_API_KEY"
	default:
		return "GROQ_API_KEY"
	}
}

// DisplayName returns the provider's name as shown to users.
func DisplayName(provider string) string {
	switch provider {
	case ProviderAnthropic:
		return "Anthropic"
	case ProviderGemini:
		return "Gemini"
	default:
		return "Groq"
	}
}

// KeyURL returns where users obtain an API key for provider.
func KeyURL(provider string) string {
	switch provider {
	case ProviderAnthropic:
		return "https://console.anthropic.com/settings/keys"
	case ProviderGemini:
		return "https://aistudio.google.com/apikey"
	default:
		return "https://console.groq.com/keys"
	}
}

// DefaultModel returns the model used when none is configured.
func DefaultModel(provider string) string {
	switch provider {
	case ProviderAnthropic:
		return ClaudeModel
	case ProviderGemini:
		return GeminiModel
	default:
		return GroqModel
	}
}

// NewClient creates a client for provider. An empty provider selects Groq.
func NewClient(ctx context.Context, provider, apiKey string) (Client, error) {
	switch strings.ToLower(provider) {
	case "", ProviderGroq:
		return NewGroqClient(apiKey), nil
	case ProviderAnthropic, "claude":
		return NewClaudeClient(apiKey), nil
	case ProviderGemini:
		return NewGeminiClient(ctx, apiKey, "")
	default:
		return nil, fmt.Errorf("unknown LLM provider %q (supported: %s)", provider, strings.Join(Providers, ", "))
	}
}
