// Package llm sends chat-style conversations to a hosted language model and
// returns the plain-text completion. Providers translate the common Message
// type to their SDK's format and map transport failures to the sentinel
// errors in errors.go.
package llm

import (
	"context"
)

// Sampling parameters shared by every provider.
const (
	Temperature = 0.7
	MaxTokens   = 4000
)

// Role identifies the sender of a message in a conversation.
type Role string

const (
	// RoleSystem carries instructions for the model.
	RoleSystem Role = "system"
	// RoleUser indicates a message from the user or application.
	RoleUser Role = "user"
	// RoleAssistant indicates a previous model response.
	RoleAssistant Role = "assistant"
)

// Message is a single turn of a conversation.
type Message struct {
	Role    Role
	Content string
}

// Client generates text from a conversation.
type Client interface {
	// GenerateText sends messages in one remote call and returns the text
	// content of the response. An empty model selects the provider default.
	GenerateText(ctx context.Context, messages []Message, model string) (string, error)
}

// systemText joins the content of every system message, in order.
func systemText(messages []Message) string {
	var out string
	for _, m := range messages {
		if m.Role != RoleSystem {
			continue
		}
		if out != "" {
			out += "\n\n"
		}
		out += m.Content
	}
	return out
}
