package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	openaioption "github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var conversation = []Message{
	{Role: RoleSystem, Content: "You are an expert technical writer."},
	{Role: RoleUser, Content: "Please generate the complete README.md file."},
}

// recorder is an httptest handler that captures the last request body and
// replies with a fixed status and body.
type recorder struct {
	status int
	body   string
	path   string
	req    map[string]any
}

func (r *recorder) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.path = req.URL.Path
	data, _ := io.ReadAll(req.Body)
	r.req = map[string]any{}
	_ = json.Unmarshal(data, &r.req)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(r.status)
	_, _ = io.WriteString(w, r.body)
}

func serve(t *testing.T, rec *recorder) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(rec)
	t.Cleanup(srv.Close)
	return srv
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		status int
		err    error
		want   error
	}{
		{"status 401", 401, errors.New("boom"), ErrInvalidCredential},
		{"status 403", 403, errors.New("boom"), ErrInvalidCredential},
		{"status 429", 429, errors.New("boom"), ErrRateLimited},
		{"message 401", 0, errors.New("request failed: 401 Unauthorized"), ErrInvalidCredential},
		{"message authentication", 0, errors.New("Authentication failed"), ErrInvalidCredential},
		{"message 429", 0, errors.New("got 429"), ErrRateLimited},
		{"message rate limit", 0, errors.New("Rate limit reached for model"), ErrRateLimited},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, classify("Groq", tt.status, tt.err), tt.want)
		})
	}
}

func TestClassify_Generic(t *testing.T) {
	upstream := errors.New("connection reset by peer")
	err := classify("Groq", 500, upstream)

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "Groq", te.Provider)
	assert.ErrorIs(t, err, upstream)
	assert.Equal(t, "Groq API error: connection reset by peer", err.Error())
}

func TestSystemText(t *testing.T) {
	msgs := []Message{
		{Role: RoleSystem, Content: "a"},
		{Role: RoleUser, Content: "u"},
		{Role: RoleSystem, Content: "b"},
	}
	assert.Equal(t, "a\n\nb", systemText(msgs))
	assert.Equal(t, "", systemText(msgs[1:2]))
}

func TestGroqClient_GenerateText(t *testing.T) {
	rec := &recorder{status: 200, body: `{
		"id": "chatcmpl-1", "object": "chat.completion", "created": 1, "model": "openai/gpt-oss-120b",
		"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "# Acme"}}]
	}`}
	srv := serve(t, rec)
	client := NewGroqClient("gsk_test_key_1234567890", openaioption.WithBaseURL(srv.URL+"/"), openaioption.WithMaxRetries(0))

	got, err := client.GenerateText(context.Background(), conversation, "")
	require.NoError(t, err)
	assert.Equal(t, "# Acme", got)

	assert.Equal(t, "/chat/completions", rec.path)
	assert.Equal(t, GroqModel, rec.req["model"])
	assert.InDelta(t, Temperature, rec.req["temperature"], 1e-9)
	assert.EqualValues(t, MaxTokens, rec.req["max_tokens"])
	msgs, ok := rec.req["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "user", msgs[1].(map[string]any)["role"])
}

func TestGroqClient_ExplicitModel(t *testing.T) {
	rec := &recorder{status: 200, body: `{"choices":[{"index":0,"message":{"role":"assistant","content":"ok"}}]}`}
	srv := serve(t, rec)
	client := NewGroqClient("key", openaioption.WithBaseURL(srv.URL+"/"), openaioption.WithMaxRetries(0))

	_, err := client.GenerateText(context.Background(), conversation, "llama-3.3-70b-versatile")
	require.NoError(t, err)
	assert.Equal(t, "llama-3.3-70b-versatile", rec.req["model"])
}

func TestGroqClient_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"unauthorized", 401, `{"error":{"message":"Invalid API Key","type":"invalid_request_error"}}`, ErrInvalidCredential},
		{"throttled", 429, `{"error":{"message":"Rate limit reached","type":"tokens"}}`, ErrRateLimited},
		{"empty content", 200, `{"choices":[{"index":0,"message":{"role":"assistant","content":""}}]}`, ErrNoContent},
		{"no choices", 200, `{"choices":[]}`, ErrNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(t, &recorder{status: tt.status, body: tt.body})
			client := NewGroqClient("key", openaioption.WithBaseURL(srv.URL+"/"), openaioption.WithMaxRetries(0))

			_, err := client.GenerateText(context.Background(), conversation, "")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGroqClient_ServerError(t *testing.T) {
	srv := serve(t, &recorder{status: 500, body: `{"error":{"message":"internal"}}`})
	client := NewGroqClient("key", openaioption.WithBaseURL(srv.URL+"/"), openaioption.WithMaxRetries(0))

	_, err := client.GenerateText(context.Background(), conversation, "")
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "Groq", te.Provider)
}

func TestClaudeClient_GenerateText(t *testing.T) {
	rec := &recorder{status: 200, body: `{
		"id": "msg_1", "type": "message", "role": "assistant", "model": "claude-sonnet-4-5-20250929",
		"content": [{"type": "text", "text": "# Acme"}, {"type": "text", "text": "\n\nA widget."}],
		"stop_reason": "end_turn", "usage": {"input_tokens": 10, "output_tokens": 5}
	}`}
	srv := serve(t, rec)
	client := NewClaudeClient("sk-ant-test-key-123456", anthropicoption.WithBaseURL(srv.URL), anthropicoption.WithMaxRetries(0))

	got, err := client.GenerateText(context.Background(), conversation, "")
	require.NoError(t, err)
	assert.Equal(t, "# Acme\n\nA widget.", got)

	assert.Equal(t, "/v1/messages", rec.path)
	assert.Equal(t, ClaudeModel, rec.req["model"])
	assert.EqualValues(t, MaxTokens, rec.req["max_tokens"])
	system, ok := rec.req["system"].([]any)
	require.True(t, ok)
	require.Len(t, system, 1)
	assert.Equal(t, "You are an expert technical writer.", system[0].(map[string]any)["text"])
	msgs, ok := rec.req["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 1, "system messages are not sent as conversation turns")
}

func TestClaudeClient_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"unauthorized", 401, `{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`, ErrInvalidCredential},
		{"throttled", 429, `{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`, ErrRateLimited},
		{"empty content", 200, `{"id":"msg_1","type":"message","role":"assistant","content":[],"stop_reason":"end_turn"}`, ErrNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(t, &recorder{status: tt.status, body: tt.body})
			client := NewClaudeClient("key", anthropicoption.WithBaseURL(srv.URL), anthropicoption.WithMaxRetries(0))

			_, err := client.GenerateText(context.Background(), conversation, "")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGeminiClient_GenerateText(t *testing.T) {
	rec := &recorder{status: 200, body: `{
		"candidates": [{"content": {"role": "model", "parts": [{"text": "# Acme"}]}, "finishReason": "STOP"}]
	}`}
	srv := serve(t, rec)
	client, err := NewGeminiClient(context.Background(), "gemini-test-key-123456", srv.URL)
	require.NoError(t, err)

	got, err := client.GenerateText(context.Background(), conversation, "")
	require.NoError(t, err)
	assert.Equal(t, "# Acme", got)

	assert.True(t, strings.HasSuffix(rec.path, "models/"+GeminiModel+":generateContent"), rec.path)
	_, hasSystem := rec.req["systemInstruction"]
	assert.True(t, hasSystem)
	contents, ok := rec.req["contents"].([]any)
	require.True(t, ok)
	assert.Len(t, contents, 1)
}

func TestGeminiClient_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"unauthorized", 401, `{"error":{"code":401,"message":"API key not valid","status":"UNAUTHENTICATED"}}`, ErrInvalidCredential},
		{"throttled", 429, `{"error":{"code":429,"message":"Resource exhausted","status":"RESOURCE_EXHAUSTED"}}`, ErrRateLimited},
		{"empty content", 200, `{"candidates":[]}`, ErrNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(t, &recorder{status: tt.status, body: tt.body})
			client, err := NewGeminiClient(context.Background(), "key", srv.URL)
			require.NoError(t, err)

			_, err = client.GenerateText(context.Background(), conversation, "")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewClient(t *testing.T) {
	ctx := context.Background()

	c, err := NewClient(ctx, "", "key")
	require.NoError(t, err)
	assert.IsType(t, &GroqClient{}, c)

	c, err = NewClient(ctx, "Anthropic", "key")
	require.NoError(t, err)
	assert.IsType(t, &ClaudeClient{}, c)

	c, err = NewClient(ctx, "gemini", "key")
	require.NoError(t, err)
	assert.IsType(t, &GeminiClient{}, c)

	_, err = NewClient(ctx, "ollama", "key")
	assert.ErrorContains(t, err, "unknown LLM provider")
}

func TestProviderDefaults(t *testing.T) {
	assert.Equal(t, "GROQ_API_KEY", KeyEnv(ProviderGroq))
	assert.Equal(t, "ANTHROPIC_API_KEY", KeyEnv(ProviderAnthropic))
	assert.Equal(t, "GEMINI_API_KEY", KeyEnv(ProviderGemini))
	assert.Equal(t, "openai/gpt-oss-120b", DefaultModel(""))
	assert.Equal(t, ClaudeModel, DefaultModel(ProviderAnthropic))
}
