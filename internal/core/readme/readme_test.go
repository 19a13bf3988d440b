package readme_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KartikLabhshetwar/briefli/internal/core/llm"
	"github.com/KartikLabhshetwar/briefli/internal/core/metadata"
	"github.com/KartikLabhshetwar/briefli/internal/core/prompt"
	"github.com/KartikLabhshetwar/briefli/internal/core/readme"
)

// fakeClient returns canned responses and records every call.
type fakeClient struct {
	responses []string
	err       error
	calls     [][]llm.Message
	models    []string
}

func (f *fakeClient) GenerateText(_ context.Context, messages []llm.Message, model string) (string, error) {
	f.calls = append(f.calls, messages)
	f.models = append(f.models, model)
	if f.err != nil {
		return "", f.err
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

var acme = prompt.Input{Name: "Acme", Description: "A widget.", License: "MIT"}

func TestGenerateInitial(t *testing.T) {
	client := &fakeClient{responses: []string{"```markdown\n# Acme\n...\n```"}}
	g := readme.NewGenerator(client, "")

	got, err := g.GenerateInitial(context.Background(), acme, metadata.New())
	require.NoError(t, err)
	assert.Equal(t, "# Acme\n...", got)

	require.Len(t, client.calls, 1)
	msgs := client.calls[0]
	require.Len(t, msgs, 2)
	assert.Equal(t, llm.RoleSystem, msgs[0].Role)
	assert.Equal(t, prompt.BuildInitial(acme, metadata.New()), msgs[0].Content)
	assert.Equal(t, llm.RoleUser, msgs[1].Role)
	assert.Equal(t, "Please generate the complete README.md file following the Standard Readme specification.", msgs[1].Content)
	assert.Equal(t, "", client.models[0])
}

func TestImprove(t *testing.T) {
	client := &fakeClient{responses: []string{"# Acme\n\n## Usage\n\nacme run"}}
	g := readme.NewGenerator(client, "llama-3.3-70b-versatile")

	got, err := g.Improve(context.Background(), acme, metadata.New(), "# Acme\n...", "add usage examples")
	require.NoError(t, err)
	assert.Equal(t, "# Acme\n\n## Usage\n\nacme run", got)

	msgs := client.calls[0]
	assert.Contains(t, msgs[0].Content, "add usage examples")
	assert.Contains(t, msgs[0].Content, "```markdown\n# Acme\n...\n```")
	assert.Equal(t, "Please regenerate the README.md file incorporating the following improvements: add usage examples", msgs[1].Content)
	assert.Equal(t, "llama-3.3-70b-versatile", client.models[0])
}

func TestGeneratorErrorsKeepKind(t *testing.T) {
	g := readme.NewGenerator(&fakeClient{err: llm.ErrRateLimited}, "")

	_, err := g.GenerateInitial(context.Background(), acme, metadata.New())
	assert.ErrorIs(t, err, llm.ErrRateLimited)
	assert.ErrorContains(t, err, "failed to generate README")

	_, err = g.Improve(context.Background(), acme, metadata.New(), "draft", "more")
	assert.ErrorIs(t, err, llm.ErrRateLimited)
	assert.ErrorContains(t, err, "failed to improve README")

	upstream := &llm.TransportError{Provider: "Groq", Err: errors.New("bad gateway")}
	_, err = readme.NewGenerator(&fakeClient{err: upstream}, "").GenerateInitial(context.Background(), acme, metadata.New())
	var te *llm.TransportError
	assert.ErrorAs(t, err, &te)
}

func TestExtractContent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"markdown fence", "```markdown\n# Title\n\nBody\n```", "# Title\n\nBody"},
		{"md fence", "```md\n# Title\n```", "# Title"},
		{"bare fence", "```\n# Title\n```", "# Title"},
		{"surrounding whitespace", "\n\n  ```markdown\n# Title\n```  \n", "# Title"},
		{"no fence", "  # Title\n\nBody  \n", "# Title\n\nBody"},
		{"inner fences kept", "```markdown\n# T\n\n```sh\nmake\n```\n```", "# T\n\n```sh\nmake\n```"},
		{"other language untouched", "```go\npackage main\n```", "```go\npackage main\n```"},
		{"fence not enclosing", "Intro\n```markdown\n# T\n```", "Intro\n```markdown\n# T\n```"},
		{"empty fence", "```markdown\n\n```", "```markdown\n\n```"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, readme.ExtractContent(tt.in))
		})
	}
}

func TestExtractContent_FenceRoundTrip(t *testing.T) {
	body := "# Acme\n\nA widget.\n\n## Install\n\n```sh\ngo install ./...\n```"
	assert.Equal(t, readme.ExtractContent(body), readme.ExtractContent("```markdown\n"+body+"\n```"))
}
