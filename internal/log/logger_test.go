package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewText_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewText(&buf, slog.LevelWarn)

	l.Info("hidden")
	l.Warn("analysis failed", "analysis", "structure")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "analysis failed")
	assert.Contains(t, out, "analysis=structure")
}

func TestWith_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	l := NewText(&buf, slog.LevelDebug).With("component", "analyzer")

	l.Debug("running procedure")

	assert.Contains(t, buf.String(), "component=analyzer")
}

func TestNoop(t *testing.T) {
	l := NewNoop()
	l.Debug("x")
	l.Info("x")
	l.Warn("x")
	l.Error("x")
	assert.NotNil(t, l.With("k", "v"))
}

func TestDefault(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	var buf bytes.Buffer
	SetDefault(NewText(&buf, slog.LevelInfo))
	Default().Info("hello")

	assert.Contains(t, buf.String(), "hello")
}
