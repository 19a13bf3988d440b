package main

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, logLevel(false, false))
	assert.Equal(t, slog.LevelInfo, logLevel(true, false))
	assert.Equal(t, slog.LevelDebug, logLevel(false, true))
	assert.Equal(t, slog.LevelDebug, logLevel(true, true))
}

func TestNewApp(t *testing.T) {
	app := newApp()
	assert.Equal(t, "briefli", app.Name)
	assert.NotNil(t, app.Action)
	assert.Contains(t, app.Description, "no flags for the standard interactive session")
	for _, f := range app.Flags {
		if rf, ok := f.(interface{ IsRequired() bool }); ok {
			assert.False(t, rf.IsRequired(), f.Names())
		}
	}

	introspect := app.Command("introspect")
	require.NotNil(t, introspect)
	assert.True(t, introspect.Hidden)
	assert.NotNil(t, app.Command("self"))
}

func TestIntrospectThroughApp(t *testing.T) {
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out

	err := app.Run([]string{"briefli", "introspect", "structure", t.TempDir()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"directories":[],"files":[],"mainFiles":[]}`, out.String())
}
