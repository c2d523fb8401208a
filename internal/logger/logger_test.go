package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel_SetByName(t *testing.T) {
	t.Cleanup(func() { Level.Set(slog.LevelInfo) })

	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warning": slog.LevelWarn,
		"err":     slog.LevelError,
	}
	for name, want := range tests {
		require.NoError(t, Level.SetByName(name), name)
		assert.Equal(t, want, Level.lvl.Level(), name)
	}

	assert.Error(t, Level.SetByName("verbose"))
}

func TestNew_NonTerminalWritesLogfmt(t *testing.T) {
	t.Cleanup(func() { Level.Set(slog.LevelInfo) })
	Level.Set(slog.LevelInfo)

	var buf bytes.Buffer
	l := New(&buf)
	l.Debug("hidden")
	l.Info("resolved defaults", "view", "LABS_BOXPLOT")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "level=info")
	assert.Contains(t, out, "view=LABS_BOXPLOT")
}

func TestDiscard(t *testing.T) {
	assert.False(t, Discard().Enabled(context.Background(), slog.LevelError))
}
