package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"WARNING", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"invalid", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.level))
		})
	}
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	l := NewText("info", &buf)
	l.Infow("test message", "n", 20)
	require.NoError(t, l.Sync())
	out := buf.String()
	assert.Contains(t, out, "test message")
	assert.Contains(t, out, `"n": 20`)
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New("debug", &buf)
	l.Debugw("solved", "m", 3, "solutions", 12)
	require.NoError(t, l.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "solved", entry["msg"])
	assert.Equal(t, "debug", entry["level"])
	assert.EqualValues(t, 3, entry["m"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewText("warn", &buf)
	l.Infow("hidden")
	l.Warnw("shown")
	require.NoError(t, l.Sync())
	assert.False(t, strings.Contains(buf.String(), "hidden"))
	assert.True(t, strings.Contains(buf.String(), "shown"))
}

func TestDefaultHelpers(t *testing.T) {
	prev := Default
	t.Cleanup(func() { SetDefault(prev) })

	var buf bytes.Buffer
	SetDefault(NewText("debug", &buf))
	Debug("debug entry")
	Info("info entry", "file", "20_1.in")
	Warn("warn entry")
	Sync()

	out := buf.String()
	for _, want := range []string{"DEBUG", "debug entry", "INFO", "info entry", "20_1.in", "WARN", "warn entry"} {
		assert.Contains(t, out, want)
	}
}
