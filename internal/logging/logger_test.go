package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_TextFormatRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{AppName: "ducks", Level: "warn", Output: &buf})

	log.Info("dropped")
	log.Warn("kept", "k", "v")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "msg=kept")
	assert.Contains(t, out, "app=ducks")
	assert.Contains(t, out, "k=v")
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := Named(New(Config{Level: "debug", Format: "JSON", Output: &buf}), "httpserver")

	log.DebugContext(context.Background(), "hello", "n", 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "httpserver", entry["logger"])
	assert.EqualValues(t, 1, entry["n"])
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" INFO ", slog.LevelInfo},
		{"Warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelWarn},
		{"", slog.LevelWarn},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in, slog.LevelWarn), tt.in)
	}
}

func TestStdLogger_WritesThroughHandler(t *testing.T) {
	var buf bytes.Buffer
	std := StdLogger(New(Config{Output: &buf}), slog.LevelError)

	std.Print("tls handshake error")

	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "tls handshake error")
}
