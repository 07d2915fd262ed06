package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInit_Disabled(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Enabled: false, Writer: &buf})
	Error("dropped")
	require.Zero(t, buf.Len())
}

func TestInit_TextLevel(t *testing.T) {
	t.Cleanup(func() { Init(Options{}) })

	var buf bytes.Buffer
	Init(Options{Enabled: true, Level: slog.LevelWarn, Writer: &buf})

	Info("hidden")
	Warn("shown", "region", 7)

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "msg=shown")
	require.Contains(t, out, "region=7")
}

func TestInit_JSON(t *testing.T) {
	t.Cleanup(func() { Init(Options{}) })

	var buf bytes.Buffer
	Init(Options{Enabled: true, Level: slog.LevelDebug, JSON: true, Writer: &buf})
	Debug("gc cycle", "kind", "young")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "gc cycle", rec["msg"])
	require.Equal(t, "young", rec["kind"])
	require.Equal(t, "DEBUG", rec["level"])
}
