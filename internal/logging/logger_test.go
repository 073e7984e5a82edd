package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_CreatesDailyFile(t *testing.T) {
	dir := t.TempDir()
	day := time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)

	l, err := New(Options{Dir: dir, Level: slog.LevelDebug, Now: func() time.Time { return day }})
	require.NoError(t, err)
	defer l.Close()

	assert.Equal(t, filepath.Join(dir, "llmx_2025-03-07.log"), l.Path())

	l.Info("agent initialized", "model", "llama-3.3-70b-versatile")
	l.Error(errors.New("boom"), "unrecoverable error")

	data, err := os.ReadFile(l.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "agent initialized")
	assert.Contains(t, string(data), "boom")
	assert.Contains(t, string(data), "unrecoverable error")
}

func TestToolCall_PreviewsLongResults(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithHandler(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}), "mem")

	l.ToolCall("read_file", map[string]any{"path": "/etc/hosts"}, strings.Repeat("x", 500))

	out := buf.String()
	assert.Contains(t, out, "read_file")
	assert.Contains(t, out, "/etc/hosts")
	assert.Contains(t, out, strings.Repeat("x", 200)+"...")
	assert.NotContains(t, out, strings.Repeat("x", 201))
}

func TestToolCall_StartHasNoResult(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithHandler(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}), "mem")

	l.ToolCall("get_disk_usage", nil, "")

	assert.Contains(t, buf.String(), "tool call")
	assert.NotContains(t, buf.String(), "result=")
}

func TestError_NilIsIgnored(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithHandler(slog.NewTextHandler(&buf, nil), "")

	l.Error(nil, "nothing")

	assert.Empty(t, buf.String())
}

type panicHandler struct{ slog.Handler }

func (panicHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }
func (panicHandler) Handle(context.Context, slog.Record) error  { panic("sink exploded") }

func TestLogger_SinkPanicDoesNotPropagate(t *testing.T) {
	l := NewWithHandler(panicHandler{}, "")

	assert.NotPanics(t, func() {
		l.Info("hello")
		l.Error(errors.New("x"), "y")
		l.ToolCall("t", nil, "r")
	})
}

func TestDiscard(t *testing.T) {
	l := Discard()
	assert.Equal(t, "", l.Path())
	assert.NoError(t, l.Close())
}

func TestToJournalKey(t *testing.T) {
	assert.Equal(t, "TOOL_NAME", toJournalKey("tool.name"))
	assert.Equal(t, "ERROR", toJournalKey("error"))
}
