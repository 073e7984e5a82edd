// Package logging provides the daily log file and the fire-and-forget
// logging calls used by the agent.
package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

// resultPreviewLength caps how much of a tool result is written per entry.
const resultPreviewLength = 200

// Options configures New.
type Options struct {
	// Dir holds the daily log files. Empty means ~/.llmx/logs.
	Dir     string
	Level   slog.Level
	Journal bool
	// Now is used to name the file; defaults to time.Now.
	Now func() time.Time
}

// Logger writes to a daily file and optionally to the systemd journal.
// None of its methods return errors; a failing sink is ignored.
type Logger struct {
	slog   *slog.Logger
	path   string
	closer io.Closer
	mu     sync.Mutex
}

// New opens (or creates) today's log file and builds the handler fan-out.
func New(opts Options) (*Logger, error) {
	dir := opts.Dir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		dir = filepath.Join(home, ".llmx", "logs")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("llmx_%s.log", now().Format("2006-01-02")))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(f, &slog.HandlerOptions{Level: opts.Level}),
	}

	if opts.Journal {
		journalHandler, err := slogjournal.NewHandler(&slogjournal.Options{
			Level: opts.Level,
			ReplaceGroup: func(key string) string {
				return toJournalKey(key)
			},
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a.Key = toJournalKey(a.Key)
				return a
			},
		})
		if err != nil {
			record := slog.NewRecord(now(), slog.LevelWarn, "new systemd journal handler", 0)
			record.Add("error", err)
			_ = handlers[0].Handle(context.Background(), record)
		} else {
			handlers = append(handlers, journalHandler)
		}
	}

	return &Logger{
		slog:   slog.New(slogmulti.Fanout(handlers...)),
		path:   path,
		closer: f,
	}, nil
}

// NewWithHandler wraps an existing handler. Path reports path verbatim.
func NewWithHandler(h slog.Handler, path string) *Logger {
	return &Logger{slog: slog.New(h), path: path}
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	return NewWithHandler(slog.NewTextHandler(io.Discard, nil), "")
}

// Slog exposes the underlying structured logger.
func (l *Logger) Slog() *slog.Logger {
	return l.slog
}

// Path is the file the current session logs to.
func (l *Logger) Path() string {
	return l.path
}

// Info records an informational event.
func (l *Logger) Info(msg string, attrs ...any) {
	defer recoverQuietly()
	l.slog.Info(msg, attrs...)
}

// Debug records a diagnostic event.
func (l *Logger) Debug(msg string, attrs ...any) {
	defer recoverQuietly()
	l.slog.Debug(msg, attrs...)
}

// Error records err together with a short description of where it happened.
func (l *Logger) Error(err error, where string) {
	defer recoverQuietly()
	if err == nil {
		return
	}
	l.slog.Error(where, "error", err.Error(), "type", fmt.Sprintf("%T", err))
}

// ToolCall records a tool invocation. An empty result marks the start of
// the call; otherwise a preview of the result is logged.
func (l *Logger) ToolCall(name string, args map[string]any, result string) {
	defer recoverQuietly()
	encoded, err := json.Marshal(args)
	if err != nil {
		encoded = []byte(fmt.Sprintf("%v", args))
	}
	if result == "" {
		l.slog.Debug("tool call", "tool", name, "args", string(encoded))
		return
	}
	l.slog.Debug("tool result", "tool", name, "args", string(encoded), "result", preview(result))
}

// Close releases the log file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closer == nil {
		return nil
	}
	err := l.closer.Close()
	l.closer = nil
	return err
}

func preview(s string) string {
	r := []rune(s)
	if len(r) <= resultPreviewLength {
		return s
	}
	return string(r[:resultPreviewLength]) + "..."
}

func recoverQuietly() {
	_ = recover()
}

func toJournalKey(str string) string {
	str = strings.ToUpper(str)
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' ||
			r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, str)
}
