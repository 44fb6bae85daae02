package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
)

// TestLogger is a Logger that captures JSON log lines in a buffer so tests
// can assert on emitted messages.
type TestLogger struct {
	mu     sync.Mutex
	buf    *bytes.Buffer
	logger *slog.Logger
}

// NewTestLogger returns a TestLogger and the buffer it writes to.
func NewTestLogger(level slog.Level) (*TestLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	handler := slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: level})
	return &TestLogger{buf: buf, logger: slog.New(handler)}, buf
}

func (t *TestLogger) Debug(msg string, fields ...any) { t.log(context.Background(), slog.LevelDebug, msg, fields...) }
func (t *TestLogger) Info(msg string, fields ...any)  { t.log(context.Background(), slog.LevelInfo, msg, fields...) }
func (t *TestLogger) Warn(msg string, fields ...any)  { t.log(context.Background(), slog.LevelWarn, msg, fields...) }
func (t *TestLogger) Error(msg string, fields ...any) { t.log(context.Background(), slog.LevelError, msg, fields...) }

func (t *TestLogger) log(ctx context.Context, level slog.Level, msg string, fields ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.logger.Log(ctx, level, msg, fields...)
}

// ContainsMessage reports whether any captured log line contains the given
// message text.
func (t *TestLogger) ContainsMessage(message string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return strings.Contains(t.buf.String(), message)
}

// Clear discards all captured output.
func (t *TestLogger) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf.Reset()
}
