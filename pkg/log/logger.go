// Package log provides structured logging for grove on top of log/slog.
// It exposes a minimal slog-compatible Logger interface, a JSON setup
// helper, and a handler that extracts cockroachdb/errors stack traces into
// a dedicated attribute.
package log

import (
	"fmt"
	"log/slog"
	"os"
)

// Attribute keys shared across grove's log output.
const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"

	ModelNameKey = "model.name"
	OperationKey = "ml.operation"
	SamplesKey   = "data.samples"
	FeaturesKey  = "data.features"
	EpochKey     = "train.epoch"
	BatchKey     = "train.batch"
	LossKey      = "metrics.loss"
)

// SetupLogger installs a JSON slog logger at the given level as the
// process default.
func SetupLogger(loglevel string) {
	ops := slog.HandlerOptions{
		AddSource: true,
		Level:     ToLogLevel(loglevel),
	}
	handler := slog.NewJSONHandler(os.Stdout, &ops)
	slog.SetDefault(slog.New(WrapByErrFmtHandler(handler)))
}

// ToLogLevel converts a level name to a slog.Level.
func ToLogLevel(level string) slog.Level {
	switch level {
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		panic(fmt.Sprintf("invalid log level :%s", level))
	}
}

// ErrAttr wraps an error for passing to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}

// Logger is the structured logging interface grove components log through.
// slog.Logger satisfies it, as does the buffer-backed TestLogger.
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	Error(msg string, fields ...any)
}

// Default returns the process-default slog logger.
func Default() Logger {
	return slog.Default()
}
