package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/groveml/grove/pkg/errors"
)

func TestToLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		if got := ToLogLevel(tt.in); got != tt.want {
			t.Errorf("ToLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	defer func() {
		if recover() == nil {
			t.Error("ToLogLevel with unknown level should panic")
		}
	}()
	ToLogLevel("verbose")
}

func TestErrFmtHandlerAddsStacktrace(t *testing.T) {
	var buf bytes.Buffer
	handler := WrapByErrFmtHandler(slog.NewJSONHandler(&buf, nil))
	logger := slog.New(handler)

	err := errors.NewNotFittedError("Network", "Predict")
	logger.Error("prediction failed", ErrAttr(err))

	var record map[string]any
	line := strings.TrimSpace(buf.String())
	if jsonErr := json.Unmarshal([]byte(line), &record); jsonErr != nil {
		t.Fatalf("output is not JSON: %v", jsonErr)
	}
	if record["msg"] != "prediction failed" {
		t.Errorf("msg = %v, want prediction failed", record["msg"])
	}
	if _, ok := record[ErrAttrKey]; !ok {
		t.Error("record should carry the error attribute")
	}
}

func TestTestLoggerCaptures(t *testing.T) {
	logger, buf := NewTestLogger(slog.LevelDebug)

	logger.Info("training started", SamplesKey, 100)
	if !logger.ContainsMessage("training started") {
		t.Error("ContainsMessage should find the logged line")
	}
	if !strings.Contains(buf.String(), SamplesKey) {
		t.Error("captured output should carry the attribute key")
	}

	logger.Clear()
	if logger.ContainsMessage("training started") {
		t.Error("Clear should discard captured output")
	}
}

func TestTestLoggerRespectsLevel(t *testing.T) {
	logger, _ := NewTestLogger(slog.LevelInfo)
	logger.Debug("hidden detail")
	if logger.ContainsMessage("hidden detail") {
		t.Error("debug line should be filtered at info level")
	}
}
