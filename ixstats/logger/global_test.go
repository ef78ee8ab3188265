package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	old := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(old) })
	return &buf
}

func TestLogQuery(t *testing.T) {
	t.Run("successful query logs at debug", func(t *testing.T) {
		buf := captureOutput(t)

		LogQuery("SELECT 1", 3*time.Millisecond, nil)

		out := buf.String()
		if !strings.Contains(out, "level=DEBUG") || !strings.Contains(out, "type=db") {
			t.Errorf("LogQuery() output = %q, want debug entry with type=db", out)
		}
	})

	t.Run("failed query logs at error", func(t *testing.T) {
		buf := captureOutput(t)

		LogQuery("SELECT 1", 3*time.Millisecond, errors.New("connection reset"))

		out := buf.String()
		if !strings.Contains(out, "level=ERROR") || !strings.Contains(out, "connection reset") {
			t.Errorf("LogQuery() output = %q, want error entry carrying the cause", out)
		}
	})
}

func TestLogSystem(t *testing.T) {
	buf := captureOutput(t)

	LogSystem("Engine services initialized", slog.String("version", "1.0.0"))

	out := buf.String()
	if !strings.Contains(out, "type=sys") || !strings.Contains(out, "version=1.0.0") {
		t.Errorf("LogSystem() output = %q, want type=sys with extra attrs", out)
	}
}

func TestLogError(t *testing.T) {
	buf := captureOutput(t)

	LogError("Failed to settle expired listing", errors.New("deadlock"), slog.String("listing_code", "K7KD"))

	out := buf.String()
	if !strings.Contains(out, "type=error") || !strings.Contains(out, "deadlock") || !strings.Contains(out, "K7KD") {
		t.Errorf("LogError() output = %q, want type=error with cause and attrs", out)
	}
}
