package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"benchmatch/internal/services"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelDebug)
	return slog.New(newConsoleHandler(buf, lvl, false))
}

func TestConsoleHandlerRendersAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf)
	logger.Info("stage finished", String(FieldStage, "exact-match"), Int("rows", 12))

	out := buf.String()
	for _, want := range []string{"INFO", "stage finished", "stage=exact-match", "rows=12"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got %q", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no ANSI codes when color is disabled, got %q", out)
	}
}

func TestConsoleHandlerHoistsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewComponentLogger(newTestLogger(&buf), "pipeline")
	logger.Warn("fan-out detected")

	out := buf.String()
	if !strings.Contains(out, "pipeline") {
		t.Fatalf("expected component in output, got %q", out)
	}
	if strings.Contains(out, "component=") {
		t.Fatalf("expected component attr to be hoisted out of key=value list, got %q", out)
	}
}

func TestWithContextAddsRunFields(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf)

	ctx := services.WithRunID(context.Background(), "run-42")
	ctx = services.WithStage(ctx, "loader")
	WithContext(ctx, logger).Info("dataset loaded")

	out := buf.String()
	if !strings.Contains(out, "run_id=run-42") || !strings.Contains(out, "stage=loader") {
		t.Fatalf("expected context fields in output, got %q", out)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := NewNop()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("expected no-op logger to be disabled")
	}
}
