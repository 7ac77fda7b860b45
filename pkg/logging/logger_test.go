package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		enable slog.Level
	}{
		{"debug level", "debug", slog.LevelDebug},
		{"warn level", "warn", slog.LevelWarn},
		{"warning alias", "WARNING", slog.LevelWarn},
		{"error level", "error", slog.LevelError},
		{"default info", "", slog.LevelInfo},
	}

	ctx := context.Background()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.level)
			if !logger.Enabled(ctx, tt.enable) {
				t.Fatalf("expected level %s to be enabled", tt.enable)
			}
			if tt.enable > slog.LevelDebug && logger.Enabled(ctx, tt.enable-4) {
				t.Fatalf("expected level below %s to be disabled", tt.enable)
			}
		})
	}
}

func TestDefaultLogger(t *testing.T) {
	logger := Default()

	ctx := context.Background()
	if !logger.Enabled(ctx, slog.LevelInfo) {
		t.Error("Default() should enable info level")
	}
	if logger.Enabled(ctx, slog.LevelDebug) {
		t.Error("Default() should not enable debug level")
	}
	if logger == Default() {
		t.Error("Default() returned the same instance twice")
	}
}

func TestComponentAddsField(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter("info", &buf).Component("gate")
	logger.Info("gate: check failed", "session_id", "abc")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if line["component"] != "gate" {
		t.Fatalf("expected component field, got %v", line["component"])
	}
	if line["session_id"] != "abc" {
		t.Fatalf("expected session_id field, got %v", line["session_id"])
	}
}

func TestComponentOnNilLogger(t *testing.T) {
	var logger *Logger
	if logger.Component("x") == nil {
		t.Fatal("expected a usable logger from nil receiver")
	}
}
