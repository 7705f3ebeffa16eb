// ABOUTME: Tests for logger construction and level selection
// ABOUTME: Verifies level filtering against a buffer sink
package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"INFO", log.InfoLevel},
		{" warn ", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"bogus", log.InfoLevel},
		{"", log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := New(&bytes.Buffer{}, tt.level)
			if logger.GetLevel() != tt.want {
				t.Errorf("level = %v, want %v", logger.GetLevel(), tt.want)
			}
		})
	}
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn")

	logger.Info("hidden message")
	logger.Warn("visible message", "count", 2)

	out := buf.String()
	if strings.Contains(out, "hidden message") {
		t.Errorf("info message should be filtered, got %q", out)
	}
	if !strings.Contains(out, "visible message") || !strings.Contains(out, "count=2") {
		t.Errorf("warn message missing, got %q", out)
	}
}

func TestForFlags(t *testing.T) {
	if got := ForFlags(&bytes.Buffer{}, "info", true, false).GetLevel(); got != log.DebugLevel {
		t.Errorf("verbose level = %v, want debug", got)
	}
	if got := ForFlags(&bytes.Buffer{}, "info", false, true).GetLevel(); got != log.ErrorLevel {
		t.Errorf("quiet level = %v, want error", got)
	}
	if got := ForFlags(&bytes.Buffer{}, "warn", false, false).GetLevel(); got != log.WarnLevel {
		t.Errorf("configured level = %v, want warn", got)
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error("nothing")
	if logger.GetLevel() != log.FatalLevel {
		t.Errorf("Discard level = %v, want fatal", logger.GetLevel())
	}
}
