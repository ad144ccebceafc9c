// internal/utils/logger_test.go

package utils

import (
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", DebugLevel},
		{"info", InfoLevel},
		{"warn", WarnLevel},
		{"warning", WarnLevel},
		{"error", ErrorLevel},
		{"ERROR", ErrorLevel},
		{"  info  ", InfoLevel},
		{"", InfoLevel},
		{"verbose", InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf strings.Builder
	logger := NewLoggerWithWriter(WarnLevel, &buf)

	logger.Debug("quiet")
	logger.Info("quiet")
	logger.Warn("loud")
	logger.Error("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Errorf("Messages below the level must be dropped: %s", out)
	}
	if strings.Count(out, "loud") != 2 {
		t.Errorf("Expected 2 emitted messages: %s", out)
	}
	if !strings.Contains(out, "[WARN]") || !strings.Contains(out, "[ERROR]") {
		t.Errorf("Expected level tags in output: %s", out)
	}
}

func TestLoggerFormatting(t *testing.T) {
	var buf strings.Builder
	logger := NewLoggerWithWriter(InfoLevel, &buf)

	logger.Infof("fetched %d items from %s", 12, "Abendtheater")

	if !strings.Contains(buf.String(), "fetched 12 items from Abendtheater") {
		t.Errorf("Unexpected output: %s", buf.String())
	}
}

func TestLoggerWithFields(t *testing.T) {
	var buf strings.Builder
	logger := NewLoggerWithWriter(InfoLevel, &buf)

	child := logger.WithField("source", "KJT").WithFields(map[string]interface{}{
		"season": "2025/2026",
	})
	child.Info("listing loaded")

	out := buf.String()
	if !strings.Contains(out, "fields={season=2025/2026, source=KJT}") {
		t.Errorf("Fields must render sorted by key: %s", out)
	}

	// The parent logger is unaffected by derived fields.
	buf.Reset()
	logger.Info("bare")
	if strings.Contains(buf.String(), "fields=") {
		t.Errorf("Parent logger must stay field-free: %s", buf.String())
	}
}
