package logger

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"unknown", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLogLevel(tt.input); got != tt.want {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestWithFieldsChaining(t *testing.T) {
	log := NewNop()

	// Chained loggers must not mutate the parent
	child := log.WithField("ticker", "AAPL").WithFields(map[string]interface{}{
		"period": "1y",
	})

	if child == log {
		t.Error("WithField should return a new logger instance")
	}

	// Nop logger should swallow everything without panicking
	child.Debug("debug")
	child.Info("info")
	child.Warn("warn")
	child.Error("error")
	child.Infof("formatted %s", "message")
}
