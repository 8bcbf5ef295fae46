package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{" warn ", WARN},
		{"warning", WARN},
		{"error", ERROR},
		{"fatal", FATAL},
		{"verbose", INFO},
		{"", INFO},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("warn")
	l.SetOutput(&buf)
	l.EnableColors(false)

	l.Debug("hidden debug")
	l.Info("hidden info")
	l.Warnf("visible %d", 1)
	l.Error("visible error")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("filtered messages leaked into output: %q", out)
	}
	if !strings.Contains(out, "[WARN ]") || !strings.Contains(out, "visible 1") {
		t.Errorf("missing warn line in %q", out)
	}
	if !strings.Contains(out, "[ERROR]") {
		t.Errorf("missing error line in %q", out)
	}
	if !strings.Contains(out, "logger_test.go:") {
		t.Errorf("caller location missing from %q", out)
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("debug")
	l.SetOutput(&buf)
	l.EnableColors(false)

	l.With("panel").With("ws").Info("client connected")

	if !strings.Contains(buf.String(), "(panel.ws) client connected") {
		t.Errorf("component tag missing: %q", buf.String())
	}
}
