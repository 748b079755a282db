package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"  info ", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tc := range cases {
		if got := ParseLevel(tc.in); got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNewWithWriter_EmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter("info", &buf)

	logger.Info("session created", "user", "alice")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if entry["msg"] != "session created" {
		t.Errorf("msg = %v, want 'session created'", entry["msg"])
	}
	if entry["user"] != "alice" {
		t.Errorf("user = %v, want 'alice'", entry["user"])
	}
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter("warn", &buf)

	logger.Info("suppressed")
	if buf.Len() != 0 {
		t.Errorf("info logged despite warn level: %s", buf.String())
	}

	logger.Warn("emitted")
	if buf.Len() == 0 {
		t.Error("warn not logged")
	}
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter("info", &buf).Component("engine")

	logger.Info("turn processed")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if entry["component"] != "engine" {
		t.Errorf("component = %v, want 'engine'", entry["component"])
	}
}
