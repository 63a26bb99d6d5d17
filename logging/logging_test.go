package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestPrettyHandler_NestsGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger.With("session", "abc").WithGroup("tick").Debug("food eaten", "n", 7, slog.Group("head", "x", 3, "y", 4))

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not one JSON object: %v\n%s", err, buf.String())
	}
	if got["msg"] != "food eaten" || got["level"] != "DEBUG" {
		t.Fatalf("msg/level: %v", got)
	}
	if got["session"] != "abc" {
		t.Fatalf("session attr missing: %v", got)
	}
	tick, ok := got["tick"].(map[string]any)
	if !ok || tick["n"] != float64(7) {
		t.Fatalf("tick group: %v", got["tick"])
	}
	head, ok := tick["head"].(map[string]any)
	if !ok || head["x"] != float64(3) || head["y"] != float64(4) {
		t.Fatalf("head group: %v", tick["head"])
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Fatalf("expected indented output:\n%s", buf.String())
	}
}

func TestPrettyHandler_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("info logged at warn level: %s", buf.String())
	}
}

func TestNew_Formats(t *testing.T) {
	for _, f := range []string{"", FormatText, FormatJSON, FormatPretty} {
		var buf bytes.Buffer
		logger, err := New(&buf, Options{Format: f, Level: "debug"})
		if err != nil {
			t.Fatalf("format %q: %v", f, err)
		}
		logger.Debug("hello")
		if !strings.Contains(buf.String(), "hello") {
			t.Fatalf("format %q wrote %q", f, buf.String())
		}
	}
	if _, err := New(&bytes.Buffer{}, Options{Format: "xml"}); err == nil {
		t.Fatalf("expected error for unknown format")
	}
	if _, err := New(&bytes.Buffer{}, Options{Level: "loud"}); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
