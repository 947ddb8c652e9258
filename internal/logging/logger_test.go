package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestErrorKeyRenamed(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, slog.LevelInfo, "text")
	log.Info("fetch failed", "error", errors.New("boom"))

	if !strings.Contains(buf.String(), "err=boom") {
		t.Errorf("output = %q, want err=boom", buf.String())
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, slog.LevelInfo, "JSON")
	log.Info("hello")

	if !strings.HasPrefix(buf.String(), "{") {
		t.Errorf("output = %q, want JSON", buf.String())
	}
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, slog.LevelWarn, "text")
	log.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("info should be filtered at warn, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"loud":  slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
