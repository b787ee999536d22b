package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLoggerEmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelInfo, &buf)

	l.Info("window scraped", Fields{"window": "2025-08", "rows": 42})

	var e struct {
		Timestamp string                 `json:"timestamp"`
		Level     string                 `json:"level"`
		Message   string                 `json:"message"`
		Fields    map[string]interface{} `json:"fields"`
	}
	if err := json.Unmarshal(buf.Bytes(), &e); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if e.Level != "INFO" {
		t.Errorf("expected level INFO, got %s", e.Level)
	}
	if e.Message != "window scraped" {
		t.Errorf("unexpected message: %s", e.Message)
	}
	if e.Fields["window"] != "2025-08" {
		t.Errorf("expected window field, got %v", e.Fields)
	}
	if e.Timestamp == "" {
		t.Error("expected timestamp to be set")
	}
}

func TestLoggerRespectsMinLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelWarn, &buf)

	l.Debug("dropped", nil)
	l.Info("dropped", nil)
	if buf.Len() != 0 {
		t.Errorf("expected debug/info suppressed, got %q", buf.String())
	}

	l.Warn("kept", nil)
	if buf.Len() == 0 {
		t.Error("expected warn to be logged")
	}
}

func TestLoggerIncludesError(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelInfo, &buf)

	l.Error("fetch failed", Fields{"window": "2025-08"}, errors.New("timeout"))

	if !strings.Contains(buf.String(), `"error":"timeout"`) {
		t.Errorf("expected error in output, got %s", buf.String())
	}
}

func TestCounters(t *testing.T) {
	c := NewCounters()
	c.Incr("rows.extracted")
	c.Incr("rows.extracted")
	c.Add("rows.discarded", 5)

	snap := c.Snapshot()
	if snap["rows.extracted"] != 2 {
		t.Errorf("expected rows.extracted=2, got %d", snap["rows.extracted"])
	}
	if snap["rows.discarded"] != 5 {
		t.Errorf("expected rows.discarded=5, got %d", snap["rows.discarded"])
	}

	// Snapshot is a copy.
	snap["rows.extracted"] = 99
	if c.Snapshot()["rows.extracted"] != 2 {
		t.Error("mutating a snapshot must not affect the counters")
	}
}
