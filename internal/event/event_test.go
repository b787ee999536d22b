package event

import (
	"strings"
	"testing"
	"time"
)

func mustZone(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("loading zone %s: %v", name, err)
	}
	return loc
}

func TestGenerateID(t *testing.T) {
	bkk := mustZone(t, "Asia/Bangkok")
	start := time.Date(2025, time.August, 18, 8, 30, 0, 0, bkk)

	id1 := GenerateID(start, "USD", "Core Retail Sales m/m")
	id2 := GenerateID(start, "USD", "Core Retail Sales m/m")

	if id1 != id2 {
		t.Errorf("GenerateID should be deterministic, got %s vs %s", id1, id2)
	}

	// Instant must appear in UTC form (8:30 Bangkok is 01:30 UTC).
	if !strings.HasPrefix(id1, "2025-08-18T01:30:00Z|USD|") {
		t.Errorf("unexpected ID prefix: %s", id1)
	}

	if !strings.Contains(id1, "core-retail-sales-m-m") {
		t.Errorf("expected slugged title in ID, got %s", id1)
	}
}

func TestGenerateID_DistinctEvents(t *testing.T) {
	start := time.Date(2025, time.August, 18, 1, 30, 0, 0, time.UTC)

	base := GenerateID(start, "USD", "Core Retail Sales m/m")
	cases := map[string]string{
		"different title":    GenerateID(start, "USD", "Retail Sales m/m"),
		"different currency": GenerateID(start, "EUR", "Core Retail Sales m/m"),
		"different instant":  GenerateID(start.Add(time.Hour), "USD", "Core Retail Sales m/m"),
	}
	for name, id := range cases {
		if id == base {
			t.Errorf("%s: expected distinct ID, both were %s", name, id)
		}
	}
}

func TestNew_TruncatesTitle(t *testing.T) {
	long := strings.Repeat("x", 150)
	evt := New(long, "usd", ImpactUnknown, time.Now(), Window{2025, time.August})

	if len([]rune(evt.Title)) != MaxTitleLen {
		t.Errorf("expected title truncated to %d runes, got %d", MaxTitleLen, len([]rune(evt.Title)))
	}
	if evt.Currency != "USD" {
		t.Errorf("expected currency uppercased, got %s", evt.Currency)
	}
	if evt.SourceWindow != "2025-08" {
		t.Errorf("expected source window 2025-08, got %s", evt.SourceWindow)
	}
}

func TestClassifyImpact(t *testing.T) {
	tests := []struct {
		text     string
		expected Impact
	}{
		{"High Impact Expected", ImpactHigh},
		{"high", ImpactHigh},
		{"Medium Impact Expected", ImpactMedium},
		{"med", ImpactMedium},
		{"Low Impact Expected", ImpactLow},
		{"Non-Economic", ImpactUnknown},
		{"", ImpactUnknown},
		{"holiday", ImpactUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := ClassifyImpact(tt.text); got != tt.expected {
				t.Errorf("ClassifyImpact(%q) = %s, expected %s", tt.text, got, tt.expected)
			}
		})
	}
}

func TestWindow(t *testing.T) {
	w := Window{Year: 2025, Month: time.August}

	if w.String() != "2025-08" {
		t.Errorf("expected 2025-08, got %s", w.String())
	}
	if w.MonthParam() != "aug.2025" {
		t.Errorf("expected aug.2025, got %s", w.MonthParam())
	}

	next := w.Next()
	if next.String() != "2025-09" {
		t.Errorf("expected 2025-09, got %s", next.String())
	}

	dec := Window{Year: 2025, Month: time.December}
	if dec.Next().String() != "2026-01" {
		t.Errorf("expected year rollover to 2026-01, got %s", dec.Next().String())
	}
}

func TestWindows(t *testing.T) {
	ws := Windows(Window{2025, time.November}, 2)
	want := []string{"2025-11", "2025-12", "2026-01"}

	if len(ws) != len(want) {
		t.Fatalf("expected %d windows, got %d", len(want), len(ws))
	}
	for i, w := range ws {
		if w.String() != want[i] {
			t.Errorf("window %d: expected %s, got %s", i, want[i], w.String())
		}
	}
}
