package normalize

import (
	"testing"
	"time"

	"ffcal/internal/config"
	"ffcal/internal/event"
	"ffcal/internal/extract"
)

var testWindow = event.Window{Year: 2025, Month: time.August}

func testConfig(t *testing.T, currencies []string, impacts []event.Impact) *config.Config {
	t.Helper()
	zone, err := time.LoadLocation("Asia/Bangkok")
	if err != nil {
		t.Fatalf("loading zone: %v", err)
	}
	cfg := &config.Config{
		ZoneName:   "Asia/Bangkok",
		Zone:       zone,
		Currencies: make(map[string]bool),
		Impacts:    make(map[event.Impact]bool),
	}
	for _, c := range currencies {
		cfg.Currencies[c] = true
	}
	for _, i := range impacts {
		cfg.Impacts[i] = true
	}
	return cfg
}

func allImpacts() []event.Impact {
	return []event.Impact{event.ImpactLow, event.ImpactMedium, event.ImpactHigh}
}

func row(currency, title, impact, timeText string, date time.Time) extract.RawRow {
	return extract.RawRow{Currency: currency, Title: title, Impact: impact, TimeText: timeText, Date: date}
}

func aug18() time.Time {
	return time.Date(2025, time.August, 18, 0, 0, 0, 0, time.UTC)
}

func TestResolveAllDayVariantsToMidnight(t *testing.T) {
	n := New(testConfig(t, []string{"USD"}, allImpacts()))

	for _, timeText := range []string{"All Day", "all day", "-", ""} {
		t.Run("time="+timeText, func(t *testing.T) {
			evt := n.Normalize(row("USD", "Bank Holiday", "", timeText, aug18()), testWindow)
			if evt == nil {
				t.Fatal("expected event, row was discarded")
			}
			h, m, s := evt.Start.Hour(), evt.Start.Minute(), evt.Start.Second()
			if h != 0 || m != 0 || s != 0 {
				t.Errorf("expected 00:00:00 local, got %02d:%02d:%02d", h, m, s)
			}
			if evt.Start.Location().String() != "Asia/Bangkok" {
				t.Errorf("expected Asia/Bangkok zone, got %s", evt.Start.Location())
			}
		})
	}
}

func TestTwelveAndTwentyFourHourAgree(t *testing.T) {
	n := New(testConfig(t, []string{"USD"}, allImpacts()))

	tests := []struct{ twelve, twentyFour string }{
		{"8:30am", "08:30"},
		{"12:00pm", "12:00"},
		{"12:00am", "00:00"},
		{"11:45pm", "23:45"},
		{"2:00 pm", "14:00"},
	}

	for _, tt := range tests {
		t.Run(tt.twelve, func(t *testing.T) {
			a := n.Normalize(row("USD", "Some Economic Event", "", tt.twelve, aug18()), testWindow)
			b := n.Normalize(row("USD", "Some Economic Event", "", tt.twentyFour, aug18()), testWindow)
			if a == nil || b == nil {
				t.Fatalf("expected both forms to parse, got %v / %v", a, b)
			}
			if !a.Start.Equal(b.Start) {
				t.Errorf("%s resolved to %s but %s resolved to %s",
					tt.twelve, a.Start.UTC(), tt.twentyFour, b.Start.UTC())
			}
		})
	}
}

func TestUnparseableTimeDiscards(t *testing.T) {
	n := New(testConfig(t, []string{"USD"}, allImpacts()))

	for _, timeText := range []string{"Tentative", "25:99", "soon", "8am30"} {
		t.Run(timeText, func(t *testing.T) {
			if evt := n.Normalize(row("USD", "Some Event Title", "", timeText, aug18()), testWindow); evt != nil {
				t.Errorf("expected discard for time %q, got %+v", timeText, evt)
			}
		})
	}
}

func TestCurrencyFilter(t *testing.T) {
	n := New(testConfig(t, []string{"USD"}, allImpacts()))

	if evt := n.Normalize(row("EUR", "German ZEW Economic Sentiment", "", "10:00", aug18()), testWindow); evt != nil {
		t.Error("expected EUR row excluded by USD allow-list")
	}
	if evt := n.Normalize(row("usd", "Core Retail Sales m/m", "", "8:30am", aug18()), testWindow); evt == nil {
		t.Error("expected lowercase usd to normalize and pass")
	}
}

func TestImpactFilter(t *testing.T) {
	n := New(testConfig(t, []string{"USD"}, []event.Impact{event.ImpactLow, event.ImpactMedium}))

	if evt := n.Normalize(row("USD", "FOMC Statement", "High Impact Expected", "2:00pm", aug18()), testWindow); evt != nil {
		t.Error("expected HIGH excluded by LOW,MEDIUM allow-list")
	}

	// UNKNOWN always passes regardless of the allow-list.
	evt := n.Normalize(row("USD", "Jackson Hole Symposium", "", "All Day", aug18()), testWindow)
	if evt == nil {
		t.Fatal("expected UNKNOWN impact to pass filtering")
	}
	if evt.Impact != event.ImpactUnknown {
		t.Errorf("expected UNKNOWN, got %s", evt.Impact)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	n := New(testConfig(t, []string{"USD"}, allImpacts()))
	r := row("USD", "Core Retail Sales m/m", "High Impact Expected", "8:30am", aug18())

	a := n.Normalize(r, testWindow)
	b := n.Normalize(r, testWindow)
	if a == nil || b == nil {
		t.Fatal("expected both normalizations to succeed")
	}

	if *a != *b {
		t.Errorf("normalization is not idempotent:\n  first  %+v\n  second %+v", *a, *b)
	}
	if a.ID != b.ID {
		t.Errorf("IDs differ: %s vs %s", a.ID, b.ID)
	}
}

func TestNormalizeBuildsCanonicalEvent(t *testing.T) {
	n := New(testConfig(t, []string{"USD"}, allImpacts()))

	evt := n.Normalize(row("USD", "Core Retail Sales m/m", "", "8:30am", aug18()), testWindow)
	if evt == nil {
		t.Fatal("expected event")
	}

	// 8:30 in Bangkok (UTC+7) is 01:30 UTC.
	if got := evt.Start.UTC().Format(event.InstantLayout); got != "2025-08-18T01:30:00Z" {
		t.Errorf("expected 2025-08-18T01:30:00Z, got %s", got)
	}
	if evt.SourceWindow != "2025-08" {
		t.Errorf("expected source window 2025-08, got %s", evt.SourceWindow)
	}
	if evt.Impact != event.ImpactUnknown {
		t.Errorf("expected UNKNOWN impact, got %s", evt.Impact)
	}
}
