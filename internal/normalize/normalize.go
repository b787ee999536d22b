// Package normalize converts raw extracted rows into canonical events.
//
// A row survives only if its time text resolves to a valid instant in the
// configured zone and it passes the currency and impact allow-lists. Rows
// that fail to parse are discarded, never guessed at: the source format is
// expected to contain noise.
package normalize

import (
	"strings"
	"time"

	"ffcal/internal/config"
	"ffcal/internal/event"
	"ffcal/internal/extract"
)

// Normalizer resolves rows against one configured zone and allow-lists.
type Normalizer struct {
	cfg *config.Config
}

// New creates a Normalizer for cfg.
func New(cfg *config.Config) *Normalizer {
	return &Normalizer{cfg: cfg}
}

// Normalize converts row into a canonical event, or returns nil if the row
// is filtered out or its time cannot be resolved. Normalizing the same row
// twice yields identical events, including the identifier.
func (n *Normalizer) Normalize(row extract.RawRow, w event.Window) *event.Event {
	currency := strings.ToUpper(strings.TrimSpace(row.Currency))
	if !n.cfg.AllowCurrency(currency) {
		return nil
	}

	impact := event.ClassifyImpact(row.Impact)
	if !n.cfg.AllowImpact(impact) {
		return nil
	}

	start, ok := resolveInstant(row.TimeText, row.Date, n.cfg.Zone)
	if !ok {
		return nil
	}

	return event.New(row.Title, currency, impact, start, w)
}

// resolveInstant turns time-of-day text plus a calendar date into an absolute
// instant in zone. "All Day", "-", and empty text resolve to midnight; then
// a 12-hour clock with am/pm is tried, then 24-hour HH:MM. Anything else
// fails.
func resolveInstant(timeText string, date time.Time, zone *time.Location) (time.Time, bool) {
	text := strings.ToLower(strings.TrimSpace(timeText))

	at := func(hour, minute int) time.Time {
		return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, zone)
	}

	if text == "" || text == "-" || text == "all day" {
		return at(0, 0), true
	}

	// "8:30 am" and "8:30am" are both seen in the wild.
	compact := strings.ReplaceAll(text, " ", "")
	if t, err := time.Parse("3:04pm", compact); err == nil {
		return at(t.Hour(), t.Minute()), true
	}
	if t, err := time.Parse("15:04", compact); err == nil {
		return at(t.Hour(), t.Minute()), true
	}

	return time.Time{}, false
}
