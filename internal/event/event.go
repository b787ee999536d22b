package event

import (
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"
)

// MaxTitleLen bounds the title length used for ID derivation. Longer titles
// are truncated before slugging so IDs stay filesystem- and URL-safe.
const MaxTitleLen = 100

// InstantLayout is the canonical textual form of an event instant: UTC
// RFC 3339 with fixed width, so lexicographic order equals chronological
// order.
const InstantLayout = "2006-01-02T15:04:05Z"

// Event represents one economic-calendar event in canonical form.
type Event struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Currency     string    `json:"currency"`
	Impact       Impact    `json:"impact"`
	Start        time.Time `json:"start"`
	SourceWindow string    `json:"source_window"`
}

// New creates an immutable Event with its deterministic ID populated.
// The title is trimmed and truncated before ID derivation.
func New(title, currency string, impact Impact, start time.Time, window Window) *Event {
	title = Truncate(strings.TrimSpace(title), MaxTitleLen)
	currency = strings.ToUpper(strings.TrimSpace(currency))
	return &Event{
		ID:           GenerateID(start, currency, title),
		Title:        title,
		Currency:     currency,
		Impact:       impact,
		Start:        start,
		SourceWindow: window.String(),
	}
}

// GenerateID derives the deterministic event identifier from stable fields:
// the instant's canonical UTC form, the currency code, and a slug of the
// title, joined with a fixed separator.
func GenerateID(start time.Time, currency, title string) string {
	return fmt.Sprintf("%s|%s|%s",
		start.UTC().Format(InstantLayout),
		strings.ToUpper(currency),
		slug.Make(Truncate(title, MaxTitleLen)),
	)
}

// Key returns the dedupe grouping key (instant, currency, title).
func (e *Event) Key() string {
	return e.Start.UTC().Format(InstantLayout) + "|" + e.Currency + "|" + e.Title
}

// Truncate shortens s to at most n runes.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
