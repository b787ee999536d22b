package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"ffcal/internal/event"
	"ffcal/internal/logger"
)

const (
	// CalendarURL is the source's economic calendar page.
	CalendarURL = "https://www.forexfactory.com/calendar"

	// MaxAttempts bounds retries per window.
	MaxAttempts = 3

	initialBackoff = 2 * time.Second
)

// Getter fetches the rendered HTML for a URL. *Browser is the production
// implementation; tests inject fakes.
type Getter interface {
	GetPage(ctx context.Context, url string) (string, error)
}

// Fetcher retrieves one calendar page per window with bounded retries.
type Fetcher struct {
	getter  Getter
	url     string
	initial time.Duration
}

// New creates a Fetcher on top of a page getter.
func New(getter Getter) *Fetcher {
	return &Fetcher{getter: getter, url: CalendarURL, initial: initialBackoff}
}

// Fetch retrieves the calendar page for w. It retries transient failures up
// to MaxAttempts times with exponential backoff plus jitter, then gives up on
// this window only.
func (f *Fetcher) Fetch(ctx context.Context, w event.Window) (string, error) {
	url := fmt.Sprintf("%s?month=%s", f.url, w.MonthParam())

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = f.initial
	b.RandomizationFactor = 0.5

	var html string
	attempt := 0
	op := func() error {
		attempt++
		doc, err := f.getter.GetPage(ctx, url)
		if err != nil {
			return err
		}
		html = doc
		return nil
	}
	notify := func(err error, next time.Duration) {
		logger.Warn("fetch attempt failed", logger.Fields{
			"window":  w.String(),
			"attempt": attempt,
			"retryIn": next.String(),
			"error":   err.Error(),
		})
	}

	err := backoff.RetryNotify(op,
		backoff.WithContext(backoff.WithMaxRetries(b, MaxAttempts-1), ctx),
		notify)
	if err != nil {
		return "", fmt.Errorf("fetching window %s after %d attempts: %w", w, attempt, err)
	}
	return html, nil
}
