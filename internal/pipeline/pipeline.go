// Package pipeline drives the scrape run: it walks the bounded window list
// sequentially, fetches and extracts each window, normalizes the rows, and
// reduces the accumulated events to a deduplicated, time-ordered dataset.
//
// Windows are never fetched in parallel. Sequential order keeps request
// patterns polite and is what the day-header date cursor assumes. Pacing
// delays between windows go through an injectable Sleeper so tests run
// without wall-clock waits.
package pipeline

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"time"

	"ffcal/internal/event"
	"ffcal/internal/extract"
	"ffcal/internal/logger"
	"ffcal/internal/normalize"
)

// ErrNoEvents is returned when every window yielded nothing after filtering.
// Publishing an empty dataset would silently blank subscribers' calendars,
// and an empty result usually means extraction broke, not that no events
// exist — so the run fails instead.
var ErrNoEvents = errors.New("no events survived extraction and filtering")

// defaultBaseDelay paces requests between windows.
const defaultBaseDelay = 5 * time.Second

// Fetcher retrieves the raw page for one window.
type Fetcher interface {
	Fetch(ctx context.Context, w event.Window) (string, error)
}

// Sleeper suspends between windows. The production implementation sleeps on
// the wall clock; tests inject a recorder.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration)
}

type wallClockSleeper struct{}

func (wallClockSleeper) Sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// Pipeline orchestrates fetch → extract → normalize → reduce.
type Pipeline struct {
	fetcher    Fetcher
	normalizer *normalize.Normalizer
	sleeper    Sleeper
	baseDelay  time.Duration
}

// New creates a Pipeline with wall-clock pacing.
func New(fetcher Fetcher, normalizer *normalize.Normalizer) *Pipeline {
	return &Pipeline{
		fetcher:    fetcher,
		normalizer: normalizer,
		sleeper:    wallClockSleeper{},
		baseDelay:  defaultBaseDelay,
	}
}

// WithSleeper replaces the pacing sleeper. Used by tests.
func (p *Pipeline) WithSleeper(s Sleeper) *Pipeline {
	p.sleeper = s
	return p
}

// Run processes the windows strictly in order and returns the reduced
// dataset. A window that fails to fetch or extract is skipped with a
// warning; only an entirely empty result is an error (ErrNoEvents).
func (p *Pipeline) Run(ctx context.Context, windows []event.Window) ([]*event.Event, error) {
	var accumulated []*event.Event

	for i, w := range windows {
		if i > 0 {
			p.sleeper.Sleep(ctx, p.pace(i))
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		html, err := p.fetcher.Fetch(ctx, w)
		if err != nil {
			logger.Warn("window fetch failed, skipping", logger.Fields{
				"window": w.String(),
				"error":  err.Error(),
			})
			logger.IncrCounter("windows.failed")
			continue
		}

		rows, err := extract.Extract(html, w)
		if err != nil {
			logger.Warn("window extraction failed, skipping", logger.Fields{
				"window": w.String(),
				"error":  err.Error(),
			})
			logger.IncrCounter("windows.failed")
			continue
		}
		logger.AddCounter("rows.extracted", int64(len(rows)))

		kept := 0
		for _, row := range rows {
			if evt := p.normalizer.Normalize(row, w); evt != nil {
				accumulated = append(accumulated, evt)
				kept++
			}
		}
		logger.AddCounter("rows.discarded", int64(len(rows)-kept))
		logger.AddCounter("events.kept", int64(kept))

		logger.Info("window processed", logger.Fields{
			"window": w.String(),
			"rows":   len(rows),
			"kept":   kept,
		})
	}

	reduced := Reduce(accumulated)
	if len(reduced) == 0 {
		return nil, ErrNoEvents
	}
	return reduced, nil
}

// pace returns the delay before window i: base delay scaled by position plus
// random jitter. Politeness control, not a correctness requirement.
func (p *Pipeline) pace(i int) time.Duration {
	jitter := time.Duration(rand.Int63n(int64(p.baseDelay)))
	return time.Duration(i)*p.baseDelay + jitter
}

// Reduce collapses duplicate events — same (instant, currency, title), first
// occurrence wins — and orders the result ascending by the instant's
// canonical textual form, which is chronological order for a fixed-width
// zone-qualified timestamp.
func Reduce(events []*event.Event) []*event.Event {
	seen := make(map[string]bool, len(events))
	unique := make([]*event.Event, 0, len(events))
	for _, evt := range events {
		key := evt.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, evt)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].Start.UTC().Format(event.InstantLayout) <
			unique[j].Start.UTC().Format(event.InstantLayout)
	})
	return unique
}
