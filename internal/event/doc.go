// Package event defines the canonical economic-calendar event model.
//
// Events carry a deterministic identifier derived from their instant,
// currency, and a slug of the title, so that the same logical event scraped
// on different runs keeps the same identity (and downstream calendar UIDs
// stay stable). Events are immutable once created.
package event
