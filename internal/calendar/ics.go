// Package calendar encodes the event dataset as an RFC 5545 iCalendar file.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"ffcal/internal/event"
)

// uidDomain qualifies event UIDs. Derived from the source so UIDs stay
// globally unique across calendar feeds.
const uidDomain = "forexfactory.com"

// impactMarker prefixes the event summary so subscribers can see the
// expected significance at a glance.
func impactMarker(i event.Impact) string {
	switch i {
	case event.ImpactHigh:
		return "🔴"
	case event.ImpactMedium:
		return "🟡"
	case event.ImpactLow:
		return "🟢"
	default:
		return "⚪"
	}
}

// Generate produces a complete VCALENDAR for events. Each event becomes one
// VEVENT lasting duration. Returns "" for an empty list; the caller never
// publishes an empty calendar.
func Generate(events []*event.Event, title string, duration time.Duration) string {
	if len(events) == 0 {
		return ""
	}

	var ics strings.Builder
	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//ffcal//economic calendar//EN\r\n")
	ics.WriteString(fmt.Sprintf("X-WR-CALNAME:%s\r\n", escapeICS(title)))
	ics.WriteString("X-WR-TIMEZONE:UTC\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")

	stamp := formatICSTime(time.Now().UTC())
	for _, evt := range events {
		writeEvent(&ics, evt, stamp, duration)
	}

	ics.WriteString("END:VCALENDAR\r\n")
	return ics.String()
}

func writeEvent(ics *strings.Builder, evt *event.Event, stamp string, duration time.Duration) {
	start := evt.Start.UTC()
	end := start.Add(duration)

	ics.WriteString("BEGIN:VEVENT\r\n")
	ics.WriteString(fmt.Sprintf("UID:%s@%s\r\n", evt.ID, uidDomain))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", stamp))
	ics.WriteString(fmt.Sprintf("DTSTART:%s\r\n", formatICSTime(start)))
	ics.WriteString(fmt.Sprintf("DTEND:%s\r\n", formatICSTime(end)))

	summary := fmt.Sprintf("%s %s %s", impactMarker(evt.Impact), evt.Currency, evt.Title)
	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(summary)))

	description := fmt.Sprintf("Currency: %s\nImpact: %s\nWindow: %s",
		evt.Currency, evt.Impact, evt.SourceWindow)
	ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(description)))

	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("SEQUENCE:0\r\n")
	ics.WriteString("TRANSP:TRANSPARENT\r\n")
	ics.WriteString("END:VEVENT\r\n")
}

// formatICSTime formats a time.Time as an iCalendar UTC datetime string.
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes special characters according to RFC 5545.
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
