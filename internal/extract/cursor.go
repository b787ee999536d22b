package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"ffcal/internal/event"
)

// Cursor is the running "current date" scan state. It advances only on
// explicit day-header text, never on row position, and is passed through the
// scan as a value so transitions stay testable in isolation.
type Cursor struct {
	date time.Time
	set  bool
}

// dayHeaderRe matches "Monday August 18", "Mon Aug 18", and the squeezed
// "MonAug 18" the source sometimes renders.
var dayHeaderRe = regexp.MustCompile(
	`(?i)\b(Mon|Tue|Wed|Thu|Fri|Sat|Sun)[a-z]*\s*` +
		`(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+(\d{1,2})\b`)

var monthsByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// Advance returns the cursor after scanning text. If text contains a day
// header the new cursor points at that date and ok is true; otherwise the
// cursor is unchanged and ok is false.
func (c Cursor) Advance(text string, w event.Window) (Cursor, bool) {
	m := dayHeaderRe.FindStringSubmatch(text)
	if m == nil {
		return c, false
	}

	month, found := monthsByPrefix[strings.ToLower(m[2])]
	if !found {
		return c, false
	}
	day, err := strconv.Atoi(m[3])
	if err != nil || day < 1 || day > 31 {
		return c, false
	}

	// A month view shows a few days of the adjacent months; pick the year
	// that keeps those edge days next to the window.
	year := w.Year
	if w.Month == time.December && month == time.January {
		year++
	} else if w.Month == time.January && month == time.December {
		year--
	}

	return Cursor{date: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), set: true}, true
}

// Date returns the current date and whether any day header has been seen.
func (c Cursor) Date() (time.Time, bool) {
	return c.date, c.set
}

// NewCursor returns a cursor pre-positioned at date. Used by tests to start a
// scan mid-document.
func NewCursor(date time.Time) Cursor {
	return Cursor{date: date, set: true}
}
