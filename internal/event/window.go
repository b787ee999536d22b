package event

import (
	"fmt"
	"strings"
	"time"
)

// Window identifies one bounded unit of the source calendar: a single month.
type Window struct {
	Year  int
	Month time.Month
}

// CurrentWindow returns the window containing now.
func CurrentWindow(now time.Time) Window {
	return Window{Year: now.Year(), Month: now.Month()}
}

// Next returns the window immediately after w.
func (w Window) Next() Window {
	if w.Month == time.December {
		return Window{Year: w.Year + 1, Month: time.January}
	}
	return Window{Year: w.Year, Month: w.Month + 1}
}

// String returns the traceability form recorded on events, e.g. "2025-08".
func (w Window) String() string {
	return fmt.Sprintf("%04d-%02d", w.Year, int(w.Month))
}

// MonthParam returns the source's URL query token for this window,
// e.g. "aug.2025".
func (w Window) MonthParam() string {
	return fmt.Sprintf("%s.%d", strings.ToLower(w.Month.String()[:3]), w.Year)
}

// Windows returns w followed by horizon subsequent windows.
func Windows(start Window, horizon int) []Window {
	out := make([]Window, 0, horizon+1)
	w := start
	for i := 0; i <= horizon; i++ {
		out = append(out, w)
		w = w.Next()
	}
	return out
}
