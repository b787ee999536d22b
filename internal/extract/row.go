package extract

import (
	"regexp"
	"strings"
	"time"
)

// RawRow is one best-effort candidate event row. Rows are ephemeral: the
// normalizer either turns them into canonical events or discards them.
type RawRow struct {
	Currency string
	Title    string
	Impact   string // free text, possibly empty
	TimeText string
	Date     time.Time // calendar date from the day cursor, midnight UTC
}

// minTitleLen is the shortest title kept after cleanup.
const minTitleLen = 3

var (
	currencyRe = regexp.MustCompile(`\b[A-Z]{3}\b`)

	time12Re   = regexp.MustCompile(`(?i)\b\d{1,2}:\d{2}\s*(?:am|pm)\b`)
	time24Re   = regexp.MustCompile(`\b\d{1,2}:\d{2}\b`)
	allDayRe   = regexp.MustCompile(`(?i)\ball day\b`)
	dashTimeRe = regexp.MustCompile(`(?:^|\s)(-)(?:\s|$)`)

	whitespaceRe = regexp.MustCompile(`\s+`)

	// Section labels that trail the title in flattened row text.
	trailingKeywordRe = regexp.MustCompile(`(?i)\b(Previous|Forecast|Actual|Detail|Source)\b`)
)

// findTimeToken locates a recognized time token in text: "8:30am", "15:04",
// "All Day", or a bare "-".
func findTimeToken(text string) (string, bool) {
	if m := time12Re.FindString(text); m != "" {
		return m, true
	}
	if m := time24Re.FindString(text); m != "" {
		return m, true
	}
	if m := allDayRe.FindString(text); m != "" {
		return m, true
	}
	if loc := dashTimeRe.FindStringSubmatchIndex(text); loc != nil {
		return "-", true
	}
	return "", false
}

// flatten collapses runs of whitespace to single spaces and trims.
func flatten(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// cleanTitle strips the matched time and currency tokens from block text and
// truncates at the first trailing-section keyword. Heuristic: titles that
// legitimately contain a keyword like "Previous" get truncated too.
func cleanTitle(text, timeToken, currency string) string {
	if timeToken != "" && timeToken != "-" {
		text = strings.Replace(text, timeToken, " ", 1)
	}
	if currency != "" {
		text = strings.Replace(text, currency, " ", 1)
	}
	if loc := trailingKeywordRe.FindStringIndex(text); loc != nil {
		text = text[:loc[0]]
	}
	return strings.Trim(flatten(text), " -|•")
}
