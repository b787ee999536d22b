package extract

import (
	"github.com/PuerkitoBio/goquery"

	"ffcal/internal/event"
)

// looseStrategy is the fallback when the table markup has drifted: it scans
// flattened block text for a co-occurring currency token and time token,
// still dating rows from explicit day headers only.
type looseStrategy struct{}

func (looseStrategy) Name() string { return "loose" }

func (looseStrategy) Extract(doc *goquery.Document, w event.Window, cursor Cursor) []RawRow {
	var rows []RawRow
	seen := make(map[string]bool)

	doc.Find("div, p, li, tr, section, article").Each(func(_ int, sel *goquery.Selection) {
		text := flatten(sel.Text())
		if text == "" {
			return
		}

		if next, ok := cursor.Advance(text, w); ok {
			cursor = next
			return
		}

		date, ok := cursor.Date()
		if !ok {
			return
		}

		// An event block needs both a currency token and a time token;
		// either one alone is noise.
		currency := currencyRe.FindString(text)
		if currency == "" {
			return
		}
		timeToken, ok := findTimeToken(text)
		if !ok {
			return
		}

		title := cleanTitle(text, timeToken, currency)
		if len([]rune(title)) < minTitleLen {
			return
		}

		// Nested blocks (a tr and its td) flatten to the same row.
		key := date.Format("2006-01-02") + "|" + currency + "|" + timeToken + "|" + title
		if seen[key] {
			return
		}
		seen[key] = true

		rows = append(rows, RawRow{
			Currency: currency,
			Title:    title,
			TimeText: timeToken,
			Date:     date,
		})
	})

	return rows
}
