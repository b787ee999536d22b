package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"ffcal/internal/event"
)

// A currency cell holds exactly a 3-letter code; anything else is noise.
var currencyCellRe = regexp.MustCompile(`^[A-Z]{3}$`)

// structuredStrategy walks the calendar table's rows and reads cells by
// class hints. Preferred strategy while the source keeps its table markup.
type structuredStrategy struct{}

func (structuredStrategy) Name() string { return "structured" }

func (structuredStrategy) Extract(doc *goquery.Document, w event.Window, cursor Cursor) []RawRow {
	var rows []RawRow

	doc.Find("table[class*='calendar'] tr").Each(func(_ int, tr *goquery.Selection) {
		rowText := flatten(tr.Text())

		// Day-header rows set the date for everything below them.
		if isDayBreaker(tr) {
			if next, ok := cursor.Advance(rowText, w); ok {
				cursor = next
			}
			return
		}
		// Some layouts put the date in a leading cell of the first event
		// row of the day instead of a dedicated breaker row.
		dateCell := tr.Find("td[class*='date'], th[class*='date']")
		if dateCell.Length() > 0 {
			if next, ok := cursor.Advance(flatten(dateCell.Text()), w); ok {
				cursor = next
			}
		}

		date, ok := cursor.Date()
		if !ok {
			return // no date context yet
		}

		currency := flatten(tr.Find("td[class*='currency']").First().Text())
		title := flatten(tr.Find("td[class*='event']").First().Text())
		timeText := flatten(tr.Find("td[class*='time']").First().Text())
		impact := impactText(tr.Find("td[class*='impact']").First())

		if !currencyCellRe.MatchString(currency) {
			return
		}
		if len([]rune(title)) < minTitleLen {
			return
		}

		rows = append(rows, RawRow{
			Currency: currency,
			Title:    title,
			Impact:   impact,
			TimeText: timeText,
			Date:     date,
		})
	})

	return rows
}

func isDayBreaker(tr *goquery.Selection) bool {
	class, _ := tr.Attr("class")
	return strings.Contains(class, "day-breaker") || strings.Contains(class, "row--date")
}

// impactText pulls the human-readable impact label out of an impact cell.
// The source labels the icon with a title/aria attribute ("High Impact
// Expected"); visible cell text is the fallback.
func impactText(cell *goquery.Selection) string {
	if cell.Length() == 0 {
		return ""
	}
	if title, ok := cell.Find("span[title]").First().Attr("title"); ok && title != "" {
		return title
	}
	if title, ok := cell.Attr("title"); ok && title != "" {
		return title
	}
	if label, ok := cell.Find("span[aria-label]").First().Attr("aria-label"); ok && label != "" {
		return label
	}
	return flatten(cell.Text())
}
