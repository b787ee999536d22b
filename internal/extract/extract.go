package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"ffcal/internal/event"
	"ffcal/internal/logger"
)

// Strategy is one way of pulling candidate rows out of a parsed document.
// Strategies share a contract so they can be chained.
type Strategy interface {
	Name() string
	Extract(doc *goquery.Document, w event.Window, cursor Cursor) []RawRow
}

// strategies are tried in order of preference; the first non-empty result
// wins.
var strategies = []Strategy{
	structuredStrategy{},
	looseStrategy{},
}

// Extract parses html and runs the strategy chain for window w.
func Extract(html string, w event.Window) ([]RawRow, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	for _, s := range strategies {
		rows := s.Extract(doc, w, Cursor{})
		if len(rows) > 0 {
			logger.Debug("extraction strategy succeeded", logger.Fields{
				"strategy": s.Name(),
				"window":   w.String(),
				"rows":     len(rows),
			})
			return rows, nil
		}
	}

	return nil, nil
}
