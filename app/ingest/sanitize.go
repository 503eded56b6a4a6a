package ingest

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML reduces a scraped description to plain text. Some boards
// deliver raw HTML fragments; the keyword classifiers expect text, and tag
// soup would both hide phrases and inflate the description-length quality
// check. Plain-text descriptions pass through untouched.
func StripHTML(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}

	doc.Find("script, style").Remove()

	text := doc.Text()
	return strings.TrimSpace(strings.Join(strings.Fields(text), " "))
}
