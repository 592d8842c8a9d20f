package catalog

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML reduces an HTML fragment to its text content with whitespace
// runs collapsed to single spaces and surrounding whitespace trimmed.
func StripHTML(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		// html.Parse is tolerant; an error here means an unreadable input,
		// so fall back to whitespace cleanup of the raw fragment.
		return collapse(fragment)
	}
	return collapse(doc.Text())
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
