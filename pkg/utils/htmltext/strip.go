// ABOUTME: HTML utilities for extracting plain text from feed entry markup
// ABOUTME: Used at ingestion so every later stage sees clean summary text

package htmltext

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Strip extracts the plain text content of an HTML fragment, dropping
// script and style bodies and collapsing runs of whitespace. Input that
// fails to parse is returned trimmed as-is.
func Strip(html string) string {
	if html == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(html)
	}

	doc.Find("script, style").Remove()
	return collapseWhitespace(doc.Text())
}

// collapseWhitespace replaces all whitespace runs with single spaces.
func collapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
