// ABOUTME: Digest rendering, articles to a topic-grouped Markdown document
// ABOUTME: Pure functions of their inputs so rendering is repeatable

package render

import (
	"fmt"
	"strings"
	"time"

	"newsdigest/core/domain"
	"newsdigest/pkg/utils/text"
)

// summaryFallbackChars bounds the raw feed summary shown when no
// generated summary is available.
const summaryFallbackChars = 200

// EmptyDigestMarkdown is rendered when no article passed the filter.
const EmptyDigestMarkdown = "# Daily News Digest\n\nNo relevant articles found today."

// RenderMarkdown builds the digest document for the given articles.
// Articles are grouped by topic in first-seen order, so the ranking
// inside each group follows the input order. now supplies the date line.
func RenderMarkdown(articles []domain.Article, now time.Time) string {
	if len(articles) == 0 {
		return EmptyDigestMarkdown
	}

	var topicOrder []string
	byTopic := make(map[string][]domain.Article)
	for _, a := range articles {
		topic := strings.ToUpper(a.Topic)
		if topic == "" {
			topic = "GENERAL"
		}
		if _, seen := byTopic[topic]; !seen {
			topicOrder = append(topicOrder, topic)
		}
		byTopic[topic] = append(byTopic[topic], a)
	}

	parts := []string{fmt.Sprintf("# Daily News Digest\n*%s*\n", now.Format("Monday, January 02, 2006"))}

	for _, topic := range topicOrder {
		parts = append(parts, fmt.Sprintf("\n## %s\n", topic))

		for _, a := range byTopic[topic] {
			summary := a.AISummary
			if summary == "" {
				summary = text.Truncate(a.Summary, summaryFallbackChars)
			}

			parts = append(parts,
				fmt.Sprintf("### [%s](%s)", a.Title, a.Link),
				fmt.Sprintf("*%s* | Score: %.1f\n", a.Source, a.Score),
				summary+"\n",
			)
		}
	}

	return strings.Join(parts, "\n")
}
