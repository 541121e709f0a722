// ABOUTME: InterestProfile describes what the user wants surfaced
// ABOUTME: Rendered verbatim into the scoring prompt, highest weight first

package domain

import (
	"fmt"
	"sort"
	"strings"
)

// InterestTopic is one weighted topic of an interest profile.
type InterestTopic struct {
	// Name is the topic key, e.g. "ai" or "finance".
	Name string

	// Weight orders topics by priority. Higher weight means higher
	// priority band in the scoring prompt. Must be >= 0.
	Weight float64

	// Keywords are representative terms for the topic, in config order.
	Keywords []string
}

// InterestProfile is a ranked description of the user's interests,
// loaded once per run and passed read-only into the scorer.
type InterestProfile struct {
	Topics []InterestTopic
}

// keywordSample is how many keywords per topic the prompt includes.
const keywordSample = 5

// PromptText renders the profile as the interest description embedded in
// the scoring prompt. Topics are listed highest weight first with a
// priority band derived from the weight.
func (p InterestProfile) PromptText() string {
	if len(p.Topics) == 0 {
		return "AI, software development, technology, business, and current events"
	}

	topics := make([]InterestTopic, len(p.Topics))
	copy(topics, p.Topics)
	sort.SliceStable(topics, func(i, j int) bool {
		return topics[i].Weight > topics[j].Weight
	})

	lines := make([]string, 0, len(topics))
	for _, t := range topics {
		sample := t.Keywords
		if len(sample) > keywordSample {
			sample = sample[:keywordSample]
		}
		lines = append(lines, fmt.Sprintf("- %s (%s): %s",
			strings.ToUpper(t.Name), priorityBand(t.Weight), strings.Join(sample, ", ")))
	}

	return strings.Join(lines, "\n")
}

func priorityBand(weight float64) string {
	switch {
	case weight >= 1.5:
		return "highest priority"
	case weight >= 1.3:
		return "high priority"
	case weight >= 1.1:
		return "moderate priority"
	default:
		return "standard priority"
	}
}
