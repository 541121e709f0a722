// ABOUTME: Article domain model represents a single normalized feed entry
// ABOUTME: Created by the fetch stage and annotated by the scoring stage

package domain

import (
	"errors"
	"net/url"
	"time"
)

// MaxScore is the upper bound a relevance score is clamped to.
const MaxScore = 10.0

// Article is the unit of work flowing through the digest pipeline.
//
// Title, Link, Source and Topic are always present (empty string when the
// feed did not provide them, never absent). Published is nil when neither
// the published nor the updated field of the entry could be parsed; such
// articles are treated as fresh. Score and AISummary are written once by
// the scoring stage and read-only afterwards.
type Article struct {
	// Title is the entry headline.
	Title string

	// Link is the URL to the full article.
	Link string

	// Summary is the plain-text entry content, HTML stripped at ingestion.
	Summary string

	// Source is the display name of the feed the entry came from.
	Source string

	// Topic is the configuration category the feed belongs to.
	Topic string

	// Published is the entry publish time in UTC, nil when unparsable.
	Published *time.Time

	// Score is the model-assigned relevance in [0, MaxScore].
	Score float64

	// AISummary is the model-generated summary, empty until scored.
	AISummary string
}

// NewArticle creates an Article with validation of the required fields.
func NewArticle(title, link, summary, source, topic string) (*Article, error) {
	a := &Article{
		Title:   title,
		Link:    link,
		Summary: summary,
		Source:  source,
		Topic:   topic,
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}

	return a, nil
}

// Validate checks that the article carries the fields every later stage
// depends on.
func (a *Article) Validate() error {
	if a.Title == "" {
		return errors.New("article title cannot be empty")
	}

	if a.Link == "" {
		return errors.New("article link cannot be empty")
	}

	if _, err := url.Parse(a.Link); err != nil {
		return errors.New("article link is not valid format")
	}

	return nil
}

// ClampScore bounds a parsed model score to [0, MaxScore].
func ClampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}

// IsFresh reports whether the article falls inside the freshness window
// ending at cutoff. Articles without a parseable publish time are always
// fresh: dropping them would silently discard content whose age is unknown.
func (a *Article) IsFresh(cutoff time.Time) bool {
	if a.Published == nil {
		return true
	}
	return !a.Published.Before(cutoff)
}
