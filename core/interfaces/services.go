// ABOUTME: Service interfaces for the digest pipeline stages
// ABOUTME: Defines contracts between the orchestrator and the stage implementations

package interfaces

import (
	"context"

	"newsdigest/core/domain"
)

// FetchOptions narrows a fetch to specific topics and bounds its size.
type FetchOptions struct {
	// Topics restricts the fetch to the named topics.
	// Empty or nil means all configured topics.
	Topics []string

	// MaxPerFeed caps the number of entries taken from a single feed.
	MaxPerFeed int

	// FreshnessHours is the trailing window articles must fall into.
	// Articles without a parseable publish time are always kept.
	FreshnessHours int
}

// ArticleFetcher retrieves and normalizes articles from configured feeds.
type ArticleFetcher interface {
	Fetch(ctx context.Context, opts FetchOptions) ([]domain.Article, error)
}

// ArticleScorer assigns a relevance score and generated summary to articles.
// Scoring mutates the passed articles in place and returns them.
type ArticleScorer interface {
	ScoreArticles(ctx context.Context, articles []domain.Article, profile domain.InterestProfile) ([]domain.Article, error)
}

// ChatBackend is a minimal language-model client used by the scorer.
type ChatBackend interface {
	// CheckAvailable verifies the backend is reachable and the required
	// model is installed. It returns an error when scoring cannot proceed.
	CheckAvailable(ctx context.Context) error

	// Chat sends a system and user message and returns the raw reply text.
	Chat(ctx context.Context, system, user string) (string, error)
}

// DigestDeliverer sends a rendered digest to its recipient.
type DigestDeliverer interface {
	// Deliver returns true only when the transport confirmed the send.
	// Missing credentials return (false, nil) and are logged as a
	// configuration warning, not treated as an error.
	Deliver(ctx context.Context, subject, htmlBody, textBody string) (bool, error)
}
