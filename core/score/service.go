// ABOUTME: Relevance scoring stage, one model request per article
// ABOUTME: Serial over articles, cancellable between them, degrades per article

package score

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"newsdigest/core/domain"
	"newsdigest/core/interfaces"
	"newsdigest/pkg/utils/text"
)

const systemPrompt = `You are a news curator assistant. Your job is to evaluate articles for relevance and create concise summaries.

Always respond with ONLY a JSON object in this exact format:
{"score": <number 1-10>, "summary": "<2-3 sentence summary>"}

Scoring guide:
- 9-10: Directly about user's high-priority interests, breaking/important news
- 7-8: Relevant to user's interests, newsworthy
- 5-6: Tangentially related, might be interesting
- 3-4: Loosely connected to interests
- 1-2: Not relevant to user's stated interests

Summary rules:
- 2-3 sentences maximum
- Focus on key facts and why it matters
- Use active voice, present tense
- No marketing language or hype`

// DefaultBodyCap bounds the article text sent with each request.
const DefaultBodyCap = 1500

// ContentExtractor pulls readable article text from its web page, used
// to give the model more context when a feed summary is too thin.
type ContentExtractor interface {
	Extract(ctx context.Context, url string) (string, error)
}

// Options tunes the scoring stage.
type Options struct {
	// BodyCap is the maximum number of content characters per request.
	BodyCap int

	// RequestsPerSecond throttles model calls; zero disables throttling.
	RequestsPerSecond float64

	// MinSummaryChars triggers content extraction for shorter summaries
	// when an extractor is wired.
	MinSummaryChars int
}

// Service implements interfaces.ArticleScorer over a chat backend.
type Service struct {
	backend   interfaces.ChatBackend
	extractor ContentExtractor
	logger    interfaces.Logger
	limiter   *rate.Limiter
	opts      Options
}

var _ interfaces.ArticleScorer = (*Service)(nil)

// NewService creates a scoring service. extractor may be nil to disable
// content enrichment.
func NewService(backend interfaces.ChatBackend, extractor ContentExtractor, logger interfaces.Logger, opts Options) *Service {
	if opts.BodyCap <= 0 {
		opts.BodyCap = DefaultBodyCap
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}

	return &Service{
		backend:   backend,
		extractor: extractor,
		logger:    logger,
		limiter:   limiter,
		opts:      opts,
	}
}

// ScoreArticles scores every article in place and returns the slice.
// The backend is verified once up front; an unreachable backend fails
// the whole stage since partial scoring would silently skew the digest.
// Per-article failures degrade to a zero score and empty summary.
func (s *Service) ScoreArticles(ctx context.Context, articles []domain.Article, profile domain.InterestProfile) ([]domain.Article, error) {
	if err := s.backend.CheckAvailable(ctx); err != nil {
		return nil, err
	}

	interests := profile.PromptText()

	for i := range articles {
		// An in-flight call is not abandoned mid-request, but no
		// further article is started after cancellation.
		if err := ctx.Err(); err != nil {
			return articles, err
		}

		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				return articles, err
			}
		}

		score, summary := s.scoreOne(ctx, &articles[i], interests)
		articles[i].Score = score
		articles[i].AISummary = summary

		s.logDebug("Scored article", map[string]interface{}{
			"title": text.Truncate(articles[i].Title, 50),
			"score": score,
		})
	}

	return articles, nil
}

// scoreOne runs a single model request and parses the reply. All
// failures here are per-article degradations, never stage failures.
func (s *Service) scoreOne(ctx context.Context, article *domain.Article, interests string) (float64, string) {
	reply, err := s.backend.Chat(ctx, systemPrompt, s.userPrompt(ctx, article, interests))
	if err != nil {
		s.logWarn("Model request failed", map[string]interface{}{
			"title": article.Title,
			"error": err.Error(),
		})
		return 0, ""
	}

	score, summary, err := ParseScoreResponse(reply)
	if err != nil {
		s.logWarn("Could not parse model reply", map[string]interface{}{
			"title": article.Title,
			"error": err.Error(),
		})
		return 0, ""
	}

	return score, summary
}

// userPrompt builds the per-article message. The body is the feed
// summary, optionally replaced by extracted page content when the
// summary is too short to score on, and always capped.
func (s *Service) userPrompt(ctx context.Context, article *domain.Article, interests string) string {
	content := article.Summary

	if s.extractor != nil && len(content) < s.opts.MinSummaryChars {
		if extracted, err := s.extractor.Extract(ctx, article.Link); err == nil && extracted != "" {
			content = extracted
		} else if err != nil {
			s.logDebug("Content extraction failed", map[string]interface{}{
				"link":  article.Link,
				"error": err.Error(),
			})
		}
	}

	return fmt.Sprintf(`User interests:
%s

ARTICLE TO EVALUATE:
Title: %s
Source: %s
Content: %s

Respond with JSON only: {"score": N, "summary": "..."}`,
		interests, article.Title, article.Source, text.Truncate(content, s.opts.BodyCap))
}

func (s *Service) logDebug(msg string, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, fields)
	}
}

func (s *Service) logWarn(msg string, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.Warn(msg, fields)
	}
}
