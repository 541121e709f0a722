// ABOUTME: Feed fetch stage retrieves and normalizes articles from configured feeds
// ABOUTME: Bounded per-feed fan-out with output restored to topic/feed/entry order

package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"

	"newsdigest/core/domain"
	coreerrors "newsdigest/core/errors"
	"newsdigest/core/interfaces"
	"newsdigest/pkg/utils/htmltext"
	"newsdigest/pkg/utils/timeparse"
)

// maxConcurrentFeeds bounds the per-feed fan-out. Feeds share no state,
// so fetching them in parallel is safe as long as output ordering is
// restored before the order-sensitive dedupe stage.
const maxConcurrentFeeds = 10

// Topic is one configured topic with its ordered feed URLs.
type Topic struct {
	Name  string
	Feeds []string
}

// Service implements interfaces.ArticleFetcher over RSS/Atom feeds.
type Service struct {
	deps     interfaces.Dependencies
	topics   []Topic
	cacheTTL time.Duration
}

var _ interfaces.ArticleFetcher = (*Service)(nil)

// NewService creates a fetch service for the given topic configuration.
// cacheTTL controls how long raw feed bodies stay cached; zero disables
// response caching even when a cache is wired.
func NewService(deps interfaces.Dependencies, topics []Topic, cacheTTL time.Duration) *Service {
	return &Service{
		deps:     deps,
		topics:   topics,
		cacheTTL: cacheTTL,
	}
}

// feedJob is one feed to retrieve, remembering its slot in the output.
type feedJob struct {
	topic string
	url   string
}

// Fetch retrieves all selected feeds and returns their fresh articles in
// topic order, then feed order, then native entry order. Individual feed
// failures are logged and contribute zero articles.
func (s *Service) Fetch(ctx context.Context, opts interfaces.FetchOptions) ([]domain.Article, error) {
	maxPerFeed := opts.MaxPerFeed
	if maxPerFeed <= 0 {
		maxPerFeed = 50
	}
	freshness := opts.FreshnessHours
	if freshness <= 0 {
		freshness = 24
	}

	// "now" is evaluated once per run so a slow fetch cannot skew the
	// freshness window between feeds.
	cutoff := time.Now().UTC().Add(-time.Duration(freshness) * time.Hour)

	var jobs []feedJob
	for _, topic := range s.selectTopics(opts.Topics) {
		for _, url := range topic.Feeds {
			jobs = append(jobs, feedJob{topic: topic.Name, url: url})
		}
	}

	if len(jobs) == 0 {
		return []domain.Article{}, nil
	}

	// Results are written by job index so parallel completion order
	// cannot leak into the output.
	results := make([][]domain.Article, len(jobs))
	semaphore := make(chan struct{}, maxConcurrentFeeds)
	var wg sync.WaitGroup

	for i, job := range jobs {
		wg.Add(1)
		go func(index int, job feedJob) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			articles, err := s.fetchSingleFeed(ctx, job, maxPerFeed, cutoff)
			if err != nil {
				s.logWarn("Feed fetch failed", map[string]interface{}{
					"url":   job.url,
					"topic": job.topic,
					"error": err.Error(),
				})
				return
			}
			results[index] = articles
		}(i, job)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var all []domain.Article
	for _, batch := range results {
		all = append(all, batch...)
	}
	if all == nil {
		all = []domain.Article{}
	}

	s.logInfo("Fetch complete", map[string]interface{}{
		"feeds":    len(jobs),
		"articles": len(all),
	})

	return all, nil
}

// selectTopics filters the configured topics, preserving configuration
// order. An empty filter selects everything.
func (s *Service) selectTopics(filter []string) []Topic {
	if len(filter) == 0 {
		return s.topics
	}

	wanted := make(map[string]bool, len(filter))
	for _, name := range filter {
		wanted[name] = true
	}

	var selected []Topic
	for _, topic := range s.topics {
		if wanted[topic.Name] {
			selected = append(selected, topic)
		}
	}
	return selected
}

// fetchSingleFeed retrieves one feed and converts its fresh entries.
func (s *Service) fetchSingleFeed(ctx context.Context, job feedJob, maxPerFeed int, cutoff time.Time) ([]domain.Article, error) {
	body, err := s.feedBody(ctx, job.url)
	if err != nil {
		return nil, err
	}

	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, &coreerrors.FeedFetchError{URL: job.url, Message: err.Error()}
	}

	source := parsed.Title
	if source == "" {
		source = job.url
	}

	articles := make([]domain.Article, 0, len(parsed.Items))
	for i, item := range parsed.Items {
		if i >= maxPerFeed {
			break
		}

		article, err := domain.NewArticle(item.Title, item.Link, entrySummary(item), source, job.topic)
		if err != nil {
			s.logDebug("Skipped malformed entry", map[string]interface{}{
				"url":   job.url,
				"error": err.Error(),
			})
			continue
		}
		article.Published = entryPublished(item)

		if !article.IsFresh(cutoff) {
			continue
		}
		articles = append(articles, *article)
	}

	s.logDebug("Fetched feed", map[string]interface{}{
		"url":      job.url,
		"source":   source,
		"articles": len(articles),
	})

	return articles, nil
}

// feedBody returns the raw feed bytes, consulting the cache first so a
// URL listed under two topics is retrieved once.
func (s *Service) feedBody(ctx context.Context, url string) ([]byte, error) {
	cacheKey := "feed:" + url

	if s.deps.Cache != nil && s.cacheTTL > 0 {
		if cached, err := s.deps.Cache.Get(ctx, cacheKey); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	if s.deps.HTTPClient == nil {
		return nil, errors.New("HTTP client not configured")
	}

	resp, err := s.deps.HTTPClient.Get(ctx, url)
	if err != nil {
		return nil, &coreerrors.FeedFetchError{URL: url, Message: err.Error()}
	}
	defer resp.Body().Close()

	if resp.StatusCode() != 200 {
		return nil, &coreerrors.FeedFetchError{URL: url, Message: fmt.Sprintf("status %d", resp.StatusCode())}
	}

	body, err := io.ReadAll(resp.Body())
	if err != nil {
		return nil, &coreerrors.FeedFetchError{URL: url, Message: err.Error()}
	}

	if s.deps.Cache != nil && s.cacheTTL > 0 {
		_ = s.deps.Cache.Set(ctx, cacheKey, body, s.cacheTTL)
	}

	return body, nil
}

// entrySummary picks the entry text, preferring the description over the
// full content, stripped to plain text.
func entrySummary(item *gofeed.Item) string {
	if item.Description != "" {
		return htmltext.Strip(item.Description)
	}
	return htmltext.Strip(item.Content)
}

// entryPublished extracts a publish timestamp in UTC. The published
// field wins over updated; string-format fallbacks cover feeds whose
// dates gofeed could not parse. Nil means unknown, which later stages
// treat as fresh.
func entryPublished(item *gofeed.Item) *time.Time {
	if item.PublishedParsed != nil {
		t := item.PublishedParsed.UTC()
		return &t
	}
	if item.UpdatedParsed != nil {
		t := item.UpdatedParsed.UTC()
		return &t
	}

	for _, raw := range []string{item.Published, item.Updated} {
		if parsed := timeparse.Parse(raw); !parsed.IsZero() {
			t := parsed.UTC()
			return &t
		}
	}

	return nil
}

func (s *Service) logDebug(msg string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Debug(msg, fields)
	}
}

func (s *Service) logInfo(msg string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Info(msg, fields)
	}
}

func (s *Service) logWarn(msg string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Warn(msg, fields)
	}
}
