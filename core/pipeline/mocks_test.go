package pipeline

import (
	"context"

	"newsdigest/core/domain"
	"newsdigest/core/interfaces"
)

// mockFetcher is a mock implementation of the ArticleFetcher interface
type mockFetcher struct {
	fetchFunc func(ctx context.Context, opts interfaces.FetchOptions) ([]domain.Article, error)
	calls     int
}

func (m *mockFetcher) Fetch(ctx context.Context, opts interfaces.FetchOptions) ([]domain.Article, error) {
	m.calls++
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, opts)
	}
	return nil, nil
}

// mockDeduper is a mock implementation of the Deduper interface
type mockDeduper struct {
	dedupeFunc func(articles []domain.Article) []domain.Article
	calls      int
}

func (m *mockDeduper) Dedupe(articles []domain.Article) []domain.Article {
	m.calls++
	if m.dedupeFunc != nil {
		return m.dedupeFunc(articles)
	}
	return articles
}

// mockScorer is a mock implementation of the ArticleScorer interface
type mockScorer struct {
	scoreFunc func(ctx context.Context, articles []domain.Article, profile domain.InterestProfile) ([]domain.Article, error)
	calls     int
	gotCount  int
}

func (m *mockScorer) ScoreArticles(ctx context.Context, articles []domain.Article, profile domain.InterestProfile) ([]domain.Article, error) {
	m.calls++
	m.gotCount = len(articles)
	if m.scoreFunc != nil {
		return m.scoreFunc(ctx, articles, profile)
	}
	return articles, nil
}

// mockDeliverer is a mock implementation of the DigestDeliverer interface
type mockDeliverer struct {
	deliverFunc func(ctx context.Context, subject, htmlBody, textBody string) (bool, error)
	calls       int
	gotSubject  string
	gotHTML     string
	gotText     string
}

func (m *mockDeliverer) Deliver(ctx context.Context, subject, htmlBody, textBody string) (bool, error) {
	m.calls++
	m.gotSubject = subject
	m.gotHTML = htmlBody
	m.gotText = textBody
	if m.deliverFunc != nil {
		return m.deliverFunc(ctx, subject, htmlBody, textBody)
	}
	return true, nil
}
