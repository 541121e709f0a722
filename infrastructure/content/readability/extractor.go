// ABOUTME: Article page content extraction using go-readability
// ABOUTME: Supplies fuller text to the scorer when a feed summary is too thin

package readability

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"

	"newsdigest/core/interfaces"
)

const cacheTTL = time.Hour

// Extractor pulls the readable text of an article page. Extracted text is
// cached per URL so repeated runs within the TTL skip the page fetch.
type Extractor struct {
	deps interfaces.Dependencies
}

// NewExtractor creates a page content extractor.
func NewExtractor(deps interfaces.Dependencies) *Extractor {
	return &Extractor{deps: deps}
}

// Extract fetches the page and returns its readable plain text.
func (e *Extractor) Extract(ctx context.Context, pageURL string) (string, error) {
	cacheKey := "content:" + pageURL

	if e.deps.Cache != nil {
		if data, err := e.deps.Cache.Get(ctx, cacheKey); err == nil && data != nil {
			return string(data), nil
		}
	}

	parsed, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("invalid article url: %w", err)
	}

	resp, err := e.deps.HTTPClient.Get(ctx, pageURL)
	if err != nil {
		return "", err
	}
	defer resp.Body().Close()

	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("article page returned status %d", resp.StatusCode())
	}

	article, err := readability.FromReader(resp.Body(), parsed)
	if err != nil {
		return "", fmt.Errorf("readability parse failed: %w", err)
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return "", fmt.Errorf("no readable content at %s", pageURL)
	}

	if e.deps.Cache != nil {
		_ = e.deps.Cache.Set(ctx, cacheKey, []byte(text), cacheTTL)
	}

	return text, nil
}
