// ABOUTME: Feed URL discovery for populating the sources configuration
// ABOUTME: Scans page metadata for feed links with well-known path fallbacks

package discover

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"newsdigest/core/interfaces"
)

// feedLinkSelector matches the alternate-representation links sites use
// to advertise their feeds.
const feedLinkSelector = `link[rel="alternate"][type="application/rss+xml"], link[rel="alternate"][type="application/atom+xml"], link[type="application/rss+xml"]`

// wellKnownPaths are tried against the site root when the page itself
// does not advertise a feed.
var wellKnownPaths = []string{"/feed", "/rss", "/atom.xml", "/index.xml"}

// Result is the discovery outcome for a single site.
type Result struct {
	SiteURL string
	FeedURL string
	Err     error
}

// Service locates feed URLs for arbitrary site pages.
type Service struct {
	http   interfaces.HTTPClient
	logger interfaces.Logger
}

// NewService creates a discovery service.
func NewService(httpClient interfaces.HTTPClient, logger interfaces.Logger) *Service {
	return &Service{http: httpClient, logger: logger}
}

// Discover resolves a feed URL for every site concurrently. Results are
// returned in input order; a site that yields no feed carries an error in
// its slot rather than failing the batch.
func (s *Service) Discover(ctx context.Context, siteURLs []string) []Result {
	results := make([]Result, len(siteURLs))

	var wg sync.WaitGroup
	for i, site := range siteURLs {
		wg.Add(1)
		go func(i int, site string) {
			defer wg.Done()
			feedURL, err := s.discoverOne(ctx, site)
			results[i] = Result{SiteURL: site, FeedURL: feedURL, Err: err}
		}(i, site)
	}
	wg.Wait()

	return results
}

// discoverOne resolves a single site. Known hosting platforms have fixed
// feed locations and skip the page fetch entirely.
func (s *Service) discoverOne(ctx context.Context, site string) (string, error) {
	if isGitHubRepo(site) {
		return strings.TrimRight(site, "/") + "/commits/master.atom", nil
	}
	if isRedditLink(site) {
		return strings.TrimRight(site, "/") + "/.rss", nil
	}

	if feedURL, err := s.scanPage(ctx, site); err == nil {
		return feedURL, nil
	} else if s.logger != nil {
		s.logger.Debug("Page scan found no feed link", map[string]interface{}{
			"site":  site,
			"error": err.Error(),
		})
	}

	return s.probeWellKnown(ctx, site)
}

// scanPage fetches the page and looks for an advertised feed link.
func (s *Service) scanPage(ctx context.Context, site string) (string, error) {
	resp, err := s.http.Get(ctx, site)
	if err != nil {
		return "", err
	}
	defer resp.Body().Close()

	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("site returned status %d", resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body())
	if err != nil {
		return "", err
	}

	href, exists := doc.Find(feedLinkSelector).First().Attr("href")
	if !exists || href == "" {
		return "", errors.New("no feed link advertised")
	}

	return absoluteURL(site, href)
}

// probeWellKnown tries conventional feed paths off the site root and
// accepts the first one that answers with a feed-looking response.
func (s *Service) probeWellKnown(ctx context.Context, site string) (string, error) {
	base, err := url.Parse(site)
	if err != nil {
		return "", err
	}
	root := base.Scheme + "://" + base.Host

	for _, path := range wellKnownPaths {
		candidate := root + path

		resp, err := s.http.Get(ctx, candidate)
		if err != nil {
			continue
		}
		contentType := resp.Header("Content-Type")
		resp.Body().Close()

		if resp.StatusCode() == 200 && looksLikeFeed(contentType) {
			return candidate, nil
		}
	}

	return "", errors.New("no feed found")
}

func looksLikeFeed(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.Contains(ct, "xml") || strings.Contains(ct, "rss") || strings.Contains(ct, "atom")
}

func isGitHubRepo(site string) bool {
	return strings.Contains(site, "github.com")
}

func isRedditLink(site string) bool {
	return strings.Contains(site, "reddit.com")
}

// absoluteURL resolves href against the page it was found on.
func absoluteURL(page, href string) (string, error) {
	u, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	if u.IsAbs() {
		return href, nil
	}

	base, err := url.Parse(page)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(u).String(), nil
}
