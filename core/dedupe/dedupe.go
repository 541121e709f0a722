// ABOUTME: Deduplication stage drops near-duplicate titles within a fetch batch
// ABOUTME: First-seen wins; relative order of survivors is preserved

package dedupe

import (
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"newsdigest/core/domain"
	"newsdigest/core/interfaces"
)

// DefaultThreshold is the 0-100 similarity at or above which a later
// title counts as a duplicate. The value is carried over from the tuned
// pipeline rather than re-derived.
const DefaultThreshold = 85

// Deduplicator collapses near-identical titles.
type Deduplicator struct {
	threshold float64
	metric    *metrics.JaroWinkler
	logger    interfaces.Logger
}

// New creates a deduplicator with the given 0-100 similarity threshold.
// A threshold outside (0, 100] falls back to the default.
func New(threshold int, logger interfaces.Logger) *Deduplicator {
	if threshold <= 0 || threshold > 100 {
		threshold = DefaultThreshold
	}
	return &Deduplicator{
		threshold: float64(threshold),
		metric:    metrics.NewJaroWinkler(),
		logger:    logger,
	}
}

// Dedupe returns the subsequence of articles whose titles are not
// near-duplicates of an earlier title. Quadratic in batch size, which is
// fine for the tens-to-hundreds of articles a run handles; replacing it
// with a hashing scheme would change first-seen-wins ordering.
func (d *Deduplicator) Dedupe(articles []domain.Article) []domain.Article {
	unique := make([]domain.Article, 0, len(articles))
	seen := make([]string, 0, len(articles))

	for _, article := range articles {
		title := strings.ToLower(article.Title)

		dupe := false
		for _, accepted := range seen {
			if d.similarity(title, accepted) >= d.threshold {
				dupe = true
				break
			}
		}

		if dupe {
			if d.logger != nil {
				d.logger.Debug("Dropped duplicate title", map[string]interface{}{
					"title": article.Title,
				})
			}
			continue
		}

		unique = append(unique, article)
		seen = append(seen, title)
	}

	return unique
}

// similarity is the case-insensitive fuzzy ratio on a 0-100 scale.
func (d *Deduplicator) similarity(a, b string) float64 {
	return strutil.Similarity(a, b, d.metric) * 100
}
