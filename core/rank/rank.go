// ABOUTME: Relevance filtering and ranking of scored articles
// ABOUTME: Threshold filter followed by a stable sort, highest score first

package rank

import (
	"sort"

	"newsdigest/core/domain"
	"newsdigest/core/interfaces"
)

// FilterRank keeps articles whose score meets minScore and orders them by
// descending score. The sort is stable, so equally scored articles keep
// their fetch order. The input slice is not modified.
func FilterRank(articles []domain.Article, minScore float64, logger interfaces.Logger) []domain.Article {
	kept := make([]domain.Article, 0, len(articles))
	for _, a := range articles {
		if a.Score >= minScore {
			kept = append(kept, a)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Score > kept[j].Score
	})

	if logger != nil {
		logger.Info("Filtered articles by relevance", map[string]interface{}{
			"min_score": minScore,
			"in":        len(articles),
			"out":       len(kept),
		})
	}

	return kept
}
