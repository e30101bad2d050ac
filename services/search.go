package services

import (
	"sort"
	"strings"

	"github.com/xrash/smetrics"

	"bankfeed-api/models"
)

// DefaultSearchThreshold keeps matches whose best window scores at least
// this much Jaro-Winkler similarity against the query.
const DefaultSearchThreshold = 0.72

// SearchMatcher ranks transactions by approximate similarity of their
// title to a free-text query.
type SearchMatcher struct {
	Threshold float64
}

func NewSearchMatcher() *SearchMatcher {
	return &SearchMatcher{Threshold: DefaultSearchThreshold}
}

// Search returns the transactions whose title matches the query, best
// match first. The sort is stable: equal scores keep provider order.
// An empty query is the identity — same slice back, same order — so the
// stage composes cleanly with the filters that run after it.
func (m *SearchMatcher) Search(txs []models.EnrichedTransaction, query string) []models.EnrichedTransaction {
	if query == "" {
		return txs
	}

	matched := make([]models.EnrichedTransaction, 0, len(txs))
	for _, tx := range txs {
		score := matchScore(tx.Title, query)
		if score >= m.Threshold {
			tx.Score = score
			matched = append(matched, tx)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Score > matched[j].Score
	})

	return matched
}

// matchScore compares the query against every word window of the title
// with the query's width and keeps the best Jaro-Winkler similarity.
// Scoring the whole title at once would punish long titles for their
// length; bank titles bury the merchant between reference noise.
func matchScore(title, query string) float64 {
	if title == "" {
		return 0
	}
	title = strings.ToLower(title)
	query = strings.ToLower(query)

	words := strings.Fields(title)
	width := len(strings.Fields(query))
	if width == 0 || width > len(words) {
		return smetrics.JaroWinkler(title, query, 0.7, 4)
	}

	best := 0.0
	for i := 0; i+width <= len(words); i++ {
		window := strings.Join(words[i:i+width], " ")
		if s := smetrics.JaroWinkler(window, query, 0.7, 4); s > best {
			best = s
		}
	}
	return best
}
