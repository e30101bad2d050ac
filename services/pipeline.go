package services

import (
	"sort"
	"time"

	"bankfeed-api/models"
	"bankfeed-api/utils"
)

// FeedQuery carries the caller's filters for one feed request. Zero
// values mean "no filter".
type FeedQuery struct {
	Search   string
	From     *time.Time
	To       *time.Time
	Category string
}

// EnrichmentPipeline turns a raw provider transaction list plus the
// account's current balance into the enriched feed. The stage order is
// fixed: balances are reconstructed over the complete, unfiltered list
// (filtering first would skip amounts and corrupt every balance after
// the gap), then search, date window and category act as pure filters,
// and a final sort by weight restores provider order no matter how
// search reordered things in between.
type EnrichmentPipeline struct {
	balances *BalanceAccumulator
	search   *SearchMatcher
	dates    DateRangeFilter
	model    func() (Classifier, error)
}

// NewEnrichmentPipeline wires the stages. model is called on every run
// and is expected to hand back the same cached instance each time; see
// LoadModel.
func NewEnrichmentPipeline(format utils.CurrencyFormat, model func() (Classifier, error)) *EnrichmentPipeline {
	return &EnrichmentPipeline{
		balances: &BalanceAccumulator{Format: format},
		search:   NewSearchMatcher(),
		model:    model,
	}
}

// Run executes the pipeline. Errors surface unmodified: ErrDataFormat
// for provider data the balances cannot be reconstructed from,
// ErrModelUnavailable when the category model cannot be obtained.
func (p *EnrichmentPipeline) Run(txs []models.RawTransaction, currentBalance string, q FeedQuery) ([]models.EnrichedTransaction, error) {
	enriched, err := p.balances.Annotate(txs, currentBalance)
	if err != nil {
		return nil, err
	}

	enriched = p.search.Search(enriched, q.Search)
	enriched = p.dates.FilterByRange(enriched, q.From, q.To)

	model, err := p.model()
	if err != nil {
		return nil, err
	}
	enriched = NewCategorizer(model).Categorize(enriched, q.Category)

	sort.Slice(enriched, func(i, j int) bool {
		return enriched[i].Weight < enriched[j].Weight
	})

	return enriched, nil
}
