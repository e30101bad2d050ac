package services

import (
	"bankfeed-api/models"
)

// Categorizer labels transactions with the shared category model and
// optionally narrows the feed to a single category.
type Categorizer struct {
	model Classifier
}

func NewCategorizer(model Classifier) *Categorizer {
	return &Categorizer{model: model}
}

// Categorize attaches a category to every transaction, classifying the
// title once per transaction. When filter is non-empty only exact label
// matches survive; labels are API values, so the comparison is
// case-sensitive. No match is not an error — the caller gets an empty
// slice.
func (c *Categorizer) Categorize(txs []models.EnrichedTransaction, filter string) []models.EnrichedTransaction {
	kept := make([]models.EnrichedTransaction, 0, len(txs))
	for _, tx := range txs {
		tx.Category = c.model.Classify(tx.Title)
		if filter != "" && tx.Category != filter {
			continue
		}
		kept = append(kept, tx)
	}
	return kept
}
