package services

import (
	"time"

	"bankfeed-api/models"
)

// DateRangeFilter keeps transactions booked inside an inclusive
// day-level window. A partial range (only one bound) applies no
// filtering at all: a one-sided bound is ambiguous, not guessed.
type DateRangeFilter struct{}

// FilterByRange retains transactions with from <= booking day <= to.
// Both endpoints are inclusive and compared at day granularity, so any
// time-of-day component of the bounds is irrelevant. Input order is
// preserved.
func (DateRangeFilter) FilterByRange(txs []models.EnrichedTransaction, from, to *time.Time) []models.EnrichedTransaction {
	if from == nil || to == nil {
		return txs
	}

	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)

	kept := make([]models.EnrichedTransaction, 0, len(txs))
	for _, tx := range txs {
		if !tx.BookedAt.Before(start) && tx.BookedAt.Before(end) {
			kept = append(kept, tx)
		}
	}
	return kept
}
