package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bankfeed-api/models"
)

func titled(id, title string, weight int) models.EnrichedTransaction {
	return models.EnrichedTransaction{ID: id, Title: title, Weight: weight}
}

func TestSearch_EmptyQueryIsIdentity(t *testing.T) {
	m := NewSearchMatcher()

	txs := []models.EnrichedTransaction{
		titled("a", "NETFLIX", 0),
		titled("b", "CARREFOUR", 1),
	}

	out := m.Search(txs, "")
	assert.Equal(t, txs, out, "no query must pass the input through untouched")
}

func TestSearch_FiltersBelowThreshold(t *testing.T) {
	m := NewSearchMatcher()

	txs := []models.EnrichedTransaction{
		titled("a", "NETFLIX ABONNEMENT", 0),
		titled("b", "SNCF BILLET TRAIN", 1),
	}

	out := m.Search(txs, "netflix")
	require.Len(t, out, 1)
	assert.Equal(t, "a", out[0].ID)
}

func TestSearch_OrdersByDescendingScore(t *testing.T) {
	m := NewSearchMatcher()

	// "netflis" is close but not exact; the exact title must rank first
	// even though it comes later in the input.
	txs := []models.EnrichedTransaction{
		titled("near", "NETFLIS", 0),
		titled("exact", "NETFLIX", 1),
	}

	out := m.Search(txs, "netflix")
	require.Len(t, out, 2)
	assert.Equal(t, "exact", out[0].ID)
	assert.Equal(t, "near", out[1].ID)
	assert.Greater(t, out[0].Score, out[1].Score)
}

func TestSearch_TiesKeepInputOrder(t *testing.T) {
	m := NewSearchMatcher()

	txs := []models.EnrichedTransaction{
		titled("first", "SPOTIFY", 0),
		titled("second", "SPOTIFY", 1),
	}

	out := m.Search(txs, "spotify")
	require.Len(t, out, 2)
	assert.Equal(t, "first", out[0].ID)
	assert.Equal(t, "second", out[1].ID)
}

func TestSearch_EmptyTitleNeverMatches(t *testing.T) {
	m := NewSearchMatcher()

	out := m.Search([]models.EnrichedTransaction{titled("a", "", 0)}, "anything")
	assert.Empty(t, out)
}

func TestSearch_MatchesWordInsideLongTitle(t *testing.T) {
	m := NewSearchMatcher()

	txs := []models.EnrichedTransaction{
		titled("a", "PRLV SEPA NETFLIX INTERNATIONAL REF 0042", 0),
	}

	out := m.Search(txs, "netflix")
	require.Len(t, out, 1, "the merchant word buried in reference noise should still match")
}
