package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bankfeed-api/models"
	"bankfeed-api/utils"
)

func testPipeline(model Classifier) *EnrichmentPipeline {
	return NewEnrichmentPipeline(utils.EUR, func() (Classifier, error) {
		return model, nil
	})
}

func feedFixture() []models.RawTransaction {
	// Newest first, one per day.
	return []models.RawTransaction{
		rawTx("t0", "2024-03-14", "-12.99", "NETFLIS"),
		rawTx("t1", "2024-03-13", "-54.30", "CARREFOUR MARKET"),
		rawTx("t2", "2024-03-12", "-12.99", "NETFLIX"),
		rawTx("t3", "2024-03-11", "2100.00", "VIREMENT SALAIRE"),
	}
}

func TestRun_NoFiltersKeepsEverythingInProviderOrder(t *testing.T) {
	p := testPipeline(stubClassifier{})

	out, err := p.Run(feedFixture(), "1500.00", FeedQuery{})
	require.NoError(t, err)
	require.Len(t, out, 4)

	// Weight round trip: 0..n-1 exactly once, in order.
	for i, tx := range out {
		assert.Equal(t, i, tx.Weight)
	}
}

func TestRun_RestoresProviderOrderAfterSearchReordering(t *testing.T) {
	p := testPipeline(stubClassifier{})

	// The search stage ranks the exact "NETFLIX" (weight 2) above the
	// near-miss "NETFLIS" (weight 0); the final output must be back in
	// provider order anyway.
	out, err := p.Run(feedFixture(), "1500.00", FeedQuery{Search: "netflix"})
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "t0", out[0].ID)
	assert.Equal(t, "t2", out[1].ID)
	assert.Less(t, out[0].Weight, out[1].Weight)
}

func TestRun_BalancesComputedBeforeFiltering(t *testing.T) {
	p := testPipeline(stubClassifier{})

	// Filter down to a single old transaction; its balance must still
	// account for every newer amount that was filtered out.
	out, err := p.Run(feedFixture(), "1500.00", FeedQuery{From: day("2024-03-11"), To: day("2024-03-11")})
	require.NoError(t, err)
	require.Len(t, out, 1)

	// 1500 - (-12.99) - (-54.30) - (-12.99) = 1580.28
	assert.Equal(t, "t3", out[0].ID)
	assert.Equal(t, "1 580,28 €", out[0].Balance)
}

func TestRun_CategoryFilterComposesWithOthers(t *testing.T) {
	model := stubClassifier{
		"netflis":          "LEISURE",
		"netflix":          "LEISURE",
		"carrefour market": "FOOD",
	}
	p := testPipeline(model)

	out, err := p.Run(feedFixture(), "1500.00", FeedQuery{
		From:     day("2024-03-12"),
		To:       day("2024-03-14"),
		Category: "LEISURE",
	})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "t0", out[0].ID)
	assert.Equal(t, "t2", out[1].ID)
}

func TestRun_Deterministic(t *testing.T) {
	p := testPipeline(stubClassifier{"netflix": "LEISURE"})
	q := FeedQuery{Search: "netflix", Category: "LEISURE"}

	first, err := p.Run(feedFixture(), "1500.00", q)
	require.NoError(t, err)
	second, err := p.Run(feedFixture(), "1500.00", q)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRun_NoMatchYieldsEmptyNotError(t *testing.T) {
	p := testPipeline(stubClassifier{})

	out, err := p.Run(feedFixture(), "1500.00", FeedQuery{Search: "zzzzqqqq"})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRun_DataFormatErrorSurfaces(t *testing.T) {
	p := testPipeline(stubClassifier{})

	txs := []models.RawTransaction{rawTx("bad", "2024-03-14", "oops")}
	out, err := p.Run(txs, "100.00", FeedQuery{})
	assert.Nil(t, out)
	assert.ErrorIs(t, err, ErrDataFormat)
}

func TestRun_ModelUnavailableSurfaces(t *testing.T) {
	p := NewEnrichmentPipeline(utils.EUR, func() (Classifier, error) {
		return nil, fmt.Errorf("%w: model file missing", ErrModelUnavailable)
	})

	out, err := p.Run(feedFixture(), "1500.00", FeedQuery{})
	assert.Nil(t, out)
	assert.ErrorIs(t, err, ErrModelUnavailable)
}

func TestRun_EmptyInput(t *testing.T) {
	p := testPipeline(stubClassifier{})

	out, err := p.Run(nil, "0.00", FeedQuery{})
	require.NoError(t, err)
	assert.Empty(t, out)
}
