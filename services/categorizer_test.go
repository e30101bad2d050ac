package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bankfeed-api/models"
)

// stubClassifier maps lowercased titles to labels, defaulting to OTHER.
type stubClassifier map[string]string

func (s stubClassifier) Classify(text string) string {
	if label, ok := s[strings.ToLower(text)]; ok {
		return label
	}
	return "OTHER"
}

func TestCategorize_AttachesLabels(t *testing.T) {
	c := NewCategorizer(stubClassifier{"netflix": "LEISURE", "carrefour": "FOOD"})

	txs := []models.EnrichedTransaction{
		titled("a", "NETFLIX", 0),
		titled("b", "CARREFOUR", 1),
		titled("c", "UNKNOWN SHOP", 2),
	}

	out := c.Categorize(txs, "")
	require.Len(t, out, 3)
	assert.Equal(t, "LEISURE", out[0].Category)
	assert.Equal(t, "FOOD", out[1].Category)
	assert.Equal(t, "OTHER", out[2].Category)
}

func TestCategorize_ExactFilter(t *testing.T) {
	c := NewCategorizer(stubClassifier{"netflix": "LEISURE", "carrefour": "FOOD"})

	txs := []models.EnrichedTransaction{
		titled("a", "NETFLIX", 0),
		titled("b", "CARREFOUR", 1),
	}

	out := c.Categorize(txs, "FOOD")
	require.Len(t, out, 1)
	assert.Equal(t, "b", out[0].ID)
}

func TestCategorize_FilterIsCaseSensitive(t *testing.T) {
	c := NewCategorizer(stubClassifier{"carrefour": "FOOD"})

	out := c.Categorize([]models.EnrichedTransaction{titled("b", "CARREFOUR", 0)}, "food")
	assert.Empty(t, out, "labels are API values; a lowercase filter matches nothing")
}

func TestCategorize_NoMatchIsEmptyNotError(t *testing.T) {
	c := NewCategorizer(stubClassifier{})

	out := c.Categorize([]models.EnrichedTransaction{titled("a", "NETFLIX", 0)}, "TRANSPORT")
	assert.NotNil(t, out)
	assert.Empty(t, out)
}
