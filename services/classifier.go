package services

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jbrukh/bayesian"
)

// Classifier assigns a spending category label to a piece of transaction
// text. Implementations must be safe for concurrent read-only use; the
// pipeline shares a single instance across all requests.
type Classifier interface {
	Classify(text string) string
}

// bayesModel wraps a trained naive-Bayes classifier. It is never
// mutated after construction.
type bayesModel struct {
	classes []bayesian.Class
	cl      *bayesian.Classifier
}

func (m *bayesModel) Classify(text string) string {
	_, inx, _ := m.cl.LogScores(tokenize(text))
	return string(m.classes[inx])
}

func tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

var (
	modelOnce sync.Once
	model     Classifier
	modelErr  error
)

// LoadModel returns the process-wide category model, loading it on first
// call. Concurrent first calls share a single load; the result — or the
// load failure — is cached for the process lifetime.
func LoadModel(path string) (Classifier, error) {
	modelOnce.Do(func() {
		model, modelErr = loadModel(path)
	})
	if modelErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, modelErr)
	}
	return model, nil
}

// loadModel reads a serialized classifier when a path is configured,
// otherwise it trains one from the embedded seed corpus.
func loadModel(path string) (Classifier, error) {
	if path == "" {
		return TrainSeedModel(), nil
	}

	cl, err := bayesian.NewClassifierFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model %s: %v", path, err)
	}
	return &bayesModel{classes: cl.Classes, cl: cl}, nil
}
