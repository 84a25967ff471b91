package mocks

import (
	"errors"
	"time"

	"github.com/godilite/pitch-validation/internal/models"
)

// MockScoreEngine is a function-based mock of the service ScoreEngine.
type MockScoreEngine struct {
	ComputeFunc func(p models.Pitch, opts models.AnalysisOptions, now time.Time) (models.ValidationScore, error)
}

func (m *MockScoreEngine) Compute(p models.Pitch, opts models.AnalysisOptions, now time.Time) (models.ValidationScore, error) {
	if m.ComputeFunc != nil {
		return m.ComputeFunc(p, opts, now)
	}
	return models.ValidationScore{}, errors.New("ComputeFunc not implemented")
}
