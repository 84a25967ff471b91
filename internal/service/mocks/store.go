package mocks

import (
	"context"
	"errors"
	"time"

	"github.com/godilite/pitch-validation/internal/models"
)

// MockScoreStore is a function-based mock of the service ScoreStore.
type MockScoreStore struct {
	GetFunc     func(ctx context.Context, pitchID string) (models.ValidationScore, error)
	PutFunc     func(ctx context.Context, score models.ValidationScore) (models.ValidationScore, error)
	TTLFunc     func(ctx context.Context, pitchID string) (time.Duration, error)
	HistoryFunc func(ctx context.Context, pitchID string) ([]models.TrendPoint, error)
}

func (m *MockScoreStore) Get(ctx context.Context, pitchID string) (models.ValidationScore, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, pitchID)
	}
	return models.ValidationScore{}, errors.New("GetFunc not implemented")
}

func (m *MockScoreStore) Put(ctx context.Context, score models.ValidationScore) (models.ValidationScore, error) {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, score)
	}
	return models.ValidationScore{}, errors.New("PutFunc not implemented")
}

func (m *MockScoreStore) TTL(ctx context.Context, pitchID string) (time.Duration, error) {
	if m.TTLFunc != nil {
		return m.TTLFunc(ctx, pitchID)
	}
	return 0, errors.New("TTLFunc not implemented")
}

func (m *MockScoreStore) History(ctx context.Context, pitchID string) ([]models.TrendPoint, error) {
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx, pitchID)
	}
	return nil, errors.New("HistoryFunc not implemented")
}
