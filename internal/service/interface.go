package service

import (
	"context"
	"time"

	"github.com/godilite/pitch-validation/internal/models"
)

// ScoreStore is the cache-backed store of full analyses.
type ScoreStore interface {
	Get(ctx context.Context, pitchID string) (models.ValidationScore, error)
	Put(ctx context.Context, score models.ValidationScore) (models.ValidationScore, error)
	TTL(ctx context.Context, pitchID string) (time.Duration, error)
	History(ctx context.Context, pitchID string) ([]models.TrendPoint, error)
}

// ScoreEngine computes a full ValidationScore without side effects.
type ScoreEngine interface {
	Compute(p models.Pitch, opts models.AnalysisOptions, now time.Time) (models.ValidationScore, error)
}

// QuickScorer rates a single field for live feedback.
type QuickScorer interface {
	Score(pitchID, field, content string) (models.RealTimeValidation, error)
}
