package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/godilite/pitch-validation/internal/models"
)

// Trend sources reported on ValidationProgress.
const (
	TrendSourceHistory   = "history"
	TrendSourceSynthetic = "synthetic"
)

const (
	missingFieldsBelow     = 60
	recommendedFieldsBelow = 80
	maxRecommendedFields   = 3
)

// GetProgress reports completeness and the score trend for a cached pitch.
func (s *ValidationService) GetProgress(ctx context.Context, pitchID string) (models.ValidationProgress, error) {
	score, err := s.cachedScore(ctx, "progress", pitchID)
	if err != nil {
		return models.ValidationProgress{}, err
	}

	history, err := s.store.History(ctx, pitchID)
	if err != nil {
		s.logger.Warn("score history unavailable, using synthetic trend",
			zap.String("pitch_id", pitchID), zap.Error(err))
		history = nil
	}
	return BuildProgress(score, history, s.now()), nil
}

// BuildProgress derives progress from a score. Completeness is a proxy of
// the overall score. Two or more history snapshots form the trend;
// otherwise a three point trend is synthesized from the current score.
func BuildProgress(score models.ValidationScore, history []models.TrendPoint, now time.Time) models.ValidationProgress {
	progress := models.ValidationProgress{
		PitchID:           score.PitchID,
		Completeness:      min(100, score.OverallScore+10),
		MissingFields:     []string{},
		RecommendedFields: []string{},
	}
	if score.OverallScore < missingFieldsBelow {
		progress.MissingFields = append(progress.MissingFields, models.RequiredPitchFields...)
	}
	if score.OverallScore < recommendedFieldsBelow {
		n := min(maxRecommendedFields, len(models.OptionalPitchFields))
		progress.RecommendedFields = append(progress.RecommendedFields, models.OptionalPitchFields[:n]...)
	}

	if len(history) >= 2 {
		progress.ScoreTrend = history
		progress.TrendSource = TrendSourceHistory
		return progress
	}
	progress.ScoreTrend = syntheticTrend(score, now)
	progress.TrendSource = TrendSourceSynthetic
	return progress
}

func syntheticTrend(score models.ValidationScore, now time.Time) []models.TrendPoint {
	day := 24 * time.Hour
	steps := []struct {
		ago    time.Duration
		factor float64
	}{
		{7 * day, 0.8},
		{3 * day, 0.9},
		{0, 1},
	}

	points := make([]models.TrendPoint, 0, len(steps))
	for _, st := range steps {
		snapshot := make(map[string]int, len(score.Categories))
		for name, c := range score.Categories {
			snapshot[name] = scaled(c.Score, st.factor)
		}
		points = append(points, models.TrendPoint{
			Date:             now.Add(-st.ago),
			OverallScore:     scaled(score.OverallScore, st.factor),
			CategorySnapshot: snapshot,
		})
	}
	return points
}

func scaled(v int, factor float64) int {
	return int(float64(v)*factor + 0.5)
}
