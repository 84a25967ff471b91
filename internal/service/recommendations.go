package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/godilite/pitch-validation/internal/models"
)

// GetRecommendations narrows the cached recommendations by category, then
// priority, then limit. Original ordering is preserved.
func (s *ValidationService) GetRecommendations(ctx context.Context, pitchID string, f RecommendationFilter) (RecommendationsResult, error) {
	if f.Limit < 0 {
		return RecommendationsResult{}, fmt.Errorf("%w: limit must not be negative", ErrInvalidRequest)
	}

	score, err := s.cachedScore(ctx, "recommendations", pitchID)
	if err != nil {
		return RecommendationsResult{}, err
	}

	filtered := FilterRecommendations(score.Recommendations, f)
	return RecommendationsResult{
		PitchID:         pitchID,
		Recommendations: filtered,
		Total:           len(score.Recommendations),
		Filtered:        len(filtered),
	}, nil
}

// FilterRecommendations applies the filter chain. Empty filters match all;
// a zero limit means no truncation.
func FilterRecommendations(recs []models.Recommendation, f RecommendationFilter) []models.Recommendation {
	out := make([]models.Recommendation, 0, len(recs))
	for _, r := range recs {
		if f.Category != "" && !strings.EqualFold(r.Category, f.Category) {
			continue
		}
		if f.Priority != "" && !strings.EqualFold(string(r.Priority), f.Priority) {
			continue
		}
		out = append(out, r)
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out
}
