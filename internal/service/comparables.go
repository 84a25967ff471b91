package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/godilite/pitch-validation/internal/models"
)

const (
	defaultComparablesLimit = 10
	defaultMinSimilarity    = 70
	successROIThreshold     = 150
)

// GetComparables filters the cached comparables and summarizes the
// surviving set.
func (s *ValidationService) GetComparables(ctx context.Context, pitchID string, q ComparablesQuery) (ComparablesResult, error) {
	if q.BudgetRange != nil && q.BudgetRange.Min > q.BudgetRange.Max {
		return ComparablesResult{}, fmt.Errorf("%w: budget_range min exceeds max", ErrInvalidRequest)
	}
	if q.YearRange != nil && q.YearRange.Min > q.YearRange.Max {
		return ComparablesResult{}, fmt.Errorf("%w: year_range min exceeds max", ErrInvalidRequest)
	}

	score, err := s.cachedScore(ctx, "comparables", pitchID)
	if err != nil {
		return ComparablesResult{}, err
	}

	filtered := FilterComparables(score.Comparables, q)
	return ComparablesResult{
		PitchID:     pitchID,
		Comparables: filtered,
		Insights:    SummarizeComparables(filtered),
		Total:       len(score.Comparables),
	}, nil
}

// FilterComparables applies genre (case-insensitive), budget range, year
// range and similarity floor in that order, then truncates to the limit.
// A zero Limit and a nil MinSimilarity take their defaults; a floor of 0 or
// below keeps every relevance score.
func FilterComparables(items []models.Comparable, q ComparablesQuery) []models.Comparable {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultComparablesLimit
	}
	floor := defaultMinSimilarity
	if q.MinSimilarity != nil {
		floor = *q.MinSimilarity
	}

	out := make([]models.Comparable, 0, len(items))
	for _, c := range items {
		if q.Genre != "" && !strings.EqualFold(c.Genre, q.Genre) {
			continue
		}
		if !q.BudgetRange.contains(c.Budget) {
			continue
		}
		if !q.YearRange.contains(float64(c.Year)) {
			continue
		}
		if c.RelevanceScore < floor {
			continue
		}
		out = append(out, c)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// SummarizeComparables averages ROI, budget and box office, and reports the
// share of projects with ROI above 150%. An empty set yields zeros and no
// top performer.
func SummarizeComparables(items []models.Comparable) ComparableInsights {
	if len(items) == 0 {
		return ComparableInsights{}
	}

	var roi, budget, boxOffice float64
	successes := 0
	top := items[0]
	for _, c := range items {
		roi += c.ROI
		budget += c.Budget
		boxOffice += c.BoxOffice
		if c.ROI > successROIThreshold {
			successes++
		}
		if c.ROI > top.ROI {
			top = c
		}
	}

	n := float64(len(items))
	return ComparableInsights{
		AverageROI:       roi / n,
		AverageBudget:    budget / n,
		AverageBoxOffice: boxOffice / n,
		SuccessRate:      float64(successes) / n * 100,
		TopPerformer:     &top,
	}
}
