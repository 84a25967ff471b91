package engine

import (
	"fmt"
	"math"

	"github.com/godilite/pitch-validation/internal/models"
)

// Rating bands shared by insights and benchmark reports.
func Rating(score int) string {
	switch {
	case score >= 90:
		return "Exceptional"
	case score >= 75:
		return "Strong"
	case score >= 50:
		return "Average"
	case score >= 25:
		return "Below Average"
	default:
		return "Needs Improvement"
	}
}

func (e *Engine) insights(p models.Pitch, score models.ValidationScore, predictions bool) models.AIInsights {
	best, worst := extremes(score.Categories)

	in := models.AIInsights{
		Summary: fmt.Sprintf("%q is a %s pitch scoring %d/100 (%s). Strongest area: %s. Weakest area: %s.",
			p.Title, NormalizeGenre(p.Genre), score.OverallScore, Rating(score.OverallScore), best, worst),
		KeyStrengths: []string{},
		KeyRisks:     []string{},
	}

	for _, name := range models.Categories {
		for _, s := range score.Categories[name].Strengths {
			if len(in.KeyStrengths) < 3 {
				in.KeyStrengths = append(in.KeyStrengths, s)
			}
		}
	}
	riskSources := []string{worst}
	if best != worst {
		riskSources = append(riskSources, best)
	}
	for _, name := range riskSources {
		for _, w := range score.Categories[name].Weaknesses {
			if len(in.KeyRisks) < 3 {
				in.KeyRisks = append(in.KeyRisks, w)
			}
		}
	}

	market := score.Categories[models.CategoryMarket].Score
	switch {
	case market >= 75:
		in.MarketPotential = models.LevelHigh
	case market >= 55:
		in.MarketPotential = models.LevelMedium
	default:
		in.MarketPotential = models.LevelLow
	}

	if predictions {
		quality := float64(score.OverallScore) / 100
		in.PredictedPerformance = &models.PredictedPerformance{
			BoxOfficeLow:       math.Round(p.Budget * (0.5 + quality)),
			BoxOfficeHigh:      math.Round(p.Budget * (1 + 3*quality)),
			SuccessProbability: Clamp(0.6*float64(score.OverallScore) + 0.4*float64(market)),
		}
	}
	return in
}

func (e *Engine) marketTiming(p models.Pitch) *models.MarketTiming {
	profile, ok := e.ref.Genre(p.Genre)
	if !ok {
		return &models.MarketTiming{
			GenreTrend:           TrendStable,
			CompetitionLevel:     models.LevelMedium,
			OptimalReleaseWindow: "Flexible",
			Score:                60,
		}
	}

	s := trendScore(profile.Trend)
	switch profile.Competition {
	case models.LevelHigh:
		s -= 10
	case models.LevelLow:
		s += 10
	}
	return &models.MarketTiming{
		GenreTrend:           profile.Trend,
		CompetitionLevel:     profile.Competition,
		OptimalReleaseWindow: profile.ReleaseWindow,
		Score:                Clamp(float64(s)),
	}
}

// extremes returns the highest and lowest scoring categories, ties resolved
// by canonical order.
func extremes(categories map[string]models.CategoryScore) (best, worst string) {
	for _, name := range models.Categories {
		c, ok := categories[name]
		if !ok {
			continue
		}
		if best == "" || c.Score > categories[best].Score {
			best = name
		}
		if worst == "" || c.Score < categories[worst].Score {
			worst = name
		}
	}
	return best, worst
}
