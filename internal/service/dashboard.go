package service

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/godilite/pitch-validation/internal/models"
)

const (
	competitivePoolSize = 100
	milestoneTarget     = 80
)

// GetDashboard composes score, progress, competitive position and the next
// milestones. Both reads run concurrently and are joined before composing;
// a failure of either fails the dashboard.
func (s *ValidationService) GetDashboard(ctx context.Context, pitchID string) (Dashboard, error) {
	var (
		score    models.ValidationScore
		progress models.ValidationProgress
		scoreErr error
		progErr  error
	)

	var g errgroup.Group
	g.Go(func() error {
		score, scoreErr = s.cachedScore(ctx, "dashboard", pitchID)
		return nil
	})
	g.Go(func() error {
		progress, progErr = s.GetProgress(ctx, pitchID)
		return nil
	})
	_ = g.Wait()

	if scoreErr != nil {
		return Dashboard{}, scoreErr
	}
	if progErr != nil {
		return Dashboard{}, progErr
	}

	return Dashboard{
		PitchID:             pitchID,
		Score:               score,
		Progress:            progress,
		CompetitivePosition: BuildCompetitivePosition(score),
		NextMilestones:      BuildMilestones(score),
	}, nil
}

// BuildCompetitivePosition places the pitch in a notional pool of 100 using
// its overall score alone.
func BuildCompetitivePosition(score models.ValidationScore) CompetitivePosition {
	story := score.Categories[models.CategoryStory]
	pos := CompetitivePosition{
		Ranking:    max(1, int(math.Round(float64(competitivePoolSize-score.OverallScore)))),
		TotalPool:  competitivePoolSize,
		Percentile: min(99, score.OverallScore),
		Strengths:  story.Strengths,
		Weaknesses: story.Weaknesses,
	}
	if pos.Strengths == nil {
		pos.Strengths = []string{}
	}
	if pos.Weaknesses == nil {
		pos.Weaknesses = []string{}
	}
	return pos
}

// BuildMilestones returns the overall-score and market-analysis milestones.
func BuildMilestones(score models.ValidationScore) []Milestone {
	market := score.Categories[models.CategoryMarket].Score
	return []Milestone{
		newMilestone("Reach an overall score of 80", "overall", score.OverallScore, milestoneTarget),
		newMilestone("Complete market analysis", models.CategoryMarket, market, milestoneTarget),
	}
}

func newMilestone(title, category string, current, target int) Milestone {
	return Milestone{
		Title:    title,
		Category: category,
		Current:  current,
		Target:   target,
		Progress: min(100, int(math.Round(float64(current)/float64(target)*100))),
	}
}
