package grpc

import (
	"github.com/godilite/pitch-validation/internal/models"
	"github.com/godilite/pitch-validation/internal/service"
)

type PitchRequest struct {
	PitchID string `json:"pitchId"`
}

type UpdateRequest struct {
	PitchID string                 `json:"pitchId"`
	Pitch   service.AnalyzeRequest `json:"pitch"`
}

type RecommendationsRequest struct {
	PitchID  string `json:"pitchId"`
	Category string `json:"category,omitempty"`
	Priority string `json:"priority,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

type ComparablesRequest struct {
	PitchID       string         `json:"pitchId"`
	Genre         string         `json:"genre,omitempty"`
	BudgetRange   *service.Range `json:"budget_range,omitempty"`
	YearRange     *service.Range `json:"year_range,omitempty"`
	Limit         int            `json:"limit,omitempty"`
	MinSimilarity *int           `json:"min_similarity,omitempty"`
}

type BatchRequest struct {
	Pitches []models.Pitch `json:"pitches"`
}

type ScoreResponse struct {
	Score            models.ValidationScore `json:"score"`
	ExpiresInSeconds int64                  `json:"expires_in"`
}
