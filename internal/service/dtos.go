package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/godilite/pitch-validation/internal/models"
)

// AnalyzeRequest is a pitch plus the options for a full analysis.
type AnalyzeRequest struct {
	models.Pitch
	Options models.AnalysisOptions `json:"options"`
}

// AnalysisResult is a stored score with its remaining cache lifetime.
type AnalysisResult struct {
	Score     models.ValidationScore `json:"score"`
	ExpiresIn time.Duration          `json:"-"`
}

type RecommendationFilter struct {
	Category string
	Priority string
	Limit    int
}

type RecommendationsResult struct {
	PitchID         string                  `json:"pitchId"`
	Recommendations []models.Recommendation `json:"recommendations"`
	Total           int                     `json:"total"`
	Filtered        int                     `json:"filtered"`
}

// Range is an inclusive numeric interval. A nil *Range disables the filter.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r *Range) contains(v float64) bool {
	return r == nil || (v >= r.Min && v <= r.Max)
}

type ComparablesQuery struct {
	Genre         string
	BudgetRange   *Range
	YearRange     *Range
	Limit         int
	MinSimilarity *int // nil means the default floor of 70
}

type ComparableInsights struct {
	AverageROI       float64            `json:"average_roi"`
	AverageBudget    float64            `json:"average_budget"`
	AverageBoxOffice float64            `json:"average_box_office"`
	SuccessRate      float64            `json:"success_rate"`
	TopPerformer     *models.Comparable `json:"top_performer"`
}

type ComparablesResult struct {
	PitchID     string              `json:"pitchId"`
	Comparables []models.Comparable `json:"comparables"`
	Insights    ComparableInsights  `json:"insights"`
	Total       int                 `json:"total"`
}

type BenchmarkRequest struct {
	PitchID        string   `json:"pitchId"`
	Categories     []string `json:"categories"`
	ComparisonPool string   `json:"comparison_pool,omitempty"`
}

type BenchmarkReport struct {
	PitchID               string             `json:"pitchId"`
	ComparisonPool        string             `json:"comparison_pool"`
	Benchmarks            []models.Benchmark `json:"benchmarks"`
	OverallPercentile     int                `json:"overall_percentile"`
	RequestedPercentile   int                `json:"requested_percentile"`
	Rating                string             `json:"rating"`
	Strengths             []string           `json:"strengths"`
	ImprovementsNeeded    []string           `json:"improvements_needed"`
	TopPerformingCategory *models.Benchmark  `json:"top_performing_category"`
	BiggestOpportunity    *models.Benchmark  `json:"biggest_opportunity"`
}

type RealtimeRequest struct {
	PitchID string       `json:"pitchId"`
	Field   string       `json:"field"`
	Content FieldContent `json:"content"`
}

// FieldContent is the current value of one pitch field. It decodes from a
// JSON string or number, so a budget may be sent either way; null is empty.
type FieldContent string

func (c *FieldContent) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		*c = ""
		return nil
	case len(trimmed) > 0 && trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*c = FieldContent(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("content must be a string or a number")
	}
	*c = FieldContent(n.String())
	return nil
}

type CompetitivePosition struct {
	Ranking    int      `json:"ranking"`
	TotalPool  int      `json:"total_pool"`
	Percentile int      `json:"percentile"`
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
}

type Milestone struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Current  int    `json:"current"`
	Target   int    `json:"target"`
	Progress int    `json:"progress"`
}

type Dashboard struct {
	PitchID             string                    `json:"pitchId"`
	Score               models.ValidationScore    `json:"score"`
	Progress            models.ValidationProgress `json:"progress"`
	CompetitivePosition CompetitivePosition       `json:"competitive_position"`
	NextMilestones      []Milestone               `json:"nextMilestones"`
}

// BatchItemResult is one successfully scored batch entry.
type BatchItemResult struct {
	Index        int                    `json:"index"`
	PitchID      string                 `json:"pitchId"`
	Title        string                 `json:"title"`
	OverallScore int                    `json:"overallScore"`
	Score        models.ValidationScore `json:"score"`
}

// BatchFailure records a batch entry that could not be scored. It is data,
// not an error: the rest of the batch still succeeds.
type BatchFailure struct {
	Index   int    `json:"index"`
	PitchID string `json:"pitchId,omitempty"`
	Error   string `json:"error"`
}

type ScoreDistribution struct {
	Excellent        int `json:"excellent"`
	Good             int `json:"good"`
	NeedsImprovement int `json:"needs_improvement"`
}

type BatchTopPerformer struct {
	PitchID      string `json:"pitchId"`
	Title        string `json:"title"`
	OverallScore int    `json:"overallScore"`
}

type BatchSummary struct {
	AverageScore     float64            `json:"average_score"`
	Distribution     ScoreDistribution  `json:"distribution"`
	TopPerformer     *BatchTopPerformer `json:"top_performer"`
	CommonWeaknesses []string           `json:"common_weaknesses"`
}

type BatchResult struct {
	Results     []BatchItemResult `json:"results"`
	Failed      []BatchFailure    `json:"failed"`
	FailedCount int               `json:"failed_count"`
	Summary     BatchSummary      `json:"summary"`
}
