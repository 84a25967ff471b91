package models

import "time"

// Category names scored by the engine.
const (
	CategoryStory     = "story"
	CategoryMarket    = "market"
	CategoryFinancial = "financial"
	CategoryCharacter = "character"
	CategoryStructure = "structure"
)

// Categories lists every scored category in canonical order.
var Categories = []string{
	CategoryStory,
	CategoryMarket,
	CategoryFinancial,
	CategoryCharacter,
	CategoryStructure,
}

// Level is shared by factor impact and recommendation priority/effort.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Rank orders levels so that high sorts first.
func (l Level) Rank() int {
	switch l {
	case LevelHigh:
		return 0
	case LevelMedium:
		return 1
	default:
		return 2
	}
}

// ValidationScore is the complete result of a full analysis pass. It is the
// only value stored in the score cache.
type ValidationScore struct {
	PitchID         string                   `json:"pitchId"`
	Version         int64                    `json:"version"`
	OverallScore    int                      `json:"overallScore"`
	Confidence      int                      `json:"confidence"`
	Categories      map[string]CategoryScore `json:"categories"`
	Recommendations []Recommendation         `json:"recommendations"`
	Comparables     []Comparable             `json:"comparables"`
	Benchmarks      []Benchmark              `json:"benchmarks"`
	AIInsights      AIInsights               `json:"aiInsights"`
	MarketTiming    *MarketTiming            `json:"marketTiming,omitempty"`
	Depth           string                   `json:"depth"`
	GeneratedAt     time.Time                `json:"generatedAt"`
}

// CategoryScore is one scored dimension of a pitch.
type CategoryScore struct {
	Score        int      `json:"score"`
	Weight       float64  `json:"weight"`
	Confidence   int      `json:"confidence"`
	Factors      []Factor `json:"factors"`
	Strengths    []string `json:"strengths"`
	Weaknesses   []string `json:"weaknesses"`
	Improvements []string `json:"improvements"`
}

// Factor is a single heuristic contributing to a category score.
type Factor struct {
	Name        string `json:"name"`
	Score       int    `json:"score"`
	Impact      Level  `json:"impact"`
	Description string `json:"description"`
}

type Recommendation struct {
	ID              string `json:"id"`
	Category        string `json:"category"`
	Priority        Level  `json:"priority"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	EstimatedImpact int    `json:"estimatedImpact"`
	Effort          Level  `json:"effort"`
	Timeline        string `json:"timeline"`
	Cost            string `json:"cost"`
}

// Comparable is a historical project used as a similarity and ROI reference.
// ROI is expressed in percent.
type Comparable struct {
	Title          string  `json:"title"`
	Genre          string  `json:"genre"`
	Year           int     `json:"year"`
	Budget         float64 `json:"budget"`
	BoxOffice      float64 `json:"boxOffice"`
	ROI            float64 `json:"roi"`
	RelevanceScore int     `json:"relevance_score"`
}

type Benchmark struct {
	Category        string `json:"category"`
	YourScore       int    `json:"your_score"`
	IndustryAverage int    `json:"industry_average"`
	TopQuartile     int    `json:"top_quartile"`
	Percentile      int    `json:"percentile"`
}

type AIInsights struct {
	Summary              string                `json:"summary"`
	KeyStrengths         []string              `json:"keyStrengths"`
	KeyRisks             []string              `json:"keyRisks"`
	MarketPotential      Level                 `json:"marketPotential"`
	PredictedPerformance *PredictedPerformance `json:"predictedPerformance,omitempty"`
}

type PredictedPerformance struct {
	BoxOfficeLow       float64 `json:"boxOfficeLow"`
	BoxOfficeHigh      float64 `json:"boxOfficeHigh"`
	SuccessProbability int     `json:"successProbability"`
}

type MarketTiming struct {
	GenreTrend           string `json:"genreTrend"`
	CompetitionLevel     Level  `json:"competitionLevel"`
	OptimalReleaseWindow string `json:"optimalReleaseWindow"`
	Score                int    `json:"score"`
}

// TrendPoint is one entry of a pitch's score trend.
type TrendPoint struct {
	Date             time.Time      `json:"date"`
	OverallScore     int            `json:"overallScore"`
	CategorySnapshot map[string]int `json:"categorySnapshot"`
}

type ValidationProgress struct {
	PitchID           string       `json:"pitchId"`
	Completeness      int          `json:"completeness"`
	MissingFields     []string     `json:"missingFields"`
	RecommendedFields []string     `json:"recommendedFields"`
	ScoreTrend        []TrendPoint `json:"scoreTrend"`
	TrendSource       string       `json:"trendSource"`
}

// RealTimeValidation is an ephemeral single-field score. It is never cached.
type RealTimeValidation struct {
	PitchID     string    `json:"pitchId"`
	Field       string    `json:"field"`
	Content     string    `json:"content"`
	QuickScore  int       `json:"quickScore"`
	Suggestions []string  `json:"suggestions"`
	Warnings    []string  `json:"warnings"`
	Timestamp   time.Time `json:"timestamp"`
}
