package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/godilite/pitch-validation/internal/models"
	"github.com/godilite/pitch-validation/internal/quickscore"
	"github.com/godilite/pitch-validation/internal/service/mocks"
)

func sampleRecommendations() []models.Recommendation {
	return []models.Recommendation{
		{ID: "r1", Category: "story", Priority: models.LevelHigh},
		{ID: "r2", Category: "market", Priority: models.LevelHigh},
		{ID: "r3", Category: "story", Priority: models.LevelMedium},
		{ID: "r4", Category: "story", Priority: models.LevelHigh},
		{ID: "r5", Category: "financial", Priority: models.LevelLow},
	}
}

func ids(recs []models.Recommendation) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.ID)
	}
	return out
}

func TestFilterRecommendations(t *testing.T) {
	recs := sampleRecommendations()

	tests := []struct {
		name   string
		filter RecommendationFilter
		want   []string
	}{
		{name: "no filter", filter: RecommendationFilter{}, want: []string{"r1", "r2", "r3", "r4", "r5"}},
		{name: "category", filter: RecommendationFilter{Category: "story"}, want: []string{"r1", "r3", "r4"}},
		{name: "category case insensitive", filter: RecommendationFilter{Category: "STORY"}, want: []string{"r1", "r3", "r4"}},
		{name: "priority", filter: RecommendationFilter{Priority: "high"}, want: []string{"r1", "r2", "r4"}},
		{name: "category then priority", filter: RecommendationFilter{Category: "story", Priority: "high"}, want: []string{"r1", "r4"}},
		{name: "limit after filters", filter: RecommendationFilter{Category: "story", Limit: 2}, want: []string{"r1", "r3"}},
		{name: "no match", filter: RecommendationFilter{Category: "structure"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterRecommendations(recs, tt.filter)
			assert.Equal(t, tt.want, ids(got))
			assert.LessOrEqual(t, len(got), len(recs))
		})
	}
}

func TestGetRecommendations(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetRecommendations(ctx, "missing", RecommendationFilter{})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Analyze(ctx, AnalyzeRequest{Pitch: testPitch("p1")})
	require.NoError(t, err)

	_, err = svc.GetRecommendations(ctx, "p1", RecommendationFilter{Limit: -1})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	all, err := svc.GetRecommendations(ctx, "p1", RecommendationFilter{})
	require.NoError(t, err)
	assert.Equal(t, all.Total, all.Filtered)

	high, err := svc.GetRecommendations(ctx, "p1", RecommendationFilter{Priority: "high", Limit: 1})
	require.NoError(t, err)
	assert.LessOrEqual(t, high.Filtered, 1)
	for _, r := range high.Recommendations {
		assert.Equal(t, models.LevelHigh, r.Priority)
	}
}

func sampleComparables() []models.Comparable {
	return []models.Comparable{
		{Title: "A", Genre: "Thriller", Year: 2015, Budget: 10_000_000, BoxOffice: 40_000_000, ROI: 300, RelevanceScore: 90},
		{Title: "B", Genre: "thriller", Year: 2019, Budget: 30_000_000, BoxOffice: 45_000_000, ROI: 50, RelevanceScore: 80},
		{Title: "C", Genre: "Drama", Year: 2018, Budget: 5_000_000, BoxOffice: 15_000_000, ROI: 200, RelevanceScore: 95},
		{Title: "D", Genre: "Thriller", Year: 2005, Budget: 20_000_000, BoxOffice: 25_000_000, ROI: 25, RelevanceScore: 60},
	}
}

func similarityFloor(n int) *int { return &n }

func TestFilterComparables(t *testing.T) {
	items := sampleComparables()
	titles := func(cs []models.Comparable) []string {
		out := []string{}
		for _, c := range cs {
			out = append(out, c.Title)
		}
		return out
	}

	assert.Equal(t, []string{"A", "B", "C"}, titles(FilterComparables(items, ComparablesQuery{})),
		"default similarity floor drops D")
	assert.Equal(t, []string{"A", "B"}, titles(FilterComparables(items, ComparablesQuery{Genre: "THRILLER"})))
	assert.Equal(t, []string{"A", "B", "D"}, titles(FilterComparables(items, ComparablesQuery{Genre: "thriller", MinSimilarity: similarityFloor(0)})))
	assert.Equal(t, []string{"A"}, titles(FilterComparables(items, ComparablesQuery{
		BudgetRange: &Range{Min: 1_000_000, Max: 15_000_000},
		YearRange:   &Range{Min: 2010, Max: 2016},
	})))
	assert.Equal(t, []string{"A"}, titles(FilterComparables(items, ComparablesQuery{Limit: 1})))
	assert.Equal(t, []string{"C"}, titles(FilterComparables(items, ComparablesQuery{MinSimilarity: similarityFloor(95)})))
	assert.Equal(t, []string{"A", "B", "C", "D"}, titles(FilterComparables(items, ComparablesQuery{MinSimilarity: similarityFloor(0)})),
		"an explicit zero floor keeps low-relevance items")
}

func TestSummarizeComparables(t *testing.T) {
	t.Run("empty set", func(t *testing.T) {
		insights := SummarizeComparables(nil)
		assert.Zero(t, insights.AverageROI)
		assert.Zero(t, insights.SuccessRate)
		assert.Nil(t, insights.TopPerformer)
	})

	t.Run("aggregates", func(t *testing.T) {
		insights := SummarizeComparables(sampleComparables()[:3])
		assert.InDelta(t, 183.333, insights.AverageROI, 0.01)
		assert.InDelta(t, 15_000_000, insights.AverageBudget, 0.01)
		assert.InDelta(t, 100_000_000.0/3, insights.AverageBoxOffice, 0.01)
		assert.InDelta(t, 66.667, insights.SuccessRate, 0.01)
		require.NotNil(t, insights.TopPerformer)
		assert.Equal(t, "A", insights.TopPerformer.Title)
	})
}

func TestGetComparables(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetComparables(ctx, "p1", ComparablesQuery{})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetComparables(ctx, "p1", ComparablesQuery{BudgetRange: &Range{Min: 10, Max: 1}})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.Analyze(ctx, AnalyzeRequest{Pitch: testPitch("p1")})
	require.NoError(t, err)

	res, err := svc.GetComparables(ctx, "p1", ComparablesQuery{MinSimilarity: similarityFloor(0), Limit: 3})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(res.Comparables), 3)
	assert.GreaterOrEqual(t, res.Total, len(res.Comparables))
}

func sampleBenchmarks() []models.Benchmark {
	return []models.Benchmark{
		{Category: "story", YourScore: 85, IndustryAverage: 62, TopQuartile: 78, Percentile: 90},
		{Category: "market", YourScore: 50, IndustryAverage: 64, TopQuartile: 80, Percentile: 20},
		{Category: "financial", YourScore: 70, IndustryAverage: 60, TopQuartile: 76, Percentile: 64},
		{Category: "character", YourScore: 61, IndustryAverage: 61, TopQuartile: 77, Percentile: 50},
		{Category: "structure", YourScore: 40, IndustryAverage: 58, TopQuartile: 75, Percentile: 6},
	}
}

func TestBuildBenchmarkReport(t *testing.T) {
	report := BuildBenchmarkReport(sampleBenchmarks(), []string{"Story", "market"})

	require.Len(t, report.Benchmarks, 2)
	assert.Equal(t, []string{"story"}, report.Strengths)
	assert.Equal(t, []string{"market"}, report.ImprovementsNeeded)
	assert.Equal(t, 46, report.OverallPercentile)
	assert.Equal(t, 55, report.RequestedPercentile)
	require.NotNil(t, report.TopPerformingCategory)
	assert.Equal(t, "story", report.TopPerformingCategory.Category)
	require.NotNil(t, report.BiggestOpportunity)
	assert.Equal(t, "market", report.BiggestOpportunity.Category)

	for _, b := range report.Benchmarks {
		assert.GreaterOrEqual(t, b.Percentile, 0)
		assert.LessOrEqual(t, b.Percentile, 100)
	}

	none := BuildBenchmarkReport(sampleBenchmarks(), []string{"soundtrack"})
	assert.Empty(t, none.Benchmarks)
	assert.Nil(t, none.TopPerformingCategory)
	assert.Equal(t, 46, none.OverallPercentile)
}

func TestBenchmark(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Benchmark(ctx, BenchmarkRequest{Categories: []string{"story"}})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.Benchmark(ctx, BenchmarkRequest{PitchID: "p1"})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.Benchmark(ctx, BenchmarkRequest{PitchID: "p1", Categories: []string{"story"}})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Analyze(ctx, AnalyzeRequest{Pitch: testPitch("p1")})
	require.NoError(t, err)

	report, err := svc.Benchmark(ctx, BenchmarkRequest{PitchID: "p1", Categories: models.Categories})
	require.NoError(t, err)
	assert.Equal(t, "p1", report.PitchID)
	assert.Equal(t, "industry", report.ComparisonPool)
	assert.Len(t, report.Benchmarks, len(models.Categories))
	assert.Equal(t, report.OverallPercentile, report.RequestedPercentile)
	assert.NotEmpty(t, report.Rating)
}

func scoreWithOverall(id string, overall int) models.ValidationScore {
	return models.ValidationScore{
		PitchID:      id,
		OverallScore: overall,
		Categories: map[string]models.CategoryScore{
			models.CategoryStory:  {Score: overall, Strengths: []string{"Clear stakes"}, Weaknesses: []string{"Thin subplot"}},
			models.CategoryMarket: {Score: 60},
		},
	}
}

func TestBuildProgress(t *testing.T) {
	t.Run("low score synthesizes trend", func(t *testing.T) {
		p := BuildProgress(scoreWithOverall("p1", 50), nil, testNow)

		assert.Equal(t, 60, p.Completeness)
		assert.Equal(t, models.RequiredPitchFields, p.MissingFields)
		assert.Len(t, p.RecommendedFields, 3)
		assert.Equal(t, TrendSourceSynthetic, p.TrendSource)
		require.Len(t, p.ScoreTrend, 3)
		assert.Equal(t, 40, p.ScoreTrend[0].OverallScore)
		assert.Equal(t, 45, p.ScoreTrend[1].OverallScore)
		assert.Equal(t, 50, p.ScoreTrend[2].OverallScore)
		assert.Equal(t, testNow.Add(-7*24*time.Hour), p.ScoreTrend[0].Date)
		assert.Equal(t, testNow, p.ScoreTrend[2].Date)
	})

	t.Run("mid score recommends only", func(t *testing.T) {
		p := BuildProgress(scoreWithOverall("p1", 70), nil, testNow)
		assert.Equal(t, 80, p.Completeness)
		assert.Empty(t, p.MissingFields)
		assert.Len(t, p.RecommendedFields, 3)
	})

	t.Run("completeness is capped", func(t *testing.T) {
		p := BuildProgress(scoreWithOverall("p1", 95), nil, testNow)
		assert.Equal(t, 100, p.Completeness)
		assert.Empty(t, p.MissingFields)
		assert.Empty(t, p.RecommendedFields)
	})

	t.Run("real history is used", func(t *testing.T) {
		history := []models.TrendPoint{
			{Date: testNow.Add(-time.Hour), OverallScore: 55},
			{Date: testNow, OverallScore: 70},
		}
		p := BuildProgress(scoreWithOverall("p1", 70), history, testNow)
		assert.Equal(t, TrendSourceHistory, p.TrendSource)
		assert.Equal(t, history, p.ScoreTrend)
	})
}

func TestGetProgress(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetProgress(ctx, "p1")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Analyze(ctx, AnalyzeRequest{Pitch: testPitch("p1")})
	require.NoError(t, err)
	first, err := svc.GetProgress(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, TrendSourceSynthetic, first.TrendSource)

	_, err = svc.Update(ctx, "p1", AnalyzeRequest{Pitch: testPitch("")})
	require.NoError(t, err)
	second, err := svc.GetProgress(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, TrendSourceHistory, second.TrendSource)
	assert.Len(t, second.ScoreTrend, 2)
}

func TestGetProgress_HistoryFailureFallsBack(t *testing.T) {
	store := &mocks.MockScoreStore{
		GetFunc: func(_ context.Context, id string) (models.ValidationScore, error) {
			return scoreWithOverall(id, 70), nil
		},
		HistoryFunc: func(context.Context, string) ([]models.TrendPoint, error) {
			return nil, errors.New("history decode failed")
		},
	}
	svc := NewValidationService(store, &mocks.MockScoreEngine{}, quickscore.New(), zaptest.NewLogger(t))

	p, err := svc.GetProgress(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, TrendSourceSynthetic, p.TrendSource)
}

func TestBuildCompetitivePosition(t *testing.T) {
	tests := []struct {
		overall        int
		wantRanking    int
		wantPercentile int
	}{
		{overall: 72, wantRanking: 28, wantPercentile: 72},
		{overall: 100, wantRanking: 1, wantPercentile: 99},
		{overall: 0, wantRanking: 100, wantPercentile: 0},
	}
	for _, tt := range tests {
		pos := BuildCompetitivePosition(scoreWithOverall("p1", tt.overall))
		assert.Equal(t, tt.wantRanking, pos.Ranking)
		assert.Equal(t, tt.wantPercentile, pos.Percentile)
		assert.Equal(t, 100, pos.TotalPool)
		assert.Equal(t, []string{"Clear stakes"}, pos.Strengths)
		assert.Equal(t, []string{"Thin subplot"}, pos.Weaknesses)
	}
}

func TestBuildMilestones(t *testing.T) {
	ms := BuildMilestones(scoreWithOverall("p1", 60))
	require.Len(t, ms, 2)
	assert.Equal(t, 60, ms[0].Current)
	assert.Equal(t, 75, ms[0].Progress)
	assert.Equal(t, models.CategoryMarket, ms[1].Category)
	assert.Equal(t, 75, ms[1].Progress)

	capped := BuildMilestones(scoreWithOverall("p1", 96))
	assert.Equal(t, 100, capped[0].Progress)
}

func TestGetDashboard(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetDashboard(ctx, "p1")
	assert.ErrorIs(t, err, ErrNotFound)

	analyzed, err := svc.Analyze(ctx, AnalyzeRequest{Pitch: testPitch("p1")})
	require.NoError(t, err)

	d, err := svc.GetDashboard(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", d.PitchID)
	assert.Equal(t, analyzed.Score.OverallScore, d.Score.OverallScore)
	assert.Equal(t, "p1", d.Progress.PitchID)
	assert.Len(t, d.NextMilestones, 2)
	assert.Equal(t, max(1, 100-analyzed.Score.OverallScore), d.CompetitivePosition.Ranking)
}
