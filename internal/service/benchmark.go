package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/godilite/pitch-validation/internal/engine"
	"github.com/godilite/pitch-validation/internal/models"
)

const defaultComparisonPool = "industry"

// Benchmark reports how the requested categories compare with industry data.
//
// OverallPercentile is the mean over all of the pitch's benchmarks, not only
// the requested ones; RequestedPercentile covers just the requested subset.
func (s *ValidationService) Benchmark(ctx context.Context, req BenchmarkRequest) (BenchmarkReport, error) {
	if strings.TrimSpace(req.PitchID) == "" {
		return BenchmarkReport{}, fmt.Errorf("%w: pitchId is required", ErrInvalidRequest)
	}
	if len(req.Categories) == 0 {
		return BenchmarkReport{}, fmt.Errorf("%w: categories must be a non-empty list", ErrInvalidRequest)
	}

	score, err := s.cachedScore(ctx, "benchmark", req.PitchID)
	if err != nil {
		return BenchmarkReport{}, err
	}

	report := BuildBenchmarkReport(score.Benchmarks, req.Categories)
	report.PitchID = req.PitchID
	report.ComparisonPool = req.ComparisonPool
	if report.ComparisonPool == "" {
		report.ComparisonPool = defaultComparisonPool
	}
	return report, nil
}

// BuildBenchmarkReport selects the requested categories and derives the
// rating, strengths and improvement areas.
func BuildBenchmarkReport(all []models.Benchmark, categories []string) BenchmarkReport {
	wanted := make(map[string]bool, len(categories))
	for _, c := range categories {
		wanted[strings.ToLower(strings.TrimSpace(c))] = true
	}

	report := BenchmarkReport{
		Benchmarks:         []models.Benchmark{},
		Strengths:          []string{},
		ImprovementsNeeded: []string{},
	}
	for _, b := range all {
		if !wanted[b.Category] {
			continue
		}
		report.Benchmarks = append(report.Benchmarks, b)
		if b.YourScore >= b.TopQuartile {
			report.Strengths = append(report.Strengths, b.Category)
		}
		if b.YourScore < b.IndustryAverage {
			report.ImprovementsNeeded = append(report.ImprovementsNeeded, b.Category)
		}
	}

	report.OverallPercentile = meanPercentile(all)
	report.RequestedPercentile = meanPercentile(report.Benchmarks)
	report.Rating = engine.Rating(report.OverallPercentile)

	for i := range report.Benchmarks {
		b := report.Benchmarks[i]
		if report.TopPerformingCategory == nil || b.Percentile > report.TopPerformingCategory.Percentile {
			report.TopPerformingCategory = &b
		}
		if report.BiggestOpportunity == nil || b.Percentile < report.BiggestOpportunity.Percentile {
			report.BiggestOpportunity = &b
		}
	}
	return report
}

func meanPercentile(items []models.Benchmark) int {
	if len(items) == 0 {
		return 0
	}
	var sum float64
	for _, b := range items {
		sum += float64(b.Percentile)
	}
	return int(math.Round(sum / float64(len(items))))
}
