// Package engine turns pitch attributes into a complete ValidationScore.
//
// Compute is a pure transform: it reads only its arguments plus the weights
// and reference data supplied at construction, and it never touches a cache
// or the network. Every category is built from independent heuristics over
// the pitch text and numbers, then folded into the overall score as
// round(Σ score·weight).
package engine

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/godilite/pitch-validation/internal/models"
)

var (
	// ErrMissingRequiredField is returned when title, genre or budget is absent.
	ErrMissingRequiredField = errors.New("missing required field")
	// ErrComputation wraps any internal failure while scoring.
	ErrComputation = errors.New("score computation failed")
)

// Engine scores pitches against a fixed weighting and reference dataset.
type Engine struct {
	weights Weights
	ref     Reference
}

// New validates the weights and returns an Engine. A zero Reference falls
// back to DefaultReference.
func New(weights Weights, ref Reference) (*Engine, error) {
	if weights == nil {
		weights = DefaultWeights()
	}
	if err := weights.Validate(); err != nil {
		return nil, fmt.Errorf("invalid weights: %w", err)
	}
	if len(ref.Benchmarks) == 0 && len(ref.Genres) == 0 && len(ref.Comparables) == 0 {
		ref = DefaultReference()
	}
	return &Engine{weights: weights, ref: ref}, nil
}

// Reference returns the dataset the engine scores against.
func (e *Engine) Reference() Reference {
	return e.ref
}

// Compute produces a full ValidationScore for the pitch.
func (e *Engine) Compute(p models.Pitch, options models.AnalysisOptions, now time.Time) (models.ValidationScore, error) {
	if missing := p.MissingRequired(); len(missing) > 0 {
		return models.ValidationScore{}, fmt.Errorf("%w: %s", ErrMissingRequiredField, strings.Join(missing, ", "))
	}
	if math.IsNaN(p.Budget) || math.IsInf(p.Budget, 0) {
		return models.ValidationScore{}, fmt.Errorf("%w: budget is not a finite number", ErrComputation)
	}

	opts := options.Resolve()
	tier := depthTier(opts.Depth)

	factorsByCategory := map[string][]models.Factor{
		models.CategoryStory:     e.storyFactors(p, tier),
		models.CategoryMarket:    e.marketFactors(p, opts, tier),
		models.CategoryFinancial: e.financialFactors(p, tier),
		models.CategoryCharacter: e.characterFactors(p, tier),
		models.CategoryStructure: e.structureFactors(p, tier),
	}

	coverage := profileCoverage(p)
	categories := make(map[string]models.CategoryScore, len(models.Categories))
	for _, name := range models.Categories {
		cs, err := e.buildCategory(name, factorsByCategory[name], opts.Depth, coverage)
		if err != nil {
			return models.ValidationScore{}, err
		}
		categories[name] = cs
	}

	score := models.ValidationScore{
		PitchID:      p.PitchID,
		OverallScore: Aggregate(categories),
		Confidence:   weightedConfidence(categories),
		Categories:   categories,
		Depth:        opts.Depth,
		GeneratedAt:  now.UTC(),
	}
	score.Benchmarks = e.benchmarks(categories)
	score.Recommendations = e.recommendations(p.PitchID, categories)
	if opts.IncludeComparables {
		score.Comparables = e.comparables(p, opts.Depth, now)
	} else {
		score.Comparables = []models.Comparable{}
	}
	if opts.IncludeMarketData {
		score.MarketTiming = e.marketTiming(p)
	}
	score.AIInsights = e.insights(p, score, opts.IncludePredictions)

	return score, nil
}

func (e *Engine) buildCategory(name string, factors []models.Factor, depth string, coverage float64) (models.CategoryScore, error) {
	if len(factors) == 0 {
		return models.CategoryScore{}, fmt.Errorf("%w: category %s produced no factors", ErrComputation, name)
	}

	var sum float64
	cs := models.CategoryScore{
		Weight:       e.weights[name],
		Factors:      factors,
		Strengths:    []string{},
		Weaknesses:   []string{},
		Improvements: []string{},
	}
	for _, f := range factors {
		sum += float64(f.Score)
		switch {
		case f.Score >= strengthThreshold:
			cs.Strengths = append(cs.Strengths, f.Description)
		case f.Score < weaknessThreshold:
			cs.Weaknesses = append(cs.Weaknesses, f.Description)
			cs.Improvements = append(cs.Improvements, adviceFor(f.Name).Title)
		}
	}
	cs.Score = Clamp(sum / float64(len(factors)))
	cs.Confidence = Clamp(float64(depthConfidence(depth)) - 10 + 20*coverage)
	return cs, nil
}

func depthConfidence(depth string) int {
	switch depth {
	case models.DepthBasic:
		return 60
	case models.DepthComprehensive:
		return 85
	default:
		return 75
	}
}

func weightedConfidence(categories map[string]models.CategoryScore) int {
	var total float64
	for _, name := range models.Categories {
		c := categories[name]
		total += float64(c.Confidence) * c.Weight
	}
	return Clamp(total)
}
