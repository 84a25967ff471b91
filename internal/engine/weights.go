package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/godilite/pitch-validation/internal/models"
)

const weightTolerance = 0.001

// Weights maps each category to its share of the overall score.
type Weights map[string]float64

// DefaultWeights returns the standard category weighting.
func DefaultWeights() Weights {
	return Weights{
		models.CategoryStory:     0.30,
		models.CategoryMarket:    0.25,
		models.CategoryFinancial: 0.20,
		models.CategoryCharacter: 0.15,
		models.CategoryStructure: 0.10,
	}
}

// Validate checks that every category is weighted, no weight is negative,
// and the weights sum to 1.
func (w Weights) Validate() error {
	var sum float64
	for _, c := range models.Categories {
		v, ok := w[c]
		if !ok {
			return fmt.Errorf("weight for category %q is missing", c)
		}
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("weight for category %q is invalid: %v", c, v)
		}
		sum += v
	}
	if len(w) != len(models.Categories) {
		return fmt.Errorf("unexpected categories in weights: got %d, want %d", len(w), len(models.Categories))
	}
	if math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("weights must sum to 1.0, got %.4f", sum)
	}
	return nil
}

// Clamp bounds a score to [0,100].
func Clamp(v float64) int {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(math.Round(v))
}

// Aggregate computes round(Σ score·weight) over the given categories,
// clamped to [0,100].
func Aggregate(categories map[string]models.CategoryScore) int {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)

	var total float64
	for _, name := range names {
		c := categories[name]
		total += float64(c.Score) * c.Weight
	}
	return Clamp(total)
}
