package engine

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/godilite/pitch-validation/internal/models"
)

const recencyHorizonYears = 15.0

// Relevance scores similarity of a catalogue entry to the pitch: genre
// match contributes up to 50, budget closeness (log scale) up to 30, and
// recency up to 20.
func Relevance(p models.Pitch, c models.Comparable, now time.Time) int {
	var genre float64
	pg, cg := NormalizeGenre(p.Genre), NormalizeGenre(c.Genre)
	switch {
	case pg == cg:
		genre = 1
	case pg != "" && (strings.Contains(cg, pg) || strings.Contains(pg, cg)):
		genre = 0.5
	}

	var budget float64
	if p.Budget > 0 && c.Budget > 0 {
		diff := math.Abs(math.Log(p.Budget / c.Budget))
		budget = 1 - math.Min(1, diff/math.Log(10))
	}

	age := float64(now.Year() - c.Year)
	if age < 0 {
		age = 0
	}
	recency := 1 - math.Min(1, age/recencyHorizonYears)

	return Clamp(50*genre + 30*budget + 20*recency)
}

func (e *Engine) comparables(p models.Pitch, depth string, now time.Time) []models.Comparable {
	limit := 5
	if depth == models.DepthComprehensive {
		limit = 10
	}

	scored := make([]models.Comparable, 0, len(e.ref.Comparables))
	for _, c := range e.ref.Comparables {
		c.RelevanceScore = Relevance(p, c, now)
		scored = append(scored, c)
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RelevanceScore > scored[j].RelevanceScore
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}
