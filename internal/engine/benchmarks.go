package engine

import (
	"github.com/godilite/pitch-validation/internal/models"
)

func (e *Engine) benchmarks(categories map[string]models.CategoryScore) []models.Benchmark {
	out := make([]models.Benchmark, 0, len(models.Categories))
	for _, name := range models.Categories {
		ref, ok := e.ref.Benchmarks[name]
		if !ok {
			continue
		}
		score := categories[name].Score
		out = append(out, models.Benchmark{
			Category:        name,
			YourScore:       score,
			IndustryAverage: ref.IndustryAverage,
			TopQuartile:     ref.TopQuartile,
			Percentile:      Percentile(score, ref),
		})
	}
	return out
}

// Percentile places score in the reference distribution by interpolating
// linearly between (0,0), (bottom quartile,25), (average,50),
// (top quartile,75) and (100,100). The result is clamped to [1,99].
func Percentile(score int, ref BenchmarkReference) int {
	anchors := [][2]float64{
		{0, 0},
		{float64(ref.BottomQuartile), 25},
		{float64(ref.IndustryAverage), 50},
		{float64(ref.TopQuartile), 75},
		{100, 100},
	}
	s := float64(score)

	p := 100.0
	for i := 1; i < len(anchors); i++ {
		lo, hi := anchors[i-1], anchors[i]
		if s > hi[0] {
			continue
		}
		if hi[0] == lo[0] {
			p = hi[1]
		} else {
			p = lo[1] + (s-lo[0])/(hi[0]-lo[0])*(hi[1]-lo[1])
		}
		break
	}

	pct := Clamp(p)
	if pct < 1 {
		return 1
	}
	if pct > 99 {
		return 99
	}
	return pct
}
