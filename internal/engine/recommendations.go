package engine

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/godilite/pitch-validation/internal/models"
)

var recommendationNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://pitch-validation/recommendations"))

type advice struct {
	Title       string
	Description string
	Effort      models.Level
	Timeline    string
	Cost        string
}

var factorAdvice = map[string]advice{
	"logline_clarity":       {"Tighten the logline", "Rewrite the logline as one 15-50 word sentence naming protagonist, goal and obstacle.", models.LevelLow, "1-2 days", "$0"},
	"synopsis_depth":        {"Expand the synopsis", "Cover beginning, midpoint and resolution in 150-500 words.", models.LevelMedium, "1 week", "$0"},
	"central_conflict":      {"Sharpen the central conflict", "State what the protagonist must overcome and what happens if they fail.", models.LevelMedium, "1 week", "$0"},
	"title_strength":        {"Shorten the title", "Test a title of four words or fewer with target viewers.", models.LevelLow, "1-2 days", "$0"},
	"genre_clarity":         {"Clarify the genre", "Position the project inside a recognised genre buyers can compare against.", models.LevelLow, "1 day", "$0"},
	"genre_appeal":          {"Strengthen genre positioning", "Blend in elements of a stronger-performing adjacent genre or define a niche audience.", models.LevelHigh, "2-4 weeks", "$1,000-$5,000"},
	"target_audience":       {"Define the target audience", "Describe the primary audience by age, interests and viewing habits.", models.LevelLow, "2-3 days", "$0-$500"},
	"release_strategy":      {"Outline a release strategy", "Specify theatrical, streaming or festival routes with a target window.", models.LevelMedium, "1-2 weeks", "$0-$2,000"},
	"market_timing":         {"Revisit release timing", "Align the release window with periods when the genre is gaining momentum.", models.LevelMedium, "2 weeks", "$0"},
	"budget_range":          {"Re-scope the budget", "Bring the budget into the $1M-$50M band or justify the scale with attachments.", models.LevelHigh, "2-4 weeks", "$2,000-$10,000"},
	"genre_budget_fit":      {"Align budget with genre norms", "Compare line items against similar genre productions and trim outliers.", models.LevelMedium, "2 weeks", "$1,000-$5,000"},
	"roi_potential":         {"Build the ROI case", "Assemble comparable titles with strong returns and model revenue scenarios.", models.LevelMedium, "1-2 weeks", "$500-$2,000"},
	"financing_team":        {"Attach a producer", "Bring on a producer with a financing track record.", models.LevelHigh, "1-3 months", "Varies"},
	"cast_attachment":       {"Attach key cast", "Secure letters of intent from at least one recognisable lead.", models.LevelHigh, "1-3 months", "$5,000-$50,000"},
	"director_attachment":   {"Attach a director", "Approach directors with credits in the genre.", models.LevelHigh, "1-3 months", "Varies"},
	"character_development": {"Develop the characters", "Give each principal character a goal, a flaw and an arc in the synopsis.", models.LevelMedium, "1-2 weeks", "$0"},
	"protagonist_focus":     {"Centre the protagonist", "Name the protagonist in the logline and what drives them.", models.LevelLow, "1 day", "$0"},
	"script_length":         {"Adjust script length", "Revise the script toward 90-120 pages.", models.LevelHigh, "1-2 months", "$0-$10,000"},
	"narrative_structure":   {"Clarify act structure", "Mark the inciting incident, midpoint and climax explicitly in the synopsis.", models.LevelMedium, "1 week", "$0"},
	"pacing_signal":         {"Rebalance pacing", "Vary sentence length and trim digressions in the synopsis.", models.LevelLow, "2-3 days", "$0"},
	"profile_completeness":  {"Complete the pitch profile", "Fill in the remaining optional pitch fields.", models.LevelLow, "1 day", "$0"},
}

func adviceFor(factor string) advice {
	if a, ok := factorAdvice[factor]; ok {
		return a
	}
	return advice{"Improve " + factor, "Review this factor and strengthen the supporting material.", models.LevelMedium, "1-2 weeks", "$0"}
}

// recommendations emits advice for categories that have weak factors or sit
// below the top quartile. Priority is high only when the category is below
// the industry average.
func (e *Engine) recommendations(pitchID string, categories map[string]models.CategoryScore) []models.Recommendation {
	out := []models.Recommendation{}
	for _, name := range models.Categories {
		cs := categories[name]
		ref, ok := e.ref.Benchmarks[name]
		if !ok {
			continue
		}

		targets := weakFactors(cs.Factors)
		if len(targets) == 0 && cs.Score < ref.TopQuartile {
			targets = []models.Factor{lowestFactor(cs.Factors)}
		}
		if len(targets) == 0 {
			continue
		}

		priority := models.LevelLow
		switch {
		case cs.Score < ref.IndustryAverage:
			priority = models.LevelHigh
		case cs.Score < ref.TopQuartile:
			priority = models.LevelMedium
		}

		for _, f := range targets {
			a := adviceFor(f.Name)
			out = append(out, models.Recommendation{
				ID:              uuid.NewSHA1(recommendationNamespace, []byte(pitchID+"/"+name+"/"+f.Name)).String(),
				Category:        name,
				Priority:        priority,
				Title:           a.Title,
				Description:     a.Description,
				EstimatedImpact: estimatedImpact(cs, f, ref),
				Effort:          a.Effort,
				Timeline:        a.Timeline,
				Cost:            a.Cost,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority.Rank() != out[j].Priority.Rank() {
			return out[i].Priority.Rank() < out[j].Priority.Rank()
		}
		return out[i].EstimatedImpact > out[j].EstimatedImpact
	})
	return out
}

func weakFactors(factors []models.Factor) []models.Factor {
	var weak []models.Factor
	for _, f := range factors {
		if f.Score < weaknessThreshold {
			weak = append(weak, f)
		}
	}
	return weak
}

func lowestFactor(factors []models.Factor) models.Factor {
	lowest := factors[0]
	for _, f := range factors[1:] {
		if f.Score < lowest.Score {
			lowest = f
		}
	}
	return lowest
}

// estimatedImpact is the overall-score gain from closing the gap to the top
// quartile, or from maxing the factor when the category is already there.
func estimatedImpact(cs models.CategoryScore, f models.Factor, ref BenchmarkReference) int {
	gap := float64(ref.TopQuartile - cs.Score)
	if gap <= 0 {
		gap = float64(100-f.Score) / float64(len(cs.Factors))
	}
	impact := int(math.Round(gap * cs.Weight))
	if impact < 1 {
		return 1
	}
	return impact
}
