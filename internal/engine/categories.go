package engine

import (
	"math"
	"strings"

	"github.com/godilite/pitch-validation/internal/models"
	"github.com/godilite/pitch-validation/internal/textstat"
)

// Factor tiers. Basic depth evaluates primary factors only, standard adds
// secondary ones and comprehensive evaluates everything.
const (
	tierPrimary = iota + 1
	tierSecondary
	tierTertiary
)

const (
	strengthThreshold = 75
	weaknessThreshold = 50
)

func depthTier(depth string) int {
	switch depth {
	case models.DepthBasic:
		return tierPrimary
	case models.DepthComprehensive:
		return tierTertiary
	default:
		return tierSecondary
	}
}

type factorSet struct {
	maxTier int
	factors []models.Factor
}

func (f *factorSet) add(tier int, name string, score int, impact models.Level, description string) {
	if tier > f.maxTier {
		return
	}
	f.factors = append(f.factors, models.Factor{
		Name:        name,
		Score:       Clamp(float64(score)),
		Impact:      impact,
		Description: description,
	})
}

func band(n int, bands ...[3]int) int {
	for _, b := range bands {
		if n >= b[0] && n <= b[1] {
			return b[2]
		}
	}
	return -1
}

func termScore(count int, scores ...int) int {
	if count >= len(scores) {
		return scores[len(scores)-1]
	}
	return scores[count]
}

func (e *Engine) storyFactors(p models.Pitch, tier int) []models.Factor {
	fs := &factorSet{maxTier: tier}

	loglineWords := textstat.WordCount(p.Logline)
	logline := band(loglineWords, [3]int{0, 0, 20}, [3]int{15, 50, 85}, [3]int{10, 14, 65}, [3]int{51, 70, 65})
	if logline < 0 {
		logline = 45
	}
	fs.add(tierPrimary, "logline_clarity", logline, models.LevelHigh,
		"A logline of 15-50 words communicates the premise quickly")

	synopsisWords := textstat.WordCount(p.Synopsis)
	synopsis := band(synopsisWords, [3]int{0, 0, 20}, [3]int{150, 500, 85}, [3]int{80, 149, 65}, [3]int{501, 800, 65})
	if synopsis < 0 {
		synopsis = 40
	}
	fs.add(tierPrimary, "synopsis_depth", synopsis, models.LevelHigh,
		"A 150-500 word synopsis covers the full arc without padding")

	conflicts := textstat.CountTerms(p.Logline+" "+p.Synopsis, textstat.ConflictTerms)
	fs.add(tierSecondary, "central_conflict", termScore(conflicts, 40, 70, 85), models.LevelMedium,
		"Explicit stakes and opposition drive the story")

	titleWords := textstat.WordCount(p.Title)
	title := band(titleWords, [3]int{1, 4, 80}, [3]int{5, 7, 65})
	if title < 0 {
		title = 50
	}
	fs.add(tierSecondary, "title_strength", title, models.LevelLow,
		"Short titles are easier to market and remember")

	genre := 55
	if _, ok := e.ref.Genre(p.Genre); ok {
		genre = 80
	}
	fs.add(tierTertiary, "genre_clarity", genre, models.LevelLow,
		"A recognised genre sets audience expectations")

	return fs.factors
}

func (e *Engine) marketFactors(p models.Pitch, opts models.ResolvedOptions, tier int) []models.Factor {
	fs := &factorSet{maxTier: tier}

	profile, known := e.ref.Genre(p.Genre)
	appeal := 50
	if known {
		appeal = profile.MarketStrength
	}
	fs.add(tierPrimary, "genre_appeal", appeal, models.LevelHigh,
		"Historical audience demand for the genre")

	audience := 35
	if strings.TrimSpace(p.TargetAudience) != "" {
		audience = 80
	}
	fs.add(tierPrimary, "target_audience", audience, models.LevelMedium,
		"A defined audience makes marketing spend efficient")

	release := 40
	if rs := strings.ToLower(p.ReleaseStrategy); rs != "" {
		release = 75
		if strings.Contains(rs, "theatrical") || strings.Contains(rs, "streaming") || strings.Contains(rs, "festival") {
			release = 85
		}
	}
	fs.add(tierSecondary, "release_strategy", release, models.LevelMedium,
		"A concrete distribution plan reduces market risk")

	if opts.IncludeMarketData {
		timing := 60
		if known {
			timing = trendScore(profile.Trend)
		}
		fs.add(tierTertiary, "market_timing", timing, models.LevelMedium,
			"Current momentum of the genre in the marketplace")
	}

	return fs.factors
}

func (e *Engine) financialFactors(p models.Pitch, tier int) []models.Factor {
	fs := &factorSet{maxTier: tier}

	var budgetScore int
	switch {
	case p.Budget >= 1_000_000 && p.Budget <= 50_000_000:
		budgetScore = 85
	case p.Budget >= 500_000 && p.Budget < 1_000_000, p.Budget > 50_000_000 && p.Budget <= 100_000_000:
		budgetScore = 65
	case p.Budget > 100_000_000:
		budgetScore = 50
	default:
		budgetScore = 45
	}
	fs.add(tierPrimary, "budget_range", budgetScore, models.LevelHigh,
		"Budgets between $1M and $50M are the easiest to finance")

	fit := 60
	if profile, ok := e.ref.Genre(p.Genre); ok && profile.TypicalBudget > 0 && p.Budget > 0 {
		ratio := p.Budget / profile.TypicalBudget
		switch {
		case ratio >= 0.5 && ratio <= 1.5:
			fit = 85
		case ratio >= 0.25 && ratio <= 3:
			fit = 65
		default:
			fit = 40
		}
	}
	fs.add(tierPrimary, "genre_budget_fit", fit, models.LevelMedium,
		"Budget relative to what the genre typically costs")

	roi := 50
	if avg, n := e.genreROI(p.Genre); n > 0 {
		switch {
		case avg >= 300:
			roi = 85
		case avg >= 150:
			roi = 70
		case avg >= 50:
			roi = 55
		default:
			roi = 40
		}
	}
	fs.add(tierSecondary, "roi_potential", roi, models.LevelMedium,
		"Average return of comparable projects in the genre")

	team := 45
	if strings.TrimSpace(p.Producer) != "" {
		team = 75
	}
	fs.add(tierTertiary, "financing_team", team, models.LevelLow,
		"An attached producer signals financing capability")

	return fs.factors
}

func (e *Engine) characterFactors(p models.Pitch, tier int) []models.Factor {
	fs := &factorSet{maxTier: tier}

	cast := 35
	switch n := len(p.Cast); {
	case n >= 3:
		cast = 85
	case n >= 1:
		cast = 65
	}
	fs.add(tierPrimary, "cast_attachment", cast, models.LevelHigh,
		"Attached talent raises financing and audience interest")

	director := 40
	if strings.TrimSpace(p.Director) != "" {
		director = 80
	}
	fs.add(tierPrimary, "director_attachment", director, models.LevelMedium,
		"An attached director anchors creative vision")

	chars := textstat.CountTerms(p.Synopsis, textstat.CharacterTerms)
	fs.add(tierSecondary, "character_development", termScore(chars, 35, 55, 70, 85), models.LevelMedium,
		"The synopsis introduces and develops its characters")

	protagonist := 50
	if textstat.ContainsAny(p.Logline, textstat.ProtagonistTerms) {
		protagonist = 80
	}
	fs.add(tierTertiary, "protagonist_focus", protagonist, models.LevelLow,
		"The logline centres a clear protagonist")

	return fs.factors
}

func (e *Engine) structureFactors(p models.Pitch, tier int) []models.Factor {
	fs := &factorSet{maxTier: tier}

	pages := 40
	switch {
	case p.ScriptPages >= 90 && p.ScriptPages <= 120:
		pages = 90
	case p.ScriptPages >= 80 && p.ScriptPages <= 130:
		pages = 70
	case p.ScriptPages > 0:
		pages = 45
	}
	fs.add(tierPrimary, "script_length", pages, models.LevelMedium,
		"Feature scripts usually run 90-120 pages")

	transitions := textstat.CountTerms(p.Synopsis, textstat.TransitionTerms)
	fs.add(tierPrimary, "narrative_structure", termScore(transitions, 35, 55, 70, 85), models.LevelHigh,
		"Transitions in the synopsis reveal act structure")

	pacing := 30
	if sentences := textstat.Sentences(p.Synopsis); len(sentences) > 0 {
		avg := float64(textstat.WordCount(p.Synopsis)) / float64(len(sentences))
		pacing = 55
		if avg >= 12 && avg <= 25 {
			pacing = 80
		}
	}
	fs.add(tierSecondary, "pacing_signal", pacing, models.LevelLow,
		"Sentence rhythm of the synopsis")

	fs.add(tierTertiary, "profile_completeness", int(math.Round(profileCoverage(p)*100)), models.LevelLow,
		"Share of pitch profile fields that are filled in")

	return fs.factors
}

func trendScore(trend string) int {
	switch trend {
	case TrendRising:
		return 85
	case TrendDeclining:
		return 45
	default:
		return 65
	}
}

func (e *Engine) genreROI(genre string) (float64, int) {
	g := NormalizeGenre(genre)
	var sum float64
	n := 0
	for _, c := range e.ref.Comparables {
		if NormalizeGenre(c.Genre) == g {
			sum += c.ROI
			n++
		}
	}
	if n == 0 {
		return 0, 0
	}
	return sum / float64(n), n
}

// profileCoverage is the share of profile and optional fields present.
func profileCoverage(p models.Pitch) float64 {
	present := p.OptionalPresent()
	for _, ok := range []bool{
		strings.TrimSpace(p.Title) != "",
		strings.TrimSpace(p.Logline) != "",
		strings.TrimSpace(p.Synopsis) != "",
		strings.TrimSpace(p.Genre) != "",
		p.Budget > 0,
	} {
		if ok {
			present++
		}
	}
	total := len(models.ProfileFields) + len(models.OptionalPitchFields)
	return float64(present) / float64(total)
}
