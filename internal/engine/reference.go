package engine

import (
	"strings"

	"github.com/godilite/pitch-validation/internal/models"
)

// BenchmarkReference is the industry distribution for one category.
type BenchmarkReference struct {
	Category        string `json:"category"`
	BottomQuartile  int    `json:"bottom_quartile"`
	IndustryAverage int    `json:"industry_average"`
	TopQuartile     int    `json:"top_quartile"`
}

// GenreProfile carries market signals for a genre.
type GenreProfile struct {
	Genre          string       `json:"genre"`
	MarketStrength int          `json:"market_strength"`
	Trend          string       `json:"trend"`
	Competition    models.Level `json:"competition"`
	ReleaseWindow  string       `json:"release_window"`
	TypicalBudget  float64      `json:"typical_budget"`
}

// Reference bundles the industry data the engine scores against.
type Reference struct {
	Benchmarks  map[string]BenchmarkReference
	Genres      map[string]GenreProfile
	Comparables []models.Comparable
}

// Genre trends.
const (
	TrendRising    = "rising"
	TrendStable    = "stable"
	TrendDeclining = "declining"
)

// NormalizeGenre folds case and common aliases.
func NormalizeGenre(g string) string {
	g = strings.ToLower(strings.TrimSpace(g))
	switch g {
	case "science fiction", "scifi", "sci fi":
		return "sci-fi"
	case "animated":
		return "animation"
	case "romcom", "romantic comedy":
		return "romance"
	case "mystery", "suspense":
		return "thriller"
	}
	return g
}

// Genre looks up a profile by normalized genre.
func (r Reference) Genre(g string) (GenreProfile, bool) {
	p, ok := r.Genres[NormalizeGenre(g)]
	return p, ok
}

// Merge overlays non-empty parts of other onto r.
func (r Reference) Merge(other Reference) Reference {
	out := Reference{
		Benchmarks:  make(map[string]BenchmarkReference, len(r.Benchmarks)),
		Genres:      make(map[string]GenreProfile, len(r.Genres)),
		Comparables: r.Comparables,
	}
	for k, v := range r.Benchmarks {
		out.Benchmarks[k] = v
	}
	for k, v := range other.Benchmarks {
		out.Benchmarks[k] = v
	}
	for k, v := range r.Genres {
		out.Genres[k] = v
	}
	for k, v := range other.Genres {
		out.Genres[NormalizeGenre(k)] = v
	}
	if len(other.Comparables) > 0 {
		out.Comparables = other.Comparables
	}
	return out
}

// ROI returns the percentage return of boxOffice over budget.
func ROI(budget, boxOffice float64) float64 {
	if budget <= 0 {
		return 0
	}
	return (boxOffice - budget) / budget * 100
}

func comparable(title, genre string, year int, budget, boxOffice float64) models.Comparable {
	return models.Comparable{
		Title:     title,
		Genre:     genre,
		Year:      year,
		Budget:    budget,
		BoxOffice: boxOffice,
		ROI:       ROI(budget, boxOffice),
	}
}

// DefaultReference is the built-in dataset used when no store is configured.
func DefaultReference() Reference {
	return Reference{
		Benchmarks: map[string]BenchmarkReference{
			models.CategoryStory:     {Category: models.CategoryStory, BottomQuartile: 45, IndustryAverage: 62, TopQuartile: 78},
			models.CategoryMarket:    {Category: models.CategoryMarket, BottomQuartile: 48, IndustryAverage: 64, TopQuartile: 80},
			models.CategoryFinancial: {Category: models.CategoryFinancial, BottomQuartile: 42, IndustryAverage: 60, TopQuartile: 76},
			models.CategoryCharacter: {Category: models.CategoryCharacter, BottomQuartile: 44, IndustryAverage: 61, TopQuartile: 77},
			models.CategoryStructure: {Category: models.CategoryStructure, BottomQuartile: 40, IndustryAverage: 58, TopQuartile: 75},
		},
		Genres: map[string]GenreProfile{
			"action":      {Genre: "action", MarketStrength: 85, Trend: TrendStable, Competition: models.LevelHigh, ReleaseWindow: "Summer (May-July)", TypicalBudget: 60_000_000},
			"horror":      {Genre: "horror", MarketStrength: 80, Trend: TrendRising, Competition: models.LevelMedium, ReleaseWindow: "Fall (September-October)", TypicalBudget: 8_000_000},
			"thriller":    {Genre: "thriller", MarketStrength: 76, Trend: TrendRising, Competition: models.LevelMedium, ReleaseWindow: "Winter (January-February)", TypicalBudget: 25_000_000},
			"sci-fi":      {Genre: "sci-fi", MarketStrength: 75, Trend: TrendStable, Competition: models.LevelHigh, ReleaseWindow: "Summer (May-July)", TypicalBudget: 50_000_000},
			"animation":   {Genre: "animation", MarketStrength: 82, Trend: TrendStable, Competition: models.LevelHigh, ReleaseWindow: "Holiday (November-December)", TypicalBudget: 90_000_000},
			"comedy":      {Genre: "comedy", MarketStrength: 70, Trend: TrendDeclining, Competition: models.LevelMedium, ReleaseWindow: "Spring (March-April)", TypicalBudget: 15_000_000},
			"drama":       {Genre: "drama", MarketStrength: 64, Trend: TrendStable, Competition: models.LevelMedium, ReleaseWindow: "Awards season (October-December)", TypicalBudget: 12_000_000},
			"romance":     {Genre: "romance", MarketStrength: 60, Trend: TrendDeclining, Competition: models.LevelLow, ReleaseWindow: "February", TypicalBudget: 10_000_000},
			"fantasy":     {Genre: "fantasy", MarketStrength: 74, Trend: TrendRising, Competition: models.LevelHigh, ReleaseWindow: "Holiday (November-December)", TypicalBudget: 80_000_000},
			"documentary": {Genre: "documentary", MarketStrength: 52, Trend: TrendRising, Competition: models.LevelLow, ReleaseWindow: "Festival circuit (January-May)", TypicalBudget: 1_500_000},
		},
		Comparables: []models.Comparable{
			comparable("Get Out", "horror", 2017, 4_500_000, 255_000_000),
			comparable("A Quiet Place", "horror", 2018, 17_000_000, 341_000_000),
			comparable("Hereditary", "horror", 2018, 10_000_000, 80_000_000),
			comparable("The Lighthouse", "horror", 2019, 11_000_000, 18_000_000),
			comparable("John Wick", "action", 2014, 20_000_000, 86_000_000),
			comparable("Mad Max: Fury Road", "action", 2015, 150_000_000, 380_000_000),
			comparable("Knives Out", "thriller", 2019, 40_000_000, 311_000_000),
			comparable("Parasite", "thriller", 2019, 11_400_000, 258_000_000),
			comparable("Arrival", "sci-fi", 2016, 47_000_000, 203_000_000),
			comparable("Ex Machina", "sci-fi", 2014, 15_000_000, 36_000_000),
			comparable("Everything Everywhere All at Once", "sci-fi", 2022, 14_300_000, 143_000_000),
			comparable("Edge of Tomorrow", "sci-fi", 2014, 178_000_000, 370_000_000),
			comparable("The Big Sick", "comedy", 2017, 5_000_000, 56_000_000),
			comparable("Booksmart", "comedy", 2019, 6_000_000, 25_000_000),
			comparable("Moonlight", "drama", 2016, 4_000_000, 65_000_000),
			comparable("Whiplash", "drama", 2014, 3_300_000, 49_000_000),
			comparable("La La Land", "romance", 2016, 30_000_000, 448_000_000),
			comparable("Coco", "animation", 2017, 175_000_000, 814_000_000),
		},
	}
}
