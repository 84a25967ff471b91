package models

type ComparableRecord struct {
	ID        int64
	Title     string
	Genre     string
	Year      int
	Budget    float64
	BoxOffice float64
}

type BenchmarkRecord struct {
	Category        string
	BottomQuartile  int
	IndustryAverage int
	TopQuartile     int
}

type GenreProfileRecord struct {
	Genre          string
	MarketStrength int
	Trend          string
	Competition    string
	ReleaseWindow  string
	TypicalBudget  float64
}
