package repository

// Schema creates the reference tables. Every statement is idempotent.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS comparables (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		genre TEXT NOT NULL,
		year INTEGER NOT NULL,
		budget REAL NOT NULL,
		box_office REAL NOT NULL,
		UNIQUE (title, year)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_comparables_genre ON comparables (genre)`,
	`CREATE TABLE IF NOT EXISTS category_benchmarks (
		category TEXT PRIMARY KEY,
		bottom_quartile INTEGER NOT NULL,
		industry_average INTEGER NOT NULL,
		top_quartile INTEGER NOT NULL,
		CHECK (bottom_quartile <= industry_average AND industry_average <= top_quartile)
	)`,
	`CREATE TABLE IF NOT EXISTS genre_profiles (
		genre TEXT PRIMARY KEY,
		market_strength INTEGER NOT NULL,
		trend TEXT NOT NULL,
		competition TEXT NOT NULL,
		release_window TEXT NOT NULL,
		typical_budget REAL NOT NULL
	)`,
}
