package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/godilite/pitch-validation/internal/engine"
	domain "github.com/godilite/pitch-validation/internal/models"
	"github.com/godilite/pitch-validation/internal/repository/models"
)

// ReferenceRepository reads and seeds the industry reference data the
// scoring engine runs against.
type ReferenceRepository struct {
	db *sql.DB
}

func NewReferenceRepository(db *sql.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

// ListComparables returns every comparable project, optionally restricted to
// one genre.
func (r *ReferenceRepository) ListComparables(ctx context.Context, genre string) ([]models.ComparableRecord, error) {
	query := `
		SELECT id, title, genre, year, budget, box_office
		FROM comparables
	`
	var args []any
	if genre != "" {
		query += ` WHERE genre = ?`
		args = append(args, engine.NormalizeGenre(genre))
	}
	query += ` ORDER BY year DESC, title`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query ListComparables: %w", err)
	}
	defer rows.Close()

	var results []models.ComparableRecord
	for rows.Next() {
		var c models.ComparableRecord
		if err := rows.Scan(&c.ID, &c.Title, &c.Genre, &c.Year, &c.Budget, &c.BoxOffice); err != nil {
			return nil, fmt.Errorf("scan ListComparables row: %w", err)
		}
		results = append(results, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ListComparables: %w", err)
	}
	return results, nil
}

// ListBenchmarks returns the per-category industry distribution.
func (r *ReferenceRepository) ListBenchmarks(ctx context.Context) ([]models.BenchmarkRecord, error) {
	const query = `
		SELECT category, bottom_quartile, industry_average, top_quartile
		FROM category_benchmarks
		ORDER BY category
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query ListBenchmarks: %w", err)
	}
	defer rows.Close()

	var results []models.BenchmarkRecord
	for rows.Next() {
		var b models.BenchmarkRecord
		if err := rows.Scan(&b.Category, &b.BottomQuartile, &b.IndustryAverage, &b.TopQuartile); err != nil {
			return nil, fmt.Errorf("scan ListBenchmarks row: %w", err)
		}
		results = append(results, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ListBenchmarks: %w", err)
	}
	return results, nil
}

// ListGenreProfiles returns market signals for every known genre.
func (r *ReferenceRepository) ListGenreProfiles(ctx context.Context) ([]models.GenreProfileRecord, error) {
	const query = `
		SELECT genre, market_strength, trend, competition, release_window, typical_budget
		FROM genre_profiles
		ORDER BY genre
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query ListGenreProfiles: %w", err)
	}
	defer rows.Close()

	var results []models.GenreProfileRecord
	for rows.Next() {
		var g models.GenreProfileRecord
		if err := rows.Scan(&g.Genre, &g.MarketStrength, &g.Trend, &g.Competition, &g.ReleaseWindow, &g.TypicalBudget); err != nil {
			return nil, fmt.Errorf("scan ListGenreProfiles row: %w", err)
		}
		results = append(results, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ListGenreProfiles: %w", err)
	}
	return results, nil
}

// Reference assembles the stored data into an engine.Reference.
func (r *ReferenceRepository) Reference(ctx context.Context) (engine.Reference, error) {
	comparables, err := r.ListComparables(ctx, "")
	if err != nil {
		return engine.Reference{}, err
	}
	benchmarks, err := r.ListBenchmarks(ctx)
	if err != nil {
		return engine.Reference{}, err
	}
	genres, err := r.ListGenreProfiles(ctx)
	if err != nil {
		return engine.Reference{}, err
	}

	ref := engine.Reference{
		Benchmarks:  make(map[string]engine.BenchmarkReference, len(benchmarks)),
		Genres:      make(map[string]engine.GenreProfile, len(genres)),
		Comparables: make([]domain.Comparable, 0, len(comparables)),
	}
	for _, b := range benchmarks {
		ref.Benchmarks[b.Category] = engine.BenchmarkReference{
			Category:        b.Category,
			BottomQuartile:  b.BottomQuartile,
			IndustryAverage: b.IndustryAverage,
			TopQuartile:     b.TopQuartile,
		}
	}
	for _, g := range genres {
		ref.Genres[engine.NormalizeGenre(g.Genre)] = engine.GenreProfile{
			Genre:          g.Genre,
			MarketStrength: g.MarketStrength,
			Trend:          g.Trend,
			Competition:    domain.Level(g.Competition),
			ReleaseWindow:  g.ReleaseWindow,
			TypicalBudget:  g.TypicalBudget,
		}
	}
	for _, c := range comparables {
		ref.Comparables = append(ref.Comparables, domain.Comparable{
			Title:     c.Title,
			Genre:     c.Genre,
			Year:      c.Year,
			Budget:    c.Budget,
			BoxOffice: c.BoxOffice,
			ROI:       engine.ROI(c.Budget, c.BoxOffice),
		})
	}
	return ref, nil
}

// Seed writes ref into empty tables inside a single transaction. Tables that
// already hold rows are left untouched. It returns whether anything was
// written.
func (r *ReferenceRepository) Seed(ctx context.Context, ref engine.Reference) (seeded bool, err error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM category_benchmarks`).Scan(&count); err != nil {
		return false, fmt.Errorf("count category_benchmarks: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin seed: %w", err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	for _, name := range sortedKeys(ref.Benchmarks) {
		b := ref.Benchmarks[name]
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO category_benchmarks (category, bottom_quartile, industry_average, top_quartile)
			VALUES (?, ?, ?, ?)
		`, name, b.BottomQuartile, b.IndustryAverage, b.TopQuartile); err != nil {
			return false, fmt.Errorf("seed benchmark %s: %w", name, err)
		}
	}
	for _, name := range sortedKeys(ref.Genres) {
		g := ref.Genres[name]
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO genre_profiles (genre, market_strength, trend, competition, release_window, typical_budget)
			VALUES (?, ?, ?, ?, ?, ?)
		`, name, g.MarketStrength, g.Trend, string(g.Competition), g.ReleaseWindow, g.TypicalBudget); err != nil {
			return false, fmt.Errorf("seed genre %s: %w", name, err)
		}
	}
	for _, c := range ref.Comparables {
		if _, err = tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO comparables (title, genre, year, budget, box_office)
			VALUES (?, ?, ?, ?, ?)
		`, c.Title, engine.NormalizeGenre(c.Genre), c.Year, c.Budget, c.BoxOffice); err != nil {
			return false, fmt.Errorf("seed comparable %s: %w", c.Title, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("commit seed: %w", err)
	}
	return true, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
