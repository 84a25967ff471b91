package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/godilite/pitch-validation/internal/metrics"
	"github.com/godilite/pitch-validation/internal/models"
)

// MaxBatchSize bounds both the batch length and its fan-out.
const MaxBatchSize = 10

const maxCommonWeaknesses = 3

// fallbackWeaknesses are reported when no scored pitch produced a weakness.
var fallbackWeaknesses = []string{
	"Market analysis needs more supporting data",
	"Financial projections lack detail",
	"Character arcs could be more developed",
}

// BatchAnalyze scores up to MaxBatchSize pitches concurrently at basic depth
// with market, comparable and prediction features disabled. Every entry is
// waited for; a failing entry is reported in Failed and never aborts the
// rest. Batch scores are not cached.
func (s *ValidationService) BatchAnalyze(ctx context.Context, pitches []models.Pitch) (BatchResult, error) {
	if err := checkBatchSize(len(pitches)); err != nil {
		return BatchResult{}, err
	}
	entries := make([]batchEntry, len(pitches))
	for i, p := range pitches {
		entries[i].pitch = p
	}
	return s.runBatch(ctx, entries), nil
}

// BatchAnalyzeJSON is BatchAnalyze over undecoded pitches. Each entry is
// decoded on its own, so a malformed pitch fails only its own slot.
func (s *ValidationService) BatchAnalyzeJSON(ctx context.Context, raw []json.RawMessage) (BatchResult, error) {
	if err := checkBatchSize(len(raw)); err != nil {
		return BatchResult{}, err
	}
	entries := make([]batchEntry, len(raw))
	for i, r := range raw {
		if err := json.Unmarshal(r, &entries[i].pitch); err != nil {
			var id struct {
				PitchID string `json:"pitchId"`
			}
			_ = json.Unmarshal(r, &id)
			entries[i] = batchEntry{
				pitch: models.Pitch{PitchID: id.PitchID},
				err:   fmt.Errorf("%w: malformed pitch: %v", ErrInvalidRequest, err),
			}
		}
	}
	return s.runBatch(ctx, entries), nil
}

// batchEntry is one submitted pitch, or the reason it could not be read.
type batchEntry struct {
	pitch models.Pitch
	err   error
}

func checkBatchSize(n int) error {
	if n == 0 {
		return fmt.Errorf("%w: pitches must be a non-empty list", ErrInvalidRequest)
	}
	if n > MaxBatchSize {
		return fmt.Errorf("%w: at most %d pitches per batch, got %d", ErrInvalidRequest, MaxBatchSize, n)
	}
	return nil
}

func (s *ValidationService) runBatch(ctx context.Context, entries []batchEntry) BatchResult {
	start := time.Now()
	type outcome struct {
		score models.ValidationScore
		err   error
	}
	outcomes := make([]outcome, len(entries))

	for i := range entries {
		if strings.TrimSpace(entries[i].pitch.PitchID) == "" {
			entries[i].pitch.PitchID = uuid.NewString()
		}
	}

	var g errgroup.Group
	g.SetLimit(MaxBatchSize)
	for i, e := range entries {
		if e.err != nil {
			outcomes[i] = outcome{err: e.err}
			continue
		}
		g.Go(func() error {
			score, err := s.scoreBatchItem(ctx, e.pitch)
			outcomes[i] = outcome{score: score, err: err}
			return nil
		})
	}
	_ = g.Wait()

	result := BatchResult{
		Results: make([]BatchItemResult, 0, len(entries)),
		Failed:  []BatchFailure{},
	}
	for i, o := range outcomes {
		if o.err != nil {
			result.Failed = append(result.Failed, BatchFailure{
				Index:   i,
				PitchID: entries[i].pitch.PitchID,
				Error:   o.err.Error(),
			})
			continue
		}
		result.Results = append(result.Results, BatchItemResult{
			Index:        i,
			PitchID:      o.score.PitchID,
			Title:        entries[i].pitch.Title,
			OverallScore: o.score.OverallScore,
			Score:        o.score,
		})
	}
	result.FailedCount = len(result.Failed)
	result.Summary = SummarizeBatch(result.Results)

	metrics.RecordBatch(len(result.Results), result.FailedCount)
	s.logger.Info("batch analyzed",
		zap.Int("submitted", len(entries)),
		zap.Int("succeeded", len(result.Results)),
		zap.Int("failed", result.FailedCount),
		zap.Duration("elapsed", time.Since(start)))
	return result
}

func (s *ValidationService) scoreBatchItem(ctx context.Context, p models.Pitch) (score models.ValidationScore, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrComputationFailure, r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return models.ValidationScore{}, err
	}
	if missing := p.MissingRequired(); len(missing) > 0 {
		return models.ValidationScore{}, fmt.Errorf("%w: %s", ErrMissingRequiredField, strings.Join(missing, ", "))
	}

	score, err = s.compute(p, models.BatchOptions())
	if err != nil && !errors.Is(err, ErrMissingRequiredField) {
		s.logger.Warn("batch item failed",
			zap.String("op", "batch"),
			zap.String("pitch_id", p.PitchID),
			zap.Error(err))
	}
	return score, err
}

// SummarizeBatch aggregates successful batch results.
func SummarizeBatch(results []BatchItemResult) BatchSummary {
	summary := BatchSummary{CommonWeaknesses: commonWeaknesses(results)}
	if len(results) == 0 {
		return summary
	}

	total := 0
	for i, r := range results {
		total += r.OverallScore
		switch {
		case r.OverallScore >= 80:
			summary.Distribution.Excellent++
		case r.OverallScore >= 60:
			summary.Distribution.Good++
		default:
			summary.Distribution.NeedsImprovement++
		}
		if summary.TopPerformer == nil || r.OverallScore > summary.TopPerformer.OverallScore {
			summary.TopPerformer = &BatchTopPerformer{
				PitchID:      results[i].PitchID,
				Title:        results[i].Title,
				OverallScore: results[i].OverallScore,
			}
		}
	}
	summary.AverageScore = float64(total) / float64(len(results))
	return summary
}

// commonWeaknesses returns the most frequent category weaknesses across the
// batch, falling back to fixed guidance when there are none.
func commonWeaknesses(results []BatchItemResult) []string {
	counts := make(map[string]int)
	for _, r := range results {
		for _, c := range r.Score.Categories {
			for _, w := range c.Weaknesses {
				counts[w]++
			}
		}
	}
	if len(counts) == 0 {
		return append([]string(nil), fallbackWeaknesses...)
	}

	out := make([]string, 0, len(counts))
	for w := range counts {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool {
		if counts[out[i]] != counts[out[j]] {
			return counts[out[i]] > counts[out[j]]
		}
		return out[i] < out[j]
	})
	if len(out) > maxCommonWeaknesses {
		out = out[:maxCommonWeaknesses]
	}
	return out
}
