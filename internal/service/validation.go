package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/godilite/pitch-validation/internal/engine"
	"github.com/godilite/pitch-validation/internal/metrics"
	"github.com/godilite/pitch-validation/internal/models"
	"github.com/godilite/pitch-validation/internal/scorecache"
)

// ValidationService runs analyses and derives every read-side view from
// cached scores. Reads never trigger a recompute.
type ValidationService struct {
	store  ScoreStore
	engine ScoreEngine
	quick  QuickScorer
	logger *zap.Logger
	now    func() time.Time
}

// NewValidationService creates a new ValidationService instance.
func NewValidationService(store ScoreStore, eng ScoreEngine, quick QuickScorer, logger *zap.Logger) *ValidationService {
	if store == nil {
		panic("store must not be nil")
	}
	if eng == nil {
		panic("engine must not be nil")
	}
	if quick == nil {
		panic("quick scorer must not be nil")
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}
	return &ValidationService{
		store:  store,
		engine: eng,
		quick:  quick,
		logger: logger,
		now:    time.Now,
	}
}

// Analyze scores the pitch and caches the result, replacing any earlier
// score for the same pitch. A missing pitch id is generated.
func (s *ValidationService) Analyze(ctx context.Context, req AnalyzeRequest) (AnalysisResult, error) {
	if strings.TrimSpace(req.PitchID) == "" {
		req.PitchID = uuid.NewString()
	}
	return s.analyze(ctx, "analyze", req)
}

// Update re-scores an edited pitch and replaces its cache entry.
func (s *ValidationService) Update(ctx context.Context, pitchID string, req AnalyzeRequest) (AnalysisResult, error) {
	if strings.TrimSpace(pitchID) == "" {
		return AnalysisResult{}, fmt.Errorf("%w: pitchId is required", ErrInvalidRequest)
	}
	req.PitchID = pitchID
	return s.analyze(ctx, "update", req)
}

func (s *ValidationService) analyze(ctx context.Context, op string, req AnalyzeRequest) (AnalysisResult, error) {
	start := time.Now()

	if missing := req.MissingRequired(); len(missing) > 0 {
		return AnalysisResult{}, fmt.Errorf("%w: %s", ErrMissingRequiredField, strings.Join(missing, ", "))
	}

	score, err := s.compute(req.Pitch, req.Options)
	if err != nil {
		metrics.RecordAnalysis(op, metrics.StatusError, time.Since(start))
		s.logger.Error("score computation failed",
			zap.String("op", op),
			zap.String("pitch_id", req.PitchID),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return AnalysisResult{}, err
	}

	saved, err := s.store.Put(ctx, score)
	if err != nil {
		metrics.RecordAnalysis(op, metrics.StatusError, time.Since(start))
		s.logger.Error("failed to cache score",
			zap.String("op", op),
			zap.String("pitch_id", req.PitchID),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return AnalysisResult{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	metrics.RecordAnalysis(op, metrics.StatusOK, time.Since(start))
	s.logger.Info("pitch analyzed",
		zap.String("op", op),
		zap.String("pitch_id", saved.PitchID),
		zap.Int("overall_score", saved.OverallScore),
		zap.Int64("version", saved.Version),
		zap.Duration("elapsed", time.Since(start)))

	return AnalysisResult{Score: saved, ExpiresIn: s.expiresIn(ctx, saved.PitchID)}, nil
}

// compute runs the engine and normalizes its errors.
func (s *ValidationService) compute(p models.Pitch, opts models.AnalysisOptions) (models.ValidationScore, error) {
	score, err := s.engine.Compute(p, opts, s.now())
	switch {
	case err == nil:
		return score, nil
	case errors.Is(err, engine.ErrMissingRequiredField):
		return models.ValidationScore{}, fmt.Errorf("%w: %v", ErrMissingRequiredField, err)
	default:
		return models.ValidationScore{}, fmt.Errorf("%w: %v", ErrComputationFailure, err)
	}
}

// GetScore returns the cached score for pitchID.
func (s *ValidationService) GetScore(ctx context.Context, pitchID string) (AnalysisResult, error) {
	score, err := s.cachedScore(ctx, "score", pitchID)
	if err != nil {
		return AnalysisResult{}, err
	}
	return AnalysisResult{Score: score, ExpiresIn: s.expiresIn(ctx, pitchID)}, nil
}

// cachedScore reads the cache and translates a miss into ErrNotFound.
func (s *ValidationService) cachedScore(ctx context.Context, op, pitchID string) (models.ValidationScore, error) {
	if strings.TrimSpace(pitchID) == "" {
		return models.ValidationScore{}, fmt.Errorf("%w: pitchId is required", ErrInvalidRequest)
	}

	score, err := s.store.Get(ctx, pitchID)
	switch {
	case err == nil:
		metrics.RecordCacheLookup(op, true)
		return score, nil
	case errors.Is(err, scorecache.ErrCacheMiss):
		metrics.RecordCacheLookup(op, false)
		s.logger.Info("no cached score", zap.String("op", op), zap.String("pitch_id", pitchID))
		return models.ValidationScore{}, fmt.Errorf("%w: pitch %s", ErrNotFound, pitchID)
	default:
		s.logger.Error("cache read failed", zap.String("op", op), zap.String("pitch_id", pitchID), zap.Error(err))
		return models.ValidationScore{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
}

func (s *ValidationService) expiresIn(ctx context.Context, pitchID string) time.Duration {
	ttl, err := s.store.TTL(ctx, pitchID)
	if err != nil {
		s.logger.Debug("ttl lookup failed", zap.String("pitch_id", pitchID), zap.Error(err))
		return 0
	}
	return ttl
}

// Realtime scores a single field without touching the cache.
func (s *ValidationService) Realtime(_ context.Context, req RealtimeRequest) (models.RealTimeValidation, error) {
	if strings.TrimSpace(req.Field) == "" {
		return models.RealTimeValidation{}, fmt.Errorf("%w: field is required", ErrInvalidRequest)
	}
	res, err := s.quick.Score(req.PitchID, req.Field, string(req.Content))
	if err != nil {
		return models.RealTimeValidation{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return res, nil
}
