// Package scorecache stores ValidationScores by pitch id on top of a generic
// key-value cache.
//
// A miss is reported as ErrCacheMiss and is never papered over by
// recomputing: the store has no access to the engine. Writes for the same
// pitch are serialized in-process and stamped with an increasing version;
// writers in other processes still race, and the last write wins.
package scorecache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/godilite/pitch-validation/internal/models"
	"github.com/godilite/pitch-validation/pkg/cache"
)

const (
	// DefaultTTL matches the observed lifetime of a cached analysis.
	DefaultTTL = 3600 * time.Second

	defaultHistoryLimit = 30

	scoreKeyPrefix   = "validation:score:"
	historyKeyPrefix = "validation:history:"
)

// ErrCacheMiss means no live score exists for the pitch.
var ErrCacheMiss = errors.New("validation score not cached")

// Cacher is the key-value contract the store needs: get, set and ttl.
type Cacher interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	TTL(ctx context.Context, key string) (time.Duration, error)
}

type Store struct {
	cache        Cacher
	ttl          time.Duration
	historyLimit int
	logger       *zap.Logger
	sf           singleflight.Group
	locks        keyedMutex
}

type Option func(*Store)

func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithHistoryLimit(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.historyLimit = n
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func New(c Cacher, opts ...Option) *Store {
	if c == nil {
		panic("nil Cacher provided to scorecache.New")
	}
	s := &Store{
		cache:        c,
		ttl:          DefaultTTL,
		historyLimit: defaultHistoryLimit,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("score-cache")
	return s
}

// DefaultTTL is the lifetime applied to new entries.
func (s *Store) DefaultTTL() time.Duration {
	return s.ttl
}

func scoreKey(pitchID string) string   { return scoreKeyPrefix + pitchID }
func historyKey(pitchID string) string { return historyKeyPrefix + pitchID }

func isMiss(err error) bool {
	return errors.Is(err, cache.ErrMiss)
}

// Get returns the cached score. Concurrent reads of one pitch share a
// single cache round trip. The shared read is detached from any one
// caller's cancellation; each caller stops waiting when its own ctx ends.
func (s *Store) Get(ctx context.Context, pitchID string) (models.ValidationScore, error) {
	ch := s.sf.DoChan(pitchID, func() (any, error) {
		var score models.ValidationScore
		if err := s.cache.Get(context.WithoutCancel(ctx), scoreKey(pitchID), &score); err != nil {
			if isMiss(err) {
				return nil, ErrCacheMiss
			}
			return nil, fmt.Errorf("read score %s: %w", pitchID, err)
		}
		return score, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return models.ValidationScore{}, ctx.Err()
	case res = <-ch:
	}
	v, err, shared := res.Val, res.Err, res.Shared
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			s.logger.Debug("cache miss", zap.String("pitch_id", pitchID))
		}
		return models.ValidationScore{}, err
	}
	if shared {
		s.logger.Debug("singleflight shared result", zap.String("pitch_id", pitchID))
	}
	score, ok := v.(models.ValidationScore)
	if !ok {
		return models.ValidationScore{}, fmt.Errorf("type mismatch for pitch %q", pitchID)
	}
	return score, nil
}

// Set writes score under pitchID, fully replacing any previous entry.
func (s *Store) Set(ctx context.Context, pitchID string, score models.ValidationScore, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.ttl
	}
	score.PitchID = pitchID
	if err := s.cache.Set(ctx, scoreKey(pitchID), score, ttl); err != nil {
		return fmt.Errorf("write score %s: %w", pitchID, err)
	}
	return nil
}

// TTL reports how long the cached score for pitchID has left.
func (s *Store) TTL(ctx context.Context, pitchID string) (time.Duration, error) {
	ttl, err := s.cache.TTL(ctx, scoreKey(pitchID))
	if isMiss(err) {
		return 0, ErrCacheMiss
	}
	return ttl, err
}

// Put stores score as the newest version for its pitch and records a
// history snapshot. Puts for one pitch are applied one at a time.
func (s *Store) Put(ctx context.Context, score models.ValidationScore) (models.ValidationScore, error) {
	unlock := s.locks.Lock(score.PitchID)
	defer unlock()

	var previous models.ValidationScore
	err := s.cache.Get(ctx, scoreKey(score.PitchID), &previous)
	switch {
	case err == nil:
		score.Version = previous.Version + 1
	case isMiss(err):
		score.Version = 1
	default:
		s.logger.Warn("cache get error (treating as first version)",
			zap.String("pitch_id", score.PitchID), zap.Error(err))
		score.Version = 1
	}

	if err := s.Set(ctx, score.PitchID, score, s.ttl); err != nil {
		return models.ValidationScore{}, err
	}
	s.sf.Forget(score.PitchID)

	if err := s.appendHistory(ctx, score); err != nil {
		s.logger.Warn("failed to record score history",
			zap.String("pitch_id", score.PitchID), zap.Error(err))
	}
	return score, nil
}

// History returns recorded snapshots, oldest first. A pitch with no history
// yields an empty slice.
func (s *Store) History(ctx context.Context, pitchID string) ([]models.TrendPoint, error) {
	var points []models.TrendPoint
	if err := s.cache.Get(ctx, historyKey(pitchID), &points); err != nil {
		if isMiss(err) {
			return []models.TrendPoint{}, nil
		}
		return nil, fmt.Errorf("read history %s: %w", pitchID, err)
	}
	return points, nil
}

func (s *Store) appendHistory(ctx context.Context, score models.ValidationScore) error {
	points, err := s.History(ctx, score.PitchID)
	if err != nil {
		return err
	}

	snapshot := make(map[string]int, len(score.Categories))
	for name, c := range score.Categories {
		snapshot[name] = c.Score
	}
	points = append(points, models.TrendPoint{
		Date:             score.GeneratedAt,
		OverallScore:     score.OverallScore,
		CategorySnapshot: snapshot,
	})
	if len(points) > s.historyLimit {
		points = points[len(points)-s.historyLimit:]
	}
	return s.cache.Set(ctx, historyKey(score.PitchID), points, s.ttl)
}
