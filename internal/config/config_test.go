package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godilite/pitch-validation/internal/models"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "HTTP_PORT", "CACHE_BACKEND", "SCORE_TTL_SECONDS", "CORS_ALLOWED_ORIGINS", "GRPC_ENABLED"} {
		t.Setenv(key, "")
	}

	cfg := LoadFromEnv()

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, CacheBackendRedis, cfg.CacheBackend)
	assert.Equal(t, time.Hour, cfg.ScoreTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.GRPCEnabled)
	assert.Equal(t, 50051, cfg.GRPCPort)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("CACHE_BACKEND", "Memory")
	t.Setenv("SCORE_TTL_SECONDS", "120")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("GRPC_ENABLED", "true")
	t.Setenv("REALTIME_RATE_LIMIT", "2.5")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg := LoadFromEnv()

	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, CacheBackendMemory, cfg.CacheBackend)
	assert.Equal(t, 2*time.Minute, cfg.ScoreTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.GRPCEnabled)
	assert.InDelta(t, 2.5, cfg.RealtimeRateLimit, 0.0001)
	assert.Equal(t, 0, cfg.RedisDB)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(&Config{AppEnv: "production"})
	require.NoError(t, err)
	assert.NotNil(t, logger)

	logger, err = NewLogger(&Config{AppEnv: "development"})
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scoring.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadScoringFile(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		f, err := LoadScoringFile("")
		require.NoError(t, err)
		assert.Nil(t, f.EngineWeights())
		assert.Empty(t, f.Reference().Benchmarks)
	})

	t.Run("valid override", func(t *testing.T) {
		path := writeFile(t, `
weights:
  story: 0.4
  market: 0.2
  financial: 0.2
  character: 0.1
  structure: 0.1
benchmarks:
  story: {bottom_quartile: 50, industry_average: 65, top_quartile: 82}
`)
		f, err := LoadScoringFile(path)
		require.NoError(t, err)
		assert.InDelta(t, 0.4, f.EngineWeights()[models.CategoryStory], 0.0001)
		assert.Equal(t, 65, f.Reference().Benchmarks[models.CategoryStory].IndustryAverage)
	})

	t.Run("weights must sum to one", func(t *testing.T) {
		path := writeFile(t, "weights:\n  story: 0.9\n  market: 0.9\n")
		_, err := LoadScoringFile(path)
		assert.Error(t, err)
	})

	t.Run("quartiles out of order", func(t *testing.T) {
		path := writeFile(t, "benchmarks:\n  story: {bottom_quartile: 70, industry_average: 60, top_quartile: 80}\n")
		_, err := LoadScoringFile(path)
		assert.ErrorContains(t, err, "out of order")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeFile(t, "weights: [unclosed")
		_, err := LoadScoringFile(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadScoringFile(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}
