package app

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/godilite/pitch-validation/internal/config"
)

func testConfig() *config.Config {
	cfg := config.LoadFromEnv()
	cfg.CacheBackend = config.CacheBackendMemory
	cfg.MemoryCacheSize = 100
	cfg.DBDriver = "sqlite3"
	cfg.DBPath = ":memory:"
	cfg.ScoringConfigPath = ""
	cfg.GRPCEnabled = false
	return cfg
}

func TestNewApp_MemoryBackend(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	a, err := NewApp(context.Background(), testConfig(), zaptest.NewLogger(t), WithHTTPListener(lis))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, a.Shutdown(ctx))
}

func TestNewApp_UnknownCacheBackend(t *testing.T) {
	cfg := testConfig()
	cfg.CacheBackend = "memcached"

	_, err := NewApp(context.Background(), cfg, zaptest.NewLogger(t))
	assert.ErrorContains(t, err, `unknown cache backend "memcached"`)
}

func TestNewApp_BadScoringFile(t *testing.T) {
	cfg := testConfig()
	cfg.ScoringConfigPath = "/nonexistent/scoring.yaml"

	_, err := NewApp(context.Background(), cfg, zaptest.NewLogger(t))
	assert.ErrorContains(t, err, "scoring config")
}
