// Package httpapi exposes the validation service as JSON over HTTP under
// /api/validation.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/godilite/pitch-validation/internal/metrics"
	"github.com/godilite/pitch-validation/pkg/httpserver"
)

// BasePath prefixes every validation route.
const BasePath = "/api/validation"

type Options struct {
	AllowedOrigins    []string
	RequestTimeout    time.Duration
	RealtimeRateLimit float64
	RealtimeRateBurst int
}

type Router struct {
	svc    Validator
	logger *zap.Logger
}

// NewRouter builds the HTTP handler tree.
func NewRouter(svc Validator, logger *zap.Logger, opts Options) http.Handler {
	if svc == nil {
		panic("validator must not be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}

	rt := &Router{svc: svc, logger: logger.Named("http-api")}
	mux := chi.NewRouter()

	mux.Use(middleware.Recoverer)
	mux.Use(httpserver.RequestID)
	mux.Use(httpserver.Logging(rt.logger))
	mux.Use(httpserver.Metrics(metrics.RecordHTTPRequest))
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", httpserver.RequestIDHeader},
		ExposedHeaders: []string{httpserver.RequestIDHeader},
		MaxAge:         300,
	}))

	mux.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("/metrics", promhttp.Handler())

	mux.Route(BasePath, func(r chi.Router) {
		r.Use(middleware.Timeout(opts.RequestTimeout))

		r.Post("/analyze", rt.wrap("analyze", rt.handleAnalyze))
		r.Get("/score/{pitchId}", rt.wrap("score", rt.handleScore))
		r.Put("/update/{pitchId}", rt.wrap("update", rt.handleUpdate))
		r.Get("/recommendations/{pitchId}", rt.wrap("recommendations", rt.handleRecommendations))
		r.Get("/comparables/{pitchId}", rt.wrap("comparables", rt.handleComparables))
		r.Post("/benchmark", rt.wrap("benchmark", rt.handleBenchmark))
		r.Get("/progress/{pitchId}", rt.wrap("progress", rt.handleProgress))
		r.Get("/dashboard/{pitchId}", rt.wrap("dashboard", rt.handleDashboard))
		r.Post("/batch-analyze", rt.wrap("batch", rt.handleBatch))

		limiter := httpserver.NewRateLimiter(realtimeLimit(opts), realtimeBurst(opts), func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded, slow down")
		})
		r.With(limiter.Middleware).Post("/realtime", rt.wrap("realtime", rt.handleRealtime))
	})

	return mux
}

func realtimeLimit(opts Options) rate.Limit {
	if opts.RealtimeRateLimit <= 0 {
		return rate.Inf
	}
	return rate.Limit(opts.RealtimeRateLimit)
}

func realtimeBurst(opts Options) int {
	if opts.RealtimeRateBurst <= 0 {
		return 1
	}
	return opts.RealtimeRateBurst
}
