// Package app wires configuration, storage and transports into a runnable
// validation server.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/godilite/pitch-validation/internal/config"
	"github.com/godilite/pitch-validation/internal/engine"
	handler "github.com/godilite/pitch-validation/internal/grpc"
	"github.com/godilite/pitch-validation/internal/httpapi"
	"github.com/godilite/pitch-validation/internal/quickscore"
	"github.com/godilite/pitch-validation/internal/repository"
	"github.com/godilite/pitch-validation/internal/scorecache"
	"github.com/godilite/pitch-validation/internal/service"
	"github.com/godilite/pitch-validation/pkg/cache"
	dbbuilder "github.com/godilite/pitch-validation/pkg/database"
	grpcsrv "github.com/godilite/pitch-validation/pkg/grpc/server"
	"github.com/godilite/pitch-validation/pkg/httpserver"
)

const shutdownTimeout = 10 * time.Second

type cacheBackend interface {
	scorecache.Cacher
	Ping(ctx context.Context) error
	Close() error
}

type App struct {
	logger     *zap.Logger
	db         *sql.DB
	cache      cacheBackend
	handler    http.Handler
	httpServer *httpserver.Server
	grpcServer *grpcsrv.Server
}

type Option func(*options)

type options struct {
	httpListener net.Listener
	grpcListener net.Listener
}

// WithHTTPListener serves HTTP on lis instead of cfg.HTTPPort.
func WithHTTPListener(lis net.Listener) Option {
	return func(o *options) { o.httpListener = lis }
}

// WithGRPCListener serves gRPC on lis instead of cfg.GRPCPort.
func WithGRPCListener(lis net.Listener) Option {
	return func(o *options) { o.grpcListener = lis }
}

func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts ...Option) (_ *App, err error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	a := &App{logger: logger}
	defer func() {
		if err != nil {
			a.close()
		}
	}()

	a.db, err = openReferenceDB(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	logger.Info("Reference database initialized", zap.String("driver", cfg.DBDriver), zap.String("path", cfg.DBPath))

	ref, err := loadReference(ctx, a.db, logger)
	if err != nil {
		return nil, err
	}

	scoring, err := config.LoadScoringFile(cfg.ScoringConfigPath)
	if err != nil {
		return nil, fmt.Errorf("scoring config: %w", err)
	}
	eng, err := engine.New(scoring.EngineWeights(), ref.Merge(scoring.Reference()))
	if err != nil {
		return nil, fmt.Errorf("engine init failed: %w", err)
	}

	a.cache, err = newCache(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("cache init failed: %w", err)
	}
	logger.Info("Cache client initialized", zap.String("backend", cfg.CacheBackend))

	store := scorecache.New(a.cache, scorecache.WithTTL(cfg.ScoreTTL), scorecache.WithLogger(logger))
	svc := service.NewValidationService(store, eng, quickscore.New(), logger)

	a.handler = httpapi.NewRouter(svc, logger, httpapi.Options{
		AllowedOrigins:    cfg.CORSAllowedOrigins,
		RequestTimeout:    cfg.RequestTimeout,
		RealtimeRateLimit: cfg.RealtimeRateLimit,
		RealtimeRateBurst: cfg.RealtimeRateBurst,
	})

	httpOpts := []httpserver.Option{httpserver.WithPort(cfg.HTTPPort), httpserver.WithLogger(logger)}
	if o.httpListener != nil {
		httpOpts = append(httpOpts, httpserver.WithListener(o.httpListener))
	}
	a.httpServer, err = httpserver.New(a.handler, httpOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP server: %w", err)
	}

	if cfg.GRPCEnabled {
		grpcOpts := []grpcsrv.Option{
			grpcsrv.WithPort(cfg.GRPCPort),
			grpcsrv.WithLogger(logger),
			grpcsrv.WithReflection(cfg.GRPCReflectionEnabled),
			grpcsrv.WithLogging(true),
		}
		if o.grpcListener != nil {
			grpcOpts = append(grpcOpts, grpcsrv.WithListener(o.grpcListener))
		}
		a.grpcServer, err = grpcsrv.New(grpcOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create gRPC server: %w", err)
		}
		grpcHandlers := handler.NewHandlers(svc, logger, cfg.RequestTimeout)
		a.grpcServer.RegisterServiceWithHealth(handler.ServiceName, func(s *grpc.Server) {
			handler.RegisterValidationServer(s, grpcHandlers)
		})
	}

	return a, nil
}

func openReferenceDB(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	if cfg.DBDriver == "sqlite3" && cfg.DBPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	db, err := dbbuilder.New(ctx,
		dbbuilder.WithDriver(cfg.DBDriver),
		dbbuilder.WithDataSource(cfg.DBPath),
	)
	if err != nil {
		return nil, err
	}
	if err := dbbuilder.Migrate(ctx, db, repository.Schema...); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// loadReference seeds an empty reference database with the built-in data
// and returns the stored reference overlaid on the defaults.
func loadReference(ctx context.Context, db *sql.DB, logger *zap.Logger) (engine.Reference, error) {
	repo := repository.NewReferenceRepository(db)
	defaults := engine.DefaultReference()

	seeded, err := repo.Seed(ctx, defaults)
	if err != nil {
		return engine.Reference{}, fmt.Errorf("seed reference data: %w", err)
	}
	if seeded {
		logger.Info("Seeded reference database with built-in benchmarks and comparables")
	}

	stored, err := repo.Reference(ctx)
	if err != nil {
		return engine.Reference{}, fmt.Errorf("load reference data: %w", err)
	}
	return defaults.Merge(stored), nil
}

func newCache(ctx context.Context, cfg *config.Config) (cacheBackend, error) {
	switch cfg.CacheBackend {
	case config.CacheBackendMemory:
		return cache.NewMemory(cfg.MemoryCacheSize), nil
	case config.CacheBackendRedis, "":
		rc, err := cache.NewRedis(ctx,
			cache.WithAddress(cfg.RedisAddr),
			cache.WithPassword(cfg.RedisPassword),
			cache.WithDB(cfg.RedisDB),
		)
		if err != nil {
			return nil, err
		}
		return rc, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.CacheBackend)
	}
}

// Handler returns the HTTP handler tree.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Start begins serving on every configured transport.
func (a *App) Start() {
	a.httpServer.Start()
	if a.grpcServer != nil {
		a.grpcServer.Start()
	}
}

// Run starts the application and blocks until a shutdown signal is received.
func (a *App) Run() error {
	a.logger.Info("application starting")
	a.Start()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	a.logger.Info("application shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := a.Shutdown(shutdownCtx)
	if err == nil {
		a.logger.Info("graceful shutdown completed successfully")
	}

	_ = a.logger.Sync()
	return err
}

// Shutdown stops the transports, then releases the cache and database.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if err := a.httpServer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if a.grpcServer != nil {
		if err := a.grpcServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("grpc shutdown: %w", err))
		}
	}
	if err := a.close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (a *App) close() error {
	var errs []error
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("cache shutdown error", zap.Error(err))
			errs = append(errs, err)
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error("database shutdown error", zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
