// Package server hosts gRPC services behind a health endpoint, optional
// reflection and a recovery-first interceptor chain.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/reflection"
)

const (
	defaultPort           = 50051
	defaultMaxMessageSize = 4 << 20
	defaultKeepaliveTime  = 2 * time.Minute
)

type Option func(*settings)

type settings struct {
	port           int
	listener       net.Listener
	logger         *zap.Logger
	reflection     bool
	logRequests    bool
	maxMessageSize int
	keepaliveTime  time.Duration
	interceptors   []grpc.UnaryServerInterceptor
}

func WithPort(port int) Option {
	return func(s *settings) { s.port = port }
}

// WithListener serves on lis instead of opening a TCP port.
func WithListener(lis net.Listener) Option {
	return func(s *settings) { s.listener = lis }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

func WithReflection(enabled bool) Option {
	return func(s *settings) { s.reflection = enabled }
}

// WithLogging adds LoggingInterceptor after recovery.
func WithLogging(enabled bool) Option {
	return func(s *settings) { s.logRequests = enabled }
}

// WithMaxMessageSize caps inbound and outbound message sizes in bytes.
func WithMaxMessageSize(n int) Option {
	return func(s *settings) { s.maxMessageSize = n }
}

// WithKeepalive sets how often idle connections are pinged.
func WithKeepalive(d time.Duration) Option {
	return func(s *settings) { s.keepaliveTime = d }
}

// WithUnaryInterceptors appends interceptors that run after the built-in ones.
func WithUnaryInterceptors(interceptors ...grpc.UnaryServerInterceptor) Option {
	return func(s *settings) { s.interceptors = append(s.interceptors, interceptors...) }
}

type Server struct {
	grpc   *grpc.Server
	health *health.Server
	lis    net.Listener
	logger *zap.Logger

	mu       sync.Mutex
	services []string
}

// New builds a server from opts. Handler panics are always converted to
// codes.Internal by RecoveryInterceptor.
func New(opts ...Option) (*Server, error) {
	cfg := settings{
		port:           defaultPort,
		maxMessageSize: defaultMaxMessageSize,
		keepaliveTime:  defaultKeepaliveTime,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	if cfg.maxMessageSize <= 0 {
		return nil, fmt.Errorf("invalid max message size %d", cfg.maxMessageSize)
	}

	lis, err := listen(cfg)
	if err != nil {
		return nil, err
	}

	chain := []grpc.UnaryServerInterceptor{RecoveryInterceptor(cfg.logger)}
	if cfg.logRequests {
		chain = append(chain, LoggingInterceptor(cfg.logger))
	}
	chain = append(chain, cfg.interceptors...)

	gs := grpc.NewServer(
		grpc.ChainUnaryInterceptor(chain...),
		grpc.MaxRecvMsgSize(cfg.maxMessageSize),
		grpc.MaxSendMsgSize(cfg.maxMessageSize),
		grpc.KeepaliveParams(keepalive.ServerParameters{Time: cfg.keepaliveTime}),
	)
	if cfg.reflection {
		reflection.Register(gs)
	}

	hs := health.NewServer()
	healthpb.RegisterHealthServer(gs, hs)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	return &Server{
		grpc:   gs,
		health: hs,
		lis:    lis,
		logger: cfg.logger.Named("grpc-server"),
	}, nil
}

func listen(cfg settings) (net.Listener, error) {
	if cfg.listener != nil {
		return cfg.listener, nil
	}
	if cfg.port < 1 || cfg.port > 65535 {
		return nil, fmt.Errorf("invalid port %d: must be between 1 and 65535", cfg.port)
	}
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.port))
	if err != nil {
		return nil, fmt.Errorf("failed to listen on port %d: %w", cfg.port, err)
	}
	return lis, nil
}

// RegisterServiceWithHealth registers a service and reports it SERVING
// under serviceName until Shutdown.
func (s *Server) RegisterServiceWithHealth(serviceName string, register func(*grpc.Server)) {
	register(s.grpc)
	if serviceName == "" {
		return
	}

	s.mu.Lock()
	s.services = append(s.services, serviceName)
	s.mu.Unlock()

	s.health.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)
	s.logger.Info("registered service with health check", zap.String("service", serviceName))
}

// Start serves in the background.
func (s *Server) Start() {
	s.logger.Info("gRPC server starting", zap.String("addr", s.lis.Addr().String()))

	go func() {
		if err := s.grpc.Serve(s.lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			s.logger.Error("gRPC server failed", zap.Error(err))
		}
	}()
}

// Shutdown marks every service NOT_SERVING, drains in-flight calls and
// stops hard once ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	for _, name := range s.services {
		s.health.SetServingStatus(name, healthpb.HealthCheckResponse_NOT_SERVING)
	}
	s.mu.Unlock()
	s.health.Shutdown()

	stopped := make(chan struct{})
	go func() {
		s.grpc.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		s.logger.Info("gRPC server stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("gRPC drain timed out, forcing stop")
		s.grpc.Stop()
		return ctx.Err()
	}
}

func (s *Server) Addr() net.Addr {
	return s.lis.Addr()
}
