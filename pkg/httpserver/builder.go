// Package httpserver wraps net/http with a builder, graceful shutdown and
// the middleware shared by JSON APIs.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type Option func(*Options)

type Options struct {
	port         int
	listener     net.Listener
	logger       *zap.Logger
	readTimeout  time.Duration
	writeTimeout time.Duration
	idleTimeout  time.Duration
}

func WithPort(port int) Option {
	return func(o *Options) {
		o.port = port
	}
}

// WithListener serves on an existing listener instead of opening a port.
func WithListener(lis net.Listener) Option {
	return func(o *Options) {
		o.listener = lis
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		o.logger = logger
	}
}

func WithTimeouts(read, write time.Duration) Option {
	return func(o *Options) {
		o.readTimeout = read
		o.writeTimeout = write
	}
}

type Server struct {
	httpServer *http.Server
	lis        net.Listener
	logger     *zap.Logger
}

// New creates an HTTP server for handler using the builder options.
func New(handler http.Handler, opts ...Option) (*Server, error) {
	if handler == nil {
		return nil, errors.New("http handler must not be nil")
	}

	options := &Options{
		port:         8080,
		logger:       zap.NewNop(),
		readTimeout:  15 * time.Second,
		writeTimeout: 60 * time.Second,
		idleTimeout:  120 * time.Second,
	}
	for _, opt := range opts {
		opt(options)
	}

	lis := options.listener
	if lis == nil {
		if options.port < 1 || options.port > 65535 {
			return nil, fmt.Errorf("invalid port %d: must be between 1 and 65535", options.port)
		}
		var err error
		lis, err = net.Listen("tcp", fmt.Sprintf(":%d", options.port))
		if err != nil {
			return nil, fmt.Errorf("failed to listen on port %d: %w", options.port, err)
		}
	}

	logger := options.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Server{
		httpServer: &http.Server{
			Handler:           handler,
			ReadTimeout:       options.readTimeout,
			ReadHeaderTimeout: options.readTimeout,
			WriteTimeout:      options.writeTimeout,
			IdleTimeout:       options.idleTimeout,
			ErrorLog:          zap.NewStdLog(logger),
		},
		lis:    lis,
		logger: logger.Named("http-server"),
	}, nil
}

// Start runs the server in a goroutine and returns immediately.
func (s *Server) Start() {
	s.logger.Info("HTTP server starting", zap.String("addr", s.lis.Addr().String()))

	go func() {
		if err := s.httpServer.Serve(s.lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server failed", zap.Error(err))
		}
	}()
}

// Shutdown drains in-flight requests until ctx expires, then closes.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Warn("forced shutdown due to timeout", zap.Error(err))
		_ = s.httpServer.Close()
		return err
	}
	s.logger.Info("HTTP server stopped")
	return nil
}

// Addr returns the server's listening address.
func (s *Server) Addr() net.Addr {
	return s.lis.Addr()
}
