// Package server provides the HTTP server for the holocron API.
//
// The architecture follows the pattern: CLI → App → Server → Router → Handlers.
//
// Usage:
//
//	cfg := server.DefaultConfig()
//	cfg.Port = 8080
//
//	srv, err := server.New(service, cfg, logger)
//	if err != nil {
//	    return err
//	}
//	defer srv.Shutdown(ctx)
//	http.ListenAndServe(":8080", srv.Handler())
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/holocron/internal/server/handlers"
	"github.com/agentstation/holocron/internal/server/middleware"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	aggregator handlers.Aggregator
	ready      handlers.ReadinessFunc
	version    string
	limiter    *middleware.RateLimiter
	logger     *zerolog.Logger
	config     Config
	startTime  time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithReadiness sets the check behind the ready endpoint.
func WithReadiness(fn handlers.ReadinessFunc) Option {
	return func(s *Server) {
		s.ready = fn
	}
}

// WithVersion sets the version reported by the health endpoint.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = v
	}
}

// New creates a new server instance with the given configuration.
func New(aggregator handlers.Aggregator, cfg Config, logger *zerolog.Logger, opts ...Option) (*Server, error) {
	if aggregator == nil {
		return nil, fmt.Errorf("creating server: aggregator is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("creating server: %w", err)
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	logger.Debug().Msg("Creating new server instance")

	s := &Server{
		aggregator: aggregator,
		version:    "dev",
		logger:     logger,
		config:     cfg,
		startTime:  time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if cfg.RateLimit > 0 {
		s.limiter = middleware.NewRateLimiter(cfg.RateLimit, logger)
	}

	logger.Debug().Msg("Server instance created successfully")
	return s, nil
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// HTTPServer returns an http.Server bound to the configured address and timeouts.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              s.Addr(),
		Handler:           s.Handler(),
		ReadTimeout:       s.config.ReadTimeout,
		ReadHeaderTimeout: s.config.ReadTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
	}
}

// Addr returns the host:port the server listens on.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}

// Config returns the validated configuration.
func (s *Server) Config() Config {
	return s.config
}

// Shutdown releases background resources.
func (s *Server) Shutdown(_ context.Context) error {
	s.logger.Info().Msg("Shutting down server background services")
	if s.limiter != nil {
		s.limiter.Stop()
	}
	return nil
}

// StartTime returns the server start time for uptime calculations.
func (s *Server) StartTime() time.Time {
	return s.startTime
}
