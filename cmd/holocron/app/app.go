// Package app provides the application context and dependency management
// for the holocron CLI. It centralizes configuration, logging, and the
// lazily built information service shared by every command.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/holocron/internal/cmd/application"
	"github.com/agentstation/holocron/internal/server"
	"github.com/agentstation/holocron/internal/transport"
	"github.com/agentstation/holocron/pkg/errors"
	"github.com/agentstation/holocron/pkg/information"
	"github.com/agentstation/holocron/pkg/reference"
)

var _ application.Application = (*App)(nil)

// App represents the holocron application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Information service (lazy-initialized, singleton)
	mu      sync.RWMutex
	fetcher information.Fetcher
	service *information.Service
}

// New creates a new App instance with the given version information.
// The app is initialized with configuration from the environment that can be
// customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the requested output format, empty for auto-detect.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// ServerConfig returns the HTTP server settings from configuration.
func (a *App) ServerConfig() server.Config {
	return a.config.Server
}

// Service returns the information service, creating it lazily if needed.
// This is thread-safe and ensures only one instance is created.
func (a *App) Service() (*information.Service, error) {
	a.mu.RLock()
	if a.service != nil {
		svc := a.service
		a.mu.RUnlock()
		return svc, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.service != nil {
		return a.service, nil
	}

	svc, err := a.buildService()
	if err != nil {
		return nil, errors.WrapResource("create", "information service", "", err)
	}
	a.service = svc
	return svc, nil
}

// Aggregator implements application.Application.
func (a *App) Aggregator() (information.Aggregator, error) {
	svc, err := a.Service()
	if err != nil {
		return nil, err
	}
	return svc, nil
}

// Ready reports whether the configuration can produce a working service.
func (a *App) Ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := a.Service()
	return err
}

// Shutdown performs graceful shutdown of the application.
func (a *App) Shutdown(_ context.Context) error {
	a.reset()
	return nil
}

// reset drops the cached service so the next call rebuilds it from the
// current configuration and logger.
func (a *App) reset() {
	a.mu.Lock()
	a.service = nil
	a.mu.Unlock()
}

// buildService wires the catalog client and the information service from
// the app configuration.
func (a *App) buildService() (*information.Service, error) {
	if err := a.config.Validate(); err != nil {
		return nil, err
	}

	templates, err := reference.Compile(a.config.ReferenceConfig())
	if err != nil {
		return nil, err
	}
	format, err := a.config.NumeralFormat()
	if err != nil {
		return nil, err
	}

	fetcher := a.fetcher
	if fetcher == nil {
		fetcher = transport.New(templates,
			transport.WithFetchTimeout(a.config.FetchTimeout),
			transport.WithRateLimit(a.config.RateLimit),
			transport.WithUserAgent(a.config.UserAgent),
			transport.WithLogger(a.logger),
		)
	}

	a.logger.Debug().
		Str("base_url", a.config.BaseURL).
		Dur("fetch_timeout", a.config.FetchTimeout).
		Float64("rate_limit", a.config.RateLimit).
		Msg("Information service configured")

	return information.New(fetcher, templates,
		information.WithTargets(a.config.Targets()),
		information.WithNumeralFormat(format),
		information.WithLogger(a.logger),
	), nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithFetcher replaces the HTTP catalog client (useful for testing).
func WithFetcher(f information.Fetcher) Option {
	return func(a *App) error {
		a.fetcher = f
		return nil
	}
}
