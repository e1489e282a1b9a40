// Package application defines what CLI commands need from the running
// holocron application, so commands can be tested without a live catalog.
package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/holocron/internal/server"
	"github.com/agentstation/holocron/pkg/information"
)

// Application is implemented by cmd/holocron/app.App and by Mock.
type Application interface {
	// Aggregator returns the service answering the composite query.
	Aggregator() (information.Aggregator, error)

	// Ready reports whether the configuration is usable.
	Ready(ctx context.Context) error

	// ServerConfig returns the configured HTTP server settings.
	ServerConfig() server.Config

	Logger() *zerolog.Logger
	OutputFormat() string

	Version() string
	Commit() string
	Date() string
	BuiltBy() string
}
