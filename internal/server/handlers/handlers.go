// Package handlers provides HTTP request handlers for the holocron API.
//
// Handlers are organized by concern:
//
//   - information.go: the aggregate catalog query
//   - health.go: liveness and readiness checks
package handlers

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/holocron/pkg/information"
)

// Aggregator produces the composite answer.
type Aggregator = information.Aggregator

// ReadinessFunc reports whether the service can answer requests.
type ReadinessFunc func(ctx context.Context) error

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	aggregator Aggregator
	ready      ReadinessFunc
	logger     *zerolog.Logger
	version    string
	startTime  time.Time
}

// New creates a new Handlers instance. A nil ready func means always ready.
func New(aggregator Aggregator, ready ReadinessFunc, version string, logger *zerolog.Logger) *Handlers {
	if ready == nil {
		ready = func(context.Context) error { return nil }
	}
	return &Handlers{
		aggregator: aggregator,
		ready:      ready,
		logger:     logger,
		version:    version,
		startTime:  time.Now(),
	}
}
