// Package information answers the aggregate catalog query: the starship of a
// person, the crew size of a starship, and whether a person lives on a planet.
//
// Each question is a pipeline of sequential catalog fetches. Aggregate runs
// the pipelines concurrently, isolates their failures and substitutes a
// default for any pipeline that did not resolve.
package information

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/holocron/pkg/catalog"
	"github.com/agentstation/holocron/pkg/constants"
	"github.com/agentstation/holocron/pkg/logging"
	"github.com/agentstation/holocron/pkg/numeral"
	"github.com/agentstation/holocron/pkg/reference"
)

// Fetcher retrieves one catalog document.
type Fetcher interface {
	Fetch(ctx context.Context, rt catalog.ResourceType, id catalog.ID) (catalog.Document, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, rt catalog.ResourceType, id catalog.ID) (catalog.Document, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, rt catalog.ResourceType, id catalog.ID) (catalog.Document, error) {
	return f(ctx, rt, id)
}

// Aggregator produces the composite answer. *Service implements it.
type Aggregator interface {
	Aggregate(ctx context.Context) Composite
}

// Targets are the identifiers the aggregate query asks about.
type Targets struct {
	PersonID   catalog.ID `json:"person_id" yaml:"person_id"`     // whose starship
	StarshipID catalog.ID `json:"starship_id" yaml:"starship_id"` // whose crew
	PlanetID   catalog.ID `json:"planet_id" yaml:"planet_id"`     // which planet
	ResidentID catalog.ID `json:"resident_id" yaml:"resident_id"` // which resident
}

// DefaultTargets returns Darth Vader, the Death Star, Alderaan and Leia.
func DefaultTargets() Targets {
	return Targets{
		PersonID:   constants.DefaultPersonID,
		StarshipID: constants.DefaultStarshipID,
		PlanetID:   constants.DefaultPlanetID,
		ResidentID: constants.DefaultResidentID,
	}
}

// Service runs the pipelines against a catalog.
// It holds no mutable state and is safe for concurrent use.
type Service struct {
	fetcher   Fetcher
	templates *reference.Templates
	format    numeral.Format
	targets   Targets
	logger    *zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithTargets sets the identifiers used by Aggregate.
func WithTargets(t Targets) Option {
	return func(s *Service) {
		s.targets = t
	}
}

// WithNumeralFormat sets the format used to parse crew counts.
func WithNumeralFormat(f numeral.Format) Option {
	return func(s *Service) {
		s.format = f
	}
}

// WithLogger sets the logger for pipeline diagnostics.
func WithLogger(logger *zerolog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Service. The templates must be the ones the fetcher builds
// its URLs from, otherwise references will not be recognized.
func New(fetcher Fetcher, templates *reference.Templates, opts ...Option) *Service {
	s := &Service{
		fetcher:   fetcher,
		templates: templates,
		format:    numeral.US,
		targets:   DefaultTargets(),
		logger:    logging.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Targets returns the identifiers used by Aggregate.
func (s *Service) Targets() Targets {
	return s.targets
}

// withLogger seeds ctx with the service logger unless it already carries one.
// A request ID in ctx tags the seeded logger.
func (s *Service) withLogger(ctx context.Context) context.Context {
	if logging.HasLogger(ctx) {
		return ctx
	}
	ctx = logging.WithLogger(ctx, s.logger)
	if id := logging.RequestID(ctx); id != "" {
		ctx = logging.WithRequestID(ctx, id)
	}
	return ctx
}
