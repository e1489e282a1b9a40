package information

import (
	"context"
	"time"

	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"

	"github.com/agentstation/holocron/pkg/catalog"
	"github.com/agentstation/holocron/pkg/errors"
	"github.com/agentstation/holocron/pkg/logging"
)

// Composite is the aggregate answer. Every field is always set: a pipeline
// that failed contributes its default and is marked Defaulted in Provenance.
type Composite struct {
	Starship       catalog.StarshipSummary `json:"starship" yaml:"starship"`
	Crew           int64                   `json:"crew" yaml:"crew"`
	IsLeiaOnPlanet bool                    `json:"isLeiaOnPlanet" yaml:"isLeiaOnPlanet"`
	Provenance     FieldProvenance         `json:"provenance" yaml:"provenance"`
}

// FieldProvenance tags each composite field.
type FieldProvenance struct {
	Starship       Provenance `json:"starship" yaml:"starship"`
	Crew           Provenance `json:"crew" yaml:"crew"`
	IsLeiaOnPlanet Provenance `json:"isLeiaOnPlanet" yaml:"isLeiaOnPlanet"`
}

// Defaults for pipelines that did not resolve.
var (
	DefaultStarship  = catalog.StarshipSummary{}
	DefaultCrew      int64
	DefaultResidency bool
)

// Aggregate runs the three pipelines concurrently against the configured
// targets and combines their outcomes. It returns once all three have
// settled and never fails; a panic inside a pipeline counts as a failure.
func (s *Service) Aggregate(ctx context.Context) Composite {
	start := time.Now()
	t := s.targets

	ctx = s.withLogger(ctx)
	starshipCtx := logging.WithPipeline(ctx, PipelineStarship)
	crewCtx := logging.WithPipeline(ctx, PipelineCrew)
	residencyCtx := logging.WithPipeline(ctx, PipelineResidency)

	var (
		wg        conc.WaitGroup
		starship  Outcome[catalog.StarshipSummary]
		crew      Outcome[int64]
		residency Outcome[bool]
	)
	wg.Go(func() {
		starship = settle(func() (catalog.StarshipSummary, error) {
			return s.ResolveStarshipOf(starshipCtx, t.PersonID)
		})
	})
	wg.Go(func() {
		crew = settle(func() (int64, error) {
			return s.ResolveCrewOf(crewCtx, t.StarshipID)
		})
	})
	wg.Go(func() {
		residency = settle(func() (bool, error) {
			return s.IsResident(residencyCtx, t.PlanetID, t.ResidentID)
		})
	})
	wg.Wait()

	logFailure(starshipCtx, starship.Err)
	logFailure(crewCtx, crew.Err)
	logFailure(residencyCtx, residency.Err)

	var c Composite
	c.Starship, c.Provenance.Starship = starship.Or(DefaultStarship)
	c.Crew, c.Provenance.Crew = crew.Or(DefaultCrew)
	c.IsLeiaOnPlanet, c.Provenance.IsLeiaOnPlanet = residency.Or(DefaultResidency)

	logging.FromContext(ctx).Debug().
		Dur("duration", time.Since(start)).
		Bool("starship_resolved", starship.OK()).
		Bool("crew_resolved", crew.OK()).
		Bool("residency_resolved", residency.OK()).
		Msg("Aggregate complete")
	return c
}

// settle runs fn and captures its result, converting a panic into an error.
func settle[T any](fn func() (T, error)) Outcome[T] {
	var (
		out Outcome[T]
		pc  panics.Catcher
	)
	pc.Try(func() {
		v, err := fn()
		if err != nil {
			out = Failed[T](err)
			return
		}
		out = Succeeded(v)
	})
	if r := pc.Recovered(); r != nil {
		return Failed[T](r.AsError())
	}
	return out
}

// logFailure records a pipeline failure with its upstream cause on the
// pipeline's context logger.
func logFailure(ctx context.Context, err error) {
	if err == nil {
		return
	}
	event := logging.FromContext(ctx).Error().Err(err)
	if code := errors.StatusCode(err); code != 0 {
		event = event.Int("status_code", code)
	}
	switch {
	case errors.IsParse(err):
		event = event.Str("cause", "unusable")
	case errors.IsTimeout(err):
		event = event.Str("cause", "timeout")
	case errors.IsFetch(err):
		event = event.Str("cause", "fetch")
	}
	event.Msg("Pipeline failed, using default")
}
