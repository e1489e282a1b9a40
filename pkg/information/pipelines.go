package information

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/agentstation/holocron/pkg/catalog"
	"github.com/agentstation/holocron/pkg/errors"
	"github.com/agentstation/holocron/pkg/logging"
)

// Pipeline labels used in logs and provenance.
const (
	PipelineStarship  = "starship"
	PipelineCrew      = "crew"
	PipelineResidency = "residency"
)

// parseFormat is the ParseError format for values read out of catalog documents.
const parseFormat = "swapi"

// ResolveStarshipOf returns the first starship of the given person.
//
// Fetch failures are returned as they come from the Fetcher. A person with no
// usable starship reference, or a reference the starship template does not
// match, yields a ParseError.
func (s *Service) ResolveStarshipOf(ctx context.Context, personID catalog.ID) (catalog.StarshipSummary, error) {
	logger := logging.FromContext(s.withLogger(ctx))

	doc, err := s.fetcher.Fetch(ctx, catalog.ResourcePerson, personID)
	if err != nil {
		return catalog.StarshipSummary{}, err
	}

	ref, state := catalog.NewPerson(doc).FirstStarship()
	if !state.Usable() {
		logger.Debug().
			Int("person_id", int(personID)).
			Stringer("state", state).
			Msg("Person has no starship reference")
		return catalog.StarshipSummary{}, errors.NewParseError(parseFormat, "person "+personID.String(),
			fmt.Sprintf("no valid starship reference found for person %d", personID), nil)
	}

	shipID, ok := s.templates.Extract(catalog.ResourceStarship, ref)
	if !ok {
		logger.Debug().
			Str("reference", ref).
			Msg("Starship reference did not match template")
		return catalog.StarshipSummary{}, errors.NewParseError(parseFormat, "person "+personID.String(),
			"reference URL does not contain a valid starship identifier", nil)
	}

	shipDoc, err := s.fetcher.Fetch(ctx, catalog.ResourceStarship, shipID)
	if err != nil {
		return catalog.StarshipSummary{}, err
	}
	return catalog.NewStarship(shipDoc).Summary(), nil
}

// ResolveCrewOf returns the crew size of the given starship.
//
// The crew text is parsed with the service numeral format, so "342,953" is
// 342953. Fractional values are truncated toward zero. A missing, blank or
// non-numeric crew field yields a ParseError.
func (s *Service) ResolveCrewOf(ctx context.Context, starshipID catalog.ID) (int64, error) {
	logger := logging.FromContext(s.withLogger(ctx))

	doc, err := s.fetcher.Fetch(ctx, catalog.ResourceStarship, starshipID)
	if err != nil {
		return 0, err
	}
	ship := catalog.NewStarship(doc)
	resource := "starship " + starshipID.String()

	text, state := ship.Crew()
	switch state {
	case catalog.FieldPresent:
		n, err := s.format.ParseInt(text)
		if err != nil {
			logger.Warn().
				Str("crew", text).
				Int("starship_id", int(starshipID)).
				Msg("Crew value is not a number")
			return 0, errors.NewParseError(parseFormat, resource, "no valid crew number found", err)
		}
		return n, nil
	case catalog.FieldWrongShape:
		if num, numState := ship.CrewNumber(); numState.Usable() {
			n, err := truncateNumber(num.String())
			if err != nil {
				logger.Warn().
					Str("crew", num.String()).
					Int("starship_id", int(starshipID)).
					Msg("Crew value is not a number")
				return 0, errors.NewParseError(parseFormat, resource, "no valid crew number found", err)
			}
			return n, nil
		}
	}
	return 0, errors.NewParseError(parseFormat, resource, "no valid crew number found", nil)
}

// truncateNumber converts a JSON number literal to an integer, dropping any fraction.
func truncateNumber(literal string) (int64, error) {
	if n, err := strconv.ParseInt(literal, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, strconv.ErrRange
	}
	return int64(f), nil
}

// IsResident reports whether personID appears in the resident list of planetID.
//
// Residents are visited in catalog order. Entries that are not text or do not
// match the person template are skipped. An empty list is false; a missing
// list is a ParseError.
func (s *Service) IsResident(ctx context.Context, planetID, personID catalog.ID) (bool, error) {
	logger := logging.FromContext(s.withLogger(ctx))

	doc, err := s.fetcher.Fetch(ctx, catalog.ResourcePlanet, planetID)
	if err != nil {
		return false, err
	}

	residents, state := catalog.NewPlanet(doc).Residents()
	if !state.Usable() {
		return false, errors.NewParseError(parseFormat, "planet "+planetID.String(), "no residents list found", nil)
	}

	skipped := 0
	for _, entry := range residents {
		ref, refState := catalog.TextValue(entry)
		if !refState.Usable() {
			skipped++
			continue
		}
		id, ok := s.templates.Extract(catalog.ResourcePerson, ref)
		if !ok {
			skipped++
			continue
		}
		if id == personID {
			return true, nil
		}
	}

	if skipped > 0 {
		logger.Debug().
			Int("planet_id", int(planetID)).
			Int("skipped", skipped).
			Msg("Skipped unusable resident references")
	}
	return false, nil
}
