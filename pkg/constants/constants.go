// Package constants provides shared constants used throughout the holocron codebase.
// This includes timeouts, catalog defaults, and other configuration values
// that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the transport-level timeout for requests to the catalog API
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultFetchTimeout bounds a single catalog fetch inside a pipeline
	DefaultFetchTimeout = 10 * time.Second

	// ShutdownTimeout is how long the HTTP server waits for in-flight requests
	ShutdownTimeout = 30 * time.Second

	// ReadinessTimeout is used by the readiness probe
	ReadinessTimeout = 500 * time.Millisecond
)

// EnvPrefix prefixes every environment variable read by holocron.
const EnvPrefix = "HOLOCRON"

// Catalog constants describe the SWAPI-shaped remote catalog
const (
	// DefaultBaseURL is the catalog root every resource path is appended to
	DefaultBaseURL = "https://swapi.dev/api"

	// DefaultPeopleSegment is the path segment for person resources
	DefaultPeopleSegment = "people"

	// DefaultStarshipsSegment is the path segment for starship resources
	DefaultStarshipsSegment = "starships"

	// DefaultPlanetsSegment is the path segment for planet resources
	DefaultPlanetsSegment = "planets"

	// DefaultUserAgent is sent on every outbound catalog request
	DefaultUserAgent = "holocron/1.0"

	// MaxResponseBytes caps how much of a catalog response body is read
	MaxResponseBytes = 4 << 20
)

// Target constants are the identifiers queried by the aggregate
const (
	// DefaultPersonID is Darth Vader
	DefaultPersonID = 4

	// DefaultStarshipID is the Death Star
	DefaultStarshipID = 9

	// DefaultPlanetID is Alderaan
	DefaultPlanetID = 2

	// DefaultResidentID is Princess Leia
	DefaultResidentID = 5
)

// Rate limiting constants
const (
	// DefaultServerRateLimit is the default requests per minute per client IP
	DefaultServerRateLimit = 100

	// BurstSize is the token bucket burst size for rate limiting
	BurstSize = 10
)

// File permission constants define standard Unix file permissions
const (
	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)
