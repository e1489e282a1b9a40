// Package transport implements the HTTP client for the remote catalog API.
package transport

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/agentstation/holocron/pkg/catalog"
	"github.com/agentstation/holocron/pkg/constants"
	"github.com/agentstation/holocron/pkg/errors"
	"github.com/agentstation/holocron/pkg/logging"
	"github.com/agentstation/holocron/pkg/reference"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// Client fetches catalog documents by resource type and identifier.
// It is safe for concurrent use.
type Client struct {
	http         *http.Client
	templates    *reference.Templates
	limiter      *rate.Limiter
	fetchTimeout time.Duration
	userAgent    string
	logger       *zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithFetchTimeout bounds every Fetch call. Zero disables the bound.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.fetchTimeout = d
	}
}

// WithRateLimit throttles outbound requests to rps per second. Zero or less disables throttling.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), constants.BurstSize)
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a catalog client. Resource URLs are built from templates, so
// fetch URLs and reference URLs always agree.
func New(templates *reference.Templates, opts ...Option) *Client {
	c := &Client{
		http:         &http.Client{Timeout: DefaultHTTPTimeout},
		templates:    templates,
		limiter:      rate.NewLimiter(rate.Inf, 0),
		fetchTimeout: constants.DefaultFetchTimeout,
		userAgent:    constants.DefaultUserAgent,
		logger:       logging.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch performs a GET for one catalog resource and returns the decoded document.
//
// Errors are *errors.APIError for transport failures and non-2xx responses,
// *errors.TimeoutError when the fetch timeout elapses, and *errors.ParseError
// when the body is not a JSON object.
func (c *Client) Fetch(ctx context.Context, rt catalog.ResourceType, id catalog.ID) (catalog.Document, error) {
	if !rt.Valid() {
		return nil, errors.NewValidationError("resource", rt, "unknown resource type")
	}
	if !id.Valid() {
		return nil, errors.NewValidationError("id", id, "identifier must be positive")
	}
	url, ok := c.templates.URL(rt, id)
	if !ok {
		return nil, errors.NewConfigError("transport", "no path segment configured for "+rt.String(), nil)
	}

	if c.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.fetchTimeout)
		defer cancel()
	}

	start := time.Now()
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, c.contextError(ctx, rt, id, err)
	}

	resp, err := c.Get(ctx, url)
	if err != nil {
		if ctx.Err() != nil {
			return nil, c.contextError(ctx, rt, id, err)
		}
		return nil, &errors.APIError{
			Resource: rt.String(),
			Message:  "request failed",
			Endpoint: url,
			Err:      err,
		}
	}

	doc, err := DecodeResponse(resp, rt)
	logEvent := c.logger.Debug()
	if err != nil {
		if ctx.Err() != nil {
			return nil, c.contextError(ctx, rt, id, err)
		}
		logEvent = c.logger.Debug().Err(err)
	}
	logEvent.
		Str("resource", rt.String()).
		Int("id", int(id)).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Catalog fetch")
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Get performs a GET request with the catalog headers set.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapResource("create", "request", "GET "+url, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	return c.http.Do(req)
}

// contextError maps a context failure to a timeout or an API error.
func (c *Client) contextError(ctx context.Context, rt catalog.ResourceType, id catalog.ID, err error) error {
	if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &errors.TimeoutError{
			Operation: "fetch " + rt.String() + "/" + id.String(),
			Duration:  c.fetchTimeout.String(),
			Message:   "deadline exceeded",
			Err:       err,
		}
	}
	return &errors.APIError{
		Resource: rt.String(),
		Message:  "request canceled",
		Err:      err,
	}
}
