package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/holocron/internal/server/response"
	"github.com/agentstation/holocron/pkg/catalog"
	"github.com/agentstation/holocron/pkg/errors"
	"github.com/agentstation/holocron/pkg/information"
	"github.com/agentstation/holocron/pkg/logging"
)

type stubAggregator struct {
	result information.Composite
	calls  int
}

func (s *stubAggregator) Aggregate(context.Context) information.Composite {
	s.calls++
	return s.result
}

// The service is served directly; there is a single aggregator contract.
var _ Aggregator = (*information.Service)(nil)

func TestNewAcceptsInformationAggregator(t *testing.T) {
	var agg information.Aggregator = &stubAggregator{result: sample}
	h := New(agg, nil, "test", logging.NewNopLogger())

	w := httptest.NewRecorder()
	h.HandleInformation(w, httptest.NewRequest(http.MethodGet, "/information", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

var sample = information.Composite{
	Starship:       catalog.StarshipSummary{Name: "TIE Advanced x1", Class: "Starfighter"},
	Crew:           342953,
	IsLeiaOnPlanet: true,
	Provenance: information.FieldProvenance{
		Starship:       information.Resolved,
		Crew:           information.Resolved,
		IsLeiaOnPlanet: information.Resolved,
	},
}

func TestHandleInformation(t *testing.T) {
	agg := &stubAggregator{result: sample}
	h := New(agg, nil, "test", logging.NewNopLogger())

	w := httptest.NewRecorder()
	h.HandleInformation(w, httptest.NewRequest(http.MethodGet, "/information", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, float64(342953), body["crew"])
	assert.Equal(t, true, body["isLeiaOnPlanet"])
	assert.Equal(t, "TIE Advanced x1", body["starship"].(map[string]any)["name"])
	assert.Equal(t, "resolved", body["provenance"].(map[string]any)["crew"])
	assert.Equal(t, 1, agg.calls)
}

func TestHandleInformationEnvelope(t *testing.T) {
	h := New(&stubAggregator{result: sample}, nil, "test", logging.NewNopLogger())

	w := httptest.NewRecorder()
	h.HandleInformationEnvelope(w, httptest.NewRequest(http.MethodGet, "/api/v1/information", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp response.Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Nil(t, resp.Error)
	assert.Equal(t, float64(342953), resp.Data.(map[string]any)["crew"])
}

func TestHandleInformationMethodNotAllowed(t *testing.T) {
	agg := &stubAggregator{}
	h := New(agg, nil, "test", logging.NewNopLogger())

	for _, handle := range []http.HandlerFunc{h.HandleInformation, h.HandleInformationEnvelope} {
		w := httptest.NewRecorder()
		handle(w, httptest.NewRequest(http.MethodPost, "/information", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	}
	assert.Zero(t, agg.calls)
}

func TestHandleHealth(t *testing.T) {
	h := New(&stubAggregator{}, nil, "v1.2.3", logging.NewNopLogger())

	w := httptest.NewRecorder()
	h.HandleHealth(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp response.Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	data := resp.Data.(map[string]any)
	assert.Equal(t, "healthy", data["status"])
	assert.Equal(t, "v1.2.3", data["version"])
}

func TestHandleReady(t *testing.T) {
	tests := []struct {
		name   string
		ready  ReadinessFunc
		status int
		code   string
	}{
		{"nil check", nil, http.StatusOK, ""},
		{"ready", func(context.Context) error { return nil }, http.StatusOK, ""},
		{"config error", func(context.Context) error {
			return errors.NewConfigError("reference", "no starship segment", nil)
		}, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
		{"invalid target", func(context.Context) error {
			return errors.NewValidationError("targets.person_id", 0, "must be a positive identifier")
		}, http.StatusBadRequest, "BAD_REQUEST"},
		{"deadline", func(context.Context) error {
			return context.DeadlineExceeded
		}, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(&stubAggregator{}, tt.ready, "test", logging.NewNopLogger())

			w := httptest.NewRecorder()
			h.HandleReady(w, httptest.NewRequest(http.MethodGet, "/api/v1/ready", nil))
			assert.Equal(t, tt.status, w.Code)

			var resp response.Response
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			if tt.code == "" {
				assert.Nil(t, resp.Error)
				assert.Equal(t, "ready", resp.Data.(map[string]any)["status"])
				return
			}
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Nil(t, resp.Data)
		})
	}
}
