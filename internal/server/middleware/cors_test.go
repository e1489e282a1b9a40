package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultCORSConfig(t *testing.T) {
	config := DefaultCORSConfig()

	assert.False(t, config.AllowAll)
	assert.Equal(t, []string{"*"}, config.AllowedOrigins)
	assert.Equal(t, []string{"GET", "OPTIONS"}, config.AllowedMethods)
	assert.Contains(t, config.AllowedHeaders, RequestIDHeader)
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		config     CORSConfig
		origin     string
		wantOrigin string
	}{
		{
			name:       "allow all",
			config:     CORSConfig{AllowAll: true, AllowedMethods: []string{"GET"}},
			origin:     "https://example.com",
			wantOrigin: "*",
		},
		{
			name:       "listed origin echoed",
			config:     CORSConfig{AllowedOrigins: []string{"https://example.com", "https://app.example.com"}},
			origin:     "https://app.example.com",
			wantOrigin: "https://app.example.com",
		},
		{
			name:   "unlisted origin",
			config: CORSConfig{AllowedOrigins: []string{"https://example.com"}},
			origin: "https://evil.com",
		},
		{
			name:       "empty list allows all",
			config:     CORSConfig{},
			origin:     "https://example.com",
			wantOrigin: "*",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := CORS(tt.config)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/information", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, RequestIDHeader, w.Header().Get("Access-Control-Expose-Headers"))
		})
	}
}

func TestCORSPreflightShortCircuit(t *testing.T) {
	called := false
	handler := CORS(DefaultCORSConfig())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/information", nil)
	req.Header.Set("Origin", "https://example.com")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "GET, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
}

func TestIsOriginAllowed(t *testing.T) {
	assert.True(t, isOriginAllowed("https://a.com", []string{"https://a.com"}))
	assert.True(t, isOriginAllowed("https://b.com", []string{"*"}))
	assert.False(t, isOriginAllowed("https://b.com", []string{"https://a.com"}))
	assert.False(t, isOriginAllowed("https://b.com", nil))
}
