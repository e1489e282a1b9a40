package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/agentstation/holocron/internal/server/response"
	"github.com/agentstation/holocron/pkg/constants"
)

// HandleHealth handles GET /api/v1/health.
// @Summary Health check
// @Description Health check endpoint (liveness probe)
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Router /api/v1/health [get].
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "holocron",
		"version": h.version,
		"uptime":  time.Since(h.startTime).Round(time.Second).String(),
	})
}

// HandleReady handles GET /api/v1/ready.
// @Summary Readiness check
// @Description Readiness check of the catalog configuration
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Failure 400 {object} response.Response{error=response.Error}
// @Failure 503 {object} response.Response{error=response.Error}
// @Router /api/v1/ready [get].
func (h *Handlers) HandleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), constants.ReadinessTimeout)
	defer cancel()

	if err := h.ready(ctx); err != nil {
		h.logger.Warn().Err(err).Msg("Readiness check failed")
		response.ErrorFromType(w, err)
		return
	}

	response.OK(w, map[string]any{
		"status": "ready",
	})
}
