package handlers

import (
	"net/http"

	"github.com/agentstation/holocron/internal/server/response"
)

// HandleInformation handles GET /information.
// It writes the composite as a bare JSON object, the shape existing clients read.
// @Summary Aggregate information
// @Description Starship of the target person, crew of the target starship, and residency of the target resident
// @Tags information
// @Produce json
// @Success 200 {object} information.Composite
// @Router /information [get].
func (h *Handlers) HandleInformation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.MethodNotAllowed(w, r.Method)
		return
	}
	response.Raw(w, http.StatusOK, h.aggregator.Aggregate(r.Context()))
}

// HandleInformationEnvelope handles GET /api/v1/information.
// @Summary Aggregate information
// @Description Same as /information, wrapped in the standard response envelope
// @Tags information
// @Produce json
// @Success 200 {object} response.Response{data=information.Composite}
// @Failure 405 {object} response.Response{error=response.Error}
// @Router /api/v1/information [get].
func (h *Handlers) HandleInformationEnvelope(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.MethodNotAllowed(w, r.Method)
		return
	}
	response.OK(w, h.aggregator.Aggregate(r.Context()))
}
