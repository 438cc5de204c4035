package handlers

import (
	"net/http"

	"github.com/DanielPopoola/devmarket-ledger/internal/api"
	"github.com/DanielPopoola/devmarket-ledger/internal/interfaces/rest"
)

func (h *Handlers) Healthz(w http.ResponseWriter, _ *http.Request) {
	rest.WriteJSON(w, http.StatusOK, api.SuccessResponse{Success: true})
}

func (h *Handlers) Readyz(w http.ResponseWriter, r *http.Request) {
	if h.ready != nil {
		if err := h.ready(r.Context()); err != nil {
			h.logger.Warn("readiness check failed", "error", err)
			rest.WriteJSON(w, http.StatusServiceUnavailable, api.ErrorResponse{
				Error: "Service not ready",
				Code:  "NOT_READY",
			})
			return
		}
	}
	rest.WriteJSON(w, http.StatusOK, api.SuccessResponse{Success: true})
}
