package handlers

import (
	"net/http"

	"github.com/DanielPopoola/devmarket-ledger/internal/api"
	"github.com/DanielPopoola/devmarket-ledger/internal/interfaces/rest"
)

// GatewayWebhook hands the raw body to the ingestor; the signature covers
// those exact bytes.
func (h *Handlers) GatewayWebhook(w http.ResponseWriter, r *http.Request) {
	raw, err := rest.ReadBody(r)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	err = h.webhooks.Ingest(
		r.Context(),
		raw,
		r.Header.Get(api.SignatureHeader),
		r.Header.Get(api.EventIDHeader),
	)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, api.SuccessResponse{Success: true})
}
