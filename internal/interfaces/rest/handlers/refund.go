package handlers

import (
	"net/http"

	"github.com/DanielPopoola/devmarket-ledger/internal/api"
	"github.com/DanielPopoola/devmarket-ledger/internal/application/services"
	"github.com/DanielPopoola/devmarket-ledger/internal/interfaces/rest"
)

const messageRefundInitiated = "Refund initiated successfully"

func (h *Handlers) InitiateRefund(w http.ResponseWriter, r *http.Request) {
	var req api.RefundRequest
	if err := rest.DecodeJSON(r, &req); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	refund, err := h.refunds.Initiate(r.Context(), services.RefundCommand{
		PurchaseID: req.PurchaseId,
		Reason:     req.Reason,
	})
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, api.RefundResponse{
		Success: true,
		Refund:  rest.ToAPIRefund(refund),
		Message: messageRefundInitiated,
	})
}
