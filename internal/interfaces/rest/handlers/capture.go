package handlers

import (
	"net/http"

	"github.com/DanielPopoola/devmarket-ledger/internal/api"
	"github.com/DanielPopoola/devmarket-ledger/internal/application/services"
	"github.com/DanielPopoola/devmarket-ledger/internal/interfaces/rest"
)

const messagePaymentVerified = "Payment verified successfully"

func (h *Handlers) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req api.VerifyPaymentRequest
	if err := rest.DecodeJSON(r, &req); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	cmd := services.CaptureCommand{
		GatewayOrderID:   req.GatewayOrderId,
		GatewayPaymentID: req.GatewayPaymentId,
		Signature:        req.Signature,
		ServiceID:        req.ServiceId,
		CustomerID:       req.CustomerId,
		Amount:           req.Amount,
	}
	if req.Currency != nil {
		cmd.Currency = *req.Currency
	}

	purchase, err := h.capture.Capture(r.Context(), cmd)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, api.VerifyPaymentResponse{
		Success:    true,
		PurchaseId: purchase.ID,
		Message:    messagePaymentVerified,
	})
}
