package handlers

import (
	"net/http"

	"github.com/DanielPopoola/devmarket-ledger/internal/api"
	"github.com/DanielPopoola/devmarket-ledger/internal/application/services"
	"github.com/DanielPopoola/devmarket-ledger/internal/interfaces/rest"
)

const (
	messageReviewCreated = "Review submitted"
	messageReviewUpdated = "Review updated"
)

func (h *Handlers) SubmitReview(w http.ResponseWriter, r *http.Request) {
	var req api.SubmitReviewRequest
	if err := rest.DecodeJSON(r, &req); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	cmd := services.SubmitReviewCommand{
		ServiceID:   req.ServiceId,
		CustomerID:  req.CustomerId,
		Rating:      req.Rating,
		IsAnonymous: req.IsAnonymous,
	}
	if req.ReviewText != nil {
		cmd.ReviewText = *req.ReviewText
	}

	review, created, err := h.reviews.Submit(r.Context(), cmd)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	status, message := http.StatusOK, messageReviewUpdated
	if created {
		status, message = http.StatusCreated, messageReviewCreated
	}
	rest.WriteJSON(w, status, api.ReviewResponse{
		Success: true,
		Review:  rest.ToAPIReview(review),
		Message: message,
	})
}

// NotifyReview runs the notifier synchronously for callers such as a
// database trigger that want the outcome.
func (h *Handlers) NotifyReview(w http.ResponseWriter, r *http.Request) {
	var req api.NotifyReviewRequest
	if err := rest.DecodeJSON(r, &req); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	result, err := h.notifier.Notify(r.Context(), req.ReviewId)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, api.NotifyReviewResponse{
		Success: true,
		Message: result.Message,
	})
}
