package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

type RefundStatus string

const (
	RefundProcessing RefundStatus = "processing"
	RefundCompleted  RefundStatus = "completed"
	RefundFailed     RefundStatus = "failed"
)

const MaxRefundReasonLength = 500

type Refund struct {
	ID              string
	PurchaseID      string
	Amount          decimal.Decimal
	Currency        string
	Reason          string
	Status          RefundStatus
	GatewayRefundID *string
	CreatedAt       time.Time
	ProcessedAt     *time.Time
}

// NewRefund reserves a full refund of purchase. The purchase must be in a
// refundable state.
func NewRefund(id string, purchase *Purchase, reason string) (*Refund, error) {
	if id == "" {
		return nil, errors.New("refund ID is required")
	}
	reason, err := NormalizeRefundReason(reason)
	if err != nil {
		return nil, err
	}
	if err := purchase.CanRefund(); err != nil {
		return nil, err
	}

	return &Refund{
		ID:         id,
		PurchaseID: purchase.ID,
		Amount:     purchase.Amount,
		Currency:   purchase.Currency,
		Reason:     reason,
		Status:     RefundProcessing,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// NormalizeRefundReason trims reason and enforces presence and length.
func NormalizeRefundReason(reason string) (string, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return "", NewMissingRequiredFieldError("reason")
	}
	if utf8.RuneCountInString(reason) > MaxRefundReasonLength {
		return "", &DomainError{
			Code:    ErrCodeMissingRequiredField,
			Message: "reason must be at most 500 characters",
			Err:     ErrMissingRequiredField,
		}
	}
	return reason, nil
}

func (r *Refund) Money() Money {
	return Money{Amount: r.Amount, Currency: r.Currency}
}

// AttachGatewayID records the gateway's refund id on a reservation.
func (r *Refund) AttachGatewayID(gatewayRefundID string) error {
	if gatewayRefundID == "" {
		return NewMissingRequiredFieldError("gateway refund ID")
	}
	if r.GatewayRefundID != nil && *r.GatewayRefundID != gatewayRefundID {
		return &DomainError{
			Code:    ErrCodeInvalidState,
			Message: "refund already bound to gateway refund " + *r.GatewayRefundID,
			Err:     ErrInvalidState,
		}
	}
	r.GatewayRefundID = &gatewayRefundID
	return nil
}

// Complete marks the refund as settled. A second completion is a no-op.
func (r *Refund) Complete(processedAt time.Time) (bool, error) {
	switch r.Status {
	case RefundCompleted:
		return false, nil
	case RefundProcessing:
		r.Status = RefundCompleted
		r.ProcessedAt = &processedAt
		return true, nil
	}
	return false, NewInvalidTransitionError(string(r.Status), string(RefundCompleted))
}

// Fail marks the refund as failed. Completed refunds never fail afterwards.
func (r *Refund) Fail() (bool, error) {
	switch r.Status {
	case RefundFailed:
		return false, nil
	case RefundProcessing:
		r.Status = RefundFailed
		return true, nil
	}
	return false, NewInvalidTransitionError(string(r.Status), string(RefundFailed))
}

// IsOrphaned reports a reservation the gateway never acknowledged.
func (r *Refund) IsOrphaned() bool {
	return r.Status == RefundProcessing && r.GatewayRefundID == nil
}

func ReconstituteRefund(
	id, purchaseID string,
	amount decimal.Decimal, currency string,
	reason string, status RefundStatus,
	gatewayRefundID *string,
	createdAt time.Time, processedAt *time.Time,
) *Refund {
	return &Refund{
		ID:              id,
		PurchaseID:      purchaseID,
		Amount:          amount,
		Currency:        currency,
		Reason:          reason,
		Status:          status,
		GatewayRefundID: gatewayRefundID,
		CreatedAt:       createdAt,
		ProcessedAt:     processedAt,
	}
}
