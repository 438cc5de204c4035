package application

import (
	"errors"
	"fmt"
)

// Gateway refund statuses as reported by the gateway API.
const (
	GatewayRefundPending   = "pending"
	GatewayRefundProcessed = "processed"
	GatewayRefundFailed    = "failed"
)

type RefundRequest struct {
	PaymentID string            `json:"-"`
	Amount    int64             `json:"amount"`
	Notes     map[string]string `json:"notes,omitempty"`
	Receipt   string            `json:"receipt,omitempty"`
}

type RefundResponse struct {
	ID        string            `json:"id"`
	Entity    string            `json:"entity"`
	Amount    int64             `json:"amount"`
	Currency  string            `json:"currency"`
	PaymentID string            `json:"payment_id"`
	Receipt   *string           `json:"receipt"`
	Notes     map[string]string `json:"notes"`
	Status    string            `json:"status"`
	CreatedAt int64             `json:"created_at"`
}

type RefundCollection struct {
	Entity string           `json:"entity"`
	Count  int              `json:"count"`
	Items  []RefundResponse `json:"items"`
}

// GatewayError is a non-2xx answer from the gateway.
type GatewayError struct {
	Code        string
	Description string
	StatusCode  int
}

type GatewayErrorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway error [%s]: %s (status: %d)", e.Code, e.Description, e.StatusCode)
}

func (e *GatewayError) IsRetryable() bool {
	return e.StatusCode >= 500
}

func IsGatewayError(err error) (*GatewayError, bool) {
	var gwErr *GatewayError
	ok := errors.As(err, &gwErr)
	return gwErr, ok
}

// ErrGatewayRetried wraps a gateway answer that came back after at least one
// earlier attempt. An earlier attempt may have been applied by the gateway.
var ErrGatewayRetried = errors.New("gateway request retried")

// IsDefiniteRejection reports whether the gateway refused a request on its
// first attempt with a non-retryable 4xx. Anything else leaves the outcome
// unknown.
func IsDefiniteRejection(err error) bool {
	gwErr, ok := IsGatewayError(err)
	if !ok || errors.Is(err, ErrGatewayRetried) {
		return false
	}
	if gwErr.StatusCode < 400 || gwErr.StatusCode >= 500 {
		return false
	}
	return CategorizeError(err) == CategoryPermanent
}
