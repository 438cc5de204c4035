package application

import (
	"errors"
	"fmt"
	"net/http"
)

// APPLICATION-LEVEL ERRORS (Orchestration)

type ServiceError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeConfigurationMissing = "CONFIGURATION_MISSING"
	ErrCodeInvalidSignature     = "INVALID_SIGNATURE"
	ErrCodeInvalidPayload       = "INVALID_PAYLOAD"
	ErrCodeInvalidInput         = "INVALID_INPUT"
	ErrCodeInvalidState         = "INVALID_STATE"
	ErrCodeAmountMismatch       = "AMOUNT_MISMATCH"
	ErrCodeIdempotencyMismatch  = "IDEMPOTENCY_MISMATCH"
	ErrCodeNotFound             = "NOT_FOUND"
	ErrCodeNotPurchased         = "NOT_PURCHASED"
	ErrCodeGatewayRejected      = "GATEWAY_REJECTED"
	ErrCodeGatewayUnconfirmed   = "GATEWAY_UNCONFIRMED"
	ErrCodeLedgerWriteFailed    = "LEDGER_WRITE_FAILED"
	ErrCodeTimeout              = "TIMEOUT"
	ErrCodeInternal             = "INTERNAL_ERROR"
)

var (
	ErrQueueClosed = errors.New("notification queue closed")
	ErrQueueFull   = errors.New("notification queue full")
)

func NewConfigurationMissingError(setting string) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeConfigurationMissing,
		Message:    "Payment configuration error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        fmt.Errorf("%s is not configured", setting),
	}
}

func NewInvalidSignatureError() *ServiceError {
	return &ServiceError{
		Code:       ErrCodeInvalidSignature,
		Message:    "Invalid signature",
		HTTPStatus: http.StatusBadRequest,
	}
}

func NewInvalidPayloadError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeInvalidPayload,
		Message:    "Malformed payload",
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
	}
}

// NewInvalidInputError carries the validation message to the client.
func NewInvalidInputError(err error) *ServiceError {
	msg := "Invalid input"
	if err != nil {
		msg = err.Error()
	}
	return &ServiceError{
		Code:       ErrCodeInvalidInput,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
	}
}

func NewInvalidStateError(message string, err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeInvalidState,
		Message:    message,
		HTTPStatus: http.StatusConflict,
		Err:        err,
	}
}

func NewAmountMismatchError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeAmountMismatch,
		Message:    "Amount does not match the listed price",
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
	}
}

func NewIdempotencyMismatchError() *ServiceError {
	return &ServiceError{
		Code:       ErrCodeIdempotencyMismatch,
		Message:    "Payment already recorded with different purchase details",
		HTTPStatus: http.StatusConflict,
	}
}

func NewNotFoundError(what string, err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeNotFound,
		Message:    what + " not found",
		HTTPStatus: http.StatusNotFound,
		Err:        err,
	}
}

func NewNotPurchasedError() *ServiceError {
	return &ServiceError{
		Code:       ErrCodeNotPurchased,
		Message:    "You can only review services you have purchased",
		HTTPStatus: http.StatusForbidden,
	}
}

// NewGatewayRejectedError relays the gateway's own description. Client-side
// rejections map to 400, everything else to 502.
func NewGatewayRejectedError(err error) *ServiceError {
	status := http.StatusBadGateway
	msg := "Payment gateway unavailable"
	if gwErr, ok := IsGatewayError(err); ok {
		if gwErr.Description != "" {
			msg = gwErr.Description
		}
		if gwErr.StatusCode >= 400 && gwErr.StatusCode < 500 {
			status = http.StatusBadRequest
		}
	}
	return &ServiceError{
		Code:       ErrCodeGatewayRejected,
		Message:    msg,
		HTTPStatus: status,
		Err:        err,
	}
}

// NewGatewayUnconfirmedError reports a gateway call whose outcome is unknown.
// The refund reservation is kept for the reconciler.
func NewGatewayUnconfirmedError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeGatewayUnconfirmed,
		Message:    "Payment gateway did not confirm the refund; it will be reconciled",
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

func NewLedgerWriteFailedError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeLedgerWriteFailed,
		Message:    "Failed to record payment",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewTimeoutError() *ServiceError {
	return &ServiceError{
		Code:       ErrCodeTimeout,
		Message:    "Request timed out waiting for completion",
		HTTPStatus: http.StatusRequestTimeout,
	}
}

func NewInternalError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeInternal,
		Message:    "An internal error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func IsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	ok := errors.As(err, &svcErr)
	return svcErr, ok
}
