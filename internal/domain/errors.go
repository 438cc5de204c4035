package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business logic error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeInvalidTransition    = "INVALID_TRANSITION"
	ErrCodeInvalidState         = "INVALID_STATE"
	ErrCodeInvalidAmount        = "INVALID_AMOUNT"
	ErrCodeAmountMismatch       = "AMOUNT_MISMATCH"
	ErrCodeMissingRequiredField = "MISSING_REQUIRED_FIELD"
	ErrCodeInvalidRating        = "INVALID_RATING"
	ErrCodeReviewTooLong        = "REVIEW_TOO_LONG"
	ErrCodeRefundInProgress     = "REFUND_IN_PROGRESS"
	ErrCodePurchaseNotFound     = "PURCHASE_NOT_FOUND"
	ErrCodeRefundNotFound       = "REFUND_NOT_FOUND"
	ErrCodeReviewNotFound       = "REVIEW_NOT_FOUND"
	ErrCodeListingNotFound      = "SERVICE_NOT_FOUND"
)

var (
	ErrInvalidTransition    = errors.New("invalid state transition")
	ErrInvalidState         = errors.New("invalid state")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrAmountMismatch       = errors.New("amount mismatch")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidRating        = errors.New("rating must be between 1 and 5")
	ErrReviewTooLong        = errors.New("review text too long")
	ErrRefundInProgress     = errors.New("a refund already exists for this purchase")
	ErrPurchaseNotFound     = errors.New("purchase not found")
	ErrRefundNotFound       = errors.New("refund not found")
	ErrReviewNotFound       = errors.New("review not found")
	ErrListingNotFound      = errors.New("service not found")
)

func NewMissingRequiredFieldError(field string) *DomainError {
	return &DomainError{
		Code:    ErrCodeMissingRequiredField,
		Message: fmt.Sprintf("%s is required", field),
		Err:     ErrMissingRequiredField,
	}
}

func NewInvalidStateError(current, expected string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidState,
		Message: fmt.Sprintf("invalid state: purchase is %s, expected %s", current, expected),
		Err:     ErrInvalidState,
	}
}

func NewInvalidTransitionError(from, to string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidTransition,
		Message: fmt.Sprintf("cannot transition from %s to %s", from, to),
		Err:     ErrInvalidTransition,
	}
}

func NewAmountMismatchError(expected, actual Money) *DomainError {
	return &DomainError{
		Code:    ErrCodeAmountMismatch,
		Message: fmt.Sprintf("amount mismatch: expected %s, got %s", expected, actual),
		Err:     ErrAmountMismatch,
	}
}

func NewInvalidAmountError(reason string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidAmount,
		Message: fmt.Sprintf("invalid amount: %s", reason),
		Err:     ErrInvalidAmount,
	}
}

// IsErrorCode checks if an error is a DomainError with a specific code
func IsErrorCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
