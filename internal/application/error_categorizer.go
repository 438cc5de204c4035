package application

import (
	"context"
	"errors"
	"net/http"

	"github.com/DanielPopoola/devmarket-ledger/internal/domain"
)

// ErrorCategory represents the nature of an error for retry logic
type ErrorCategory string

const (
	CategoryTransient      ErrorCategory = "TRANSIENT"
	CategoryPermanent      ErrorCategory = "PERMANENT"
	CategoryBusinessRule   ErrorCategory = "BUSINESS_RULE"
	CategoryClientError    ErrorCategory = "CLIENT_ERROR"
	CategoryInfrastructure ErrorCategory = "INFRASTRUCTURE"
)

// CategorizeError determines error category for retry and logging purposes
func CategorizeError(err error) ErrorCategory {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return CategoryTransient
	}

	if errors.Is(err, domain.ErrInvalidAmount) ||
		errors.Is(err, domain.ErrAmountMismatch) ||
		errors.Is(err, domain.ErrInvalidTransition) ||
		errors.Is(err, domain.ErrInvalidState) ||
		errors.Is(err, domain.ErrRefundInProgress) {
		return CategoryBusinessRule
	}

	if errors.Is(err, domain.ErrPurchaseNotFound) ||
		errors.Is(err, domain.ErrRefundNotFound) ||
		errors.Is(err, domain.ErrReviewNotFound) ||
		errors.Is(err, domain.ErrListingNotFound) ||
		errors.Is(err, domain.ErrMissingRequiredField) ||
		errors.Is(err, domain.ErrInvalidRating) ||
		errors.Is(err, domain.ErrReviewTooLong) {
		return CategoryClientError
	}

	if svcErr, ok := IsServiceError(err); ok {
		switch svcErr.Code {
		case ErrCodeInvalidInput, ErrCodeInvalidPayload, ErrCodeInvalidSignature,
			ErrCodeIdempotencyMismatch, ErrCodeNotFound, ErrCodeNotPurchased:
			return CategoryClientError
		case ErrCodeConfigurationMissing:
			return CategoryPermanent
		case ErrCodeInternal, ErrCodeLedgerWriteFailed:
			return CategoryInfrastructure
		case ErrCodeTimeout, ErrCodeGatewayUnconfirmed:
			return CategoryTransient
		}
	}

	if gwErr, ok := IsGatewayError(err); ok {
		if gwErr.StatusCode >= 500 {
			return CategoryTransient
		}
		switch gwErr.Code {
		case "GATEWAY_ERROR", "SERVER_ERROR":
			return CategoryTransient
		case "BAD_REQUEST_ERROR":
			return CategoryPermanent
		default:
			if gwErr.StatusCode == http.StatusTooManyRequests {
				return CategoryTransient
			}
			return CategoryPermanent
		}
	}

	// Default: Transient (safe fallback)
	return CategoryTransient
}

// IsRetryable returns true if the error category suggests retry
func IsRetryable(err error) bool {
	category := CategorizeError(err)
	return category == CategoryTransient || category == CategoryInfrastructure
}

// ToHTTPStatus maps error to appropriate HTTP status code
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.HTTPStatus
	}

	switch {
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAmountMismatch),
		errors.Is(err, domain.ErrMissingRequiredField),
		errors.Is(err, domain.ErrInvalidRating),
		errors.Is(err, domain.ErrReviewTooLong):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrRefundInProgress):
		return http.StatusConflict
	case errors.Is(err, domain.ErrPurchaseNotFound),
		errors.Is(err, domain.ErrRefundNotFound),
		errors.Is(err, domain.ErrReviewNotFound),
		errors.Is(err, domain.ErrListingNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	}

	if _, ok := IsGatewayError(err); ok {
		return http.StatusBadGateway
	}

	// Default to 500
	return http.StatusInternalServerError
}

// ToErrorCode clear error code for API responses
func ToErrorCode(err error) string {
	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.Code
	}

	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}

	switch {
	case errors.Is(err, domain.ErrInvalidTransition):
		return domain.ErrCodeInvalidTransition
	case errors.Is(err, domain.ErrInvalidState):
		return domain.ErrCodeInvalidState
	case errors.Is(err, domain.ErrRefundInProgress):
		return domain.ErrCodeRefundInProgress
	case errors.Is(err, domain.ErrPurchaseNotFound):
		return domain.ErrCodePurchaseNotFound
	case errors.Is(err, domain.ErrRefundNotFound):
		return domain.ErrCodeRefundNotFound
	case errors.Is(err, domain.ErrReviewNotFound):
		return domain.ErrCodeReviewNotFound
	case errors.Is(err, domain.ErrListingNotFound):
		return domain.ErrCodeListingNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return ErrCodeTimeout
	}

	if _, ok := IsGatewayError(err); ok {
		return ErrCodeGatewayRejected
	}

	return ErrCodeInternal
}
