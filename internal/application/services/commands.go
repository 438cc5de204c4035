package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/DanielPopoola/devmarket-ledger/internal/application"
	"github.com/go-playground/validator"
	"github.com/shopspring/decimal"
)

type CaptureCommand struct {
	GatewayOrderID   string `validate:"required" json:"gatewayOrderId"`
	GatewayPaymentID string `validate:"required" json:"gatewayPaymentId"`
	Signature        string `validate:"required" json:"signature"`
	ServiceID        string `validate:"required,uuid" json:"serviceId"`
	CustomerID       string `validate:"required,uuid" json:"customerId"`
	Amount           decimal.Decimal
	// Currency falls back to the gateway's default when empty.
	Currency string `validate:"omitempty,len=3" json:"currency"`
}

type RefundCommand struct {
	PurchaseID string `validate:"required,uuid" json:"purchaseId"`
	Reason     string `validate:"required" json:"reason"`
}

type SubmitReviewCommand struct {
	ServiceID   string `validate:"required,uuid" json:"serviceId"`
	CustomerID  string `validate:"required,uuid" json:"customerId"`
	Rating      int    `validate:"min=1,max=5" json:"rating"`
	ReviewText  string `json:"reviewText"`
	IsAnonymous bool   `json:"isAnonymous"`
}

var validate = validator.New()

// validateCommand runs the struct tags and turns the first failure into an
// InvalidInput error naming the field.
func validateCommand(cmd any) error {
	err := validate.Struct(cmd)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return application.NewInvalidInputError(err)
	}

	fe := fieldErrs[0]
	name := lowerFirst(fe.Field())
	var msg string
	switch fe.Tag() {
	case "required":
		msg = fmt.Sprintf("%s is required", name)
	case "uuid":
		msg = fmt.Sprintf("%s must be a valid UUID", name)
	case "len":
		msg = fmt.Sprintf("%s must be %s characters", name, fe.Param())
	case "min", "max":
		msg = fmt.Sprintf("%s must be between 1 and 5", name)
	default:
		msg = fmt.Sprintf("%s is invalid", name)
	}
	return application.NewInvalidInputError(errors.New(msg))
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
