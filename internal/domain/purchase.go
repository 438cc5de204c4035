// Package domain encodes the marketplace ledger entities: purchases, refunds,
// reviews and the webhook log.
package domain

import (
	"errors"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the gateway-side state of a purchase.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentSuccess PaymentStatus = "success"
	PaymentFailed  PaymentStatus = "failed"
)

// OrderStatus is the fulfilment state of a purchase.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
	OrderRefunded  OrderStatus = "refunded"
)

type Purchase struct {
	ID         string
	CustomerID string
	ServiceID  string
	Amount     decimal.Decimal
	Currency   string

	GatewayOrderID   string
	GatewayPaymentID *string

	PaymentStatus PaymentStatus
	OrderStatus   OrderStatus

	PurchasedAt time.Time
	UpdatedAt   time.Time
}

// NewCapturedPurchase builds the row written after a verified client-side
// confirmation: payment success, order completed.
func NewCapturedPurchase(
	id string,
	customerID string,
	serviceID string,
	amount Money,
	gatewayOrderID string,
	gatewayPaymentID string,
) (*Purchase, error) {
	if id == "" {
		return nil, errors.New("purchase ID is required")
	}
	if customerID == "" {
		return nil, NewMissingRequiredFieldError("customer ID")
	}
	if serviceID == "" {
		return nil, NewMissingRequiredFieldError("service ID")
	}
	if gatewayOrderID == "" {
		return nil, NewMissingRequiredFieldError("gateway order ID")
	}
	if gatewayPaymentID == "" {
		return nil, NewMissingRequiredFieldError("gateway payment ID")
	}

	now := time.Now().UTC()
	return &Purchase{
		ID:               id,
		CustomerID:       customerID,
		ServiceID:        serviceID,
		Amount:           amount.Amount,
		Currency:         amount.Currency,
		GatewayOrderID:   gatewayOrderID,
		GatewayPaymentID: &gatewayPaymentID,
		PaymentStatus:    PaymentSuccess,
		OrderStatus:      OrderCompleted,
		PurchasedAt:      now,
		UpdatedAt:        now,
	}, nil
}

func (p *Purchase) Money() Money {
	return Money{Amount: p.Amount, Currency: p.Currency}
}

// CanRefund reports whether a refund may be requested for this purchase.
func (p *Purchase) CanRefund() error {
	if p.PaymentStatus != PaymentSuccess {
		return NewInvalidStateError(string(p.PaymentStatus), string(PaymentSuccess))
	}
	if p.GatewayPaymentID == nil || *p.GatewayPaymentID == "" {
		return &DomainError{
			Code:    ErrCodeInvalidState,
			Message: "purchase has no gateway payment id",
			Err:     ErrInvalidState,
		}
	}
	if p.OrderStatus == OrderRefunded {
		return NewInvalidStateError(string(p.OrderStatus), string(OrderCompleted))
	}
	return nil
}

// ApplyCaptured records a gateway capture. It returns false when the purchase
// already reflects a successful payment.
func (p *Purchase) ApplyCaptured(gatewayPaymentID string) (bool, error) {
	if p.PaymentStatus == PaymentSuccess {
		return false, nil
	}
	if err := p.transitionPayment(PaymentSuccess); err != nil {
		return false, err
	}
	p.GatewayPaymentID = &gatewayPaymentID
	if p.OrderStatus == OrderPending {
		p.OrderStatus = OrderCompleted
	}
	p.UpdatedAt = time.Now().UTC()
	return true, nil
}

// ApplyFailed records a gateway failure. Only pending payments move; a
// success is never regressed.
func (p *Purchase) ApplyFailed() bool {
	if p.PaymentStatus != PaymentPending {
		return false
	}
	p.PaymentStatus = PaymentFailed
	p.UpdatedAt = time.Now().UTC()
	return true
}

// MarkRefunded moves a completed order to refunded.
func (p *Purchase) MarkRefunded() (bool, error) {
	if p.OrderStatus == OrderRefunded {
		return false, nil
	}
	if err := p.transitionOrder(OrderRefunded); err != nil {
		return false, err
	}
	p.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (p *Purchase) transitionPayment(target PaymentStatus) error {
	var err error
	switch p.PaymentStatus {
	case PaymentPending:
		err = allow(target, PaymentSuccess, PaymentFailed)
	case PaymentFailed:
		// a late capture after a failed attempt is still money received
		err = allow(target, PaymentSuccess)
	default:
		err = NewInvalidTransitionError(string(p.PaymentStatus), string(target))
	}
	if err != nil {
		return err
	}
	p.PaymentStatus = target
	return nil
}

func (p *Purchase) transitionOrder(target OrderStatus) error {
	var err error
	switch p.OrderStatus {
	case OrderPending:
		err = allow(target, OrderCompleted, OrderCancelled)
	case OrderCompleted:
		err = allow(target, OrderRefunded)
	default:
		err = NewInvalidTransitionError(string(p.OrderStatus), string(target))
	}
	if err != nil {
		return err
	}
	p.OrderStatus = target
	return nil
}

// Helper to check allowed state transitions
func allow[S ~string](target S, allowed ...S) error {
	if slices.Contains(allowed, target) {
		return nil
	}
	return ErrInvalidTransition
}

// ReconstitutePurchase - Special constructor for loading from DB
func ReconstitutePurchase(
	id, customerID, serviceID string,
	amount decimal.Decimal, currency string,
	gatewayOrderID string, gatewayPaymentID *string,
	paymentStatus PaymentStatus, orderStatus OrderStatus,
	purchasedAt, updatedAt time.Time,
) *Purchase {
	return &Purchase{
		ID:               id,
		CustomerID:       customerID,
		ServiceID:        serviceID,
		Amount:           amount,
		Currency:         currency,
		GatewayOrderID:   gatewayOrderID,
		GatewayPaymentID: gatewayPaymentID,
		PaymentStatus:    paymentStatus,
		OrderStatus:      orderStatus,
		PurchasedAt:      purchasedAt,
		UpdatedAt:        updatedAt,
	}
}
