package gateway

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/DanielPopoola/devmarket-ledger/internal/domain"
)

// Webhook event names.
const (
	EventPaymentCaptured = "payment.captured"
	EventPaymentFailed   = "payment.failed"
	EventRefundProcessed = "refund.processed"
	EventRefundFailed    = "refund.failed"
)

var ErrMalformedEvent = errors.New("malformed webhook event")

// Event is one decoded webhook delivery.
type Event interface {
	EventType() string
}

type PaymentCaptured struct {
	OrderID   string
	PaymentID string
	Amount    domain.Money
}

type PaymentFailed struct {
	OrderID     string
	PaymentID   string
	Description string
}

type RefundProcessed struct {
	RefundID  string
	PaymentID string
	Receipt   string
}

type RefundFailed struct {
	RefundID  string
	PaymentID string
	Receipt   string
}

// UnknownEvent is any event this service does not act on.
type UnknownEvent struct {
	Type string
}

func (PaymentCaptured) EventType() string { return EventPaymentCaptured }
func (PaymentFailed) EventType() string   { return EventPaymentFailed }
func (RefundProcessed) EventType() string { return EventRefundProcessed }
func (RefundFailed) EventType() string    { return EventRefundFailed }
func (e UnknownEvent) EventType() string  { return e.Type }

type paymentEntity struct {
	ID               string `json:"id"`
	OrderID          string `json:"order_id"`
	Amount           int64  `json:"amount"`
	Currency         string `json:"currency"`
	Status           string `json:"status"`
	ErrorDescription string `json:"error_description"`
}

type refundEntity struct {
	ID        string  `json:"id"`
	PaymentID string  `json:"payment_id"`
	Amount    int64   `json:"amount"`
	Currency  string  `json:"currency"`
	Status    string  `json:"status"`
	Receipt   *string `json:"receipt"`
}

type envelope struct {
	Entity    string   `json:"entity"`
	AccountID string   `json:"account_id"`
	Event     string   `json:"event"`
	Contains  []string `json:"contains"`
	Payload   struct {
		Payment *struct {
			Entity paymentEntity `json:"entity"`
		} `json:"payment"`
		Refund *struct {
			Entity refundEntity `json:"entity"`
		} `json:"refund"`
	} `json:"payload"`
	CreatedAt int64 `json:"created_at"`
}

// PeekEventType returns the event name without validating the rest of the
// envelope. It returns "" when the body is not a JSON object.
func PeekEventType(raw []byte) string {
	var head struct {
		Event string `json:"event"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return ""
	}
	return head.Event
}

// DecodeEvent parses a raw webhook body into one of the typed events.
func DecodeEvent(raw []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if env.Event == "" {
		return nil, fmt.Errorf("%w: missing event name", ErrMalformedEvent)
	}

	switch env.Event {
	case EventPaymentCaptured, EventPaymentFailed:
		if env.Payload.Payment == nil {
			return nil, fmt.Errorf("%w: %s without payment entity", ErrMalformedEvent, env.Event)
		}
		p := env.Payload.Payment.Entity
		if p.ID == "" || p.OrderID == "" {
			return nil, fmt.Errorf("%w: payment entity missing id or order_id", ErrMalformedEvent)
		}
		if env.Event == EventPaymentFailed {
			return PaymentFailed{OrderID: p.OrderID, PaymentID: p.ID, Description: p.ErrorDescription}, nil
		}
		return PaymentCaptured{
			OrderID:   p.OrderID,
			PaymentID: p.ID,
			Amount:    domain.FromMinorUnits(p.Amount, p.Currency),
		}, nil

	case EventRefundProcessed, EventRefundFailed:
		if env.Payload.Refund == nil {
			return nil, fmt.Errorf("%w: %s without refund entity", ErrMalformedEvent, env.Event)
		}
		r := env.Payload.Refund.Entity
		if r.ID == "" {
			return nil, fmt.Errorf("%w: refund entity missing id", ErrMalformedEvent)
		}
		var receipt string
		if r.Receipt != nil {
			receipt = *r.Receipt
		}
		if env.Event == EventRefundFailed {
			return RefundFailed{RefundID: r.ID, PaymentID: r.PaymentID, Receipt: receipt}, nil
		}
		return RefundProcessed{RefundID: r.ID, PaymentID: r.PaymentID, Receipt: receipt}, nil
	}

	return UnknownEvent{Type: env.Event}, nil
}
