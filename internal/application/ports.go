package application

import (
	"context"
	"time"

	"github.com/DanielPopoola/devmarket-ledger/internal/domain"
)

// GatewayClient is the port for the external payment gateway.
type GatewayClient interface {
	CreateRefund(ctx context.Context, req RefundRequest) (*RefundResponse, error)
	GetRefund(ctx context.Context, refundID string) (*RefundResponse, error)
	ListPaymentRefunds(ctx context.Context, paymentID string) (*RefundCollection, error)
}

// PurchaseRepository is the port for the purchase ledger.
type PurchaseRepository interface {
	// Create inserts purchase unless its gateway id pair is already recorded.
	// It reports whether a row was written.
	Create(ctx context.Context, purchase *domain.Purchase) (bool, error)
	FindByID(ctx context.Context, id string) (*domain.Purchase, error)
	FindByGatewayIDs(ctx context.Context, orderID, paymentID string) (*domain.Purchase, error)
	FindByCustomerID(ctx context.Context, customerID string, limit, offset int) ([]*domain.Purchase, error)
	// UpdateByOrderID locks every purchase carrying orderID, applies fn to
	// each and persists those fn reports as changed. It returns the number
	// of rows written.
	UpdateByOrderID(ctx context.Context, orderID string, fn func(*domain.Purchase) (bool, error)) (int, error)
	HasSuccessfulPurchase(ctx context.Context, customerID, serviceID string) (bool, error)
}

// RefundRepository is the port for refund records.
type RefundRepository interface {
	// Reserve locks the purchase, builds a refund from it and inserts the
	// refund in the same transaction. A live refund for the purchase yields
	// domain.ErrRefundInProgress.
	Reserve(ctx context.Context, purchaseID string, build func(*domain.Purchase) (*domain.Refund, error)) (*domain.Refund, error)
	AttachGatewayID(ctx context.Context, refundID, gatewayRefundID string) error
	// Release deletes a reservation the gateway never acknowledged.
	Release(ctx context.Context, refundID string) error
	// UpdateByGatewayID locks the refund and its purchase and persists both
	// when fn reports a change.
	UpdateByGatewayID(ctx context.Context, gatewayRefundID string, fn func(*domain.Refund, *domain.Purchase) (bool, error)) (bool, error)
	FindByID(ctx context.Context, id string) (*domain.Refund, error)
	FindByCustomerID(ctx context.Context, customerID string) ([]*domain.Refund, error)
	FindStaleReservations(ctx context.Context, olderThan time.Time, limit int) ([]*domain.Refund, error)
	FindStaleProcessing(ctx context.Context, olderThan time.Time, limit int) ([]*domain.Refund, error)
}

type WebhookEventRepository interface {
	Append(ctx context.Context, event *domain.WebhookEvent) error
}

type ReviewRepository interface {
	// Upsert writes review keyed on (customer, service) and returns the
	// stored row and whether it was newly created.
	Upsert(ctx context.Context, review *domain.Review) (*domain.Review, bool, error)
	FindDetails(ctx context.Context, reviewID string) (*domain.ReviewDetails, error)
	FindComplaintsByDeveloper(ctx context.Context, developerID string, limit, offset int) ([]*domain.ReviewDetails, error)
}

type ListingRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Listing, error)
}

// OperatorChannel delivers complaint alerts to the support team.
type OperatorChannel interface {
	NotifyComplaint(ctx context.Context, details *domain.ReviewDetails) error
}

// DeveloperMailer delivers review notices to the service's developer.
type DeveloperMailer interface {
	SendReviewNotice(ctx context.Context, to string, details *domain.ReviewDetails) error
}

// NotificationQueue hands review notifications off to background workers.
type NotificationQueue interface {
	Enqueue(ctx context.Context, reviewID string) error
	// Dequeue blocks until a review id is available, ctx ends or the queue
	// is closed (ErrQueueClosed).
	Dequeue(ctx context.Context) (string, error)
	Close() error
}
