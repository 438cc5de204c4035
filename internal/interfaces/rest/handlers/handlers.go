package handlers

import (
	"context"
	"log/slog"

	"github.com/DanielPopoola/devmarket-ledger/internal/application/services"
	"github.com/DanielPopoola/devmarket-ledger/internal/domain"
)

type PaymentCapturer interface {
	Capture(ctx context.Context, cmd services.CaptureCommand) (*domain.Purchase, error)
}

type WebhookIngestor interface {
	Ingest(ctx context.Context, raw []byte, signature, gatewayEventID string) error
}

type RefundInitiator interface {
	Initiate(ctx context.Context, cmd services.RefundCommand) (*domain.Refund, error)
}

type ReviewSubmitter interface {
	Submit(ctx context.Context, cmd services.SubmitReviewCommand) (*domain.Review, bool, error)
}

type ReviewNotifier interface {
	Notify(ctx context.Context, reviewID string) (services.NotifyResult, error)
}

type LedgerQueries interface {
	FindPurchase(ctx context.Context, id string) (*domain.Purchase, error)
	PurchasesByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*domain.Purchase, error)
	RefundsByCustomer(ctx context.Context, customerID string) ([]*domain.Refund, error)
	ComplaintsForDeveloper(ctx context.Context, developerID string, limit, offset int) ([]*domain.ReviewDetails, error)
}

// ReadinessCheck reports whether backing stores are reachable.
type ReadinessCheck func(ctx context.Context) error

type Handlers struct {
	capture  PaymentCapturer
	webhooks WebhookIngestor
	refunds  RefundInitiator
	reviews  ReviewSubmitter
	notifier ReviewNotifier
	queries  LedgerQueries
	ready    ReadinessCheck
	logger   *slog.Logger
}

func NewHandlers(
	capture PaymentCapturer,
	webhooks WebhookIngestor,
	refunds RefundInitiator,
	reviews ReviewSubmitter,
	notifier ReviewNotifier,
	queries LedgerQueries,
	ready ReadinessCheck,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		capture:  capture,
		webhooks: webhooks,
		refunds:  refunds,
		reviews:  reviews,
		notifier: notifier,
		queries:  queries,
		ready:    ready,
		logger:   logger,
	}
}

var (
	_ PaymentCapturer = (*services.CaptureService)(nil)
	_ WebhookIngestor = (*services.WebhookService)(nil)
	_ RefundInitiator = (*services.RefundService)(nil)
	_ ReviewSubmitter = (*services.ReviewService)(nil)
	_ ReviewNotifier  = (*services.NotificationService)(nil)
	_ LedgerQueries   = (*services.QueryService)(nil)
)
