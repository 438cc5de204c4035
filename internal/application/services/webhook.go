package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/DanielPopoola/devmarket-ledger/internal/application"
	"github.com/DanielPopoola/devmarket-ledger/internal/config"
	"github.com/DanielPopoola/devmarket-ledger/internal/domain"
	"github.com/DanielPopoola/devmarket-ledger/internal/infrastructure/gateway"
	"github.com/DanielPopoola/devmarket-ledger/internal/infrastructure/signature"
	"github.com/google/uuid"
)

// WebhookService applies gateway callbacks to the ledger.
type WebhookService struct {
	purchaseRepo application.PurchaseRepository
	refundRepo   application.RefundRepository
	eventRepo    application.WebhookEventRepository
	gatewayCfg   config.GatewayConfig
	logger       *slog.Logger
}

func NewWebhookService(
	purchaseRepo application.PurchaseRepository,
	refundRepo application.RefundRepository,
	eventRepo application.WebhookEventRepository,
	gatewayCfg config.GatewayConfig,
	logger *slog.Logger,
) *WebhookService {
	return &WebhookService{
		purchaseRepo: purchaseRepo,
		refundRepo:   refundRepo,
		eventRepo:    eventRepo,
		gatewayCfg:   gatewayCfg,
		logger:       logger,
	}
}

// Ingest verifies raw against sig, appends it to the event log and applies
// it. Deliveries that match no ledger row are accepted without change.
func (s *WebhookService) Ingest(ctx context.Context, raw []byte, sig, gatewayEventID string) error {
	secret := s.gatewayCfg.SigningSecret()
	if secret == "" {
		return application.NewConfigurationMissingError("gateway webhook secret")
	}

	if !signature.Verify(raw, sig, secret) {
		s.logger.Warn("webhook signature mismatch", "gateway_event_id", gatewayEventID)
		return application.NewInvalidSignatureError()
	}

	event := domain.NewWebhookEvent(uuid.New().String(), gateway.PeekEventType(raw), gatewayEventID, raw)
	if err := s.eventRepo.Append(ctx, event); err != nil {
		return application.NewLedgerWriteFailedError(err)
	}

	decoded, err := gateway.DecodeEvent(raw)
	if err != nil {
		s.logger.Warn("malformed webhook payload", "event_id", event.ID, "error", err)
		return application.NewInvalidPayloadError(err)
	}

	logger := s.logger.With("event_id", event.ID, "event", decoded.EventType())

	switch e := decoded.(type) {
	case gateway.PaymentCaptured:
		return s.applyCaptured(ctx, logger, e)
	case gateway.PaymentFailed:
		return s.applyPaymentFailed(ctx, logger, e)
	case gateway.RefundProcessed:
		return s.applyRefund(ctx, logger, e.RefundID, e.Receipt, s.ApplyRefundProcessed)
	case gateway.RefundFailed:
		return s.applyRefund(ctx, logger, e.RefundID, e.Receipt, s.ApplyRefundFailed)
	default:
		logger.Info("ignoring unhandled webhook event")
		return nil
	}
}

func (s *WebhookService) applyCaptured(ctx context.Context, logger *slog.Logger, e gateway.PaymentCaptured) error {
	n, err := s.purchaseRepo.UpdateByOrderID(ctx, e.OrderID, func(p *domain.Purchase) (bool, error) {
		return p.ApplyCaptured(e.PaymentID)
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			logger.Warn("capture does not apply to purchase state", "gateway_order_id", e.OrderID, "error", err)
			return nil
		}
		return application.NewLedgerWriteFailedError(err)
	}
	logNoop(logger, n, "gateway_order_id", e.OrderID)
	return nil
}

func (s *WebhookService) applyPaymentFailed(ctx context.Context, logger *slog.Logger, e gateway.PaymentFailed) error {
	n, err := s.purchaseRepo.UpdateByOrderID(ctx, e.OrderID, func(p *domain.Purchase) (bool, error) {
		return p.ApplyFailed(), nil
	})
	if err != nil {
		return application.NewLedgerWriteFailedError(err)
	}
	if n > 0 && e.Description != "" {
		logger.Info("payment failed at gateway", "gateway_order_id", e.OrderID, "reason", e.Description)
	}
	logNoop(logger, n, "gateway_order_id", e.OrderID)
	return nil
}

// ApplyRefundProcessed completes the refund and marks its purchase refunded.
// The reconciler shares it with the webhook path.
func (s *WebhookService) ApplyRefundProcessed(ctx context.Context, gatewayRefundID string) (bool, error) {
	return s.refundRepo.UpdateByGatewayID(ctx, gatewayRefundID, func(r *domain.Refund, p *domain.Purchase) (bool, error) {
		changed, err := r.Complete(time.Now().UTC())
		if err != nil || !changed {
			return changed, err
		}
		if _, err := p.MarkRefunded(); err != nil {
			return false, err
		}
		return true, nil
	})
}

// ApplyRefundFailed marks a processing refund failed, which frees the
// purchase for a new request.
func (s *WebhookService) ApplyRefundFailed(ctx context.Context, gatewayRefundID string) (bool, error) {
	return s.refundRepo.UpdateByGatewayID(ctx, gatewayRefundID, func(r *domain.Refund, _ *domain.Purchase) (bool, error) {
		return r.Fail()
	})
}

// applyRefund settles by gateway refund id. When the request path has not
// recorded that id yet, the receipt (our refund id) locates the reservation.
func (s *WebhookService) applyRefund(
	ctx context.Context,
	logger *slog.Logger,
	gatewayRefundID, receipt string,
	apply func(context.Context, string) (bool, error),
) error {
	changed, err := apply(ctx, gatewayRefundID)
	if errors.Is(err, domain.ErrRefundNotFound) {
		adopted, adoptErr := s.adoptByReceipt(ctx, logger, gatewayRefundID, receipt)
		if adoptErr != nil {
			return application.NewLedgerWriteFailedError(adoptErr)
		}
		if adopted {
			changed, err = apply(ctx, gatewayRefundID)
		}
	}
	return s.refundOutcome(logger, gatewayRefundID, changed, err)
}

func (s *WebhookService) adoptByReceipt(ctx context.Context, logger *slog.Logger, gatewayRefundID, receipt string) (bool, error) {
	if _, err := uuid.Parse(receipt); err != nil {
		return false, nil
	}
	err := s.refundRepo.AttachGatewayID(ctx, receipt, gatewayRefundID)
	switch {
	case errors.Is(err, domain.ErrRefundNotFound):
		return false, nil
	case errors.Is(err, domain.ErrInvalidState):
		logger.Warn("gateway refund already recorded on another refund",
			"refund_id", receipt,
			"gateway_refund_id", gatewayRefundID)
		return false, nil
	case err != nil:
		return false, err
	}
	logger.Info("matched gateway refund by receipt", "refund_id", receipt, "gateway_refund_id", gatewayRefundID)
	return true, nil
}

func (s *WebhookService) refundOutcome(logger *slog.Logger, gatewayRefundID string, changed bool, err error) error {
	switch {
	case errors.Is(err, domain.ErrRefundNotFound), errors.Is(err, domain.ErrPurchaseNotFound):
		logger.Info("no refund recorded for gateway refund", "gateway_refund_id", gatewayRefundID)
		return nil
	case errors.Is(err, domain.ErrInvalidTransition):
		logger.Warn("refund event does not apply to refund state", "gateway_refund_id", gatewayRefundID, "error", err)
		return nil
	case err != nil:
		return application.NewLedgerWriteFailedError(err)
	}

	if !changed {
		logger.Info("refund event already applied", "gateway_refund_id", gatewayRefundID)
		return nil
	}
	logger.Info("refund updated from webhook", "gateway_refund_id", gatewayRefundID)
	return nil
}

func logNoop(logger *slog.Logger, written int, key, value string) {
	if written == 0 {
		logger.Info("webhook matched no pending purchase", key, value)
		return
	}
	logger.Info("purchase updated from webhook", key, value, "rows", written)
}
