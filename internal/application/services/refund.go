package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/DanielPopoola/devmarket-ledger/internal/application"
	"github.com/DanielPopoola/devmarket-ledger/internal/config"
	"github.com/DanielPopoola/devmarket-ledger/internal/domain"
	"github.com/google/uuid"
)

// RefundService requests full refunds from the gateway. Settlement arrives
// later through the webhook.
type RefundService struct {
	refundRepo    application.RefundRepository
	gatewayClient application.GatewayClient
	gatewayCfg    config.GatewayConfig
	logger        *slog.Logger
}

func NewRefundService(
	refundRepo application.RefundRepository,
	gatewayClient application.GatewayClient,
	gatewayCfg config.GatewayConfig,
	logger *slog.Logger,
) *RefundService {
	return &RefundService{
		refundRepo:    refundRepo,
		gatewayClient: gatewayClient,
		gatewayCfg:    gatewayCfg,
		logger:        logger,
	}
}

func (s *RefundService) Initiate(ctx context.Context, cmd RefundCommand) (*domain.Refund, error) {
	if s.gatewayCfg.KeyID == "" || s.gatewayCfg.KeySecret == "" {
		return nil, application.NewConfigurationMissingError("gateway key id or key secret")
	}

	if err := validateCommand(cmd); err != nil {
		return nil, err
	}
	reason, err := domain.NormalizeRefundReason(cmd.Reason)
	if err != nil {
		return nil, application.NewInvalidInputError(err)
	}

	var paymentID string
	refund, err := s.refundRepo.Reserve(ctx, cmd.PurchaseID, func(p *domain.Purchase) (*domain.Refund, error) {
		r, err := domain.NewRefund(uuid.New().String(), p, reason)
		if err != nil {
			return nil, err
		}
		paymentID = *p.GatewayPaymentID
		return r, nil
	})
	if err != nil {
		return nil, s.reserveError(err)
	}

	minor, err := refund.Money().MinorUnits()
	if err != nil {
		s.release(ctx, refund)
		return nil, application.NewInvalidStateError("Purchase amount cannot be refunded", err)
	}

	resp, err := s.gatewayClient.CreateRefund(ctx, application.RefundRequest{
		PaymentID: paymentID,
		Amount:    minor,
		Notes:     map[string]string{"reason": reason},
		Receipt:   refund.ID,
	})
	if err != nil {
		if application.IsDefiniteRejection(err) {
			s.logger.Warn("gateway rejected refund",
				"refund_id", refund.ID,
				"purchase_id", refund.PurchaseID,
				"error", err)
			s.release(ctx, refund)
			return nil, application.NewGatewayRejectedError(err)
		}
		// the gateway may have applied it; the reconciler resolves by receipt
		s.logger.Error("gateway refund outcome unknown, keeping reservation",
			"refund_id", refund.ID,
			"purchase_id", refund.PurchaseID,
			"category", application.CategorizeError(err),
			"error", err)
		return nil, application.NewGatewayUnconfirmedError(err)
	}

	if err := refund.AttachGatewayID(resp.ID); err != nil {
		return nil, application.NewInternalError(err)
	}
	if err := s.refundRepo.AttachGatewayID(context.WithoutCancel(ctx), refund.ID, resp.ID); err != nil {
		// the reconciler adopts the gateway refund by receipt later
		s.logger.Error("failed to record gateway refund id",
			"refund_id", refund.ID,
			"gateway_refund_id", resp.ID,
			"error", err)
		return nil, application.NewLedgerWriteFailedError(err)
	}

	s.logger.Info("refund requested",
		"refund_id", refund.ID,
		"purchase_id", refund.PurchaseID,
		"gateway_refund_id", resp.ID,
		"amount_minor", minor)
	return refund, nil
}

func (s *RefundService) release(ctx context.Context, refund *domain.Refund) {
	// the caller's context may already be done; the reservation must still go
	if err := s.refundRepo.Release(context.WithoutCancel(ctx), refund.ID); err != nil {
		s.logger.Error("failed to release refund reservation", "refund_id", refund.ID, "error", err)
	}
}

func (s *RefundService) reserveError(err error) error {
	switch {
	case errors.Is(err, domain.ErrPurchaseNotFound):
		return application.NewNotFoundError("Purchase", err)
	case errors.Is(err, domain.ErrRefundInProgress):
		return application.NewInvalidStateError("A refund is already in progress for this purchase", err)
	case errors.Is(err, domain.ErrInvalidState), errors.Is(err, domain.ErrInvalidTransition):
		return application.NewInvalidStateError("Purchase is not eligible for a refund", err)
	case errors.Is(err, domain.ErrMissingRequiredField):
		return application.NewInvalidInputError(err)
	}
	return application.NewInternalError(err)
}
