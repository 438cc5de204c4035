package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/DanielPopoola/devmarket-ledger/internal/application"
	"github.com/DanielPopoola/devmarket-ledger/internal/domain"
)

// RefundSettler applies gateway refund outcomes to the ledger.
type RefundSettler interface {
	ApplyRefundProcessed(ctx context.Context, gatewayRefundID string) (bool, error)
	ApplyRefundFailed(ctx context.Context, gatewayRefundID string) (bool, error)
}

// Reconciler repairs refunds the request path or the webhook left behind:
// reservations whose gateway answer was lost, and acknowledged refunds whose
// settlement webhook never arrived.
type Reconciler struct {
	refundRepo   application.RefundRepository
	purchaseRepo application.PurchaseRepository
	gateway      application.GatewayClient
	settler      RefundSettler
	interval     time.Duration
	batchSize    int
	staleAfter   time.Duration
	logger       *slog.Logger
}

func NewReconciler(
	refundRepo application.RefundRepository,
	purchaseRepo application.PurchaseRepository,
	gateway application.GatewayClient,
	settler RefundSettler,
	interval time.Duration,
	batchSize int,
	staleAfter time.Duration,
	logger *slog.Logger,
) *Reconciler {
	return &Reconciler{
		refundRepo:   refundRepo,
		purchaseRepo: purchaseRepo,
		gateway:      gateway,
		settler:      settler,
		interval:     interval,
		batchSize:    batchSize,
		staleAfter:   staleAfter,
		logger:       logger,
	}
}

func (r *Reconciler) Start(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("starting refund reconciler",
		"interval", r.interval,
		"batch_size", r.batchSize,
		"stale_after", r.staleAfter)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("stopping refund reconciler")
			return
		case <-ticker.C:
			r.RunOnce(ctx)
		}
	}
}

// RunOnce executes a single reconciliation cycle.
func (r *Reconciler) RunOnce(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-r.staleAfter)
	r.reconcileReservations(ctx, cutoff)
	r.reconcileProcessing(ctx, cutoff)
}

func (r *Reconciler) reconcileReservations(ctx context.Context, cutoff time.Time) {
	orphans, err := r.refundRepo.FindStaleReservations(ctx, cutoff, r.batchSize)
	if err != nil {
		r.logger.Error("failed to fetch stale refund reservations", "error", err)
		return
	}
	if len(orphans) == 0 {
		return
	}

	r.logger.Info("reconciling orphaned refund reservations", "count", len(orphans))

	for _, refund := range orphans {
		if err := r.resolveReservation(ctx, refund); err != nil {
			r.logger.Error("reservation reconciliation failed",
				"refund_id", refund.ID,
				"purchase_id", refund.PurchaseID,
				"category", application.CategorizeError(err),
				"error", err)
		}
	}
}

// resolveReservation adopts the gateway refund carrying our receipt, or
// releases the reservation when the gateway has none.
func (r *Reconciler) resolveReservation(ctx context.Context, refund *domain.Refund) error {
	logger := r.logger.With("refund_id", refund.ID, "purchase_id", refund.PurchaseID)

	purchase, err := r.purchaseRepo.FindByID(ctx, refund.PurchaseID)
	if err != nil {
		return err
	}
	if purchase.GatewayPaymentID == nil {
		logger.Warn("reserved refund has no gateway payment, releasing")
		return r.release(ctx, logger, refund)
	}

	collection, err := r.gateway.ListPaymentRefunds(ctx, *purchase.GatewayPaymentID)
	if err != nil {
		return err
	}

	for _, item := range collection.Items {
		if item.Receipt == nil || *item.Receipt != refund.ID {
			continue
		}

		if err := r.refundRepo.AttachGatewayID(ctx, refund.ID, item.ID); err != nil {
			return err
		}
		logger.Info("adopted gateway refund", "gateway_refund_id", item.ID, "gateway_status", item.Status)
		return r.settle(ctx, logger, item.ID, item.Status)
	}

	return r.release(ctx, logger, refund)
}

func (r *Reconciler) release(ctx context.Context, logger *slog.Logger, refund *domain.Refund) error {
	err := r.refundRepo.Release(ctx, refund.ID)
	if errors.Is(err, domain.ErrRefundNotFound) {
		// acknowledged or removed since the scan
		return nil
	}
	if err != nil {
		return err
	}
	logger.Info("released refund reservation unknown to gateway")
	return nil
}

func (r *Reconciler) reconcileProcessing(ctx context.Context, cutoff time.Time) {
	stale, err := r.refundRepo.FindStaleProcessing(ctx, cutoff, r.batchSize)
	if err != nil {
		r.logger.Error("failed to fetch stale processing refunds", "error", err)
		return
	}
	if len(stale) == 0 {
		return
	}

	r.logger.Info("reconciling processing refunds", "count", len(stale))

	for _, refund := range stale {
		gatewayRefundID := *refund.GatewayRefundID
		logger := r.logger.With("refund_id", refund.ID, "gateway_refund_id", gatewayRefundID)

		resp, err := r.gateway.GetRefund(ctx, gatewayRefundID)
		if err != nil {
			logger.Error("failed to fetch refund from gateway",
				"category", application.CategorizeError(err),
				"error", err)
			continue
		}
		if err := r.settle(ctx, logger, gatewayRefundID, resp.Status); err != nil {
			logger.Error("failed to settle refund", "error", err)
		}
	}
}

func (r *Reconciler) settle(ctx context.Context, logger *slog.Logger, gatewayRefundID, gatewayStatus string) error {
	var (
		changed bool
		err     error
	)

	switch gatewayStatus {
	case application.GatewayRefundProcessed:
		changed, err = r.settler.ApplyRefundProcessed(ctx, gatewayRefundID)
	case application.GatewayRefundFailed:
		changed, err = r.settler.ApplyRefundFailed(ctx, gatewayRefundID)
	default:
		logger.Debug("refund still pending at gateway", "gateway_status", gatewayStatus)
		return nil
	}

	if errors.Is(err, domain.ErrInvalidTransition) {
		logger.Warn("gateway outcome conflicts with ledger state", "gateway_status", gatewayStatus, "error", err)
		return nil
	}
	if err != nil {
		return err
	}
	if changed {
		logger.Info("refund settled by reconciler", "gateway_status", gatewayStatus)
	}
	return nil
}
