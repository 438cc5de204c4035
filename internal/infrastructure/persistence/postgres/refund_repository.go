package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DanielPopoola/devmarket-ledger/internal/domain"
	"github.com/jackc/pgx/v5"
)

const refundColumns = `
	r.id, r.purchase_id, r.amount, r.currency, r.reason, r.status,
	r.gateway_refund_id, r.created_at, r.processed_at`

const liveRefundIndex = "refunds_one_live_per_purchase"

type RefundRepository struct {
	db *DB
}

func NewRefundRepository(db *DB) *RefundRepository {
	return &RefundRepository{db: db}
}

// Reserve locks the purchase row, builds the refund from the locked state and
// inserts it. The partial unique index on live refunds turns a concurrent
// second reservation into domain.ErrRefundInProgress.
func (r *RefundRepository) Reserve(
	ctx context.Context,
	purchaseID string,
	build func(*domain.Purchase) (*domain.Refund, error),
) (*domain.Refund, error) {
	var refund *domain.Refund
	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		purchase, err := findPurchaseForUpdate(ctx, tx, purchaseID)
		if err != nil {
			return err
		}

		refund, err = build(purchase)
		if err != nil {
			return err
		}

		m := toRefundModel(refund)
		_, err = tx.Exec(ctx, `
			INSERT INTO refunds (
				id, purchase_id, amount, currency, reason, status,
				gateway_refund_id, created_at, processed_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			m.ID, m.PurchaseID, m.Amount, m.Currency, m.Reason, m.Status,
			m.GatewayRefundID, m.CreatedAt, m.ProcessedAt,
		)
		if err != nil {
			if IsUniqueViolation(err) && violatedConstraint(err) == liveRefundIndex {
				return domain.ErrRefundInProgress
			}
			return fmt.Errorf("failed to insert refund: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return refund, nil
}

func (r *RefundRepository) AttachGatewayID(ctx context.Context, refundID, gatewayRefundID string) error {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE refunds
		SET gateway_refund_id = $1
		WHERE id = $2 AND (gateway_refund_id IS NULL OR gateway_refund_id = $1)`,
		gatewayRefundID, refundID,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("gateway refund %s already recorded: %w", gatewayRefundID, domain.ErrInvalidState)
		}
		return fmt.Errorf("failed to attach gateway refund id: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRefundNotFound
	}
	return nil
}

// Release deletes a reservation that never reached the gateway.
func (r *RefundRepository) Release(ctx context.Context, refundID string) error {
	tag, err := r.db.Pool.Exec(ctx, `
		DELETE FROM refunds
		WHERE id = $1 AND gateway_refund_id IS NULL AND status = 'processing'`,
		refundID,
	)
	if err != nil {
		return fmt.Errorf("failed to release refund: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRefundNotFound
	}
	return nil
}

// UpdateByGatewayID locks the purchase and then the refund, applies fn and
// persists both when fn reports a change.
func (r *RefundRepository) UpdateByGatewayID(
	ctx context.Context,
	gatewayRefundID string,
	fn func(*domain.Refund, *domain.Purchase) (bool, error),
) (bool, error) {
	var changed bool
	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		var purchaseID string
		err := tx.QueryRow(ctx,
			`SELECT purchase_id FROM refunds WHERE gateway_refund_id = $1`, gatewayRefundID,
		).Scan(&purchaseID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRefundNotFound
			}
			return fmt.Errorf("find refund: %w", err)
		}

		purchase, err := findPurchaseForUpdate(ctx, tx, purchaseID)
		if err != nil {
			return err
		}

		refund, err := scanRefund(tx.QueryRow(ctx, `
			SELECT `+refundColumns+`
			FROM refunds r
			WHERE r.gateway_refund_id = $1
			FOR UPDATE`, gatewayRefundID))
		if err != nil {
			return err
		}

		changed, err = fn(refund, purchase)
		if err != nil || !changed {
			return err
		}

		m := toRefundModel(refund)
		if _, err := tx.Exec(ctx, `
			UPDATE refunds SET status = $1, processed_at = $2 WHERE id = $3`,
			m.Status, m.ProcessedAt, m.ID,
		); err != nil {
			if IsUniqueViolation(err) && violatedConstraint(err) == liveRefundIndex {
				return domain.ErrRefundInProgress
			}
			return fmt.Errorf("failed to update refund: %w", err)
		}
		return updatePurchase(ctx, tx, purchase)
	})
	if err != nil {
		return false, err
	}
	return changed, nil
}

func (r *RefundRepository) FindByID(ctx context.Context, id string) (*domain.Refund, error) {
	return scanRefund(r.db.Pool.QueryRow(ctx,
		`SELECT `+refundColumns+` FROM refunds r WHERE r.id = $1`, id))
}

// FindByCustomerID returns the customer's refunds, newest first.
func (r *RefundRepository) FindByCustomerID(ctx context.Context, customerID string) ([]*domain.Refund, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT `+refundColumns+`
		FROM refunds r
		JOIN purchases p ON p.id = r.purchase_id
		WHERE p.customer_id = $1
		ORDER BY r.created_at DESC, r.id`,
		customerID,
	)
	if err != nil {
		return nil, fmt.Errorf("query refunds by customer_id: %w", err)
	}
	return collectRefunds(rows)
}

// FindStaleReservations returns processing refunds the gateway never
// acknowledged, created before olderThan.
func (r *RefundRepository) FindStaleReservations(ctx context.Context, olderThan time.Time, limit int) ([]*domain.Refund, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT `+refundColumns+`
		FROM refunds r
		WHERE r.status = 'processing'
		  AND r.gateway_refund_id IS NULL
		  AND r.created_at < $1
		ORDER BY r.created_at ASC
		LIMIT $2`,
		olderThan, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query stale reservations: %w", err)
	}
	return collectRefunds(rows)
}

// FindStaleProcessing returns acknowledged refunds still awaiting a
// settlement webhook, created before olderThan.
func (r *RefundRepository) FindStaleProcessing(ctx context.Context, olderThan time.Time, limit int) ([]*domain.Refund, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT `+refundColumns+`
		FROM refunds r
		WHERE r.status = 'processing'
		  AND r.gateway_refund_id IS NOT NULL
		  AND r.created_at < $1
		ORDER BY r.created_at ASC
		LIMIT $2`,
		olderThan, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query stale processing refunds: %w", err)
	}
	return collectRefunds(rows)
}

func findPurchaseForUpdate(ctx context.Context, q Executor, id string) (*domain.Purchase, error) {
	return scanPurchase(q.QueryRow(ctx,
		`SELECT `+purchaseColumns+` FROM purchases WHERE id = $1 FOR UPDATE`, id))
}

func collectRefunds(rows pgx.Rows) ([]*domain.Refund, error) {
	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Refund, error) {
		var m RefundModel
		err := row.Scan(
			&m.ID, &m.PurchaseID, &m.Amount, &m.Currency, &m.Reason, &m.Status,
			&m.GatewayRefundID, &m.CreatedAt, &m.ProcessedAt,
		)
		return toDomainRefund(m), err
	})
	if err != nil {
		return nil, fmt.Errorf("error occurred while scanning refund rows: %w", err)
	}
	return results, nil
}

func scanRefund(row pgx.Row) (*domain.Refund, error) {
	var m RefundModel
	err := row.Scan(
		&m.ID, &m.PurchaseID, &m.Amount, &m.Currency, &m.Reason, &m.Status,
		&m.GatewayRefundID, &m.CreatedAt, &m.ProcessedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRefundNotFound
		}
		return nil, fmt.Errorf("failed to scan refund: %w", err)
	}
	return toDomainRefund(m), nil
}
