package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/DanielPopoola/devmarket-ledger/internal/domain"
	"github.com/jackc/pgx/v5"
)

const purchaseColumns = `
	id, customer_id, service_id, amount, currency,
	gateway_order_id, gateway_payment_id, payment_status, order_status,
	purchased_at, updated_at`

type PurchaseRepository struct {
	db *DB
}

func NewPurchaseRepository(db *DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

// Create inserts a purchase keyed on its gateway id pair. A replay of the
// same pair writes nothing and reports false.
func (r *PurchaseRepository) Create(ctx context.Context, purchase *domain.Purchase) (bool, error) {
	query := `
		INSERT INTO purchases (` + purchaseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (gateway_order_id, gateway_payment_id) DO NOTHING
	`

	p := toPurchaseModel(purchase)
	tag, err := r.db.Pool.Exec(ctx, query,
		p.ID,
		p.CustomerID,
		p.ServiceID,
		p.Amount,
		p.Currency,
		p.GatewayOrderID,
		p.GatewayPaymentID,
		p.PaymentStatus,
		p.OrderStatus,
		p.PurchasedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to create purchase: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// FindByID retrieves a purchase
func (r *PurchaseRepository) FindByID(ctx context.Context, id string) (*domain.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE id = $1`

	return scanPurchase(r.db.Pool.QueryRow(ctx, query, id))
}

func (r *PurchaseRepository) FindByGatewayIDs(ctx context.Context, orderID, paymentID string) (*domain.Purchase, error) {
	query := `
		SELECT ` + purchaseColumns + `
		FROM purchases
		WHERE gateway_order_id = $1 AND gateway_payment_id = $2
	`

	return scanPurchase(r.db.Pool.QueryRow(ctx, query, orderID, paymentID))
}

// FindByCustomerID retrieves purchases for a customer, newest first
func (r *PurchaseRepository) FindByCustomerID(ctx context.Context, customerID string, limit, offset int) ([]*domain.Purchase, error) {
	query := `
		SELECT ` + purchaseColumns + `
		FROM purchases
		WHERE customer_id = $1
		ORDER BY purchased_at DESC, id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Pool.Query(ctx, query, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query purchases by customer_id: %w", err)
	}
	return collectPurchases(rows)
}

// UpdateByOrderID locks every purchase for the gateway order, lets fn mutate
// each and writes back the ones fn changed.
func (r *PurchaseRepository) UpdateByOrderID(
	ctx context.Context,
	orderID string,
	fn func(*domain.Purchase) (bool, error),
) (int, error) {
	var written int
	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		query := `
			SELECT ` + purchaseColumns + `
			FROM purchases
			WHERE gateway_order_id = $1
			ORDER BY purchased_at
			FOR UPDATE
		`
		rows, err := tx.Query(ctx, query, orderID)
		if err != nil {
			return fmt.Errorf("lock purchases by order: %w", err)
		}
		purchases, err := collectPurchases(rows)
		if err != nil {
			return err
		}

		for _, p := range purchases {
			changed, err := fn(p)
			if err != nil {
				return err
			}
			if !changed {
				continue
			}
			if err := updatePurchase(ctx, tx, p); err != nil {
				return err
			}
			written++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}

func (r *PurchaseRepository) HasSuccessfulPurchase(ctx context.Context, customerID, serviceID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM purchases
			WHERE customer_id = $1 AND service_id = $2 AND payment_status = 'success'
		)
	`

	var exists bool
	if err := r.db.Pool.QueryRow(ctx, query, customerID, serviceID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check purchase: %w", err)
	}
	return exists, nil
}

func updatePurchase(ctx context.Context, q Executor, purchase *domain.Purchase) error {
	query := `
		UPDATE purchases
		SET gateway_payment_id = $1,
			payment_status = $2,
			order_status = $3,
			updated_at = $4
		WHERE id = $5
	`

	p := toPurchaseModel(purchase)
	tag, err := q.Exec(ctx, query,
		p.GatewayPaymentID,
		p.PaymentStatus,
		p.OrderStatus,
		p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("gateway payment already recorded on another purchase: %w", domain.ErrInvalidState)
		}
		return fmt.Errorf("failed to update purchase: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPurchaseNotFound
	}
	return nil
}

func collectPurchases(rows pgx.Rows) ([]*domain.Purchase, error) {
	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Purchase, error) {
		var m PurchaseModel
		err := row.Scan(
			&m.ID, &m.CustomerID, &m.ServiceID, &m.Amount, &m.Currency,
			&m.GatewayOrderID, &m.GatewayPaymentID, &m.PaymentStatus, &m.OrderStatus,
			&m.PurchasedAt, &m.UpdatedAt,
		)
		return toDomainPurchase(m), err
	})
	if err != nil {
		return nil, fmt.Errorf("error occurred while scanning purchase rows: %w", err)
	}
	return results, nil
}

// scanPurchase converts a database row into a domain Purchase.
// Returns domain.ErrPurchaseNotFound if the row doesn't exist.
func scanPurchase(row pgx.Row) (*domain.Purchase, error) {
	var m PurchaseModel
	err := row.Scan(
		&m.ID, &m.CustomerID, &m.ServiceID, &m.Amount, &m.Currency,
		&m.GatewayOrderID, &m.GatewayPaymentID, &m.PaymentStatus, &m.OrderStatus,
		&m.PurchasedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPurchaseNotFound
		}
		return nil, fmt.Errorf("failed to scan purchase: %w", err)
	}
	return toDomainPurchase(m), nil
}
