package postgres

import (
	"context"
	"fmt"

	"github.com/DanielPopoola/devmarket-ledger/internal/domain"
)

type WebhookEventRepository struct {
	db *DB
}

func NewWebhookEventRepository(db *DB) *WebhookEventRepository {
	return &WebhookEventRepository{db: db}
}

// Append stores the raw delivery byte for byte.
func (r *WebhookEventRepository) Append(ctx context.Context, event *domain.WebhookEvent) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO webhook_events (id, event_type, gateway_event_id, payload, received_at)
		VALUES ($1, $2, $3, $4, $5)`,
		event.ID, event.EventType, event.GatewayEventID, event.Payload, event.ReceivedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append webhook event: %w", err)
	}
	return nil
}

// CountByGatewayEventID is used by operators and tests to inspect redeliveries.
func (r *WebhookEventRepository) CountByGatewayEventID(ctx context.Context, gatewayEventID string) (int, error) {
	var n int
	err := r.db.Pool.QueryRow(ctx,
		`SELECT count(*) FROM webhook_events WHERE gateway_event_id = $1`, gatewayEventID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count webhook events: %w", err)
	}
	return n, nil
}
