package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/DanielPopoola/devmarket-ledger/internal/domain"
	"github.com/jackc/pgx/v5"
)

// ListingRepository reads the services catalogue.
type ListingRepository struct {
	db *DB
}

func NewListingRepository(db *DB) *ListingRepository {
	return &ListingRepository{db: db}
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	var m ListingModel
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, developer_id, title, price, currency
		FROM services WHERE id = $1`, id,
	).Scan(&m.ID, &m.DeveloperID, &m.Title, &m.Price, &m.Currency)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to scan service: %w", err)
	}
	return toDomainListing(m), nil
}
