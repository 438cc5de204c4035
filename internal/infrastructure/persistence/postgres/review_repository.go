package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/DanielPopoola/devmarket-ledger/internal/domain"
	"github.com/jackc/pgx/v5"
)

const reviewDetailsSelect = `
	SELECT rv.id, rv.service_id, rv.customer_id, rv.rating, rv.review_text,
	       rv.is_anonymous, rv.is_complaint, rv.created_at, rv.updated_at,
	       s.title, s.developer_id, cp.display_name, dp.contact_email
	FROM reviews rv
	JOIN services s ON s.id = rv.service_id
	LEFT JOIN profiles cp ON cp.id = rv.customer_id
	LEFT JOIN profiles dp ON dp.id = s.developer_id`

type ReviewRepository struct {
	db *DB
}

func NewReviewRepository(db *DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Upsert writes the review for (customer, service). An existing review keeps
// its id and created_at; everything else is replaced.
func (r *ReviewRepository) Upsert(ctx context.Context, review *domain.Review) (*domain.Review, bool, error) {
	query := `
		INSERT INTO reviews (
			id, service_id, customer_id, rating, review_text,
			is_anonymous, is_complaint, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (customer_id, service_id) DO UPDATE SET
			rating = EXCLUDED.rating,
			review_text = EXCLUDED.review_text,
			is_anonymous = EXCLUDED.is_anonymous,
			is_complaint = EXCLUDED.is_complaint,
			updated_at = EXCLUDED.updated_at
		RETURNING id, service_id, customer_id, rating, review_text,
		          is_anonymous, is_complaint, created_at, updated_at,
		          (xmax = 0) AS inserted
	`

	var m ReviewModel
	var inserted bool
	err := r.db.Pool.QueryRow(ctx, query,
		review.ID, review.ServiceID, review.CustomerID, int16(review.Rating), review.ReviewText,
		review.IsAnonymous, review.IsComplaint, review.CreatedAt, review.UpdatedAt,
	).Scan(
		&m.ID, &m.ServiceID, &m.CustomerID, &m.Rating, &m.ReviewText,
		&m.IsAnonymous, &m.IsComplaint, &m.CreatedAt, &m.UpdatedAt,
		&inserted,
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to upsert review: %w", err)
	}
	return toDomainReview(m), inserted, nil
}

func (r *ReviewRepository) FindDetails(ctx context.Context, reviewID string) (*domain.ReviewDetails, error) {
	row := r.db.Pool.QueryRow(ctx, reviewDetailsSelect+` WHERE rv.id = $1`, reviewID)

	m, err := scanReviewDetails(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to scan review: %w", err)
	}
	return toDomainReviewDetails(m), nil
}

// FindComplaintsByDeveloper lists complaints on the developer's services,
// newest first.
func (r *ReviewRepository) FindComplaintsByDeveloper(ctx context.Context, developerID string, limit, offset int) ([]*domain.ReviewDetails, error) {
	rows, err := r.db.Pool.Query(ctx, reviewDetailsSelect+`
		WHERE s.developer_id = $1 AND rv.is_complaint
		ORDER BY rv.created_at DESC, rv.id
		LIMIT $2 OFFSET $3`,
		developerID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("query complaints by developer: %w", err)
	}

	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.ReviewDetails, error) {
		m, err := scanReviewDetails(row)
		return toDomainReviewDetails(m), err
	})
	if err != nil {
		return nil, fmt.Errorf("error occurred while scanning review rows: %w", err)
	}
	return results, nil
}

func scanReviewDetails(row pgx.Row) (ReviewDetailsModel, error) {
	var m ReviewDetailsModel
	err := row.Scan(
		&m.ID, &m.ServiceID, &m.CustomerID, &m.Rating, &m.ReviewText,
		&m.IsAnonymous, &m.IsComplaint, &m.CreatedAt, &m.UpdatedAt,
		&m.ServiceTitle, &m.DeveloperID, &m.CustomerName, &m.DeveloperEmail,
	)
	return m, err
}
