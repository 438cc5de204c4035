package testhelpers

import (
	"context"
	"testing"
	"time"

	"github.com/DanielPopoola/devmarket-ledger/internal/domain"
	"github.com/DanielPopoola/devmarket-ledger/internal/infrastructure/persistence/postgres"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// Fixture is a developer, a listed service and a customer.
type Fixture struct {
	DeveloperID string
	CustomerID  string
	Listing     *domain.Listing
}

// CreateProfile inserts a profile and returns its id.
func CreateProfile(t *testing.T, ctx context.Context, db *postgres.DB, displayName, email *string) string {
	t.Helper()
	id := uuid.NewString()
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO profiles (id, display_name, contact_email) VALUES ($1, $2, $3)`,
		id, displayName, email,
	)
	require.NoError(t, err)
	return id
}

// CreateListing inserts a service owned by developerID.
func CreateListing(t *testing.T, ctx context.Context, db *postgres.DB, developerID, title, price string) *domain.Listing {
	t.Helper()
	listing := &domain.Listing{
		ID:          uuid.NewString(),
		DeveloperID: developerID,
		Title:       title,
		Price:       domain.Money{Amount: decimal.RequireFromString(price), Currency: "INR"},
	}
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO services (id, developer_id, title, price, currency) VALUES ($1, $2, $3, $4, $5)`,
		listing.ID, listing.DeveloperID, listing.Title, listing.Price.Amount, listing.Price.Currency,
	)
	require.NoError(t, err)
	return listing
}

// CreateFixture sets up a developer with a 100.00 INR service and a named
// customer.
func CreateFixture(t *testing.T, ctx context.Context, db *postgres.DB) *Fixture {
	t.Helper()
	devName, devEmail := "Dev Studio", "dev@example.com"
	custName := "Priya"

	developerID := CreateProfile(t, ctx, db, &devName, &devEmail)
	customerID := CreateProfile(t, ctx, db, &custName, nil)
	listing := CreateListing(t, ctx, db, developerID, "Landing Page Audit", "100.00")

	return &Fixture{
		DeveloperID: developerID,
		CustomerID:  customerID,
		Listing:     listing,
	}
}

// CreateCapturedPurchase inserts a success/completed purchase with fresh
// gateway ids.
func CreateCapturedPurchase(t *testing.T, ctx context.Context, db *postgres.DB, f *Fixture) *domain.Purchase {
	t.Helper()
	purchase, err := domain.NewCapturedPurchase(
		uuid.NewString(),
		f.CustomerID,
		f.Listing.ID,
		f.Listing.Price,
		"order_"+uuid.NewString()[:14],
		"pay_"+uuid.NewString()[:14],
	)
	require.NoError(t, err)

	created, err := postgres.NewPurchaseRepository(db).Create(ctx, purchase)
	require.NoError(t, err)
	require.True(t, created)
	return purchase
}

// CreatePendingPurchase inserts a purchase the client never confirmed, as
// the checkout flow leaves it before any payment callback.
func CreatePendingPurchase(t *testing.T, ctx context.Context, db *postgres.DB, f *Fixture, orderID string) *domain.Purchase {
	t.Helper()
	now := time.Now().UTC()
	purchase := domain.ReconstitutePurchase(
		uuid.NewString(), f.CustomerID, f.Listing.ID,
		f.Listing.Price.Amount, f.Listing.Price.Currency,
		orderID, nil,
		domain.PaymentPending, domain.OrderPending,
		now, now,
	)

	created, err := postgres.NewPurchaseRepository(db).Create(ctx, purchase)
	require.NoError(t, err)
	require.True(t, created)
	return purchase
}

// CreateRefund inserts a refund row directly, bypassing the reservation.
func CreateRefund(t *testing.T, ctx context.Context, db *postgres.DB, purchase *domain.Purchase, status domain.RefundStatus, gatewayRefundID *string, createdAt time.Time) *domain.Refund {
	t.Helper()
	refund := domain.ReconstituteRefund(
		uuid.NewString(), purchase.ID,
		purchase.Amount, purchase.Currency,
		"test refund", status, gatewayRefundID,
		createdAt, nil,
	)
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO refunds (id, purchase_id, amount, currency, reason, status, gateway_refund_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		refund.ID, refund.PurchaseID, refund.Amount, refund.Currency, refund.Reason,
		string(refund.Status), refund.GatewayRefundID, refund.CreatedAt,
	)
	require.NoError(t, err)
	return refund
}

// CreateReview inserts a review through the repository.
func CreateReview(t *testing.T, ctx context.Context, db *postgres.DB, f *Fixture, rating int, text string, anonymous bool) *domain.Review {
	t.Helper()
	review, err := domain.NewReview(uuid.NewString(), f.Listing.ID, f.CustomerID, rating, text, anonymous)
	require.NoError(t, err)

	stored, _, err := postgres.NewReviewRepository(db).Upsert(ctx, review)
	require.NoError(t, err)
	return stored
}

func Ptr[T any](v T) *T {
	return &v
}
