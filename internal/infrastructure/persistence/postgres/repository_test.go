package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DanielPopoola/devmarket-ledger/internal/application/services/testhelpers"
	"github.com/DanielPopoola/devmarket-ledger/internal/domain"
	"github.com/DanielPopoola/devmarket-ledger/internal/infrastructure/persistence/postgres"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RepositoryTestSuite struct {
	suite.Suite
	testDB       *testhelpers.TestDatabase
	purchaseRepo *postgres.PurchaseRepository
	refundRepo   *postgres.RefundRepository
	reviewRepo   *postgres.ReviewRepository
	listingRepo  *postgres.ListingRepository
	eventRepo    *postgres.WebhookEventRepository
	fixture      *testhelpers.Fixture
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

func (suite *RepositoryTestSuite) SetupSuite() {
	suite.testDB = testhelpers.SetupTestDatabase(suite.T())
	db := suite.testDB.DB
	suite.purchaseRepo = postgres.NewPurchaseRepository(db)
	suite.refundRepo = postgres.NewRefundRepository(db)
	suite.reviewRepo = postgres.NewReviewRepository(db)
	suite.listingRepo = postgres.NewListingRepository(db)
	suite.eventRepo = postgres.NewWebhookEventRepository(db)
}

func (suite *RepositoryTestSuite) TearDownSuite() {
	suite.testDB.Cleanup(suite.T())
}

func (suite *RepositoryTestSuite) SetupTest() {
	suite.fixture = testhelpers.CreateFixture(suite.T(), context.Background(), suite.testDB.DB)
}

func (suite *RepositoryTestSuite) TearDownTest() {
	suite.testDB.CleanTables(suite.T())
}

// ============================================================================
// MIGRATIONS
// ============================================================================

func (suite *RepositoryTestSuite) Test_Migrate_IsRepeatable() {
	applied, err := suite.testDB.DB.Migrate(context.Background())
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), applied)
}

// ============================================================================
// PURCHASES
// ============================================================================

func (suite *RepositoryTestSuite) Test_Purchase_CreateConflictReportsFalse() {
	ctx := context.Background()
	t := suite.T()

	p := testhelpers.CreateCapturedPurchase(t, ctx, suite.testDB.DB, suite.fixture)

	dup, err := domain.NewCapturedPurchase(uuid.NewString(), p.CustomerID, p.ServiceID, p.Money(), p.GatewayOrderID, *p.GatewayPaymentID)
	require.NoError(t, err)

	created, err := suite.purchaseRepo.Create(ctx, dup)
	require.NoError(t, err)
	assert.False(t, created)

	found, err := suite.purchaseRepo.FindByGatewayIDs(ctx, p.GatewayOrderID, *p.GatewayPaymentID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, found.ID)
}

func (suite *RepositoryTestSuite) Test_Purchase_UpdateByOrderID_WritesOnlyChanged() {
	ctx := context.Background()
	t := suite.T()

	pending := testhelpers.CreatePendingPurchase(t, ctx, suite.testDB.DB, suite.fixture, "order_U1")

	n, err := suite.purchaseRepo.UpdateByOrderID(ctx, "order_U1", func(p *domain.Purchase) (bool, error) {
		return p.ApplyCaptured("pay_U1")
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = suite.purchaseRepo.UpdateByOrderID(ctx, "order_U1", func(p *domain.Purchase) (bool, error) {
		return p.ApplyCaptured("pay_U1")
	})
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	saved, err := suite.purchaseRepo.FindByID(ctx, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentSuccess, saved.PaymentStatus)

	n, err = suite.purchaseRepo.UpdateByOrderID(ctx, "order_none", func(p *domain.Purchase) (bool, error) {
		return true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func (suite *RepositoryTestSuite) Test_Purchase_HasSuccessfulPurchase() {
	ctx := context.Background()
	t := suite.T()

	ok, err := suite.purchaseRepo.HasSuccessfulPurchase(ctx, suite.fixture.CustomerID, suite.fixture.Listing.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	testhelpers.CreateCapturedPurchase(t, ctx, suite.testDB.DB, suite.fixture)

	ok, err = suite.purchaseRepo.HasSuccessfulPurchase(ctx, suite.fixture.CustomerID, suite.fixture.Listing.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func (suite *RepositoryTestSuite) Test_Purchase_NotFound() {
	_, err := suite.purchaseRepo.FindByID(context.Background(), uuid.NewString())
	assert.ErrorIs(suite.T(), err, domain.ErrPurchaseNotFound)
}

// ============================================================================
// REFUNDS
// ============================================================================

func (suite *RepositoryTestSuite) reserve(purchaseID string) (*domain.Refund, error) {
	return suite.refundRepo.Reserve(context.Background(), purchaseID, func(p *domain.Purchase) (*domain.Refund, error) {
		return domain.NewRefund(uuid.NewString(), p, "reason")
	})
}

func (suite *RepositoryTestSuite) Test_Refund_ReserveGuardsLiveRefund() {
	ctx := context.Background()
	t := suite.T()

	p := testhelpers.CreateCapturedPurchase(t, ctx, suite.testDB.DB, suite.fixture)

	first, err := suite.reserve(p.ID)
	require.NoError(t, err)
	assert.True(t, first.IsOrphaned())

	_, err = suite.reserve(p.ID)
	assert.ErrorIs(t, err, domain.ErrRefundInProgress)

	require.NoError(t, suite.refundRepo.Release(ctx, first.ID))
	_, err = suite.refundRepo.FindByID(ctx, first.ID)
	assert.ErrorIs(t, err, domain.ErrRefundNotFound)

	_, err = suite.reserve(p.ID)
	require.NoError(t, err)
}

func (suite *RepositoryTestSuite) Test_Refund_AttachAndRelease() {
	ctx := context.Background()
	t := suite.T()

	p := testhelpers.CreateCapturedPurchase(t, ctx, suite.testDB.DB, suite.fixture)
	r, err := suite.reserve(p.ID)
	require.NoError(t, err)

	require.NoError(t, suite.refundRepo.AttachGatewayID(ctx, r.ID, "rfnd_A"))
	// same id again is fine
	require.NoError(t, suite.refundRepo.AttachGatewayID(ctx, r.ID, "rfnd_A"))
	assert.ErrorIs(t, suite.refundRepo.AttachGatewayID(ctx, r.ID, "rfnd_B"), domain.ErrRefundNotFound)

	// acknowledged refunds are never released
	assert.ErrorIs(t, suite.refundRepo.Release(ctx, r.ID), domain.ErrRefundNotFound)
}

func (suite *RepositoryTestSuite) Test_Refund_UpdateByGatewayID() {
	ctx := context.Background()
	t := suite.T()

	p := testhelpers.CreateCapturedPurchase(t, ctx, suite.testDB.DB, suite.fixture)
	r := testhelpers.CreateRefund(t, ctx, suite.testDB.DB, p, domain.RefundProcessing, testhelpers.Ptr("rfnd_U"), time.Now().UTC())

	changed, err := suite.refundRepo.UpdateByGatewayID(ctx, "rfnd_U", func(ref *domain.Refund, pur *domain.Purchase) (bool, error) {
		if _, err := ref.Complete(time.Now().UTC()); err != nil {
			return false, err
		}
		return pur.MarkRefunded()
	})
	require.NoError(t, err)
	assert.True(t, changed)

	saved, err := suite.refundRepo.FindByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RefundCompleted, saved.Status)

	purchase, err := suite.purchaseRepo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderRefunded, purchase.OrderStatus)

	_, err = suite.refundRepo.UpdateByGatewayID(ctx, "rfnd_missing", func(*domain.Refund, *domain.Purchase) (bool, error) {
		return true, nil
	})
	assert.ErrorIs(t, err, domain.ErrRefundNotFound)
}

func (suite *RepositoryTestSuite) Test_Refund_StaleQueries() {
	ctx := context.Background()
	t := suite.T()

	old := time.Now().UTC().Add(-time.Hour)

	p1 := testhelpers.CreateCapturedPurchase(t, ctx, suite.testDB.DB, suite.fixture)
	orphan := testhelpers.CreateRefund(t, ctx, suite.testDB.DB, p1, domain.RefundProcessing, nil, old)

	p2 := testhelpers.CreateCapturedPurchase(t, ctx, suite.testDB.DB, suite.fixture)
	acked := testhelpers.CreateRefund(t, ctx, suite.testDB.DB, p2, domain.RefundProcessing, testhelpers.Ptr("rfnd_stale"), old)

	p3 := testhelpers.CreateCapturedPurchase(t, ctx, suite.testDB.DB, suite.fixture)
	testhelpers.CreateRefund(t, ctx, suite.testDB.DB, p3, domain.RefundProcessing, nil, time.Now().UTC())

	cutoff := time.Now().UTC().Add(-10 * time.Minute)

	reservations, err := suite.refundRepo.FindStaleReservations(ctx, cutoff, 10)
	require.NoError(t, err)
	require.Len(t, reservations, 1)
	assert.Equal(t, orphan.ID, reservations[0].ID)

	processing, err := suite.refundRepo.FindStaleProcessing(ctx, cutoff, 10)
	require.NoError(t, err)
	require.Len(t, processing, 1)
	assert.Equal(t, acked.ID, processing[0].ID)

	byCustomer, err := suite.refundRepo.FindByCustomerID(ctx, suite.fixture.CustomerID)
	require.NoError(t, err)
	assert.Len(t, byCustomer, 3)
}

// ============================================================================
// REVIEWS, LISTINGS, EVENTS
// ============================================================================

func (suite *RepositoryTestSuite) Test_Review_UpsertKeepsIdentity() {
	ctx := context.Background()
	t := suite.T()

	first, err := domain.NewReview(uuid.NewString(), suite.fixture.Listing.ID, suite.fixture.CustomerID, 5, "great", false)
	require.NoError(t, err)
	stored, created, err := suite.reviewRepo.Upsert(ctx, first)
	require.NoError(t, err)
	assert.True(t, created)

	second, err := domain.NewReview(uuid.NewString(), suite.fixture.Listing.ID, suite.fixture.CustomerID, 1, "", true)
	require.NoError(t, err)
	updated, created, err := suite.reviewRepo.Upsert(ctx, second)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, stored.ID, updated.ID)
	assert.True(t, updated.IsComplaint)
	assert.Nil(t, updated.ReviewText)

	details, err := suite.reviewRepo.FindDetails(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, suite.fixture.DeveloperID, details.DeveloperID)
	require.NotNil(t, details.DeveloperEmail)
	assert.Equal(t, "dev@example.com", *details.DeveloperEmail)
	assert.Equal(t, "Anonymous Customer", details.CustomerLabel())

	_, err = suite.reviewRepo.FindDetails(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrReviewNotFound)
}

func (suite *RepositoryTestSuite) Test_Listing_FindByID() {
	ctx := context.Background()
	t := suite.T()

	listing, err := suite.listingRepo.FindByID(ctx, suite.fixture.Listing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Landing Page Audit", listing.Title)
	assert.Equal(t, "100.00 INR", listing.Price.String())

	_, err = suite.listingRepo.FindByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}

func (suite *RepositoryTestSuite) Test_WebhookEvent_AppendKeepsBytes() {
	ctx := context.Background()
	t := suite.T()

	raw := []byte("{\"event\":\"payment.captured\",  \"x\":1}\n")
	require.NoError(t, suite.eventRepo.Append(ctx, domain.NewWebhookEvent(uuid.NewString(), "payment.captured", "evt_bytes", raw)))

	var stored []byte
	err := suite.testDB.DB.Pool.QueryRow(ctx, `SELECT payload FROM webhook_events WHERE gateway_event_id = 'evt_bytes'`).Scan(&stored)
	require.NoError(t, err)
	assert.Equal(t, raw, stored)

	n, err := suite.eventRepo.CountByGatewayEventID(ctx, "evt_bytes")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
