package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/DanielPopoola/devmarket-ledger/internal/application"
	"github.com/DanielPopoola/devmarket-ledger/internal/application/services"
	"github.com/DanielPopoola/devmarket-ledger/internal/application/services/testhelpers"
	"github.com/DanielPopoola/devmarket-ledger/internal/config"
	"github.com/DanielPopoola/devmarket-ledger/internal/domain"
	"github.com/DanielPopoola/devmarket-ledger/internal/infrastructure/persistence/postgres"
	"github.com/DanielPopoola/devmarket-ledger/internal/infrastructure/signature"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type CaptureServiceTestSuite struct {
	suite.Suite
	testDB         *testhelpers.TestDatabase
	purchaseRepo   *postgres.PurchaseRepository
	listingRepo    *postgres.ListingRepository
	captureService *services.CaptureService
	fixture        *testhelpers.Fixture
}

func TestCaptureServiceSuite(t *testing.T) {
	suite.Run(t, new(CaptureServiceTestSuite))
}

func (suite *CaptureServiceTestSuite) SetupSuite() {
	suite.testDB = testhelpers.SetupTestDatabase(suite.T())
	suite.purchaseRepo = postgres.NewPurchaseRepository(suite.testDB.DB)
	suite.listingRepo = postgres.NewListingRepository(suite.testDB.DB)
}

func (suite *CaptureServiceTestSuite) TearDownSuite() {
	suite.testDB.Cleanup(suite.T())
}

func (suite *CaptureServiceTestSuite) SetupTest() {
	suite.captureService = services.NewCaptureService(
		suite.purchaseRepo,
		suite.listingRepo,
		testhelpers.GatewayConfig(),
		testhelpers.CaptureConfig(),
		testhelpers.Logger(),
	)
	suite.fixture = testhelpers.CreateFixture(suite.T(), context.Background(), suite.testDB.DB)
}

func (suite *CaptureServiceTestSuite) TearDownTest() {
	suite.testDB.CleanTables(suite.T())
}

func (suite *CaptureServiceTestSuite) command(orderID, paymentID, amount string) services.CaptureCommand {
	return services.CaptureCommand{
		GatewayOrderID:   orderID,
		GatewayPaymentID: paymentID,
		Signature:        signature.Sign(signature.OrderPayload(orderID, paymentID), testhelpers.TestKeySecret),
		ServiceID:        suite.fixture.Listing.ID,
		CustomerID:       suite.fixture.CustomerID,
		Amount:           decimal.RequireFromString(amount),
	}
}

// ============================================================================
// HAPPY PATH TESTS
// ============================================================================

func (suite *CaptureServiceTestSuite) Test_Capture_Success() {
	ctx := context.Background()
	t := suite.T()

	purchase, err := suite.captureService.Capture(ctx, suite.command("order_O1", "pay_P1", "100.00"))
	require.NoError(t, err)
	require.NotNil(t, purchase)

	assert.Equal(t, domain.PaymentSuccess, purchase.PaymentStatus)
	assert.Equal(t, domain.OrderCompleted, purchase.OrderStatus)
	assert.Equal(t, "INR", purchase.Currency)

	saved, err := suite.purchaseRepo.FindByID(ctx, purchase.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentSuccess, saved.PaymentStatus)
	assert.Equal(t, "pay_P1", *saved.GatewayPaymentID)
	assert.True(t, decimal.RequireFromString("100.00").Equal(saved.Amount))
}

func (suite *CaptureServiceTestSuite) Test_Capture_USDListing() {
	ctx := context.Background()
	t := suite.T()

	listing := testhelpers.CreateListing(t, ctx, suite.testDB.DB, suite.fixture.DeveloperID, "API Review", "49.99")
	_, err := suite.testDB.DB.Pool.Exec(ctx, `UPDATE services SET currency = 'USD' WHERE id = $1`, listing.ID)
	require.NoError(t, err)

	cmd := suite.command("order_O1", "pay_P1", "49.99")
	cmd.ServiceID = listing.ID
	cmd.Currency = "usd"

	purchase, err := suite.captureService.Capture(ctx, cmd)
	require.NoError(t, err)

	saved, err := suite.purchaseRepo.FindByID(ctx, purchase.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentSuccess, saved.PaymentStatus)
	assert.Equal(t, "USD", saved.Currency)
}

func (suite *CaptureServiceTestSuite) Test_Capture_WithinTolerance() {
	ctx := context.Background()
	t := suite.T()

	purchase, err := suite.captureService.Capture(ctx, suite.command("order_tol", "pay_tol", "99.99"))
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("99.99").Equal(purchase.Amount))
}

func (suite *CaptureServiceTestSuite) Test_Capture_ReplayReturnsSameRow() {
	ctx := context.Background()
	t := suite.T()

	cmd := suite.command("order_dup", "pay_dup", "100.00")

	first, err := suite.captureService.Capture(ctx, cmd)
	require.NoError(t, err)

	second, err := suite.captureService.Capture(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	purchases, err := suite.purchaseRepo.FindByCustomerID(ctx, suite.fixture.CustomerID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, purchases, 1)
}

func (suite *CaptureServiceTestSuite) Test_Capture_Repurchase_CreatesNewRow() {
	ctx := context.Background()
	t := suite.T()

	_, err := suite.captureService.Capture(ctx, suite.command("order_a", "pay_a", "100.00"))
	require.NoError(t, err)
	_, err = suite.captureService.Capture(ctx, suite.command("order_b", "pay_b", "100.00"))
	require.NoError(t, err)

	purchases, err := suite.purchaseRepo.FindByCustomerID(ctx, suite.fixture.CustomerID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, purchases, 2)
}

// ============================================================================
// EDGE CASE TESTS
// ============================================================================

func (suite *CaptureServiceTestSuite) Test_Capture_InvalidSignature_NoRow() {
	ctx := context.Background()
	t := suite.T()

	cmd := suite.command("order_bad", "pay_bad", "100.00")
	cmd.Signature = signature.Sign(signature.OrderPayload("order_bad", "pay_other"), testhelpers.TestKeySecret)

	purchase, err := suite.captureService.Capture(ctx, cmd)
	require.Error(t, err)
	assert.Nil(t, purchase)

	svcErr, ok := application.IsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, application.ErrCodeInvalidSignature, svcErr.Code)
	assert.Equal(t, 400, svcErr.HTTPStatus)

	purchases, err := suite.purchaseRepo.FindByCustomerID(ctx, suite.fixture.CustomerID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, purchases)
}

func (suite *CaptureServiceTestSuite) Test_Capture_AmountMismatch() {
	ctx := context.Background()
	t := suite.T()

	_, err := suite.captureService.Capture(ctx, suite.command("order_cheap", "pay_cheap", "1.00"))
	require.Error(t, err)

	svcErr, ok := application.IsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, application.ErrCodeAmountMismatch, svcErr.Code)
	assert.ErrorIs(t, err, domain.ErrAmountMismatch)
}

func (suite *CaptureServiceTestSuite) Test_Capture_CurrencyMismatch() {
	ctx := context.Background()
	t := suite.T()

	cmd := suite.command("order_cur", "pay_cur", "100.00")
	cmd.Currency = "USD"

	_, err := suite.captureService.Capture(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAmountMismatch)
}

func (suite *CaptureServiceTestSuite) Test_Capture_UnknownService() {
	ctx := context.Background()
	t := suite.T()

	cmd := suite.command("order_x", "pay_x", "100.00")
	cmd.ServiceID = "5b0f9a52-8f55-4c3b-9d0a-3f5c1f7f2b11"

	_, err := suite.captureService.Capture(ctx, cmd)
	require.Error(t, err)

	svcErr, ok := application.IsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, application.ErrCodeNotFound, svcErr.Code)
}

func (suite *CaptureServiceTestSuite) Test_Capture_MissingFields() {
	ctx := context.Background()
	t := suite.T()

	cmd := suite.command("order_m", "pay_m", "100.00")
	cmd.GatewayPaymentID = ""

	_, err := suite.captureService.Capture(ctx, cmd)
	require.Error(t, err)

	svcErr, ok := application.IsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, application.ErrCodeInvalidInput, svcErr.Code)
	assert.Contains(t, svcErr.Message, "gatewayPaymentID")
}

func (suite *CaptureServiceTestSuite) Test_Capture_NonPositiveAmount() {
	ctx := context.Background()
	t := suite.T()

	_, err := suite.captureService.Capture(ctx, suite.command("order_z", "pay_z", "0"))
	require.Error(t, err)

	svcErr, ok := application.IsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, application.ErrCodeInvalidInput, svcErr.Code)
}

func (suite *CaptureServiceTestSuite) Test_Capture_SubMinorAmount_NoRow() {
	ctx := context.Background()
	t := suite.T()

	// inside the price tolerance, but NUMERIC(12,2) would round it to 100.00
	_, err := suite.captureService.Capture(ctx, suite.command("order_frac", "pay_frac", "99.995"))
	require.Error(t, err)

	svcErr, ok := application.IsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, application.ErrCodeInvalidInput, svcErr.Code)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	purchases, err := suite.purchaseRepo.FindByCustomerID(ctx, suite.fixture.CustomerID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, purchases)
}

func (suite *CaptureServiceTestSuite) Test_Capture_ReplayWithDifferentCustomer() {
	ctx := context.Background()
	t := suite.T()

	cmd := suite.command("order_shared", "pay_shared", "100.00")
	_, err := suite.captureService.Capture(ctx, cmd)
	require.NoError(t, err)

	name := "Someone Else"
	cmd.CustomerID = testhelpers.CreateProfile(t, ctx, suite.testDB.DB, &name, nil)

	_, err = suite.captureService.Capture(ctx, cmd)
	require.Error(t, err)

	svcErr, ok := application.IsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, application.ErrCodeIdempotencyMismatch, svcErr.Code)
}

func (suite *CaptureServiceTestSuite) Test_Capture_MissingSecret() {
	ctx := context.Background()
	t := suite.T()

	svc := services.NewCaptureService(
		suite.purchaseRepo,
		suite.listingRepo,
		config.GatewayConfig{DefaultCurrency: "INR"},
		testhelpers.CaptureConfig(),
		testhelpers.Logger(),
	)

	_, err := svc.Capture(ctx, suite.command("order_s", "pay_s", "100.00"))
	require.Error(t, err)

	svcErr, ok := application.IsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, application.ErrCodeConfigurationMissing, svcErr.Code)
	assert.Equal(t, 500, svcErr.HTTPStatus)
}

// ============================================================================
// CONCURRENCY TESTS
// ============================================================================

func (suite *CaptureServiceTestSuite) Test_Capture_ConcurrentDuplicates_OneRow() {
	ctx := context.Background()
	t := suite.T()

	cmd := suite.command("order_race", "pay_race", "100.00")

	const numGoroutines = 5
	var wg sync.WaitGroup
	ids := make([]string, numGoroutines)
	errs := make([]error, numGoroutines)

	for i := range numGoroutines {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			p, err := suite.captureService.Capture(ctx, cmd)
			errs[idx] = err
			if p != nil {
				ids[idx] = p.ID
			}
		}(i)
	}
	wg.Wait()

	for i := range numGoroutines {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}

	purchases, err := suite.purchaseRepo.FindByCustomerID(ctx, suite.fixture.CustomerID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, purchases, 1)
}
