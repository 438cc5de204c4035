package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DanielPopoola/devmarket-ledger/internal/application"
	"github.com/DanielPopoola/devmarket-ledger/internal/application/services"
	"github.com/DanielPopoola/devmarket-ledger/internal/application/services/testhelpers"
	"github.com/DanielPopoola/devmarket-ledger/internal/config"
	"github.com/DanielPopoola/devmarket-ledger/internal/domain"
	"github.com/DanielPopoola/devmarket-ledger/internal/infrastructure/persistence/postgres"
	"github.com/DanielPopoola/devmarket-ledger/internal/infrastructure/signature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type WebhookServiceTestSuite struct {
	suite.Suite
	testDB         *testhelpers.TestDatabase
	purchaseRepo   *postgres.PurchaseRepository
	refundRepo     *postgres.RefundRepository
	eventRepo      *postgres.WebhookEventRepository
	webhookService *services.WebhookService
	fixture        *testhelpers.Fixture
}

func TestWebhookServiceSuite(t *testing.T) {
	suite.Run(t, new(WebhookServiceTestSuite))
}

func (suite *WebhookServiceTestSuite) SetupSuite() {
	suite.testDB = testhelpers.SetupTestDatabase(suite.T())
	suite.purchaseRepo = postgres.NewPurchaseRepository(suite.testDB.DB)
	suite.refundRepo = postgres.NewRefundRepository(suite.testDB.DB)
	suite.eventRepo = postgres.NewWebhookEventRepository(suite.testDB.DB)
}

func (suite *WebhookServiceTestSuite) TearDownSuite() {
	suite.testDB.Cleanup(suite.T())
}

func (suite *WebhookServiceTestSuite) SetupTest() {
	suite.webhookService = services.NewWebhookService(
		suite.purchaseRepo,
		suite.refundRepo,
		suite.eventRepo,
		testhelpers.GatewayConfig(),
		testhelpers.Logger(),
	)
	suite.fixture = testhelpers.CreateFixture(suite.T(), context.Background(), suite.testDB.DB)
}

func (suite *WebhookServiceTestSuite) TearDownTest() {
	suite.testDB.CleanTables(suite.T())
}

func paymentEvent(event, orderID, paymentID string) []byte {
	return fmt.Appendf(nil,
		`{"entity":"event","event":%q,"payload":{"payment":{"entity":{"id":%q,"order_id":%q,"amount":10000,"currency":"INR","status":"captured"}}},"created_at":1700000000}`,
		event, paymentID, orderID)
}

func refundEvent(event, refundID, paymentID string) []byte {
	return fmt.Appendf(nil,
		`{"entity":"event","event":%q,"payload":{"refund":{"entity":{"id":%q,"payment_id":%q,"amount":10000,"currency":"INR","status":"processed"}}},"created_at":1700000000}`,
		event, refundID, paymentID)
}

func receiptRefundEvent(event, refundID, paymentID, receipt string) []byte {
	return fmt.Appendf(nil,
		`{"entity":"event","event":%q,"payload":{"refund":{"entity":{"id":%q,"payment_id":%q,"amount":10000,"currency":"INR","status":"processed","receipt":%q}}},"created_at":1700000000}`,
		event, refundID, paymentID, receipt)
}

func (suite *WebhookServiceTestSuite) deliver(raw []byte, eventID string) error {
	sig := signature.Sign(raw, testhelpers.TestWebhookSecret)
	return suite.webhookService.Ingest(context.Background(), raw, sig, eventID)
}

func (suite *WebhookServiceTestSuite) eventCount() int {
	var n int
	err := suite.testDB.DB.Pool.QueryRow(context.Background(), `SELECT count(*) FROM webhook_events`).Scan(&n)
	require.NoError(suite.T(), err)
	return n
}

// ============================================================================
// HAPPY PATH TESTS
// ============================================================================

func (suite *WebhookServiceTestSuite) Test_PaymentCaptured_UpdatesPendingPurchase() {
	ctx := context.Background()
	t := suite.T()

	pending := testhelpers.CreatePendingPurchase(t, ctx, suite.testDB.DB, suite.fixture, "order_W1")

	require.NoError(t, suite.deliver(paymentEvent("payment.captured", "order_W1", "pay_W1"), "evt_1"))

	saved, err := suite.purchaseRepo.FindByID(ctx, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentSuccess, saved.PaymentStatus)
	assert.Equal(t, domain.OrderCompleted, saved.OrderStatus)
	require.NotNil(t, saved.GatewayPaymentID)
	assert.Equal(t, "pay_W1", *saved.GatewayPaymentID)
}

func (suite *WebhookServiceTestSuite) Test_PaymentCaptured_Twice_IsIdempotent() {
	ctx := context.Background()
	t := suite.T()

	pending := testhelpers.CreatePendingPurchase(t, ctx, suite.testDB.DB, suite.fixture, "order_W2")
	raw := paymentEvent("payment.captured", "order_W2", "pay_W2")

	require.NoError(t, suite.deliver(raw, "evt_2"))
	once, err := suite.purchaseRepo.FindByID(ctx, pending.ID)
	require.NoError(t, err)

	require.NoError(t, suite.deliver(raw, "evt_2"))
	twice, err := suite.purchaseRepo.FindByID(ctx, pending.ID)
	require.NoError(t, err)

	assert.Equal(t, once.PaymentStatus, twice.PaymentStatus)
	assert.Equal(t, once.OrderStatus, twice.OrderStatus)
	assert.Equal(t, *once.GatewayPaymentID, *twice.GatewayPaymentID)
	assert.Equal(t, once.UpdatedAt, twice.UpdatedAt)

	count, err := suite.eventRepo.CountByGatewayEventID(ctx, "evt_2")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func (suite *WebhookServiceTestSuite) Test_PaymentFailed_OnPending() {
	ctx := context.Background()
	t := suite.T()

	pending := testhelpers.CreatePendingPurchase(t, ctx, suite.testDB.DB, suite.fixture, "order_F1")

	require.NoError(t, suite.deliver(paymentEvent("payment.failed", "order_F1", "pay_F1"), ""))

	saved, err := suite.purchaseRepo.FindByID(ctx, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentFailed, saved.PaymentStatus)
	assert.Nil(t, saved.GatewayPaymentID)
}

func (suite *WebhookServiceTestSuite) Test_RefundProcessed_CompletesRefundAndPurchase() {
	ctx := context.Background()
	t := suite.T()

	purchase := testhelpers.CreateCapturedPurchase(t, ctx, suite.testDB.DB, suite.fixture)
	refund := testhelpers.CreateRefund(t, ctx, suite.testDB.DB, purchase, domain.RefundProcessing, testhelpers.Ptr("rfnd_1"), time.Now().UTC())

	require.NoError(t, suite.deliver(refundEvent("refund.processed", "rfnd_1", *purchase.GatewayPaymentID), ""))

	savedRefund, err := suite.refundRepo.FindByID(ctx, refund.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RefundCompleted, savedRefund.Status)
	assert.NotNil(t, savedRefund.ProcessedAt)

	savedPurchase, err := suite.purchaseRepo.FindByID(ctx, purchase.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderRefunded, savedPurchase.OrderStatus)
	assert.Equal(t, domain.PaymentSuccess, savedPurchase.PaymentStatus)

	// redelivery leaves processed_at untouched
	require.NoError(t, suite.deliver(refundEvent("refund.processed", "rfnd_1", *purchase.GatewayPaymentID), ""))
	again, err := suite.refundRepo.FindByID(ctx, refund.ID)
	require.NoError(t, err)
	assert.Equal(t, savedRefund.ProcessedAt.UTC(), again.ProcessedAt.UTC())
}

func (suite *WebhookServiceTestSuite) Test_RefundFailed_FreesPurchase() {
	ctx := context.Background()
	t := suite.T()

	purchase := testhelpers.CreateCapturedPurchase(t, ctx, suite.testDB.DB, suite.fixture)
	refund := testhelpers.CreateRefund(t, ctx, suite.testDB.DB, purchase, domain.RefundProcessing, testhelpers.Ptr("rfnd_2"), time.Now().UTC())

	require.NoError(t, suite.deliver(refundEvent("refund.failed", "rfnd_2", *purchase.GatewayPaymentID), ""))

	saved, err := suite.refundRepo.FindByID(ctx, refund.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RefundFailed, saved.Status)
	assert.Nil(t, saved.ProcessedAt)

	// a new live refund may now be reserved
	testhelpers.CreateRefund(t, ctx, suite.testDB.DB, purchase, domain.RefundProcessing, nil, time.Now().UTC())
}

func (suite *WebhookServiceTestSuite) Test_UnknownEvent_AcceptedAndLogged() {
	ctx := context.Background()
	t := suite.T()

	purchase := testhelpers.CreateCapturedPurchase(t, ctx, suite.testDB.DB, suite.fixture)

	raw := []byte(`{"event":"order.paid","payload":{}}`)
	require.NoError(t, suite.deliver(raw, "evt_unknown"))

	assert.Equal(t, 1, suite.eventCount())

	var eventType string
	var payload []byte
	err := suite.testDB.DB.Pool.QueryRow(ctx,
		`SELECT event_type, payload FROM webhook_events WHERE gateway_event_id = 'evt_unknown'`,
	).Scan(&eventType, &payload)
	require.NoError(t, err)
	assert.Equal(t, "order.paid", eventType)
	assert.Equal(t, raw, payload)

	saved, err := suite.purchaseRepo.FindByID(ctx, purchase.ID)
	require.NoError(t, err)
	assert.Equal(t, purchase.UpdatedAt.UTC().Truncate(time.Millisecond), saved.UpdatedAt.UTC().Truncate(time.Millisecond))
}

// ============================================================================
// EDGE CASE TESTS
// ============================================================================

func (suite *WebhookServiceTestSuite) Test_TamperedBody_NoMutation() {
	ctx := context.Background()
	t := suite.T()

	pending := testhelpers.CreatePendingPurchase(t, ctx, suite.testDB.DB, suite.fixture, "order_T1")
	raw := paymentEvent("payment.captured", "order_T1", "pay_T1")
	sig := signature.Sign(raw, testhelpers.TestWebhookSecret)

	tampered := append([]byte{}, raw...)
	tampered[len(tampered)-2] ^= 0x01

	err := suite.webhookService.Ingest(ctx, tampered, sig, "evt_t")
	require.Error(t, err)

	svcErr, ok := application.IsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, application.ErrCodeInvalidSignature, svcErr.Code)

	saved, err := suite.purchaseRepo.FindByID(ctx, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, saved.PaymentStatus)
	assert.Equal(t, 0, suite.eventCount())
}

func (suite *WebhookServiceTestSuite) Test_PaymentFailed_NoPurchase_IsNoop() {
	t := suite.T()

	require.NoError(t, suite.deliver(paymentEvent("payment.failed", "order_missing", "pay_missing"), ""))

	var n int
	err := suite.testDB.DB.Pool.QueryRow(context.Background(), `SELECT count(*) FROM purchases`).Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 1, suite.eventCount())
}

func (suite *WebhookServiceTestSuite) Test_PaymentFailed_NeverRegressesSuccess() {
	ctx := context.Background()
	t := suite.T()

	purchase := testhelpers.CreateCapturedPurchase(t, ctx, suite.testDB.DB, suite.fixture)

	require.NoError(t, suite.deliver(paymentEvent("payment.failed", purchase.GatewayOrderID, *purchase.GatewayPaymentID), ""))

	saved, err := suite.purchaseRepo.FindByID(ctx, purchase.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentSuccess, saved.PaymentStatus)
}

func (suite *WebhookServiceTestSuite) Test_LateCapture_AfterRefund_KeepsRefunded() {
	ctx := context.Background()
	t := suite.T()

	purchase := testhelpers.CreateCapturedPurchase(t, ctx, suite.testDB.DB, suite.fixture)
	testhelpers.CreateRefund(t, ctx, suite.testDB.DB, purchase, domain.RefundProcessing, testhelpers.Ptr("rfnd_late"), time.Now().UTC())
	require.NoError(t, suite.deliver(refundEvent("refund.processed", "rfnd_late", *purchase.GatewayPaymentID), ""))

	require.NoError(t, suite.deliver(paymentEvent("payment.captured", purchase.GatewayOrderID, *purchase.GatewayPaymentID), ""))

	saved, err := suite.purchaseRepo.FindByID(ctx, purchase.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderRefunded, saved.OrderStatus)
	assert.Equal(t, domain.PaymentSuccess, saved.PaymentStatus)
}

func (suite *WebhookServiceTestSuite) Test_RefundProcessed_UnknownRefund_IsNoop() {
	t := suite.T()
	require.NoError(t, suite.deliver(refundEvent("refund.processed", "rfnd_nobody", "pay_nobody"), ""))
	assert.Equal(t, 1, suite.eventCount())
}

func (suite *WebhookServiceTestSuite) Test_RefundProcessed_BeforeGatewayIDRecorded_MatchesReceipt() {
	ctx := context.Background()
	t := suite.T()

	purchase := testhelpers.CreateCapturedPurchase(t, ctx, suite.testDB.DB, suite.fixture)
	reservation := testhelpers.CreateRefund(t, ctx, suite.testDB.DB, purchase, domain.RefundProcessing, nil, time.Now().UTC())

	raw := receiptRefundEvent("refund.processed", "rfnd_early", *purchase.GatewayPaymentID, reservation.ID)
	require.NoError(t, suite.deliver(raw, ""))

	saved, err := suite.refundRepo.FindByID(ctx, reservation.ID)
	require.NoError(t, err)
	require.NotNil(t, saved.GatewayRefundID)
	assert.Equal(t, "rfnd_early", *saved.GatewayRefundID)
	assert.Equal(t, domain.RefundCompleted, saved.Status)

	savedPurchase, err := suite.purchaseRepo.FindByID(ctx, purchase.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderRefunded, savedPurchase.OrderStatus)

	// the request path recording the same id afterwards is harmless
	require.NoError(t, suite.refundRepo.AttachGatewayID(ctx, reservation.ID, "rfnd_early"))
}

func (suite *WebhookServiceTestSuite) Test_RefundFailed_BeforeGatewayIDRecorded_MatchesReceipt() {
	ctx := context.Background()
	t := suite.T()

	purchase := testhelpers.CreateCapturedPurchase(t, ctx, suite.testDB.DB, suite.fixture)
	reservation := testhelpers.CreateRefund(t, ctx, suite.testDB.DB, purchase, domain.RefundProcessing, nil, time.Now().UTC())

	raw := receiptRefundEvent("refund.failed", "rfnd_early_fail", *purchase.GatewayPaymentID, reservation.ID)
	require.NoError(t, suite.deliver(raw, ""))

	saved, err := suite.refundRepo.FindByID(ctx, reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RefundFailed, saved.Status)
}

func (suite *WebhookServiceTestSuite) Test_RefundProcessed_ForeignReceipt_IsNoop() {
	ctx := context.Background()
	t := suite.T()

	purchase := testhelpers.CreateCapturedPurchase(t, ctx, suite.testDB.DB, suite.fixture)
	other := testhelpers.CreateRefund(t, ctx, suite.testDB.DB, purchase, domain.RefundProcessing, testhelpers.Ptr("rfnd_other"), time.Now().UTC())

	// receipt points at a refund already bound to a different gateway refund
	require.NoError(t, suite.deliver(receiptRefundEvent("refund.processed", "rfnd_stray", "pay_x", other.ID), ""))
	require.NoError(t, suite.deliver(receiptRefundEvent("refund.processed", "rfnd_stray", "pay_x", "not-a-uuid"), ""))

	saved, err := suite.refundRepo.FindByID(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, "rfnd_other", *saved.GatewayRefundID)
	assert.Equal(t, domain.RefundProcessing, saved.Status)
}

func (suite *WebhookServiceTestSuite) Test_MalformedPayload_LoggedThenRejected() {
	t := suite.T()

	err := suite.deliver([]byte(`{"event":"payment.captured","payload":{}}`), "")
	require.Error(t, err)

	svcErr, ok := application.IsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, application.ErrCodeInvalidPayload, svcErr.Code)
	assert.Equal(t, 1, suite.eventCount())
}

func (suite *WebhookServiceTestSuite) Test_FallsBackToKeySecret() {
	ctx := context.Background()
	t := suite.T()

	cfg := testhelpers.GatewayConfig()
	cfg.WebhookSecret = ""
	svc := services.NewWebhookService(suite.purchaseRepo, suite.refundRepo, suite.eventRepo, cfg, testhelpers.Logger())

	raw := []byte(`{"event":"order.paid","payload":{}}`)
	require.NoError(t, svc.Ingest(ctx, raw, signature.Sign(raw, testhelpers.TestKeySecret), ""))

	svc = services.NewWebhookService(suite.purchaseRepo, suite.refundRepo, suite.eventRepo, config.GatewayConfig{}, testhelpers.Logger())
	err := svc.Ingest(ctx, raw, signature.Sign(raw, testhelpers.TestKeySecret), "")
	svcErr, ok := application.IsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, application.ErrCodeConfigurationMissing, svcErr.Code)
}
