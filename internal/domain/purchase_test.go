package domain_test

import (
	"testing"
	"time"

	"github.com/DanielPopoola/devmarket-ledger/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCapturedPurchase(t *testing.T) {
	t.Run("creates purchase successfully", func(t *testing.T) {
		money, err := domain.NewMoney(decimal.RequireFromString("49.99"), "inr")
		require.NoError(t, err)

		purchase, err := domain.NewCapturedPurchase("pur-1", "cust-1", "svc-1", money, "order_1", "pay_1")

		require.NoError(t, err)
		assert.Equal(t, "pur-1", purchase.ID)
		assert.Equal(t, "INR", purchase.Currency)
		assert.True(t, purchase.Amount.Equal(decimal.RequireFromString("49.99")))
		assert.Equal(t, domain.PaymentSuccess, purchase.PaymentStatus)
		assert.Equal(t, domain.OrderCompleted, purchase.OrderStatus)
		require.NotNil(t, purchase.GatewayPaymentID)
		assert.Equal(t, "pay_1", *purchase.GatewayPaymentID)
	})

	t.Run("rejects empty gateway payment ID", func(t *testing.T) {
		money, _ := domain.NewMoney(decimal.NewFromInt(10), "INR")

		_, err := domain.NewCapturedPurchase("pur-1", "cust-1", "svc-1", money, "order_1", "")

		assert.ErrorIs(t, err, domain.ErrMissingRequiredField)
	})

	t.Run("rejects empty customer ID", func(t *testing.T) {
		money, _ := domain.NewMoney(decimal.NewFromInt(10), "INR")

		_, err := domain.NewCapturedPurchase("pur-1", "", "svc-1", money, "order_1", "pay_1")

		assert.ErrorIs(t, err, domain.ErrMissingRequiredField)
	})
}

func TestMoney(t *testing.T) {
	t.Run("converts to minor units", func(t *testing.T) {
		money, err := domain.NewMoney(decimal.RequireFromString("100.00"), "INR")
		require.NoError(t, err)

		units, err := money.MinorUnits()

		require.NoError(t, err)
		assert.Equal(t, int64(10000), units)
	})

	t.Run("zero decimal currency", func(t *testing.T) {
		money, err := domain.NewMoney(decimal.NewFromInt(1500), "JPY")
		require.NoError(t, err)

		units, err := money.MinorUnits()

		require.NoError(t, err)
		assert.Equal(t, int64(1500), units)
	})

	t.Run("rejects sub-minor precision", func(t *testing.T) {
		money, err := domain.NewMoney(decimal.RequireFromString("10.005"), "INR")
		require.NoError(t, err)

		_, err = money.MinorUnits()

		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	})

	t.Run("round trips minor units", func(t *testing.T) {
		money := domain.FromMinorUnits(4999, "inr")

		assert.Equal(t, "49.99 INR", money.String())
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := domain.NewMoney(decimal.Zero, "INR")

		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	})

	t.Run("rejects empty currency", func(t *testing.T) {
		_, err := domain.NewMoney(decimal.NewFromInt(1), " ")

		assert.ErrorIs(t, err, domain.ErrMissingRequiredField)
	})

	t.Run("tolerance comparison", func(t *testing.T) {
		listed := domain.Money{Amount: decimal.RequireFromString("49.99"), Currency: "INR"}
		paid := domain.Money{Amount: decimal.RequireFromString("50.00"), Currency: "INR"}
		tolerance := decimal.RequireFromString("0.01")

		assert.True(t, listed.WithinTolerance(paid, tolerance))
		assert.False(t, listed.WithinTolerance(domain.Money{Amount: decimal.RequireFromString("50.01"), Currency: "INR"}, tolerance))
		assert.False(t, listed.WithinTolerance(domain.Money{Amount: paid.Amount, Currency: "USD"}, tolerance))
	})
}

func TestPurchase_ApplyCaptured(t *testing.T) {
	t.Run("pending -> success completes the order", func(t *testing.T) {
		purchase := pendingPurchase()

		changed, err := purchase.ApplyCaptured("pay_9")

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, domain.PaymentSuccess, purchase.PaymentStatus)
		assert.Equal(t, domain.OrderCompleted, purchase.OrderStatus)
		assert.Equal(t, "pay_9", *purchase.GatewayPaymentID)
	})

	t.Run("failed -> success", func(t *testing.T) {
		purchase := pendingPurchase()
		purchase.PaymentStatus = domain.PaymentFailed

		changed, err := purchase.ApplyCaptured("pay_9")

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, domain.PaymentSuccess, purchase.PaymentStatus)
	})

	t.Run("duplicate capture is a no-op", func(t *testing.T) {
		purchase := capturedPurchase(t)

		changed, err := purchase.ApplyCaptured("pay_other")

		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, "pay_1", *purchase.GatewayPaymentID)
	})

	t.Run("late capture leaves a cancelled order alone", func(t *testing.T) {
		purchase := pendingPurchase()
		purchase.OrderStatus = domain.OrderCancelled

		changed, err := purchase.ApplyCaptured("pay_9")

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, domain.OrderCancelled, purchase.OrderStatus)
	})
}

func TestPurchase_ApplyFailed(t *testing.T) {
	t.Run("pending -> failed", func(t *testing.T) {
		purchase := pendingPurchase()

		assert.True(t, purchase.ApplyFailed())
		assert.Equal(t, domain.PaymentFailed, purchase.PaymentStatus)
	})

	t.Run("success is never regressed", func(t *testing.T) {
		purchase := capturedPurchase(t)

		assert.False(t, purchase.ApplyFailed())
		assert.Equal(t, domain.PaymentSuccess, purchase.PaymentStatus)
	})
}

func TestPurchase_MarkRefunded(t *testing.T) {
	t.Run("completed -> refunded", func(t *testing.T) {
		purchase := capturedPurchase(t)

		changed, err := purchase.MarkRefunded()

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, domain.OrderRefunded, purchase.OrderStatus)
	})

	t.Run("refunded twice is a no-op", func(t *testing.T) {
		purchase := capturedPurchase(t)
		_, _ = purchase.MarkRefunded()

		changed, err := purchase.MarkRefunded()

		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("cannot refund a pending order", func(t *testing.T) {
		purchase := pendingPurchase()

		_, err := purchase.MarkRefunded()

		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})
}

func TestPurchase_CanRefund(t *testing.T) {
	t.Run("success purchase is refundable", func(t *testing.T) {
		assert.NoError(t, capturedPurchase(t).CanRefund())
	})

	t.Run("pending purchase is not refundable", func(t *testing.T) {
		err := pendingPurchase().CanRefund()

		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})

	t.Run("failed purchase is not refundable", func(t *testing.T) {
		purchase := pendingPurchase()
		purchase.PaymentStatus = domain.PaymentFailed

		assert.ErrorIs(t, purchase.CanRefund(), domain.ErrInvalidState)
	})

	t.Run("success without payment id is not refundable", func(t *testing.T) {
		purchase := capturedPurchase(t)
		purchase.GatewayPaymentID = nil

		assert.ErrorIs(t, purchase.CanRefund(), domain.ErrInvalidState)
	})
}

func capturedPurchase(t *testing.T) *domain.Purchase {
	t.Helper()
	money, err := domain.NewMoney(decimal.RequireFromString("100.00"), "INR")
	require.NoError(t, err)
	purchase, err := domain.NewCapturedPurchase("pur-1", "cust-1", "svc-1", money, "order_1", "pay_1")
	require.NoError(t, err)
	return purchase
}

func pendingPurchase() *domain.Purchase {
	now := time.Now()
	return domain.ReconstitutePurchase(
		"pur-2", "cust-1", "svc-1",
		decimal.RequireFromString("100.00"), "INR",
		"order_2", nil,
		domain.PaymentPending, domain.OrderPending,
		now, now,
	)
}
