package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/DanielPopoola/devmarket-ledger/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRefund(t *testing.T) {
	t.Run("reserves the full purchase amount", func(t *testing.T) {
		purchase := capturedPurchase(t)

		refund, err := domain.NewRefund("ref-1", purchase, "  not as described  ")

		require.NoError(t, err)
		assert.Equal(t, purchase.ID, refund.PurchaseID)
		assert.True(t, refund.Amount.Equal(purchase.Amount))
		assert.Equal(t, "not as described", refund.Reason)
		assert.Equal(t, domain.RefundProcessing, refund.Status)
		assert.True(t, refund.IsOrphaned())
	})

	t.Run("rejects blank reason", func(t *testing.T) {
		_, err := domain.NewRefund("ref-1", capturedPurchase(t), "   ")

		assert.ErrorIs(t, err, domain.ErrMissingRequiredField)
	})

	t.Run("rejects overlong reason", func(t *testing.T) {
		_, err := domain.NewRefund("ref-1", capturedPurchase(t), strings.Repeat("x", 501))

		assert.Error(t, err)
	})

	t.Run("rejects pending purchase", func(t *testing.T) {
		_, err := domain.NewRefund("ref-1", pendingPurchase(), "reason")

		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})
}

func TestRefund_Transitions(t *testing.T) {
	t.Run("processing -> completed", func(t *testing.T) {
		refund := newRefund(t)
		now := time.Now()

		changed, err := refund.Complete(now)

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, domain.RefundCompleted, refund.Status)
		assert.Equal(t, now, *refund.ProcessedAt)
	})

	t.Run("completed twice is a no-op", func(t *testing.T) {
		refund := newRefund(t)
		_, _ = refund.Complete(time.Now())

		changed, err := refund.Complete(time.Now())

		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("completed never fails", func(t *testing.T) {
		refund := newRefund(t)
		_, _ = refund.Complete(time.Now())

		_, err := refund.Fail()

		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		assert.Equal(t, domain.RefundCompleted, refund.Status)
	})

	t.Run("failed never completes", func(t *testing.T) {
		refund := newRefund(t)
		_, _ = refund.Fail()

		_, err := refund.Complete(time.Now())

		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("attach gateway id once", func(t *testing.T) {
		refund := newRefund(t)

		require.NoError(t, refund.AttachGatewayID("rfnd_1"))
		require.NoError(t, refund.AttachGatewayID("rfnd_1"))
		assert.ErrorIs(t, refund.AttachGatewayID("rfnd_2"), domain.ErrInvalidState)
		assert.False(t, refund.IsOrphaned())
	})
}

func newRefund(t *testing.T) *domain.Refund {
	t.Helper()
	refund, err := domain.NewRefund("ref-1", capturedPurchase(t), "reason")
	require.NoError(t, err)
	return refund
}
