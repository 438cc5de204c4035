package gateway

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/DanielPopoola/devmarket-ledger/internal/application"
	"github.com/DanielPopoola/devmarket-ledger/internal/config"
)

type RetryGatewayClient struct {
	inner      application.GatewayClient
	baseDelay  time.Duration
	maxRetries int
}

func NewRetryGatewayClient(inner application.GatewayClient, cfg config.RetryConfig) *RetryGatewayClient {
	maxRetries := int(cfg.MaxRetries)
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &RetryGatewayClient{
		inner:      inner,
		baseDelay:  time.Duration(cfg.BaseDelay) * time.Second,
		maxRetries: maxRetries,
	}
}

// CreateRefund with retry logic. A repeated full refund is rejected by the
// gateway with a 4xx, so retrying a 5xx cannot refund twice. That 4xx comes
// back wrapped in application.ErrGatewayRetried.
func (r *RetryGatewayClient) CreateRefund(ctx context.Context, req application.RefundRequest) (*application.RefundResponse, error) {
	return retry(
		r,
		ctx,
		func(ctx context.Context) (*application.RefundResponse, error) {
			return r.inner.CreateRefund(ctx, req)
		},
	)
}

func (r *RetryGatewayClient) GetRefund(ctx context.Context, refundID string) (*application.RefundResponse, error) {
	return retry(
		r,
		ctx,
		func(ctx context.Context) (*application.RefundResponse, error) {
			return r.inner.GetRefund(ctx, refundID)
		},
	)
}

func (r *RetryGatewayClient) ListPaymentRefunds(ctx context.Context, paymentID string) (*application.RefundCollection, error) {
	return retry(
		r,
		ctx,
		func(ctx context.Context) (*application.RefundCollection, error) {
			return r.inner.ListPaymentRefunds(ctx, paymentID)
		},
	)
}

// Generic retry helper
func retry[T any](r *RetryGatewayClient, ctx context.Context, operation func(ctx context.Context) (*T, error)) (*T, error) {
	var lastErr error

	for attempt := 0; attempt < r.maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		resp, err := operation(ctx)
		if err == nil {
			return resp, nil
		}

		lastErr = err

		if !isRetryable(err) {
			if attempt > 0 {
				return nil, fmt.Errorf("%w on attempt %d: %w", application.ErrGatewayRetried, attempt+1, err)
			}
			return nil, err
		}

		if attempt < r.maxRetries-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(r.backoff(attempt)):
			}
		}
	}

	return nil, fmt.Errorf("maximum retries exceeded: %w", lastErr)
}

// Helper: to check retryable errors
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if gwErr, ok := application.IsGatewayError(err); ok {
		return gwErr.IsRetryable()
	}
	// transport failures
	return true
}

// Backoff calculation with exponential delay and jitter
func (r *RetryGatewayClient) backoff(attempt int) time.Duration {
	base := r.baseDelay * time.Duration(1<<attempt)

	jitter := time.Duration(rand.Intn(1000)) * time.Millisecond

	return base + jitter
}
