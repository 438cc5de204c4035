package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/DanielPopoola/devmarket-ledger/internal/application"
	"github.com/DanielPopoola/devmarket-ledger/internal/application/services"
)

type Notifier interface {
	Notify(ctx context.Context, reviewID string) (services.NotifyResult, error)
}

// NotificationWorker drains the notification queue with a fixed pool of
// consumers.
type NotificationWorker struct {
	queue    application.NotificationQueue
	notifier Notifier
	workers  int
	timeout  time.Duration
	backoff  time.Duration
	logger   *slog.Logger
}

func NewNotificationWorker(
	queue application.NotificationQueue,
	notifier Notifier,
	workers int,
	timeout time.Duration,
	logger *slog.Logger,
) *NotificationWorker {
	if workers < 1 {
		workers = 1
	}
	return &NotificationWorker{
		queue:    queue,
		notifier: notifier,
		workers:  workers,
		timeout:  timeout,
		backoff:  time.Second,
		logger:   logger,
	}
}

// Start blocks until ctx is done or the queue is closed and every consumer
// has returned.
func (w *NotificationWorker) Start(ctx context.Context) {
	w.logger.Info("notification worker started", "workers", w.workers)

	var wg sync.WaitGroup
	for i := range w.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.consume(ctx, i)
		}()
	}
	wg.Wait()

	w.logger.Info("notification worker stopped")
}

func (w *NotificationWorker) consume(ctx context.Context, id int) {
	logger := w.logger.With("consumer", id)

	for {
		reviewID, err := w.queue.Dequeue(ctx)
		switch {
		case errors.Is(err, application.ErrQueueClosed), ctx.Err() != nil:
			return
		case err != nil:
			logger.Error("dequeue failed", "error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(w.backoff):
			}
			continue
		}

		w.process(ctx, logger, reviewID)
	}
}

func (w *NotificationWorker) process(ctx context.Context, logger *slog.Logger, reviewID string) {
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	result, err := w.notifier.Notify(ctx, reviewID)
	if err != nil {
		logger.Error("review notification failed",
			"review_id", reviewID,
			"category", application.CategorizeError(err),
			"error", err)
		return
	}
	logger.Debug("review notification processed", "review_id", reviewID, "complaint", result.Complaint)
}
