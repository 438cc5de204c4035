package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/DanielPopoola/devmarket-ledger/internal/application"
	"github.com/DanielPopoola/devmarket-ledger/internal/domain"
	"github.com/google/uuid"
)

// ReviewService stores customer reviews and queues their notification.
type ReviewService struct {
	reviewRepo   application.ReviewRepository
	purchaseRepo application.PurchaseRepository
	queue        application.NotificationQueue
	logger       *slog.Logger
}

func NewReviewService(
	reviewRepo application.ReviewRepository,
	purchaseRepo application.PurchaseRepository,
	queue application.NotificationQueue,
	logger *slog.Logger,
) *ReviewService {
	return &ReviewService{
		reviewRepo:   reviewRepo,
		purchaseRepo: purchaseRepo,
		queue:        queue,
		logger:       logger,
	}
}

// Submit creates or replaces the customer's review of a service. It reports
// whether the review was new. Every submission queues a notification.
func (s *ReviewService) Submit(ctx context.Context, cmd SubmitReviewCommand) (*domain.Review, bool, error) {
	if err := validateCommand(cmd); err != nil {
		return nil, false, err
	}

	purchased, err := s.purchaseRepo.HasSuccessfulPurchase(ctx, cmd.CustomerID, cmd.ServiceID)
	if err != nil {
		return nil, false, application.NewInternalError(err)
	}
	if !purchased {
		return nil, false, application.NewNotPurchasedError()
	}

	review, err := domain.NewReview(uuid.New().String(), cmd.ServiceID, cmd.CustomerID, cmd.Rating, cmd.ReviewText, cmd.IsAnonymous)
	if err != nil {
		return nil, false, application.NewInvalidInputError(err)
	}

	stored, created, err := s.reviewRepo.Upsert(ctx, review)
	if err != nil {
		return nil, false, application.NewInternalError(err)
	}

	s.logger.Info("review saved",
		"review_id", stored.ID,
		"service_id", stored.ServiceID,
		"created", created,
		"complaint", stored.IsComplaint)

	if err := s.queue.Enqueue(ctx, stored.ID); err != nil {
		level := slog.LevelError
		if errors.Is(err, application.ErrQueueFull) {
			level = slog.LevelWarn
		}
		s.logger.Log(ctx, level, "failed to queue review notification", "review_id", stored.ID, "error", err)
	}

	return stored, created, nil
}
