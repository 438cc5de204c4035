package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/DanielPopoola/devmarket-ledger/internal/application"
	"github.com/DanielPopoola/devmarket-ledger/internal/domain"
)

const (
	MessageComplaintSent    = "Complaint notification sent to support team"
	MessagePositiveFeedback = "Positive feedback recorded"
)

type NotifyResult struct {
	Complaint bool
	Message   string
}

// NotificationService fans complaints out to the operator channel and the
// developer's inbox. Either channel may be nil when not configured.
type NotificationService struct {
	reviewRepo application.ReviewRepository
	operator   application.OperatorChannel
	mailer     application.DeveloperMailer
	logger     *slog.Logger
}

func NewNotificationService(
	reviewRepo application.ReviewRepository,
	operator application.OperatorChannel,
	mailer application.DeveloperMailer,
	logger *slog.Logger,
) *NotificationService {
	return &NotificationService{
		reviewRepo: reviewRepo,
		operator:   operator,
		mailer:     mailer,
		logger:     logger,
	}
}

// Notify delivers notifications for reviewID. Delivery failures are logged
// and never returned; only a missing review is an error.
func (s *NotificationService) Notify(ctx context.Context, reviewID string) (NotifyResult, error) {
	if err := requireUUID("reviewId", reviewID); err != nil {
		return NotifyResult{}, err
	}

	details, err := s.reviewRepo.FindDetails(ctx, reviewID)
	if err != nil {
		if errors.Is(err, domain.ErrReviewNotFound) {
			return NotifyResult{}, application.NewNotFoundError("Review", err)
		}
		return NotifyResult{}, application.NewInternalError(err)
	}

	logger := s.logger.With("review_id", details.ID, "service_id", details.ServiceID)

	if !details.Complaint() {
		logger.Debug("review is not a complaint, nothing to send")
		return NotifyResult{Message: MessagePositiveFeedback}, nil
	}

	if s.operator == nil {
		logger.Info("operator channel not configured, skipping complaint alert")
	} else if err := s.operator.NotifyComplaint(ctx, details); err != nil {
		logger.Error("complaint alert failed", "error", err)
	} else {
		logger.Info("complaint alert delivered", "rating", details.Rating)
	}

	s.mailDeveloper(ctx, logger, details)
	return NotifyResult{Complaint: true, Message: MessageComplaintSent}, nil
}

func (s *NotificationService) mailDeveloper(ctx context.Context, logger *slog.Logger, details *domain.ReviewDetails) {
	if s.mailer == nil {
		return
	}
	if details.DeveloperEmail == nil || *details.DeveloperEmail == "" {
		logger.Info("developer has no contact email", "developer_id", details.DeveloperID)
		return
	}
	if err := s.mailer.SendReviewNotice(ctx, *details.DeveloperEmail, details); err != nil {
		logger.Error("developer review notice failed", "developer_id", details.DeveloperID, "error", err)
	}
}
