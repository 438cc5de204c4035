package services

import (
	"context"
	"errors"

	"github.com/DanielPopoola/devmarket-ledger/internal/application"
	"github.com/DanielPopoola/devmarket-ledger/internal/domain"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type QueryService struct {
	purchaseRepo application.PurchaseRepository
	refundRepo   application.RefundRepository
	reviewRepo   application.ReviewRepository
}

func NewQueryService(
	purchaseRepo application.PurchaseRepository,
	refundRepo application.RefundRepository,
	reviewRepo application.ReviewRepository,
) *QueryService {
	return &QueryService{
		purchaseRepo: purchaseRepo,
		refundRepo:   refundRepo,
		reviewRepo:   reviewRepo,
	}
}

func (s *QueryService) FindPurchase(ctx context.Context, id string) (*domain.Purchase, error) {
	if err := requireUUID("purchaseId", id); err != nil {
		return nil, err
	}
	purchase, err := s.purchaseRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrPurchaseNotFound) {
			return nil, application.NewNotFoundError("Purchase", err)
		}
		return nil, application.NewInternalError(err)
	}
	return purchase, nil
}

func (s *QueryService) PurchasesByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*domain.Purchase, error) {
	if err := requireUUID("customerId", customerID); err != nil {
		return nil, err
	}
	limit, offset = page(limit, offset)
	purchases, err := s.purchaseRepo.FindByCustomerID(ctx, customerID, limit, offset)
	if err != nil {
		return nil, application.NewInternalError(err)
	}
	return purchases, nil
}

func (s *QueryService) RefundsByCustomer(ctx context.Context, customerID string) ([]*domain.Refund, error) {
	if err := requireUUID("customerId", customerID); err != nil {
		return nil, err
	}
	refunds, err := s.refundRepo.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, application.NewInternalError(err)
	}
	return refunds, nil
}

// ComplaintsForDeveloper lists complaints on the developer's services,
// newest first.
func (s *QueryService) ComplaintsForDeveloper(ctx context.Context, developerID string, limit, offset int) ([]*domain.ReviewDetails, error) {
	if err := requireUUID("developerId", developerID); err != nil {
		return nil, err
	}
	limit, offset = page(limit, offset)
	complaints, err := s.reviewRepo.FindComplaintsByDeveloper(ctx, developerID, limit, offset)
	if err != nil {
		return nil, application.NewInternalError(err)
	}
	return complaints, nil
}

func requireUUID(name, value string) error {
	if err := validate.Var(value, "required,uuid"); err != nil {
		return application.NewInvalidInputError(errors.New(name + " must be a valid UUID"))
	}
	return nil
}

func page(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
