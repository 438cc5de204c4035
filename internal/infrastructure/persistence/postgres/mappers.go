package postgres

import (
	"github.com/DanielPopoola/devmarket-ledger/internal/domain"
)

// toDomainPurchase: maps db model to domain entity
func toDomainPurchase(m PurchaseModel) *domain.Purchase {
	return domain.ReconstitutePurchase(
		m.ID,
		m.CustomerID,
		m.ServiceID,
		m.Amount,
		m.Currency,
		m.GatewayOrderID,
		m.GatewayPaymentID,
		domain.PaymentStatus(m.PaymentStatus),
		domain.OrderStatus(m.OrderStatus),
		m.PurchasedAt,
		m.UpdatedAt,
	)
}

// toPurchaseModel: maps domain entity to db model
func toPurchaseModel(p *domain.Purchase) PurchaseModel {
	return PurchaseModel{
		ID:               p.ID,
		CustomerID:       p.CustomerID,
		ServiceID:        p.ServiceID,
		Amount:           p.Amount,
		Currency:         p.Currency,
		GatewayOrderID:   p.GatewayOrderID,
		GatewayPaymentID: p.GatewayPaymentID,
		PaymentStatus:    string(p.PaymentStatus),
		OrderStatus:      string(p.OrderStatus),
		PurchasedAt:      p.PurchasedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func toDomainRefund(m RefundModel) *domain.Refund {
	return domain.ReconstituteRefund(
		m.ID,
		m.PurchaseID,
		m.Amount,
		m.Currency,
		m.Reason,
		domain.RefundStatus(m.Status),
		m.GatewayRefundID,
		m.CreatedAt,
		m.ProcessedAt,
	)
}

func toRefundModel(r *domain.Refund) RefundModel {
	return RefundModel{
		ID:              r.ID,
		PurchaseID:      r.PurchaseID,
		Amount:          r.Amount,
		Currency:        r.Currency,
		Reason:          r.Reason,
		Status:          string(r.Status),
		GatewayRefundID: r.GatewayRefundID,
		CreatedAt:       r.CreatedAt,
		ProcessedAt:     r.ProcessedAt,
	}
}

func toDomainReview(m ReviewModel) *domain.Review {
	return &domain.Review{
		ID:          m.ID,
		ServiceID:   m.ServiceID,
		CustomerID:  m.CustomerID,
		Rating:      int(m.Rating),
		ReviewText:  m.ReviewText,
		IsAnonymous: m.IsAnonymous,
		IsComplaint: m.IsComplaint,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toDomainReviewDetails(m ReviewDetailsModel) *domain.ReviewDetails {
	return &domain.ReviewDetails{
		Review:         *toDomainReview(m.ReviewModel),
		ServiceTitle:   m.ServiceTitle,
		DeveloperID:    m.DeveloperID,
		CustomerName:   m.CustomerName,
		DeveloperEmail: m.DeveloperEmail,
	}
}

func toDomainListing(m ListingModel) *domain.Listing {
	return &domain.Listing{
		ID:          m.ID,
		DeveloperID: m.DeveloperID,
		Title:       m.Title,
		Price:       domain.Money{Amount: m.Price, Currency: m.Currency},
	}
}
