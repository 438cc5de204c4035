package rest

import (
	"github.com/DanielPopoola/devmarket-ledger/internal/api"
	"github.com/DanielPopoola/devmarket-ledger/internal/domain"
)

func ToAPIPurchase(p *domain.Purchase) api.Purchase {
	return api.Purchase{
		Id:               p.ID,
		CustomerId:       p.CustomerID,
		ServiceId:        p.ServiceID,
		Amount:           p.Amount.StringFixed(p.Money().Exponent()),
		Currency:         p.Currency,
		GatewayOrderId:   p.GatewayOrderID,
		GatewayPaymentId: p.GatewayPaymentID,
		PaymentStatus:    string(p.PaymentStatus),
		OrderStatus:      string(p.OrderStatus),
		PurchasedAt:      p.PurchasedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func ToAPIPurchases(purchases []*domain.Purchase) []api.Purchase {
	out := make([]api.Purchase, 0, len(purchases))
	for _, p := range purchases {
		out = append(out, ToAPIPurchase(p))
	}
	return out
}

func ToAPIRefund(r *domain.Refund) api.Refund {
	return api.Refund{
		Id:              r.ID,
		PurchaseId:      r.PurchaseID,
		Amount:          r.Amount.StringFixed(r.Money().Exponent()),
		Currency:        r.Currency,
		Reason:          r.Reason,
		Status:          string(r.Status),
		GatewayRefundId: r.GatewayRefundID,
		CreatedAt:       r.CreatedAt,
		ProcessedAt:     r.ProcessedAt,
	}
}

func ToAPIRefunds(refunds []*domain.Refund) []api.Refund {
	out := make([]api.Refund, 0, len(refunds))
	for _, r := range refunds {
		out = append(out, ToAPIRefund(r))
	}
	return out
}

func ToAPIReview(r *domain.Review) api.Review {
	return api.Review{
		Id:          r.ID,
		ServiceId:   r.ServiceID,
		CustomerId:  r.CustomerID,
		Rating:      r.Rating,
		ReviewText:  r.ReviewText,
		IsAnonymous: r.IsAnonymous,
		IsComplaint: r.IsComplaint,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// ToAPIComplaints renders complaints with the customer's name redacted for
// anonymous reviews.
func ToAPIComplaints(details []*domain.ReviewDetails) []api.Complaint {
	out := make([]api.Complaint, 0, len(details))
	for _, d := range details {
		out = append(out, api.Complaint{
			ReviewId:     d.ID,
			ServiceId:    d.ServiceID,
			ServiceTitle: d.ServiceTitle,
			Rating:       d.Rating,
			ReviewText:   d.ReviewText,
			Customer:     d.CustomerLabel(),
			CreatedAt:    d.CreatedAt,
		})
	}
	return out
}
