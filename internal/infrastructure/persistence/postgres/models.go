package postgres

import (
	"time"

	"github.com/shopspring/decimal"
)

type PurchaseModel struct {
	ID               string
	CustomerID       string
	ServiceID        string
	Amount           decimal.Decimal
	Currency         string
	GatewayOrderID   string
	GatewayPaymentID *string
	PaymentStatus    string
	OrderStatus      string
	PurchasedAt      time.Time
	UpdatedAt        time.Time
}

type RefundModel struct {
	ID              string
	PurchaseID      string
	Amount          decimal.Decimal
	Currency        string
	Reason          string
	Status          string
	GatewayRefundID *string
	CreatedAt       time.Time
	ProcessedAt     *time.Time
}

type ReviewModel struct {
	ID          string
	ServiceID   string
	CustomerID  string
	Rating      int16
	ReviewText  *string
	IsAnonymous bool
	IsComplaint bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ReviewDetailsModel is a review joined with its service and both profiles.
type ReviewDetailsModel struct {
	ReviewModel
	ServiceTitle   string
	DeveloperID    string
	CustomerName   *string
	DeveloperEmail *string
}

type ListingModel struct {
	ID          string
	DeveloperID string
	Title       string
	Price       decimal.Decimal
	Currency    string
}
