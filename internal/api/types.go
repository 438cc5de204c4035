package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// Header names used by the gateway on webhook deliveries.
const (
	SignatureHeader = "X-Razorpay-Signature"
	EventIDHeader   = "X-Razorpay-Event-Id"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type VerifyPaymentRequest struct {
	GatewayOrderId   string          `json:"gatewayOrderId"`
	GatewayPaymentId string          `json:"gatewayPaymentId"`
	Signature        string          `json:"signature"`
	ServiceId        string          `json:"serviceId"`
	CustomerId       string          `json:"customerId"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         *string         `json:"currency,omitempty"`
}

type VerifyPaymentResponse struct {
	Success    bool   `json:"success"`
	PurchaseId string `json:"purchaseId"`
	Message    string `json:"message"`
}

type RefundRequest struct {
	PurchaseId string `json:"purchaseId"`
	Reason     string `json:"reason"`
}

type RefundResponse struct {
	Success bool   `json:"success"`
	Refund  Refund `json:"refund"`
	Message string `json:"message"`
}

type SubmitReviewRequest struct {
	ServiceId   string  `json:"serviceId"`
	CustomerId  string  `json:"customerId"`
	Rating      int     `json:"rating"`
	ReviewText  *string `json:"reviewText,omitempty"`
	IsAnonymous bool    `json:"isAnonymous"`
}

type ReviewResponse struct {
	Success bool   `json:"success"`
	Review  Review `json:"review"`
	Message string `json:"message"`
}

type NotifyReviewRequest struct {
	ReviewId string `json:"reviewId"`
}

type NotifyReviewResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type PurchaseResponse struct {
	Success  bool     `json:"success"`
	Purchase Purchase `json:"purchase"`
}

type PurchaseListResponse struct {
	Success   bool       `json:"success"`
	Purchases []Purchase `json:"purchases"`
}

type RefundListResponse struct {
	Success bool     `json:"success"`
	Refunds []Refund `json:"refunds"`
}

type ComplaintListResponse struct {
	Success    bool        `json:"success"`
	Complaints []Complaint `json:"complaints"`
}

type Purchase struct {
	Id               string    `json:"id"`
	CustomerId       string    `json:"customerId"`
	ServiceId        string    `json:"serviceId"`
	Amount           string    `json:"amount"`
	Currency         string    `json:"currency"`
	GatewayOrderId   string    `json:"gatewayOrderId"`
	GatewayPaymentId *string   `json:"gatewayPaymentId"`
	PaymentStatus    string    `json:"paymentStatus"`
	OrderStatus      string    `json:"orderStatus"`
	PurchasedAt      time.Time `json:"purchasedAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type Refund struct {
	Id              string     `json:"id"`
	PurchaseId      string     `json:"purchaseId"`
	Amount          string     `json:"amount"`
	Currency        string     `json:"currency"`
	Reason          string     `json:"reason"`
	Status          string     `json:"status"`
	GatewayRefundId *string    `json:"gatewayRefundId"`
	CreatedAt       time.Time  `json:"createdAt"`
	ProcessedAt     *time.Time `json:"processedAt"`
}

type Review struct {
	Id          string    `json:"id"`
	ServiceId   string    `json:"serviceId"`
	CustomerId  string    `json:"customerId"`
	Rating      int       `json:"rating"`
	ReviewText  *string   `json:"reviewText"`
	IsAnonymous bool      `json:"isAnonymous"`
	IsComplaint bool      `json:"isComplaint"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Complaint struct {
	ReviewId     string    `json:"reviewId"`
	ServiceId    string    `json:"serviceId"`
	ServiceTitle string    `json:"serviceTitle"`
	Rating       int       `json:"rating"`
	ReviewText   *string   `json:"reviewText"`
	Customer     string    `json:"customer"`
	CreatedAt    time.Time `json:"createdAt"`
}
