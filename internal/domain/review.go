package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MinRating           = 1
	MaxRating           = 5
	ComplaintThreshold  = 2
	MaxReviewTextLength = 2000
)

type Review struct {
	ID          string
	ServiceID   string
	CustomerID  string
	Rating      int
	ReviewText  *string
	IsAnonymous bool
	IsComplaint bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsComplaintRating reports whether a rating counts as a complaint.
func IsComplaintRating(rating int) bool {
	return rating <= ComplaintThreshold
}

func NewReview(id, serviceID, customerID string, rating int, text string, anonymous bool) (*Review, error) {
	if id == "" {
		return nil, NewMissingRequiredFieldError("review ID")
	}
	if serviceID == "" {
		return nil, NewMissingRequiredFieldError("service ID")
	}
	if customerID == "" {
		return nil, NewMissingRequiredFieldError("customer ID")
	}
	if rating < MinRating || rating > MaxRating {
		return nil, &DomainError{
			Code:    ErrCodeInvalidRating,
			Message: fmt.Sprintf("rating %d is out of range", rating),
			Err:     ErrInvalidRating,
		}
	}

	var reviewText *string
	if trimmed := strings.TrimSpace(text); trimmed != "" {
		if utf8.RuneCountInString(trimmed) > MaxReviewTextLength {
			return nil, &DomainError{
				Code:    ErrCodeReviewTooLong,
				Message: fmt.Sprintf("review text must be at most %d characters", MaxReviewTextLength),
				Err:     ErrReviewTooLong,
			}
		}
		reviewText = &trimmed
	}

	now := time.Now().UTC()
	return &Review{
		ID:          id,
		ServiceID:   serviceID,
		CustomerID:  customerID,
		Rating:      rating,
		ReviewText:  reviewText,
		IsAnonymous: anonymous,
		IsComplaint: IsComplaintRating(rating),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// ReviewDetails is a review joined with what a notification needs to render.
type ReviewDetails struct {
	Review
	ServiceTitle   string
	DeveloperID    string
	CustomerName   *string
	DeveloperEmail *string
}

func (d *ReviewDetails) Complaint() bool {
	return d.IsComplaint || IsComplaintRating(d.Rating)
}

func (d *ReviewDetails) CustomerLabel() string {
	if d.IsAnonymous {
		return "Anonymous Customer"
	}
	if d.CustomerName != nil && strings.TrimSpace(*d.CustomerName) != "" {
		return *d.CustomerName
	}
	return "Unknown Customer"
}

// Stars renders the rating as a row of star emoji.
func (d *ReviewDetails) Stars() string {
	if d.Rating <= 0 {
		return ""
	}
	return strings.Repeat("⭐", d.Rating)
}

func (d *ReviewDetails) Text() string {
	if d.ReviewText == nil {
		return ""
	}
	return *d.ReviewText
}
