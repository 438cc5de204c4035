package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/DanielPopoola/devmarket-ledger/internal/domain"
)

var reviewEmailTemplate = template.Must(template.New("review").Parse(`
<h2>{{if .Complaint}}⚠️ Customer Complaint{{else}}⭐ New Review{{end}}</h2>
<p><strong>Service:</strong> {{.Service}}</p>
<p><strong>Rating:</strong> {{.Rating}}/5 stars</p>
<p><strong>Customer:</strong> {{.Customer}}</p>
<p><strong>Review:</strong> {{.Body}}</p>
<p><strong>Date:</strong> {{.Date}}</p>
`))

// EmailRequest is the body the email function accepts.
type EmailRequest struct {
	To          string `json:"to"`
	Subject     string `json:"subject"`
	HTML        string `json:"html"`
	IsComplaint bool   `json:"isComplaint"`
}

// EmailMailer hands developer notices to an HTTP email function
// authenticated with a bearer token.
type EmailMailer struct {
	endpoint   string
	authToken  string
	httpClient *http.Client
}

func NewEmailMailer(endpoint, authToken string, timeout time.Duration) *EmailMailer {
	return &EmailMailer{
		endpoint:   endpoint,
		authToken:  authToken,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (m *EmailMailer) SendReviewNotice(ctx context.Context, to string, details *domain.ReviewDetails) error {
	req, err := ReviewEmail(to, details)
	if err != nil {
		return err
	}

	header := http.Header{}
	if m.authToken != "" {
		header.Set("Authorization", "Bearer "+m.authToken)
	}
	return postJSON(ctx, m.httpClient, m.endpoint, "email function", req, header)
}

// ReviewEmail renders the developer notice for a review.
func ReviewEmail(to string, d *domain.ReviewDetails) (EmailRequest, error) {
	kind := "Review"
	if d.Complaint() {
		kind = "Complaint"
	}

	body := d.Text()
	if body == "" {
		body = "No review text provided"
	}

	var buf bytes.Buffer
	err := reviewEmailTemplate.Execute(&buf, map[string]any{
		"Complaint": d.Complaint(),
		"Service":   d.ServiceTitle,
		"Rating":    d.Rating,
		"Customer":  d.CustomerLabel(),
		"Body":      body,
		"Date":      formatTime(d.CreatedAt),
	})
	if err != nil {
		return EmailRequest{}, fmt.Errorf("render review email: %w", err)
	}

	return EmailRequest{
		To:          to,
		Subject:     fmt.Sprintf("New %s for %s", kind, d.ServiceTitle),
		HTML:        buf.String(),
		IsComplaint: d.Complaint(),
	}, nil
}
