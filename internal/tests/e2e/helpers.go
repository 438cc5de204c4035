package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/DanielPopoola/devmarket-ledger/internal/api"
	"github.com/DanielPopoola/devmarket-ledger/internal/infrastructure/signature"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// TestClient wraps HTTP calls to the marketplace API
type TestClient struct {
	baseURL       string
	webhookSecret string
	httpClient    *http.Client
}

func NewTestClient(baseURL, webhookSecret string) *TestClient {
	return &TestClient{
		baseURL:       baseURL,
		webhookSecret: webhookSecret,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// APIError is a non-2xx answer decoded from the error body.
type APIError struct {
	Status int
	Body   api.ErrorResponse
}

func (e *APIError) Error() string {
	return fmt.Sprintf("status %d: %s (%s)", e.Status, e.Body.Error, e.Body.Code)
}

func (c *TestClient) do(t *testing.T, method, path string, body []byte, header http.Header, out any) (int, error) {
	t.Helper()
	httpReq, err := http.NewRequest(method, c.baseURL+path, bytes.NewReader(body))
	require.NoError(t, err)
	httpReq.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		httpReq.Header[k] = v
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		_ = json.Unmarshal(bodyBytes, &apiErr.Body)
		return resp.StatusCode, apiErr
	}

	if out != nil {
		require.NoError(t, json.Unmarshal(bodyBytes, out))
	}
	return resp.StatusCode, nil
}

func (c *TestClient) postJSON(t *testing.T, path string, req, out any) (int, error) {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)
	return c.do(t, http.MethodPost, path, body, nil, out)
}

func (c *TestClient) VerifyPayment(t *testing.T, req api.VerifyPaymentRequest) (*api.VerifyPaymentResponse, error) {
	var resp api.VerifyPaymentResponse
	if _, err := c.postJSON(t, "/api/v1/payments/verify", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *TestClient) InitiateRefund(t *testing.T, purchaseID, reason string) (*api.Refund, error) {
	var resp api.RefundResponse
	if _, err := c.postJSON(t, "/api/v1/refunds", api.RefundRequest{PurchaseId: purchaseID, Reason: reason}, &resp); err != nil {
		return nil, err
	}
	return &resp.Refund, nil
}

func (c *TestClient) SubmitReview(t *testing.T, req api.SubmitReviewRequest) (*api.Review, int, error) {
	var resp api.ReviewResponse
	status, err := c.postJSON(t, "/api/v1/reviews", req, &resp)
	if err != nil {
		return nil, status, err
	}
	return &resp.Review, status, nil
}

func (c *TestClient) GetPurchase(t *testing.T, purchaseID string) (*api.Purchase, error) {
	var resp api.PurchaseResponse
	if _, err := c.do(t, http.MethodGet, "/api/v1/purchases/"+purchaseID, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Purchase, nil
}

func (c *TestClient) ListRefunds(t *testing.T, customerID string) ([]api.Refund, error) {
	var resp api.RefundListResponse
	if _, err := c.do(t, http.MethodGet, "/api/v1/customers/"+customerID+"/refunds", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Refunds, nil
}

func (c *TestClient) ListComplaints(t *testing.T, developerID string) ([]api.Complaint, error) {
	var resp api.ComplaintListResponse
	if _, err := c.do(t, http.MethodGet, "/api/v1/developers/"+developerID+"/complaints", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Complaints, nil
}

// DeliverWebhook signs payload with the webhook secret, as the gateway does.
func (c *TestClient) DeliverWebhook(t *testing.T, payload []byte) error {
	return c.DeliverWebhookWithSignature(t, payload, signature.Sign(payload, c.webhookSecret))
}

func (c *TestClient) DeliverWebhookWithSignature(t *testing.T, payload []byte, sig string) error {
	header := http.Header{}
	header.Set(api.SignatureHeader, sig)
	header.Set(api.EventIDHeader, "evt_"+uuid.NewString()[:14])
	_, err := c.do(t, http.MethodPost, "/api/v1/webhooks/gateway", payload, header, nil)
	return err
}

func paymentCapturedEvent(orderID, paymentID string, amountMinor int64) []byte {
	return []byte(fmt.Sprintf(`{"entity":"event","event":"payment.captured","contains":["payment"],`+
		`"payload":{"payment":{"entity":{"id":%q,"order_id":%q,"amount":%d,"currency":"INR","status":"captured"}}},`+
		`"created_at":%d}`, paymentID, orderID, amountMinor, time.Now().Unix()))
}

func refundEvent(event, refundID, paymentID, receipt string, amountMinor int64) []byte {
	return []byte(fmt.Sprintf(`{"entity":"event","event":%q,"contains":["refund"],`+
		`"payload":{"refund":{"entity":{"id":%q,"payment_id":%q,"amount":%d,"currency":"INR","status":"processed","receipt":%q}}},`+
		`"created_at":%d}`, event, refundID, paymentID, amountMinor, receipt, time.Now().Unix()))
}

// sink records every JSON body posted to it.
type sink struct {
	mu     sync.Mutex
	bodies []map[string]any
}

func (s *sink) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)
	s.mu.Lock()
	s.bodies = append(s.bodies, body)
	s.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

func (s *sink) received() []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]map[string]any(nil), s.bodies...)
}

func (s *sink) reset() {
	s.mu.Lock()
	s.bodies = nil
	s.mu.Unlock()
}

// fakeGateway answers refund creation with sequential refund ids.
type fakeGateway struct {
	mu      sync.Mutex
	next    int
	reject  bool
	created []string
}

func (g *fakeGateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.mu.Lock()
	defer g.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if g.reject {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"The payment has been fully refunded already"}}`))
		return
	}

	var req struct {
		Amount  int64  `json:"amount"`
		Receipt string `json:"receipt"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	g.next++
	id := fmt.Sprintf("rfnd_e2e%06d", g.next)
	g.created = append(g.created, id)

	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":       id,
		"entity":   "refund",
		"amount":   req.Amount,
		"currency": "INR",
		"receipt":  req.Receipt,
		"status":   "pending",
	})
}
