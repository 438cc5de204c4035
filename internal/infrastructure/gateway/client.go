// Package gateway talks to the payment gateway's REST API and decodes its
// webhook deliveries.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/DanielPopoola/devmarket-ledger/internal/application"
	"github.com/DanielPopoola/devmarket-ledger/internal/config"
)

type HTTPGatewayClient struct {
	baseURL    string
	keyID      string
	keySecret  string
	httpClient *http.Client
}

func NewGatewayClient(cfg config.GatewayConfig) *HTTPGatewayClient {
	return &HTTPGatewayClient{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (c *HTTPGatewayClient) CreateRefund(ctx context.Context, req application.RefundRequest) (*application.RefundResponse, error) {
	endpoint := fmt.Sprintf("%s/v1/payments/%s/refund", c.baseURL, url.PathEscape(req.PaymentID))
	return sendRequest[application.RefundRequest, application.RefundResponse](c, ctx, http.MethodPost, endpoint, &req)
}

func (c *HTTPGatewayClient) GetRefund(ctx context.Context, refundID string) (*application.RefundResponse, error) {
	endpoint := fmt.Sprintf("%s/v1/refunds/%s", c.baseURL, url.PathEscape(refundID))
	return sendRequest[any, application.RefundResponse](c, ctx, http.MethodGet, endpoint, nil)
}

func (c *HTTPGatewayClient) ListPaymentRefunds(ctx context.Context, paymentID string) (*application.RefundCollection, error) {
	endpoint := fmt.Sprintf("%s/v1/payments/%s/refunds", c.baseURL, url.PathEscape(paymentID))
	return sendRequest[any, application.RefundCollection](c, ctx, http.MethodGet, endpoint, nil)
}

func sendRequest[Req any, Resp any](c *HTTPGatewayClient, ctx context.Context, method, endpoint string, reqBody *Req) (*Resp, error) {
	var bodyReader io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("error marshalling json: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	if reqBody != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		var errResp application.GatewayErrorResponse
		if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error.Code == "" {
			return nil, &application.GatewayError{
				Code:        "UNKNOWN",
				Description: strings.TrimSpace(string(body)),
				StatusCode:  resp.StatusCode,
			}
		}
		return nil, &application.GatewayError{
			Code:        errResp.Error.Code,
			Description: errResp.Error.Description,
			StatusCode:  resp.StatusCode,
		}
	}

	var gwResp Resp
	if err := json.NewDecoder(resp.Body).Decode(&gwResp); err != nil {
		return nil, fmt.Errorf("error decoding json response: %w", err)
	}

	return &gwResp, nil
}
