// Package gateway wraps the external payment provider. The provider is a
// consumed collaborator: this client only reports and forwards, it never
// decides booking state on its own.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// TransactionStatus is the provider's view of one payment.
type TransactionStatus struct {
	OrderID       string `json:"order_id"`
	TransactionID string `json:"transaction_id"`
	Status        string `json:"transaction_status"` // settlement, pending, expire, cancel, deny
	GrossAmount   string `json:"gross_amount"`
}

// RefundResult is the provider's answer to a refund request.
type RefundResult struct {
	TransactionID string `json:"transaction_id"`
	RefundID      string `json:"refund_id"`
	Status        string `json:"status"` // accepted, processing, done, rejected
}

// Client is what the services consume; tests swap in fakes.
type Client interface {
	CheckTransaction(ctx context.Context, bookingCode string) (TransactionStatus, error)
	RequestRefund(ctx context.Context, transactionID string, amount int64, reason string) (RefundResult, error)
	CheckRefundStatus(ctx context.Context, transactionID string) (RefundResult, error)
	IsRefundable(method, channel string) bool
}

// HTTPClient talks to a Midtrans-style core API with server-key basic auth.
type HTTPClient struct {
	BaseURL   string
	ServerKey string
	HTTP      *http.Client
}

func NewHTTPClient(baseURL, serverKey string) *HTTPClient {
	return &HTTPClient{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		ServerKey: serverKey,
		HTTP:      &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *HTTPClient) CheckTransaction(ctx context.Context, bookingCode string) (TransactionStatus, error) {
	var out TransactionStatus
	err := c.call(ctx, http.MethodGet, "/v2/"+bookingCode+"/status", nil, &out)
	return out, err
}

func (c *HTTPClient) RequestRefund(ctx context.Context, transactionID string, amount int64, reason string) (RefundResult, error) {
	payload := map[string]any{
		"refund_key": transactionID,
		"amount":     amount,
		"reason":     reason,
	}
	var out RefundResult
	err := c.call(ctx, http.MethodPost, "/v2/"+transactionID+"/refund", payload, &out)
	return out, err
}

func (c *HTTPClient) CheckRefundStatus(ctx context.Context, transactionID string) (RefundResult, error) {
	var out RefundResult
	err := c.call(ctx, http.MethodGet, "/v2/"+transactionID+"/refund/status", nil, &out)
	return out, err
}

// IsRefundable mirrors the provider's support matrix: online channels can be
// refunded through the API, cash refunds are handled at the counter.
func (c *HTTPClient) IsRefundable(method, channel string) bool {
	switch strings.ToUpper(strings.TrimSpace(method)) {
	case "BANK_TRANSFER", "VIRTUAL_ACCOUNT", "E_WALLET":
		return true
	}
	return false
}

func (c *HTTPClient) call(ctx context.Context, method, path string, payload, out any) error {
	if c.BaseURL == "" {
		return fmt.Errorf("gateway belum dikonfigurasi")
	}
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.ServerKey, "")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("gateway error: status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
