package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrMissingKey means no publishable key is configured. This is a fatal
	// configuration error for the session, not a runtime condition.
	ErrMissingKey = errors.New("payment publishable key is not configured")

	ErrInvalidAmount = errors.New("payment amount must be positive")
)

// ProviderError carries a validation or processing failure reported by the
// payment provider. Message is surfaced to the user verbatim.
type ProviderError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ProviderError) Error() string {
	return e.Message
}

type Config struct {
	BaseURL        string
	PublishableKey string
	Timeout        time.Duration
}

// Client is a thin façade over the provider's REST surface. It owns the
// wire details of the contract: integer minor units, lowercase currency
// codes, bearer authentication with the publishable key.
type Client struct {
	baseURL string
	key     string
	httpc   *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.PublishableKey == "" {
		return nil, ErrMissingKey
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		key:     cfg.PublishableKey,
		httpc:   &http.Client{Timeout: timeout},
	}, nil
}

// Element is a provider session scoped to one payment amount. A changed
// amount requires a new element; elements are never mutated.
type Element struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type BillingDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type createElementRequest struct {
	Mode     string `json:"mode"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// CreateElement opens a payment session for the given amount in minor units.
func (c *Client) CreateElement(ctx context.Context, amountMinor int64, currency string) (*Element, error) {
	if amountMinor <= 0 {
		return nil, ErrInvalidAmount
	}

	reqBody := createElementRequest{
		Mode:     "payment",
		Amount:   amountMinor,
		Currency: strings.ToLower(currency),
	}

	var element Element
	if err := c.post(ctx, "/v1/elements", reqBody, &element); err != nil {
		return nil, err
	}
	return &element, nil
}

type createPaymentMethodRequest struct {
	Element        string         `json:"element"`
	BillingDetails BillingDetails `json:"billing_details"`
}

type createPaymentMethodResponse struct {
	ID string `json:"id"`
}

// CreatePaymentMethod submits the element and returns the payment-method
// identifier: an opaque token for the tokenized instrument, not a charge.
func (c *Client) CreatePaymentMethod(ctx context.Context, element *Element, billing BillingDetails) (string, error) {
	reqBody := createPaymentMethodRequest{
		Element:        element.ID,
		BillingDetails: billing,
	}

	var resp createPaymentMethodResponse
	if err := c.post(ctx, "/v1/payment_methods", reqBody, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

type errorEnvelope struct {
	Error *ProviderError `json:"error"`
}

func (c *Client) post(ctx context.Context, path string, reqBody, out interface{}) error {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal request failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.key)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("payment provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var envelope errorEnvelope
		if decodeErr := json.NewDecoder(resp.Body).Decode(&envelope); decodeErr == nil && envelope.Error != nil {
			return envelope.Error
		}
		return fmt.Errorf("payment provider returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode provider response failed: %w", err)
	}
	return nil
}
