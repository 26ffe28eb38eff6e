package pagarme

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mercado-labs/mercado-core/internal/core/domain"
	"github.com/mercado-labs/mercado-core/internal/core/ports/driven"
)

// Ensure Client implements PaymentGateway
var _ driven.PaymentGateway = (*Client)(nil)

// Client implements PaymentGateway against the Pagarme core v5 API.
// Authentication is HTTP basic with the secret key as username.
type Client struct {
	secretKey string
	baseURL   string
	client    *http.Client
	logger    *slog.Logger
}

// NewClient creates a new Pagarme client
func NewClient(secretKey, baseURL string, logger *slog.Logger) (*Client, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("Pagarme secret key is required")
	}
	if baseURL == "" {
		baseURL = "https://api.pagar.me/core/v5"
	}

	return &Client{
		secretKey: secretKey,
		baseURL:   baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}, nil
}

// idResponse covers every creation endpoint; only the id is consumed
type idResponse struct {
	ID string `json:"id"`
}

// CreateCustomer registers a buyer and returns its gateway id
func (c *Client) CreateCustomer(ctx context.Context, customer *domain.Customer) (string, error) {
	var resp idResponse
	if err := c.do(ctx, http.MethodPost, "/customers", customer, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// UpdateCustomer pushes changed profile data for an existing customer
func (c *Client) UpdateCustomer(ctx context.Context, customerID string, customer *domain.Customer) error {
	return c.do(ctx, http.MethodPut, "/customers/"+customerID, customer, nil)
}

// CreateRecipient registers a payout recipient and returns its gateway id
func (c *Client) CreateRecipient(ctx context.Context, recipient *domain.Recipient) (string, error) {
	var resp idResponse
	if err := c.do(ctx, http.MethodPost, "/recipients", recipient, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// CreateCard registers a credit card under a customer and returns its
// gateway id
func (c *Client) CreateCard(ctx context.Context, customerID string, card *domain.CreditCard) (string, error) {
	var resp idResponse
	if err := c.do(ctx, http.MethodPost, "/customers/"+customerID+"/cards", card, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// do sends one JSON request. Gateway rejections are logged with the raw
// response body and collapse into domain.ErrUpstream; the payload is never
// forwarded to callers.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.secretKey, "")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("gateway request failed", "method", method, "path", path, "error", err)
		return domain.ErrUpstream
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("gateway rejected request",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"body", string(raw),
		)
		return domain.ErrUpstream
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
