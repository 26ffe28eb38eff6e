package viacep

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mercado-labs/mercado-core/internal/core/domain"
	"github.com/mercado-labs/mercado-core/internal/core/ports/driven"
)

// Ensure Client implements AddressResolver
var _ driven.AddressResolver = (*Client)(nil)

// Client implements AddressResolver against the public ViaCEP API
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a new ViaCEP client
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://viacep.com.br/ws"
	}
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// cepResponse is the ViaCEP payload. Unknown CEPs come back as 200 with
// just {"erro": true}.
type cepResponse struct {
	CEP          string `json:"cep"`
	Street       string `json:"logradouro"`
	Complement   string `json:"complemento"`
	Neighborhood string `json:"bairro"`
	City         string `json:"localidade"`
	State        string `json:"uf"`
	Error        bool   `json:"erro"`
}

// Resolve expands a normalized 8-digit CEP into a full address
func (c *Client) Resolve(ctx context.Context, cep string) (*domain.Address, error) {
	url := fmt.Sprintf("%s/%s/json/", c.baseURL, cep)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, domain.ErrUpstream
	}
	defer resp.Body.Close()

	// A malformed CEP gets a 400 here; the services normalize first, so
	// treat it like an unknown one
	if resp.StatusCode == http.StatusBadRequest {
		return nil, domain.ErrInvalidInput
	}
	if resp.StatusCode != http.StatusOK {
		return nil, domain.ErrUpstream
	}

	var body cepResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if body.Error {
		return nil, domain.ErrInvalidInput
	}

	return &domain.Address{
		CEP:          cep,
		Street:       body.Street,
		Neighborhood: body.Neighborhood,
		City:         body.City,
		State:        body.State,
	}, nil
}
