package driven

import (
	"context"

	"github.com/mercado-labs/mercado-core/internal/core/domain"
)

// PaymentGateway is the remote payment provider. All calls are synchronous;
// failures surface as domain.ErrUpstream after the raw response has been
// logged by the adapter. The returned ids are opaque.
type PaymentGateway interface {
	// CreateCustomer registers a buyer and returns its gateway id
	CreateCustomer(ctx context.Context, customer *domain.Customer) (string, error)

	// UpdateCustomer pushes changed profile data for an existing customer
	UpdateCustomer(ctx context.Context, customerID string, customer *domain.Customer) error

	// CreateRecipient registers a payout recipient and returns its gateway id
	CreateRecipient(ctx context.Context, recipient *domain.Recipient) (string, error)

	// CreateCard registers a credit card under a customer and returns its
	// gateway id
	CreateCard(ctx context.Context, customerID string, card *domain.CreditCard) (string, error)
}

// AddressResolver expands a CEP into a full address. Backed by a public
// postal-code API.
type AddressResolver interface {
	// Resolve fails with domain.ErrInvalidInput for unknown CEPs
	Resolve(ctx context.Context, cep string) (*domain.Address, error)
}
