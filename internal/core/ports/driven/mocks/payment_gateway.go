package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mercado-labs/mercado-core/internal/core/domain"
	"github.com/mercado-labs/mercado-core/internal/core/ports/driven"
)

var (
	_ driven.PaymentGateway  = (*MockPaymentGateway)(nil)
	_ driven.AddressResolver = (*MockAddressResolver)(nil)
	_ driven.ReplayGuard     = (*MockReplayGuard)(nil)
)

// MockPaymentGateway is an in-memory PaymentGateway for testing. It records
// every call and can be forced to fail.
type MockPaymentGateway struct {
	mu         sync.Mutex
	seq        int
	Err        error // returned by every call when set
	Customers  []*domain.Customer
	Recipients []*domain.Recipient
	Cards      []*domain.CreditCard
}

// NewMockPaymentGateway creates a new MockPaymentGateway
func NewMockPaymentGateway() *MockPaymentGateway {
	return &MockPaymentGateway{}
}

func (m *MockPaymentGateway) CreateCustomer(ctx context.Context, customer *domain.Customer) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	m.Customers = append(m.Customers, customer)
	m.seq++
	return fmt.Sprintf("cus_%06d", m.seq), nil
}

func (m *MockPaymentGateway) UpdateCustomer(ctx context.Context, customerID string, customer *domain.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Customers = append(m.Customers, customer)
	return nil
}

func (m *MockPaymentGateway) CreateRecipient(ctx context.Context, recipient *domain.Recipient) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	m.Recipients = append(m.Recipients, recipient)
	m.seq++
	return fmt.Sprintf("rp_%06d", m.seq), nil
}

func (m *MockPaymentGateway) CreateCard(ctx context.Context, customerID string, card *domain.CreditCard) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	m.Cards = append(m.Cards, card)
	m.seq++
	return fmt.Sprintf("card_%06d", m.seq), nil
}

// MockAddressResolver resolves every well-formed CEP to a fixed address
type MockAddressResolver struct {
	Err error
}

// NewMockAddressResolver creates a new MockAddressResolver
func NewMockAddressResolver() *MockAddressResolver {
	return &MockAddressResolver{}
}

func (m *MockAddressResolver) Resolve(ctx context.Context, cep string) (*domain.Address, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return &domain.Address{
		CEP:          cep,
		Street:       "Avenida Paulista",
		Neighborhood: "Bela Vista",
		City:         "São Paulo",
		State:        "SP",
	}, nil
}

// MockReplayGuard is an in-memory consumed-token set for testing
type MockReplayGuard struct {
	mu       sync.Mutex
	consumed map[string]bool
}

// NewMockReplayGuard creates a new MockReplayGuard
func NewMockReplayGuard() *MockReplayGuard {
	return &MockReplayGuard{consumed: make(map[string]bool)}
}

func (m *MockReplayGuard) Consume(ctx context.Context, jti string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.consumed[jti] {
		return false, nil
	}
	m.consumed[jti] = true
	return true, nil
}
