package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/mercado-labs/mercado-core/internal/core/domain"
	"github.com/mercado-labs/mercado-core/internal/core/ports/driven"
)

var (
	_ driven.ProductStore = (*MockProductStore)(nil)
	_ driven.CartStore    = (*MockCartStore)(nil)
)

func nowUTC() time.Time { return time.Now().UTC() }

// MockProductStore is an in-memory ProductStore for testing
type MockProductStore struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
}

// NewMockProductStore creates a new MockProductStore
func NewMockProductStore() *MockProductStore {
	return &MockProductStore{products: make(map[string]*domain.Product)}
}

func (m *MockProductStore) Save(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[product.ID] = product
	return nil
}

func (m *MockProductStore) Get(ctx context.Context, id string) (*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.products[id]
	if !ok || p.DeletedAt != nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (m *MockProductStore) GetByStoreAndName(ctx context.Context, storeID, name string) (*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.products {
		if p.DeletedAt == nil && p.StoreID == storeID && p.Name == name {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockProductStore) ListByStore(ctx context.Context, storeID string) ([]*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Product
	for _, p := range m.products {
		if p.DeletedAt == nil && p.StoreID == storeID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *MockProductStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok || p.DeletedAt != nil {
		return domain.ErrNotFound
	}
	now := nowUTC()
	p.DeletedAt = &now
	return nil
}

func (m *MockProductStore) DeleteByStore(ctx context.Context, storeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := nowUTC()
	for _, p := range m.products {
		if p.DeletedAt == nil && p.StoreID == storeID {
			p.DeletedAt = &now
		}
	}
	return nil
}

func (m *MockProductStore) DeleteByOwnerUser(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := nowUTC()
	for _, p := range m.products {
		if p.DeletedAt == nil && p.OwnerUserID != nil && *p.OwnerUserID == userID {
			p.DeletedAt = &now
		}
	}
	return nil
}

// MockCartStore is an in-memory CartStore for testing
type MockCartStore struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart // keyed by user id
}

// NewMockCartStore creates a new MockCartStore
func NewMockCartStore() *MockCartStore {
	return &MockCartStore{carts: make(map[string]*domain.Cart)}
}

func (m *MockCartStore) Create(ctx context.Context, cart *domain.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[cart.UserID] = cart
	return nil
}

func (m *MockCartStore) GetByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cart, ok := m.carts[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cart, nil
}

func (m *MockCartStore) SetItems(ctx context.Context, cartID string, items []domain.CartItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, cart := range m.carts {
		if cart.ID == cartID {
			cart.Items = items
			cart.UpdatedAt = nowUTC()
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *MockCartStore) DeleteByUser(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, userID)
	return nil
}
