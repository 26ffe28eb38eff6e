package mocks

import (
	"context"
	"sync"

	"github.com/mercado-labs/mercado-core/internal/core/domain"
	"github.com/mercado-labs/mercado-core/internal/core/ports/driven"
)

// Ensure the mocks implement their ports
var (
	_ driven.UserStore  = (*MockUserStore)(nil)
	_ driven.StoreStore = (*MockStoreStore)(nil)
)

// MockUserStore is an in-memory UserStore for testing
type MockUserStore struct {
	mu    sync.RWMutex
	users map[string]*domain.Identity
}

// NewMockUserStore creates a new MockUserStore
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{users: make(map[string]*domain.Identity)}
}

func (m *MockUserStore) Save(ctx context.Context, user *domain.Identity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *MockUserStore) Get(ctx context.Context, id string) (*domain.Identity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok || user.IsDeleted() {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	return m.find(func(u *domain.Identity) bool { return u.Email == email })
}

func (m *MockUserStore) GetByCPF(ctx context.Context, cpf string) (*domain.Identity, error) {
	return m.find(func(u *domain.Identity) bool { return u.User != nil && u.User.CPF == cpf })
}

func (m *MockUserStore) GetByPhone(ctx context.Context, phone string) (*domain.Identity, error) {
	return m.find(func(u *domain.Identity) bool { return u.User != nil && u.User.MobilePhone == phone })
}

func (m *MockUserStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok || user.IsDeleted() {
		return domain.ErrNotFound
	}
	now := nowUTC()
	user.DeletedAt = &now
	return nil
}

func (m *MockUserStore) find(match func(*domain.Identity) bool) (*domain.Identity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if !u.IsDeleted() && match(u) {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

// MockStoreStore is an in-memory StoreStore for testing
type MockStoreStore struct {
	mu     sync.RWMutex
	stores map[string]*domain.Identity
}

// NewMockStoreStore creates a new MockStoreStore
func NewMockStoreStore() *MockStoreStore {
	return &MockStoreStore{stores: make(map[string]*domain.Identity)}
}

func (m *MockStoreStore) Save(ctx context.Context, store *domain.Identity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stores[store.ID] = store
	return nil
}

func (m *MockStoreStore) Get(ctx context.Context, id string) (*domain.Identity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	store, ok := m.stores[id]
	if !ok || store.IsDeleted() {
		return nil, domain.ErrNotFound
	}
	return store, nil
}

func (m *MockStoreStore) GetByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	return m.find(func(s *domain.Identity) bool { return s.Email == email })
}

func (m *MockStoreStore) GetByName(ctx context.Context, name string) (*domain.Identity, error) {
	return m.find(func(s *domain.Identity) bool { return s.Store != nil && s.Store.TradeName == name })
}

func (m *MockStoreStore) GetByCNPJ(ctx context.Context, cnpj string) (*domain.Identity, error) {
	return m.find(func(s *domain.Identity) bool { return s.Store != nil && s.Store.CNPJ == cnpj })
}

func (m *MockStoreStore) GetByPhone(ctx context.Context, phone string) (*domain.Identity, error) {
	return m.find(func(s *domain.Identity) bool { return s.Store != nil && s.Store.MobilePhone == phone })
}

func (m *MockStoreStore) ListByOwner(ctx context.Context, userID string) ([]*domain.Identity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Identity
	for _, s := range m.stores {
		if s.IsDeleted() || s.Store == nil || s.Store.OwnerUserID == nil {
			continue
		}
		if *s.Store.OwnerUserID == userID {
			result = append(result, s)
		}
	}
	return result, nil
}

func (m *MockStoreStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	store, ok := m.stores[id]
	if !ok || store.IsDeleted() {
		return domain.ErrNotFound
	}
	now := nowUTC()
	store.DeletedAt = &now
	return nil
}

func (m *MockStoreStore) DeleteByOwner(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := nowUTC()
	for _, s := range m.stores {
		if s.IsDeleted() || s.Store == nil || s.Store.OwnerUserID == nil {
			continue
		}
		if *s.Store.OwnerUserID == userID {
			s.DeletedAt = &now
		}
	}
	return nil
}

func (m *MockStoreStore) find(match func(*domain.Identity) bool) (*domain.Identity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.stores {
		if !s.IsDeleted() && match(s) {
			return s, nil
		}
	}
	return nil, domain.ErrNotFound
}
