package driven

import (
	"context"

	"github.com/mercado-labs/mercado-core/internal/core/domain"
)

// UserStore handles user-identity persistence (PostgreSQL).
// Lookups skip soft-deleted rows and fail with domain.ErrNotFound.
type UserStore interface {
	// Save creates or updates a user identity
	Save(ctx context.Context, user *domain.Identity) error

	// Get retrieves a user by ID
	Get(ctx context.Context, id string) (*domain.Identity, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*domain.Identity, error)

	// GetByCPF retrieves a user by document number
	GetByCPF(ctx context.Context, cpf string) (*domain.Identity, error)

	// GetByPhone retrieves a user by mobile phone
	GetByPhone(ctx context.Context, phone string) (*domain.Identity, error)

	// Delete soft-deletes a user
	Delete(ctx context.Context, id string) error
}

// StoreStore handles store-identity persistence (PostgreSQL)
type StoreStore interface {
	// Save creates or updates a store identity
	Save(ctx context.Context, store *domain.Identity) error

	// Get retrieves a store by ID
	Get(ctx context.Context, id string) (*domain.Identity, error)

	// GetByEmail retrieves a store by email
	GetByEmail(ctx context.Context, email string) (*domain.Identity, error)

	// GetByName retrieves a store by its upper-cased trade name
	GetByName(ctx context.Context, name string) (*domain.Identity, error)

	// GetByCNPJ retrieves a store by company document number
	GetByCNPJ(ctx context.Context, cnpj string) (*domain.Identity, error)

	// GetByPhone retrieves a store by mobile phone
	GetByPhone(ctx context.Context, phone string) (*domain.Identity, error)

	// ListByOwner lists the stores created by a user
	ListByOwner(ctx context.Context, userID string) ([]*domain.Identity, error)

	// Delete soft-deletes a store
	Delete(ctx context.Context, id string) error

	// DeleteByOwner soft-deletes every store owned by a user
	DeleteByOwner(ctx context.Context, userID string) error
}
