package driven

import (
	"context"

	"github.com/mercado-labs/mercado-core/internal/core/domain"
)

// ProductStore handles product persistence (PostgreSQL).
// Lookups skip soft-deleted rows and fail with domain.ErrNotFound.
type ProductStore interface {
	// Save creates or fully replaces a product
	Save(ctx context.Context, product *domain.Product) error

	// Get retrieves a product by ID
	Get(ctx context.Context, id string) (*domain.Product, error)

	// GetByStoreAndName retrieves a product by its normalized name within a
	// store scope; used for the per-owner uniqueness check
	GetByStoreAndName(ctx context.Context, storeID, name string) (*domain.Product, error)

	// ListByStore lists the live products of a store
	ListByStore(ctx context.Context, storeID string) ([]*domain.Product, error)

	// Delete soft-deletes a product
	Delete(ctx context.Context, id string) error

	// DeleteByStore soft-deletes every product of a store
	DeleteByStore(ctx context.Context, storeID string) error

	// DeleteByOwnerUser soft-deletes every product of a user's stores
	DeleteByOwnerUser(ctx context.Context, userID string) error
}

// CartStore handles cart persistence (PostgreSQL)
type CartStore interface {
	// Create creates the empty cart that accompanies a new user
	Create(ctx context.Context, cart *domain.Cart) error

	// GetByUser retrieves a user's cart
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)

	// SetItems replaces the cart's item set
	SetItems(ctx context.Context, cartID string, items []domain.CartItem) error

	// DeleteByUser removes a user's cart and its items
	DeleteByUser(ctx context.Context, userID string) error
}
