package driving

import (
	"context"

	"github.com/mercado-labs/mercado-core/internal/core/domain"
)

// CreateProductRequest represents a new catalog entry. StoreID is required
// only on the user-store flow; the store flow derives it from the token.
type CreateProductRequest struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	StoreID  string `json:"store_id,omitempty"`
}

// UpdateProductRequest represents a product edit. Nil fields are carried
// over from the existing row; a no-op edit fails with ErrNoChange.
type UpdateProductRequest struct {
	ProductID   string  `json:"product_id"`
	NewName     *string `json:"new_name,omitempty"`
	NewPrice    *int64  `json:"new_price,omitempty"`
	NewQuantity *int    `json:"new_quantity,omitempty"`
	StoreID     string  `json:"store_id,omitempty"`
}

// ProductService manages catalogs. Store-owned operations take a store-kind
// token; user-store operations take a user-kind token plus the target store
// id, with ownership enforced.
type ProductService interface {
	// Create adds a product to the authenticated store's catalog
	Create(ctx context.Context, auth *domain.AuthContext, req CreateProductRequest) (*domain.Product, error)

	// CreateForUserStore adds a product to one of the authenticated user's
	// stores
	CreateForUserStore(ctx context.Context, auth *domain.AuthContext, req CreateProductRequest) (*domain.Product, error)

	// Update re-derives a full replacement record for a store product
	Update(ctx context.Context, auth *domain.AuthContext, req UpdateProductRequest) (*domain.Product, error)

	// UpdateForUserStore re-derives a full replacement record for a
	// user-store product
	UpdateForUserStore(ctx context.Context, auth *domain.AuthContext, req UpdateProductRequest) (*domain.Product, error)

	// Delete soft-deletes a product of the authenticated store
	Delete(ctx context.Context, auth *domain.AuthContext, productID string) error

	// DeleteForUserStore soft-deletes a product of one of the user's stores
	DeleteForUserStore(ctx context.Context, auth *domain.AuthContext, productID, storeID string) error

	// Search lists the live products of a store (public)
	Search(ctx context.Context, storeID string) ([]*domain.Product, error)
}
