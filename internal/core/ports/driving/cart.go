package driving

import (
	"context"

	"github.com/mercado-labs/mercado-core/internal/core/domain"
)

// CartService manages the authenticated user's cart (user-kind only).
// Carts are created with the account; there is no create operation here.
type CartService interface {
	// Get retrieves the cart
	Get(ctx context.Context, auth *domain.AuthContext) (*domain.Cart, error)

	// AddProduct puts quantity units of a product into the cart, bounded by
	// the product's availability. Adding an already-present product raises
	// its quantity.
	AddProduct(ctx context.Context, auth *domain.AuthContext, productID string, quantity int) (*domain.Cart, error)

	// Clear empties the cart
	Clear(ctx context.Context, auth *domain.AuthContext) (*domain.Cart, error)
}
