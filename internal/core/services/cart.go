package services

import (
	"context"

	"github.com/mercado-labs/mercado-core/internal/core/domain"
	"github.com/mercado-labs/mercado-core/internal/core/ports/driven"
	"github.com/mercado-labs/mercado-core/internal/core/ports/driving"
)

// Ensure cartService implements CartService
var _ driving.CartService = (*cartService)(nil)

type cartService struct {
	carts    driven.CartStore
	products driven.ProductStore
}

// NewCartService creates a new CartService
func NewCartService(carts driven.CartStore, products driven.ProductStore) driving.CartService {
	return &cartService{carts: carts, products: products}
}

// Get retrieves the authenticated user's cart
func (s *cartService) Get(ctx context.Context, auth *domain.AuthContext) (*domain.Cart, error) {
	if err := domain.AssertKind(auth.Kind, domain.KindUser); err != nil {
		return nil, err
	}
	return s.carts.GetByUser(ctx, auth.IdentityID)
}

// AddProduct puts quantity units of a product into the cart. Adding a
// product already present raises its quantity; the sum is bounded by the
// product's availability.
func (s *cartService) AddProduct(ctx context.Context, auth *domain.AuthContext, productID string, quantity int) (*domain.Cart, error) {
	if err := domain.AssertKind(auth.Kind, domain.KindUser); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		quantity = 1
	}

	cart, err := s.carts.GetByUser(ctx, auth.IdentityID)
	if err != nil {
		return nil, err
	}
	product, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	items := make([]domain.CartItem, len(cart.Items))
	copy(items, cart.Items)

	total := quantity
	found := false
	for i := range items {
		if items[i].ProductID == productID {
			total += items[i].Quantity
			items[i].Quantity = total
			found = true
			break
		}
	}
	if total > product.Available {
		return nil, domain.ErrInvalidInput
	}
	if !found {
		items = append(items, domain.CartItem{ProductID: productID, Quantity: quantity})
	}

	if err := s.carts.SetItems(ctx, cart.ID, items); err != nil {
		return nil, err
	}
	cart.Items = items
	return cart, nil
}

// Clear empties the cart
func (s *cartService) Clear(ctx context.Context, auth *domain.AuthContext) (*domain.Cart, error) {
	if err := domain.AssertKind(auth.Kind, domain.KindUser); err != nil {
		return nil, err
	}
	cart, err := s.carts.GetByUser(ctx, auth.IdentityID)
	if err != nil {
		return nil, err
	}
	if err := s.carts.SetItems(ctx, cart.ID, nil); err != nil {
		return nil, err
	}
	cart.Items = nil
	return cart, nil
}
