package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mercado-labs/mercado-core/internal/core/domain"
	"github.com/mercado-labs/mercado-core/internal/core/ports/driven"
	"github.com/mercado-labs/mercado-core/internal/core/ports/driving"
)

// Ensure productService implements ProductService
var _ driving.ProductService = (*productService)(nil)

type productService struct {
	products driven.ProductStore
	stores   driven.StoreStore
	users    driven.UserStore
}

// NewProductService creates a new ProductService
func NewProductService(
	products driven.ProductStore,
	stores driven.StoreStore,
	users driven.UserStore,
) driving.ProductService {
	return &productService{
		products: products,
		stores:   stores,
		users:    users,
	}
}

// Create adds a product to the authenticated store's catalog
func (s *productService) Create(ctx context.Context, auth *domain.AuthContext, req driving.CreateProductRequest) (*domain.Product, error) {
	if err := domain.AssertKind(auth.Kind, domain.KindStore); err != nil {
		return nil, err
	}
	if _, err := s.stores.Get(ctx, auth.IdentityID); err != nil {
		return nil, err
	}
	return s.create(ctx, auth.IdentityID, nil, req)
}

// CreateForUserStore adds a product to one of the authenticated user's
// stores
func (s *productService) CreateForUserStore(ctx context.Context, auth *domain.AuthContext, req driving.CreateProductRequest) (*domain.Product, error) {
	if err := domain.AssertKind(auth.Kind, domain.KindUser); err != nil {
		return nil, err
	}
	store, err := s.stores.Get(ctx, req.StoreID)
	if err != nil {
		return nil, err
	}
	if err := assertStoreOwner(auth, store); err != nil {
		return nil, err
	}
	return s.create(ctx, store.ID, &auth.IdentityID, req)
}

func (s *productService) create(ctx context.Context, storeID string, ownerUserID *string, req driving.CreateProductRequest) (*domain.Product, error) {
	name := domain.NormalizeProductName(req.Name)
	if name == "" || req.Price <= 0 || req.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if _, err := s.products.GetByStoreAndName(ctx, storeID, name); err == nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:          uuid.NewString(),
		StoreID:     storeID,
		OwnerUserID: ownerUserID,
		Name:        name,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Available:   req.Quantity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update re-derives a full replacement record for a store product
func (s *productService) Update(ctx context.Context, auth *domain.AuthContext, req driving.UpdateProductRequest) (*domain.Product, error) {
	if err := domain.AssertKind(auth.Kind, domain.KindStore); err != nil {
		return nil, err
	}
	product, err := s.ownedByStore(ctx, auth.IdentityID, req.ProductID)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, product, req)
}

// UpdateForUserStore re-derives a full replacement record for a user-store
// product
func (s *productService) UpdateForUserStore(ctx context.Context, auth *domain.AuthContext, req driving.UpdateProductRequest) (*domain.Product, error) {
	if err := domain.AssertKind(auth.Kind, domain.KindUser); err != nil {
		return nil, err
	}
	product, err := s.ownedByUser(ctx, auth, req.StoreID, req.ProductID)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, product, req)
}

func (s *productService) update(ctx context.Context, product *domain.Product, req driving.UpdateProductRequest) (*domain.Product, error) {
	next := *product
	if req.NewName != nil {
		name := domain.NormalizeProductName(*req.NewName)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		if name != product.Name {
			if _, err := s.products.GetByStoreAndName(ctx, product.StoreID, name); err == nil {
				return nil, domain.ErrDuplicate
			}
			next.Name = name
		}
	}
	if req.NewPrice != nil {
		if *req.NewPrice <= 0 {
			return nil, domain.ErrInvalidInput
		}
		next.Price = *req.NewPrice
	}
	if req.NewQuantity != nil {
		if *req.NewQuantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		next.Quantity = *req.NewQuantity
	}

	if next.Same(product) {
		return nil, domain.ErrNoChange
	}

	// Restocking resets availability alongside quantity
	next.Available = next.Quantity
	next.UpdatedAt = time.Now().UTC()
	if err := s.products.Save(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

// Delete soft-deletes a product of the authenticated store
func (s *productService) Delete(ctx context.Context, auth *domain.AuthContext, productID string) error {
	if err := domain.AssertKind(auth.Kind, domain.KindStore); err != nil {
		return err
	}
	product, err := s.ownedByStore(ctx, auth.IdentityID, productID)
	if err != nil {
		return err
	}
	return s.products.Delete(ctx, product.ID)
}

// DeleteForUserStore soft-deletes a product of one of the user's stores
func (s *productService) DeleteForUserStore(ctx context.Context, auth *domain.AuthContext, productID, storeID string) error {
	if err := domain.AssertKind(auth.Kind, domain.KindUser); err != nil {
		return err
	}
	product, err := s.ownedByUser(ctx, auth, storeID, productID)
	if err != nil {
		return err
	}
	return s.products.Delete(ctx, product.ID)
}

// Search lists the live products of a store
func (s *productService) Search(ctx context.Context, storeID string) ([]*domain.Product, error) {
	if _, err := s.stores.Get(ctx, storeID); err != nil {
		return nil, err
	}
	return s.products.ListByStore(ctx, storeID)
}

// ownedByStore fetches a product and checks it belongs to the
// authenticated store
func (s *productService) ownedByStore(ctx context.Context, storeID, productID string) (*domain.Product, error) {
	product, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := domain.AssertOwner(storeID, product.StoreID); err != nil {
		return nil, err
	}
	return product, nil
}

// ownedByUser fetches a product and walks the ownership chain: the product
// must belong to the given store and the store to the authenticated user
func (s *productService) ownedByUser(ctx context.Context, auth *domain.AuthContext, storeID, productID string) (*domain.Product, error) {
	store, err := s.stores.Get(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if err := assertStoreOwner(auth, store); err != nil {
		return nil, err
	}
	product, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.StoreID != store.ID {
		return nil, domain.ErrForbidden
	}
	return product, nil
}
