package services

import (
	"context"
	"errors"
	"testing"

	"github.com/mercado-labs/mercado-core/internal/core/domain"
	"github.com/mercado-labs/mercado-core/internal/core/ports/driven/mocks"
	"github.com/mercado-labs/mercado-core/internal/core/ports/driving"
)

func newCartFixture(t *testing.T) (driving.CartService, *mocks.MockProductStore, *domain.AuthContext) {
	t.Helper()
	ctx := context.Background()
	carts := mocks.NewMockCartStore()
	products := mocks.NewMockProductStore()

	if err := carts.Create(ctx, &domain.Cart{ID: "cart-1", UserID: "user-1"}); err != nil {
		t.Fatalf("failed to seed cart: %v", err)
	}
	if err := products.Save(ctx, &domain.Product{ID: "prod-1", StoreID: "store-1", Name: "SHOE", Price: 9900, Quantity: 5, Available: 5}); err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}

	return NewCartService(carts, products), products, userAuth("user-1")
}

func TestCartService_Get(t *testing.T) {
	ctx := context.Background()
	svc, _, auth := newCartFixture(t)

	cart, err := svc.Get(ctx, auth)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.UserID != "user-1" || len(cart.Items) != 0 {
		t.Errorf("expected an empty cart for user-1, got %+v", cart)
	}

	if _, err := svc.Get(ctx, &domain.AuthContext{IdentityID: "store-1", Kind: domain.KindStore}); !errors.Is(err, domain.ErrWrongAccountKind) {
		t.Errorf("expected ErrWrongAccountKind, got %v", err)
	}
}

func TestCartService_AddProduct(t *testing.T) {
	ctx := context.Background()
	svc, _, auth := newCartFixture(t)

	cart, err := svc.AddProduct(ctx, auth, "prod-1", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 2 {
		t.Fatalf("expected one item with quantity 2, got %+v", cart.Items)
	}

	t.Run("adding again accumulates", func(t *testing.T) {
		cart, err := svc.AddProduct(ctx, auth, "prod-1", 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cart.Items) != 1 || cart.Items[0].Quantity != 5 {
			t.Errorf("expected a single item with quantity 5, got %+v", cart.Items)
		}
	})

	t.Run("exceeding availability rejected", func(t *testing.T) {
		if _, err := svc.AddProduct(ctx, auth, "prod-1", 1); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("unknown product", func(t *testing.T) {
		if _, err := svc.AddProduct(ctx, auth, "missing", 1); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("zero quantity defaults to one", func(t *testing.T) {
		svc2, _, auth2 := newCartFixture(t)
		cart, err := svc2.AddProduct(ctx, auth2, "prod-1", 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cart.Items[0].Quantity != 1 {
			t.Errorf("expected quantity 1, got %d", cart.Items[0].Quantity)
		}
	})
}

func TestCartService_Clear(t *testing.T) {
	ctx := context.Background()
	svc, _, auth := newCartFixture(t)

	if _, err := svc.AddProduct(ctx, auth, "prod-1", 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	cart, err := svc.Clear(ctx, auth)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Errorf("expected an empty cart, got %d items", len(cart.Items))
	}
}
