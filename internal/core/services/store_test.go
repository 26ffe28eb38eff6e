package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mercado-labs/mercado-core/internal/core/domain"
	"github.com/mercado-labs/mercado-core/internal/core/ports/driven/mocks"
	"github.com/mercado-labs/mercado-core/internal/core/ports/driving"
)

type storeFixture struct {
	stores   *mocks.MockStoreStore
	users    *mocks.MockUserStore
	products *mocks.MockProductStore
	adapter  *mocks.MockAuthAdapter
	svc      driving.StoreService
}

func newStoreFixture() *storeFixture {
	f := &storeFixture{
		stores:   mocks.NewMockStoreStore(),
		users:    mocks.NewMockUserStore(),
		products: mocks.NewMockProductStore(),
		adapter:  mocks.NewMockAuthAdapter(),
	}
	f.svc = NewStoreService(f.stores, f.users, f.products, f.adapter, mocks.NewMockAddressResolver())
	return f
}

func validStoreRequest() driving.CreateStoreRequest {
	return driving.CreateStoreRequest{
		Email:       "vendas@acme.com.br",
		Password:    "secret456",
		LegalName:   "acme comercio ltda",
		TradeName:   "acme",
		CNPJ:        "11.222.333/0001-81",
		CEP:         "01310-100",
		Number:      "2000",
		MobilePhone: "11912345678",
	}
}

// seedOwnedUser puts a complete user in the store so CreateByUser has
// something to inherit from
func seedOwnedUser(t *testing.T, users *mocks.MockUserStore) *domain.Identity {
	t.Helper()
	user := &domain.Identity{
		ID:           "user-1",
		Kind:         domain.KindUser,
		Email:        "maria@example.com",
		PasswordHash: "secret123",
		User: &domain.UserProfile{
			Name:        "MARIA SILVA",
			CPF:         "52998224725",
			Birthdate:   time.Date(1990, 12, 5, 0, 0, 0, 0, time.UTC),
			MobilePhone: "11987654321",
			Address: domain.Address{
				CEP: "01310100", Street: "Avenida Paulista", Number: "1000",
				Neighborhood: "Bela Vista", City: "São Paulo", State: "SP",
			},
		},
	}
	if err := users.Save(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func TestStoreService_Create(t *testing.T) {
	ctx := context.Background()
	f := newStoreFixture()

	store, err := f.svc.Create(ctx, validStoreRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.Kind != domain.KindStore {
		t.Errorf("expected store kind, got %s", store.Kind)
	}
	if store.Store.TradeName != "ACME" || store.Store.LegalName != "ACME COMERCIO LTDA" {
		t.Errorf("expected uppercased names, got %q / %q", store.Store.TradeName, store.Store.LegalName)
	}
	if store.Store.CNPJ != "11222333000181" {
		t.Errorf("expected normalized CNPJ, got %q", store.Store.CNPJ)
	}
	if store.Store.OwnerUserID != nil {
		t.Error("standalone store must not have an owner")
	}
}

func TestStoreService_CreateDuplicates(t *testing.T) {
	ctx := context.Background()
	f := newStoreFixture()
	seedOwnedUser(t, f.users)

	if _, err := f.svc.Create(ctx, validStoreRequest()); err != nil {
		t.Fatalf("seed signup failed: %v", err)
	}

	fresh := func() driving.CreateStoreRequest {
		req := validStoreRequest()
		req.Email = "other@acme.com.br"
		req.TradeName = "other trade"
		req.CNPJ = "11.444.777/0001-61"
		req.MobilePhone = "11955554444"
		return req
	}

	tests := []struct {
		name   string
		mutate func(*driving.CreateStoreRequest)
	}{
		{"trade name taken", func(r *driving.CreateStoreRequest) { r.TradeName = "Acme" }},
		{"cnpj taken", func(r *driving.CreateStoreRequest) { r.CNPJ = "11222333000181" }},
		{"email taken by a store", func(r *driving.CreateStoreRequest) { r.Email = "vendas@acme.com.br" }},
		{"email taken by a user", func(r *driving.CreateStoreRequest) { r.Email = "maria@example.com" }},
		{"phone taken by a store", func(r *driving.CreateStoreRequest) { r.MobilePhone = "11912345678" }},
		{"phone taken by a user", func(r *driving.CreateStoreRequest) { r.MobilePhone = "11987654321" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := fresh()
			tt.mutate(&req)
			if _, err := f.svc.Create(ctx, req); !errors.Is(err, domain.ErrDuplicate) {
				t.Errorf("expected ErrDuplicate, got %v", err)
			}
		})
	}

	t.Run("invalid cnpj", func(t *testing.T) {
		req := fresh()
		req.CNPJ = "11222333000199"
		if _, err := f.svc.Create(ctx, req); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestStoreService_CreateByUser(t *testing.T) {
	ctx := context.Background()
	f := newStoreFixture()
	user := seedOwnedUser(t, f.users)
	auth := userAuth(user.ID)

	store, err := f.svc.CreateByUser(ctx, auth, driving.CreateStoreByUserRequest{
		Email:     "loja.maria@example.com",
		TradeName: "loja da maria",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if store.Store.OwnerUserID == nil || *store.Store.OwnerUserID != user.ID {
		t.Fatal("expected the store to be owned by the user")
	}
	if store.Store.TradeName != "LOJA DA MARIA" {
		t.Errorf("expected uppercased trade name, got %q", store.Store.TradeName)
	}
	if store.Store.CPF != user.User.CPF {
		t.Error("expected the owner's CPF to be inherited")
	}
	if store.Store.MobilePhone != user.User.MobilePhone {
		t.Error("expected the owner's phone to be inherited")
	}
	if store.Store.Address != user.User.Address {
		t.Error("expected the owner's address to be inherited")
	}
	if store.PasswordHash != user.PasswordHash {
		t.Error("expected the owner's password hash to be shared")
	}
}

func TestStoreService_CreateByUserRejections(t *testing.T) {
	ctx := context.Background()
	f := newStoreFixture()
	user := seedOwnedUser(t, f.users)
	auth := userAuth(user.ID)

	t.Run("store token rejected", func(t *testing.T) {
		bad := &domain.AuthContext{IdentityID: user.ID, Kind: domain.KindStore}
		if _, err := f.svc.CreateByUser(ctx, bad, driving.CreateStoreByUserRequest{Email: "x@y.com", TradeName: "x"}); !errors.Is(err, domain.ErrWrongAccountKind) {
			t.Errorf("expected ErrWrongAccountKind, got %v", err)
		}
	})

	t.Run("email required", func(t *testing.T) {
		if _, err := f.svc.CreateByUser(ctx, auth, driving.CreateStoreByUserRequest{TradeName: "x"}); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("owner email rejected", func(t *testing.T) {
		req := driving.CreateStoreByUserRequest{Email: user.Email, TradeName: "x"}
		if _, err := f.svc.CreateByUser(ctx, auth, req); !errors.Is(err, domain.ErrDuplicate) {
			t.Errorf("expected ErrDuplicate, got %v", err)
		}
	})
}

func TestStoreService_GetUserStores(t *testing.T) {
	ctx := context.Background()
	f := newStoreFixture()
	user := seedOwnedUser(t, f.users)
	auth := userAuth(user.ID)

	owned, err := f.svc.CreateByUser(ctx, auth, driving.CreateStoreByUserRequest{Email: "loja@example.com", TradeName: "loja"})
	if err != nil {
		t.Fatalf("failed to create owned store: %v", err)
	}
	standalone, err := f.svc.Create(ctx, validStoreRequest())
	if err != nil {
		t.Fatalf("failed to create standalone store: %v", err)
	}

	t.Run("list", func(t *testing.T) {
		list, err := f.svc.GetUserStores(ctx, auth, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(list) != 1 || list[0].ID != owned.ID {
			t.Errorf("expected just the owned store, got %d entries", len(list))
		}
	})

	t.Run("by id", func(t *testing.T) {
		list, err := f.svc.GetUserStores(ctx, auth, owned.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(list) != 1 || list[0].ID != owned.ID {
			t.Error("expected the owned store")
		}
	})

	t.Run("standalone store forbidden", func(t *testing.T) {
		if _, err := f.svc.GetUserStores(ctx, auth, standalone.ID); !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("someone else's store forbidden", func(t *testing.T) {
		other := userAuth("user-2")
		if _, err := f.svc.GetUserStores(ctx, other, owned.ID); !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})
}

func TestStoreService_Update(t *testing.T) {
	ctx := context.Background()
	f := newStoreFixture()
	store, err := f.svc.Create(ctx, validStoreRequest())
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	auth := &domain.AuthContext{IdentityID: store.ID, Kind: domain.KindStore}

	t.Run("no-op edit rejected", func(t *testing.T) {
		name := "ACME"
		if _, err := f.svc.Update(ctx, auth, driving.UpdateStoreRequest{NewTradeName: &name}); !errors.Is(err, domain.ErrNoChange) {
			t.Errorf("expected ErrNoChange, got %v", err)
		}
	})

	t.Run("password change requires current password", func(t *testing.T) {
		pass := "newSecret789"
		if _, err := f.svc.Update(ctx, auth, driving.UpdateStoreRequest{NewPassword: &pass}); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("trade name change", func(t *testing.T) {
		name := "acme express"
		updated, err := f.svc.Update(ctx, auth, driving.UpdateStoreRequest{NewTradeName: &name})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Store.TradeName != "ACME EXPRESS" {
			t.Errorf("expected uppercased trade name, got %q", updated.Store.TradeName)
		}
	})
}

func TestStoreService_Delete(t *testing.T) {
	ctx := context.Background()
	f := newStoreFixture()
	store, err := f.svc.Create(ctx, validStoreRequest())
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	auth := &domain.AuthContext{IdentityID: store.ID, Kind: domain.KindStore}

	product := &domain.Product{ID: "prod-1", StoreID: store.ID, Name: "SHOE", Price: 9900, Quantity: 2, Available: 2}
	if err := f.products.Save(ctx, product); err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}

	if err := f.svc.Delete(ctx, auth); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.stores.Get(ctx, store.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Error("store should be soft-deleted")
	}
	if _, err := f.products.Get(ctx, "prod-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Error("catalog should be cascaded")
	}
}

func TestStoreService_DeleteUserStore(t *testing.T) {
	ctx := context.Background()
	f := newStoreFixture()
	user := seedOwnedUser(t, f.users)
	auth := userAuth(user.ID)

	owned, err := f.svc.CreateByUser(ctx, auth, driving.CreateStoreByUserRequest{Email: "loja@example.com", TradeName: "loja"})
	if err != nil {
		t.Fatalf("failed to create owned store: %v", err)
	}

	if err := f.svc.DeleteUserStore(ctx, userAuth("user-2"), owned.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for a non-owner, got %v", err)
	}
	if err := f.svc.DeleteUserStore(ctx, auth, owned.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.stores.Get(ctx, owned.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Error("store should be soft-deleted")
	}
}

func TestStoreService_Search(t *testing.T) {
	ctx := context.Background()
	f := newStoreFixture()
	store, err := f.svc.Create(ctx, validStoreRequest())
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	got, err := f.svc.Search(ctx, store.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != store.ID {
		t.Errorf("expected %s, got %s", store.ID, got.ID)
	}
	if _, err := f.svc.Search(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
