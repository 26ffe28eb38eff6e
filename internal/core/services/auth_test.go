package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mercado-labs/mercado-core/internal/core/domain"
	"github.com/mercado-labs/mercado-core/internal/core/ports/driven/mocks"
)

func seedUser(t *testing.T, users *mocks.MockUserStore, id, email, password string) *domain.Identity {
	t.Helper()
	user := &domain.Identity{
		ID:           id,
		Kind:         domain.KindUser,
		Email:        email,
		PasswordHash: password, // mock adapter compares plain text
		User:         &domain.UserProfile{Name: "MARIA SILVA"},
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	if err := users.Save(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedStore(t *testing.T, stores *mocks.MockStoreStore, id, email, password string) *domain.Identity {
	t.Helper()
	store := &domain.Identity{
		ID:           id,
		Kind:         domain.KindStore,
		Email:        email,
		PasswordHash: password,
		Store:        &domain.StoreProfile{LegalName: "ACME LTDA", TradeName: "ACME"},
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	if err := stores.Save(context.Background(), store); err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}
	return store
}

func TestAuthService_LoginUser(t *testing.T) {
	ctx := context.Background()
	users := mocks.NewMockUserStore()
	stores := mocks.NewMockStoreStore()
	adapter := mocks.NewMockAuthAdapter()
	svc := NewAuthService(users, stores, adapter)

	seedUser(t, users, "user-1", "maria@example.com", "secret123")
	seedStore(t, stores, "store-1", "acme@example.com", "secret456")

	tests := []struct {
		name    string
		email   string
		pass    string
		wantErr error
	}{
		{"success", "maria@example.com", "secret123", nil},
		{"unknown email", "nobody@example.com", "secret123", domain.ErrNotFound},
		{"store email on user login", "acme@example.com", "secret456", domain.ErrNotFound},
		{"wrong password", "maria@example.com", "wrong", domain.ErrInvalidCredentials},
		{"empty email", "", "secret123", domain.ErrInvalidInput},
		{"empty password", "maria@example.com", "", domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.LoginUser(ctx, domain.LoginRequest{Email: tt.email, Password: tt.pass})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.AccessToken == "" || resp.RefreshToken == "" {
				t.Error("expected both tokens to be issued")
			}
			if !resp.ExpiresAt.After(time.Now()) {
				t.Errorf("expected future expiry, got %v", resp.ExpiresAt)
			}
		})
	}
}

func TestAuthService_LoginStore(t *testing.T) {
	ctx := context.Background()
	users := mocks.NewMockUserStore()
	stores := mocks.NewMockStoreStore()
	adapter := mocks.NewMockAuthAdapter()
	svc := NewAuthService(users, stores, adapter)

	seedStore(t, stores, "store-1", "acme@example.com", "secret456")

	resp, err := svc.LoginStore(ctx, domain.LoginRequest{Email: "acme@example.com", Password: "secret456"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := adapter.ParseToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("failed to parse issued token: %v", err)
	}
	if claims.IdentityID != "store-1" {
		t.Errorf("expected token bound to store-1, got %s", claims.IdentityID)
	}
	if claims.Kind != domain.KindStore {
		t.Errorf("expected store kind, got %s", claims.Kind)
	}

	// A store's email must not work on the user login route
	if _, err := svc.LoginUser(ctx, domain.LoginRequest{Email: "acme@example.com", Password: "secret456"}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAuthService_Rotate(t *testing.T) {
	ctx := context.Background()
	users := mocks.NewMockUserStore()
	stores := mocks.NewMockStoreStore()
	adapter := mocks.NewMockAuthAdapter()
	svc := NewAuthService(users, stores, adapter)

	seedUser(t, users, "user-1", "maria@example.com", "secret123")

	resp, err := svc.LoginUser(ctx, domain.LoginRequest{Email: "maria@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	pair := domain.TokenPair{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}

	auth, err := svc.Rotate(ctx, pair)
	if err != nil {
		t.Fatalf("rotate failed: %v", err)
	}
	if auth.IdentityID != "user-1" || auth.Kind != domain.KindUser {
		t.Errorf("expected user-1/user context, got %s/%s", auth.IdentityID, auth.Kind)
	}
	if auth.Pair.AccessToken == pair.AccessToken || auth.Pair.RefreshToken == pair.RefreshToken {
		t.Error("expected a fresh pair, got the supplied tokens back")
	}

	// The fresh pair must itself rotate
	if _, err := svc.Rotate(ctx, auth.Pair); err != nil {
		t.Errorf("fresh pair failed to rotate: %v", err)
	}
}

func TestAuthService_RotateRejections(t *testing.T) {
	ctx := context.Background()
	users := mocks.NewMockUserStore()
	stores := mocks.NewMockStoreStore()
	adapter := mocks.NewMockAuthAdapter()
	svc := NewAuthService(users, stores, adapter)

	userPair, err := adapter.IssuePair("user-1", domain.KindUser)
	if err != nil {
		t.Fatalf("failed to issue pair: %v", err)
	}
	otherPair, err := adapter.IssuePair("user-2", domain.KindUser)
	if err != nil {
		t.Fatalf("failed to issue pair: %v", err)
	}

	tests := []struct {
		name    string
		pair    domain.TokenPair
		wantErr error
	}{
		{
			name:    "missing refresh token",
			pair:    domain.TokenPair{AccessToken: userPair.AccessToken},
			wantErr: domain.ErrTokenInvalid,
		},
		{
			name:    "access token in the refresh slot",
			pair:    domain.TokenPair{RefreshToken: userPair.AccessToken},
			wantErr: domain.ErrTokenInvalid,
		},
		{
			name:    "garbage refresh token",
			pair:    domain.TokenPair{RefreshToken: "!!!not-a-token!!!"},
			wantErr: domain.ErrTokenMalformed,
		},
		{
			name:    "mismatched identities",
			pair:    domain.TokenPair{AccessToken: otherPair.AccessToken, RefreshToken: userPair.RefreshToken},
			wantErr: domain.ErrTokenInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Rotate(ctx, tt.pair); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestAuthService_RotateExpiredRefresh(t *testing.T) {
	ctx := context.Background()
	adapter := mocks.NewMockAuthAdapter()
	svc := NewAuthService(mocks.NewMockUserStore(), mocks.NewMockStoreStore(), adapter)

	pair, err := adapter.IssuePair("user-1", domain.KindUser)
	if err != nil {
		t.Fatalf("failed to issue pair: %v", err)
	}

	adapter.Now = func() time.Time { return time.Now().Add(8 * 24 * time.Hour) }

	if _, err := svc.Rotate(ctx, domain.TokenPair{RefreshToken: pair.RefreshToken}); !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestAuthService_RotateExpiredAccessStillRotates(t *testing.T) {
	// The refresh token is the source of truth; a dead access token
	// alongside a live refresh token must not block rotation.
	ctx := context.Background()
	adapter := mocks.NewMockAuthAdapter()
	adapter.AccessTTL = time.Minute
	svc := NewAuthService(mocks.NewMockUserStore(), mocks.NewMockStoreStore(), adapter)

	pair, err := adapter.IssuePair("user-1", domain.KindUser)
	if err != nil {
		t.Fatalf("failed to issue pair: %v", err)
	}

	adapter.Now = func() time.Time { return time.Now().Add(time.Hour) }

	auth, err := svc.Rotate(ctx, pair)
	if err != nil {
		t.Fatalf("rotate failed: %v", err)
	}
	if auth.IdentityID != "user-1" {
		t.Errorf("expected user-1, got %s", auth.IdentityID)
	}
}

func TestAuthService_ReplayGuard(t *testing.T) {
	ctx := context.Background()
	adapter := mocks.NewMockAuthAdapter()

	t.Run("disabled allows replay", func(t *testing.T) {
		svc := NewAuthService(mocks.NewMockUserStore(), mocks.NewMockStoreStore(), adapter)
		pair, _ := adapter.IssuePair("user-1", domain.KindUser)
		if _, err := svc.Rotate(ctx, pair); err != nil {
			t.Fatalf("first rotation failed: %v", err)
		}
		if _, err := svc.Rotate(ctx, pair); err != nil {
			t.Errorf("replay should succeed without a guard, got %v", err)
		}
	})

	t.Run("enabled rejects replay", func(t *testing.T) {
		guard := mocks.NewMockReplayGuard()
		svc := NewAuthServiceWithReplayGuard(mocks.NewMockUserStore(), mocks.NewMockStoreStore(), adapter, guard)
		pair, _ := adapter.IssuePair("user-1", domain.KindUser)
		if _, err := svc.Rotate(ctx, pair); err != nil {
			t.Fatalf("first rotation failed: %v", err)
		}
		if _, err := svc.Rotate(ctx, pair); !errors.Is(err, domain.ErrTokenInvalid) {
			t.Errorf("expected ErrTokenInvalid on replay, got %v", err)
		}
	})
}
