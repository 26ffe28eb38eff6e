package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/mercado-labs/mercado-core/internal/core/domain"
)

func TestNewAdapter(t *testing.T) {
	adapter := NewAdapter("test-secret")
	if adapter == nil {
		t.Fatal("expected non-nil adapter")
	}
	if string(adapter.jwtSecret) != "test-secret" {
		t.Error("expected jwt secret to be set")
	}
	if adapter.accessTTL != DefaultAccessTTL || adapter.refreshTTL != DefaultRefreshTTL {
		t.Error("expected default TTLs")
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	adapter := NewAdapterWithCost("secret", 4) // Low cost for faster tests

	hash, err := adapter.HashPassword("mypassword")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if hash == "" || hash == "mypassword" {
		t.Error("expected a non-empty hash distinct from the plaintext")
	}

	if !adapter.VerifyPassword("mypassword", hash) {
		t.Error("expected verification of the correct password to succeed")
	}
	if adapter.VerifyPassword("wrongpassword", hash) {
		t.Error("expected verification of a wrong password to fail")
	}
	if adapter.VerifyPassword("mypassword", "not-a-valid-hash") {
		t.Error("expected verification against an invalid hash to fail")
	}
}

func TestIssuePair_RoundTrip(t *testing.T) {
	adapter := NewAdapter("test-jwt-secret")

	for _, kind := range []domain.IdentityKind{domain.KindUser, domain.KindStore} {
		pair, err := adapter.IssuePair("id-123", kind)
		if err != nil {
			t.Fatalf("failed to issue pair: %v", err)
		}
		if pair.AccessToken == "" || pair.RefreshToken == "" {
			t.Fatal("expected both tokens to be minted")
		}
		if pair.AccessToken == pair.RefreshToken {
			t.Error("access and refresh tokens should differ")
		}

		access, err := adapter.ParseToken(pair.AccessToken)
		if err != nil {
			t.Fatalf("failed to parse access token: %v", err)
		}
		if access.IdentityID != "id-123" || access.Kind != kind {
			t.Errorf("access claims = (%s, %s), want (id-123, %s)", access.IdentityID, access.Kind, kind)
		}
		if access.Use != domain.UseAccess {
			t.Errorf("expected token_use=access, got %s", access.Use)
		}

		refresh, err := adapter.ParseToken(pair.RefreshToken)
		if err != nil {
			t.Fatalf("failed to parse refresh token: %v", err)
		}
		if refresh.IdentityID != "id-123" || refresh.Kind != kind {
			t.Errorf("refresh claims = (%s, %s), want (id-123, %s)", refresh.IdentityID, refresh.Kind, kind)
		}
		if refresh.Use != domain.UseRefresh {
			t.Errorf("expected token_use=refresh, got %s", refresh.Use)
		}
		if refresh.JTI == "" || refresh.JTI == access.JTI {
			t.Error("expected distinct non-empty jti per token")
		}
	}
}

func TestIssuePair_TokenShape(t *testing.T) {
	adapter := NewAdapter("test-jwt-secret")

	pair, err := adapter.IssuePair("id-123", domain.KindUser)
	if err != nil {
		t.Fatalf("failed to issue pair: %v", err)
	}

	// Three base64url segments
	if got := len(strings.Split(pair.AccessToken, ".")); got != 3 {
		t.Errorf("expected 3 token segments, got %d", got)
	}
}

func TestParseToken_Expiry(t *testing.T) {
	adapter := NewAdapterWithTTL("test-jwt-secret", 15*time.Minute, 24*time.Hour)

	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	adapter.now = func() time.Time { return issuedAt }

	pair, err := adapter.IssuePair("id-123", domain.KindUser)
	if err != nil {
		t.Fatalf("failed to issue pair: %v", err)
	}

	// Just before the access TTL the token still verifies
	adapter.now = func() time.Time { return issuedAt.Add(14 * time.Minute) }
	if _, err := adapter.ParseToken(pair.AccessToken); err != nil {
		t.Errorf("token should still verify before expiry, got %v", err)
	}

	// At and after the TTL it is expired
	adapter.now = func() time.Time { return issuedAt.Add(16 * time.Minute) }
	if _, err := adapter.ParseToken(pair.AccessToken); err != domain.ErrTokenExpired {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}

	// The refresh token outlives the access token
	if _, err := adapter.ParseToken(pair.RefreshToken); err != nil {
		t.Errorf("refresh token should still verify, got %v", err)
	}
	adapter.now = func() time.Time { return issuedAt.Add(25 * time.Hour) }
	if _, err := adapter.ParseToken(pair.RefreshToken); err != domain.ErrTokenExpired {
		t.Errorf("expected ErrTokenExpired for refresh token, got %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	issuer := NewAdapter("secret-one")
	verifier := NewAdapter("secret-two")

	pair, _ := issuer.IssuePair("id-123", domain.KindUser)

	if _, err := verifier.ParseToken(pair.AccessToken); err != domain.ErrTokenInvalid {
		t.Errorf("expected ErrTokenInvalid for wrong secret, got %v", err)
	}
}

func TestParseToken_Malformed(t *testing.T) {
	adapter := NewAdapter("test-jwt-secret")

	for _, tok := range []string{"", "garbage", "a.b", "not.a.jwt"} {
		if _, err := adapter.ParseToken(tok); err != domain.ErrTokenMalformed {
			t.Errorf("ParseToken(%q) = %v, want ErrTokenMalformed", tok, err)
		}
	}
}
