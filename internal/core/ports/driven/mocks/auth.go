package mocks

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/mercado-labs/mercado-core/internal/core/domain"
	"github.com/mercado-labs/mercado-core/internal/core/ports/driven"
)

// Ensure MockAuthAdapter implements AuthAdapter
var _ driven.AuthAdapter = (*MockAuthAdapter)(nil)

// MockAuthAdapter is a mock implementation of AuthAdapter for testing.
// It uses plain text password comparison and base64-encoded JSON for tokens.
// NOT secure - only for testing.
type MockAuthAdapter struct {
	seq        atomic.Int64
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// Now is swappable for expiry tests
	Now func() time.Time
}

// NewMockAuthAdapter creates a new MockAuthAdapter
func NewMockAuthAdapter() *MockAuthAdapter {
	return &MockAuthAdapter{
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
		Now:        time.Now,
	}
}

// HashPassword returns the password as-is (for testing only)
func (m *MockAuthAdapter) HashPassword(password string) (string, error) {
	return password, nil
}

// VerifyPassword compares password with hash directly (for testing only)
func (m *MockAuthAdapter) VerifyPassword(password, hash string) bool {
	return password == hash
}

// IssuePair mints a pair of base64-encoded JSON tokens
func (m *MockAuthAdapter) IssuePair(identityID string, kind domain.IdentityKind) (domain.TokenPair, error) {
	access, err := m.encode(identityID, kind, domain.UseAccess, m.AccessTTL)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := m.encode(identityID, kind, domain.UseRefresh, m.RefreshTTL)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (m *MockAuthAdapter) encode(identityID string, kind domain.IdentityKind, use domain.TokenUse, ttl time.Duration) (string, error) {
	now := m.Now()
	claims := domain.TokenClaims{
		IdentityID: identityID,
		Kind:       kind,
		Use:        use,
		JTI:        fmt.Sprintf("jti-%d", m.seq.Add(1)),
		IssuedAt:   now.Unix(),
		ExpiresAt:  now.Add(ttl).Unix(),
	}
	data, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("failed to marshal claims: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// ParseToken decodes a base64-encoded JSON token and returns claims
func (m *MockAuthAdapter) ParseToken(token string) (*domain.TokenClaims, error) {
	data, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, domain.ErrTokenMalformed
	}

	var claims domain.TokenClaims
	if err := json.Unmarshal(data, &claims); err != nil {
		return nil, domain.ErrTokenMalformed
	}
	if claims.Expired(m.Now()) {
		return nil, domain.ErrTokenExpired
	}

	return &claims, nil
}
