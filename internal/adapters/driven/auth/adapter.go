package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mercado-labs/mercado-core/internal/core/domain"
	"github.com/mercado-labs/mercado-core/internal/core/ports/driven"
)

// Ensure Adapter implements AuthAdapter
var _ driven.AuthAdapter = (*Adapter)(nil)

const (
	// DefaultAccessTTL is the lifetime of an access token
	DefaultAccessTTL = 15 * time.Minute
	// DefaultRefreshTTL is the lifetime of a refresh token
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

// jwtClaims wraps domain.TokenClaims for JWT compatibility
type jwtClaims struct {
	Kind domain.IdentityKind `json:"kind"`
	Use  domain.TokenUse     `json:"token_use"`
	jwt.RegisteredClaims
}

// Adapter mints and verifies the self-contained token pairs and hashes
// passwords. The signing secret is process-wide configuration, fixed at
// construction.
type Adapter struct {
	jwtSecret  []byte
	bcryptCost int
	accessTTL  time.Duration
	refreshTTL time.Duration

	// now is swappable for expiry-boundary tests
	now func() time.Time
}

// NewAdapter creates an auth adapter with default TTLs and bcrypt cost
func NewAdapter(jwtSecret string) *Adapter {
	return NewAdapterWithTTL(jwtSecret, DefaultAccessTTL, DefaultRefreshTTL)
}

// NewAdapterWithCost creates an auth adapter with a custom bcrypt cost
func NewAdapterWithCost(jwtSecret string, bcryptCost int) *Adapter {
	a := NewAdapter(jwtSecret)
	a.bcryptCost = bcryptCost
	return a
}

// NewAdapterWithTTL creates an auth adapter with explicit token lifetimes
func NewAdapterWithTTL(jwtSecret string, accessTTL, refreshTTL time.Duration) *Adapter {
	return &Adapter{
		jwtSecret:  []byte(jwtSecret),
		bcryptCost: bcrypt.DefaultCost,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// HashPassword generates a bcrypt hash from a plaintext password
func (a *Adapter) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks if a password matches a bcrypt hash
func (a *Adapter) VerifyPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// IssuePair mints the access/refresh pair for an identity. Both tokens
// carry the identity id, kind and a fresh jti; only the TTL and token_use
// differ.
func (a *Adapter) IssuePair(identityID string, kind domain.IdentityKind) (domain.TokenPair, error) {
	access, err := a.sign(identityID, kind, domain.UseAccess, a.accessTTL)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := a.sign(identityID, kind, domain.UseRefresh, a.refreshTTL)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (a *Adapter) sign(identityID string, kind domain.IdentityKind, use domain.TokenUse, ttl time.Duration) (string, error) {
	now := a.now()
	claims := jwtClaims{
		Kind: kind,
		Use:  use,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identityID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.jwtSecret)
}

// ParseToken validates signature and expiry and extracts domain claims
func (a *Adapter) ParseToken(tokenString string) (*domain.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwtClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.jwtSecret, nil
	}, jwt.WithTimeFunc(a.now))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, domain.ErrTokenMalformed
		default:
			return nil, domain.ErrTokenInvalid
		}
	}

	claims, ok := token.Claims.(*jwtClaims)
	if !ok || !token.Valid {
		return nil, domain.ErrTokenInvalid
	}
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return nil, domain.ErrTokenMalformed
	}
	if claims.Subject == "" || !claims.Kind.Valid() {
		return nil, domain.ErrTokenInvalid
	}

	return &domain.TokenClaims{
		IdentityID: claims.Subject,
		Kind:       claims.Kind,
		Use:        claims.Use,
		JTI:        claims.ID,
		IssuedAt:   claims.IssuedAt.Unix(),
		ExpiresAt:  claims.ExpiresAt.Unix(),
	}, nil
}
