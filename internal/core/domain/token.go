package domain

import "time"

// TokenUse distinguishes the two halves of a pair inside the shared claim
// format
type TokenUse string

const (
	UseAccess  TokenUse = "access"
	UseRefresh TokenUse = "refresh"
)

// TokenPair is the credential set returned by login and re-minted on every
// authenticated call
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// TokenClaims is the decoded payload of a single token. Both tokens are
// self-contained: possession of a valid refresh token is sufficient to
// rotate, there is no server-side token table.
type TokenClaims struct {
	IdentityID string       `json:"sub"`
	Kind       IdentityKind `json:"kind"`
	Use        TokenUse     `json:"token_use"`
	JTI        string       `json:"jti"`
	IssuedAt   int64        `json:"iat"`
	ExpiresAt  int64        `json:"exp"`
}

// Expired reports whether the claims are past expiry at the given instant
func (c *TokenClaims) Expired(now time.Time) bool {
	return now.Unix() >= c.ExpiresAt
}

// AuthContext is the request-scoped capability produced by the rotation
// gate: the verified identity plus the freshly rotated pair every handler
// must hand back to the caller.
type AuthContext struct {
	IdentityID string       `json:"identity_id"`
	Kind       IdentityKind `json:"kind"`
	Pair       TokenPair    `json:"pair"`
}

// IsUser reports whether the authenticated identity is a user account
func (a *AuthContext) IsUser() bool {
	return a.Kind == KindUser
}

// IsStore reports whether the authenticated identity is a store account
func (a *AuthContext) IsStore() bool {
	return a.Kind == KindStore
}

// LoginRequest represents a login attempt for either account kind
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful authentication
type LoginResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}
