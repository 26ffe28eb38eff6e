package driven

import "github.com/mercado-labs/mercado-core/internal/core/domain"

// AuthAdapter handles the cryptographic side of authentication: password
// hashing and self-contained token minting/verification. It holds the
// process-wide signing secret, injected once at startup; there is no token
// storage behind it.
type AuthAdapter interface {
	// Password operations
	HashPassword(password string) (string, error)
	VerifyPassword(password, hash string) bool

	// IssuePair mints a short-lived access token and a longer-lived refresh
	// token, both bound to the identity id and kind
	IssuePair(identityID string, kind domain.IdentityKind) (domain.TokenPair, error)

	// ParseToken verifies signature and expiry and returns the claims.
	// Fails with ErrTokenExpired, ErrTokenInvalid or ErrTokenMalformed.
	ParseToken(token string) (*domain.TokenClaims, error)
}
