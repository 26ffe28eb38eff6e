package driving

import (
	"context"

	"github.com/mercado-labs/mercado-core/internal/core/domain"
)

// AuthService handles login and the rotate-on-every-call token gate
type AuthService interface {
	// LoginUser authenticates a user account and issues a fresh pair
	LoginUser(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)

	// LoginStore authenticates a store account and issues a fresh pair
	LoginStore(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)

	// Rotate consumes the caller-supplied pair and produces the request's
	// AuthContext: the verified identity plus a fresh pair. The refresh
	// token is the source of truth; the access token is only cross-checked
	// when present.
	Rotate(ctx context.Context, pair domain.TokenPair) (*domain.AuthContext, error)
}
