package driven

import (
	"context"
	"time"
)

// ReplayGuard optionally enforces single-use refresh tokens (Redis).
// Without a guard the rotation gate is pure verification and a leaked
// refresh token stays usable until its own expiry.
type ReplayGuard interface {
	// Consume marks a refresh token id as used until ttl elapses. It returns
	// false when the id was already consumed.
	Consume(ctx context.Context, jti string, ttl time.Duration) (bool, error)
}
