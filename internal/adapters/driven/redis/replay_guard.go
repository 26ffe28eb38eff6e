package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mercado-labs/mercado-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ReplayGuard = (*ReplayGuard)(nil)

// Key prefix for consumed refresh-token ids
const consumedPrefix = "refresh:consumed:"

// ReplayGuard implements driven.ReplayGuard using Redis. Each refresh
// token's jti is claimed with SETNX; the key expires together with the
// token, so the consumed set never outgrows the live token population.
type ReplayGuard struct {
	client *redis.Client
}

// NewReplayGuard creates a new Redis-backed ReplayGuard
func NewReplayGuard(client *redis.Client) *ReplayGuard {
	return &ReplayGuard{client: client}
}

// Consume claims a refresh token id. It returns false when the id was
// already claimed by an earlier rotation.
func (g *ReplayGuard) Consume(ctx context.Context, jti string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		// The token is expiring anyway; let signature verification reject it
		return true, nil
	}

	ok, err := g.client.SetNX(ctx, consumedPrefix+jti, 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim refresh token id: %w", err)
	}
	return ok, nil
}
