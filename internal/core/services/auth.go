package services

import (
	"context"
	"fmt"
	"time"

	"github.com/mercado-labs/mercado-core/internal/core/domain"
	"github.com/mercado-labs/mercado-core/internal/core/ports/driven"
	"github.com/mercado-labs/mercado-core/internal/core/ports/driving"
)

// Ensure authService implements AuthService
var _ driving.AuthService = (*authService)(nil)

// authService implements login and the rotation gate. Tokens are
// self-contained; outside the optional replay guard there is no state here.
type authService struct {
	userStore   driven.UserStore
	storeStore  driven.StoreStore
	authAdapter driven.AuthAdapter

	// replayGuard, when set, makes refresh tokens single-use. Off by
	// default: replayed refresh tokens then rotate successfully until
	// their own expiry.
	replayGuard driven.ReplayGuard
}

// NewAuthService creates a new AuthService without replay protection
func NewAuthService(
	userStore driven.UserStore,
	storeStore driven.StoreStore,
	authAdapter driven.AuthAdapter,
) driving.AuthService {
	return &authService{
		userStore:   userStore,
		storeStore:  storeStore,
		authAdapter: authAdapter,
	}
}

// NewAuthServiceWithReplayGuard creates an AuthService that consumes each
// refresh token on first use. The external contract is unchanged; replayed
// tokens fail exactly like invalid ones.
func NewAuthServiceWithReplayGuard(
	userStore driven.UserStore,
	storeStore driven.StoreStore,
	authAdapter driven.AuthAdapter,
	guard driven.ReplayGuard,
) driving.AuthService {
	return &authService{
		userStore:   userStore,
		storeStore:  storeStore,
		authAdapter: authAdapter,
		replayGuard: guard,
	}
}

// LoginUser authenticates a user account
func (s *authService) LoginUser(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	return s.login(ctx, req, domain.KindUser)
}

// LoginStore authenticates a store account
func (s *authService) LoginStore(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	return s.login(ctx, req, domain.KindStore)
}

func (s *authService) login(ctx context.Context, req domain.LoginRequest, kind domain.IdentityKind) (*domain.LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	var (
		identity *domain.Identity
		err      error
	)
	if kind == domain.KindUser {
		identity, err = s.userStore.GetByEmail(ctx, req.Email)
	} else {
		identity, err = s.storeStore.GetByEmail(ctx, req.Email)
	}
	if err != nil {
		return nil, err // ErrNotFound for absent emails
	}

	if !s.authAdapter.VerifyPassword(req.Password, identity.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	pair, err := s.authAdapter.IssuePair(identity.ID, kind)
	if err != nil {
		return nil, err
	}

	claims, err := s.authAdapter.ParseToken(pair.AccessToken)
	if err != nil {
		return nil, err
	}

	return &domain.LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    time.Unix(claims.ExpiresAt, 0),
	}, nil
}

// Rotate verifies the refresh token and re-issues both tokens from the
// identity it encodes. The access token is only a courtesy cross-check: it
// may already be expired, but when it does parse it must agree with the
// refresh token on the bound identity.
func (s *authService) Rotate(ctx context.Context, pair domain.TokenPair) (*domain.AuthContext, error) {
	if pair.RefreshToken == "" {
		return nil, domain.ErrTokenInvalid
	}

	claims, err := s.authAdapter.ParseToken(pair.RefreshToken)
	if err != nil {
		return nil, err
	}
	if claims.Use != domain.UseRefresh {
		return nil, domain.ErrTokenInvalid
	}

	if pair.AccessToken != "" {
		if access, err := s.authAdapter.ParseToken(pair.AccessToken); err == nil {
			if access.IdentityID != claims.IdentityID || access.Kind != claims.Kind {
				return nil, domain.ErrTokenInvalid
			}
		}
	}

	if s.replayGuard != nil {
		ttl := time.Until(time.Unix(claims.ExpiresAt, 0))
		fresh, err := s.replayGuard.Consume(ctx, claims.JTI, ttl)
		if err != nil {
			return nil, fmt.Errorf("replay guard: %w", err)
		}
		if !fresh {
			return nil, domain.ErrTokenInvalid
		}
	}

	next, err := s.authAdapter.IssuePair(claims.IdentityID, claims.Kind)
	if err != nil {
		return nil, err
	}

	return &domain.AuthContext{
		IdentityID: claims.IdentityID,
		Kind:       claims.Kind,
		Pair:       next,
	}, nil
}
