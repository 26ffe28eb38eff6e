package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mercado-labs/mercado-core/internal/core/domain"
)

type mockRotator struct {
	rotateFn func(ctx context.Context, pair domain.TokenPair) (*domain.AuthContext, error)
}

func (m *mockRotator) LoginUser(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	return nil, errors.New("not implemented")
}

func (m *mockRotator) LoginStore(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	return nil, errors.New("not implemented")
}

func (m *mockRotator) Rotate(ctx context.Context, pair domain.TokenPair) (*domain.AuthContext, error) {
	if m.rotateFn != nil {
		return m.rotateFn(ctx, pair)
	}
	return nil, errors.New("not implemented")
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expected string
	}{
		{
			name:     "valid bearer token",
			header:   "Bearer abc123",
			expected: "abc123",
		},
		{
			name:     "bearer with extra spaces",
			header:   "Bearer   token-with-spaces   ",
			expected: "token-with-spaces",
		},
		{
			name:     "lowercase bearer",
			header:   "bearer token123",
			expected: "token123",
		},
		{
			name:     "empty header",
			header:   "",
			expected: "",
		},
		{
			name:     "no bearer prefix",
			header:   "token123",
			expected: "",
		},
		{
			name:     "basic auth",
			header:   "Basic dXNlcjpwYXNz",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			result := extractBearerToken(req)
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestGetAuthContext(t *testing.T) {
	if result := GetAuthContext(context.Background()); result != nil {
		t.Error("expected nil for context without auth")
	}
	if result := GetAuthContext(nil); result != nil {
		t.Error("expected nil for nil context")
	}

	authCtx := &domain.AuthContext{IdentityID: "user-1", Kind: domain.KindUser}
	ctx := context.WithValue(context.Background(), authContextKey, authCtx)
	if result := GetAuthContext(ctx); result != authCtx {
		t.Error("expected the stored auth context")
	}
}

func TestAuthenticate_PassesRotatedContext(t *testing.T) {
	want := &domain.AuthContext{
		IdentityID: "user-1",
		Kind:       domain.KindUser,
		Pair:       domain.TokenPair{AccessToken: "next-access", RefreshToken: "next-refresh"},
	}
	var gotPair domain.TokenPair
	middleware := NewAuthMiddleware(&mockRotator{
		rotateFn: func(ctx context.Context, pair domain.TokenPair) (*domain.AuthContext, error) {
			gotPair = pair
			return want, nil
		},
	})

	var seen *domain.AuthContext
	handler := middleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetAuthContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer old-access")
	req.Header.Set(RefreshHeader, "old-refresh")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if gotPair.AccessToken != "old-access" || gotPair.RefreshToken != "old-refresh" {
		t.Errorf("unexpected pair handed to Rotate: %+v", gotPair)
	}
	if seen != want {
		t.Error("expected the rotated auth context in the request context")
	}
}

func TestAuthenticate_MissingRefreshToken(t *testing.T) {
	middleware := NewAuthMiddleware(&mockRotator{})
	handler := middleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run")
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer old-access")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rr.Code)
	}
}

func TestAuthenticate_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"expired", domain.ErrTokenExpired, http.StatusUnauthorized},
		{"malformed", domain.ErrTokenMalformed, http.StatusUnauthorized},
		{"invalid", domain.ErrTokenInvalid, http.StatusUnauthorized},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			middleware := NewAuthMiddleware(&mockRotator{
				rotateFn: func(ctx context.Context, pair domain.TokenPair) (*domain.AuthContext, error) {
					return nil, tt.err
				},
			})
			handler := middleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("handler should not run")
			}))

			req := httptest.NewRequest("GET", "/", nil)
			req.Header.Set(RefreshHeader, "some-refresh")
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.expected {
				t.Errorf("expected status %d, got %d", tt.expected, rr.Code)
			}
		})
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	middleware := NewRecoveryMiddleware()
	handler := middleware.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", rr.Code)
	}
}

func TestLoggingMiddleware(t *testing.T) {
	middleware := NewLoggingMiddleware()
	handler := middleware.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusTeapot {
		t.Errorf("expected status to pass through, got %d", rr.Code)
	}
}
