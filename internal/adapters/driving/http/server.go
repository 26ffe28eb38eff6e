package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mercado-labs/mercado-core/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string

	// Services
	authService    driving.AuthService
	userService    driving.UserService
	storeService   driving.StoreService
	productService driving.ProductService
	cartService    driving.CartService
	walletService  driving.WalletService

	// Infrastructure
	db          Pinger // PostgreSQL health check
	redisClient Pinger // Redis health check (optional)
}

// Config holds server configuration
type Config struct {
	Host    string
	Port    int
	Version string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:    "0.0.0.0",
		Port:    8080,
		Version: "dev",
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	authService driving.AuthService,
	userService driving.UserService,
	storeService driving.StoreService,
	productService driving.ProductService,
	cartService driving.CartService,
	walletService driving.WalletService,
	db Pinger,
	redisClient Pinger, // can be nil
) *Server {
	s := &Server{
		router:         http.NewServeMux(),
		version:        cfg.Version,
		authService:    authService,
		userService:    userService,
		storeService:   storeService,
		productService: productService,
		cartService:    cartService,
		walletService:  walletService,
		db:             db,
		redisClient:    redisClient,
	}

	handler := NewRecoveryMiddleware().Handler(NewLoggingMiddleware().Handler(s.router))
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Create middleware
	authMiddleware := NewAuthMiddleware(s.authService)
	authed := func(h http.HandlerFunc) http.Handler {
		return authMiddleware.Authenticate(h)
	}

	// Health endpoints (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)

	// Signup and login (public)
	s.router.HandleFunc("POST /api/v1/user", s.handleCreateUser)
	s.router.HandleFunc("POST /api/v1/user/login", s.handleUserLogin)
	s.router.HandleFunc("POST /api/v1/store", s.handleCreateStore)
	s.router.HandleFunc("POST /api/v1/store/login", s.handleStoreLogin)

	// Public catalog lookups
	s.router.HandleFunc("GET /api/v1/store/search/{id}", s.handleSearchStore)
	s.router.HandleFunc("GET /api/v1/product/search/{storeID}", s.handleSearchProducts)

	// User account endpoints
	s.router.Handle("GET /api/v1/user", authed(s.handleGetUser))
	s.router.Handle("PATCH /api/v1/user", authed(s.handleUpdateUser))
	s.router.Handle("DELETE /api/v1/user", authed(s.handleDeleteUser))

	// User-owned store endpoints
	s.router.Handle("POST /api/v1/user/store", authed(s.handleCreateUserStore))
	s.router.Handle("GET /api/v1/user/store", authed(s.handleGetUserStores))
	s.router.Handle("GET /api/v1/user/store/{id}", authed(s.handleGetUserStore))
	s.router.Handle("DELETE /api/v1/user/store/{id}", authed(s.handleDeleteUserStore))

	// User-owned catalog endpoints
	s.router.Handle("POST /api/v1/user/store/{storeID}/product", authed(s.handleCreateUserStoreProduct))
	s.router.Handle("PATCH /api/v1/user/store/{storeID}/product/{id}", authed(s.handleUpdateUserStoreProduct))
	s.router.Handle("DELETE /api/v1/user/store/{storeID}/product/{id}", authed(s.handleDeleteUserStoreProduct))

	// Store account endpoints
	s.router.Handle("GET /api/v1/store", authed(s.handleGetStore))
	s.router.Handle("PATCH /api/v1/store", authed(s.handleUpdateStore))
	s.router.Handle("DELETE /api/v1/store", authed(s.handleDeleteStore))

	// Store catalog endpoints
	s.router.Handle("POST /api/v1/product", authed(s.handleCreateProduct))
	s.router.Handle("PATCH /api/v1/product/{id}", authed(s.handleUpdateProduct))
	s.router.Handle("DELETE /api/v1/product/{id}", authed(s.handleDeleteProduct))

	// Cart endpoints
	s.router.Handle("GET /api/v1/cart", authed(s.handleGetCart))
	s.router.Handle("POST /api/v1/cart/product", authed(s.handleAddCartProduct))
	s.router.Handle("DELETE /api/v1/cart", authed(s.handleClearCart))

	// Wallet endpoints
	s.router.Handle("POST /api/v1/wallet/user/recipient", authed(s.handleRegisterUserRecipient))
	s.router.Handle("POST /api/v1/wallet/store/recipient", authed(s.handleRegisterStoreRecipient))
	s.router.Handle("POST /api/v1/wallet/card", authed(s.handleRegisterCard))
}

// Start begins listening for requests
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler returns the underlying handler, useful for testing
func (s *Server) Handler() http.Handler {
	return s.router
}
