package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mercado-labs/mercado-core/internal/core/domain"
	"github.com/mercado-labs/mercado-core/internal/core/ports/driving"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// RotatedResponse wraps an authenticated response. Tokens always carries
// the replacement pair; the supplied pair is spent the moment the request
// is authenticated.
// @Description Authenticated response with the rotated token pair
type RotatedResponse struct {
	Data   any              `json:"data,omitempty"`
	Tokens domain.TokenPair `json:"tokens"`
}

// addCartProductRequest is the body of POST /cart/product
type addCartProductRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// deleteAccountRequest re-confirms the current password
type deleteAccountRequest struct {
	Password string `json:"password"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Returns the readiness status of the API (checks database and redis connections)
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse  "A backing store is unreachable"
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	if s.redisClient != nil {
		if err := s.redisClient.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "redis unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Login endpoints

// handleUserLogin godoc
// @Summary      User login
// @Description  Authenticate a user account and receive the first token pair
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.LoginRequest  true  "Login credentials"
// @Success      200      {object}  domain.LoginResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Invalid credentials"
// @Failure      404      {object}  ErrorResponse  "Unknown email"
// @Router       /user/login [post]
func (s *Server) handleUserLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.LoginUser(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleStoreLogin godoc
// @Summary      Store login
// @Description  Authenticate a store account and receive the first token pair
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.LoginRequest  true  "Login credentials"
// @Success      200      {object}  domain.LoginResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Invalid credentials"
// @Failure      404      {object}  ErrorResponse  "Unknown email"
// @Router       /store/login [post]
func (s *Server) handleStoreLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.LoginStore(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// User endpoints

// handleCreateUser godoc
// @Summary      Create user account
// @Description  Registers a user, its payment-gateway customer and an empty cart
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        request  body      driving.CreateUserRequest  true  "User signup"
// @Success      201      {object}  domain.Identity
// @Failure      400      {object}  ErrorResponse  "Validation failure or duplicate email/CPF/phone"
// @Failure      500      {object}  ErrorResponse  "Gateway failure"
// @Router       /user [post]
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req driving.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.userService.Create(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// handleGetUser godoc
// @Summary      Get own user account
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  RotatedResponse{data=domain.Identity}
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse  "Store token on a user route"
// @Router       /user [get]
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	auth := GetAuthContext(r.Context())
	user, err := s.userService.Get(r.Context(), auth)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeRotated(w, http.StatusOK, auth, user)
}

// handleUpdateUser godoc
// @Summary      Update own user account
// @Description  Re-derives the full record; an edit with no differences fails. Email or password changes require the current password.
// @Tags         Users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      driving.UpdateUserRequest  true  "Profile edit"
// @Success      200      {object}  RotatedResponse{data=domain.Identity}
// @Failure      400      {object}  ErrorResponse  "Validation failure, duplicate or no-op edit"
// @Failure      401      {object}  ErrorResponse  "Missing or wrong current password"
// @Router       /user [patch]
func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	auth := GetAuthContext(r.Context())
	var req driving.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.userService.Update(r.Context(), auth, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeRotated(w, http.StatusOK, auth, user)
}

// handleDeleteUser godoc
// @Summary      Delete own user account
// @Description  Re-checks the password, then soft-deletes the user and cascades its stores, products and cart
// @Tags         Users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      deleteAccountRequest  true  "Current password"
// @Success      200      {object}  StatusResponse
// @Failure      401      {object}  ErrorResponse  "Wrong password"
// @Router       /user [delete]
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	auth := GetAuthContext(r.Context())
	var req deleteAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.userService.Delete(r.Context(), auth, req.Password); err != nil {
		writeDomainError(w, err)
		return
	}
	// The account is gone; the rotated pair would be for a dead identity
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Store endpoints

// handleCreateStore godoc
// @Summary      Create standalone store account
// @Tags         Stores
// @Accept       json
// @Produce      json
// @Param        request  body      driving.CreateStoreRequest  true  "Store signup"
// @Success      201      {object}  domain.Identity
// @Failure      400      {object}  ErrorResponse  "Validation failure or duplicate"
// @Router       /store [post]
func (s *Server) handleCreateStore(w http.ResponseWriter, r *http.Request) {
	var req driving.CreateStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	store, err := s.storeService.Create(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, store)
}

// handleCreateUserStore godoc
// @Summary      Create a store owned by the authenticated user
// @Description  The store inherits the owner's profile fields when not supplied; the email must be its own.
// @Tags         Stores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      driving.CreateStoreByUserRequest  true  "Store signup"
// @Success      201      {object}  RotatedResponse{data=domain.Identity}
// @Failure      400      {object}  ErrorResponse  "Validation failure or duplicate"
// @Failure      403      {object}  ErrorResponse  "Store token on a user route"
// @Router       /user/store [post]
func (s *Server) handleCreateUserStore(w http.ResponseWriter, r *http.Request) {
	auth := GetAuthContext(r.Context())
	var req driving.CreateStoreByUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	store, err := s.storeService.CreateByUser(r.Context(), auth, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeRotated(w, http.StatusCreated, auth, store)
}

// handleGetStore godoc
// @Summary      Get own store account
// @Tags         Stores
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  RotatedResponse{data=domain.Identity}
// @Failure      403  {object}  ErrorResponse  "User token on a store route"
// @Router       /store [get]
func (s *Server) handleGetStore(w http.ResponseWriter, r *http.Request) {
	auth := GetAuthContext(r.Context())
	store, err := s.storeService.Get(r.Context(), auth)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeRotated(w, http.StatusOK, auth, store)
}

// handleGetUserStores godoc
// @Summary      List the authenticated user's stores
// @Tags         Stores
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  RotatedResponse{data=[]domain.Identity}
// @Router       /user/store [get]
func (s *Server) handleGetUserStores(w http.ResponseWriter, r *http.Request) {
	auth := GetAuthContext(r.Context())
	stores, err := s.storeService.GetUserStores(r.Context(), auth, "")
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeRotated(w, http.StatusOK, auth, stores)
}

// handleGetUserStore godoc
// @Summary      Get one of the authenticated user's stores
// @Tags         Stores
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Store ID"
// @Success      200  {object}  RotatedResponse{data=domain.Identity}
// @Failure      403  {object}  ErrorResponse  "Not the owner"
// @Failure      404  {object}  ErrorResponse
// @Router       /user/store/{id} [get]
func (s *Server) handleGetUserStore(w http.ResponseWriter, r *http.Request) {
	auth := GetAuthContext(r.Context())
	stores, err := s.storeService.GetUserStores(r.Context(), auth, r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeRotated(w, http.StatusOK, auth, stores[0])
}

// handleUpdateStore godoc
// @Summary      Update own store account
// @Tags         Stores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      driving.UpdateStoreRequest  true  "Profile edit"
// @Success      200      {object}  RotatedResponse{data=domain.Identity}
// @Failure      400      {object}  ErrorResponse  "Validation failure, duplicate or no-op edit"
// @Router       /store [patch]
func (s *Server) handleUpdateStore(w http.ResponseWriter, r *http.Request) {
	auth := GetAuthContext(r.Context())
	var req driving.UpdateStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	store, err := s.storeService.Update(r.Context(), auth, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeRotated(w, http.StatusOK, auth, store)
}

// handleDeleteStore godoc
// @Summary      Delete own store account
// @Description  Soft-deletes the store and its catalog
// @Tags         Stores
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  StatusResponse
// @Router       /store [delete]
func (s *Server) handleDeleteStore(w http.ResponseWriter, r *http.Request) {
	auth := GetAuthContext(r.Context())
	if err := s.storeService.Delete(r.Context(), auth); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleDeleteUserStore godoc
// @Summary      Delete one of the authenticated user's stores
// @Tags         Stores
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Store ID"
// @Success      200  {object}  RotatedResponse
// @Failure      403  {object}  ErrorResponse  "Not the owner"
// @Router       /user/store/{id} [delete]
func (s *Server) handleDeleteUserStore(w http.ResponseWriter, r *http.Request) {
	auth := GetAuthContext(r.Context())
	if err := s.storeService.DeleteUserStore(r.Context(), auth, r.PathValue("id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeRotated(w, http.StatusOK, auth, map[string]string{"status": "deleted"})
}

// handleSearchStore godoc
// @Summary      Look up a store (public)
// @Tags         Stores
// @Produce      json
// @Param        id   path      string  true  "Store ID"
// @Success      200  {object}  domain.Identity
// @Failure      404  {object}  ErrorResponse
// @Router       /store/search/{id} [get]
func (s *Server) handleSearchStore(w http.ResponseWriter, r *http.Request) {
	store, err := s.storeService.Search(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, store)
}

// Product endpoints

// handleCreateProduct godoc
// @Summary      Add a product to the authenticated store's catalog
// @Description  The name is upper-cased and must be unique within the store.
// @Tags         Products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      driving.CreateProductRequest  true  "New product"
// @Success      201      {object}  RotatedResponse{data=domain.Product}
// @Failure      400      {object}  ErrorResponse  "Validation failure or duplicate name"
// @Failure      403      {object}  ErrorResponse  "User token on a store route"
// @Router       /product [post]
func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	auth := GetAuthContext(r.Context())
	var req driving.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := s.productService.Create(r.Context(), auth, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeRotated(w, http.StatusCreated, auth, product)
}

// handleUpdateProduct godoc
// @Summary      Update a product of the authenticated store
// @Tags         Products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                        true  "Product ID"
// @Param        request  body      driving.UpdateProductRequest  true  "Product edit"
// @Success      200      {object}  RotatedResponse{data=domain.Product}
// @Failure      400      {object}  ErrorResponse  "Validation failure, duplicate or no-op edit"
// @Failure      403      {object}  ErrorResponse  "Product belongs to another store"
// @Router       /product/{id} [patch]
func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	auth := GetAuthContext(r.Context())
	var req driving.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.ProductID = r.PathValue("id")

	product, err := s.productService.Update(r.Context(), auth, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeRotated(w, http.StatusOK, auth, product)
}

// handleDeleteProduct godoc
// @Summary      Delete a product of the authenticated store
// @Tags         Products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  RotatedResponse
// @Failure      403  {object}  ErrorResponse  "Product belongs to another store"
// @Router       /product/{id} [delete]
func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	auth := GetAuthContext(r.Context())
	if err := s.productService.Delete(r.Context(), auth, r.PathValue("id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeRotated(w, http.StatusOK, auth, map[string]string{"status": "deleted"})
}

// handleCreateUserStoreProduct godoc
// @Summary      Add a product to one of the authenticated user's stores
// @Tags         Products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        storeID  path      string                        true  "Store ID"
// @Param        request  body      driving.CreateProductRequest  true  "New product"
// @Success      201      {object}  RotatedResponse{data=domain.Product}
// @Failure      403      {object}  ErrorResponse  "Not the owner"
// @Router       /user/store/{storeID}/product [post]
func (s *Server) handleCreateUserStoreProduct(w http.ResponseWriter, r *http.Request) {
	auth := GetAuthContext(r.Context())
	var req driving.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.StoreID = r.PathValue("storeID")

	product, err := s.productService.CreateForUserStore(r.Context(), auth, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeRotated(w, http.StatusCreated, auth, product)
}

// handleUpdateUserStoreProduct godoc
// @Summary      Update a product of one of the authenticated user's stores
// @Tags         Products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        storeID  path      string                        true  "Store ID"
// @Param        id       path      string                        true  "Product ID"
// @Param        request  body      driving.UpdateProductRequest  true  "Product edit"
// @Success      200      {object}  RotatedResponse{data=domain.Product}
// @Failure      403      {object}  ErrorResponse  "Not the owner"
// @Router       /user/store/{storeID}/product/{id} [patch]
func (s *Server) handleUpdateUserStoreProduct(w http.ResponseWriter, r *http.Request) {
	auth := GetAuthContext(r.Context())
	var req driving.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.StoreID = r.PathValue("storeID")
	req.ProductID = r.PathValue("id")

	product, err := s.productService.UpdateForUserStore(r.Context(), auth, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeRotated(w, http.StatusOK, auth, product)
}

// handleDeleteUserStoreProduct godoc
// @Summary      Delete a product of one of the authenticated user's stores
// @Tags         Products
// @Produce      json
// @Security     BearerAuth
// @Param        storeID  path      string  true  "Store ID"
// @Param        id       path      string  true  "Product ID"
// @Success      200      {object}  RotatedResponse
// @Failure      403      {object}  ErrorResponse  "Not the owner"
// @Router       /user/store/{storeID}/product/{id} [delete]
func (s *Server) handleDeleteUserStoreProduct(w http.ResponseWriter, r *http.Request) {
	auth := GetAuthContext(r.Context())
	if err := s.productService.DeleteForUserStore(r.Context(), auth, r.PathValue("id"), r.PathValue("storeID")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeRotated(w, http.StatusOK, auth, map[string]string{"status": "deleted"})
}

// handleSearchProducts godoc
// @Summary      List a store's live products (public)
// @Tags         Products
// @Produce      json
// @Param        storeID  path      string  true  "Store ID"
// @Success      200      {array}   domain.Product
// @Failure      404      {object}  ErrorResponse  "Unknown store"
// @Router       /product/search/{storeID} [get]
func (s *Server) handleSearchProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.productService.Search(r.Context(), r.PathValue("storeID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// Cart endpoints

// handleGetCart godoc
// @Summary      Get the authenticated user's cart
// @Tags         Cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  RotatedResponse{data=domain.Cart}
// @Failure      403  {object}  ErrorResponse  "Store token on a user route"
// @Router       /cart [get]
func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	auth := GetAuthContext(r.Context())
	cart, err := s.cartService.Get(r.Context(), auth)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeRotated(w, http.StatusOK, auth, cart)
}

// handleAddCartProduct godoc
// @Summary      Add a product to the cart
// @Description  Quantities accumulate per product and are capped by availability. A missing quantity defaults to 1.
// @Tags         Cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      addCartProductRequest  true  "Product and quantity"
// @Success      200      {object}  RotatedResponse{data=domain.Cart}
// @Failure      400      {object}  ErrorResponse  "Quantity exceeds availability"
// @Failure      404      {object}  ErrorResponse  "Unknown product"
// @Router       /cart/product [post]
func (s *Server) handleAddCartProduct(w http.ResponseWriter, r *http.Request) {
	auth := GetAuthContext(r.Context())
	var req addCartProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cart, err := s.cartService.AddProduct(r.Context(), auth, req.ProductID, req.Quantity)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeRotated(w, http.StatusOK, auth, cart)
}

// handleClearCart godoc
// @Summary      Empty the cart
// @Tags         Cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  RotatedResponse{data=domain.Cart}
// @Router       /cart [delete]
func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	auth := GetAuthContext(r.Context())
	cart, err := s.cartService.Clear(r.Context(), auth)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeRotated(w, http.StatusOK, auth, cart)
}

// Wallet endpoints

// handleRegisterUserRecipient godoc
// @Summary      Register the user as an individual payout recipient
// @Tags         Wallet
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      driving.RegisterUserRecipientRequest  true  "Recipient registration"
// @Success      201      {object}  RotatedResponse
// @Failure      400      {object}  ErrorResponse  "Validation failure"
// @Failure      500      {object}  ErrorResponse  "Gateway failure"
// @Router       /wallet/user/recipient [post]
func (s *Server) handleRegisterUserRecipient(w http.ResponseWriter, r *http.Request) {
	auth := GetAuthContext(r.Context())
	var req driving.RegisterUserRecipientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := s.walletService.RegisterUserRecipient(r.Context(), auth, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeRotated(w, http.StatusCreated, auth, map[string]string{"recipient_id": id})
}

// handleRegisterStoreRecipient godoc
// @Summary      Register the store as a corporate payout recipient
// @Description  Requires a CNPJ and at least one managing partner.
// @Tags         Wallet
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      driving.RegisterStoreRecipientRequest  true  "Recipient registration"
// @Success      201      {object}  RotatedResponse
// @Failure      400      {object}  ErrorResponse  "Validation failure"
// @Failure      500      {object}  ErrorResponse  "Gateway failure"
// @Router       /wallet/store/recipient [post]
func (s *Server) handleRegisterStoreRecipient(w http.ResponseWriter, r *http.Request) {
	auth := GetAuthContext(r.Context())
	var req driving.RegisterStoreRecipientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := s.walletService.RegisterStoreRecipient(r.Context(), auth, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeRotated(w, http.StatusCreated, auth, map[string]string{"recipient_id": id})
}

// handleRegisterCard godoc
// @Summary      Register a credit card for the user
// @Description  The card hangs off the user's gateway customer; the holder name defaults to the user's name.
// @Tags         Wallet
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      driving.RegisterCardRequest  true  "Card details"
// @Success      201      {object}  RotatedResponse
// @Failure      400      {object}  ErrorResponse  "Validation failure"
// @Failure      500      {object}  ErrorResponse  "Gateway failure"
// @Router       /wallet/card [post]
func (s *Server) handleRegisterCard(w http.ResponseWriter, r *http.Request) {
	auth := GetAuthContext(r.Context())
	var req driving.RegisterCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := s.walletService.RegisterCard(r.Context(), auth, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeRotated(w, http.StatusCreated, auth, map[string]string{"card_id": id})
}

// Response helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeRotated wraps an authenticated success response with the rotated
// pair. Even a failed business operation has already spent the old pair, so
// error paths on authenticated routes cost the caller a rotation; the next
// login recovers.
func writeRotated(w http.ResponseWriter, status int, auth *domain.AuthContext, data any) {
	writeJSON(w, status, RotatedResponse{Data: data, Tokens: auth.Pair})
}

// writeDomainError maps domain sentinel errors onto HTTP statuses
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid input")
	case errors.Is(err, domain.ErrNoChange):
		writeError(w, http.StatusBadRequest, "no change requested")
	case errors.Is(err, domain.ErrDuplicate):
		writeError(w, http.StatusBadRequest, "already in use")
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, domain.ErrTokenExpired):
		writeError(w, http.StatusUnauthorized, "token expired")
	case errors.Is(err, domain.ErrTokenMalformed),
		errors.Is(err, domain.ErrTokenInvalid):
		writeError(w, http.StatusUnauthorized, "invalid token")
	case errors.Is(err, domain.ErrWrongAccountKind):
		writeError(w, http.StatusForbidden, "wrong account kind")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrUpstream):
		writeError(w, http.StatusInternalServerError, "upstream failure")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
