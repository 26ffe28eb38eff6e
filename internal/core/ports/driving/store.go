package driving

import (
	"context"

	"github.com/mercado-labs/mercado-core/internal/core/domain"
)

// CreateStoreRequest represents a standalone store signup
type CreateStoreRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	LegalName   string `json:"legal_name"`
	TradeName   string `json:"trade_name"`
	CNPJ        string `json:"cnpj"`
	CEP         string `json:"cep"`
	Number      string `json:"number"`
	Complement  string `json:"complement,omitempty"`
	MobilePhone string `json:"mobile_phone"`
	HomePhone   string `json:"home_phone,omitempty"`
}

// CreateStoreByUserRequest represents a store created under an existing
// user account. Empty fields are inherited from the user's profile; the
// store shares the user's password hash.
type CreateStoreByUserRequest struct {
	Email       string `json:"email,omitempty"`
	TradeName   string `json:"trade_name"`
	CNPJ        string `json:"cnpj,omitempty"`
	CEP         string `json:"cep,omitempty"`
	Number      string `json:"number,omitempty"`
	Complement  string `json:"complement,omitempty"`
	MobilePhone string `json:"mobile_phone,omitempty"`
}

// UpdateStoreRequest represents a store profile edit; nil fields are carried
// over from the existing record
type UpdateStoreRequest struct {
	Password       string  `json:"password,omitempty"`
	NewPassword    *string `json:"new_password,omitempty"`
	NewEmail       *string `json:"new_email,omitempty"`
	NewTradeName   *string `json:"new_trade_name,omitempty"`
	NewCEP         *string `json:"new_cep,omitempty"`
	NewNumber      *string `json:"new_number,omitempty"`
	NewComplement  *string `json:"new_complement,omitempty"`
	NewMobilePhone *string `json:"new_mobile_phone,omitempty"`
}

// StoreService manages store accounts
type StoreService interface {
	// Create registers a standalone store account
	Create(ctx context.Context, req CreateStoreRequest) (*domain.Identity, error)

	// CreateByUser registers a store owned by the authenticated user
	CreateByUser(ctx context.Context, auth *domain.AuthContext, req CreateStoreByUserRequest) (*domain.Identity, error)

	// Get retrieves the authenticated store's record (store-kind token)
	Get(ctx context.Context, auth *domain.AuthContext) (*domain.Identity, error)

	// GetUserStore retrieves one of the authenticated user's stores, or all
	// of them when storeID is empty (user-kind token)
	GetUserStores(ctx context.Context, auth *domain.AuthContext, storeID string) ([]*domain.Identity, error)

	// Update fully re-derives the store record (store-kind token)
	Update(ctx context.Context, auth *domain.AuthContext, req UpdateStoreRequest) (*domain.Identity, error)

	// Delete soft-deletes the authenticated store and its products
	Delete(ctx context.Context, auth *domain.AuthContext) error

	// DeleteUserStore soft-deletes one of the authenticated user's stores
	DeleteUserStore(ctx context.Context, auth *domain.AuthContext, storeID string) error

	// Search retrieves a store's public record by id
	Search(ctx context.Context, storeID string) (*domain.Identity, error)
}
