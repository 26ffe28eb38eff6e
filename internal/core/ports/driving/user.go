package driving

import (
	"context"
	"time"

	"github.com/mercado-labs/mercado-core/internal/core/domain"
)

// CreateUserRequest represents a user signup
type CreateUserRequest struct {
	Email       string    `json:"email"`
	Password    string    `json:"password"`
	Name        string    `json:"name"`
	CPF         string    `json:"cpf"`
	Birthdate   time.Time `json:"birthdate"`
	CEP         string    `json:"cep"`
	Number      string    `json:"number"`
	Complement  string    `json:"complement,omitempty"`
	Reference   string    `json:"reference,omitempty"`
	MobilePhone string    `json:"mobile_phone"`
	HomePhone   string    `json:"home_phone,omitempty"`
}

// UpdateUserRequest represents a profile edit. Nil fields are carried over
// from the existing record; an edit with no actual differences fails with
// ErrNoChange. Email or password changes require the current password.
type UpdateUserRequest struct {
	Password       string  `json:"password,omitempty"`
	NewPassword    *string `json:"new_password,omitempty"`
	NewEmail       *string `json:"new_email,omitempty"`
	NewName        *string `json:"new_name,omitempty"`
	NewCEP         *string `json:"new_cep,omitempty"`
	NewNumber      *string `json:"new_number,omitempty"`
	NewComplement  *string `json:"new_complement,omitempty"`
	NewMobilePhone *string `json:"new_mobile_phone,omitempty"`
	NewHomePhone   *string `json:"new_home_phone,omitempty"`
}

// UserService manages user accounts. All operations except Create take the
// rotation gate's AuthContext and are user-kind only.
type UserService interface {
	// Create registers a user, its gateway customer and its cart
	Create(ctx context.Context, req CreateUserRequest) (*domain.Identity, error)

	// Get retrieves the authenticated user's record
	Get(ctx context.Context, auth *domain.AuthContext) (*domain.Identity, error)

	// Update fully re-derives the user record from the request plus the
	// existing row
	Update(ctx context.Context, auth *domain.AuthContext, req UpdateUserRequest) (*domain.Identity, error)

	// Delete soft-deletes the user and cascades stores, products and cart.
	// The current password is re-checked.
	Delete(ctx context.Context, auth *domain.AuthContext, password string) error
}
