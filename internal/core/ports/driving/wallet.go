package driving

import (
	"context"

	"github.com/mercado-labs/mercado-core/internal/core/domain"
)

// BankAccountRequest carries the payout destination of a recipient
// registration
type BankAccountRequest struct {
	Bank              string `json:"bank"`
	BranchNumber      string `json:"branch_number"`
	BranchCheckDigit  string `json:"branch_check_digit"`
	AccountNumber     string `json:"account_number"`
	AccountCheckDigit string `json:"account_check_digit"`
	Type              string `json:"type"` // "checking" or "savings"
}

// RegisterUserRecipientRequest turns the authenticated user into an
// individual payout recipient
type RegisterUserRecipientRequest struct {
	MonthlyIncome          int64              `json:"monthly_income"`
	ProfessionalOccupation string             `json:"professional_occupation"`
	BankAccount            BankAccountRequest `json:"bank_account"`
}

// ManagingPartnerRequest is one legal representative of a corporate
// recipient
type ManagingPartnerRequest struct {
	Name                   string `json:"name"`
	Email                  string `json:"email"`
	CPF                    string `json:"cpf"`
	MobilePhone            string `json:"mobile_phone"`
	Birthdate              string `json:"birthdate"`
	MonthlyIncome          int64  `json:"monthly_income"`
	ProfessionalOccupation string `json:"professional_occupation"`
	SelfDeclaredLegalRep   bool   `json:"self_declared_legal_representative"`
}

// RegisterStoreRecipientRequest turns the authenticated store into a
// corporate payout recipient
type RegisterStoreRecipientRequest struct {
	AnnualRevenue    int64                    `json:"annual_revenue"`
	BankAccount      BankAccountRequest       `json:"bank_account"`
	ManagingPartners []ManagingPartnerRequest `json:"managing_partners"`
}

// RegisterCardRequest registers a credit card under the authenticated
// user's gateway customer
type RegisterCardRequest struct {
	Number     string `json:"number"`
	HolderName string `json:"holder_name"`
	ExpMonth   int    `json:"exp_month"`
	ExpYear    int    `json:"exp_year"`
	CVV        string `json:"cvv"`
}

// WalletService orchestrates payment-gateway registrations and persists the
// returned opaque ids on the identity
type WalletService interface {
	// RegisterUserRecipient registers the user as an individual recipient
	RegisterUserRecipient(ctx context.Context, auth *domain.AuthContext, req RegisterUserRecipientRequest) (string, error)

	// RegisterStoreRecipient registers the store as a corporate recipient
	RegisterStoreRecipient(ctx context.Context, auth *domain.AuthContext, req RegisterStoreRecipientRequest) (string, error)

	// RegisterCard registers a credit card for the user
	RegisterCard(ctx context.Context, auth *domain.AuthContext, req RegisterCardRequest) (string, error)
}
