package domain

import "time"

// IdentityKind discriminates the two account variants sharing one token space
type IdentityKind string

const (
	KindUser  IdentityKind = "user"  // Shopper account
	KindStore IdentityKind = "store" // Merchant account
)

// Valid reports whether the kind is one of the known variants
func (k IdentityKind) Valid() bool {
	return k == KindUser || k == KindStore
}

// Address is a normalized Brazilian address (CEP lookup result plus the
// caller-supplied complement)
type Address struct {
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Reference    string `json:"reference,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// UserProfile carries the fields specific to a user account
type UserProfile struct {
	Name        string    `json:"name"`
	CPF         string    `json:"cpf"`
	Birthdate   time.Time `json:"birthdate"`
	Address     Address   `json:"address"`
	MobilePhone string    `json:"mobile_phone"`
	HomePhone   string    `json:"home_phone,omitempty"`

	// CustomerID is the opaque id returned by the payment gateway
	CustomerID string `json:"customer_id,omitempty"`
	// CardID is the gateway id of the registered credit card, if any
	CardID string `json:"card_id,omitempty"`
	// RecipientID is set once the user registers as an individual payout
	// recipient
	RecipientID string `json:"recipient_id,omitempty"`
}

// StoreProfile carries the fields specific to a store account
type StoreProfile struct {
	LegalName   string  `json:"legal_name"`
	TradeName   string  `json:"trade_name"`
	CNPJ        string  `json:"cnpj,omitempty"` // Empty for individual-owned stores
	CPF         string  `json:"cpf,omitempty"`  // Set when the store is backed by an individual
	Address     Address `json:"address"`
	MobilePhone string  `json:"mobile_phone"`
	HomePhone   string  `json:"home_phone,omitempty"`

	// OwnerUserID links a user-created store back to its owning user.
	// Nil for standalone stores.
	OwnerUserID *string `json:"owner_user_id,omitempty"`

	// RecipientID is the opaque payout-recipient id at the payment gateway
	RecipientID string `json:"recipient_id,omitempty"`
}

// Identity is the shared shape of both account variants. Exactly one of User
// or Store is non-nil, matching Kind.
type Identity struct {
	ID           string       `json:"id"`
	Kind         IdentityKind `json:"kind"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Never serialize
	User         *UserProfile `json:"user,omitempty"`
	Store        *StoreProfile `json:"store,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	DeletedAt    *time.Time   `json:"deleted_at,omitempty"`
}

// IsDeleted reports whether the identity has been soft-deleted
func (i *Identity) IsDeleted() bool {
	return i.DeletedAt != nil
}

// AssertKind cross-checks a token's bound kind against the kind an endpoint
// expects. It never touches storage.
func AssertKind(kind, want IdentityKind) error {
	if kind != want {
		return ErrWrongAccountKind
	}
	return nil
}

// AssertOwner cross-checks a token's bound identity id against an explicit
// resource-owner id. Pure comparison; callers resolve the owner id first.
func AssertOwner(tokenID, ownerID string) error {
	if tokenID != ownerID {
		return ErrForbidden
	}
	return nil
}
