package domain

import (
	"strings"
	"time"
)

// Product belongs to exactly one owner scope: a store, or a (user, store)
// pair when the store was created by a user. Names are stored upper-cased
// and are unique within the owner scope.
type Product struct {
	ID       string `json:"id"`
	StoreID  string `json:"store_id"`
	// OwnerUserID is set only for products of user-owned stores
	OwnerUserID *string `json:"owner_user_id,omitempty"`
	Name        string  `json:"name"`
	Price       int64   `json:"price"` // Cents
	Quantity    int     `json:"quantity"`
	Available   int     `json:"available"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// NormalizeProductName upper-cases a product name the way it is stored and
// compared within an owner scope
func NormalizeProductName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// Same reports whether an edited product carries no actual differences from
// the current row. Edits that hold are rejected with ErrNoChange upstream.
func (p *Product) Same(other *Product) bool {
	return p.Name == other.Name &&
		p.Price == other.Price &&
		p.Quantity == other.Quantity
}
