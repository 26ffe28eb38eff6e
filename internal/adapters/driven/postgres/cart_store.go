package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/mercado-labs/mercado-core/internal/core/domain"
	"github.com/mercado-labs/mercado-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.CartStore = (*CartStore)(nil)

// CartStore implements driven.CartStore using PostgreSQL. The cart row and
// its items live in separate tables; SetItems swaps the item set inside a
// transaction.
type CartStore struct {
	db *DB
}

// NewCartStore creates a new CartStore
func NewCartStore(db *DB) *CartStore {
	return &CartStore{db: db}
}

// Create creates the empty cart that accompanies a new user
func (s *CartStore) Create(ctx context.Context, cart *domain.Cart) error {
	query := `INSERT INTO carts (id, user_id, created_at, updated_at) VALUES ($1, $2, $3, $4)`
	_, err := s.db.ExecContext(ctx, query, cart.ID, cart.UserID, cart.CreatedAt, cart.UpdatedAt)
	return mapError(err)
}

// GetByUser retrieves a user's cart with its items
func (s *CartStore) GetByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	query := `SELECT id, user_id, created_at, updated_at FROM carts WHERE user_id = $1`

	var cart domain.Cart
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&cart.ID,
		&cart.UserID,
		&cart.CreatedAt,
		&cart.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT product_id, quantity FROM cart_items WHERE cart_id = $1`, cart.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(&item.ProductID, &item.Quantity); err != nil {
			return nil, err
		}
		cart.Items = append(cart.Items, item)
	}
	return &cart, rows.Err()
}

// SetItems replaces the cart's item set
func (s *CartStore) SetItems(ctx context.Context, cartID string, items []domain.CartItem) error {
	return s.db.Transaction(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE carts SET updated_at = $2 WHERE id = $1`, cartID, time.Now().UTC())
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrNotFound
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
			return err
		}
		for _, item := range items {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO cart_items (cart_id, product_id, quantity) VALUES ($1, $2, $3)`,
				cartID, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteByUser removes a user's cart and its items
func (s *CartStore) DeleteByUser(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM carts WHERE user_id = $1`, userID)
	return err
}
