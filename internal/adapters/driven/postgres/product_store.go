package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/mercado-labs/mercado-core/internal/core/domain"
	"github.com/mercado-labs/mercado-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ProductStore = (*ProductStore)(nil)

// ProductStore implements driven.ProductStore using PostgreSQL
type ProductStore struct {
	db *DB
}

// NewProductStore creates a new ProductStore
func NewProductStore(db *DB) *ProductStore {
	return &ProductStore{db: db}
}

const productColumns = `id, store_id, owner_user_id, name, price, quantity,
	available, created_at, updated_at, deleted_at`

// Save creates or fully replaces a product
func (s *ProductStore) Save(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			price = EXCLUDED.price,
			quantity = EXCLUDED.quantity,
			available = EXCLUDED.available,
			updated_at = EXCLUDED.updated_at,
			deleted_at = EXCLUDED.deleted_at
	`

	_, err := s.db.ExecContext(ctx, query,
		product.ID,
		product.StoreID,
		NullString(product.OwnerUserID),
		product.Name,
		product.Price,
		product.Quantity,
		product.Available,
		product.CreatedAt,
		product.UpdatedAt,
		NullTime(product.DeletedAt),
	)
	return mapError(err)
}

// Get retrieves a live product by ID
func (s *ProductStore) Get(ctx context.Context, id string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND deleted_at IS NULL`

	row := s.db.QueryRowContext(ctx, query, id)
	product, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return product, nil
}

// GetByStoreAndName retrieves a live product by its normalized name within
// a store
func (s *ProductStore) GetByStoreAndName(ctx context.Context, storeID, name string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE store_id = $1 AND name = $2 AND deleted_at IS NULL`

	row := s.db.QueryRowContext(ctx, query, storeID, name)
	product, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return product, nil
}

// ListByStore lists the live products of a store
func (s *ProductStore) ListByStore(ctx context.Context, storeID string) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE store_id = $1 AND deleted_at IS NULL
		ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

// Delete soft-deletes a product
func (s *ProductStore) Delete(ctx context.Context, id string) error {
	query := `UPDATE products SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	res, err := s.db.ExecContext(ctx, query, id, time.Now().UTC())
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
	return nil
}

// DeleteByStore soft-deletes every product of a store
func (s *ProductStore) DeleteByStore(ctx context.Context, storeID string) error {
	query := `UPDATE products SET deleted_at = $2 WHERE store_id = $1 AND deleted_at IS NULL`
	_, err := s.db.ExecContext(ctx, query, storeID, time.Now().UTC())
	return err
}

// DeleteByOwnerUser soft-deletes every product of a user's stores
func (s *ProductStore) DeleteByOwnerUser(ctx context.Context, userID string) error {
	query := `UPDATE products SET deleted_at = $2 WHERE owner_user_id = $1 AND deleted_at IS NULL`
	_, err := s.db.ExecContext(ctx, query, userID, time.Now().UTC())
	return err
}

func scanProduct(row scanner) (*domain.Product, error) {
	var product domain.Product
	var ownerUserID sql.NullString
	var deletedAt sql.NullTime

	err := row.Scan(
		&product.ID,
		&product.StoreID,
		&ownerUserID,
		&product.Name,
		&product.Price,
		&product.Quantity,
		&product.Available,
		&product.CreatedAt,
		&product.UpdatedAt,
		&deletedAt,
	)
	if err != nil {
		return nil, err
	}

	product.OwnerUserID = StringPtr(ownerUserID)
	product.DeletedAt = TimePtr(deletedAt)
	return &product, nil
}
