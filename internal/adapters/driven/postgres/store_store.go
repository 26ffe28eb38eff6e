package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/mercado-labs/mercado-core/internal/core/domain"
	"github.com/mercado-labs/mercado-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.StoreStore = (*StoreStore)(nil)

// StoreStore implements driven.StoreStore using PostgreSQL
type StoreStore struct {
	db *DB
}

// NewStoreStore creates a new StoreStore
func NewStoreStore(db *DB) *StoreStore {
	return &StoreStore{db: db}
}

const storeColumns = `id, email, password_hash, legal_name, trade_name, cnpj, cpf,
	cep, street, number, complement, reference, neighborhood, city, state,
	mobile_phone, home_phone, owner_user_id, recipient_id,
	created_at, updated_at, deleted_at`

// Save creates or fully replaces a store
func (s *StoreStore) Save(ctx context.Context, store *domain.Identity) error {
	query := `
		INSERT INTO stores (` + storeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			password_hash = EXCLUDED.password_hash,
			legal_name = EXCLUDED.legal_name,
			trade_name = EXCLUDED.trade_name,
			cnpj = EXCLUDED.cnpj,
			cpf = EXCLUDED.cpf,
			cep = EXCLUDED.cep,
			street = EXCLUDED.street,
			number = EXCLUDED.number,
			complement = EXCLUDED.complement,
			reference = EXCLUDED.reference,
			neighborhood = EXCLUDED.neighborhood,
			city = EXCLUDED.city,
			state = EXCLUDED.state,
			mobile_phone = EXCLUDED.mobile_phone,
			home_phone = EXCLUDED.home_phone,
			owner_user_id = EXCLUDED.owner_user_id,
			recipient_id = EXCLUDED.recipient_id,
			updated_at = EXCLUDED.updated_at,
			deleted_at = EXCLUDED.deleted_at
	`

	p := store.Store
	_, err := s.db.ExecContext(ctx, query,
		store.ID,
		store.Email,
		store.PasswordHash,
		p.LegalName,
		p.TradeName,
		p.CNPJ,
		p.CPF,
		p.Address.CEP,
		p.Address.Street,
		p.Address.Number,
		p.Address.Complement,
		p.Address.Reference,
		p.Address.Neighborhood,
		p.Address.City,
		p.Address.State,
		p.MobilePhone,
		p.HomePhone,
		NullString(p.OwnerUserID),
		p.RecipientID,
		store.CreatedAt,
		store.UpdatedAt,
		NullTime(store.DeletedAt),
	)
	return mapError(err)
}

// Get retrieves a live store by ID
func (s *StoreStore) Get(ctx context.Context, id string) (*domain.Identity, error) {
	return s.getBy(ctx, "id", id)
}

// GetByEmail retrieves a live store by email
func (s *StoreStore) GetByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	return s.getBy(ctx, "email", email)
}

// GetByName retrieves a live store by its normalized trade name
func (s *StoreStore) GetByName(ctx context.Context, name string) (*domain.Identity, error) {
	return s.getBy(ctx, "trade_name", name)
}

// GetByCNPJ retrieves a live store by CNPJ
func (s *StoreStore) GetByCNPJ(ctx context.Context, cnpj string) (*domain.Identity, error) {
	return s.getBy(ctx, "cnpj", cnpj)
}

// GetByPhone retrieves a live store by mobile phone
func (s *StoreStore) GetByPhone(ctx context.Context, phone string) (*domain.Identity, error) {
	return s.getBy(ctx, "mobile_phone", phone)
}

// ListByOwner lists the live stores owned by a user
func (s *StoreStore) ListByOwner(ctx context.Context, userID string) ([]*domain.Identity, error) {
	query := `SELECT ` + storeColumns + ` FROM stores
		WHERE owner_user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stores []*domain.Identity
	for rows.Next() {
		store, err := scanStore(rows)
		if err != nil {
			return nil, err
		}
		stores = append(stores, store)
	}
	return stores, rows.Err()
}

// Delete soft-deletes a store
func (s *StoreStore) Delete(ctx context.Context, id string) error {
	query := `UPDATE stores SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`
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

// DeleteByOwner soft-deletes every store owned by a user
func (s *StoreStore) DeleteByOwner(ctx context.Context, userID string) error {
	query := `UPDATE stores SET deleted_at = $2 WHERE owner_user_id = $1 AND deleted_at IS NULL`
	_, err := s.db.ExecContext(ctx, query, userID, time.Now().UTC())
	return err
}

func (s *StoreStore) getBy(ctx context.Context, column, value string) (*domain.Identity, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE ` + column + ` = $1 AND deleted_at IS NULL`

	row := s.db.QueryRowContext(ctx, query, value)
	store, err := scanStore(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}

// scanner covers both sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanStore(row scanner) (*domain.Identity, error) {
	store := domain.Identity{Kind: domain.KindStore, Store: &domain.StoreProfile{}}
	p := store.Store
	var ownerUserID sql.NullString
	var deletedAt sql.NullTime

	err := row.Scan(
		&store.ID,
		&store.Email,
		&store.PasswordHash,
		&p.LegalName,
		&p.TradeName,
		&p.CNPJ,
		&p.CPF,
		&p.Address.CEP,
		&p.Address.Street,
		&p.Address.Number,
		&p.Address.Complement,
		&p.Address.Reference,
		&p.Address.Neighborhood,
		&p.Address.City,
		&p.Address.State,
		&p.MobilePhone,
		&p.HomePhone,
		&ownerUserID,
		&p.RecipientID,
		&store.CreatedAt,
		&store.UpdatedAt,
		&deletedAt,
	)
	if err != nil {
		return nil, err
	}

	p.OwnerUserID = StringPtr(ownerUserID)
	store.DeletedAt = TimePtr(deletedAt)
	return &store, nil
}
