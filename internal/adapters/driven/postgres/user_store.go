package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/mercado-labs/mercado-core/internal/core/domain"
	"github.com/mercado-labs/mercado-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.UserStore = (*UserStore)(nil)

// UserStore implements driven.UserStore using PostgreSQL
type UserStore struct {
	db *DB
}

// NewUserStore creates a new UserStore
func NewUserStore(db *DB) *UserStore {
	return &UserStore{db: db}
}

const userColumns = `id, email, password_hash, name, cpf, birthdate,
	cep, street, number, complement, reference, neighborhood, city, state,
	mobile_phone, home_phone, customer_id, card_id, recipient_id,
	created_at, updated_at, deleted_at`

// Save creates or fully replaces a user
func (s *UserStore) Save(ctx context.Context, user *domain.Identity) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			password_hash = EXCLUDED.password_hash,
			name = EXCLUDED.name,
			cpf = EXCLUDED.cpf,
			birthdate = EXCLUDED.birthdate,
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
			customer_id = EXCLUDED.customer_id,
			card_id = EXCLUDED.card_id,
			recipient_id = EXCLUDED.recipient_id,
			updated_at = EXCLUDED.updated_at,
			deleted_at = EXCLUDED.deleted_at
	`

	p := user.User
	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		p.Name,
		p.CPF,
		p.Birthdate,
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
		p.CustomerID,
		p.CardID,
		p.RecipientID,
		user.CreatedAt,
		user.UpdatedAt,
		NullTime(user.DeletedAt),
	)
	return mapError(err)
}

// Get retrieves a live user by ID
func (s *UserStore) Get(ctx context.Context, id string) (*domain.Identity, error) {
	return s.getBy(ctx, "id", id)
}

// GetByEmail retrieves a live user by email
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	return s.getBy(ctx, "email", email)
}

// GetByCPF retrieves a live user by CPF
func (s *UserStore) GetByCPF(ctx context.Context, cpf string) (*domain.Identity, error) {
	return s.getBy(ctx, "cpf", cpf)
}

// GetByPhone retrieves a live user by mobile phone
func (s *UserStore) GetByPhone(ctx context.Context, phone string) (*domain.Identity, error) {
	return s.getBy(ctx, "mobile_phone", phone)
}

// Delete soft-deletes a user
func (s *UserStore) Delete(ctx context.Context, id string) error {
	query := `UPDATE users SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`
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

func (s *UserStore) getBy(ctx context.Context, column, value string) (*domain.Identity, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = $1 AND deleted_at IS NULL`

	user := domain.Identity{Kind: domain.KindUser, User: &domain.UserProfile{}}
	p := user.User
	var deletedAt sql.NullTime

	err := s.db.QueryRowContext(ctx, query, value).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&p.Name,
		&p.CPF,
		&p.Birthdate,
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
		&p.CustomerID,
		&p.CardID,
		&p.RecipientID,
		&user.CreatedAt,
		&user.UpdatedAt,
		&deletedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	user.DeletedAt = TimePtr(deletedAt)
	return &user, nil
}
