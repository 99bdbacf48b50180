package postgres

import (
	"context"
	"errors"
	"fmt"

	domain "ducksapi/backend/internal/domain/auth"

	"github.com/jackc/pgx/v5"
)

// AccountRepository persists accounts in PostgreSQL.
type AccountRepository struct {
	db querier
}

// NewAccountRepository constructs a repository.
func NewAccountRepository(db querier) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create inserts a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	const query = `
INSERT INTO accounts (id, name, email, password_hash, created_at)
VALUES ($1, $2, $3, $4, $5)
`
	_, err := r.db.Exec(ctx, query,
		account.ID,
		account.Name,
		account.Email,
		account.PasswordHash,
		account.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailExists
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByEmail looks up an account by email.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	const query = `
SELECT id, name, email, password_hash, created_at
FROM accounts WHERE email = $1
`
	return r.getOne(ctx, query, email)
}

// GetByID fetches an account by id.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	const query = `
SELECT id, name, email, password_hash, created_at
FROM accounts WHERE id::text = $1
`
	return r.getOne(ctx, query, id)
}

func (r *AccountRepository) getOne(ctx context.Context, query string, arg any) (*domain.Account, error) {
	var a domain.Account
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&a.ID,
		&a.Name,
		&a.Email,
		&a.PasswordHash,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("select account: %w", err)
	}
	return &a, nil
}
