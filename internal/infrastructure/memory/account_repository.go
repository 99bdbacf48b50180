package memory

import (
	"context"

	"ducksapi/backend/internal/domain/auth"
)

type accountRepository struct {
	s *Store
}

func (r accountRepository) Create(_ context.Context, account *auth.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.emails[account.Email]; exists {
		return auth.ErrEmailExists
	}
	r.s.accounts[account.ID] = *account
	r.s.emails[account.Email] = account.ID
	return nil
}

func (r accountRepository) GetByEmail(_ context.Context, email string) (*auth.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.emails[email]
	if !ok {
		return nil, auth.ErrAccountNotFound
	}
	account := r.s.accounts[id]
	return &account, nil
}

func (r accountRepository) GetByID(_ context.Context, id string) (*auth.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	account, ok := r.s.accounts[id]
	if !ok {
		return nil, auth.ErrAccountNotFound
	}
	return &account, nil
}
