// Package memory is an in-process store with the same scoped-session
// contract and uniqueness rules as the Postgres store.
package memory

import (
	"context"
	"sync"
	"sync/atomic"

	"ducksapi/backend/internal/domain/auth"
	"ducksapi/backend/internal/domain/duck"
	"ducksapi/backend/internal/domain/store"
)

// Store keeps accounts and ducks in memory. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	accounts map[string]auth.Account
	emails   map[string]string
	ducks    []duck.Duck
	open     atomic.Int64
}

// New constructs an empty store.
func New() *Store {
	return &Store{
		accounts: make(map[string]auth.Account),
		emails:   make(map[string]string),
	}
}

var _ store.Connector = (*Store)(nil)

// Connect hands out a session. Sessions must be released.
func (s *Store) Connect(ctx context.Context) (store.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.open.Add(1)
	return &session{store: s}, nil
}

// OpenSessions reports how many sessions are acquired and not yet released.
func (s *Store) OpenSessions() int {
	return int(s.open.Load())
}

type session struct {
	store    *Store
	released atomic.Bool
}

func (ss *session) Accounts() auth.AccountRepository { return accountRepository{ss.store} }

func (ss *session) Ducks() duck.Repository { return duckRepository{ss.store} }

func (ss *session) Ping(ctx context.Context) error { return ctx.Err() }

func (ss *session) Release() {
	if ss.released.CompareAndSwap(false, true) {
		ss.store.open.Add(-1)
	}
}
