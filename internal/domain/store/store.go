// Package store describes the scoped connection every request works through.
//
// A Session is acquired with Connector.Connect, used for the duration of one
// operation and handed back with Release. Callers release with defer right
// after a successful Connect so every exit path gives the connection back.
package store

import (
	"context"

	"ducksapi/backend/internal/domain/auth"
	"ducksapi/backend/internal/domain/duck"
)

// Connector hands out scoped store sessions.
type Connector interface {
	Connect(ctx context.Context) (Session, error)
}

// Session is one acquired connection and the repositories bound to it.
type Session interface {
	Accounts() auth.AccountRepository
	Ducks() duck.Repository
	Ping(ctx context.Context) error
	Release()
}
