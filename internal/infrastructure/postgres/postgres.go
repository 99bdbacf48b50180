// Package postgres implements the store on PostgreSQL through a pgx pool.
// Each session holds one acquired pool connection until it is released.
package postgres

import (
	"context"
	"fmt"
	"time"

	"ducksapi/backend/internal/domain/auth"
	"ducksapi/backend/internal/domain/duck"
	"ducksapi/backend/internal/domain/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Database wraps the pgx connection pool.
type Database struct {
	Pool *pgxpool.Pool
}

// New establishes a new connection pool against the provided DSN.
func New(ctx context.Context, dsn string) (*Database, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	return &Database{Pool: pool}, nil
}

// Close drains the connection pool.
func (db *Database) Close() {
	if db != nil && db.Pool != nil {
		db.Pool.Close()
	}
}

var _ store.Connector = (*Database)(nil)

// Connect acquires a pooled connection for the lifetime of one operation.
func (db *Database) Connect(ctx context.Context) (store.Session, error) {
	conn, err := db.Pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	return &session{conn: conn}, nil
}

// querier is the subset of pgx shared by connections, pools and transactions.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type session struct {
	conn *pgxpool.Conn
}

func (s *session) Accounts() auth.AccountRepository { return NewAccountRepository(s.conn) }

func (s *session) Ducks() duck.Repository { return NewDuckRepository(s.conn) }

func (s *session) Ping(ctx context.Context) error { return s.conn.Ping(ctx) }

func (s *session) Release() {
	if s.conn != nil {
		s.conn.Release()
		s.conn = nil
	}
}
