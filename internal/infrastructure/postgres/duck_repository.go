package postgres

import (
	"context"
	"errors"
	"fmt"

	domain "ducksapi/backend/internal/domain/duck"

	"github.com/jackc/pgx/v5"
)

const duckColumns = `id, name, age, style, color, created_by, likes, created_at, updated_at`

// DuckRepository persists ducks in PostgreSQL.
type DuckRepository struct {
	db querier
}

// NewDuckRepository constructs a repository.
func NewDuckRepository(db querier) *DuckRepository {
	return &DuckRepository{db: db}
}

// Create inserts a new duck.
func (r *DuckRepository) Create(ctx context.Context, d *domain.Duck) error {
	const query = `
INSERT INTO ducks (id, name, age, style, color, created_by, likes, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`
	_, err := r.db.Exec(ctx, query,
		d.ID,
		d.Name,
		d.Age,
		d.Style,
		d.Color,
		d.CreatedBy,
		d.Likes,
		d.CreatedAt,
		d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert duck: %w", err)
	}
	return nil
}

// GetByID fetches a duck by id.
func (r *DuckRepository) GetByID(ctx context.Context, id string) (*domain.Duck, error) {
	query := `SELECT ` + duckColumns + ` FROM ducks WHERE id = $1`
	return scanOne(r.db.QueryRow(ctx, query, id))
}

// GetAt returns the duck at offset in insertion order.
func (r *DuckRepository) GetAt(ctx context.Context, offset int) (*domain.Duck, error) {
	if offset < 0 {
		return nil, domain.ErrNotFound
	}
	query := `SELECT ` + duckColumns + ` FROM ducks ORDER BY seq OFFSET $1 LIMIT 1`
	return scanOne(r.db.QueryRow(ctx, query, offset))
}

// List returns all ducks in insertion order.
func (r *DuckRepository) List(ctx context.Context) ([]*domain.Duck, error) {
	query := `SELECT ` + duckColumns + ` FROM ducks ORDER BY seq`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select ducks: %w", err)
	}
	defer rows.Close()

	ducks := []*domain.Duck{}
	for rows.Next() {
		d, err := scanDuck(rows)
		if err != nil {
			return nil, fmt.Errorf("scan duck: %w", err)
		}
		ducks = append(ducks, d)
	}
	return ducks, rows.Err()
}

// Count returns the number of stored ducks.
func (r *DuckRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM ducks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count ducks: %w", err)
	}
	return n, nil
}

// Update writes duck updates to the database.
func (r *DuckRepository) Update(ctx context.Context, d *domain.Duck) error {
	const query = `
UPDATE ducks
SET name = $2,
    age = $3,
    style = $4,
    color = $5,
    likes = $6,
    updated_at = $7
WHERE id = $1
`
	tag, err := r.db.Exec(ctx, query,
		d.ID,
		d.Name,
		d.Age,
		d.Style,
		d.Color,
		d.Likes,
		d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update duck: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a duck by id.
func (r *DuckRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM ducks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete duck: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanOne(row pgx.Row) (*domain.Duck, error) {
	d, err := scanDuck(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select duck: %w", err)
	}
	return d, nil
}

func scanDuck(row pgx.Row) (*domain.Duck, error) {
	var d domain.Duck
	err := row.Scan(
		&d.ID,
		&d.Name,
		&d.Age,
		&d.Style,
		&d.Color,
		&d.CreatedBy,
		&d.Likes,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
