package duck

import "context"

// Repository defines persistence behaviours for ducks.
type Repository interface {
	Create(ctx context.Context, duck *Duck) error
	GetByID(ctx context.Context, id string) (*Duck, error)
	// GetAt returns the duck at a zero-based offset in insertion order.
	GetAt(ctx context.Context, offset int) (*Duck, error)
	List(ctx context.Context) ([]*Duck, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, duck *Duck) error
	Delete(ctx context.Context, id string) error
}
