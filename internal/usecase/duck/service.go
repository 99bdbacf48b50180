package duck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	domain "ducksapi/backend/internal/domain/duck"
	"ducksapi/backend/internal/domain/store"
	"ducksapi/backend/internal/logging"
	"ducksapi/backend/internal/validation"

	"github.com/google/uuid"
)

// Service encapsulates duck use cases.
type Service struct {
	store     store.Connector
	validator *validation.Validator
	log       *slog.Logger
	nowFunc   func() time.Time
	pick      func(n int) int
}

// NewService constructs a duck service.
func NewService(connector store.Connector, log *slog.Logger) *Service {
	if log == nil {
		log = logging.Nop()
	}
	return &Service{
		store:     connector,
		validator: validation.New(),
		log:       logging.Named(log, "ducks"),
		nowFunc:   time.Now,
		pick:      rand.IntN,
	}
}

// CreateInput contains the payload required for duck creation.
type CreateInput struct {
	Name  string `json:"name" validate:"required,max=255"`
	Age   *int   `json:"age" validate:"required,gte=0"`
	Style string `json:"style" validate:"required,max=255"`
	Color string `json:"color" validate:"required,max=255"`
	Likes *int   `json:"likes" validate:"omitempty,gte=0"`
}

// UpdateInput encapsulates partial duck updates.
type UpdateInput struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=255"`
	Age   *int    `json:"age" validate:"omitempty,gte=0"`
	Style *string `json:"style" validate:"omitempty,min=1,max=255"`
	Color *string `json:"color" validate:"omitempty,min=1,max=255"`
	Likes *int    `json:"likes" validate:"omitempty,gte=0"`
}

// Create stores a new duck attributed to createdBy.
func (s *Service) Create(ctx context.Context, createdBy string, input CreateInput) (*domain.Duck, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Style = strings.TrimSpace(input.Style)
	input.Color = strings.TrimSpace(input.Color)
	if err := s.validator.Struct(input, domain.ErrValidation); err != nil {
		return nil, err
	}

	now := s.nowFunc().UTC()
	d := &domain.Duck{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Age:       *input.Age,
		Style:     input.Style,
		Color:     input.Color,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.Likes != nil {
		d.Likes = *input.Likes
	}

	sess, err := s.store.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("connect store: %w", err)
	}
	defer sess.Release()

	if err := sess.Ducks().Create(ctx, d); err != nil {
		return nil, fmt.Errorf("create duck: %w", err)
	}
	s.log.InfoContext(ctx, "duck created", "duck_id", d.ID, "created_by", createdBy)
	return d, nil
}

// List retrieves all ducks in insertion order.
func (s *Service) List(ctx context.Context) ([]*domain.Duck, error) {
	sess, err := s.store.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("connect store: %w", err)
	}
	defer sess.Release()

	ducks, err := sess.Ducks().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list ducks: %w", err)
	}
	if ducks == nil {
		ducks = []*domain.Duck{}
	}
	return ducks, nil
}

// Get fetches a duck by id.
func (s *Service) Get(ctx context.Context, id string) (*domain.Duck, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}

	sess, err := s.store.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("connect store: %w", err)
	}
	defer sess.Release()

	return sess.Ducks().GetByID(ctx, id)
}

// Random returns one duck chosen uniformly. An empty store yields
// domain.ErrEmpty.
func (s *Service) Random(ctx context.Context) (*domain.Duck, error) {
	sess, err := s.store.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("connect store: %w", err)
	}
	defer sess.Release()

	ducks := sess.Ducks()
	count, err := ducks.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count ducks: %w", err)
	}
	if count == 0 {
		return nil, domain.ErrEmpty
	}

	d, err := ducks.GetAt(ctx, s.pick(count))
	if errors.Is(err, domain.ErrNotFound) {
		// Deleted between count and fetch.
		return nil, domain.ErrEmpty
	}
	return d, err
}

// Update applies partial updates to a duck.
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*domain.Duck, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}
	trimPtr(input.Name)
	trimPtr(input.Style)
	trimPtr(input.Color)
	if err := s.validator.Struct(input, domain.ErrValidation); err != nil {
		return nil, err
	}

	sess, err := s.store.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("connect store: %w", err)
	}
	defer sess.Release()

	ducks := sess.Ducks()
	d, err := ducks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	d.Update(input.Name, input.Age, input.Style, input.Color, input.Likes, s.nowFunc().UTC())

	if err := ducks.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Delete removes a duck.
func (s *Service) Delete(ctx context.Context, id string) error {
	id, err := parseID(id)
	if err != nil {
		return err
	}

	sess, err := s.store.Connect(ctx)
	if err != nil {
		return fmt.Errorf("connect store: %w", err)
	}
	defer sess.Release()

	if err := sess.Ducks().Delete(ctx, id); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "duck deleted", "duck_id", id)
	return nil
}

// parseID canonicalises a duck id. Anything that is not a UUID cannot name a
// stored duck.
func parseID(raw string) (string, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", domain.ErrNotFound
	}
	return parsed.String(), nil
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
