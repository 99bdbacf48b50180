package memory

import (
	"context"

	"ducksapi/backend/internal/domain/duck"
)

type duckRepository struct {
	s *Store
}

func (r duckRepository) Create(_ context.Context, d *duck.Duck) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.ducks = append(r.s.ducks, *d)
	return nil
}

func (r duckRepository) GetByID(_ context.Context, id string) (*duck.Duck, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	i := r.s.indexOf(id)
	if i < 0 {
		return nil, duck.ErrNotFound
	}
	d := r.s.ducks[i]
	return &d, nil
}

func (r duckRepository) GetAt(_ context.Context, offset int) (*duck.Duck, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if offset < 0 || offset >= len(r.s.ducks) {
		return nil, duck.ErrNotFound
	}
	d := r.s.ducks[offset]
	return &d, nil
}

func (r duckRepository) List(_ context.Context) ([]*duck.Duck, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*duck.Duck, 0, len(r.s.ducks))
	for _, d := range r.s.ducks {
		out = append(out, &d)
	}
	return out, nil
}

func (r duckRepository) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return len(r.s.ducks), nil
}

func (r duckRepository) Update(_ context.Context, d *duck.Duck) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.indexOf(d.ID)
	if i < 0 {
		return duck.ErrNotFound
	}
	r.s.ducks[i] = *d
	return nil
}

func (r duckRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.indexOf(id)
	if i < 0 {
		return duck.ErrNotFound
	}
	r.s.ducks = append(r.s.ducks[:i], r.s.ducks[i+1:]...)
	return nil
}

// indexOf must be called with mu held.
func (s *Store) indexOf(id string) int {
	for i := range s.ducks {
		if s.ducks[i].ID == id {
			return i
		}
	}
	return -1
}
