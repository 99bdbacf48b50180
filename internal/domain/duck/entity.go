package duck

import (
	"errors"
	"time"
)

var (
	// ErrNotFound indicates a duck could not be located.
	ErrNotFound = errors.New("duck not found")
	// ErrEmpty signals that the store holds no ducks at all.
	ErrEmpty = errors.New("no ducks stored")
	// ErrValidation marks malformed duck input.
	ErrValidation = errors.New("validation failed")
)

// Duck captures the state of an individual duck.
type Duck struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Style     string    `json:"style"`
	Color     string    `json:"color"`
	CreatedBy string    `json:"createdBy"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Update applies arbitrary field updates to the duck.
func (d *Duck) Update(name *string, age *int, style, color *string, likes *int, now time.Time) {
	if name != nil {
		d.Name = *name
	}
	if age != nil {
		d.Age = *age
	}
	if style != nil {
		d.Style = *style
	}
	if color != nil {
		d.Color = *color
	}
	if likes != nil {
		d.Likes = *likes
	}
	d.UpdatedAt = now
}
