package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups Items. Its item set is never stored on the record; it is
// resolved by querying Items whose CategoryID equals ID.
type Category struct {
	ID          uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCategory constructs a Category with a generated ID and current timestamps.
// name and description are expected to be normalized already.
func NewCategory(name, description string) *Category {
	now := time.Now().UTC()
	return &Category{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// CategoryDetail is a Category joined with the Items that reference it.
type CategoryDetail struct {
	Category *Category
	Items    []*Item
}

// ItemIDs returns the ids of the dependent items, in the order they were resolved.
func (d *CategoryDetail) ItemIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(d.Items))
	for i, it := range d.Items {
		ids[i] = it.ID
	}
	return ids
}
