package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is an inventory record that belongs to exactly one Category.
type Item struct {
	ID          uuid.UUID
	Name        string
	Description string // empty when absent
	CategoryID  uuid.UUID
	Price       decimal.NullDecimal
	NIS         int64 // stock number
	DAdded      time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ItemFields are the replaceable fields of an Item, already normalized.
type ItemFields struct {
	Name        string
	Description string
	CategoryID  uuid.UUID
	Price       decimal.NullDecimal
	NIS         int64
	DAdded      time.Time
}

// NewItem constructs an Item with a generated ID. A zero DAdded defaults to
// the creation date.
func NewItem(f ItemFields) *Item {
	now := time.Now().UTC()
	it := &Item{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	it.Apply(f)
	if it.DAdded.IsZero() {
		it.DAdded = TruncateToDate(now)
	}
	return it
}

// Apply replaces every mutable field with f. ID and CreatedAt are untouched.
func (i *Item) Apply(f ItemFields) {
	i.Name = f.Name
	i.Description = f.Description
	i.CategoryID = f.CategoryID
	i.Price = f.Price
	i.NIS = f.NIS
	i.DAdded = TruncateToDate(f.DAdded)
}

// ItemDetail is an Item joined with its Category. Category is nil only when
// the reference could not be resolved.
type ItemDetail struct {
	Item     *Item
	Category *Category
}

// TruncateToDate drops the clock part of t, keeping its calendar date in UTC.
func TruncateToDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
