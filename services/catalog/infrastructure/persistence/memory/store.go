// Package memory provides in-process implementations of the catalog
// repositories. Categories and items share one lock so the referential checks
// (unique names, existing category, no dependents on delete) are atomic, the
// same guarantees the postgres store gets from its constraints.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	catalogdomain "github.com/ghuser/stockroom/services/catalog/domain"
	"github.com/ghuser/stockroom/services/catalog/domain/models"
)

// Store is the shared state behind CategoryRepository and ItemRepository.
type Store struct {
	mu         sync.RWMutex
	categories map[uuid.UUID]models.Category
	items      map[uuid.UUID]models.Item
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		categories: make(map[uuid.UUID]models.Category),
		items:      make(map[uuid.UUID]models.Item),
	}
}

// Categories returns the category repository view of the store.
func (s *Store) Categories() *CategoryRepository { return &CategoryRepository{s: s} }

// Items returns the item repository view of the store.
func (s *Store) Items() *ItemRepository { return &ItemRepository{s: s} }

// CategoryRepository implements repositories.CategoryRepository in memory.
type CategoryRepository struct{ s *Store }

// Save inserts c, rejecting a name another category already uses.
func (r *CategoryRepository) Save(_ context.Context, c *models.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.nameTaken(c.Name, c.ID) {
		return catalogdomain.ErrCategoryNameTaken
	}
	r.s.categories[c.ID] = *c
	return nil
}

// GetByID returns a copy of the category or ErrCategoryNotFound.
func (r *CategoryRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, catalogdomain.ErrCategoryNotFound
	}
	return &c, nil
}

// FindByName returns the category with exactly this name.
func (r *CategoryRepository) FindByName(_ context.Context, name string) (*models.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.categories {
		if c.Name == name {
			return &c, nil
		}
	}
	return nil, catalogdomain.ErrCategoryNotFound
}

// FindAll returns every category ordered by name.
func (r *CategoryRepository) FindAll(_ context.Context) ([]*models.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*models.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

// Replace overwrites c, keeping CreatedAt and stamping UpdatedAt.
func (r *CategoryRepository) Replace(_ context.Context, c *models.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	prev, ok := r.s.categories[c.ID]
	if !ok {
		return catalogdomain.ErrCategoryNotFound
	}
	if r.s.nameTaken(c.Name, c.ID) {
		return catalogdomain.ErrCategoryNameTaken
	}
	c.CreatedAt = prev.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	r.s.categories[c.ID] = *c
	return nil
}

// Delete removes the category unless an item still references it.
func (r *CategoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[id]; !ok {
		return catalogdomain.ErrCategoryNotFound
	}
	for _, it := range r.s.items {
		if it.CategoryID == id {
			return catalogdomain.ErrCategoryHasDependents
		}
	}
	delete(r.s.categories, id)
	return nil
}

// Count returns the number of categories.
func (r *CategoryRepository) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.categories), nil
}

// ItemRepository implements repositories.ItemRepository in memory.
type ItemRepository struct{ s *Store }

// Save inserts it when its category exists.
func (r *ItemRepository) Save(_ context.Context, it *models.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[it.CategoryID]; !ok {
		return catalogdomain.ErrCategoryMissing
	}
	r.s.items[it.ID] = *it
	return nil
}

// GetByID returns a copy of the item or ErrItemNotFound.
func (r *ItemRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	it, ok := r.s.items[id]
	if !ok {
		return nil, catalogdomain.ErrItemNotFound
	}
	return &it, nil
}

// FindAll returns every item ordered by name.
func (r *ItemRepository) FindAll(_ context.Context) ([]*models.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.collectItems(func(models.Item) bool { return true }), nil
}

// FindByCategory returns the items filed under categoryID ordered by name.
func (r *ItemRepository) FindByCategory(_ context.Context, categoryID uuid.UUID) ([]*models.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.collectItems(func(it models.Item) bool { return it.CategoryID == categoryID }), nil
}

// CountByCategory returns how many items reference categoryID.
func (r *ItemRepository) CountByCategory(_ context.Context, categoryID uuid.UUID) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, it := range r.s.items {
		if it.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

// Replace overwrites it, keeping CreatedAt and stamping UpdatedAt.
func (r *ItemRepository) Replace(_ context.Context, it *models.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	prev, ok := r.s.items[it.ID]
	if !ok {
		return catalogdomain.ErrItemNotFound
	}
	if _, ok := r.s.categories[it.CategoryID]; !ok {
		return catalogdomain.ErrCategoryMissing
	}
	it.CreatedAt = prev.CreatedAt
	it.UpdatedAt = time.Now().UTC()
	r.s.items[it.ID] = *it
	return nil
}

// Delete removes the item.
func (r *ItemRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[id]; !ok {
		return catalogdomain.ErrItemNotFound
	}
	delete(r.s.items, id)
	return nil
}

// Count returns the number of items.
func (r *ItemRepository) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.items), nil
}

// nameTaken reports whether another category already uses name. Caller holds mu.
func (s *Store) nameTaken(name string, self uuid.UUID) bool {
	for id, c := range s.categories {
		if id != self && c.Name == name {
			return true
		}
	}
	return false
}

// collectItems returns copies of matching items sorted by name. Caller holds mu.
func (s *Store) collectItems(match func(models.Item) bool) []*models.Item {
	out := make([]*models.Item, 0)
	for _, it := range s.items {
		if match(it) {
			out = append(out, &it)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}
