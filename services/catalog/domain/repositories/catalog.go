package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/stockroom/services/catalog/domain/models"
)

// CategoryRepository is the persistence interface for Categories.
// The domain layer owns this interface; infrastructure implements it.
type CategoryRepository interface {
	// Save inserts a new category. Returns ErrCategoryNameTaken when the
	// name is already in use.
	Save(ctx context.Context, category *models.Category) error

	// GetByID returns ErrCategoryNotFound when no category has the id.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)

	// FindByName is an exact, case-sensitive lookup. Returns ErrCategoryNotFound
	// when no category has the name.
	FindByName(ctx context.Context, name string) (*models.Category, error)

	// FindAll returns every category sorted by name ascending.
	FindAll(ctx context.Context) ([]*models.Category, error)

	// Replace overwrites name and description. Returns ErrCategoryNotFound
	// or ErrCategoryNameTaken.
	Replace(ctx context.Context, category *models.Category) error

	// Delete removes the category only if no item references it, as one
	// atomic step. Returns ErrCategoryNotFound or ErrCategoryHasDependents.
	Delete(ctx context.Context, id uuid.UUID) error

	Count(ctx context.Context) (int, error)
}

// ItemRepository is the persistence interface for Items.
type ItemRepository interface {
	// Save inserts a new item. Returns ErrCategoryMissing when the referenced
	// category does not exist at write time.
	Save(ctx context.Context, item *models.Item) error

	// GetByID returns ErrItemNotFound when no item has the id.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error)

	// FindAll returns every item sorted by name ascending.
	FindAll(ctx context.Context) ([]*models.Item, error)

	// FindByCategory returns the items referencing categoryID, sorted by name.
	FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]*models.Item, error)

	// CountByCategory counts the items referencing categoryID.
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int, error)

	// Replace overwrites every mutable field. Returns ErrItemNotFound or
	// ErrCategoryMissing.
	Replace(ctx context.Context, item *models.Item) error

	// Delete returns ErrItemNotFound when no item has the id.
	Delete(ctx context.Context, id uuid.UUID) error

	Count(ctx context.Context) (int, error)
}
