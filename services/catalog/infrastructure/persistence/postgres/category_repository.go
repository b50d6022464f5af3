package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/stockroom/pkg/database"
	"github.com/ghuser/stockroom/pkg/events"
	catalogdomain "github.com/ghuser/stockroom/services/catalog/domain"
	domainevents "github.com/ghuser/stockroom/services/catalog/domain/events"
	"github.com/ghuser/stockroom/services/catalog/domain/models"
	"github.com/ghuser/stockroom/services/catalog/infrastructure/persistence/postgres/db"
)

// CategoryRepository implements repositories.CategoryRepository against PostgreSQL.
type CategoryRepository struct {
	db     *database.Database
	outbox outbox
}

// NewCategoryRepository returns a CategoryRepository backed by the given pool.
// When bus is non-nil every write also publishes a CategoryEvent in the same transaction.
func NewCategoryRepository(database *database.Database, bus *events.EventBus) *CategoryRepository {
	return &CategoryRepository{db: database, outbox: outbox{bus: bus}}
}

// Save inserts a new Category. Returns ErrCategoryNameTaken on the unique name index.
func (r *CategoryRepository) Save(ctx context.Context, c *models.Category) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := db.New(tx).InsertCategory(ctx, db.InsertCategoryParams{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			CreatedAt:   c.CreatedAt,
			UpdatedAt:   c.UpdatedAt,
		}); err != nil {
			if pgCode(err) == pgUniqueViolation {
				return catalogdomain.ErrCategoryNameTaken
			}
			return fmt.Errorf("insert category: %w", err)
		}
		return r.publish(ctx, tx, domainevents.TopicCategoryCreated, c, c.CreatedAt)
	})
}

// GetByID returns the category or ErrCategoryNotFound.
func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	row, err := db.New(r.db.DB()).GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalogdomain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("query category: %w", err)
	}
	return rowToCategory(row), nil
}

// FindByName looks a category up by its unique name.
func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*models.Category, error) {
	row, err := db.New(r.db.DB()).GetCategoryByName(ctx, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalogdomain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("query category by name: %w", err)
	}
	return rowToCategory(row), nil
}

// FindAll returns every category ordered by name.
func (r *CategoryRepository) FindAll(ctx context.Context) ([]*models.Category, error) {
	rows, err := db.New(r.db.DB()).ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	out := make([]*models.Category, len(rows))
	for i, row := range rows {
		out[i] = rowToCategory(row)
	}
	return out, nil
}

// Replace overwrites name and description and refreshes c from the stored row.
func (r *CategoryRepository) Replace(ctx context.Context, c *models.Category) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		row, err := db.New(tx).UpdateCategory(ctx, db.UpdateCategoryParams{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			UpdatedAt:   time.Now().UTC(),
		})
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				return catalogdomain.ErrCategoryNotFound
			case pgCode(err) == pgUniqueViolation:
				return catalogdomain.ErrCategoryNameTaken
			}
			return fmt.Errorf("update category: %w", err)
		}
		*c = *rowToCategory(row)
		return r.publish(ctx, tx, domainevents.TopicCategoryUpdated, c, c.UpdatedAt)
	})
}

// Delete locks the category row, checks for dependents and removes it in one
// transaction. Concurrent item inserts take a key-share lock on the same row
// for their foreign key check, so they serialize against this delete.
func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		if _, err := q.GetCategoryByIDForUpdate(ctx, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return catalogdomain.ErrCategoryNotFound
			}
			return fmt.Errorf("lock category: %w", err)
		}

		n, err := q.CountItemsByCategory(ctx, id)
		if err != nil {
			return fmt.Errorf("count dependents: %w", err)
		}
		if n > 0 {
			return catalogdomain.ErrCategoryHasDependents
		}

		if err := q.DeleteCategory(ctx, id); err != nil {
			if pgCode(err) == pgForeignKeyViolation {
				return catalogdomain.ErrCategoryHasDependents
			}
			return fmt.Errorf("delete category: %w", err)
		}
		return r.publish(ctx, tx, domainevents.TopicCategoryDeleted, &models.Category{ID: id}, time.Now().UTC())
	})
}

// Count returns the number of categories.
func (r *CategoryRepository) Count(ctx context.Context) (int, error) {
	n, err := db.New(r.db.DB()).CountCategories(ctx)
	if err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return int(n), nil
}

func (r *CategoryRepository) publish(ctx context.Context, tx *sql.Tx, topic string, c *models.Category, at time.Time) error {
	event := domainevents.CategoryEvent{
		EventID:     uuid.New(),
		Version:     eventVersion,
		CategoryID:  c.ID,
		Name:        c.Name,
		Description: c.Description,
		OccurredAt:  at,
	}
	if err := r.outbox.publish(ctx, tx, topic, event.EventID.String(), event); err != nil {
		return fmt.Errorf("publish category event: %w", err)
	}
	return nil
}

// rowToCategory maps a db.CatalogCategory to a domain models.Category.
func rowToCategory(row db.CatalogCategory) *models.Category {
	return &models.Category{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
