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

// ItemRepository implements repositories.ItemRepository against PostgreSQL.
type ItemRepository struct {
	db     *database.Database
	outbox outbox
}

// NewItemRepository returns an ItemRepository backed by the given pool.
// When bus is non-nil every write also publishes an ItemEvent in the same transaction.
func NewItemRepository(database *database.Database, bus *events.EventBus) *ItemRepository {
	return &ItemRepository{db: database, outbox: outbox{bus: bus}}
}

// Save inserts a new Item. The foreign key check runs at insert time, so a
// category deleted since validation yields ErrCategoryMissing.
func (r *ItemRepository) Save(ctx context.Context, it *models.Item) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := db.New(tx).InsertItem(ctx, db.InsertItemParams{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			CategoryID:  it.CategoryID,
			Price:       it.Price,
			Nis:         it.NIS,
			DAdded:      it.DAdded,
			CreatedAt:   it.CreatedAt,
			UpdatedAt:   it.UpdatedAt,
		}); err != nil {
			if pgCode(err) == pgForeignKeyViolation {
				return catalogdomain.ErrCategoryMissing
			}
			return fmt.Errorf("insert item: %w", err)
		}
		return r.publish(ctx, tx, domainevents.TopicItemCreated, it, it.CreatedAt)
	})
}

// GetByID returns the item or ErrItemNotFound.
func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	row, err := db.New(r.db.DB()).GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalogdomain.ErrItemNotFound
		}
		return nil, fmt.Errorf("query item: %w", err)
	}
	return rowToItem(row), nil
}

// FindAll returns every item ordered by name.
func (r *ItemRepository) FindAll(ctx context.Context) ([]*models.Item, error) {
	rows, err := db.New(r.db.DB()).ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	return rowsToItems(rows), nil
}

// FindByCategory returns the items filed under categoryID ordered by name.
func (r *ItemRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]*models.Item, error) {
	rows, err := db.New(r.db.DB()).ListItemsByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("query items by category: %w", err)
	}
	return rowsToItems(rows), nil
}

// CountByCategory returns how many items reference categoryID.
func (r *ItemRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int, error) {
	n, err := db.New(r.db.DB()).CountItemsByCategory(ctx, categoryID)
	if err != nil {
		return 0, fmt.Errorf("count items by category: %w", err)
	}
	return int(n), nil
}

// Replace overwrites every mutable field and refreshes it from the stored row.
func (r *ItemRepository) Replace(ctx context.Context, it *models.Item) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		row, err := db.New(tx).UpdateItem(ctx, db.UpdateItemParams{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			CategoryID:  it.CategoryID,
			Price:       it.Price,
			Nis:         it.NIS,
			DAdded:      it.DAdded,
			UpdatedAt:   time.Now().UTC(),
		})
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				return catalogdomain.ErrItemNotFound
			case pgCode(err) == pgForeignKeyViolation:
				return catalogdomain.ErrCategoryMissing
			}
			return fmt.Errorf("update item: %w", err)
		}
		*it = *rowToItem(row)
		return r.publish(ctx, tx, domainevents.TopicItemUpdated, it, it.UpdatedAt)
	})
}

// Delete removes the item and publishes the deletion in the same transaction.
func (r *ItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		row, err := db.New(tx).DeleteItem(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return catalogdomain.ErrItemNotFound
			}
			return fmt.Errorf("delete item: %w", err)
		}
		gone := rowToItem(row)
		return r.publish(ctx, tx, domainevents.TopicItemDeleted, &models.Item{ID: gone.ID, CategoryID: gone.CategoryID}, time.Now().UTC())
	})
}

// Count returns the number of items.
func (r *ItemRepository) Count(ctx context.Context) (int, error) {
	n, err := db.New(r.db.DB()).CountItems(ctx)
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return int(n), nil
}

func (r *ItemRepository) publish(ctx context.Context, tx *sql.Tx, topic string, it *models.Item, at time.Time) error {
	event := domainevents.ItemEvent{
		EventID:     uuid.New(),
		Version:     eventVersion,
		ItemID:      it.ID,
		CategoryID:  it.CategoryID,
		Name:        it.Name,
		Description: it.Description,
		NIS:         it.NIS,
		DAdded:      it.DAdded,
		OccurredAt:  at,
	}
	if it.Price.Valid {
		event.Price = it.Price.Decimal.String()
	}
	if err := r.outbox.publish(ctx, tx, topic, event.EventID.String(), event); err != nil {
		return fmt.Errorf("publish item event: %w", err)
	}
	return nil
}

func rowsToItems(rows []db.CatalogItem) []*models.Item {
	out := make([]*models.Item, len(rows))
	for i, row := range rows {
		out[i] = rowToItem(row)
	}
	return out
}

// rowToItem maps a db.CatalogItem to a domain models.Item. Dates come back
// from the driver in UTC; TruncateToDate normalizes any zone offset.
func rowToItem(row db.CatalogItem) *models.Item {
	return &models.Item{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		CategoryID:  row.CategoryID,
		Price:       row.Price,
		NIS:         row.Nis,
		DAdded:      models.TruncateToDate(row.DAdded),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
