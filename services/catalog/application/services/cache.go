package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	pkgcache "github.com/ghuser/stockroom/pkg/cache"
	"github.com/ghuser/stockroom/pkg/logger"
	"github.com/ghuser/stockroom/services/catalog/domain/models"
)

// EntryCache is the read-through cache behind category and item reads.
// *cache.CatalogCache implements it. A set older than the version passed to the
// latest delete of the same entry must be ignored.
type EntryCache interface {
	GetCategory(ctx context.Context, id uuid.UUID) (*pkgcache.CachedCategory, error)
	SetCategory(ctx context.Context, c *pkgcache.CachedCategory) error
	DeleteCategory(ctx context.Context, id uuid.UUID, version time.Time) error
	GetItem(ctx context.Context, id uuid.UUID) (*pkgcache.CachedItem, error)
	SetItem(ctx context.Context, it *pkgcache.CachedItem) error
	DeleteItem(ctx context.Context, id uuid.UUID, version time.Time) error
}

// CategoryToCache maps a category to its Redis read model.
func CategoryToCache(c *models.Category) *pkgcache.CachedCategory {
	return &pkgcache.CachedCategory{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func categoryFromCache(c *pkgcache.CachedCategory) *models.Category {
	return &models.Category{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ItemToCache maps an item to its Redis read model.
func ItemToCache(it *models.Item) *pkgcache.CachedItem {
	out := &pkgcache.CachedItem{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		CategoryID:  it.CategoryID,
		NIS:         it.NIS,
		DAdded:      it.DAdded,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
	if it.Price.Valid {
		out.Price = it.Price.Decimal.String()
	}
	return out
}

func itemFromCache(c *pkgcache.CachedItem) (*models.Item, error) {
	it := &models.Item{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CategoryID:  c.CategoryID,
		NIS:         c.NIS,
		DAdded:      c.DAdded,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.Price != "" {
		d, err := decimal.NewFromString(c.Price)
		if err != nil {
			return nil, err
		}
		it.Price = decimal.NewNullDecimal(d)
	}
	return it, nil
}

// readThrough serves reads from Redis when available and falls back to load on
// a miss or cache error, warming the entry in the background. The warm carries
// the loaded UpdatedAt, so the cache drops it if a write evicted a newer
// version meanwhile. A nil cache always loads.
type readThrough[T any] struct {
	get  func(ctx context.Context, id uuid.UUID) (*T, error)
	set  func(ctx context.Context, v *T) error
	load func(ctx context.Context, id uuid.UUID) (*T, error)
	log  logger.Logger
}

func (r readThrough[T]) fetch(ctx context.Context, id uuid.UUID) (*T, error) {
	if r.get != nil {
		v, err := r.get(ctx, id)
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, redis.Nil) {
			r.log.WarnContext(ctx, "cache read failed, falling back to store", "id", id, "error", err)
		}
	}

	v, err := r.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if r.set != nil {
		go func() {
			if err := r.set(context.WithoutCancel(ctx), v); err != nil {
				r.log.WarnContext(ctx, "cache warm failed", "id", id, "error", err)
			}
		}()
	}
	return v, nil
}
