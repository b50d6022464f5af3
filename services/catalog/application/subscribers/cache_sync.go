// Package subscribers holds the catalog's event handlers run by cmd/worker.
package subscribers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/stockroom/pkg/app"
	"github.com/ghuser/stockroom/pkg/cache"
	"github.com/ghuser/stockroom/pkg/events"
	"github.com/ghuser/stockroom/pkg/logger"
	"github.com/ghuser/stockroom/pkg/telemetry"
	appsvcs "github.com/ghuser/stockroom/services/catalog/application/services"
	catalogdomain "github.com/ghuser/stockroom/services/catalog/domain"
	domainevents "github.com/ghuser/stockroom/services/catalog/domain/events"
	"github.com/ghuser/stockroom/services/catalog/domain/repositories"
	"github.com/ghuser/stockroom/services/catalog/infrastructure/persistence/postgres"
)

// EntryCache is the subset of *cache.CatalogCache the handlers write to.
type EntryCache interface {
	SetCategory(ctx context.Context, c *cache.CachedCategory) error
	DeleteCategory(ctx context.Context, id uuid.UUID, version time.Time) error
	SetItem(ctx context.Context, it *cache.CachedItem) error
	DeleteItem(ctx context.Context, id uuid.UUID, version time.Time) error
}

// CacheSync keeps the Redis read model in step with catalog events: created
// entities are loaded and cached, updated and deleted ones are evicted.
// Handlers are idempotent. The bus retries failures; events that do not
// decode are dropped.
type CacheSync struct {
	categories repositories.CategoryRepository
	items      repositories.ItemRepository
	cache      EntryCache
	log        logger.Logger
}

// NewCacheSync wires CacheSync with the postgres repositories and Redis.
func NewCacheSync(a *app.Application) *CacheSync {
	return NewCacheSyncWith(
		postgres.NewCategoryRepository(a.Db, nil),
		postgres.NewItemRepository(a.Db, nil),
		cache.NewCatalogCache(a.Redis, a.Config.CacheTTL),
		a.Logger,
	)
}

// NewCacheSyncWith wires CacheSync from explicit collaborators.
func NewCacheSyncWith(categories repositories.CategoryRepository, items repositories.ItemRepository, c EntryCache, log logger.Logger) *CacheSync {
	if log == nil {
		log = logger.Nop()
	}
	return &CacheSync{categories: categories, items: items, cache: c, log: log}
}

// Register subscribes every handler on bus. Handler failures that survived
// all retries are logged and reported to Sentry.
func (s *CacheSync) Register(ctx context.Context, bus *events.EventBus) error {
	subs := []struct {
		topics  []string
		handler events.Handler
	}{
		{[]string{domainevents.TopicCategoryCreated}, s.WarmCategory},
		{[]string{domainevents.TopicCategoryUpdated, domainevents.TopicCategoryDeleted}, s.EvictCategory},
		{[]string{domainevents.TopicItemCreated}, s.WarmItem},
		{[]string{domainevents.TopicItemUpdated, domainevents.TopicItemDeleted}, s.EvictItem},
	}
	for _, sub := range subs {
		errCh, err := bus.SubscribeTopics(ctx, sub.topics, sub.handler)
		if err != nil {
			return err
		}
		// Drain subscriber errors in background so the channel never blocks.
		go func() {
			for err := range errCh {
				s.log.ErrorContext(ctx, "subscriber error", "error", err)
				telemetry.CaptureError(err)
			}
		}()
	}
	s.log.Info("event subscribers registered",
		"topics", domainevents.Topics())
	return nil
}

// WarmCategory caches a newly created category. A category deleted before
// the event arrived is skipped.
func (s *CacheSync) WarmCategory(ctx context.Context, msg *message.Message) error {
	var evt domainevents.CategoryEvent
	if err := events.DecodeJSON(msg, &evt); err != nil {
		return err
	}
	c, err := s.categories.GetByID(ctx, evt.CategoryID)
	if errors.Is(err, catalogdomain.ErrCategoryNotFound) {
		s.log.DebugContext(ctx, "category gone before warm", "category_id", evt.CategoryID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load category: %w", err)
	}
	if err := s.cache.SetCategory(ctx, appsvcs.CategoryToCache(c)); err != nil {
		return fmt.Errorf("warm category: %w", err)
	}
	s.log.InfoContext(ctx, "cache warmed", "category_id", c.ID)
	return nil
}

// EvictCategory drops a changed or deleted category from the cache. The event
// time fences out warms of any version older than the change.
func (s *CacheSync) EvictCategory(ctx context.Context, msg *message.Message) error {
	var evt domainevents.CategoryEvent
	if err := events.DecodeJSON(msg, &evt); err != nil {
		return err
	}
	if err := s.cache.DeleteCategory(ctx, evt.CategoryID, evt.OccurredAt); err != nil {
		return fmt.Errorf("evict category: %w", err)
	}
	s.log.InfoContext(ctx, "cache evicted", "category_id", evt.CategoryID)
	return nil
}

// WarmItem caches a newly created item. An item deleted before the event
// arrived is skipped.
func (s *CacheSync) WarmItem(ctx context.Context, msg *message.Message) error {
	var evt domainevents.ItemEvent
	if err := events.DecodeJSON(msg, &evt); err != nil {
		return err
	}
	it, err := s.items.GetByID(ctx, evt.ItemID)
	if errors.Is(err, catalogdomain.ErrItemNotFound) {
		s.log.DebugContext(ctx, "item gone before warm", "item_id", evt.ItemID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load item: %w", err)
	}
	if err := s.cache.SetItem(ctx, appsvcs.ItemToCache(it)); err != nil {
		return fmt.Errorf("warm item: %w", err)
	}
	s.log.InfoContext(ctx, "cache warmed", "item_id", it.ID, "category_id", it.CategoryID)
	return nil
}

// EvictItem drops a changed or deleted item from the cache, fenced at the
// event time.
func (s *CacheSync) EvictItem(ctx context.Context, msg *message.Message) error {
	var evt domainevents.ItemEvent
	if err := events.DecodeJSON(msg, &evt); err != nil {
		return err
	}
	if err := s.cache.DeleteItem(ctx, evt.ItemID, evt.OccurredAt); err != nil {
		return fmt.Errorf("evict item: %w", err)
	}
	s.log.InfoContext(ctx, "cache evicted", "item_id", evt.ItemID)
	return nil
}
