package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	catalogdomain "github.com/ghuser/stockroom/services/catalog/domain"
	"github.com/ghuser/stockroom/services/catalog/domain/models"
	domainsvcs "github.com/ghuser/stockroom/services/catalog/domain/services"
)

// ItemService orchestrates the item lifecycle.
// Event publishing is handled by the repository layer (outbox pattern).
// Single-item reads are served from Redis when available.
type ItemService struct {
	deps Deps
}

// FormOptions are the choices a client needs to render an item form.
type FormOptions struct {
	Categories []*models.Category
	Today      string
}

// List returns every item sorted by name, each joined with its category.
func (s *ItemService) List(ctx context.Context) ([]*models.ItemDetail, error) {
	ctx, span := tracer.Start(ctx, "ItemService.List")
	defer span.End()

	var (
		items []*models.Item
		cats  []*models.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if items, err = s.deps.Items.FindAll(gctx); err != nil {
			return fmt.Errorf("list items: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if cats, err = s.deps.Categories.FindAll(gctx); err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, spanErr(span, err)
	}

	byID := make(map[uuid.UUID]*models.Category, len(cats))
	for _, c := range cats {
		byID[c.ID] = c
	}
	out := make([]*models.ItemDetail, len(items))
	for i, it := range items {
		out[i] = &models.ItemDetail{Item: it, Category: byID[it.CategoryID]}
	}
	return out, nil
}

// Get returns the item joined with its category.
func (s *ItemService) Get(ctx context.Context, id uuid.UUID) (*models.ItemDetail, error) {
	ctx, span := tracer.Start(ctx, "ItemService.Get", trace.WithAttributes(attribute.String("item_id", id.String())))
	defer span.End()

	detail, err := s.loadDetail(ctx, id)
	if err != nil {
		return nil, spanErr(span, err)
	}
	return detail, nil
}

// DeletePreview returns the item a delete would remove, with its category.
func (s *ItemService) DeletePreview(ctx context.Context, id uuid.UUID) (*models.ItemDetail, error) {
	ctx, span := tracer.Start(ctx, "ItemService.DeletePreview", trace.WithAttributes(attribute.String("item_id", id.String())))
	defer span.End()

	detail, err := s.loadDetail(ctx, id)
	if err != nil {
		return nil, spanErr(span, err)
	}
	return detail, nil
}

// FormOptions lists categories by name and today's date for the d_added default.
func (s *ItemService) FormOptions(ctx context.Context) (*FormOptions, error) {
	cats, err := s.deps.Categories.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return &FormOptions{Categories: cats, Today: domainsvcs.Today()}, nil
}

// Create validates and persists an item. A category that does not exist, at
// lookup or at write time, yields a *domain.IntegrityError.
func (s *ItemService) Create(ctx context.Context, in domainsvcs.ItemInput) (*models.Item, error) {
	ctx, span := tracer.Start(ctx, "ItemService.Create")
	defer span.End()

	fields, err := domainsvcs.ValidateItem(in)
	if err != nil {
		s.record(ctx, "create", err)
		return nil, err
	}

	if err := s.requireCategory(ctx, fields.CategoryID); err != nil {
		s.record(ctx, "create", err)
		return nil, err
	}

	it := models.NewItem(fields)
	if err := s.deps.Items.Save(ctx, it); err != nil {
		if errors.Is(err, catalogdomain.ErrCategoryMissing) {
			err = &catalogdomain.IntegrityError{CategoryID: fields.CategoryID.String()}
		} else {
			err = spanErr(span, fmt.Errorf("save item: %w", err))
		}
		s.record(ctx, "create", err)
		return nil, err
	}

	s.record(ctx, "create", nil)
	s.deps.Log.InfoContext(ctx, "item created", "item_id", it.ID, "category_id", it.CategoryID)
	return it, nil
}

// Update replaces every mutable field of the item.
func (s *ItemService) Update(ctx context.Context, id uuid.UUID, in domainsvcs.ItemInput) (*models.Item, error) {
	ctx, span := tracer.Start(ctx, "ItemService.Update", trace.WithAttributes(attribute.String("item_id", id.String())))
	defer span.End()

	fields, err := domainsvcs.ValidateItem(in)
	if err != nil {
		s.record(ctx, "update", err)
		return nil, err
	}

	it, err := s.deps.Items.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if err := s.requireCategory(ctx, fields.CategoryID); err != nil {
		s.record(ctx, "update", err)
		return nil, err
	}

	if fields.DAdded.IsZero() {
		fields.DAdded = it.DAdded
	}
	it.Apply(fields)
	if err := s.deps.Items.Replace(ctx, it); err != nil {
		switch {
		case errors.Is(err, catalogdomain.ErrCategoryMissing):
			err = &catalogdomain.IntegrityError{CategoryID: fields.CategoryID.String()}
		case errors.Is(err, catalogdomain.ErrItemNotFound):
		default:
			err = spanErr(span, fmt.Errorf("replace item: %w", err))
		}
		s.record(ctx, "update", err)
		return nil, err
	}

	s.evict(ctx, id, it.UpdatedAt)
	s.record(ctx, "update", nil)
	s.deps.Log.InfoContext(ctx, "item updated", "item_id", id, "category_id", it.CategoryID)
	return it, nil
}

// Delete removes the item when the credential is accepted.
func (s *ItemService) Delete(ctx context.Context, id uuid.UUID, credential string) error {
	ctx, span := tracer.Start(ctx, "ItemService.Delete", trace.WithAttributes(attribute.String("item_id", id.String())))
	defer span.End()

	if _, err := s.deps.Items.GetByID(ctx, id); err != nil {
		return fmt.Errorf("get item: %w", err)
	}

	decision, err := s.deps.Guard.CanDelete(ctx, models.KindItem, id, credential)
	if err != nil {
		return spanErr(span, fmt.Errorf("deletion guard: %w", err))
	}
	if !decision.Allowed {
		err := decision.Err(models.KindItem, id)
		s.record(ctx, "delete", err)
		s.deps.Metrics.Denial(ctx, string(models.KindItem), reasonStrings(decision.Reasons)...)
		s.deps.Log.WarnContext(ctx, "item delete denied", "item_id", id, "reasons", reasonStrings(decision.Reasons))
		return err
	}

	if err := s.deps.Items.Delete(ctx, id); err != nil {
		if !errors.Is(err, catalogdomain.ErrItemNotFound) {
			err = spanErr(span, fmt.Errorf("delete item: %w", err))
		}
		s.record(ctx, "delete", err)
		return err
	}

	s.evict(ctx, id, time.Now())
	s.record(ctx, "delete", nil)
	s.deps.Log.InfoContext(ctx, "item deleted", "item_id", id)
	return nil
}

func (s *ItemService) loadDetail(ctx context.Context, id uuid.UUID) (*models.ItemDetail, error) {
	it, err := s.fetchItem(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	cat, err := s.deps.Categories.GetByID(ctx, it.CategoryID)
	if err != nil && !errors.Is(err, catalogdomain.ErrCategoryNotFound) {
		return nil, fmt.Errorf("get item category: %w", err)
	}
	return &models.ItemDetail{Item: it, Category: cat}, nil
}

func (s *ItemService) fetchItem(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	rt := readThrough[models.Item]{load: s.deps.Items.GetByID, log: s.deps.Log}
	if c := s.deps.Cache; c != nil {
		rt.get = func(ctx context.Context, id uuid.UUID) (*models.Item, error) {
			cached, err := c.GetItem(ctx, id)
			if err != nil {
				return nil, err
			}
			return itemFromCache(cached)
		}
		rt.set = func(ctx context.Context, v *models.Item) error {
			return c.SetItem(ctx, ItemToCache(v))
		}
	}
	return rt.fetch(ctx, id)
}

func (s *ItemService) requireCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.deps.Categories.GetByID(ctx, id); err != nil {
		if errors.Is(err, catalogdomain.ErrCategoryNotFound) {
			return &catalogdomain.IntegrityError{CategoryID: id.String()}
		}
		return fmt.Errorf("check category: %w", err)
	}
	return nil
}

// evict drops the cached entry and fences out warms older than version.
func (s *ItemService) evict(ctx context.Context, id uuid.UUID, version time.Time) {
	if s.deps.Cache == nil {
		return
	}
	if err := s.deps.Cache.DeleteItem(ctx, id, version); err != nil {
		s.deps.Log.WarnContext(ctx, "cache evict failed", "item_id", id, "error", err)
	}
}

func (s *ItemService) record(ctx context.Context, op string, err error) {
	s.deps.Metrics.Mutation(ctx, string(models.KindItem), op, outcome(err))
}
