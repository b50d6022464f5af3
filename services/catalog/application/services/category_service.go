package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/ghuser/stockroom/pkg/telemetry"
	catalogdomain "github.com/ghuser/stockroom/services/catalog/domain"
	"github.com/ghuser/stockroom/services/catalog/domain/models"
	domainsvcs "github.com/ghuser/stockroom/services/catalog/domain/services"
)

var tracer = otel.Tracer("github.com/ghuser/stockroom/services/catalog")

// CategoryService orchestrates the category lifecycle.
// Event publishing is handled by the repository layer (outbox pattern).
// Single-category reads are served from Redis when available.
type CategoryService struct {
	deps Deps
}

// List returns every category sorted by name.
func (s *CategoryService) List(ctx context.Context) ([]*models.Category, error) {
	ctx, span := tracer.Start(ctx, "CategoryService.List")
	defer span.End()

	cats, err := s.deps.Categories.FindAll(ctx)
	if err != nil {
		return nil, spanErr(span, fmt.Errorf("list categories: %w", err))
	}
	return cats, nil
}

// Get returns the category with its items resolved by query.
func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*models.CategoryDetail, error) {
	ctx, span := tracer.Start(ctx, "CategoryService.Get", trace.WithAttributes(attribute.String("category_id", id.String())))
	defer span.End()

	detail, err := s.loadDetail(ctx, id)
	if err != nil {
		return nil, spanErr(span, err)
	}
	return detail, nil
}

// DeletePreview returns what a delete would remove or be blocked by.
func (s *CategoryService) DeletePreview(ctx context.Context, id uuid.UUID) (*models.CategoryDetail, error) {
	ctx, span := tracer.Start(ctx, "CategoryService.DeletePreview", trace.WithAttributes(attribute.String("category_id", id.String())))
	defer span.End()

	detail, err := s.loadDetail(ctx, id)
	if err != nil {
		return nil, spanErr(span, err)
	}
	return detail, nil
}

// Create validates and persists a category. A name already in use yields a
// *domain.ConflictError carrying the existing category.
func (s *CategoryService) Create(ctx context.Context, in domainsvcs.CategoryInput) (*models.Category, error) {
	ctx, span := tracer.Start(ctx, "CategoryService.Create")
	defer span.End()

	in, err := domainsvcs.ValidateCategory(in)
	if err != nil {
		s.record(ctx, "create", err)
		return nil, err
	}

	if existing, err := s.deps.Categories.FindByName(ctx, in.Name); err == nil {
		err := &catalogdomain.ConflictError{Name: in.Name, Existing: existing}
		s.record(ctx, "create", err)
		return nil, err
	} else if !errors.Is(err, catalogdomain.ErrCategoryNotFound) {
		return nil, spanErr(span, fmt.Errorf("check category name: %w", err))
	}

	c := models.NewCategory(in.Name, in.Description)
	if err := s.deps.Categories.Save(ctx, c); err != nil {
		if errors.Is(err, catalogdomain.ErrCategoryNameTaken) {
			err = s.conflict(ctx, in.Name)
			s.record(ctx, "create", err)
			return nil, err
		}
		s.record(ctx, "create", err)
		return nil, spanErr(span, fmt.Errorf("save category: %w", err))
	}

	s.record(ctx, "create", nil)
	s.deps.Log.InfoContext(ctx, "category created", "category_id", c.ID, "name", c.Name)
	return c, nil
}

// Update replaces name and description. The item set is untouched.
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, in domainsvcs.CategoryInput) (*models.Category, error) {
	ctx, span := tracer.Start(ctx, "CategoryService.Update", trace.WithAttributes(attribute.String("category_id", id.String())))
	defer span.End()

	in, err := domainsvcs.ValidateCategory(in)
	if err != nil {
		s.record(ctx, "update", err)
		return nil, err
	}

	c, err := s.deps.Categories.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}

	if existing, err := s.deps.Categories.FindByName(ctx, in.Name); err == nil && existing.ID != id {
		err := &catalogdomain.ConflictError{Name: in.Name, Existing: existing}
		s.record(ctx, "update", err)
		return nil, err
	} else if err != nil && !errors.Is(err, catalogdomain.ErrCategoryNotFound) {
		return nil, spanErr(span, fmt.Errorf("check category name: %w", err))
	}

	c.Name = in.Name
	c.Description = in.Description
	if err := s.deps.Categories.Replace(ctx, c); err != nil {
		switch {
		case errors.Is(err, catalogdomain.ErrCategoryNameTaken):
			err = s.conflict(ctx, in.Name)
		case errors.Is(err, catalogdomain.ErrCategoryNotFound):
		default:
			err = spanErr(span, fmt.Errorf("replace category: %w", err))
		}
		s.record(ctx, "update", err)
		return nil, err
	}

	s.evict(ctx, id, c.UpdatedAt)
	s.record(ctx, "update", nil)
	s.deps.Log.InfoContext(ctx, "category updated", "category_id", id)
	return c, nil
}

// Delete removes the category when the guard allows it. A refusal is a
// *domain.DenialError listing every reason and the blocking items.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID, credential string) error {
	ctx, span := tracer.Start(ctx, "CategoryService.Delete", trace.WithAttributes(attribute.String("category_id", id.String())))
	defer span.End()

	detail, err := s.loadDetail(ctx, id)
	if err != nil {
		return err
	}

	decision, err := s.deps.Guard.CanDelete(ctx, models.KindCategory, id, credential)
	if err != nil {
		return spanErr(span, fmt.Errorf("deletion guard: %w", err))
	}
	if !decision.Allowed {
		return s.deny(ctx, id, decision.Reasons, detail.Items)
	}

	if err := s.deps.Categories.Delete(ctx, id); err != nil {
		if errors.Is(err, catalogdomain.ErrCategoryHasDependents) {
			// an item was added after the guard ran
			items, ferr := s.deps.Items.FindByCategory(ctx, id)
			if ferr != nil {
				items = nil
			}
			return s.deny(ctx, id, []catalogdomain.DenialReason{catalogdomain.ReasonHasDependents}, items)
		}
		if !errors.Is(err, catalogdomain.ErrCategoryNotFound) {
			err = spanErr(span, fmt.Errorf("delete category: %w", err))
		}
		s.record(ctx, "delete", err)
		return err
	}

	s.evict(ctx, id, time.Now())
	s.record(ctx, "delete", nil)
	s.deps.Log.InfoContext(ctx, "category deleted", "category_id", id)
	return nil
}

// loadDetail fetches the category and its items concurrently.
func (s *CategoryService) loadDetail(ctx context.Context, id uuid.UUID) (*models.CategoryDetail, error) {
	var (
		cat   *models.Category
		items []*models.Item
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cat, err = s.fetchCategory(gctx, id)
		if err != nil {
			return fmt.Errorf("get category: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		items, err = s.deps.Items.FindByCategory(gctx, id)
		if err != nil {
			return fmt.Errorf("list category items: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &models.CategoryDetail{Category: cat, Items: items}, nil
}

func (s *CategoryService) fetchCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	rt := readThrough[models.Category]{load: s.deps.Categories.GetByID, log: s.deps.Log}
	if c := s.deps.Cache; c != nil {
		rt.get = func(ctx context.Context, id uuid.UUID) (*models.Category, error) {
			cached, err := c.GetCategory(ctx, id)
			if err != nil {
				return nil, err
			}
			return categoryFromCache(cached), nil
		}
		rt.set = func(ctx context.Context, v *models.Category) error {
			return c.SetCategory(ctx, CategoryToCache(v))
		}
	}
	return rt.fetch(ctx, id)
}

// conflict resolves the category that won a unique-index race.
func (s *CategoryService) conflict(ctx context.Context, name string) error {
	existing, err := s.deps.Categories.FindByName(ctx, name)
	if err != nil {
		existing = nil
	}
	return &catalogdomain.ConflictError{Name: name, Existing: existing}
}

func (s *CategoryService) deny(ctx context.Context, id uuid.UUID, reasons []catalogdomain.DenialReason, items []*models.Item) error {
	err := &catalogdomain.DenialError{
		Kind:       models.KindCategory,
		ID:         id.String(),
		Reasons:    reasons,
		Dependents: items,
	}
	s.record(ctx, "delete", err)
	s.deps.Metrics.Denial(ctx, string(models.KindCategory), reasonStrings(reasons)...)
	s.deps.Log.WarnContext(ctx, "category delete denied", "category_id", id, "reasons", reasonStrings(reasons), "dependents", len(items))
	return err
}

// evict drops the cached entry and fences out warms older than version.
func (s *CategoryService) evict(ctx context.Context, id uuid.UUID, version time.Time) {
	if s.deps.Cache == nil {
		return
	}
	if err := s.deps.Cache.DeleteCategory(ctx, id, version); err != nil {
		s.deps.Log.WarnContext(ctx, "cache evict failed", "category_id", id, "error", err)
	}
}

func (s *CategoryService) record(ctx context.Context, op string, err error) {
	s.deps.Metrics.Mutation(ctx, string(models.KindCategory), op, outcome(err))
}

// outcome classifies err for the mutation counter.
func outcome(err error) string {
	switch {
	case err == nil:
		return telemetry.OutcomeOK
	case errors.Is(err, catalogdomain.ErrInvalidInput), errors.Is(err, catalogdomain.ErrCategoryMissing):
		return telemetry.OutcomeInvalid
	case errors.Is(err, catalogdomain.ErrCategoryNameTaken):
		return telemetry.OutcomeConflict
	case errors.Is(err, catalogdomain.ErrDeletionDenied):
		return telemetry.OutcomeDenied
	default:
		return telemetry.OutcomeError
	}
}

func reasonStrings(reasons []catalogdomain.DenialReason) []string {
	out := make([]string, len(reasons))
	for i, r := range reasons {
		out[i] = string(r)
	}
	return out
}

// spanErr marks span as failed and returns err unchanged.
func spanErr(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
