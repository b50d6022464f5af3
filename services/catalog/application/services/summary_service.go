package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Summary is the catalog overview shown on the landing page.
type Summary struct {
	CategoryCount int `json:"category_count"`
	ItemCount     int `json:"item_count"`
}

// SummaryService reports catalog-wide counts.
type SummaryService struct {
	deps Deps
}

// Get counts categories and items concurrently.
func (s *SummaryService) Get(ctx context.Context) (*Summary, error) {
	ctx, span := tracer.Start(ctx, "SummaryService.Get")
	defer span.End()

	var out Summary
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.deps.Categories.Count(gctx)
		if err != nil {
			return fmt.Errorf("count categories: %w", err)
		}
		out.CategoryCount = n
		return nil
	})
	g.Go(func() error {
		n, err := s.deps.Items.Count(gctx)
		if err != nil {
			return fmt.Errorf("count items: %w", err)
		}
		out.ItemCount = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, spanErr(span, err)
	}
	return &out, nil
}
