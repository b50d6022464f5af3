package services

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/stockroom/services/catalog/domain"
	"github.com/ghuser/stockroom/services/catalog/domain/models"
)

// DependentCounter counts the items that reference a category.
type DependentCounter interface {
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int, error)
}

// Decision is the outcome of a deletion check. Reasons is empty when Allowed.
type Decision struct {
	Allowed    bool
	Reasons    []domain.DenialReason
	Dependents int
}

// Err returns a *domain.DenialError for a refused decision, nil otherwise.
func (d Decision) Err(kind models.Kind, id uuid.UUID) error {
	if d.Allowed {
		return nil
	}
	return &domain.DenialError{Kind: kind, ID: id.String(), Reasons: d.Reasons}
}

// DeletionGuard decides whether a delete may proceed. Both checks always run
// so a refusal reports every reason at once.
type DeletionGuard struct {
	secret []byte
	items  DependentCounter
}

// NewDeletionGuard returns a guard comparing credentials against secret.
// An empty secret refuses every delete.
func NewDeletionGuard(secret string, items DependentCounter) *DeletionGuard {
	return &DeletionGuard{secret: []byte(secret), items: items}
}

// CanDelete checks that a category has no dependent items and that the
// credential matches the configured secret. Items have no dependents.
func (g *DeletionGuard) CanDelete(ctx context.Context, kind models.Kind, id uuid.UUID, credential string) (Decision, error) {
	var d Decision

	if kind == models.KindCategory {
		n, err := g.items.CountByCategory(ctx, id)
		if err != nil {
			return Decision{}, fmt.Errorf("count dependents: %w", err)
		}
		d.Dependents = n
		if n > 0 {
			d.Reasons = append(d.Reasons, domain.ReasonHasDependents)
		}
	}

	if !g.Authorized(credential) {
		d.Reasons = append(d.Reasons, domain.ReasonUnauthorized)
	}

	d.Allowed = len(d.Reasons) == 0
	return d, nil
}

// Authorized reports whether credential equals the configured secret.
func (g *DeletionGuard) Authorized(credential string) bool {
	if len(g.secret) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(credential), g.secret) == 1
}
