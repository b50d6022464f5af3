package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Outcome labels for CatalogMetrics.
const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeConflict = "conflict"
	OutcomeDenied   = "denied"
	OutcomeError    = "error"
)

// CatalogMetrics records catalog mutations by entity kind, operation and outcome.
// The zero value is not usable; a nil *CatalogMetrics records nothing.
type CatalogMetrics struct {
	mutations metric.Int64Counter
	denials   metric.Int64Counter
}

// NewCatalogMetrics registers the catalog instruments on the global meter
// provider. Call after Setup so they are exported on /metrics.
func NewCatalogMetrics() (*CatalogMetrics, error) {
	meter := otel.Meter("github.com/ghuser/stockroom/catalog")

	mutations, err := meter.Int64Counter("catalog.mutations",
		metric.WithDescription("Catalog create, update and delete attempts"),
		metric.WithUnit("{mutation}"),
	)
	if err != nil {
		return nil, err
	}
	denials, err := meter.Int64Counter("catalog.deletion_denials",
		metric.WithDescription("Deletes refused by the deletion guard, by reason"),
		metric.WithUnit("{denial}"),
	)
	if err != nil {
		return nil, err
	}
	return &CatalogMetrics{mutations: mutations, denials: denials}, nil
}

// Mutation counts one create, update or delete attempt.
func (m *CatalogMetrics) Mutation(ctx context.Context, kind, op, outcome string) {
	if m == nil {
		return
	}
	m.mutations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("op", op),
		attribute.String("outcome", outcome),
	))
}

// Denial counts one refused delete per reason.
func (m *CatalogMetrics) Denial(ctx context.Context, kind string, reasons ...string) {
	if m == nil {
		return
	}
	for _, r := range reasons {
		m.denials.Add(ctx, 1, metric.WithAttributes(
			attribute.String("kind", kind),
			attribute.String("reason", r),
		))
	}
}
