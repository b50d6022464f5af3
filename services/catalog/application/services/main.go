package services

import (
	"github.com/ghuser/stockroom/pkg/app"
	"github.com/ghuser/stockroom/pkg/cache"
	"github.com/ghuser/stockroom/pkg/logger"
	"github.com/ghuser/stockroom/pkg/telemetry"
	"github.com/ghuser/stockroom/services/catalog/domain/repositories"
	domainsvcs "github.com/ghuser/stockroom/services/catalog/domain/services"
	"github.com/ghuser/stockroom/services/catalog/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Category *CategoryService
	Item     *ItemService
	Summary  *SummaryService
}

// Deps are the collaborators shared by every catalog service. Cache and
// Metrics may be nil.
type Deps struct {
	Categories repositories.CategoryRepository
	Items      repositories.ItemRepository
	Guard      *domainsvcs.DeletionGuard
	Cache      EntryCache
	Log        logger.Logger
	Metrics    *telemetry.CatalogMetrics
}

// New wires all catalog application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	categories := postgres.NewCategoryRepository(a.Db, a.EventBus)
	items := postgres.NewItemRepository(a.Db, a.EventBus)

	var entries EntryCache
	if a.Redis != nil {
		entries = cache.NewCatalogCache(a.Redis, a.Config.CacheTTL)
	}

	metrics, err := telemetry.NewCatalogMetrics()
	if err != nil {
		a.Logger.Warn("catalog metrics disabled", "error", err)
	}

	return NewWithDeps(Deps{
		Categories: categories,
		Items:      items,
		Guard:      domainsvcs.NewDeletionGuard(a.Config.DeletionSecret, items),
		Cache:      entries,
		Log:        a.Logger,
		Metrics:    metrics,
	})
}

// NewWithDeps wires the services from explicit collaborators. Tests use it with
// the in-memory store.
func NewWithDeps(d Deps) *Services {
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	return &Services{
		Category: &CategoryService{deps: d},
		Item:     &ItemService{deps: d},
		Summary:  &SummaryService{deps: d},
	}
}
