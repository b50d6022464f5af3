package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/stockroom/pkg/app"
	"github.com/ghuser/stockroom/pkg/config"
	"github.com/ghuser/stockroom/pkg/errhttp"
	"github.com/ghuser/stockroom/services/catalog/application/handlers"
	appsvcs "github.com/ghuser/stockroom/services/catalog/application/services"
)

// CatalogRoutes registers catalog endpoints on the provided chi router.
func CatalogRoutes(r chi.Router, a *app.Application) {
	errs := errhttp.NewResponder(a.Config.Environment == config.EnvProduction, a.Logger)
	Routes(r, appsvcs.New(a), errs)
}

// Routes registers catalog endpoints backed by svcs.
func Routes(r chi.Router, svcs *appsvcs.Services, errs *errhttp.Responder) {
	categories := handlers.NewCategoryHandler(svcs, errs)
	items := handlers.NewItemHandler(svcs, errs)

	r.Group(func(r chi.Router) {
		r.Get("/summary", handlers.NewGetSummaryHandler(svcs, errs).Execute)

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categories.List)
			r.Post("/", categories.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", categories.Get)
				r.Put("/", categories.Update)
				r.Delete("/", categories.Delete)
				r.Get("/delete", categories.DeletePreview)
			})
		})

		r.Route("/items", func(r chi.Router) {
			r.Get("/", items.List)
			r.Post("/", items.Create)
			r.Get("/form-options", items.FormOptions)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", items.Get)
				r.Put("/", items.Update)
				r.Delete("/", items.Delete)
				r.Get("/delete", items.DeletePreview)
			})
		})
	})
}
