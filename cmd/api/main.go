package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	_ "github.com/ghuser/stockroom/docs/swagger"
	"github.com/ghuser/stockroom/pkg/app"
	"github.com/ghuser/stockroom/pkg/cache"
	"github.com/ghuser/stockroom/pkg/config"
	"github.com/ghuser/stockroom/pkg/database"
	"github.com/ghuser/stockroom/pkg/events"
	"github.com/ghuser/stockroom/pkg/httpx"
	"github.com/ghuser/stockroom/pkg/logger"
	"github.com/ghuser/stockroom/pkg/telemetry"
	catalogApi "github.com/ghuser/stockroom/services/catalog/application/api"
	domainevents "github.com/ghuser/stockroom/services/catalog/domain/events"
)

// @title					Stockroom API
// @version				1.0
// @description			Inventory catalog of categories and the items filed under them.
// @contact.name			API Support
// @license.name			MIT
// @license.url			https://opensource.org/licenses/MIT
// @host					localhost:8080
// @BasePath				/api
// @schemes				http https
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("refusing to start", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)
	if err := run(cfg, log); err != nil {
		log.Error("api exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		return fmt.Errorf("setup otel: %w", err)
	}
	defer otelShutdown(context.Background()) //nolint:errcheck

	// Crash reporting is optional.
	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("sentry disabled", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.CatalogDatabaseURL, log)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	// The API process owns the outbox forwarder; cmd/worker only consumes.
	eventBus, err := events.NewEventBusWithForwarder(cfg, log)
	if err != nil {
		return fmt.Errorf("setup event bus: %w", err)
	}
	defer eventBus.Close() //nolint:errcheck
	if err := eventBus.InitTopics(domainevents.Topics()...); err != nil {
		return fmt.Errorf("initialize event topics: %w", err)
	}
	if err := eventBus.StartForwarder(ctx); err != nil {
		return fmt.Errorf("start outbox forwarder: %w", err)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer redisClient.Close() //nolint:errcheck

	a := &app.Application{
		Config:   cfg,
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}

	srv := httpx.NewServer(cfg.HTTPAddr, newHandler(a, metricsHandler))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment, "version", cfg.ServiceVersion)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down", "timeout", cfg.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx) //nolint:contextcheck
	})
	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}

func newHandler(a *app.Application, metrics http.Handler) http.Handler {
	cfg := a.Config
	r := httpx.NewRouter(
		httpx.ServerConfig{
			ServiceName:              cfg.ServiceName,
			IsDevelopment:            cfg.IsDevelopment(),
			CORSAllowedOrigins:       cfg.CORSAllowedOrigins,
			RateLimitPerMinute:       cfg.RateLimitPerMinute,
			DeleteRateLimitPerMinute: cfg.DeleteRateLimitPerMinute,
			MaxBodyBytes:             cfg.MaxBodyBytes,
			RequestTimeout:           cfg.RequestTimeout,
		},
		logger.Middleware(a.Logger),
		logger.Recovery(a.Logger),
		telemetry.SentryMiddleware(),
		otelhttp.NewMiddleware(cfg.ServiceName),
	)

	r.Get("/health", httpx.HealthHandler(httpx.HealthChecks{
		Version:  cfg.ServiceVersion,
		Database: a.Db,
		Redis:    a.Redis,
		EventBus: a.EventBus,
	}))
	r.Get("/metrics", metrics.ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	r.Route("/api", func(r chi.Router) {
		catalogApi.CatalogRoutes(r, a)
	})
	return r
}
