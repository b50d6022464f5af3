package httpx

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// HealthChecker is satisfied by database.Database, cache.RedisClient and
// events.EventBus.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthChecks lists the dependencies probed by /health. Database is the
// system of record; Redis and EventBus only feed the read cache, so losing
// them degrades the service without taking it down. A nil checker is reported
// as "disabled".
type HealthChecks struct {
	Version  string
	Database HealthChecker
	Redis    HealthChecker
	EventBus HealthChecker
}

// Overall health states.
const (
	HealthOK       = "ok"
	HealthDegraded = "degraded"
	HealthDown     = "down"
)

// Per-dependency states.
const (
	checkOK          = "ok"
	checkUnreachable = "unreachable"
	checkDisabled    = "disabled"
)

type healthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

const probeTimeout = 2 * time.Second

// HealthHandler probes every dependency concurrently. It answers 503 only
// when the database is unreachable.
func HealthHandler(checks HealthChecks) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
		defer cancel()

		var db, redis, bus string
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { db = probe(gctx, checks.Database); return nil })
		g.Go(func() error { redis = probe(gctx, checks.Redis); return nil })
		g.Go(func() error { bus = probe(gctx, checks.EventBus); return nil })
		_ = g.Wait()

		resp := healthResponse{
			Status:  HealthOK,
			Version: checks.Version,
			Checks:  map[string]string{"database": db, "redis": redis, "event_bus": bus},
		}
		status := http.StatusOK
		switch {
		case db == checkUnreachable:
			resp.Status = HealthDown
			status = http.StatusServiceUnavailable
		case redis == checkUnreachable || bus == checkUnreachable:
			resp.Status = HealthDegraded
		}
		JSON(w, status, resp)
	}
}

func probe(ctx context.Context, c HealthChecker) string {
	if c == nil {
		return checkDisabled
	}
	if err := c.Ping(ctx); err != nil {
		return checkUnreachable
	}
	return checkOK
}
