// Package events is the catalog's transactional outbox and change feed, built
// on Watermill's PostgreSQL transport.
//
// Repositories write change events with PublishTx inside the same transaction
// as the row change, so an event exists exactly when its change committed.
// Every process that writes or reads events calls InitTopics at startup.
// The API runs in forwarder mode: events land in an internal queue and a
// background forwarder moves them to their topics. cmd/worker consumes the
// topics with SubscribeTopics to keep the Redis read cache in step.
//
// Consumers in the same group share the work, so each event is handled by one
// worker instance. Handlers must be idempotent; delivery is at least once.
package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	watermillsql "github.com/ThreeDotsLabs/watermill-sql/v3/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/stockroom/pkg/config"
	"github.com/ghuser/stockroom/pkg/logger"
)

const (
	drainTimeout = 30 * time.Second
	// forwarderTopic is the internal queue drained by StartForwarder.
	forwarderTopic = "catalog.outbox"
	forwarderGroup = "catalog-forwarder"
)

// EventBus publishes catalog events and delivers them to subscribers.
type EventBus struct {
	db           *sql.DB
	log          logger.Logger
	wlog         *slogAdapter
	publisher    message.Publisher
	subscriber   *watermillsql.Subscriber
	group        string
	useForwarder bool

	fwd      *forwarder.Forwarder
	handlers sync.WaitGroup
}

// NewEventBus opens its own pool on cfg.CatalogDatabaseURL and publishes
// straight to topics. Used by the worker and catalogctl.
func NewEventBus(cfg *config.Config, log logger.Logger) (*EventBus, error) {
	return newEventBus(cfg, log, false)
}

// NewEventBusWithForwarder routes every publish through the forwarder queue.
// Call StartForwarder once the bus is created; the API does this at startup.
func NewEventBusWithForwarder(cfg *config.Config, log logger.Logger) (*EventBus, error) {
	return newEventBus(cfg, log, true)
}

func newEventBus(cfg *config.Config, log logger.Logger, useForwarder bool) (*EventBus, error) {
	db, err := sql.Open("pgx", cfg.CatalogDatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("events: open db: %w", err)
	}

	b := &EventBus{
		db:           db,
		log:          log,
		wlog:         &slogAdapter{log: log},
		group:        cfg.ServiceName + "-consumer",
		useForwarder: useForwarder,
	}

	pub, err := b.newPublisher(db, true)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	b.publisher = b.wrap(pub)

	b.subscriber, err = b.newSubscriber(b.group)
	if err != nil {
		_ = pub.Close()
		_ = db.Close()
		return nil, err
	}
	return b, nil
}

// newPublisher writes to exec, which is the pool or a caller's transaction.
// Tables already exist when publishing inside a transaction.
func (b *EventBus) newPublisher(exec watermillsql.ContextExecutor, initSchema bool) (*watermillsql.Publisher, error) {
	pub, err := watermillsql.NewPublisher(exec, watermillsql.PublisherConfig{
		SchemaAdapter:        watermillsql.DefaultPostgreSQLSchema{},
		AutoInitializeSchema: initSchema,
	}, b.wlog)
	if err != nil {
		return nil, fmt.Errorf("events: new publisher: %w", err)
	}
	return pub, nil
}

func (b *EventBus) newSubscriber(group string) (*watermillsql.Subscriber, error) {
	sub, err := watermillsql.NewSubscriber(b.db, watermillsql.SubscriberConfig{
		SchemaAdapter:    watermillsql.DefaultPostgreSQLSchema{},
		OffsetsAdapter:   watermillsql.DefaultPostgreSQLOffsetsAdapter{},
		InitializeSchema: true,
		ConsumerGroup:    group,
	}, b.wlog)
	if err != nil {
		return nil, fmt.Errorf("events: new subscriber for %s: %w", group, err)
	}
	return sub, nil
}

// InitTopics creates the message and offset tables of every topic. Call it
// once at startup, outside any transaction: PublishTx cannot create tables on
// a caller's transaction, so a topic nobody has subscribed to yet must exist
// before the first write. In forwarder mode the queue table is created too.
func (b *EventBus) InitTopics(topics ...string) error {
	if b.useForwarder {
		topics = append([]string{forwarderTopic}, topics...)
	}
	for _, topic := range topics {
		if err := b.subscriber.SubscribeInitialize(topic); err != nil {
			return fmt.Errorf("events: initialize %s: %w", topic, err)
		}
	}
	return nil
}

// wrap envelopes messages for the forwarder queue when forwarding is enabled.
func (b *EventBus) wrap(pub message.Publisher) message.Publisher {
	if !b.useForwarder {
		return pub
	}
	return forwarder.NewPublisher(pub, forwarder.PublisherConfig{ForwarderTopic: forwarderTopic})
}

// Ping reports whether the event store is reachable. Used by /health.
func (b *EventBus) Ping(ctx context.Context) error {
	if err := b.db.PingContext(ctx); err != nil {
		return fmt.Errorf("events: ping db: %w", err)
	}
	return nil
}

// Close stops consuming, waits up to drainTimeout for running handlers and
// then releases the publisher and the pool.
func (b *EventBus) Close() error {
	var errs []error
	if b.subscriber != nil {
		if err := b.subscriber.Close(); err != nil {
			errs = append(errs, fmt.Errorf("events: close subscriber: %w", err))
		}
	}
	if b.fwd != nil {
		if err := b.fwd.Close(); err != nil {
			errs = append(errs, fmt.Errorf("events: close forwarder: %w", err))
		}
	}

	done := make(chan struct{})
	go func() {
		b.handlers.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(drainTimeout):
		b.log.Error("events: timed out waiting for in-flight handlers")
	}

	if b.publisher != nil {
		if err := b.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("events: close publisher: %w", err))
		}
	}
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("events: close db: %w", err))
		}
	}
	return errors.Join(errs...)
}
