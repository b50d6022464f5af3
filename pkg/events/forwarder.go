package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/components/forwarder"
)

var (
	errNotForwarding   = errors.New("events: bus was not created with NewEventBusWithForwarder")
	errForwarderActive = errors.New("events: forwarder already started")
)

// StartForwarder runs the daemon that moves events from the outbox queue to
// their topics. It returns once the daemon is running; the daemon stops when
// ctx is cancelled or the bus is closed.
func (b *EventBus) StartForwarder(ctx context.Context) error {
	if !b.useForwarder {
		return errNotForwarding
	}
	if b.fwd != nil {
		return errForwarderActive
	}

	queue, err := b.newSubscriber(forwarderGroup)
	if err != nil {
		return err
	}
	target, err := b.newPublisher(b.db, true)
	if err != nil {
		_ = queue.Close()
		return err
	}
	fwd, err := forwarder.NewForwarder(queue, target, b.wlog, forwarder.Config{ForwarderTopic: forwarderTopic})
	if err != nil {
		_ = target.Close()
		_ = queue.Close()
		return fmt.Errorf("events: create forwarder: %w", err)
	}
	b.fwd = fwd

	b.handlers.Add(1)
	go func() {
		defer b.handlers.Done()
		b.log.InfoContext(ctx, "events: forwarder started", "queue", forwarderTopic)
		if err := fwd.Run(ctx); err != nil {
			b.log.ErrorContext(ctx, "events: forwarder stopped", "error", err)
			return
		}
		b.log.InfoContext(ctx, "events: forwarder stopped")
	}()

	select {
	case <-fwd.Running():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("events: waiting for forwarder: %w", ctx.Err())
	}
}
