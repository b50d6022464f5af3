package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/stockroom/pkg/logger"
)

// Handler processes one message. The context carries the publisher's trace.
type Handler func(ctx context.Context, msg *message.Message) error

const errBuffer = 100

// retryPolicy retries a failing handler with doubling delays.
type retryPolicy struct {
	attempts  int
	baseDelay time.Duration
}

var defaultRetry = retryPolicy{attempts: 3, baseDelay: time.Second}

type permanentError struct{ err error }

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying. The message is acked and err is
// still reported on the subscription's error channel.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	var pe *permanentError
	return errors.As(err, &pe)
}

// Subscribe consumes topic until ctx is cancelled or the bus is closed.
// A message is acked when handler succeeds or fails permanently, and nacked
// for redelivery after the retries are spent. Handler failures are sent on the
// returned channel, which the caller must drain.
func (b *EventBus) Subscribe(ctx context.Context, topic string, handler Handler) (<-chan error, error) {
	msgs, err := b.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("events: subscribe to %s: %w", topic, err)
	}

	errCh := make(chan error, errBuffer)
	b.handlers.Add(1)
	go func() {
		defer b.handlers.Done()
		defer close(errCh)
		for msg := range msgs {
			msgCtx := extractTrace(ctx, msg)
			err := defaultRetry.run(msgCtx, msg, handler, b.log)
			if err == nil || IsPermanent(err) {
				msg.Ack()
			} else {
				msg.Nack()
			}
			if err == nil {
				continue
			}
			select {
			case errCh <- fmt.Errorf("%s: %w", topic, err):
			default:
				b.log.ErrorContext(msgCtx, "events: error channel full, dropping error", "topic", topic, "error", err)
			}
		}
	}()
	return errCh, nil
}

// SubscribeTopics subscribes handler to every topic and merges their error
// channels. The merged channel closes once every subscription has stopped.
func (b *EventBus) SubscribeTopics(ctx context.Context, topics []string, handler Handler) (<-chan error, error) {
	chans := make([]<-chan error, 0, len(topics))
	for _, topic := range topics {
		ch, err := b.Subscribe(ctx, topic, handler)
		if err != nil {
			return nil, err
		}
		chans = append(chans, ch)
	}
	return merge(chans...), nil
}

func merge(chans ...<-chan error) <-chan error {
	out := make(chan error, errBuffer)
	var wg sync.WaitGroup
	for _, ch := range chans {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for err := range ch {
				out <- err
			}
		}()
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// run calls handler until it succeeds, fails permanently, ctx ends or the
// attempts are spent.
func (p retryPolicy) run(ctx context.Context, msg *message.Message, handler Handler, log logger.Logger) error {
	delay := p.baseDelay
	var err error
	for attempt := 1; attempt <= p.attempts; attempt++ {
		if err = handler(ctx, msg); err == nil || IsPermanent(err) {
			return err
		}
		if attempt == p.attempts {
			break
		}
		log.WarnContext(ctx, "events: handler failed, retrying",
			"message_id", msg.UUID,
			"event_id", msg.Metadata.Get(MetadataEventID),
			"attempt", attempt,
			"next_delay", delay,
			"error", err,
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return fmt.Errorf("events: handler failed after %d attempts: %w", p.attempts, err)
}
