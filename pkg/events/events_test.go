package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/ghuser/stockroom/pkg/logger"
)

var fastRetry = retryPolicy{attempts: 3, baseDelay: time.Millisecond}

func countingHandler(calls *int, fail func(n int) error) Handler {
	return func(context.Context, *message.Message) error {
		*calls++
		return fail(*calls)
	}
}

func TestRetryPolicy(t *testing.T) {
	transient := errors.New("redis timeout")

	tests := []struct {
		name      string
		fail      func(n int) error
		wantCalls int
		wantErr   bool
		permanent bool
	}{
		{"first attempt succeeds", func(int) error { return nil }, 1, false, false},
		{"succeeds on last attempt", func(n int) error {
			if n < 3 {
				return transient
			}
			return nil
		}, 3, false, false},
		{"attempts spent", func(int) error { return transient }, 3, true, false},
		{"permanent failure stops at once", func(int) error { return Permanent(transient) }, 1, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := fastRetry.run(context.Background(), message.NewMessage("m", nil), countingHandler(&calls, tt.fail), logger.Nop())

			assert.Equal(t, tt.wantCalls, calls)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, transient)
			assert.Equal(t, tt.permanent, IsPermanent(err))
		})
	}
}

func TestRetryPolicy_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	slow := retryPolicy{attempts: 3, baseDelay: time.Hour}
	err := slow.run(ctx, message.NewMessage("m", nil), countingHandler(&calls, func(int) error { return errors.New("down") }), logger.Nop())

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestPermanent(t *testing.T) {
	assert.NoError(t, Permanent(nil))

	base := errors.New("bad payload")
	err := Permanent(base)
	assert.True(t, IsPermanent(err))
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "bad payload", err.Error())
	assert.False(t, IsPermanent(base))
}

func TestStartForwarder_RequiresForwarderMode(t *testing.T) {
	bus := &EventBus{}
	assert.ErrorIs(t, bus.StartForwarder(context.Background()), errNotForwarding)
}

func TestJSONMessage_RoundTrip(t *testing.T) {
	type event struct {
		CategoryID string `json:"category_id"`
		Name       string `json:"name"`
	}
	msg, err := NewJSONMessage("evt-1", 2, event{CategoryID: "c-1", Name: "Tools"})
	require.NoError(t, err)
	assert.Equal(t, "evt-1", msg.Metadata.Get(MetadataEventID))
	assert.Equal(t, "2", msg.Metadata.Get(MetadataEventVersion))

	var got event
	require.NoError(t, DecodeJSON(msg, &got))
	assert.Equal(t, event{CategoryID: "c-1", Name: "Tools"}, got)
}

func TestDecodeJSON_InvalidPayloadIsPermanent(t *testing.T) {
	var v map[string]any
	err := DecodeJSON(message.NewMessage("id", []byte("{not json")), &v)
	require.Error(t, err)
	assert.True(t, IsPermanent(err))
}

func TestTracePropagation(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	ctx, span := otel.Tracer("test").Start(context.Background(), "CategoryRepository.Save")
	defer span.End()

	msgs := []*message.Message{message.NewMessage("a", nil), message.NewMessage("b", nil)}
	injectTrace(ctx, msgs)

	for _, msg := range msgs {
		assert.NotEmpty(t, msg.Metadata.Get("traceparent"))
		got := trace.SpanContextFromContext(extractTrace(context.Background(), msg))
		require.True(t, got.IsValid())
		assert.Equal(t, span.SpanContext().TraceID(), got.TraceID())
	}
}

func TestMerge_ClosesAfterAllInputs(t *testing.T) {
	a, b := make(chan error, 1), make(chan error, 1)
	a <- errors.New("a")
	b <- errors.New("b")
	close(a)
	close(b)

	var got []string
	for err := range merge(a, b) {
		got = append(got, err.Error())
	}
	assert.ElementsMatch(t, []string{"a", "b"}, got)
}

func TestSlogAdapter_FieldArgs(t *testing.T) {
	args := fieldArgs(watermill.LogFields{"topic": "catalog.item.created"})
	assert.Equal(t, []any{"topic", "catalog.item.created"}, args)

	var adapter watermill.LoggerAdapter = &slogAdapter{log: logger.Nop()}
	adapter.With(watermill.LogFields{"consumer_group": "stockroom-consumer"}).Info("subscribed", nil)
}
