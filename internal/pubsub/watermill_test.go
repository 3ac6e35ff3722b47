package pubsub

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ctxKey struct{}

func TestWatermillBridge_PublishBlocksUntilHandled(t *testing.T) {
	bus := NewWatermillBridge(nil)
	t.Cleanup(func() { _ = bus.Close() })

	var mu sync.Mutex
	var got []Message
	require.NoError(t, bus.Subscribe(context.Background(), "test.topic", func(ctx context.Context, msg Message) error {
		time.Sleep(10 * time.Millisecond)
		mu.Lock()
		got = append(got, msg)
		mu.Unlock()
		return nil
	}))

	err := bus.Publish(context.Background(), Message{
		Topic:    "test.topic",
		UserID:   "u1",
		Payload:  []byte("hello"),
		Metadata: map[string]string{"request_id": "r1"},
	})
	require.NoError(t, err)

	// No waiting: Publish returns after the handler ran.
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 1)
	assert.Equal(t, "test.topic", got[0].Topic)
	assert.Equal(t, "u1", got[0].UserID)
	assert.Equal(t, []byte("hello"), []byte(got[0].Payload))
	assert.Equal(t, "r1", got[0].Metadata["request_id"])
	assert.NotContains(t, got[0].Metadata, metaKeyTopic)
}

func TestWatermillBridge_HandlerSeesPublisherContext(t *testing.T) {
	bus := NewWatermillBridge(nil)
	t.Cleanup(func() { _ = bus.Close() })

	seen := make(chan any, 1)
	require.NoError(t, bus.Subscribe(context.Background(), "ctx.topic", func(ctx context.Context, msg Message) error {
		seen <- ctx.Value(ctxKey{})
		return nil
	}))

	ctx := context.WithValue(context.Background(), ctxKey{}, "from-publisher")
	require.NoError(t, bus.Publish(ctx, Message{Topic: "ctx.topic"}))
	assert.Equal(t, "from-publisher", <-seen)
}

func TestWatermillBridge_FailingHandlerIsNotRedelivered(t *testing.T) {
	bus := NewWatermillBridge(nil)
	t.Cleanup(func() { _ = bus.Close() })

	var calls int
	var mu sync.Mutex
	require.NoError(t, bus.Subscribe(context.Background(), "fail.topic", func(ctx context.Context, msg Message) error {
		mu.Lock()
		calls++
		mu.Unlock()
		return errors.New("handler failed")
	}))

	require.NoError(t, bus.Publish(context.Background(), Message{Topic: "fail.topic"}))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls)
}

func TestWatermillBridge_PublishWithoutSubscribers(t *testing.T) {
	bus := NewWatermillBridge(nil)
	t.Cleanup(func() { _ = bus.Close() })

	require.NoError(t, bus.Publish(context.Background(), Message{Topic: "nobody.listens"}))
}

func TestWatermillBridge_CloseIsIdempotent(t *testing.T) {
	bus := NewWatermillBridge(nil)
	require.NoError(t, bus.Subscribe(context.Background(), "t", func(context.Context, Message) error { return nil }))
	require.NoError(t, bus.Close())
	require.NoError(t, bus.Shutdown())
}

type greeting struct {
	Name string `json:"name"`
}

func TestTypedEvent(t *testing.T) {
	bus := NewWatermillBridge(nil)
	t.Cleanup(func() { _ = bus.Close() })

	event := NewEvent[greeting]("test.greeting")
	assert.Equal(t, "test.greeting", event.Name())

	got := make(chan greeting, 1)
	require.NoError(t, Handle(context.Background(), bus, event, func(ctx context.Context, g greeting) error {
		got <- g
		return nil
	}))

	require.NoError(t, Publish(context.Background(), bus, event, greeting{Name: "Ada"}))
	assert.Equal(t, greeting{Name: "Ada"}, <-got)
}
