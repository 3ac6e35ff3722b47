package pagecache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/nfrund/askboard/internal/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_GetSetExpire(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c := New(time.Minute)
	c.now = func() time.Time { return now }

	_, ok := c.Get("/dashboard/profile", "u1")
	assert.False(t, ok)

	c.Set("/dashboard/profile", "u1", []byte("<p>u1</p>"))
	body, ok := c.Get("/dashboard/profile", "u1")
	require.True(t, ok)
	assert.Equal(t, "<p>u1</p>", string(body))

	_, ok = c.Get("/dashboard/profile", "u2")
	assert.False(t, ok, "entries are per user")

	now = now.Add(time.Minute)
	_, ok = c.Get("/dashboard/profile", "u1")
	assert.False(t, ok, "entry expires at its ttl")
	assert.Equal(t, 1, c.Prune())
	assert.Zero(t, c.Len())
}

func TestCache_InvalidateRoute(t *testing.T) {
	c := New(time.Minute)
	c.Set("/dashboard/profile", "u1", []byte("a"))
	c.Set("/dashboard/profile", "u2", []byte("b"))
	c.Set("/dashboard", "u1", []byte("c"))

	assert.Equal(t, 2, c.Invalidate("/dashboard/profile"))
	_, ok := c.Get("/dashboard/profile", "u1")
	assert.False(t, ok)
	_, ok = c.Get("/dashboard", "u1")
	assert.True(t, ok)
}

func TestCache_SetIfGeneration(t *testing.T) {
	c := New(time.Minute)
	gen := c.Generation("/dashboard/profile")

	require.True(t, c.SetIfGeneration("/dashboard/profile", "u1", gen, []byte("fresh")))

	stale := c.Generation("/dashboard/profile")
	c.Invalidate("/dashboard/profile")
	assert.False(t, c.SetIfGeneration("/dashboard/profile", "u1", stale, []byte("old")),
		"a render started before the invalidation must not be stored")
	_, ok := c.Get("/dashboard/profile", "u1")
	assert.False(t, ok)

	assert.True(t, c.SetIfGeneration("/dashboard", "u1", c.Generation("/dashboard"), []byte("other")),
		"other routes keep their own generation")
}

func TestCache_ConcurrentRendersAndInvalidations(t *testing.T) {
	const route = "/dashboard/profile"
	c := New(time.Minute)

	var (
		mu      sync.Mutex
		version int
	)
	current := func() int {
		mu.Lock()
		defer mu.Unlock()
		return version
	}

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			user := fmt.Sprintf("u%d", w%2)
			for i := 0; i < 200; i++ {
				gen := c.Generation(route)
				body := []byte(fmt.Sprint(current()))
				c.SetIfGeneration(route, user, gen, body)
				c.Get(route, user)
			}
		}(w)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			mu.Lock()
			version++
			mu.Unlock()
			c.Invalidate(route)
		}
	}()
	wg.Wait()

	// Anything still cached was rendered after the last invalidation.
	final := fmt.Sprint(current())
	for _, user := range []string{"u0", "u1"} {
		if body, ok := c.Get(route, user); ok {
			assert.Equal(t, final, string(body), user)
		}
	}
}

func TestBusInvalidator_EvictsBeforeReturning(t *testing.T) {
	bus := pubsub.NewWatermillBridge(nil)
	t.Cleanup(func() { _ = bus.Close() })

	c := New(time.Minute)
	require.NoError(t, Subscribe(context.Background(), bus, c))
	c.Set("/dashboard/profile", "u1", []byte("stale"))

	inv := NewBusInvalidator(bus)
	require.NoError(t, inv.InvalidateRoute(context.Background(), "/dashboard/profile"))

	_, ok := c.Get("/dashboard/profile", "u1")
	assert.False(t, ok, "the next render must not see the stale fragment")
}

func TestStartPruning(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := New(time.Millisecond)
	c.Set("/r", "u", []byte("x"))
	StartPruning(ctx, c, 5*time.Millisecond)

	assert.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 5*time.Millisecond)
}
