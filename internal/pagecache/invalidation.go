package pagecache

import (
	"context"
	"log/slog"
	"time"

	"github.com/nfrund/askboard/internal/pubsub"
)

// RouteInvalidated is published when the cached render of a route is stale.
type RouteInvalidated struct {
	Route string    `json:"route"`
	At    time.Time `json:"at"`
}

// TopicRouteInvalidated carries RouteInvalidated events.
var TopicRouteInvalidated = pubsub.NewEvent[RouteInvalidated]("pagecache.route.invalidated")

// BusInvalidator signals route invalidation over the message bus.
type BusInvalidator struct {
	pub pubsub.Publisher
	now func() time.Time
}

// NewBusInvalidator creates a new BusInvalidator.
func NewBusInvalidator(pub pubsub.Publisher) *BusInvalidator {
	return &BusInvalidator{pub: pub, now: time.Now}
}

// InvalidateRoute publishes a RouteInvalidated event for route.
func (b *BusInvalidator) InvalidateRoute(ctx context.Context, route string) error {
	return pubsub.Publish(ctx, b.pub, TopicRouteInvalidated, RouteInvalidated{Route: route, At: b.now().UTC()})
}

// Subscribe evicts cached entries whenever a RouteInvalidated event arrives.
func Subscribe(ctx context.Context, sub pubsub.Subscriber, cache *Cache) error {
	return pubsub.Handle(ctx, sub, TopicRouteInvalidated, func(ctx context.Context, ev RouteInvalidated) error {
		n := cache.Invalidate(ev.Route)
		slog.DebugContext(ctx, "Page cache route invalidated", "event", "pagecache_invalidated",
			"route", ev.Route, "evicted", n)
		return nil
	})
}

// StartPruning removes expired entries every interval until ctx is canceled.
func StartPruning(ctx context.Context, cache *Cache, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				cache.Prune()
			case <-ctx.Done():
				return
			}
		}
	}()
}
