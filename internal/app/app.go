package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nfrund/askboard/internal/config"
	"github.com/nfrund/askboard/internal/database"
	"github.com/nfrund/askboard/internal/domain"
	"github.com/nfrund/askboard/internal/handlers"
	"github.com/nfrund/askboard/internal/pagecache"
	"github.com/nfrund/askboard/internal/profile"
	"github.com/nfrund/askboard/internal/pubsub"
	"github.com/nfrund/askboard/internal/rendering"
	"github.com/nfrund/askboard/internal/server"
	"github.com/samber/do/v2"
	"github.com/spf13/afero"
)

const connectTimeout = 30 * time.Second

// New builds the root injector for the application. Services are created
// lazily on first invoke and closed in reverse order by Shutdown.
//
// ctx bounds background work started by providers, such as the page cache
// subscription and pruning loop.
func New(ctx context.Context, cfg config.Provider, fs afero.Fs) *do.RootScope {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, fs)
	do.Provide(injector, provideConnection)
	do.Provide(injector, provideProfileRepository)
	do.Provide(injector, provideIdentity)
	do.Provide(injector, func(i do.Injector) (*pubsub.WatermillBridge, error) {
		return pubsub.NewWatermillBridge(slog.Default()), nil
	})
	do.Provide(injector, func(i do.Injector) (*pagecache.Cache, error) {
		return providePageCache(ctx, i)
	})
	do.Provide(injector, provideService)
	do.Provide(injector, provideServer)

	return injector
}

// provideConnection returns an unconnected managed connection. Only the
// SurrealDB profile store connects it; the identity store dials its own.
func provideConnection(i do.Injector) (*database.Connection, error) {
	return database.NewConnection(do.MustInvoke[config.Provider](i)), nil
}

func provideProfileRepository(i do.Injector) (domain.ProfileRepository, error) {
	cfg := do.MustInvoke[config.Provider](i)

	switch cfg.GetProfileStore() {
	case config.StoreFile:
		slog.Info("Using file profile store", "path", cfg.GetProfileStorePath())
		return database.NewFileProfileStore(do.MustInvoke[afero.Fs](i), cfg.GetProfileStorePath()), nil
	case config.StoreSurreal:
		conn, err := do.Invoke[*database.Connection](i)
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		if err := conn.Connect(ctx); err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		conn.StartMonitoring()
		return database.NewProfileStore(conn, cfg)
	default:
		return nil, fmt.Errorf("unknown profile store %q", cfg.GetProfileStore())
	}
}

func provideIdentity(i do.Injector) (domain.IdentityService, error) {
	cfg := do.MustInvoke[config.Provider](i)
	conn, err := do.Invoke[*database.Connection](i)
	if err != nil {
		return nil, err
	}
	return database.NewIdentityStore(conn, cfg.GetDBNs(), cfg.GetDBDb()), nil
}

func providePageCache(ctx context.Context, i do.Injector) (*pagecache.Cache, error) {
	cfg := do.MustInvoke[config.Provider](i)
	bus, err := do.Invoke[*pubsub.WatermillBridge](i)
	if err != nil {
		return nil, err
	}

	cache := pagecache.New(cfg.GetPageCacheTTL())
	if err := pagecache.Subscribe(ctx, bus, cache); err != nil {
		return nil, fmt.Errorf("failed to subscribe page cache: %w", err)
	}
	pagecache.StartPruning(ctx, cache, cfg.GetPageCacheTTL())
	return cache, nil
}

func provideService(i do.Injector) (*profile.Service, error) {
	repo, err := do.Invoke[domain.ProfileRepository](i)
	if err != nil {
		return nil, err
	}
	bus, err := do.Invoke[*pubsub.WatermillBridge](i)
	if err != nil {
		return nil, err
	}
	// The cache must be subscribed before the first invalidation is published.
	if _, err := do.Invoke[*pagecache.Cache](i); err != nil {
		return nil, err
	}
	return profile.NewService(repo, pagecache.NewBusInvalidator(bus), profile.WithLogger(slog.Default())), nil
}

func provideServer(i do.Injector) (*server.Server, error) {
	cfg := do.MustInvoke[config.Provider](i)

	identity, err := do.Invoke[domain.IdentityService](i)
	if err != nil {
		return nil, err
	}
	service, err := do.Invoke[*profile.Service](i)
	if err != nil {
		return nil, err
	}
	cache, err := do.Invoke[*pagecache.Cache](i)
	if err != nil {
		return nil, err
	}

	var health handlers.HealthChecker
	if cfg.GetProfileStore() == config.StoreSurreal {
		health = do.MustInvoke[*database.Connection](i)
	}

	s, err := server.New(server.Dependencies{
		Config:   cfg,
		Identity: identity,
		Profiles: service,
		Cache:    cache,
		Renderer: rendering.NewUniversalRenderer(),
		Health:   health,
	})
	if err != nil {
		return nil, err
	}
	s.RegisterRoutes()
	return s, nil
}
