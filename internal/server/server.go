package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/askboard/internal/config"
	"github.com/nfrund/askboard/internal/domain"
	"github.com/nfrund/askboard/internal/handlers"
	"github.com/nfrund/askboard/internal/middleware"
	"github.com/nfrund/askboard/internal/pagecache"
	"github.com/nfrund/askboard/internal/rendering"
)

// Dependencies are the services the HTTP server is built from.
type Dependencies struct {
	Config   config.Provider
	Identity domain.IdentityService
	Profiles handlers.ProfileService
	Cache    *pagecache.Cache
	Renderer *rendering.UniversalRenderer
	// Health is optional; nil means no database to report on.
	Health handlers.HealthChecker
}

// Server holds the dependencies for the HTTP server.
type Server struct {
	E   *echo.Echo
	Cfg config.Provider

	identity       domain.IdentityService
	health         handlers.HealthChecker
	authHandler    *handlers.AuthHandler
	profileHandler *handlers.ProfileHandler
}

// New creates a new Server instance with its middleware chain installed.
func New(deps Dependencies) (*Server, error) {
	if deps.Config == nil || deps.Identity == nil || deps.Profiles == nil || deps.Cache == nil || deps.Renderer == nil {
		return nil, fmt.Errorf("server: missing dependency")
	}
	if deps.Config.GetSessionSecret() == "" {
		return nil, fmt.Errorf("server: SESSION_SECRET is not set")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = deps.Renderer
	e.Validator = handlers.NewValidator()
	setupErrorHandling(e)

	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.Logger)
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			logger := middleware.FromContext(c.Request().Context())
			attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency_ms", v.Latency.Milliseconds()}
			if v.Error != nil {
				logger.Warn("Request failed", append(attrs, "error", v.Error)...)
				return nil
			}
			logger.Info("Request handled", attrs...)
			return nil
		},
	}))
	e.Use(echomw.Recover())

	store := sessions.NewCookieStore([]byte(deps.Config.GetSessionSecret()))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
	}
	e.Use(session.Middleware(store))
	e.Use(middleware.Session(deps.Identity))

	return &Server{
		E:              e,
		Cfg:            deps.Config,
		identity:       deps.Identity,
		health:         deps.Health,
		authHandler:    handlers.NewAuthHandler(deps.Identity, deps.Renderer),
		profileHandler: handlers.NewProfileHandler(deps.Profiles, deps.Cache, deps.Renderer),
	}, nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	slog.InfoContext(ctx, "Shutting down HTTP server", "event", "server_shutdown")
	return s.E.Shutdown(ctx)
}
