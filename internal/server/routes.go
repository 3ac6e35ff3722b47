package server

import (
	"github.com/labstack/echo/v4"
	"github.com/nfrund/askboard/internal/handlers"
	"github.com/nfrund/askboard/internal/middleware"
	"github.com/nfrund/askboard/internal/profile"
	"github.com/nfrund/askboard/web"
)

// RegisterRoutes sets up all the application routes.
func (s *Server) RegisterRoutes() {
	rateLimiter := middleware.RateLimiter(middleware.LoginRateLimit)

	s.E.StaticFS("/static", echo.MustSubFS(web.FS, "static"))
	s.E.GET("/health", handlers.Health(s.health))

	s.E.GET("/auth/login", s.authHandler.LoginGetHandler)
	s.E.POST("/auth/login", s.authHandler.LoginPost, rateLimiter)
	s.E.POST("/auth/logout", s.authHandler.Logout)

	// The update itself reports a missing session in its result, so only
	// the read routes are wrapped in RequireSession.
	s.E.GET(profile.Route, s.profileHandler.Page, middleware.RequireSession)
	s.E.GET(handlers.ProfileContentPath, s.profileHandler.Content, middleware.RequireSession)
	s.E.POST(profile.Route, s.profileHandler.Update)

	// Former entry points, consolidated into the profile page.
	toProfile := handlers.PermanentRedirect(profile.Route)
	s.E.GET("/", toProfile)
	s.E.GET("/profile", toProfile)
	s.E.GET("/dashboard", toProfile)
}
