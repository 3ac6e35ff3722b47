package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/askboard/internal/domain"
)

const (
	// SessionContextKey is where the resolved *domain.Session is kept on the echo context.
	SessionContextKey = "session"
	// AuthCookieName holds the identity service's session token.
	AuthCookieName = "auth_token"
	// LoginPath is where unauthenticated users are sent.
	LoginPath = "/auth/login"
)

// Session resolves the auth cookie into a *domain.Session through identity and
// stores it on the context. It never rejects a request: a missing or invalid
// token simply leaves no session, and handlers decide what that means.
func Session(identity domain.IdentityService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(AuthCookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			ctx := c.Request().Context()
			session, err := identity.ResolveSession(ctx, cookie.Value)
			switch {
			case err == nil && session.Valid():
				c.Set(SessionContextKey, session)
				setLogger(c, FromContext(ctx).With("user_id", session.UserID))
			case err == nil, errors.Is(err, domain.ErrUnauthenticated):
				ClearAuthCookie(c)
			default:
				// The identity service is unreachable; the token may still be good.
				FromContext(ctx).WarnContext(ctx, "Failed to resolve session", "event", "session_resolve_failed", "error", err)
			}
			return next(c)
		}
	}
}

// RequireSession redirects to the login page when Session resolved nothing.
// htmx requests get an HX-Redirect header instead of a 303.
func RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if SessionFrom(c) == nil {
			return RedirectToLogin(c)
		}
		return next(c)
	}
}

// SessionFrom returns the session resolved for this request, or nil.
func SessionFrom(c echo.Context) *domain.Session {
	s, _ := c.Get(SessionContextKey).(*domain.Session)
	if !s.Valid() {
		return nil
	}
	return s
}

// RedirectToLogin sends the client to the login page.
func RedirectToLogin(c echo.Context) error {
	if c.Request().Header.Get("HX-Request") == "true" {
		c.Response().Header().Set("HX-Redirect", LoginPath)
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusSeeOther, LoginPath)
}

// ClearAuthCookie expires the auth cookie.
func ClearAuthCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
