package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/askboard/internal/domain"
	"github.com/nfrund/askboard/internal/middleware"
	"github.com/nfrund/askboard/internal/profile"
	"github.com/nfrund/askboard/internal/rendering"
	"github.com/nfrund/askboard/internal/view"
	"github.com/nfrund/askboard/web/src/templates/layouts"
	"github.com/nfrund/askboard/web/src/templates/pages"
)

const flashKeyFormEmail = "form_email"

// AuthHandler handles sign in and sign out against the identity service.
type AuthHandler struct {
	identity domain.IdentityService
	renderer rendering.Renderer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(identity domain.IdentityService, renderer rendering.Renderer) *AuthHandler {
	return &AuthHandler{identity: identity, renderer: renderer}
}

// LoginGetHandler renders the login page (GET /auth/login).
// It retrieves flash messages and the email of a failed attempt.
func (h *AuthHandler) LoginGetHandler(c echo.Context) error {
	if middleware.SessionFrom(c) != nil {
		return c.Redirect(http.StatusSeeOther, profile.Route)
	}

	var prefilledEmail string
	if sess, err := session.Get("flash-session", c); err == nil {
		if flashes := sess.Flashes(flashKeyFormEmail); len(flashes) > 0 {
			if val, ok := flashes[0].(string); ok {
				prefilledEmail = val
			}
			// Save to clear the consumed "form_email" flash.
			_ = sess.Save(c.Request(), c.Response())
		}
	}

	page := layouts.Page("Sign in", view.GetFlashData(c), false, pages.Login(prefilledEmail))
	return h.renderer.RenderPage(c, http.StatusOK, page)
}

// LoginPost handles the form submission for logging in a user.
func (h *AuthHandler) LoginPost(c echo.Context) error {
	logger := middleware.FromContext(c.Request().Context())

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid login form")
	}
	if err := c.Validate(&req); err != nil {
		view.SetFlashError(c, "Enter a valid email and password.")
		return h.backToLogin(c, req.Email)
	}

	token, err := h.identity.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			logger.Warn("Failed login attempt", "event", "login_failed", "email", req.Email)
			view.SetFlashError(c, "Invalid email or password.")
		} else {
			logger.Error("Identity service sign in failed", "event", "login_error", "error", err)
			view.SetFlashError(c, "Sign in is unavailable right now. Please try again.")
		}
		return h.backToLogin(c, req.Email)
	}

	setAuthCookie(c, token)
	view.SetFlashSuccess(c, "Logged in successfully!")
	return c.Redirect(http.StatusSeeOther, profile.Route)
}

// Logout handles logging the user out by clearing their session cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	middleware.ClearAuthCookie(c)
	view.SetFlashSuccess(c, "You have been logged out.")
	return c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}

// backToLogin keeps the submitted email for the next render of the form.
func (h *AuthHandler) backToLogin(c echo.Context, email string) error {
	if sess, err := session.Get("flash-session", c); err == nil && email != "" {
		sess.AddFlash(email, flashKeyFormEmail)
		if err := sess.Save(c.Request(), c.Response()); err != nil {
			middleware.FromContext(c.Request().Context()).Error("Failed to save session", "error", err)
		}
	}
	return c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}

// setAuthCookie stores the identity service token.
func setAuthCookie(c echo.Context, token string) {
	cookie := new(http.Cookie)
	cookie.Name = middleware.AuthCookieName
	cookie.Value = token
	cookie.Path = "/"
	cookie.Expires = time.Now().UTC().Add(24 * time.Hour)
	// HttpOnly flag prevents client-side JavaScript from accessing the cookie.
	cookie.HttpOnly = true
	// Secure only when served over TLS so local development still works.
	cookie.Secure = c.Request().TLS != nil
	cookie.SameSite = http.SameSiteLaxMode
	c.SetCookie(cookie)
}
