package middleware

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/askboard/internal/domain"
	"github.com/nfrund/askboard/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdentity() *testutils.Identity {
	return &testutils.Identity{
		Tokens: map[string]*domain.Session{
			"good": {UserID: "u1", Email: "u1@example.com"},
		},
	}
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSession(t *testing.T) {
	e := echo.New()
	e.Use(Session(newIdentity()))
	e.GET("/whoami", func(c echo.Context) error {
		s := SessionFrom(c)
		if s == nil {
			return c.String(http.StatusOK, "anonymous")
		}
		return c.String(http.StatusOK, s.UserID)
	})

	t.Run("no cookie", func(t *testing.T) {
		rec := serve(e, httptest.NewRequest(http.MethodGet, "/whoami", nil))
		assert.Equal(t, "anonymous", rec.Body.String())
	})

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "good"})
		rec := serve(e, req)
		assert.Equal(t, "u1", rec.Body.String())
	})

	t.Run("invalid token clears cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "expired"})
		rec := serve(e, req)
		assert.Equal(t, "anonymous", rec.Body.String())
		require.NotEmpty(t, rec.Result().Cookies())
		assert.Equal(t, AuthCookieName, rec.Result().Cookies()[0].Name)
		assert.Equal(t, -1, rec.Result().Cookies()[0].MaxAge)
	})
}

func TestSession_IdentityOutageKeepsCookie(t *testing.T) {
	identity := newIdentity()
	identity.Err = errors.New("dial tcp: connection refused")

	e := echo.New()
	e.Use(Session(identity))
	e.GET("/", func(c echo.Context) error {
		assert.Nil(t, SessionFrom(c))
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "good"})
	rec := serve(e, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestRequireSession(t *testing.T) {
	e := echo.New()
	e.Use(Session(newIdentity()))
	e.GET("/private", func(c echo.Context) error {
		return c.String(http.StatusOK, "secret")
	}, RequireSession)

	t.Run("redirects anonymous users", func(t *testing.T) {
		rec := serve(e, httptest.NewRequest(http.MethodGet, "/private", nil))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, LoginPath, rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("htmx gets HX-Redirect", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("HX-Request", "true")
		rec := serve(e, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, LoginPath, rec.Header().Get("HX-Redirect"))
	})

	t.Run("lets sessions through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "good"})
		rec := serve(e, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "secret", rec.Body.String())
	})
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set(echo.HeaderXRequestID, "req-1")
			return next(c)
		}
	})
	e.Use(Logger)
	e.Use(Session(newIdentity()))
	e.GET("/", func(c echo.Context) error {
		FromContext(c.Request().Context()).Info("handled")
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "good"})
	serve(e, req)

	assert.Contains(t, buf.String(), "request_id=req-1")
	assert.Contains(t, buf.String(), "user_id=u1")
}
