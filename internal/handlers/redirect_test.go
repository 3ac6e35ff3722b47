package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/askboard/internal/handlers"
	"github.com/stretchr/testify/assert"
)

func TestPermanentRedirect(t *testing.T) {
	e := echo.New()
	e.GET("/profile", handlers.PermanentRedirect("/dashboard/profile"))

	tests := []struct {
		path string
		want string
	}{
		{"/profile", "/dashboard/profile"},
		{"/profile?tab=bio&x=1", "/dashboard/profile?tab=bio&x=1"},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
		assert.Equal(t, http.StatusPermanentRedirect, rec.Code)
		assert.Equal(t, tt.want, rec.Header().Get(echo.HeaderLocation))
	}
}

type healthFunc func() bool

func (f healthFunc) IsHealthy() bool { return f() }

func TestHealth(t *testing.T) {
	tests := []struct {
		name    string
		checker handlers.HealthChecker
		want    int
	}{
		{"no database", nil, http.StatusOK},
		{"healthy database", healthFunc(func() bool { return true }), http.StatusOK},
		{"unhealthy database", healthFunc(func() bool { return false }), http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.GET("/health", handlers.Health(tt.checker))
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
