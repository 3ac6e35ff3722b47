package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// PermanentRedirect sends old routes to target with a 308, keeping the
// query string. It consolidates the former /profile and /dashboard pages.
func PermanentRedirect(target string) echo.HandlerFunc {
	return func(c echo.Context) error {
		dest := target
		if q := c.Request().URL.RawQuery; q != "" {
			dest += "?" + q
		}
		return c.Redirect(http.StatusPermanentRedirect, dest)
	}
}

// HealthChecker reports whether a backing service is usable.
type HealthChecker interface {
	IsHealthy() bool
}

// Health reports whether the process and its database are serving. checker
// may be nil when no database is in use.
func Health(checker HealthChecker) echo.HandlerFunc {
	return func(c echo.Context) error {
		if checker != nil && !checker.IsHealthy() {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "degraded", "database": "unhealthy"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
}
