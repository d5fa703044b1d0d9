// Package common exposes the operational probe endpoints.
package common

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iqlusioninc/crates-sub000/internal/api"
)

// GetReadyRoute registers the readiness probe. It reports whether the
// server finished initialization, without touching dependencies.
func GetReadyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/ready", getReadyHandler(s))
}

func getReadyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !s.Ready() {
			return c.String(statusUnhealthy, "Not ready.")
		}
		return c.String(http.StatusOK, "Ready.")
	}
}
