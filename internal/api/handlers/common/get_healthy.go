package common

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iqlusioninc/crates-sub000/internal/api"
	"github.com/iqlusioninc/crates-sub000/internal/util"
)

// Non-standard status used so load balancers never mistake a failed
// probe for a generic upstream error.
const statusUnhealthy = 521

// GetHealthyRoute registers the liveness probe. It actively checks the
// database and the writeable paths and requires the management secret.
func GetHealthyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/healthy", getHealthyHandler(s))
}

func getHealthyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		if subtle.ConstantTimeCompare([]byte(c.QueryParam("mgmt-secret")), []byte(s.Config.Mgmt.Secret)) != 1 {
			return echo.ErrUnauthorized
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), s.Config.Mgmt.LivenessTimeout)
		defer cancel()

		log := util.LogFromContext(ctx)
		var report strings.Builder

		if err := s.DB.PingContext(ctx); err != nil {
			log.Error().Err(err).Msg("Database ping failed")
			fmt.Fprintf(&report, "Database: unhealthy (%v)\n", err)
			return c.String(statusUnhealthy, report.String())
		}
		report.WriteString("Database: healthy\n")

		for _, path := range s.Config.Mgmt.ProbeWriteablePathsAbs {
			touchfile := filepath.Join(path, s.Config.Mgmt.ProbeWriteableTouchfile)
			if err := os.WriteFile(touchfile, []byte(time.Now().Format(time.RFC3339)), 0o644); err != nil {
				log.Error().Err(err).Str("path", path).Msg("Writeable path probe failed")
				fmt.Fprintf(&report, "Path %s: unhealthy (%v)\n", path, err)
				return c.String(statusUnhealthy, report.String())
			}
			fmt.Fprintf(&report, "Path %s: healthy\n", path)
		}

		return c.String(http.StatusOK, report.String())
	}
}
