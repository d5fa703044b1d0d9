// Package router wires middleware, routes and error handling onto the
// server's echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/iqlusioninc/crates-sub000/internal/api"
	"github.com/iqlusioninc/crates-sub000/internal/api/handlers"
	"github.com/iqlusioninc/crates-sub000/internal/api/middleware"
)

// Init attaches middleware and all routes to s.Echo.
func Init(s *api.Server) {
	s.Echo = echo.New()

	s.Echo.Debug = s.Config.Echo.Debug
	s.Echo.HideBanner = true
	s.Echo.Logger.SetOutput(&echoLogger{})

	s.Echo.HTTPErrorHandler = HTTPErrorHandler(s)

	if s.Config.Echo.EnableTrailingSlashMiddleware {
		s.Echo.Pre(echoMiddleware.RemoveTrailingSlash())
	}
	if s.Config.Echo.EnableRecoverMiddleware {
		s.Echo.Use(echoMiddleware.Recover())
	}
	if s.Config.Echo.EnableRequestIDMiddleware {
		s.Echo.Use(middleware.RequestID())
	}
	if s.Config.Echo.EnableLoggerMiddleware {
		s.Echo.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
			Level:             s.Config.Logger.RequestLevel,
			LogRequestBody:    s.Config.Logger.LogRequestBody,
			LogRequestHeader:  s.Config.Logger.LogRequestHeader,
			LogResponseBody:   s.Config.Logger.LogResponseBody,
			LogResponseHeader: s.Config.Logger.LogResponseHeader,
		}))
	}
	if s.Config.Echo.EnableCORSMiddleware {
		s.Echo.Use(echoMiddleware.CORS())
	}

	s.Router = &api.Router{
		Root:         s.Echo.Group(""),
		Management:   s.Echo.Group("/-"),
		APIV1Keys:    s.Echo.Group("/api/v1/keys"),
		APIV1Wallets: s.Echo.Group("/api/v1/wallets"),
	}

	s.Router.Management.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	s.Router.Routes = handlers.AttachAllRoutes(s)

	for _, route := range s.Router.Routes {
		log.Debug().Str("method", route.Method).Str("path", route.Path).Msg("Registered route")
	}
}

// echoLogger silences echo's internal logger in favour of zerolog.
type echoLogger struct{}

func (l *echoLogger) Write(p []byte) (int, error) {
	log.Warn().Bytes("echo", p).Msg("Echo internal log")
	return len(p), nil
}
