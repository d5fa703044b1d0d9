// Package api owns the HTTP server and its dependency graph.
package api

import (
	"context"
	"database/sql"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/iqlusioninc/crates-sub000/internal/config"
	"github.com/iqlusioninc/crates-sub000/internal/infra/key"
	"github.com/iqlusioninc/crates-sub000/internal/metrics"
)

// Router groups the echo route groups handlers attach to.
type Router struct {
	Routes       []*echo.Route
	Root         *echo.Group
	Management   *echo.Group
	APIV1Keys    *echo.Group
	APIV1Wallets *echo.Group
}

// Server bundles the configured components of the service.
type Server struct {
	Config     config.Server
	DB         *sql.DB
	Redis      *redis.Client
	Echo       *echo.Echo
	Router     *Router
	KeyService *key.Service
	Metrics    *metrics.Service
}

func newServerWithComponents(
	config config.Server,
	db *sql.DB,
	redisClient *redis.Client,
	keyService *key.Service,
	m *metrics.Service,
) *Server {
	return &Server{
		Config:     config,
		DB:         db,
		Redis:      redisClient,
		KeyService: keyService,
		Metrics:    m,
	}
}

// Ready reports whether the server has been fully initialized.
func (s *Server) Ready() bool {
	return s.DB != nil && s.Echo != nil && s.Router != nil && s.KeyService != nil
}

// Start begins serving on the configured listen address.
func (s *Server) Start() error {
	if !s.Ready() {
		return errors.New("server is not ready")
	}
	return s.Echo.Start(s.Config.Echo.ListenAddress)
}

// Shutdown stops the listener and closes all connections.
func (s *Server) Shutdown(ctx context.Context) []error {
	log.Warn().Msg("Shutting down server")

	var errs []error

	if s.Echo != nil {
		if err := s.Echo.Shutdown(ctx); err != nil {
			errs = append(errs, errors.Wrap(err, "failed to shut down echo"))
		}
	}
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			errs = append(errs, errors.Wrap(err, "failed to close redis client"))
		}
	}
	if s.DB != nil {
		if err := s.DB.Close(); err != nil && err != sql.ErrConnDone {
			errs = append(errs, errors.Wrap(err, "failed to close db connection"))
		}
	}

	return errs
}
