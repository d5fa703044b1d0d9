//go:build wireinject

//go:generate wire

package api

import (
	"database/sql"

	"github.com/google/wire"

	"github.com/iqlusioninc/crates-sub000/internal/config"
	"github.com/iqlusioninc/crates-sub000/internal/metrics"
)

// INJECTORS - https://github.com/google/wire/blob/main/docs/guide.md#injectors

// serviceSet groups the default set of providers that are required for initing a server
var serviceSet = wire.NewSet(
	newServerWithComponents,
	NewRedisClient,
	NewMetadataStore,
	NewSeedVault,
	NewWalletKeyCache,
	NewChainRegistry,
	NewKeyBackend,
	NewKeyService,
	metrics.New,
)

// InitNewServer returns a new Server instance.
func InitNewServer(
	_ config.Server,
) (*Server, error) {
	wire.Build(serviceSet, NewDB)
	return new(Server), nil
}

// InitNewServerWithDB returns a new Server instance with the given DB instance.
// All the other components are initialized via go wire according to the configuration.
func InitNewServerWithDB(
	_ config.Server,
	_ *sql.DB,
) (*Server, error) {
	wire.Build(serviceSet)
	return new(Server), nil
}
