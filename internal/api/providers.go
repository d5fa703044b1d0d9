package api

import (
	"context"
	"database/sql"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/iqlusioninc/crates-sub000/internal/chain"
	"github.com/iqlusioninc/crates-sub000/internal/config"
	"github.com/iqlusioninc/crates-sub000/internal/hdwallet"
	"github.com/iqlusioninc/crates-sub000/internal/infra/key"
	"github.com/iqlusioninc/crates-sub000/internal/infra/storage"
	"github.com/iqlusioninc/crates-sub000/internal/metrics"
)

// PROVIDERS - define here only providers that for various reasons (e.g. cyclic dependency) can't live in their corresponding packages
// or for wrapping providers that only accept sub-configs to prevent the requirements for defining providers for sub-configs.
// https://github.com/google/wire/blob/main/docs/guide.md#defining-providers

// NewDB opens the PostgreSQL connection pool and verifies it.
func NewDB(cfg config.Server) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	return db, nil
}

// NewRedisClient connects the cache client, or returns nil when the
// cache is disabled.
func NewRedisClient(cfg config.Server) (*redis.Client, error) {
	if !cfg.Redis.Enabled {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Endpoint,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(err, "failed to ping redis")
	}

	return client, nil
}

// NewMetadataStore wraps the database as the metadata store and ensures
// the schema exists.
func NewMetadataStore(db *sql.DB) (storage.MetadataStore, error) {
	store := storage.NewPostgreSQLStore(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := store.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// NewSeedVault opens the sealed seed vault.
func NewSeedVault(cfg config.Server) (storage.SeedVault, error) {
	if cfg.Wallet.SeedEncryptionKey == "" {
		return nil, errors.New("Wallet SeedEncryptionKey is not configured")
	}
	return storage.NewFileSystemSeedVault(cfg.Wallet.SeedVaultPath, cfg.Wallet.SeedEncryptionKey)
}

// NewWalletKeyCache wraps the redis client, or returns nil when the
// cache is disabled.
func NewWalletKeyCache(cfg config.Server, client *redis.Client) *storage.WalletKeyCache {
	if client == nil {
		return nil
	}
	return storage.NewWalletKeyCache(client, cfg.Redis.KeyTTL)
}

// NewChainRegistry registers the supported address encoders for the
// configured network.
func NewChainRegistry(cfg config.Server) (*chain.Registry, error) {
	params := &chaincfg.MainNetParams
	if cfg.Wallet.Network == "testnet" {
		params = &chaincfg.TestNet3Params
	}
	return chain.NewRegistry(chain.NewBitcoinEncoder(params), chain.NewEthereumEncoder())
}

// NewKeyBackend provides the curve backend of the derivation engine.
func NewKeyBackend() hdwallet.KeyBackend {
	return hdwallet.NewSecp256k1Backend()
}

// NewKeyService assembles the wallet key service.
func NewKeyService(
	cfg config.Server,
	store storage.MetadataStore,
	vault storage.SeedVault,
	cache *storage.WalletKeyCache,
	chains *chain.Registry,
	backend hdwallet.KeyBackend,
	m *metrics.Service,
) (*key.Service, error) {
	return key.NewService(store, vault, cache, chains, backend, m, cfg.Wallet.Network)
}
