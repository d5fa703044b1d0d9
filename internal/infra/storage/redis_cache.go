package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const walletKeyCachePrefix = "hdwallet:wallet-key:"

// WalletKeyCache is a read-through cache in front of the metadata store
// for derived wallet keys.
type WalletKeyCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewWalletKeyCache wraps client with the given entry TTL.
func NewWalletKeyCache(client *redis.Client, ttl time.Duration) *WalletKeyCache {
	return &WalletKeyCache{client: client, ttl: ttl}
}

// Get returns the cached wallet key, or (nil, nil) on a miss.
func (c *WalletKeyCache) Get(ctx context.Context, walletID string) (*WalletKeyMetadata, error) {
	payload, err := c.client.Get(ctx, walletKeyCachePrefix+walletID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to read wallet key from cache")
	}

	var meta WalletKeyMetadata
	if err := json.Unmarshal(payload, &meta); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal cached wallet key")
	}
	return &meta, nil
}

// Set stores the wallet key under its ID for the configured TTL.
func (c *WalletKeyCache) Set(ctx context.Context, meta *WalletKeyMetadata) error {
	payload, err := json.Marshal(meta)
	if err != nil {
		return errors.Wrap(err, "failed to marshal wallet key for cache")
	}
	if err := c.client.Set(ctx, walletKeyCachePrefix+meta.WalletID, payload, c.ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to write wallet key to cache")
	}
	return nil
}

// Invalidate drops the cached entry for walletID.
func (c *WalletKeyCache) Invalidate(ctx context.Context, walletID string) error {
	if err := c.client.Del(ctx, walletKeyCachePrefix+walletID).Err(); err != nil {
		return errors.Wrap(err, "failed to invalidate cached wallet key")
	}
	return nil
}
