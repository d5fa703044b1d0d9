// Package storage persists key metadata in PostgreSQL, caches derived
// keys in Redis and seals root seeds at rest on the filesystem.
package storage

import (
	"context"
	"errors"
	"time"
)

// KeyStatus is the lifecycle state of a stored key.
type KeyStatus string

const (
	KeyStatusActive   KeyStatus = "active"
	KeyStatusDisabled KeyStatus = "disabled"
	KeyStatusDeleted  KeyStatus = "deleted"
)

// RootKeyMetadata describes a stored master key. The private material
// itself never enters the metadata store, only the seed vault.
type RootKeyMetadata struct {
	KeyID        string
	Network      string
	Fingerprint  string
	PublicKey    string
	ChainCode    string
	Status       KeyStatus
	Description  string
	Tags         map[string]string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletionDate *time.Time
}

// WalletKeyMetadata describes a derived wallet key.
type WalletKeyMetadata struct {
	WalletID     string
	RootKeyID    string
	ChainType    string
	Path         string
	PublicKey    string
	ChainCode    string
	Address      string
	ExtendedKey  string
	Status       KeyStatus
	Description  string
	Tags         map[string]string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletionDate *time.Time
}

// WalletKeyFilter narrows ListWalletKeys.
type WalletKeyFilter struct {
	RootKeyID string
	ChainType string
	Limit     int
	Offset    int
}

// MetadataStore is the persistence boundary for key metadata.
type MetadataStore interface {
	CreateRootKey(ctx context.Context, meta *RootKeyMetadata) error
	GetRootKey(ctx context.Context, keyID string) (*RootKeyMetadata, error)
	ListRootKeys(ctx context.Context, limit, offset int) ([]*RootKeyMetadata, error)
	DeleteRootKey(ctx context.Context, keyID string) error

	CreateWalletKey(ctx context.Context, meta *WalletKeyMetadata) error
	GetWalletKey(ctx context.Context, walletID string) (*WalletKeyMetadata, error)
	ListWalletKeys(ctx context.Context, filter *WalletKeyFilter) ([]*WalletKeyMetadata, error)
	DeleteWalletKey(ctx context.Context, walletID string) error
}

// ErrNotFound is returned by stores when no row matches.
type ErrNotFound struct {
	Entity string
	ID     string
}

func (e *ErrNotFound) Error() string {
	return e.Entity + " not found: " + e.ID
}

// IsNotFound reports whether err is a store not-found error.
func IsNotFound(err error) bool {
	var notFound *ErrNotFound
	return errors.As(err, &notFound)
}
