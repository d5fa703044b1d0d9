package storage

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"
)

// PostgreSQLStore implements MetadataStore on a plain database/sql
// handle backed by lib/pq.
type PostgreSQLStore struct {
	db *sql.DB
}

// NewPostgreSQLStore wraps db as a MetadataStore.
func NewPostgreSQLStore(db *sql.DB) *PostgreSQLStore {
	return &PostgreSQLStore{db: db}
}

// EnsureSchema creates the metadata tables if they do not exist yet.
func (s *PostgreSQLStore) EnsureSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS root_keys (
			key_id        TEXT PRIMARY KEY,
			network       TEXT NOT NULL,
			fingerprint   TEXT NOT NULL,
			public_key    TEXT NOT NULL,
			chain_code    TEXT NOT NULL,
			status        TEXT NOT NULL,
			description   TEXT NOT NULL DEFAULT '',
			tags          JSONB NOT NULL DEFAULT '{}',
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deletion_date TIMESTAMPTZ
		);

		CREATE TABLE IF NOT EXISTS wallet_keys (
			wallet_id     TEXT PRIMARY KEY,
			root_key_id   TEXT NOT NULL REFERENCES root_keys (key_id),
			chain_type    TEXT NOT NULL,
			path          TEXT NOT NULL,
			public_key    TEXT NOT NULL,
			chain_code    TEXT NOT NULL,
			address       TEXT NOT NULL,
			extended_key  TEXT NOT NULL,
			status        TEXT NOT NULL,
			description   TEXT NOT NULL DEFAULT '',
			tags          JSONB NOT NULL DEFAULT '{}',
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deletion_date TIMESTAMPTZ,
			UNIQUE (root_key_id, path)
		);

		CREATE INDEX IF NOT EXISTS idx_wallet_keys_root_key_id ON wallet_keys (root_key_id);
		CREATE INDEX IF NOT EXISTS idx_wallet_keys_chain_type ON wallet_keys (chain_type);
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, "failed to ensure metadata schema")
	}
	return nil
}

// CreateRootKey inserts a root key row.
func (s *PostgreSQLStore) CreateRootKey(ctx context.Context, meta *RootKeyMetadata) error {
	tags, err := json.Marshal(meta.Tags)
	if err != nil {
		return errors.Wrap(err, "failed to marshal root key tags")
	}

	query := `
		INSERT INTO root_keys (key_id, network, fingerprint, public_key, chain_code, status, description, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err = s.db.ExecContext(ctx, query,
		meta.KeyID, meta.Network, meta.Fingerprint, meta.PublicKey, meta.ChainCode,
		meta.Status, meta.Description, tags)
	if err != nil {
		return errors.Wrap(err, "failed to insert root key")
	}
	return nil
}

// GetRootKey loads one root key row.
func (s *PostgreSQLStore) GetRootKey(ctx context.Context, keyID string) (*RootKeyMetadata, error) {
	query := `
		SELECT key_id, network, fingerprint, public_key, chain_code, status, description, tags, created_at, updated_at, deletion_date
		FROM root_keys
		WHERE key_id = $1 AND status != $2
	`
	row := s.db.QueryRowContext(ctx, query, keyID, KeyStatusDeleted)

	meta, err := scanRootKey(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &ErrNotFound{Entity: "root key", ID: keyID}
		}
		return nil, errors.Wrap(err, "failed to get root key")
	}
	return meta, nil
}

// ListRootKeys pages through non-deleted root keys.
func (s *PostgreSQLStore) ListRootKeys(ctx context.Context, limit, offset int) ([]*RootKeyMetadata, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT key_id, network, fingerprint, public_key, chain_code, status, description, tags, created_at, updated_at, deletion_date
		FROM root_keys
		WHERE status != $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := s.db.QueryContext(ctx, query, KeyStatusDeleted, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list root keys")
	}
	defer rows.Close()

	var keys []*RootKeyMetadata
	for rows.Next() {
		meta, err := scanRootKey(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan root key")
		}
		keys = append(keys, meta)
	}
	return keys, errors.Wrap(rows.Err(), "failed to iterate root keys")
}

// DeleteRootKey soft-deletes a root key and its wallet keys.
func (s *PostgreSQLStore) DeleteRootKey(ctx context.Context, keyID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin delete transaction")
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx,
		`UPDATE root_keys SET status = $1, deletion_date = NOW(), updated_at = NOW() WHERE key_id = $2 AND status != $1`,
		KeyStatusDeleted, keyID)
	if err != nil {
		return errors.Wrap(err, "failed to delete root key")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return &ErrNotFound{Entity: "root key", ID: keyID}
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE wallet_keys SET status = $1, deletion_date = NOW(), updated_at = NOW() WHERE root_key_id = $2 AND status != $1`,
		KeyStatusDeleted, keyID)
	if err != nil {
		return errors.Wrap(err, "failed to delete dependent wallet keys")
	}

	return errors.Wrap(tx.Commit(), "failed to commit delete transaction")
}

// CreateWalletKey inserts a wallet key row.
func (s *PostgreSQLStore) CreateWalletKey(ctx context.Context, meta *WalletKeyMetadata) error {
	tags, err := json.Marshal(meta.Tags)
	if err != nil {
		return errors.Wrap(err, "failed to marshal wallet key tags")
	}

	query := `
		INSERT INTO wallet_keys (wallet_id, root_key_id, chain_type, path, public_key, chain_code, address, extended_key, status, description, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
	`
	_, err = s.db.ExecContext(ctx, query,
		meta.WalletID, meta.RootKeyID, meta.ChainType, meta.Path, meta.PublicKey,
		meta.ChainCode, meta.Address, meta.ExtendedKey, meta.Status, meta.Description, tags)
	if err != nil {
		return errors.Wrap(err, "failed to insert wallet key")
	}
	return nil
}

// GetWalletKey loads one wallet key row.
func (s *PostgreSQLStore) GetWalletKey(ctx context.Context, walletID string) (*WalletKeyMetadata, error) {
	query := `
		SELECT wallet_id, root_key_id, chain_type, path, public_key, chain_code, address, extended_key, status, description, tags, created_at, updated_at, deletion_date
		FROM wallet_keys
		WHERE wallet_id = $1 AND status != $2
	`
	row := s.db.QueryRowContext(ctx, query, walletID, KeyStatusDeleted)

	meta, err := scanWalletKey(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &ErrNotFound{Entity: "wallet key", ID: walletID}
		}
		return nil, errors.Wrap(err, "failed to get wallet key")
	}
	return meta, nil
}

// ListWalletKeys pages through wallet keys matching the filter.
func (s *PostgreSQLStore) ListWalletKeys(ctx context.Context, filter *WalletKeyFilter) ([]*WalletKeyMetadata, error) {
	if filter == nil {
		filter = &WalletKeyFilter{}
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT wallet_id, root_key_id, chain_type, path, public_key, chain_code, address, extended_key, status, description, tags, created_at, updated_at, deletion_date
		FROM wallet_keys
		WHERE status != $1
		  AND ($2 = '' OR root_key_id = $2)
		  AND ($3 = '' OR chain_type = $3)
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5
	`
	rows, err := s.db.QueryContext(ctx, query, KeyStatusDeleted, filter.RootKeyID, filter.ChainType, limit, filter.Offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list wallet keys")
	}
	defer rows.Close()

	var keys []*WalletKeyMetadata
	for rows.Next() {
		meta, err := scanWalletKey(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan wallet key")
		}
		keys = append(keys, meta)
	}
	return keys, errors.Wrap(rows.Err(), "failed to iterate wallet keys")
}

// DeleteWalletKey soft-deletes one wallet key.
func (s *PostgreSQLStore) DeleteWalletKey(ctx context.Context, walletID string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE wallet_keys SET status = $1, deletion_date = NOW(), updated_at = NOW() WHERE wallet_id = $2 AND status != $1`,
		KeyStatusDeleted, walletID)
	if err != nil {
		return errors.Wrap(err, "failed to delete wallet key")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return &ErrNotFound{Entity: "wallet key", ID: walletID}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRootKey(row rowScanner) (*RootKeyMetadata, error) {
	var meta RootKeyMetadata
	var tags []byte
	err := row.Scan(&meta.KeyID, &meta.Network, &meta.Fingerprint, &meta.PublicKey, &meta.ChainCode,
		&meta.Status, &meta.Description, &tags, &meta.CreatedAt, &meta.UpdatedAt, &meta.DeletionDate)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tags, &meta.Tags); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal root key tags")
	}
	return &meta, nil
}

func scanWalletKey(row rowScanner) (*WalletKeyMetadata, error) {
	var meta WalletKeyMetadata
	var tags []byte
	err := row.Scan(&meta.WalletID, &meta.RootKeyID, &meta.ChainType, &meta.Path, &meta.PublicKey,
		&meta.ChainCode, &meta.Address, &meta.ExtendedKey, &meta.Status, &meta.Description, &tags,
		&meta.CreatedAt, &meta.UpdatedAt, &meta.DeletionDate)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tags, &meta.Tags); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal wallet key tags")
	}
	return &meta, nil
}
