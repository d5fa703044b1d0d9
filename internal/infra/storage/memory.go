package storage

import (
	"context"
	"sort"
	"sync"
	"time"
)

// InMemoryStore is a MetadataStore for tests and local development
// without a database. Safe for concurrent use.
type InMemoryStore struct {
	mu         sync.RWMutex
	rootKeys   map[string]*RootKeyMetadata
	walletKeys map[string]*WalletKeyMetadata
}

// NewInMemoryStore returns an empty in-memory metadata store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		rootKeys:   make(map[string]*RootKeyMetadata),
		walletKeys: make(map[string]*WalletKeyMetadata),
	}
}

func (s *InMemoryStore) CreateRootKey(_ context.Context, meta *RootKeyMetadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *meta
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	s.rootKeys[meta.KeyID] = &stored
	return nil
}

func (s *InMemoryStore) GetRootKey(_ context.Context, keyID string) (*RootKeyMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	meta, ok := s.rootKeys[keyID]
	if !ok || meta.Status == KeyStatusDeleted {
		return nil, &ErrNotFound{Entity: "root key", ID: keyID}
	}
	copied := *meta
	return &copied, nil
}

func (s *InMemoryStore) ListRootKeys(_ context.Context, limit, offset int) ([]*RootKeyMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]*RootKeyMetadata, 0, len(s.rootKeys))
	for _, meta := range s.rootKeys {
		if meta.Status == KeyStatusDeleted {
			continue
		}
		copied := *meta
		keys = append(keys, &copied)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].CreatedAt.After(keys[j].CreatedAt) })
	return page(keys, limit, offset), nil
}

func (s *InMemoryStore) DeleteRootKey(_ context.Context, keyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	meta, ok := s.rootKeys[keyID]
	if !ok || meta.Status == KeyStatusDeleted {
		return &ErrNotFound{Entity: "root key", ID: keyID}
	}
	now := time.Now()
	meta.Status = KeyStatusDeleted
	meta.DeletionDate = &now

	for _, walletKey := range s.walletKeys {
		if walletKey.RootKeyID == keyID && walletKey.Status != KeyStatusDeleted {
			walletKey.Status = KeyStatusDeleted
			walletKey.DeletionDate = &now
		}
	}
	return nil
}

func (s *InMemoryStore) CreateWalletKey(_ context.Context, meta *WalletKeyMetadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *meta
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	s.walletKeys[meta.WalletID] = &stored
	return nil
}

func (s *InMemoryStore) GetWalletKey(_ context.Context, walletID string) (*WalletKeyMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	meta, ok := s.walletKeys[walletID]
	if !ok || meta.Status == KeyStatusDeleted {
		return nil, &ErrNotFound{Entity: "wallet key", ID: walletID}
	}
	copied := *meta
	return &copied, nil
}

func (s *InMemoryStore) ListWalletKeys(_ context.Context, filter *WalletKeyFilter) ([]*WalletKeyMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if filter == nil {
		filter = &WalletKeyFilter{}
	}

	keys := make([]*WalletKeyMetadata, 0, len(s.walletKeys))
	for _, meta := range s.walletKeys {
		if meta.Status == KeyStatusDeleted {
			continue
		}
		if filter.RootKeyID != "" && meta.RootKeyID != filter.RootKeyID {
			continue
		}
		if filter.ChainType != "" && meta.ChainType != filter.ChainType {
			continue
		}
		copied := *meta
		keys = append(keys, &copied)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].CreatedAt.After(keys[j].CreatedAt) })
	return page(keys, filter.Limit, filter.Offset), nil
}

func (s *InMemoryStore) DeleteWalletKey(_ context.Context, walletID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	meta, ok := s.walletKeys[walletID]
	if !ok || meta.Status == KeyStatusDeleted {
		return &ErrNotFound{Entity: "wallet key", ID: walletID}
	}
	now := time.Now()
	meta.Status = KeyStatusDeleted
	meta.DeletionDate = &now
	return nil
}

func page[T any](items []T, limit, offset int) []T {
	if limit <= 0 {
		limit = 20
	}
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
