package key

import (
	"context"
	"encoding/hex"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/iqlusioninc/crates-sub000/internal/chain"
	"github.com/iqlusioninc/crates-sub000/internal/hdwallet"
	"github.com/iqlusioninc/crates-sub000/internal/infra/storage"
	"github.com/iqlusioninc/crates-sub000/internal/metrics"
	"github.com/iqlusioninc/crates-sub000/internal/seed"
)

// Conventional BIP-44 coin types for the chains the service supports.
var coinTypes = map[chain.Symbol]uint32{
	chain.SymbolBitcoin:  0,
	chain.SymbolEthereum: 60,
}

// ErrUnsupportedChainType rejects derivation requests for chains the
// service has no encoder for.
var ErrUnsupportedChainType = errors.New("unsupported chain type")

// ErrInvalidMnemonic rejects imports of mnemonics that fail checksum
// validation.
var ErrInvalidMnemonic = errors.New("mnemonic failed checksum validation")

// Service implements root key lifecycle and wallet key derivation.
type Service struct {
	store   storage.MetadataStore
	vault   storage.SeedVault
	cache   *storage.WalletKeyCache
	chains  *chain.Registry
	backend hdwallet.KeyBackend
	metrics *metrics.Service

	network        string
	privateVersion hdwallet.KeyVersion
	publicVersion  hdwallet.KeyVersion
	mnemonicBits   int
}

// NewService wires the key service. cache may be nil to disable the
// read-through cache. network is "mainnet" or "testnet".
func NewService(
	store storage.MetadataStore,
	vault storage.SeedVault,
	cache *storage.WalletKeyCache,
	chains *chain.Registry,
	backend hdwallet.KeyBackend,
	m *metrics.Service,
	network string,
) (*Service, error) {
	s := &Service{
		store:        store,
		vault:        vault,
		cache:        cache,
		chains:       chains,
		backend:      backend,
		metrics:      m,
		network:      network,
		mnemonicBits: 256,
	}

	switch network {
	case "mainnet":
		s.privateVersion = hdwallet.MainnetPrivate
		s.publicVersion = hdwallet.MainnetPublic
	case "testnet":
		s.privateVersion = hdwallet.TestnetPrivate
		s.publicVersion = hdwallet.TestnetPublic
	default:
		return nil, errors.Errorf("unsupported network %q", network)
	}

	return s, nil
}

// CreateRootKey generates (or imports) a mnemonic, seals its seed in
// the vault and records the master key metadata. The mnemonic is
// returned exactly once and never persisted.
func (s *Service) CreateRootKey(ctx context.Context, req *CreateRootKeyRequest) (*CreateRootKeyResult, error) {
	if req.KeyID != "" && !storage.ValidKeyID(req.KeyID) {
		return nil, errors.Wrapf(storage.ErrInvalidKeyID, "%q", req.KeyID)
	}

	mnemonic := req.Mnemonic
	if mnemonic == "" {
		var err error
		mnemonic, err = seed.NewMnemonic(s.mnemonicBits)
		if err != nil {
			return nil, errors.Wrap(err, "failed to generate mnemonic")
		}
	} else if !seed.Validate(mnemonic) {
		return nil, ErrInvalidMnemonic
	}

	rootSeed, err := seed.FromMnemonic(mnemonic, req.Passphrase)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive seed from mnemonic")
	}
	defer seed.Wipe(rootSeed)

	master, err := hdwallet.NewMaster(rootSeed, s.backend)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive master key")
	}
	defer master.Zero()

	fp, err := master.Fingerprint()
	if err != nil {
		return nil, errors.Wrap(err, "failed to fingerprint master key")
	}
	pub, err := master.PublicKey()
	if err != nil {
		return nil, errors.Wrap(err, "failed to compute master public key")
	}

	keyID := req.KeyID
	if keyID == "" {
		keyID = uuid.New().String()
	}

	if err := s.vault.Store(keyID, rootSeed); err != nil {
		return nil, errors.Wrap(err, "failed to seal root seed")
	}

	attrs := master.Attributes()
	meta := &storage.RootKeyMetadata{
		KeyID:       keyID,
		Network:     s.network,
		Fingerprint: hex.EncodeToString(fp[:]),
		PublicKey:   hex.EncodeToString(pub.SerializeCompressed()),
		ChainCode:   hex.EncodeToString(attrs.ChainCode[:]),
		Status:      storage.KeyStatusActive,
		Description: req.Description,
		Tags:        req.Tags,
	}
	if err := s.store.CreateRootKey(ctx, meta); err != nil {
		// Roll back the vault entry so the ID can be retried.
		if delErr := s.vault.Delete(keyID); delErr != nil {
			log.Ctx(ctx).Error().Err(delErr).Str("key_id", keyID).Msg("Failed to roll back sealed seed")
		}
		return nil, errors.Wrap(err, "failed to persist root key metadata")
	}

	s.metrics.RootKeysCreated.Inc()

	return &CreateRootKeyResult{
		KeyID:       keyID,
		Fingerprint: meta.Fingerprint,
		PublicKey:   meta.PublicKey,
		Mnemonic:    mnemonic,
	}, nil
}

// GetRootKey returns root key metadata.
func (s *Service) GetRootKey(ctx context.Context, keyID string) (*storage.RootKeyMetadata, error) {
	return s.store.GetRootKey(ctx, keyID)
}

// ListRootKeys pages through root key metadata.
func (s *Service) ListRootKeys(ctx context.Context, limit, offset int) ([]*storage.RootKeyMetadata, error) {
	return s.store.ListRootKeys(ctx, limit, offset)
}

// DeleteRootKey removes the metadata and the sealed seed. Derived
// wallet key rows are soft-deleted alongside.
func (s *Service) DeleteRootKey(ctx context.Context, keyID string) error {
	if err := s.store.DeleteRootKey(ctx, keyID); err != nil {
		return err
	}
	if err := s.vault.Delete(keyID); err != nil && !storage.IsNotFound(err) {
		return errors.Wrap(err, "failed to delete sealed seed")
	}
	return nil
}

// DeriveWalletKey derives a child key below the root, records its
// public half and returns the metadata. Private material is wiped
// before returning.
func (s *Service) DeriveWalletKey(ctx context.Context, req *DeriveWalletKeyRequest) (*storage.WalletKeyMetadata, error) {
	meta, err := s.deriveWalletKey(ctx, req)
	if err != nil {
		s.metrics.DerivationFailures.WithLabelValues(req.ChainType).Inc()
		return nil, err
	}
	s.metrics.Derivations.WithLabelValues(meta.ChainType).Inc()
	return meta, nil
}

func (s *Service) deriveWalletKey(ctx context.Context, req *DeriveWalletKeyRequest) (*storage.WalletKeyMetadata, error) {
	if _, err := s.store.GetRootKey(ctx, req.RootKeyID); err != nil {
		return nil, err
	}

	path, sym, err := s.resolvePath(req)
	if err != nil {
		return nil, err
	}

	rootSeed, err := s.vault.Load(req.RootKeyID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load root seed")
	}
	defer seed.Wipe(rootSeed)

	derived, err := hdwallet.DeriveFromPath(rootSeed, path, s.backend)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive wallet key")
	}
	defer derived.Zero()

	neutered, err := derived.Neuter()
	if err != nil {
		return nil, errors.Wrap(err, "failed to neuter derived key")
	}

	extended, err := neutered.Encode(s.publicVersion)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode extended public key")
	}

	compressed := neutered.PublicKey().SerializeCompressed()

	address := ""
	chainType := req.ChainType
	if sym != "" {
		enc, err := s.chains.Encoder(sym)
		if err != nil {
			return nil, err
		}
		address, err = enc.EncodeAddress(compressed)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode address")
		}
		chainType = string(sym)
	}

	attrs := neutered.Attributes()
	meta := &storage.WalletKeyMetadata{
		WalletID:    uuid.New().String(),
		RootKeyID:   req.RootKeyID,
		ChainType:   chainType,
		Path:        path.String(),
		PublicKey:   hex.EncodeToString(compressed),
		ChainCode:   hex.EncodeToString(attrs.ChainCode[:]),
		Address:     address,
		ExtendedKey: extended,
		Status:      storage.KeyStatusActive,
		Description: req.Description,
		Tags:        req.Tags,
	}
	if err := s.store.CreateWalletKey(ctx, meta); err != nil {
		return nil, errors.Wrap(err, "failed to persist wallet key metadata")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, meta); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("wallet_id", meta.WalletID).Msg("Failed to cache wallet key")
		}
	}

	return meta, nil
}

// resolvePath turns the request into a concrete derivation path and the
// chain symbol addresses should be encoded for, if any.
func (s *Service) resolvePath(req *DeriveWalletKeyRequest) (hdwallet.DerivationPath, chain.Symbol, error) {
	if req.Path != "" {
		path, err := hdwallet.ParseDerivationPath(req.Path)
		if err != nil {
			return nil, "", err
		}
		sym := chain.Symbol(req.ChainType)
		if req.ChainType != "" {
			if _, err := s.chains.Encoder(sym); err != nil {
				return nil, "", errors.Wrapf(ErrUnsupportedChainType, "%q", req.ChainType)
			}
		}
		return path, sym, nil
	}

	sym := chain.Symbol(req.ChainType)
	coinType, ok := coinTypes[sym]
	if !ok {
		return nil, "", errors.Wrapf(ErrUnsupportedChainType, "%q", req.ChainType)
	}
	if req.Index >= hdwallet.HardenedOffset {
		return nil, "", hdwallet.ErrInvalidChildIndex
	}
	return defaultAccountPath(coinType, req.Index), sym, nil
}

// GetWalletKey returns wallet key metadata, consulting the cache first.
func (s *Service) GetWalletKey(ctx context.Context, walletID string) (*storage.WalletKeyMetadata, error) {
	if s.cache != nil {
		meta, err := s.cache.Get(ctx, walletID)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("wallet_id", walletID).Msg("Wallet key cache read failed")
		} else if meta != nil {
			s.metrics.CacheHits.Inc()
			return meta, nil
		} else {
			s.metrics.CacheMisses.Inc()
		}
	}

	meta, err := s.store.GetWalletKey(ctx, walletID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, meta); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("wallet_id", walletID).Msg("Failed to cache wallet key")
		}
	}
	return meta, nil
}

// ListWalletKeys pages through wallet key metadata.
func (s *Service) ListWalletKeys(ctx context.Context, filter *storage.WalletKeyFilter) ([]*storage.WalletKeyMetadata, error) {
	return s.store.ListWalletKeys(ctx, filter)
}

// DeleteWalletKey soft-deletes a wallet key and drops its cache entry.
func (s *Service) DeleteWalletKey(ctx context.Context, walletID string) error {
	if err := s.store.DeleteWalletKey(ctx, walletID); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, walletID); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("wallet_id", walletID).Msg("Failed to invalidate cached wallet key")
		}
	}
	return nil
}

// InspectExtendedKey decodes a serialized extended key and reports its
// attributes. Private keys are wiped immediately after inspection.
func (s *Service) InspectExtendedKey(_ context.Context, req *InspectExtendedKeyRequest) (*InspectExtendedKeyResult, error) {
	wire, err := hdwallet.DecodeExtendedKey(req.ExtendedKey)
	if err != nil {
		return nil, err
	}

	result := &InspectExtendedKeyResult{
		Private: wire.Version.IsPrivate(),
	}
	switch {
	case wire.Version.IsMainnet():
		result.Network = "mainnet"
	case wire.Version.IsTestnet():
		result.Network = "testnet"
	default:
		result.Network = "unknown"
	}

	if wire.Version.IsPrivate() {
		priv, err := wire.ExtendedPrivateKey(s.backend)
		if err != nil {
			return nil, err
		}
		defer priv.Zero()

		fp, err := priv.Fingerprint()
		if err != nil {
			return nil, err
		}
		pub, err := priv.PublicKey()
		if err != nil {
			return nil, err
		}
		attrs := priv.Attributes()
		fillAttributes(result, attrs, fp, pub.SerializeCompressed())
		return result, nil
	}

	pub, err := wire.ExtendedPublicKey(s.backend)
	if err != nil {
		return nil, err
	}
	fillAttributes(result, pub.Attributes(), pub.Fingerprint(), pub.PublicKey().SerializeCompressed())
	return result, nil
}

func fillAttributes(result *InspectExtendedKeyResult, attrs hdwallet.ExtendedKeyAttributes, fp [4]byte, compressed []byte) {
	result.Depth = attrs.Depth
	result.ParentFingerprint = hex.EncodeToString(attrs.ParentFingerprint[:])
	result.ChildIndex = attrs.ChildIndex.String()
	result.Fingerprint = hex.EncodeToString(fp[:])
	result.PublicKey = hex.EncodeToString(compressed)
}
