// Package key implements the wallet key service on top of the
// hierarchical derivation engine: root seeds go into the vault, derived
// keys into the metadata store, and only public material ever leaves.
package key

import (
	"github.com/iqlusioninc/crates-sub000/internal/hdwallet"
)

// CreateRootKeyRequest creates a new master key. When Mnemonic is empty
// a fresh one is generated; it is returned exactly once in the response
// and never stored.
type CreateRootKeyRequest struct {
	// Optional caller-chosen ID. Generated when empty.
	KeyID       string
	Mnemonic    string
	Passphrase  string
	Description string
	Tags        map[string]string
}

// CreateRootKeyResult carries the one-time mnemonic alongside the
// stored metadata.
type CreateRootKeyResult struct {
	KeyID       string
	Fingerprint string
	PublicKey   string
	Mnemonic    string
}

// DeriveWalletKeyRequest derives a wallet key from a root key. Exactly
// one of Path or (ChainType, Index) selects the derivation target; with
// ChainType the conventional account path for that chain is used.
type DeriveWalletKeyRequest struct {
	RootKeyID   string
	ChainType   string
	Index       uint32
	Path        string
	Description string
	Tags        map[string]string
}

// InspectExtendedKeyRequest decodes a serialized extended key string.
type InspectExtendedKeyRequest struct {
	ExtendedKey string
}

// InspectExtendedKeyResult reports the decoded attributes of an
// extended key without retaining it.
type InspectExtendedKeyResult struct {
	Network           string
	Private           bool
	Depth             uint8
	ParentFingerprint string
	ChildIndex        string
	Fingerprint       string
	PublicKey         string
}

// defaultAccountPath returns the conventional first external address
// path for the chain's registered coin type.
func defaultAccountPath(coinType uint32, index uint32) hdwallet.DerivationPath {
	purpose, _ := hdwallet.NewChildIndex(44, true)
	coin, _ := hdwallet.NewChildIndex(coinType, true)
	account, _ := hdwallet.NewChildIndex(0, true)
	change, _ := hdwallet.NewChildIndex(0, false)
	address, _ := hdwallet.NewChildIndex(index, false)
	return hdwallet.DerivationPath{purpose, coin, account, change, address}
}
