// Package hdwallet implements BIP-32 hierarchical deterministic key
// derivation: master key construction from a seed, hardened and normal
// child derivation, extended key serialization (xprv/xpub) and the
// secure-erasure discipline for private key material.
//
// Curve arithmetic is delegated to a KeyBackend; the derivation engine
// itself only performs HMAC-SHA512 and byte-level assembly.
package hdwallet

import (
	"github.com/pkg/errors"
)

// HardenedOffset is the index at which hardened derivation starts.
const HardenedOffset uint32 = 0x80000000

// masterHMACKey is the fixed domain-separation key for master key
// generation, as mandated by BIP-32.
var masterHMACKey = []byte("Bitcoin seed")

var (
	// ErrInvalidSeedLength is returned when a seed is not 16, 32 or 64 bytes.
	ErrInvalidSeedLength = errors.New("seed must be 16, 32 or 64 bytes")

	// ErrDeriveBeyondMaxDepth is returned when deriving a child of a key
	// that is already at depth 255.
	ErrDeriveBeyondMaxDepth = errors.New("cannot derive a key beyond the maximum depth of 255")

	// ErrInvalidChildIndex is returned when constructing a child index from
	// a value that already has the hardened bit set.
	ErrInvalidChildIndex = errors.New("child index must be below the hardened offset")

	// ErrInvalidDerivationPath is returned for malformed path strings.
	ErrInvalidDerivationPath = errors.New("invalid derivation path")

	// ErrUnusableChildKey is returned when the derived child scalar is zero.
	// BIP-32 allows retrying with the next index instead; this
	// implementation deliberately surfaces the failure to the caller.
	ErrUnusableChildKey = errors.New("derived child scalar is not a usable private key")

	// ErrInvalidKeyMaterial is returned when key bytes do not form a valid
	// key for the backend, or disagree with the serialized version prefix.
	ErrInvalidKeyMaterial = errors.New("invalid key material")

	// ErrInvalidKeyString is returned when an extended key string fails
	// Base58Check decoding or has the wrong payload length.
	ErrInvalidKeyString = errors.New("invalid extended key string")

	// ErrZeroedKey is returned when operating on a zeroed extended key.
	ErrZeroedKey = errors.New("extended key has been zeroed")
)
