package hdwallet

import (
	"crypto/hmac"
	"crypto/sha512"

	"github.com/pkg/errors"
)

// ExtendedPrivateKey is a private key bundled with its chain code and
// derivation metadata. It exclusively owns its private scalar; call Zero
// when the key is no longer needed.
type ExtendedPrivateKey struct {
	backend KeyBackend
	scalar  Scalar
	attrs   ExtendedKeyAttributes
}

// ExtendedPublicKey is the public counterpart of an ExtendedPrivateKey.
// It carries no secret material. It is only ever obtained by neutering a
// private extended key or by parsing a serialized public extended key;
// this package does not derive children of public extended keys.
type ExtendedPublicKey struct {
	backend   KeyBackend
	publicKey PublicKey
	attrs     ExtendedKeyAttributes
}

// NewMaster generates a master extended private key from a seed. The seed
// must be exactly 16, 32 or 64 bytes.
func NewMaster(seed []byte, backend KeyBackend) (*ExtendedPrivateKey, error) {
	if len(seed) != 16 && len(seed) != 32 && len(seed) != 64 {
		return nil, errors.Wrapf(ErrInvalidSeedLength, "got %d bytes", len(seed))
	}

	mac := hmac.New(sha512.New, masterHMACKey)
	mac.Write(seed)
	I := mac.Sum(nil)

	scalar, err := backend.ScalarFromBytes(I[:32])
	if err != nil {
		zero(I)
		return nil, err
	}

	attrs := ExtendedKeyAttributes{}
	copy(attrs.ChainCode[:], I[32:])
	zero(I)

	return &ExtendedPrivateKey{
		backend: backend,
		scalar:  scalar,
		attrs:   attrs,
	}, nil
}

// DeriveFromPath derives the extended private key at path from seed,
// folding Child over the path left to right and aborting on the first
// failing step.
func DeriveFromPath(seed []byte, path DerivationPath, backend KeyBackend) (*ExtendedPrivateKey, error) {
	key, err := NewMaster(seed, backend)
	if err != nil {
		return nil, err
	}

	for _, index := range path {
		child, err := key.Child(index)
		key.Zero()
		if err != nil {
			return nil, err
		}
		key = child
	}
	return key, nil
}

// Child derives the child extended private key at index. Hardened indices
// commit to the parent private scalar, normal indices to the parent
// compressed public key.
func (k *ExtendedPrivateKey) Child(index ChildIndex) (*ExtendedPrivateKey, error) {
	if k.scalar == nil {
		return nil, ErrZeroedKey
	}
	if k.attrs.Depth >= maxDepth {
		return nil, ErrDeriveBeyondMaxDepth
	}

	parentPub, err := k.backend.PublicKeyOf(k.scalar)
	if err != nil {
		return nil, err
	}

	mac := hmac.New(sha512.New, k.attrs.ChainCode[:])
	if index.IsHardened() {
		scalarBytes := k.scalar.Bytes()
		mac.Write([]byte{0x00})
		mac.Write(scalarBytes[:])
		zero(scalarBytes[:])
	} else {
		mac.Write(parentPub.SerializeCompressed())
	}
	indexBytes := index.Bytes()
	mac.Write(indexBytes[:])
	I := mac.Sum(nil)

	var tweak [32]byte
	copy(tweak[:], I[:32])

	childScalar, err := k.backend.DeriveChildScalar(k.scalar, tweak)
	zero(tweak[:])
	if err != nil {
		zero(I)
		return nil, errors.Wrapf(err, "child %s", index)
	}

	var chainCode [32]byte
	copy(chainCode[:], I[32:])
	zero(I)

	attrs, err := k.attrs.child(index, k.backend.Fingerprint(parentPub), chainCode)
	if err != nil {
		childScalar.Zero()
		return nil, err
	}

	return &ExtendedPrivateKey{
		backend: k.backend,
		scalar:  childScalar,
		attrs:   attrs,
	}, nil
}

// Derive folds Child over path starting at k. k itself is left intact.
func (k *ExtendedPrivateKey) Derive(path DerivationPath) (*ExtendedPrivateKey, error) {
	key := k
	for _, index := range path {
		child, err := key.Child(index)
		if key != k {
			key.Zero()
		}
		if err != nil {
			return nil, err
		}
		key = child
	}
	return key, nil
}

// Neuter returns the public extended key: same attributes, private scalar
// replaced by its public point. The operation is not invertible.
func (k *ExtendedPrivateKey) Neuter() (*ExtendedPublicKey, error) {
	if k.scalar == nil {
		return nil, ErrZeroedKey
	}

	pub, err := k.backend.PublicKeyOf(k.scalar)
	if err != nil {
		return nil, err
	}

	return &ExtendedPublicKey{
		backend:   k.backend,
		publicKey: pub,
		attrs:     k.attrs,
	}, nil
}

// PublicKey returns the public point of the private scalar.
func (k *ExtendedPrivateKey) PublicKey() (PublicKey, error) {
	if k.scalar == nil {
		return nil, ErrZeroedKey
	}
	return k.backend.PublicKeyOf(k.scalar)
}

// Fingerprint returns the 4-byte fingerprint of this key's public key.
func (k *ExtendedPrivateKey) Fingerprint() ([4]byte, error) {
	pub, err := k.PublicKey()
	if err != nil {
		return [4]byte{}, err
	}
	return k.backend.Fingerprint(pub), nil
}

// Attributes returns the derivation metadata.
func (k *ExtendedPrivateKey) Attributes() ExtendedKeyAttributes {
	return k.attrs
}

// Depth returns the number of derivation steps below the master key.
func (k *ExtendedPrivateKey) Depth() uint8 {
	return k.attrs.Depth
}

// IsZeroed reports whether the private material has been wiped.
func (k *ExtendedPrivateKey) IsZeroed() bool {
	return k.scalar == nil
}

// Zero overwrites the private scalar and the chain code. The key refuses
// further use afterwards. Safe to call more than once.
func (k *ExtendedPrivateKey) Zero() {
	if k.scalar != nil {
		k.scalar.Zero()
		k.scalar = nil
	}
	zero(k.attrs.ChainCode[:])
	k.attrs = ExtendedKeyAttributes{}
}

// PublicKey returns the backing curve point.
func (k *ExtendedPublicKey) PublicKey() PublicKey {
	return k.publicKey
}

// Fingerprint returns the 4-byte fingerprint of the public key.
func (k *ExtendedPublicKey) Fingerprint() [4]byte {
	return k.backend.Fingerprint(k.publicKey)
}

// Attributes returns the derivation metadata.
func (k *ExtendedPublicKey) Attributes() ExtendedKeyAttributes {
	return k.attrs
}

// Depth returns the number of derivation steps below the master key.
func (k *ExtendedPublicKey) Depth() uint8 {
	return k.attrs.Depth
}
