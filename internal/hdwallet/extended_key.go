package hdwallet

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"

	"github.com/btcsuite/btcutil/base58"
	"github.com/pkg/errors"
)

const (
	versionLen     = 4
	depthLen       = 1
	fingerprintLen = 4
	childIndexLen  = 4
	chainCodeLen   = 32
	keyBytesLen    = 33
	checksumLen    = 4

	// payloadLen is the serialized extended key without its checksum.
	payloadLen = versionLen + depthLen + fingerprintLen + childIndexLen + chainCodeLen + keyBytesLen

	serializedLen = payloadLen + checksumLen
)

// ExtendedKey is the wire form of an extended key: the parsed 78-byte
// BIP-32 payload. It carries no derivation logic; it is the intermediate
// between Base58Check text and the typed extended key values. KeyBytes is
// 0x00 followed by the 32-byte scalar for private keys, or the 33-byte
// compressed point for public keys.
type ExtendedKey struct {
	Version           KeyVersion
	Depth             uint8
	ParentFingerprint [4]byte
	ChildIndex        uint32
	ChainCode         [32]byte
	KeyBytes          [33]byte
}

// ExtendedKey serializes the private key under version, which must be a
// private version prefix.
func (k *ExtendedPrivateKey) ExtendedKey(version KeyVersion) (*ExtendedKey, error) {
	if k.scalar == nil {
		return nil, ErrZeroedKey
	}
	if !version.IsPrivate() {
		return nil, errors.Wrapf(ErrInvalidKeyString, "version %#08x is not a private key version", uint32(version))
	}

	wire := &ExtendedKey{
		Version:           version,
		Depth:             k.attrs.Depth,
		ParentFingerprint: k.attrs.ParentFingerprint,
		ChildIndex:        k.attrs.ChildIndex.Raw(),
		ChainCode:         k.attrs.ChainCode,
	}
	scalar := k.scalar.Bytes()
	wire.KeyBytes[0] = 0x00
	copy(wire.KeyBytes[1:], scalar[:])
	zero(scalar[:])
	return wire, nil
}

// Encode serializes the private key under version as Base58Check text.
func (k *ExtendedPrivateKey) Encode(version KeyVersion) (string, error) {
	wire, err := k.ExtendedKey(version)
	if err != nil {
		return "", err
	}
	s := wire.String()
	zero(wire.KeyBytes[:])
	return s, nil
}

// ExtendedKey serializes the public key under version, which must be a
// public version prefix.
func (k *ExtendedPublicKey) ExtendedKey(version KeyVersion) (*ExtendedKey, error) {
	if !version.IsPublic() {
		return nil, errors.Wrapf(ErrInvalidKeyString, "version %#08x is not a public key version", uint32(version))
	}

	wire := &ExtendedKey{
		Version:           version,
		Depth:             k.attrs.Depth,
		ParentFingerprint: k.attrs.ParentFingerprint,
		ChildIndex:        k.attrs.ChildIndex.Raw(),
		ChainCode:         k.attrs.ChainCode,
	}
	copy(wire.KeyBytes[:], k.publicKey.SerializeCompressed())
	return wire, nil
}

// Encode serializes the public key under version as Base58Check text.
func (k *ExtendedPublicKey) Encode(version KeyVersion) (string, error) {
	wire, err := k.ExtendedKey(version)
	if err != nil {
		return "", err
	}
	return wire.String(), nil
}

// String returns the Base58Check encoding: the 78-byte payload followed
// by the first 4 bytes of its double-SHA256.
func (w *ExtendedKey) String() string {
	var serialized [serializedLen]byte
	payload := serialized[:payloadLen]

	version := w.Version.Bytes()
	copy(payload[:versionLen], version[:])
	payload[versionLen] = w.Depth
	copy(payload[versionLen+depthLen:], w.ParentFingerprint[:])
	binary.BigEndian.PutUint32(payload[versionLen+depthLen+fingerprintLen:], w.ChildIndex)
	copy(payload[versionLen+depthLen+fingerprintLen+childIndexLen:], w.ChainCode[:])
	copy(payload[versionLen+depthLen+fingerprintLen+childIndexLen+chainCodeLen:], w.KeyBytes[:])

	checksum := doubleSHA256(payload)
	copy(serialized[payloadLen:], checksum[:checksumLen])

	s := base58.Encode(serialized[:])
	zero(serialized[:])
	return s
}

// DecodeExtendedKey decodes Base58Check text into the wire form. The
// checksum must verify and the payload must be exactly 78 bytes.
func DecodeExtendedKey(s string) (*ExtendedKey, error) {
	serialized := base58.Decode(s)
	if len(serialized) != serializedLen {
		return nil, errors.Wrapf(ErrInvalidKeyString, "decoded length must be %d bytes, got %d", serializedLen, len(serialized))
	}

	payload := serialized[:payloadLen]
	checksum := doubleSHA256(payload)
	if !bytes.Equal(checksum[:checksumLen], serialized[payloadLen:]) {
		return nil, errors.Wrap(ErrInvalidKeyString, "checksum mismatch")
	}

	wire := &ExtendedKey{}
	var version [4]byte
	copy(version[:], payload[:versionLen])
	wire.Version = KeyVersionFromBytes(version)
	wire.Depth = payload[versionLen]
	copy(wire.ParentFingerprint[:], payload[versionLen+depthLen:])
	wire.ChildIndex = binary.BigEndian.Uint32(payload[versionLen+depthLen+fingerprintLen:])
	copy(wire.ChainCode[:], payload[versionLen+depthLen+fingerprintLen+childIndexLen:])
	copy(wire.KeyBytes[:], payload[versionLen+depthLen+fingerprintLen+childIndexLen+chainCodeLen:])

	zero(serialized)
	return wire, nil
}

// ExtendedPrivateKey reconstructs the typed private key. The version must
// be a private prefix and the key bytes must carry the 0x00 padding.
func (w *ExtendedKey) ExtendedPrivateKey(backend KeyBackend) (*ExtendedPrivateKey, error) {
	if !w.Version.IsPrivate() {
		return nil, errors.Wrapf(ErrInvalidKeyString, "version %#08x is not a private key version", uint32(w.Version))
	}
	if w.KeyBytes[0] != 0x00 {
		return nil, errors.Wrapf(ErrInvalidKeyMaterial, "expected 0x00 padding before private key, got %#02x", w.KeyBytes[0])
	}

	scalar, err := backend.ScalarFromBytes(w.KeyBytes[1:])
	if err != nil {
		return nil, err
	}

	return &ExtendedPrivateKey{
		backend: backend,
		scalar:  scalar,
		attrs:   w.attributes(),
	}, nil
}

// ExtendedPublicKey reconstructs the typed public key. The version must
// be a public prefix and the key bytes a valid compressed point.
func (w *ExtendedKey) ExtendedPublicKey(backend KeyBackend) (*ExtendedPublicKey, error) {
	if !w.Version.IsPublic() {
		return nil, errors.Wrapf(ErrInvalidKeyString, "version %#08x is not a public key version", uint32(w.Version))
	}

	pub, err := backend.PublicKeyFromBytes(w.KeyBytes[:])
	if err != nil {
		return nil, err
	}

	return &ExtendedPublicKey{
		backend:   backend,
		publicKey: pub,
		attrs:     w.attributes(),
	}, nil
}

func (w *ExtendedKey) attributes() ExtendedKeyAttributes {
	return ExtendedKeyAttributes{
		Depth:             w.Depth,
		ParentFingerprint: w.ParentFingerprint,
		ChildIndex:        ChildIndex(w.ChildIndex),
		ChainCode:         w.ChainCode,
	}
}

// ParseExtendedPrivateKey decodes Base58Check text straight into a typed
// private extended key.
func ParseExtendedPrivateKey(s string, backend KeyBackend) (*ExtendedPrivateKey, error) {
	wire, err := DecodeExtendedKey(s)
	if err != nil {
		return nil, err
	}
	key, err := wire.ExtendedPrivateKey(backend)
	zero(wire.KeyBytes[:])
	return key, err
}

// ParseExtendedPublicKey decodes Base58Check text straight into a typed
// public extended key.
func ParseExtendedPublicKey(s string, backend KeyBackend) (*ExtendedPublicKey, error) {
	wire, err := DecodeExtendedKey(s)
	if err != nil {
		return nil, err
	}
	return wire.ExtendedPublicKey(backend)
}

func doubleSHA256(b []byte) [32]byte {
	first := sha256.Sum256(b)
	return sha256.Sum256(first[:])
}
