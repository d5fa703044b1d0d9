package hdwallet

import (
	"crypto/sha256"

	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"
	"golang.org/x/crypto/ripemd160"
)

// Secp256k1Backend implements KeyBackend on the decred secp256k1 package.
type Secp256k1Backend struct{}

var _ KeyBackend = Secp256k1Backend{}

// NewSecp256k1Backend returns the secp256k1 curve backend.
func NewSecp256k1Backend() Secp256k1Backend {
	return Secp256k1Backend{}
}

type secpScalar struct {
	priv secp256k1.PrivateKey
}

func (s *secpScalar) Bytes() [32]byte {
	return s.priv.Key.Bytes()
}

func (s *secpScalar) Zero() {
	s.priv.Zero()
}

type secpPublicKey struct {
	pub *secp256k1.PublicKey
}

func (p *secpPublicKey) SerializeCompressed() []byte {
	return p.pub.SerializeCompressed()
}

func (Secp256k1Backend) ScalarFromBytes(b []byte) (Scalar, error) {
	if len(b) != 32 {
		return nil, errors.Wrapf(ErrInvalidKeyMaterial, "scalar must be 32 bytes, got %d", len(b))
	}

	var s secpScalar
	s.priv.Key.SetByteSlice(b)
	if s.priv.Key.IsZero() {
		return nil, errors.Wrap(ErrInvalidKeyMaterial, "scalar reduces to zero")
	}
	return &s, nil
}

func (Secp256k1Backend) DeriveChildScalar(parent Scalar, tweak [32]byte) (Scalar, error) {
	p, ok := parent.(*secpScalar)
	if !ok {
		return nil, errors.Wrap(ErrInvalidKeyMaterial, "parent scalar does not belong to this backend")
	}

	var child secpScalar
	child.priv.Key.SetBytes(&tweak)
	child.priv.Key.Add(&p.priv.Key)
	if child.priv.Key.IsZero() {
		child.priv.Zero()
		return nil, ErrUnusableChildKey
	}
	return &child, nil
}

func (Secp256k1Backend) PublicKeyOf(s Scalar) (PublicKey, error) {
	p, ok := s.(*secpScalar)
	if !ok {
		return nil, errors.Wrap(ErrInvalidKeyMaterial, "scalar does not belong to this backend")
	}
	return &secpPublicKey{pub: p.priv.PubKey()}, nil
}

func (Secp256k1Backend) PublicKeyFromBytes(b []byte) (PublicKey, error) {
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidKeyMaterial, err.Error())
	}
	return &secpPublicKey{pub: pub}, nil
}

func (Secp256k1Backend) Fingerprint(pub PublicKey) [4]byte {
	return fingerprint(pub.SerializeCompressed())
}

// fingerprint is RIPEMD160(SHA256(serialized)) truncated to 4 bytes.
func fingerprint(serialized []byte) [4]byte {
	sha := sha256.Sum256(serialized)
	ripemd := ripemd160.New()
	ripemd.Write(sha[:])

	var fp [4]byte
	copy(fp[:], ripemd.Sum(nil)[:4])
	return fp
}
