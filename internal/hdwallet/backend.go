package hdwallet

// Scalar is a private scalar owned by a key backend. The backing bytes
// must be wiped via Zero when the scalar reaches end of life.
type Scalar interface {
	// Bytes returns the fixed-width big-endian serialization.
	Bytes() [32]byte
	// Zero overwrites the backing key material.
	Zero()
}

// PublicKey is a curve point owned by a key backend.
type PublicKey interface {
	// SerializeCompressed returns the 33-byte compressed encoding.
	SerializeCompressed() []byte
}

// KeyBackend is the capability a concrete elliptic-curve implementation
// exposes to the derivation engine. The engine never performs curve
// arithmetic itself, which keeps it testable against a stub backend.
type KeyBackend interface {
	// ScalarFromBytes builds a private scalar from 32 arbitrary bytes,
	// reducing modulo the curve order. A zero result is an error. This is
	// the only place reduction from arbitrary bytes happens.
	ScalarFromBytes(b []byte) (Scalar, error)

	// DeriveChildScalar computes (parent + reduce(tweak)) mod n. A zero
	// result is reported as an error, never returned as a key.
	DeriveChildScalar(parent Scalar, tweak [32]byte) (Scalar, error)

	// PublicKeyOf returns the public point corresponding to s.
	PublicKeyOf(s Scalar) (PublicKey, error)

	// PublicKeyFromBytes parses a 33-byte compressed point encoding.
	PublicKeyFromBytes(b []byte) (PublicKey, error)

	// Fingerprint computes the 4-byte identifier of a public key:
	// RIPEMD160(SHA256(compressed))[0:4].
	Fingerprint(pub PublicKey) [4]byte
}
