package hdwallet

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecp256k1ScalarFromBytes(t *testing.T) {
	backend := NewSecp256k1Backend()

	b := make([]byte, 32)
	b[31] = 0x01
	scalar, err := backend.ScalarFromBytes(b)
	require.NoError(t, err)
	serialized := scalar.Bytes()
	assert.Equal(t, b, serialized[:])

	_, err = backend.ScalarFromBytes(make([]byte, 32))
	assert.ErrorIs(t, err, ErrInvalidKeyMaterial)

	_, err = backend.ScalarFromBytes(make([]byte, 31))
	assert.ErrorIs(t, err, ErrInvalidKeyMaterial)
}

func TestSecp256k1DeriveChildScalar(t *testing.T) {
	backend := NewSecp256k1Backend()

	parentBytes := make([]byte, 32)
	parentBytes[31] = 0x02
	parent, err := backend.ScalarFromBytes(parentBytes)
	require.NoError(t, err)

	var tweak [32]byte
	tweak[31] = 0x03
	child, err := backend.DeriveChildScalar(parent, tweak)
	require.NoError(t, err)

	childBytes := child.Bytes()
	assert.Equal(t, byte(0x05), childBytes[31])

	// n - 2 + 2 == 0 mod n: the backend must refuse the zero scalar.
	nMinusTwoBytes, err := hex.DecodeString("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd036413f")
	require.NoError(t, err)
	nMinusTwo, err := backend.ScalarFromBytes(nMinusTwoBytes)
	require.NoError(t, err)
	var two [32]byte
	two[31] = 0x02
	_, err = backend.DeriveChildScalar(nMinusTwo, two)
	assert.ErrorIs(t, err, ErrUnusableChildKey)
}

func TestSecp256k1PublicKeyRoundTrip(t *testing.T) {
	backend := NewSecp256k1Backend()

	b := make([]byte, 32)
	b[31] = 0x01
	scalar, err := backend.ScalarFromBytes(b)
	require.NoError(t, err)

	pub, err := backend.PublicKeyOf(scalar)
	require.NoError(t, err)
	serialized := pub.SerializeCompressed()
	require.Len(t, serialized, 33)
	assert.True(t, serialized[0] == 0x02 || serialized[0] == 0x03)

	parsed, err := backend.PublicKeyFromBytes(serialized)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(serialized, parsed.SerializeCompressed()))

	_, err = backend.PublicKeyFromBytes([]byte{0x04, 0x01})
	assert.ErrorIs(t, err, ErrInvalidKeyMaterial)
}

func TestSecp256k1ScalarZero(t *testing.T) {
	backend := NewSecp256k1Backend()

	b := make([]byte, 32)
	b[0] = 0x7f
	scalar, err := backend.ScalarFromBytes(b)
	require.NoError(t, err)

	scalar.Zero()
	zeroed := scalar.Bytes()
	assert.Equal(t, [32]byte{}, zeroed)
}
