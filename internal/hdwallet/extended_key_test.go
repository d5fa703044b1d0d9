package hdwallet

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testVectorKey(t *testing.T) *ExtendedPrivateKey {
	t.Helper()

	seed, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	require.NoError(t, err)
	path, err := ParseDerivationPath("m/0'/1")
	require.NoError(t, err)

	key, err := DeriveFromPath(seed, path, NewSecp256k1Backend())
	require.NoError(t, err)
	return key
}

func TestExtendedKeyRoundTrip(t *testing.T) {
	backend := NewSecp256k1Backend()
	key := testVectorKey(t)
	defer key.Zero()

	for _, version := range []KeyVersion{MainnetPrivate, TestnetPrivate} {
		encoded, err := key.Encode(version)
		require.NoError(t, err)

		parsed, err := ParseExtendedPrivateKey(encoded, backend)
		require.NoError(t, err)
		assert.True(t, SecureEquals(key, parsed))
		parsed.Zero()
	}

	pub, err := key.Neuter()
	require.NoError(t, err)

	for _, version := range []KeyVersion{MainnetPublic, TestnetPublic} {
		encoded, err := pub.Encode(version)
		require.NoError(t, err)

		parsed, err := ParseExtendedPublicKey(encoded, backend)
		require.NoError(t, err)
		assert.Equal(t, pub.Attributes(), parsed.Attributes())
		assert.Equal(t, pub.PublicKey().SerializeCompressed(), parsed.PublicKey().SerializeCompressed())

		// Re-encoding yields the identical string.
		again, err := parsed.Encode(version)
		require.NoError(t, err)
		assert.Equal(t, encoded, again)
	}
}

func TestDecodeChecksumSensitivity(t *testing.T) {
	key := testVectorKey(t)
	defer key.Zero()

	encoded, err := key.Encode(MainnetPrivate)
	require.NoError(t, err)

	// Flipping any single character must break the checksum.
	const alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
	for i := 0; i < len(encoded); i++ {
		replacement := alphabet[0]
		if encoded[i] == replacement {
			replacement = alphabet[1]
		}
		corrupted := encoded[:i] + string(replacement) + encoded[i+1:]

		_, err := DecodeExtendedKey(corrupted)
		assert.ErrorIs(t, err, ErrInvalidKeyString, "position %d", i)
	}
}

func TestDecodeRejectsMalformedStrings(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"not base58", "xprv9s21Zr0OIl"},
		{"too short", "deadbeef"},
		{"truncated", "xprv9s21ZrQH143K3QTDL4LXw2F7HEK3wJUD2nW2nRk4stbPy6cq3jPP"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := DecodeExtendedKey(test.in)
			assert.ErrorIs(t, err, ErrInvalidKeyString)
		})
	}
}

func TestDecodeVersionDispatch(t *testing.T) {
	backend := NewSecp256k1Backend()
	key := testVectorKey(t)
	defer key.Zero()

	encodedPriv, err := key.Encode(MainnetPrivate)
	require.NoError(t, err)
	pub, err := key.Neuter()
	require.NoError(t, err)
	encodedPub, err := pub.Encode(MainnetPublic)
	require.NoError(t, err)

	// A private string does not parse as a public key and vice versa.
	_, err = ParseExtendedPublicKey(encodedPriv, backend)
	assert.ErrorIs(t, err, ErrInvalidKeyString)
	_, err = ParseExtendedPrivateKey(encodedPub, backend)
	assert.ErrorIs(t, err, ErrInvalidKeyString)
}

func TestDecodeRejectsBadPrivatePadding(t *testing.T) {
	backend := NewSecp256k1Backend()
	key := testVectorKey(t)
	defer key.Zero()

	wire, err := key.ExtendedKey(MainnetPrivate)
	require.NoError(t, err)

	// A private-version payload whose key bytes do not start with 0x00
	// must be rejected, not guessed at.
	wire.KeyBytes[0] = 0x02
	reencoded, err := DecodeExtendedKey(wire.String())
	require.NoError(t, err)
	_, err = reencoded.ExtendedPrivateKey(backend)
	assert.ErrorIs(t, err, ErrInvalidKeyMaterial)
}

func TestEncodeVersionMismatch(t *testing.T) {
	key := testVectorKey(t)
	defer key.Zero()

	_, err := key.Encode(MainnetPublic)
	assert.ErrorIs(t, err, ErrInvalidKeyString)

	pub, err := key.Neuter()
	require.NoError(t, err)
	_, err = pub.Encode(TestnetPrivate)
	assert.ErrorIs(t, err, ErrInvalidKeyString)
}

func TestUnknownVersionRoundTripsAsWireForm(t *testing.T) {
	key := testVectorKey(t)
	defer key.Zero()

	wire, err := key.ExtendedKey(MainnetPrivate)
	require.NoError(t, err)

	// Stamp an unrecognized prefix: it survives the text round trip but
	// cannot be lifted into a typed key.
	wire.Version = KeyVersion(0x11223344)
	encoded := wire.String()

	decoded, err := DecodeExtendedKey(encoded)
	require.NoError(t, err)
	assert.Equal(t, wire.Version, decoded.Version)
	assert.Equal(t, wire.KeyBytes, decoded.KeyBytes)
	assert.False(t, decoded.Version.IsPrivate())
	assert.False(t, decoded.Version.IsPublic())

	_, err = decoded.ExtendedPrivateKey(NewSecp256k1Backend())
	assert.ErrorIs(t, err, ErrInvalidKeyString)
}

func TestHumanPrefixes(t *testing.T) {
	key := testVectorKey(t)
	defer key.Zero()
	pub, err := key.Neuter()
	require.NoError(t, err)

	tests := []struct {
		version KeyVersion
		private bool
		prefix  string
	}{
		{MainnetPrivate, true, "xprv"},
		{MainnetPublic, false, "xpub"},
		{TestnetPrivate, true, "tprv"},
		{TestnetPublic, false, "tpub"},
	}

	for _, test := range tests {
		var encoded string
		if test.private {
			encoded, err = key.Encode(test.version)
		} else {
			encoded, err = pub.Encode(test.version)
		}
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(encoded, test.prefix), "%s should start with %s", encoded, test.prefix)
	}
}
