package hdwallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDerivationPath(t *testing.T) {
	path, err := ParseDerivationPath("m/44'/0'/0'/0/0")
	require.NoError(t, err)
	require.Len(t, path, 5)

	assert.Equal(t, uint32(44), path[0].Index())
	assert.True(t, path[0].IsHardened())
	assert.Equal(t, uint32(0), path[4].Index())
	assert.False(t, path[4].IsHardened())

	assert.Equal(t, "m/44'/0'/0'/0/0", path.String())
}

func TestParseDerivationPathRoot(t *testing.T) {
	path, err := ParseDerivationPath("m")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, "m", path.String())
}

func TestParseDerivationPathErrors(t *testing.T) {
	tests := []string{
		"",
		"44'/0'",
		"M/44'/0'",
		"n/0",
		"m/",
		"m//0",
		"m/0/",
		"m/2147483648",
		"m/44'/x",
		"m/44'/0' ",
	}

	for _, in := range tests {
		// No partial path comes back on failure.
		path, err := ParseDerivationPath(in)
		assert.Error(t, err, "input %q", in)
		assert.Nil(t, path, "input %q", in)
	}

	_, err := ParseDerivationPath("44'/0'")
	assert.ErrorIs(t, err, ErrInvalidDerivationPath)

	// An index at or above the hardened offset is an index error, not a
	// generic parse failure.
	_, err = ParseDerivationPath("m/2147483648")
	assert.ErrorIs(t, err, ErrInvalidChildIndex)
}
