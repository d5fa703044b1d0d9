package hdwallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChildIndex(t *testing.T) {
	index, err := NewChildIndex(44, true)
	require.NoError(t, err)
	assert.Equal(t, uint32(44), index.Index())
	assert.True(t, index.IsHardened())
	assert.Equal(t, uint32(44)|HardenedOffset, index.Raw())

	index, err = NewChildIndex(0, false)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), index.Index())
	assert.False(t, index.IsHardened())

	// The hardened flag is set by the constructor, never smuggled in
	// through the index value.
	_, err = NewChildIndex(HardenedOffset, false)
	assert.ErrorIs(t, err, ErrInvalidChildIndex)
	_, err = NewChildIndex(HardenedOffset+5, true)
	assert.ErrorIs(t, err, ErrInvalidChildIndex)

	index, err = NewChildIndex(HardenedOffset-1, true)
	require.NoError(t, err)
	assert.Equal(t, HardenedOffset-1, index.Index())
}

func TestParseChildIndex(t *testing.T) {
	tests := []struct {
		in       string
		index    uint32
		hardened bool
		ok       bool
	}{
		{"0", 0, false, true},
		{"44'", 44, true, true},
		{"2147483647", 2147483647, false, true},
		{"2147483647'", 2147483647, true, true},
		{"2147483648", 0, false, false},
		{"2147483648'", 0, false, false},
		{"", 0, false, false},
		{"'", 0, false, false},
		{"-1", 0, false, false},
		{"44''", 0, false, false},
		{"44h", 0, false, false},
		{"abc", 0, false, false},
	}

	for _, test := range tests {
		index, err := ParseChildIndex(test.in)
		if !test.ok {
			assert.Error(t, err, "input %q", test.in)
			continue
		}
		require.NoError(t, err, "input %q", test.in)
		assert.Equal(t, test.index, index.Index(), "input %q", test.in)
		assert.Equal(t, test.hardened, index.IsHardened(), "input %q", test.in)
	}
}

func TestChildIndexString(t *testing.T) {
	index, err := NewChildIndex(44, true)
	require.NoError(t, err)
	assert.Equal(t, "44'", index.String())

	parsed, err := ParseChildIndex(index.String())
	require.NoError(t, err)
	assert.Equal(t, index, parsed)

	index, err = NewChildIndex(0, false)
	require.NoError(t, err)
	assert.Equal(t, "0", index.String())
}

func TestChildIndexBytes(t *testing.T) {
	index, err := NewChildIndex(1, true)
	require.NoError(t, err)
	assert.Equal(t, [4]byte{0x80, 0x00, 0x00, 0x01}, index.Bytes())

	index, err = NewChildIndex(1000000000, false)
	require.NoError(t, err)
	assert.Equal(t, [4]byte{0x3b, 0x9a, 0xca, 0x00}, index.Bytes())
}
