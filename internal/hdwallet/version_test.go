package hdwallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyVersionClassification(t *testing.T) {
	tests := []struct {
		version KeyVersion
		mainnet bool
		testnet bool
		public  bool
		private bool
	}{
		{MainnetPublic, true, false, true, false},
		{MainnetPrivate, true, false, false, true},
		{TestnetPublic, false, true, true, false},
		{TestnetPrivate, false, true, false, true},
		{KeyVersion(0), false, false, false, false},
		{KeyVersion(0xdeadbeef), false, false, false, false},
	}

	for _, test := range tests {
		assert.Equal(t, test.mainnet, test.version.IsMainnet(), "%#08x", uint32(test.version))
		assert.Equal(t, test.testnet, test.version.IsTestnet(), "%#08x", uint32(test.version))
		assert.Equal(t, test.public, test.version.IsPublic(), "%#08x", uint32(test.version))
		assert.Equal(t, test.private, test.version.IsPrivate(), "%#08x", uint32(test.version))

		// mainnet/testnet and public/private are mutually exclusive.
		assert.False(t, test.version.IsMainnet() && test.version.IsTestnet())
		assert.False(t, test.version.IsPublic() && test.version.IsPrivate())
	}
}

func TestKeyVersionBytes(t *testing.T) {
	assert.Equal(t, [4]byte{0x04, 0x88, 0xad, 0xe4}, MainnetPrivate.Bytes())
	assert.Equal(t, [4]byte{0x04, 0x88, 0xb2, 0x1e}, MainnetPublic.Bytes())
	assert.Equal(t, [4]byte{0x04, 0x35, 0x83, 0x94}, TestnetPrivate.Bytes())
	assert.Equal(t, [4]byte{0x04, 0x35, 0x87, 0xcf}, TestnetPublic.Bytes())

	for _, v := range []KeyVersion{MainnetPublic, MainnetPrivate, TestnetPublic, TestnetPrivate, KeyVersion(0x11223344)} {
		assert.Equal(t, v, KeyVersionFromBytes(v.Bytes()))
	}
}
