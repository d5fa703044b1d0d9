package hdwallet

import "encoding/binary"

// KeyVersion is the 4-byte network/type prefix of a serialized extended
// key. The four canonical BIP-32 values map to the familiar xprv, xpub,
// tprv and tpub human prefixes; any other value round-trips unrecognized.
type KeyVersion uint32

const (
	MainnetPublic  KeyVersion = 0x0488b21e // xpub
	MainnetPrivate KeyVersion = 0x0488ade4 // xprv
	TestnetPublic  KeyVersion = 0x043587cf // tpub
	TestnetPrivate KeyVersion = 0x04358394 // tprv
)

// IsMainnet reports whether the version is one of the mainnet prefixes.
func (v KeyVersion) IsMainnet() bool {
	return v == MainnetPublic || v == MainnetPrivate
}

// IsTestnet reports whether the version is one of the testnet prefixes.
func (v KeyVersion) IsTestnet() bool {
	return v == TestnetPublic || v == TestnetPrivate
}

// IsPublic reports whether the version denotes a public extended key.
// Unrecognized versions are neither public nor private.
func (v KeyVersion) IsPublic() bool {
	return v == MainnetPublic || v == TestnetPublic
}

// IsPrivate reports whether the version denotes a private extended key.
func (v KeyVersion) IsPrivate() bool {
	return v == MainnetPrivate || v == TestnetPrivate
}

// Bytes returns the big-endian serialization of the version prefix.
func (v KeyVersion) Bytes() [4]byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	return b
}

// KeyVersionFromBytes reads a version prefix from the first 4 bytes of b.
func KeyVersionFromBytes(b [4]byte) KeyVersion {
	return KeyVersion(binary.BigEndian.Uint32(b[:]))
}
