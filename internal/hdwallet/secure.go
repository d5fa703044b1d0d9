package hdwallet

import "crypto/subtle"

// zero overwrites b with zeroes. Deallocation alone does not clear
// memory, so every buffer that held secret bytes goes through here.
func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// SecureEquals compares two extended private keys in time independent of
// the position of the first differing byte. It covers the serialized
// scalar and all attributes. Two zeroed keys compare equal; a zeroed key
// never equals a live one.
func SecureEquals(a, b *ExtendedPrivateKey) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.scalar == nil || b.scalar == nil {
		return a.scalar == nil && b.scalar == nil
	}

	aBytes := serializeForCompare(a)
	bBytes := serializeForCompare(b)
	equal := subtle.ConstantTimeCompare(aBytes, bBytes) == 1
	zero(aBytes)
	zero(bBytes)
	return equal
}

// serializeForCompare flattens scalar, depth, parent fingerprint, child
// index and chain code into one buffer so a single constant-time compare
// covers them all.
func serializeForCompare(k *ExtendedPrivateKey) []byte {
	scalar := k.scalar.Bytes()
	index := k.attrs.ChildIndex.Bytes()

	buf := make([]byte, 0, 32+1+4+4+32)
	buf = append(buf, scalar[:]...)
	buf = append(buf, k.attrs.Depth)
	buf = append(buf, k.attrs.ParentFingerprint[:]...)
	buf = append(buf, index[:]...)
	buf = append(buf, k.attrs.ChainCode[:]...)
	zero(scalar[:])
	return buf
}
