package hdwallet

import (
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// hardenedSuffix marks a hardened index in the textual path form.
const hardenedSuffix = "'"

// ChildIndex is a single derivation step: a 32-bit index whose top bit
// marks hardened derivation. The textual form is the unhardened index
// followed by ' when hardened, e.g. "44'".
type ChildIndex uint32

// NewChildIndex builds a ChildIndex from an index in [0, 2^31) and a
// hardened flag. An index with the hardened bit already set is rejected
// rather than silently accepted.
func NewChildIndex(index uint32, hardened bool) (ChildIndex, error) {
	if index >= HardenedOffset {
		return 0, errors.Wrapf(ErrInvalidChildIndex, "index %d", index)
	}
	if hardened {
		index |= HardenedOffset
	}
	return ChildIndex(index), nil
}

// Index returns the index without the hardened flag.
func (i ChildIndex) Index() uint32 {
	return uint32(i) &^ HardenedOffset
}

// IsHardened reports whether the hardened bit is set.
func (i ChildIndex) IsHardened() bool {
	return uint32(i) >= HardenedOffset
}

// Raw returns the full 32-bit value, hardened flag included.
func (i ChildIndex) Raw() uint32 {
	return uint32(i)
}

// Bytes returns the 4-byte big-endian serialization used in the HMAC
// input and the extended key payload.
func (i ChildIndex) Bytes() [4]byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(i))
	return b
}

func (i ChildIndex) String() string {
	s := strconv.FormatUint(uint64(i.Index()), 10)
	if i.IsHardened() {
		s += hardenedSuffix
	}
	return s
}

// ParseChildIndex parses a single path component such as "0" or "44'".
func ParseChildIndex(s string) (ChildIndex, error) {
	hardened := strings.HasSuffix(s, hardenedSuffix)
	trimmed := strings.TrimSuffix(s, hardenedSuffix)

	index, err := strconv.ParseUint(trimmed, 10, 32)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidDerivationPath, "component %q", s)
	}

	return NewChildIndex(uint32(index), hardened)
}
