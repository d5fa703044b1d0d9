package hdwallet

// maxDepth is the deepest level an extended key can sit at; the depth
// field is a single byte on the wire.
const maxDepth = 255

// ExtendedKeyAttributes is the metadata carried alongside every derived
// key: its depth below the master key, the fingerprint of its parent's
// public key, the index it was derived at and its chain code.
//
// Depth 0 identifies the master key, which has a zero parent fingerprint
// and child index.
type ExtendedKeyAttributes struct {
	Depth             uint8
	ParentFingerprint [4]byte
	ChildIndex        ChildIndex
	ChainCode         [32]byte
}

// child builds the attributes of a child derived from a, performing a
// checked depth increment.
func (a ExtendedKeyAttributes) child(index ChildIndex, parentFingerprint [4]byte, chainCode [32]byte) (ExtendedKeyAttributes, error) {
	if a.Depth >= maxDepth {
		return ExtendedKeyAttributes{}, ErrDeriveBeyondMaxDepth
	}
	return ExtendedKeyAttributes{
		Depth:             a.Depth + 1,
		ParentFingerprint: parentFingerprint,
		ChildIndex:        index,
		ChainCode:         chainCode,
	}, nil
}
