// Package seed is the boundary to the BIP-39 seed provider: it turns
// mnemonic recovery phrases into the seed bytes the derivation core
// consumes, without the core ever seeing a mnemonic.
package seed

import (
	"github.com/pkg/errors"
	bip39 "github.com/tyler-smith/go-bip39"
)

// Standard BIP-39 seed length produced by the PBKDF2 stretch.
const SeedLength = 64

// NewMnemonic generates a fresh mnemonic with the given entropy size in
// bits (128–256, multiple of 32).
func NewMnemonic(bits int) (string, error) {
	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate entropy")
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate mnemonic")
	}
	return mnemonic, nil
}

// FromMnemonic derives the 64-byte seed from a mnemonic and optional
// passphrase, validating the mnemonic checksum first.
func FromMnemonic(mnemonic, passphrase string) ([]byte, error) {
	s, err := bip39.NewSeedWithErrorChecking(mnemonic, passphrase)
	if err != nil {
		return nil, errors.Wrap(err, "invalid mnemonic")
	}
	return s, nil
}

// Validate reports whether the mnemonic is well formed, including its
// checksum word.
func Validate(mnemonic string) bool {
	return bip39.IsMnemonicValid(mnemonic)
}

// Wipe overwrites seed material in place once a caller is done with it.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
