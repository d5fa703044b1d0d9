package storage

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// SeedVault persists root seed material, sealed at rest.
type SeedVault interface {
	Store(keyID string, seed []byte) error
	Load(keyID string) ([]byte, error)
	Delete(keyID string) error
}

// ErrInvalidKeyID rejects key IDs that are not safe vault file names.
var ErrInvalidKeyID = errors.New("key id is not a valid vault file name")

// ValidKeyID reports whether keyID can be used as a vault file name.
// IDs are restricted to the token characters UUIDs use so that
// caller-chosen IDs can never traverse out of the vault directory.
func ValidKeyID(keyID string) bool {
	if keyID == "" || keyID == "." || keyID == ".." || len(keyID) > 128 {
		return false
	}
	for _, r := range keyID {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}

// FileSystemSeedVault seals seeds with AES-256-GCM and writes one file
// per root key under its base directory.
type FileSystemSeedVault struct {
	basePath string
	aead     cipher.AEAD
}

// NewFileSystemSeedVault opens (and creates if needed) the vault at
// basePath. hexKey must decode to 32 bytes.
func NewFileSystemSeedVault(basePath string, hexKey string) (*FileSystemSeedVault, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode seed encryption key")
	}
	if len(key) != 32 {
		return nil, errors.Errorf("seed encryption key must be 32 bytes, got %d", len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to init AES cipher")
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Wrap(err, "failed to init GCM mode")
	}

	if err := os.MkdirAll(basePath, 0o700); err != nil {
		return nil, errors.Wrap(err, "failed to create seed vault directory")
	}

	return &FileSystemSeedVault{basePath: basePath, aead: aead}, nil
}

// Store seals and writes the seed for keyID. Existing seeds are never
// overwritten.
func (v *FileSystemSeedVault) Store(keyID string, seed []byte) error {
	path, err := v.seedPath(keyID)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return errors.Errorf("seed for key %q already exists", keyID)
	}

	nonce := make([]byte, v.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return errors.Wrap(err, "failed to generate nonce")
	}

	sealed := v.aead.Seal(nonce, nonce, seed, []byte(keyID))
	if err := os.WriteFile(path, sealed, 0o600); err != nil {
		return errors.Wrap(err, "failed to write sealed seed")
	}
	return nil
}

// Load reads and opens the seed for keyID. The caller owns the returned
// bytes and must wipe them after use.
func (v *FileSystemSeedVault) Load(keyID string) ([]byte, error) {
	path, err := v.seedPath(keyID)
	if err != nil {
		return nil, err
	}
	sealed, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ErrNotFound{Entity: "seed", ID: keyID}
		}
		return nil, errors.Wrap(err, "failed to read sealed seed")
	}

	if len(sealed) < v.aead.NonceSize() {
		return nil, errors.New("sealed seed is truncated")
	}
	nonce, ciphertext := sealed[:v.aead.NonceSize()], sealed[v.aead.NonceSize():]

	seed, err := v.aead.Open(nil, nonce, ciphertext, []byte(keyID))
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sealed seed")
	}
	return seed, nil
}

// Delete removes the sealed seed for keyID.
func (v *FileSystemSeedVault) Delete(keyID string) error {
	path, err := v.seedPath(keyID)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return &ErrNotFound{Entity: "seed", ID: keyID}
		}
		return errors.Wrap(err, "failed to delete sealed seed")
	}
	return nil
}

func (v *FileSystemSeedVault) seedPath(keyID string) (string, error) {
	if !ValidKeyID(keyID) {
		return "", errors.Wrapf(ErrInvalidKeyID, "%q", keyID)
	}
	return filepath.Join(v.basePath, keyID+".seed"), nil
}
