package chain

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// EthereumEncoder renders EIP-55 checksummed account addresses.
type EthereumEncoder struct{}

// NewEthereumEncoder builds an Ethereum address encoder.
func NewEthereumEncoder() *EthereumEncoder {
	return &EthereumEncoder{}
}

func (e *EthereumEncoder) Symbol() Symbol {
	return SymbolEthereum
}

// EncodeAddress decompresses the key and returns the address derived
// from Keccak256 over the 64-byte point encoding.
func (e *EthereumEncoder) EncodeAddress(compressedPubKey []byte) (string, error) {
	if err := validateCompressedPubKey(compressedPubKey); err != nil {
		return "", err
	}
	key, err := btcec.ParsePubKey(compressedPubKey)
	if err != nil {
		return "", errors.Wrap(err, "failed to parse secp256k1 public key")
	}
	return crypto.PubkeyToAddress(*key.ToECDSA()).Hex(), nil
}
