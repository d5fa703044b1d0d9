package chain

import (
	"crypto/sha256"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcutil/base58"
	"github.com/pkg/errors"
	"golang.org/x/crypto/ripemd160"
)

// BitcoinEncoder renders P2PKH addresses for the configured network.
type BitcoinEncoder struct {
	params *chaincfg.Params
}

// NewBitcoinEncoder builds an encoder for params, defaulting to mainnet.
func NewBitcoinEncoder(params *chaincfg.Params) *BitcoinEncoder {
	if params == nil {
		params = &chaincfg.MainNetParams
	}
	return &BitcoinEncoder{params: params}
}

func (e *BitcoinEncoder) Symbol() Symbol {
	return SymbolBitcoin
}

// EncodeAddress returns the Base58Check P2PKH address of the key.
func (e *BitcoinEncoder) EncodeAddress(compressedPubKey []byte) (string, error) {
	if err := validateCompressedPubKey(compressedPubKey); err != nil {
		return "", err
	}
	// Reject points that are not on the curve before hashing them.
	if _, err := btcec.ParsePubKey(compressedPubKey); err != nil {
		return "", errors.Wrap(err, "failed to parse secp256k1 public key")
	}

	sha := sha256.Sum256(compressedPubKey)
	ripemd := ripemd160.New()
	if _, err := ripemd.Write(sha[:]); err != nil {
		return "", errors.Wrap(err, "failed to hash public key")
	}
	hash160 := ripemd.Sum(nil)

	payload := make([]byte, 0, 1+len(hash160)+4)
	payload = append(payload, e.params.PubKeyHashAddrID)
	payload = append(payload, hash160...)

	firstSHA := sha256.Sum256(payload)
	secondSHA := sha256.Sum256(firstSHA[:])
	payload = append(payload, secondSHA[:4]...)

	return base58.Encode(payload), nil
}
