// Package chain turns compressed secp256k1 public keys produced by the
// derivation engine into chain-specific account addresses.
package chain

import (
	"github.com/pkg/errors"
)

// Symbol identifies a supported chain.
type Symbol string

const (
	SymbolBitcoin  Symbol = "BTC"
	SymbolEthereum Symbol = "ETH"
)

// AddressEncoder renders a compressed secp256k1 public key (33 bytes,
// 0x02/0x03 prefix) as an address for one chain.
type AddressEncoder interface {
	Symbol() Symbol
	EncodeAddress(compressedPubKey []byte) (string, error)
}

// Registry holds the encoders the service exposes.
type Registry struct {
	encoders map[Symbol]AddressEncoder
}

// NewRegistry builds a registry from the given encoders. Duplicate
// symbols are rejected so wiring mistakes surface at startup.
func NewRegistry(encoders ...AddressEncoder) (*Registry, error) {
	r := &Registry{encoders: make(map[Symbol]AddressEncoder, len(encoders))}
	for _, enc := range encoders {
		if _, ok := r.encoders[enc.Symbol()]; ok {
			return nil, errors.Errorf("duplicate address encoder for symbol %q", enc.Symbol())
		}
		r.encoders[enc.Symbol()] = enc
	}
	return r, nil
}

// Encoder returns the encoder registered for sym.
func (r *Registry) Encoder(sym Symbol) (AddressEncoder, error) {
	enc, ok := r.encoders[sym]
	if !ok {
		return nil, errors.Errorf("no address encoder registered for symbol %q", sym)
	}
	return enc, nil
}

// Symbols lists the registered chain symbols.
func (r *Registry) Symbols() []Symbol {
	syms := make([]Symbol, 0, len(r.encoders))
	for sym := range r.encoders {
		syms = append(syms, sym)
	}
	return syms
}

func validateCompressedPubKey(pubKey []byte) error {
	if len(pubKey) == 0 {
		return errors.New("public key is required")
	}
	if len(pubKey) != 33 || (pubKey[0] != 0x02 && pubKey[0] != 0x03) {
		return errors.Errorf("expected 33-byte compressed public key, got %d bytes", len(pubKey))
	}
	return nil
}
