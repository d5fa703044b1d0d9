package keys

import (
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"

	"github.com/iqlusioninc/crates-sub000/internal/infra/storage"
	"github.com/iqlusioninc/crates-sub000/internal/types"
)

func rootKeyResponse(meta *storage.RootKeyMetadata) *types.RootKeyResponse {
	return &types.RootKeyResponse{
		KeyID:       swag.String(meta.KeyID),
		Network:     swag.String(meta.Network),
		Fingerprint: swag.String(meta.Fingerprint),
		PublicKey:   swag.String(meta.PublicKey),
		Status:      swag.String(string(meta.Status)),
		Description: meta.Description,
		Tags:        meta.Tags,
		CreatedAt:   strfmt.DateTime(meta.CreatedAt),
	}
}

func walletKeyResponse(meta *storage.WalletKeyMetadata) *types.WalletKeyResponse {
	return &types.WalletKeyResponse{
		WalletID:    swag.String(meta.WalletID),
		RootKeyID:   swag.String(meta.RootKeyID),
		ChainType:   meta.ChainType,
		Path:        swag.String(meta.Path),
		PublicKey:   swag.String(meta.PublicKey),
		ChainCode:   swag.String(meta.ChainCode),
		Address:     meta.Address,
		ExtendedKey: swag.String(meta.ExtendedKey),
		Status:      swag.String(string(meta.Status)),
		Description: meta.Description,
		Tags:        meta.Tags,
		CreatedAt:   strfmt.DateTime(meta.CreatedAt),
	}
}
