package types

import (
	"context"
	"math"

	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/go-openapi/validate"
)

// PostCreateKeyPayload creates a root key. An omitted mnemonic asks the
// service to generate one.
type PostCreateKeyPayload struct {
	KeyID       string            `json:"key_id,omitempty"`
	Mnemonic    string            `json:"mnemonic,omitempty"`
	Passphrase  string            `json:"passphrase,omitempty"`
	Description string            `json:"description,omitempty"`
	Tags        map[string]string `json:"tags,omitempty"`
}

// Validate validates PostCreateKeyPayload
func (m *PostCreateKeyPayload) Validate(formats strfmt.Registry) error {
	return nil
}

// ContextValidate validates this payload based on context it is used
func (m *PostCreateKeyPayload) ContextValidate(ctx context.Context, formats strfmt.Registry) error {
	return nil
}

// CreateKeyResponse returns the stored metadata plus the one-time
// mnemonic.
type CreateKeyResponse struct {
	KeyID       *string `json:"key_id"`
	Fingerprint *string `json:"fingerprint"`
	PublicKey   *string `json:"public_key"`
	Mnemonic    *string `json:"mnemonic"`
}

// Validate validates CreateKeyResponse
func (m *CreateKeyResponse) Validate(formats strfmt.Registry) error {
	return nil
}

// PostDeriveKeyPayload derives a wallet key below a root key.
type PostDeriveKeyPayload struct {
	RootKeyID   *string           `json:"root_key_id"`
	ChainType   string            `json:"chain_type,omitempty"`
	Index       int64             `json:"index,omitempty"`
	Path        string            `json:"path,omitempty"`
	Description string            `json:"description,omitempty"`
	Tags        map[string]string `json:"tags,omitempty"`
}

// Validate validates PostDeriveKeyPayload
func (m *PostDeriveKeyPayload) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("root_key_id", "body", m.RootKeyID); err != nil {
		res = append(res, err)
	}
	if m.ChainType == "" && m.Path == "" {
		res = append(res, errors.Required("chain_type", "body", nil))
	}
	if err := validate.MinimumInt("index", "body", m.Index, 0, false); err != nil {
		res = append(res, err)
	}
	// Derivation indexes above 2^31-1 collide with the hardened flag.
	if err := validate.MaximumInt("index", "body", m.Index, math.MaxInt32, false); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// ContextValidate validates this payload based on context it is used
func (m *PostDeriveKeyPayload) ContextValidate(ctx context.Context, formats strfmt.Registry) error {
	return nil
}

// RootKeyResponse is the public view of a root key.
type RootKeyResponse struct {
	KeyID       *string           `json:"key_id"`
	Network     *string           `json:"network"`
	Fingerprint *string           `json:"fingerprint"`
	PublicKey   *string           `json:"public_key"`
	Status      *string           `json:"status"`
	Description string            `json:"description,omitempty"`
	Tags        map[string]string `json:"tags,omitempty"`
	CreatedAt   strfmt.DateTime   `json:"created_at"`
}

// Validate validates RootKeyResponse
func (m *RootKeyResponse) Validate(formats strfmt.Registry) error {
	return nil
}

// RootKeyListResponse pages root keys.
type RootKeyListResponse struct {
	Keys []*RootKeyResponse `json:"keys"`
}

// Validate validates RootKeyListResponse
func (m *RootKeyListResponse) Validate(formats strfmt.Registry) error {
	return nil
}

// WalletKeyResponse is the public view of a derived wallet key.
type WalletKeyResponse struct {
	WalletID    *string           `json:"wallet_id"`
	RootKeyID   *string           `json:"root_key_id"`
	ChainType   string            `json:"chain_type,omitempty"`
	Path        *string           `json:"path"`
	PublicKey   *string           `json:"public_key"`
	ChainCode   *string           `json:"chain_code"`
	Address     string            `json:"address,omitempty"`
	ExtendedKey *string           `json:"extended_key"`
	Status      *string           `json:"status"`
	Description string            `json:"description,omitempty"`
	Tags        map[string]string `json:"tags,omitempty"`
	CreatedAt   strfmt.DateTime   `json:"created_at"`
}

// Validate validates WalletKeyResponse
func (m *WalletKeyResponse) Validate(formats strfmt.Registry) error {
	return nil
}

// MarshalBinary interface implementation
func (m *WalletKeyResponse) MarshalBinary() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	return swag.WriteJSON(m)
}

// UnmarshalBinary interface implementation
func (m *WalletKeyResponse) UnmarshalBinary(b []byte) error {
	var res WalletKeyResponse
	if err := swag.ReadJSON(b, &res); err != nil {
		return err
	}
	*m = res
	return nil
}

// WalletKeyListResponse pages wallet keys.
type WalletKeyListResponse struct {
	Keys []*WalletKeyResponse `json:"keys"`
}

// Validate validates WalletKeyListResponse
func (m *WalletKeyListResponse) Validate(formats strfmt.Registry) error {
	return nil
}

// GetWalletKeysParams filters the wallet key listing.
type GetWalletKeysParams struct {
	RootKeyID string `query:"root_key_id"`
	ChainType string `query:"chain_type"`
	Limit     int64  `query:"limit"`
	Offset    int64  `query:"offset"`
}

// Validate validates GetWalletKeysParams
func (m *GetWalletKeysParams) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.MinimumInt("limit", "query", m.Limit, 0, false); err != nil {
		res = append(res, err)
	}
	if err := validate.MinimumInt("offset", "query", m.Offset, 0, false); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// PostInspectKeyPayload decodes a serialized extended key.
type PostInspectKeyPayload struct {
	ExtendedKey *string `json:"extended_key"`
}

// Validate validates PostInspectKeyPayload
func (m *PostInspectKeyPayload) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("extended_key", "body", m.ExtendedKey); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// ContextValidate validates this payload based on context it is used
func (m *PostInspectKeyPayload) ContextValidate(ctx context.Context, formats strfmt.Registry) error {
	return nil
}

// InspectKeyResponse reports the decoded attributes of an extended key.
type InspectKeyResponse struct {
	Network           *string `json:"network"`
	Private           *bool   `json:"private"`
	Depth             *int64  `json:"depth"`
	ParentFingerprint *string `json:"parent_fingerprint"`
	ChildIndex        *string `json:"child_index"`
	Fingerprint       *string `json:"fingerprint"`
	PublicKey         *string `json:"public_key"`
}

// Validate validates InspectKeyResponse
func (m *InspectKeyResponse) Validate(formats strfmt.Registry) error {
	return nil
}
