// Package types holds the request and response payloads of the HTTP
// API, validated with the go-openapi toolchain.
package types

import (
	"context"

	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
)

// PublicHTTPErrorType discriminates machine-readable error classes in
// public error payloads.
const (
	PublicHTTPErrorTypeGeneric           string = "generic"
	PublicHTTPErrorTypeInvalidPath       string = "invalid_derivation_path"
	PublicHTTPErrorTypeInvalidKeyString  string = "invalid_extended_key"
	PublicHTTPErrorTypeRootKeyNotFound   string = "root_key_not_found"
	PublicHTTPErrorTypeWalletKeyNotFound string = "wallet_key_not_found"
)

// PublicHTTPError is the JSON shape of every error response.
type PublicHTTPError struct {
	// HTTP status code
	Code *int64 `json:"status"`
	// Machine-readable error class
	Type *string `json:"type"`
	// Human-readable title
	Title *string `json:"title"`
	// Optional extra detail
	Detail string `json:"detail,omitempty"`
}

// Validate validates this public HTTP error
func (m *PublicHTTPError) Validate(formats strfmt.Registry) error {
	var res []error

	if m.Code == nil {
		res = append(res, errors.Required("status", "body", m.Code))
	}
	if m.Type == nil {
		res = append(res, errors.Required("type", "body", m.Type))
	}
	if m.Title == nil {
		res = append(res, errors.Required("title", "body", m.Title))
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// ContextValidate validates this public HTTP error based on context it is used
func (m *PublicHTTPError) ContextValidate(ctx context.Context, formats strfmt.Registry) error {
	return nil
}

// MarshalBinary interface implementation
func (m *PublicHTTPError) MarshalBinary() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	return swag.WriteJSON(m)
}

// UnmarshalBinary interface implementation
func (m *PublicHTTPError) UnmarshalBinary(b []byte) error {
	var res PublicHTTPError
	if err := swag.ReadJSON(b, &res); err != nil {
		return err
	}
	*m = res
	return nil
}

// PublicHTTPValidationError extends PublicHTTPError with per-field
// validation failures.
type PublicHTTPValidationError struct {
	PublicHTTPError
	ValidationErrors []*PublicHTTPValidationErrorDetail `json:"validationErrors"`
}

// PublicHTTPValidationErrorDetail names one invalid field.
type PublicHTTPValidationErrorDetail struct {
	// Name of the invalid field
	Key *string `json:"key"`
	// Location of the field (body, query, path)
	In *string `json:"in"`
	// What went wrong
	Error *string `json:"error"`
}

// Validate validates this public HTTP validation error
func (m *PublicHTTPValidationError) Validate(formats strfmt.Registry) error {
	return m.PublicHTTPError.Validate(formats)
}
