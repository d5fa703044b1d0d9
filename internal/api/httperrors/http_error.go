// Package httperrors carries structured HTTP errors through echo to
// the error handler, which renders them as PublicHTTPError payloads.
package httperrors

import (
	"fmt"
	"net/http"

	"github.com/go-openapi/swag"

	"github.com/iqlusioninc/crates-sub000/internal/types"
)

// HTTPError wraps the public payload so it can travel as an error value.
type HTTPError struct {
	types.PublicHTTPError
	Internal       error
	AdditionalData map[string]interface{}
}

// NewHTTPError builds an HTTPError with the given status, type and title.
func NewHTTPError(code int, errorType string, title string) *HTTPError {
	return &HTTPError{
		PublicHTTPError: types.PublicHTTPError{
			Code:  swag.Int64(int64(code)),
			Type:  swag.String(errorType),
			Title: swag.String(title),
		},
	}
}

// NewHTTPErrorWithDetail builds an HTTPError carrying extra detail text.
func NewHTTPErrorWithDetail(code int, errorType string, title string, detail string) *HTTPError {
	e := NewHTTPError(code, errorType, title)
	e.Detail = detail
	return e
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTPError %d (%s): %s", swag.Int64Value(e.Code), swag.StringValue(e.Type), swag.StringValue(e.Title))
}

// HTTPValidationError extends HTTPError with field level failures.
type HTTPValidationError struct {
	types.PublicHTTPValidationError
	Internal       error
	AdditionalData map[string]interface{}
}

// NewHTTPValidationError builds an HTTPValidationError wrapping the
// go-openapi validation result.
func NewHTTPValidationError(code int, errorType string, title string, validationErr error) *HTTPValidationError {
	e := &HTTPValidationError{
		PublicHTTPValidationError: types.PublicHTTPValidationError{
			PublicHTTPError: types.PublicHTTPError{
				Code:  swag.Int64(int64(code)),
				Type:  swag.String(errorType),
				Title: swag.String(title),
			},
		},
		Internal: validationErr,
	}
	if validationErr != nil {
		e.Detail = validationErr.Error()
	}
	return e
}

func (e *HTTPValidationError) Error() string {
	return fmt.Sprintf("HTTPValidationError %d (%s): %s", swag.Int64Value(e.Code), swag.StringValue(e.Type), swag.StringValue(e.Title))
}

var (
	ErrNotFoundRootKey    = NewHTTPError(http.StatusNotFound, types.PublicHTTPErrorTypeRootKeyNotFound, "Root key does not exist.")
	ErrNotFoundWalletKey  = NewHTTPError(http.StatusNotFound, types.PublicHTTPErrorTypeWalletKeyNotFound, "Wallet key does not exist.")
	ErrBadRequestPath     = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeInvalidPath, "Derivation path is malformed.")
	ErrBadRequestKeyInput = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeInvalidKeyString, "Extended key string is malformed.")
)
