// Package keys exposes root key lifecycle and derivation endpoints.
package keys

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/iqlusioninc/crates-sub000/internal/api"
	"github.com/iqlusioninc/crates-sub000/internal/api/httperrors"
	"github.com/iqlusioninc/crates-sub000/internal/infra/key"
	"github.com/iqlusioninc/crates-sub000/internal/infra/storage"
	"github.com/iqlusioninc/crates-sub000/internal/types"
	"github.com/iqlusioninc/crates-sub000/internal/util"
)

// PostCreateKeyRoute registers the route for root key creation
func PostCreateKeyRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Keys.POST("", postCreateKeyHandler(s))
}

func postCreateKeyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostCreateKeyPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		result, err := s.KeyService.CreateRootKey(ctx, &key.CreateRootKeyRequest{
			KeyID:       body.KeyID,
			Mnemonic:    body.Mnemonic,
			Passphrase:  body.Passphrase,
			Description: body.Description,
			Tags:        body.Tags,
		})
		if err != nil {
			if errors.Is(err, key.ErrInvalidMnemonic) {
				return httperrors.NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, "Mnemonic failed checksum validation")
			}
			if errors.Is(err, storage.ErrInvalidKeyID) {
				return httperrors.NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, "Key ID must be an alphanumeric token")
			}
			log.Error().Err(err).Msg("Failed to create root key")
			return httperrors.NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, "Failed to create root key")
		}

		log.Info().Str("key_id", result.KeyID).Msg("Root key created")

		response := &types.CreateKeyResponse{
			KeyID:       swag.String(result.KeyID),
			Fingerprint: swag.String(result.Fingerprint),
			PublicKey:   swag.String(result.PublicKey),
			Mnemonic:    swag.String(result.Mnemonic),
		}

		return c.JSON(http.StatusCreated, response)
	}
}
