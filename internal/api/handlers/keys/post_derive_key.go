package keys

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/iqlusioninc/crates-sub000/internal/api"
	"github.com/iqlusioninc/crates-sub000/internal/api/httperrors"
	"github.com/iqlusioninc/crates-sub000/internal/hdwallet"
	"github.com/iqlusioninc/crates-sub000/internal/infra/key"
	"github.com/iqlusioninc/crates-sub000/internal/infra/storage"
	"github.com/iqlusioninc/crates-sub000/internal/types"
	"github.com/iqlusioninc/crates-sub000/internal/util"
)

// PostDeriveKeyRoute registers the route for wallet key derivation
func PostDeriveKeyRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Keys.POST("/derive", postDeriveKeyHandler(s))
}

func postDeriveKeyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostDeriveKeyPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		walletKey, err := s.KeyService.DeriveWalletKey(ctx, &key.DeriveWalletKeyRequest{
			RootKeyID:   swag.StringValue(body.RootKeyID),
			ChainType:   body.ChainType,
			Index:       uint32(body.Index),
			Path:        body.Path,
			Description: body.Description,
			Tags:        body.Tags,
		})
		if err != nil {
			switch {
			case storage.IsNotFound(err):
				return httperrors.ErrNotFoundRootKey
			case errors.Is(err, hdwallet.ErrInvalidDerivationPath), errors.Is(err, hdwallet.ErrInvalidChildIndex):
				return httperrors.ErrBadRequestPath
			case errors.Is(err, key.ErrUnsupportedChainType):
				return httperrors.NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, "Unsupported chain type")
			}
			log.Error().Err(err).Msg("Failed to derive wallet key")
			return httperrors.NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, "Failed to derive wallet key")
		}

		log.Info().Str("wallet_id", walletKey.WalletID).Str("path", walletKey.Path).Msg("Wallet key derived")

		return c.JSON(http.StatusCreated, walletKeyResponse(walletKey))
	}
}
