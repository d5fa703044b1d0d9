// Package wallets exposes read and delete endpoints for derived wallet
// keys.
package wallets

import (
	"net/http"

	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"

	"github.com/iqlusioninc/crates-sub000/internal/api"
	"github.com/iqlusioninc/crates-sub000/internal/api/httperrors"
	"github.com/iqlusioninc/crates-sub000/internal/infra/storage"
	"github.com/iqlusioninc/crates-sub000/internal/types"
	"github.com/iqlusioninc/crates-sub000/internal/util"
)

func GetWalletKeyRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallets.GET("/:wallet_id", getWalletKeyHandler(s))
}

func getWalletKeyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		walletID := c.Param("wallet_id")
		if walletID == "" {
			return httperrors.NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, "wallet_id is required")
		}

		meta, err := s.KeyService.GetWalletKey(ctx, walletID)
		if err != nil {
			if storage.IsNotFound(err) {
				return httperrors.ErrNotFoundWalletKey
			}
			log.Error().Err(err).Str("wallet_id", walletID).Msg("Failed to get wallet key")
			return httperrors.NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, "Failed to get wallet key")
		}

		return c.JSON(http.StatusOK, walletKeyResponse(meta))
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
