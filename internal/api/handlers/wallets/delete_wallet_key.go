package wallets

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iqlusioninc/crates-sub000/internal/api"
	"github.com/iqlusioninc/crates-sub000/internal/api/httperrors"
	"github.com/iqlusioninc/crates-sub000/internal/infra/storage"
	"github.com/iqlusioninc/crates-sub000/internal/types"
	"github.com/iqlusioninc/crates-sub000/internal/util"
)

func DeleteWalletKeyRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallets.DELETE("/:wallet_id", deleteWalletKeyHandler(s))
}

func deleteWalletKeyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		walletID := c.Param("wallet_id")
		if walletID == "" {
			return httperrors.NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, "wallet_id is required")
		}

		if err := s.KeyService.DeleteWalletKey(ctx, walletID); err != nil {
			if storage.IsNotFound(err) {
				return httperrors.ErrNotFoundWalletKey
			}
			log.Error().Err(err).Str("wallet_id", walletID).Msg("Failed to delete wallet key")
			return httperrors.NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, "Failed to delete wallet key")
		}

		log.Info().Str("wallet_id", walletID).Msg("Wallet key deleted")

		return c.NoContent(http.StatusNoContent)
	}
}
