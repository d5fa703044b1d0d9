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

func GetWalletKeysRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallets.GET("", getWalletKeysHandler(s))
}

func getWalletKeysHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var params types.GetWalletKeysParams
		if err := util.BindAndValidateQueryParams(c, &params); err != nil {
			return err
		}

		metas, err := s.KeyService.ListWalletKeys(ctx, &storage.WalletKeyFilter{
			RootKeyID: params.RootKeyID,
			ChainType: params.ChainType,
			Limit:     int(params.Limit),
			Offset:    int(params.Offset),
		})
		if err != nil {
			log.Error().Err(err).Msg("Failed to list wallet keys")
			return httperrors.NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, "Failed to list wallet keys")
		}

		response := &types.WalletKeyListResponse{
			Keys: make([]*types.WalletKeyResponse, 0, len(metas)),
		}
		for _, meta := range metas {
			response.Keys = append(response.Keys, walletKeyResponse(meta))
		}

		return c.JSON(http.StatusOK, response)
	}
}
