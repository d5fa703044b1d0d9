package keys

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iqlusioninc/crates-sub000/internal/api"
	"github.com/iqlusioninc/crates-sub000/internal/api/httperrors"
	"github.com/iqlusioninc/crates-sub000/internal/types"
	"github.com/iqlusioninc/crates-sub000/internal/util"
)

func GetKeysRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Keys.GET("", getKeysHandler(s))
}

func getKeysHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		limit := intQueryParam(c, "limit", 20)
		offset := intQueryParam(c, "offset", 0)

		metas, err := s.KeyService.ListRootKeys(ctx, limit, offset)
		if err != nil {
			log.Error().Err(err).Msg("Failed to list root keys")
			return httperrors.NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, "Failed to list root keys")
		}

		response := &types.RootKeyListResponse{
			Keys: make([]*types.RootKeyResponse, 0, len(metas)),
		}
		for _, meta := range metas {
			response.Keys = append(response.Keys, rootKeyResponse(meta))
		}

		return c.JSON(http.StatusOK, response)
	}
}

func intQueryParam(c echo.Context, name string, defaultVal int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < 0 {
		return defaultVal
	}
	return val
}
