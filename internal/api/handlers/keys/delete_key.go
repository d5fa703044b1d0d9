package keys

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iqlusioninc/crates-sub000/internal/api"
	"github.com/iqlusioninc/crates-sub000/internal/api/httperrors"
	"github.com/iqlusioninc/crates-sub000/internal/infra/storage"
	"github.com/iqlusioninc/crates-sub000/internal/types"
	"github.com/iqlusioninc/crates-sub000/internal/util"
)

func DeleteKeyRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Keys.DELETE("/:key_id", deleteKeyHandler(s))
}

func deleteKeyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		keyID := c.Param("key_id")
		if keyID == "" {
			return httperrors.NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, "key_id is required")
		}

		if err := s.KeyService.DeleteRootKey(ctx, keyID); err != nil {
			if storage.IsNotFound(err) {
				return httperrors.ErrNotFoundRootKey
			}
			log.Error().Err(err).Str("key_id", keyID).Msg("Failed to delete root key")
			return httperrors.NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, "Failed to delete root key")
		}

		log.Info().Str("key_id", keyID).Msg("Root key deleted")

		return c.NoContent(http.StatusNoContent)
	}
}
