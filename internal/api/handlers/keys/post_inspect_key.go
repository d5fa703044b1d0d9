package keys

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"

	"github.com/iqlusioninc/crates-sub000/internal/api"
	"github.com/iqlusioninc/crates-sub000/internal/api/httperrors"
	"github.com/iqlusioninc/crates-sub000/internal/infra/key"
	"github.com/iqlusioninc/crates-sub000/internal/types"
	"github.com/iqlusioninc/crates-sub000/internal/util"
)

func PostInspectKeyRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Keys.POST("/inspect", postInspectKeyHandler(s))
}

func postInspectKeyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostInspectKeyPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		result, err := s.KeyService.InspectExtendedKey(ctx, &key.InspectExtendedKeyRequest{
			ExtendedKey: swag.StringValue(body.ExtendedKey),
		})
		if err != nil {
			log.Debug().Err(err).Msg("Failed to decode extended key")
			return httperrors.ErrBadRequestKeyInput
		}

		response := &types.InspectKeyResponse{
			Network:           swag.String(result.Network),
			Private:           swag.Bool(result.Private),
			Depth:             swag.Int64(int64(result.Depth)),
			ParentFingerprint: swag.String(result.ParentFingerprint),
			ChildIndex:        swag.String(result.ChildIndex),
			Fingerprint:       swag.String(result.Fingerprint),
			PublicKey:         swag.String(result.PublicKey),
		}

		return c.JSON(http.StatusOK, response)
	}
}
