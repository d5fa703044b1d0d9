package router

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"

	"github.com/iqlusioninc/crates-sub000/internal/api"
	"github.com/iqlusioninc/crates-sub000/internal/api/httperrors"
	"github.com/iqlusioninc/crates-sub000/internal/types"
	"github.com/iqlusioninc/crates-sub000/internal/util"
)

// HTTPErrorHandler renders every error as a PublicHTTPError payload.
// Internal detail is stripped unless the config exposes it.
func HTTPErrorHandler(s *api.Server) echo.HTTPErrorHandler {
	hideInternals := s.Config.Echo.HideInternalServerErrorDetails
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var payload *types.PublicHTTPError

		switch e := err.(type) {
		case *httperrors.HTTPError:
			payload = &e.PublicHTTPError
		case *httperrors.HTTPValidationError:
			code := e.Code
			validationPayload := e.PublicHTTPValidationError
			validationPayload.Code = code
			if writeErr := c.JSON(int(swag.Int64Value(code)), validationPayload); writeErr != nil {
				util.LogFromEchoContext(c).Error().Err(writeErr).Msg("Failed to write validation error response")
			}
			return
		case *echo.HTTPError:
			code := int64(e.Code)
			title := http.StatusText(e.Code)
			if msg, ok := e.Message.(string); ok && !hideInternals {
				title = msg
			}
			payload = &types.PublicHTTPError{
				Code:  swag.Int64(code),
				Type:  swag.String(types.PublicHTTPErrorTypeGeneric),
				Title: swag.String(title),
			}
		default:
			title := http.StatusText(http.StatusInternalServerError)
			if !hideInternals {
				title = err.Error()
			}
			payload = &types.PublicHTTPError{
				Code:  swag.Int64(http.StatusInternalServerError),
				Type:  swag.String(types.PublicHTTPErrorTypeGeneric),
				Title: swag.String(title),
			}
		}

		if writeErr := c.JSON(int(swag.Int64Value(payload.Code)), payload); writeErr != nil {
			util.LogFromEchoContext(c).Error().Err(writeErr).Msg("Failed to write error response")
		}
	}
}
