package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iqlusioninc/crates-sub000/internal/api/middleware"
)

func TestLoggerBodyCapturePassesBodiesThrough(t *testing.T) {
	e := echo.New()
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Level:           zerolog.DebugLevel,
		LogRequestBody:  true,
		LogResponseBody: true,
	}))

	// The handler must still see the full request body after the
	// middleware consumed it for logging.
	var seenBody string
	e.POST("/echo", func(c echo.Context) error {
		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return err
		}
		seenBody = string(body)
		return c.String(http.StatusOK, "pong:"+seenBody)
	})

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"ping":true}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	res := httptest.NewRecorder()
	e.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, `{"ping":true}`, seenBody)
	assert.Equal(t, `pong:{"ping":true}`, res.Body.String())
}
