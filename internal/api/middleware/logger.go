// Package middleware provides the echo middleware of the service.
package middleware

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LoggerConfig controls what the request logger emits.
type LoggerConfig struct {
	Level             zerolog.Level
	LogRequestBody    bool
	LogRequestHeader  bool
	LogResponseBody   bool
	LogResponseHeader bool
}

// Logger attaches a request-scoped zerolog logger to the request
// context and emits one entry per completed request.
func Logger() echo.MiddlewareFunc {
	return LoggerWithConfig(LoggerConfig{Level: zerolog.DebugLevel})
}

// LoggerWithConfig is Logger with explicit configuration.
func LoggerWithConfig(config LoggerConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			id := req.Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = c.Response().Header().Get(echo.HeaderXRequestID)
			}

			l := log.With().
				Str("id", id).
				Str("method", req.Method).
				Str("uri", req.RequestURI).
				Logger()

			if config.LogRequestHeader {
				l.UpdateContext(func(zc zerolog.Context) zerolog.Context {
					return zc.Interface("req_header", req.Header)
				})
			}

			if config.LogRequestBody && req.Body != nil {
				body, err := io.ReadAll(req.Body)
				if err != nil {
					return err
				}
				req.Body = io.NopCloser(bytes.NewReader(body))
				l.UpdateContext(func(zc zerolog.Context) zerolog.Context {
					return zc.Bytes("req_body", body)
				})
			}

			c.SetRequest(req.WithContext(l.WithContext(req.Context())))

			var resBody bytes.Buffer
			if config.LogResponseBody {
				c.Response().Writer = &teeResponseWriter{
					ResponseWriter: c.Response().Writer,
					tee:            io.MultiWriter(c.Response().Writer, &resBody),
				}
			}

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			res := c.Response()

			entry := l.WithLevel(config.Level).
				Int("status", res.Status).
				Int64("bytes_out", res.Size).
				Dur("duration_ms", time.Since(start))

			if config.LogResponseHeader {
				entry = entry.Interface("res_header", res.Header())
			}
			if config.LogResponseBody {
				entry = entry.Bytes("res_body", resBody.Bytes())
			}

			entry.Msg("Request completed")

			return err
		}
	}
}

// teeResponseWriter copies everything written to the response into a
// buffer so the logger can emit the body after the handler ran.
type teeResponseWriter struct {
	http.ResponseWriter
	tee io.Writer
}

func (w *teeResponseWriter) Write(p []byte) (int, error) {
	return w.tee.Write(p)
}

// RequestID provides echo's request ID middleware under our defaults.
func RequestID() echo.MiddlewareFunc {
	return echoMiddleware.RequestID()
}
