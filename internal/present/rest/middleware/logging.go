package middleware

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/otel/trace"

	"github.com/totegamma/foodgram/internal/domain"
	"github.com/totegamma/foodgram/internal/logger"
)

// RequestLogger writes one access log line per request.
func RequestLogger(log *logger.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			ctx := c.Request().Context()
			kv := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"remote_ip", v.RemoteIP,
				"request_id", v.RequestID,
				"user_id", domain.RequesterFromContext(ctx).UserID,
			}
			if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
				kv = append(kv, "trace_id", sc.TraceID().String())
			}
			switch {
			case v.Error != nil:
				log.Error("request failed", append(kv, "error", v.Error)...)
			case v.Status >= 500:
				log.Error("request", kv...)
			case v.Status >= 400:
				log.Warn("request", kv...)
			default:
				log.Info("request", kv...)
			}
			return nil
		},
	})
}
