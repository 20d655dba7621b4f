package rest

import (
	"strings"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/totegamma/foodgram/internal/logger"
	"github.com/totegamma/foodgram/internal/present/rest/middleware"
)

const mediaPrefix = "/media"

type ServerOptions struct {
	ServiceName string
	EnableTrace bool
	// MediaRoot is served under /media/ when set.
	MediaRoot string
}

// NewServer assembles the echo instance with the middleware chain and routes.
func NewServer(h *Handler, auth *middleware.AuthMiddleware, log *logger.Logger, opts ServerOptions) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Pre(echomw.AddTrailingSlashWithConfig(echomw.TrailingSlashConfig{
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, mediaPrefix+"/")
		},
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORS())
	if opts.EnableTrace {
		e.Use(otelecho.Middleware(opts.ServiceName))
	}
	e.Use(middleware.RequestLogger(log))
	e.Use(auth.IdentifyIdentity)

	if opts.MediaRoot != "" {
		e.Static(mediaPrefix, opts.MediaRoot)
	}
	h.RegisterRoutes(e)
	return e
}
