package middleware

import (
	"context"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/totegamma/foodgram/internal/domain"
	"github.com/totegamma/foodgram/internal/present/rest/presenter"
)

var tracer = otel.Tracer("auth")

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (domain.Requester, error)
}

type AuthMiddleware struct {
	auth Authenticator
}

func NewAuthMiddleware(auth Authenticator) *AuthMiddleware {
	return &AuthMiddleware{
		auth: auth,
	}
}

// IdentifyIdentity resolves the Authorization header into a requester.
// Requests with a missing, malformed, invalid or revoked token continue
// as anonymous.
func (s *AuthMiddleware) IdentifyIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, span := tracer.Start(c.Request().Context(), "Auth.Middleware.IdentifyIdentity")
		defer span.End()

		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader != "" {
			token, err := parseAuthorization(authHeader)
			if err != nil {
				span.RecordError(err)
			} else if requester, err := s.auth.Authenticate(ctx, token); err != nil {
				span.RecordError(errors.Wrap(err, "AuthMiddleware.IdentifyIdentity: s.auth.Authenticate failed"))
			} else {
				ctx = domain.WithRequester(ctx, requester)
				ctx = domain.WithToken(ctx, token)
				span.SetAttributes(attribute.Int64("RequesterId", requester.UserID))
			}
		}

		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !domain.RequesterFromContext(c.Request().Context()).Authenticated() {
			return presenter.Unauthorized(c)
		}
		return next(c)
	}
}

func parseAuthorization(header string) (string, error) {
	split := strings.Fields(header)
	if len(split) != 2 {
		return "", fmt.Errorf("invalid authentication header")
	}

	authType, token := split[0], split[1]
	if !strings.EqualFold(authType, "Token") && !strings.EqualFold(authType, "Bearer") {
		return "", fmt.Errorf("only Token and Bearer are acceptable")
	}
	return token, nil
}
