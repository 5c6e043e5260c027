package middleware // middleware holds the request guard chain and request logging

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/inventory-service/internal/apperr"
	"github.com/iliyamo/inventory-service/internal/auth"
	"github.com/iliyamo/inventory-service/internal/metrics"
)

const bearerPrefix = "Bearer "

// JWTAuth returns an Echo middleware that requires an
// "Authorization: Bearer <token>" header, decodes the token with v and
// stores the claims in the context for RequireRole and the handlers.
//
// A missing or non-Bearer header fails with apperr.ErrUnauthorizedUser
// before any decoding; a token that does not verify fails with
// apperr.ErrInvalidToken. Either way the next handler never runs.
func JWTAuth(v *auth.TokenValidator, m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, bearerPrefix) {
				m.AuthFailure(metrics.ReasonMissingToken)
				return apperr.ErrUnauthorizedUser
			}
			raw := strings.TrimPrefix(header, bearerPrefix)

			claims, err := v.Decode(raw)
			if err != nil {
				m.AuthFailure(metrics.ReasonInvalidToken)
				return err
			}
			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}
