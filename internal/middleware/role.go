package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/inventory-service/internal/apperr"
	"github.com/iliyamo/inventory-service/internal/auth"
	"github.com/iliyamo/inventory-service/internal/metrics"
)

// RequireRole rejects the request with apperr.ErrUnauthorizedUser unless
// JWTAuth stored claims that satisfy p. It must be registered after
// JWTAuth.
func RequireRole(p auth.Policy, m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, _ := ClaimsFrom(c)
			if !p.Allows(claims) {
				m.AuthFailure(metrics.ReasonForbidden)
				return apperr.ErrUnauthorizedUser
			}
			return next(c)
		}
	}
}
