package middleware

// identity.go holds the context keys written by the guard chain and the
// accessors handlers use to read them back.

import (
	"database/sql"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/inventory-service/internal/utils"
)

const (
	claimsKey     = "claims"
	sessionKey    = "db_session"
	createUserKey = "create_user_input"
)

// ClaimsFrom returns the claims stored by JWTAuth.
func ClaimsFrom(c echo.Context) (*utils.Claims, bool) {
	claims, ok := c.Get(claimsKey).(*utils.Claims)
	return claims, ok && claims != nil
}

// SessionFrom returns the connection reserved by DBSession.
func SessionFrom(c echo.Context) (*sql.Conn, bool) {
	conn, ok := c.Get(sessionKey).(*sql.Conn)
	return conn, ok && conn != nil
}

// CreateUserInputFrom returns the payload parsed by ValidateCreateUserFields.
func CreateUserInputFrom(c echo.Context) (CreateUserInput, bool) {
	in, ok := c.Get(createUserKey).(CreateUserInput)
	return in, ok
}

// userID is the caller's subject for log fields, or "guest".
func userID(c echo.Context) string {
	if claims, ok := ClaimsFrom(c); ok && claims.Subject != "" {
		return claims.Subject
	}
	return "guest"
}
