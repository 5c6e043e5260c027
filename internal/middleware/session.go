package middleware

import (
	"database/sql"
	"fmt"

	"github.com/labstack/echo/v4"
)

// DBSession reserves one pooled connection for the lifetime of the request
// and stores it in the context. The connection goes back to the pool when
// the handler returns, whether or not it failed.
func DBSession(db *sql.DB) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			conn, err := db.Conn(c.Request().Context())
			if err != nil {
				return fmt.Errorf("acquire db session: %w", err)
			}
			defer func() { _ = conn.Close() }()

			c.Set(sessionKey, conn)
			return next(c)
		}
	}
}
