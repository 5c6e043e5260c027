package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/inventory-service/internal/metrics"
)

// Health is a health-check endpoint used by load balancers and monitoring.
// It pings the database, refreshes the pool gauges and answers "ok" with
// 200, or 503 when the database is unreachable.
func Health(db *sql.DB, m *metrics.Metrics) echo.HandlerFunc {
	return func(c echo.Context) error {
		m.RecordDBStats(db.Stats())

		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return c.String(http.StatusServiceUnavailable, "unavailable")
		}
		return c.String(http.StatusOK, "ok")
	}
}
