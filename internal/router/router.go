package router // package router defines how HTTP routes are registered for the API

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/inventory-service/internal/auth"
	"github.com/iliyamo/inventory-service/internal/handler"
	"github.com/iliyamo/inventory-service/internal/metrics"
	"github.com/iliyamo/inventory-service/internal/middleware"
	"github.com/iliyamo/inventory-service/internal/service"
)

// Deps are the shared objects every route needs.
type Deps struct {
	DB         *sql.DB
	Tokens     *auth.TokenValidator
	Metrics    *metrics.Metrics
	Gatherer   prometheus.Gatherer
	Events     service.EventPublisher
	Log        *logrus.Logger
	BcryptCost int
}

// New builds the Echo instance with the global middleware stack and every
// route registered.
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.ErrorHandler(d.Log)

	// outermost first: the request id must exist before the logger runs,
	// and Recover sits innermost so a panic becomes an ordinary error
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(middleware.Metrics(d.Metrics))
	e.Use(echomw.Recover())

	RegisterRoutes(e, d.DB, d.Metrics, d.Gatherer)
	RegisterAuth(e, handler.NewAuthHandler(d.Tokens, d.BcryptCost, d.Events, d.Metrics, d.Log), d.Tokens, d.DB, d.Metrics)
	RegisterInventory(e, handler.NewInventoryHandler(d.Metrics), d.Tokens, d.DB, d.Metrics)
	return e
}

// RegisterRoutes registers routes that do not require authentication:
// the health check and the Prometheus scrape endpoint.
func RegisterRoutes(e *echo.Echo, db *sql.DB, m *metrics.Metrics, g prometheus.Gatherer) {
	e.GET("/healthz", handler.Health(db, m))
	e.GET("/metrics", echo.WrapHandler(metrics.Handler(g)))
}

// RegisterAuth registers the /auth routes. Guards run in the order
// credential, role, session, field validation, so an unauthorized caller
// never reserves a connection and an invalid payload never reaches the
// handler.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, tokens *auth.TokenValidator, db *sql.DB, m *metrics.Metrics) {
	g := e.Group("/auth")
	g.POST("/login", a.Login, middleware.DBSession(db))
	g.POST("/register", a.Register,
		middleware.JWTAuth(tokens, m),
		middleware.RequireRole(auth.MasterOrAdmin, m),
		middleware.DBSession(db),
		middleware.ValidateCreateUserFields(),
	)
	g.GET("/me", a.Me,
		middleware.JWTAuth(tokens, m),
		middleware.DBSession(db),
	)
}

// RegisterInventory registers the barcode lookup for employees and masters.
func RegisterInventory(e *echo.Echo, h *handler.InventoryHandler, tokens *auth.TokenValidator, db *sql.DB, m *metrics.Metrics) {
	e.GET("/inventory/:barcode", h.GetByBarcode,
		middleware.JWTAuth(tokens, m),
		middleware.RequireRole(auth.EmployeeOrMaster, m),
		middleware.DBSession(db),
	)
}
