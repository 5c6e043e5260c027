package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/inventory-service/internal/metrics"
	"github.com/iliyamo/inventory-service/internal/repository"
	"github.com/iliyamo/inventory-service/internal/service"
)

// InventoryHandler serves barcode lookups.
type InventoryHandler struct {
	Metrics *metrics.Metrics
}

func NewInventoryHandler(m *metrics.Metrics) *InventoryHandler {
	return &InventoryHandler{Metrics: m}
}

// GetByBarcode handles GET /inventory/:barcode.
func (h *InventoryHandler) GetByBarcode(c echo.Context) error {
	conn, err := session(c)
	if err != nil {
		return err
	}
	fetcher := service.NewInventoryFetcher(repository.NewInventoryRepo(conn), h.Metrics)

	inv, err := fetcher.FindByBarcode(c.Request().Context(), c.Param("barcode"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "success", "inventory": inv})
}
