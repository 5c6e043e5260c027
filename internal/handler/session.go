package handler

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/inventory-service/internal/middleware"
	"github.com/iliyamo/inventory-service/internal/repository"
)

var errNoSession = errors.New("no db session on request")

// session returns the connection DBSession reserved for this request.
func session(c echo.Context) (repository.Queryer, error) {
	conn, ok := middleware.SessionFrom(c)
	if !ok {
		return nil, errNoSession
	}
	return conn, nil
}
