package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/inventory-service/internal/apperr"
)

const internalErrorMessage = "Internal server error"

// Classify maps an error returned by middleware or handlers to the HTTP
// status and the message sent to the client.
func Classify(err error) (int, string) {
	var (
		fieldErr   *apperr.InvalidUserFieldError
		dupErr     *apperr.DuplicateNameError
		barcodeErr *apperr.UnregisteredBarcodeError
		httpErr    *echo.HTTPError
	)
	switch {
	case errors.As(err, &fieldErr):
		return http.StatusBadRequest, fieldErr.Error()
	case errors.As(err, &dupErr):
		return http.StatusBadRequest, dupErr.Error()
	case errors.As(err, &barcodeErr):
		return http.StatusNotFound, barcodeErr.Error()
	case errors.Is(err, apperr.ErrUnregisteredBarcode):
		return http.StatusNotFound, apperr.ErrUnregisteredBarcode.Error()
	case errors.Is(err, apperr.ErrInvalidCredentials):
		return http.StatusBadRequest, apperr.ErrInvalidCredentials.Error()
	case errors.Is(err, apperr.ErrUnknownRole):
		return http.StatusBadRequest, apperr.ErrUnknownRole.Error()
	case errors.Is(err, apperr.ErrInvalidToken):
		// the wrapped parser detail stays server-side
		return http.StatusUnauthorized, apperr.ErrInvalidToken.Error()
	case errors.Is(err, apperr.ErrUnauthorizedUser):
		return http.StatusUnauthorized, apperr.ErrUnauthorizedUser.Error()
	case errors.As(err, &httpErr):
		msg := http.StatusText(httpErr.Code)
		if s, ok := httpErr.Message.(string); ok && s != "" {
			msg = s
		} else if httpErr.Message != nil {
			msg = fmt.Sprint(httpErr.Message)
		}
		return httpErr.Code, msg
	default:
		return http.StatusInternalServerError, internalErrorMessage
	}
}

// ErrorHandler is the Echo HTTPErrorHandler. It writes
// {"status":"error","message":...} and logs every 5xx with its cause.
func ErrorHandler(log *logrus.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status, msg := Classify(err)
		if status >= http.StatusInternalServerError {
			log.WithError(err).WithFields(logrus.Fields{
				"method": c.Request().Method,
				"path":   c.Request().URL.Path,
			}).Error("unhandled error")
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, echo.Map{"status": "error", "message": msg})
		}
		if werr != nil {
			log.WithError(werr).Warn("write error response")
		}
	}
}
