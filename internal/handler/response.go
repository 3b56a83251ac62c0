package handler

import (
	"errors"
	"net/http"

	"inventory-service/internal/service"

	"github.com/labstack/echo/v4"
)

// respondError translates a core error into the HTTP envelope. The label
// is the short error heading; the detail comes from the error itself,
// except for unexpected failures where internals must not leak.
func respondError(c echo.Context, err error, label string) error {
	var validationErr *service.ValidationError
	var quotaErr *service.QuotaExceededError
	var stockErr *service.InsufficientStockError
	var planErr *service.PlanRestrictedError

	switch {
	case errors.As(err, &validationErr):
		return errorJSON(c, http.StatusBadRequest, label, err.Error())
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrTenantNotFound):
		return errorJSON(c, http.StatusNotFound, label, err.Error())
	case errors.As(err, &quotaErr):
		return errorJSON(c, http.StatusForbidden, label, err.Error())
	case errors.As(err, &stockErr):
		return errorJSON(c, http.StatusBadRequest, label, err.Error())
	case errors.As(err, &planErr):
		return errorJSON(c, http.StatusForbidden, "Access denied", err.Error())
	case errors.Is(err, service.ErrStorageConflict):
		return errorJSON(c, http.StatusServiceUnavailable, label, err.Error())
	default:
		return errorJSON(c, http.StatusInternalServerError, label, "An unexpected error occurred")
	}
}

func errorJSON(c echo.Context, status int, label, message string) error {
	return c.JSON(status, echo.Map{
		"success": false,
		"error":   label,
		"message": message,
	})
}
