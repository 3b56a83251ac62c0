package middleware

import (
	"errors"
	"net/http"

	"inventory-service/internal/model"
	"inventory-service/internal/service"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// TenantMiddleware resolves the x-tenant-id header against the tenant
// directory and stores the tenant (id and plan) in the request context.
// Every scoped route sits behind this middleware.
func TenantMiddleware(tenants *service.TenantService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			tenantID := c.Request().Header.Get("x-tenant-id")
			if tenantID == "" {
				log.Warn("Missing x-tenant-id header")
				prometheus.TenantContextMissingCounter.Inc()
				return c.JSON(http.StatusBadRequest, echo.Map{
					"success": false,
					"error":   "Tenant ID is required",
					"message": "Please provide x-tenant-id header",
				})
			}

			tenant, err := tenants.GetByID(c.Request().Context(), tenantID)
			if errors.Is(err, service.ErrTenantNotFound) {
				log.Warn("Unknown tenant", zap.String("tenant_id", tenantID))
				return c.JSON(http.StatusNotFound, echo.Map{
					"success": false,
					"error":   "Tenant not found",
					"message": "Invalid tenant ID",
				})
			}
			if err != nil {
				log.Error("Failed to resolve tenant", zap.Error(err))
				return c.JSON(http.StatusInternalServerError, echo.Map{
					"success": false,
					"error":   "Server error",
					"message": "Failed to resolve tenant",
				})
			}

			c.Set("tenant", tenant)
			return next(c)
		}
	}
}

// GetTenant retrieves the resolved tenant from the request context
func GetTenant(c echo.Context) (*model.Tenant, bool) {
	tenant, ok := c.Get("tenant").(*model.Tenant)
	return tenant, ok
}
