package handler

import (
	"net/http"
	"time"

	"inventory-service/internal/middleware"
	"inventory-service/internal/service"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AnalyticsHandler exposes the PRO-plan analytics rollups over HTTP
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
}

func NewAnalyticsHandler(analytics *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// Summary handles GET /api/analytics/summary
func (h *AnalyticsHandler) Summary(c echo.Context) error {
	log := logger.FromContext(c)

	tenant, ok := middleware.GetTenant(c)
	if !ok {
		log.Error("Missing tenant in request context")
		return errorJSON(c, http.StatusBadRequest, "Failed to fetch analytics", "Tenant context is required")
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	summary, err := h.analytics.Summary(c.Request().Context(), tenant.ID, tenant.Plan)
	if err != nil {
		log.Warn("Analytics summary failed",
			zap.String("tenant_id", tenant.ID),
			zap.Error(err))
		return respondError(c, err, "Failed to fetch analytics")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    summary,
	})
}
