package handler

import (
	"net/http"

	"inventory-service/internal/service"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// TenantHandler exposes the tenant directory over HTTP
type TenantHandler struct {
	tenants *service.TenantService
}

func NewTenantHandler(tenants *service.TenantService) *TenantHandler {
	return &TenantHandler{tenants: tenants}
}

// TenantRequest defines the structure for tenant creation requests
type TenantRequest struct {
	Name string `json:"name"`
	Plan string `json:"plan"`
}

// Create handles POST /tenants
func (h *TenantHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTenantOperation("create")

	var req TenantRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return errorJSON(c, http.StatusBadRequest, "Failed to create tenant", "Invalid request data")
	}

	tenant, err := h.tenants.Create(c.Request().Context(), req.Name, req.Plan)
	if err != nil {
		log.Error("Failed to create tenant", zap.Error(err))
		return respondError(c, err, "Failed to create tenant")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Tenant created successfully",
		"data":    tenant,
	})
}

// List handles GET /tenants
func (h *TenantHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTenantOperation("list")

	tenants, err := h.tenants.List(c.Request().Context())
	if err != nil {
		log.Error("Failed to fetch tenants", zap.Error(err))
		return respondError(c, err, "Failed to fetch tenants")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    tenants,
	})
}
