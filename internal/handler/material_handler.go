package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"inventory-service/internal/middleware"
	"inventory-service/internal/service"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// MaterialHandler exposes the material catalog over HTTP. Tenant and role
// context is resolved by middleware before any of these run.
type MaterialHandler struct {
	materials *service.MaterialService
}

func NewMaterialHandler(materials *service.MaterialService) *MaterialHandler {
	return &MaterialHandler{materials: materials}
}

// MaterialRequest defines the structure for material creation requests
type MaterialRequest struct {
	Name         string `json:"name"`
	Unit         string `json:"unit"`
	CurrentStock int    `json:"currentStock"`
}

// Create handles POST /api/materials (ADMIN only)
func (h *MaterialHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordMaterialOperation("create")

	tenant, ok := middleware.GetTenant(c)
	if !ok {
		log.Error("Missing tenant in request context")
		return errorJSON(c, http.StatusBadRequest, "Failed to create material", "Tenant context is required")
	}

	var req MaterialRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return errorJSON(c, http.StatusBadRequest, "Failed to create material", "Invalid request data")
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	material, err := h.materials.Create(c.Request().Context(), tenant.ID, tenant.Plan, service.CreateMaterialInput{
		Name:         req.Name,
		Unit:         req.Unit,
		CurrentStock: req.CurrentStock,
	})
	if err != nil {
		var quotaErr *service.QuotaExceededError
		if errors.As(err, &quotaErr) {
			prometheus.RecordQuotaExceeded()
		}
		log.Error("Failed to create material",
			zap.String("tenant_id", tenant.ID),
			zap.Error(err))
		return respondError(c, err, "Failed to create material")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Material created successfully",
		"data":    material,
	})
}

// List handles GET /api/materials?name=xyz&unit=kg&page=1&limit=20
func (h *MaterialHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordMaterialOperation("list")

	tenant, ok := middleware.GetTenant(c)
	if !ok {
		log.Error("Missing tenant in request context")
		return errorJSON(c, http.StatusBadRequest, "Failed to fetch materials", "Tenant context is required")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	defer prometheus.TrackDBOperation("query")(time.Now())

	result, err := h.materials.List(c.Request().Context(), tenant.ID, service.MaterialFilter{
		Name:  c.QueryParam("name"),
		Unit:  c.QueryParam("unit"),
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		log.Error("Failed to fetch materials",
			zap.String("tenant_id", tenant.ID),
			zap.Error(err))
		return respondError(c, err, "Failed to fetch materials")
	}

	log.Info("Materials retrieved successfully",
		zap.String("tenant_id", tenant.ID),
		zap.Int("count", len(result.Data)),
		zap.Int64("total", result.Pagination.Total))

	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"data":       result.Data,
		"pagination": result.Pagination,
	})
}

// GetByID handles GET /api/materials/:id
func (h *MaterialHandler) GetByID(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordMaterialOperation("get")

	tenant, ok := middleware.GetTenant(c)
	if !ok {
		log.Error("Missing tenant in request context")
		return errorJSON(c, http.StatusBadRequest, "Failed to fetch material", "Tenant context is required")
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	material, err := h.materials.GetByID(c.Request().Context(), tenant.ID, c.Param("id"))
	if err != nil {
		log.Warn("Material lookup failed",
			zap.String("tenant_id", tenant.ID),
			zap.String("material_id", c.Param("id")),
			zap.Error(err))
		return respondError(c, err, "Material not found")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    material,
	})
}

// Delete handles DELETE /api/materials/:id (ADMIN only)
func (h *MaterialHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordMaterialOperation("delete")

	tenant, ok := middleware.GetTenant(c)
	if !ok {
		log.Error("Missing tenant in request context")
		return errorJSON(c, http.StatusBadRequest, "Failed to delete material", "Tenant context is required")
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	material, err := h.materials.Delete(c.Request().Context(), tenant.ID, c.Param("id"))
	if err != nil {
		log.Warn("Material deletion failed",
			zap.String("tenant_id", tenant.ID),
			zap.String("material_id", c.Param("id")),
			zap.Error(err))
		return respondError(c, err, "Failed to delete material")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Material deleted successfully",
		"data":    material,
	})
}
