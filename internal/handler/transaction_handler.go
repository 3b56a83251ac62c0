package handler

import (
	"errors"
	"net/http"
	"time"

	"inventory-service/internal/middleware"
	"inventory-service/internal/service"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// TransactionHandler exposes the stock ledger over HTTP
type TransactionHandler struct {
	transactions *service.TransactionService
}

func NewTransactionHandler(transactions *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

// TransactionRequest defines the structure for stock movement requests
type TransactionRequest struct {
	Type     string `json:"type"`
	Quantity int    `json:"quantity"`
}

// Create handles POST /api/materials/:id/transactions
func (h *TransactionHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTransactionOperation("create")

	tenant, ok := middleware.GetTenant(c)
	if !ok {
		log.Error("Missing tenant in request context")
		return errorJSON(c, http.StatusBadRequest, "Failed to create transaction", "Tenant context is required")
	}

	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return errorJSON(c, http.StatusBadRequest, "Failed to create transaction", "Invalid request data")
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	transaction, err := h.transactions.Create(c.Request().Context(), tenant.ID, c.Param("id"), service.CreateTransactionInput{
		Type:     req.Type,
		Quantity: req.Quantity,
	})
	if err != nil {
		var stockErr *service.InsufficientStockError
		if errors.As(err, &stockErr) {
			prometheus.RecordInsufficientStock()
		}
		log.Error("Failed to create transaction",
			zap.String("tenant_id", tenant.ID),
			zap.String("material_id", c.Param("id")),
			zap.Error(err))
		return respondError(c, err, "Failed to create transaction")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Transaction created successfully",
		"data":    transaction,
	})
}

// ListByMaterial handles GET /api/materials/:id/transactions
func (h *TransactionHandler) ListByMaterial(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTransactionOperation("list")

	tenant, ok := middleware.GetTenant(c)
	if !ok {
		log.Error("Missing tenant in request context")
		return errorJSON(c, http.StatusBadRequest, "Failed to fetch transactions", "Tenant context is required")
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	transactions, err := h.transactions.ListByMaterial(c.Request().Context(), tenant.ID, c.Param("id"))
	if err != nil {
		log.Error("Failed to fetch transactions",
			zap.String("tenant_id", tenant.ID),
			zap.String("material_id", c.Param("id")),
			zap.Error(err))
		return respondError(c, err, "Failed to fetch transactions")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    transactions,
	})
}
