package service

import (
	"context"
	"fmt"

	"inventory-service/internal/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AnalyticsSummary holds the tenant-wide rollup figures. These are
// advisory reads, not invariant-bearing state, so the four numbers are
// computed independently rather than in one snapshot.
type AnalyticsSummary struct {
	MaterialsCount int64 `json:"materials_count"`
	TotalIn        int64 `json:"total_in"`
	TotalOut       int64 `json:"total_out"`
	TotalStock     int64 `json:"total_stock"`
}

// AnalyticsService computes read-only rollups, gated to PRO tenants
type AnalyticsService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewAnalyticsService(db *gorm.DB, log *zap.Logger) *AnalyticsService {
	return &AnalyticsService{db: db, log: log}
}

// Summary returns material count, total IN, total OUT and total stock for
// the tenant. Empty sums report as 0.
func (s *AnalyticsService) Summary(ctx context.Context, tenantID, plan string) (*AnalyticsSummary, error) {
	if plan != model.PlanPro {
		s.log.Warn("Analytics access denied",
			zap.String("tenant_id", tenantID),
			zap.String("plan", plan))
		return nil, &PlanRestrictedError{Feature: "analytics"}
	}

	summary := &AnalyticsSummary{}
	db := s.db.WithContext(ctx)

	if err := db.Model(&model.Material{}).
		Where("tenant_id = ?", tenantID).
		Count(&summary.MaterialsCount).Error; err != nil {
		return nil, fmt.Errorf("count materials: %w", err)
	}

	if err := db.Model(&model.Transaction{}).
		Where("tenant_id = ? AND type = ?", tenantID, model.TransactionIn).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&summary.TotalIn).Error; err != nil {
		return nil, fmt.Errorf("sum IN transactions: %w", err)
	}

	if err := db.Model(&model.Transaction{}).
		Where("tenant_id = ? AND type = ?", tenantID, model.TransactionOut).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&summary.TotalOut).Error; err != nil {
		return nil, fmt.Errorf("sum OUT transactions: %w", err)
	}

	if err := db.Model(&model.Material{}).
		Where("tenant_id = ?", tenantID).
		Select("COALESCE(SUM(current_stock), 0)").
		Scan(&summary.TotalStock).Error; err != nil {
		return nil, fmt.Errorf("sum current stock: %w", err)
	}

	return summary, nil
}
