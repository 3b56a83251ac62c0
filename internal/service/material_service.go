package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"inventory-service/internal/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	// FreePlanMaterialLimit is the maximum number of active materials a
	// FREE tenant may hold at once.
	FreePlanMaterialLimit = 5

	defaultPageLimit = 20
	maxPageLimit     = 100
)

// CreateMaterialInput carries the fields for material creation
type CreateMaterialInput struct {
	Name         string
	Unit         string
	CurrentStock int
}

// MaterialFilter narrows and pages a material listing. Name matches as a
// case-insensitive substring, Unit matches exactly.
type MaterialFilter struct {
	Name  string
	Unit  string
	Page  int
	Limit int
}

// Pagination describes one page of a filtered listing. Total is the
// filtered count, not the page count.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

// MaterialPage is one page of materials plus its pagination block
type MaterialPage struct {
	Data       []model.Material `json:"data"`
	Pagination Pagination       `json:"pagination"`
}

// MaterialService manages the material catalog for all tenants. Creation
// enforces the per-plan quota inside a single storage transaction so that
// concurrent requests cannot overshoot the limit.
type MaterialService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewMaterialService(db *gorm.DB, log *zap.Logger) *MaterialService {
	return &MaterialService{db: db, log: log}
}

// Create validates the input and inserts the material, enforcing the FREE
// plan quota atomically. The tenant row is locked for the duration of the
// count-then-insert so two concurrent creates for the same FREE tenant
// serialize instead of both observing count=4. Creates for other tenants
// lock different rows and proceed in parallel.
func (s *MaterialService) Create(ctx context.Context, tenantID, plan string, input CreateMaterialInput) (*model.Material, error) {
	name := strings.TrimSpace(input.Name)
	unit := strings.TrimSpace(input.Unit)

	if name == "" {
		return nil, validationErrorf("material name is required")
	}
	if len(name) > 200 {
		return nil, validationErrorf("material name must not exceed 200 characters")
	}
	if unit == "" {
		return nil, validationErrorf("material unit is required")
	}
	if len(unit) > 30 {
		return nil, validationErrorf("material unit must not exceed 30 characters")
	}
	if input.CurrentStock < 0 {
		return nil, validationErrorf("stock cannot be negative")
	}

	var material model.Material
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tenant model.Tenant
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", tenantID).
			First(&tenant).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTenantNotFound
		}
		if err != nil {
			return fmt.Errorf("lock tenant: %w", err)
		}

		var count int64
		if err := tx.Model(&model.Material{}).
			Where("tenant_id = ?", tenantID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("count materials: %w", err)
		}

		if plan == model.PlanFree && count >= FreePlanMaterialLimit {
			return &QuotaExceededError{Limit: FreePlanMaterialLimit, Count: count}
		}

		material = model.Material{
			TenantID:     tenantID,
			Name:         name,
			Unit:         unit,
			CurrentStock: input.CurrentStock,
		}
		if err := tx.Create(&material).Error; err != nil {
			return fmt.Errorf("create material: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Material created",
		zap.String("tenant_id", tenantID),
		zap.String("material_id", material.ID),
		zap.String("name", material.Name))
	return &material, nil
}

// List returns active materials for the tenant, filtered and paginated,
// newest first.
func (s *MaterialService) List(ctx context.Context, tenantID string, filter MaterialFilter) (*MaterialPage, error) {
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	offset := (page - 1) * limit

	query := s.db.WithContext(ctx).Model(&model.Material{}).Where("tenant_id = ?", tenantID)
	if filter.Name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Name)+"%")
	}
	if filter.Unit != "" {
		query = query.Where("unit = ?", filter.Unit)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count materials: %w", err)
	}

	materials := []model.Material{}
	if err := query.
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&materials).Error; err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}

	return &MaterialPage{
		Data: materials,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: (total + int64(limit) - 1) / int64(limit),
		},
	}, nil
}

// GetByID returns an active material with its transaction history,
// newest first. Lookups outside the tenant's scope fail with ErrNotFound,
// identically to a missing row.
func (s *MaterialService) GetByID(ctx context.Context, tenantID, materialID string) (*model.Material, error) {
	var material model.Material
	err := s.db.WithContext(ctx).
		Preload("Transactions", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Where("id = ? AND tenant_id = ?", materialID, tenantID).
		First(&material).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query material: %w", err)
	}
	return &material, nil
}

// Delete soft-deletes an active material. A second call for the same
// material fails with ErrNotFound because the row is no longer active;
// its transaction history remains readable.
func (s *MaterialService) Delete(ctx context.Context, tenantID, materialID string) (*model.Material, error) {
	var material model.Material
	err := s.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", materialID, tenantID).
		First(&material).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query material: %w", err)
	}

	if err := s.db.WithContext(ctx).Delete(&material).Error; err != nil {
		return nil, fmt.Errorf("delete material: %w", err)
	}

	s.log.Info("Material deleted",
		zap.String("tenant_id", tenantID),
		zap.String("material_id", materialID))
	return &material, nil
}
