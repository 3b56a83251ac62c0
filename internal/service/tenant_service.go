package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"inventory-service/internal/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TenantService manages tenant records. Tenants are created once and never
// deleted; the plan tier stored here gates quotas and analytics.
type TenantService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewTenantService(db *gorm.DB, log *zap.Logger) *TenantService {
	return &TenantService{db: db, log: log}
}

// Create persists a new tenant. Plan defaults to FREE when empty.
func (s *TenantService) Create(ctx context.Context, name, plan string) (*model.Tenant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationErrorf("tenant name is required")
	}
	if len(name) > 100 {
		return nil, validationErrorf("tenant name must not exceed 100 characters")
	}

	if plan == "" {
		plan = model.PlanFree
	}
	if plan != model.PlanFree && plan != model.PlanPro {
		return nil, validationErrorf("plan must be either FREE or PRO")
	}

	tenant := model.Tenant{
		Name: name,
		Plan: plan,
	}
	if err := s.db.WithContext(ctx).Create(&tenant).Error; err != nil {
		return nil, fmt.Errorf("create tenant: %w", err)
	}

	s.log.Info("Tenant created",
		zap.String("tenant_id", tenant.ID),
		zap.String("name", tenant.Name),
		zap.String("plan", tenant.Plan))
	return &tenant, nil
}

// GetByID returns the tenant or ErrTenantNotFound
func (s *TenantService) GetByID(ctx context.Context, id string) (*model.Tenant, error) {
	var tenant model.Tenant
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&tenant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTenantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query tenant: %w", err)
	}
	return &tenant, nil
}

// List returns all tenants in creation order. Administrative listing only.
func (s *TenantService) List(ctx context.Context) ([]model.Tenant, error) {
	var tenants []model.Tenant
	if err := s.db.WithContext(ctx).Order("created_at asc").Find(&tenants).Error; err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	return tenants, nil
}
