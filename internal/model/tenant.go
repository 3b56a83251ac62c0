package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Plan tiers. FREE tenants are capped at five active materials and cannot
// access analytics; PRO tenants are unlimited.
const (
	PlanFree = "FREE"
	PlanPro  = "PRO"
)

// Tenant represents an account that owns materials and transactions.
// This is the root of the multi-tenant data model; every other row carries
// a tenant_id and every query is scoped by it.
type Tenant struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	Plan      string    `json:"plan" gorm:"type:varchar(10);not null;default:'FREE'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns an opaque ID before the row is inserted
func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}
