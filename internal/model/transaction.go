package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transaction types
const (
	TransactionIn  = "IN"
	TransactionOut = "OUT"
)

// Transaction is an append-only ledger entry recording a single stock
// movement. Rows are immutable once committed and are never deleted, so
// a material's history survives its soft deletion.
//
// TenantID is denormalized onto the row so history queries stay scoped
// by tenant without joining through the material.
type Transaction struct {
	ID         string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	TenantID   string    `json:"tenant_id" gorm:"type:varchar(36);index;not null"`
	MaterialID string    `json:"material_id" gorm:"type:varchar(36);index;not null"`
	Type       string    `json:"type" gorm:"type:varchar(3);not null"`
	Quantity   int       `json:"quantity" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
}

// BeforeCreate assigns an opaque ID before the row is inserted
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}
