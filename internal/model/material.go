package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Material represents a tracked inventory item owned by a single tenant.
// CurrentStock is a running counter maintained by the ledger: it always
// equals the net sum of committed IN minus OUT transactions and never
// goes negative.
//
// Deletion is soft: DeletedAt is set and the row drops out of all scoped
// queries, but its transaction history remains readable.
type Material struct {
	ID           string         `json:"id" gorm:"type:varchar(36);primaryKey"`
	TenantID     string         `json:"tenant_id" gorm:"type:varchar(36);index;not null"`
	Name         string         `json:"name" gorm:"type:varchar(200);not null"`
	Unit         string         `json:"unit" gorm:"type:varchar(30);not null"`
	CurrentStock int            `json:"current_stock" gorm:"not null;default:0"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	Transactions []Transaction `json:"transactions,omitempty" gorm:"foreignKey:MaterialID"`
}

// BeforeCreate assigns an opaque ID before the row is inserted
func (m *Material) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}
