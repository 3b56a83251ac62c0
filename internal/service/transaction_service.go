package service

import (
	"context"
	"errors"
	"fmt"

	"inventory-service/internal/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateTransactionInput carries the fields for a stock movement
type CreateTransactionInput struct {
	Type     string
	Quantity int
}

// TransactionService is the ledger engine. Every stock movement runs as one
// storage transaction that locks the target material row, checks the
// resulting stock, and appends the ledger entry together with the counter
// update. Concurrent movements on the same material queue on the row lock
// and apply in commit order; movements on different materials never
// serialize against each other.
type TransactionService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewTransactionService(db *gorm.DB, log *zap.Logger) *TransactionService {
	return &TransactionService{db: db, log: log}
}

// Create applies an IN or OUT movement to a material. The material must be
// active and owned by the tenant; an OUT that would drive stock negative
// aborts the whole unit with InsufficientStockError and leaves no trace.
func (s *TransactionService) Create(ctx context.Context, tenantID, materialID string, input CreateTransactionInput) (*model.Transaction, error) {
	if input.Type != model.TransactionIn && input.Type != model.TransactionOut {
		return nil, validationErrorf("transaction type must be either IN or OUT")
	}
	if input.Quantity <= 0 {
		return nil, validationErrorf("quantity must be greater than 0")
	}

	var transaction model.Transaction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The row lock makes the read-check-write sequence below atomic
		// with respect to other movements on the same material.
		var material model.Material
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND tenant_id = ?", materialID, tenantID).
			First(&material).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("lock material: %w", err)
		}

		delta := input.Quantity
		if input.Type == model.TransactionOut {
			delta = -input.Quantity
		}
		newStock := material.CurrentStock + delta

		if newStock < 0 {
			return &InsufficientStockError{
				CurrentStock: material.CurrentStock,
				Requested:    input.Quantity,
			}
		}

		transaction = model.Transaction{
			TenantID:   tenantID,
			MaterialID: materialID,
			Type:       input.Type,
			Quantity:   input.Quantity,
		}
		if err := tx.Create(&transaction).Error; err != nil {
			return fmt.Errorf("create transaction: %w", err)
		}

		if err := s.updateStock(tx, materialID, newStock); err != nil {
			return err
		}

		s.log.Info("Transaction created",
			zap.String("tenant_id", tenantID),
			zap.String("material_id", materialID),
			zap.String("type", input.Type),
			zap.Int("quantity", input.Quantity),
			zap.Int("previous_stock", material.CurrentStock),
			zap.Int("new_stock", newStock))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &transaction, nil
}

// ListByMaterial returns the tenant-scoped movement history for a material,
// newest first. Soft-deleted materials keep their history, so there is no
// active check here; an unknown material id yields an empty list.
func (s *TransactionService) ListByMaterial(ctx context.Context, tenantID, materialID string) ([]model.Transaction, error) {
	transactions := []model.Transaction{}
	err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND material_id = ?", tenantID, materialID).
		Order("created_at desc").
		Find(&transactions).Error
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return transactions, nil
}

// updateStock writes the new stock counter. It performs no bound check of
// its own, so it must only run inside the atomic unit in Create, after the
// row lock and the overdraft check.
func (s *TransactionService) updateStock(tx *gorm.DB, materialID string, newStock int) error {
	result := tx.Model(&model.Material{}).
		Where("id = ?", materialID).
		Update("current_stock", newStock)
	if result.Error != nil {
		return fmt.Errorf("update stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrStorageConflict
	}
	return nil
}
