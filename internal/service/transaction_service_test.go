package service

import (
	"context"
	"sync"
	"testing"

	"inventory-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTransactionCreate_Validation(t *testing.T) {
	db := testDB(t)
	tenant := newTestTenant(t, db, model.PlanPro)
	materials := NewMaterialService(db, zap.NewNop())
	svc := NewTransactionService(db, zap.NewNop())
	ctx := context.Background()

	material, err := materials.Create(ctx, tenant.ID, tenant.Plan, CreateMaterialInput{Name: "Steel", Unit: "kg"})
	require.NoError(t, err)

	var validationErr *ValidationError

	_, err = svc.Create(ctx, tenant.ID, material.ID, CreateTransactionInput{Type: "TRANSFER", Quantity: 1})
	require.ErrorAs(t, err, &validationErr)

	_, err = svc.Create(ctx, tenant.ID, material.ID, CreateTransactionInput{Type: model.TransactionIn, Quantity: 0})
	require.ErrorAs(t, err, &validationErr)

	_, err = svc.Create(ctx, tenant.ID, material.ID, CreateTransactionInput{Type: model.TransactionOut, Quantity: -5})
	require.ErrorAs(t, err, &validationErr)
}

func TestTransactionCreate_InAndOutScenario(t *testing.T) {
	db := testDB(t)
	tenant := newTestTenant(t, db, model.PlanFree)
	materials := NewMaterialService(db, zap.NewNop())
	svc := NewTransactionService(db, zap.NewNop())
	ctx := context.Background()

	material, err := materials.Create(ctx, tenant.ID, tenant.Plan, CreateMaterialInput{Name: "Steel", Unit: "kg"})
	require.NoError(t, err)

	in, err := svc.Create(ctx, tenant.ID, material.ID, CreateTransactionInput{Type: model.TransactionIn, Quantity: 100})
	require.NoError(t, err)
	assert.Equal(t, model.TransactionIn, in.Type)

	out, err := svc.Create(ctx, tenant.ID, material.ID, CreateTransactionInput{Type: model.TransactionOut, Quantity: 30})
	require.NoError(t, err)
	assert.Equal(t, model.TransactionOut, out.Type)

	// Stock reflects the net sum
	found, err := materials.GetByID(ctx, tenant.ID, material.ID)
	require.NoError(t, err)
	assert.Equal(t, 70, found.CurrentStock)

	// History is newest first: [OUT 30, IN 100]
	require.Len(t, found.Transactions, 2)
	assert.Equal(t, model.TransactionOut, found.Transactions[0].Type)
	assert.Equal(t, 30, found.Transactions[0].Quantity)
	assert.Equal(t, model.TransactionIn, found.Transactions[1].Type)
	assert.Equal(t, 100, found.Transactions[1].Quantity)
}

func TestTransactionCreate_InsufficientStock(t *testing.T) {
	db := testDB(t)
	tenant := newTestTenant(t, db, model.PlanFree)
	materials := NewMaterialService(db, zap.NewNop())
	svc := NewTransactionService(db, zap.NewNop())
	ctx := context.Background()

	material, err := materials.Create(ctx, tenant.ID, tenant.Plan, CreateMaterialInput{
		Name: "Steel", Unit: "kg", CurrentStock: 20,
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, tenant.ID, material.ID, CreateTransactionInput{Type: model.TransactionOut, Quantity: 50})
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 20, stockErr.CurrentStock)
	assert.Equal(t, 50, stockErr.Requested)

	// The whole unit rolled back: stock untouched, no ledger row
	found, err := materials.GetByID(ctx, tenant.ID, material.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, found.CurrentStock)
	assert.Empty(t, found.Transactions)
}

func TestTransactionCreate_TenantIsolation(t *testing.T) {
	db := testDB(t)
	tenantA := newTestTenant(t, db, model.PlanFree)
	tenantB := newTestTenant(t, db, model.PlanFree)
	materials := NewMaterialService(db, zap.NewNop())
	svc := NewTransactionService(db, zap.NewNop())
	ctx := context.Background()

	material, err := materials.Create(ctx, tenantB.ID, tenantB.Plan, CreateMaterialInput{
		Name: "Steel", Unit: "kg", CurrentStock: 10,
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, tenantA.ID, material.ID, CreateTransactionInput{Type: model.TransactionIn, Quantity: 5})
	assert.ErrorIs(t, err, ErrNotFound)

	// B's stock is untouched
	found, err := materials.GetByID(ctx, tenantB.ID, material.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, found.CurrentStock)
}

func TestTransactionCreate_RejectsSoftDeletedMaterial(t *testing.T) {
	db := testDB(t)
	tenant := newTestTenant(t, db, model.PlanFree)
	materials := NewMaterialService(db, zap.NewNop())
	svc := NewTransactionService(db, zap.NewNop())
	ctx := context.Background()

	material, err := materials.Create(ctx, tenant.ID, tenant.Plan, CreateMaterialInput{
		Name: "Steel", Unit: "kg", CurrentStock: 10,
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, tenant.ID, material.ID, CreateTransactionInput{Type: model.TransactionOut, Quantity: 5})
	require.NoError(t, err)

	_, err = materials.Delete(ctx, tenant.ID, material.ID)
	require.NoError(t, err)

	// No new movements on a deleted material
	_, err = svc.Create(ctx, tenant.ID, material.ID, CreateTransactionInput{Type: model.TransactionIn, Quantity: 1})
	assert.ErrorIs(t, err, ErrNotFound)

	// History survives the deletion
	history, err := svc.ListByMaterial(ctx, tenant.ID, material.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, model.TransactionOut, history[0].Type)
}

func TestTransactionListByMaterial_UnknownMaterial(t *testing.T) {
	db := testDB(t)
	tenant := newTestTenant(t, db, model.PlanFree)
	svc := NewTransactionService(db, zap.NewNop())

	history, err := svc.ListByMaterial(context.Background(), tenant.ID, "no-such-material")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestTransactionCreate_ConcurrentOutsNeverOverdraw(t *testing.T) {
	db := testDB(t)
	tenant := newTestTenant(t, db, model.PlanFree)
	materials := NewMaterialService(db, zap.NewNop())
	svc := NewTransactionService(db, zap.NewNop())
	ctx := context.Background()

	const (
		initialStock = 10
		outQuantity  = 2
		workers      = 20
	)

	material, err := materials.Create(ctx, tenant.ID, tenant.Plan, CreateMaterialInput{
		Name: "Steel", Unit: "kg", CurrentStock: initialStock,
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Create(ctx, tenant.ID, material.ID, CreateTransactionInput{
				Type:     model.TransactionOut,
				Quantity: outQuantity,
			})
		}(i)
	}
	wg.Wait()

	var committed, rejected int
	for _, err := range errs {
		if err == nil {
			committed++
			continue
		}
		var stockErr *InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		rejected++
	}

	// Only floor(S/Q) movements can commit without going negative
	assert.Equal(t, initialStock/outQuantity, committed)
	assert.Equal(t, workers-initialStock/outQuantity, rejected)

	found, err := materials.GetByID(ctx, tenant.ID, material.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, found.CurrentStock)

	// Invariant: stock equals initial stock plus the signed sum of all
	// committed movements
	history, err := svc.ListByMaterial(ctx, tenant.ID, material.ID)
	require.NoError(t, err)
	net := initialStock
	for _, txn := range history {
		if txn.Type == model.TransactionIn {
			net += txn.Quantity
		} else {
			net -= txn.Quantity
		}
	}
	assert.Equal(t, found.CurrentStock, net)
	assert.Len(t, history, committed)
}
