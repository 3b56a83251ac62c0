package service

import (
	"context"
	"testing"

	"inventory-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAnalyticsSummary_RequiresProPlan(t *testing.T) {
	db := testDB(t)
	tenant := newTestTenant(t, db, model.PlanFree)
	svc := NewAnalyticsService(db, zap.NewNop())

	_, err := svc.Summary(context.Background(), tenant.ID, tenant.Plan)
	var planErr *PlanRestrictedError
	require.ErrorAs(t, err, &planErr)
}

func TestAnalyticsSummary_EmptyTenantReportsZeros(t *testing.T) {
	db := testDB(t)
	tenant := newTestTenant(t, db, model.PlanPro)
	svc := NewAnalyticsService(db, zap.NewNop())

	summary, err := svc.Summary(context.Background(), tenant.ID, tenant.Plan)
	require.NoError(t, err)

	assert.EqualValues(t, 0, summary.MaterialsCount)
	assert.EqualValues(t, 0, summary.TotalIn)
	assert.EqualValues(t, 0, summary.TotalOut)
	assert.EqualValues(t, 0, summary.TotalStock)
}

func TestAnalyticsSummary_Aggregates(t *testing.T) {
	db := testDB(t)
	tenant := newTestTenant(t, db, model.PlanPro)
	materials := NewMaterialService(db, zap.NewNop())
	transactions := NewTransactionService(db, zap.NewNop())
	svc := NewAnalyticsService(db, zap.NewNop())
	ctx := context.Background()

	steel, err := materials.Create(ctx, tenant.ID, tenant.Plan, CreateMaterialInput{Name: "Steel", Unit: "kg"})
	require.NoError(t, err)
	copper, err := materials.Create(ctx, tenant.ID, tenant.Plan, CreateMaterialInput{Name: "Copper", Unit: "kg", CurrentStock: 5})
	require.NoError(t, err)

	_, err = transactions.Create(ctx, tenant.ID, steel.ID, CreateTransactionInput{Type: model.TransactionIn, Quantity: 100})
	require.NoError(t, err)
	_, err = transactions.Create(ctx, tenant.ID, steel.ID, CreateTransactionInput{Type: model.TransactionOut, Quantity: 30})
	require.NoError(t, err)
	_, err = transactions.Create(ctx, tenant.ID, copper.ID, CreateTransactionInput{Type: model.TransactionIn, Quantity: 10})
	require.NoError(t, err)

	summary, err := svc.Summary(ctx, tenant.ID, tenant.Plan)
	require.NoError(t, err)

	assert.EqualValues(t, 2, summary.MaterialsCount)
	assert.EqualValues(t, 110, summary.TotalIn)
	assert.EqualValues(t, 30, summary.TotalOut)
	assert.EqualValues(t, 85, summary.TotalStock) // 70 steel + 15 copper
}

func TestAnalyticsSummary_ExcludesDeletedMaterialsFromCountsNotSums(t *testing.T) {
	db := testDB(t)
	tenant := newTestTenant(t, db, model.PlanPro)
	materials := NewMaterialService(db, zap.NewNop())
	transactions := NewTransactionService(db, zap.NewNop())
	svc := NewAnalyticsService(db, zap.NewNop())
	ctx := context.Background()

	steel, err := materials.Create(ctx, tenant.ID, tenant.Plan, CreateMaterialInput{Name: "Steel", Unit: "kg"})
	require.NoError(t, err)
	_, err = transactions.Create(ctx, tenant.ID, steel.ID, CreateTransactionInput{Type: model.TransactionIn, Quantity: 40})
	require.NoError(t, err)

	_, err = materials.Delete(ctx, tenant.ID, steel.ID)
	require.NoError(t, err)

	summary, err := svc.Summary(ctx, tenant.ID, tenant.Plan)
	require.NoError(t, err)

	// The material and its stock leave the active aggregates, but its
	// ledger history still counts toward the transaction totals
	assert.EqualValues(t, 0, summary.MaterialsCount)
	assert.EqualValues(t, 0, summary.TotalStock)
	assert.EqualValues(t, 40, summary.TotalIn)
}
