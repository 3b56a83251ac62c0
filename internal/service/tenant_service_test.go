package service

import (
	"context"
	"testing"

	"inventory-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTenantCreate_DefaultsToFreePlan(t *testing.T) {
	db := testDB(t)
	svc := NewTenantService(db, zap.NewNop())

	tenant, err := svc.Create(context.Background(), "Acme", "")
	require.NoError(t, err)

	assert.NotEmpty(t, tenant.ID)
	assert.Equal(t, "Acme", tenant.Name)
	assert.Equal(t, model.PlanFree, tenant.Plan)
}

func TestTenantCreate_Validation(t *testing.T) {
	db := testDB(t)
	svc := NewTenantService(db, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Create(ctx, "", "")
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	_, err = svc.Create(ctx, "   ", model.PlanPro)
	require.ErrorAs(t, err, &validationErr)

	_, err = svc.Create(ctx, "Acme", "ENTERPRISE")
	require.ErrorAs(t, err, &validationErr)
}

func TestTenantGetByID(t *testing.T) {
	db := testDB(t)
	svc := NewTenantService(db, zap.NewNop())
	ctx := context.Background()

	created, err := svc.Create(ctx, "Acme", model.PlanPro)
	require.NoError(t, err)

	found, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, model.PlanPro, found.Plan)

	_, err = svc.GetByID(ctx, "does-not-exist")
	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestTenantList(t *testing.T) {
	db := testDB(t)
	svc := NewTenantService(db, zap.NewNop())
	ctx := context.Background()

	created, err := svc.Create(ctx, "Acme", "")
	require.NoError(t, err)

	tenants, err := svc.List(ctx)
	require.NoError(t, err)

	found := false
	for _, tenant := range tenants {
		if tenant.ID == created.ID {
			found = true
		}
	}
	assert.True(t, found, "created tenant should appear in the listing")
}
