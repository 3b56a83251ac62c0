package service

import (
	"context"
	"os"
	"testing"

	"inventory-service/internal/model"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB connects to the Postgres instance named by TEST_DATABASE_DSN and
// skips the test when none is reachable. Each test provisions its own
// tenant, so rows from earlier runs never interfere.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5432 user=postgres password=password dbname=inventory_test sslmode=disable"
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Skipf("Postgres not available: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Skipf("Postgres not available: %v", err)
	}
	if err := sqlDB.Ping(); err != nil {
		t.Skipf("Postgres not available: %v", err)
	}

	if err := db.AutoMigrate(&model.Tenant{}, &model.Material{}, &model.Transaction{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}

func newTestTenant(t *testing.T, db *gorm.DB, plan string) *model.Tenant {
	t.Helper()

	tenants := NewTenantService(db, zap.NewNop())
	tenant, err := tenants.Create(context.Background(), "test-tenant", plan)
	require.NoError(t, err)
	return tenant
}
