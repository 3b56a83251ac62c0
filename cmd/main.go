package main

import (
	"inventory-service/internal/handler"
	mid "inventory-service/internal/middleware"
	"inventory-service/internal/model"
	"inventory-service/internal/service"
	"inventory-service/pkg/config"
	"inventory-service/pkg/database"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load .env file; environments without one configure through real
	// environment variables, so a miss is not an error.
	_ = godotenv.Load()

	appConfig, err := config.Load("inventory-service")
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	if err := logger.InitLogger(&logger.LogConfig{
		Level:       appConfig.Log.Level,
		Environment: appConfig.Server.Env,
		ServiceName: appConfig.ServiceName,
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting inventory-service", appConfig.LogConfig()...)

	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	db, err := database.Init(&appConfig.DB)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	if err := database.Migrate(db, &model.Tenant{}, &model.Material{}, &model.Transaction{}); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Core services share the one storage handle
	tenantService := service.NewTenantService(db, log)
	materialService := service.NewMaterialService(db, log)
	transactionService := service.NewTransactionService(db, log)
	analyticsService := service.NewAnalyticsService(db, log)

	tenantHandler := handler.NewTenantHandler(tenantService)
	materialHandler := handler.NewMaterialHandler(materialService)
	transactionHandler := handler.NewTransactionHandler(transactionService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", handler.HealthCheck)

	// Tenant directory, open for provisioning and administrative listing
	e.POST("/tenants", tenantHandler.Create)
	e.GET("/tenants", tenantHandler.List)

	// Tenant-scoped routes: tenant resolution first, then role extraction
	tenantScoped := mid.TenantMiddleware(tenantService)

	materialAPI := e.Group("/api/materials", tenantScoped, mid.AuthMiddleware)
	materialAPI.POST("", materialHandler.Create, mid.RequireRoles(mid.RoleAdmin))
	materialAPI.GET("", materialHandler.List)
	materialAPI.GET("/:id", materialHandler.GetByID)
	materialAPI.DELETE("/:id", materialHandler.Delete, mid.RequireRoles(mid.RoleAdmin))
	materialAPI.POST("/:id/transactions", transactionHandler.Create)
	materialAPI.GET("/:id/transactions", transactionHandler.ListByMaterial)

	analyticsAPI := e.Group("/api/analytics", tenantScoped, mid.AuthMiddleware)
	analyticsAPI.GET("/summary", analyticsHandler.Summary)

	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
