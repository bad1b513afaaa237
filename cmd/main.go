package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"bizforge/internal/caching"
	"bizforge/internal/config"
	"bizforge/internal/generator"
	"bizforge/internal/handlers"
	"bizforge/internal/jobs"
	"bizforge/internal/jobs/background"
	"bizforge/internal/logger"
	"bizforge/internal/middleware"
	"bizforge/internal/repositories"
	"bizforge/internal/services"
	"bizforge/pkg/database"

	"github.com/labstack/echo/v4"
)

const version = "1.0.0"

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	zlog, err := logger.Init(&logger.Config{
		Level:       os.Getenv("LOG_LEVEL"),
		Environment: os.Getenv("ENVIRONMENT"),
		ServiceName: "bizforge",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		zlog.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(context.Background(), databaseURL)
	if err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin" // Default for development
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin" // Default for development
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	objectSvc, err := services.NewObjectStoreService(minioEndpoint, minioAccessKey, minioSecretKey, useSSL)
	if err != nil {
		zlog.Fatal("Failed to initialize object store", zap.Error(err))
	}

	// Config producer
	anthropicKey := os.Getenv("ANTHROPIC_API_KEY")
	if anthropicKey == "" {
		zlog.Fatal("ANTHROPIC_API_KEY environment variable is required")
	}
	genCfg := config.DefaultGeneratorConfig()
	if cfgPath := os.Getenv("GENERATOR_CONFIG"); cfgPath != "" {
		genCfg, err = config.LoadGeneratorConfig(cfgPath)
		if err != nil {
			zlog.Fatal("Failed to load generator config", zap.String("path", cfgPath), zap.Error(err))
		}
	}
	configGen := generator.NewAnthropicGenerator(anthropicKey, genCfg)

	// Create repositories
	orgRepo := repositories.NewOrganizationRepo(pool)
	recordRepo := repositories.NewRecordRepo(pool)

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Create services
	orgSvc := services.NewOrganizationService(orgRepo, cacheSvc)
	resourceSvc := services.NewResourceService(orgSvc, recordRepo)
	provisionSvc := services.NewProvisionService(configGen, orgSvc, recordRepo)
	exportSvc := services.NewExportService(orgRepo, recordRepo, objectSvc)

	// Create handlers
	orgHandlers := handlers.NewOrganizationHandlers(orgSvc, exportSvc)
	resourceHandlers := handlers.NewResourceHandlers(resourceSvc)
	provisionHandlers := handlers.NewProvisionHandlers(provisionSvc)

	// Background jobs
	auditSvc := jobs.NewOrphanAuditService(orgRepo, recordRepo)
	statsSvc := jobs.NewStatsRefreshService(orgRepo, recordRepo, cacheSvc)
	scheduler, err := background.NewJobScheduler(auditSvc, statsSvc)
	if err != nil {
		zlog.Fatal("Failed to create job scheduler", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Global middleware
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())
	e.Use(logger.RequestLogger())

	// Version middleware
	versionMiddleware := middleware.NewVersionMiddleware()
	e.Use(versionMiddleware.APIVersionResolver())

	// Health endpoints
	e.GET("/health", handlers.HealthCheck)
	e.GET("/health/ready", func(c echo.Context) error {
		return handlers.ReadinessCheck(c, pool)
	})

	// API routes
	v1 := e.Group("/v1")
	v1.Use(versionMiddleware.VersionHeader("v1"))

	// Organization routes
	v1.GET("/organizations", orgHandlers.ListOrganizations)
	v1.GET("/organizations/:id", orgHandlers.GetOrganization)
	v1.PUT("/organizations/:id", orgHandlers.UpdateOrganization)
	v1.POST("/organizations/:id/export", orgHandlers.ExportOrganization)

	// Tenant provisioning
	v1.POST("/tenants", provisionHandlers.CreateTenant)

	// Tenant-scoped resource routes. Registered last so the static routes
	// above win over the :slug wildcard.
	v1.GET("/:slug/:resource", resourceHandlers.GetResource)
	v1.POST("/:slug/:resource", resourceHandlers.CreateRecord)
	v1.DELETE("/:slug/:resource", resourceHandlers.DeleteRecord)

	// Start server
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		zlog.Fatal("Invalid port", zap.String("port", portStr), zap.Error(err))
	}

	zlog.Info("server starting", zap.String("version", version), zap.Int("port", port))

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
