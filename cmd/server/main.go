package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	rentalapp "github.com/alquileres/backend/internal/application/rental"
	"github.com/alquileres/backend/internal/domain/rental"
	"github.com/alquileres/backend/internal/infrastructure/cache"
	"github.com/alquileres/backend/internal/infrastructure/config"
	"github.com/alquileres/backend/internal/infrastructure/logger"
	"github.com/alquileres/backend/internal/infrastructure/persistence"
	"github.com/alquileres/backend/internal/infrastructure/scheduler"
	"github.com/alquileres/backend/internal/infrastructure/storage"
	"github.com/alquileres/backend/internal/interfaces/http/handler"
	"github.com/alquileres/backend/internal/interfaces/http/middleware"
	"github.com/alquileres/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Alquileres Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	propertyRepo := persistence.NewGormPropertyRepository(db.DB)
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	guarantorRepo := persistence.NewGormGuarantorRepository(db.DB)
	documentRepo := persistence.NewGormDocumentRepository(db.DB)
	keepAliveRepo := persistence.NewGormKeepAliveRepository(db.DB)
	unitOfWork := persistence.NewGormUnitOfWork(db.DB)

	// Initialize object storage
	objectStorage := buildObjectStorage(cfg, log)

	// Initialize listing cache (Redis with in-memory fallback)
	cacheFactory := cache.NewListingCacheFactory(cfg.Redis, cache.WithLogger(log))
	listingCache, err := cacheFactory.CreateCache()
	if err != nil {
		log.Fatal("Failed to create listing cache", zap.Error(err))
	}

	// Contract expiry policy from configuration
	expiryPolicy := rental.ExpiryPolicy{
		WindowMonths: cfg.Rental.ContractExpiryWindowMonths,
		FlagExpired:  cfg.Rental.FlagExpiredContracts,
	}

	// Initialize application services
	propertyService := rentalapp.NewPropertyService(
		unitOfWork, propertyRepo, tenantRepo, guarantorRepo, documentRepo,
		objectStorage, listingCache,
		rentalapp.WithExpiryPolicy(expiryPolicy),
		rentalapp.WithPropertyLogger(log),
	)
	documentService := rentalapp.NewDocumentService(documentRepo, propertyRepo, objectStorage, log)
	if cfg.Storage.PresignExpiry > 0 {
		documentService.SetConfig(rentalapp.DocumentServiceConfig{DownloadURLExpiry: cfg.Storage.PresignExpiry})
	}
	dashboardService := rentalapp.NewDashboardService(propertyRepo, tenantRepo,
		rentalapp.WithDashboardExpiryPolicy(expiryPolicy),
	)

	// Start the keep-alive scheduler
	keepAliveScheduler, err := scheduler.NewKeepAliveScheduler(keepAliveRepo, log, scheduler.KeepAliveSchedulerConfig{
		Enabled:     cfg.Scheduler.KeepAliveEnabled,
		Interval:    cfg.Scheduler.KeepAliveInterval,
		PingTimeout: 30 * time.Second,
	})
	if err != nil {
		log.Fatal("Failed to create keep-alive scheduler", zap.Error(err))
	}
	if err := keepAliveScheduler.Start(context.Background()); err != nil {
		log.Fatal("Failed to start keep-alive scheduler", zap.Error(err))
	}

	// Initialize handlers
	propertyHandler := handler.NewPropertyHandler(propertyService)
	documentHandler := handler.NewDocumentHandler(documentService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	systemHandler := handler.NewSystemHandler(keepAliveRepo)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request ID first so recovery and logging can
	// correlate, then security headers, CORS and the body size limit
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// API routes
	rentalRoutes := router.NewDomainGroup("rental", "/rental")
	rentalRoutes.POST("/properties", propertyHandler.Create)
	rentalRoutes.GET("/properties", propertyHandler.List)
	rentalRoutes.GET("/properties/:id", propertyHandler.GetByID)
	rentalRoutes.PUT("/properties/:id", propertyHandler.Update)
	rentalRoutes.DELETE("/properties/:id", propertyHandler.Delete)
	rentalRoutes.POST("/properties/:id/mark-paid", propertyHandler.MarkPaid)
	rentalRoutes.POST("/properties/:id/cancel-payment", propertyHandler.CancelPayment)
	rentalRoutes.PATCH("/properties/:id/payment-status", propertyHandler.UpdatePaymentStatus)
	rentalRoutes.POST("/properties/:id/documents", documentHandler.Upload)
	rentalRoutes.GET("/properties/:id/documents", documentHandler.ListByProperty)
	rentalRoutes.GET("/documents/:id/download", documentHandler.Download)
	rentalRoutes.DELETE("/documents/:id", documentHandler.Delete)

	dashboardRoutes := router.NewDomainGroup("dashboard", "/dashboard")
	dashboardRoutes.GET("/stats", dashboardHandler.GetStats)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/keepalive", systemHandler.GetKeepAlive)
	systemRoutes.POST("/keepalive", systemHandler.TriggerKeepAlive)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(rentalRoutes).
		Register(dashboardRoutes).
		Register(systemRoutes)
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := keepAliveScheduler.Stop(ctx); err != nil {
		log.Warn("Keep-alive scheduler did not stop cleanly", zap.Error(err))
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// buildObjectStorage returns S3-compatible storage when configured, and
// an in-memory stub otherwise so the API stays usable in development
func buildObjectStorage(cfg *config.Config, log *zap.Logger) rentalapp.ObjectStorage {
	if cfg.Storage.Endpoint == "" || cfg.Storage.Bucket == "" {
		log.Warn("Object storage not configured, using in-memory storage")
		return storage.NewMemoryObjectStorage()
	}

	s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
	if err != nil {
		log.Fatal("Failed to create object storage", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s3Storage.EnsureBucket(ctx); err != nil {
		log.Fatal("Failed to ensure storage bucket", zap.Error(err))
	}

	return s3Storage
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
