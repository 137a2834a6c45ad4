package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/storeops/backoffice/internal/application/admin"
	"github.com/storeops/backoffice/internal/application/export"
	"github.com/storeops/backoffice/internal/infrastructure/cache"
	"github.com/storeops/backoffice/internal/infrastructure/config"
	"github.com/storeops/backoffice/internal/infrastructure/logger"
	"github.com/storeops/backoffice/internal/infrastructure/persistence"
	"github.com/storeops/backoffice/internal/interfaces/http/handler"
	"github.com/storeops/backoffice/internal/interfaces/http/middleware"
	"github.com/storeops/backoffice/internal/interfaces/http/router"
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

	log.Info("Starting back office server",
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

	// Count cache: Redis when reachable, in-process fallback otherwise
	var counts cache.CountCache
	redisCache, err := cache.NewRedisCountCache(cache.RedisConfig{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, using in-memory count cache", zap.Error(err))
		counts = cache.NewInMemoryCountCache()
	} else {
		defer func() {
			if err := redisCache.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		counts = redisCache
		log.Info("Redis connected successfully", zap.String("addr", cfg.Redis.Addr()))
	}

	// Initialize repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	balanceRepo := persistence.NewGormBalanceRepository(db.DB)

	// Initialize application services
	adminCfg := admin.Config{
		DefaultPageSize: cfg.Admin.PageSize,
		MaxPageSize:     cfg.Admin.MaxPageSize,
		CountCacheTTL:   cfg.Admin.CountCacheTTL,
	}
	productList := admin.NewProductListService(productRepo, counts, adminCfg, log)
	invoiceList := admin.NewInvoiceListService(invoiceRepo, counts, adminCfg, log)
	balanceList := admin.NewBalanceListService(balanceRepo, counts, adminCfg, log)
	productExport := export.NewProductExportService(productRepo, log)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Report form tag names in validation error details
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, in order: request ID, panic recovery, request
	// logging, security headers, CORS.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	// Register API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewProductHandler(productList, productExport)).
		Register(handler.NewInvoiceHandler(invoiceList)).
		Register(handler.NewBalanceHandler(balanceList)).
		Register(handler.NewSystemHandler(db))
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

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
