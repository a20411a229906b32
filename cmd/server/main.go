package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	billingapp "github.com/gemledger/backend/internal/application/billing"
	financeapp "github.com/gemledger/backend/internal/application/finance"
	identityapp "github.com/gemledger/backend/internal/application/identity"
	inventoryapp "github.com/gemledger/backend/internal/application/inventory"
	partnerapp "github.com/gemledger/backend/internal/application/partner"
	reportapp "github.com/gemledger/backend/internal/application/report"
	"github.com/gemledger/backend/internal/infrastructure/auth"
	"github.com/gemledger/backend/internal/infrastructure/cache"
	"github.com/gemledger/backend/internal/infrastructure/config"
	"github.com/gemledger/backend/internal/infrastructure/logger"
	"github.com/gemledger/backend/internal/infrastructure/persistence"
	"github.com/gemledger/backend/internal/interfaces/http/handler"
	"github.com/gemledger/backend/internal/interfaces/http/middleware"
	"github.com/gemledger/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting GemLedger backend",
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

	// Redis backs the dimension cache. The cache degrades to pass-through
	// when Redis is unreachable, so a failed ping is not fatal.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis client", zap.Error(err))
		}
	}()
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Warn("Redis unreachable, dimension cache disabled", zap.Error(err))
	}
	dimCache := cache.NewDimensionCache(redisClient, cfg.Redis.DimensionCacheTTL, log)

	// Initialize repositories
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	vendorRepo := persistence.NewGormVendorRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	equipmentRepo := persistence.NewGormEquipmentRepository(db.DB)
	jewelleryRepo := persistence.NewGormJewelleryRepository(db.DB)
	caratRepo := persistence.NewGormCaratRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	billRepo := persistence.NewGormBillRepository(db.DB)
	receiptVoucherRepo := persistence.NewGormReceiptVoucherRepository(db.DB)
	paymentVoucherRepo := persistence.NewGormPaymentVoucherRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	expenseHeadRepo := persistence.NewGormExpenseHeadRepository(db.DB)
	expenseSubHeadRepo := persistence.NewGormExpenseSubHeadRepository(db.DB)
	accountHeadRepo := persistence.NewGormAccountHeadRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Sequential document numbering
	allocator := persistence.NewGormSequenceAllocator(db.DB, log)

	// Initialize application services
	customerService := partnerapp.NewCustomerService(customerRepo, allocator)
	vendorService := partnerapp.NewVendorService(vendorRepo, allocator)
	productService := inventoryapp.NewProductService(productRepo, allocator)
	equipmentService := inventoryapp.NewEquipmentService(equipmentRepo, allocator)
	jewelleryService := inventoryapp.NewJewelleryService(jewelleryRepo, caratRepo, allocator)
	caratService := inventoryapp.NewCaratService(caratRepo, dimCache)
	invoiceService := billingapp.NewInvoiceService(invoiceRepo, customerRepo, allocator)
	billService := billingapp.NewBillService(billRepo, vendorRepo, allocator)
	receiptVoucherService := financeapp.NewReceiptVoucherService(receiptVoucherRepo, invoiceRepo, accountHeadRepo, allocator, db)
	paymentVoucherService := financeapp.NewPaymentVoucherService(paymentVoucherRepo, billRepo, accountHeadRepo, allocator, db)
	expenseService := financeapp.NewExpenseService(expenseRepo, expenseSubHeadRepo, accountHeadRepo)
	expenseHeadService := financeapp.NewExpenseHeadService(expenseHeadRepo, dimCache)
	expenseSubHeadService := financeapp.NewExpenseSubHeadService(expenseSubHeadRepo, expenseHeadRepo, dimCache)
	accountHeadService := financeapp.NewAccountHeadService(accountHeadRepo, dimCache)
	reportService := reportapp.NewReportService(reportRepo, expenseSubHeadRepo, expenseHeadRepo, caratRepo, dimCache, language.English)

	// Identity services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	systemHandler := handler.NewSystemHandler(db)
	customerHandler := handler.NewCustomerHandler(customerService)
	vendorHandler := handler.NewVendorHandler(vendorService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	billHandler := handler.NewBillHandler(billService)
	inventoryHandler := handler.NewInventoryHandler(productService, equipmentService, jewelleryService, caratService)
	voucherHandler := handler.NewVoucherHandler(receiptVoucherService, paymentVoucherService)
	expenseHandler := handler.NewExpenseHandler(expenseService, expenseHeadService, expenseSubHeadService, accountHeadService)
	reportHandler := handler.NewReportHandler(reportService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Setup API routes
	r := router.NewRouter(engine,
		router.WithAPIVersion("v1"),
		router.WithAuthMiddleware(middleware.JWTAuth(jwtService)),
	)

	r.RegisterPublic(systemHandler)
	r.RegisterPublic(authHandler)

	r.Register(router.RegistrarFunc(authHandler.RegisterProtectedRoutes)).
		Register(customerHandler).
		Register(vendorHandler).
		Register(invoiceHandler).
		Register(billHandler).
		Register(inventoryHandler).
		Register(voucherHandler).
		Register(expenseHandler).
		Register(reportHandler)

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
