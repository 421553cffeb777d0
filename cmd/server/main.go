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

	attachmentapp "github.com/proforma/backend/internal/application/attachment"
	propertyapp "github.com/proforma/backend/internal/application/property"
	statementapp "github.com/proforma/backend/internal/application/statement"
	unitsapp "github.com/proforma/backend/internal/application/units"
	"github.com/proforma/backend/internal/domain/shared"
	"github.com/proforma/backend/internal/infrastructure/auth"
	"github.com/proforma/backend/internal/infrastructure/billing"
	"github.com/proforma/backend/internal/infrastructure/cache"
	"github.com/proforma/backend/internal/infrastructure/config"
	"github.com/proforma/backend/internal/infrastructure/logger"
	"github.com/proforma/backend/internal/infrastructure/persistence"
	"github.com/proforma/backend/internal/infrastructure/printing"
	"github.com/proforma/backend/internal/infrastructure/scheduler"
	"github.com/proforma/backend/internal/infrastructure/storage"
	"github.com/proforma/backend/internal/infrastructure/telemetry"
	"github.com/proforma/backend/internal/interfaces/http/handler"
	"github.com/proforma/backend/internal/interfaces/http/middleware"
	"github.com/proforma/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Tracing
	ctx := context.Background()
	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Database
	db, err := persistence.NewDatabase(cfg.Database, cfg.Log, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// The schema is managed by the migrate tool; development environments
	// auto-migrate on boot instead.
	if cfg.App.Env == "development" {
		if err := persistence.AutoMigrate(db.DB); err != nil {
			log.Fatal("Failed to auto-migrate schema", zap.Error(err))
		}
	}

	// Idempotency store
	idempotencyStore, err := cache.NewIdempotencyStore(cfg.Idempotency, cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to initialize idempotency store", zap.Error(err))
	}
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	// Object storage
	var objectStorage attachmentapp.ObjectStorageService
	if cfg.Storage.UseStub || cfg.Storage.Bucket == "" {
		log.Warn("Using stub object storage; uploads are not persisted")
		objectStorage = storage.NewStubObjectStorage()
	} else {
		s3Storage, err := storage.NewS3ObjectStorage(cfg.Storage, log)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		objectStorage = s3Storage
	}

	// PDF renderer
	renderer := printing.NewRenderer(cfg.Printing, log)
	if closer, ok := renderer.(interface{ Close() error }); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				log.Error("Error closing renderer", zap.Error(err))
			}
		}()
	}

	// Repositories
	propertyRepo := persistence.NewGormPropertyRepository(db.DB)
	statementRepo := persistence.NewGormStatementRepository(db.DB)
	unitRepo := persistence.NewGormUnitRepository(db.DB)
	attachmentRepo := persistence.NewGormAttachmentRepository(db.DB)

	// Application services
	attachmentService := attachmentapp.NewAttachmentService(attachmentRepo, objectStorage, log)
	planGate := billing.NewStaticPlanGate(cfg.Billing, log)
	propertyService := propertyapp.NewPropertyService(propertyRepo, statementRepo, unitRepo, attachmentService, planGate, log)
	unitService := unitsapp.NewUnitService(unitRepo, log)
	statementService := statementapp.NewStatementService(statementRepo, unitService, log)
	exportService := statementapp.NewExportService(statementRepo, propertyRepo, renderer, log)

	// Background cleanup of abandoned uploads
	janitor := scheduler.NewAttachmentJanitor(attachmentService, log, scheduler.DefaultAttachmentJanitorConfig())
	if err := janitor.Start(ctx); err != nil {
		log.Fatal("Failed to start attachment janitor", zap.Error(err))
	}

	// JWT validation
	jwtService := auth.NewJWTService(cfg.JWT)

	// HTTP engine
	middleware.SetupValidator()
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	if cfg.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	}
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
	}
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))

	authConfig := middleware.DefaultAuthConfig(jwtService)
	authConfig.Logger = log
	engine.Use(middleware.AuthWithConfig(authConfig))

	engine.Use(middleware.Idempotency(idempotencyStore, shared.IdempotencyConfig{
		Enabled: cfg.Idempotency.Enabled,
		TTL:     cfg.Idempotency.TTL,
	}, log))

	// Routes
	r := router.NewRouter(engine)
	r.RegisterRoot(handler.NewHealthHandler(db))
	r.Register(handler.NewPropertyHandler(propertyService)).
		Register(handler.NewStatementHandler(statementService, exportService)).
		Register(handler.NewUnitHandler(unitService)).
		Register(handler.NewAttachmentHandler(attachmentService))
	r.Setup()

	// HTTP server
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := janitor.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping attachment janitor", zap.Error(err))
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
