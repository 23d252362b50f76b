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

	auditapp "github.com/tms/backend/internal/application/audit"
	dispatchapp "github.com/tms/backend/internal/application/dispatch"
	eventapp "github.com/tms/backend/internal/application/event"
	fleetapp "github.com/tms/backend/internal/application/fleet"
	partnerapp "github.com/tms/backend/internal/application/partner"
	"github.com/tms/backend/internal/infrastructure/config"
	"github.com/tms/backend/internal/infrastructure/event"
	"github.com/tms/backend/internal/infrastructure/logger"
	"github.com/tms/backend/internal/infrastructure/persistence"
	"github.com/tms/backend/internal/infrastructure/telemetry"
	"github.com/tms/backend/internal/interfaces/http/handler"
	"github.com/tms/backend/internal/interfaces/http/middleware"
	"github.com/tms/backend/internal/interfaces/http/router"
)

//	@title			TMS Backend API
//	@version		1.0
//	@description	Load financial computation and post-delivery adjustment engine for a trucking TMS.

//	@host		localhost:8080
//	@BasePath	/api/v1

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
		_ = log.Sync()
	}()

	log.Info("Starting TMS Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize tracing before anything that emits spans
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Connect to the database with a gorm logger bridged to zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
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

	// Database spans hang off the HTTP request spans once otelgorm is in
	dbTracingConfig := telemetry.DefaultDBTracingConfig()
	dbTracingConfig.Enabled = cfg.Telemetry.Enabled
	dbTracingConfig.DBName = cfg.Database.DBName
	dbTracing := telemetry.NewDBTracingPlugin(dbTracingConfig, log)
	if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	// Initialize repositories
	loadRepo := persistence.NewGormLoadRepository(db.DB)
	driverRepo := persistence.NewGormDriverRepository(db.DB)
	dispatcherRepo := persistence.NewGormDispatcherRepository(db.DB)
	brokerRepo := persistence.NewGormBrokerRepository(db.DB)
	factoringRepo := persistence.NewGormFactoringCompanyRepository(db.DB)
	auditRepo := persistence.NewGormAuditRepository(db.DB)
	outboxRepo := event.NewGormOutboxRepository(db.DB)

	// Initialize event serializer and register all event types
	eventSerializer := event.NewEventSerializer()
	event.RegisterEventTypes(eventSerializer)

	// Load mutations write their domain events to the outbox in the same
	// transaction as the row update
	outboxPublisher := event.NewOutboxPublisher(eventSerializer)
	loadRepo.SetOutboxEventSaver(outboxPublisher)

	// Initialize event bus and handlers
	eventBus := event.NewInMemoryEventBus(log)

	// Replayed outbox events land back in the audit trail when the direct
	// append failed at mutation time
	auditReplayHandler := event.NewAuditReplayHandler(auditRepo, log)
	eventBus.Subscribe(auditReplayHandler, auditReplayHandler.EventTypes()...)

	log.Info("Event handlers registered",
		zap.Strings("audit_replay_events", auditReplayHandler.EventTypes()),
	)

	// Start event bus
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Start the outbox processor for guaranteed event delivery
	if cfg.Event.ProcessorEnabled {
		processorConfig := event.DefaultOutboxProcessorConfig()
		processorConfig.BatchSize = cfg.Event.BatchSize
		processorConfig.PollInterval = cfg.Event.PollInterval
		processorConfig.CleanupEnabled = cfg.Event.CleanupEnabled
		if cfg.Event.CleanupRetention > 0 {
			processorConfig.CleanupRetention = cfg.Event.CleanupRetention
		}
		outboxProcessor := event.NewOutboxProcessor(outboxRepo, eventBus, eventSerializer, processorConfig, log)
		if err := outboxProcessor.Start(context.Background()); err != nil {
			log.Fatal("Failed to start outbox processor", zap.Error(err))
		}
		defer func() {
			if err := outboxProcessor.Stop(context.Background()); err != nil {
				log.Error("Error stopping outbox processor", zap.Error(err))
			}
		}()
		log.Info("Outbox processor started",
			zap.Int("batch_size", processorConfig.BatchSize),
			zap.Duration("poll_interval", processorConfig.PollInterval),
		)
	}

	// Initialize application services
	auditWriter := auditapp.NewWriter(auditRepo, outboxRepo, log)
	auditQueryService := auditapp.NewQueryService(auditRepo)
	loadService := dispatchapp.NewLoadService(loadRepo, driverRepo, dispatcherRepo, brokerRepo, factoringRepo, auditWriter)
	driverService := fleetapp.NewDriverService(driverRepo)
	dispatcherService := fleetapp.NewDispatcherService(dispatcherRepo)
	brokerService := partnerapp.NewBrokerService(brokerRepo)
	factoringService := partnerapp.NewFactoringCompanyService(factoringRepo)
	outboxService := eventapp.NewOutboxService(outboxRepo, log)

	// Initialize HTTP handlers
	loadHandler := handler.NewLoadHandler(loadService)
	driverHandler := handler.NewDriverHandler(driverService)
	dispatcherHandler := handler.NewDispatcherHandler(dispatcherService)
	brokerHandler := handler.NewBrokerHandler(brokerService)
	factoringHandler := handler.NewFactoringCompanyHandler(factoringService)
	auditHandler := handler.NewAuditHandler(auditQueryService)
	outboxHandler := handler.NewOutboxHandler(outboxService)
	systemHandler := handler.NewSystemHandler()

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

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Tracing - Open a span per request, propagate trace context
	// 3. Recovery - Catch panics
	// 4. Logger - Log requests
	// 5. Security - Add security headers
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	// 8. Tenant - Resolve the carrier scope for every API request
	// 9. Actor - Resolve the acting user for write attribution
	engine.Use(middleware.RequestID())
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
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

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	tenantConfig := middleware.DefaultTenantConfig()
	tenantConfig.Logger = log
	engine.Use(middleware.TenantMiddlewareWithConfig(tenantConfig))
	engine.Use(middleware.ActorMiddleware())
	if cfg.Telemetry.Enabled {
		// Runs after tenant and actor resolution so the span carries both
		engine.Use(middleware.TracingAttributeInjector())
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(router.DispatchRoutes{Loads: loadHandler})
	r.Register(router.FleetRoutes{Drivers: driverHandler, Dispatchers: dispatcherHandler})
	r.Register(router.PartnerRoutes{Brokers: brokerHandler, FactoringCompanies: factoringHandler})
	r.Register(router.AuditRoutes{Audit: auditHandler})
	r.Register(router.SystemRoutes{System: systemHandler, Outbox: outboxHandler})
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

// healthHandler reports liveness plus a database round trip.
func healthHandler(db *persistence.Database, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			log.Warn("Health check database ping failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "down",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"database": "up",
		})
	}
}
