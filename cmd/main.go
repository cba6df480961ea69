package main

import (
	"brief-service/internal/handler"
	"brief-service/internal/mail"
	"brief-service/internal/middleware"
	"brief-service/internal/model"
	"brief-service/internal/pipeline"
	"brief-service/internal/quota"
	"brief-service/internal/report"
	"brief-service/internal/store"
	"brief-service/internal/token"
	"brief-service/pkg/config"
	"brief-service/pkg/database"
	"brief-service/pkg/jwtutil"
	"brief-service/pkg/logger"
	"brief-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting brief service...", cfg.LogConfig()...)

	// Initialize database
	db, err := database.InitDB(&cfg.DB)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	if err := database.MigrateModels(
		&model.Tenant{},
		&model.Recipient{},
		&model.SubmissionToken{},
		&model.ReportRecord{},
	); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize JWT utility
	jwtutil.Initialize(&cfg.JWT)

	// Wire the submission pipeline
	tenants := store.NewTenantStore(db)
	tokens := token.NewGormStore(db, cfg.Token.TTL)
	gate := quota.NewGate(&cfg.Quota)
	generator := report.NewGenerator(&cfg.AI)
	dispatcher := mail.NewDispatcher(&cfg.Mail)
	pipe := pipeline.New(tokens, tenants, gate, generator, dispatcher)

	handler.Init(handler.Deps{
		Config:   cfg,
		Tenants:  tenants,
		Tokens:   tokens,
		Gate:     gate,
		Pipeline: pipe,
	})

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	// Account routes
	auth := e.Group("/auth")
	auth.POST("/register", handler.Register)
	auth.POST("/login", handler.Login)

	// Public brief link surface and demo
	e.GET("/f/:token", handler.GetBriefForm)
	e.POST("/f/:token", handler.SubmitBrief)
	e.POST("/demo/submit", handler.DemoSubmit)

	// Billing webhook - authenticated by HMAC signature, not JWT
	e.POST("/billing/webhook", handler.BillingWebhook)

	// Dashboard API - requires authentication
	api := e.Group("/api")
	api.Use(middleware.AuthMiddleware)

	api.GET("/profile", handler.GetProfile)
	api.PUT("/pricing", handler.UpdatePricing)
	api.PUT("/billing-profile", handler.UpdateBillingProfile)

	recipients := api.Group("/recipients")
	recipients.POST("", handler.CreateRecipient)
	recipients.GET("", handler.ListRecipients)
	recipients.DELETE("/:id", handler.DeleteRecipient)

	reports := api.Group("/reports")
	reports.GET("", handler.ListReports)
	reports.GET("/:id", handler.GetReport)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
