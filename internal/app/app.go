package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"nautikos_backend/database"
	"nautikos_backend/internal/auth"
	"nautikos_backend/internal/config"
	"nautikos_backend/internal/email"
	"nautikos_backend/internal/handlers"
	"nautikos_backend/internal/logger"
	"nautikos_backend/internal/middleware"
	"nautikos_backend/internal/models"
	"nautikos_backend/internal/repositories"
	"nautikos_backend/internal/routes"
	"nautikos_backend/internal/services"
	"nautikos_backend/internal/storage"
	"nautikos_backend/internal/validator"
	"nautikos_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
	"gorm.io/gorm"
)

func Run() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	deps, err := NewDependencies(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize dependencies", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	workers.NewVerificationWorker(gormDB, repositories.NewInvitationRepository()).Start(ctx)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           SetupRouter(cfg, gormDB, deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	if err := deps.EmailProvider.Close(); err != nil {
		logger.Error("Email provider close error", "error", err)
	}
}

// NewDependencies builds the external collaborators from configuration.
func NewDependencies(cfg *config.Config) (services.Dependencies, error) {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
	})
	if err != nil {
		return services.Dependencies{}, fmt.Errorf("storage: %w", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	templates, err := email.NewDefaultTemplateManager()
	if err != nil {
		return services.Dependencies{}, fmt.Errorf("email templates: %w", err)
	}

	var provider email.Provider
	if cfg.Email.Enabled {
		provider = email.NewSMTPProvider(&email.SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
		}, templates)
		if err := provider.Validate(); err != nil {
			return services.Dependencies{}, fmt.Errorf("email provider: %w", err)
		}
	} else {
		logger.Warn("Email delivery disabled, messages are only logged")
		provider = email.NewLogProvider(templates)
	}

	var checkout services.CheckoutSessions
	if cfg.Billing.SecretKey != "" {
		checkout = &session.Client{B: stripe.GetBackend(stripe.APIBackend), Key: cfg.Billing.SecretKey}
	} else {
		logger.Warn("Billing secret key not set, checkout is disabled")
	}

	return services.Dependencies{
		Storage:       storageInstance,
		EmailProvider: provider,
		Tokens:        auth.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TTL)*time.Minute, cfg.Invitations.Issuer),
		Codes:         auth.NewCodeIssuer(cfg.Invitations.Issuer, cfg.Invitations.CodePeriodSeconds),
		Checkout:      checkout,
		PriceID:       cfg.Billing.PriceID,
		AppName:       cfg.Email.FromName,
		AppURL:        cfg.Server.BaseURL,
	}, nil
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB, deps services.Dependencies) *gin.Engine {
	serviceContainer := services.NewServiceContainer(deps)
	appHandlers := initializeHandlers(cfg, serviceContainer)

	if strings.EqualFold(cfg.Server.Env, "production") {
		gin.SetMode(gin.ReleaseMode)
	}
	ginRouter := initializeGinRouter(cfg, gormDB)

	routes.RegisterRoutes(ginRouter, appHandlers, middleware.AuthMiddleware(deps.Tokens))
	return ginRouter
}

func initializeHandlers(cfg *config.Config, svc *services.ServiceContainer) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler(validator.New())

	return &handlers.AppHandlers{
		AuthHandler:       handlers.NewAuthHandler(baseHandler, svc.AuthService, svc.EmailService),
		OnboardingHandler: handlers.NewOnboardingHandler(baseHandler, svc.SectionService, svc.OnboardingService, svc.CVService),
		ModerationHandler: handlers.NewModerationHandler(baseHandler, svc.ModerationService, svc.EmailService),
		InvitationHandler: handlers.NewInvitationHandler(baseHandler, svc.InvitationService, svc.EmailService),
		ReferenceHandler:  handlers.NewReferenceHandler(baseHandler, svc.ReferenceService),
		BillingHandler:    handlers.NewBillingHandler(baseHandler, svc.BillingService, cfg.Billing.WebhookSecret),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.AllowedOrigins...))
	router.Use(middleware.DBMiddleware(db))
	return router
}

// seedFirstAdmin creates the configured admin account once.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := strings.ToLower(strings.TrimSpace(cfg.FirstAdminEmail))
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	userRepo := repositories.NewUserRepository()

	return db.Transaction(func(tx *gorm.DB) error {
		_, err := userRepo.FindByEmail(tx, adminEmail)
		if err == nil {
			logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
			return nil
		}
		if !errors.Is(err, repositories.ErrUserNotFound) {
			return fmt.Errorf("failed to check for admin user: %w", err)
		}

		logger.Warn("No admin user found with specified email. Creating first admin...", "email", adminEmail)

		if err := auth.ValidatePassword(adminPassword); err != nil {
			return fmt.Errorf("first admin password: %w", err)
		}
		hashedPassword, err := auth.HashPassword(adminPassword)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}

		newAdmin := &models.User{
			Email:        adminEmail,
			PasswordHash: hashedPassword,
			Role:         models.UserRoleAdmin,
			IsVerified:   true,
			IsOnboarded:  true,
			Profile:      &models.UserProfile{FirstName: "Nautikos", LastName: "Admin"},
		}
		if err := userRepo.Create(tx, newAdmin); err != nil {
			return fmt.Errorf("failed to create admin user in database: %w", err)
		}

		logger.Info("Created first admin user", "email", adminEmail)
		return nil
	})
}
