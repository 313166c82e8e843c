package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"careercraft_backend/database"
	"careercraft_backend/internal/auth"
	"careercraft_backend/internal/config"
	"careercraft_backend/internal/email"
	"careercraft_backend/internal/genai"
	"careercraft_backend/internal/handlers"
	"careercraft_backend/internal/logger"
	"careercraft_backend/internal/middleware"
	"careercraft_backend/internal/models"
	"careercraft_backend/internal/repositories"
	"careercraft_backend/internal/routes"
	"careercraft_backend/internal/services"
	"careercraft_backend/internal/validator"
	"careercraft_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.Migrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	if err := seedFirstAdmin(gormDB); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter, serviceContainer := SetupRouter(cfg, gormDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	startWorkers(ctx, cfg, gormDB, serviceContainer.EmailService)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) (*gin.Engine, *services.ServiceContainer) {
	serviceContainer := initializeServices(cfg, gormDB)
	appHandlers := initializeHandlers(cfg, serviceContainer)

	ginRouter := initializeGinRouter()
	routes.RegisterRoutes(ginRouter, appHandlers, cfg.JWT.Secret)

	return ginRouter, serviceContainer
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB) *services.ServiceContainer {
	var emailService email.Provider
	if cfg.Email.SMTPHost != "" {
		emailService = email.NewSMTPProvider(&email.SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
		})
	} else {
		logger.Warn("SMTP is not configured, using mock email provider")
		emailService = email.NewMockProvider()
	}

	genClient := genai.NewGeminiClient(genai.GeminiConfig{
		APIKey:       cfg.Gemini.APIKey,
		BaseURL:      cfg.Gemini.BaseURL,
		CapableModel: cfg.Gemini.CapableModel,
		FastModel:    cfg.Gemini.FastModel,
		Timeout:      cfg.GeminiTimeout(),
		MaxRetries:   cfg.Gemini.MaxRetries,
	})

	userRepo := repositories.NewUserRepository(gormDB)
	creditRepo := repositories.NewCreditRepository(gormDB)
	resumeRepo := repositories.NewResumeRepository(gormDB)
	documentRepo := repositories.NewDocumentRepository(gormDB)
	interviewRepo := repositories.NewInterviewRepository(gormDB)
	analysisRepo := repositories.NewAnalysisRepository(gormDB)

	creditService := services.NewCreditService(userRepo, creditRepo)
	authService := services.NewAuthService(userRepo, creditService, services.AuthConfig{
		JWTSecret:     cfg.JWT.Secret,
		TokenTTL:      time.Duration(cfg.JWT.TTL) * time.Minute,
		RefreshTTL:    time.Duration(cfg.JWT.RefreshTTL) * time.Hour,
		SignupBonus:   cfg.Credits.SignupBonus,
		ReferralBonus: cfg.Credits.ReferralBonus,
	})
	userService := services.NewUserService(userRepo)
	generationService := services.NewGenerationService(
		userRepo, creditRepo, genClient, emailService, cfg.Email.OpsEmail, cfg.GeminiTimeout())
	resumeService := services.NewResumeService(resumeRepo, generationService)
	documentService := services.NewDocumentService(documentRepo, generationService)
	interviewService := services.NewInterviewService(interviewRepo, generationService)
	analysisService := services.NewAnalysisService(generationService, analysisRepo)

	return &services.ServiceContainer{
		AuthService:       authService,
		UserService:       userService,
		CreditService:     creditService,
		GenerationService: generationService,
		ResumeService:     resumeService,
		DocumentService:   documentService,
		InterviewService:  interviewService,
		AnalysisService:   analysisService,
		EmailService:      emailService,
	}
}

func initializeHandlers(cfg *config.Config, sc *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	limiter := middleware.NewRateLimiter(cfg.RateLimit.FreeOpsPerMinute)

	return &handlers.AppHandlers{
		AuthHandler:      handlers.NewAuthHandler(customValidator, sc.AuthService),
		UserHandler:      handlers.NewUserHandler(customValidator, sc.UserService),
		CreditHandler:    handlers.NewCreditHandler(customValidator, sc.CreditService),
		BillingHandler:   handlers.NewBillingHandler(customValidator, sc.CreditService, cfg.Billing.WebhookSecret),
		ResumeHandler:    handlers.NewResumeHandler(customValidator, sc.ResumeService),
		DocumentHandler:  handlers.NewDocumentHandler(customValidator, sc.DocumentService),
		InterviewHandler: handlers.NewInterviewHandler(customValidator, sc.InterviewService),
		AnalysisHandler:  handlers.NewAnalysisHandler(customValidator, sc.AnalysisService, limiter),
		AdminHandler:     handlers.NewAdminHandler(customValidator, sc.CreditService, sc.UserService),
	}
}

func initializeGinRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}

func startWorkers(ctx context.Context, cfg *config.Config, gormDB *gorm.DB, emails email.Provider) {
	worker := workers.NewLedgerWorker(
		repositories.NewCreditRepository(gormDB),
		repositories.NewUserRepository(gormDB),
		emails,
		cfg.Email.OpsEmail,
	)
	worker.Start(ctx)
	logger.Info("Ledger worker started")
}

func seedFirstAdmin(db *gorm.DB) error {
	adminEmail := os.Getenv("FIRST_ADMIN_EMAIL")
	adminPassword := os.Getenv("FIRST_ADMIN_PASSWORD")

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	var adminUser models.User
	result := db.Where("email = ?", adminEmail).First(&adminUser)
	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found. Creating first admin...", "email", adminEmail)

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Email:        adminEmail,
		PasswordHash: hash,
		FullName:     "Platform Administrator",
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
		Plan:         models.PlanEnterprise,
	}
	if err := db.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("Created first admin user", "email", adminEmail)
	return nil
}
