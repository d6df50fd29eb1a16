package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prince-yadav810/taponce-api/internal/application/service"
	"github.com/prince-yadav810/taponce-api/internal/config"
	"github.com/prince-yadav810/taponce-api/internal/infrastructure/database"
	taponceredis "github.com/prince-yadav810/taponce-api/internal/infrastructure/redis"
	"github.com/prince-yadav810/taponce-api/internal/infrastructure/repository"
	"github.com/prince-yadav810/taponce-api/internal/presentation/http/handler"
	"github.com/prince-yadav810/taponce-api/internal/presentation/http/routes"
	"github.com/prince-yadav810/taponce-api/pkg/oauth"
	"github.com/prince-yadav810/taponce-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Connect to Redis for board snapshots
	redisClient, err := taponceredis.NewClient(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	boardStore := taponceredis.NewBoardStore(redisClient)

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	agentRepo := repository.NewAgentRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	designRepo := repository.NewCardDesignRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	payoutRepo := repository.NewPayoutRepository(db)
	financeRepo := repository.NewFinanceRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, googleOAuthService)
	orderService := service.NewOrderService(orderRepo, agentRepo, customerRepo, designRepo, cfg.Commission.AccrualStatus)
	boardService := service.NewBoardService(orderRepo, orderService, boardStore)
	agentService := service.NewAgentService(agentRepo, payoutRepo)
	financeService := service.NewFinanceService(financeRepo, orderRepo, agentRepo, expenseRepo)
	customerService := service.NewCustomerService(customerRepo)
	designService := service.NewCardDesignService(designRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Order:      handler.NewOrderHandler(orderService),
		Board:      handler.NewBoardHandler(boardService),
		Agent:      handler.NewAgentHandler(agentService),
		Finance:    handler.NewFinanceHandler(financeService),
		Customer:   handler.NewCustomerHandler(customerService),
		CardDesign: handler.NewCardDesignHandler(designService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
