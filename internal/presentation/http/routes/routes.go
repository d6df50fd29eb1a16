package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prince-yadav810/taponce-api/internal/config"
	"github.com/prince-yadav810/taponce-api/internal/domain/entity"
	domainRepo "github.com/prince-yadav810/taponce-api/internal/domain/repository"
	"github.com/prince-yadav810/taponce-api/internal/presentation/http/handler"
	"github.com/prince-yadav810/taponce-api/internal/presentation/http/middleware"
	"github.com/prince-yadav810/taponce-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth       *handler.AuthHandler
	Order      *handler.OrderHandler
	Board      *handler.BoardHandler
	Agent      *handler.AgentHandler
	Finance    *handler.FinanceHandler
	Customer   *handler.CustomerHandler
	CardDesign *handler.CardDesignHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Public portfolio lookup for the NFC tap landing page
		v1.GET("/portfolio/:slug", h.Customer.GetBySlug)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	// Admin routes live at the root, gated by role
	registerAdminRoutes(router, h, deps)

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleAuth)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)

	// Orders
	registerOrderRoutes(protected, h, deps)

	// Board
	registerBoardRoutes(protected, h)

	// Agents
	registerAgentRoutes(protected, h)

	// Finance
	registerFinanceRoutes(protected, h)

	// Customers
	registerCustomerRoutes(protected, h)

	// Card catalog
	registerCardDesignRoutes(protected, h)
}

func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	orders := protected.Group("/orders")
	{
		orders.GET("", h.Order.List)
		// Duplicate intake submissions replay the original response
		orders.POST("", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Order.Create)
		orders.GET("/:id", h.Order.Get)
		orders.POST("/:id/approve", h.Order.Approve)
		orders.POST("/:id/reject", h.Order.Reject)
		orders.POST("/:id/advance", h.Order.Advance)
		orders.POST("/:id/cancel", h.Order.Cancel)
	}
}

func registerBoardRoutes(protected *gin.RouterGroup, h *Handlers) {
	board := protected.Group("/board")
	{
		board.GET("", h.Board.Get)
		board.POST("/move", h.Board.Drag)
		board.POST("/refresh", h.Board.Refresh)
	}
}

func registerAgentRoutes(protected *gin.RouterGroup, h *Handlers) {
	agents := protected.Group("/agents")
	{
		agents.GET("", h.Agent.List)
		agents.POST("", h.Agent.Create)
		agents.GET("/:id", h.Agent.Get)
		agents.GET("/:id/payouts", h.Agent.ListAgentPayouts)
	}
}

func registerFinanceRoutes(protected *gin.RouterGroup, h *Handlers) {
	finance := protected.Group("/finance")
	{
		finance.GET("/summary", h.Finance.Summary)
		finance.GET("/revenue", h.Finance.Revenue)
		finance.GET("/cod-pending", h.Finance.CODPending)
		finance.GET("/liabilities", h.Finance.Liabilities)
		finance.GET("/expenses", h.Finance.ListExpenses)
		finance.POST("/expenses", h.Finance.CreateExpense)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.GET("/:id", h.Customer.Get)
		customers.PATCH("/:id", h.Customer.Update)
		customers.PATCH("/:id/status", h.Customer.Update)
	}
}

func registerCardDesignRoutes(protected *gin.RouterGroup, h *Handlers) {
	designs := protected.Group("/designs")
	{
		designs.GET("", h.CardDesign.List)
		designs.POST("", h.CardDesign.Create)
		designs.PATCH("/:id", h.CardDesign.Update)
	}
}

func registerAdminRoutes(router *gin.Engine, h *Handlers, deps *Deps) {
	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(deps.JWTManager))
	admin.Use(middleware.RequireRole(entity.RoleAdmin))
	{
		admin.PATCH("/agents/:id", h.Agent.Update)
		// Payouts move money, so a key is mandatory
		admin.POST("/payouts", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Agent.Payout)
		admin.GET("/payouts", h.Agent.ListPayouts)
	}
}
