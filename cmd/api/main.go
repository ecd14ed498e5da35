package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"finown/internal/config"
	"finown/internal/database"
	"finown/internal/handlers"
	"finown/internal/logger"
	"finown/internal/middleware"
	"finown/internal/services"
	"finown/internal/validator"

	_ "finown/internal/docs" // Import swagger docs
)

// @title           Finown API
// @version         1.0
// @description     Finown is a personal finance planner: a monthly ledger of incomes, expenses, and subscriptions with a completion tracker, plus credit card cycle ranking and installment plans.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	bankService := services.NewBankService(db)
	productService := services.NewProductService(db)
	sourceService := services.NewSourceService(db)
	trackerService := services.NewTrackerService(db)
	paymentService := services.NewPaymentService(db)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	bankHandler := handlers.NewBankHandler(bankService, auditService)
	productHandler := handlers.NewProductHandler(productService, auditService)
	sourceHandler := handlers.NewSourceHandler(sourceService, auditService)
	trackerHandler := handlers.NewTrackerHandler(trackerService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, auditService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Bank routes
	banks := protected.Group("/banks")
	banks.POST("", bankHandler.CreateBank)
	banks.GET("", bankHandler.GetBanks)
	banks.GET("/:id", bankHandler.GetBank)
	banks.PUT("/:id", bankHandler.UpdateBank)
	banks.DELETE("/:id", bankHandler.DeleteBank)

	// Product routes. Static paths come before the :id routes so gin
	// does not treat "best-cards" and "summary" as IDs.
	products := protected.Group("/products")
	products.POST("", productHandler.CreateProduct)
	products.GET("", productHandler.GetProducts)
	products.GET("/best-cards", productHandler.GetBestCards)
	products.GET("/summary", productHandler.GetSummary)
	products.GET("/:id", productHandler.GetProduct)
	products.PUT("/:id", productHandler.UpdateProduct)
	products.DELETE("/:id", productHandler.DeleteProduct)
	products.POST("/:id/payments", paymentHandler.CreatePayment)
	products.POST("/:id/payments/bulk", paymentHandler.CreatePayments)
	products.GET("/:id/payments", paymentHandler.GetPayments)
	products.DELETE("/:id/payments", paymentHandler.DeletePayments)

	// Source routes
	sources := protected.Group("/sources")
	sources.POST("", sourceHandler.CreateSource)
	sources.GET("", sourceHandler.GetSources)
	sources.GET("/occurrences", sourceHandler.GetOccurrences)
	sources.GET("/:id", sourceHandler.GetSource)
	sources.PUT("/:id", sourceHandler.UpdateSource)
	sources.DELETE("/:id", sourceHandler.DeleteSource)

	// Tracker routes
	trackers := protected.Group("/trackers")
	trackers.GET("", trackerHandler.GetTracker)
	trackers.PUT("/:key/toggle", trackerHandler.Toggle)

	// Payment routes
	payments := protected.Group("/payments")
	payments.PUT("/:id", paymentHandler.UpdatePayment)
	payments.DELETE("/:id", paymentHandler.DeletePayment)

	log.Infof("Starting Finown backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
