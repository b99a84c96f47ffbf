package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"

	"fintrack/internal/advisor"
	"fintrack/internal/config"
	"fintrack/internal/database"
	"fintrack/internal/handlers"
	"fintrack/internal/logger"
	"fintrack/internal/middleware"
	"fintrack/internal/projection"
	"fintrack/internal/services"
	"fintrack/internal/validator"
)

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

	// Run migrations (includes the first-run seed data)
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	ledgerService := services.NewLedgerService(db)
	statsService := services.NewStatsService(ledgerService)

	// Projection and mutation facade
	projector := projection.NewProjector()
	tracker := services.NewTracker(ledgerService, statsService, projector)
	if err := tracker.Bootstrap(); err != nil {
		return fmt.Errorf("failed to publish initial projection: %w", err)
	}

	// Advisory service
	chatClient := advisor.NewChatClient(
		&http.Client{Timeout: appConfig.AdvisorTimeout},
		appConfig.AdvisorBaseURL,
		appConfig.AdvisorAPIKey,
		appConfig.AdvisorModel,
	)
	advisorService := advisor.NewService(ledgerService, projector, chatClient, appConfig.AdvisorTimeout)

	// Display locale for formatted balances
	localeTag, err := language.Parse(appConfig.Locale)
	if err != nil {
		return fmt.Errorf("invalid LOCALE %q: %w", appConfig.Locale, err)
	}
	currencyUnit, err := currency.ParseISO(appConfig.Currency)
	if err != nil {
		return fmt.Errorf("invalid CURRENCY %q: %w", appConfig.Currency, err)
	}

	// Initialize handlers
	transactionHandler := handlers.NewTransactionHandler(tracker, ledgerService)
	budgetHandler := handlers.NewBudgetHandler(tracker, ledgerService)
	referenceHandler := handlers.NewReferenceHandler(ledgerService, localeTag, currencyUnit)
	statsHandler := handlers.NewStatsHandler(statsService)
	advisorHandler := handlers.NewAdvisorHandler(advisorService, projector)
	stateHandler := handlers.NewStateHandler(projector)

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

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	budgets := v1.Group("/budgets")
	budgets.PUT("/:year/:month", budgetHandler.SetBudget)
	budgets.GET("/:year/:month", budgetHandler.GetBudget)

	v1.GET("/accounts", referenceHandler.ListAccounts)
	v1.GET("/categories", referenceHandler.ListCategories)
	v1.GET("/books", referenceHandler.ListBooks)

	stats := v1.Group("/stats")
	stats.GET("/today", statsHandler.TodayStats)
	stats.GET("/monthly/:year/:month", statsHandler.MonthlyStats)
	stats.GET("/budget", statsHandler.BudgetUsage)

	adv := v1.Group("/advisor")
	adv.POST("/refresh", advisorHandler.Refresh)
	adv.GET("", advisorHandler.State)
	adv.DELETE("/error", advisorHandler.ClearError)

	v1.GET("/state", stateHandler.State)
	v1.GET("/state/stream", stateHandler.Stream)

	log.Infof("Starting fintrack server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
