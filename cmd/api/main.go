package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"financehub/internal/config"
	"financehub/internal/database"
	"financehub/internal/handlers"
	"financehub/internal/logger"
	"financehub/internal/middleware"
	"financehub/internal/scheduler"
	"financehub/internal/services"
	"financehub/internal/syncer"
	"financehub/internal/validator"
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

	// Create database manager
	dbManager, err := database.NewManager(appConfig.DBPath)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	notificationService := services.NewNotificationService(db)
	cardService := services.NewCardService(db, notificationService)
	transactionService := services.NewTransactionService(db, cardService)
	goalService := services.NewGoalService(db, notificationService)
	investmentService := services.NewInvestmentService(db)
	reminderService := services.NewReminderService(db, notificationService)
	settingsService := services.NewSettingsService(db)
	profileService := services.NewProfileService(db)
	analyticsService := services.NewAnalyticsService(transactionService)
	calculatorService := services.NewCalculatorService()
	exportService := services.NewExportService(db)

	// Optional remote snapshot store for synchronization
	var sync *syncer.Syncer
	if appConfig.SyncEnabled() {
		remoteDB, remoteErr := database.OpenRemote(appConfig.RemoteDriver, appConfig.RemoteDSN)
		if remoteErr != nil {
			return fmt.Errorf("failed to open remote store: %w", remoteErr)
		}
		remote, remoteErr := syncer.NewGormRemote(remoteDB)
		if remoteErr != nil {
			return fmt.Errorf("failed to prepare remote store: %w", remoteErr)
		}
		sync = syncer.New(exportService, remote, log)
		if startErr := sync.Start(context.Background()); startErr != nil {
			// An unreachable remote must not block local use; sync will
			// catch up on the next scheduled push.
			log.Warnw("initial sync failed", "error", startErr)
		}
	}

	// Background jobs
	jobs := scheduler.New(log)
	if sync != nil {
		err = jobs.AddJob(appConfig.SyncSchedule, scheduler.FuncJob{
			JobName: "sync-push",
			Fn: func() error {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				return sync.Push(ctx)
			},
		})
		if err != nil {
			return fmt.Errorf("failed to schedule sync push: %w", err)
		}
	}
	err = jobs.AddJob(appConfig.ReminderSchedule, scheduler.FuncJob{
		JobName: "reminder-scan",
		Fn:      func() error { return reminderService.ScanDue(time.Now()) },
	})
	if err != nil {
		return fmt.Errorf("failed to schedule reminder scan: %w", err)
	}
	jobs.Start()
	defer jobs.Stop()

	// Initialize handlers
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	cardHandler := handlers.NewCardHandler(cardService)
	goalHandler := handlers.NewGoalHandler(goalService)
	investmentHandler := handlers.NewInvestmentHandler(investmentService)
	reminderHandler := handlers.NewReminderHandler(reminderService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	profileHandler := handlers.NewProfileHandler(profileService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	toolsHandler := handlers.NewToolsHandler(calculatorService)
	categoryHandler := handlers.NewCategoryHandler()
	syncHandler := handlers.NewSyncHandler(exportService, sync)

	// Initialize Gin router
	if appConfig.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
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

	// Transaction routes
	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Card routes
	cards := v1.Group("/cards")
	cards.POST("", cardHandler.CreateCard)
	cards.GET("", cardHandler.GetCards)
	cards.GET("/:id", cardHandler.GetCardByID)
	cards.PUT("/:id", cardHandler.UpdateCard)
	cards.DELETE("/:id", cardHandler.DeleteCard)

	// Goal routes
	goals := v1.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.GET("/:id", goalHandler.GetGoalByID)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)
	goals.POST("/:id/progress", goalHandler.AddProgress)
	goals.GET("/:id/progress", goalHandler.GetBudgetProgress)

	// Investment routes
	investments := v1.Group("/investments")
	investments.POST("", investmentHandler.CreateInvestment)
	investments.GET("", investmentHandler.GetInvestments)
	investments.GET("/:id", investmentHandler.GetInvestmentByID)
	investments.PUT("/:id", investmentHandler.UpdateInvestment)
	investments.DELETE("/:id", investmentHandler.DeleteInvestment)

	// Reminder routes
	reminders := v1.Group("/reminders")
	reminders.POST("", reminderHandler.CreateReminder)
	reminders.GET("", reminderHandler.GetReminders)
	reminders.DELETE("/:id", reminderHandler.DeleteReminder)
	reminders.POST("/scan", reminderHandler.ScanDue)

	// Notification routes
	notifications := v1.Group("/notifications")
	notifications.POST("", notificationHandler.CreateNotification)
	notifications.GET("", notificationHandler.GetNotifications)
	notifications.PUT("/:id/read", notificationHandler.MarkRead)
	notifications.DELETE("/:id", notificationHandler.DeleteNotification)
	notifications.DELETE("", notificationHandler.ClearNotifications)

	// Settings routes
	settings := v1.Group("/settings")
	settings.GET("", settingsHandler.GetSettings)
	settings.PUT("", settingsHandler.UpdateSettings)

	// Profile routes
	profile := v1.Group("/profile")
	profile.GET("", profileHandler.GetProfile)
	profile.POST("/verify-pin", profileHandler.VerifyPIN)
	profile.PUT("/pin", profileHandler.UpdatePIN)

	// Analytics routes
	analytics := v1.Group("/analytics")
	analytics.GET("/summary", analyticsHandler.GetSummary)
	analytics.GET("/expenses-by-category", analyticsHandler.GetExpensesByCategory)
	analytics.GET("/monthly-evolution", analyticsHandler.GetMonthlyEvolution)
	analytics.GET("/statistics", analyticsHandler.GetAdvancedStatistics)
	analytics.GET("/forecast", analyticsHandler.GetForecast)

	// Planning tool routes
	tools := v1.Group("/tools")
	tools.POST("/compound-interest", toolsHandler.CompoundInterest)
	tools.POST("/installments", toolsHandler.SimulateInstallment)
	tools.POST("/convert", toolsHandler.ConvertCurrency)

	// Category catalogue
	v1.GET("/categories", categoryHandler.GetCategories)

	// Data export/import and sync
	syncRoutes := v1.Group("/sync")
	syncRoutes.GET("/export", syncHandler.Export)
	syncRoutes.POST("/import", syncHandler.Import)
	syncRoutes.POST("/clear", syncHandler.ClearAll)
	syncRoutes.POST("/push", syncHandler.Push)
	syncRoutes.POST("/pull", syncHandler.Pull)

	log.Infof("Starting FinanceHub backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
