package integration

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"financehub/internal/handlers"
	"financehub/internal/logger"
	"financehub/internal/middleware"
	"financehub/internal/models"
	"financehub/internal/services"
	"financehub/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:integrationdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.Transaction{},
		&models.Card{},
		&models.Goal{},
		&models.Investment{},
		&models.Reminder{},
		&models.Notification{},
		&models.Settings{},
		&models.Profile{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
// Remote sync stays unconfigured, matching a local-only deployment.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
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

	// Handlers
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
	syncHandler := handlers.NewSyncHandler(exportService, nil)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	cards := v1.Group("/cards")
	cards.POST("", cardHandler.CreateCard)
	cards.GET("", cardHandler.GetCards)
	cards.GET("/:id", cardHandler.GetCardByID)
	cards.PUT("/:id", cardHandler.UpdateCard)
	cards.DELETE("/:id", cardHandler.DeleteCard)

	goals := v1.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.GET("/:id", goalHandler.GetGoalByID)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)
	goals.POST("/:id/progress", goalHandler.AddProgress)
	goals.GET("/:id/progress", goalHandler.GetBudgetProgress)

	investments := v1.Group("/investments")
	investments.POST("", investmentHandler.CreateInvestment)
	investments.GET("", investmentHandler.GetInvestments)
	investments.GET("/:id", investmentHandler.GetInvestmentByID)
	investments.PUT("/:id", investmentHandler.UpdateInvestment)
	investments.DELETE("/:id", investmentHandler.DeleteInvestment)

	reminders := v1.Group("/reminders")
	reminders.POST("", reminderHandler.CreateReminder)
	reminders.GET("", reminderHandler.GetReminders)
	reminders.DELETE("/:id", reminderHandler.DeleteReminder)
	reminders.POST("/scan", reminderHandler.ScanDue)

	notifications := v1.Group("/notifications")
	notifications.POST("", notificationHandler.CreateNotification)
	notifications.GET("", notificationHandler.GetNotifications)
	notifications.PUT("/:id/read", notificationHandler.MarkRead)
	notifications.DELETE("/:id", notificationHandler.DeleteNotification)
	notifications.DELETE("", notificationHandler.ClearNotifications)

	settings := v1.Group("/settings")
	settings.GET("", settingsHandler.GetSettings)
	settings.PUT("", settingsHandler.UpdateSettings)

	profile := v1.Group("/profile")
	profile.GET("", profileHandler.GetProfile)
	profile.POST("/verify-pin", profileHandler.VerifyPIN)
	profile.PUT("/pin", profileHandler.UpdatePIN)

	analytics := v1.Group("/analytics")
	analytics.GET("/summary", analyticsHandler.GetSummary)
	analytics.GET("/expenses-by-category", analyticsHandler.GetExpensesByCategory)
	analytics.GET("/monthly-evolution", analyticsHandler.GetMonthlyEvolution)
	analytics.GET("/statistics", analyticsHandler.GetAdvancedStatistics)
	analytics.GET("/forecast", analyticsHandler.GetForecast)

	tools := v1.Group("/tools")
	tools.POST("/compound-interest", toolsHandler.CompoundInterest)
	tools.POST("/installments", toolsHandler.SimulateInstallment)
	tools.POST("/convert", toolsHandler.ConvertCurrency)

	v1.GET("/categories", categoryHandler.GetCategories)

	sync := v1.Group("/sync")
	sync.GET("/export", syncHandler.Export)
	sync.POST("/import", syncHandler.Import)
	sync.POST("/clear", syncHandler.ClearAll)
	sync.POST("/push", syncHandler.Push)
	sync.POST("/pull", syncHandler.Pull)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}
