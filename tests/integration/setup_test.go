package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"fintrack/internal/handlers"
	"fintrack/internal/logger"
	"fintrack/internal/middleware"
	"fintrack/internal/models"
	"fintrack/internal/projection"
	"fintrack/internal/services"
	"fintrack/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB        *gorm.DB
	Router    *gin.Engine
	Projector *projection.Projector
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
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.Book{},
		&models.Account{},
		&models.Category{},
		&models.Transaction{},
		&models.Budget{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// seedDefaults inserts the default book, accounts, and categories the way
// the first-run migration does.
func seedDefaults(t *testing.T, db *gorm.DB) {
	t.Helper()

	if err := db.Create(&models.Book{Name: "默认账本"}).Error; err != nil {
		t.Fatalf("failed to seed book: %v", err)
	}
	for _, name := range []string{"现金", "银行卡"} {
		if err := db.Create(&models.Account{Name: name}).Error; err != nil {
			t.Fatalf("failed to seed account: %v", err)
		}
	}
	for _, name := range []string{"餐饮", "购物", "交通", "娱乐", "医疗", "教育", "其他"} {
		if err := db.Create(&models.Category{Name: name, Kind: models.KindExpense}).Error; err != nil {
			t.Fatalf("failed to seed category: %v", err)
		}
	}
	for _, name := range []string{"工资", "理财", "其他收入"} {
		if err := db.Create(&models.Category{Name: name, Kind: models.KindIncome}).Error; err != nil {
			t.Fatalf("failed to seed category: %v", err)
		}
	}
}

// setupTestApp builds the full router with seeded data.
func setupTestApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)
	seedDefaults(t, db)

	ledger := services.NewLedgerService(db)
	stats := services.NewStatsService(ledger)
	proj := projection.NewProjector()
	tracker := services.NewTracker(ledger, stats, proj)
	if err := tracker.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap tracker: %v", err)
	}

	transactionHandler := handlers.NewTransactionHandler(tracker, ledger)
	budgetHandler := handlers.NewBudgetHandler(tracker, ledger)
	referenceHandler := handlers.NewReferenceHandler(ledger, language.SimplifiedChinese, currency.CNY)
	statsHandler := handlers.NewStatsHandler(stats)
	stateHandler := handlers.NewStateHandler(proj)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")
	v1.POST("/transactions", transactionHandler.CreateTransaction)
	v1.GET("/transactions", transactionHandler.ListTransactions)
	v1.DELETE("/transactions/:id", transactionHandler.DeleteTransaction)
	v1.PUT("/budgets/:year/:month", budgetHandler.SetBudget)
	v1.GET("/budgets/:year/:month", budgetHandler.GetBudget)
	v1.GET("/accounts", referenceHandler.ListAccounts)
	v1.GET("/categories", referenceHandler.ListCategories)
	v1.GET("/books", referenceHandler.ListBooks)
	v1.GET("/stats/today", statsHandler.TodayStats)
	v1.GET("/stats/monthly/:year/:month", statsHandler.MonthlyStats)
	v1.GET("/stats/budget", statsHandler.BudgetUsage)
	v1.GET("/state", stateHandler.State)

	return &testApp{DB: db, Router: router, Projector: proj}
}

// doJSON performs a request with an optional JSON body and returns the recorder.
func (app *testApp) doJSON(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	return w
}

// decodeBody decodes a JSON response body into out.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()

	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response %s: %v", w.Body.String(), err)
	}
}
