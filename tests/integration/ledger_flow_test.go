package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"fintrack/internal/models"
	"fintrack/internal/projection"
)

func TestLedgerFlow(t *testing.T) {
	app := setupTestApp(t)

	// Seeded reference data is served.
	w := app.doJSON(t, http.MethodGet, "/api/v1/categories", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var catResp struct {
		Categories []models.Category `json:"categories"`
	}
	decodeBody(t, w, &catResp)
	if len(catResp.Categories) != 10 {
		t.Fatalf("expected 10 seeded categories, got %d", len(catResp.Categories))
	}
	var expenseCat, incomeCat models.Category
	for _, c := range catResp.Categories {
		if c.Kind == models.KindExpense && expenseCat.ID == 0 {
			expenseCat = c
		}
		if c.Kind == models.KindIncome && incomeCat.ID == 0 {
			incomeCat = c
		}
	}

	var acctResp struct {
		Accounts []models.Account `json:"accounts"`
	}
	w = app.doJSON(t, http.MethodGet, "/api/v1/accounts", nil)
	decodeBody(t, w, &acctResp)
	if len(acctResp.Accounts) != 2 {
		t.Fatalf("expected 2 seeded accounts, got %d", len(acctResp.Accounts))
	}
	account := acctResp.Accounts[0]

	var bookResp struct {
		Books []models.Book `json:"books"`
	}
	w = app.doJSON(t, http.MethodGet, "/api/v1/books", nil)
	decodeBody(t, w, &bookResp)
	if len(bookResp.Books) != 1 {
		t.Fatalf("expected 1 seeded book, got %d", len(bookResp.Books))
	}
	book := bookResp.Books[0]

	// Record an expense and an income today.
	w = app.doJSON(t, http.MethodPost, "/api/v1/transactions", gin.H{
		"book_id":     book.ID,
		"category_id": expenseCat.ID,
		"account_id":  account.ID,
		"amount":      3000,
		"type":        0,
		"remark":      "午餐",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	w = app.doJSON(t, http.MethodPost, "/api/v1/transactions", gin.H{
		"book_id":     book.ID,
		"category_id": incomeCat.ID,
		"account_id":  account.ID,
		"amount":      500000,
		"type":        1,
		"remark":      "工资",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// The projection carries the mutation and all derived state together.
	var snap projection.Snapshot
	w = app.doJSON(t, http.MethodGet, "/api/v1/state", nil)
	decodeBody(t, w, &snap)
	if len(snap.Transactions) != 2 {
		t.Errorf("expected 2 transactions in state, got %d", len(snap.Transactions))
	}
	if snap.TodayStats.Expense != 3000 || snap.TodayStats.Income != 500000 {
		t.Errorf("unexpected today stats %+v", snap.TodayStats)
	}
	var published models.Account
	for _, a := range snap.Accounts {
		if a.ID == account.ID {
			published = a
		}
	}
	if published.Balance != 497000 {
		t.Errorf("expected balance 497000 in state, got %d", published.Balance)
	}

	// Budget set for the current month is reflected in usage.
	now := time.Now()
	budgetPath := fmt.Sprintf("/api/v1/budgets/%d/%d", now.Year(), int(now.Month()))
	w = app.doJSON(t, http.MethodPut, budgetPath, gin.H{"amount": 10000})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var usageResp struct {
		BudgetUsage models.BudgetUsage `json:"budget_usage"`
	}
	w = app.doJSON(t, http.MethodGet, "/api/v1/stats/budget", nil)
	decodeBody(t, w, &usageResp)
	if !usageResp.BudgetUsage.HasBudget {
		t.Fatal("expected budget usage after setting a budget")
	}
	if usageResp.BudgetUsage.Spent != 3000 {
		t.Errorf("expected spent 3000, got %d", usageResp.BudgetUsage.Spent)
	}
	if usageResp.BudgetUsage.Ratio != 0.3 {
		t.Errorf("expected ratio 0.3, got %v", usageResp.BudgetUsage.Ratio)
	}

	// Deleting the expense restores the balance and the aggregates.
	var txID uint
	for _, tx := range snap.Transactions {
		if tx.Kind == models.KindExpense {
			txID = tx.ID
		}
	}
	w = app.doJSON(t, http.MethodDelete, fmt.Sprintf("/api/v1/transactions/%d", txID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = app.doJSON(t, http.MethodGet, "/api/v1/state", nil)
	decodeBody(t, w, &snap)
	if snap.TodayStats.Expense != 0 {
		t.Errorf("expected today expense reset after delete, got %d", snap.TodayStats.Expense)
	}
	for _, a := range snap.Accounts {
		if a.ID == account.ID && a.Balance != 500000 {
			t.Errorf("expected balance 500000 after delete, got %d", a.Balance)
		}
	}

	// Listing supports pagination metadata.
	var pageResp struct {
		Data       []models.Transaction `json:"data"`
		TotalItems int64                `json:"total_items"`
	}
	w = app.doJSON(t, http.MethodGet, "/api/v1/transactions?page=1&page_size=10", nil)
	decodeBody(t, w, &pageResp)
	if pageResp.TotalItems != 1 || len(pageResp.Data) != 1 {
		t.Errorf("expected a single remaining transaction, got %+v", pageResp)
	}
}
