package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/money"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestBook creates a book with a unique name.
func CreateTestBook(t *testing.T, db *gorm.DB) *models.Book {
	t.Helper()

	book := &models.Book{
		Name: fmt.Sprintf("Test Book %d", nextID()),
	}
	if err := db.Create(book).Error; err != nil {
		t.Fatalf("failed to create test book: %v", err)
	}
	return book
}

// CreateTestAccount creates an account with zero balance.
func CreateTestAccount(t *testing.T, db *gorm.DB) *models.Account {
	t.Helper()
	return CreateTestAccountWithBalance(t, db, 0)
}

// CreateTestAccountWithBalance creates an account with the given balance
// (in minor units).
func CreateTestAccountWithBalance(t *testing.T, db *gorm.DB, balance money.Money) *models.Account {
	t.Helper()

	account := &models.Account{
		Name:    fmt.Sprintf("Test Account %d", nextID()),
		Balance: balance,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestCategory creates a category of the given kind.
func CreateTestCategory(t *testing.T, db *gorm.DB, kind models.Kind) *models.Category {
	t.Helper()

	category := &models.Category{
		Name: fmt.Sprintf("Test Category %d", nextID()),
		Kind: kind,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction creates a transaction of the given kind and amount
// (in minor units), recorded now. It writes the row directly, bypassing
// balance maintenance.
func CreateTestTransaction(t *testing.T, db *gorm.DB, bookID, categoryID, accountID uint, kind models.Kind, amount money.Money) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		BookID:     bookID,
		CategoryID: categoryID,
		AccountID:  accountID,
		Amount:     amount,
		Kind:       kind,
		RecordTime: time.Now().Truncate(time.Millisecond),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestBudget creates a budget for the given month.
func CreateTestBudget(t *testing.T, db *gorm.DB, year, month int, amount money.Money) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		PeriodYear:  year,
		PeriodMonth: month,
		Amount:      amount,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}
